// Package ledger implementa los puertos de persistencia del dominio sobre el
// contrato del Ledger Store (get/set/update/append): cada adaptador arma las
// rutas de su colección y maneja el (un)marshal JSON de sus entidades.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tu-usuario/taller-ops/internal/domain/entity"
	"github.com/tu-usuario/taller-ops/internal/domain/repository"
	"github.com/tu-usuario/taller-ops/internal/store"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo adaptador de pagos sobre el Ledger Store.
type PaymentRepo struct {
	st store.Store
}

// NewPaymentRepository construye el adaptador.
func NewPaymentRepository(st store.Store) *PaymentRepo {
	return &PaymentRepo{st: st}
}

// Create persiste un pago nuevo en payments/<id>.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	if err := r.st.Set(ctx, store.Path(store.ColPayments, p.ID), p); err != nil {
		return fmt.Errorf("crear pago: %w", err)
	}
	return nil
}

// GetByID obtiene un pago por ID; (nil, nil) si no existe.
func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	doc, err := r.st.Get(ctx, store.Path(store.ColPayments, id))
	if err != nil {
		return nil, fmt.Errorf("get pago: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	var p entity.Payment
	if err := json.Unmarshal(doc.Data, &p); err != nil {
		return nil, fmt.Errorf("unmarshal pago: %w", err)
	}
	return &p, nil
}

// Save sobreescribe el registro completo del pago.
func (r *PaymentRepo) Save(ctx context.Context, p *entity.Payment) error {
	if err := r.st.Set(ctx, store.Path(store.ColPayments, p.ID), p); err != nil {
		return fmt.Errorf("guardar pago: %w", err)
	}
	return nil
}

// ListAll devuelve todos los pagos.
func (r *PaymentRepo) ListAll(ctx context.Context) ([]*entity.Payment, error) {
	docs, err := r.st.List(ctx, store.ColPayments)
	if err != nil {
		return nil, fmt.Errorf("listar pagos: %w", err)
	}
	out := make([]*entity.Payment, 0, len(docs))
	for _, doc := range docs {
		var p entity.Payment
		if err := json.Unmarshal(doc.Data, &p); err != nil {
			return nil, fmt.Errorf("unmarshal pago: %w", err)
		}
		out = append(out, &p)
	}
	return out, nil
}
