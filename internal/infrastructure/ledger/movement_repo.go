package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tu-usuario/taller-ops/internal/domain/entity"
	"github.com/tu-usuario/taller-ops/internal/domain/repository"
	"github.com/tu-usuario/taller-ops/internal/store"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo adaptador del libro de movimientos sobre el Ledger Store.
type MovementRepo struct {
	st store.Store
}

// NewMovementRepository construye el adaptador.
func NewMovementRepository(st store.Store) *MovementRepo {
	return &MovementRepo{st: st}
}

// Append agrega un movimiento con id generado por el store y lo devuelve.
func (r *MovementRepo) Append(ctx context.Context, m *entity.InventoryMovement) (string, error) {
	id, err := r.st.Append(ctx, store.ColMovements, m)
	if err != nil {
		return "", fmt.Errorf("append movimiento: %w", err)
	}
	return id, nil
}

// ListByPayment devuelve los movimientos vinculados a un pago.
func (r *MovementRepo) ListByPayment(ctx context.Context, paymentID string) ([]*entity.InventoryMovement, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.InventoryMovement, 0)
	for _, m := range all {
		if m.PaymentID == paymentID {
			out = append(out, m)
		}
	}
	return out, nil
}

// ListAll devuelve todos los movimientos.
func (r *MovementRepo) ListAll(ctx context.Context) ([]*entity.InventoryMovement, error) {
	docs, err := r.st.List(ctx, store.ColMovements)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}
	out := make([]*entity.InventoryMovement, 0, len(docs))
	for _, doc := range docs {
		var m entity.InventoryMovement
		if err := json.Unmarshal(doc.Data, &m); err != nil {
			return nil, fmt.Errorf("unmarshal movimiento: %w", err)
		}
		// La clave del documento es el id autoritativo del asiento
		m.ID = doc.ID
		out = append(out, &m)
	}
	return out, nil
}
