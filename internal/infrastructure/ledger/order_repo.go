package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tu-usuario/taller-ops/internal/domain/entity"
	"github.com/tu-usuario/taller-ops/internal/domain/repository"
	"github.com/tu-usuario/taller-ops/internal/store"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo adaptador de pedidos sobre el Ledger Store.
type OrderRepo struct {
	st store.Store
}

// NewOrderRepository construye el adaptador.
func NewOrderRepository(st store.Store) *OrderRepo {
	return &OrderRepo{st: st}
}

// Create persiste un pedido nuevo.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	if err := r.st.Set(ctx, store.Path(store.ColOrders, o.ID), o); err != nil {
		return fmt.Errorf("crear pedido: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID; (nil, nil) si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	doc, err := r.st.Get(ctx, store.Path(store.ColOrders, id))
	if err != nil {
		return nil, fmt.Errorf("get pedido: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	var o entity.Order
	if err := json.Unmarshal(doc.Data, &o); err != nil {
		return nil, fmt.Errorf("unmarshal pedido: %w", err)
	}
	return &o, nil
}
