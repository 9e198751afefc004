package repository

import (
	"context"

	"github.com/tu-usuario/taller-ops/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para pedidos mayoristas.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
}
