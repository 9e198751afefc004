package repository

import (
	"context"

	"github.com/tu-usuario/taller-ops/internal/domain/entity"
)

// MovementRepository define el puerto del libro de movimientos (append-only).
type MovementRepository interface {
	Append(ctx context.Context, m *entity.InventoryMovement) (string, error)
	ListByPayment(ctx context.Context, paymentID string) ([]*entity.InventoryMovement, error)
	ListAll(ctx context.Context) ([]*entity.InventoryMovement, error)
}
