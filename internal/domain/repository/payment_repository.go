package repository

import (
	"context"

	"github.com/tu-usuario/taller-ops/internal/domain/entity"
)

// PaymentRepository define el puerto de persistencia para Payment (DIP).
// Los pagos nunca se borran; Save sobreescribe el registro completo.
type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
	GetByID(ctx context.Context, id string) (*entity.Payment, error)
	Save(ctx context.Context, p *entity.Payment) error
	ListAll(ctx context.Context) ([]*entity.Payment, error)
}
