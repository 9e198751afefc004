package repository

import (
	"context"

	"github.com/tu-usuario/taller-ops/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product.
// GetVersioned/SaveIf son el par para el read-modify-write optimista de stock:
// leer producto+versión, calcular el nuevo stock y escribir condicionado a la
// versión leída; ante domain.ErrConflict se reintenta el ciclo completo.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetVersioned(ctx context.Context, id string) (*entity.Product, int64, error)
	SaveIf(ctx context.Context, p *entity.Product, expectedVersion int64) error
	ListAll(ctx context.Context) ([]*entity.Product, error)
}
