// Package catalog contiene la consulta de productos para la consola.
package catalog

import (
	"context"

	"github.com/tu-usuario/taller-ops/internal/domain"
	"github.com/tu-usuario/taller-ops/internal/domain/entity"
	"github.com/tu-usuario/taller-ops/internal/domain/repository"
)

// UseCase consultas de catálogo. El stock que devuelve es el vigente en el
// store; mutarlo es exclusivo del reconciliador.
type UseCase struct {
	products repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(products repository.ProductRepository) *UseCase {
	return &UseCase{products: products}
}

// List devuelve todos los productos.
func (uc *UseCase) List(ctx context.Context) ([]*entity.Product, error) {
	return uc.products.ListAll(ctx)
}

// Get obtiene un producto; domain.ErrNotFound si no existe.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// LowStock devuelve los productos en o por debajo de su mínimo.
func (uc *UseCase) LowStock(ctx context.Context) ([]*entity.Product, error) {
	all, err := uc.products.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Product, 0)
	for _, p := range all {
		if p.Stock <= p.StockMinimum {
			out = append(out, p)
		}
	}
	return out, nil
}
