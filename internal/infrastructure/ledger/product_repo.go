package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tu-usuario/taller-ops/internal/domain/entity"
	"github.com/tu-usuario/taller-ops/internal/domain/repository"
	"github.com/tu-usuario/taller-ops/internal/store"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo adaptador de productos sobre el Ledger Store.
type ProductRepo struct {
	st store.Store
}

// NewProductRepository construye el adaptador.
func NewProductRepository(st store.Store) *ProductRepo {
	return &ProductRepo{st: st}
}

// Create persiste un producto nuevo.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	if err := r.st.Set(ctx, store.Path(store.ColProducts, p.ID), p); err != nil {
		return fmt.Errorf("crear producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, _, err := r.GetVersioned(ctx, id)
	return p, err
}

// GetVersioned obtiene el producto junto con la versión del documento,
// para la escritura condicional posterior (SaveIf).
func (r *ProductRepo) GetVersioned(ctx context.Context, id string) (*entity.Product, int64, error) {
	doc, err := r.st.Get(ctx, store.Path(store.ColProducts, id))
	if err != nil {
		return nil, 0, fmt.Errorf("get producto: %w", err)
	}
	if doc == nil {
		return nil, 0, nil
	}
	var p entity.Product
	if err := json.Unmarshal(doc.Data, &p); err != nil {
		return nil, 0, fmt.Errorf("unmarshal producto: %w", err)
	}
	return &p, doc.Version, nil
}

// SaveIf escribe el producto solo si la versión no cambió desde la lectura.
// Devuelve domain.ErrConflict si otro escritor ganó la carrera.
func (r *ProductRepo) SaveIf(ctx context.Context, p *entity.Product, expectedVersion int64) error {
	return r.st.SetIf(ctx, store.Path(store.ColProducts, p.ID), p, expectedVersion)
}

// ListAll devuelve todos los productos.
func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	docs, err := r.st.List(ctx, store.ColProducts)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	out := make([]*entity.Product, 0, len(docs))
	for _, doc := range docs {
		var p entity.Product
		if err := json.Unmarshal(doc.Data, &p); err != nil {
			return nil, fmt.Errorf("unmarshal producto: %w", err)
		}
		out = append(out, &p)
	}
	return out, nil
}
