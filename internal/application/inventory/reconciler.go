// Package inventory contiene el reconciliador: traduce un pago aprobado en
// deltas de stock y asientos del libro de movimientos.
package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/tu-usuario/taller-ops/internal/domain"
	"github.com/tu-usuario/taller-ops/internal/domain/entity"
	"github.com/tu-usuario/taller-ops/internal/domain/repository"
	"github.com/tu-usuario/taller-ops/pkg/logger"
)

// ServiceItem consumo de un producto dentro de un servicio.
type ServiceItem struct {
	ProductID string
	Quantity  int
}

// DefaultServiceTable tabla fija servicio → consumo de productos.
var DefaultServiceTable = map[string][]ServiceItem{
	"cambio_aceite": {
		{ProductID: "oil-5w30", Quantity: 1},
		{ProductID: "filtro-aceite", Quantity: 1},
	},
	"service_completo": {
		{ProductID: "oil-5w30", Quantity: 1},
		{ProductID: "filtro-aceite", Quantity: 1},
		{ProductID: "filtro-aire", Quantity: 1},
	},
	"cambio_filtro_aire": {
		{ProductID: "filtro-aire", Quantity: 1},
	},
}

// Reconciler aplica consumos y reposiciones de stock con asiento por cada
// delta. Cada producto se actualiza con un ciclo leer-versión / calcular /
// escritura condicional, reintentando ante conflicto, así dos
// reconciliaciones concurrentes sobre el mismo producto nunca pierden una
// actualización.
type Reconciler struct {
	products  repository.ProductRepository
	movements repository.MovementRepository
	table     map[string][]ServiceItem
	log       *logger.Logger
}

// NewReconciler construye el reconciliador. table nil usa DefaultServiceTable.
func NewReconciler(
	products repository.ProductRepository,
	movements repository.MovementRepository,
	table map[string][]ServiceItem,
	log *logger.Logger,
) *Reconciler {
	if table == nil {
		table = DefaultServiceTable
	}
	return &Reconciler{products: products, movements: movements, table: table, log: log}
}

// ConsumeForService descuenta del stock los productos que consume el servicio
// y asienta un movimiento de salida por cada uno, vinculado al pago.
// Un producto inexistente se saltea con warning (aplicación parcial, sin
// rollback). El stock queda acotado en cero, nunca negativo.
func (r *Reconciler) ConsumeForService(ctx context.Context, serviceKey, paymentID string) ([]string, error) {
	items, ok := r.table[serviceKey]
	if !ok {
		r.log.Warn().
			Str("service", serviceKey).
			Str("payment_id", paymentID).
			Msg("servicio sin tabla de consumo; no se descuenta stock")
		return nil, nil
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		id, err := r.applyDelta(ctx, item.ProductID, -item.Quantity, entity.MovementOutbound,
			"consumo por servicio "+serviceKey, paymentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				r.log.Warn().
					Str("product_id", item.ProductID).
					Str("payment_id", paymentID).
					Msg("producto inexistente; se saltea el renglón")
				continue
			}
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ReplenishFromOrder suma al stock cada renglón del pedido y asienta un
// movimiento de entrada por cada uno, vinculado al pago.
func (r *Reconciler) ReplenishFromOrder(ctx context.Context, items []entity.OrderItem, paymentID string) ([]string, error) {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		id, err := r.applyDelta(ctx, item.ProductID, item.Quantity, entity.MovementInbound,
			"reposición por pedido", paymentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				r.log.Warn().
					Str("product_id", item.ProductID).
					Str("payment_id", paymentID).
					Msg("producto inexistente; se saltea el renglón")
				continue
			}
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// applyDelta aplica un delta de stock a un producto y asienta el movimiento.
// El ciclo reintenta solo ante domain.ErrConflict: en cada vuelta algún
// escritor gana, así que hay progreso garantizado.
func (r *Reconciler) applyDelta(ctx context.Context, productID string, delta int, kind, reason, paymentID string) (string, error) {
	for {
		p, version, err := r.products.GetVersioned(ctx, productID)
		if err != nil {
			return "", err
		}
		if p == nil {
			return "", domain.ErrNotFound
		}

		newStock := p.Stock + delta
		if newStock < 0 {
			newStock = 0
		}
		p.Stock = newStock
		p.UpdatedAt = time.Now()

		err = r.products.SaveIf(ctx, p, version)
		if errors.Is(err, domain.ErrConflict) {
			continue
		}
		if err != nil {
			return "", err
		}
		break
	}

	qty := delta
	if qty < 0 {
		qty = -qty
	}
	mov := &entity.InventoryMovement{
		ProductID: productID,
		Kind:      kind,
		Quantity:  qty,
		Reason:    reason,
		PaymentID: paymentID,
		Timestamp: time.Now(),
	}
	return r.movements.Append(ctx, mov)
}
