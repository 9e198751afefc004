package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto o insumo del taller.
// Stock lo muta únicamente el reconciliador de inventario, siempre en la misma
// operación que registra el movimiento correspondiente.
type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Stock        int             `json:"stock"`        // nunca negativo
	StockMinimum int             `json:"stockMinimum"` // umbral de reposición
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}
