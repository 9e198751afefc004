package entity

import "time"

// OrderItem renglón de un pedido mayorista.
type OrderItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Order pedido de reposición a proveedor. Al aprobarse su pago, cada renglón
// genera un movimiento de entrada en inventario.
type Order struct {
	ID        string      `json:"id"`
	Supplier  string      `json:"supplier"`
	Items     []OrderItem `json:"items"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
