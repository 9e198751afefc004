package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementInbound  = "inbound"  // entrada (reposición por pedido)
	MovementOutbound = "outbound" // salida (consumo por servicio)
)

// InventoryMovement asiento inmutable del libro de inventario.
// Lo crea exclusivamente el reconciliador; nunca se edita ni se borra.
type InventoryMovement struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Kind      string    `json:"kind"`
	Quantity  int       `json:"quantity"` // siempre positivo; el signo lo da Kind
	Reason    string    `json:"reason"`
	PaymentID string    `json:"linkedPaymentId"`
	Timestamp time.Time `json:"timestamp"`
}
