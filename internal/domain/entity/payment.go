package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del pago. El único estado no terminal es pending.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusApproved  = "approved"
	PaymentStatusRejected  = "rejected"
	PaymentStatusCancelled = "cancelled"
)

// Medios de pago aceptados en el mostrador.
const (
	MethodCash      = "efectivo"
	MethodTransfer  = "transferencia"
	MethodCard      = "tarjeta"
	MethodWallet    = "mercadopago"
	MethodCuentaDNI = "cuenta_dni"
	MethodModo      = "modo"
)

// allowedTransitions tabla cerrada de transiciones: solo pending tiene salidas.
var allowedTransitions = map[string][]string{
	PaymentStatusPending: {PaymentStatusApproved, PaymentStatusRejected, PaymentStatusCancelled},
}

// ValidStatus indica si s pertenece al conjunto cerrado de estados.
func ValidStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusApproved, PaymentStatusRejected, PaymentStatusCancelled:
		return true
	}
	return false
}

// ValidMethod indica si m es un medio de pago aceptado.
func ValidMethod(m string) bool {
	switch m {
	case MethodCash, MethodTransfer, MethodCard, MethodWallet, MethodCuentaDNI, MethodModo:
		return true
	}
	return false
}

// CanTransition indica si el pago en estado from admite pasar a to.
func CanTransition(from, to string) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// LinkKind discrimina a qué está atado un pago.
type LinkKind string

const (
	LinkAppointment LinkKind = "appointment" // turno de servicio (consume stock)
	LinkOrder       LinkKind = "order"       // pedido mayorista (repone stock)
	LinkNone        LinkKind = ""
)

// Payment registro de pago del taller. Nunca se borra; solo muta vía el
// ledger de pagos (Transition), que sobreescribe UpdatedAt y deja la
// trazabilidad en inventory_movements.
type Payment struct {
	ID                string          `json:"id"`
	AppointmentID     string          `json:"linkedAppointmentId,omitempty"`
	OrderID           string          `json:"linkedOrderId,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	Method            string          `json:"method"`
	Status            string          `json:"status"`
	ServiceKey        string          `json:"serviceKey,omitempty"` // dimensión de negocio (tipo de servicio)
	ExternalReference string          `json:"externalReference"`
	ProviderPaymentID string          `json:"providerPaymentId,omitempty"`
	ProviderStatus    string          `json:"providerStatus,omitempty"`
	ReceivedAt        *time.Time      `json:"receivedAt,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// Link devuelve la rama explícita del pago según el vínculo cargado.
// Invariante del registro: exactamente uno de AppointmentID/OrderID está seteado.
func (p *Payment) Link() LinkKind {
	switch {
	case p.AppointmentID != "":
		return LinkAppointment
	case p.OrderID != "":
		return LinkOrder
	}
	return LinkNone
}

// Terminal indica si el pago ya no admite transiciones.
func (p *Payment) Terminal() bool {
	return len(allowedTransitions[p.Status]) == 0
}
