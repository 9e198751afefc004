package dto

import "github.com/shopspring/decimal"

// RegisterPaymentRequest body para POST /api/payments.
type RegisterPaymentRequest struct {
	AppointmentID     string          `json:"linkedAppointmentId,omitempty"`
	OrderID           string          `json:"linkedOrderId,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	Method            string          `json:"method"`
	ServiceKey        string          `json:"serviceKey,omitempty"`
	ExternalReference string          `json:"externalReference,omitempty"`
}

// TransitionRequest body para POST /api/payments/:id/transition
// (liquidación manual en mostrador: efectivo, transferencia).
type TransitionRequest struct {
	Status string `json:"status"`
}
