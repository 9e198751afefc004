package dto

import "github.com/tu-usuario/taller-ops/internal/domain/entity"

// CreateAppointmentRequest body para POST /api/appointments.
type CreateAppointmentRequest struct {
	CustomerName string `json:"customerName"`
	Vehicle      string `json:"vehicle,omitempty"`
	Date         string `json:"date"`
	TimeSlot     string `json:"timeSlot"`
	ServiceKey   string `json:"serviceKey"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	Supplier string             `json:"supplier"`
	Items    []entity.OrderItem `json:"items"`
}
