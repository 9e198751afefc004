package entity

import "time"

// Estados del turno.
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCancelled = "cancelled"
)

// Appointment turno de servicio agendado.
type Appointment struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customerName"`
	Vehicle      string    `json:"vehicle,omitempty"`
	Date         string    `json:"date"`     // YYYY-MM-DD
	TimeSlot     string    `json:"timeSlot"` // ej. "10:30"
	ServiceKey   string    `json:"serviceKey"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
