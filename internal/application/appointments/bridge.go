// Package appointments contiene el puente de estado de turnos: la única
// operación que el ciclo de pagos necesita sobre la agenda.
package appointments

import (
	"context"
	"time"

	"github.com/tu-usuario/taller-ops/internal/domain/entity"
	"github.com/tu-usuario/taller-ops/internal/domain/repository"
	"github.com/tu-usuario/taller-ops/pkg/logger"
)

// StatusBridge confirma turnos cuando su pago vinculado se aprueba.
// Operación angosta y sin más efectos: no manda mensajes al cliente
// (eso sigue siendo responsabilidad del flujo de reservas).
type StatusBridge struct {
	appointments repository.AppointmentRepository
	log          *logger.Logger
}

// NewStatusBridge construye el puente.
func NewStatusBridge(appointments repository.AppointmentRepository, log *logger.Logger) *StatusBridge {
	return &StatusBridge{appointments: appointments, log: log}
}

// Confirm marca el turno como confirmado y actualiza su timestamp.
// Falla en silencio: un turno inexistente o un error del store se loguean
// pero no interrumpen la cascada de aprobación del pago.
func (b *StatusBridge) Confirm(ctx context.Context, appointmentID string) {
	appt, err := b.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		b.log.Warn().Err(err).Str("appointment_id", appointmentID).Msg("no se pudo leer el turno")
		return
	}
	if appt == nil {
		b.log.Warn().Str("appointment_id", appointmentID).Msg("turno inexistente; no se confirma")
		return
	}

	appt.Status = entity.AppointmentConfirmed
	appt.UpdatedAt = time.Now()
	if err := b.appointments.Save(ctx, appt); err != nil {
		b.log.Warn().Err(err).Str("appointment_id", appointmentID).Msg("no se pudo confirmar el turno")
		return
	}
	b.log.Info().Str("appointment_id", appointmentID).Msg("turno confirmado")
}
