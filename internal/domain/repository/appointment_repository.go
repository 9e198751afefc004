package repository

import (
	"context"

	"github.com/tu-usuario/taller-ops/internal/domain/entity"
)

// AppointmentRepository define el puerto de persistencia para turnos.
type AppointmentRepository interface {
	Create(ctx context.Context, a *entity.Appointment) error
	GetByID(ctx context.Context, id string) (*entity.Appointment, error)
	Save(ctx context.Context, a *entity.Appointment) error
}
