package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tu-usuario/taller-ops/internal/domain/entity"
	"github.com/tu-usuario/taller-ops/internal/domain/repository"
	"github.com/tu-usuario/taller-ops/internal/store"
)

var _ repository.AppointmentRepository = (*AppointmentRepo)(nil)

// AppointmentRepo adaptador de turnos sobre el Ledger Store.
type AppointmentRepo struct {
	st store.Store
}

// NewAppointmentRepository construye el adaptador.
func NewAppointmentRepository(st store.Store) *AppointmentRepo {
	return &AppointmentRepo{st: st}
}

// Create persiste un turno nuevo.
func (r *AppointmentRepo) Create(ctx context.Context, a *entity.Appointment) error {
	if err := r.st.Set(ctx, store.Path(store.ColAppointments, a.ID), a); err != nil {
		return fmt.Errorf("crear turno: %w", err)
	}
	return nil
}

// GetByID obtiene un turno por ID; (nil, nil) si no existe.
func (r *AppointmentRepo) GetByID(ctx context.Context, id string) (*entity.Appointment, error) {
	doc, err := r.st.Get(ctx, store.Path(store.ColAppointments, id))
	if err != nil {
		return nil, fmt.Errorf("get turno: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	var a entity.Appointment
	if err := json.Unmarshal(doc.Data, &a); err != nil {
		return nil, fmt.Errorf("unmarshal turno: %w", err)
	}
	return &a, nil
}

// Save sobreescribe el registro completo del turno.
func (r *AppointmentRepo) Save(ctx context.Context, a *entity.Appointment) error {
	if err := r.st.Set(ctx, store.Path(store.ColAppointments, a.ID), a); err != nil {
		return fmt.Errorf("guardar turno: %w", err)
	}
	return nil
}
