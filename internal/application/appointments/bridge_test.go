package appointments_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/taller-ops/internal/application/appointments"
	"github.com/tu-usuario/taller-ops/internal/domain/entity"
	"github.com/tu-usuario/taller-ops/internal/infrastructure/ledger"
	"github.com/tu-usuario/taller-ops/internal/store/memory"
	"github.com/tu-usuario/taller-ops/pkg/logger"
)

func TestConfirm_MarcaElTurnoComoConfirmado(t *testing.T) {
	ctx := context.Background()
	repo := ledger.NewAppointmentRepository(memory.New())
	bridge := appointments.NewStatusBridge(repo, logger.Nop())

	created := time.Now().Add(-time.Hour)
	require.NoError(t, repo.Create(ctx, &entity.Appointment{
		ID: "apt-1", CustomerName: "Carlos Ruiz", Date: "2026-09-10", TimeSlot: "11:00",
		ServiceKey: "cambio_aceite", Status: entity.AppointmentPending,
		CreatedAt: created, UpdatedAt: created,
	}))

	bridge.Confirm(ctx, "apt-1")

	appt, err := repo.GetByID(ctx, "apt-1")
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentConfirmed, appt.Status)
	assert.True(t, appt.UpdatedAt.After(created))
}

// Un turno inexistente se loguea y nada más: la aprobación del pago no
// depende de que la agenda esté consistente.
func TestConfirm_TurnoInexistenteEsSilencioso(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	repo := ledger.NewAppointmentRepository(st)
	bridge := appointments.NewStatusBridge(repo, logger.Nop())

	assert.NotPanics(t, func() {
		bridge.Confirm(ctx, "apt-fantasma")
	})

	appt, err := repo.GetByID(ctx, "apt-fantasma")
	require.NoError(t, err)
	assert.Nil(t, appt, "no se crea nada por el camino")
}

func TestConfirm_EsIdempotenteSobreUnConfirmado(t *testing.T) {
	ctx := context.Background()
	repo := ledger.NewAppointmentRepository(memory.New())
	bridge := appointments.NewStatusBridge(repo, logger.Nop())

	now := time.Now()
	require.NoError(t, repo.Create(ctx, &entity.Appointment{
		ID: "apt-2", CustomerName: "Lucía Torres", Date: "2026-09-11", TimeSlot: "15:00",
		ServiceKey: "service_completo", Status: entity.AppointmentPending,
		CreatedAt: now, UpdatedAt: now,
	}))

	bridge.Confirm(ctx, "apt-2")
	bridge.Confirm(ctx, "apt-2")

	appt, _ := repo.GetByID(ctx, "apt-2")
	assert.Equal(t, entity.AppointmentConfirmed, appt.Status)
}
