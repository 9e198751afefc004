package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/taller-ops/internal/domain/entity"
)

// La tabla de transiciones es cerrada: pending es el único estado con
// salidas y todo lo demás es terminal.
func TestCanTransition(t *testing.T) {
	statuses := []string{
		entity.PaymentStatusPending,
		entity.PaymentStatusApproved,
		entity.PaymentStatusRejected,
		entity.PaymentStatusCancelled,
	}

	for _, to := range statuses {
		if to == entity.PaymentStatusPending {
			assert.False(t, entity.CanTransition(entity.PaymentStatusPending, to), "pending no vuelve a pending")
			continue
		}
		assert.True(t, entity.CanTransition(entity.PaymentStatusPending, to), "pending → %s", to)
	}

	for _, from := range statuses[1:] {
		for _, to := range statuses {
			assert.False(t, entity.CanTransition(from, to), "%s es terminal", from)
		}
	}
}

func TestTerminal(t *testing.T) {
	assert.False(t, (&entity.Payment{Status: entity.PaymentStatusPending}).Terminal())
	assert.True(t, (&entity.Payment{Status: entity.PaymentStatusApproved}).Terminal())
	assert.True(t, (&entity.Payment{Status: entity.PaymentStatusRejected}).Terminal())
	assert.True(t, (&entity.Payment{Status: entity.PaymentStatusCancelled}).Terminal())
}

func TestLink(t *testing.T) {
	assert.Equal(t, entity.LinkAppointment, (&entity.Payment{AppointmentID: "apt-1"}).Link())
	assert.Equal(t, entity.LinkOrder, (&entity.Payment{OrderID: "ord-1"}).Link())
	assert.Equal(t, entity.LinkNone, (&entity.Payment{}).Link())
}

func TestValidMethod(t *testing.T) {
	for _, m := range []string{
		entity.MethodCash, entity.MethodTransfer, entity.MethodCard,
		entity.MethodWallet, entity.MethodCuentaDNI, entity.MethodModo,
	} {
		assert.True(t, entity.ValidMethod(m), m)
	}
	assert.False(t, entity.ValidMethod("bitcoin"))
	assert.False(t, entity.ValidMethod(""))
}
