package webhook_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/taller-ops/internal/application/appointments"
	"github.com/tu-usuario/taller-ops/internal/application/inventory"
	"github.com/tu-usuario/taller-ops/internal/application/payments"
	"github.com/tu-usuario/taller-ops/internal/application/webhook"
	"github.com/tu-usuario/taller-ops/internal/domain"
	"github.com/tu-usuario/taller-ops/internal/domain/entity"
	"github.com/tu-usuario/taller-ops/internal/infrastructure/ledger"
	"github.com/tu-usuario/taller-ops/internal/notify"
	"github.com/tu-usuario/taller-ops/internal/store/memory"
	"github.com/tu-usuario/taller-ops/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: normalizador sobre el ledger completo con el store en memoria.
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	normalizer *webhook.Normalizer
	ledgerUC   *payments.Ledger
	payments   *ledger.PaymentRepo
	products   *ledger.ProductRepo
	movements  *ledger.MovementRepo
	appts      *ledger.AppointmentRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := memory.New()
	log := logger.Nop()

	paymentRepo := ledger.NewPaymentRepository(st)
	productRepo := ledger.NewProductRepository(st)
	movementRepo := ledger.NewMovementRepository(st)
	appointmentRepo := ledger.NewAppointmentRepository(st)
	orderRepo := ledger.NewOrderRepository(st)
	eventRepo := ledger.NewWebhookEventRepository(st)

	queue := notify.NewQueue(nil, nil, 0, log)
	t.Cleanup(queue.Close)

	bridge := appointments.NewStatusBridge(appointmentRepo, log)
	reconciler := inventory.NewReconciler(productRepo, movementRepo, nil, log)
	uc := payments.NewLedger(paymentRepo, appointmentRepo, orderRepo, bridge, reconciler, queue, log)

	return &fixture{
		normalizer: webhook.NewNormalizer(uc, eventRepo, log),
		ledgerUC:   uc,
		payments:   paymentRepo,
		products:   productRepo,
		movements:  movementRepo,
		appts:      appointmentRepo,
	}
}

// seedPendingPayment registra un pago pendiente de turno con su inventario.
func (f *fixture) seedPendingPayment(t *testing.T) *entity.Payment {
	t.Helper()
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, f.products.Create(ctx, &entity.Product{
		ID: "oil-5w30", Name: "Aceite 5W30", UnitPrice: decimal.NewFromInt(12000),
		Stock: 10, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, f.products.Create(ctx, &entity.Product{
		ID: "filtro-aceite", Name: "Filtro de aceite", UnitPrice: decimal.NewFromInt(4500),
		Stock: 10, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, f.appts.Create(ctx, &entity.Appointment{
		ID: "apt-1", CustomerName: "Ana Gómez", Date: "2026-09-20", TimeSlot: "09:00",
		ServiceKey: "cambio_aceite", Status: entity.AppointmentPending,
		CreatedAt: now, UpdatedAt: now,
	}))

	p, err := f.ledgerUC.Register(ctx, payments.RegisterInput{
		AppointmentID: "apt-1",
		Amount:        decimal.NewFromInt(18000),
		Method:        entity.MethodWallet,
	})
	require.NoError(t, err)
	return p
}

func paymentEvent(providerID, ref, status string) webhook.Event {
	return webhook.Event{
		Type: "payment",
		Data: webhook.EventData{ID: providerID, ExternalReference: ref, Status: status},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Mapeo de estados
// ──────────────────────────────────────────────────────────────────────────────

func TestHandle_ApprovedTransicionaYCorreLaCascada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedPendingPayment(t)

	err := f.normalizer.Handle(ctx, paymentEvent("mp-555", p.ID, "approved"))
	require.NoError(t, err)

	stored, err := f.payments.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusApproved, stored.Status)
	assert.Equal(t, "mp-555", stored.ProviderPaymentID)
	assert.Equal(t, "approved", stored.ProviderStatus)
	require.NotNil(t, stored.ReceivedAt)

	appt, _ := f.appts.GetByID(ctx, "apt-1")
	assert.Equal(t, entity.AppointmentConfirmed, appt.Status)

	movs, _ := f.movements.ListByPayment(ctx, p.ID)
	assert.Len(t, movs, 2)
}

func TestHandle_RejectedTransicionaSinCascada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedPendingPayment(t)

	err := f.normalizer.Handle(ctx, paymentEvent("mp-556", p.ID, "rejected"))
	require.NoError(t, err)

	stored, _ := f.payments.GetByID(ctx, p.ID)
	assert.Equal(t, entity.PaymentStatusRejected, stored.Status)

	movs, _ := f.movements.ListByPayment(ctx, p.ID)
	assert.Empty(t, movs)
}

// Un estado pending (o desconocido) del proveedor no dispara transición: el
// pago queda como está y el handler responde ok.
func TestHandle_PendingEsUnNoOp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedPendingPayment(t)

	for _, status := range []string{"pending", "in_process", "charged_back"} {
		err := f.normalizer.Handle(ctx, paymentEvent("mp-557", p.ID, status))
		require.NoError(t, err, "estado %q", status)
	}

	stored, _ := f.payments.GetByID(ctx, p.ID)
	assert.Equal(t, entity.PaymentStatusPending, stored.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Deduplicación de reentregas
// ──────────────────────────────────────────────────────────────────────────────

// Los proveedores reentregan: el mismo evento aplicado dos veces deja
// exactamente una cascada (una confirmación, un juego de movimientos).
func TestHandle_ReentregaEsIdempotente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedPendingPayment(t)

	ev := paymentEvent("mp-777", p.ID, "approved")
	require.NoError(t, f.normalizer.Handle(ctx, ev))
	require.NoError(t, f.normalizer.Handle(ctx, ev), "la reentrega no es un error")
	require.NoError(t, f.normalizer.Handle(ctx, ev))

	movs, _ := f.movements.ListByPayment(ctx, p.ID)
	assert.Len(t, movs, 2, "la cascada corrió una sola vez")

	prod, _ := f.products.GetByID(ctx, "oil-5w30")
	assert.Equal(t, 9, prod.Stock)
}

// La clave de dedupe incluye el estado destino: eventos distintos del mismo
// pago no se confunden entre sí (el segundo cae por la tabla de transiciones,
// no por la marca del primero).
func TestHandle_EstadosDistintosUsanClavesDistintas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedPendingPayment(t)

	require.NoError(t, f.normalizer.Handle(ctx, paymentEvent("mp-888", p.ID, "approved")))

	err := f.normalizer.Handle(ctx, paymentEvent("mp-888", p.ID, "cancelled"))
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// Si la transición falla, el evento no se marca como visto: la próxima
// reentrega puede reintentar.
func TestHandle_FallaNoMarcaElEvento(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ev := paymentEvent("mp-999", "pago-inexistente", "approved")
	err := f.normalizer.Handle(ctx, ev)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Se crea el pago y la reentrega ahora sí aplica.
	p := f.seedPendingPayment(t)
	ev.Data.ExternalReference = p.ID
	require.NoError(t, f.normalizer.Handle(ctx, ev))

	stored, _ := f.payments.GetByID(ctx, p.ID)
	assert.Equal(t, entity.PaymentStatusApproved, stored.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolución de referencia y tipos de evento
// ──────────────────────────────────────────────────────────────────────────────

// Sin external_reference se cae al data.id como referencia del pago.
func TestHandle_SinReferenciaUsaDataID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedPendingPayment(t)

	err := f.normalizer.Handle(ctx, paymentEvent(p.ID, "", "approved"))
	require.NoError(t, err)

	stored, _ := f.payments.GetByID(ctx, p.ID)
	assert.Equal(t, entity.PaymentStatusApproved, stored.Status)
}

func TestHandle_PagoSinNingunaReferenciaEsInvalido(t *testing.T) {
	f := newFixture(t)

	err := f.normalizer.Handle(context.Background(), paymentEvent("", "", "approved"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHandle_PreferenceNoTransicionaNada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedPendingPayment(t)

	err := f.normalizer.Handle(ctx, webhook.Event{
		Type: "preference",
		Data: webhook.EventData{ID: "pref-1"},
	})
	require.NoError(t, err)

	stored, _ := f.payments.GetByID(ctx, p.ID)
	assert.Equal(t, entity.PaymentStatusPending, stored.Status)
}

func TestHandle_TipoDesconocidoEsInvalido(t *testing.T) {
	f := newFixture(t)

	err := f.normalizer.Handle(context.Background(), webhook.Event{Type: "subscription"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
