// Package payments contiene el ledger de pagos: es el dueño de los registros
// de pago, hace cumplir la máquina de estados y dispara la cascada de
// aprobación (confirmación de turno, reconciliación de inventario y
// notificación al usuario).
package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/taller-ops/internal/application/appointments"
	"github.com/tu-usuario/taller-ops/internal/application/inventory"
	"github.com/tu-usuario/taller-ops/internal/domain"
	"github.com/tu-usuario/taller-ops/internal/domain/entity"
	"github.com/tu-usuario/taller-ops/internal/domain/repository"
	"github.com/tu-usuario/taller-ops/internal/notify"
	"github.com/tu-usuario/taller-ops/pkg/logger"
)

// RegisterInput datos para registrar un pago. Exactamente uno de
// AppointmentID/OrderID debe estar cargado.
type RegisterInput struct {
	AppointmentID     string
	OrderID           string
	Amount            decimal.Decimal
	Method            string
	ServiceKey        string
	ExternalReference string
}

// Extra campos reportados por el proveedor que se mergean en la transición.
type Extra struct {
	ProviderPaymentID string
	ProviderStatus    string
	ReceivedAt        *time.Time
}

// Ledger caso de uso dueño del ciclo de vida de pagos.
type Ledger struct {
	payments   repository.PaymentRepository
	appts      repository.AppointmentRepository
	orders     repository.OrderRepository
	bridge     *appointments.StatusBridge
	reconciler *inventory.Reconciler
	queue      *notify.Queue
	log        *logger.Logger
}

// NewLedger construye el ledger con sus colaboradores de la cascada.
func NewLedger(
	payments repository.PaymentRepository,
	appts repository.AppointmentRepository,
	orders repository.OrderRepository,
	bridge *appointments.StatusBridge,
	reconciler *inventory.Reconciler,
	queue *notify.Queue,
	log *logger.Logger,
) *Ledger {
	return &Ledger{
		payments:   payments,
		appts:      appts,
		orders:     orders,
		bridge:     bridge,
		reconciler: reconciler,
		queue:      queue,
		log:        log,
	}
}

// Register crea un pago en estado pending. Valida monto positivo, medio de
// pago conocido y exactamente un vínculo (turno o pedido); ante entrada
// inválida no escribe nada. ExternalReference por defecto es el id generado,
// que es lo que el flujo de checkout manda al proveedor para correlacionar
// el callback.
func (l *Ledger) Register(ctx context.Context, in RegisterInput) (*entity.Payment, error) {
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("monto debe ser positivo: %w", domain.ErrInvalidInput)
	}
	if !entity.ValidMethod(in.Method) {
		return nil, fmt.Errorf("medio de pago %q: %w", in.Method, domain.ErrInvalidInput)
	}
	hasAppt := in.AppointmentID != ""
	hasOrder := in.OrderID != ""
	if hasAppt == hasOrder {
		return nil, fmt.Errorf("debe vincularse exactamente un turno o un pedido: %w", domain.ErrInvalidInput)
	}

	now := time.Now()
	p := &entity.Payment{
		ID:                uuid.New().String(),
		AppointmentID:     in.AppointmentID,
		OrderID:           in.OrderID,
		Amount:            in.Amount,
		Method:            in.Method,
		Status:            entity.PaymentStatusPending,
		ServiceKey:        in.ServiceKey,
		ExternalReference: in.ExternalReference,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if p.ExternalReference == "" {
		p.ExternalReference = p.ID
	}

	if err := l.payments.Create(ctx, p); err != nil {
		return nil, err
	}
	l.log.Info().
		Str("payment_id", p.ID).
		Str("method", p.Method).
		Str("link", string(p.Link())).
		Msg("pago registrado")
	return p, nil
}

// Transition aplica newStatus al pago y dispara los efectos correspondientes.
//
// Solo pending admite transiciones; sobre un estado terminal devuelve
// domain.ErrInvalidTransition sin tocar el registro ni el inventario.
// En aprobación la cascada corre sincrónicamente: confirmación del turno,
// consumo (vínculo a turno) o reposición (vínculo a pedido) y el encolado de
// la notificación de éxito. Rechazo y cancelación solo notifican.
func (l *Ledger) Transition(ctx context.Context, paymentID, newStatus string, extra Extra) (*entity.Payment, error) {
	if !entity.ValidStatus(newStatus) {
		return nil, fmt.Errorf("estado %q: %w", newStatus, domain.ErrInvalidInput)
	}

	p, err := l.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("pago %s: %w", paymentID, domain.ErrNotFound)
	}
	if !entity.CanTransition(p.Status, newStatus) {
		return nil, fmt.Errorf("pago %s en estado %s no admite %s: %w",
			paymentID, p.Status, newStatus, domain.ErrInvalidTransition)
	}

	p.Status = newStatus
	if extra.ProviderPaymentID != "" {
		p.ProviderPaymentID = extra.ProviderPaymentID
	}
	if extra.ProviderStatus != "" {
		p.ProviderStatus = extra.ProviderStatus
	}
	if extra.ReceivedAt != nil {
		p.ReceivedAt = extra.ReceivedAt
	}
	p.UpdatedAt = time.Now()

	if err := l.payments.Save(ctx, p); err != nil {
		return nil, err
	}
	l.log.Info().
		Str("payment_id", p.ID).
		Str("status", p.Status).
		Msg("transición de pago aplicada")

	switch newStatus {
	case entity.PaymentStatusApproved:
		l.applyApproval(ctx, p)
	case entity.PaymentStatusRejected:
		l.queue.Enqueue(notify.Item{
			Kind:  notify.KindError,
			Title: "Pago rechazado",
			Options: notify.Options{
				Body: fmt.Sprintf("El pago de $%s fue rechazado por el proveedor", p.Amount.StringFixed(2)),
				Tag:  p.ID,
			},
		})
	case entity.PaymentStatusCancelled:
		l.queue.Enqueue(notify.Item{
			Kind:  notify.KindWarning,
			Title: "Pago cancelado",
			Options: notify.Options{
				Body: fmt.Sprintf("El pago de $%s fue cancelado", p.Amount.StringFixed(2)),
				Tag:  p.ID,
			},
		})
	}

	return p, nil
}

// applyApproval corre la cascada de un pago aprobado según su vínculo.
func (l *Ledger) applyApproval(ctx context.Context, p *entity.Payment) {
	switch p.Link() {
	case entity.LinkAppointment:
		l.bridge.Confirm(ctx, p.AppointmentID)

		serviceKey := p.ServiceKey
		if serviceKey == "" {
			// Flujos de reserva viejos no cargan el servicio en el pago;
			// se toma del turno vinculado.
			if appt, err := l.appts.GetByID(ctx, p.AppointmentID); err == nil && appt != nil {
				serviceKey = appt.ServiceKey
			}
		}
		if _, err := l.reconciler.ConsumeForService(ctx, serviceKey, p.ID); err != nil {
			l.log.Warn().Err(err).Str("payment_id", p.ID).Msg("consumo de inventario incompleto")
		}

	case entity.LinkOrder:
		order, err := l.orders.GetByID(ctx, p.OrderID)
		if err != nil || order == nil {
			l.log.Warn().Err(err).
				Str("payment_id", p.ID).
				Str("order_id", p.OrderID).
				Msg("pedido no disponible; no se repone stock")
			break
		}
		if _, err := l.reconciler.ReplenishFromOrder(ctx, order.Items, p.ID); err != nil {
			l.log.Warn().Err(err).Str("payment_id", p.ID).Msg("reposición de inventario incompleta")
		}
	}

	l.queue.Enqueue(notify.Item{
		Kind:  notify.KindSuccess,
		Title: "Pago aprobado",
		Options: notify.Options{
			Body: fmt.Sprintf("Se acreditó el pago de $%s", p.Amount.StringFixed(2)),
			Tag:  p.ID,
			URL:  "/pagos/" + p.ID,
		},
	})
}

// ListAll devuelve todos los pagos.
func (l *Ledger) ListAll(ctx context.Context) ([]*entity.Payment, error) {
	return l.payments.ListAll(ctx)
}

// ListByStatus filtra los pagos por estado.
func (l *Ledger) ListByStatus(ctx context.Context, status string) ([]*entity.Payment, error) {
	if !entity.ValidStatus(status) {
		return nil, fmt.Errorf("estado %q: %w", status, domain.ErrInvalidInput)
	}
	return l.filter(ctx, func(p *entity.Payment) bool { return p.Status == status })
}

// ListByMethod filtra los pagos por medio de pago.
func (l *Ledger) ListByMethod(ctx context.Context, method string) ([]*entity.Payment, error) {
	if !entity.ValidMethod(method) {
		return nil, fmt.Errorf("medio de pago %q: %w", method, domain.ErrInvalidInput)
	}
	return l.filter(ctx, func(p *entity.Payment) bool { return p.Method == method })
}

func (l *Ledger) filter(ctx context.Context, keep func(*entity.Payment) bool) ([]*entity.Payment, error) {
	all, err := l.payments.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Payment, 0, len(all))
	for _, p := range all {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out, nil
}
