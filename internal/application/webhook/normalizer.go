// Package webhook normaliza los callbacks del proveedor de pagos: mapea el
// estado reportado al enum interno, deduplica reentregas y delega la
// transición en el ledger de pagos.
package webhook

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/taller-ops/internal/application/payments"
	"github.com/tu-usuario/taller-ops/internal/domain"
	"github.com/tu-usuario/taller-ops/internal/domain/entity"
	"github.com/tu-usuario/taller-ops/internal/domain/repository"
	"github.com/tu-usuario/taller-ops/pkg/logger"
)

// Event envoltorio entregado por el proveedor.
type Event struct {
	Type string    `json:"type"`
	Data EventData `json:"data"`
}

// EventData payload del evento.
type EventData struct {
	ID                string `json:"id"`
	ExternalReference string `json:"external_reference"`
	Status            string `json:"status"`
}

// statusMap tabla fija proveedor → enum interno. Todo estado desconocido se
// trata como pending (sin transición).
var statusMap = map[string]string{
	"approved":  entity.PaymentStatusApproved,
	"rejected":  entity.PaymentStatusRejected,
	"cancelled": entity.PaymentStatusCancelled,
}

// Normalizer traduce eventos del proveedor a transiciones del ledger.
type Normalizer struct {
	ledger *payments.Ledger
	events repository.WebhookEventRepository
	log    *logger.Logger
}

// NewNormalizer construye el normalizador.
func NewNormalizer(ledger *payments.Ledger, events repository.WebhookEventRepository, log *logger.Logger) *Normalizer {
	return &Normalizer{ledger: ledger, events: events, log: log}
}

// Handle procesa un evento entregado por el proveedor.
//
// Los proveedores entregan at-least-once: antes de transicionar se consulta
// la tabla de deduplicación con la clave <id proveedor>:<estado destino>; una
// reentrega ya procesada es un no-op. La marca se escribe recién después de
// una transición exitosa, así una falla transitoria puede resolverse con la
// próxima reentrega del proveedor.
func (n *Normalizer) Handle(ctx context.Context, ev Event) error {
	switch ev.Type {
	case "preference":
		// Alta de preferencia de checkout: se registra, no transiciona nada.
		n.log.Info().Str("data_id", ev.Data.ID).Msg("evento de preferencia recibido")
		return nil
	case "payment":
		return n.handlePayment(ctx, ev)
	}
	return fmt.Errorf("tipo de evento %q: %w", ev.Type, domain.ErrInvalidInput)
}

func (n *Normalizer) handlePayment(ctx context.Context, ev Event) error {
	paymentID := ev.Data.ExternalReference
	if paymentID == "" {
		paymentID = ev.Data.ID
	}
	if paymentID == "" {
		return fmt.Errorf("evento de pago sin referencia: %w", domain.ErrInvalidInput)
	}

	status, ok := statusMap[ev.Data.Status]
	if !ok {
		// pending o estado desconocido: transición nula, solo se loguea.
		n.log.Info().
			Str("payment_id", paymentID).
			Str("provider_status", ev.Data.Status).
			Msg("estado del proveedor sin transición")
		return nil
	}

	dedupeKey := dedupeKey(ev, status)
	seen, err := n.events.Seen(ctx, dedupeKey)
	if err != nil {
		return err
	}
	if seen {
		n.log.Info().
			Str("payment_id", paymentID).
			Str("dedupe_key", dedupeKey).
			Msg("webhook reentregado; ya procesado")
		return nil
	}

	now := time.Now()
	_, err = n.ledger.Transition(ctx, paymentID, status, payments.Extra{
		ProviderPaymentID: ev.Data.ID,
		ProviderStatus:    ev.Data.Status,
		ReceivedAt:        &now,
	})
	if err != nil {
		return err
	}

	if err := n.events.MarkSeen(ctx, dedupeKey); err != nil {
		// La transición ya corrió; una marca perdida solo reabre la ventana
		// de dedupe y la tabla de transiciones frena el replay igual.
		n.log.Warn().Err(err).Str("dedupe_key", dedupeKey).Msg("no se pudo marcar el evento")
	}
	return nil
}

// dedupeKey arma la clave de deduplicación: id del proveedor + estado destino.
func dedupeKey(ev Event, status string) string {
	id := ev.Data.ID
	if id == "" {
		id = ev.Data.ExternalReference
	}
	return id + ":" + status
}
