package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/taller-ops/internal/domain/repository"
	"github.com/tu-usuario/taller-ops/internal/store"
)

var _ repository.WebhookEventRepository = (*WebhookEventRepo)(nil)

// WebhookEventRepo tabla de deduplicación de webhooks sobre el Ledger Store.
type WebhookEventRepo struct {
	st store.Store
}

// NewWebhookEventRepository construye el adaptador.
func NewWebhookEventRepository(st store.Store) *WebhookEventRepo {
	return &WebhookEventRepo{st: st}
}

type webhookMark struct {
	ProcessedAt time.Time `json:"processedAt"`
}

// Seen indica si la clave de evento ya fue procesada.
func (r *WebhookEventRepo) Seen(ctx context.Context, key string) (bool, error) {
	doc, err := r.st.Get(ctx, store.Path(store.ColWebhookEvents, key))
	if err != nil {
		return false, fmt.Errorf("get evento webhook: %w", err)
	}
	return doc != nil, nil
}

// MarkSeen registra la clave como procesada.
func (r *WebhookEventRepo) MarkSeen(ctx context.Context, key string) error {
	mark := webhookMark{ProcessedAt: time.Now()}
	if err := r.st.Set(ctx, store.Path(store.ColWebhookEvents, key), mark); err != nil {
		return fmt.Errorf("marcar evento webhook: %w", err)
	}
	return nil
}
