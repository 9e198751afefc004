package repository

import "context"

// WebhookEventRepository tabla de deduplicación de webhooks: los proveedores
// entregan at-least-once, así que cada evento procesado queda marcado por su
// clave (id del proveedor + estado destino) y las reentregas son no-ops.
type WebhookEventRepository interface {
	Seen(ctx context.Context, key string) (bool, error)
	MarkSeen(ctx context.Context, key string) error
}
