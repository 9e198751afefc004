package notify

import (
	"context"
	"sync"
	"time"

	"github.com/tu-usuario/taller-ops/pkg/logger"
)

// Callback recibe cada ítem despachado de su tipo.
type Callback func(Item)

// Subscription identifica una suscripción activa (las funciones no son
// comparables en Go, así que Unsubscribe opera sobre este token).
type Subscription struct {
	kind string
	id   int
}

// Queue cola FIFO de notificaciones con un único drenaje activo.
//
// Enqueue nunca bloquea: si no hay drenaje corriendo arranca uno en una
// goroutine; el flag running garantiza que nunca hay dos drenajes
// concurrentes, lo que da entrega estricta en orden de encolado, un ítem
// completamente procesado (incluida su pausa) antes del siguiente.
//
// Se construye explícitamente y se inyecta; no hay instancia global.
type Queue struct {
	mu      sync.Mutex
	items   []Item
	running bool
	closed  bool
	nextID  int
	subs    map[string]map[int]Callback // kind -> id -> callback
	wg      sync.WaitGroup

	pusher PushSender
	feed   *Feed
	pacing time.Duration
	log    *logger.Logger
}

// NewQueue construye la cola. pusher puede ser nil (push deshabilitado);
// feed puede ser nil (sin feed de toasts); pacing <= 0 desactiva la pausa
// entre entregas (útil en tests).
func NewQueue(pusher PushSender, feed *Feed, pacing time.Duration, log *logger.Logger) *Queue {
	return &Queue{
		subs:   make(map[string]map[int]Callback),
		pusher: pusher,
		feed:   feed,
		pacing: pacing,
		log:    log,
	}
}

// Enqueue agrega el ítem a la cola y arranca el drenaje si no hay uno activo.
func (q *Queue) Enqueue(item Item) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.items = append(q.items, item)
	if !q.running {
		q.running = true
		q.wg.Add(1)
		go q.drain()
	}
}

// Subscribe registra un callback para los ítems de un tipo y devuelve el
// token para darse de baja.
func (q *Queue) Subscribe(kind string, fn Callback) *Subscription {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.nextID++
	if q.subs[kind] == nil {
		q.subs[kind] = make(map[int]Callback)
	}
	q.subs[kind][q.nextID] = fn
	return &Subscription{kind: kind, id: q.nextID}
}

// Unsubscribe da de baja una suscripción. Idempotente.
func (q *Queue) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if m := q.subs[sub.kind]; m != nil {
		delete(m, sub.id)
	}
}

// Close deja de aceptar ítems y espera a que termine el drenaje en curso.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.wg.Wait()
}

// drain procesa la cola de a un ítem hasta vaciarla. Corre en una sola
// goroutine a la vez; la bandera running se apaga con el lock tomado y tras
// verificar que la cola quedó vacía, así un Enqueue simultáneo o bien ve la
// cola corriendo o bien arranca un drenaje nuevo, nunca se pierde un ítem.
func (q *Queue) drain() {
	defer q.wg.Done()
	for {
		q.mu.Lock()
		if len(q.items) == 0 {
			q.running = false
			q.mu.Unlock()
			return
		}
		item := q.items[0]
		q.items = q.items[1:]
		callbacks := q.snapshot(item.Kind)
		q.mu.Unlock()

		q.deliver(item, callbacks)

		if q.pacing > 0 {
			time.Sleep(q.pacing)
		}
	}
}

// snapshot copia los callbacks del tipo para invocarlos sin el lock tomado.
func (q *Queue) snapshot(kind string) []Callback {
	m := q.subs[kind]
	if len(m) == 0 {
		return nil
	}
	out := make([]Callback, 0, len(m))
	for _, fn := range m {
		out = append(out, fn)
	}
	return out
}

// deliver entrega un ítem: push nativo si está habilitado (silencioso si no),
// siempre el toast del feed, y por último los suscriptores del tipo.
// Cualquier falla se loguea y el drenaje continúa con el siguiente ítem.
func (q *Queue) deliver(item Item, callbacks []Callback) {
	if q.pusher != nil && q.pusher.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := q.pusher.Send(ctx, item); err != nil {
			q.log.Warn().Err(err).Str("title", item.Title).Msg("push de notificación falló; se continúa")
		}
		cancel()
	}

	if q.feed != nil {
		q.feed.Push(item)
	}

	for _, fn := range callbacks {
		fn(item)
	}
}

// Len cantidad de ítems pendientes (solo informativo).
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
