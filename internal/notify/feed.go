package notify

import (
	"sync"
	"time"
)

// FeedEntry un toast ya emitido, tal como lo consume la consola.
type FeedEntry struct {
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	Tag       string    `json:"tag,omitempty"`
	EmittedAt time.Time `json:"emittedAt"`
}

// Feed anillo acotado con los últimos toasts emitidos. Es el equivalente
// servidor del toast de UI: la consola lo consulta para mostrar las alertas
// recientes. Igual que la cola, es transitorio.
type Feed struct {
	mu      sync.RWMutex
	entries []FeedEntry
	max     int
}

// NewFeed construye el feed con capacidad máxima max (mínimo 1).
func NewFeed(max int) *Feed {
	if max < 1 {
		max = 1
	}
	return &Feed{max: max}
}

// Push agrega el toast del ítem, descartando el más viejo si el anillo está lleno.
func (f *Feed) Push(item Item) {
	entry := FeedEntry{
		Kind:      item.Kind,
		Title:     item.Title,
		Body:      item.Options.Body,
		Tag:       item.Options.Tag,
		EmittedAt: time.Now(),
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
	if len(f.entries) > f.max {
		f.entries = f.entries[len(f.entries)-f.max:]
	}
}

// Recent devuelve los toasts recientes, del más nuevo al más viejo.
func (f *Feed) Recent() []FeedEntry {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]FeedEntry, len(f.entries))
	for i, e := range f.entries {
		out[len(f.entries)-1-i] = e
	}
	return out
}
