// Package notify implementa la cola de despacho de notificaciones: un FIFO
// en memoria con un único drenaje activo que entrega push + toast sin
// bloquear a los productores. Las notificaciones son transitorias; se pierden
// al reiniciar el proceso y no hay reintentos.
package notify

// Tipos de notificación (matizan el toast y el canal de suscripción).
const (
	KindSuccess = "success"
	KindError   = "error"
	KindWarning = "warning"
	KindInfo    = "info"
)

// Options cuerpo y metadatos opcionales de la notificación.
type Options struct {
	Body string // texto del cuerpo
	Tag  string // etiqueta de correlación (ej. id de pago)
	URL  string // destino opcional al tocar la notificación
}

// Item una notificación encolada. Vive solo en la cola en memoria.
type Item struct {
	Kind    string
	Title   string
	Options Options
}
