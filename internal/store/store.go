// Package store define el contrato del Ledger Store: un almacén jerárquico
// de documentos JSON sobre colecciones con nombre (payments, products,
// inventory_movements, appointments, orders, webhook_events).
//
// Todos los componentes del core dependen solo de esta interfaz; las
// implementaciones concretas viven en store/memory y store/postgres.
package store

import (
	"context"
	"encoding/json"
)

// Colecciones conocidas del store.
const (
	ColPayments      = "payments"
	ColProducts      = "products"
	ColMovements     = "inventory_movements"
	ColAppointments  = "appointments"
	ColOrders        = "orders"
	ColWebhookEvents = "webhook_events"
)

// Document documento versionado tal como lo devuelve el store.
// ID es el identificador dentro de su colección (la parte final de la ruta);
// Version crece en cada escritura y es la base del control optimista (SetIf).
type Document struct {
	ID      string
	Data    json.RawMessage
	Version int64
}

// Store contrato de lectura/escritura del Ledger Store.
//
// Convención: Get sobre una ruta inexistente devuelve (nil, nil), no error.
// Las rutas son "coleccion/id".
type Store interface {
	// Get lee el documento en path.
	Get(ctx context.Context, path string) (*Document, error)

	// Set sobreescribe por completo el documento en path (crea si no existe).
	Set(ctx context.Context, path string, value any) error

	// Update hace merge superficial de fields sobre el documento existente.
	// Devuelve domain.ErrNotFound si el documento no existe.
	Update(ctx context.Context, path string, fields map[string]any) error

	// Append agrega value a la colección con un id generado y lo devuelve.
	Append(ctx context.Context, collection string, value any) (string, error)

	// SetIf sobreescribe el documento solo si su versión actual coincide con
	// expectedVersion. Devuelve domain.ErrConflict si otro escritor ganó la
	// carrera. Es la primitiva para el read-modify-write seguro de stock.
	SetIf(ctx context.Context, path string, value any, expectedVersion int64) error

	// List devuelve todos los documentos de una colección, en orden estable.
	// Respaldo de los listados y agregaciones (listAll, stats, auditoría).
	List(ctx context.Context, collection string) ([]Document, error)
}

// Path arma la ruta "coleccion/id".
func Path(collection, id string) string {
	return collection + "/" + id
}
