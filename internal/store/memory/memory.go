// Package memory implementa el Ledger Store en memoria. Es la implementación
// inyectable para tests y para el modo development sin base de datos.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/tu-usuario/taller-ops/internal/domain"
	"github.com/tu-usuario/taller-ops/internal/store"
)

var _ store.Store = (*Store)(nil)

type document struct {
	data    json.RawMessage
	version int64
}

// Store almacén en memoria, seguro para uso concurrente.
type Store struct {
	mu   sync.RWMutex
	docs map[string]*document // path -> documento
}

// New crea un store vacío.
func New() *Store {
	return &Store{docs: make(map[string]*document)}
}

// Get lee el documento en path; (nil, nil) si no existe.
func (s *Store) Get(_ context.Context, path string) (*store.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[path]
	if !ok {
		return nil, nil
	}
	// Copia defensiva: el caller no debe poder mutar el documento almacenado
	data := make(json.RawMessage, len(doc.data))
	copy(data, doc.data)
	return &store.Document{ID: idFromPath(path), Data: data, Version: doc.version}, nil
}

// Set sobreescribe por completo el documento en path.
func (s *Store) Set(_ context.Context, path string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal documento: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.docs[path]
	var version int64 = 1
	if prev != nil {
		version = prev.version + 1
	}
	s.docs[path] = &document{data: data, version: version}
	return nil
}

// Update hace merge superficial de fields sobre el documento existente.
func (s *Store) Update(_ context.Context, path string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[path]
	if !ok {
		return domain.ErrNotFound
	}
	var current map[string]any
	if err := json.Unmarshal(doc.data, &current); err != nil {
		return fmt.Errorf("unmarshal documento: %w", err)
	}
	for k, v := range fields {
		current[k] = v
	}
	merged, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("marshal documento: %w", err)
	}
	s.docs[path] = &document{data: merged, version: doc.version + 1}
	return nil
}

// Append agrega value a la colección con un id generado.
func (s *Store) Append(_ context.Context, collection string, value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("marshal documento: %w", err)
	}
	id := uuid.New().String()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[store.Path(collection, id)] = &document{data: data, version: 1}
	return id, nil
}

// SetIf escritura condicional por versión (control optimista).
func (s *Store) SetIf(_ context.Context, path string, value any, expectedVersion int64) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal documento: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[path]
	var current int64
	if ok {
		current = doc.version
	}
	if current != expectedVersion {
		return domain.ErrConflict
	}
	s.docs[path] = &document{data: data, version: current + 1}
	return nil
}

// List devuelve los documentos de una colección (orden estable por path).
func (s *Store) List(_ context.Context, collection string) ([]store.Document, error) {
	prefix := collection + "/"
	s.mu.RLock()
	defer s.mu.RUnlock()
	paths := make([]string, 0)
	for p := range s.docs {
		if strings.HasPrefix(p, prefix) {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	out := make([]store.Document, 0, len(paths))
	for _, p := range paths {
		doc := s.docs[p]
		data := make(json.RawMessage, len(doc.data))
		copy(data, doc.data)
		out = append(out, store.Document{ID: idFromPath(p), Data: data, Version: doc.version})
	}
	return out, nil
}

// idFromPath recorta el prefijo de colección de la ruta.
func idFromPath(path string) string {
	if i := strings.Index(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
