// Package postgres implementa el Ledger Store sobre PostgreSQL: una tabla de
// documentos jsonb versionados por colección. SetIf se apoya en un UPDATE
// condicionado por versión, el equivalente de control optimista al
// SELECT FOR UPDATE de un esquema relacional.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/taller-ops/internal/domain"
	"github.com/tu-usuario/taller-ops/internal/store"
)

var _ store.Store = (*Store)(nil)

// Store implementación del Ledger Store sobre pgxpool.
type Store struct {
	pool *pgxpool.Pool
}

// New construye el store. Llamar a Migrate antes del primer uso.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Migrate crea la tabla de documentos si no existe.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			collection TEXT NOT NULL,
			id         TEXT NOT NULL,
			doc        JSONB NOT NULL,
			version    BIGINT NOT NULL DEFAULT 1,
			PRIMARY KEY (collection, id)
		)`)
	if err != nil {
		return fmt.Errorf("migrar documents: %w", err)
	}
	return nil
}

// splitPath separa "coleccion/id"; id puede contener "/" anidados.
func splitPath(path string) (collection, id string, err error) {
	i := strings.Index(path, "/")
	if i <= 0 || i == len(path)-1 {
		return "", "", fmt.Errorf("ruta inválida %q: %w", path, domain.ErrInvalidInput)
	}
	return path[:i], path[i+1:], nil
}

// Get lee el documento en path; (nil, nil) si no existe.
func (s *Store) Get(ctx context.Context, path string) (*store.Document, error) {
	collection, id, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	var data []byte
	var version int64
	err = s.pool.QueryRow(ctx,
		`SELECT doc, version FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	).Scan(&data, &version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get documento: %w", err)
	}
	return &store.Document{ID: id, Data: data, Version: version}, nil
}

// Set sobreescribe por completo el documento en path (upsert).
func (s *Store) Set(ctx context.Context, path string, value any) error {
	collection, id, err := splitPath(path)
	if err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal documento: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO documents (collection, id, doc, version)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (collection, id)
		DO UPDATE SET doc = EXCLUDED.doc, version = documents.version + 1`,
		collection, id, data)
	if err != nil {
		return fmt.Errorf("set documento: %w", err)
	}
	return nil
}

// Update hace merge superficial de fields sobre el documento existente.
func (s *Store) Update(ctx context.Context, path string, fields map[string]any) error {
	collection, id, err := splitPath(path)
	if err != nil {
		return err
	}
	patch, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal campos: %w", err)
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE documents
		SET doc = doc || $3::jsonb, version = version + 1
		WHERE collection = $1 AND id = $2`,
		collection, id, patch)
	if err != nil {
		return fmt.Errorf("update documento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Append agrega value a la colección con un id generado.
func (s *Store) Append(ctx context.Context, collection string, value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("marshal documento: %w", err)
	}
	id := uuid.New().String()
	_, err = s.pool.Exec(ctx,
		`INSERT INTO documents (collection, id, doc, version) VALUES ($1, $2, $3, 1)`,
		collection, id, data)
	if err != nil {
		return "", fmt.Errorf("append documento: %w", err)
	}
	return id, nil
}

// SetIf escritura condicional por versión. expectedVersion 0 significa
// "el documento no debe existir todavía".
func (s *Store) SetIf(ctx context.Context, path string, value any, expectedVersion int64) error {
	collection, id, err := splitPath(path)
	if err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal documento: %w", err)
	}
	if expectedVersion == 0 {
		tag, err := s.pool.Exec(ctx, `
			INSERT INTO documents (collection, id, doc, version)
			VALUES ($1, $2, $3, 1)
			ON CONFLICT (collection, id) DO NOTHING`,
			collection, id, data)
		if err != nil {
			return fmt.Errorf("setif documento: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrConflict
		}
		return nil
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE documents
		SET doc = $3, version = version + 1
		WHERE collection = $1 AND id = $2 AND version = $4`,
		collection, id, data, expectedVersion)
	if err != nil {
		return fmt.Errorf("setif documento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// List devuelve todos los documentos de una colección (orden estable por id).
func (s *Store) List(ctx context.Context, collection string) ([]store.Document, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, doc, version FROM documents WHERE collection = $1 ORDER BY id`,
		collection)
	if err != nil {
		return nil, fmt.Errorf("listar %s: %w", collection, err)
	}
	defer rows.Close()

	var out []store.Document
	for rows.Next() {
		var id string
		var data []byte
		var version int64
		if err := rows.Scan(&id, &data, &version); err != nil {
			return nil, fmt.Errorf("scan documento: %w", err)
		}
		out = append(out, store.Document{ID: id, Data: data, Version: version})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listar %s: %w", collection, err)
	}
	return out, nil
}
