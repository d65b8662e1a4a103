// Package postgres implementa el Ledger Store sobre PostgreSQL: una sola
// tabla clave/valor con el documento JSON de la entidad. Pensado para
// despliegues gestionados (Supabase, RDS) donde no hay disco local para
// BadgerDB.
package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/inventario-ledger/internal/storage"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS ledger_entries (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Store implementa storage.Store sobre un pool pgx.
type Store struct {
	pool *pgxpool.Pool
}

var _ storage.Store = (*Store)(nil)

// Open crea el pool de conexiones, verifica conectividad y asegura la tabla.
func Open(ctx context.Context, dsn string) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse DSN: %w", err)
	}
	poolConfig.MaxConns = 25
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: crear tabla ledger_entries: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Get devuelve el valor de key o storage.ErrKeyNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM ledger_entries WHERE key = $1`, key).Scan(&value)
	if err == pgx.ErrNoRows {
		return nil, storage.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: get %q: %w", key, err)
	}
	return value, nil
}

// Set upsertea un par clave/valor.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.pool.Exec(ctx, upsertSQL, key, value)
	if err != nil {
		return fmt.Errorf("postgres: set %q: %w", key, err)
	}
	return nil
}

const upsertSQL = `
INSERT INTO ledger_entries (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

// SetAll escribe todas las entradas dentro de una transacción SQL:
// o se aplican todas o ninguna.
func (s *Store) SetAll(ctx context.Context, entries ...storage.Entry) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, e := range entries {
		if _, err := tx.Exec(ctx, upsertSQL, e.Key, e.Value); err != nil {
			return fmt.Errorf("postgres: set %q en batch: %w", e.Key, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: commit batch: %w", err)
	}
	return nil
}

// Delete elimina una clave. Borrar una clave inexistente no es un error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM ledger_entries WHERE key = $1`, key); err != nil {
		return fmt.Errorf("postgres: delete %q: %w", key, err)
	}
	return nil
}

// ScanPrefix devuelve todas las entradas cuya clave empieza por prefix.
func (s *Store) ScanPrefix(ctx context.Context, prefix string) ([]storage.Entry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT key, value FROM ledger_entries WHERE key LIKE $1`, likePattern(prefix))
	if err != nil {
		return nil, fmt.Errorf("postgres: scan %q: %w", prefix, err)
	}
	defer rows.Close()

	var entries []storage.Entry
	for rows.Next() {
		var e storage.Entry
		if err := rows.Scan(&e.Key, &e.Value); err != nil {
			return nil, fmt.Errorf("postgres: scan %q: %w", prefix, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: scan %q: %w", prefix, err)
	}
	return entries, nil
}

// likePattern escapa los metacaracteres de LIKE para que el prefijo se trate literal.
func likePattern(prefix string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(prefix) + "%"
}

// Close cierra el pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
