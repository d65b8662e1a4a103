// Package memory implementa el Ledger Store en un mapa en memoria.
// Se usa en tests y en el modo demo/offline (datos de ejemplo sin backend).
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/tu-usuario/inventario-ledger/internal/storage"
)

// Store implementa storage.Store sobre un map protegido por RWMutex.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ storage.Store = (*Store)(nil)

// New crea un store vacío.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Get devuelve una copia del valor de key o storage.ErrKeyNotFound.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	if !ok {
		return nil, storage.ErrKeyNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set upsertea un par clave/valor.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.SetAll(ctx, storage.Entry{Key: key, Value: value})
}

// SetAll aplica todas las entradas bajo el mismo lock: ningún lector las
// observa a medias.
func (s *Store) SetAll(_ context.Context, entries ...storage.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		v := make([]byte, len(e.Value))
		copy(v, e.Value)
		s.data[e.Key] = v
	}
	return nil
}

// Delete elimina una clave. Borrar una clave inexistente no es un error.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// ScanPrefix devuelve las entradas cuya clave empieza por prefix, en orden de
// clave para que el resultado sea determinista en tests.
func (s *Store) ScanPrefix(_ context.Context, prefix string) ([]storage.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var entries []storage.Entry
	for key, value := range s.data {
		if strings.HasPrefix(key, prefix) {
			v := make([]byte, len(value))
			copy(v, value)
			entries = append(entries, storage.Entry{Key: key, Value: v})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, nil
}

// Close no hace nada; existe para cumplir storage.Store.
func (s *Store) Close() error { return nil }
