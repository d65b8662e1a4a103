// Package badgerstore implementa el Ledger Store sobre BadgerDB (embebido).
// Es el backend por defecto: sin servidor externo, escrituras síncronas para
// durabilidad y escaneo por prefijo nativo vía iterador.
package badgerstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/tu-usuario/inventario-ledger/internal/storage"
)

// Config opciones para abrir la base BadgerDB.
type Config struct {
	Path       string // directorio de datos; ignorado si InMemory
	InMemory   bool   // modo memoria (tests)
	SyncWrites bool   // true en producción
	// GCInterval frecuencia del garbage collection del value log. 0 = deshabilitado.
	GCInterval time.Duration
}

// DefaultConfig valores de producción: escrituras síncronas y GC cada 5 minutos.
func DefaultConfig(path string) Config {
	return Config{Path: path, SyncWrites: true, GCInterval: 5 * time.Minute}
}

// Store implementa storage.Store sobre *badger.DB.
type Store struct {
	db     *badger.DB
	log    zerolog.Logger
	stopGC chan struct{}
}

var _ storage.Store = (*Store)(nil)

// badgerLogger adapta zerolog al Logger interno de BadgerDB.
type badgerLogger struct{ log zerolog.Logger }

func (l badgerLogger) Errorf(f string, a ...interface{})   { l.log.Error().Msgf(f, a...) }
func (l badgerLogger) Warningf(f string, a ...interface{}) { l.log.Warn().Msgf(f, a...) }
func (l badgerLogger) Infof(f string, a ...interface{})    { l.log.Debug().Msgf(f, a...) }
func (l badgerLogger) Debugf(f string, a ...interface{})   { l.log.Debug().Msgf(f, a...) }

// Open abre (o crea) la base en cfg.Path y arranca el ciclo de GC si aplica.
func Open(cfg Config, log zerolog.Logger) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("badgerstore: path requerido para base persistente")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path).WithSyncWrites(cfg.SyncWrites)
	}
	opts = opts.WithLogger(badgerLogger{log: log})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badgerstore: abrir base: %w", err)
	}

	s := &Store{db: db, log: log, stopGC: make(chan struct{})}
	if cfg.GCInterval > 0 && !cfg.InMemory {
		go s.runGC(cfg.GCInterval)
	}
	return s, nil
}

// runGC ejecuta el garbage collection del value log periódicamente.
func (s *Store) runGC(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stopGC:
			return
		case <-ticker.C:
			// ErrNoRewrite significa que no había nada que recolectar.
			if err := s.db.RunValueLogGC(0.5); err != nil && !errors.Is(err, badger.ErrNoRewrite) {
				s.log.Warn().Err(err).Msg("badger GC")
			}
		}
	}
}

// Get devuelve el valor de key o storage.ErrKeyNotFound.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, storage.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("badgerstore: get %q: %w", key, err)
	}
	return value, nil
}

// Set upsertea un par clave/valor.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.SetAll(ctx, storage.Entry{Key: key, Value: value})
}

// SetAll escribe todas las entradas dentro de una sola transacción Badger:
// o se aplican todas o ninguna.
func (s *Store) SetAll(_ context.Context, entries ...storage.Entry) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		for _, e := range entries {
			if err := txn.Set([]byte(e.Key), e.Value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("badgerstore: set batch (%d entradas): %w", len(entries), err)
	}
	return nil
}

// Delete elimina una clave. Borrar una clave inexistente no es un error.
func (s *Store) Delete(_ context.Context, key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("badgerstore: delete %q: %w", key, err)
	}
	return nil
}

// ScanPrefix devuelve todas las entradas cuya clave empieza por prefix.
func (s *Store) ScanPrefix(ctx context.Context, prefix string) ([]storage.Entry, error) {
	var entries []storage.Entry
	p := []byte(prefix)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		opts.Prefix = p

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			item := it.Item()
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			entries = append(entries, storage.Entry{Key: string(item.Key()), Value: value})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("badgerstore: scan %q: %w", prefix, err)
	}
	return entries, nil
}

// Close detiene el GC y cierra la base.
func (s *Store) Close() error {
	close(s.stopGC)
	return s.db.Close()
}
