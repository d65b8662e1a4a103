// Comando seed: carga los datos de ejemplo (usuarios, categorías y
// productos) en el backend configurado. Útil para preparar una demo
// local sobre badger o postgres sin pasar por la API.
package main

import (
	"context"
	"time"

	"github.com/tu-usuario/inventario-ledger/internal/infrastructure/ledger"
	"github.com/tu-usuario/inventario-ledger/internal/storage"
	"github.com/tu-usuario/inventario-ledger/internal/storage/badgerstore"
	"github.com/tu-usuario/inventario-ledger/internal/storage/postgres"
	"github.com/tu-usuario/inventario-ledger/pkg/config"
	"github.com/tu-usuario/inventario-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var store storage.Store
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		store, err = postgres.Open(ctx, cfg.DB.ConnectionString())
	default:
		store, err = badgerstore.Open(badgerstore.DefaultConfig(cfg.Store.BadgerPath), log.Zerolog())
	}
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("abrir almacenamiento")
	}
	defer store.Close()

	if err := ledger.SeedSampleData(ctx, store); err != nil {
		log.Fatal().Err(err).Msg("cargar datos de ejemplo")
	}

	log.Info().Str("driver", cfg.Store.Driver).Msg("datos de ejemplo cargados")
}
