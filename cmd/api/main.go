package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/inventario-ledger/internal/application/auth"
	"github.com/tu-usuario/inventario-ledger/internal/application/inventory"
	"github.com/tu-usuario/inventario-ledger/internal/application/reports"
	"github.com/tu-usuario/inventario-ledger/internal/application/usecase"
	"github.com/tu-usuario/inventario-ledger/internal/infrastructure/ledger"
	infrapdf "github.com/tu-usuario/inventario-ledger/internal/infrastructure/pdf"
	httpRouter "github.com/tu-usuario/inventario-ledger/internal/interfaces/http"
	"github.com/tu-usuario/inventario-ledger/internal/storage"
	"github.com/tu-usuario/inventario-ledger/internal/storage/badgerstore"
	"github.com/tu-usuario/inventario-ledger/internal/storage/memory"
	"github.com/tu-usuario/inventario-ledger/internal/storage/postgres"
	"github.com/tu-usuario/inventario-ledger/pkg/config"
	"github.com/tu-usuario/inventario-ledger/pkg/keylock"
	"github.com/tu-usuario/inventario-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("abrir almacenamiento")
	}
	defer store.Close()

	productRepo := ledger.NewProductRepository(store)
	categoryRepo := ledger.NewCategoryRepository(store)
	userRepo := ledger.NewUserRepository(store)
	movementRepo := ledger.NewMovementRepository(store)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	// Un solo locker por producto compartido entre el CRUD y el motor de
	// movimientos: ambos reescriben el registro producto:{id} completo.
	productLocks := keylock.New()
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, productLocks)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	userUC := usecase.NewUserUseCase(userRepo)

	registerMovementUC := inventory.NewRegisterMovementUseCase(productRepo, userRepo, movementRepo, productLocks)
	movementQueryUC := inventory.NewMovementQueryUseCase(movementRepo)
	statisticsUC := inventory.NewStatisticsUseCase(movementRepo)

	pdfGenerator := infrapdf.NewMarotoReportGenerator(cfg.App.Name)
	reportUC := reports.NewReportUseCase(movementRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		ProductUC:        productUC,
		CategoryUC:       categoryUC,
		UserUC:           userUC,
		RegisterMovement: registerMovementUC,
		MovementQuery:    movementQueryUC,
		Statistics:       statisticsUC,
		ReportUC:         reportUC,
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStore abre el backend del libro mayor según STORE_DRIVER.
// El driver memory arranca con datos de ejemplo para demos sin dependencias.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (storage.Store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverBadger:
		return badgerstore.Open(badgerstore.DefaultConfig(cfg.Store.BadgerPath), log.Zerolog())
	case config.StoreDriverPostgres:
		return postgres.Open(ctx, cfg.DB.ConnectionString())
	case config.StoreDriverMemory:
		store := memory.New()
		if err := ledger.SeedSampleData(ctx, store); err != nil {
			return nil, err
		}
		log.Info().Msg("driver memory: datos de ejemplo cargados")
		return store, nil
	default:
		// config.Load ya valida el driver; este caso no debería alcanzarse.
		return nil, os.ErrInvalid
	}
}
