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

	"github.com/runnersutah/pipetrack-api/internal/application/auth"
	"github.com/runnersutah/pipetrack-api/internal/application/ledger"
	"github.com/runnersutah/pipetrack-api/internal/application/report"
	"github.com/runnersutah/pipetrack-api/internal/application/usecase"
	"github.com/runnersutah/pipetrack-api/internal/infrastructure/excel"
	"github.com/runnersutah/pipetrack-api/internal/infrastructure/postgres"
	"github.com/runnersutah/pipetrack-api/internal/infrastructure/storage"
	httpRouter "github.com/runnersutah/pipetrack-api/internal/interfaces/http"
	"github.com/runnersutah/pipetrack-api/pkg/config"
	"github.com/runnersutah/pipetrack-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	customerRepo := postgres.NewCustomerRepository(pool)
	locationRepo := postgres.NewStorageLocationRepository(pool)
	templateRepo := postgres.NewProductTemplateRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	changeRepo := postgres.NewInventoryChangeRepository(pool)
	balanceRepo := postgres.NewInventoryBalanceRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	attachmentStore, err := storage.NewLocalStore(cfg.Storage.AttachmentDir)
	if err != nil {
		log.Fatal().Err(err).Msg("almacén de adjuntos")
	}

	customerUC := usecase.NewCustomerUseCase(customerRepo)
	locationUC := usecase.NewLocationUseCase(locationRepo)
	templateUC := usecase.NewTemplateUseCase(templateRepo, productRepo)
	productUC := usecase.NewProductUseCase(productRepo, templateRepo, customerRepo, changeRepo)
	ledgerUC := ledger.NewUseCase(txRunner, productRepo, templateRepo, customerRepo, locationRepo, changeRepo, log)
	reportUC := report.NewUseCase(
		balanceRepo, changeRepo, customerRepo, productRepo, templateRepo, locationRepo,
		excel.NewExporter(cfg.Assets.LogoPath), log,
	)
	authUC := auth.NewAuthUseCase(userRepo, customerRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "PipeTrack API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CustomerUC:  customerUC,
		LocationUC:  locationUC,
		TemplateUC:  templateUC,
		ProductUC:   productUC,
		LedgerUC:    ledgerUC,
		ReportUC:    reportUC,
		AuthUC:      authUC,
		Attachments: attachmentStore,
		JWTSecret:   cfg.JWT.Secret,
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
