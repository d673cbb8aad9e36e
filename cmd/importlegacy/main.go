package main

import (
	"context"
	"flag"

	"github.com/runnersutah/pipetrack-api/internal/application/ledger"
	"github.com/runnersutah/pipetrack-api/internal/application/legacyimport"
	"github.com/runnersutah/pipetrack-api/internal/infrastructure/postgres"
	"github.com/runnersutah/pipetrack-api/internal/infrastructure/sqlite"
	"github.com/runnersutah/pipetrack-api/pkg/config"
	"github.com/runnersutah/pipetrack-api/pkg/logger"
)

// importlegacy carga el snapshot de la aplicación vieja (old_processed.sqlite3)
// en la base de datos actual. Es una corrida única y mejor esfuerzo: las filas
// ilegibles se reportan y se omiten.
func main() {
	snapshotPath := flag.String("snapshot", "old_processed.sqlite3", "ruta al snapshot sqlite heredado")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().Str("snapshot", *snapshotPath).Msg("iniciando importación del snapshot heredado")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	source, err := sqlite.Open(*snapshotPath)
	if err != nil {
		log.Fatal().Err(err).Msg("apertura del snapshot")
	}
	defer source.Close()

	customerRepo := postgres.NewCustomerRepository(pool)
	locationRepo := postgres.NewStorageLocationRepository(pool)
	templateRepo := postgres.NewProductTemplateRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	changeRepo := postgres.NewInventoryChangeRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerUC := ledger.NewUseCase(txRunner, productRepo, templateRepo, customerRepo, locationRepo, changeRepo, log)
	importer := legacyimport.NewUseCase(source, customerRepo, locationRepo, templateRepo, productRepo, ledgerUC, log)

	summary, err := importer.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("importación abortada")
	}

	log.Info().
		Int("rows_read", summary.RowsRead).
		Int("rows_skipped", summary.RowsSkipped).
		Int("changes_created", summary.ChangesCreated).
		Int("customers_created", summary.CustomersCreated).
		Int("products_created", summary.ProductsCreated).
		Int("needs_review", summary.NeedsReview).
		Msg("importación completada")
}
