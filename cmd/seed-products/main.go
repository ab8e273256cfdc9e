package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/shop2give/payment-service/internal/config"
	"github.com/shop2give/payment-service/internal/domain/provider"
	"github.com/shop2give/payment-service/internal/infrastructure/database"
	providerfactory "github.com/shop2give/payment-service/internal/infrastructure/provider"
	"github.com/shop2give/payment-service/internal/logger"
	"github.com/shop2give/payment-service/internal/usecase"
)

// Seeds the donation product and price ladder for every active campaign.
// Safe to re-run: existing products and prices are skipped, not duplicated.
func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewZapLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// Initialize database connection
	db, err := database.NewConnection(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	// Run migrations
	if err := database.Migrate(db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize repositories
	repos := database.NewRepositories(db, zapLogger)

	// Create the catalog provider
	factory := providerfactory.NewFactory(cfg, zapLogger)
	catalogProvider, err := factory.GetProvider(provider.ProviderTypeStripe)
	if err != nil {
		zapLogger.Fatal("Failed to create catalog provider", zap.Error(err))
	}

	// Build the seeder
	syncService := usecase.NewCatalogSyncService(catalogProvider, repos.Product, repos.Price, zapLogger)
	seeder := usecase.NewSeedService(syncService, repos.Campaign, zapLogger)

	ctx := context.Background()

	results, err := seeder.SeedActiveCampaigns(ctx)
	if err != nil {
		zapLogger.Fatal("Seeding failed to start", zap.Error(err))
	}

	zapLogger.Info("Seeding completed",
		zap.Int("products_created", results.ProductsCreated),
		zap.Int("products_skipped", results.ProductsSkipped),
		zap.Int("prices_created", results.PricesCreated),
		zap.Int("prices_skipped", results.PricesSkipped),
		zap.Int("errors", len(results.Errors)))

	for _, e := range results.Errors {
		zapLogger.Warn("Seed error", zap.String("detail", e))
	}
}
