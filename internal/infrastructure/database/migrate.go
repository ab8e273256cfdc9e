package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shop2give/payment-service/internal/domain/model"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	// Create extensions first
	if err := createExtensions(db); err != nil {
		logger.Error("Failed to create extensions", zap.Error(err))
		return err
	}

	// Auto-migrate all models
	logger.Info("Running GORM auto-migrations...")
	err := db.AutoMigrate(
		&model.Product{},
		&model.Price{},
		&model.CustomerMapping{},
		&model.Subscription{},
		&model.CheckoutLog{},
		&model.RateLimitEvent{},
		&model.Campaign{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	// Create custom indexes and constraints
	if err := createCustomIndexes(db); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// createCustomIndexes creates custom indexes that GORM doesn't handle automatically
func createCustomIndexes(db *gorm.DB) error {
	// One active product per (campaign, name). Archived products keep their
	// rows without blocking a replacement.
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS unique_active_product_per_campaign_name ON products (campaign_id, lower(name)) WHERE active = true AND campaign_id <> ''`).Error; err != nil {
		return err
	}

	// One non-deleted mapping per user
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS unique_active_mapping_per_user ON customer_mappings (user_id) WHERE deleted_at IS NULL`).Error; err != nil {
		return err
	}

	return nil
}

// createExtensions creates required PostgreSQL extensions
func createExtensions(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}
	return nil
}
