package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shop2give/payment-service/internal/domain/model"
	"github.com/shop2give/payment-service/internal/domain/repository"
)

type priceRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewPriceRepository creates a new price repository
func NewPriceRepository(db *gorm.DB, logger *zap.Logger) repository.PriceRepository {
	return &priceRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert creates or updates the mirror row keyed by provider price ID
func (r *priceRepository) Upsert(ctx context.Context, price *model.Price) error {
	var existing model.Price

	err := r.db.WithContext(ctx).
		Where("provider_price_id = ?", price.ProviderPriceID).
		First(&existing).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Error("Failed to look up price",
			zap.String("provider_price_id", price.ProviderPriceID),
			zap.Error(err))
		return fmt.Errorf("failed to look up price: %w", err)
	}

	if err == nil {
		// Amount and currency never change on the provider side; only the
		// metadata column can drift.
		price.ID = existing.ID
		err = r.db.WithContext(ctx).
			Model(&model.Price{}).
			Where("provider_price_id = ?", price.ProviderPriceID).
			Update("metadata", price.Metadata).Error
		if err != nil {
			r.logger.Error("Failed to update price",
				zap.String("provider_price_id", price.ProviderPriceID),
				zap.Error(err))
			return fmt.Errorf("failed to update price: %w", err)
		}
		return nil
	}

	err = r.db.WithContext(ctx).Create(price).Error
	if err != nil {
		r.logger.Error("Failed to create price",
			zap.String("provider_price_id", price.ProviderPriceID),
			zap.Error(err))
		return fmt.Errorf("failed to create price: %w", err)
	}

	return nil
}

// ListByProductID retrieves mirrored prices for a local product row
func (r *priceRepository) ListByProductID(ctx context.Context, productID int64) ([]*model.Price, error) {
	var prices []*model.Price

	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("unit_amount ASC").
		Find(&prices).Error

	if err != nil {
		r.logger.Error("Failed to list prices",
			zap.Int64("product_id", productID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list prices: %w", err)
	}

	return prices, nil
}

// DeleteByProductID removes all mirrored prices for a local product row
func (r *priceRepository) DeleteByProductID(ctx context.Context, productID int64) error {
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&model.Price{}).Error

	if err != nil {
		r.logger.Error("Failed to delete prices",
			zap.Int64("product_id", productID),
			zap.Error(err))
		return fmt.Errorf("failed to delete prices: %w", err)
	}

	return nil
}
