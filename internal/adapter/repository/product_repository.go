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

type productRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB, logger *zap.Logger) repository.ProductRepository {
	return &productRepository{
		db:     db,
		logger: logger,
	}
}

// GetAll retrieves all mirrored products with their prices
func (r *productRepository) GetAll(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product

	err := r.db.WithContext(ctx).
		Preload("Prices").
		Order("name ASC").
		Find(&products).Error

	if err != nil {
		r.logger.Error("Failed to get all products", zap.Error(err))
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a mirrored product by its local row ID
func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product

	err := r.db.WithContext(ctx).
		Preload("Prices").
		Where("id = ?", id).
		First(&product).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get product by ID",
			zap.Int64("id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

// GetByProviderProductID retrieves a mirrored product by its Stripe product ID
func (r *productRepository) GetByProviderProductID(ctx context.Context, providerProductID string) (*model.Product, error) {
	var product model.Product

	err := r.db.WithContext(ctx).
		Preload("Prices").
		Where("provider_product_id = ?", providerProductID).
		First(&product).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get product by provider ID",
			zap.String("provider_product_id", providerProductID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

// ListByCampaignID retrieves all mirrored products for a campaign
func (r *productRepository) ListByCampaignID(ctx context.Context, campaignID string) ([]*model.Product, error) {
	var products []*model.Product

	err := r.db.WithContext(ctx).
		Preload("Prices").
		Where("campaign_id = ?", campaignID).
		Order("name ASC").
		Find(&products).Error

	if err != nil {
		r.logger.Error("Failed to list products by campaign",
			zap.String("campaign_id", campaignID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

// ListByName retrieves mirrored products matching a name, case-insensitively
func (r *productRepository) ListByName(ctx context.Context, name string) ([]*model.Product, error) {
	var products []*model.Product

	err := r.db.WithContext(ctx).
		Preload("Prices").
		Where("lower(name) = lower(?)", name).
		Find(&products).Error

	if err != nil {
		r.logger.Error("Failed to list products by name",
			zap.String("name", name),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

// ListByNameAndCampaignID retrieves mirrored products matching name and campaign
func (r *productRepository) ListByNameAndCampaignID(ctx context.Context, name, campaignID string) ([]*model.Product, error) {
	var products []*model.Product

	err := r.db.WithContext(ctx).
		Preload("Prices").
		Where("campaign_id = ? AND lower(name) = lower(?)", campaignID, name).
		Find(&products).Error

	if err != nil {
		r.logger.Error("Failed to list products by name and campaign",
			zap.String("name", name),
			zap.String("campaign_id", campaignID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

// CountByNameAndCampaignID counts name matches within one campaign
func (r *productRepository) CountByNameAndCampaignID(ctx context.Context, name, campaignID string) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("campaign_id = ? AND lower(name) = lower(?)", campaignID, name).
		Count(&count).Error

	if err != nil {
		r.logger.Error("Failed to count products",
			zap.String("name", name),
			zap.String("campaign_id", campaignID),
			zap.Error(err))
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return count, nil
}

// Upsert creates or updates the mirror row keyed by provider product ID
func (r *productRepository) Upsert(ctx context.Context, product *model.Product) error {
	existing, err := r.GetByProviderProductID(ctx, product.ProviderProductID)
	if err != nil {
		return err
	}

	if existing != nil {
		product.ID = existing.ID
		err = r.db.WithContext(ctx).
			Model(&model.Product{}).
			Where("provider_product_id = ?", product.ProviderProductID).
			Updates(map[string]interface{}{
				"name":        product.Name,
				"description": product.Description,
				"campaign_id": product.CampaignID,
				"active":      product.Active,
				"metadata":    product.Metadata,
			}).Error
		if err != nil {
			r.logger.Error("Failed to update product",
				zap.String("provider_product_id", product.ProviderProductID),
				zap.Error(err))
			return fmt.Errorf("failed to update product: %w", err)
		}
		return nil
	}

	err = r.db.WithContext(ctx).Create(product).Error
	if err != nil {
		r.logger.Error("Failed to create product",
			zap.String("provider_product_id", product.ProviderProductID),
			zap.Error(err))
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// DeleteByProviderProductID removes the mirror row for an archived product
func (r *productRepository) DeleteByProviderProductID(ctx context.Context, providerProductID string) error {
	err := r.db.WithContext(ctx).
		Where("provider_product_id = ?", providerProductID).
		Delete(&model.Product{}).Error

	if err != nil {
		r.logger.Error("Failed to delete product",
			zap.String("provider_product_id", providerProductID),
			zap.Error(err))
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}
