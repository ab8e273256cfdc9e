package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shop2give/payment-service/internal/domain/model"
	"github.com/shop2give/payment-service/internal/domain/repository"
)

type campaignRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewCampaignRepository creates a new campaign repository
func NewCampaignRepository(db *gorm.DB, logger *zap.Logger) repository.CampaignRepository {
	return &campaignRepository{
		db:     db,
		logger: logger,
	}
}

// ListActive retrieves all active campaigns
func (r *campaignRepository) ListActive(ctx context.Context) ([]*model.Campaign, error) {
	var campaigns []*model.Campaign

	err := r.db.WithContext(ctx).
		Where("status = ?", model.CampaignStatusActive).
		Order("created_at ASC").
		Find(&campaigns).Error

	if err != nil {
		r.logger.Error("Failed to list active campaigns", zap.Error(err))
		return nil, fmt.Errorf("failed to list active campaigns: %w", err)
	}

	return campaigns, nil
}
