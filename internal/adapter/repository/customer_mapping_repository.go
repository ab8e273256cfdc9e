package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shop2give/payment-service/internal/domain/model"
	"github.com/shop2give/payment-service/internal/domain/repository"
)

type customerMappingRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewCustomerMappingRepository creates a new customer mapping repository
func NewCustomerMappingRepository(db *gorm.DB, logger *zap.Logger) repository.CustomerMappingRepository {
	return &customerMappingRepository{
		db:     db,
		logger: logger,
	}
}

// GetByUserID retrieves the mapping for a user
func (r *customerMappingRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.CustomerMapping, error) {
	var mapping model.CustomerMapping

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&mapping).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get customer mapping",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get customer mapping: %w", err)
	}

	return &mapping, nil
}

// Create creates a new customer mapping
func (r *customerMappingRepository) Create(ctx context.Context, mapping *model.CustomerMapping) error {
	err := r.db.WithContext(ctx).Create(mapping).Error
	if err != nil {
		r.logger.Error("Failed to create customer mapping",
			zap.String("user_id", mapping.UserID.String()),
			zap.String("provider_customer_id", mapping.ProviderCustomerID),
			zap.Error(err))
		return fmt.Errorf("failed to create customer mapping: %w", err)
	}

	return nil
}

// DeleteByProviderCustomerID soft deletes a mapping
func (r *customerMappingRepository) DeleteByProviderCustomerID(ctx context.Context, providerCustomerID string) error {
	err := r.db.WithContext(ctx).
		Where("provider_customer_id = ?", providerCustomerID).
		Delete(&model.CustomerMapping{}).Error

	if err != nil {
		r.logger.Error("Failed to delete customer mapping",
			zap.String("provider_customer_id", providerCustomerID),
			zap.Error(err))
		return fmt.Errorf("failed to delete customer mapping: %w", err)
	}

	return nil
}
