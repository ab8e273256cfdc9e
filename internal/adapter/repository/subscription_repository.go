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

type subscriptionRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *gorm.DB, logger *zap.Logger) repository.SubscriptionRepository {
	return &subscriptionRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a subscription placeholder row
func (r *subscriptionRepository) Create(ctx context.Context, subscription *model.Subscription) error {
	err := r.db.WithContext(ctx).Create(subscription).Error
	if err != nil {
		r.logger.Error("Failed to create subscription",
			zap.String("provider_customer_id", subscription.ProviderCustomerID),
			zap.Error(err))
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	return nil
}

// GetByProviderCustomerID retrieves the newest subscription row for a customer
func (r *subscriptionRepository) GetByProviderCustomerID(ctx context.Context, providerCustomerID string) (*model.Subscription, error) {
	var subscription model.Subscription

	err := r.db.WithContext(ctx).
		Where("provider_customer_id = ?", providerCustomerID).
		Order("created_at DESC").
		First(&subscription).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get subscription",
			zap.String("provider_customer_id", providerCustomerID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return &subscription, nil
}
