package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shop2give/payment-service/internal/domain/model"
	"github.com/shop2give/payment-service/internal/domain/repository"
)

type checkoutLogRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewCheckoutLogRepository creates a new checkout log repository
func NewCheckoutLogRepository(db *gorm.DB, logger *zap.Logger) repository.CheckoutLogRepository {
	return &checkoutLogRepository{
		db:     db,
		logger: logger,
	}
}

// Create appends a checkout audit row
func (r *checkoutLogRepository) Create(ctx context.Context, log *model.CheckoutLog) error {
	err := r.db.WithContext(ctx).Create(log).Error
	if err != nil {
		r.logger.Error("Failed to create checkout log",
			zap.String("user_id", log.UserID.String()),
			zap.Bool("success", log.Success),
			zap.Error(err))
		return fmt.Errorf("failed to create checkout log: %w", err)
	}

	return nil
}
