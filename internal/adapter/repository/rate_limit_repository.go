package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shop2give/payment-service/internal/domain/model"
	"github.com/shop2give/payment-service/internal/domain/repository"
)

type rateLimitRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRateLimitRepository creates a new rate limit repository
func NewRateLimitRepository(db *gorm.DB, logger *zap.Logger) repository.RateLimitRepository {
	return &rateLimitRepository{
		db:     db,
		logger: logger,
	}
}

// CountSince counts events inside the window for one (name, identifier) key
func (r *rateLimitRepository) CountSince(ctx context.Context, name, identifier string, since time.Time) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&model.RateLimitEvent{}).
		Where("name = ? AND identifier = ? AND timestamp >= ?", name, identifier, since).
		Count(&count).Error

	if err != nil {
		r.logger.Error("Failed to count rate limit events",
			zap.String("name", name),
			zap.String("identifier", identifier),
			zap.Error(err))
		return 0, fmt.Errorf("failed to count rate limit events: %w", err)
	}

	return count, nil
}

// Record stores one request event
func (r *rateLimitRepository) Record(ctx context.Context, event *model.RateLimitEvent) error {
	err := r.db.WithContext(ctx).Create(event).Error
	if err != nil {
		r.logger.Error("Failed to record rate limit event",
			zap.String("name", event.Name),
			zap.String("identifier", event.Identifier),
			zap.Error(err))
		return fmt.Errorf("failed to record rate limit event: %w", err)
	}

	return nil
}

// OldestSince returns the oldest event inside the window
func (r *rateLimitRepository) OldestSince(ctx context.Context, name, identifier string, since time.Time) (*model.RateLimitEvent, error) {
	var event model.RateLimitEvent

	err := r.db.WithContext(ctx).
		Where("name = ? AND identifier = ? AND timestamp >= ?", name, identifier, since).
		Order("timestamp ASC").
		First(&event).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get oldest rate limit event",
			zap.String("name", name),
			zap.String("identifier", identifier),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get oldest rate limit event: %w", err)
	}

	return &event, nil
}

// DeleteBefore prunes events older than the cutoff
func (r *rateLimitRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("timestamp < ?", cutoff).
		Delete(&model.RateLimitEvent{})

	if result.Error != nil {
		r.logger.Error("Failed to prune rate limit events",
			zap.Time("cutoff", cutoff),
			zap.Error(result.Error))
		return 0, fmt.Errorf("failed to prune rate limit events: %w", result.Error)
	}

	return result.RowsAffected, nil
}
