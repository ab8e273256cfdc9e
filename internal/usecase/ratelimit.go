package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/shop2give/payment-service/internal/domain/model"
	"github.com/shop2give/payment-service/internal/domain/repository"
)

// RateLimitResult is the outcome of a limit check
type RateLimitResult struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// RateLimitService implements a sliding-window rate limiter over stored
// request events. Store failures never block requests: the limiter fails
// open and only logs the problem.
type RateLimitService struct {
	repo        repository.RateLimitRepository
	logger      *zap.Logger
	maxRequests int
	window      time.Duration
}

// NewRateLimitService creates a new rate limit service
func NewRateLimitService(repo repository.RateLimitRepository, maxRequests int, windowSeconds int, logger *zap.Logger) *RateLimitService {
	return &RateLimitService{
		repo:        repo,
		logger:      logger,
		maxRequests: maxRequests,
		window:      time.Duration(windowSeconds) * time.Second,
	}
}

// CheckLimit counts events inside the sliding window for (name, identifier)
// and records the request when it is allowed. Denied requests are not
// recorded, so a blocked client does not extend its own block.
func (s *RateLimitService) CheckLimit(ctx context.Context, name, identifier string) (*RateLimitResult, error) {
	now := time.Now()
	since := now.Add(-s.window)

	count, err := s.repo.CountSince(ctx, name, identifier, since)
	if err != nil {
		s.logger.Warn("Rate limit store unavailable, allowing request",
			zap.String("name", name),
			zap.String("identifier", identifier),
			zap.Error(err))
		return &RateLimitResult{Allowed: true, Remaining: s.maxRequests, ResetAt: now.Add(s.window)}, nil
	}

	if count >= int64(s.maxRequests) {
		resetAt := now.Add(s.window)
		oldest, err := s.repo.OldestSince(ctx, name, identifier, since)
		if err == nil && oldest != nil {
			resetAt = oldest.Timestamp.Add(s.window)
		}
		return &RateLimitResult{Allowed: false, Remaining: 0, ResetAt: resetAt}, nil
	}

	event := &model.RateLimitEvent{
		Name:       name,
		Identifier: identifier,
		Timestamp:  now,
	}
	if err := s.repo.Record(ctx, event); err != nil {
		s.logger.Warn("Failed to record rate limit event",
			zap.String("name", name),
			zap.String("identifier", identifier),
			zap.Error(err))
	}

	remaining := s.maxRequests - int(count) - 1
	if remaining < 0 {
		remaining = 0
	}

	return &RateLimitResult{Allowed: true, Remaining: remaining, ResetAt: now.Add(s.window)}, nil
}

// Limit returns the configured maximum requests per window
func (s *RateLimitService) Limit() int {
	return s.maxRequests
}

// Prune removes events that can no longer affect any window
func (s *RateLimitService) Prune(ctx context.Context) (int64, error) {
	return s.repo.DeleteBefore(ctx, time.Now().Add(-s.window))
}
