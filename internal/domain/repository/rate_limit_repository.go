package repository

import (
	"context"
	"time"

	"github.com/shop2give/payment-service/internal/domain/model"
)

// RateLimitRepository stores request events for the sliding-window limiter
type RateLimitRepository interface {
	// CountSince counts events for (name, identifier) with timestamp >= since.
	CountSince(ctx context.Context, name, identifier string, since time.Time) (int64, error)

	Record(ctx context.Context, event *model.RateLimitEvent) error

	// OldestSince returns the oldest event inside the window, or nil, nil when
	// the window is empty.
	OldestSince(ctx context.Context, name, identifier string, since time.Time) (*model.RateLimitEvent, error)

	// DeleteBefore prunes events older than the cutoff across all keys.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
