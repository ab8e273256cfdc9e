package repository

import (
	"context"

	"github.com/shop2give/payment-service/internal/domain/model"
)

// SubscriptionRepository manages subscription placeholder rows
type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *model.Subscription) error

	// GetByProviderCustomerID returns nil, nil when no row exists.
	GetByProviderCustomerID(ctx context.Context, providerCustomerID string) (*model.Subscription, error)
}
