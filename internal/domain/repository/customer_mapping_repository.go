package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/shop2give/payment-service/internal/domain/model"
)

// CustomerMappingRepository manages user to provider customer mappings
type CustomerMappingRepository interface {
	// GetByUserID returns nil, nil when the user has no mapping yet.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.CustomerMapping, error)

	Create(ctx context.Context, mapping *model.CustomerMapping) error

	// DeleteByProviderCustomerID soft-deletes the mapping.
	DeleteByProviderCustomerID(ctx context.Context, providerCustomerID string) error
}
