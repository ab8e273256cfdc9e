package repository

import (
	"context"

	"github.com/shop2give/payment-service/internal/domain/model"
)

// ProductRepository manages the local product mirror
type ProductRepository interface {
	// Upsert creates or updates the mirror row keyed by provider product ID.
	Upsert(ctx context.Context, product *model.Product) error

	// GetAll returns all mirrored products with their prices preloaded.
	GetAll(ctx context.Context) ([]*model.Product, error)

	// GetByID returns nil, nil when no row exists.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// GetByProviderProductID returns nil, nil when no row exists.
	GetByProviderProductID(ctx context.Context, providerProductID string) (*model.Product, error)

	// ListByCampaignID returns all mirrored products for a campaign.
	ListByCampaignID(ctx context.Context, campaignID string) ([]*model.Product, error)

	// ListByName matches the name case-insensitively.
	ListByName(ctx context.Context, name string) ([]*model.Product, error)

	// ListByNameAndCampaignID matches the name case-insensitively within one
	// campaign.
	ListByNameAndCampaignID(ctx context.Context, name, campaignID string) ([]*model.Product, error)

	// CountByNameAndCampaignID counts case-insensitive name matches within one
	// campaign.
	CountByNameAndCampaignID(ctx context.Context, name, campaignID string) (int64, error)

	// DeleteByProviderProductID removes the mirror row. Missing rows are not
	// an error.
	DeleteByProviderProductID(ctx context.Context, providerProductID string) error
}
