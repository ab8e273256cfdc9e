package repository

import (
	"context"

	"github.com/shop2give/payment-service/internal/domain/model"
)

// PriceRepository manages the local price mirror
type PriceRepository interface {
	// Upsert creates or updates the mirror row keyed by provider price ID.
	Upsert(ctx context.Context, price *model.Price) error

	// ListByProductID returns mirrored prices for a local product row.
	ListByProductID(ctx context.Context, productID int64) ([]*model.Price, error)

	// DeleteByProductID removes all mirrored prices for a local product row.
	DeleteByProductID(ctx context.Context, productID int64) error
}
