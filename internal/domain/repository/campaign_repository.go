package repository

import (
	"context"

	"github.com/shop2give/payment-service/internal/domain/model"
)

// CampaignRepository reads campaign rows owned by the campaign service
type CampaignRepository interface {
	// ListActive returns campaigns with status "active".
	ListActive(ctx context.Context) ([]*model.Campaign, error)
}
