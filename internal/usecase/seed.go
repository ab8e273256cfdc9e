package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shop2give/payment-service/internal/domain/model"
	"github.com/shop2give/payment-service/internal/domain/repository"
)

// SeedResults aggregates one bulk seeding run
type SeedResults struct {
	ProductsCreated int      `json:"productsCreated"`
	ProductsSkipped int      `json:"productsSkipped"`
	PricesCreated   int      `json:"pricesCreated"`
	PricesSkipped   int      `json:"pricesSkipped"`
	Errors          []string `json:"errors"`
}

// SeedService provisions the donation product and price ladder for every
// active campaign. One campaign's failure is recorded and the batch moves on.
type SeedService struct {
	sync         *CatalogSyncService
	campaignRepo repository.CampaignRepository
	logger       *zap.Logger
}

// NewSeedService creates a new seed service
func NewSeedService(sync *CatalogSyncService, campaignRepo repository.CampaignRepository, logger *zap.Logger) *SeedService {
	return &SeedService{
		sync:         sync,
		campaignRepo: campaignRepo,
		logger:       logger,
	}
}

// SeedActiveCampaigns fetches the active campaigns and seeds each one
func (s *SeedService) SeedActiveCampaigns(ctx context.Context) (*SeedResults, error) {
	campaigns, err := s.campaignRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load campaigns: %w", err)
	}

	s.logger.Info("Seeding campaigns", zap.Int("count", len(campaigns)))
	return s.SeedCampaigns(ctx, campaigns), nil
}

// SeedCampaigns seeds the given campaigns. The returned aggregate always
// covers the full list; callers inspect Errors to judge overall success.
func (s *SeedService) SeedCampaigns(ctx context.Context, campaigns []*model.Campaign) *SeedResults {
	results := &SeedResults{Errors: []string{}}

	for _, campaign := range campaigns {
		if err := s.seedCampaign(ctx, campaign, results); err != nil {
			s.logger.Error("Failed to seed campaign",
				zap.String("campaign_id", campaign.ID.String()),
				zap.Error(err))
			results.Errors = append(results.Errors,
				fmt.Sprintf("campaign %s: %v", campaign.ID, err))
		}
	}

	return results
}

func (s *SeedService) seedCampaign(ctx context.Context, campaign *model.Campaign, results *SeedResults) error {
	if campaign.ID == uuid.Nil {
		return fmt.Errorf("invalid campaign id")
	}

	s.logger.Info("Processing campaign",
		zap.String("campaign_id", campaign.ID.String()),
		zap.String("title", campaign.Title))

	product, err := s.sync.EnsureProduct(ctx, &EnsureProductSpec{
		CampaignID: campaign.ID.String(),
		Name:       DonationProductName,
	})
	if err != nil {
		return err
	}

	if product.Created {
		results.ProductsCreated++
	} else {
		results.ProductsSkipped++
	}

	ladder, err := s.sync.EnsurePriceLadder(ctx, product.Product.ID, DefaultPriceLadder(), campaign.ID.String())
	if err != nil {
		return err
	}

	results.PricesCreated += ladder.Created
	results.PricesSkipped += ladder.Skipped
	results.Errors = append(results.Errors, ladder.Errors...)

	return nil
}
