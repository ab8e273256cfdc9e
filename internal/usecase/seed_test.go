package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/shop2give/payment-service/internal/domain/model"
	"github.com/shop2give/payment-service/internal/domain/provider"
)

func newTestSeedService() (*SeedService, *MockCatalogProvider, *MockProductRepository, *MockCampaignRepository) {
	catalogProvider := new(MockCatalogProvider)
	productRepo := new(MockProductRepository)
	priceRepo := new(MockPriceRepository)
	campaignRepo := new(MockCampaignRepository)
	syncService := NewCatalogSyncService(catalogProvider, productRepo, priceRepo, zap.NewNop())
	seeder := NewSeedService(syncService, campaignRepo, zap.NewNop())
	return seeder, catalogProvider, productRepo, campaignRepo
}

func stubFreshCatalog(catalogProvider *MockCatalogProvider, productRepo *MockProductRepository) {
	catalogProvider.On("SearchProductsByMetadata", mock.Anything, MetadataCampaignID, mock.Anything).
		Return([]*provider.Product{}, nil)
	catalogProvider.On("ListActiveProducts", mock.Anything).
		Return([]*provider.Product{}, nil)
	catalogProvider.On("CreateProduct", mock.Anything, mock.Anything).
		Return(&provider.Product{ID: "prod_seeded", Name: DonationProductName, Active: true}, nil)
	catalogProvider.On("ListActivePrices", mock.Anything, "prod_seeded").
		Return([]*provider.Price{}, nil)
	catalogProvider.On("CreatePrice", mock.Anything, mock.Anything).
		Return(&provider.Price{ID: "price_seeded", ProductID: "prod_seeded"}, nil)
	productRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	productRepo.On("GetByProviderProductID", mock.Anything, "prod_seeded").Return(nil, nil)
}

func TestSeedService_SeedCampaigns_ToleratesInvalidCampaign(t *testing.T) {
	seeder, catalogProvider, productRepo, _ := newTestSeedService()
	stubFreshCatalog(catalogProvider, productRepo)

	campaigns := make([]*model.Campaign, 0, 10)
	for i := 0; i < 9; i++ {
		campaigns = append(campaigns, &model.Campaign{ID: uuid.New(), Title: "Campaign"})
	}
	campaigns = append(campaigns, &model.Campaign{ID: uuid.Nil, Title: "Broken"})

	results := seeder.SeedCampaigns(context.Background(), campaigns)

	assert.Equal(t, 9, results.ProductsCreated)
	assert.Equal(t, 0, results.ProductsSkipped)
	assert.Equal(t, 900, results.PricesCreated)
	assert.Len(t, results.Errors, 1)
	assert.Contains(t, results.Errors[0], "invalid campaign id")
}

func TestSeedService_SeedCampaigns_SkipsAlreadySeededCampaign(t *testing.T) {
	seeder, catalogProvider, productRepo, _ := newTestSeedService()

	campaignID := uuid.New()
	existingProduct := &provider.Product{
		ID:       "prod_seeded",
		Name:     DonationProductName,
		Active:   true,
		Metadata: map[string]string{MetadataCampaignID: campaignID.String()},
	}
	var existingPrices []*provider.Price
	for _, amount := range DefaultPriceLadder() {
		existingPrices = append(existingPrices, &provider.Price{
			ID:         "price_" + amountKey(amount),
			ProductID:  "prod_seeded",
			UnitAmount: int64(amount) * 100,
			Currency:   LadderCurrency,
			Active:     true,
			Metadata: map[string]string{
				MetadataCampaignID: campaignID.String(),
				MetadataProductID:  "prod_seeded",
				MetadataAmountUSD:  amountKey(amount),
			},
		})
	}

	catalogProvider.On("SearchProductsByMetadata", mock.Anything, MetadataCampaignID, campaignID.String()).
		Return([]*provider.Product{existingProduct}, nil)
	catalogProvider.On("ListActivePrices", mock.Anything, "prod_seeded").
		Return(existingPrices, nil)
	productRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	productRepo.On("GetByProviderProductID", mock.Anything, "prod_seeded").Return(nil, nil)

	results := seeder.SeedCampaigns(context.Background(), []*model.Campaign{
		{ID: campaignID, Title: "Campaign"},
	})

	assert.Equal(t, 0, results.ProductsCreated)
	assert.Equal(t, 1, results.ProductsSkipped)
	assert.Equal(t, 0, results.PricesCreated)
	assert.Equal(t, 100, results.PricesSkipped)
	assert.Empty(t, results.Errors)
	catalogProvider.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
	catalogProvider.AssertNotCalled(t, "CreatePrice", mock.Anything, mock.Anything)
}

func TestSeedService_SeedActiveCampaigns(t *testing.T) {
	seeder, catalogProvider, productRepo, campaignRepo := newTestSeedService()
	stubFreshCatalog(catalogProvider, productRepo)

	campaignRepo.On("ListActive", mock.Anything).Return([]*model.Campaign{
		{ID: uuid.New(), Title: "Campaign A"},
		{ID: uuid.New(), Title: "Campaign B"},
	}, nil)

	results, err := seeder.SeedActiveCampaigns(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, results.ProductsCreated)
	assert.Equal(t, 200, results.PricesCreated)
	assert.Empty(t, results.Errors)
}

func TestSeedService_SeedActiveCampaigns_ListFailure(t *testing.T) {
	seeder, _, _, campaignRepo := newTestSeedService()

	campaignRepo.On("ListActive", mock.Anything).Return(nil, errors.New("db down"))

	results, err := seeder.SeedActiveCampaigns(context.Background())

	assert.Nil(t, results)
	assert.Error(t, err)
}
