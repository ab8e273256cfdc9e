package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/shop2give/payment-service/internal/domain/model"
	"github.com/shop2give/payment-service/internal/domain/provider"
)

// MockCatalogProvider is a mock implementation of provider.CatalogProvider
type MockCatalogProvider struct {
	mock.Mock
}

func (m *MockCatalogProvider) SearchProductsByMetadata(ctx context.Context, key, value string) ([]*provider.Product, error) {
	args := m.Called(ctx, key, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*provider.Product), args.Error(1)
}

func (m *MockCatalogProvider) ListActiveProducts(ctx context.Context) ([]*provider.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*provider.Product), args.Error(1)
}

func (m *MockCatalogProvider) GetProduct(ctx context.Context, productID string) (*provider.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Product), args.Error(1)
}

func (m *MockCatalogProvider) CreateProduct(ctx context.Context, req *provider.CreateProductRequest) (*provider.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Product), args.Error(1)
}

func (m *MockCatalogProvider) UpdateProduct(ctx context.Context, productID string, req *provider.UpdateProductRequest) (*provider.Product, error) {
	args := m.Called(ctx, productID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Product), args.Error(1)
}

func (m *MockCatalogProvider) UpdateProductMetadata(ctx context.Context, productID string, metadata map[string]string) (*provider.Product, error) {
	args := m.Called(ctx, productID, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Product), args.Error(1)
}

func (m *MockCatalogProvider) ArchiveProduct(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *MockCatalogProvider) ListActivePrices(ctx context.Context, productID string) ([]*provider.Price, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*provider.Price), args.Error(1)
}

func (m *MockCatalogProvider) CreatePrice(ctx context.Context, req *provider.CreatePriceRequest) (*provider.Price, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Price), args.Error(1)
}

func (m *MockCatalogProvider) UpdatePriceMetadata(ctx context.Context, priceID string, metadata map[string]string) (*provider.Price, error) {
	args := m.Called(ctx, priceID, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Price), args.Error(1)
}

func (m *MockCatalogProvider) CreateCustomer(ctx context.Context, email string, metadata map[string]string) (*provider.Customer, error) {
	args := m.Called(ctx, email, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Customer), args.Error(1)
}

func (m *MockCatalogProvider) DeleteCustomer(ctx context.Context, customerID string) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

func (m *MockCatalogProvider) CreateCheckoutSession(ctx context.Context, req *provider.CheckoutSessionRequest) (*provider.CheckoutSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.CheckoutSession), args.Error(1)
}

func (m *MockCatalogProvider) GetProviderName() string {
	return "stripe"
}

// MockProductRepository is a mock implementation of repository.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Upsert(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetAll(ctx context.Context) ([]*model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) GetByProviderProductID(ctx context.Context, providerProductID string) (*model.Product, error) {
	args := m.Called(ctx, providerProductID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) ListByCampaignID(ctx context.Context, campaignID string) ([]*model.Product, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Product), args.Error(1)
}

func (m *MockProductRepository) ListByName(ctx context.Context, name string) ([]*model.Product, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Product), args.Error(1)
}

func (m *MockProductRepository) ListByNameAndCampaignID(ctx context.Context, name, campaignID string) ([]*model.Product, error) {
	args := m.Called(ctx, name, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Product), args.Error(1)
}

func (m *MockProductRepository) CountByNameAndCampaignID(ctx context.Context, name, campaignID string) (int64, error) {
	args := m.Called(ctx, name, campaignID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) DeleteByProviderProductID(ctx context.Context, providerProductID string) error {
	args := m.Called(ctx, providerProductID)
	return args.Error(0)
}

// MockPriceRepository is a mock implementation of repository.PriceRepository
type MockPriceRepository struct {
	mock.Mock
}

func (m *MockPriceRepository) Upsert(ctx context.Context, price *model.Price) error {
	args := m.Called(ctx, price)
	return args.Error(0)
}

func (m *MockPriceRepository) ListByProductID(ctx context.Context, productID int64) ([]*model.Price, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Price), args.Error(1)
}

func (m *MockPriceRepository) DeleteByProductID(ctx context.Context, productID int64) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

// MockCustomerMappingRepository is a mock implementation of repository.CustomerMappingRepository
type MockCustomerMappingRepository struct {
	mock.Mock
}

func (m *MockCustomerMappingRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.CustomerMapping, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CustomerMapping), args.Error(1)
}

func (m *MockCustomerMappingRepository) Create(ctx context.Context, mapping *model.CustomerMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

func (m *MockCustomerMappingRepository) DeleteByProviderCustomerID(ctx context.Context, providerCustomerID string) error {
	args := m.Called(ctx, providerCustomerID)
	return args.Error(0)
}

// MockSubscriptionRepository is a mock implementation of repository.SubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, subscription *model.Subscription) error {
	args := m.Called(ctx, subscription)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) GetByProviderCustomerID(ctx context.Context, providerCustomerID string) (*model.Subscription, error) {
	args := m.Called(ctx, providerCustomerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscription), args.Error(1)
}

// MockCheckoutLogRepository is a mock implementation of repository.CheckoutLogRepository
type MockCheckoutLogRepository struct {
	mock.Mock
}

func (m *MockCheckoutLogRepository) Create(ctx context.Context, log *model.CheckoutLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

// MockRateLimitRepository is a mock implementation of repository.RateLimitRepository
type MockRateLimitRepository struct {
	mock.Mock
}

func (m *MockRateLimitRepository) CountSince(ctx context.Context, name, identifier string, since time.Time) (int64, error) {
	args := m.Called(ctx, name, identifier, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRateLimitRepository) Record(ctx context.Context, event *model.RateLimitEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockRateLimitRepository) OldestSince(ctx context.Context, name, identifier string, since time.Time) (*model.RateLimitEvent, error) {
	args := m.Called(ctx, name, identifier, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RateLimitEvent), args.Error(1)
}

func (m *MockRateLimitRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockCampaignRepository is a mock implementation of repository.CampaignRepository
type MockCampaignRepository struct {
	mock.Mock
}

func (m *MockCampaignRepository) ListActive(ctx context.Context) ([]*model.Campaign, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Campaign), args.Error(1)
}
