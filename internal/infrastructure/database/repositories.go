package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shop2give/payment-service/internal/adapter/repository"
	domainRepo "github.com/shop2give/payment-service/internal/domain/repository"
)

// Repositories holds all repository instances
type Repositories struct {
	Product         domainRepo.ProductRepository
	Price           domainRepo.PriceRepository
	CustomerMapping domainRepo.CustomerMappingRepository
	Subscription    domainRepo.SubscriptionRepository
	CheckoutLog     domainRepo.CheckoutLogRepository
	RateLimit       domainRepo.RateLimitRepository
	Campaign        domainRepo.CampaignRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		Product:         repository.NewProductRepository(db, logger),
		Price:           repository.NewPriceRepository(db, logger),
		CustomerMapping: repository.NewCustomerMappingRepository(db, logger),
		Subscription:    repository.NewSubscriptionRepository(db, logger),
		CheckoutLog:     repository.NewCheckoutLogRepository(db, logger),
		RateLimit:       repository.NewRateLimitRepository(db, logger),
		Campaign:        repository.NewCampaignRepository(db, logger),
	}
}
