package provider

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/shop2give/payment-service/internal/config"
	"github.com/shop2give/payment-service/internal/domain/provider"
	stripeProvider "github.com/shop2give/payment-service/internal/infrastructure/provider/stripe"
)

// Factory creates catalog providers based on the provider type
type Factory struct {
	config *config.Config
	logger *zap.Logger
}

// NewFactory creates a new provider factory
func NewFactory(config *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		config: config,
		logger: logger,
	}
}

// GetProvider returns a catalog provider based on the provider type
func (f *Factory) GetProvider(providerType provider.ProviderType) (provider.CatalogProvider, error) {
	switch providerType {
	case provider.ProviderTypeStripe:
		return f.createStripeProvider()
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}

// GetProviderFromString returns a catalog provider from a string type
func (f *Factory) GetProviderFromString(providerStr string) (provider.CatalogProvider, error) {
	// Default to Stripe if not specified
	if providerStr == "" {
		providerStr = string(provider.ProviderTypeStripe)
	}

	providerType := provider.ProviderType(providerStr)
	return f.GetProvider(providerType)
}

// createStripeProvider creates a new Stripe provider instance
func (f *Factory) createStripeProvider() (provider.CatalogProvider, error) {
	if f.config.Service.StripeSecretKey == "" {
		return nil, fmt.Errorf("Stripe secret key not configured")
	}

	return stripeProvider.NewStripeProvider(
		f.config.Service.StripeSecretKey,
		f.logger,
	), nil
}
