package usecase

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	domainerrors "github.com/shop2give/payment-service/internal/domain/errors"
	"github.com/shop2give/payment-service/internal/domain/model"
	"github.com/shop2give/payment-service/internal/domain/provider"
	"github.com/shop2give/payment-service/internal/domain/repository"
)

// Metadata keys used to link external catalog entities back to campaigns.
const (
	MetadataCampaignID = "campaign_id"
	MetadataProductID  = "product_id"
	MetadataAmountUSD  = "amount_usd"
)

// LadderCurrency is the currency all donation price points use.
const LadderCurrency = "usd"

// EnsureProductSpec describes the desired state of a campaign product
type EnsureProductSpec struct {
	CampaignID  string
	Name        string
	Description string
	Images      []string
	Metadata    map[string]string
}

// EnsureProductResult reports whether the product was created or found
type EnsureProductResult struct {
	Product *provider.Product
	Created bool
}

// LadderResult aggregates one price ladder run
type LadderResult struct {
	Created int
	Skipped int
	Errors  []string
}

// CatalogSyncService reconciles desired catalog state against the external
// system of record and mirrors the outcome into the local cache. The external
// system stays authoritative: cache writes happen only after a successful
// external write, and cache failures are logged without failing the call.
type CatalogSyncService struct {
	provider    provider.CatalogProvider
	productRepo repository.ProductRepository
	priceRepo   repository.PriceRepository
	logger      *zap.Logger
}

// NewCatalogSyncService creates a new catalog sync service
func NewCatalogSyncService(
	catalogProvider provider.CatalogProvider,
	productRepo repository.ProductRepository,
	priceRepo repository.PriceRepository,
	logger *zap.Logger,
) *CatalogSyncService {
	return &CatalogSyncService{
		provider:    catalogProvider,
		productRepo: productRepo,
		priceRepo:   priceRepo,
		logger:      logger,
	}
}

// FindProductByCampaignKey looks up the active product carrying the campaign
// ID in its metadata. The indexed search runs first; because the search index
// lags recent writes, an empty result triggers a full list with client-side
// metadata filtering before concluding the product does not exist.
func (s *CatalogSyncService) FindProductByCampaignKey(ctx context.Context, campaignID string) (*provider.Product, error) {
	found, err := s.provider.SearchProductsByMetadata(ctx, MetadataCampaignID, campaignID)
	if err != nil {
		return nil, err
	}
	if len(found) > 0 {
		return found[0], nil
	}

	all, err := s.provider.ListActiveProducts(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range all {
		if p.Metadata[MetadataCampaignID] == campaignID {
			return p, nil
		}
	}

	return nil, nil
}

// EnsureProduct finds or creates the campaign's product. An existing product
// whose metadata lacks or mismatches the campaign ID gets a metadata patch
// rather than a duplicate. The result is mirrored into the local cache either
// way.
func (s *CatalogSyncService) EnsureProduct(ctx context.Context, spec *EnsureProductSpec) (*EnsureProductResult, error) {
	existing, err := s.FindProductByCampaignKey(ctx, spec.CampaignID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if existing.Metadata[MetadataCampaignID] != spec.CampaignID {
			metadata := mergeMetadata(existing.Metadata, map[string]string{
				MetadataCampaignID: spec.CampaignID,
			})
			existing, err = s.provider.UpdateProductMetadata(ctx, existing.ID, metadata)
			if err != nil {
				return nil, err
			}
			s.logger.Info("Patched product metadata",
				zap.String("product_id", existing.ID),
				zap.String("campaign_id", spec.CampaignID))
		}

		s.mirrorProduct(ctx, existing)
		return &EnsureProductResult{Product: existing, Created: false}, nil
	}

	metadata := mergeMetadata(spec.Metadata, map[string]string{
		MetadataCampaignID: spec.CampaignID,
	})
	created, err := s.provider.CreateProduct(ctx, &provider.CreateProductRequest{
		Name:        spec.Name,
		Description: spec.Description,
		Images:      spec.Images,
		Metadata:    metadata,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Created product for campaign",
		zap.String("product_id", created.ID),
		zap.String("campaign_id", spec.CampaignID))

	s.mirrorProduct(ctx, created)
	return &EnsureProductResult{Product: created, Created: true}, nil
}

// EnsurePriceLadder creates the missing price points of a ladder on one
// product. Existing points are detected with a single list call keyed by the
// amount metadata field, then skipped with a metadata verify-or-patch. One bad
// point never aborts the rest; its error joins the result list instead.
func (s *CatalogSyncService) EnsurePriceLadder(ctx context.Context, productID string, points []int, campaignID string) (*LadderResult, error) {
	result := &LadderResult{}

	existing, err := s.provider.ListActivePrices(ctx, productID)
	if err != nil {
		return nil, err
	}

	existingByAmount := make(map[string]*provider.Price, len(existing))
	for _, p := range existing {
		if key := p.Metadata[MetadataAmountUSD]; key != "" {
			existingByAmount[key] = p
		}
	}

	for _, point := range points {
		key := strconv.Itoa(point)

		if price, ok := existingByAmount[key]; ok {
			result.Skipped++
			if err := s.verifyPriceMetadata(ctx, price, campaignID, productID, key); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("price %d for product %s: %v", point, productID, err))
			}
			continue
		}

		price, err := s.provider.CreatePrice(ctx, &provider.CreatePriceRequest{
			ProductID:  productID,
			UnitAmount: int64(point) * 100,
			Currency:   LadderCurrency,
			Metadata: map[string]string{
				MetadataCampaignID: campaignID,
				MetadataProductID:  productID,
				MetadataAmountUSD:  key,
			},
		})
		if err != nil {
			s.logger.Error("Failed to create price point",
				zap.Int("amount", point),
				zap.String("product_id", productID),
				zap.Error(err))
			result.Errors = append(result.Errors, fmt.Sprintf("price %d for product %s: %v", point, productID, err))
			continue
		}

		result.Created++
		s.mirrorPrice(ctx, price)
	}

	return result, nil
}

// DefaultPriceLadder returns the donation amounts from 5 to 500 in steps
// of 5.
func DefaultPriceLadder() []int {
	points := make([]int, 0, 100)
	for amount := 5; amount <= 500; amount += 5 {
		points = append(points, amount)
	}
	return points
}

// verifyPriceMetadata patches a skipped price whose linkage metadata drifted
func (s *CatalogSyncService) verifyPriceMetadata(ctx context.Context, price *provider.Price, campaignID, productID, amountKey string) error {
	if price.Metadata[MetadataCampaignID] == campaignID &&
		price.Metadata[MetadataProductID] == productID {
		s.mirrorPrice(ctx, price)
		return nil
	}

	patched, err := s.provider.UpdatePriceMetadata(ctx, price.ID, mergeMetadata(price.Metadata, map[string]string{
		MetadataCampaignID: campaignID,
		MetadataProductID:  productID,
		MetadataAmountUSD:  amountKey,
	}))
	if err != nil {
		return err
	}

	s.logger.Info("Patched price metadata",
		zap.String("price_id", price.ID),
		zap.String("amount_usd", amountKey))

	s.mirrorPrice(ctx, patched)
	return nil
}

// mirrorProduct writes the cache row after a successful external read or
// write. Failures are warnings only.
func (s *CatalogSyncService) mirrorProduct(ctx context.Context, p *provider.Product) {
	row := &model.Product{
		ProviderProductID: p.ID,
		Name:              p.Name,
		Description:       p.Description,
		CampaignID:        p.Metadata[MetadataCampaignID],
		Active:            p.Active,
		Metadata:          model.Metadata(p.Metadata),
	}

	if err := s.productRepo.Upsert(ctx, row); err != nil {
		syncErr := &domainerrors.CacheSyncError{Entity: "product", Err: err}
		s.logger.Warn(syncErr.Error(), zap.String("product_id", p.ID))
	}
}

func (s *CatalogSyncService) mirrorPrice(ctx context.Context, p *provider.Price) {
	local, err := s.productRepo.GetByProviderProductID(ctx, p.ProductID)
	if err != nil || local == nil {
		s.logger.Warn("No cached product for price, skipping price mirror",
			zap.String("price_id", p.ID),
			zap.String("product_id", p.ProductID))
		return
	}

	row := &model.Price{
		ProviderPriceID: p.ID,
		ProductID:       local.ID,
		UnitAmount:      p.UnitAmount,
		Currency:        p.Currency,
		Metadata:        model.Metadata(p.Metadata),
	}
	if p.Recurring != nil {
		interval := p.Recurring.Interval
		count := p.Recurring.IntervalCount
		row.RecurringInterval = &interval
		row.RecurringIntervalCount = &count
	}

	if err := s.priceRepo.Upsert(ctx, row); err != nil {
		syncErr := &domainerrors.CacheSyncError{Entity: "price", Err: err}
		s.logger.Warn(syncErr.Error(), zap.String("price_id", p.ID))
	}
}

func mergeMetadata(base map[string]string, overrides map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(overrides))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}
