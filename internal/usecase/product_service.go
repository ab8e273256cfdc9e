package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	domainerrors "github.com/shop2give/payment-service/internal/domain/errors"
	"github.com/shop2give/payment-service/internal/domain/model"
	"github.com/shop2give/payment-service/internal/domain/provider"
	"github.com/shop2give/payment-service/internal/domain/repository"
)

// DonationProductName is the fixed name of the per-campaign donation product.
const DonationProductName = "Donation"

const donationProductDescription = "Campaign donation with selectable amounts"

// PriceInput describes one price to attach to a product
type PriceInput struct {
	UnitAmount int64               `json:"unitAmount"`
	Currency   string              `json:"currency"`
	Recurring  *provider.Recurring `json:"recurring,omitempty"`
	Metadata   map[string]string   `json:"metadata,omitempty"`
}

// CreateProductInput describes a product to create
type CreateProductInput struct {
	Name        string
	Description string
	CampaignID  string
	Images      []string
	Metadata    map[string]string
	Active      *bool
	Prices      []PriceInput
}

// UpdateProductInput describes a partial product update
type UpdateProductInput struct {
	ProductID   string
	Name        *string
	Description *string
	Images      []string
	Metadata    map[string]string
	Active      *bool
}

// ProductService serves the catalog API. Reads come from the local mirror
// with a provider fallback for uncached provider IDs; writes go to the
// provider first and are mirrored afterwards.
type ProductService struct {
	provider    provider.CatalogProvider
	productRepo repository.ProductRepository
	priceRepo   repository.PriceRepository
	sync        *CatalogSyncService
	logger      *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(
	catalogProvider provider.CatalogProvider,
	productRepo repository.ProductRepository,
	priceRepo repository.PriceRepository,
	sync *CatalogSyncService,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		provider:    catalogProvider,
		productRepo: productRepo,
		priceRepo:   priceRepo,
		sync:        sync,
		logger:      logger,
	}
}

// GetAllProducts returns every mirrored product with its prices
func (s *ProductService) GetAllProducts(ctx context.Context) ([]*model.Product, error) {
	return s.productRepo.GetAll(ctx)
}

// GetProductsByCampaign returns the mirrored products of one campaign
func (s *ProductService) GetProductsByCampaign(ctx context.Context, campaignID string) ([]*model.Product, error) {
	return s.productRepo.ListByCampaignID(ctx, campaignID)
}

// GetProductByID resolves a product by local row ID or provider ID. A
// provider ID missing from the cache falls through to the provider itself,
// so freshly created products are readable before the mirror catches up.
func (s *ProductService) GetProductByID(ctx context.Context, productID string) (*model.Product, error) {
	product, err := s.lookupProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product != nil {
		return product, nil
	}

	if !isProviderProductID(productID) {
		return nil, domainerrors.ErrProductNotFound
	}

	external, err := s.provider.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	prices, err := s.provider.ListActivePrices(ctx, productID)
	if err != nil {
		return nil, err
	}

	return transientProduct(external, prices), nil
}

// GetProductByName returns mirrored products matching the name
func (s *ProductService) GetProductByName(ctx context.Context, name string) ([]*model.Product, error) {
	return s.productRepo.ListByName(ctx, name)
}

// ProductExists reports whether a product with the name exists for the campaign
func (s *ProductService) ProductExists(ctx context.Context, name, campaignID string) (bool, error) {
	count, err := s.productRepo.CountByNameAndCampaignID(ctx, name, campaignID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetProductsByNameAndCampaignID returns mirrored products matching both keys
func (s *ProductService) GetProductsByNameAndCampaignID(ctx context.Context, name, campaignID string) ([]*model.Product, error) {
	return s.productRepo.ListByNameAndCampaignID(ctx, name, campaignID)
}

// GetDonationProductForCampaign returns the campaign's donation product, or
// nil when none exists yet
func (s *ProductService) GetDonationProductForCampaign(ctx context.Context, campaignID string) (*model.Product, error) {
	products, err := s.productRepo.ListByNameAndCampaignID(ctx, DonationProductName, campaignID)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}
	return products[0], nil
}

// CreateProduct creates a product in the provider and mirrors it. A product
// with the same name already existing for the campaign is rejected.
func (s *ProductService) CreateProduct(ctx context.Context, in *CreateProductInput) (*model.Product, error) {
	exists, err := s.ProductExists(ctx, in.Name, in.CampaignID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainerrors.NewValidationError(
			fmt.Sprintf("A product with the name %q already exists for this campaign", in.Name))
	}

	metadata := mergeMetadata(in.Metadata, map[string]string{
		MetadataCampaignID: in.CampaignID,
	})

	created, err := s.provider.CreateProduct(ctx, &provider.CreateProductRequest{
		Name:        in.Name,
		Description: in.Description,
		Images:      in.Images,
		Metadata:    metadata,
		Active:      in.Active,
	})
	if err != nil {
		return nil, err
	}

	s.sync.mirrorProduct(ctx, created)

	for _, priceIn := range in.Prices {
		if _, err := s.createPrice(ctx, created.ID, priceIn); err != nil {
			s.logger.Error("Failed to create price for new product",
				zap.String("product_id", created.ID),
				zap.Int64("unit_amount", priceIn.UnitAmount),
				zap.Error(err))
		}
	}

	local, err := s.productRepo.GetByProviderProductID(ctx, created.ID)
	if err != nil || local == nil {
		return transientProduct(created, nil), nil
	}
	return local, nil
}

// CreateDonationProductForCampaign finds or creates the campaign's donation
// product and applies the requested tariffs. An existing product is updated
// with new tariffs rather than duplicated.
func (s *ProductService) CreateDonationProductForCampaign(ctx context.Context, in *CreateProductInput) (*model.Product, error) {
	existing, err := s.GetDonationProductForCampaign(ctx, in.CampaignID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return s.UpdateDonationProductTariffs(ctx, existing.ProviderProductID, in.Prices)
	}

	donation := &CreateProductInput{
		Name:        DonationProductName,
		Description: donationProductDescription,
		CampaignID:  in.CampaignID,
		Images:      in.Images,
		Metadata: mergeMetadata(in.Metadata, map[string]string{
			"type": "donation",
		}),
		Active: in.Active,
		Prices: in.Prices,
	}
	return s.CreateProduct(ctx, donation)
}

// UpdateDonationProductTariffs adds the missing tariffs to an existing
// donation product. Tariffs matching an existing (amount, currency) pair are
// reused, never duplicated.
func (s *ProductService) UpdateDonationProductTariffs(ctx context.Context, productID string, prices []PriceInput) (*model.Product, error) {
	product, err := s.requireProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	existing := make(map[string]bool, len(product.Prices))
	for _, p := range product.Prices {
		existing[priceKey(p.UnitAmount, p.Currency)] = true
	}

	for _, priceIn := range prices {
		if existing[priceKey(priceIn.UnitAmount, priceIn.Currency)] {
			continue
		}
		if _, err := s.createPrice(ctx, product.ProviderProductID, priceIn); err != nil {
			s.logger.Error("Failed to add tariff",
				zap.String("product_id", product.ProviderProductID),
				zap.Int64("unit_amount", priceIn.UnitAmount),
				zap.Error(err))
		}
	}

	return s.requireProduct(ctx, productID)
}

// AddPriceToProduct creates one price on an existing product
func (s *ProductService) AddPriceToProduct(ctx context.Context, productID string, in PriceInput) (*model.Price, error) {
	product, err := s.requireProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return s.createPrice(ctx, product.ProviderProductID, in)
}

// UpdateProduct applies a partial update in the provider and refreshes the
// mirror
func (s *ProductService) UpdateProduct(ctx context.Context, in *UpdateProductInput) (*model.Product, error) {
	product, err := s.requireProduct(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}

	updated, err := s.provider.UpdateProduct(ctx, product.ProviderProductID, &provider.UpdateProductRequest{
		Name:        in.Name,
		Description: in.Description,
		Images:      in.Images,
		Metadata:    in.Metadata,
		Active:      in.Active,
	})
	if err != nil {
		return nil, err
	}

	s.sync.mirrorProduct(ctx, updated)

	local, err := s.productRepo.GetByProviderProductID(ctx, updated.ID)
	if err != nil || local == nil {
		return transientProduct(updated, nil), nil
	}
	return local, nil
}

// DeleteProduct archives the product in the provider, then removes the
// mirror rows. The provider archive must succeed before the cache is touched.
func (s *ProductService) DeleteProduct(ctx context.Context, productID string) error {
	product, err := s.requireProduct(ctx, productID)
	if err != nil {
		return err
	}

	if err := s.provider.ArchiveProduct(ctx, product.ProviderProductID); err != nil {
		return err
	}

	if product.ID != 0 {
		if err := s.priceRepo.DeleteByProductID(ctx, product.ID); err != nil {
			s.logger.Warn("Failed to delete cached prices",
				zap.Int64("product_id", product.ID),
				zap.Error(err))
		}
	}
	if err := s.productRepo.DeleteByProviderProductID(ctx, product.ProviderProductID); err != nil {
		s.logger.Warn("Failed to delete cached product",
			zap.String("provider_product_id", product.ProviderProductID),
			zap.Error(err))
	}

	return nil
}

// createPrice writes the price to the provider and mirrors it
func (s *ProductService) createPrice(ctx context.Context, providerProductID string, in PriceInput) (*model.Price, error) {
	price, err := s.provider.CreatePrice(ctx, &provider.CreatePriceRequest{
		ProductID:  providerProductID,
		UnitAmount: in.UnitAmount,
		Currency:   in.Currency,
		Recurring:  in.Recurring,
		Metadata:   in.Metadata,
	})
	if err != nil {
		return nil, err
	}

	s.sync.mirrorPrice(ctx, price)

	row := &model.Price{
		ProviderPriceID: price.ID,
		UnitAmount:      price.UnitAmount,
		Currency:        price.Currency,
		Metadata:        model.Metadata(price.Metadata),
	}
	if price.Recurring != nil {
		interval := price.Recurring.Interval
		count := price.Recurring.IntervalCount
		row.RecurringInterval = &interval
		row.RecurringIntervalCount = &count
	}
	return row, nil
}

// lookupProduct resolves either ID form against the cache only
func (s *ProductService) lookupProduct(ctx context.Context, productID string) (*model.Product, error) {
	if isProviderProductID(productID) {
		return s.productRepo.GetByProviderProductID(ctx, productID)
	}

	id, err := strconv.ParseInt(productID, 10, 64)
	if err != nil {
		return nil, domainerrors.NewValidationError(fmt.Sprintf("Invalid product ID: %s", productID))
	}
	return s.productRepo.GetByID(ctx, id)
}

// requireProduct resolves a product or fails with not-found. Provider IDs
// absent from the cache are fetched and mirrored so later writes have a
// local row to hang prices on.
func (s *ProductService) requireProduct(ctx context.Context, productID string) (*model.Product, error) {
	product, err := s.lookupProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product != nil {
		return product, nil
	}

	if !isProviderProductID(productID) {
		return nil, domainerrors.ErrProductNotFound
	}

	external, err := s.provider.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	s.sync.mirrorProduct(ctx, external)

	product, err = s.productRepo.GetByProviderProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return transientProduct(external, nil), nil
	}
	return product, nil
}

func isProviderProductID(id string) bool {
	return strings.HasPrefix(id, "prod_")
}

func priceKey(unitAmount int64, currency string) string {
	return strconv.FormatInt(unitAmount, 10) + ":" + strings.ToLower(currency)
}

// transientProduct converts a provider product the mirror does not hold yet
func transientProduct(p *provider.Product, prices []*provider.Price) *model.Product {
	row := &model.Product{
		ProviderProductID: p.ID,
		Name:              p.Name,
		Description:       p.Description,
		CampaignID:        p.Metadata[MetadataCampaignID],
		Active:            p.Active,
		Metadata:          model.Metadata(p.Metadata),
	}
	for _, price := range prices {
		priceRow := model.Price{
			ProviderPriceID: price.ID,
			UnitAmount:      price.UnitAmount,
			Currency:        price.Currency,
			Metadata:        model.Metadata(price.Metadata),
		}
		if price.Recurring != nil {
			interval := price.Recurring.Interval
			count := price.Recurring.IntervalCount
			priceRow.RecurringInterval = &interval
			priceRow.RecurringIntervalCount = &count
		}
		row.Prices = append(row.Prices, priceRow)
	}
	return row
}
