package stripe

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"go.uber.org/zap"

	domainerrors "github.com/shop2give/payment-service/internal/domain/errors"
	"github.com/shop2give/payment-service/internal/domain/provider"
)

// StripeProvider implements the CatalogProvider interface against the Stripe API
type StripeProvider struct {
	client *client.API
	logger *zap.Logger
}

// NewStripeProvider creates a new Stripe provider
func NewStripeProvider(secretKey string, logger *zap.Logger) *StripeProvider {
	sc := &client.API{}
	sc.Init(secretKey, nil)

	return &StripeProvider{
		client: sc,
		logger: logger,
	}
}

// GetProviderName returns the provider name
func (s *StripeProvider) GetProviderName() string {
	return string(provider.ProviderTypeStripe)
}

// SearchProductsByMetadata queries Stripe's indexed product search. The index
// lags recent writes, so callers fall back to ListActiveProducts when a
// just-created product is expected.
func (s *StripeProvider) SearchProductsByMetadata(ctx context.Context, key, value string) ([]*provider.Product, error) {
	params := &stripe.ProductSearchParams{
		SearchParams: stripe.SearchParams{
			Query:   fmt.Sprintf("active:'true' AND metadata['%s']:'%s'", key, value),
			Context: ctx,
		},
	}

	var products []*provider.Product
	iter := s.client.Products.Search(params)
	for iter.Next() {
		products = append(products, fromStripeProduct(iter.Product()))
	}
	if err := iter.Err(); err != nil {
		return nil, s.wrapError("failed to search products", err)
	}

	return products, nil
}

// ListActiveProducts lists all active products
func (s *StripeProvider) ListActiveProducts(ctx context.Context) ([]*provider.Product, error) {
	params := &stripe.ProductListParams{
		Active: stripe.Bool(true),
	}
	params.Context = ctx

	var products []*provider.Product
	iter := s.client.Products.List(params)
	for iter.Next() {
		products = append(products, fromStripeProduct(iter.Product()))
	}
	if err := iter.Err(); err != nil {
		return nil, s.wrapError("failed to list products", err)
	}

	return products, nil
}

// GetProduct retrieves a single product by ID
func (s *StripeProvider) GetProduct(ctx context.Context, productID string) (*provider.Product, error) {
	params := &stripe.ProductParams{}
	params.Context = ctx

	prod, err := s.client.Products.Get(productID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Code == stripe.ErrorCodeResourceMissing {
			return nil, domainerrors.ErrProductNotFound
		}
		return nil, s.wrapError("failed to get product", err)
	}

	return fromStripeProduct(prod), nil
}

// CreateProduct creates a new product
func (s *StripeProvider) CreateProduct(ctx context.Context, req *provider.CreateProductRequest) (*provider.Product, error) {
	params := &stripe.ProductParams{
		Name: stripe.String(req.Name),
	}
	params.Context = ctx
	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}
	if len(req.Images) > 0 {
		params.Images = stripe.StringSlice(req.Images)
	}
	if req.Active != nil {
		params.Active = stripe.Bool(*req.Active)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	prod, err := s.client.Products.New(params)
	if err != nil {
		return nil, s.wrapError("failed to create product", err)
	}

	s.logger.Info("Created Stripe product",
		zap.String("product_id", prod.ID),
		zap.String("name", prod.Name))

	return fromStripeProduct(prod), nil
}

// UpdateProduct applies a partial update to a product
func (s *StripeProvider) UpdateProduct(ctx context.Context, productID string, req *provider.UpdateProductRequest) (*provider.Product, error) {
	params := &stripe.ProductParams{}
	params.Context = ctx
	if req.Name != nil {
		params.Name = stripe.String(*req.Name)
	}
	if req.Description != nil {
		params.Description = stripe.String(*req.Description)
	}
	if len(req.Images) > 0 {
		params.Images = stripe.StringSlice(req.Images)
	}
	if req.Active != nil {
		params.Active = stripe.Bool(*req.Active)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	prod, err := s.client.Products.Update(productID, params)
	if err != nil {
		return nil, s.wrapError("failed to update product", err)
	}

	return fromStripeProduct(prod), nil
}

// UpdateProductMetadata patches product metadata without touching other fields
func (s *StripeProvider) UpdateProductMetadata(ctx context.Context, productID string, metadata map[string]string) (*provider.Product, error) {
	params := &stripe.ProductParams{}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	prod, err := s.client.Products.Update(productID, params)
	if err != nil {
		return nil, s.wrapError("failed to update product metadata", err)
	}

	return fromStripeProduct(prod), nil
}

// ArchiveProduct deactivates a product. Stripe does not hard-delete products
// that have prices attached.
func (s *StripeProvider) ArchiveProduct(ctx context.Context, productID string) error {
	params := &stripe.ProductParams{
		Active: stripe.Bool(false),
	}
	params.Context = ctx

	_, err := s.client.Products.Update(productID, params)
	if err != nil {
		return s.wrapError("failed to archive product", err)
	}

	s.logger.Info("Archived Stripe product", zap.String("product_id", productID))
	return nil
}

// ListActivePrices lists active prices. An empty productID lists across all
// products, which the price ladder dedup relies on.
func (s *StripeProvider) ListActivePrices(ctx context.Context, productID string) ([]*provider.Price, error) {
	params := &stripe.PriceListParams{
		Active: stripe.Bool(true),
	}
	params.Context = ctx
	if productID != "" {
		params.Product = stripe.String(productID)
	}

	var prices []*provider.Price
	iter := s.client.Prices.List(params)
	for iter.Next() {
		prices = append(prices, fromStripePrice(iter.Price()))
	}
	if err := iter.Err(); err != nil {
		return nil, s.wrapError("failed to list prices", err)
	}

	return prices, nil
}

// CreatePrice creates a new price
func (s *StripeProvider) CreatePrice(ctx context.Context, req *provider.CreatePriceRequest) (*provider.Price, error) {
	params := &stripe.PriceParams{
		Product:    stripe.String(req.ProductID),
		UnitAmount: stripe.Int64(req.UnitAmount),
		Currency:   stripe.String(req.Currency),
	}
	params.Context = ctx
	if req.Recurring != nil {
		params.Recurring = &stripe.PriceRecurringParams{
			Interval: stripe.String(req.Recurring.Interval),
		}
		if req.Recurring.IntervalCount > 0 {
			params.Recurring.IntervalCount = stripe.Int64(req.Recurring.IntervalCount)
		}
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	p, err := s.client.Prices.New(params)
	if err != nil {
		return nil, s.wrapError("failed to create price", err)
	}

	return fromStripePrice(p), nil
}

// UpdatePriceMetadata patches price metadata. Amount and currency are
// immutable on Stripe prices.
func (s *StripeProvider) UpdatePriceMetadata(ctx context.Context, priceID string, metadata map[string]string) (*provider.Price, error) {
	params := &stripe.PriceParams{}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	p, err := s.client.Prices.Update(priceID, params)
	if err != nil {
		return nil, s.wrapError("failed to update price metadata", err)
	}

	return fromStripePrice(p), nil
}

// CreateCustomer creates a new customer
func (s *StripeProvider) CreateCustomer(ctx context.Context, email string, metadata map[string]string) (*provider.Customer, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	cust, err := s.client.Customers.New(params)
	if err != nil {
		return nil, s.wrapError("failed to create customer", err)
	}

	s.logger.Info("Created Stripe customer", zap.String("customer_id", cust.ID))

	return &provider.Customer{ID: cust.ID, Email: cust.Email}, nil
}

// DeleteCustomer deletes a customer. Used to undo a lazy customer creation
// when the local mapping insert fails.
func (s *StripeProvider) DeleteCustomer(ctx context.Context, customerID string) error {
	params := &stripe.CustomerParams{}
	params.Context = ctx

	_, err := s.client.Customers.Del(customerID, params)
	if err != nil {
		return s.wrapError("failed to delete customer", err)
	}

	s.logger.Info("Deleted Stripe customer", zap.String("customer_id", customerID))
	return nil
}

// CreateCheckoutSession creates a hosted checkout session
func (s *StripeProvider) CreateCheckoutSession(ctx context.Context, req *provider.CheckoutSessionRequest) (*provider.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Customer:           stripe.String(req.CustomerID),
		Mode:               stripe.String(req.Mode),
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(req.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	session, err := s.client.CheckoutSessions.New(params)
	if err != nil {
		return nil, s.wrapError("failed to create checkout session", err)
	}

	s.logger.Info("Created checkout session",
		zap.String("session_id", session.ID),
		zap.String("customer_id", req.CustomerID),
		zap.String("mode", req.Mode))

	return &provider.CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

func (s *StripeProvider) wrapError(message string, err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		s.logger.Error(message,
			zap.String("stripe_code", string(stripeErr.Code)),
			zap.Error(err))
		return &domainerrors.ProviderError{
			Code:    string(stripeErr.Code),
			Message: message,
			Details: stripeErr.Msg,
		}
	}

	s.logger.Error(message, zap.Error(err))
	return &domainerrors.ProviderError{
		Code:    "provider_error",
		Message: message,
		Details: err.Error(),
	}
}

func fromStripeProduct(prod *stripe.Product) *provider.Product {
	return &provider.Product{
		ID:          prod.ID,
		Name:        prod.Name,
		Description: prod.Description,
		Active:      prod.Active,
		Images:      prod.Images,
		Metadata:    prod.Metadata,
	}
}

func fromStripePrice(p *stripe.Price) *provider.Price {
	out := &provider.Price{
		ID:         p.ID,
		UnitAmount: p.UnitAmount,
		Currency:   string(p.Currency),
		Active:     p.Active,
		Metadata:   p.Metadata,
	}
	if p.Product != nil {
		out.ProductID = p.Product.ID
	}
	if p.Recurring != nil {
		out.Recurring = &provider.Recurring{
			Interval:      string(p.Recurring.Interval),
			IntervalCount: p.Recurring.IntervalCount,
		}
	}
	return out
}
