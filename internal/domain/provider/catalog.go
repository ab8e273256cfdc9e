package provider

import "context"

// CatalogProvider defines the operations against the external system of
// record (Stripe). All writes go through this interface; local cache writes
// follow, never precede, a successful external write.
type CatalogProvider interface {
	// SearchProductsByMetadata queries the indexed metadata search. Results
	// may lag recent writes; callers pair it with ListActiveProducts.
	SearchProductsByMetadata(ctx context.Context, key, value string) ([]*Product, error)

	// ListActiveProducts lists active products for client-side filtering.
	ListActiveProducts(ctx context.Context) ([]*Product, error)

	GetProduct(ctx context.Context, productID string) (*Product, error)
	CreateProduct(ctx context.Context, req *CreateProductRequest) (*Product, error)
	UpdateProduct(ctx context.Context, productID string, req *UpdateProductRequest) (*Product, error)
	UpdateProductMetadata(ctx context.Context, productID string, metadata map[string]string) (*Product, error)

	// ArchiveProduct deactivates a product. Stripe products are archived,
	// not destroyed.
	ArchiveProduct(ctx context.Context, productID string) error

	ListActivePrices(ctx context.Context, productID string) ([]*Price, error)
	CreatePrice(ctx context.Context, req *CreatePriceRequest) (*Price, error)
	UpdatePriceMetadata(ctx context.Context, priceID string, metadata map[string]string) (*Price, error)

	CreateCustomer(ctx context.Context, email string, metadata map[string]string) (*Customer, error)
	DeleteCustomer(ctx context.Context, customerID string) error

	CreateCheckoutSession(ctx context.Context, req *CheckoutSessionRequest) (*CheckoutSession, error)

	// GetProviderName returns the provider name
	GetProviderName() string
}

// Product is the provider-side product representation.
type Product struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Active      bool              `json:"active"`
	Images      []string          `json:"images,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Recurring describes a recurring price interval.
type Recurring struct {
	Interval      string `json:"interval"`
	IntervalCount int64  `json:"interval_count,omitempty"`
}

// Price is the provider-side price representation. Amount and currency are
// immutable once created.
type Price struct {
	ID         string            `json:"id"`
	ProductID  string            `json:"product_id"`
	UnitAmount int64             `json:"unit_amount"`
	Currency   string            `json:"currency"`
	Active     bool              `json:"active"`
	Recurring  *Recurring        `json:"recurring,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// Customer is the provider-side customer record.
type Customer struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// CheckoutSession is the short-lived provider resource representing one
// payment or subscription attempt.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateProductRequest carries the desired product specification.
type CreateProductRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Images      []string          `json:"images,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Active      *bool             `json:"active,omitempty"`
}

// UpdateProductRequest carries a partial product update. Nil fields are left
// untouched.
type UpdateProductRequest struct {
	Name        *string           `json:"name,omitempty"`
	Description *string           `json:"description,omitempty"`
	Images      []string          `json:"images,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Active      *bool             `json:"active,omitempty"`
}

// CreatePriceRequest carries the desired price specification.
type CreatePriceRequest struct {
	ProductID  string            `json:"product_id"`
	UnitAmount int64             `json:"unit_amount"`
	Currency   string            `json:"currency"`
	Recurring  *Recurring        `json:"recurring,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// CheckoutSessionRequest carries the checkout session parameters.
type CheckoutSessionRequest struct {
	CustomerID string            `json:"customer_id"`
	PriceID    string            `json:"price_id"`
	Mode       string            `json:"mode"`
	SuccessURL string            `json:"success_url"`
	CancelURL  string            `json:"cancel_url"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// ProviderType represents the type of catalog provider
type ProviderType string

const (
	ProviderTypeStripe ProviderType = "stripe"
)

// Checkout session modes accepted by the orchestrator.
const (
	CheckoutModePayment      = "payment"
	CheckoutModeSubscription = "subscription"
)
