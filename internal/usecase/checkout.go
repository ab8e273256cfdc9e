package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainerrors "github.com/shop2give/payment-service/internal/domain/errors"
	"github.com/shop2give/payment-service/internal/domain/model"
	"github.com/shop2give/payment-service/internal/domain/provider"
	"github.com/shop2give/payment-service/internal/domain/repository"
)

// CustomerMetadataUserID is the metadata key linking an external customer
// back to the local user.
const CustomerMetadataUserID = "userId"

// CheckoutRequest is the body of a checkout session request
type CheckoutRequest struct {
	PriceID    string `json:"price_id"`
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
	Mode       string `json:"mode"`
}

// CheckoutResult carries the created session back to the client
type CheckoutResult struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// CheckoutService orchestrates one checkout attempt: validate, resolve the
// customer lazily, keep subscription bookkeeping consistent, create the
// session, and leave exactly one audit row for every terminal branch.
type CheckoutService struct {
	provider         provider.CatalogProvider
	mappingRepo      repository.CustomerMappingRepository
	subscriptionRepo repository.SubscriptionRepository
	checkoutLogRepo  repository.CheckoutLogRepository
	logger           *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	catalogProvider provider.CatalogProvider,
	mappingRepo repository.CustomerMappingRepository,
	subscriptionRepo repository.SubscriptionRepository,
	checkoutLogRepo repository.CheckoutLogRepository,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		provider:         catalogProvider,
		mappingRepo:      mappingRepo,
		subscriptionRepo: subscriptionRepo,
		checkoutLogRepo:  checkoutLogRepo,
		logger:           logger,
	}
}

// Checkout runs the checkout state machine for an authenticated user
func (s *CheckoutService) Checkout(ctx context.Context, userID uuid.UUID, email string, req *CheckoutRequest) (*CheckoutResult, error) {
	if msg := validateCheckoutRequest(req); msg != "" {
		s.logAttempt(ctx, userID, false, msg)
		return nil, domainerrors.NewValidationError(msg)
	}

	compensations := newSaga(s.logger)

	customerID, err := s.resolveCustomer(ctx, userID, email, req.Mode, compensations)
	if err != nil {
		s.logAttempt(ctx, userID, false, err.Error())
		compensations.Rollback(ctx)
		return nil, err
	}

	session, err := s.provider.CreateCheckoutSession(ctx, &provider.CheckoutSessionRequest{
		CustomerID: customerID,
		PriceID:    req.PriceID,
		Mode:       req.Mode,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
		Metadata: map[string]string{
			CustomerMetadataUserID: userID.String(),
		},
	})
	if err != nil {
		s.logAttempt(ctx, userID, false, err.Error())
		return nil, err
	}

	s.logAttempt(ctx, userID, true, "")

	return &CheckoutResult{SessionID: session.ID, URL: session.URL}, nil
}

// resolveCustomer returns the user's external customer ID, creating the
// customer and its mapping on first use. Resources created here register an
// undo action with the saga; reusing a pre-existing customer registers
// nothing, so a later failure never deletes a customer this request did not
// create.
func (s *CheckoutService) resolveCustomer(ctx context.Context, userID uuid.UUID, email, mode string, compensations *saga) (string, error) {
	mapping, err := s.mappingRepo.GetByUserID(ctx, userID)
	if err != nil {
		return "", errors.New("Failed to fetch customer information")
	}

	if mapping == nil {
		customer, err := s.provider.CreateCustomer(ctx, email, map[string]string{
			CustomerMetadataUserID: userID.String(),
		})
		if err != nil {
			return "", err
		}
		compensations.Record("delete customer", func(ctx context.Context) error {
			return s.provider.DeleteCustomer(ctx, customer.ID)
		})

		err = s.mappingRepo.Create(ctx, &model.CustomerMapping{
			UserID:             userID,
			ProviderCustomerID: customer.ID,
			CustomerEmail:      email,
		})
		if err != nil {
			return "", errors.New("Failed to create customer mapping")
		}

		if mode == provider.CheckoutModeSubscription {
			if err := s.ensureSubscriptionRow(ctx, customer.ID, true); err != nil {
				return "", err
			}
		}

		return customer.ID, nil
	}

	if mode == provider.CheckoutModeSubscription {
		if err := s.ensureSubscriptionRow(ctx, mapping.ProviderCustomerID, false); err != nil {
			return "", err
		}
	}

	return mapping.ProviderCustomerID, nil
}

// ensureSubscriptionRow creates the not_started placeholder when no
// subscription row exists for the customer yet
func (s *CheckoutService) ensureSubscriptionRow(ctx context.Context, customerID string, justCreated bool) error {
	if !justCreated {
		existing, err := s.subscriptionRepo.GetByProviderCustomerID(ctx, customerID)
		if err != nil {
			return errors.New("Failed to fetch subscription information")
		}
		if existing != nil {
			return nil
		}
	}

	err := s.subscriptionRepo.Create(ctx, &model.Subscription{
		ProviderCustomerID: customerID,
		Status:             model.SubscriptionStatusNotStarted,
	})
	if err != nil {
		return errors.New("Failed to create subscription record")
	}
	return nil
}

// logAttempt appends the audit row. Best-effort: a failed insert is logged
// but never changes the outcome of the checkout.
func (s *CheckoutService) logAttempt(ctx context.Context, userID uuid.UUID, success bool, errorMessage string) {
	row := &model.CheckoutLog{
		UserID:    userID,
		Success:   success,
		Timestamp: time.Now(),
	}
	if errorMessage != "" {
		row.ErrorMessage = &errorMessage
	}

	if err := s.checkoutLogRepo.Create(ctx, row); err != nil {
		s.logger.Warn("Failed to write checkout log",
			zap.String("user_id", userID.String()),
			zap.Bool("success", success),
			zap.Error(err))
		return
	}

	if success {
		s.logger.Info("Successful checkout", zap.String("user_id", userID.String()))
	} else {
		s.logger.Warn("Failed checkout attempt",
			zap.String("user_id", userID.String()),
			zap.String("error", errorMessage))
	}
}

// validateCheckoutRequest checks fields in declaration order and returns the
// first failure as a user-facing message, or "" when the request is valid
func validateCheckoutRequest(req *CheckoutRequest) string {
	if req.PriceID == "" {
		return "Missing required parameter price_id"
	}
	if req.SuccessURL == "" {
		return "Missing required parameter success_url"
	}
	if req.CancelURL == "" {
		return "Missing required parameter cancel_url"
	}
	if req.Mode != provider.CheckoutModePayment && req.Mode != provider.CheckoutModeSubscription {
		return "Expected parameter mode to be one of payment, subscription"
	}
	return ""
}
