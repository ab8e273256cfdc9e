package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	domainerrors "github.com/shop2give/payment-service/internal/domain/errors"
	"github.com/shop2give/payment-service/internal/domain/model"
	"github.com/shop2give/payment-service/internal/domain/provider"
)

type checkoutMocks struct {
	provider         *MockCatalogProvider
	mappingRepo      *MockCustomerMappingRepository
	subscriptionRepo *MockSubscriptionRepository
	checkoutLogRepo  *MockCheckoutLogRepository
}

func newTestCheckoutService() (*CheckoutService, *checkoutMocks) {
	m := &checkoutMocks{
		provider:         new(MockCatalogProvider),
		mappingRepo:      new(MockCustomerMappingRepository),
		subscriptionRepo: new(MockSubscriptionRepository),
		checkoutLogRepo:  new(MockCheckoutLogRepository),
	}
	svc := NewCheckoutService(m.provider, m.mappingRepo, m.subscriptionRepo, m.checkoutLogRepo, zap.NewNop())
	return svc, m
}

func validCheckoutRequest() *CheckoutRequest {
	return &CheckoutRequest{
		PriceID:    "price_123",
		SuccessURL: "https://example.com/success",
		CancelURL:  "https://example.com/cancel",
		Mode:       provider.CheckoutModePayment,
	}
}

func TestCheckoutService_Checkout_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CheckoutRequest)
		wantMsg string
	}{
		{
			name:    "missing price_id",
			mutate:  func(r *CheckoutRequest) { r.PriceID = "" },
			wantMsg: "Missing required parameter price_id",
		},
		{
			name:    "missing success_url",
			mutate:  func(r *CheckoutRequest) { r.SuccessURL = "" },
			wantMsg: "Missing required parameter success_url",
		},
		{
			name:    "missing cancel_url",
			mutate:  func(r *CheckoutRequest) { r.CancelURL = "" },
			wantMsg: "Missing required parameter cancel_url",
		},
		{
			name:    "unsupported mode",
			mutate:  func(r *CheckoutRequest) { r.Mode = "setup" },
			wantMsg: "Expected parameter mode to be one of payment, subscription",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestCheckoutService()
			userID := uuid.New()

			m.checkoutLogRepo.On("Create", mock.Anything, mock.MatchedBy(func(row *model.CheckoutLog) bool {
				return row.UserID == userID && !row.Success &&
					row.ErrorMessage != nil && *row.ErrorMessage == tt.wantMsg
			})).Return(nil)

			req := validCheckoutRequest()
			tt.mutate(req)

			result, err := svc.Checkout(context.Background(), userID, "donor@example.com", req)

			assert.Nil(t, result)
			var validationErr *domainerrors.ValidationError
			assert.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantMsg, err.Error())
			m.checkoutLogRepo.AssertNumberOfCalls(t, "Create", 1)
			m.provider.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
		})
	}
}

func TestCheckoutService_Checkout_ExistingCustomerSuccess(t *testing.T) {
	svc, m := newTestCheckoutService()
	userID := uuid.New()

	m.mappingRepo.On("GetByUserID", mock.Anything, userID).Return(&model.CustomerMapping{
		UserID:             userID,
		ProviderCustomerID: "cus_existing",
		CustomerEmail:      "donor@example.com",
	}, nil)
	m.provider.On("CreateCheckoutSession", mock.Anything, mock.MatchedBy(func(req *provider.CheckoutSessionRequest) bool {
		return req.CustomerID == "cus_existing" &&
			req.PriceID == "price_123" &&
			req.Mode == provider.CheckoutModePayment &&
			req.Metadata[CustomerMetadataUserID] == userID.String()
	})).Return(&provider.CheckoutSession{ID: "cs_1", URL: "https://checkout.example.com/cs_1"}, nil)
	m.checkoutLogRepo.On("Create", mock.Anything, mock.MatchedBy(func(row *model.CheckoutLog) bool {
		return row.UserID == userID && row.Success && row.ErrorMessage == nil
	})).Return(nil)

	result, err := svc.Checkout(context.Background(), userID, "donor@example.com", validCheckoutRequest())

	assert.NoError(t, err)
	assert.Equal(t, "cs_1", result.SessionID)
	assert.Equal(t, "https://checkout.example.com/cs_1", result.URL)
	m.checkoutLogRepo.AssertNumberOfCalls(t, "Create", 1)
	m.provider.AssertNotCalled(t, "CreateCustomer", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutService_Checkout_CreatesCustomerOnFirstUse(t *testing.T) {
	svc, m := newTestCheckoutService()
	userID := uuid.New()

	m.mappingRepo.On("GetByUserID", mock.Anything, userID).Return(nil, nil)
	m.provider.On("CreateCustomer", mock.Anything, "donor@example.com", mock.MatchedBy(func(metadata map[string]string) bool {
		return metadata[CustomerMetadataUserID] == userID.String()
	})).Return(&provider.Customer{ID: "cus_new", Email: "donor@example.com"}, nil)
	m.mappingRepo.On("Create", mock.Anything, mock.MatchedBy(func(mapping *model.CustomerMapping) bool {
		return mapping.UserID == userID && mapping.ProviderCustomerID == "cus_new"
	})).Return(nil)
	m.provider.On("CreateCheckoutSession", mock.Anything, mock.Anything).
		Return(&provider.CheckoutSession{ID: "cs_2", URL: "https://checkout.example.com/cs_2"}, nil)
	m.checkoutLogRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Checkout(context.Background(), userID, "donor@example.com", validCheckoutRequest())

	assert.NoError(t, err)
	assert.Equal(t, "cs_2", result.SessionID)
	m.provider.AssertNotCalled(t, "DeleteCustomer", mock.Anything, mock.Anything)
	// Payment mode never touches subscription bookkeeping.
	m.subscriptionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckoutService_Checkout_DeletesCustomerWhenMappingFails(t *testing.T) {
	svc, m := newTestCheckoutService()
	userID := uuid.New()

	m.mappingRepo.On("GetByUserID", mock.Anything, userID).Return(nil, nil)
	m.provider.On("CreateCustomer", mock.Anything, "donor@example.com", mock.Anything).
		Return(&provider.Customer{ID: "cus_orphan", Email: "donor@example.com"}, nil)
	m.mappingRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed"))
	m.provider.On("DeleteCustomer", mock.Anything, "cus_orphan").Return(nil)
	m.checkoutLogRepo.On("Create", mock.Anything, mock.MatchedBy(func(row *model.CheckoutLog) bool {
		return !row.Success && row.ErrorMessage != nil &&
			*row.ErrorMessage == "Failed to create customer mapping"
	})).Return(nil)

	result, err := svc.Checkout(context.Background(), userID, "donor@example.com", validCheckoutRequest())

	assert.Nil(t, result)
	assert.EqualError(t, err, "Failed to create customer mapping")
	m.provider.AssertCalled(t, "DeleteCustomer", mock.Anything, "cus_orphan")
	m.provider.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
	m.checkoutLogRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestCheckoutService_Checkout_NeverDeletesPreexistingCustomer(t *testing.T) {
	svc, m := newTestCheckoutService()
	userID := uuid.New()

	m.mappingRepo.On("GetByUserID", mock.Anything, userID).Return(&model.CustomerMapping{
		UserID:             userID,
		ProviderCustomerID: "cus_existing",
	}, nil)
	m.provider.On("CreateCheckoutSession", mock.Anything, mock.Anything).
		Return(nil, errors.New("provider unavailable"))
	m.checkoutLogRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Checkout(context.Background(), userID, "donor@example.com", validCheckoutRequest())

	assert.Nil(t, result)
	assert.Error(t, err)
	m.provider.AssertNotCalled(t, "DeleteCustomer", mock.Anything, mock.Anything)
	// The session failure still leaves its audit row.
	m.checkoutLogRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestCheckoutService_Checkout_SubscriptionPlaceholderForNewCustomer(t *testing.T) {
	svc, m := newTestCheckoutService()
	userID := uuid.New()

	m.mappingRepo.On("GetByUserID", mock.Anything, userID).Return(nil, nil)
	m.provider.On("CreateCustomer", mock.Anything, "donor@example.com", mock.Anything).
		Return(&provider.Customer{ID: "cus_sub", Email: "donor@example.com"}, nil)
	m.mappingRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.subscriptionRepo.On("Create", mock.Anything, mock.MatchedBy(func(sub *model.Subscription) bool {
		return sub.ProviderCustomerID == "cus_sub" && sub.Status == model.SubscriptionStatusNotStarted
	})).Return(nil)
	m.provider.On("CreateCheckoutSession", mock.Anything, mock.Anything).
		Return(&provider.CheckoutSession{ID: "cs_3", URL: "https://checkout.example.com/cs_3"}, nil)
	m.checkoutLogRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	req := validCheckoutRequest()
	req.Mode = provider.CheckoutModeSubscription

	_, err := svc.Checkout(context.Background(), userID, "donor@example.com", req)

	assert.NoError(t, err)
	// A customer created in this request cannot have a subscription row yet,
	// so no lookup happens before the insert.
	m.subscriptionRepo.AssertNotCalled(t, "GetByProviderCustomerID", mock.Anything, mock.Anything)
	m.subscriptionRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestCheckoutService_Checkout_SubscriptionPlaceholderForExistingCustomer(t *testing.T) {
	svc, m := newTestCheckoutService()
	userID := uuid.New()

	m.mappingRepo.On("GetByUserID", mock.Anything, userID).Return(&model.CustomerMapping{
		UserID:             userID,
		ProviderCustomerID: "cus_existing",
	}, nil)
	m.subscriptionRepo.On("GetByProviderCustomerID", mock.Anything, "cus_existing").Return(nil, nil)
	m.subscriptionRepo.On("Create", mock.Anything, mock.MatchedBy(func(sub *model.Subscription) bool {
		return sub.ProviderCustomerID == "cus_existing" && sub.Status == model.SubscriptionStatusNotStarted
	})).Return(nil)
	m.provider.On("CreateCheckoutSession", mock.Anything, mock.Anything).
		Return(&provider.CheckoutSession{ID: "cs_4", URL: "https://checkout.example.com/cs_4"}, nil)
	m.checkoutLogRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	req := validCheckoutRequest()
	req.Mode = provider.CheckoutModeSubscription

	_, err := svc.Checkout(context.Background(), userID, "donor@example.com", req)

	assert.NoError(t, err)
	m.subscriptionRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestCheckoutService_Checkout_SubscriptionRowAlreadyExists(t *testing.T) {
	svc, m := newTestCheckoutService()
	userID := uuid.New()

	m.mappingRepo.On("GetByUserID", mock.Anything, userID).Return(&model.CustomerMapping{
		UserID:             userID,
		ProviderCustomerID: "cus_existing",
	}, nil)
	m.subscriptionRepo.On("GetByProviderCustomerID", mock.Anything, "cus_existing").
		Return(&model.Subscription{ProviderCustomerID: "cus_existing", Status: model.SubscriptionStatusNotStarted}, nil)
	m.provider.On("CreateCheckoutSession", mock.Anything, mock.Anything).
		Return(&provider.CheckoutSession{ID: "cs_5", URL: "https://checkout.example.com/cs_5"}, nil)
	m.checkoutLogRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	req := validCheckoutRequest()
	req.Mode = provider.CheckoutModeSubscription

	_, err := svc.Checkout(context.Background(), userID, "donor@example.com", req)

	assert.NoError(t, err)
	m.subscriptionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckoutService_Checkout_MappingLookupFailure(t *testing.T) {
	svc, m := newTestCheckoutService()
	userID := uuid.New()

	m.mappingRepo.On("GetByUserID", mock.Anything, userID).Return(nil, errors.New("db down"))
	m.checkoutLogRepo.On("Create", mock.Anything, mock.MatchedBy(func(row *model.CheckoutLog) bool {
		return !row.Success && row.ErrorMessage != nil &&
			*row.ErrorMessage == "Failed to fetch customer information"
	})).Return(nil)

	result, err := svc.Checkout(context.Background(), userID, "donor@example.com", validCheckoutRequest())

	assert.Nil(t, result)
	assert.EqualError(t, err, "Failed to fetch customer information")
	m.checkoutLogRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestCheckoutService_Checkout_SubscriptionRecordFailure(t *testing.T) {
	svc, m := newTestCheckoutService()
	userID := uuid.New()

	m.mappingRepo.On("GetByUserID", mock.Anything, userID).Return(nil, nil)
	m.provider.On("CreateCustomer", mock.Anything, "donor@example.com", mock.Anything).
		Return(&provider.Customer{ID: "cus_rollback", Email: "donor@example.com"}, nil)
	m.mappingRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.subscriptionRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed"))
	m.provider.On("DeleteCustomer", mock.Anything, "cus_rollback").Return(nil)
	m.checkoutLogRepo.On("Create", mock.Anything, mock.MatchedBy(func(row *model.CheckoutLog) bool {
		return !row.Success && row.ErrorMessage != nil &&
			*row.ErrorMessage == "Failed to create subscription record"
	})).Return(nil)

	req := validCheckoutRequest()
	req.Mode = provider.CheckoutModeSubscription

	result, err := svc.Checkout(context.Background(), userID, "donor@example.com", req)

	assert.Nil(t, result)
	assert.EqualError(t, err, "Failed to create subscription record")
	m.provider.AssertCalled(t, "DeleteCustomer", mock.Anything, "cus_rollback")
	m.provider.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
}

func TestCheckoutService_Checkout_LogInsertFailureDoesNotChangeOutcome(t *testing.T) {
	svc, m := newTestCheckoutService()
	userID := uuid.New()

	m.mappingRepo.On("GetByUserID", mock.Anything, userID).Return(&model.CustomerMapping{
		UserID:             userID,
		ProviderCustomerID: "cus_existing",
	}, nil)
	m.provider.On("CreateCheckoutSession", mock.Anything, mock.Anything).
		Return(&provider.CheckoutSession{ID: "cs_6", URL: "https://checkout.example.com/cs_6"}, nil)
	m.checkoutLogRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("log table full"))

	result, err := svc.Checkout(context.Background(), userID, "donor@example.com", validCheckoutRequest())

	assert.NoError(t, err)
	assert.Equal(t, "cs_6", result.SessionID)
}
