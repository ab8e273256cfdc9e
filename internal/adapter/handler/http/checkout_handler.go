package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainerrors "github.com/shop2give/payment-service/internal/domain/errors"
	"github.com/shop2give/payment-service/internal/middleware/auth"
	"github.com/shop2give/payment-service/internal/usecase"
)

// CheckoutHandler serves checkout session creation
type CheckoutHandler struct {
	checkout *usecase.CheckoutService
	logger   *zap.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkout *usecase.CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		logger:   logger,
	}
}

// CreateSession runs the checkout orchestration for the authenticated user
func (h *CheckoutHandler) CreateSession(c echo.Context) error {
	user, err := auth.GetUserFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"error": "Unauthorized",
		})
	}

	var req usecase.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
		})
	}

	result, err := h.checkout.Checkout(c.Request().Context(), user.UserID, user.Email, &req)
	if err != nil {
		status := http.StatusInternalServerError
		if domainerrors.IsValidation(err) {
			status = http.StatusBadRequest
		}

		var providerErr *domainerrors.ProviderError
		if errors.As(err, &providerErr) || status == http.StatusInternalServerError {
			h.logger.Error("Checkout failed",
				zap.String("user_id", user.UserID.String()),
				zap.Error(err))
		}

		return c.JSON(status, echo.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, result)
}
