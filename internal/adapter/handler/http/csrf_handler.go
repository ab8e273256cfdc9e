package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/shop2give/payment-service/internal/middleware/auth"
	"github.com/shop2give/payment-service/internal/middleware/csrf"
)

// CSRFHandler issues per-user CSRF tokens
type CSRFHandler struct {
	csrf   *csrf.Service
	logger *zap.Logger
}

// NewCSRFHandler creates a new CSRF handler
func NewCSRFHandler(service *csrf.Service, logger *zap.Logger) *CSRFHandler {
	return &CSRFHandler{
		csrf:   service,
		logger: logger,
	}
}

// Generate issues a fresh token for the authenticated user, replacing any
// previous one
func (h *CSRFHandler) Generate(c echo.Context) error {
	user, err := auth.GetUserFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"error": "Unauthorized",
		})
	}

	token, err := h.csrf.Generate(c.Request().Context(), user.UserID.String())
	if err != nil {
		h.logger.Error("Failed to generate CSRF token",
			zap.String("user_id", user.UserID.String()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
	})
}
