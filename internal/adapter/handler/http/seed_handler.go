package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainerrors "github.com/shop2give/payment-service/internal/domain/errors"
	"github.com/shop2give/payment-service/internal/middleware/auth"
	"github.com/shop2give/payment-service/internal/usecase"
)

// SeedHandler triggers bulk seeding of donation products for all active
// campaigns
type SeedHandler struct {
	seeder *usecase.SeedService
	logger *zap.Logger
}

// NewSeedHandler creates a new seed handler
func NewSeedHandler(seeder *usecase.SeedService, logger *zap.Logger) *SeedHandler {
	return &SeedHandler{
		seeder: seeder,
		logger: logger,
	}
}

// Seed runs the seeder and returns the aggregate results. Per-campaign
// failures land in results.errors; only a failure to start the run at all
// yields a 500.
func (h *SeedHandler) Seed(c echo.Context) error {
	user, err := auth.GetUserFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"success": false,
			"error":   "Unauthorized",
		})
	}
	if !user.IsElevated() {
		return c.JSON(http.StatusForbidden, echo.Map{
			"success": false,
			"error":   domainerrors.ErrInsufficientPermissions.Error(),
		})
	}

	results, err := h.seeder.SeedActiveCampaigns(c.Request().Context())
	if err != nil {
		h.logger.Error("Seeding failed to start", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"results": results,
	})
}
