package csrf

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/shop2give/payment-service/internal/middleware/auth"
)

// TokenHeader carries the CSRF token on mutating requests.
const TokenHeader = "X-CSRF-Token"

// TokenTTL is how long a generated token stays valid.
const TokenTTL = time.Hour

// Service issues and validates per-user CSRF tokens
type Service struct {
	store  TokenStore
	logger *zap.Logger
}

// NewService creates a new CSRF service
func NewService(store TokenStore, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Generate creates a fresh token for the user, replacing any previous one
func (s *Service) Generate(ctx context.Context, userID string) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate csrf token: %w", err)
	}
	token := hex.EncodeToString(buf)

	if err := s.store.Set(ctx, userID, token, TokenTTL); err != nil {
		return "", fmt.Errorf("failed to store csrf token: %w", err)
	}

	return token, nil
}

// Validate reports whether the presented token matches the stored one. The
// comparison is constant time.
func (s *Service) Validate(ctx context.Context, userID, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	stored, err := s.store.Get(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to load csrf token: %w", err)
	}
	if stored == "" || len(stored) != len(token) {
		return false, nil
	}

	return subtle.ConstantTimeCompare([]byte(stored), []byte(token)) == 1, nil
}

// Middleware rejects mutating requests that lack a valid CSRF token. Safe
// methods pass through untouched.
func Middleware(service *Service, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch c.Request().Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			user, err := auth.GetUserFromContext(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Authentication required",
					"code":  "AUTH_REQUIRED",
				})
			}

			token := c.Request().Header.Get(TokenHeader)
			valid, err := service.Validate(c.Request().Context(), user.UserID.String(), token)
			if err != nil {
				logger.Error("CSRF validation failed",
					zap.String("user_id", user.UserID.String()),
					zap.Error(err))
				return c.JSON(http.StatusInternalServerError, echo.Map{
					"error": "Failed to validate CSRF token",
					"code":  "CSRF_VALIDATION_ERROR",
				})
			}
			if !valid {
				logger.Warn("Invalid CSRF token",
					zap.String("user_id", user.UserID.String()),
					zap.String("path", c.Request().URL.Path))
				return c.JSON(http.StatusForbidden, echo.Map{
					"error": "Invalid or missing CSRF token",
					"code":  "INVALID_CSRF_TOKEN",
				})
			}

			return next(c)
		}
	}
}
