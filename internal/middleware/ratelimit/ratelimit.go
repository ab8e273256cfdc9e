package ratelimit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/shop2give/payment-service/internal/middleware/auth"
	"github.com/shop2give/payment-service/internal/usecase"
)

// Middleware enforces the per-user request budget for one named surface.
// Unauthenticated requests fall back to the remote address so the limiter
// still covers endpoints ahead of auth.
func Middleware(limiter *usecase.RateLimitService, name string, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identifier := c.RealIP()
			if user, err := auth.GetUserFromContext(c); err == nil {
				identifier = user.UserID.String()
			}

			result, err := limiter.CheckLimit(c.Request().Context(), name, identifier)
			if err != nil {
				// Fail open. The limiter already logs details.
				return next(c)
			}

			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			c.Response().Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed {
				retryAfter := int(time.Until(result.ResetAt).Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))

				logger.Warn("Rate limit exceeded",
					zap.String("name", name),
					zap.String("identifier", identifier))

				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error": "Too many requests. Please try again later.",
					"code":  "RATE_LIMIT_EXCEEDED",
				})
			}

			return next(c)
		}
	}
}
