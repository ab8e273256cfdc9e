package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	handlers "github.com/shop2give/payment-service/internal/adapter/handler/http"
	"github.com/shop2give/payment-service/internal/config"
	"github.com/shop2give/payment-service/internal/domain/provider"
	"github.com/shop2give/payment-service/internal/infrastructure/database"
	providerfactory "github.com/shop2give/payment-service/internal/infrastructure/provider"
	"github.com/shop2give/payment-service/internal/middleware/auth"
	"github.com/shop2give/payment-service/internal/middleware/csrf"
	"github.com/shop2give/payment-service/internal/middleware/ratelimit"
	"github.com/shop2give/payment-service/internal/usecase"
)

type Server struct {
	config   *config.Config
	logger   *zap.Logger
	echo     *echo.Echo
	repos    *database.Repositories
	provider provider.CatalogProvider
}

// requestValidator adapts validator/v10 to echo's Validator interface
type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func NewServer(cfg *config.Config, logger *zap.Logger, repos *database.Repositories) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{
			echo.HeaderAuthorization,
			echo.HeaderContentType,
			csrf.TokenHeader,
			auth.TestModeHeader,
		},
	}))

	factory := providerfactory.NewFactory(cfg, logger)
	catalogProvider, err := factory.GetProvider(provider.ProviderTypeStripe)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog provider: %w", err)
	}

	return &Server{
		config:   cfg,
		logger:   logger,
		echo:     e,
		repos:    repos,
		provider: catalogProvider,
	}, nil
}

func (s *Server) Start() error {
	// Setup routes
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.config.Service.Name,
		})
	})

	// Usecases
	syncService := usecase.NewCatalogSyncService(s.provider, s.repos.Product, s.repos.Price, s.logger)
	productService := usecase.NewProductService(s.provider, s.repos.Product, s.repos.Price, syncService, s.logger)
	checkoutService := usecase.NewCheckoutService(s.provider, s.repos.CustomerMapping, s.repos.Subscription, s.repos.CheckoutLog, s.logger)
	seedService := usecase.NewSeedService(syncService, s.repos.Campaign, s.logger)
	limiter := usecase.NewRateLimitService(s.repos.RateLimit, s.config.RateLimit.MaxRequests, s.config.RateLimit.WindowSeconds, s.logger)
	csrfService := csrf.NewService(s.newCSRFStore(), s.logger)

	// Handlers
	productHandler := handlers.NewProductHandler(productService, s.logger)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, s.logger)
	seedHandler := handlers.NewSeedHandler(seedService, s.logger)
	csrfHandler := handlers.NewCSRFHandler(csrfService, s.logger)

	// JWT middleware configuration
	jwtConfig := auth.JWTConfig{
		Secret:         s.config.Service.Supabase.JWTSecret,
		Logger:         s.logger,
		SkipPaths:      []string{"/health"},
		EnableTestAuth: s.config.Service.EnableTestAuth,
	}

	authenticated := s.echo.Group("", auth.JWTMiddleware(jwtConfig))

	// Catalog API. Reads need only a valid token; mutating actions
	// additionally pass the CSRF gate inside the POST route.
	products := authenticated.Group("/stripe-products",
		ratelimit.Middleware(limiter, "stripe-products", s.logger))
	products.GET("", productHandler.HandleQuery)
	products.POST("", productHandler.Handle, csrf.Middleware(csrfService, s.logger))

	// Checkout orchestration
	authenticated.POST("/stripe-checkout", checkoutHandler.CreateSession,
		ratelimit.Middleware(limiter, "stripe-checkout", s.logger))

	// Bulk seeding
	authenticated.GET("/stripe-seed-example-products", seedHandler.Seed,
		ratelimit.Middleware(limiter, "stripe-seed-example-products", s.logger))

	// CSRF token issuance
	authenticated.GET("/generate-csrf-token", csrfHandler.Generate)
}

// newCSRFStore picks the Redis-backed token store when Redis is configured,
// otherwise the in-process store. The in-process store is only sound for a
// single-instance deployment.
func (s *Server) newCSRFStore() csrf.TokenStore {
	if s.config.Redis.Addr == "" {
		s.logger.Warn("Redis not configured, using in-memory CSRF token store")
		return csrf.NewMemoryStore()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     s.config.Redis.Addr,
		Password: s.config.Redis.Password,
		DB:       s.config.Redis.DB,
	})
	return csrf.NewRedisStore(client)
}
