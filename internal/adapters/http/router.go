package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/acme/quote-manager/internal/adapters/http/handlers"
	"github.com/acme/quote-manager/internal/adapters/http/middleware"
	"github.com/acme/quote-manager/internal/platform/telemetry"
)

// DefaultRequestTimeout bounds an API request, relay calls included.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig carries the handlers and middleware settings of the API.
// Nil handlers leave their routes unregistered.
type RouterConfig struct {
	Logger      *slog.Logger
	ServiceName string

	HealthHandler       *handlers.HealthHandler
	QuoteHandler        *handlers.QuoteHandler
	CatalogHandler      *handlers.CatalogHandler
	PaymentTermsHandler *handlers.PaymentTermsHandler
	AuthHandler         *handlers.AuthHandler

	// SessionToken enables bearer session-token checks on /api/v1 when set.
	SessionToken *middleware.SessionTokenConfig

	// RateLimiter throttles /api/v1 per client when set.
	RateLimiter *middleware.RateLimiter

	// CORSOrigins lists browser origins allowed to call the API.
	CORSOrigins []string

	// Timeout is the per-request deadline for /api/v1.
	Timeout time.Duration
}

// SetupRouter installs the middleware chain and every route.
//
// Global middleware runs in this order: recovery, request id, correlation
// id, tracing and metrics, request logging, CORS. The /api/v1 group adds
// the timeout, rate limit and session-token checks. Probes under /-/, the
// scrape endpoint and the install handshake stay outside the group.
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	global := []gin.HandlerFunc{
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
	}
	global = append(global, telemetry.Middleware(cfg.ServiceName)...)
	global = append(global,
		middleware.Logging(cfg.Logger),
		middleware.CORS(cfg.CORSOrigins),
	)
	engine.Use(global...)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	if cfg.AuthHandler != nil {
		cfg.AuthHandler.RegisterAuthRoutes(engine)
	}

	apiV1 := engine.Group("/api/v1")
	apiV1.Use(middleware.Timeout(cfg.Timeout))

	if cfg.RateLimiter != nil {
		apiV1.Use(cfg.RateLimiter.Middleware())
	}

	if cfg.SessionToken != nil {
		apiV1.Use(middleware.RequireSessionToken(*cfg.SessionToken))
	}

	setupAPIRoutes(apiV1, cfg)
}

func setupAPIRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterQuoteRoutes(rg)
	}

	if cfg.CatalogHandler != nil {
		cfg.CatalogHandler.RegisterCatalogRoutes(rg)
	}

	if cfg.PaymentTermsHandler != nil {
		cfg.PaymentTermsHandler.RegisterPaymentTermsRoutes(rg)
	}
}

// SetupMinimalRouter installs recovery, request ids and the probes only.
func SetupMinimalRouter(engine *gin.Engine, logger *slog.Logger, healthHandler *handlers.HealthHandler) {
	engine.Use(
		middleware.Recovery(logger),
		middleware.RequestID(),
	)

	if healthHandler != nil {
		healthHandler.RegisterHealthRoutesOnEngine(engine)
	}
}
