// Package main is the entry point for the quote manager.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/acme/quote-manager/internal/adapters/clients"
	"github.com/acme/quote-manager/internal/adapters/clients/acl"
	"github.com/acme/quote-manager/internal/adapters/http"
	"github.com/acme/quote-manager/internal/adapters/http/handlers"
	"github.com/acme/quote-manager/internal/adapters/http/middleware"
	"github.com/acme/quote-manager/internal/app"
	"github.com/acme/quote-manager/internal/platform/config"
	"github.com/acme/quote-manager/internal/platform/logging"
	"github.com/acme/quote-manager/internal/platform/telemetry"
	"github.com/acme/quote-manager/internal/ports"
)

// Build-time variables, injected via ldflags:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD)"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// readinessCacheTTL spaces out the Admin API calls made by readiness probes.
const readinessCacheTTL = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting quote manager",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("admin_api_version", cfg.Shopify.API.Version),
		slog.String("session_driver", cfg.Session.Driver),
	)

	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:         cfg.Telemetry.Enabled,
		Endpoint:        cfg.Telemetry.Endpoint,
		ServiceName:     cfg.Telemetry.ServiceName,
		Version:         cfg.App.Version,
		Environment:     cfg.App.Environment,
		AdminAPIVersion: cfg.Shopify.API.Version,
		Insecure:        cfg.Telemetry.Insecure,
		SamplingRate:    cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if shutdownErr := telProvider.Shutdown(shutdownCtx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	healthRegistry := ports.NewHealthRegistry(ports.WithResultTTL(readinessCacheTTL))

	// Admin API relay: one instrumented transport shared by every adapter.
	transport, err := clients.New(&clients.Config{
		URL:         cfg.Shopify.AdminURL(),
		ServiceName: "shopify-admin",
		Timeout:     cfg.Client.Timeout,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		RateLimit:   cfg.Client.RateLimit,
		AuthFunc:    clients.AccessToken(cfg.Shopify.Access.Token),
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating admin client: %w", err)
	}

	gateway := clients.NewGraphQL(transport)
	if err := healthRegistry.Register(gateway); err != nil {
		return fmt.Errorf("registering gateway health check: %w", err)
	}

	draftOrders := acl.NewDraftOrderAdapter(acl.DraftOrderAdapterConfig{
		Gateway:  gateway,
		Currency: cfg.Offers.Currency,
		Logger:   logger,
	})
	catalog := acl.NewCatalogAdapter(gateway)

	sessions, err := openSessionStore(ctx, &cfg.Session, logger)
	if err != nil {
		return err
	}
	defer sessions.close()

	if sessions.checker != nil {
		if err := healthRegistry.Register(sessions.checker); err != nil {
			return fmt.Errorf("registering session store health check: %w", err)
		}
	}

	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		Repository: draftOrders,
		Senders:    cfg.Offers.Senders,
		Logger:     logger,
	})
	catalogService := app.NewCatalogService(catalog, logger)
	paymentTermsService := app.NewPaymentTermsService(draftOrders, logger)

	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime).
		WithAdminAPIVersion(cfg.Shopify.API.Version)

	routerCfg := http.RouterConfig{
		Logger:              logger,
		ServiceName:         cfg.App.Name,
		HealthHandler:       handlers.NewHealthHandler(healthRegistry, buildInfo),
		QuoteHandler:        handlers.NewQuoteHandler(quoteService),
		CatalogHandler:      handlers.NewCatalogHandler(catalogService),
		PaymentTermsHandler: handlers.NewPaymentTermsHandler(paymentTermsService),
		CORSOrigins:         cfg.CORS.Origins,
		Timeout:             http.DefaultRequestTimeout,
	}

	if cfg.Shopify.OAuthEnabled() {
		routerCfg.AuthHandler = handlers.NewAuthHandler(app.NewAuthService(app.AuthServiceConfig{
			APIKey:     cfg.Shopify.API.Key,
			APISecret:  cfg.Shopify.API.Secret,
			Scopes:     cfg.Shopify.ScopeList(),
			AppURL:     cfg.Shopify.App.URL,
			Sessions:   sessions.store,
			SessionTTL: cfg.Session.TTL,
			Logger:     logger,
		}))
	} else {
		logger.Warn("install handshake disabled: shopify.api.key, shopify.api.secret and shopify.app.url are required")
	}

	if cfg.Auth.Enabled {
		routerCfg.SessionToken = &middleware.SessionTokenConfig{
			Secret:   cfg.Shopify.API.Secret,
			Audience: cfg.Shopify.API.Key,
			Leeway:   cfg.Auth.Leeway,
		}
	}

	if rl := cfg.Server.RateLimit; rl.Enabled {
		routerCfg.RateLimiter = middleware.NewRateLimiter(rl.Rate, rl.Burst)
	}

	server := http.New(&cfg.Server, logger)
	http.SetupRouter(server.Engine(), routerCfg)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Run(gctx)
	})

	if sessions.purge != nil {
		g.Go(func() error {
			purgeExpiredSessions(gctx, sessions.purge, cfg.Session.TTL, logger)
			return nil
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("shutdown complete")

	return nil
}

// purgeExpiredSessions deletes expired rows once per interval until ctx ends.
func purgeExpiredSessions(
	ctx context.Context,
	purge func(context.Context) (int64, error),
	interval time.Duration,
	logger *slog.Logger,
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := purge(ctx)
			if err != nil {
				logger.Warn("session purge failed", slog.Any("error", err))
				continue
			}

			if n > 0 {
				logger.Debug("expired sessions purged", slog.Int64("count", n))
			}
		}
	}
}
