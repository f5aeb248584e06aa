package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/acme/quote-manager/internal/adapters/session"
	"github.com/acme/quote-manager/internal/platform/config"
	"github.com/acme/quote-manager/internal/ports"
)

// sessionBackend is the configured session store and its lifecycle hooks.
type sessionBackend struct {
	store ports.SessionStore

	// checker is nil for the in-memory store.
	checker ports.HealthChecker

	// purge deletes expired sessions; nil when the backend expires them itself.
	purge func(context.Context) (int64, error)

	close func()
}

func openSessionStore(ctx context.Context, cfg *config.SessionConfig, logger *slog.Logger) (*sessionBackend, error) {
	switch cfg.Driver {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("connecting to session redis: %w", err)
		}

		store := session.NewRedisStore(client, session.DefaultRedisPrefix)
		logger.Info("session store ready", slog.String("driver", "redis"), slog.String("addr", cfg.Redis.Addr))

		return &sessionBackend{
			store:   store,
			checker: store,
			close: func() {
				if err := client.Close(); err != nil {
					logger.Warn("closing session redis", slog.Any("error", err))
				}
			},
		}, nil

	case "sql":
		store, err := session.OpenPostgres(ctx, cfg.SQL.DSN)
		if err != nil {
			return nil, err
		}

		logger.Info("session store ready", slog.String("driver", "sql"))

		return &sessionBackend{
			store:   store,
			checker: store,
			purge:   store.PurgeExpired,
			close: func() {
				if err := store.Close(); err != nil {
					logger.Warn("closing session database", slog.Any("error", err))
				}
			},
		}, nil

	default:
		logger.Info("session store ready", slog.String("driver", "memory"))

		return &sessionBackend{
			store: session.NewMemoryStore(),
			close: func() {},
		}, nil
	}
}
