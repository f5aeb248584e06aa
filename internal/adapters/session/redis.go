package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/acme/quote-manager/internal/domain"
)

// DefaultRedisPrefix namespaces session keys.
const DefaultRedisPrefix = "quote-manager:session:"

// RedisStore keeps sessions as JSON values. Keys expire with the session.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore creates a store over client. Panics if client is nil.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if client == nil {
		panic("RedisStore: client is required")
	}

	if prefix == "" {
		prefix = DefaultRedisPrefix
	}

	return &RedisStore{client: client, prefix: prefix}
}

func (r *RedisStore) key(id string) string {
	return r.prefix + id
}

// Store writes the session with a TTL matching its expiry. A session that
// has already expired is removed instead.
func (r *RedisStore) Store(ctx context.Context, s *domain.Session) error {
	if s == nil || s.ID == "" {
		return domain.NewValidationError("id", "Session id is required.")
	}

	var ttl time.Duration
	if !s.ExpiresAt.IsZero() {
		ttl = time.Until(s.ExpiresAt)
		if ttl <= 0 {
			return r.Delete(ctx, s.ID)
		}
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	if err := r.client.Set(ctx, r.key(s.ID), data, ttl).Err(); err != nil {
		return domain.NewUnavailableError(r.Name(), err.Error())
	}

	return nil
}

// Load reads the session. Missing keys are reported as not found.
func (r *RedisStore) Load(ctx context.Context, id string) (*domain.Session, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.NewNotFoundError(entitySession, id)
		}

		return nil, domain.NewUnavailableError(r.Name(), err.Error())
	}

	var s domain.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding session %q: %w", id, err)
	}

	if s.Expired(time.Now()) {
		return nil, domain.NewNotFoundError(entitySession, id)
	}

	return &s, nil
}

// Delete removes the session key.
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return domain.NewUnavailableError(r.Name(), err.Error())
	}

	return nil
}

// Name implements ports.HealthChecker.
func (r *RedisStore) Name() string {
	return "session-redis"
}

// Check pings the server.
func (r *RedisStore) Check(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
