package session

import (
	"context"
	"os"
	"testing"

	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRedisStore connects to REDIS_ADDR, skipping when it is unset.
func newRedisStore(t *testing.T) *RedisStore {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Ping(context.Background()).Err())

	return NewRedisStore(client, "test:"+t.Name()+":")
}

func TestRedisStore(t *testing.T) {
	exerciseStore(t, newRedisStore(t))
}

func TestRedisStore_Check(t *testing.T) {
	store := newRedisStore(t)

	assert.Equal(t, "session-redis", store.Name())
	assert.NoError(t, store.Check(context.Background()))
}

func TestNewRedisStore(t *testing.T) {
	assert.Panics(t, func() { NewRedisStore(nil, "") })

	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	store := NewRedisStore(client, "")
	assert.Equal(t, DefaultRedisPrefix+"x", store.key("x"))
}
