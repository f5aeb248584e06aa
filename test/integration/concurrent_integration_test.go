//go:build integration

package integration

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acme/quote-manager/internal/adapters/clients"
	"github.com/acme/quote-manager/internal/adapters/clients/acl"
	"github.com/acme/quote-manager/internal/adapters/http/middleware"
	"github.com/acme/quote-manager/internal/adapters/session"
	"github.com/acme/quote-manager/internal/domain"
	"github.com/acme/quote-manager/internal/platform/config"
)

// TestConcurrent_ListQuotes drives the full API from many goroutines and
// checks every listing is repaired and answered independently.
func TestConcurrent_ListQuotes(t *testing.T) {
	admin := newFakeAdmin(t)
	admin.respond("getDraftOrders", `{"draftOrders":{"edges":[
	  {"node":{"id":"gid://shopify/DraftOrder/1","name":"#D1","status":"COMPLETED","metafield":{"value":"[\"submitted\"]"}}}
	]}}`)
	admin.respond("updateQuoteStatus", `{"metafieldsSet":{"metafields":[],"userErrors":[]}}`)

	api := newQuoteAPI(t, admin)

	const n = 40

	var (
		wg sync.WaitGroup
		ok atomic.Int32
	)

	for i := range n {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes", http.NoBody)
			req.Header.Set(middleware.HeaderRequestID, fmt.Sprintf("req-%d", i))

			w := httptest.NewRecorder()
			api.ServeHTTP(w, req)

			if w.Code == http.StatusOK && w.Header().Get(middleware.HeaderRequestID) == fmt.Sprintf("req-%d", i) {
				ok.Add(1)
			}
		}(i)
	}

	wg.Wait()

	assert.Equal(t, int32(n), ok.Load())
	assert.Len(t, admin.callsTo("updateQuoteStatus"), n, "each listing repairs the stale tag")
}

// TestConcurrent_ClientThrottle checks the client-side limiter spaces out
// concurrent Admin API calls.
func TestConcurrent_ClientThrottle(t *testing.T) {
	admin := newFakeAdmin(t)
	admin.respond("getDraftOrder", `{"draftOrder":`+draftOrderJSON+`}`)

	cfg := relayConfig(admin)
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, Rate: 20, Burst: 1}

	_, gateway := newRelay(t, cfg)
	adapter := acl.NewDraftOrderAdapter(acl.DraftOrderAdapterConfig{Gateway: gateway, Logger: discardLogger()})

	const n = 10

	var (
		wg     sync.WaitGroup
		failed atomic.Int32
	)

	start := time.Now()

	for range n {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if _, err := adapter.GetDraftOrder(context.Background(), "gid://shopify/DraftOrder/1001"); err != nil {
				failed.Add(1)
			}
		}()
	}

	wg.Wait()

	assert.Zero(t, failed.Load())
	assert.Len(t, admin.callsTo("getDraftOrder"), n)
	assert.GreaterOrEqual(t, time.Since(start), 350*time.Millisecond)
}

// TestConcurrent_ThrottleRespectsDeadline checks a caller whose deadline
// expires while waiting for the limiter gets an unavailable error.
func TestConcurrent_ThrottleRespectsDeadline(t *testing.T) {
	admin := newFakeAdmin(t)
	admin.respond("getDraftOrder", `{"draftOrder":`+draftOrderJSON+`}`)

	cfg := relayConfig(admin)
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, Rate: 0.5, Burst: 1}

	_, gateway := newRelay(t, cfg)
	adapter := acl.NewDraftOrderAdapter(acl.DraftOrderAdapterConfig{Gateway: gateway, Logger: discardLogger()})

	_, err := adapter.GetDraftOrder(context.Background(), "gid://shopify/DraftOrder/1001")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = adapter.GetDraftOrder(ctx, "gid://shopify/DraftOrder/1001")
	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))
	assert.Len(t, admin.callsTo("getDraftOrder"), 1)
}

// TestConcurrent_CircuitBreakerUnderLoad checks the breaker opens under a
// burst of failures and stops traffic to the platform.
func TestConcurrent_CircuitBreakerUnderLoad(t *testing.T) {
	admin := newFakeAdmin(t)
	admin.fail("getDraftOrder", http.StatusInternalServerError)

	cfg := relayConfig(admin)
	cfg.Circuit = config.CircuitBreakerConfig{MaxFailures: 5, Timeout: time.Minute, HalfOpenLimit: 1}

	client, gateway := newRelay(t, cfg)
	adapter := acl.NewDraftOrderAdapter(acl.DraftOrderAdapterConfig{Gateway: gateway, Logger: discardLogger()})

	var wg sync.WaitGroup

	for range 30 {
		wg.Add(1)

		go func() {
			defer wg.Done()
			_, _ = adapter.GetDraftOrder(context.Background(), "gid://shopify/DraftOrder/1001")
		}()
	}

	wg.Wait()

	require.Equal(t, clients.StateOpen, client.CircuitState())

	sent := len(admin.callsTo("getDraftOrder"))
	_, err := adapter.GetDraftOrder(context.Background(), "gid://shopify/DraftOrder/1001")
	assert.True(t, domain.IsUnavailable(err))
	assert.Len(t, admin.callsTo("getDraftOrder"), sent, "open breaker sends nothing")
}

// TestConcurrent_MemorySessions exercises the in-memory session store from
// many goroutines.
func TestConcurrent_MemorySessions(t *testing.T) {
	store := session.NewMemoryStore()
	ctx := context.Background()

	const n = 100

	var wg sync.WaitGroup

	for i := range n {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			id := fmt.Sprintf("state:%d", i)
			assert.NoError(t, store.Store(ctx, &domain.Session{
				ID:        id,
				Shop:      "acme.myshopify.com",
				State:     id,
				ExpiresAt: time.Now().Add(time.Minute),
			}))

			loaded, err := store.Load(ctx, id)
			if assert.NoError(t, err) {
				assert.Equal(t, id, loaded.State)
			}

			if i%2 == 0 {
				assert.NoError(t, store.Delete(ctx, id))
			}
		}(i)
	}

	wg.Wait()

	assert.Equal(t, n/2, store.Len())
}
