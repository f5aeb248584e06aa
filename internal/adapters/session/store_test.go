package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acme/quote-manager/internal/domain"
	"github.com/acme/quote-manager/internal/ports"
)

// exerciseStore runs the behaviour every SessionStore must share.
func exerciseStore(t *testing.T, store ports.SessionStore) {
	t.Helper()

	ctx := context.Background()

	_, err := store.Load(ctx, "offline_missing.myshopify.com")
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))

	expires := time.Now().Add(time.Hour).Truncate(time.Second)

	s := &domain.Session{
		ID:          "offline_acme.myshopify.com",
		Shop:        "acme.myshopify.com",
		State:       "nonce",
		AccessToken: "shpat_123",
		Scope:       "read_draft_orders",
		ExpiresAt:   expires,
	}
	require.NoError(t, store.Store(ctx, s))

	got, err := store.Load(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.Shop, got.Shop)
	assert.Equal(t, s.AccessToken, got.AccessToken)
	assert.Equal(t, s.Scope, got.Scope)
	assert.WithinDuration(t, expires, got.ExpiresAt, time.Second)

	s.AccessToken = "shpat_456"
	require.NoError(t, store.Store(ctx, s))

	got, err = store.Load(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "shpat_456", got.AccessToken)

	require.NoError(t, store.Delete(ctx, s.ID))
	require.NoError(t, store.Delete(ctx, s.ID), "deleting twice is fine")

	_, err = store.Load(ctx, s.ID)
	assert.True(t, domain.IsNotFound(err))

	err = store.Store(ctx, &domain.Session{})
	assert.True(t, domain.IsValidation(err))
}
