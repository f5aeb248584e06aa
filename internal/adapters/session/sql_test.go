package session

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/acme/quote-manager/internal/domain"
)

func newSQLiteStore(t *testing.T) *SQLStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	store, err := NewSQLStore(context.Background(), db)
	require.NoError(t, err)

	return store
}

func TestSQLStore(t *testing.T) {
	exerciseStore(t, newSQLiteStore(t))
}

func TestSQLStore_RequiresDB(t *testing.T) {
	_, err := NewSQLStore(context.Background(), nil)
	assert.Error(t, err)
}

func TestSQLStore_ExpiryAndPurge(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Store(ctx, &domain.Session{ID: "state:old", Shop: "a.myshopify.com", ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, store.Store(ctx, &domain.Session{ID: "offline_a.myshopify.com", Shop: "a.myshopify.com"}))

	_, err := store.Load(ctx, "state:old")
	assert.True(t, domain.IsNotFound(err))

	purged, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = store.Load(ctx, "offline_a.myshopify.com")
	assert.NoError(t, err)
}

func TestSQLStore_Check(t *testing.T) {
	store := newSQLiteStore(t)

	assert.Equal(t, "session-sql", store.Name())
	assert.NoError(t, store.Check(context.Background()))
}

func TestSQLStore_Close(t *testing.T) {
	store := newSQLiteStore(t)

	require.NoError(t, store.Close())
	assert.Error(t, store.Check(context.Background()))
}
