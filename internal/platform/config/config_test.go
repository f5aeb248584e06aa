package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// emptyWorkdir runs the test in a directory with no configs/ so that only
// defaults and the environment apply.
func emptyWorkdir(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	emptyWorkdir(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, AppConfig{Name: "quote-manager", Version: "dev", Environment: "local"}, cfg.App)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, int64(DefaultMaxRequestSize), cfg.Server.MaxRequestSize)
	assert.Equal(t, "memory", cfg.Session.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "USD", cfg.Offers.Currency)
	assert.Equal(t, DefaultAPIVersion, cfg.Shopify.API.Version)
	assert.Equal(t, []string{"read_draft_orders", "write_draft_orders", "read_products", "read_customers"}, cfg.Shopify.ScopeList())
	assert.Empty(t, cfg.Shopify.Access.Token)

	assert.Equal(t, LogFileConfig{
		Path:       "./logs/app.log",
		MaxSizeMB:  DefaultLogFileMaxSizeMB,
		MaxBackups: DefaultLogFileMaxBackups,
		MaxAgeDays: DefaultLogFileMaxAgeDays,
		Compress:   true,
	}, cfg.Log.File)

	assert.Equal(t, ClientConfig{
		Timeout: 30 * time.Second,
		CircuitBreaker: CircuitBreakerConfig{
			MaxFailures:   DefaultClientCircuitMaxFailures,
			Timeout:       30 * time.Second,
			HalfOpenLimit: DefaultClientCircuitHalfOpenLimit,
		},
		Transport: TransportConfig{
			MaxIdleConns:        DefaultTransportMaxIdleConns,
			MaxIdleConnsPerHost: DefaultTransportMaxIdleConnsPerHost,
			IdleConnTimeout:     90 * time.Second,
		},
		RateLimit: RateLimitConfig{Enabled: true, Rate: DefaultAdminRateLimit, Burst: DefaultAdminRateBurst},
	}, cfg.Client)
}

func TestLoad_Environment(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name: "credentials",
			env: map[string]string{
				"APP_SHOPIFY_ACCESS_TOKEN": "shpat_abc",
				"APP_SHOPIFY_STORE_DOMAIN": "acme.myshopify.com",
				"APP_SHOPIFY_API_SECRET":   "s3cret",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "shpat_abc", cfg.Shopify.Access.Token)
				assert.Equal(t, "acme.myshopify.com", cfg.Shopify.Store.Domain)
				assert.Equal(t, "s3cret", cfg.Shopify.API.Secret)
			},
		},
		{
			name: "snake case keys",
			env: map[string]string{
				"APP_SERVER_SHUTDOWN_TIMEOUT":                  "3s",
				"APP_CLIENT_CIRCUIT_BREAKER_MAX_FAILURES":      "9",
				"APP_CLIENT_TRANSPORT_MAX_IDLE_CONNS_PER_HOST": "4",
				"APP_TELEMETRY_SAMPLING_RATE":                  "0.25",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
				assert.Equal(t, 9, cfg.Client.CircuitBreaker.MaxFailures)
				assert.Equal(t, 4, cfg.Client.Transport.MaxIdleConnsPerHost)
				assert.InDelta(t, 0.25, cfg.Telemetry.SamplingRate, 0.0001)
			},
		},
		{
			name: "scalars",
			env: map[string]string{
				"APP_SERVER_PORT":       "9090",
				"APP_TELEMETRY_ENABLED": "true",
				"APP_SESSION_TTL":       "90m",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.True(t, cfg.Telemetry.Enabled)
				assert.Equal(t, 90*time.Minute, cfg.Session.TTL)
			},
		},
		{
			name: "lists",
			env: map[string]string{
				"APP_OFFERS_SENDERS": "sales@example.com, ops@example.com,",
				"APP_CORS_ORIGINS":   "https://admin.shopify.com",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"sales@example.com", "ops@example.com"}, cfg.Offers.Senders)
				assert.Equal(t, []string{"https://admin.shopify.com"}, cfg.CORS.Origins)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emptyWorkdir(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load("")
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoad_Layers(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "configs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "base.yaml"), []byte(`
log:
  level: debug
session:
  driver: redis
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "qa.yaml"), []byte(`
log:
  level: warn
`), 0o600))
	t.Chdir(dir)
	t.Setenv("APP_SESSION_DRIVER", "sql")

	cfg, err := Load("qa")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "sql", cfg.Session.Driver)

	cfg, err = Load("missing")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestEnvMapper(t *testing.T) {
	mapKey := envMapper([]string{"server.shutdown_timeout", "client.transport.max_idle_conns"})

	assert.Equal(t, "server.shutdown_timeout", mapKey("APP_SERVER_SHUTDOWN_TIMEOUT"))
	assert.Equal(t, "client.transport.max_idle_conns", mapKey("APP_CLIENT_TRANSPORT_MAX_IDLE_CONNS"))
	assert.Equal(t, "shopify.access.token", mapKey("APP_SHOPIFY_ACCESS_TOKEN"))
}

func TestDefaults_ResolveUnderscoreKeys(t *testing.T) {
	keys := make([]string, 0, len(defaults()))
	for key := range defaults() {
		keys = append(keys, key)
	}

	mapKey := envMapper(keys)
	for _, key := range keys {
		assert.Equal(t, key, mapKey(EnvPrefix+strings.ToUpper(strings.ReplaceAll(key, ".", "_"))))
	}
}

func TestShopifyConfig_AdminURL(t *testing.T) {
	s := ShopifyConfig{
		Store: StoreConfig{Domain: "acme.myshopify.com"},
		API:   APIConfig{Version: "2025-01"},
	}
	assert.Equal(t, "https://acme.myshopify.com/admin/api/2025-01/graphql.json", s.AdminURL())

	s.Endpoint = "http://127.0.0.1:9999/graphql"
	assert.Equal(t, "http://127.0.0.1:9999/graphql", s.AdminURL())
}

func TestShopifyConfig_ScopeList(t *testing.T) {
	s := ShopifyConfig{Scopes: "read_products, write_draft_orders,,"}
	assert.Equal(t, []string{"read_products", "write_draft_orders"}, s.ScopeList())
	assert.Empty(t, ShopifyConfig{}.ScopeList())
}

func TestShopifyConfig_OAuthEnabled(t *testing.T) {
	s := ShopifyConfig{API: APIConfig{Key: "k", Secret: "s"}}
	assert.False(t, s.OAuthEnabled())

	s.App.URL = "https://app.example.com"
	assert.True(t, s.OAuthEnabled())
}
