// Package config loads service configuration with koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Defaults that other packages and tests refer to by name.
const (
	DefaultServerPort     = 8080
	DefaultMaxRequestSize = 1 << 20

	// Circuit breaker: consecutive failures to open, probes to close.
	DefaultClientCircuitMaxFailures   = 5
	DefaultClientCircuitHalfOpenLimit = 3

	DefaultTransportMaxIdleConns        = 100
	DefaultTransportMaxIdleConnsPerHost = 10

	// The Admin API leaky bucket restores 2 requests per second on
	// standard plans.
	DefaultAdminRateLimit = 2.0
	DefaultAdminRateBurst = 10

	DefaultAPIVersion = "2025-01"

	// Rolling log file limits; size is in megabytes.
	DefaultLogFileMaxSizeMB  = 100
	DefaultLogFileMaxBackups = 3
	DefaultLogFileMaxAgeDays = 28
)

// Config is the root configuration structure.
type Config struct {
	App       AppConfig       `koanf:"app"       validate:"required"`
	Server    ServerConfig    `koanf:"server"    validate:"required"`
	Log       LogConfig       `koanf:"log"       validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Auth      AuthConfig      `koanf:"auth"`
	Client    ClientConfig    `koanf:"client"    validate:"required"`
	Shopify   ShopifyConfig   `koanf:"shopify"   validate:"required"`
	Offers    OffersConfig    `koanf:"offers"`
	Session   SessionConfig   `koanf:"session"   validate:"required"`
	CORS      CORSConfig      `koanf:"cors"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int             `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string          `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration   `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration   `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration   `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration   `koanf:"shutdown_timeout" validate:"required,min=1s"`
	MaxRequestSize  int64           `koanf:"max_request_size" validate:"required,min=1"`
	RateLimit       RateLimitConfig `koanf:"ratelimit"`
}

// RateLimitConfig is a token bucket: Rate tokens per second, Burst capacity.
type RateLimitConfig struct {
	Enabled bool    `koanf:"enabled"`
	Rate    float64 `koanf:"rate"    validate:"required_if=Enabled true,omitempty,gt=0"`
	Burst   int     `koanf:"burst"   validate:"required_if=Enabled true,omitempty,min=1"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true,omitempty,url"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	Insecure     bool    `koanf:"insecure"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// AuthConfig controls verification of embedded-app session tokens.
// Tokens are signed with the app's API secret.
type AuthConfig struct {
	Enabled bool          `koanf:"enabled"`
	Leeway  time.Duration `koanf:"leeway"  validate:"min=0"`
}

// ClientConfig contains HTTP client settings for the Admin API.
type ClientConfig struct {
	Timeout        time.Duration        `koanf:"timeout"         validate:"required,min=100ms"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker" validate:"required"`
	Transport      TransportConfig      `koanf:"transport"       validate:"required"`
	RateLimit      RateLimitConfig      `koanf:"ratelimit"`
}

// CircuitBreakerConfig contains circuit breaker settings for HTTP clients.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"    validate:"required,min=1"`
	Timeout       time.Duration `koanf:"timeout"         validate:"required,min=1s"`
	HalfOpenLimit int           `koanf:"half_open_limit" validate:"required,min=1"`
}

// TransportConfig contains HTTP transport pool settings.
type TransportConfig struct {
	MaxIdleConns        int           `koanf:"max_idle_conns"          validate:"required,min=1"`
	MaxIdleConnsPerHost int           `koanf:"max_idle_conns_per_host" validate:"required,min=1"`
	IdleConnTimeout     time.Duration `koanf:"idle_conn_timeout"       validate:"required,min=1s"`
}

// ShopifyConfig locates the shop and carries app credentials. Keys stay
// single words: the credentials have no defaults for envMapper to match.
type ShopifyConfig struct {
	// Endpoint overrides the derived Admin GraphQL URL.
	Endpoint string       `koanf:"endpoint" validate:"omitempty,url"`
	Store    StoreConfig  `koanf:"store"`
	API      APIConfig    `koanf:"api"`
	Access   AccessConfig `koanf:"access"`
	App      AppURLConfig `koanf:"app"`
	Scopes   string       `koanf:"scopes"`
}

// StoreConfig identifies the shop.
type StoreConfig struct {
	Domain string `koanf:"domain" validate:"omitempty,hostname"`
}

// APIConfig carries the app's API credentials and version.
type APIConfig struct {
	Key     string `koanf:"key"`
	Secret  string `koanf:"secret"`
	Version string `koanf:"version" validate:"required"`
}

// AccessConfig carries the Admin API access token.
type AccessConfig struct {
	Token string `koanf:"token" validate:"required"`
}

// AppURLConfig is where the app itself is hosted.
type AppURLConfig struct {
	URL string `koanf:"url" validate:"omitempty,url"`
}

// AdminURL returns the Admin GraphQL endpoint.
func (s ShopifyConfig) AdminURL() string {
	if s.Endpoint != "" {
		return s.Endpoint
	}

	return fmt.Sprintf("https://%s/admin/api/%s/graphql.json", s.Store.Domain, s.API.Version)
}

// ScopeList splits the comma-separated scopes.
func (s ShopifyConfig) ScopeList() []string {
	var scopes []string
	for _, scope := range strings.Split(s.Scopes, ",") {
		if scope = strings.TrimSpace(scope); scope != "" {
			scopes = append(scopes, scope)
		}
	}

	return scopes
}

// OAuthEnabled reports whether the install handshake can run.
func (s ShopifyConfig) OAuthEnabled() bool {
	return s.API.Key != "" && s.API.Secret != "" && s.App.URL != ""
}

// OffersConfig governs emailed offers.
type OffersConfig struct {
	// Senders is the allow-list of From addresses. Empty allows any.
	Senders  []string `koanf:"senders"  validate:"dive,email"`
	Currency string   `koanf:"currency" validate:"omitempty,len=3"`
}

// SessionConfig selects the session store.
type SessionConfig struct {
	Driver string        `koanf:"driver" validate:"required,oneof=memory redis sql"`
	TTL    time.Duration `koanf:"ttl"    validate:"required,min=1m"`
	Redis  RedisConfig   `koanf:"redis"`
	SQL    SQLConfig     `koanf:"sql"`
}

// RedisConfig locates the redis server for the redis session driver.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"       validate:"min=0"`
}

// SQLConfig locates the database for the sql session driver.
type SQLConfig struct {
	DSN string `koanf:"dsn"`
}

// CORSConfig lists origins allowed to call the API from a browser.
type CORSConfig struct {
	Origins []string `koanf:"origins"`
}

// EnvPrefix marks environment variables that override file settings.
const EnvPrefix = "APP_"

// defaults is the lowest configuration layer. Every key whose name contains
// an underscore needs an entry here so that envMapper can resolve it.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "quote-manager",
		"app.version":     "dev",
		"app.environment": "local",

		"server.port":              DefaultServerPort,
		"server.host":              "0.0.0.0",
		"server.read_timeout":      "30s",
		"server.write_timeout":     "30s",
		"server.idle_timeout":      "120s",
		"server.shutdown_timeout":  "10s",
		"server.max_request_size":  DefaultMaxRequestSize,
		"server.ratelimit.enabled": false,
		"server.ratelimit.rate":    10.0,
		"server.ratelimit.burst":   20,

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/app.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "quote-manager",
		"telemetry.insecure":      true,
		"telemetry.sampling_rate": 1.0,

		"auth.enabled": false,
		"auth.leeway":  "5s",

		"client.timeout":                           "30s",
		"client.circuit_breaker.max_failures":      DefaultClientCircuitMaxFailures,
		"client.circuit_breaker.timeout":           "30s",
		"client.circuit_breaker.half_open_limit":   DefaultClientCircuitHalfOpenLimit,
		"client.transport.max_idle_conns":          DefaultTransportMaxIdleConns,
		"client.transport.max_idle_conns_per_host": DefaultTransportMaxIdleConnsPerHost,
		"client.transport.idle_conn_timeout":       "90s",
		"client.ratelimit.enabled":                 true,
		"client.ratelimit.rate":                    DefaultAdminRateLimit,
		"client.ratelimit.burst":                   DefaultAdminRateBurst,

		"shopify.api.version": DefaultAPIVersion,
		"shopify.scopes":      "read_draft_orders,write_draft_orders,read_products,read_customers",

		"offers.currency": "USD",

		"session.driver":     "memory",
		"session.ttl":        "24h",
		"session.redis.addr": "localhost:6379",
		"session.redis.db":   0,
	}
}

// Load layers the configuration sources, later ones winning:
// defaults, configs/base.yaml, configs/<profile>.yaml, then APP_ variables.
// Missing files are skipped. Load does not validate; call Validate.
func Load(profile string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if err := loadYAML(k, filepath.Join("configs", "base.yaml")); err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	if profile != "" {
		if err := loadYAML(k, filepath.Join("configs", profile+".yaml")); err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envMapper(k.Keys())), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := new(Config)
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	cfg.Offers.Senders = splitList(cfg.Offers.Senders)
	cfg.CORS.Origins = splitList(cfg.CORS.Origins)

	return cfg, nil
}

// envMapper turns APP_SERVER_SHUTDOWN_TIMEOUT into server.shutdown_timeout.
// Underscores are ambiguous, so the name is first matched against the keys
// already loaded. Unknown names fall back to one level per underscore.
func envMapper(known []string) func(string) string {
	byEnv := make(map[string]string, len(known))
	for _, key := range known {
		byEnv[strings.ReplaceAll(key, ".", "_")] = key
	}

	return func(name string) string {
		name = strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
		if key, ok := byEnv[name]; ok {
			return key
		}

		return strings.ReplaceAll(name, "_", ".")
	}
}

// splitList expands comma-separated entries, which is how list values
// arrive from a single environment variable.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}

	return out
}

func loadYAML(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
