package clients

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/acme/quote-manager/internal/adapters/http/middleware"
	"github.com/acme/quote-manager/internal/platform/config"
	"github.com/acme/quote-manager/internal/platform/logging"
)

const instrumentationName = "github.com/acme/quote-manager/internal/adapters/clients"

const (
	defaultTimeout             = 30 * time.Second
	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 10
	defaultIdleConnTimeout     = 90 * time.Second
)

// circuitState exposes the breaker position on /metrics: 0 closed, 1 open,
// 2 half-open.
var circuitState = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "quote_manager",
	Subsystem: "admin_api",
	Name:      "circuit_state",
	Help:      "Circuit breaker state per downstream.",
}, []string{"downstream"})

// Outcome labels on the request metrics.
const (
	outcomeOK          = "ok"
	outcomeServerError = "server_error"
	outcomeClientError = "client_error"
	outcomeNetwork     = "network_error"
	outcomeThrottled   = "throttled"
	outcomeCircuitOpen = "circuit_open"
)

// Config configures the Admin API transport.
type Config struct {
	// URL is the GraphQL endpoint every request is posted to.
	URL string

	// ServiceName names the downstream in logs, spans and errors.
	ServiceName string

	Timeout   time.Duration
	Circuit   config.CircuitBreakerConfig
	Transport config.TransportConfig
	RateLimit config.RateLimitConfig

	// AuthFunc sets credentials on each outgoing request.
	AuthFunc func(*http.Request)

	Logger *slog.Logger
}

// Client posts documents to the Admin API. Each call is a single attempt.
// Requests pass through the relay round tripper, which throttles them,
// guards them with a circuit breaker and traces them.
type Client struct {
	http        *http.Client
	url         string
	serviceName string
	cb          *CircuitBreaker
}

// New validates cfg and builds the client.
func New(cfg *Config) (*Client, error) {
	switch {
	case cfg == nil:
		return nil, errors.New("config is required")
	case cfg.ServiceName == "":
		return nil, errors.New("service name is required")
	case cfg.URL == "":
		return nil, errors.New("url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("downstream", cfg.ServiceName))

	cb := NewCircuitBreaker(CircuitBreakerConfig{
		MaxFailures:   cfg.Circuit.MaxFailures,
		Timeout:       cfg.Circuit.Timeout,
		HalfOpenLimit: cfg.Circuit.HalfOpenLimit,
	})
	circuitState.WithLabelValues(cfg.ServiceName).Set(float64(StateClosed))
	cb.OnStateChange(func(from, to State) {
		circuitState.WithLabelValues(cfg.ServiceName).Set(float64(to))
		logger.Warn("circuit breaker state changed",
			slog.String("from", from.String()),
			slog.String("to", to.String()),
		)
	})

	rt, err := newRelay(cfg, cb, newTransport(cfg.Transport))
	if err != nil {
		return nil, err
	}

	return &Client{
		http:        &http.Client{Timeout: timeout, Transport: rt},
		url:         cfg.URL,
		serviceName: cfg.ServiceName,
		cb:          cb,
	}, nil
}

func newTransport(tc config.TransportConfig) *http.Transport {
	t := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        defaultMaxIdleConns,
		MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
		IdleConnTimeout:     defaultIdleConnTimeout,
	}

	if tc.MaxIdleConns > 0 {
		t.MaxIdleConns = tc.MaxIdleConns
	}

	if tc.MaxIdleConnsPerHost > 0 {
		t.MaxIdleConnsPerHost = tc.MaxIdleConnsPerHost
	}

	if tc.IdleConnTimeout > 0 {
		t.IdleConnTimeout = tc.IdleConnTimeout
	}

	return t
}

// Post sends a JSON document. Responses of any status come back without an
// error; transport failures, throttling and an open circuit are errors.
func (c *Client) Post(ctx context.Context, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.http.Do(req)
}

// CircuitState returns the breaker state.
func (c *Client) CircuitState() State {
	return c.cb.State()
}

// Breaker returns the breaker state with its counters.
func (c *Client) Breaker() Snapshot {
	return c.cb.Snapshot()
}

// ServiceName is the downstream name used in logs and errors.
func (c *Client) ServiceName() string {
	return c.serviceName
}

// relay is the round tripper behind Client.
type relay struct {
	base    http.RoundTripper
	name    string
	auth    func(*http.Request)
	cb      *CircuitBreaker
	limiter *rate.Limiter
	tracer  trace.Tracer

	duration metric.Float64Histogram
	requests metric.Int64Counter
}

func newRelay(cfg *Config, cb *CircuitBreaker, base http.RoundTripper) (*relay, error) {
	meter := otel.Meter(instrumentationName)

	duration, err := meter.Float64Histogram("http.client.request.duration",
		metric.WithDescription("Duration of Admin API requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration metric: %w", err)
	}

	requests, err := meter.Int64Counter("http.client.request.total",
		metric.WithDescription("Admin API requests by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request counter: %w", err)
	}

	r := &relay{
		base:     base,
		name:     cfg.ServiceName,
		auth:     cfg.AuthFunc,
		cb:       cb,
		tracer:   otel.Tracer(instrumentationName),
		duration: duration,
		requests: requests,
	}

	if cfg.RateLimit.Enabled {
		r.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.Rate), cfg.RateLimit.Burst)
	}

	return r, nil
}

// RoundTrip waits for the limiter, consults the breaker, then sends a copy
// of req carrying credentials, request IDs and trace context. 5xx responses
// and transport errors count as breaker failures.
func (r *relay) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	start := time.Now()
	logger := logging.FromContext(ctx).With(slog.String("downstream", r.name))

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			r.record(ctx, req.Method, 0, start, outcomeThrottled)
			return nil, fmt.Errorf("%w: %w", ErrThrottled, err)
		}
	}

	if !r.cb.Allow() {
		r.record(ctx, req.Method, 0, start, outcomeCircuitOpen)
		logger.Warn("request blocked by circuit breaker")

		return nil, ErrCircuitOpen
	}

	ctx, span := r.tracer.Start(ctx, "POST "+r.name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("server.address", req.URL.Host),
			attribute.String("peer.service", r.name),
		),
	)
	defer span.End()

	out := req.Clone(ctx)
	r.decorate(ctx, out)

	resp, err := r.base.RoundTrip(out)
	if err != nil {
		r.cb.RecordFailure()
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport error")
		r.record(ctx, req.Method, 0, start, outcomeNetwork)
		logger.Error("admin api request failed",
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err),
		)

		return nil, err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	outcome := outcomeOK
	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		outcome = outcomeServerError
		r.cb.RecordFailure()
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
	case resp.StatusCode >= http.StatusBadRequest:
		outcome = outcomeClientError
		r.cb.RecordSuccess()
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
	default:
		r.cb.RecordSuccess()
	}

	r.record(ctx, req.Method, resp.StatusCode, start, outcome)
	logger.Debug("admin api responded",
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	return resp, nil
}

func (r *relay) decorate(ctx context.Context, req *http.Request) {
	if id := middleware.RequestIDFromContext(ctx); id != "" {
		req.Header.Set(middleware.HeaderRequestID, id)
	}

	if id := middleware.CorrelationIDFromContext(ctx); id != "" {
		req.Header.Set(middleware.HeaderCorrelationID, id)
	}

	if r.auth != nil {
		r.auth(req)
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}

func (r *relay) record(ctx context.Context, method string, status int, start time.Time, outcome string) {
	attrs := metric.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.String("peer.service", r.name),
		attribute.String("outcome", outcome),
		attribute.String("http.response.status_code", strconv.Itoa(status)),
	)

	r.duration.Record(ctx, time.Since(start).Seconds(), attrs)
	r.requests.Add(ctx, 1, attrs)
}
