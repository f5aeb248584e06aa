package telemetry

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/acme/quote-manager/internal/platform/logging"
)

const instrumentationName = "github.com/acme/quote-manager/telemetry"

// HeaderTraceID echoes the active trace id to the caller.
const HeaderTraceID = "X-Trace-ID"

// Metrics are the server-side instruments of the quote API.
type Metrics struct {
	duration metric.Float64Histogram
	requests metric.Int64Counter
	inFlight metric.Int64UpDownCounter
}

// NewMetrics registers the instruments on the global meter provider.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(instrumentationName)

	var (
		m   Metrics
		err error
	)

	if m.duration, err = meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("Quote API request duration"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	if m.requests, err = meter.Int64Counter("http.server.request.total",
		metric.WithDescription("Quote API requests by route and status"),
	); err != nil {
		return nil, err
	}

	if m.inFlight, err = meter.Int64UpDownCounter("http.server.active_requests",
		metric.WithDescription("Quote API requests in flight"),
	); err != nil {
		return nil, err
	}

	return &m, nil
}

// Middleware returns otelgin tracing, trace id propagation and metrics, in
// that order. Register with engine.Use(Middleware(name)...).
func Middleware(serviceName string) []gin.HandlerFunc {
	m, err := NewMetrics()
	if err != nil {
		otel.Handle(err)
	}

	return []gin.HandlerFunc{
		otelgin.Middleware(serviceName),
		traceContext,
		m.record,
	}
}

// traceContext echoes the trace id and adds it to the context logger. It
// runs before the handler because headers go out with the first write.
func traceContext(c *gin.Context) {
	sc := trace.SpanFromContext(c.Request.Context()).SpanContext()
	if !sc.HasTraceID() {
		return
	}

	traceID := sc.TraceID().String()
	c.Header(HeaderTraceID, traceID)
	c.Request = c.Request.WithContext(logging.WithTraceID(c.Request.Context(), traceID))
}

// record measures the request. Routes are labelled by template, so quote
// ids never become label values. A nil receiver records nothing.
func (m *Metrics) record(c *gin.Context) {
	if m == nil {
		c.Next()
		return
	}

	ctx := c.Request.Context()
	route := []attribute.KeyValue{
		attribute.String("http.method", c.Request.Method),
		attribute.String("http.route", c.FullPath()),
	}

	m.inFlight.Add(ctx, 1, metric.WithAttributes(route...))
	defer m.inFlight.Add(ctx, -1, metric.WithAttributes(route...))

	start := time.Now()
	c.Next()

	done := metric.WithAttributes(append(route, attribute.Int("http.status_code", c.Writer.Status()))...)
	m.duration.Record(ctx, time.Since(start).Seconds(), done)
	m.requests.Add(ctx, 1, done)
}
