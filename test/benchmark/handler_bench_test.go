package benchmark

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apihttp "github.com/acme/quote-manager/internal/adapters/http"
	"github.com/acme/quote-manager/internal/adapters/http/handlers"
	"github.com/acme/quote-manager/internal/adapters/http/middleware"
	"github.com/acme/quote-manager/internal/app"
	"github.com/acme/quote-manager/internal/domain"
	"github.com/acme/quote-manager/internal/domain/pricing"
	"github.com/acme/quote-manager/internal/ports"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// staticRepository serves a fixed page of quotes. Status writes succeed
// without changing anything, so every listing does the same work.
type staticRepository struct {
	quotes []*domain.Quote
}

func (r *staticRepository) ListDraftOrders(context.Context, int) ([]*domain.Quote, error) {
	out := make([]*domain.Quote, len(r.quotes))
	for i, q := range r.quotes {
		clone := *q
		out[i] = &clone
	}

	return out, nil
}

func (r *staticRepository) GetDraftOrder(_ context.Context, id string) (*domain.Quote, error) {
	for _, q := range r.quotes {
		if q.ID == id {
			clone := *q
			return &clone, nil
		}
	}

	return nil, domain.NewNotFoundError("quote", id)
}

func (r *staticRepository) UpdateDraftOrder(ctx context.Context, id string, _ *domain.QuoteEdit) (*domain.Quote, error) {
	return r.GetDraftOrder(ctx, id)
}

func (r *staticRepository) SetQuoteStatus(context.Context, string, []string) error {
	return nil
}

func (r *staticRepository) SendInvoice(context.Context, string, *domain.EmailOffer) error {
	return nil
}

func (r *staticRepository) CompleteDraftOrder(context.Context, string) (*domain.CompletedOrder, error) {
	return &domain.CompletedOrder{}, nil
}

func quotes(n int) []*domain.Quote {
	statuses := []domain.PrimaryStatus{domain.StatusOpen, domain.StatusInvoiceSent, domain.StatusCompleted}
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	out := make([]*domain.Quote, 0, n)
	for i := range n {
		status := statuses[i%len(statuses)]
		tag, _ := domain.ExpectedStatusTag(status)

		out = append(out, &domain.Quote{
			ID:        "gid://shopify/DraftOrder/" + strconv.Itoa(i+1),
			Name:      "#D" + strconv.Itoa(i+1),
			Status:    status,
			StatusTag: tag,
			CreatedAt: base.Add(time.Duration(i*7%n) * time.Hour),
			Customer:  &domain.Customer{FirstName: "Ada", LastName: "Lovelace"},
			LineItems: []domain.LineItem{
				{Title: "Widget", Quantity: 3, Price: decimal.RequireFromString("19.99")},
			},
			Total: decimal.RequireFromString("59.97"),
		})
	}

	return out
}

func newRouter(b *testing.B, n int) *gin.Engine {
	b.Helper()

	engine := gin.New()
	engine.UseRawPath = true

	apihttp.SetupRouter(engine, apihttp.RouterConfig{
		Logger:        discard(),
		ServiceName:   "quote-manager-bench",
		HealthHandler: handlers.NewHealthHandler(ports.NewHealthRegistry(), handlers.NewBuildInfo("bench", "none", "now")),
		QuoteHandler: handlers.NewQuoteHandler(app.NewQuoteService(app.QuoteServiceConfig{
			Repository: &staticRepository{quotes: quotes(n)},
			Logger:     discard(),
		})),
		Timeout: apihttp.DefaultRequestTimeout,
	})

	return engine
}

func BenchmarkLivenessProbe(b *testing.B) {
	router := newRouter(b, 0)
	req := httptest.NewRequest(http.MethodGet, "/-/live", http.NoBody)

	b.ReportAllocs()

	for b.Loop() {
		router.ServeHTTP(httptest.NewRecorder(), req)
	}
}

func BenchmarkListQuotes(b *testing.B) {
	for _, n := range []int{10, 100} {
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			router := newRouter(b, n)
			req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes", http.NoBody)

			b.ReportAllocs()

			for b.Loop() {
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)

				if w.Code != http.StatusOK {
					b.Fatalf("status %d", w.Code)
				}
			}
		})
	}
}

func BenchmarkGetQuote_EncodedID(b *testing.B) {
	router := newRouter(b, 10)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/gid%3A%2F%2Fshopify%2FDraftOrder%2F5", http.NoBody)

	b.ReportAllocs()

	for b.Loop() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			b.Fatalf("status %d", w.Code)
		}
	}
}

func BenchmarkCalculatePricing(b *testing.B) {
	router := newRouter(b, 0)
	body := `{"lineItems":[{"quantity":2,"price":"50"},{"quantity":7,"price":"3.33"}],` +
		`"appliedDiscount":{"valueType":"PERCENTAGE","value":12.5},"tax":"8.5"}`

	b.ReportAllocs()

	for b.Loop() {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/pricing", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	}
}

func BenchmarkPricingCalculate(b *testing.B) {
	items := quotes(1)[0].LineItems
	for range 20 {
		items = append(items, domain.LineItem{Quantity: 4, Price: decimal.RequireFromString("1.1")})
	}

	discount := &domain.CustomDiscount{Type: domain.DiscountPercentage, Value: decimal.RequireFromString("7.5")}

	b.ReportAllocs()

	for b.Loop() {
		_ = pricing.Calculate(items, discount, nil, decimal.RequireFromString("3.21"))
	}
}

func BenchmarkStatusReconcile(b *testing.B) {
	repo := &staticRepository{}
	reconciler := app.NewStatusReconciler(repo, discard())
	page := quotes(100)

	// Drop every third tag so the pass has writes to make.
	for i := 0; i < len(page); i += 3 {
		page[i].StatusTag = nil
	}

	ctx := context.Background()

	b.ReportAllocs()

	for b.Loop() {
		batch := make([]*domain.Quote, len(page))
		for i, q := range page {
			clone := *q
			batch[i] = &clone
		}

		reconciler.Reconcile(ctx, batch)
	}
}

func BenchmarkMiddlewareChain(b *testing.B) {
	router := gin.New()
	router.Use(
		middleware.Recovery(discard()),
		middleware.RequestID(),
		middleware.CorrelationID(),
		middleware.Logging(discard()),
		middleware.Timeout(time.Second),
	)
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)

	b.ReportAllocs()

	for b.Loop() {
		router.ServeHTTP(httptest.NewRecorder(), req)
	}
}

func BenchmarkRateLimiter(b *testing.B) {
	router := gin.New()
	router.Use(middleware.NewRateLimiter(1e9, 1<<30).Middleware())
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)

		for pb.Next() {
			router.ServeHTTP(httptest.NewRecorder(), req)
		}
	})
}
