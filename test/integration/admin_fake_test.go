//go:build integration

package integration

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/acme/quote-manager/internal/adapters/clients"
	"github.com/acme/quote-manager/internal/platform/config"
)

const testAccessToken = "shpat_integration"

const draftOrderJSON = `{
  "id": "gid://shopify/DraftOrder/1001",
  "name": "#D1001",
  "createdAt": "2026-03-01T10:00:00Z",
  "status": "OPEN",
  "tags": ["request_quote"],
  "email": "buyer@example.com",
  "metafield": null,
  "customer": {"id": "gid://shopify/Customer/7", "firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com"},
  "purchasingEntity": {
    "__typename": "PurchasingCompany",
    "company": {"name": "Acme Corp"},
    "location": {"id": "gid://shopify/CompanyLocation/9", "name": "HQ"}
  },
  "lineItems": {"edges": [
    {"node": {"id": "li-1", "title": "Widget", "quantity": 2, "originalUnitPrice": "50.00",
      "variant": {"id": "gid://shopify/ProductVariant/5"}}}
  ]},
  "subtotalPrice": "100.00",
  "totalPrice": "100.00",
  "totalTax": "0.00"
}`

// adminCall is one GraphQL request received by the fake Admin API.
type adminCall struct {
	Op        string
	Variables map[string]any
	Header    http.Header
}

// fakeAdmin answers GraphQL documents by operation name.
type fakeAdmin struct {
	server *httptest.Server

	mu        sync.Mutex
	responses map[string]string
	statuses  map[string]int
	delay     time.Duration
	calls     []adminCall
}

func newFakeAdmin(t *testing.T) *fakeAdmin {
	t.Helper()

	f := &fakeAdmin{
		responses: map[string]string{},
		statuses:  map[string]int{},
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)

	return f
}

func (f *fakeAdmin) serve(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}

	body, _ := io.ReadAll(r.Body)
	if err := json.Unmarshal(body, &req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	op := clients.OperationName(req.Query)

	f.mu.Lock()
	f.calls = append(f.calls, adminCall{Op: op, Variables: req.Variables, Header: r.Header.Clone()})
	status, hasStatus := f.statuses[op]
	data, hasData := f.responses[op]
	delay := f.delay
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")

	switch {
	case hasStatus:
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"errors":"` + http.StatusText(status) + `"}`))
	case hasData:
		_, _ = w.Write([]byte(`{"data":` + data + `}`))
	default:
		_, _ = w.Write([]byte(`{"errors":[{"message":"unexpected operation ` + op + `"}]}`))
	}
}

func (f *fakeAdmin) respond(op, data string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.responses[op] = data
}

func (f *fakeAdmin) fail(op string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.statuses[op] = status
}

func (f *fakeAdmin) setDelay(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.delay = d
}

// callsTo returns the recorded requests for one operation.
func (f *fakeAdmin) callsTo(op string) []adminCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []adminCall
	for _, c := range f.calls {
		if c.Op == op {
			out = append(out, c)
		}
	}

	return out
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// relayConfig is a client config pointed at the fake with a fast circuit.
func relayConfig(f *fakeAdmin) *clients.Config {
	return &clients.Config{
		URL:         f.server.URL + "/admin/api/2025-01/graphql.json",
		ServiceName: "shopify-admin",
		Timeout:     2 * time.Second,
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   3,
			Timeout:       100 * time.Millisecond,
			HalfOpenLimit: 1,
		},
		AuthFunc: clients.AccessToken(testAccessToken),
		Logger:   discardLogger(),
	}
}

func newRelay(t *testing.T, cfg *clients.Config) (*clients.Client, *clients.GraphQL) {
	t.Helper()

	client, err := clients.New(cfg)
	require.NoError(t, err)

	return client, clients.NewGraphQL(client)
}
