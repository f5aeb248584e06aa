//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"
)

// target is where scenarios send requests: the in-process API wired to a
// fake Admin API, or a deployed service when BASE_URL is set.
type target struct {
	handler http.Handler
	admin   *fakeAdmin
	baseURL string
	client  *http.Client
}

func newTarget(t *testing.T) *target {
	if baseURL := os.Getenv("BASE_URL"); baseURL != "" {
		return &target{baseURL: strings.TrimSuffix(baseURL, "/"), client: &http.Client{Timeout: 10 * time.Second}}
	}

	admin := newFakeAdmin(t)

	return &target{handler: newQuoteAPI(t, admin), admin: admin}
}

func (tg *target) live() bool { return tg.handler == nil }

func (tg *target) do(ctx context.Context, method, path, body string) (*http.Response, []byte, error) {
	var reader io.Reader = http.NoBody
	if body != "" {
		reader = strings.NewReader(body)
	}

	if !tg.live() {
		req := httptest.NewRequestWithContext(ctx, method, path, reader)
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}

		rec := httptest.NewRecorder()
		tg.handler.ServeHTTP(rec, req)

		return rec.Result(), rec.Body.Bytes(), nil
	}

	req, err := http.NewRequestWithContext(ctx, method, tg.baseURL+path, reader)
	if err != nil {
		return nil, nil, err
	}

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	if token := os.Getenv("SESSION_TOKEN"); token != "" && strings.HasPrefix(path, "/api/") {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := tg.client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)

	return resp, raw, err
}

// scenario is the per-scenario state behind the step definitions.
type scenario struct {
	target *target
	resp   *http.Response
	body   []byte
}

func (s *scenario) serviceIsRunning(ctx context.Context) error {
	if s.target.admin != nil {
		s.target.admin.respond("healthCheck", `{"shop":{"id":"gid://shopify/Shop/1"}}`)
		s.target.admin.respond("getDraftOrders", `{"draftOrders":{"edges":[]}}`)
		s.target.admin.respond("getDraftOrder", `{"draftOrder":null}`)
	}

	resp, _, err := s.target.do(ctx, http.MethodGet, "/-/live", "")
	if err != nil {
		return fmt.Errorf("service unreachable: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("liveness returned %d", resp.StatusCode)
	}

	return nil
}

func (s *scenario) request(ctx context.Context, method, path, body string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	resp, raw, err := s.target.do(ctx, method, path, body)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	s.resp, s.body = resp, raw

	return nil
}

func (s *scenario) get(ctx context.Context, path string) error {
	return s.request(ctx, http.MethodGet, path, "")
}

func (s *scenario) post(ctx context.Context, path string, doc *godog.DocString) error {
	return s.request(ctx, http.MethodPost, path, doc.Content)
}

func (s *scenario) statusIs(want int) error {
	if s.resp == nil {
		return errors.New("no request was sent")
	}

	if s.resp.StatusCode != want {
		return fmt.Errorf("status %d, want %d: %s", s.resp.StatusCode, want, s.body)
	}

	return nil
}

func (s *scenario) bodyContains(text string) error {
	if !strings.Contains(string(s.body), text) {
		return fmt.Errorf("body lacks %q: %s", text, s.body)
	}

	return nil
}

func (s *scenario) headerSet(name string) error {
	if s.resp == nil || s.resp.Header.Get(name) == "" {
		return fmt.Errorf("header %s missing", name)
	}

	return nil
}

// fieldIs compares a top-level JSON field with quotes stripped, so money
// strings and numbers read the same in a feature file.
func (s *scenario) fieldIs(field, want string) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(s.body, &doc); err != nil {
		return fmt.Errorf("body is not a JSON object: %w", err)
	}

	raw, ok := doc[field]
	if !ok {
		return fmt.Errorf("no field %q in %s", field, s.body)
	}

	if got := strings.Trim(string(raw), `"`); got != want {
		return fmt.Errorf("%s is %s, want %s", field, got, want)
	}

	return nil
}

func scenarioInitializer(tg *target) func(*godog.ScenarioContext) {
	return func(sc *godog.ScenarioContext) {
		s := &scenario{target: tg}

		sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
			s.resp, s.body = nil, nil
			return ctx, nil
		})

		sc.Step(`^the service is running$`, s.serviceIsRunning)
		sc.Step(`^I request GET "([^"]*)"$`, s.get)
		sc.Step(`^I POST "([^"]*)" with body:$`, s.post)
		sc.Step(`^the response status should be (\d+)$`, s.statusIs)
		sc.Step(`^the response should contain "([^"]*)"$`, s.bodyContains)
		sc.Step(`^the response header "([^"]*)" should be set$`, s.headerSet)
		sc.Step(`^the JSON field "([^"]*)" should be "([^"]*)"$`, s.fieldIs)
	}
}

// TestFeatures runs the feature files. In process the install handshake is
// not mounted, so @oauth scenarios only run against a deployed service.
func TestFeatures(t *testing.T) {
	tg := newTarget(t)

	tags := os.Getenv("GODOG_TAGS")
	if tags == "" && !tg.live() {
		tags = "~@oauth"
	}

	suite := godog.TestSuite{
		ScenarioInitializer: scenarioInitializer(tg),
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			Tags:     tags,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("feature scenarios failed")
	}
}
