package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/acme/quote-manager/internal/domain"
	"github.com/acme/quote-manager/internal/platform/logging"
)

// AccessTokenHeader carries the Admin API access token.
const AccessTokenHeader = "X-Shopify-Access-Token"

// maxErrorBody caps how much of a failed response is kept for messages.
const maxErrorBody = 4 << 10

// operationPattern extracts the operation name from a document.
var operationPattern = regexp.MustCompile(`^\s*(?:query|mutation)\s+([A-Za-z_][A-Za-z0-9_]*)`)

// GraphQL relays documents to the Admin API. It implements ports.Gateway.
type GraphQL struct {
	client *Client
}

// NewGraphQL wraps a transport client.
func NewGraphQL(client *Client) *GraphQL {
	return &GraphQL{client: client}
}

// AccessToken returns an AuthFunc that sets the Admin API token header.
func AccessToken(token string) func(*http.Request) {
	return func(req *http.Request) {
		req.Header.Set(AccessTokenHeader, token)
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

type graphQLError struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Execute posts the document and returns the data payload.
func (g *GraphQL) Execute(ctx context.Context, document string, variables map[string]any) (json.RawMessage, error) {
	op := OperationName(document)
	logger := logging.FromContext(ctx).With(slog.String("operation", op))

	body, err := json.Marshal(graphQLRequest{Query: document, Variables: variables})
	if err != nil {
		return nil, domain.NewRemoteError(op, "encoding request", err)
	}

	logger.Log(ctx, logging.LevelTrace, "graphql request", slog.Any("variables", variables))

	resp, err := g.client.Post(ctx, bytes.NewReader(body))
	if err != nil {
		return nil, g.transportError(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		logger.Warn("admin api returned non-success status",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(snippet)),
		)

		return nil, statusError(op, resp.StatusCode, snippet)
	}

	var out graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, domain.NewRemoteError(op, "decoding response", err)
	}

	if len(out.Errors) > 0 {
		msgs := make([]string, 0, len(out.Errors))
		for _, e := range out.Errors {
			msgs = append(msgs, e.Message)
		}

		logger.Warn("graphql errors", slog.Any("errors", msgs))

		return nil, domain.NewRemoteError(op, strings.Join(msgs, "; "), nil)
	}

	if userErrors := findUserErrors(out.Data); len(userErrors) > 0 {
		logger.Info("mutation rejected", slog.Any("user_errors", userErrors))

		return nil, domain.NewUserErrors(op, userErrors)
	}

	logger.Log(ctx, logging.LevelTrace, "graphql response", slog.Int("bytes", len(out.Data)))

	return out.Data, nil
}

// Name implements ports.HealthChecker.
func (g *GraphQL) Name() string {
	return g.client.ServiceName()
}

// Check runs a trivial query; the token and network path both have to work.
// An open circuit fails the check without a request.
func (g *GraphQL) Check(ctx context.Context) error {
	if snap := g.client.Breaker(); snap.State == StateOpen {
		return domain.NewUnavailableError(g.Name(),
			"circuit breaker open since "+snap.LastFailure.UTC().Format(time.RFC3339))
	}

	_, err := g.Execute(ctx, `query healthCheck { shop { id } }`, nil)

	return err
}

// OperationName returns the named operation of a document, or "graphql".
func OperationName(document string) string {
	if m := operationPattern.FindStringSubmatch(document); m != nil {
		return m[1]
	}

	return "graphql"
}

func (g *GraphQL) transportError(op string, err error) error {
	switch {
	case errors.Is(err, ErrCircuitOpen):
		return domain.NewRemoteError(op, "", domain.NewUnavailableError(g.client.ServiceName(), "circuit breaker open"))
	case errors.Is(err, ErrThrottled):
		return domain.NewRemoteError(op, "", domain.NewUnavailableError(g.client.ServiceName(), "request throttled"))
	default:
		return domain.NewRemoteError(op, "", err)
	}
}

func statusError(op string, status int, body []byte) error {
	msg := fmt.Sprintf("HTTP %d", status)

	// Error bodies are JSON of the form {"errors": "..."} or {"errors": [{message}]}.
	var parsed struct {
		Errors json.RawMessage `json:"errors"`
	}
	if json.Unmarshal(body, &parsed) == nil && len(parsed.Errors) > 0 {
		var text string
		if json.Unmarshal(parsed.Errors, &text) == nil && text != "" {
			msg = fmt.Sprintf("%s: %s", msg, text)
		}

		var list []graphQLError
		if json.Unmarshal(parsed.Errors, &list) == nil && len(list) > 0 {
			msg = fmt.Sprintf("%s: %s", msg, list[0].Message)
		}
	}

	switch status {
	case http.StatusTooManyRequests, http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return domain.NewRemoteError(op, msg, domain.NewUnavailableError("shopify", msg))
	default:
		return domain.NewRemoteError(op, msg, nil)
	}
}

// findUserErrors collects userErrors from the data object itself and from
// each top-level mutation payload.
func findUserErrors(data json.RawMessage) []domain.UserError {
	if len(data) == 0 {
		return nil
	}

	var top map[string]json.RawMessage
	if json.Unmarshal(data, &top) != nil {
		return nil
	}

	var out []domain.UserError
	out = append(out, decodeUserErrors(top["userErrors"])...)

	for key, raw := range top {
		if key == "userErrors" {
			continue
		}

		var payload map[string]json.RawMessage
		if json.Unmarshal(raw, &payload) != nil {
			continue
		}

		out = append(out, decodeUserErrors(payload["userErrors"])...)
	}

	return out
}

func decodeUserErrors(raw json.RawMessage) []domain.UserError {
	if len(raw) == 0 {
		return nil
	}

	var list []domain.UserError
	if json.Unmarshal(raw, &list) != nil {
		return nil
	}

	return list
}
