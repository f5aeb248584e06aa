// Package dto holds the request and response bodies of the quote API and
// the mapping from domain errors onto them.
package dto

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/acme/quote-manager/internal/domain"
	"github.com/acme/quote-manager/internal/platform/logging"
)

// ErrorCode is the machine-readable code of an ErrorResponse.
type ErrorCode string

// Codes written by middleware.
const (
	ErrorCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrorCodeRateLimited  ErrorCode = "RATE_LIMITED"
	ErrorCodeTimeout      ErrorCode = "TIMEOUT"
	ErrorCodeInternal     ErrorCode = "INTERNAL_ERROR"
)

var statusByCode = map[ErrorCode]int{
	ErrorCodeUnauthorized: http.StatusUnauthorized,
	ErrorCodeRateLimited:  http.StatusTooManyRequests,
	ErrorCodeTimeout:      http.StatusServiceUnavailable,
	ErrorCodeInternal:     http.StatusInternalServerError,
}

// Status is the HTTP status sent with the code. Unknown codes are 500.
func (c ErrorCode) Status() int {
	if status, ok := statusByCode[c]; ok {
		return status
	}

	return http.StatusInternalServerError
}

// ErrorResponse is the envelope middleware answers with when a request
// never reaches a handler: bad session token, rate limit, timeout, panic.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail is the code and message of an ErrorResponse.
type ErrorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// NewErrorResponse creates an envelope without a trace id.
func NewErrorResponse(code ErrorCode, message string) *ErrorResponse {
	return &ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// WithTraceID sets the trace id and returns e.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

// AbortWithErrorCode stops the chain and writes the envelope for code.
func AbortWithErrorCode(c *gin.Context, code ErrorCode, message string) {
	c.AbortWithStatusJSON(code.Status(), NewErrorResponse(code, message).WithTraceID(GetTraceID(c)))
}

// GetTraceID finds an id to correlate a response with logs: the "trace_id"
// gin key, then the active span, then X-Request-ID.
func GetTraceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		s, _ := v.(string)
		return s
	}

	if c.Request == nil {
		return ""
	}

	if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
		return sc.TraceID().String()
	}

	return c.GetHeader("X-Request-ID")
}

// APIError is the flat body of the quote routes. The embedded editor reads
// "error" for local failures and "errors" when the platform rejected the
// mutation input; "details" carries the cause of a fallback message.
type APIError struct {
	Error   string             `json:"error,omitempty"`
	Errors  []domain.UserError `json:"errors,omitempty"`
	Details string             `json:"details,omitempty"`
}

// RespondAPIError writes the flat body for err. fallback is the message for
// failures the merchant cannot act on. 5xx responses are logged.
func RespondAPIError(c *gin.Context, err error, fallback string) {
	status, body := MapAPIError(err, fallback)

	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error(fallback,
			"error", err.Error(),
			"trace_id", GetTraceID(c),
		)
	}

	c.JSON(status, body)
}

// MapAPIError picks the status and body for err.
func MapAPIError(err error, fallback string) (int, APIError) {
	if remote, ok := domain.AsRemote(err); ok && remote.HasUserErrors() {
		return http.StatusBadRequest, APIError{Errors: remote.UserErrors}
	}

	var (
		notFound  *domain.NotFoundError
		forbidden *domain.ForbiddenError
	)

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound, APIError{Error: sentenceCase(notFound.Entity) + " not found"}
	case domain.IsNotFound(err):
		return http.StatusNotFound, APIError{Error: "Not found"}
	case domain.IsValidation(err):
		return http.StatusBadRequest, APIError{Error: err.Error()}
	case errors.As(err, &forbidden):
		return http.StatusForbidden, APIError{Error: sentenceCase(forbidden.Error())}
	case domain.IsForbidden(err):
		return http.StatusForbidden, APIError{Error: "Forbidden"}
	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable, APIError{Error: fallback, Details: err.Error()}
	default:
		return http.StatusInternalServerError, APIError{Error: fallback, Details: err.Error()}
	}
}

func sentenceCase(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
