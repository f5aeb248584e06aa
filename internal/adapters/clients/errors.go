// Package clients provides the Admin API transport and the GraphQL gateway
// built on it.
package clients

import "errors"

// Transport-level failures. The gateway wraps them in domain errors.
var (
	// ErrCircuitOpen is returned when the circuit breaker is open and the
	// request was not sent.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrThrottled is returned when the context ended while waiting for the
	// client-side rate limiter.
	ErrThrottled = errors.New("request throttled")
)
