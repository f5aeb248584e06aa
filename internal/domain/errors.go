// Package domain holds the quote model, its status rules and the business
// errors the adapters translate into responses. Nothing here knows about
// HTTP or GraphQL.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error classes. Every typed error below unwraps to exactly one of them.
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation failed")
	ErrForbidden   = errors.New("forbidden")
	ErrUnavailable = errors.New("unavailable")

	// ErrRemote marks failures reported by, or on the way to, the platform.
	ErrRemote = errors.New("remote call failed")
)

// NotFoundError names the missing entity, e.g. a quote by its GID.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Entity + " not found"
	}

	return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError rejects input before the platform sees it. Message is
// displayed to merchants as is, so it reads as a sentence.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewValidationErrorWithValue also records the rejected value for logs.
func NewValidationErrorWithValue(field, message string, value any) error {
	return &ValidationError{Field: field, Message: message, Value: value}
}

// ForbiddenError is a refused operation: a sender outside the allow-list or
// a callback that fails verification.
type ForbiddenError struct {
	Operation string
	Reason    string
}

func (e *ForbiddenError) Error() string {
	if e.Reason == "" {
		return "cannot " + e.Operation
	}

	return fmt.Sprintf("cannot %s: %s", e.Operation, e.Reason)
}

func (e *ForbiddenError) Unwrap() error { return ErrForbidden }

func NewForbiddenError(operation, reason string) error {
	return &ForbiddenError{Operation: operation, Reason: reason}
}

// UnavailableError means a dependency could not be reached or refused to
// take more work. Callers may retry later.
type UnavailableError struct {
	Service string
	Reason  string
}

func (e *UnavailableError) Error() string {
	if e.Reason == "" {
		return e.Service + " unavailable"
	}

	return fmt.Sprintf("%s unavailable: %s", e.Service, e.Reason)
}

func (e *UnavailableError) Unwrap() error { return ErrUnavailable }

func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// UserError is one input rejection from a platform mutation. Field is the
// path into the mutation input.
type UserError struct {
	Field   []string `json:"field,omitempty"`
	Message string   `json:"message"`
}

// RemoteError is any failed platform call. Op names the GraphQL operation.
// Message keeps the upstream text for display; UserErrors is set when a
// mutation rejected its input; Err is the transport or decoding cause.
type RemoteError struct {
	Op         string
	Message    string
	UserErrors []UserError
	Err        error
}

func (e *RemoteError) Error() string {
	msg := e.Message

	switch {
	case msg != "":
	case len(e.UserErrors) > 0:
		msgs := make([]string, len(e.UserErrors))
		for i, ue := range e.UserErrors {
			msgs[i] = ue.Message
		}

		msg = strings.Join(msgs, "; ")
	case e.Err != nil:
		msg = e.Err.Error()
	}

	if e.Op == "" {
		return msg
	}

	return e.Op + ": " + msg
}

// Unwrap yields ErrRemote and, when present, the cause. An UnavailableError
// cause therefore satisfies both IsRemote and IsUnavailable.
func (e *RemoteError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrRemote}
	}

	return []error{ErrRemote, e.Err}
}

func (e *RemoteError) HasUserErrors() bool { return len(e.UserErrors) > 0 }

func NewRemoteError(op, message string, cause error) error {
	return &RemoteError{Op: op, Message: message, Err: cause}
}

func NewUserErrors(op string, userErrors []UserError) error {
	return &RemoteError{Op: op, UserErrors: userErrors}
}

func IsNotFound(err error) bool    { return errors.Is(err, ErrNotFound) }
func IsValidation(err error) bool  { return errors.Is(err, ErrValidation) }
func IsForbidden(err error) bool   { return errors.Is(err, ErrForbidden) }
func IsUnavailable(err error) bool { return errors.Is(err, ErrUnavailable) }
func IsRemote(err error) bool      { return errors.Is(err, ErrRemote) }

// AsRemote finds the RemoteError in err's chain.
func AsRemote(err error) (*RemoteError, bool) {
	var re *RemoteError
	ok := errors.As(err, &re)

	return re, ok
}
