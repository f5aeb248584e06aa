package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/acme/quote-manager/internal/platform/logging"
)

// Stage is one step of a quote write.
type Stage string

// A write runs validate, mutate, reread and reconcile in that order.
const (
	// StageValidate rejects the edit before the platform is touched.
	StageValidate Stage = "validate"

	// StageMutate sends the mutation.
	StageMutate Stage = "mutate"

	// StageReread fetches the quote again. The mutation payload is not
	// trusted as the stored state.
	StageReread Stage = "reread"

	// StageReconcile repairs the status tag of the reread quote.
	StageReconcile Stage = "reconcile"
)

// StageError records the stage a write stopped at.
type StageError struct {
	Write string
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Write, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// StageOf reports the stage at which err stopped a write.
func StageOf(err error) (Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}

	return "", false
}

// Write describes a quote mutation. Validate and Reconcile are optional.
// Reconcile is best effort and cannot fail the write.
type Write[I, Q any] struct {
	Name      string
	Validate  func(ctx context.Context, in I) error
	Mutate    func(ctx context.Context, in I) (Q, error)
	Reread    func(ctx context.Context, in I) (Q, error)
	Reconcile func(ctx context.Context, q Q)
}

// Executor runs writes with a span and per-stage logging.
type Executor struct {
	logger *slog.Logger
	tracer trace.Tracer
}

// NewExecutor creates an executor. A nil logger uses slog.Default.
func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{
		logger: logger,
		tracer: otel.Tracer("github.com/acme/quote-manager/internal/app"),
	}
}

// Run executes w for in and returns the reread quote. When Reread is nil
// the mutation result is returned instead.
func Run[I, Q any](ctx context.Context, exec *Executor, w Write[I, Q], in I) (Q, error) {
	var zero Q

	ctx, span := exec.tracer.Start(ctx, "quote."+w.Name, trace.WithAttributes(attribute.String("quote.write", w.Name)))
	defer span.End()

	logger := logging.FromContextOr(ctx, exec.logger).With(slog.String("operation", w.Name))
	start := time.Now()

	fail := func(stage Stage, err error) (Q, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(stage))
		logger.WarnContext(ctx, "write stopped", slog.String("stage", string(stage)), slog.Any("error", err))

		return zero, &StageError{Write: w.Name, Stage: stage, Err: err}
	}

	if w.Validate != nil {
		if err := w.Validate(ctx, in); err != nil {
			return fail(StageValidate, err)
		}
	}

	result, err := w.Mutate(ctx, in)
	if err != nil {
		return fail(StageMutate, err)
	}

	span.AddEvent(string(StageMutate))

	if w.Reread != nil {
		if result, err = w.Reread(ctx, in); err != nil {
			return fail(StageReread, err)
		}

		span.AddEvent(string(StageReread))
	}

	if w.Reconcile != nil {
		w.Reconcile(ctx, result)
	}

	logger.InfoContext(ctx, "write completed", slog.Duration("duration", time.Since(start)))

	return result, nil
}
