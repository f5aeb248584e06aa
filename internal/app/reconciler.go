package app

import (
	"context"
	"log/slog"
	"slices"

	"github.com/acme/quote-manager/internal/domain"
	"github.com/acme/quote-manager/internal/ports"
)

// StatusReconciler repairs a quote's secondary status tag so that it agrees
// with the primary status the platform reports.
type StatusReconciler struct {
	writer ports.StatusWriter
	logger *slog.Logger
}

// NewStatusReconciler creates a reconciler. Panics if writer is nil.
func NewStatusReconciler(writer ports.StatusWriter, logger *slog.Logger) *StatusReconciler {
	if writer == nil {
		panic("StatusReconciler: writer is required")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &StatusReconciler{
		writer: writer,
		logger: logger.With(slog.String("component", "app.StatusReconciler")),
	}
}

// Reconcile checks each quote in order and writes the expected tag where the
// stored one is missing or different. Writes are not batched and a failed
// write does not stop the rest. Each quote's in-memory tag is set to the
// expected value either way, so callers always see a consistent view.
//
// Returns the number of writes attempted.
func (r *StatusReconciler) Reconcile(ctx context.Context, quotes []*domain.Quote) int {
	attempted := 0

	for _, q := range quotes {
		if q == nil {
			continue
		}

		expected, ok := domain.ExpectedStatusTag(q.Status)
		if !ok {
			continue
		}

		if q.StatusTag != nil && domain.StatusTagMatches(q.StatusTag, expected) {
			continue
		}

		attempted++

		if err := r.writer.SetQuoteStatus(ctx, q.ID, expected); err != nil {
			r.logger.WarnContext(ctx, "status tag repair failed",
				slog.String("quote_id", q.ID),
				slog.String("status", string(q.Status)),
				slog.Any("error", err),
			)
		} else {
			r.logger.DebugContext(ctx, "status tag repaired",
				slog.String("quote_id", q.ID),
				slog.Any("tag", expected),
			)
		}

		q.StatusTag = slices.Clone(expected)
	}

	return attempted
}
