// Package app contains application services that orchestrate use cases.
package app

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	"github.com/acme/quote-manager/internal/domain"
	"github.com/acme/quote-manager/internal/domain/pricing"
	"github.com/acme/quote-manager/internal/ports"
)

// QuoteService runs the quote use cases against the draft order repository.
type QuoteService struct {
	repo       ports.DraftOrderRepository
	reconciler *StatusReconciler
	executor   *Executor
	senders    []string
	logger     *slog.Logger
}

// QuoteServiceConfig contains configuration for the quote service.
type QuoteServiceConfig struct {
	Repository ports.DraftOrderRepository

	// Senders is the allow-list of offer From addresses. Empty allows any.
	Senders []string

	Logger *slog.Logger
}

// NewQuoteService creates a new quote service. Panics if Repository is nil.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Repository == nil {
		panic("QuoteService: Repository is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteService{
		repo:       cfg.Repository,
		reconciler: NewStatusReconciler(cfg.Repository, logger),
		executor:   NewExecutor(logger),
		senders:    slices.Clone(cfg.Senders),
		logger:     logger.With(slog.String("component", "app.QuoteService")),
	}
}

// ListFilter narrows a quote listing.
type ListFilter struct {
	// RequestedOnly keeps quotes requested from the storefront.
	RequestedOnly bool

	// Limit caps the page size. Zero means the repository default.
	Limit int
}

// QuoteList is the listing view: full quotes and their summaries in the
// same order.
type QuoteList struct {
	Quotes    []*domain.Quote
	Summaries []domain.QuoteSummary
}

// ListQuotes fetches quotes, repairs their status tags, and returns them
// newest first.
func (s *QuoteService) ListQuotes(ctx context.Context, filter ListFilter) (*QuoteList, error) {
	quotes, err := s.repo.ListDraftOrders(ctx, filter.Limit)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list quotes", slog.Any("error", err))
		return nil, err
	}

	if repaired := s.reconciler.Reconcile(ctx, quotes); repaired > 0 {
		s.logger.InfoContext(ctx, "status tags repaired", slog.Int("count", repaired))
	}

	if filter.RequestedOnly {
		quotes = slices.DeleteFunc(quotes, func(q *domain.Quote) bool {
			return !q.RequestedFromStorefront()
		})
	}

	slices.SortStableFunc(quotes, func(a, b *domain.Quote) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})

	list := &QuoteList{
		Quotes:    quotes,
		Summaries: make([]domain.QuoteSummary, 0, len(quotes)),
	}

	for _, q := range quotes {
		list.Summaries = append(list.Summaries, q.Summarize())
	}

	return list, nil
}

// GetQuote returns one quote. Bare numeric ids are accepted.
func (s *QuoteService) GetQuote(ctx context.Context, id string) (*domain.Quote, error) {
	id = domain.NormalizeQuoteID(id)
	if id == "" {
		return nil, domain.NewValidationError("id", "Quote id is required.")
	}

	quote, err := s.repo.GetDraftOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	return quote, nil
}

type saveInput struct {
	id   string
	edit *domain.QuoteEdit
}

// SaveQuote persists an edit and returns the quote as the platform stores
// it afterwards.
func (s *QuoteService) SaveQuote(ctx context.Context, id string, edit *domain.QuoteEdit) (*domain.Quote, error) {
	w := Write[saveInput, *domain.Quote]{
		Name:     "save-quote",
		Validate: s.validateSave,
		Mutate: func(ctx context.Context, in saveInput) (*domain.Quote, error) {
			return s.repo.UpdateDraftOrder(ctx, in.id, in.edit)
		},
		Reread: func(ctx context.Context, in saveInput) (*domain.Quote, error) {
			return s.repo.GetDraftOrder(ctx, in.id)
		},
		Reconcile: func(ctx context.Context, q *domain.Quote) {
			s.reconciler.Reconcile(ctx, []*domain.Quote{q})
		},
	}

	return Run(ctx, s.executor, w, saveInput{id: domain.NormalizeQuoteID(id), edit: edit})
}

func (s *QuoteService) validateSave(_ context.Context, in saveInput) error {
	if in.id == "" {
		return domain.NewValidationError("id", "Quote id is required.")
	}

	if in.edit == nil || !in.edit.HasValidLineItem() {
		return domain.NewValidationError("lineItems", domain.MsgNoLineItems)
	}

	if err := pricing.ValidateDiscount(in.edit.AppliedDiscount); err != nil {
		return err
	}

	if sl := in.edit.ShippingLine; sl != nil && sl.Price.IsNegative() {
		return domain.NewValidationErrorWithValue("shippingLine.price", "Shipping price cannot be negative.", sl.Price.String())
	}

	return nil
}

// SendOffer emails the quote as a payable offer. The subject defaults to
// "Offer for Quote #<n>".
func (s *QuoteService) SendOffer(ctx context.Context, id string, offer *domain.EmailOffer) error {
	id = domain.NormalizeQuoteID(id)
	if id == "" {
		return domain.NewValidationError("id", "Quote id is required.")
	}

	if offer == nil {
		return domain.NewValidationError("to", "Recipient email is required.")
	}

	if err := offer.Validate(s.senders); err != nil {
		return err
	}

	sent := *offer
	sent.Subject = offer.SubjectFor(id)

	if err := s.repo.SendInvoice(ctx, id, &sent); err != nil {
		s.logger.ErrorContext(ctx, "failed to send offer",
			slog.String("quote_id", id),
			slog.Any("error", err),
		)

		return err
	}

	s.logger.InfoContext(ctx, "offer sent", slog.String("quote_id", id))

	return nil
}

// CompleteQuote turns the quote into an order.
func (s *QuoteService) CompleteQuote(ctx context.Context, id string) (*domain.CompletedOrder, error) {
	id = domain.NormalizeQuoteID(id)
	if id == "" {
		return nil, domain.NewValidationError("id", "Quote id is required.")
	}

	completed, err := s.repo.CompleteDraftOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "quote completed",
		slog.String("quote_id", id),
		slog.String("order_id", completed.OrderID),
	)

	return completed, nil
}
