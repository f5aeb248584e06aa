// Package ports defines the interfaces the application layer depends on.
// Adapters implement them; every method takes a context first, speaks in
// domain types, and reports failures with domain errors.
package ports

import (
	"context"
	"encoding/json"

	"github.com/acme/quote-manager/internal/domain"
)

// Gateway relays GraphQL documents to the commerce platform.
// It returns the response's data payload, and a *domain.RemoteError when
// the transport fails, the response carries errors, or a mutation reports
// userErrors. It never retries and never caches.
type Gateway interface {
	Execute(ctx context.Context, document string, variables map[string]any) (json.RawMessage, error)
}

// StatusWriter patches the secondary status tag of a quote.
type StatusWriter interface {
	SetQuoteStatus(ctx context.Context, quoteID string, tag []string) error
}

// DraftOrderRepository reads and writes quotes stored as draft orders.
type DraftOrderRepository interface {
	StatusWriter

	// ListDraftOrders returns up to limit quotes, newest first.
	ListDraftOrders(ctx context.Context, limit int) ([]*domain.Quote, error)

	// GetDraftOrder returns domain.ErrNotFound when the id resolves to nothing.
	GetDraftOrder(ctx context.Context, id string) (*domain.Quote, error)

	// UpdateDraftOrder persists edits and returns the quote as the platform
	// now reports it.
	UpdateDraftOrder(ctx context.Context, id string, edit *domain.QuoteEdit) (*domain.Quote, error)

	SendInvoice(ctx context.Context, id string, offer *domain.EmailOffer) error

	CompleteDraftOrder(ctx context.Context, id string) (*domain.CompletedOrder, error)
}

// Catalog searches products and company locations.
type Catalog interface {
	SearchProducts(ctx context.Context, search domain.ProductSearch) ([]domain.Product, error)
	ListLocations(ctx context.Context) ([]domain.Location, error)
}

// PaymentTermsRepository reads and assigns payment terms.
type PaymentTermsRepository interface {
	ListPaymentTermsTemplates(ctx context.Context) ([]domain.PaymentTermsTemplate, error)

	// GetDraftOrderPaymentTerms returns nil terms when none are assigned.
	GetDraftOrderPaymentTerms(ctx context.Context, draftOrderID string) (*domain.PaymentTerms, error)

	SetPaymentTerms(ctx context.Context, draftOrderID, templateID string) (*domain.PaymentTerms, error)
}

// SessionStore persists install-handshake and shop sessions.
// Load returns domain.ErrNotFound for unknown or expired ids.
type SessionStore interface {
	Store(ctx context.Context, session *domain.Session) error
	Load(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}
