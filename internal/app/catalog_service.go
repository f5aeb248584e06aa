package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/acme/quote-manager/internal/domain"
	"github.com/acme/quote-manager/internal/ports"
)

// CatalogService backs the editor's product picker and location selector.
type CatalogService struct {
	catalog ports.Catalog
	logger  *slog.Logger
}

// NewCatalogService creates the service. Panics if catalog is nil.
func NewCatalogService(catalog ports.Catalog, logger *slog.Logger) *CatalogService {
	if catalog == nil {
		panic("CatalogService: catalog is required")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &CatalogService{
		catalog: catalog,
		logger:  logger.With(slog.String("component", "app.CatalogService")),
	}
}

// SearchProducts finds products by title. Limit defaults to 10, capped at 50.
func (s *CatalogService) SearchProducts(ctx context.Context, search domain.ProductSearch) ([]domain.Product, error) {
	search = search.Normalize()

	products, err := s.catalog.SearchProducts(ctx, search)
	if err != nil {
		s.logger.ErrorContext(ctx, "product search failed",
			slog.String("search", search.Search),
			slog.Any("error", err),
		)

		return nil, err
	}

	return products, nil
}

// ListLocations returns company locations.
func (s *CatalogService) ListLocations(ctx context.Context) ([]domain.Location, error) {
	return s.catalog.ListLocations(ctx)
}

// PaymentTermsService reads and assigns quote payment terms.
type PaymentTermsService struct {
	repo   ports.PaymentTermsRepository
	logger *slog.Logger
}

// NewPaymentTermsService creates the service. Panics if repo is nil.
func NewPaymentTermsService(repo ports.PaymentTermsRepository, logger *slog.Logger) *PaymentTermsService {
	if repo == nil {
		panic("PaymentTermsService: repository is required")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PaymentTermsService{
		repo:   repo,
		logger: logger.With(slog.String("component", "app.PaymentTermsService")),
	}
}

// PaymentTermsView is the shop's templates and the quote's current terms.
// Terms is nil when none are assigned.
type PaymentTermsView struct {
	Templates []domain.PaymentTermsTemplate
	Terms     *domain.PaymentTerms
}

// Get fetches templates and the quote's terms concurrently.
func (s *PaymentTermsService) Get(ctx context.Context, draftOrderID string) (*PaymentTermsView, error) {
	draftOrderID = domain.NormalizeQuoteID(draftOrderID)
	if draftOrderID == "" {
		return nil, domain.NewValidationError("draftOrderId", "Draft order id is required.")
	}

	templates, terms, err := fetchBoth(ctx,
		s.repo.ListPaymentTermsTemplates,
		func(ctx context.Context) (*domain.PaymentTerms, error) {
			return s.repo.GetDraftOrderPaymentTerms(ctx, draftOrderID)
		},
	)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load payment terms",
			slog.String("quote_id", draftOrderID),
			slog.Any("error", err),
		)

		return nil, err
	}

	return &PaymentTermsView{Templates: templates, Terms: terms}, nil
}

// Set assigns a template to the quote and returns the resulting terms.
func (s *PaymentTermsService) Set(ctx context.Context, draftOrderID, templateID string) (*domain.PaymentTerms, error) {
	draftOrderID = domain.NormalizeQuoteID(draftOrderID)
	templateID = strings.TrimSpace(templateID)

	if draftOrderID == "" {
		return nil, domain.NewValidationError("draftOrderId", "Draft order id is required.")
	}

	if templateID == "" {
		return nil, domain.NewValidationError("paymentTermsTemplateId", "Payment terms template id is required.")
	}

	terms, err := s.repo.SetPaymentTerms(ctx, draftOrderID, templateID)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "payment terms set",
		slog.String("quote_id", draftOrderID),
		slog.String("template_id", templateID),
	)

	return terms, nil
}
