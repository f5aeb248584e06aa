package acl

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/acme/quote-manager/internal/domain"
	"github.com/acme/quote-manager/internal/platform/logging"
	"github.com/acme/quote-manager/internal/ports"
)

// DraftOrderAdapterConfig configures a DraftOrderAdapter.
type DraftOrderAdapterConfig struct {
	// Gateway relays the GraphQL documents.
	Gateway ports.Gateway

	// Currency prices custom line items. Defaults to USD.
	Currency string

	// Logger is the structured logger.
	Logger *slog.Logger
}

// DraftOrderAdapter stores quotes as draft orders.
// It implements ports.DraftOrderRepository and ports.PaymentTermsRepository.
type DraftOrderAdapter struct {
	gateway  ports.Gateway
	currency string
	logger   *slog.Logger
}

// NewDraftOrderAdapter creates the adapter. Panics if Gateway is nil.
func NewDraftOrderAdapter(cfg DraftOrderAdapterConfig) *DraftOrderAdapter {
	if cfg.Gateway == nil {
		panic("DraftOrderAdapter: Gateway is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	currency := strings.ToUpper(strings.TrimSpace(cfg.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}

	return &DraftOrderAdapter{
		gateway:  cfg.Gateway,
		currency: currency,
		logger:   logger.With(slog.String("component", "acl.DraftOrderAdapter")),
	}
}

// ListDraftOrders returns up to limit quotes, at most one page of 100.
func (a *DraftOrderAdapter) ListDraftOrders(ctx context.Context, limit int) ([]*domain.Quote, error) {
	if limit <= 0 || limit > draftOrdersPageSize {
		limit = draftOrdersPageSize
	}

	data, err := a.gateway.Execute(ctx, queryDraftOrders, map[string]any{
		"first": limit,
		"query": "",
	})
	if err != nil {
		return nil, err
	}

	resp, err := decode[draftOrdersData]("getDraftOrders", data)
	if err != nil {
		return nil, err
	}

	quotes, err := TranslateSlice(resp.DraftOrders.nodes(), toDomainQuote)
	if err != nil {
		return nil, domain.NewRemoteError("getDraftOrders", err.Error(), err)
	}

	logging.FromContext(ctx).Log(ctx, logging.LevelTrace, "draft orders fetched", slog.Int("count", len(quotes)))

	return quotes, nil
}

// GetDraftOrder returns the full quote.
func (a *DraftOrderAdapter) GetDraftOrder(ctx context.Context, id string) (*domain.Quote, error) {
	data, err := a.gateway.Execute(ctx, queryDraftOrder, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}

	resp, err := decode[draftOrderData]("getDraftOrder", data)
	if err != nil {
		return nil, err
	}

	if resp.DraftOrder == nil {
		return nil, domain.NewNotFoundError(entityQuote, id)
	}

	return toDomainQuote(resp.DraftOrder)
}

// UpdateDraftOrder replaces line items, discount, shipping and tax.
func (a *DraftOrderAdapter) UpdateDraftOrder(ctx context.Context, id string, edit *domain.QuoteEdit) (*domain.Quote, error) {
	input, err := buildDraftOrderInput(edit, a.currency)
	if err != nil {
		return nil, err
	}

	a.logger.DebugContext(ctx, "updating draft order",
		slog.String("quote_id", id),
		slog.Int("line_items", len(input.LineItems)),
	)

	data, err := a.gateway.Execute(ctx, mutationDraftOrderUpdate, map[string]any{
		"id":    id,
		"input": input,
	})
	if err != nil {
		return nil, err
	}

	resp, err := decode[draftOrderUpdateData]("draftOrderUpdate", data)
	if err != nil {
		return nil, err
	}

	if resp.DraftOrderUpdate.DraftOrder == nil {
		return nil, missingPayload("draftOrderUpdate", "draftOrder")
	}

	return toDomainQuote(resp.DraftOrderUpdate.DraftOrder)
}

// SetQuoteStatus writes the secondary status as a JSON list metafield.
func (a *DraftOrderAdapter) SetQuoteStatus(ctx context.Context, quoteID string, tag []string) error {
	value, err := json.Marshal(tag)
	if err != nil {
		return domain.NewRemoteError("updateQuoteStatus", "encoding status", err)
	}

	_, err = a.gateway.Execute(ctx, mutationMetafieldsSet, map[string]any{
		"metafields": []metafieldsSetInput{{
			OwnerID:   quoteID,
			Namespace: statusNamespace,
			Key:       statusKey,
			Type:      statusMetafieldType,
			Value:     string(value),
		}},
	})

	return err
}

// SendInvoice emails the offer through the platform.
func (a *DraftOrderAdapter) SendInvoice(ctx context.Context, id string, offer *domain.EmailOffer) error {
	email := emailInput{
		To:            offer.To,
		From:          offer.From,
		CC:            splitAddresses(offer.CC),
		BCC:           splitAddresses(offer.BCC),
		Subject:       offer.Subject,
		CustomMessage: offer.CustomMessage,
	}

	_, err := a.gateway.Execute(ctx, mutationDraftOrderInvoiceSend, map[string]any{
		"id":    id,
		"email": email,
	})

	return err
}

// CompleteDraftOrder turns the quote into an order.
func (a *DraftOrderAdapter) CompleteDraftOrder(ctx context.Context, id string) (*domain.CompletedOrder, error) {
	data, err := a.gateway.Execute(ctx, mutationDraftOrderComplete, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}

	resp, err := decode[draftOrderCompleteData]("draftOrderComplete", data)
	if err != nil {
		return nil, err
	}

	draft := resp.DraftOrderComplete.DraftOrder
	if draft == nil {
		return nil, missingPayload("draftOrderComplete", "draftOrder")
	}

	completed := &domain.CompletedOrder{InvoiceURL: draft.InvoiceURL, OrderID: draft.ID}
	if draft.Order != nil && draft.Order.ID != "" {
		completed.OrderID = draft.Order.ID
	}

	return completed, nil
}

// ListPaymentTermsTemplates returns the shop's terms templates.
func (a *DraftOrderAdapter) ListPaymentTermsTemplates(ctx context.Context) ([]domain.PaymentTermsTemplate, error) {
	data, err := a.gateway.Execute(ctx, queryPaymentTermsTemplates, nil)
	if err != nil {
		return nil, err
	}

	resp, err := decode[paymentTermsTemplatesData]("paymentTermsTemplates", data)
	if err != nil {
		return nil, err
	}

	templates, err := TranslateSlice(resp.PaymentTermsTemplates, toPaymentTermsTemplate)
	if err != nil {
		return nil, domain.NewRemoteError("paymentTermsTemplates", err.Error(), err)
	}

	return templates, nil
}

// GetDraftOrderPaymentTerms returns the terms assigned to a quote, or nil.
func (a *DraftOrderAdapter) GetDraftOrderPaymentTerms(ctx context.Context, draftOrderID string) (*domain.PaymentTerms, error) {
	data, err := a.gateway.Execute(ctx, queryDraftOrderPaymentTerms, map[string]any{"id": draftOrderID})
	if err != nil {
		return nil, err
	}

	resp, err := decode[draftOrderPaymentTermsData]("draftOrderPaymentTerms", data)
	if err != nil {
		return nil, err
	}

	if resp.DraftOrder == nil {
		return nil, domain.NewNotFoundError(entityQuote, draftOrderID)
	}

	return toPaymentTerms(resp.DraftOrder.PaymentTerms), nil
}

// SetPaymentTerms assigns a terms template to a quote.
func (a *DraftOrderAdapter) SetPaymentTerms(ctx context.Context, draftOrderID, templateID string) (*domain.PaymentTerms, error) {
	data, err := a.gateway.Execute(ctx, mutationSetPaymentTerms, map[string]any{
		"id": draftOrderID,
		"input": draftOrderInput{
			PaymentTerms: &paymentTermsInput{PaymentTermsTemplateID: templateID},
		},
	})
	if err != nil {
		return nil, err
	}

	resp, err := decode[setPaymentTermsData]("setDraftOrderPaymentTerms", data)
	if err != nil {
		return nil, err
	}

	if resp.DraftOrderUpdate.DraftOrder == nil {
		return nil, missingPayload("setDraftOrderPaymentTerms", "draftOrder")
	}

	return toPaymentTerms(resp.DraftOrderUpdate.DraftOrder.PaymentTerms), nil
}

// splitAddresses turns a comma or semicolon separated list into addresses.
func splitAddresses(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ';' })

	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}

	if len(out) == 0 {
		return nil
	}

	return out
}
