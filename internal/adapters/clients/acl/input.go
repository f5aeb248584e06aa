package acl

import "github.com/acme/quote-manager/internal/domain"

// DefaultCurrency is used for custom line item prices when none is configured.
const DefaultCurrency = "USD"

// buildDraftOrderInput is the reverse normalizer. Catalog items are sent by
// variant, custom items by title and price. Items that are neither are
// dropped; if nothing survives the edit is rejected.
func buildDraftOrderInput(edit *domain.QuoteEdit, currency string) (*draftOrderInput, error) {
	if edit == nil {
		return nil, domain.NewValidationError("lineItems", domain.MsgNoLineItems)
	}

	if currency == "" {
		currency = DefaultCurrency
	}

	input := &draftOrderInput{
		LineItems: make([]lineItemInput, 0, len(edit.LineItems)),
	}

	for _, item := range edit.LineItems {
		if li, ok := toLineItemInput(item, currency); ok {
			input.LineItems = append(input.LineItems, li)
		}
	}

	if len(input.LineItems) == 0 {
		return nil, domain.NewValidationError("lineItems", domain.MsgNoLineItems)
	}

	if d := edit.AppliedDiscount; d != nil {
		valueType := valueTypeFixedAmount
		if d.Type == domain.DiscountPercentage {
			valueType = valueTypePercentage
		}

		input.AppliedDiscount = &appliedDiscountInput{
			Description: d.Reason,
			ValueType:   valueType,
			Value:       d.Value.InexactFloat64(),
		}
	}

	if s := edit.ShippingLine; s != nil {
		title := s.Name
		if title == "" {
			title = domain.DefaultShippingTitle
		}

		input.ShippingLine = &shippingLineInput{Title: title, Price: s.Price}
	}

	for _, t := range edit.TaxLines {
		tl := taxLineInput{
			Title: t.Title,
			Rate:  t.Rate.InexactFloat64(),
		}

		if tl.Title == "" {
			tl.Title = domain.DefaultTaxTitle
		}

		if t.Price != nil {
			tl.Price = *t.Price
		}

		input.TaxLines = append(input.TaxLines, tl)
	}

	return input, nil
}

func toLineItemInput(item domain.LineItemEdit, currency string) (lineItemInput, bool) {
	if !item.Valid() {
		return lineItemInput{}, false
	}

	li := lineItemInput{
		Quantity:         item.Quantity,
		RequiresShipping: item.RequiresShipping,
		Taxable:          item.Taxable,
	}

	if item.VariantID != "" {
		li.VariantID = item.VariantID
		return li, true
	}

	li.Title = item.Title
	li.OriginalUnitPriceWithCurrency = &moneyInput{
		Amount:       item.Price.StringFixed(2),
		CurrencyCode: currency,
	}

	return li, true
}
