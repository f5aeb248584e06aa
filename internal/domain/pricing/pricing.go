// Package pricing derives quote totals from the edit model.
//
// Every function is pure. Amounts stay exact decimals internally and are
// rounded to cents only in Totals.
//
// Discount policy: a fixed discount is clamped to the subtotal every time
// totals are calculated, and a percentage discount is capped at 100, so the
// discount can never exceed the subtotal. Tax is never estimated here; it is
// whatever the platform reported, or zero.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/acme/quote-manager/internal/domain"
)

// Totals is the derived price breakdown of a quote.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

var hundred = decimal.NewFromInt(100)

// Subtotal is the sum of price times quantity.
func Subtotal(items []domain.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.LineTotal())
	}

	return sum
}

// DiscountAmount applies a discount to a subtotal. Nil or negative values
// yield zero.
func DiscountAmount(d *domain.CustomDiscount, subtotal decimal.Decimal) decimal.Decimal {
	if d == nil || !d.Value.IsPositive() || !subtotal.IsPositive() {
		return decimal.Zero
	}

	switch d.Type {
	case domain.DiscountPercentage:
		pct := decimal.Min(d.Value, hundred)
		return subtotal.Mul(pct).Div(hundred)
	case domain.DiscountFixed:
		return decimal.Min(d.Value, subtotal)
	default:
		return decimal.Zero
	}
}

// ShippingAmount is the selection's price, or zero.
func ShippingAmount(s *domain.ShippingSelection) decimal.Decimal {
	if s == nil || s.Price.IsNegative() {
		return decimal.Zero
	}

	return s.Price
}

// TaxAmount sums the platform-reported tax lines.
func TaxAmount(lines []domain.TaxLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Price)
	}

	return sum
}

// Calculate derives all totals. tax is supplied by the caller.
func Calculate(
	items []domain.LineItem,
	discount *domain.CustomDiscount,
	shipping *domain.ShippingSelection,
	tax decimal.Decimal,
) Totals {
	subtotal := Subtotal(items)
	disc := DiscountAmount(discount, subtotal)
	ship := ShippingAmount(shipping)

	if tax.IsNegative() {
		tax = decimal.Zero
	}

	total := subtotal.Add(ship).Add(tax).Sub(disc)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Totals{
		Subtotal: subtotal.Round(2),
		Discount: disc.Round(2),
		Shipping: ship.Round(2),
		Tax:      tax.Round(2),
		Total:    total.Round(2),
	}
}

// ForQuote calculates totals for a quote as currently stored.
func ForQuote(q *domain.Quote) Totals {
	return Calculate(q.LineItems, q.AppliedDiscount, q.ShippingLine, TaxAmount(q.TaxLines))
}

// Rate is a predefined shipping rate.
type Rate struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Rates lists the predefined shipping rates offered in the editor.
func Rates() []Rate {
	return []Rate{
		{Name: "International Shipping", Price: decimal.RequireFromString("0.34")},
		{Name: "Standard", Price: decimal.RequireFromString("4.99")},
		{Name: "Express", Price: decimal.RequireFromString("14.99")},
	}
}

// RateByName finds a predefined rate, ignoring case.
func RateByName(name string) (Rate, bool) {
	for _, r := range Rates() {
		if strings.EqualFold(r.Name, strings.TrimSpace(name)) {
			return r, true
		}
	}

	return Rate{}, false
}

// NormalizeDiscountInput turns raw editor input into a discount. Values that
// are not positive are rejected; the rest are rounded to cents and clamped
// (fixed to the subtotal, percentage to 100).
func NormalizeDiscountInput(
	kind domain.DiscountType,
	value decimal.Decimal,
	reason string,
	subtotal decimal.Decimal,
) (*domain.CustomDiscount, error) {
	if kind != domain.DiscountFixed && kind != domain.DiscountPercentage {
		return nil, domain.NewValidationErrorWithValue("type", "Discount type must be fixed or percentage.", kind)
	}

	if !value.IsPositive() {
		return nil, domain.NewValidationErrorWithValue("value", "Discount value must be greater than 0.", value.String())
	}

	value = value.Round(2)

	switch kind {
	case domain.DiscountFixed:
		value = decimal.Min(value, subtotal)
	case domain.DiscountPercentage:
		value = decimal.Min(value, hundred)
	}

	return &domain.CustomDiscount{Type: kind, Value: value, Reason: reason}, nil
}

// ValidateDiscount checks a stored discount before it is persisted.
func ValidateDiscount(d *domain.CustomDiscount) error {
	if d == nil {
		return nil
	}

	if d.Value.IsNegative() {
		return domain.NewValidationErrorWithValue("appliedDiscount.value", "Discount value cannot be negative.", d.Value.String())
	}

	if d.Type == domain.DiscountPercentage && d.Value.GreaterThan(hundred) {
		return domain.NewValidationErrorWithValue("appliedDiscount.value", "Percentage discount cannot exceed 100.", d.Value.String())
	}

	return nil
}
