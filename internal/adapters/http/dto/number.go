package dto

import (
	"github.com/shopspring/decimal"

	"github.com/acme/quote-manager/internal/domain/pricing"
)

// Number is a decimal written as a bare JSON number: 10.5, never "10.5".
// The editor formats amounts with toFixed and treats a string price as a
// missing one.
type Number decimal.Decimal

// Decimal returns the underlying value.
func (n Number) Decimal() decimal.Decimal {
	return decimal.Decimal(n)
}

func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(n).String()), nil
}

// UnmarshalJSON accepts numbers and numeric strings.
func (n *Number) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}

	*n = Number(d)

	return nil
}

// TotalsResponse is the derived price breakdown.
type TotalsResponse struct {
	Subtotal Number `json:"subtotal"`
	Discount Number `json:"discount"`
	Shipping Number `json:"shipping"`
	Tax      Number `json:"tax"`
	Total    Number `json:"total"`
}

// NewTotalsResponse converts calculated totals.
func NewTotalsResponse(t pricing.Totals) TotalsResponse {
	return TotalsResponse{
		Subtotal: Number(t.Subtotal),
		Discount: Number(t.Discount),
		Shipping: Number(t.Shipping),
		Tax:      Number(t.Tax),
		Total:    Number(t.Total),
	}
}
