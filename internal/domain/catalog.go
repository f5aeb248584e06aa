package domain

import "github.com/shopspring/decimal"

// Product is a catalog search hit resolved to its first variant.
type Product struct {
	ID              string
	Title           string
	Handle          string
	Image           *Image
	Price           decimal.Decimal
	VariantID       string
	InventoryItemID string
}

// Location is a company location that scopes contextual pricing.
type Location struct {
	ID   string
	Name string
}

// ProductSearch describes a catalog query.
type ProductSearch struct {
	Search            string
	Limit             int
	CompanyLocationID string
}

// Product search limits.
const (
	DefaultProductLimit = 10
	MaxProductLimit     = 50
)

// Normalize applies default and maximum limits.
func (s ProductSearch) Normalize() ProductSearch {
	if s.Limit <= 0 {
		s.Limit = DefaultProductLimit
	}

	if s.Limit > MaxProductLimit {
		s.Limit = MaxProductLimit
	}

	return s
}
