package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// QuoteSummary is one row of the quote listing.
type QuoteSummary struct {
	ID             string
	Number         string
	Customer       string
	Company        string
	Status         QuoteStatus
	Total          decimal.Decimal
	CreatedAt      time.Time
	FromStorefront bool
}

// Summarize builds the listing row for a quote.
func (q *Quote) Summarize() QuoteSummary {
	company := q.CompanyName()
	if company == "" {
		company = NotAvailable
	}

	return QuoteSummary{
		ID:             q.ID,
		Number:         QuoteDisplayName(q.Name),
		Customer:       q.Customer.DisplayName(),
		Company:        company,
		Status:         q.DisplayStatus(),
		Total:          q.Total,
		CreatedAt:      q.CreatedAt,
		FromStorefront: q.RequestedFromStorefront(),
	}
}

// QuoteDisplayName renders a draft order name ("#D12") as a quote number ("#Q12").
func QuoteDisplayName(name string) string {
	if rest, ok := strings.CutPrefix(name, "#D"); ok {
		return "#Q" + rest
	}

	return name
}
