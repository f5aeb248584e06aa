package domain

import (
	"slices"
	"strings"
)

// PrimaryStatus is the platform's draft order status enum.
type PrimaryStatus string

// Primary statuses reported by the platform.
const (
	StatusOpen        PrimaryStatus = "OPEN"
	StatusInvoiceSent PrimaryStatus = "INVOICE_SENT"
	StatusCompleted   PrimaryStatus = "COMPLETED"
)

// ParsePrimaryStatus uppercases the raw value. Unknown values are kept as-is
// so that they simply have no secondary mapping.
func ParsePrimaryStatus(raw string) PrimaryStatus {
	return PrimaryStatus(strings.ToUpper(strings.TrimSpace(raw)))
}

// QuoteStatus is the finer-grained secondary status shown to merchants.
type QuoteStatus string

// Secondary statuses.
const (
	QuoteSubmitted   QuoteStatus = "submitted"
	QuoteUnderReview QuoteStatus = "under_review"
	QuoteOfferSent   QuoteStatus = "offer_sent"
	QuoteAccepted    QuoteStatus = "accepted"
	QuoteCompleted   QuoteStatus = "completed"
	QuoteExpired     QuoteStatus = "expired"
)

// statusTags maps a primary status to the tag the secondary field must hold.
var statusTags = map[PrimaryStatus][]string{
	StatusOpen:        {string(QuoteSubmitted)},
	StatusCompleted:   {string(QuoteCompleted)},
	StatusInvoiceSent: {string(QuoteOfferSent)},
}

// ExpectedStatusTag returns the tag mandated for a primary status.
// ok is false for statuses with no mapping; such quotes are never patched.
func ExpectedStatusTag(s PrimaryStatus) (tag []string, ok bool) {
	tag, ok = statusTags[s]
	if !ok {
		return nil, false
	}

	return slices.Clone(tag), true
}

// StatusTagMatches reports whether current already holds expected.
// A nil current is absent and never matches.
func StatusTagMatches(current, expected []string) bool {
	if current == nil {
		return false
	}

	return slices.Equal(current, expected)
}

// DefaultDisplay is the display status used when no secondary tag is stored.
func (s PrimaryStatus) DefaultDisplay() QuoteStatus {
	switch s {
	case StatusOpen:
		return QuoteSubmitted
	case StatusInvoiceSent:
		return QuoteOfferSent
	case StatusCompleted:
		return QuoteCompleted
	default:
		return QuoteUnderReview
	}
}
