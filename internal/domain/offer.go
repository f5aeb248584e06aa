package domain

import (
	"fmt"
	"net/mail"
	"slices"
	"strings"
)

// EmailOffer is an emailed, payable offer for a quote.
// LockPrices and AllowDiscounts are recorded but enforced by the platform.
type EmailOffer struct {
	To             string
	From           string
	CC             string
	BCC            string
	Subject        string
	CustomMessage  string
	LockPrices     bool
	AllowDiscounts bool
}

// Validate checks recipient and sender, and that the sender is allowed.
// An empty allow-list permits any syntactically valid sender.
func (o *EmailOffer) Validate(allowedSenders []string) error {
	if strings.TrimSpace(o.To) == "" {
		return NewValidationError("to", "Recipient email is required.")
	}

	if _, err := mail.ParseAddress(o.To); err != nil {
		return NewValidationErrorWithValue("to", "Recipient email is invalid.", o.To)
	}

	if strings.TrimSpace(o.From) == "" {
		return NewValidationError("from", "Sender email is required.")
	}

	if len(allowedSenders) > 0 && !slices.Contains(allowedSenders, o.From) {
		return NewForbiddenError("send offer", fmt.Sprintf("sender %q is not allowed", o.From))
	}

	return nil
}

// SubjectFor returns the subject, defaulting to "Offer for Quote #<n>".
func (o *EmailOffer) SubjectFor(quoteID string) string {
	if s := strings.TrimSpace(o.Subject); s != "" {
		return s
	}

	return "Offer for Quote #" + QuoteNumber(quoteID)
}

// CompletedOrder is the result of finalizing a quote into an order.
type CompletedOrder struct {
	InvoiceURL string
	OrderID    string
}
