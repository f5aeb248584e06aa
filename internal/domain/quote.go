package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// QuoteIDPrefix is the global id prefix of a draft order.
const QuoteIDPrefix = "gid://shopify/DraftOrder/"

// Quote is a draft order used as the vehicle for a negotiated B2B offer.
// It has no knowledge of the GraphQL shapes it was decoded from.
type Quote struct {
	ID        string
	Name      string
	Status    PrimaryStatus
	CreatedAt time.Time
	Email     string

	Customer        *Customer
	ShippingAddress *Address
	BillingAddress  *Address

	LineItems       []LineItem
	AppliedDiscount *CustomDiscount
	ShippingLine    *ShippingSelection
	TaxLines        []TaxLine
	PaymentTerms    *PaymentTerms

	Tags []string

	// Note2 marks where the quote came from.
	Note2 string

	// PurchasingEntity is nil when the platform reports none.
	PurchasingEntity PurchasingEntity

	// StatusTag is the secondary status field. Nil means absent.
	StatusTag []string

	// Totals as reported by the platform.
	Subtotal       decimal.Decimal
	Total          decimal.Decimal
	TotalTax       decimal.Decimal
	TotalShipping  decimal.Decimal
	TotalDiscounts decimal.Decimal
}

// CompanyName resolves the purchasing entity's company, or "".
func (q *Quote) CompanyName() string {
	if q.PurchasingEntity == nil {
		return ""
	}

	return q.PurchasingEntity.CompanyName()
}

// LocationName returns the company location name, or "".
func (q *Quote) LocationName() string {
	if pc, ok := q.PurchasingEntity.(PurchasingCompany); ok {
		return pc.LocationName
	}

	return ""
}

// DisplayStatus returns the secondary status, falling back to one derived
// from the primary status so a quote never shows an empty status.
func (q *Quote) DisplayStatus() QuoteStatus {
	if len(q.StatusTag) > 0 && q.StatusTag[0] != "" {
		return QuoteStatus(q.StatusTag[0])
	}

	return q.Status.DefaultDisplay()
}

// RequestedFromStorefront reports whether a storefront visitor created the quote.
func (q *Quote) RequestedFromStorefront() bool {
	for _, tag := range q.Tags {
		if tag == RequestQuoteTag {
			return true
		}
	}

	return q.Note2 == StorefrontNote
}

// Storefront provenance markers.
const (
	RequestQuoteTag = "request_quote"
	StorefrontNote  = "Requested quote from storefront"
)

// Customer is the buyer contact on a quote.
type Customer struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Company   string
}

// DisplayName is "first last", the email, or "N/A".
func (c *Customer) DisplayName() string {
	if c == nil {
		return NotAvailable
	}

	if name := strings.TrimSpace(c.FirstName + " " + c.LastName); name != "" {
		return name
	}

	if c.Email != "" {
		return c.Email
	}

	return NotAvailable
}

// NotAvailable is the placeholder for missing listing fields.
const NotAvailable = "N/A"

// Address is a postal address.
type Address struct {
	Name         string
	Company      string
	Address1     string
	Address2     string
	City         string
	ProvinceCode string
	Zip          string
	Country      string
	Phone        string
}

// LineItem is one priced, quantified entry on a quote.
// A catalog-backed item has a VariantID; a custom item has a title and price.
type LineItem struct {
	ID               string
	Title            string
	Quantity         int
	Price            decimal.Decimal
	Image            *Image
	VariantID        string
	IsCustom         bool
	RequiresShipping bool
	Taxable          bool
}

// LineTotal is price times quantity.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Image is a product or variant image.
type Image struct {
	URL     string
	AltText string
}

// DiscountType discriminates custom discounts.
type DiscountType string

// Discount types.
const (
	DiscountFixed      DiscountType = "fixed"
	DiscountPercentage DiscountType = "percentage"
)

// CustomDiscount is a merchant-applied discount on the whole quote.
type CustomDiscount struct {
	Type   DiscountType
	Value  decimal.Decimal
	Reason string
}

// ShippingType discriminates shipping selections.
type ShippingType string

// Shipping types.
const (
	ShippingRate   ShippingType = "rate"
	ShippingCustom ShippingType = "custom"
)

// DefaultShippingTitle names a shipping line without a title.
const DefaultShippingTitle = "Shipping"

// ShippingSelection is either a predefined rate or a custom charge.
type ShippingSelection struct {
	Type  ShippingType
	Name  string
	Price decimal.Decimal
}

// DefaultTaxTitle names a tax line without a title.
const DefaultTaxTitle = "Tax"

// TaxLine is an upstream-computed tax charge. Tax is never estimated locally.
type TaxLine struct {
	Title          string
	Rate           decimal.Decimal
	RatePercentage decimal.Decimal
	Source         string
	Price          decimal.Decimal
}

// PaymentTerms are the due-date terms assigned to a draft order.
type PaymentTerms struct {
	ID             string
	Name           string
	TranslatedName string
	DueInDays      int
}

// PaymentTermsTemplate is a shop-level terms template.
type PaymentTermsTemplate struct {
	ID             string
	Name           string
	TranslatedName string
	DueInDays      int
}

// QuoteEdit is the editable part of a quote sent back on save.
type QuoteEdit struct {
	LineItems       []LineItemEdit
	AppliedDiscount *CustomDiscount
	ShippingLine    *ShippingSelection
	TaxLines        []TaxLineEdit
}

// LineItemEdit is a line item as submitted by the editor. Fields are optional
// because invalid items are dropped rather than rejected.
type LineItemEdit struct {
	VariantID        string
	Title            string
	Quantity         int
	Price            *decimal.Decimal
	RequiresShipping bool
	Taxable          bool
}

// Valid reports whether the item can be sent upstream: a positive quantity
// and either a variant or a titled custom item with a non-negative price.
func (e LineItemEdit) Valid() bool {
	if e.Quantity < 1 {
		return false
	}

	if e.VariantID != "" {
		return true
	}

	return strings.TrimSpace(e.Title) != "" && e.Price != nil && !e.Price.IsNegative()
}

// MsgNoLineItems is the message returned when no submitted item is valid.
const MsgNoLineItems = "At least one valid line item is required"

// HasValidLineItem reports whether at least one line item survives validation.
func (e *QuoteEdit) HasValidLineItem() bool {
	if e == nil {
		return false
	}

	for _, item := range e.LineItems {
		if item.Valid() {
			return true
		}
	}

	return false
}

// TaxLineEdit is a tax line as submitted by the editor.
type TaxLineEdit struct {
	Title string
	Price *decimal.Decimal
	Rate  decimal.Decimal
}

// NormalizeQuoteID expands a bare numeric id into a draft order gid.
func NormalizeQuoteID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || strings.HasPrefix(id, "gid://") {
		return id
	}

	for _, r := range id {
		if r < '0' || r > '9' {
			return id
		}
	}

	return QuoteIDPrefix + id
}

// QuoteNumber is the trailing numeric part of a quote gid.
func QuoteNumber(id string) string {
	if i := strings.LastIndex(id, "/"); i >= 0 {
		return id[i+1:]
	}

	return id
}
