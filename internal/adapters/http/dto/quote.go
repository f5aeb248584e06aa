package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/acme/quote-manager/internal/domain"
	"github.com/acme/quote-manager/internal/domain/pricing"
)

// Discount value types as the editor and the platform spell them.
const (
	ValueTypeFixed      = "FIXED_AMOUNT"
	ValueTypePercentage = "PERCENTAGE"
)

// QuoteResponse is a quote as the editor reads it.
type QuoteResponse struct {
	ID              string                `json:"id"`
	Name            string                `json:"name"`
	Number          string                `json:"number"`
	Status          string                `json:"status"`
	QuoteStatus     string                `json:"quoteStatus"`
	CreatedAt       time.Time             `json:"createdAt"`
	Email           string                `json:"email,omitempty"`
	Customer        *CustomerResponse     `json:"customer"`
	ShippingAddress *AddressResponse      `json:"shippingAddress"`
	BillingAddress  *AddressResponse      `json:"billingAddress"`
	LineItems       []LineItemResponse    `json:"lineItems"`
	SubtotalPrice   Number                `json:"subtotalPrice"`
	ShippingPrice   Number                `json:"shippingPrice"`
	TaxAmount       Number                `json:"taxAmount"`
	TotalPrice      Number                `json:"totalPrice"`
	TotalDiscounts  Number                `json:"totalDiscounts"`
	CompanyName     string                `json:"companyName"`
	LocationName    string                `json:"locationName"`
	PaymentTerms    *PaymentTermsResponse `json:"paymentTerms"`
	AppliedDiscount *DiscountResponse     `json:"appliedDiscount"`
	ShippingLine    *ShippingLineResponse `json:"shippingLine"`
	TaxLines        []TaxLineResponse     `json:"taxLines"`
	Tags            []string              `json:"tags"`
	Note2           string                `json:"note2"`
	FromStorefront  bool                  `json:"fromStorefront"`
	Totals          TotalsResponse        `json:"totals"`
}

// CustomerResponse is the buyer contact.
type CustomerResponse struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	DisplayName string `json:"displayName"`
}

// AddressResponse is a postal address.
type AddressResponse struct {
	Name         string `json:"name,omitempty"`
	Company      string `json:"company,omitempty"`
	Address1     string `json:"address1"`
	Address2     string `json:"address2,omitempty"`
	City         string `json:"city"`
	ProvinceCode string `json:"provinceCode,omitempty"`
	Zip          string `json:"zip"`
	Country      string `json:"country"`
	Phone        string `json:"phone,omitempty"`
}

// LineItemResponse is one line of a quote.
type LineItemResponse struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Quantity         int            `json:"quantity"`
	Price            Number         `json:"price"`
	Image            *ImageResponse `json:"image"`
	VariantID        string         `json:"variantId,omitempty"`
	IsCustom         bool           `json:"isCustom"`
	RequiresShipping bool           `json:"requiresShipping"`
	Taxable          bool           `json:"taxable"`
}

// ImageResponse is a product image.
type ImageResponse struct {
	URL     string `json:"url"`
	AltText string `json:"altText,omitempty"`
}

// DiscountResponse is the quote-level discount.
type DiscountResponse struct {
	Description string `json:"description"`
	ValueType   string `json:"valueType"`
	Value       Number `json:"value"`
}

// ShippingLineResponse is the selected shipping.
type ShippingLineResponse struct {
	Title string `json:"title"`
	Price Number `json:"price"`
	Type  string `json:"type"`
}

// TaxLineResponse is a platform-computed tax line.
type TaxLineResponse struct {
	Title          string `json:"title"`
	Rate           Number `json:"rate"`
	RatePercentage Number `json:"ratePercentage"`
	Source         string `json:"source,omitempty"`
	Price          Number `json:"price"`
}

// QuoteListQuery binds GET /quotes.
type QuoteListQuery struct {
	RequestedOnly bool `form:"requestedOnly"`
	Limit         int  `form:"limit" validate:"gte=0,lte=250"`
}

// QuoteSummaryResponse is one row of the quote listing.
type QuoteSummaryResponse struct {
	ID             string    `json:"id"`
	Number         string    `json:"number"`
	Customer       string    `json:"customer"`
	Company        string    `json:"company"`
	Status         string    `json:"status"`
	Total          Number    `json:"total"`
	CreatedAt      time.Time `json:"createdAt"`
	FromStorefront bool      `json:"fromStorefront"`
}

// QuoteListResponse is the listing body. draftOrders carries the full
// quotes for callers that render more than the summary row.
type QuoteListResponse struct {
	DraftOrders []QuoteResponse        `json:"draftOrders"`
	Quotes      []QuoteSummaryResponse `json:"quotes"`
}

// QuoteEnvelope wraps a single quote.
type QuoteEnvelope struct {
	Quote QuoteResponse `json:"quote"`
}

// SaveQuoteResponse answers a successful save.
type SaveQuoteResponse struct {
	Success bool          `json:"success"`
	Updated QuoteResponse `json:"updated"`
}

// SuccessResponse is the bare {"success": true} body.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// CompleteQuoteResponse answers a completed quote.
type CompleteQuoteResponse struct {
	Success    bool   `json:"success"`
	InvoiceURL string `json:"invoiceUrl"`
	OrderID    string `json:"orderId"`
}

// NewQuoteResponse converts a domain quote.
func NewQuoteResponse(q *domain.Quote) QuoteResponse {
	resp := QuoteResponse{
		ID:              q.ID,
		Name:            q.Name,
		Number:          domain.QuoteDisplayName(q.Name),
		Status:          string(q.Status),
		QuoteStatus:     string(q.DisplayStatus()),
		CreatedAt:       q.CreatedAt,
		Email:           q.Email,
		ShippingAddress: newAddressResponse(q.ShippingAddress),
		BillingAddress:  newAddressResponse(q.BillingAddress),
		LineItems:       make([]LineItemResponse, 0, len(q.LineItems)),
		SubtotalPrice:   Number(q.Subtotal),
		ShippingPrice:   Number(q.TotalShipping),
		TaxAmount:       Number(q.TotalTax),
		TotalPrice:      Number(q.Total),
		TotalDiscounts:  Number(q.TotalDiscounts),
		CompanyName:     q.CompanyName(),
		LocationName:    q.LocationName(),
		TaxLines:        make([]TaxLineResponse, 0, len(q.TaxLines)),
		Tags:            q.Tags,
		Note2:           q.Note2,
		FromStorefront:  q.RequestedFromStorefront(),
		Totals:          NewTotalsResponse(pricing.ForQuote(q)),
	}

	if resp.Tags == nil {
		resp.Tags = []string{}
	}

	if c := q.Customer; c != nil {
		resp.Customer = &CustomerResponse{
			ID:          c.ID,
			FirstName:   c.FirstName,
			LastName:    c.LastName,
			Email:       c.Email,
			Phone:       c.Phone,
			DisplayName: c.DisplayName(),
		}
	}

	for _, li := range q.LineItems {
		resp.LineItems = append(resp.LineItems, LineItemResponse{
			ID:               li.ID,
			Title:            li.Title,
			Quantity:         li.Quantity,
			Price:            Number(li.Price),
			Image:            newImageResponse(li.Image),
			VariantID:        li.VariantID,
			IsCustom:         li.IsCustom,
			RequiresShipping: li.RequiresShipping,
			Taxable:          li.Taxable,
		})
	}

	if d := q.AppliedDiscount; d != nil {
		resp.AppliedDiscount = &DiscountResponse{
			Description: d.Reason,
			ValueType:   valueTypeOf(d.Type),
			Value:       Number(d.Value),
		}
	}

	if s := q.ShippingLine; s != nil {
		resp.ShippingLine = &ShippingLineResponse{Title: s.Name, Price: Number(s.Price), Type: string(s.Type)}
	}

	for _, tl := range q.TaxLines {
		resp.TaxLines = append(resp.TaxLines, TaxLineResponse{
			Title:          tl.Title,
			Rate:           Number(tl.Rate),
			RatePercentage: Number(tl.RatePercentage),
			Source:         tl.Source,
			Price:          Number(tl.Price),
		})
	}

	if pt := q.PaymentTerms; pt != nil {
		resp.PaymentTerms = NewPaymentTermsResponse(pt)
	}

	return resp
}

// NewQuoteListResponse converts a listing.
func NewQuoteListResponse(quotes []*domain.Quote, summaries []domain.QuoteSummary) QuoteListResponse {
	resp := QuoteListResponse{
		DraftOrders: make([]QuoteResponse, 0, len(quotes)),
		Quotes:      make([]QuoteSummaryResponse, 0, len(summaries)),
	}

	for _, q := range quotes {
		resp.DraftOrders = append(resp.DraftOrders, NewQuoteResponse(q))
	}

	for _, s := range summaries {
		resp.Quotes = append(resp.Quotes, QuoteSummaryResponse{
			ID:             s.ID,
			Number:         s.Number,
			Customer:       s.Customer,
			Company:        s.Company,
			Status:         string(s.Status),
			Total:          Number(s.Total),
			CreatedAt:      s.CreatedAt,
			FromStorefront: s.FromStorefront,
		})
	}

	return resp
}

func newAddressResponse(a *domain.Address) *AddressResponse {
	if a == nil {
		return nil
	}

	r := AddressResponse(*a)

	return &r
}

func newImageResponse(img *domain.Image) *ImageResponse {
	if img == nil {
		return nil
	}

	return &ImageResponse{URL: img.URL, AltText: img.AltText}
}

func valueTypeOf(t domain.DiscountType) string {
	if t == domain.DiscountPercentage {
		return ValueTypePercentage
	}

	return ValueTypeFixed
}

// SaveQuoteRequest is the body of PUT /quotes/:id.
type SaveQuoteRequest struct {
	LineItems       []LineItemRequest    `json:"lineItems"`
	AppliedDiscount *DiscountRequest     `json:"appliedDiscount"`
	ShippingLine    *ShippingLineRequest `json:"shippingLine"`
	TaxLines        []TaxLineRequest     `json:"taxLines"`
}

// LineItemRequest is a submitted line item. Items that are neither
// catalog-backed nor a titled custom item are dropped, not rejected.
type LineItemRequest struct {
	VariantID        string           `json:"variantId"`
	Title            string           `json:"title"`
	Quantity         int              `json:"quantity"`
	Price            *decimal.Decimal `json:"price"`
	RequiresShipping bool             `json:"requiresShipping"`
	Taxable          bool             `json:"taxable"`
}

// DiscountRequest is a submitted discount. It is ignored unless both
// value and valueType are present.
type DiscountRequest struct {
	Description string           `json:"description"`
	ValueType   string           `json:"valueType" validate:"omitempty,oneof=FIXED_AMOUNT PERCENTAGE fixed percentage"`
	Value       *decimal.Decimal `json:"value"`
}

// ShippingLineRequest is submitted shipping. It is ignored without a price.
type ShippingLineRequest struct {
	Title string           `json:"title"`
	Price *decimal.Decimal `json:"price"`
	Type  string           `json:"type" validate:"omitempty,oneof=rate custom"`
}

// TaxLineRequest is a submitted tax line.
type TaxLineRequest struct {
	Title string           `json:"title"`
	Price *decimal.Decimal `json:"price"`
	Rate  *decimal.Decimal `json:"rate"`
}

// ToDomain converts the request into an edit.
func (r *SaveQuoteRequest) ToDomain() *domain.QuoteEdit {
	edit := &domain.QuoteEdit{
		LineItems: make([]domain.LineItemEdit, 0, len(r.LineItems)),
	}

	for _, li := range r.LineItems {
		edit.LineItems = append(edit.LineItems, domain.LineItemEdit{
			VariantID:        li.VariantID,
			Title:            li.Title,
			Quantity:         li.Quantity,
			Price:            li.Price,
			RequiresShipping: li.RequiresShipping,
			Taxable:          li.Taxable,
		})
	}

	if d := r.AppliedDiscount; d != nil && d.Value != nil && d.ValueType != "" {
		edit.AppliedDiscount = &domain.CustomDiscount{
			Type:   discountTypeOf(d.ValueType),
			Value:  *d.Value,
			Reason: d.Description,
		}
	}

	if s := r.ShippingLine; s != nil && s.Price != nil {
		kind := domain.ShippingCustom
		if s.Type == string(domain.ShippingRate) {
			kind = domain.ShippingRate
		}

		edit.ShippingLine = &domain.ShippingSelection{Type: kind, Name: s.Title, Price: *s.Price}
	}

	for _, tl := range r.TaxLines {
		line := domain.TaxLineEdit{Title: tl.Title, Price: tl.Price}
		if tl.Rate != nil {
			line.Rate = *tl.Rate
		}

		edit.TaxLines = append(edit.TaxLines, line)
	}

	return edit
}

func discountTypeOf(valueType string) domain.DiscountType {
	switch valueType {
	case ValueTypePercentage, string(domain.DiscountPercentage):
		return domain.DiscountPercentage
	default:
		return domain.DiscountFixed
	}
}

// SendOfferRequest is the body of POST /quotes/:id.
type SendOfferRequest struct {
	EmailPayload *EmailPayload `json:"emailPayload"`
}

// EmailPayload is the offer email as composed by the merchant.
type EmailPayload struct {
	To             string `json:"to"`
	From           string `json:"from"`
	CC             string `json:"cc"`
	BCC            string `json:"bcc"`
	Subject        string `json:"subject"`
	CustomMessage  string `json:"customMessage"`
	LockPrices     bool   `json:"lockPrices"`
	AllowDiscounts bool   `json:"allowDiscounts"`
}

// ToDomain converts the payload. A missing payload yields nil.
func (r *SendOfferRequest) ToDomain() *domain.EmailOffer {
	p := r.EmailPayload
	if p == nil {
		return nil
	}

	return &domain.EmailOffer{
		To:             p.To,
		From:           p.From,
		CC:             p.CC,
		BCC:            p.BCC,
		Subject:        p.Subject,
		CustomMessage:  p.CustomMessage,
		LockPrices:     p.LockPrices,
		AllowDiscounts: p.AllowDiscounts,
	}
}

// PricingRequest asks for the totals of an unsaved edit.
type PricingRequest struct {
	LineItems       []PricingLineItem    `json:"lineItems" validate:"dive"`
	AppliedDiscount *DiscountRequest     `json:"appliedDiscount"`
	ShippingLine    *ShippingLineRequest `json:"shippingLine"`
	Tax             *decimal.Decimal     `json:"tax"`
}

// PricingLineItem is a priced quantity.
type PricingLineItem struct {
	Quantity int             `json:"quantity" validate:"gte=0"`
	Price    decimal.Decimal `json:"price"`
}

// Calculate derives totals for the request.
func (r *PricingRequest) Calculate() pricing.Totals {
	items := make([]domain.LineItem, 0, len(r.LineItems))
	for _, li := range r.LineItems {
		items = append(items, domain.LineItem{Quantity: li.Quantity, Price: li.Price})
	}

	var discount *domain.CustomDiscount
	if d := r.AppliedDiscount; d != nil && d.Value != nil && d.ValueType != "" {
		discount = &domain.CustomDiscount{Type: discountTypeOf(d.ValueType), Value: *d.Value}
	}

	var shipping *domain.ShippingSelection
	if s := r.ShippingLine; s != nil && s.Price != nil {
		shipping = &domain.ShippingSelection{Name: s.Title, Price: *s.Price}
	} else if s != nil {
		if rate, ok := pricing.RateByName(s.Title); ok {
			shipping = &domain.ShippingSelection{Type: domain.ShippingRate, Name: rate.Name, Price: rate.Price}
		}
	}

	tax := decimal.Zero
	if r.Tax != nil {
		tax = *r.Tax
	}

	return pricing.Calculate(items, discount, shipping, tax)
}

// Validate rejects a save without any line items.
func (r *SaveQuoteRequest) Validate() error {
	if len(r.LineItems) == 0 {
		return domain.NewValidationError("lineItems", "Invalid or empty lineItems array")
	}

	return nil
}
