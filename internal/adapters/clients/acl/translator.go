package acl

import (
	"encoding/json"
	"fmt"

	"github.com/acme/quote-manager/internal/domain"
	"github.com/acme/quote-manager/internal/domain/pricing"
)

// Upstream enum values and union discriminators.
const (
	valueTypePercentage  = "PERCENTAGE"
	valueTypeFixedAmount = "FIXED_AMOUNT"

	typenamePurchasingCompany = "PurchasingCompany"
	typenameCustomer          = "Customer"
)

// Translator converts one external DTO into a domain value, validating it on
// the way.
type Translator[External any, Domain any] func(ext *External) (Domain, error)

// TranslateSlice applies translate to every item and stops at the first error.
func TranslateSlice[E any, D any](items []E, translate Translator[E, D]) ([]D, error) {
	result := make([]D, 0, len(items))

	for i := range items {
		translated, err := translate(&items[i])
		if err != nil {
			return nil, fmt.Errorf("translating item %d: %w", i, err)
		}

		result = append(result, translated)
	}

	return result, nil
}

// ValidateRequired returns a domain.ValidationError when value is empty.
func ValidateRequired(value, fieldName string) error {
	if value == "" {
		return domain.NewValidationError(fieldName, fieldName+" is required")
	}

	return nil
}

// toDomainQuote is the forward normalizer: it flattens connections, resolves
// the purchasing entity union, and parses money and the stored status tag.
func toDomainQuote(d *draftOrderDTO) (*domain.Quote, error) {
	if err := ValidateRequired(d.ID, "id"); err != nil {
		return nil, err
	}

	q := &domain.Quote{
		ID:               d.ID,
		Name:             d.Name,
		Status:           domain.ParsePrimaryStatus(d.Status),
		CreatedAt:        d.CreatedAt,
		Email:            d.Email,
		Customer:         toCustomer(d.Customer),
		ShippingAddress:  toAddress(d.ShippingAddress),
		BillingAddress:   toAddress(d.BillingAddress),
		LineItems:        toLineItems(d.LineItems.nodes()),
		AppliedDiscount:  toDiscount(d.AppliedDiscount),
		ShippingLine:     toShipping(d.ShippingLine),
		TaxLines:         toTaxLines(d.TaxLines),
		PaymentTerms:     toPaymentTerms(d.PaymentTerms),
		Tags:             d.Tags,
		Note2:            d.Note2,
		PurchasingEntity: toPurchasingEntity(d.PurchasingEntity),
		StatusTag:        parseStatusTag(d.Metafield),
		Subtotal:         d.SubtotalPrice,
		Total:            d.TotalPrice,
		TotalTax:         d.TotalTax,
		TotalShipping:    d.TotalShippingPrice,
	}

	if d.TotalDiscountsSet != nil {
		q.TotalDiscounts = d.TotalDiscountsSet.ShopMoney.Amount
	}

	return q, nil
}

func toCustomer(c *customerDTO) *domain.Customer {
	if c == nil {
		return nil
	}

	out := &domain.Customer{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
	}

	if c.DefaultAddress != nil {
		out.Company = c.DefaultAddress.Company
	}

	return out
}

func toAddress(a *addressDTO) *domain.Address {
	if a == nil {
		return nil
	}

	return &domain.Address{
		Name:         a.Name,
		Company:      a.Company,
		Address1:     a.Address1,
		Address2:     a.Address2,
		City:         a.City,
		ProvinceCode: a.ProvinceCode,
		Zip:          a.Zip,
		Country:      a.Country,
		Phone:        a.Phone,
	}
}

func toImage(img *imageDTO) *domain.Image {
	if img == nil || img.URL == "" {
		return nil
	}

	return &domain.Image{URL: img.URL, AltText: img.AltText}
}

func toLineItems(nodes []lineItemDTO) []domain.LineItem {
	items := make([]domain.LineItem, 0, len(nodes))

	for _, n := range nodes {
		item := domain.LineItem{
			ID:               n.ID,
			Title:            n.Title,
			Quantity:         n.Quantity,
			Price:            n.OriginalUnitPrice,
			Image:            toImage(n.Image),
			IsCustom:         n.Variant == nil,
			RequiresShipping: n.RequiresShipping != nil && *n.RequiresShipping,
			Taxable:          n.Taxable != nil && *n.Taxable,
		}

		if n.Variant != nil {
			item.VariantID = n.Variant.ID

			if item.Image == nil {
				item.Image = toImage(n.Variant.Image)
			}
		}

		items = append(items, item)
	}

	return items
}

func toDiscount(d *appliedDiscountDTO) *domain.CustomDiscount {
	if d == nil {
		return nil
	}

	kind := domain.DiscountFixed
	if d.ValueType == valueTypePercentage {
		kind = domain.DiscountPercentage
	}

	return &domain.CustomDiscount{Type: kind, Value: d.Value, Reason: d.Description}
}

func toShipping(s *shippingLineDTO) *domain.ShippingSelection {
	if s == nil {
		return nil
	}

	kind := domain.ShippingCustom
	if _, ok := pricing.RateByName(s.Title); ok {
		kind = domain.ShippingRate
	}

	return &domain.ShippingSelection{Type: kind, Name: s.Title, Price: s.Price}
}

func toTaxLines(lines []taxLineDTO) []domain.TaxLine {
	out := make([]domain.TaxLine, 0, len(lines))

	for _, l := range lines {
		tl := domain.TaxLine{
			Title:          l.Title,
			Rate:           l.Rate,
			RatePercentage: l.RatePercentage,
			Source:         l.Source,
		}

		if l.PriceSet != nil {
			tl.Price = l.PriceSet.ShopMoney.Amount
		}

		out = append(out, tl)
	}

	return out
}

func toPaymentTerms(p *paymentTermsDTO) *domain.PaymentTerms {
	if p == nil {
		return nil
	}

	terms := &domain.PaymentTerms{
		ID:             p.ID,
		Name:           p.PaymentTermsName,
		TranslatedName: p.TranslatedName,
	}

	if p.DueInDays != nil {
		terms.DueInDays = *p.DueInDays
	}

	return terms
}

func toPaymentTermsTemplate(t *paymentTermsTemplateDTO) (domain.PaymentTermsTemplate, error) {
	if err := ValidateRequired(t.ID, "id"); err != nil {
		return domain.PaymentTermsTemplate{}, err
	}

	tmpl := domain.PaymentTermsTemplate{
		ID:             t.ID,
		Name:           t.Name,
		TranslatedName: t.TranslatedName,
	}

	if t.DueInDays != nil {
		tmpl.DueInDays = *t.DueInDays
	}

	return tmpl, nil
}

// toPurchasingEntity is the only place the union is inspected; everything
// above works with the domain variant.
func toPurchasingEntity(p *purchasingEntityDTO) domain.PurchasingEntity {
	if p == nil {
		return nil
	}

	switch p.Typename {
	case typenamePurchasingCompany:
		pc := domain.PurchasingCompany{}
		if p.Company != nil {
			pc.Company = p.Company.Name
		}

		if p.Location != nil {
			pc.LocationID = p.Location.ID
			pc.LocationName = p.Location.Name
		}

		return pc
	case typenameCustomer:
		pc := domain.PurchasingCustomer{}
		if p.DefaultAddress != nil {
			pc.DefaultCompany = p.DefaultAddress.Company
		}

		return pc
	default:
		return nil
	}
}

// parseStatusTag decodes the stored secondary status. Anything that is not a
// JSON list of strings is treated as absent.
func parseStatusTag(m *metafieldDTO) []string {
	if m == nil || m.Value == "" {
		return nil
	}

	var tag []string
	if err := json.Unmarshal([]byte(m.Value), &tag); err != nil {
		return nil
	}

	return tag
}

func toProduct(p *productDTO) (domain.Product, error) {
	if err := ValidateRequired(p.ID, "id"); err != nil {
		return domain.Product{}, err
	}

	product := domain.Product{
		ID:     p.ID,
		Title:  p.Title,
		Handle: p.Handle,
		Image:  toImage(p.FeaturedImage),
	}

	if p.PriceRangeV2 != nil {
		product.Price = p.PriceRangeV2.MinVariantPrice.Amount
	}

	variants := p.Variants.nodes()
	if len(variants) == 0 {
		return product, nil
	}

	v := variants[0]
	product.VariantID = v.ID

	if v.InventoryItem != nil {
		product.InventoryItemID = v.InventoryItem.ID
	}

	// Contextual (company location) price wins over the variant list price.
	switch {
	case v.ContextualPricing != nil && v.ContextualPricing.Price != nil:
		product.Price = v.ContextualPricing.Price.Amount
	case v.Price != nil:
		product.Price = *v.Price
	}

	return product, nil
}

func toLocation(l *locationDTO) (domain.Location, error) {
	if err := ValidateRequired(l.ID, "id"); err != nil {
		return domain.Location{}, err
	}

	return domain.Location{ID: l.ID, Name: l.Name}, nil
}
