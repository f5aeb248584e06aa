package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acme/quote-manager/internal/domain"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSaveQuoteRequest_ToDomain(t *testing.T) {
	body := `{
		"lineItems": [
			{"variantId": "gid://shopify/ProductVariant/1", "quantity": 2, "taxable": true},
			{"title": "Setup fee", "quantity": 1, "price": 25.5}
		],
		"appliedDiscount": {"description": "Loyal", "valueType": "PERCENTAGE", "value": 10},
		"shippingLine": {"title": "Express", "price": 14.99},
		"taxLines": [{"title": "VAT", "price": "3.20", "rate": 0.2}, {}]
	}`

	var req SaveQuoteRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	edit := req.ToDomain()

	require.Len(t, edit.LineItems, 2)
	assert.Equal(t, "gid://shopify/ProductVariant/1", edit.LineItems[0].VariantID)
	assert.True(t, edit.LineItems[0].Taxable)
	assert.Nil(t, edit.LineItems[0].Price)
	assert.True(t, edit.LineItems[1].Price.Equal(dec("25.5")))
	assert.True(t, edit.HasValidLineItem())

	require.NotNil(t, edit.AppliedDiscount)
	assert.Equal(t, domain.DiscountPercentage, edit.AppliedDiscount.Type)
	assert.True(t, edit.AppliedDiscount.Value.Equal(dec("10")))
	assert.Equal(t, "Loyal", edit.AppliedDiscount.Reason)

	require.NotNil(t, edit.ShippingLine)
	assert.Equal(t, domain.ShippingCustom, edit.ShippingLine.Type)
	assert.Equal(t, "Express", edit.ShippingLine.Name)

	require.Len(t, edit.TaxLines, 2)
	assert.True(t, edit.TaxLines[0].Rate.Equal(dec("0.2")))
	assert.Nil(t, edit.TaxLines[1].Price)
}

func TestSaveQuoteRequest_ToDomain_IgnoresIncompleteParts(t *testing.T) {
	value := dec("5")

	req := SaveQuoteRequest{
		LineItems:       []LineItemRequest{{Title: "No price", Quantity: 1}},
		AppliedDiscount: &DiscountRequest{Value: &value},
		ShippingLine:    &ShippingLineRequest{Title: "Standard"},
	}

	edit := req.ToDomain()

	assert.Nil(t, edit.AppliedDiscount, "discount without a value type")
	assert.Nil(t, edit.ShippingLine, "shipping without a price")
	assert.False(t, edit.HasValidLineItem())
}

func TestSendOfferRequest_ToDomain(t *testing.T) {
	var req SendOfferRequest
	require.NoError(t, json.Unmarshal([]byte(`{"emailPayload":{
		"to":"buyer@example.com","from":"sales@example.com","cc":"a@example.com",
		"subject":"","customMessage":"Thanks","lockPrices":true,"allowDiscounts":false}}`), &req))

	offer := req.ToDomain()
	require.NotNil(t, offer)
	assert.Equal(t, "buyer@example.com", offer.To)
	assert.Equal(t, "a@example.com", offer.CC)
	assert.True(t, offer.LockPrices)
	assert.Equal(t, "Thanks", offer.CustomMessage)

	assert.Nil(t, (&SendOfferRequest{}).ToDomain())
}

func TestNewQuoteResponse(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	q := &domain.Quote{
		ID:        "gid://shopify/DraftOrder/7",
		Name:      "#D7",
		Status:    domain.StatusInvoiceSent,
		CreatedAt: created,
		Customer:  &domain.Customer{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
		LineItems: []domain.LineItem{
			{ID: "li1", Title: "Bolt", Quantity: 4, Price: dec("2.50"), VariantID: "v1"},
		},
		AppliedDiscount:  &domain.CustomDiscount{Type: domain.DiscountFixed, Value: dec("1"), Reason: "promo"},
		ShippingLine:     &domain.ShippingSelection{Type: domain.ShippingRate, Name: "Standard", Price: dec("4.99")},
		TaxLines:         []domain.TaxLine{{Title: "VAT", Price: dec("2.00"), Rate: dec("0.2")}},
		PurchasingEntity: domain.PurchasingCompany{Company: "Acme", LocationName: "HQ"},
		PaymentTerms:     &domain.PaymentTerms{ID: "P1", Name: "Net 30", DueInDays: 30},
		Total:            dec("15.99"),
	}

	resp := NewQuoteResponse(q)

	assert.Equal(t, "#Q7", resp.Number)
	assert.Equal(t, "INVOICE_SENT", resp.Status)
	assert.Equal(t, "offer_sent", resp.QuoteStatus)
	assert.Equal(t, "Acme", resp.CompanyName)
	assert.Equal(t, "HQ", resp.LocationName)
	assert.Equal(t, "Ada Lovelace", resp.Customer.DisplayName)
	assert.Equal(t, ValueTypeFixed, resp.AppliedDiscount.ValueType)
	assert.Equal(t, "rate", resp.ShippingLine.Type)
	assert.Equal(t, "P1", resp.PaymentTerms.ID)
	assert.Equal(t, []string{}, resp.Tags)
	assert.Nil(t, resp.ShippingAddress)

	// 10.00 + 4.99 shipping + 2.00 tax - 1.00 discount
	assert.Equal(t, "15.99", resp.Totals.Total.Decimal().StringFixed(2))

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"valueType":"FIXED_AMOUNT"`)
	assert.Contains(t, string(raw), `"totalPrice":15.99`)
}

func TestNewQuoteListResponse(t *testing.T) {
	q := &domain.Quote{ID: "q1", Name: "#D1", Status: domain.StatusOpen}

	resp := NewQuoteListResponse([]*domain.Quote{q}, []domain.QuoteSummary{q.Summarize()})

	require.Len(t, resp.DraftOrders, 1)
	require.Len(t, resp.Quotes, 1)
	assert.Equal(t, "#Q1", resp.Quotes[0].Number)
	assert.Equal(t, "submitted", resp.Quotes[0].Status)
	assert.Equal(t, domain.NotAvailable, resp.Quotes[0].Company)
}

func TestPricingRequest_Calculate(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantTotal string
	}{
		{
			name:      "plain subtotal",
			body:      `{"lineItems":[{"quantity":3,"price":"10"}]}`,
			wantTotal: "30.00",
		},
		{
			name:      "fixed discount clamps to subtotal",
			body:      `{"lineItems":[{"quantity":1,"price":"10"}],"appliedDiscount":{"valueType":"FIXED_AMOUNT","value":50}}`,
			wantTotal: "0.00",
		},
		{
			name:      "predefined rate by name",
			body:      `{"lineItems":[{"quantity":1,"price":"10"}],"shippingLine":{"title":"express"}}`,
			wantTotal: "24.99",
		},
		{
			name:      "percentage and tax",
			body:      `{"lineItems":[{"quantity":2,"price":"50"}],"appliedDiscount":{"valueType":"PERCENTAGE","value":10},"tax":"8.5"}`,
			wantTotal: "98.50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req PricingRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			assert.Equal(t, tt.wantTotal, req.Calculate().Total.StringFixed(2))
		})
	}
}

func TestCatalogResponses(t *testing.T) {
	products := NewProductsResponse([]domain.Product{
		{ID: "p1", Title: "Bolt", Price: dec("1.5"), VariantID: "v1"},
		{ID: "p2", Title: "Kit"},
	})

	require.Len(t, products.Products, 2)
	assert.Equal(t, "v1", *products.Products[0].VariantID)
	assert.Nil(t, products.Products[1].VariantID)

	locations := NewLocationsResponse([]domain.Location{{ID: "L1", Name: "HQ"}})
	raw, err := json.Marshal(locations)
	require.NoError(t, err)
	assert.JSONEq(t, `{"companyLocations":[{"id":"L1","name":"HQ"}]}`, string(raw))

	view := NewPaymentTermsViewResponse(nil, nil)
	assert.Empty(t, view.Templates)
	assert.Nil(t, view.PaymentTerms)
}
