package acl

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acme/quote-manager/internal/adapters/http/dto"
)

const editableDraftOrderJSON = `{
  "id": "gid://shopify/DraftOrder/77",
  "name": "#D77",
  "status": "open",
  "lineItems": {"edges": [
    {"node": {"id": "li-1", "title": "Widget", "quantity": 3, "originalUnitPrice": "19.99",
      "requiresShipping": true, "taxable": true,
      "variant": {"id": "gid://shopify/ProductVariant/5"}}},
    {"node": {"id": "li-2", "title": "Installation", "quantity": 1, "originalUnitPrice": "120.5",
      "requiresShipping": false, "taxable": true, "variant": null}}
  ]},
  "appliedDiscount": {"description": "volume", "valueType": "PERCENTAGE", "value": 7.5},
  "shippingLine": {"title": "Standard", "price": "4.99"},
  "taxLines": [{"title": "State tax", "rate": 0.0625, "ratePercentage": 6.25,
    "priceSet": {"shopMoney": {"amount": "11.28", "currencyCode": "USD"}}}]
}`

// An unedited quote read from the platform, rendered for the editor and
// submitted back, produces the mutation input it was read from.
func TestUneditedQuoteSurvivesEditorRoundTrip(t *testing.T) {
	q, err := toDomainQuote(decodeDraftOrder(t, editableDraftOrderJSON))
	require.NoError(t, err)

	rendered, err := json.Marshal(dto.NewQuoteResponse(q))
	require.NoError(t, err)

	var submitted dto.SaveQuoteRequest
	require.NoError(t, json.Unmarshal(rendered, &submitted))
	require.NoError(t, submitted.Validate())

	input, err := buildDraftOrderInput(submitted.ToDomain(), "USD")
	require.NoError(t, err)

	require.Len(t, input.LineItems, 2)

	catalog := input.LineItems[0]
	assert.Equal(t, "gid://shopify/ProductVariant/5", catalog.VariantID)
	assert.Equal(t, 3, catalog.Quantity)
	assert.Nil(t, catalog.OriginalUnitPriceWithCurrency, "catalog items are priced by the platform")
	assert.True(t, catalog.RequiresShipping)
	assert.True(t, catalog.Taxable)

	custom := input.LineItems[1]
	assert.Empty(t, custom.VariantID)
	assert.Equal(t, "Installation", custom.Title)
	assert.Equal(t, 1, custom.Quantity)
	require.NotNil(t, custom.OriginalUnitPriceWithCurrency)
	assert.Equal(t, "120.50", custom.OriginalUnitPriceWithCurrency.Amount)
	assert.Equal(t, "USD", custom.OriginalUnitPriceWithCurrency.CurrencyCode)
	assert.False(t, custom.RequiresShipping)

	require.NotNil(t, input.AppliedDiscount)
	assert.Equal(t, valueTypePercentage, input.AppliedDiscount.ValueType)
	assert.InDelta(t, 7.5, input.AppliedDiscount.Value, 0.01)
	assert.Equal(t, "volume", input.AppliedDiscount.Description)

	require.NotNil(t, input.ShippingLine)
	assert.Equal(t, "Standard", input.ShippingLine.Title)
	assert.InDelta(t, 4.99, input.ShippingLine.Price.InexactFloat64(), 0.01)

	require.Len(t, input.TaxLines, 1)
	assert.Equal(t, "State tax", input.TaxLines[0].Title)
	assert.InDelta(t, 0.0625, input.TaxLines[0].Rate, 0.0001)
	assert.InDelta(t, 11.28, input.TaxLines[0].Price.InexactFloat64(), 0.01)
}
