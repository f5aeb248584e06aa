package acl

import (
	"context"
	"fmt"
	"strings"

	"github.com/acme/quote-manager/internal/domain"
	"github.com/acme/quote-manager/internal/ports"
)

// CatalogAdapter searches products and company locations.
// It implements ports.Catalog.
type CatalogAdapter struct {
	gateway ports.Gateway
}

// NewCatalogAdapter creates the adapter. Panics if gateway is nil.
func NewCatalogAdapter(gateway ports.Gateway) *CatalogAdapter {
	if gateway == nil {
		panic("CatalogAdapter: gateway is required")
	}

	return &CatalogAdapter{gateway: gateway}
}

// SearchProducts finds products whose title contains the search text,
// priced for the company location when one is given.
func (a *CatalogAdapter) SearchProducts(ctx context.Context, search domain.ProductSearch) ([]domain.Product, error) {
	search = search.Normalize()

	pricingContext := map[string]any{}
	if search.CompanyLocationID != "" {
		pricingContext["companyLocationId"] = search.CompanyLocationID
	}

	data, err := a.gateway.Execute(ctx, queryProducts, map[string]any{
		"query":   productQuery(search.Search),
		"first":   search.Limit,
		"context": pricingContext,
	})
	if err != nil {
		return nil, err
	}

	resp, err := decode[productsData]("getProducts", data)
	if err != nil {
		return nil, err
	}

	products, err := TranslateSlice(resp.Products.nodes(), toProduct)
	if err != nil {
		return nil, domain.NewRemoteError("getProducts", err.Error(), err)
	}

	return products, nil
}

// ListLocations returns the first page of company locations.
func (a *CatalogAdapter) ListLocations(ctx context.Context) ([]domain.Location, error) {
	data, err := a.gateway.Execute(ctx, queryCompanyLocations, map[string]any{"first": locationsPageSize})
	if err != nil {
		return nil, err
	}

	resp, err := decode[locationsData]("getCompanyLocations", data)
	if err != nil {
		return nil, err
	}

	locations, err := TranslateSlice(resp.CompanyLocations.nodes(), toLocation)
	if err != nil {
		return nil, domain.NewRemoteError("getCompanyLocations", err.Error(), err)
	}

	return locations, nil
}

// productQuery builds the search syntax for a title substring match.
// An empty search lists products unfiltered.
func productQuery(search string) string {
	// Quotes and wildcards would break out of the title term.
	search = strings.NewReplacer(`"`, "", `*`, "", `\`, "").Replace(search)

	search = strings.TrimSpace(search)
	if search == "" {
		return ""
	}

	return fmt.Sprintf("title:*%s*", search)
}
