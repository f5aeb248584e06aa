package dto

import "github.com/acme/quote-manager/internal/domain"

// ProductSearchQuery binds GET /products.
type ProductSearchQuery struct {
	Search            string `form:"search"`
	Limit             int    `form:"limit" validate:"gte=0"`
	CompanyLocationID string `form:"companyLocationId"`
}

// ToDomain converts the query.
func (q ProductSearchQuery) ToDomain() domain.ProductSearch {
	return domain.ProductSearch{
		Search:            q.Search,
		Limit:             q.Limit,
		CompanyLocationID: q.CompanyLocationID,
	}
}

// ProductResponse is a catalog search hit.
type ProductResponse struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Handle    string         `json:"handle"`
	Image     *ImageResponse `json:"image,omitempty"`
	Price     Number         `json:"price"`
	VariantID *string        `json:"variantId"`
}

// ProductsResponse is the search body.
type ProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

// NewProductsResponse converts search hits.
func NewProductsResponse(products []domain.Product) ProductsResponse {
	resp := ProductsResponse{Products: make([]ProductResponse, 0, len(products))}

	for _, p := range products {
		r := ProductResponse{
			ID:     p.ID,
			Title:  p.Title,
			Handle: p.Handle,
			Image:  newImageResponse(p.Image),
			Price:  Number(p.Price),
		}

		// A product without variants reports variantId as null.
		if p.VariantID != "" {
			r.VariantID = &p.VariantID
		}

		resp.Products = append(resp.Products, r)
	}

	return resp
}

// LocationResponse is a company location.
type LocationResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LocationsResponse is the locations body.
type LocationsResponse struct {
	CompanyLocations []LocationResponse `json:"companyLocations"`
}

// NewLocationsResponse converts locations.
func NewLocationsResponse(locations []domain.Location) LocationsResponse {
	resp := LocationsResponse{CompanyLocations: make([]LocationResponse, 0, len(locations))}
	for _, l := range locations {
		resp.CompanyLocations = append(resp.CompanyLocations, LocationResponse(l))
	}

	return resp
}

// PaymentTermsResponse is the terms assigned to a draft order.
type PaymentTermsResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	TranslatedName string `json:"translatedName,omitempty"`
	DueInDays      int    `json:"dueInDays"`
}

// NewPaymentTermsResponse converts terms; nil stays nil.
func NewPaymentTermsResponse(pt *domain.PaymentTerms) *PaymentTermsResponse {
	if pt == nil {
		return nil
	}

	r := PaymentTermsResponse(*pt)

	return &r
}

// PaymentTermsTemplateResponse is a shop-level template.
type PaymentTermsTemplateResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	TranslatedName string `json:"translatedName,omitempty"`
	DueInDays      int    `json:"dueInDays"`
}

// PaymentTermsViewResponse is the GET /payment-terms body.
type PaymentTermsViewResponse struct {
	Templates    []PaymentTermsTemplateResponse `json:"templates"`
	PaymentTerms *PaymentTermsResponse          `json:"paymentTerms"`
}

// NewPaymentTermsViewResponse converts templates and the assigned terms.
func NewPaymentTermsViewResponse(templates []domain.PaymentTermsTemplate, terms *domain.PaymentTerms) PaymentTermsViewResponse {
	resp := PaymentTermsViewResponse{
		Templates:    make([]PaymentTermsTemplateResponse, 0, len(templates)),
		PaymentTerms: NewPaymentTermsResponse(terms),
	}

	for _, t := range templates {
		resp.Templates = append(resp.Templates, PaymentTermsTemplateResponse(t))
	}

	return resp
}

// PaymentTermsQuery binds GET /payment-terms.
type PaymentTermsQuery struct {
	DraftOrderID string `form:"draftOrderId"`
}

// SetPaymentTermsRequest is the POST /payment-terms body.
type SetPaymentTermsRequest struct {
	DraftOrderID string `json:"draftOrderId" validate:"notempty,gid=DraftOrder"`
	TemplateID   string `json:"templateId" validate:"notempty"`
}

// SetPaymentTermsResponse answers an assignment.
type SetPaymentTermsResponse struct {
	Success      bool                  `json:"success"`
	PaymentTerms *PaymentTermsResponse `json:"paymentTerms"`
}
