package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acme/quote-manager/internal/adapters/http/dto"
	"github.com/acme/quote-manager/internal/app"
)

// CatalogHandler serves product search and company locations.
type CatalogHandler struct {
	service *app.CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(service *app.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// SearchProducts handles GET /api/v1/products.
//
// @Summary Search products
// @Tags catalog
// @Produce json
// @Param search query string false "Title fragment"
// @Param limit query int false "Page size, default 10, max 50"
// @Param companyLocationId query string false "Location for contextual pricing"
// @Success 200 {object} dto.ProductsResponse
// @Failure 500 {object} dto.APIError
// @Router /api/v1/products [get]
func (h *CatalogHandler) SearchProducts(c *gin.Context) {
	var q dto.ProductSearchQuery
	if err := dto.BindQueryAndValidate(c, &q); err != nil {
		c.JSON(http.StatusBadRequest, dto.APIError{Error: dto.RequestErrorMessage(err)})
		return
	}

	products, err := h.service.SearchProducts(c.Request.Context(), q.ToDomain())
	if err != nil {
		dto.RespondAPIError(c, err, "Failed to fetch products")
		return
	}

	c.JSON(http.StatusOK, dto.NewProductsResponse(products))
}

// ListLocations handles GET /api/v1/locations.
func (h *CatalogHandler) ListLocations(c *gin.Context) {
	locations, err := h.service.ListLocations(c.Request.Context())
	if err != nil {
		dto.RespondAPIError(c, err, "Failed to fetch locations")
		return
	}

	c.JSON(http.StatusOK, dto.NewLocationsResponse(locations))
}

// RegisterCatalogRoutes registers catalog routes on the given router group.
func (h *CatalogHandler) RegisterCatalogRoutes(rg *gin.RouterGroup) {
	rg.GET("/products", h.SearchProducts)
	rg.GET("/locations", h.ListLocations)
}

// PaymentTermsHandler reads and assigns draft order payment terms.
type PaymentTermsHandler struct {
	service *app.PaymentTermsService
}

// NewPaymentTermsHandler creates a new payment terms handler.
func NewPaymentTermsHandler(service *app.PaymentTermsService) *PaymentTermsHandler {
	return &PaymentTermsHandler{service: service}
}

// GetPaymentTerms handles GET /api/v1/payment-terms?draftOrderId=.
//
// @Summary Payment terms templates and the draft order's terms
// @Tags payment-terms
// @Produce json
// @Param draftOrderId query string true "Draft order gid"
// @Success 200 {object} dto.PaymentTermsViewResponse
// @Failure 400 {object} dto.APIError
// @Router /api/v1/payment-terms [get]
func (h *PaymentTermsHandler) GetPaymentTerms(c *gin.Context) {
	var q dto.PaymentTermsQuery
	if err := c.ShouldBindQuery(&q); err != nil || q.DraftOrderID == "" {
		c.JSON(http.StatusBadRequest, dto.APIError{Error: "draftOrderId is required"})
		return
	}

	view, err := h.service.Get(c.Request.Context(), q.DraftOrderID)
	if err != nil {
		dto.RespondAPIError(c, err, "Failed to fetch payment terms")
		return
	}

	c.JSON(http.StatusOK, dto.NewPaymentTermsViewResponse(view.Templates, view.Terms))
}

// SetPaymentTerms handles POST /api/v1/payment-terms.
//
// @Summary Assign payment terms to a draft order
// @Tags payment-terms
// @Accept json
// @Produce json
// @Param body body dto.SetPaymentTermsRequest true "Assignment"
// @Success 200 {object} dto.SetPaymentTermsResponse
// @Failure 400 {object} dto.APIError
// @Router /api/v1/payment-terms [post]
func (h *PaymentTermsHandler) SetPaymentTerms(c *gin.Context) {
	var req dto.SetPaymentTermsRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, dto.APIError{
			Error:  "Missing draftOrderId or templateId",
			Errors: dto.FieldErrors(err),
		})
		return
	}

	terms, err := h.service.Set(c.Request.Context(), req.DraftOrderID, req.TemplateID)
	if err != nil {
		dto.RespondAPIError(c, err, "Failed to update payment terms")
		return
	}

	c.JSON(http.StatusOK, dto.SetPaymentTermsResponse{
		Success:      true,
		PaymentTerms: dto.NewPaymentTermsResponse(terms),
	})
}

// RegisterPaymentTermsRoutes registers payment terms routes.
func (h *PaymentTermsHandler) RegisterPaymentTermsRoutes(rg *gin.RouterGroup) {
	rg.GET("/payment-terms", h.GetPaymentTerms)
	rg.POST("/payment-terms", h.SetPaymentTerms)
}
