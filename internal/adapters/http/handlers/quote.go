package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acme/quote-manager/internal/adapters/http/dto"
	"github.com/acme/quote-manager/internal/app"
	"github.com/acme/quote-manager/internal/domain"
)

// QuoteHandler handles the quote endpoints used by the admin editor.
type QuoteHandler struct {
	service *app.QuoteService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		service: service,
	}
}

// quoteID returns the :id parameter as a draft order gid. The router has
// already unescaped it once; ids may be bare numbers.
func quoteID(c *gin.Context) string {
	return domain.NormalizeQuoteID(c.Param("id"))
}

// ListQuotes handles GET /api/v1/quotes.
// Stored statuses are reconciled before the listing is returned.
//
// @Summary List quotes
// @Tags quotes
// @Produce json
// @Param requestedOnly query bool false "Only quotes requested from the storefront"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.QuoteListResponse
// @Failure 500 {object} dto.APIError
// @Router /api/v1/quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	var q dto.QuoteListQuery
	if err := dto.BindQueryAndValidate(c, &q); err != nil {
		c.JSON(http.StatusBadRequest, dto.APIError{Error: dto.RequestErrorMessage(err)})
		return
	}

	list, err := h.service.ListQuotes(c.Request.Context(), app.ListFilter{
		RequestedOnly: q.RequestedOnly,
		Limit:         q.Limit,
	})
	if err != nil {
		dto.RespondAPIError(c, err, "Failed to fetch quotes")
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteListResponse(list.Quotes, list.Summaries))
}

// GetQuote handles GET /api/v1/quotes/:id.
//
// @Summary Get a quote
// @Tags quotes
// @Produce json
// @Param id path string true "Draft order gid, URL-encoded, or numeric id"
// @Success 200 {object} dto.QuoteEnvelope
// @Failure 404 {object} dto.APIError
// @Router /api/v1/quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quote, err := h.service.GetQuote(c.Request.Context(), quoteID(c))
	if err != nil {
		dto.RespondAPIError(c, err, "Failed to fetch quote details")
		return
	}

	c.JSON(http.StatusOK, dto.QuoteEnvelope{Quote: dto.NewQuoteResponse(quote)})
}

// SaveQuote handles PUT /api/v1/quotes/:id.
//
// @Summary Save quote edits
// @Tags quotes
// @Accept json
// @Produce json
// @Param id path string true "Draft order gid"
// @Param body body dto.SaveQuoteRequest true "Edits"
// @Success 200 {object} dto.SaveQuoteResponse
// @Failure 400 {object} dto.APIError
// @Router /api/v1/quotes/{id} [put]
func (h *QuoteHandler) SaveQuote(c *gin.Context) {
	var req dto.SaveQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.APIError{Error: "Invalid or empty lineItems array"})
		return
	}

	if err := dto.ValidateAll(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.APIError{Error: dto.RequestErrorMessage(err)})
		return
	}

	updated, err := h.service.SaveQuote(c.Request.Context(), quoteID(c), req.ToDomain())
	if err != nil {
		dto.RespondAPIError(c, err, "Internal Server Error")
		return
	}

	c.JSON(http.StatusOK, dto.SaveQuoteResponse{Success: true, Updated: dto.NewQuoteResponse(updated)})
}

// SendOffer handles POST /api/v1/quotes/:id.
//
// @Summary Email an offer for a quote
// @Tags quotes
// @Accept json
// @Produce json
// @Param id path string true "Draft order gid"
// @Param body body dto.SendOfferRequest true "Offer email"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.APIError
// @Failure 500 {object} dto.APIError
// @Router /api/v1/quotes/{id} [post]
func (h *QuoteHandler) SendOffer(c *gin.Context) {
	var req dto.SendOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.APIError{Error: dto.RequestErrorMessage(err)})
		return
	}

	if err := h.service.SendOffer(c.Request.Context(), quoteID(c), req.ToDomain()); err != nil {
		dto.RespondAPIError(c, err, "Failed to send offer")
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// CompleteQuote handles POST /api/v1/quotes/:id/complete.
//
// @Summary Complete a quote into an order
// @Tags quotes
// @Produce json
// @Param id path string true "Draft order gid"
// @Success 200 {object} dto.CompleteQuoteResponse
// @Failure 400 {object} dto.APIError
// @Router /api/v1/quotes/{id}/complete [post]
func (h *QuoteHandler) CompleteQuote(c *gin.Context) {
	order, err := h.service.CompleteQuote(c.Request.Context(), quoteID(c))
	if err != nil {
		dto.RespondAPIError(c, err, "Failed to complete quote")
		return
	}

	c.JSON(http.StatusOK, dto.CompleteQuoteResponse{
		Success:    true,
		InvoiceURL: order.InvoiceURL,
		OrderID:    order.OrderID,
	})
}

// CalculatePricing handles POST /api/v1/quotes/pricing.
// Nothing is persisted; the editor uses it to preview totals.
//
// @Summary Preview quote totals
// @Tags quotes
// @Accept json
// @Produce json
// @Param body body dto.PricingRequest true "Unsaved edit"
// @Success 200 {object} dto.TotalsResponse
// @Failure 400 {object} dto.APIError
// @Router /api/v1/quotes/pricing [post]
func (h *QuoteHandler) CalculatePricing(c *gin.Context) {
	var req dto.PricingRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, dto.APIError{Error: dto.RequestErrorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, dto.NewTotalsResponse(req.Calculate()))
}

// RegisterQuoteRoutes registers quote routes on the given router group.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	quotes.GET("", h.ListQuotes)
	quotes.POST("/pricing", h.CalculatePricing)
	quotes.GET("/:id", h.GetQuote)
	quotes.PUT("/:id", h.SaveQuote)
	quotes.POST("/:id", h.SendOffer)
	quotes.POST("/:id/complete", h.CompleteQuote)
}
