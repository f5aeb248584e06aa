package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/acme/quote-manager/internal/adapters/http/dto"
	"github.com/acme/quote-manager/internal/app"
)

// DashboardPath is where a merchant lands after installing the app.
const DashboardPath = "/dashboard"

// AuthHandler runs the install handshake.
type AuthHandler struct {
	service *app.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service *app.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Begin handles GET /auth?shop=.
func (h *AuthHandler) Begin(c *gin.Context) {
	shop := c.Query("shop")
	if shop == "" {
		c.JSON(http.StatusBadRequest, dto.APIError{Error: "Missing shop param"})
		return
	}

	authURL, err := h.service.Begin(c.Request.Context(), shop)
	if err != nil {
		dto.RespondAPIError(c, err, "Authentication failed")
		return
	}

	c.Redirect(http.StatusFound, authURL)
}

// Callback handles GET /auth/callback.
func (h *AuthHandler) Callback(c *gin.Context) {
	query := c.Request.URL.Query()

	session, err := h.service.Complete(c.Request.Context(), query)
	if err != nil {
		dto.RespondAPIError(c, err, "Callback failed")
		return
	}

	target := url.Values{}
	target.Set("shop", session.Shop)
	target.Set("host", query.Get("host"))

	c.Redirect(http.StatusFound, DashboardPath+"?"+target.Encode())
}

// RegisterAuthRoutes registers the handshake routes on the engine root.
func (h *AuthHandler) RegisterAuthRoutes(engine *gin.Engine) {
	engine.GET("/auth", h.Begin)
	engine.GET("/auth/callback", h.Callback)
}
