package handler

import (
	"github.com/gin-gonic/gin"

	appcheckout "github.com/velora/storefront/internal/application/checkout"
	domaincheckout "github.com/velora/storefront/internal/domain/checkout"
	"github.com/velora/storefront/internal/interfaces/http/middleware"
)

// CheckoutHandler walks the session through the checkout flow
type CheckoutHandler struct {
	BaseHandler
	checkout *appcheckout.Service
}

// NewCheckoutHandler creates a checkout handler
func NewCheckoutHandler(checkout *appcheckout.Service) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// RegisterRoutes registers checkout routes
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	checkout := rg.Group("/checkout")
	{
		checkout.GET("", h.Current)
		checkout.POST("/review", h.Begin)
		checkout.POST("/advance", h.Advance)
		checkout.POST("/back", h.Back)
		checkout.PUT("/shipping", h.SetShipping)
		checkout.POST("/confirm", h.Confirm)
	}
}

type shippingRequest struct {
	RecipientName string `json:"recipient_name"`
	Phone         string `json:"phone"`
	AddressLine1  string `json:"address_line1"`
	AddressLine2  string `json:"address_line2"`
	City          string `json:"city"`
	Province      string `json:"province"`
	PostalCode    string `json:"postal_code"`
}

type backRequest struct {
	Step int `json:"step" binding:"required,min=1,max=3"`
}

type confirmRequest struct {
	OrderType string `json:"order_type" binding:"required"`
	Notes     string `json:"notes"`
}

// Current returns the in-flight checkout
// @Summary Get checkout state
// @Tags checkout
// @Produce json
// @Success 200 {object} dto.Response
// @Router /checkout [get]
func (h *CheckoutHandler) Current(c *gin.Context) {
	view, err := h.checkout.Current(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, view)
}

// Begin starts a checkout over the selected cart items
// @Summary Start checkout
// @Tags checkout
// @Produce json
// @Success 201 {object} dto.Response
// @Router /checkout/review [post]
func (h *CheckoutHandler) Begin(c *gin.Context) {
	view, err := h.checkout.Begin(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, view)
}

// Advance moves one step forward after validation
func (h *CheckoutHandler) Advance(c *gin.Context) {
	view, err := h.checkout.Advance(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, view)
}

// Back jumps to an earlier step
func (h *CheckoutHandler) Back(c *gin.Context) {
	var req backRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	view, err := h.checkout.Back(c.Request.Context(),
		middleware.GetSessionID(c), domaincheckout.Step(req.Step))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, view)
}

// SetShipping records the shipping form. Field completeness is checked
// when advancing, so partial saves are fine here.
func (h *CheckoutHandler) SetShipping(c *gin.Context) {
	var req shippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	view, err := h.checkout.SetShipping(c.Request.Context(), middleware.GetSessionID(c),
		domaincheckout.ShippingInfo{
			RecipientName: req.RecipientName,
			Phone:         req.Phone,
			AddressLine1:  req.AddressLine1,
			AddressLine2:  req.AddressLine2,
			City:          req.City,
			Province:      req.Province,
			PostalCode:    req.PostalCode,
		})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, view)
}

// Confirm submits the order upstream
// @Summary Confirm checkout
// @Tags checkout
// @Accept json
// @Produce json
// @Success 201 {object} dto.Response
// @Router /checkout/confirm [post]
func (h *CheckoutHandler) Confirm(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	placed, err := h.checkout.Confirm(c.Request.Context(),
		middleware.GetSessionID(c), middleware.GetAccessToken(c),
		appcheckout.ConfirmInput{OrderType: req.OrderType, Notes: req.Notes})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, placed)
}
