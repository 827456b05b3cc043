package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/velora/storefront/internal/application/order"
	apppayment "github.com/velora/storefront/internal/application/payment"
	"github.com/velora/storefront/internal/infrastructure/commerce"
	"github.com/velora/storefront/internal/interfaces/http/dto"
	"github.com/velora/storefront/internal/interfaces/http/middleware"
)

// OrderHandler serves order history, tracking and payment endpoints
type OrderHandler struct {
	BaseHandler
	orders   *apporder.Service
	payments *apppayment.Service
}

// NewOrderHandler creates an order handler
func NewOrderHandler(orders *apporder.Service, payments *apppayment.Service) *OrderHandler {
	return &OrderHandler{orders: orders, payments: payments}
}

// RegisterRoutes registers order routes; all require a signed-in session
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders", middleware.RequireAuth())
	{
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
		orders.GET("/:id/shipment/track", h.Track)
		orders.GET("/:id/payment", h.PaymentStatus)
		orders.POST("/:id/payments", h.CreatePayment)
	}
}

type createPaymentRequest struct {
	Method string `json:"method" binding:"required"`
}

// List returns the caller's order history
// @Summary List my orders
// @Tags orders
// @Produce json
// @Success 200 {object} dto.Response
// @Router /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	req = req.WithDefaults()

	summaries, err := h.orders.List(c.Request.Context(), middleware.GetAccessToken(c),
		commerce.ListQuery{Page: req.Page, PerPage: req.PerPage, Status: req.Status})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, summaries, req.Page, req.PerPage, len(summaries))
}

// Get returns one order
func (h *OrderHandler) Get(c *gin.Context) {
	summary, err := h.orders.Get(c.Request.Context(), middleware.GetAccessToken(c), c.Param("id"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, summary)
}

// Track returns the order's shipment with courier history
func (h *OrderHandler) Track(c *gin.Context) {
	view, err := h.orders.Track(c.Request.Context(), middleware.GetAccessToken(c), c.Param("id"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, view)
}

// PaymentStatus returns the order's payment with its live countdown
// @Summary Get payment status
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.Response
// @Router /orders/{id}/payment [get]
func (h *OrderHandler) PaymentStatus(c *gin.Context) {
	view, err := h.payments.Status(c.Request.Context(),
		middleware.GetSessionID(c), middleware.GetAccessToken(c), c.Param("id"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, view)
}

// CreatePayment starts a new payment attempt for the order
// @Summary Create payment
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Success 201 {object} dto.Response
// @Router /orders/{id}/payments [post]
func (h *OrderHandler) CreatePayment(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	view, err := h.payments.Create(c.Request.Context(),
		middleware.GetSessionID(c), middleware.GetAccessToken(c), c.Param("id"), req.Method)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, view)
}
