package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/velora/storefront/internal/application/cart"
	"github.com/velora/storefront/internal/interfaces/http/middleware"
)

// CartHandler serves the session cart endpoints
type CartHandler struct {
	BaseHandler
	cart *appcart.Service
}

// NewCartHandler creates a cart handler
func NewCartHandler(cart *appcart.Service) *CartHandler {
	return &CartHandler{cart: cart}
}

// RegisterRoutes registers cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.Get)
		cart.GET("/count", h.Count)
		cart.POST("/items", h.AddItem)
		cart.PUT("/items/:id", h.ChangeQuantity)
		cart.DELETE("/items/:id", h.RemoveItem)
		cart.PUT("/selection", h.ToggleSelection)
		cart.PUT("/selection/all", h.ToggleSelectAll)
	}
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Color     string `json:"color" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type changeQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type toggleSelectionRequest struct {
	ItemID string `json:"item_id" binding:"required"`
}

// Get returns the cart with its checkout selection
// @Summary Get cart
// @Tags cart
// @Produce json
// @Success 200 {object} dto.Response
// @Router /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	summary, err := h.cart.Summary(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, summary)
}

// Count returns the badge counters without the full cart
func (h *CartHandler) Count(c *gin.Context) {
	summary, err := h.cart.Summary(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, gin.H{
		"line_count":  summary.Cart.LineCount(),
		"total_units": summary.Cart.TotalUnits(),
	})
}

// AddItem resolves a size/color pair and adds the line
// @Summary Add item to cart
// @Tags cart
// @Accept json
// @Produce json
// @Success 201 {object} dto.Response
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	cart, err := h.cart.AddItem(c.Request.Context(), middleware.GetSessionID(c), appcart.AddItemInput{
		ProductID: req.ProductID,
		Size:      req.Size,
		Color:     req.Color,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, cart)
}

// ChangeQuantity sets an item's quantity
func (h *CartHandler) ChangeQuantity(c *gin.Context) {
	var req changeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	cart, err := h.cart.ChangeQuantity(c.Request.Context(),
		middleware.GetSessionID(c), c.Param("id"), req.Quantity)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, cart)
}

// RemoveItem deletes an item and its selection entry
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cart, err := h.cart.RemoveItem(c.Request.Context(),
		middleware.GetSessionID(c), c.Param("id"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, cart)
}

// ToggleSelection flips one item in or out of the checkout subset
func (h *CartHandler) ToggleSelection(c *gin.Context) {
	var req toggleSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	summary, err := h.cart.ToggleSelection(c.Request.Context(),
		middleware.GetSessionID(c), req.ItemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, summary)
}

// ToggleSelectAll selects everything or clears the selection
func (h *CartHandler) ToggleSelectAll(c *gin.Context) {
	summary, err := h.cart.ToggleSelectAll(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, summary)
}
