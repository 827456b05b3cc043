package handler

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	appadmin "github.com/velora/storefront/internal/application/admin"
	"github.com/velora/storefront/internal/domain/shipment"
	"github.com/velora/storefront/internal/infrastructure/commerce"
	"github.com/velora/storefront/internal/interfaces/http/dto"
	"github.com/velora/storefront/internal/interfaces/http/middleware"
)

// AdminHandler serves the console's management endpoints. When the
// signed-in admin has no upstream token of their own, the configured
// service token is used instead.
type AdminHandler struct {
	BaseHandler
	admin          *appadmin.Service
	serviceToken   string
	maxUploadBytes int64
}

// NewAdminHandler creates an admin handler
func NewAdminHandler(admin *appadmin.Service, serviceToken string, maxUploadBytes int64) *AdminHandler {
	return &AdminHandler{
		admin:          admin,
		serviceToken:   serviceToken,
		maxUploadBytes: maxUploadBytes,
	}
}

// RegisterRoutes registers admin routes; all require an admin session
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin", middleware.RequireAdmin())
	{
		admin.GET("/products", h.ListProducts)
		admin.GET("/products/:id", h.GetProduct)
		admin.POST("/products", h.CreateProduct)
		admin.PUT("/products/:id", h.UpdateProduct)
		admin.DELETE("/products/:id", h.DeleteProduct)
		admin.POST("/products/:id/variants/bulk", h.BulkCreateVariants)

		admin.GET("/categories", h.ListCategories)
		admin.POST("/categories", h.CreateCategory)
		admin.PUT("/categories/:id", h.UpdateCategory)
		admin.DELETE("/categories/:id", h.DeleteCategory)

		admin.GET("/orders", h.ListOrders)

		admin.POST("/shipments", h.CreateShipment)
		admin.PUT("/shipments/:id/status", h.UpdateShipmentStatus)
		admin.GET("/shipments/:id/tracking", h.GetTracking)

		admin.GET("/transactions", h.ListTransactions)
		admin.POST("/transactions/:id/refund", h.RefundPayment)

		admin.POST("/upload/image", h.UploadImage)
	}
}

// token prefers the admin's own upstream credentials
func (h *AdminHandler) token(c *gin.Context) string {
	if t := middleware.GetAccessToken(c); t != "" {
		return t
	}
	return h.serviceToken
}

type productRequest struct {
	Name        string  `json:"name" binding:"required"`
	Slug        string  `json:"slug" binding:"required"`
	Description string  `json:"description"`
	BasePrice   float64 `json:"base_price" binding:"required,gt=0"`
	Weight      int     `json:"weight"`
	CategoryID  string  `json:"category_id"`
	Status      string  `json:"status"`
	IsActive    bool    `json:"is_active"`
	Images      string  `json:"images"`
}

func (r productRequest) toInput() commerce.ProductInput {
	return commerce.ProductInput{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		BasePrice:   r.BasePrice,
		Weight:      r.Weight,
		CategoryID:  r.CategoryID,
		Status:      r.Status,
		IsActive:    r.IsActive,
		Images:      r.Images,
	}
}

type categoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Slug        string  `json:"slug" binding:"required"`
	Description string  `json:"description"`
	ParentID    *string `json:"parent_id"`
	IsActive    bool    `json:"is_active"`
}

type createShipmentRequest struct {
	OrderID string  `json:"order_id" binding:"required"`
	Courier string  `json:"courier" binding:"required"`
	Service string  `json:"service" binding:"required"`
	Cost    float64 `json:"cost" binding:"min=0"`
}

type shipmentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING READY_TO_SHIP SHIPPED IN_TRANSIT DELIVERED CANCELLED"`
}

// ListProducts returns all products including inactive ones
// @Summary List products for the console
// @Tags admin
// @Produce json
// @Success 200 {object} dto.Response
// @Router /admin/products [get]
func (h *AdminHandler) ListProducts(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	req = req.WithDefaults()

	products, err := h.admin.ListProducts(c.Request.Context(), commerce.ListQuery{
		Page:       req.Page,
		PerPage:    req.PerPage,
		Search:     req.Search,
		CategoryID: req.CategoryID,
		Status:     req.Status,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, products, req.Page, req.PerPage, len(products))
}

// GetProduct returns one product with its variants
func (h *AdminHandler) GetProduct(c *gin.Context) {
	product, variants, err := h.admin.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, gin.H{"product": product, "variants": variants})
}

// CreateProduct creates a product
// @Summary Create product
// @Tags admin
// @Accept json
// @Produce json
// @Success 201 {object} dto.Response
// @Router /admin/products [post]
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.admin.CreateProduct(c.Request.Context(), h.token(c), req.toInput())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, product)
}

// UpdateProduct updates a product
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.admin.UpdateProduct(c.Request.Context(), h.token(c), c.Param("id"), req.toInput())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, product)
}

// DeleteProduct deletes a product
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	if err := h.admin.DeleteProduct(c.Request.Context(), h.token(c), c.Param("id")); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// BulkCreateVariants expands the wizard's color and size axes into the
// full variant grid
// @Summary Bulk create variants
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Success 201 {object} dto.Response
// @Router /admin/products/{id}/variants/bulk [post]
func (h *AdminHandler) BulkCreateVariants(c *gin.Context) {
	var req appadmin.BulkVariantsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.admin.BulkCreateVariants(c.Request.Context(),
		middleware.GetSessionID(c), h.token(c), c.Param("id"), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, result)
}

// ListCategories returns all categories
func (h *AdminHandler) ListCategories(c *gin.Context) {
	categories, err := h.admin.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, categories)
}

// CreateCategory creates a category
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	category, err := h.admin.CreateCategory(c.Request.Context(), h.token(c), commerce.CategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ParentID:    req.ParentID,
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, category)
}

// UpdateCategory updates a category
func (h *AdminHandler) UpdateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	category, err := h.admin.UpdateCategory(c.Request.Context(), h.token(c), c.Param("id"), commerce.CategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ParentID:    req.ParentID,
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, category)
}

// DeleteCategory deletes a category
func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	if err := h.admin.DeleteCategory(c.Request.Context(), h.token(c), c.Param("id")); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// ListOrders returns orders across all customers
// @Summary List all orders
// @Tags admin
// @Produce json
// @Success 200 {object} dto.Response
// @Router /admin/orders [get]
func (h *AdminHandler) ListOrders(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	req = req.WithDefaults()

	orders, err := h.admin.ListOrders(c.Request.Context(), h.token(c), commerce.ListQuery{
		Page:    req.Page,
		PerPage: req.PerPage,
		Search:  req.Search,
		Status:  req.Status,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, req.Page, req.PerPage, len(orders))
}

// CreateShipment books a courier shipment for an order
func (h *AdminHandler) CreateShipment(c *gin.Context) {
	var req createShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	sh, err := h.admin.CreateShipment(c.Request.Context(), h.token(c), commerce.CreateShipmentInput{
		OrderID: req.OrderID,
		Courier: req.Courier,
		Service: req.Service,
		Cost:    req.Cost,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, sh)
}

// UpdateShipmentStatus moves a shipment through its lifecycle
func (h *AdminHandler) UpdateShipmentStatus(c *gin.Context) {
	var req shipmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	sh, err := h.admin.UpdateShipmentStatus(c.Request.Context(), h.token(c),
		c.Param("id"), shipment.Status(req.Status))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, sh)
}

// GetTracking returns a shipment's courier checkpoint history
func (h *AdminHandler) GetTracking(c *gin.Context) {
	events, err := h.admin.GetTracking(c.Request.Context(), h.token(c), c.Param("id"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, events)
}

// ListTransactions returns gateway transactions with filters
func (h *AdminHandler) ListTransactions(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	req = req.WithDefaults()

	payments, err := h.admin.ListTransactions(c.Request.Context(), h.token(c), commerce.ListQuery{
		Page:    req.Page,
		PerPage: req.PerPage,
		Status:  req.Status,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, payments, req.Page, req.PerPage, len(payments))
}

// RefundPayment refunds a settled transaction
func (h *AdminHandler) RefundPayment(c *gin.Context) {
	payment, err := h.admin.RefundPayment(c.Request.Context(), h.token(c), c.Param("id"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, payment)
}

// UploadImage accepts a multipart image and returns the stored URL
// @Summary Upload product image
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} dto.Response
// @Router /admin/upload/image [post]
func (h *AdminHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		h.BadRequest(c, "An image file is required")
		return
	}
	if h.maxUploadBytes > 0 && file.Size > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponse(
			dto.ErrCodeTooLarge, "Image exceeds the upload size limit", getRequestID(c)))
		return
	}

	src, err := file.Open()
	if err != nil {
		h.BadRequest(c, "Unable to read the uploaded file")
		return
	}
	defer src.Close()

	url, err := h.admin.UploadImage(c.Request.Context(), h.token(c), filepath.Base(file.Filename), src)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, gin.H{"url": url})
}
