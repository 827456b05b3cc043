package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/velora/storefront/internal/application/catalog"
	"github.com/velora/storefront/internal/interfaces/http/dto"
	"github.com/velora/storefront/internal/interfaces/http/middleware"
)

// CatalogHandler serves the public browse endpoints
type CatalogHandler struct {
	BaseHandler
	catalog *appcatalog.Service
}

// NewCatalogHandler creates a catalog handler
func NewCatalogHandler(catalog *appcatalog.Service) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// RegisterRoutes registers catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	catalog := rg.Group("/catalog")
	{
		catalog.GET("/products", h.ListProducts)
		catalog.GET("/products/:id", h.GetProduct)
		catalog.GET("/categories", h.ListCategories)
		catalog.GET("/categories/tree", h.CategoryTree)
	}
}

// ListProducts returns a filtered page of products
// @Summary List products
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.Response
// @Router /catalog/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	req = req.WithDefaults()

	cards, err := h.catalog.ListProducts(c.Request.Context(), appcatalog.ListInput{
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
	h.SuccessWithMeta(c, cards, req.Page, req.PerPage, len(cards))
}

// GetProduct returns one product with its selection matrix
// @Summary Get product detail
// @Tags catalog
// @Produce json
// @Param id path string true "Product ID"
// @Param size query string false "Chosen size"
// @Param color query string false "Chosen color"
// @Success 200 {object} dto.Response
// @Router /catalog/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	detail, err := h.catalog.GetProduct(c.Request.Context(),
		middleware.GetSessionID(c), c.Param("id"), c.Query("size"), c.Query("color"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, detail)
}

// ListCategories returns the flat category list
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, categories)
}

// CategoryTree returns categories as a tree
func (h *CatalogHandler) CategoryTree(c *gin.Context) {
	tree, err := h.catalog.CategoryTree(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, tree)
}
