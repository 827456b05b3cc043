package commerce

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/velora/storefront/internal/domain/catalog"
)

// ListQuery carries search, filter and pagination parameters for list
// endpoints.
type ListQuery struct {
	Page       int
	PerPage    int
	Search     string
	CategoryID string
	Status     string
}

func (q ListQuery) values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(q.PerPage))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.CategoryID != "" {
		v.Set("category_id", q.CategoryID)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	return v
}

// ProductInput is the create/update payload for a product
type ProductInput struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	BasePrice   float64 `json:"base_price"`
	Weight      int     `json:"weight"`
	CategoryID  string  `json:"category_id"`
	Status      string  `json:"status"`
	IsActive    bool    `json:"is_active"`
	Images      string  `json:"images"`
}

// VariantInput is the create payload for a product variant
type VariantInput struct {
	SKU           string   `json:"sku"`
	Size          string   `json:"size"`
	Color         string   `json:"color"`
	Stock         int      `json:"stock"`
	PriceOverride *float64 `json:"price_override,omitempty"`
	IsActive      bool     `json:"is_active"`
}

// CategoryInput is the create/update payload for a category
type CategoryInput struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	ParentID    *string `json:"parent_id,omitempty"`
	IsActive    bool    `json:"is_active"`
}

// ListProducts fetches a page of products
func (c *Client) ListProducts(ctx context.Context, q ListQuery) ([]catalog.Product, error) {
	var dtos []productDTO
	err := c.do(ctx, request{method: http.MethodGet, path: "/products", query: q.values()}, &dtos)
	if err != nil {
		return nil, err
	}

	products := make([]catalog.Product, 0, len(dtos))
	for _, d := range dtos {
		products = append(products, d.toDomain())
	}
	return products, nil
}

// GetProduct fetches one product with its variants
func (c *Client) GetProduct(ctx context.Context, id string) (catalog.Product, []catalog.Variant, error) {
	var dto productDTO
	err := c.do(ctx, request{method: http.MethodGet, path: "/products/" + url.PathEscape(id)}, &dto)
	if err != nil {
		return catalog.Product{}, nil, err
	}

	variants := make([]catalog.Variant, 0, len(dto.Variants))
	for _, v := range dto.Variants {
		variants = append(variants, v.toDomain())
	}
	return dto.toDomain(), variants, nil
}

// CreateProduct creates a product (admin)
func (c *Client) CreateProduct(ctx context.Context, token string, in ProductInput) (catalog.Product, error) {
	var dto productDTO
	err := c.do(ctx, request{method: http.MethodPost, path: "/products", token: token, body: in}, &dto)
	if err != nil {
		return catalog.Product{}, err
	}
	return dto.toDomain(), nil
}

// UpdateProduct updates a product (admin)
func (c *Client) UpdateProduct(ctx context.Context, token, id string, in ProductInput) (catalog.Product, error) {
	var dto productDTO
	err := c.do(ctx, request{method: http.MethodPut, path: "/products/" + url.PathEscape(id), token: token, body: in}, &dto)
	if err != nil {
		return catalog.Product{}, err
	}
	return dto.toDomain(), nil
}

// DeleteProduct deletes a product (admin)
func (c *Client) DeleteProduct(ctx context.Context, token, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/products/" + url.PathEscape(id), token: token}, nil)
}

// CreateVariant creates one variant under a product (admin)
func (c *Client) CreateVariant(ctx context.Context, token, productID string, in VariantInput) (catalog.Variant, error) {
	var dto variantDTO
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/products/" + url.PathEscape(productID) + "/variants",
		token:  token,
		body:   in,
	}, &dto)
	if err != nil {
		return catalog.Variant{}, err
	}
	return dto.toDomain(), nil
}

// ListCategories fetches all categories
func (c *Client) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	var dtos []categoryDTO
	err := c.do(ctx, request{method: http.MethodGet, path: "/categories"}, &dtos)
	if err != nil {
		return nil, err
	}

	categories := make([]catalog.Category, 0, len(dtos))
	for _, d := range dtos {
		categories = append(categories, d.toDomain())
	}
	return categories, nil
}

// CreateCategory creates a category (admin)
func (c *Client) CreateCategory(ctx context.Context, token string, in CategoryInput) (catalog.Category, error) {
	var dto categoryDTO
	err := c.do(ctx, request{method: http.MethodPost, path: "/categories", token: token, body: in}, &dto)
	if err != nil {
		return catalog.Category{}, err
	}
	return dto.toDomain(), nil
}

// UpdateCategory updates a category (admin)
func (c *Client) UpdateCategory(ctx context.Context, token, id string, in CategoryInput) (catalog.Category, error) {
	var dto categoryDTO
	err := c.do(ctx, request{method: http.MethodPut, path: "/categories/" + url.PathEscape(id), token: token, body: in}, &dto)
	if err != nil {
		return catalog.Category{}, err
	}
	return dto.toDomain(), nil
}

// DeleteCategory deletes a category (admin)
func (c *Client) DeleteCategory(ctx context.Context, token, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/categories/" + url.PathEscape(id), token: token}, nil)
}
