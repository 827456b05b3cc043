package admin

import (
	"context"

	"go.uber.org/zap"

	"github.com/velora/storefront/internal/domain/catalog"
	"github.com/velora/storefront/internal/domain/shared"
	"github.com/velora/storefront/internal/infrastructure/commerce"
)

// BulkColor is one color choice in the variant wizard, optionally with
// the photo shown when a customer picks it.
type BulkColor struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

// BulkStock overrides the stock for one size/color combination
type BulkStock struct {
	Size          string   `json:"size"`
	Color         string   `json:"color"`
	Stock         int      `json:"stock"`
	PriceOverride *float64 `json:"price_override,omitempty"`
}

// BulkVariantsInput is the wizard's final submission: the color and
// size axes, a default stock and per-combination overrides.
type BulkVariantsInput struct {
	Colors       []BulkColor `json:"colors"`
	Sizes        []string    `json:"sizes"`
	DefaultStock int         `json:"default_stock"`
	Stock        []BulkStock `json:"stock,omitempty"`
}

// BulkFailure records one combination that could not be created
type BulkFailure struct {
	SKU     string `json:"sku"`
	Size    string `json:"size"`
	Color   string `json:"color"`
	Message string `json:"message"`
}

// BulkResult aggregates the outcome of a bulk creation run. Partial
// failure is expected and nothing is rolled back; the console shows the
// counts and the admin retries the failed combinations.
type BulkResult struct {
	Created  int               `json:"created"`
	Failed   int               `json:"failed"`
	Variants []catalog.Variant `json:"variants"`
	Failures []BulkFailure     `json:"failures,omitempty"`
}

// BulkCreateVariants expands colors x sizes into the full combination
// grid and creates each variant upstream in a sequential loop. SKUs
// derive from the product slug; a collision with an existing or
// just-generated SKU gets a numeric disambiguator.
func (s *Service) BulkCreateVariants(ctx context.Context, sessionID, token, productID string, in BulkVariantsInput) (*BulkResult, error) {
	if len(in.Colors) == 0 || len(in.Sizes) == 0 {
		return nil, shared.NewDomainError("EMPTY_AXES", "At least one color and one size are required")
	}
	if in.DefaultStock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Default stock cannot be negative")
	}

	product, variants, err := s.commerce.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]struct{}, len(variants))
	for _, v := range variants {
		taken[v.SKU] = struct{}{}
	}

	overrides := make(map[string]BulkStock, len(in.Stock))
	for _, o := range in.Stock {
		overrides[o.Size+"\x00"+o.Color] = o
	}

	result := &BulkResult{}
	for _, size := range in.Sizes {
		for _, color := range in.Colors {
			stock := in.DefaultStock
			var priceOverride *float64
			if o, ok := overrides[size+"\x00"+color.Name]; ok {
				stock = o.Stock
				priceOverride = o.PriceOverride
			}

			sku := nextSKU(product.Slug, size, color.Name, taken)
			taken[sku] = struct{}{}

			created, err := s.commerce.CreateVariant(ctx, token, productID, commerce.VariantInput{
				SKU:           sku,
				Size:          size,
				Color:         color.Name,
				Stock:         stock,
				PriceOverride: priceOverride,
				IsActive:      true,
			})
			if err != nil {
				result.Failed++
				result.Failures = append(result.Failures, BulkFailure{
					SKU:     sku,
					Size:    size,
					Color:   color.Name,
					Message: err.Error(),
				})
				s.logger.Warn("bulk variant creation failed",
					zap.String("product_id", productID),
					zap.String("sku", sku),
					zap.Error(err))
				continue
			}
			result.Created++
			result.Variants = append(result.Variants, created)
		}
	}

	s.saveImageMap(ctx, sessionID, productID, in.Colors)
	return result, nil
}

func nextSKU(slug, size, color string, taken map[string]struct{}) string {
	sku := catalog.BuildSKU(slug, size, color, 0)
	for n := 1; ; n++ {
		if _, exists := taken[sku]; !exists {
			return sku
		}
		sku = catalog.BuildSKU(slug, size, color, n)
	}
}

// saveImageMap persists the wizard's color photos. The variants already
// exist upstream, so a failure here only costs the photo swap.
func (s *Service) saveImageMap(ctx context.Context, sessionID, productID string, colors []BulkColor) {
	m := make(map[string]string)
	for _, c := range colors {
		if c.ImageURL != "" {
			m[c.Name] = c.ImageURL
		}
	}
	if len(m) == 0 {
		return
	}
	if err := s.imageMaps.Save(ctx, sessionID, productID, m); err != nil {
		s.logger.Warn("failed to save color image map",
			zap.String("product_id", productID),
			zap.Error(err))
	}
}
