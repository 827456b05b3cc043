package catalog

import (
	"fmt"
	"strings"

	"github.com/velora/storefront/internal/domain/shared"
	"github.com/velora/storefront/internal/domain/shared/valueobject"
)

// ProductStatus represents the availability status of a product
type ProductStatus string

const (
	ProductStatusReady        ProductStatus = "READY"
	ProductStatusPreorder     ProductStatus = "PO"
	ProductStatusDiscontinued ProductStatus = "DISCONTINUED"
)

// Product is a denormalized read model of a catalog product.
// The commerce service owns the record; the storefront only renders it.
type Product struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Slug        string             `json:"slug"`
	Description string             `json:"description"`
	BasePrice   valueobject.Money  `json:"base_price"`
	Weight      int                `json:"weight"` // grams
	CategoryID  string             `json:"category_id"`
	Status      ProductStatus      `json:"status"`
	Active      bool               `json:"active"`
	Images      []string           `json:"images"`
}

// ParseImageList splits the upstream's pipe-delimited image URL field
// into a clean slice, dropping empty segments.
func ParseImageList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "|")
	images := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			images = append(images, trimmed)
		}
	}
	return images
}

// JoinImageList renders an image slice back into the upstream's
// pipe-delimited form for write calls.
func JoinImageList(images []string) string {
	return strings.Join(images, "|")
}

// PrimaryImage returns the first image URL, or empty when the product has none
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// IsPurchasable returns true if customers may add the product to a cart
func (p *Product) IsPurchasable() bool {
	return p.Active && p.Status != ProductStatusDiscontinued
}

// StatusBadge returns the display label and tone for the product status
func (p *Product) StatusBadge() shared.Badge {
	switch p.Status {
	case ProductStatusReady:
		return shared.Badge{Label: "Ready Stock", Tone: shared.ToneSuccess}
	case ProductStatusPreorder:
		return shared.Badge{Label: "Pre-Order", Tone: shared.ToneInfo}
	case ProductStatusDiscontinued:
		return shared.Badge{Label: "Discontinued", Tone: shared.ToneNeutral}
	default:
		return shared.Badge{Label: string(p.Status), Tone: shared.ToneNeutral}
	}
}

// Variant is a purchasable size/color instance of a product with its own
// SKU and stock count.
type Variant struct {
	ID            string             `json:"id"`
	ProductID     string             `json:"product_id"`
	SKU           string             `json:"sku"`
	Size          string             `json:"size"`
	Color         string             `json:"color"`
	Stock         int                `json:"stock"`
	PriceOverride *valueobject.Money `json:"price_override,omitempty"`
	Active        bool               `json:"active"`
}

// UnitPrice returns the effective price for this variant: the override
// when present, the product base price otherwise.
func (v *Variant) UnitPrice(basePrice valueobject.Money) valueobject.Money {
	if v.PriceOverride != nil {
		return *v.PriceOverride
	}
	return basePrice
}

// InStock returns true if at least one unit is available
func (v *Variant) InStock() bool {
	return v.Stock > 0
}

// StockLevel categorizes a stock count for display
type StockLevel string

const (
	StockLevelSafe    StockLevel = "safe"    // more than 10 units
	StockLevelLimited StockLevel = "limited" // 1 to 10 units
	StockLevelSoldOut StockLevel = "sold_out"
)

// ClassifyStock maps a stock count to its display level
func ClassifyStock(stock int) StockLevel {
	switch {
	case stock > 10:
		return StockLevelSafe
	case stock >= 1:
		return StockLevelLimited
	default:
		return StockLevelSoldOut
	}
}

// StockLevel returns the display level for this variant's stock count
func (v *Variant) StockLevel() StockLevel {
	return ClassifyStock(v.Stock)
}

// StockBadge returns the display label and tone for a stock level
func (v *Variant) StockBadge() shared.Badge {
	switch v.StockLevel() {
	case StockLevelSafe:
		return shared.Badge{Label: "In Stock", Tone: shared.ToneSuccess}
	case StockLevelLimited:
		return shared.Badge{Label: fmt.Sprintf("Only %d left", v.Stock), Tone: shared.ToneWarning}
	default:
		return shared.Badge{Label: "Sold Out", Tone: shared.ToneDanger}
	}
}

// BuildSKU derives a variant SKU from the product slug, size and color.
// A positive disambiguator is appended when the base SKU already exists
// for the product (duplicate size/color pairs are a data-quality concern
// upstream, not enforced here).
func BuildSKU(slug, size, color string, disambiguator int) string {
	normalize := func(s string) string {
		s = strings.ToUpper(strings.TrimSpace(s))
		return strings.ReplaceAll(s, " ", "-")
	}
	sku := fmt.Sprintf("%s-%s-%s", normalize(slug), normalize(size), normalize(color))
	if disambiguator > 0 {
		sku = fmt.Sprintf("%s-%d", sku, disambiguator)
	}
	return sku
}
