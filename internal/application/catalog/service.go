package catalog

import (
	"context"

	"go.uber.org/zap"

	domaincatalog "github.com/velora/storefront/internal/domain/catalog"
	"github.com/velora/storefront/internal/domain/shared"
	"github.com/velora/storefront/internal/infrastructure/commerce"
)

// CommerceReader is the read surface the catalog screens need from the
// commerce service.
type CommerceReader interface {
	ListProducts(ctx context.Context, q commerce.ListQuery) ([]domaincatalog.Product, error)
	GetProduct(ctx context.Context, id string) (domaincatalog.Product, []domaincatalog.Variant, error)
	ListCategories(ctx context.Context) ([]domaincatalog.Category, error)
}

// ImageMapReader reads the per-product color-to-image associations the
// variant wizard records, so the product page can swap photos per color.
type ImageMapReader interface {
	Load(ctx context.Context, sessionID, productID string) (map[string]string, error)
}

// Service serves the browse side of the catalog: product lists, the
// variant selection view and the category tree.
type Service struct {
	commerce  CommerceReader
	imageMaps ImageMapReader
	logger    *zap.Logger
}

// NewService creates a catalog service
func NewService(commerce CommerceReader, imageMaps ImageMapReader, logger *zap.Logger) *Service {
	return &Service{
		commerce:  commerce,
		imageMaps: imageMaps,
		logger:    logger.Named("catalog"),
	}
}

// ProductCard is one entry in a product listing
type ProductCard struct {
	domaincatalog.Product
	PriceDisplay string       `json:"price_display"`
	Badge        shared.Badge `json:"badge"`
}

// ListInput filters a product listing
type ListInput struct {
	Page       int
	PerPage    int
	Search     string
	CategoryID string
	Status     string
}

// ListProducts returns a page of product cards
func (s *Service) ListProducts(ctx context.Context, in ListInput) ([]ProductCard, error) {
	products, err := s.commerce.ListProducts(ctx, commerce.ListQuery{
		Page:       in.Page,
		PerPage:    in.PerPage,
		Search:     in.Search,
		CategoryID: in.CategoryID,
		Status:     in.Status,
	})
	if err != nil {
		return nil, err
	}

	cards := make([]ProductCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, ProductCard{
			Product:      p,
			PriceDisplay: p.BasePrice.Display(),
			Badge:        p.StatusBadge(),
		})
	}
	return cards, nil
}

// VariantView is the resolved variant with its display price and stock
// badge. Sold-out variants still resolve; SoldOut tells the screen to
// disable add-to-cart.
type VariantView struct {
	domaincatalog.Variant
	PriceDisplay string       `json:"price_display"`
	StockBadge   shared.Badge `json:"stock_badge"`
	SoldOut      bool         `json:"sold_out"`
}

// ProductDetail is the product page view: the product, the narrowed
// size/color options for the caller's partial choice, and the resolved
// variant once both axes are chosen.
type ProductDetail struct {
	Product      domaincatalog.Product      `json:"product"`
	PriceDisplay string                     `json:"price_display"`
	Badge        shared.Badge               `json:"badge"`
	Unavailable  bool                       `json:"unavailable"`
	Size         string                     `json:"size"`
	Color        string                     `json:"color"`
	SizeOptions  []domaincatalog.AxisOption `json:"size_options"`
	ColorOptions []domaincatalog.AxisOption `json:"color_options"`
	Selected     *VariantView               `json:"selected,omitempty"`
	Image        string                     `json:"image,omitempty"`
	ColorImages  map[string]string          `json:"color_images,omitempty"`
}

// GetProduct builds the product page view. size and color carry the
// caller's in-progress choice; either may be empty.
func (s *Service) GetProduct(ctx context.Context, sessionID, id, size, color string) (*ProductDetail, error) {
	product, variants, err := s.commerce.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	matrix := domaincatalog.NewSelectionMatrix(variants)
	detail := &ProductDetail{
		Product:      product,
		PriceDisplay: product.BasePrice.Display(),
		Badge:        product.StatusBadge(),
		Unavailable:  matrix.IsUnavailable(),
	}
	if len(product.Images) > 0 {
		detail.Image = product.Images[0]
	}
	if detail.Unavailable {
		return detail, nil
	}

	sel := domaincatalog.NewSelection(matrix)
	if size != "" {
		sel.SelectSize(size)
	}
	if color != "" {
		sel.SelectColor(color)
	}

	detail.Size = sel.Size
	detail.Color = sel.Color
	detail.SizeOptions = sel.SizeOptions()
	detail.ColorOptions = sel.ColorOptions()
	s.applyColorImages(ctx, sessionID, detail)

	if variant := sel.Resolved(); variant != nil {
		detail.Selected = &VariantView{
			Variant:      *variant,
			PriceDisplay: variant.UnitPrice(product.BasePrice).Display(),
			StockBadge:   variant.StockBadge(),
			SoldOut:      !variant.InStock(),
		}
	}
	return detail, nil
}

// applyColorImages overlays the wizard's color photos onto the view.
// The chosen color's photo replaces the default; a missing map is not
// an error, the product's own images stand.
func (s *Service) applyColorImages(ctx context.Context, sessionID string, detail *ProductDetail) {
	images, err := s.imageMaps.Load(ctx, sessionID, detail.Product.ID)
	if err != nil {
		s.logger.Warn("failed to load color image map",
			zap.String("product_id", detail.Product.ID),
			zap.Error(err))
		return
	}
	if len(images) == 0 {
		return
	}
	detail.ColorImages = images
	if url, ok := images[detail.Color]; ok {
		detail.Image = url
	}
}

// ListCategories returns the flat category list
func (s *Service) ListCategories(ctx context.Context) ([]domaincatalog.Category, error) {
	return s.commerce.ListCategories(ctx)
}

// CategoryTree returns categories assembled into their shallow tree
func (s *Service) CategoryTree(ctx context.Context) ([]domaincatalog.CategoryNode, error) {
	categories, err := s.commerce.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return domaincatalog.BuildCategoryTree(categories), nil
}
