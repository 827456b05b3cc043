package cart

import (
	"context"
	"errors"

	"go.uber.org/zap"

	domaincart "github.com/velora/storefront/internal/domain/cart"
	"github.com/velora/storefront/internal/domain/catalog"
	"github.com/velora/storefront/internal/domain/shared"
	"github.com/velora/storefront/internal/domain/shared/valueobject"
)

// ProductCatalog is the upstream read the cart needs: one product with
// its variants.
type ProductCatalog interface {
	GetProduct(ctx context.Context, id string) (catalog.Product, []catalog.Variant, error)
}

// Service orchestrates cart mutations: resolve the variant, clamp the
// quantity, persist, broadcast.
type Service struct {
	repo      domaincart.Repository
	products  ProductCatalog
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewService creates a cart service
func NewService(repo domaincart.Repository, products ProductCatalog, publisher shared.EventPublisher, logger *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		products:  products,
		publisher: publisher,
		logger:    logger.Named("cart"),
	}
}

// AddItemInput is the add-to-cart request
type AddItemInput struct {
	ProductID string
	Size      string
	Color     string
	Quantity  int
}

// Summary is the cart screen's full view: items, checkout subset and
// the subset's subtotal.
type Summary struct {
	Cart             *domaincart.Cart      `json:"cart"`
	Selection        *domaincart.Selection `json:"selection"`
	SelectedSubtotal valueobject.Money     `json:"selected_subtotal"`
	AllSelected      bool                  `json:"all_selected"`
}

// Summary loads the session's cart view
func (s *Service) Summary(ctx context.Context, sessionID string) (*Summary, error) {
	c, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sel, err := s.repo.LoadSelection(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &Summary{
		Cart:             c,
		Selection:        sel,
		SelectedSubtotal: sel.Subtotal(c),
		AllSelected:      sel.AllSelected(c),
	}, nil
}

// AddItem resolves the size/color pair against the product's variants
// and adds the priced, stock-bounded line to the cart.
func (s *Service) AddItem(ctx context.Context, sessionID string, in AddItemInput) (*domaincart.Cart, error) {
	product, variants, err := s.products.GetProduct(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsPurchasable() {
		return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE", "This product is not available for purchase")
	}

	matrix := catalog.NewSelectionMatrix(variants)
	variant := matrix.Resolve(in.Size, in.Color)
	if variant == nil {
		return nil, shared.ErrVariantUnresolved
	}

	c, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	item := domaincart.Item{
		ProductID: product.ID,
		VariantID: variant.ID,
		Name:      product.Name,
		UnitPrice: variant.UnitPrice(product.BasePrice),
		Quantity:  in.Quantity,
		Size:      variant.Size,
		Color:     variant.Color,
		Stock:     variant.Stock,
		Image:     product.PrimaryImage(),
	}
	if err := c.Add(item); err != nil {
		s.notifyStockLimit(ctx, sessionID, variant.ID, variant.Stock, err)
		return nil, err
	}

	if err := s.repo.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	s.broadcast(ctx, sessionID, c)
	return c, nil
}

// ChangeQuantity sets an item's quantity within [1, stock]
func (s *Service) ChangeQuantity(ctx context.Context, sessionID, itemID string, quantity int) (*domaincart.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *domaincart.Cart) error {
		err := c.ChangeQuantity(itemID, quantity)
		if err != nil {
			if item := c.Find(itemID); item != nil {
				s.notifyStockLimit(ctx, sessionID, item.VariantID, item.Stock, err)
			}
		}
		return err
	})
}

// Increment raises an item's quantity by one
func (s *Service) Increment(ctx context.Context, sessionID, itemID string) (*domaincart.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *domaincart.Cart) error {
		err := c.Increment(itemID)
		if err != nil {
			if item := c.Find(itemID); item != nil {
				s.notifyStockLimit(ctx, sessionID, item.VariantID, item.Stock, err)
			}
		}
		return err
	})
}

// Decrement lowers an item's quantity by one, never below one
func (s *Service) Decrement(ctx context.Context, sessionID, itemID string) (*domaincart.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *domaincart.Cart) error {
		return c.Decrement(itemID)
	})
}

// RemoveItem deletes an item and prunes the checkout subset so no
// orphaned selection survives.
func (s *Service) RemoveItem(ctx context.Context, sessionID, itemID string) (*domaincart.Cart, error) {
	c, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := c.Remove(itemID); err != nil {
		return nil, err
	}

	sel, err := s.repo.LoadSelection(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sel.Prune(c)

	if err := s.repo.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	if err := s.repo.SaveSelection(ctx, sessionID, sel); err != nil {
		return nil, err
	}
	s.broadcast(ctx, sessionID, c)
	return c, nil
}

// ToggleSelection flips one item in or out of the checkout subset
func (s *Service) ToggleSelection(ctx context.Context, sessionID, itemID string) (*Summary, error) {
	c, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c.Find(itemID) == nil {
		return nil, shared.ErrNotFound
	}

	sel, err := s.repo.LoadSelection(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sel.Toggle(itemID)

	if err := s.repo.SaveSelection(ctx, sessionID, sel); err != nil {
		return nil, err
	}
	return &Summary{
		Cart:             c,
		Selection:        sel,
		SelectedSubtotal: sel.Subtotal(c),
		AllSelected:      sel.AllSelected(c),
	}, nil
}

// ToggleSelectAll selects every item, or clears the subset when all are
// already selected. On an empty cart it is a no-op.
func (s *Service) ToggleSelectAll(ctx context.Context, sessionID string) (*Summary, error) {
	c, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sel, err := s.repo.LoadSelection(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sel.ToggleAll(c)

	if err := s.repo.SaveSelection(ctx, sessionID, sel); err != nil {
		return nil, err
	}
	return &Summary{
		Cart:             c,
		Selection:        sel,
		SelectedSubtotal: sel.Subtotal(c),
		AllSelected:      sel.AllSelected(c),
	}, nil
}

// mutate runs one cart mutation with load/save/broadcast bookkeeping
func (s *Service) mutate(ctx context.Context, sessionID string, fn func(*domaincart.Cart) error) (*domaincart.Cart, error) {
	c, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	s.broadcast(ctx, sessionID, c)
	return c, nil
}

func (s *Service) broadcast(ctx context.Context, sessionID string, c *domaincart.Cart) {
	if err := s.publisher.Publish(ctx, domaincart.NewCartChangedEvent(sessionID, c)); err != nil {
		s.logger.Warn("failed to broadcast cart change", zap.Error(err))
	}
}

func (s *Service) notifyStockLimit(ctx context.Context, sessionID, variantID string, stock int, cause error) {
	var domainErr *shared.DomainError
	if !errors.As(cause, &domainErr) || domainErr.Code != shared.ErrStockLimit.Code {
		return
	}
	if err := s.publisher.Publish(ctx, domaincart.NewStockLimitHitEvent(sessionID, variantID, stock)); err != nil {
		s.logger.Warn("failed to broadcast stock limit notice", zap.Error(err))
	}
}
