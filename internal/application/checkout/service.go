package checkout

import (
	"context"

	"go.uber.org/zap"

	domaincart "github.com/velora/storefront/internal/domain/cart"
	domaincheckout "github.com/velora/storefront/internal/domain/checkout"
	"github.com/velora/storefront/internal/domain/order"
	"github.com/velora/storefront/internal/domain/shared"
	"github.com/velora/storefront/internal/domain/shared/valueobject"
	"github.com/velora/storefront/internal/infrastructure/commerce"
	"github.com/velora/storefront/internal/infrastructure/config"
)

// OrderCreator submits a finished checkout to the commerce service
type OrderCreator interface {
	CreateOrder(ctx context.Context, token string, in commerce.CreateOrderInput) (order.Order, error)
}

// Service walks a session through the three-step checkout flow and
// submits the order upstream on confirmation.
type Service struct {
	checkouts    domaincheckout.Repository
	carts        domaincart.Repository
	orders       OrderCreator
	publisher    shared.EventPublisher
	shippingCost valueobject.Money
	logger       *zap.Logger
}

// NewService creates a checkout service
func NewService(
	checkouts domaincheckout.Repository,
	carts domaincart.Repository,
	orders OrderCreator,
	publisher shared.EventPublisher,
	cfg config.CheckoutConfig,
	logger *zap.Logger,
) *Service {
	return &Service{
		checkouts:    checkouts,
		carts:        carts,
		orders:       orders,
		publisher:    publisher,
		shippingCost: valueobject.NewMoneyIDRFromInt(cfg.FlatShippingCost),
		logger:       logger.Named("checkout"),
	}
}

// View is the checkout screen's state: the draft plus derived totals
type View struct {
	Checkout   *domaincheckout.Checkout `json:"checkout"`
	StepName   string                   `json:"step_name"`
	Subtotal   valueobject.Money        `json:"subtotal"`
	Total      valueobject.Money        `json:"total"`
	TotalUnits int                      `json:"total_units"`
}

func newView(c *domaincheckout.Checkout) *View {
	return &View{
		Checkout:   c,
		StepName:   c.Step.String(),
		Subtotal:   c.Subtotal(),
		Total:      c.Total(),
		TotalUnits: c.TotalUnits(),
	}
}

// Begin starts a checkout over the cart's selected items, replacing any
// previous draft. The shipping form is pre-filled from the last saved
// draft when one exists.
func (s *Service) Begin(ctx context.Context, sessionID string) (*View, error) {
	c, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sel, err := s.carts.LoadSelection(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	draft, err := domaincheckout.Begin(sel.SelectedItems(c), s.shippingCost)
	if err != nil {
		return nil, err
	}

	if prefill, err := s.checkouts.LoadShippingDraft(ctx, sessionID); err == nil && prefill != nil {
		draft.SetShipping(*prefill)
	}

	if err := s.checkouts.Save(ctx, sessionID, draft); err != nil {
		return nil, err
	}
	return newView(draft), nil
}

// Current returns the session's in-flight checkout
func (s *Service) Current(ctx context.Context, sessionID string) (*View, error) {
	draft, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return newView(draft), nil
}

// Advance moves the checkout one step forward, validating the current
// step first.
func (s *Service) Advance(ctx context.Context, sessionID string) (*View, error) {
	return s.mutate(ctx, sessionID, func(c *domaincheckout.Checkout) error {
		return c.Advance()
	})
}

// Back jumps to an earlier step
func (s *Service) Back(ctx context.Context, sessionID string, to domaincheckout.Step) (*View, error) {
	return s.mutate(ctx, sessionID, func(c *domaincheckout.Checkout) error {
		return c.Back(to)
	})
}

// SetShipping records the shipping form on the draft and persists it
// separately so a later checkout can pre-fill.
func (s *Service) SetShipping(ctx context.Context, sessionID string, info domaincheckout.ShippingInfo) (*View, error) {
	draft, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	draft.SetShipping(info)

	if err := s.checkouts.Save(ctx, sessionID, draft); err != nil {
		return nil, err
	}
	if err := s.checkouts.SaveShippingDraft(ctx, sessionID, &info); err != nil {
		s.logger.Warn("failed to save shipping prefill", zap.Error(err))
	}
	return newView(draft), nil
}

// ConfirmInput carries the final step's choices
type ConfirmInput struct {
	OrderType string
	Notes     string
}

// Confirm validates the final step and submits the order upstream. On
// success the ordered items leave the cart, the selection and draft are
// cleared and the new order is returned for payment. On failure every
// piece of local state stays as it was.
func (s *Service) Confirm(ctx context.Context, sessionID, token string, in ConfirmInput) (*order.Order, error) {
	draft, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if draft.Step != domaincheckout.StepConfirmOrder {
		return nil, shared.ErrInvalidState
	}
	if err := draft.SetOrderType(domaincheckout.OrderType(in.OrderType)); err != nil {
		return nil, err
	}
	draft.SetNotes(in.Notes)
	if err := draft.Shipping.Validate(); err != nil {
		return nil, err
	}

	items := make([]commerce.OrderItemInput, 0, len(draft.Items))
	for _, item := range draft.Items {
		items = append(items, commerce.OrderItemInput{
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
		})
	}

	placed, err := s.orders.CreateOrder(ctx, token, commerce.CreateOrderInput{
		Items:         items,
		OrderType:     string(draft.OrderType),
		Notes:         draft.Notes,
		RecipientName: draft.Shipping.RecipientName,
		Phone:         draft.Shipping.Phone,
		AddressLine1:  draft.Shipping.AddressLine1,
		AddressLine2:  draft.Shipping.AddressLine2,
		City:          draft.Shipping.City,
		Province:      draft.Shipping.Province,
		PostalCode:    draft.Shipping.PostalCode,
		ShippingCost:  draft.ShippingCost.Amount().InexactFloat64(),
	})
	if err != nil {
		return nil, err
	}

	s.settle(ctx, sessionID, draft)

	if err := s.publisher.Publish(ctx, order.NewPlacedEvent(sessionID, &placed)); err != nil {
		s.logger.Warn("failed to publish order placed event", zap.Error(err))
	}
	return &placed, nil
}

// settle removes the ordered items from the cart and clears the
// selection and draft. The order already exists upstream, so failures
// here are logged and swallowed rather than surfaced.
func (s *Service) settle(ctx context.Context, sessionID string, draft *domaincheckout.Checkout) {
	c, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		s.logger.Warn("failed to load cart after order placement", zap.Error(err))
		return
	}
	for _, item := range draft.Items {
		if c.Find(item.ID) != nil {
			_ = c.Remove(item.ID)
		}
	}
	if err := s.carts.Save(ctx, sessionID, c); err != nil {
		s.logger.Warn("failed to save cart after order placement", zap.Error(err))
	}
	if err := s.carts.ClearSelection(ctx, sessionID); err != nil {
		s.logger.Warn("failed to clear selection after order placement", zap.Error(err))
	}
	if err := s.checkouts.Clear(ctx, sessionID); err != nil {
		s.logger.Warn("failed to clear checkout draft after order placement", zap.Error(err))
	}
	s.publishCartChanged(ctx, sessionID, c)
}

func (s *Service) publishCartChanged(ctx context.Context, sessionID string, c *domaincart.Cart) {
	if err := s.publisher.Publish(ctx, domaincart.NewCartChangedEvent(sessionID, c)); err != nil {
		s.logger.Warn("failed to broadcast cart change", zap.Error(err))
	}
}

func (s *Service) load(ctx context.Context, sessionID string) (*domaincheckout.Checkout, error) {
	draft, err := s.checkouts.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, shared.NewDomainError("NO_ACTIVE_CHECKOUT", "No checkout is in progress")
	}
	return draft, nil
}

func (s *Service) mutate(ctx context.Context, sessionID string, fn func(*domaincheckout.Checkout) error) (*View, error) {
	draft, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(draft); err != nil {
		return nil, err
	}
	if err := s.checkouts.Save(ctx, sessionID, draft); err != nil {
		return nil, err
	}
	return newView(draft), nil
}
