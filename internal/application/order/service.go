package order

import (
	"context"

	"go.uber.org/zap"

	domainorder "github.com/velora/storefront/internal/domain/order"
	"github.com/velora/storefront/internal/domain/shared"
	"github.com/velora/storefront/internal/domain/shipment"
	"github.com/velora/storefront/internal/infrastructure/commerce"
)

// CommerceReader is the order read surface proxied from the commerce
// service.
type CommerceReader interface {
	ListOrders(ctx context.Context, token string, q commerce.ListQuery) ([]domainorder.Order, error)
	GetOrder(ctx context.Context, token, id string) (domainorder.Order, error)
	TrackByOrder(ctx context.Context, token, orderID string) (shipment.Shipment, error)
}

// Service serves the customer's order history and shipment tracking
type Service struct {
	commerce CommerceReader
	logger   *zap.Logger
}

// NewService creates an order read service
func NewService(commerce CommerceReader, logger *zap.Logger) *Service {
	return &Service{
		commerce: commerce,
		logger:   logger.Named("order"),
	}
}

// Summary is one row in the order history list
type Summary struct {
	domainorder.Order
	Badge        shared.Badge `json:"badge"`
	TotalDisplay string       `json:"total_display"`
	Payable      bool         `json:"payable"`
}

func summarize(o domainorder.Order) Summary {
	return Summary{
		Order:        o,
		Badge:        o.Status.Badge(),
		TotalDisplay: o.Total.Display(),
		Payable:      o.Status.IsPayable(),
	}
}

// List returns the caller's orders with display annotations
func (s *Service) List(ctx context.Context, token string, q commerce.ListQuery) ([]Summary, error) {
	orders, err := s.commerce.ListOrders(ctx, token, q)
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, summarize(o))
	}
	return summaries, nil
}

// Get returns one order with display annotations
func (s *Service) Get(ctx context.Context, token, id string) (*Summary, error) {
	o, err := s.commerce.GetOrder(ctx, token, id)
	if err != nil {
		return nil, err
	}
	summary := summarize(o)
	return &summary, nil
}

// TrackingView is the shipment tracking screen: the shipment, its badge
// and the courier checkpoint history.
type TrackingView struct {
	Shipment  shipment.Shipment `json:"shipment"`
	Badge     shared.Badge      `json:"badge"`
	Trackable bool              `json:"trackable"`
}

// Track returns the shipment and its courier history for an order
func (s *Service) Track(ctx context.Context, token, orderID string) (*TrackingView, error) {
	sh, err := s.commerce.TrackByOrder(ctx, token, orderID)
	if err != nil {
		return nil, err
	}
	return &TrackingView{
		Shipment:  sh,
		Badge:     sh.Status.Badge(),
		Trackable: sh.IsTrackable(),
	}, nil
}
