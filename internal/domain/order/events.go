package order

import "github.com/velora/storefront/internal/domain/shared"

// EventTypeOrderPlaced fires after the commerce service accepts an order
const EventTypeOrderPlaced = "order.placed"

// PlacedEvent announces a freshly created order so the cart can be
// cleared and the notification stream informed.
type PlacedEvent struct {
	shared.BaseDomainEvent
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Total       string `json:"total"`
}

// NewPlacedEvent creates a PlacedEvent for a session
func NewPlacedEvent(sessionID string, o *Order) *PlacedEvent {
	return &PlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, sessionID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		Total:           o.Total.Display(),
	}
}
