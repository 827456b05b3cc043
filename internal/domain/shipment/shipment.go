package shipment

import (
	"time"

	"github.com/velora/storefront/internal/domain/shared"
	"github.com/velora/storefront/internal/domain/shared/valueobject"
)

// Status mirrors the courier integration's shipment lifecycle
type Status string

const (
	StatusPending     Status = "PENDING"
	StatusReadyToShip Status = "READY_TO_SHIP"
	StatusShipped     Status = "SHIPPED"
	StatusInTransit   Status = "IN_TRANSIT"
	StatusDelivered   Status = "DELIVERED"
	StatusCancelled   Status = "CANCELLED"
)

// IsTerminal reports whether the shipment can no longer move
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Badge returns the display label and tone for the status
func (s Status) Badge() shared.Badge {
	switch s {
	case StatusPending:
		return shared.Badge{Label: "Pending", Tone: shared.ToneNeutral}
	case StatusReadyToShip:
		return shared.Badge{Label: "Ready to Ship", Tone: shared.ToneInfo}
	case StatusShipped:
		return shared.Badge{Label: "Shipped", Tone: shared.ToneInfo}
	case StatusInTransit:
		return shared.Badge{Label: "In Transit", Tone: shared.ToneInfo}
	case StatusDelivered:
		return shared.Badge{Label: "Delivered", Tone: shared.ToneSuccess}
	case StatusCancelled:
		return shared.Badge{Label: "Cancelled", Tone: shared.ToneDanger}
	default:
		return shared.Badge{Label: string(s), Tone: shared.ToneNeutral}
	}
}

// TrackingEvent is one courier checkpoint in a shipment's history
type TrackingEvent struct {
	Note      string    `json:"note"`
	Location  string    `json:"location"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Shipment is a read model of a courier shipment for one order
type Shipment struct {
	ID              string            `json:"id"`
	OrderID         string            `json:"order_id"`
	Courier         string            `json:"courier"`
	Service         string            `json:"service"`
	TrackingNumber  string            `json:"tracking_number"`
	Cost            valueobject.Money `json:"cost"`
	Status          Status            `json:"status"`
	BiteshipOrderID string            `json:"biteship_order_id,omitempty"`
	History         []TrackingEvent   `json:"history,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// IsTrackable reports whether the shipment has a tracking number and is
// somewhere between handover and delivery.
func (s *Shipment) IsTrackable() bool {
	return s.TrackingNumber != "" && !s.Status.IsTerminal()
}
