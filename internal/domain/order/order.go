package order

import (
	"time"

	"github.com/velora/storefront/internal/domain/shared"
	"github.com/velora/storefront/internal/domain/shared/valueobject"
)

// Status mirrors the commerce service's order lifecycle
type Status string

const (
	StatusPendingPayment Status = "PENDING_PAYMENT"
	StatusPaid           Status = "PAID"
	StatusProcessing     Status = "PROCESSING"
	StatusShipped        Status = "SHIPPED"
	StatusDelivered      Status = "DELIVERED"
	StatusCompleted      Status = "COMPLETED"
	StatusCancelled      Status = "CANCELLED"
)

// IsPayable reports whether a new payment may be created for an order
// in this status. Shipped, delivered, completed and cancelled orders
// are closed to payment.
func (s Status) IsPayable() bool {
	switch s {
	case StatusCancelled, StatusCompleted, StatusShipped, StatusDelivered:
		return false
	default:
		return true
	}
}

// Badge returns the display label and tone for the status
func (s Status) Badge() shared.Badge {
	switch s {
	case StatusPendingPayment:
		return shared.Badge{Label: "Awaiting Payment", Tone: shared.ToneWarning}
	case StatusPaid:
		return shared.Badge{Label: "Paid", Tone: shared.ToneSuccess}
	case StatusProcessing:
		return shared.Badge{Label: "Processing", Tone: shared.ToneInfo}
	case StatusShipped:
		return shared.Badge{Label: "Shipped", Tone: shared.ToneInfo}
	case StatusDelivered:
		return shared.Badge{Label: "Delivered", Tone: shared.ToneSuccess}
	case StatusCompleted:
		return shared.Badge{Label: "Completed", Tone: shared.ToneSuccess}
	case StatusCancelled:
		return shared.Badge{Label: "Cancelled", Tone: shared.ToneDanger}
	default:
		return shared.Badge{Label: string(s), Tone: shared.ToneNeutral}
	}
}

// Item is a frozen snapshot of a product variant at order time
type Item struct {
	ProductID string            `json:"product_id"`
	VariantID string            `json:"variant_id"`
	Name      string            `json:"name"`
	SKU       string            `json:"sku"`
	Size      string            `json:"size"`
	Color     string            `json:"color"`
	UnitPrice valueobject.Money `json:"unit_price"`
	Quantity  int               `json:"quantity"`
}

// LineTotal returns unit price times quantity
func (i *Item) LineTotal() valueobject.Money {
	return i.UnitPrice.MultiplyByInt(int64(i.Quantity))
}

// Order is a read model of a commerce-service order. The service owns
// every transition; this side only reads it and requests payment or
// shipment actions.
type Order struct {
	ID            string            `json:"id"`
	OrderNumber   string            `json:"order_number"`
	Status        Status            `json:"status"`
	OrderType     string            `json:"order_type"`
	RecipientName string            `json:"recipient_name"`
	Phone         string            `json:"phone"`
	AddressLine1  string            `json:"address_line1"`
	AddressLine2  string            `json:"address_line2"`
	City          string            `json:"city"`
	Province      string            `json:"province"`
	PostalCode    string            `json:"postal_code"`
	Subtotal      valueobject.Money `json:"subtotal"`
	ShippingCost  valueobject.Money `json:"shipping_cost"`
	Total         valueobject.Money `json:"total"`
	Notes         string            `json:"notes"`
	Items         []Item            `json:"items"`
	CreatedAt     time.Time         `json:"created_at"`
}

// ComputedTotal derives subtotal plus shipping from the line items,
// used to cross-check the service-reported total.
func (o *Order) ComputedTotal() valueobject.Money {
	subtotal := valueobject.ZeroIDR()
	for i := range o.Items {
		subtotal = subtotal.MustAdd(o.Items[i].LineTotal())
	}
	return subtotal.MustAdd(o.ShippingCost)
}
