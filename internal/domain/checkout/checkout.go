package checkout

import (
	"time"

	"github.com/velora/storefront/internal/domain/cart"
	"github.com/velora/storefront/internal/domain/shared"
	"github.com/velora/storefront/internal/domain/shared/valueobject"
)

// Step identifies a position in the linear checkout flow
type Step int

const (
	StepReviewCart   Step = 1
	StepShippingInfo Step = 2
	StepConfirmOrder Step = 3
)

// String returns the display name of the step
func (s Step) String() string {
	switch s {
	case StepReviewCart:
		return "Review Cart"
	case StepShippingInfo:
		return "Shipping Info"
	case StepConfirmOrder:
		return "Confirm Order"
	default:
		return "Unknown"
	}
}

// OrderType distinguishes in-stock purchases from preorders
type OrderType string

const (
	OrderTypeReady    OrderType = "READY"
	OrderTypePreorder OrderType = "PREORDER"
)

// Checkout is the session's in-flight order draft. It walks a linear
// flow of ReviewCart, ShippingInfo and ConfirmOrder: backward jumps are
// free, forward movement requires the current step to validate.
type Checkout struct {
	Step         Step              `json:"step"`
	Items        []cart.Item       `json:"items"`
	Shipping     ShippingInfo      `json:"shipping"`
	OrderType    OrderType         `json:"order_type"`
	Notes        string            `json:"notes"`
	ShippingCost valueobject.Money `json:"shipping_cost"`
	StartedAt    time.Time         `json:"started_at"`
}

// Begin starts a checkout over the selected cart items
func Begin(items []cart.Item, shippingCost valueobject.Money) (*Checkout, error) {
	if len(items) == 0 {
		return nil, shared.ErrCartEmpty
	}
	return &Checkout{
		Step:         StepReviewCart,
		Items:        items,
		OrderType:    OrderTypeReady,
		ShippingCost: shippingCost,
		StartedAt:    time.Now(),
	}, nil
}

// Advance moves to the next step after validating the current one.
// ReviewCart advances unconditionally; ShippingInfo requires a complete
// address; ConfirmOrder is terminal.
func (c *Checkout) Advance() error {
	switch c.Step {
	case StepReviewCart:
		c.Step = StepShippingInfo
		return nil
	case StepShippingInfo:
		if err := c.Shipping.Validate(); err != nil {
			return err
		}
		c.Step = StepConfirmOrder
		return nil
	case StepConfirmOrder:
		return shared.ErrInvalidState
	default:
		return shared.ErrInvalidState
	}
}

// Back jumps to an earlier step. Forward jumps are rejected; Advance is
// the only way to move forward.
func (c *Checkout) Back(to Step) error {
	if to < StepReviewCart || to >= c.Step {
		return shared.ErrInvalidState
	}
	c.Step = to
	return nil
}

// SetShipping records the shipping form values on the draft
func (c *Checkout) SetShipping(info ShippingInfo) {
	c.Shipping = info
}

// SetOrderType records the chosen order type
func (c *Checkout) SetOrderType(t OrderType) error {
	if t != OrderTypeReady && t != OrderTypePreorder {
		return shared.NewDomainError("INVALID_ORDER_TYPE", "Order type must be READY or PREORDER")
	}
	c.OrderType = t
	return nil
}

// SetNotes records free-text notes for the order
func (c *Checkout) SetNotes(notes string) {
	c.Notes = notes
}

// Subtotal sums line totals over the checkout items, recomputed on
// every call.
func (c *Checkout) Subtotal() valueobject.Money {
	subtotal := valueobject.ZeroIDR()
	for i := range c.Items {
		subtotal = subtotal.MustAdd(c.Items[i].LineTotal())
	}
	return subtotal
}

// Total is subtotal plus shipping cost
func (c *Checkout) Total() valueobject.Money {
	return c.Subtotal().MustAdd(c.ShippingCost)
}

// TotalUnits returns the summed quantity over the checkout items
func (c *Checkout) TotalUnits() int {
	total := 0
	for i := range c.Items {
		total += c.Items[i].Quantity
	}
	return total
}
