package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/velora/storefront/internal/domain/shared"
	"github.com/velora/storefront/internal/domain/shared/valueobject"
)

// Item is one line of a session cart: a frozen snapshot of the variant
// the customer picked, including the stock ceiling observed at add time.
type Item struct {
	ID        string            `json:"id"`
	ProductID string            `json:"product_id"`
	VariantID string            `json:"variant_id"`
	Name      string            `json:"name"`
	UnitPrice valueobject.Money `json:"unit_price"`
	Quantity  int               `json:"quantity"`
	Size      string            `json:"size"`
	Color     string            `json:"color"`
	Stock     int               `json:"stock"`
	Image     string            `json:"image"`
	AddedAt   time.Time         `json:"added_at"`
}

// LineTotal returns unit price times quantity
func (i *Item) LineTotal() valueobject.Money {
	return i.UnitPrice.MultiplyByInt(int64(i.Quantity))
}

// Cart is the ordered list of items a session has gathered. It lives in
// the session state store until checkout clears it.
type Cart struct {
	Items []Item `json:"items"`
}

// New returns an empty cart
func New() *Cart {
	return &Cart{Items: []Item{}}
}

// Find returns the item with the given line id, or nil
func (c *Cart) Find(itemID string) *Item {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i]
		}
	}
	return nil
}

// FindByVariant returns the item for the given variant id, or nil
func (c *Cart) FindByVariant(variantID string) *Item {
	for i := range c.Items {
		if c.Items[i].VariantID == variantID {
			return &c.Items[i]
		}
	}
	return nil
}

// Add appends a new line, or merges quantities when the variant is
// already in the cart. The resulting quantity must stay within
// [1, stock]; a request past the stock ceiling is rejected and the cart
// is left unchanged.
func (c *Cart) Add(item Item) error {
	if item.Quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if item.VariantID == "" {
		return shared.ErrVariantUnresolved
	}

	if existing := c.FindByVariant(item.VariantID); existing != nil {
		merged := existing.Quantity + item.Quantity
		if merged > existing.Stock {
			return shared.ErrStockLimit
		}
		existing.Quantity = merged
		return nil
	}

	if item.Quantity > item.Stock {
		return shared.ErrStockLimit
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now()
	}
	c.Items = append(c.Items, item)
	return nil
}

// ChangeQuantity sets an item's quantity, clamped to [1, stock]. A
// value past the stock ceiling is rejected and the quantity is left
// unchanged.
func (c *Cart) ChangeQuantity(itemID string, quantity int) error {
	item := c.Find(itemID)
	if item == nil {
		return shared.ErrNotFound
	}
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if quantity > item.Stock {
		return shared.ErrStockLimit
	}
	item.Quantity = quantity
	return nil
}

// Increment raises an item's quantity by one, rejecting the step past
// the stock ceiling taken at add-to-cart time.
func (c *Cart) Increment(itemID string) error {
	item := c.Find(itemID)
	if item == nil {
		return shared.ErrNotFound
	}
	return c.ChangeQuantity(itemID, item.Quantity+1)
}

// Decrement lowers an item's quantity by one, never below one
func (c *Cart) Decrement(itemID string) error {
	item := c.Find(itemID)
	if item == nil {
		return shared.ErrNotFound
	}
	return c.ChangeQuantity(itemID, item.Quantity-1)
}

// Remove deletes an item from the cart
func (c *Cart) Remove(itemID string) error {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

// Clear removes every item
func (c *Cart) Clear() {
	c.Items = []Item{}
}

// IsEmpty returns true when the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// LineCount returns the number of distinct lines
func (c *Cart) LineCount() int {
	return len(c.Items)
}

// TotalUnits returns the summed quantity across all lines, the number
// shown on the cart badge.
func (c *Cart) TotalUnits() int {
	total := 0
	for i := range c.Items {
		total += c.Items[i].Quantity
	}
	return total
}

// Subtotal sums line totals across all items
func (c *Cart) Subtotal() valueobject.Money {
	subtotal := valueobject.ZeroIDR()
	for i := range c.Items {
		subtotal = subtotal.MustAdd(c.Items[i].LineTotal())
	}
	return subtotal
}
