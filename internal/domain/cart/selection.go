package cart

import "github.com/velora/storefront/internal/domain/shared/valueobject"

// Selection is the checkout subset: the item ids the customer ticked on
// the cart screen. It is persisted under its own key so an abandoned
// checkout never corrupts the cart itself.
type Selection struct {
	ItemIDs []string `json:"item_ids"`
}

// NewSelection returns an empty selection
func NewSelection() *Selection {
	return &Selection{ItemIDs: []string{}}
}

// IsSelected returns true if the item id is in the subset
func (s *Selection) IsSelected(itemID string) bool {
	for _, id := range s.ItemIDs {
		if id == itemID {
			return true
		}
	}
	return false
}

// Toggle flips one item in or out of the subset
func (s *Selection) Toggle(itemID string) {
	for i, id := range s.ItemIDs {
		if id == itemID {
			s.ItemIDs = append(s.ItemIDs[:i], s.ItemIDs[i+1:]...)
			return
		}
	}
	s.ItemIDs = append(s.ItemIDs, itemID)
}

// ToggleAll selects every cart item when any is unselected, and clears
// the subset when all are already selected. On an empty cart it is a
// no-op.
func (s *Selection) ToggleAll(c *Cart) {
	if c.IsEmpty() {
		return
	}
	if s.AllSelected(c) {
		s.ItemIDs = []string{}
		return
	}
	ids := make([]string, 0, len(c.Items))
	for i := range c.Items {
		ids = append(ids, c.Items[i].ID)
	}
	s.ItemIDs = ids
}

// AllSelected returns true when every cart item is in the subset and
// the cart is not empty.
func (s *Selection) AllSelected(c *Cart) bool {
	if c.IsEmpty() {
		return false
	}
	for i := range c.Items {
		if !s.IsSelected(c.Items[i].ID) {
			return false
		}
	}
	return true
}

// Prune drops ids that no longer reference a cart item, so removing an
// item never leaves an orphaned selection entry behind.
func (s *Selection) Prune(c *Cart) {
	kept := make([]string, 0, len(s.ItemIDs))
	for _, id := range s.ItemIDs {
		if c.Find(id) != nil {
			kept = append(kept, id)
		}
	}
	s.ItemIDs = kept
}

// SelectedItems returns the cart items in the subset, in cart order
func (s *Selection) SelectedItems(c *Cart) []Item {
	items := make([]Item, 0, len(s.ItemIDs))
	for i := range c.Items {
		if s.IsSelected(c.Items[i].ID) {
			items = append(items, c.Items[i])
		}
	}
	return items
}

// Subtotal computes the subset's subtotal, recomputed on every call
func (s *Selection) Subtotal(c *Cart) valueobject.Money {
	subtotal := valueobject.ZeroIDR()
	for _, item := range s.SelectedItems(c) {
		subtotal = subtotal.MustAdd(item.LineTotal())
	}
	return subtotal
}
