package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velora/storefront/internal/domain/shared"
	"github.com/velora/storefront/internal/domain/shared/valueobject"
)

func lineItem(id, variantID string, price int64, qty, stock int) Item {
	return Item{
		ID:        id,
		ProductID: "p1",
		VariantID: variantID,
		Name:      "Linen Shirt",
		UnitPrice: valueobject.NewMoneyIDRFromInt(price),
		Quantity:  qty,
		Stock:     stock,
	}
}

func TestCartAdd(t *testing.T) {
	t.Run("appends a new line", func(t *testing.T) {
		c := New()
		require.NoError(t, c.Add(lineItem("", "v1", 50000, 2, 5)))

		require.Len(t, c.Items, 1)
		assert.NotEmpty(t, c.Items[0].ID)
		assert.Equal(t, 2, c.Items[0].Quantity)
		assert.False(t, c.Items[0].AddedAt.IsZero())
	})

	t.Run("merges quantities for the same variant", func(t *testing.T) {
		c := New()
		require.NoError(t, c.Add(lineItem("i1", "v1", 50000, 2, 5)))
		require.NoError(t, c.Add(lineItem("", "v1", 50000, 1, 5)))

		require.Len(t, c.Items, 1)
		assert.Equal(t, 3, c.Items[0].Quantity)
	})

	t.Run("rejects quantity past stock", func(t *testing.T) {
		c := New()
		err := c.Add(lineItem("", "v1", 50000, 6, 5))
		assert.ErrorIs(t, err, shared.ErrStockLimit)
		assert.True(t, c.IsEmpty())
	})

	t.Run("rejects merge past stock and leaves cart unchanged", func(t *testing.T) {
		c := New()
		require.NoError(t, c.Add(lineItem("i1", "v1", 50000, 4, 5)))

		err := c.Add(lineItem("", "v1", 50000, 2, 5))
		assert.ErrorIs(t, err, shared.ErrStockLimit)
		assert.Equal(t, 4, c.Items[0].Quantity)
	})

	t.Run("rejects unresolved variant", func(t *testing.T) {
		c := New()
		err := c.Add(lineItem("", "", 50000, 1, 5))
		assert.ErrorIs(t, err, shared.ErrVariantUnresolved)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		c := New()
		err := c.Add(lineItem("", "v1", 50000, 0, 5))
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_QUANTITY", domainErr.Code)
	})
}

func TestCartQuantity(t *testing.T) {
	t.Run("increment at stock ceiling is a rejected no-op", func(t *testing.T) {
		c := New()
		require.NoError(t, c.Add(lineItem("i1", "v1", 50000, 5, 5)))

		err := c.Increment("i1")
		assert.ErrorIs(t, err, shared.ErrStockLimit)
		assert.Equal(t, 5, c.Find("i1").Quantity)
	})

	t.Run("decrement never goes below one", func(t *testing.T) {
		c := New()
		require.NoError(t, c.Add(lineItem("i1", "v1", 50000, 1, 5)))

		require.Error(t, c.Decrement("i1"))
		assert.Equal(t, 1, c.Find("i1").Quantity)
	})

	t.Run("change to explicit value", func(t *testing.T) {
		c := New()
		require.NoError(t, c.Add(lineItem("i1", "v1", 50000, 1, 5)))

		require.NoError(t, c.ChangeQuantity("i1", 4))
		assert.Equal(t, 4, c.Find("i1").Quantity)
	})

	t.Run("unknown item", func(t *testing.T) {
		c := New()
		assert.ErrorIs(t, c.ChangeQuantity("missing", 2), shared.ErrNotFound)
		assert.ErrorIs(t, c.Increment("missing"), shared.ErrNotFound)
		assert.ErrorIs(t, c.Decrement("missing"), shared.ErrNotFound)
	})
}

func TestCartTotals(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(lineItem("i1", "v1", 50000, 2, 5)))
	require.NoError(t, c.Add(lineItem("i2", "v2", 15000, 1, 3)))

	assert.Equal(t, 2, c.LineCount())
	assert.Equal(t, 3, c.TotalUnits())
	assert.True(t, c.Subtotal().Equals(valueobject.NewMoneyIDRFromInt(115000)))
	assert.Equal(t, "Rp115.000", c.Subtotal().Display())
}

func TestCartRemove(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(lineItem("i1", "v1", 50000, 1, 5)))
	require.NoError(t, c.Add(lineItem("i2", "v2", 15000, 1, 3)))

	require.NoError(t, c.Remove("i1"))
	require.Len(t, c.Items, 1)
	assert.Equal(t, "i2", c.Items[0].ID)

	assert.ErrorIs(t, c.Remove("i1"), shared.ErrNotFound)
}

func TestSelection(t *testing.T) {
	twoItemCart := func(t *testing.T) *Cart {
		t.Helper()
		c := New()
		require.NoError(t, c.Add(lineItem("i1", "v1", 50000, 2, 5)))
		require.NoError(t, c.Add(lineItem("i2", "v2", 15000, 1, 3)))
		return c
	}

	t.Run("toggle flips membership", func(t *testing.T) {
		c := twoItemCart(t)
		s := NewSelection()

		s.Toggle("i1")
		assert.True(t, s.IsSelected("i1"))
		s.Toggle("i1")
		assert.False(t, s.IsSelected("i1"))
		assert.False(t, s.AllSelected(c))
	})

	t.Run("toggle all selects then clears", func(t *testing.T) {
		c := twoItemCart(t)
		s := NewSelection()

		s.ToggleAll(c)
		assert.True(t, s.AllSelected(c))

		s.ToggleAll(c)
		assert.Empty(t, s.ItemIDs)
	})

	t.Run("toggle all on empty cart is a no-op", func(t *testing.T) {
		s := NewSelection()
		s.ToggleAll(New())
		assert.Empty(t, s.ItemIDs)
		assert.False(t, s.AllSelected(New()))
	})

	t.Run("removing an item leaves no orphaned selection", func(t *testing.T) {
		c := twoItemCart(t)
		s := NewSelection()
		s.ToggleAll(c)

		require.NoError(t, c.Remove("i1"))
		s.Prune(c)

		assert.Equal(t, []string{"i2"}, s.ItemIDs)
		assert.True(t, s.AllSelected(c))
	})

	t.Run("subtotal covers only the subset", func(t *testing.T) {
		c := twoItemCart(t)
		s := NewSelection()
		s.Toggle("i1")

		assert.True(t, s.Subtotal(c).Equals(valueobject.NewMoneyIDRFromInt(100000)))

		s.Toggle("i2")
		assert.True(t, s.Subtotal(c).Equals(valueobject.NewMoneyIDRFromInt(115000)))
	})

	t.Run("selected items keep cart order", func(t *testing.T) {
		c := twoItemCart(t)
		s := &Selection{ItemIDs: []string{"i2", "i1"}}

		items := s.SelectedItems(c)
		require.Len(t, items, 2)
		assert.Equal(t, "i1", items[0].ID)
		assert.Equal(t, "i2", items[1].ID)
	})
}

func TestCartEvents(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(lineItem("i1", "v1", 50000, 2, 5)))

	evt := NewCartChangedEvent("sess-1", c)
	assert.Equal(t, EventTypeCartChanged, evt.EventType())
	assert.Equal(t, "sess-1", evt.SessionID())
	assert.Equal(t, 1, evt.LineCount)
	assert.Equal(t, 2, evt.TotalUnits)

	limit := NewStockLimitHitEvent("sess-1", "v1", 5)
	assert.Equal(t, EventTypeStockLimitHit, limit.EventType())
	assert.Equal(t, 5, limit.Stock)
}
