package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velora/storefront/internal/domain/cart"
	"github.com/velora/storefront/internal/domain/shared"
	"github.com/velora/storefront/internal/domain/shared/valueobject"
)

func completeShipping() ShippingInfo {
	return ShippingInfo{
		RecipientName: "Dewi Lestari",
		Phone:         "081234567890",
		AddressLine1:  "Jl. Sudirman No. 10",
		City:          "Jakarta",
		Province:      "DKI Jakarta",
		PostalCode:    "10220",
	}
}

func checkoutItems() []cart.Item {
	return []cart.Item{
		{
			ID:        "i1",
			ProductID: "p1",
			VariantID: "v1",
			Name:      "Linen Shirt",
			UnitPrice: valueobject.NewMoneyIDRFromInt(50000),
			Quantity:  2,
			Stock:     2,
		},
	}
}

func TestBegin(t *testing.T) {
	t.Run("starts at review cart", func(t *testing.T) {
		c, err := Begin(checkoutItems(), valueobject.NewMoneyIDRFromInt(15000))
		require.NoError(t, err)

		assert.Equal(t, StepReviewCart, c.Step)
		assert.Equal(t, OrderTypeReady, c.OrderType)
		assert.False(t, c.StartedAt.IsZero())
	})

	t.Run("rejects empty item set", func(t *testing.T) {
		_, err := Begin(nil, valueobject.ZeroIDR())
		assert.ErrorIs(t, err, shared.ErrCartEmpty)
	})
}

func TestAdvance(t *testing.T) {
	t.Run("review cart advances unconditionally", func(t *testing.T) {
		c, err := Begin(checkoutItems(), valueobject.NewMoneyIDRFromInt(15000))
		require.NoError(t, err)

		require.NoError(t, c.Advance())
		assert.Equal(t, StepShippingInfo, c.Step)
	})

	t.Run("shipping step blocks on incomplete address", func(t *testing.T) {
		c, err := Begin(checkoutItems(), valueobject.NewMoneyIDRFromInt(15000))
		require.NoError(t, err)
		require.NoError(t, c.Advance())

		info := completeShipping()
		info.City = "  "
		c.SetShipping(info)

		err = c.Advance()
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SHIPPING_INCOMPLETE", domainErr.Code)
		assert.Equal(t, StepShippingInfo, c.Step)
	})

	t.Run("shipping step advances once complete", func(t *testing.T) {
		c, err := Begin(checkoutItems(), valueobject.NewMoneyIDRFromInt(15000))
		require.NoError(t, err)
		require.NoError(t, c.Advance())

		c.SetShipping(completeShipping())
		require.NoError(t, c.Advance())
		assert.Equal(t, StepConfirmOrder, c.Step)
	})

	t.Run("confirm order is terminal", func(t *testing.T) {
		c, err := Begin(checkoutItems(), valueobject.NewMoneyIDRFromInt(15000))
		require.NoError(t, err)
		require.NoError(t, c.Advance())
		c.SetShipping(completeShipping())
		require.NoError(t, c.Advance())

		assert.ErrorIs(t, c.Advance(), shared.ErrInvalidState)
	})
}

func TestBack(t *testing.T) {
	atConfirm := func(t *testing.T) *Checkout {
		t.Helper()
		c, err := Begin(checkoutItems(), valueobject.NewMoneyIDRFromInt(15000))
		require.NoError(t, err)
		require.NoError(t, c.Advance())
		c.SetShipping(completeShipping())
		require.NoError(t, c.Advance())
		return c
	}

	t.Run("backward jumps allowed", func(t *testing.T) {
		c := atConfirm(t)
		require.NoError(t, c.Back(StepReviewCart))
		assert.Equal(t, StepReviewCart, c.Step)
	})

	t.Run("forward jump rejected", func(t *testing.T) {
		c := atConfirm(t)
		require.NoError(t, c.Back(StepShippingInfo))
		assert.ErrorIs(t, c.Back(StepConfirmOrder), shared.ErrInvalidState)
	})

	t.Run("jump to current step rejected", func(t *testing.T) {
		c := atConfirm(t)
		assert.ErrorIs(t, c.Back(StepConfirmOrder), shared.ErrInvalidState)
	})
}

func TestTotals(t *testing.T) {
	c, err := Begin(checkoutItems(), valueobject.NewMoneyIDRFromInt(15000))
	require.NoError(t, err)

	assert.True(t, c.Subtotal().Equals(valueobject.NewMoneyIDRFromInt(100000)))
	assert.True(t, c.Total().Equals(valueobject.NewMoneyIDRFromInt(115000)))
	assert.Equal(t, "Rp115.000", c.Total().Display())
	assert.Equal(t, 2, c.TotalUnits())
}

func TestOrderType(t *testing.T) {
	c, err := Begin(checkoutItems(), valueobject.ZeroIDR())
	require.NoError(t, err)

	require.NoError(t, c.SetOrderType(OrderTypePreorder))
	assert.Equal(t, OrderTypePreorder, c.OrderType)

	err = c.SetOrderType("EXPRESS")
	require.Error(t, err)
	assert.Equal(t, OrderTypePreorder, c.OrderType)
}

func TestShippingInfo(t *testing.T) {
	t.Run("complete form validates", func(t *testing.T) {
		assert.NoError(t, completeShipping().Validate())
		assert.True(t, completeShipping().IsComplete())
	})

	t.Run("address line 2 is optional", func(t *testing.T) {
		info := completeShipping()
		info.AddressLine2 = ""
		assert.NoError(t, info.Validate())
	})

	t.Run("missing fields are named", func(t *testing.T) {
		info := ShippingInfo{RecipientName: "Dewi Lestari"}
		missing := info.MissingFields()
		assert.Equal(t, []string{"phone", "address_line1", "city", "province", "postal_code"}, missing)
	})

	t.Run("whitespace-only counts as blank", func(t *testing.T) {
		info := completeShipping()
		info.Phone = "   "
		assert.Contains(t, info.MissingFields(), "phone")
	})
}
