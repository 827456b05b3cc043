package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velora/storefront/internal/domain/cart"
	"github.com/velora/storefront/internal/domain/checkout"
	"github.com/velora/storefront/internal/domain/shared/valueobject"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, "sess-1", KeyCart)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, "sess-1", KeyCart, []byte(`{"items":[]}`)))
	value, err := s.Get(ctx, "sess-1", KeyCart)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(value))

	// sessions are isolated
	_, err = s.Get(ctx, "sess-2", KeyCart)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, s.Delete(ctx, "sess-1", KeyCart))
	_, err = s.Get(ctx, "sess-1", KeyCart)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// deleting a missing key is fine
	assert.NoError(t, s.Delete(ctx, "sess-1", "nothing"))
}

func TestCartRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository(NewMemoryStore())

	t.Run("empty session yields empty cart", func(t *testing.T) {
		c, err := repo.Load(ctx, "sess-1")
		require.NoError(t, err)
		assert.True(t, c.IsEmpty())
	})

	t.Run("cart round-trips", func(t *testing.T) {
		c := cart.New()
		require.NoError(t, c.Add(cart.Item{
			ID:        "i1",
			ProductID: "p1",
			VariantID: "v1",
			Name:      "Linen Shirt",
			UnitPrice: valueobject.NewMoneyIDRFromInt(50000),
			Quantity:  2,
			Stock:     5,
		}))
		require.NoError(t, repo.Save(ctx, "sess-1", c))

		loaded, err := repo.Load(ctx, "sess-1")
		require.NoError(t, err)
		require.Len(t, loaded.Items, 1)
		assert.Equal(t, "v1", loaded.Items[0].VariantID)
		assert.Equal(t, 2, loaded.Items[0].Quantity)
		assert.True(t, loaded.Items[0].UnitPrice.Equals(valueobject.NewMoneyIDRFromInt(50000)))
	})

	t.Run("selection round-trips under its own key", func(t *testing.T) {
		sel := cart.NewSelection()
		sel.Toggle("i1")
		require.NoError(t, repo.SaveSelection(ctx, "sess-1", sel))

		loaded, err := repo.LoadSelection(ctx, "sess-1")
		require.NoError(t, err)
		assert.True(t, loaded.IsSelected("i1"))

		require.NoError(t, repo.ClearSelection(ctx, "sess-1"))
		cleared, err := repo.LoadSelection(ctx, "sess-1")
		require.NoError(t, err)
		assert.Empty(t, cleared.ItemIDs)
	})
}

func TestCheckoutRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCheckoutRepository(NewMemoryStore())

	t.Run("missing draft is nil", func(t *testing.T) {
		c, err := repo.Load(ctx, "sess-1")
		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("draft round-trips with step preserved", func(t *testing.T) {
		draft, err := checkout.Begin([]cart.Item{{
			ID:        "i1",
			VariantID: "v1",
			UnitPrice: valueobject.NewMoneyIDRFromInt(50000),
			Quantity:  2,
			Stock:     2,
		}}, valueobject.NewMoneyIDRFromInt(15000))
		require.NoError(t, err)
		require.NoError(t, draft.Advance())
		require.NoError(t, repo.Save(ctx, "sess-1", draft))

		loaded, err := repo.Load(ctx, "sess-1")
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, checkout.StepShippingInfo, loaded.Step)
		assert.True(t, loaded.Total().Equals(valueobject.NewMoneyIDRFromInt(115000)))

		require.NoError(t, repo.Clear(ctx, "sess-1"))
		cleared, err := repo.Load(ctx, "sess-1")
		require.NoError(t, err)
		assert.Nil(t, cleared)
	})

	t.Run("shipping draft prefill", func(t *testing.T) {
		info := &checkout.ShippingInfo{
			RecipientName: "Dewi Lestari",
			Phone:         "081234567890",
			AddressLine1:  "Jl. Sudirman No. 10",
			City:          "Jakarta",
			Province:      "DKI Jakarta",
			PostalCode:    "10220",
		}
		require.NoError(t, repo.SaveShippingDraft(ctx, "sess-1", info))

		loaded, err := repo.LoadShippingDraft(ctx, "sess-1")
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, "Dewi Lestari", loaded.RecipientName)
	})
}

func TestAuthRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAuthRepository(NewMemoryStore())

	state, err := repo.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Nil(t, state)

	require.NoError(t, repo.Save(ctx, "sess-1", &AuthState{
		AccessToken: "tok-123",
		UserID:      "u1",
		Role:        "customer",
	}))

	loaded, err := repo.Load(ctx, "sess-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "tok-123", loaded.AccessToken)

	require.NoError(t, repo.Clear(ctx, "sess-1"))
	cleared, err := repo.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Nil(t, cleared)
}

func TestImageMapRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewImageMapRepository(NewMemoryStore())

	m, err := repo.Load(ctx, "sess-1", "p1")
	require.NoError(t, err)
	assert.Empty(t, m)

	require.NoError(t, repo.Save(ctx, "sess-1", "p1", map[string]string{
		"Red":  "red.jpg",
		"Blue": "blue.jpg",
	}))

	loaded, err := repo.Load(ctx, "sess-1", "p1")
	require.NoError(t, err)
	assert.Equal(t, "red.jpg", loaded["Red"])

	// maps are per product
	other, err := repo.Load(ctx, "sess-1", "p2")
	require.NoError(t, err)
	assert.Empty(t, other)
}
