package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domaincart "github.com/velora/storefront/internal/domain/cart"
	domaincheckout "github.com/velora/storefront/internal/domain/checkout"
	"github.com/velora/storefront/internal/domain/order"
	"github.com/velora/storefront/internal/domain/shared"
	"github.com/velora/storefront/internal/domain/shared/valueobject"
	"github.com/velora/storefront/internal/infrastructure/commerce"
	"github.com/velora/storefront/internal/infrastructure/config"
	"github.com/velora/storefront/internal/infrastructure/store"
)

type fakeOrderCreator struct {
	placed order.Order
	err    error

	calls     int
	lastToken string
	lastInput commerce.CreateOrderInput
}

func (f *fakeOrderCreator) CreateOrder(ctx context.Context, token string, in commerce.CreateOrderInput) (order.Order, error) {
	f.calls++
	f.lastToken = token
	f.lastInput = in
	if f.err != nil {
		return order.Order{}, f.err
	}
	return f.placed, nil
}

type capturingPublisher struct {
	events []shared.DomainEvent
}

func (p *capturingPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

type fixture struct {
	svc    *Service
	carts  *store.CartRepository
	orders *fakeOrderCreator
	pub    *capturingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mem := store.NewMemoryStore()
	orders := &fakeOrderCreator{placed: order.Order{
		ID:          "o1",
		OrderNumber: "ORD-2026-0001",
		Status:      order.StatusPendingPayment,
		Total:       valueobject.NewMoneyIDRFromInt(115000),
	}}
	pub := &capturingPublisher{}
	carts := store.NewCartRepository(mem)
	svc := NewService(
		store.NewCheckoutRepository(mem),
		carts,
		orders,
		pub,
		config.CheckoutConfig{FlatShippingCost: 15000},
		zap.NewNop(),
	)
	return &fixture{svc: svc, carts: carts, orders: orders, pub: pub}
}

// seedCart puts one selected two-unit line of a Rp50.000 shirt in the cart
func (f *fixture) seedCart(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	c := domaincart.New()
	require.NoError(t, c.Add(domaincart.Item{
		ID:        "i1",
		ProductID: "p1",
		VariantID: "v2",
		Name:      "Linen Shirt",
		UnitPrice: valueobject.NewMoneyIDRFromInt(50000),
		Quantity:  2,
		Size:      "M",
		Color:     "Red",
		Stock:     5,
	}))
	require.NoError(t, f.carts.Save(ctx, "sess-1", c))

	sel := domaincart.NewSelection()
	sel.Toggle("i1")
	require.NoError(t, f.carts.SaveSelection(ctx, "sess-1", sel))
}

func completeShipping() domaincheckout.ShippingInfo {
	return domaincheckout.ShippingInfo{
		RecipientName: "Dewi Lestari",
		Phone:         "081234567890",
		AddressLine1:  "Jl. Sudirman No. 10",
		City:          "Jakarta",
		Province:      "DKI Jakarta",
		PostalCode:    "10220",
	}
}

func TestBegin(t *testing.T) {
	ctx := context.Background()

	t.Run("starts from the selected subset with flat shipping", func(t *testing.T) {
		f := newFixture(t)
		f.seedCart(t)

		view, err := f.svc.Begin(ctx, "sess-1")
		require.NoError(t, err)
		assert.Equal(t, domaincheckout.StepReviewCart, view.Checkout.Step)
		assert.True(t, view.Subtotal.Equals(valueobject.NewMoneyIDRFromInt(100000)))
		assert.True(t, view.Total.Equals(valueobject.NewMoneyIDRFromInt(115000)))
		assert.Equal(t, "Rp115.000", view.Total.Display())
	})

	t.Run("empty selection cannot start a checkout", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Begin(ctx, "sess-1")
		assert.ErrorIs(t, err, shared.ErrCartEmpty)
	})

	t.Run("shipping form pre-fills from the last draft", func(t *testing.T) {
		f := newFixture(t)
		f.seedCart(t)

		_, err := f.svc.Begin(ctx, "sess-1")
		require.NoError(t, err)
		_, err = f.svc.SetShipping(ctx, "sess-1", completeShipping())
		require.NoError(t, err)

		view, err := f.svc.Begin(ctx, "sess-1")
		require.NoError(t, err)
		assert.Equal(t, "Dewi Lestari", view.Checkout.Shipping.RecipientName)
	})
}

func TestStepNavigation(t *testing.T) {
	ctx := context.Background()

	t.Run("shipping gate blocks an incomplete address", func(t *testing.T) {
		f := newFixture(t)
		f.seedCart(t)
		_, err := f.svc.Begin(ctx, "sess-1")
		require.NoError(t, err)

		_, err = f.svc.Advance(ctx, "sess-1")
		require.NoError(t, err)

		incomplete := completeShipping()
		incomplete.City = "  "
		_, err = f.svc.SetShipping(ctx, "sess-1", incomplete)
		require.NoError(t, err)

		_, err = f.svc.Advance(ctx, "sess-1")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SHIPPING_INCOMPLETE", domainErr.Code)

		view, err := f.svc.Current(ctx, "sess-1")
		require.NoError(t, err)
		assert.Equal(t, domaincheckout.StepShippingInfo, view.Checkout.Step)
	})

	t.Run("back jumps to an earlier step only", func(t *testing.T) {
		f := newFixture(t)
		f.seedCart(t)
		_, err := f.svc.Begin(ctx, "sess-1")
		require.NoError(t, err)
		_, err = f.svc.Advance(ctx, "sess-1")
		require.NoError(t, err)

		view, err := f.svc.Back(ctx, "sess-1", domaincheckout.StepReviewCart)
		require.NoError(t, err)
		assert.Equal(t, domaincheckout.StepReviewCart, view.Checkout.Step)

		_, err = f.svc.Back(ctx, "sess-1", domaincheckout.StepConfirmOrder)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("without an active checkout every step op fails", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Current(ctx, "sess-1")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NO_ACTIVE_CHECKOUT", domainErr.Code)
	})
}

func advanceToConfirm(t *testing.T, f *fixture) {
	t.Helper()
	ctx := context.Background()
	_, err := f.svc.Begin(ctx, "sess-1")
	require.NoError(t, err)
	_, err = f.svc.Advance(ctx, "sess-1")
	require.NoError(t, err)
	_, err = f.svc.SetShipping(ctx, "sess-1", completeShipping())
	require.NoError(t, err)
	_, err = f.svc.Advance(ctx, "sess-1")
	require.NoError(t, err)
}

func TestConfirm(t *testing.T) {
	ctx := context.Background()

	t.Run("submits upstream and clears local state", func(t *testing.T) {
		f := newFixture(t)
		f.seedCart(t)
		advanceToConfirm(t, f)

		placed, err := f.svc.Confirm(ctx, "sess-1", "tok-123", ConfirmInput{OrderType: "READY", Notes: "gift wrap"})
		require.NoError(t, err)
		assert.Equal(t, "ORD-2026-0001", placed.OrderNumber)

		assert.Equal(t, "tok-123", f.orders.lastToken)
		require.Len(t, f.orders.lastInput.Items, 1)
		assert.Equal(t, "v2", f.orders.lastInput.Items[0].VariantID)
		assert.Equal(t, 2, f.orders.lastInput.Items[0].Quantity)
		assert.Equal(t, "gift wrap", f.orders.lastInput.Notes)
		assert.InDelta(t, 15000, f.orders.lastInput.ShippingCost, 0.001)

		c, err := f.carts.Load(ctx, "sess-1")
		require.NoError(t, err)
		assert.True(t, c.IsEmpty())

		sel, err := f.carts.LoadSelection(ctx, "sess-1")
		require.NoError(t, err)
		assert.Empty(t, sel.ItemIDs)

		_, err = f.svc.Current(ctx, "sess-1")
		assert.Error(t, err)

		types := make([]string, 0, len(f.pub.events))
		for _, e := range f.pub.events {
			types = append(types, e.EventType())
		}
		assert.Contains(t, types, order.EventTypeOrderPlaced)
	})

	t.Run("upstream failure leaves cart and draft intact", func(t *testing.T) {
		f := newFixture(t)
		f.seedCart(t)
		advanceToConfirm(t, f)
		f.orders.err = shared.ErrUpstream

		_, err := f.svc.Confirm(ctx, "sess-1", "tok-123", ConfirmInput{OrderType: "READY"})
		assert.ErrorIs(t, err, shared.ErrUpstream)

		c, err := f.carts.Load(ctx, "sess-1")
		require.NoError(t, err)
		assert.False(t, c.IsEmpty())

		view, err := f.svc.Current(ctx, "sess-1")
		require.NoError(t, err)
		assert.Equal(t, domaincheckout.StepConfirmOrder, view.Checkout.Step)
	})

	t.Run("confirm before the final step is rejected", func(t *testing.T) {
		f := newFixture(t)
		f.seedCart(t)
		_, err := f.svc.Begin(ctx, "sess-1")
		require.NoError(t, err)

		_, err = f.svc.Confirm(ctx, "sess-1", "tok-123", ConfirmInput{OrderType: "READY"})
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		assert.Zero(t, f.orders.calls)
	})

	t.Run("unknown order type is rejected before any network call", func(t *testing.T) {
		f := newFixture(t)
		f.seedCart(t)
		advanceToConfirm(t, f)

		_, err := f.svc.Confirm(ctx, "sess-1", "tok-123", ConfirmInput{OrderType: "EXPRESS"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_ORDER_TYPE", domainErr.Code)
		assert.Zero(t, f.orders.calls)
	})
}
