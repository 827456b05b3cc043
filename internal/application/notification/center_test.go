package notification

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/velora/storefront/internal/domain/cart"
	"github.com/velora/storefront/internal/domain/order"
	domainpayment "github.com/velora/storefront/internal/domain/payment"
	"github.com/velora/storefront/internal/domain/shared/valueobject"
	"github.com/velora/storefront/internal/infrastructure/event"
)

func TestCenterCollectsNotices(t *testing.T) {
	ctx := context.Background()
	center := NewCenter(zap.NewNop())
	bus := event.NewInMemoryBus(zap.NewNop())
	bus.Subscribe(center)

	require.NoError(t, bus.Publish(ctx, cart.NewStockLimitHitEvent("sess-1", "v2", 5)))

	placed := &order.Order{OrderNumber: "ORD-2026-0001", Total: valueobject.NewMoneyIDRFromInt(115000)}
	require.NoError(t, bus.Publish(ctx, order.NewPlacedEvent("sess-1", placed)))

	p := &domainpayment.Payment{ID: "pay-1", OrderID: "o1", Status: domainpayment.StatusSettlement}
	require.NoError(t, bus.Publish(ctx, domainpayment.NewSettledEvent("sess-1", p)))

	notices := center.List("sess-1")
	require.Len(t, notices, 3)

	// newest first
	assert.Equal(t, domainpayment.EventTypePaymentSettled, notices[0].EventType)
	assert.Equal(t, ToneSuccess, notices[0].Tone)
	assert.Equal(t, "Only 5 in stock for this item", notices[2].Message)
	assert.Contains(t, notices[1].Message, "ORD-2026-0001")
	assert.Contains(t, notices[1].Message, "Rp115.000")
}

func TestCenterSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	center := NewCenter(zap.NewNop())

	require.NoError(t, center.Handle(ctx, cart.NewStockLimitHitEvent("sess-1", "v1", 3)))

	assert.Len(t, center.List("sess-1"), 1)
	assert.Empty(t, center.List("sess-2"))
}

func TestCenterClear(t *testing.T) {
	ctx := context.Background()
	center := NewCenter(zap.NewNop())

	require.NoError(t, center.Handle(ctx, cart.NewStockLimitHitEvent("sess-1", "v1", 3)))
	center.Clear("sess-1")
	assert.Empty(t, center.List("sess-1"))
}

func TestCenterCapsTheFeed(t *testing.T) {
	ctx := context.Background()
	center := NewCenter(zap.NewNop())

	for i := 0; i < maxPerSession+10; i++ {
		p := &domainpayment.Payment{ID: fmt.Sprintf("pay-%d", i), OrderID: "o1", Status: domainpayment.StatusExpire}
		require.NoError(t, center.Handle(ctx, domainpayment.NewFailedEvent("sess-1", p)))
	}

	assert.Len(t, center.List("sess-1"), maxPerSession)
}

func TestCenterIgnoresCartChanged(t *testing.T) {
	ctx := context.Background()
	center := NewCenter(zap.NewNop())
	bus := event.NewInMemoryBus(zap.NewNop())
	bus.Subscribe(center)

	c := cart.New()
	require.NoError(t, bus.Publish(ctx, cart.NewCartChangedEvent("sess-1", c)))

	assert.Empty(t, center.List("sess-1"))
}
