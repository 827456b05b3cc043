package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainorder "github.com/velora/storefront/internal/domain/order"
	"github.com/velora/storefront/internal/domain/shared/valueobject"
	"github.com/velora/storefront/internal/domain/shipment"
	"github.com/velora/storefront/internal/infrastructure/commerce"
)

type fakeReader struct {
	orders   []domainorder.Order
	order    domainorder.Order
	shipment shipment.Shipment
	err      error
}

func (f *fakeReader) ListOrders(ctx context.Context, token string, q commerce.ListQuery) ([]domainorder.Order, error) {
	return f.orders, f.err
}

func (f *fakeReader) GetOrder(ctx context.Context, token, id string) (domainorder.Order, error) {
	return f.order, f.err
}

func (f *fakeReader) TrackByOrder(ctx context.Context, token, orderID string) (shipment.Shipment, error) {
	return f.shipment, f.err
}

func TestList(t *testing.T) {
	fake := &fakeReader{orders: []domainorder.Order{
		{ID: "o1", Status: domainorder.StatusPendingPayment, Total: valueobject.NewMoneyIDRFromInt(115000)},
		{ID: "o2", Status: domainorder.StatusShipped, Total: valueobject.NewMoneyIDRFromInt(50000)},
	}}
	svc := NewService(fake, zap.NewNop())

	summaries, err := svc.List(context.Background(), "tok", commerce.ListQuery{})
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, "Rp115.000", summaries[0].TotalDisplay)
	assert.True(t, summaries[0].Payable)
	assert.False(t, summaries[1].Payable)
}

func TestGet(t *testing.T) {
	fake := &fakeReader{order: domainorder.Order{
		ID:     "o1",
		Status: domainorder.StatusDelivered,
		Total:  valueobject.NewMoneyIDRFromInt(115000),
	}}
	svc := NewService(fake, zap.NewNop())

	summary, err := svc.Get(context.Background(), "tok", "o1")
	require.NoError(t, err)
	assert.Equal(t, "Delivered", summary.Badge.Label)
	assert.False(t, summary.Payable)
}

func TestTrack(t *testing.T) {
	fake := &fakeReader{shipment: shipment.Shipment{
		ID:             "s1",
		OrderID:        "o1",
		Status:         shipment.StatusInTransit,
		TrackingNumber: "JNE123",
		History: []shipment.TrackingEvent{
			{Note: "Package picked up", Location: "Jakarta"},
		},
	}}
	svc := NewService(fake, zap.NewNop())

	view, err := svc.Track(context.Background(), "tok", "o1")
	require.NoError(t, err)
	assert.True(t, view.Trackable)
	require.Len(t, view.Shipment.History, 1)
	assert.Equal(t, "Jakarta", view.Shipment.History[0].Location)
}
