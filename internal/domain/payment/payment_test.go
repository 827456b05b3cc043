package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/velora/storefront/internal/domain/order"
	"github.com/velora/storefront/internal/domain/shared"
)

func TestStatus(t *testing.T) {
	t.Run("only pending is non-terminal", func(t *testing.T) {
		assert.False(t, StatusPending.IsTerminal())
		for _, s := range []Status{StatusSettlement, StatusExpire, StatusCancel, StatusDeny, StatusRefund} {
			assert.True(t, s.IsTerminal(), string(s))
		}
	})

	t.Run("failed statuses", func(t *testing.T) {
		assert.True(t, StatusExpire.IsFailed())
		assert.True(t, StatusCancel.IsFailed())
		assert.True(t, StatusDeny.IsFailed())
		assert.False(t, StatusPending.IsFailed())
		assert.False(t, StatusSettlement.IsFailed())
		assert.False(t, StatusRefund.IsFailed())
	})

	t.Run("pending and settlement block new attempts", func(t *testing.T) {
		assert.True(t, StatusPending.Blocks())
		assert.True(t, StatusSettlement.Blocks())
		assert.False(t, StatusExpire.Blocks())
		assert.False(t, StatusDeny.Blocks())
	})
}

func TestCheckCreatable(t *testing.T) {
	tests := []struct {
		name        string
		orderStatus order.Status
		existing    *Payment
		wantErr     error
	}{
		{"payable order with no payment", order.StatusPendingPayment, nil, nil},
		{"payable order after expired attempt", order.StatusPendingPayment, &Payment{Status: StatusExpire}, nil},
		{"payable order after denied attempt", order.StatusPendingPayment, &Payment{Status: StatusDeny}, nil},
		{"pending payment already exists", order.StatusPendingPayment, &Payment{Status: StatusPending}, shared.ErrPaymentExists},
		{"settled payment already exists", order.StatusPendingPayment, &Payment{Status: StatusSettlement}, shared.ErrPaymentExists},
		{"cancelled order", order.StatusCancelled, nil, shared.ErrOrderNotPayable},
		{"completed order", order.StatusCompleted, nil, shared.ErrOrderNotPayable},
		{"shipped order", order.StatusShipped, nil, shared.ErrOrderNotPayable},
		{"delivered order", order.StatusDelivered, nil, shared.ErrOrderNotPayable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCreatable(tt.orderStatus, tt.existing)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestRemainingTime(t *testing.T) {
	now := time.Now()
	p := &Payment{ExpiresAt: now.Add(90 * time.Second)}

	assert.Equal(t, 90*time.Second, p.RemainingTime(now))
	assert.Equal(t, time.Duration(0), p.RemainingTime(now.Add(2*time.Minute)))
}

func TestBadge(t *testing.T) {
	assert.Equal(t, shared.Badge{Label: "Awaiting Payment", Tone: shared.ToneWarning}, StatusPending.Badge())
	assert.Equal(t, shared.Badge{Label: "Paid", Tone: shared.ToneSuccess}, StatusSettlement.Badge())
	assert.Equal(t, shared.Badge{Label: "Expired", Tone: shared.ToneDanger}, StatusExpire.Badge())
}
