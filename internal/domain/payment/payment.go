package payment

import (
	"time"

	"github.com/velora/storefront/internal/domain/order"
	"github.com/velora/storefront/internal/domain/shared"
	"github.com/velora/storefront/internal/domain/shared/valueobject"
)

// Status mirrors the payment gateway's transaction lifecycle
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusSettlement Status = "SETTLEMENT"
	StatusExpire     Status = "EXPIRE"
	StatusCancel     Status = "CANCEL"
	StatusDeny       Status = "DENY"
	StatusRefund     Status = "REFUND"
)

// IsTerminal reports whether the status can no longer change. Only
// PENDING payments keep being watched.
func (s Status) IsTerminal() bool {
	return s != StatusPending
}

// IsFailed reports whether the attempt ended without settlement
func (s Status) IsFailed() bool {
	switch s {
	case StatusExpire, StatusCancel, StatusDeny:
		return true
	default:
		return false
	}
}

// Blocks reports whether this status blocks creating a new payment for
// the same order. A pending attempt must finish and a settled one means
// the order is already paid.
func (s Status) Blocks() bool {
	return s == StatusPending || s == StatusSettlement
}

// Badge returns the display label and tone for the status
func (s Status) Badge() shared.Badge {
	switch s {
	case StatusPending:
		return shared.Badge{Label: "Awaiting Payment", Tone: shared.ToneWarning}
	case StatusSettlement:
		return shared.Badge{Label: "Paid", Tone: shared.ToneSuccess}
	case StatusExpire:
		return shared.Badge{Label: "Expired", Tone: shared.ToneDanger}
	case StatusCancel:
		return shared.Badge{Label: "Cancelled", Tone: shared.ToneDanger}
	case StatusDeny:
		return shared.Badge{Label: "Denied", Tone: shared.ToneDanger}
	case StatusRefund:
		return shared.Badge{Label: "Refunded", Tone: shared.ToneInfo}
	default:
		return shared.Badge{Label: string(s), Tone: shared.ToneNeutral}
	}
}

// Payment is a read model of a gateway transaction for one order
type Payment struct {
	ID            string            `json:"id"`
	OrderID       string            `json:"order_id"`
	Method        string            `json:"method"`
	Status        Status            `json:"status"`
	TransactionID string            `json:"transaction_id"`
	PaymentURL    string            `json:"payment_url"`
	Amount        valueobject.Money `json:"amount"`
	ExpiresAt     time.Time         `json:"expires_at"`
	CreatedAt     time.Time         `json:"created_at"`
}

// RemainingTime returns the countdown until expiry, never negative
func (p *Payment) RemainingTime(now time.Time) time.Duration {
	remaining := p.ExpiresAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CheckCreatable guards payment creation before any upstream call is
// made. The order must still be payable and no pending or settled
// payment may exist for it.
func CheckCreatable(orderStatus order.Status, existing *Payment) error {
	if !orderStatus.IsPayable() {
		return shared.ErrOrderNotPayable
	}
	if existing != nil && existing.Status.Blocks() {
		return shared.ErrPaymentExists
	}
	return nil
}
