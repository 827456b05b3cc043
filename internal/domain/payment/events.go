package payment

import "github.com/velora/storefront/internal/domain/shared"

// Event types published by the payment watcher
const (
	EventTypePaymentCreated = "payment.created"
	EventTypePaymentSettled = "payment.settled"
	EventTypePaymentFailed  = "payment.failed"
)

// CreatedEvent announces a new payment attempt for an order
type CreatedEvent struct {
	shared.BaseDomainEvent
	PaymentID string `json:"payment_id"`
	OrderID   string `json:"order_id"`
	Method    string `json:"method"`
}

// NewCreatedEvent creates a CreatedEvent for a session
func NewCreatedEvent(sessionID string, p *Payment) *CreatedEvent {
	return &CreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentCreated, sessionID),
		PaymentID:       p.ID,
		OrderID:         p.OrderID,
		Method:          p.Method,
	}
}

// SettledEvent announces that the gateway confirmed a payment
type SettledEvent struct {
	shared.BaseDomainEvent
	PaymentID string `json:"payment_id"`
	OrderID   string `json:"order_id"`
}

// NewSettledEvent creates a SettledEvent for a session
func NewSettledEvent(sessionID string, p *Payment) *SettledEvent {
	return &SettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentSettled, sessionID),
		PaymentID:       p.ID,
		OrderID:         p.OrderID,
	}
}

// FailedEvent announces a payment that expired, was cancelled or denied
type FailedEvent struct {
	shared.BaseDomainEvent
	PaymentID string `json:"payment_id"`
	OrderID   string `json:"order_id"`
	Status    Status `json:"status"`
}

// NewFailedEvent creates a FailedEvent for a session
func NewFailedEvent(sessionID string, p *Payment) *FailedEvent {
	return &FailedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentFailed, sessionID),
		PaymentID:       p.ID,
		OrderID:         p.OrderID,
		Status:          p.Status,
	}
}
