package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/velora/storefront/internal/domain/cart"
	"github.com/velora/storefront/internal/domain/order"
	"github.com/velora/storefront/internal/domain/payment"
	"github.com/velora/storefront/internal/domain/shared"
)

// maxPerSession caps the notices kept per session; older ones drop off
const maxPerSession = 50

// Tone classifies a notice for display
type Tone string

const (
	ToneInfo    Tone = "info"
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
)

// Notice is one entry in a session's notification feed
type Notice struct {
	ID        string    `json:"id"`
	Tone      Tone      `json:"tone"`
	Message   string    `json:"message"`
	EventType string    `json:"event_type"`
	CreatedAt time.Time `json:"created_at"`
}

// Center subscribes to the event bus and keeps a short per-session
// notification feed. Cross-instance events arrive through the bus
// relay, so every instance serves the same feed.
type Center struct {
	logger *zap.Logger

	mu       sync.Mutex
	sessions map[string][]Notice
}

// NewCenter creates a notification center
func NewCenter(logger *zap.Logger) *Center {
	return &Center{
		logger:   logger.Named("notification"),
		sessions: make(map[string][]Notice),
	}
}

// EventTypes lists the events the center turns into notices
func (c *Center) EventTypes() []string {
	return []string{
		cart.EventTypeStockLimitHit,
		order.EventTypeOrderPlaced,
		payment.EventTypePaymentSettled,
		payment.EventTypePaymentFailed,
	}
}

// Handle converts one event into a session notice
func (c *Center) Handle(ctx context.Context, event shared.DomainEvent) error {
	sessionID := event.SessionID()
	if sessionID == "" {
		return nil
	}

	notice := Notice{
		ID:        uuid.NewString(),
		EventType: event.EventType(),
		CreatedAt: event.OccurredAt(),
	}

	switch e := event.(type) {
	case *cart.StockLimitHitEvent:
		notice.Tone = ToneWarning
		notice.Message = fmt.Sprintf("Only %d in stock for this item", e.Stock)
	case *order.PlacedEvent:
		notice.Tone = ToneSuccess
		notice.Message = fmt.Sprintf("Order %s placed, total %s", e.OrderNumber, e.Total)
	case *payment.SettledEvent:
		notice.Tone = ToneSuccess
		notice.Message = "Payment confirmed, thank you!"
	case *payment.FailedEvent:
		notice.Tone = ToneDanger
		notice.Message = fmt.Sprintf("Payment %s, please try again", e.Status.Badge().Label)
	default:
		// Events relayed from another instance arrive untyped; the
		// feed still records them under their type.
		notice.Tone = toneFor(event.EventType())
		notice.Message = messageFor(event.EventType())
	}

	c.append(sessionID, notice)
	return nil
}

// List returns the session's notices, newest first
func (c *Center) List(sessionID string) []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := c.sessions[sessionID]
	out := make([]Notice, len(stored))
	for i, n := range stored {
		out[len(stored)-1-i] = n
	}
	return out
}

// Clear empties the session's feed
func (c *Center) Clear(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, sessionID)
}

func (c *Center) append(sessionID string, notice Notice) {
	c.mu.Lock()
	defer c.mu.Unlock()

	notices := append(c.sessions[sessionID], notice)
	if len(notices) > maxPerSession {
		notices = notices[len(notices)-maxPerSession:]
	}
	c.sessions[sessionID] = notices
}

func toneFor(eventType string) Tone {
	switch eventType {
	case cart.EventTypeStockLimitHit:
		return ToneWarning
	case payment.EventTypePaymentFailed:
		return ToneDanger
	case order.EventTypeOrderPlaced, payment.EventTypePaymentSettled:
		return ToneSuccess
	default:
		return ToneInfo
	}
}

func messageFor(eventType string) string {
	switch eventType {
	case cart.EventTypeStockLimitHit:
		return "Stock limit reached for a cart item"
	case order.EventTypeOrderPlaced:
		return "Your order was placed"
	case payment.EventTypePaymentSettled:
		return "Payment confirmed, thank you!"
	case payment.EventTypePaymentFailed:
		return "Payment did not complete, please try again"
	default:
		return "Something happened on your session"
	}
}

var _ shared.EventHandler = (*Center)(nil)
