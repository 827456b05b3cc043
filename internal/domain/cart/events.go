package cart

import "github.com/velora/storefront/internal/domain/shared"

// Event types published by cart mutations
const (
	EventTypeCartChanged   = "cart.changed"
	EventTypeStockLimitHit = "cart.stock_limit_hit"
)

// CartChangedEvent fans out after every successful cart mutation so
// other consumers (badge endpoint, other instances) re-read without a
// full refetch.
type CartChangedEvent struct {
	shared.BaseDomainEvent
	LineCount  int `json:"line_count"`
	TotalUnits int `json:"total_units"`
}

// NewCartChangedEvent creates a CartChangedEvent for a session
func NewCartChangedEvent(sessionID string, c *Cart) *CartChangedEvent {
	return &CartChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartChanged, sessionID),
		LineCount:       c.LineCount(),
		TotalUnits:      c.TotalUnits(),
	}
}

// StockLimitHitEvent records a rejected attempt to exceed a variant's
// stock ceiling; the notification stream turns it into a user notice.
type StockLimitHitEvent struct {
	shared.BaseDomainEvent
	VariantID string `json:"variant_id"`
	Stock     int    `json:"stock"`
}

// NewStockLimitHitEvent creates a StockLimitHitEvent for a session
func NewStockLimitHitEvent(sessionID, variantID string, stock int) *StockLimitHitEvent {
	return &StockLimitHitEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockLimitHit, sessionID),
		VariantID:       variantID,
		Stock:           stock,
	}
}
