package checkout

import "context"

// Repository is the state-access seam for checkout drafts and the
// shipping form prefill. The shipping draft outlives the checkout so a
// returning customer sees their last address pre-filled.
type Repository interface {
	// Load returns the session's in-flight checkout, nil when none exists
	Load(ctx context.Context, sessionID string) (*Checkout, error)
	// Save persists the in-flight checkout
	Save(ctx context.Context, sessionID string, c *Checkout) error
	// Clear removes the in-flight checkout
	Clear(ctx context.Context, sessionID string) error
	// LoadShippingDraft returns the saved shipping form, nil when none
	LoadShippingDraft(ctx context.Context, sessionID string) (*ShippingInfo, error)
	// SaveShippingDraft persists the shipping form for prefill
	SaveShippingDraft(ctx context.Context, sessionID string, info *ShippingInfo) error
}
