package cart

import "context"

// Repository is the typed state-access seam for session carts. Every
// read and write of cart state goes through here; nothing touches the
// underlying store directly.
type Repository interface {
	// Load returns the session's cart, or an empty cart when none is stored
	Load(ctx context.Context, sessionID string) (*Cart, error)
	// Save persists the full cart for the session
	Save(ctx context.Context, sessionID string, c *Cart) error
	// LoadSelection returns the session's checkout subset, empty when none
	LoadSelection(ctx context.Context, sessionID string) (*Selection, error)
	// SaveSelection persists the checkout subset under its own key
	SaveSelection(ctx context.Context, sessionID string, s *Selection) error
	// ClearSelection removes the checkout subset
	ClearSelection(ctx context.Context, sessionID string) error
}
