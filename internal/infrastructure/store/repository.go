package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/velora/storefront/internal/domain/cart"
	"github.com/velora/storefront/internal/domain/checkout"
)

// CartRepository implements cart.Repository over a SessionStore
type CartRepository struct {
	store SessionStore
}

// NewCartRepository creates a cart repository
func NewCartRepository(store SessionStore) *CartRepository {
	return &CartRepository{store: store}
}

// Load returns the session's cart, or an empty cart when none is stored
func (r *CartRepository) Load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	raw, err := r.store.Get(ctx, sessionID, KeyCart)
	if errors.Is(err, ErrKeyNotFound) {
		return cart.New(), nil
	}
	if err != nil {
		return nil, err
	}

	var c cart.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("store: decode cart: %w", err)
	}
	return &c, nil
}

// Save persists the full cart for the session
func (r *CartRepository) Save(ctx context.Context, sessionID string, c *cart.Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("store: encode cart: %w", err)
	}
	return r.store.Set(ctx, sessionID, KeyCart, raw)
}

// LoadSelection returns the session's checkout subset, empty when none
func (r *CartRepository) LoadSelection(ctx context.Context, sessionID string) (*cart.Selection, error) {
	raw, err := r.store.Get(ctx, sessionID, KeyCheckoutItems)
	if errors.Is(err, ErrKeyNotFound) {
		return cart.NewSelection(), nil
	}
	if err != nil {
		return nil, err
	}

	var s cart.Selection
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("store: decode selection: %w", err)
	}
	return &s, nil
}

// SaveSelection persists the checkout subset under its own key
func (r *CartRepository) SaveSelection(ctx context.Context, sessionID string, s *cart.Selection) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("store: encode selection: %w", err)
	}
	return r.store.Set(ctx, sessionID, KeyCheckoutItems, raw)
}

// ClearSelection removes the checkout subset
func (r *CartRepository) ClearSelection(ctx context.Context, sessionID string) error {
	return r.store.Delete(ctx, sessionID, KeyCheckoutItems)
}

var _ cart.Repository = (*CartRepository)(nil)

// CheckoutRepository implements checkout.Repository over a SessionStore
type CheckoutRepository struct {
	store SessionStore
}

// NewCheckoutRepository creates a checkout repository
func NewCheckoutRepository(store SessionStore) *CheckoutRepository {
	return &CheckoutRepository{store: store}
}

// Load returns the session's in-flight checkout, nil when none exists
func (r *CheckoutRepository) Load(ctx context.Context, sessionID string) (*checkout.Checkout, error) {
	raw, err := r.store.Get(ctx, sessionID, KeyCheckoutDraft)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var c checkout.Checkout
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("store: decode checkout: %w", err)
	}
	return &c, nil
}

// Save persists the in-flight checkout
func (r *CheckoutRepository) Save(ctx context.Context, sessionID string, c *checkout.Checkout) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("store: encode checkout: %w", err)
	}
	return r.store.Set(ctx, sessionID, KeyCheckoutDraft, raw)
}

// Clear removes the in-flight checkout
func (r *CheckoutRepository) Clear(ctx context.Context, sessionID string) error {
	return r.store.Delete(ctx, sessionID, KeyCheckoutDraft)
}

// LoadShippingDraft returns the saved shipping form, nil when none
func (r *CheckoutRepository) LoadShippingDraft(ctx context.Context, sessionID string) (*checkout.ShippingInfo, error) {
	raw, err := r.store.Get(ctx, sessionID, KeyShippingInfo)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var info checkout.ShippingInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("store: decode shipping draft: %w", err)
	}
	return &info, nil
}

// SaveShippingDraft persists the shipping form for prefill
func (r *CheckoutRepository) SaveShippingDraft(ctx context.Context, sessionID string, info *checkout.ShippingInfo) error {
	raw, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("store: encode shipping draft: %w", err)
	}
	return r.store.Set(ctx, sessionID, KeyShippingInfo, raw)
}

var _ checkout.Repository = (*CheckoutRepository)(nil)

// AuthState is the session's upstream credentials and account snapshot
type AuthState struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

// AuthRepository stores the session's upstream auth state
type AuthRepository struct {
	store SessionStore
}

// NewAuthRepository creates an auth repository
func NewAuthRepository(store SessionStore) *AuthRepository {
	return &AuthRepository{store: store}
}

// Load returns the session's auth state, nil when signed out
func (r *AuthRepository) Load(ctx context.Context, sessionID string) (*AuthState, error) {
	raw, err := r.store.Get(ctx, sessionID, KeyAuth)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var state AuthState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("store: decode auth state: %w", err)
	}
	return &state, nil
}

// Save persists the session's auth state
func (r *AuthRepository) Save(ctx context.Context, sessionID string, state *AuthState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("store: encode auth state: %w", err)
	}
	return r.store.Set(ctx, sessionID, KeyAuth, raw)
}

// Clear signs the session out
func (r *AuthRepository) Clear(ctx context.Context, sessionID string) error {
	return r.store.Delete(ctx, sessionID, KeyAuth)
}

// ImageMapRepository stores per-product color-to-image associations so
// picking a color swaps the displayed photo without a refetch.
type ImageMapRepository struct {
	store SessionStore
}

// NewImageMapRepository creates an image map repository
func NewImageMapRepository(store SessionStore) *ImageMapRepository {
	return &ImageMapRepository{store: store}
}

func imageMapKey(productID string) string {
	return KeyImageMapBase + ":" + productID
}

// Load returns the color-to-image map for a product, empty when none
func (r *ImageMapRepository) Load(ctx context.Context, sessionID, productID string) (map[string]string, error) {
	raw, err := r.store.Get(ctx, sessionID, imageMapKey(productID))
	if errors.Is(err, ErrKeyNotFound) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}

	var m map[string]string
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("store: decode image map: %w", err)
	}
	return m, nil
}

// Save persists the color-to-image map for a product
func (r *ImageMapRepository) Save(ctx context.Context, sessionID, productID string, m map[string]string) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("store: encode image map: %w", err)
	}
	return r.store.Set(ctx, sessionID, imageMapKey(productID), raw)
}
