package store

import (
	"context"
	"errors"
	"sync"
)

// ErrKeyNotFound is returned when a session has no value under a key
var ErrKeyNotFound = errors.New("store: key not found")

// Well-known session keys. Every piece of per-session state lives under
// one of these; nothing reads or writes the backing store directly.
const (
	KeyCart          = "cart"
	KeyCheckoutItems = "checkout_items"
	KeyCheckoutDraft = "checkout_draft"
	KeyShippingInfo  = "shipping_info"
	KeyAuth          = "auth"
	KeyImageMapBase  = "images" // per-product: images:<productID>
)

// SessionStore is the low-level keyed state store for sessions. Values
// are opaque bytes; the typed repositories own the encoding.
type SessionStore interface {
	// Get returns the value under key, or ErrKeyNotFound
	Get(ctx context.Context, sessionID, key string) ([]byte, error)
	// Set writes the value under key, refreshing the session TTL
	Set(ctx context.Context, sessionID, key string, value []byte) error
	// Delete removes the value under key; missing keys are not an error
	Delete(ctx context.Context, sessionID, key string) error
}

// MemoryStore is a map-backed SessionStore for tests and single-node
// development runs.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string][]byte
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string][]byte)}
}

// Get implements SessionStore
func (s *MemoryStore) Get(ctx context.Context, sessionID, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.data[sessionID]
	if !ok {
		return nil, ErrKeyNotFound
	}
	value, ok := session[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

// Set implements SessionStore
func (s *MemoryStore) Set(ctx context.Context, sessionID, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.data[sessionID]
	if !ok {
		session = make(map[string][]byte)
		s.data[sessionID] = session
	}
	session[key] = append([]byte(nil), value...)
	return nil
}

// Delete implements SessionStore
func (s *MemoryStore) Delete(ctx context.Context, sessionID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.data[sessionID]; ok {
		delete(session, key)
	}
	return nil
}

var _ SessionStore = (*MemoryStore)(nil)
