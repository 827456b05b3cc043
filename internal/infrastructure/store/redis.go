package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is the primary SessionStore. Each session key maps to one
// Redis key carrying the session TTL, so an idle session ages out as a
// whole.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) redisKey(sessionID, key string) string {
	return fmt.Sprintf("session:%s:%s", sessionID, key)
}

// Get implements SessionStore
func (s *RedisStore) Get(ctx context.Context, sessionID, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.redisKey(sessionID, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: redis get: %w", err)
	}
	return value, nil
}

// Set implements SessionStore
func (s *RedisStore) Set(ctx context.Context, sessionID, key string, value []byte) error {
	if err := s.client.Set(ctx, s.redisKey(sessionID, key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("store: redis set: %w", err)
	}
	return nil
}

// Delete implements SessionStore
func (s *RedisStore) Delete(ctx context.Context, sessionID, key string) error {
	if err := s.client.Del(ctx, s.redisKey(sessionID, key)).Err(); err != nil {
		return fmt.Errorf("store: redis delete: %w", err)
	}
	return nil
}

var _ SessionStore = (*RedisStore)(nil)
