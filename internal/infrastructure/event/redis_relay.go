package event

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/velora/storefront/internal/domain/shared"
)

// DefaultChannel is the Redis pub/sub channel carrying session events
const DefaultChannel = "storefront:events"

// Envelope is the wire form of a domain event on the Redis channel
type Envelope struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	SessionID  string          `json:"session_id"`
	OccurredAt time.Time       `json:"occurred_at"`
	Origin     string          `json:"origin"`
	Payload    json.RawMessage `json:"payload"`
}

// RemoteEvent is a domain event received from another instance. The
// payload stays raw; subscribers that care decode it themselves.
type RemoteEvent struct {
	id         uuid.UUID
	eventType  string
	sessionID  string
	occurredAt time.Time
	Payload    json.RawMessage
}

func (e *RemoteEvent) EventID() uuid.UUID    { return e.id }
func (e *RemoteEvent) EventType() string     { return e.eventType }
func (e *RemoteEvent) OccurredAt() time.Time { return e.occurredAt }
func (e *RemoteEvent) SessionID() string     { return e.sessionID }

// RedisRelay wraps an inner bus and mirrors every published event onto
// a Redis channel, so a session's cart-changed and payment events reach
// every gateway instance, not just the one that handled the request.
type RedisRelay struct {
	client  *redis.Client
	inner   shared.EventBus
	logger  *zap.Logger
	origin  string
	channel string
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewRedisRelay creates a relay over the given inner bus
func NewRedisRelay(client *redis.Client, inner shared.EventBus, logger *zap.Logger) *RedisRelay {
	return &RedisRelay{
		client:  client,
		inner:   inner,
		logger:  logger,
		origin:  uuid.NewString(),
		channel: DefaultChannel,
	}
}

// Publish dispatches locally first, then mirrors to Redis. A failed
// mirror is logged, never fatal; local subscribers already ran.
func (r *RedisRelay) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	if err := r.inner.Publish(ctx, events...); err != nil {
		return err
	}

	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			r.logger.Error("failed to serialize event for relay",
				zap.String("event_type", evt.EventType()),
				zap.Error(err),
			)
			continue
		}
		env := Envelope{
			EventID:    evt.EventID().String(),
			EventType:  evt.EventType(),
			SessionID:  evt.SessionID(),
			OccurredAt: evt.OccurredAt(),
			Origin:     r.origin,
			Payload:    payload,
		}
		data, err := json.Marshal(env)
		if err != nil {
			continue
		}
		if err := r.client.Publish(ctx, r.channel, data).Err(); err != nil {
			r.logger.Warn("failed to relay event to redis",
				zap.String("event_type", evt.EventType()),
				zap.Error(err),
			)
		}
	}
	return nil
}

// Subscribe registers a handler on the inner bus
func (r *RedisRelay) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	r.inner.Subscribe(handler, eventTypes...)
}

// Unsubscribe removes a handler from the inner bus
func (r *RedisRelay) Unsubscribe(handler shared.EventHandler) {
	r.inner.Unsubscribe(handler)
}

// Start begins consuming the Redis channel. Events originating from
// this instance are skipped; they already ran locally.
func (r *RedisRelay) Start(ctx context.Context) error {
	if err := r.inner.Start(ctx); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	pubsub := r.client.Subscribe(runCtx, r.channel)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-runCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				r.handleMessage(runCtx, msg.Payload)
			}
		}
	}()

	r.logger.Info("redis event relay started", zap.String("channel", r.channel))
	return nil
}

// Stop shuts down the relay consumer and the inner bus
func (r *RedisRelay) Stop(ctx context.Context) error {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
	return r.inner.Stop(ctx)
}

func (r *RedisRelay) handleMessage(ctx context.Context, raw string) {
	var env Envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		r.logger.Warn("dropping malformed relay message", zap.Error(err))
		return
	}
	if env.Origin == r.origin {
		return
	}

	id, err := uuid.Parse(env.EventID)
	if err != nil {
		id = uuid.New()
	}
	remote := &RemoteEvent{
		id:         id,
		eventType:  env.EventType,
		sessionID:  env.SessionID,
		occurredAt: env.OccurredAt,
		Payload:    env.Payload,
	}
	if err := r.inner.Publish(ctx, remote); err != nil {
		r.logger.Error("failed to dispatch relayed event", zap.Error(err))
	}
}

var _ shared.EventBus = (*RedisRelay)(nil)
