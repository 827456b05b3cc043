package payment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainpayment "github.com/velora/storefront/internal/domain/payment"
	"github.com/velora/storefront/internal/domain/shared"
	"github.com/velora/storefront/internal/infrastructure/config"
)

type fakeFetcher struct {
	mu      sync.Mutex
	payment *domainpayment.Payment
	err     error
	calls   int
}

func (f *fakeFetcher) GetPaymentForOrder(ctx context.Context, token, orderID string) (*domainpayment.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.payment == nil {
		return nil, nil
	}
	p := *f.payment
	return &p, nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeFetcher) setPayment(p domainpayment.Payment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payment = &p
}

type safePublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (p *safePublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *safePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

func pendingPayment(id, orderID string, expiresIn time.Duration) domainpayment.Payment {
	return domainpayment.Payment{
		ID:        id,
		OrderID:   orderID,
		Method:    "qris",
		Status:    domainpayment.StatusPending,
		ExpiresAt: time.Now().Add(expiresIn),
	}
}

func watcherConfig(interval, tick time.Duration) config.PaymentConfig {
	return config.PaymentConfig{
		PollInterval:  interval,
		CountdownTick: tick,
		SettleLinger:  time.Minute,
	}
}

func TestWatcherStopsOnSettlement(t *testing.T) {
	fetcher := &fakeFetcher{}
	settled := pendingPayment("pay-1", "o1", time.Hour)
	settled.Status = domainpayment.StatusSettlement
	fetcher.setPayment(settled)

	pub := &safePublisher{}
	w := NewWatcher(fetcher, pub, watcherConfig(10*time.Millisecond, time.Hour), zap.NewNop())
	defer w.Stop()

	w.Watch("sess-1", "tok", pendingPayment("pay-1", "o1", time.Hour))

	require.Eventually(t, func() bool {
		return fetcher.callCount() >= 1
	}, time.Second, 5*time.Millisecond)

	// no further polls fire once the status left PENDING
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, fetcher.callCount())
	assert.Contains(t, pub.types(), domainpayment.EventTypePaymentSettled)

	snap, ok := w.Snapshot("o1")
	require.True(t, ok)
	assert.Equal(t, domainpayment.StatusSettlement, snap.Status)
}

func TestWatcherPublishesFailureOnExpire(t *testing.T) {
	fetcher := &fakeFetcher{}
	expired := pendingPayment("pay-1", "o1", time.Hour)
	expired.Status = domainpayment.StatusExpire
	fetcher.setPayment(expired)

	pub := &safePublisher{}
	w := NewWatcher(fetcher, pub, watcherConfig(10*time.Millisecond, time.Hour), zap.NewNop())
	defer w.Stop()

	w.Watch("sess-1", "tok", pendingPayment("pay-1", "o1", time.Hour))

	require.Eventually(t, func() bool {
		for _, typ := range pub.types() {
			if typ == domainpayment.EventTypePaymentFailed {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)
}

func TestWatcherIgnoresNewerPayment(t *testing.T) {
	fetcher := &fakeFetcher{}
	fetcher.setPayment(pendingPayment("pay-2", "o1", time.Hour))

	pub := &safePublisher{}
	w := NewWatcher(fetcher, pub, watcherConfig(10*time.Millisecond, time.Hour), zap.NewNop())
	defer w.Stop()

	// the task was started for pay-1; upstream now reports pay-2
	w.Watch("sess-1", "tok", pendingPayment("pay-1", "o1", time.Hour))

	require.Eventually(t, func() bool {
		return fetcher.callCount() >= 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, fetcher.callCount())
	assert.Empty(t, pub.types())
}

func TestWatcherCountdownZeroTriggersOneExtraCheck(t *testing.T) {
	fetcher := &fakeFetcher{}
	fetcher.setPayment(pendingPayment("pay-1", "o1", -time.Second))

	pub := &safePublisher{}
	// poll interval far away; only the countdown tick can trigger a check
	w := NewWatcher(fetcher, pub, watcherConfig(time.Hour, 10*time.Millisecond), zap.NewNop())
	defer w.Stop()

	w.Watch("sess-1", "tok", pendingPayment("pay-1", "o1", -time.Second))

	require.Eventually(t, func() bool {
		return fetcher.callCount() >= 1
	}, time.Second, 5*time.Millisecond)

	// the extra check fires once, not on every tick
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, fetcher.callCount())
}

func TestWatcherReplacesTaskForOrder(t *testing.T) {
	fetcher := &fakeFetcher{}
	fetcher.setPayment(pendingPayment("pay-2", "o1", time.Hour))

	pub := &safePublisher{}
	w := NewWatcher(fetcher, pub, watcherConfig(time.Hour, time.Hour), zap.NewNop())
	defer w.Stop()

	w.Watch("sess-1", "tok", pendingPayment("pay-1", "o1", time.Hour))
	w.Watch("sess-1", "tok", pendingPayment("pay-2", "o1", time.Hour))

	snap, ok := w.Snapshot("o1")
	require.True(t, ok)
	assert.Equal(t, "pay-2", snap.ID)
}

func TestWatcherUnwatch(t *testing.T) {
	fetcher := &fakeFetcher{}
	pub := &safePublisher{}
	w := NewWatcher(fetcher, pub, watcherConfig(time.Hour, time.Hour), zap.NewNop())
	defer w.Stop()

	w.Watch("sess-1", "tok", pendingPayment("pay-1", "o1", time.Hour))
	w.Unwatch("o1")

	_, ok := w.Snapshot("o1")
	assert.False(t, ok)
}
