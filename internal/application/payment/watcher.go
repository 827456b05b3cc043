package payment

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	domainpayment "github.com/velora/storefront/internal/domain/payment"
	"github.com/velora/storefront/internal/domain/shared"
	"github.com/velora/storefront/internal/infrastructure/config"
)

// StatusFetcher re-reads the latest payment for an order upstream
type StatusFetcher interface {
	GetPaymentForOrder(ctx context.Context, token, orderID string) (*domainpayment.Payment, error)
}

// Watcher tracks pending payments with one cancellable polling task per
// order. Starting a watch replaces any previous task for the same order
// before the new one is registered; each task is pinned to the payment
// id it was started with, so a stale task can never act on a newer
// payment. Once a status leaves PENDING the task issues no further
// polls.
type Watcher struct {
	fetcher   StatusFetcher
	publisher shared.EventPublisher
	interval  time.Duration
	tick      time.Duration
	linger    time.Duration
	logger    *zap.Logger

	mu    sync.Mutex
	tasks map[string]*watchTask

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type watchTask struct {
	orderID   string
	paymentID string
	sessionID string
	token     string
	cancel    context.CancelFunc

	mu          sync.Mutex
	current     domainpayment.Payment
	zeroChecked bool
}

func (t *watchTask) snapshot() domainpayment.Payment {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

func (t *watchTask) update(p domainpayment.Payment) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = p
}

// NewWatcher creates a payment watcher
func NewWatcher(fetcher StatusFetcher, publisher shared.EventPublisher, cfg config.PaymentConfig, logger *zap.Logger) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		fetcher:   fetcher,
		publisher: publisher,
		interval:  cfg.PollInterval,
		tick:      cfg.CountdownTick,
		linger:    cfg.SettleLinger,
		logger:    logger.Named("payment-watcher"),
		tasks:     make(map[string]*watchTask),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Watch starts tracking a payment. Any existing task for the order is
// cancelled first. Payments already past PENDING are recorded but not
// polled.
func (w *Watcher) Watch(sessionID, token string, p domainpayment.Payment) {
	w.mu.Lock()
	if prev, ok := w.tasks[p.OrderID]; ok {
		prev.cancel()
	}

	taskCtx, taskCancel := context.WithCancel(w.ctx)
	task := &watchTask{
		orderID:   p.OrderID,
		paymentID: p.ID,
		sessionID: sessionID,
		token:     token,
		cancel:    taskCancel,
		current:   p,
	}
	w.tasks[p.OrderID] = task
	w.mu.Unlock()

	if p.Status.IsTerminal() {
		taskCancel()
		w.expireSnapshot(task)
		return
	}

	w.wg.Add(1)
	go w.run(taskCtx, task)
}

// Snapshot returns the last known payment for an order, if any task is
// (or recently was) tracking it.
func (w *Watcher) Snapshot(orderID string) (domainpayment.Payment, bool) {
	w.mu.Lock()
	task, ok := w.tasks[orderID]
	w.mu.Unlock()
	if !ok {
		return domainpayment.Payment{}, false
	}
	return task.snapshot(), true
}

// Unwatch cancels the task for an order, if any
func (w *Watcher) Unwatch(orderID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if task, ok := w.tasks[orderID]; ok {
		task.cancel()
		delete(w.tasks, orderID)
	}
}

// Stop cancels every task and waits for them to finish
func (w *Watcher) Stop() {
	w.cancel()
	w.wg.Wait()
}

func (w *Watcher) run(ctx context.Context, task *watchTask) {
	defer w.wg.Done()

	poll := time.NewTicker(w.interval)
	defer poll.Stop()
	countdown := time.NewTicker(w.tick)
	defer countdown.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-poll.C:
			if done := w.check(ctx, task); done {
				return
			}
		case <-countdown.C:
			// The countdown is display state derived from expiry. When
			// it hits zero while still locally PENDING, one extra check
			// fires; the upstream owns the actual expiry decision.
			current := task.snapshot()
			if current.RemainingTime(time.Now()) > 0 || current.Status != domainpayment.StatusPending {
				continue
			}
			task.mu.Lock()
			alreadyChecked := task.zeroChecked
			task.zeroChecked = true
			task.mu.Unlock()
			if alreadyChecked {
				continue
			}
			if done := w.check(ctx, task); done {
				return
			}
		}
	}
}

// check re-fetches the payment once. It returns true when the task is
// finished and must stop polling.
func (w *Watcher) check(ctx context.Context, task *watchTask) bool {
	p, err := w.fetcher.GetPaymentForOrder(ctx, task.token, task.orderID)
	if err != nil {
		if ctx.Err() != nil {
			return true
		}
		w.logger.Warn("payment status poll failed",
			zap.String("order_id", task.orderID),
			zap.Error(err))
		return false
	}
	if p == nil || p.ID != task.paymentID {
		// A newer payment replaced the one this task was started for.
		return true
	}

	task.update(*p)
	if !p.Status.IsTerminal() {
		return false
	}

	switch {
	case p.Status == domainpayment.StatusSettlement:
		w.publish(ctx, domainpayment.NewSettledEvent(task.sessionID, p))
	case p.Status.IsFailed():
		w.publish(ctx, domainpayment.NewFailedEvent(task.sessionID, p))
	}
	w.expireSnapshot(task)
	return true
}

// expireSnapshot keeps the terminal snapshot readable for a short
// window, then drops the task.
func (w *Watcher) expireSnapshot(task *watchTask) {
	time.AfterFunc(w.linger, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if current, ok := w.tasks[task.orderID]; ok && current == task {
			delete(w.tasks, task.orderID)
		}
	})
}

func (w *Watcher) publish(ctx context.Context, event shared.DomainEvent) {
	if err := w.publisher.Publish(ctx, event); err != nil {
		w.logger.Warn("failed to publish payment event", zap.Error(err))
	}
}
