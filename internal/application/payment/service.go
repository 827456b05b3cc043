package payment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/velora/storefront/internal/domain/order"
	domainpayment "github.com/velora/storefront/internal/domain/payment"
	"github.com/velora/storefront/internal/domain/shared"
	"github.com/velora/storefront/internal/infrastructure/commerce"
)

// Gateway is the payment surface the service needs from the commerce
// client.
type Gateway interface {
	StatusFetcher
	GetOrder(ctx context.Context, token, id string) (order.Order, error)
	CreatePayment(ctx context.Context, token string, in commerce.CreatePaymentInput) (domainpayment.Payment, error)
}

// Service creates payment attempts and exposes their watched status
type Service struct {
	gateway   Gateway
	watcher   *Watcher
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewService creates a payment service
func NewService(gateway Gateway, watcher *Watcher, publisher shared.EventPublisher, logger *zap.Logger) *Service {
	return &Service{
		gateway:   gateway,
		watcher:   watcher,
		publisher: publisher,
		logger:    logger.Named("payment"),
	}
}

// View is the payment screen's state: the attempt, its badge and the
// countdown derived from expiry at read time.
type View struct {
	Payment          domainpayment.Payment `json:"payment"`
	Badge            shared.Badge          `json:"badge"`
	RemainingSeconds int                   `json:"remaining_seconds"`
	Watching         bool                  `json:"watching"`
}

func newView(p domainpayment.Payment, watching bool) *View {
	return &View{
		Payment:          p,
		Badge:            p.Status.Badge(),
		RemainingSeconds: int(p.RemainingTime(time.Now()).Seconds()),
		Watching:         watching,
	}
}

// Create starts a new payment attempt for an order. Eligibility is
// checked before the creation call goes out: a locally tracked pending
// or settled payment short-circuits without touching the network.
func (s *Service) Create(ctx context.Context, sessionID, token, orderID, method string) (*View, error) {
	if snap, ok := s.watcher.Snapshot(orderID); ok && snap.Status.Blocks() {
		return nil, shared.ErrPaymentExists
	}

	ord, err := s.gateway.GetOrder(ctx, token, orderID)
	if err != nil {
		return nil, err
	}
	existing, err := s.gateway.GetPaymentForOrder(ctx, token, orderID)
	if err != nil {
		return nil, err
	}
	if err := domainpayment.CheckCreatable(ord.Status, existing); err != nil {
		return nil, err
	}

	created, err := s.gateway.CreatePayment(ctx, token, commerce.CreatePaymentInput{
		OrderID: orderID,
		Method:  method,
	})
	if err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(ctx, domainpayment.NewCreatedEvent(sessionID, &created)); err != nil {
		s.logger.Warn("failed to publish payment created event", zap.Error(err))
	}
	s.watcher.Watch(sessionID, token, created)
	return newView(created, !created.Status.IsTerminal()), nil
}

// Status returns the current payment state for an order. A pending
// payment found upstream without a local task resumes watching, so a
// restarted gateway picks up in-flight payments on the next read.
func (s *Service) Status(ctx context.Context, sessionID, token, orderID string) (*View, error) {
	if snap, ok := s.watcher.Snapshot(orderID); ok {
		return newView(snap, !snap.Status.IsTerminal()), nil
	}

	p, err := s.gateway.GetPaymentForOrder(ctx, token, orderID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, shared.ErrNotFound
	}

	watching := false
	if !p.Status.IsTerminal() {
		s.watcher.Watch(sessionID, token, *p)
		watching = true
	}
	return newView(*p, watching), nil
}

// Cancel stops watching an order's payment. The upstream attempt keeps
// its own lifecycle; only the local task is dropped.
func (s *Service) Cancel(orderID string) {
	s.watcher.Unwatch(orderID)
}
