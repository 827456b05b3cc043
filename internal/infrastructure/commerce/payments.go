package commerce

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/velora/storefront/internal/domain/payment"
	"github.com/velora/storefront/internal/domain/shared"
)

// CreatePaymentInput is the payment creation payload
type CreatePaymentInput struct {
	OrderID string `json:"order_id"`
	Method  string `json:"method"`
}

// GetPaymentForOrder fetches the latest payment for an order. A missing
// payment is not an error; it returns nil.
func (c *Client) GetPaymentForOrder(ctx context.Context, token, orderID string) (*payment.Payment, error) {
	var dto paymentDTO
	err := c.do(ctx, request{method: http.MethodGet, path: "/payments/order/" + url.PathEscape(orderID), token: token}, &dto)
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == "NOT_FOUND" {
			return nil, nil
		}
		return nil, err
	}

	p := dto.toDomain()
	return &p, nil
}

// CreatePayment starts a new payment attempt for an order
func (c *Client) CreatePayment(ctx context.Context, token string, in CreatePaymentInput) (payment.Payment, error) {
	var dto paymentDTO
	err := c.do(ctx, request{method: http.MethodPost, path: "/payments", token: token, body: in}, &dto)
	if err != nil {
		return payment.Payment{}, err
	}
	return dto.toDomain(), nil
}

// ListPayments fetches gateway transactions with filters (admin)
func (c *Client) ListPayments(ctx context.Context, token string, q ListQuery) ([]payment.Payment, error) {
	var dtos []paymentDTO
	err := c.do(ctx, request{method: http.MethodGet, path: "/payments", query: q.values(), token: token}, &dtos)
	if err != nil {
		return nil, err
	}

	payments := make([]payment.Payment, 0, len(dtos))
	for _, d := range dtos {
		payments = append(payments, d.toDomain())
	}
	return payments, nil
}

// RefundPayment requests a refund for a settled payment (admin)
func (c *Client) RefundPayment(ctx context.Context, token, paymentID string) (payment.Payment, error) {
	var dto paymentDTO
	err := c.do(ctx, request{method: http.MethodPost, path: "/payments/" + url.PathEscape(paymentID) + "/refund", token: token}, &dto)
	if err != nil {
		return payment.Payment{}, err
	}
	return dto.toDomain(), nil
}
