package commerce

import (
	"context"
	"net/http"
	"net/url"

	"github.com/velora/storefront/internal/domain/order"
)

// OrderItemInput is one line of an order creation payload
type OrderItemInput struct {
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderInput is the order creation payload
type CreateOrderInput struct {
	Items         []OrderItemInput `json:"items"`
	OrderType     string           `json:"order_type"`
	Notes         string           `json:"notes"`
	RecipientName string           `json:"recipient_name"`
	Phone         string           `json:"phone"`
	AddressLine1  string           `json:"address_line1"`
	AddressLine2  string           `json:"address_line2"`
	City          string           `json:"city"`
	Province      string           `json:"province"`
	PostalCode    string           `json:"postal_code"`
	ShippingCost  float64          `json:"shipping_cost"`
}

// ListOrders fetches the caller's orders
func (c *Client) ListOrders(ctx context.Context, token string, q ListQuery) ([]order.Order, error) {
	var dtos []orderDTO
	err := c.do(ctx, request{method: http.MethodGet, path: "/orders", query: q.values(), token: token}, &dtos)
	if err != nil {
		return nil, err
	}
	return ordersToDomain(dtos), nil
}

// ListAllOrders fetches every order across customers (admin)
func (c *Client) ListAllOrders(ctx context.Context, token string, q ListQuery) ([]order.Order, error) {
	var dtos []orderDTO
	err := c.do(ctx, request{method: http.MethodGet, path: "/orders/admin/all", query: q.values(), token: token}, &dtos)
	if err != nil {
		return nil, err
	}
	return ordersToDomain(dtos), nil
}

// GetOrder fetches one order
func (c *Client) GetOrder(ctx context.Context, token, id string) (order.Order, error) {
	var dto orderDTO
	err := c.do(ctx, request{method: http.MethodGet, path: "/orders/" + url.PathEscape(id), token: token}, &dto)
	if err != nil {
		return order.Order{}, err
	}
	return dto.toDomain(), nil
}

// CreateOrder creates an order from checkout
func (c *Client) CreateOrder(ctx context.Context, token string, in CreateOrderInput) (order.Order, error) {
	var dto orderDTO
	err := c.do(ctx, request{method: http.MethodPost, path: "/orders", token: token, body: in}, &dto)
	if err != nil {
		return order.Order{}, err
	}
	return dto.toDomain(), nil
}

func ordersToDomain(dtos []orderDTO) []order.Order {
	orders := make([]order.Order, 0, len(dtos))
	for _, d := range dtos {
		orders = append(orders, d.toDomain())
	}
	return orders
}
