package commerce

import (
	"context"
	"net/http"
	"net/url"

	"github.com/velora/storefront/internal/domain/shipment"
)

// CreateShipmentInput is the shipment creation payload (admin)
type CreateShipmentInput struct {
	OrderID string  `json:"order_id"`
	Courier string  `json:"courier"`
	Service string  `json:"service"`
	Cost    float64 `json:"cost"`
}

// TrackByOrder fetches the shipment for an order with courier history
func (c *Client) TrackByOrder(ctx context.Context, token, orderID string) (shipment.Shipment, error) {
	var dto shipmentDTO
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/shipments/order/" + url.PathEscape(orderID) + "/track",
		token:  token,
	}, &dto)
	if err != nil {
		return shipment.Shipment{}, err
	}
	return dto.toDomain(), nil
}

// CreateShipment books a shipment for an order (admin)
func (c *Client) CreateShipment(ctx context.Context, token string, in CreateShipmentInput) (shipment.Shipment, error) {
	var dto shipmentDTO
	err := c.do(ctx, request{method: http.MethodPost, path: "/shipments", token: token, body: in}, &dto)
	if err != nil {
		return shipment.Shipment{}, err
	}
	return dto.toDomain(), nil
}

// UpdateShipmentStatus moves a shipment along its lifecycle (admin)
func (c *Client) UpdateShipmentStatus(ctx context.Context, token, id string, status shipment.Status) (shipment.Shipment, error) {
	var dto shipmentDTO
	body := map[string]string{"status": string(status)}
	err := c.do(ctx, request{method: http.MethodPut, path: "/shipments/" + url.PathEscape(id) + "/status", token: token, body: body}, &dto)
	if err != nil {
		return shipment.Shipment{}, err
	}
	return dto.toDomain(), nil
}

// GetTracking fetches the courier checkpoint history for a shipment
func (c *Client) GetTracking(ctx context.Context, token, id string) ([]shipment.TrackingEvent, error) {
	var dtos []trackingEventDTO
	err := c.do(ctx, request{method: http.MethodGet, path: "/shipments/" + url.PathEscape(id) + "/tracking", token: token}, &dtos)
	if err != nil {
		return nil, err
	}

	events := make([]shipment.TrackingEvent, 0, len(dtos))
	for _, d := range dtos {
		events = append(events, shipment.TrackingEvent{
			Note:      d.Note,
			Location:  d.Location,
			Status:    d.Status,
			Timestamp: d.Timestamp,
		})
	}
	return events, nil
}
