package commerce

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/velora/storefront/internal/domain/catalog"
	"github.com/velora/storefront/internal/domain/order"
	"github.com/velora/storefront/internal/domain/payment"
	"github.com/velora/storefront/internal/domain/shipment"
	"github.com/velora/storefront/internal/domain/shared/valueobject"
)

// The upstream returns prices as plain rupiah numbers
func moneyFromFloat(v float64) valueobject.Money {
	return valueobject.NewMoneyIDR(decimal.NewFromFloat(v))
}

type productDTO struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	Description string       `json:"description"`
	BasePrice   float64      `json:"base_price"`
	Weight      int          `json:"weight"`
	CategoryID  string       `json:"category_id"`
	Status      string       `json:"status"`
	IsActive    bool         `json:"is_active"`
	Images      string       `json:"images"`
	Variants    []variantDTO `json:"variants,omitempty"`
}

func (d productDTO) toDomain() catalog.Product {
	return catalog.Product{
		ID:          d.ID,
		Name:        d.Name,
		Slug:        d.Slug,
		Description: d.Description,
		BasePrice:   moneyFromFloat(d.BasePrice),
		Weight:      d.Weight,
		CategoryID:  d.CategoryID,
		Status:      catalog.ProductStatus(d.Status),
		Active:      d.IsActive,
		Images:      catalog.ParseImageList(d.Images),
	}
}

type variantDTO struct {
	ID            string   `json:"id"`
	ProductID     string   `json:"product_id"`
	SKU           string   `json:"sku"`
	Size          string   `json:"size"`
	Color         string   `json:"color"`
	Stock         int      `json:"stock"`
	PriceOverride *float64 `json:"price_override,omitempty"`
	IsActive      bool     `json:"is_active"`
}

func (d variantDTO) toDomain() catalog.Variant {
	v := catalog.Variant{
		ID:        d.ID,
		ProductID: d.ProductID,
		SKU:       d.SKU,
		Size:      d.Size,
		Color:     d.Color,
		Stock:     d.Stock,
		Active:    d.IsActive,
	}
	if d.PriceOverride != nil {
		m := moneyFromFloat(*d.PriceOverride)
		v.PriceOverride = &m
	}
	return v
}

type categoryDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	ParentID    *string `json:"parent_id,omitempty"`
	IsActive    bool    `json:"is_active"`
}

func (d categoryDTO) toDomain() catalog.Category {
	return catalog.Category{
		ID:          d.ID,
		Name:        d.Name,
		Slug:        d.Slug,
		Description: d.Description,
		ParentID:    d.ParentID,
		Active:      d.IsActive,
	}
}

type orderItemDTO struct {
	ProductID string  `json:"product_id"`
	VariantID string  `json:"variant_id"`
	Name      string  `json:"name"`
	SKU       string  `json:"sku"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

type orderDTO struct {
	ID            string         `json:"id"`
	OrderNumber   string         `json:"order_number"`
	Status        string         `json:"status"`
	OrderType     string         `json:"order_type"`
	RecipientName string         `json:"recipient_name"`
	Phone         string         `json:"phone"`
	AddressLine1  string         `json:"address_line1"`
	AddressLine2  string         `json:"address_line2"`
	City          string         `json:"city"`
	Province      string         `json:"province"`
	PostalCode    string         `json:"postal_code"`
	Subtotal      float64        `json:"subtotal"`
	ShippingCost  float64        `json:"shipping_cost"`
	Total         float64        `json:"total"`
	Notes         string         `json:"notes"`
	Items         []orderItemDTO `json:"items"`
	CreatedAt     time.Time      `json:"created_at"`
}

func (d orderDTO) toDomain() order.Order {
	items := make([]order.Item, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, order.Item{
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Name:      it.Name,
			SKU:       it.SKU,
			Size:      it.Size,
			Color:     it.Color,
			UnitPrice: moneyFromFloat(it.UnitPrice),
			Quantity:  it.Quantity,
		})
	}
	return order.Order{
		ID:            d.ID,
		OrderNumber:   d.OrderNumber,
		Status:        order.Status(d.Status),
		OrderType:     d.OrderType,
		RecipientName: d.RecipientName,
		Phone:         d.Phone,
		AddressLine1:  d.AddressLine1,
		AddressLine2:  d.AddressLine2,
		City:          d.City,
		Province:      d.Province,
		PostalCode:    d.PostalCode,
		Subtotal:      moneyFromFloat(d.Subtotal),
		ShippingCost:  moneyFromFloat(d.ShippingCost),
		Total:         moneyFromFloat(d.Total),
		Notes:         d.Notes,
		Items:         items,
		CreatedAt:     d.CreatedAt,
	}
}

type paymentDTO struct {
	ID            string    `json:"id"`
	OrderID       string    `json:"order_id"`
	Method        string    `json:"method"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transaction_id"`
	PaymentURL    string    `json:"payment_url"`
	Amount        float64   `json:"amount"`
	ExpiresAt     time.Time `json:"expires_at"`
	CreatedAt     time.Time `json:"created_at"`
}

func (d paymentDTO) toDomain() payment.Payment {
	return payment.Payment{
		ID:            d.ID,
		OrderID:       d.OrderID,
		Method:        d.Method,
		Status:        payment.Status(d.Status),
		TransactionID: d.TransactionID,
		PaymentURL:    d.PaymentURL,
		Amount:        moneyFromFloat(d.Amount),
		ExpiresAt:     d.ExpiresAt,
		CreatedAt:     d.CreatedAt,
	}
}

type trackingEventDTO struct {
	Note      string    `json:"note"`
	Location  string    `json:"location"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type shipmentDTO struct {
	ID              string             `json:"id"`
	OrderID         string             `json:"order_id"`
	Courier         string             `json:"courier"`
	Service         string             `json:"service"`
	TrackingNumber  string             `json:"tracking_number"`
	Cost            float64            `json:"cost"`
	Status          string             `json:"status"`
	BiteshipOrderID string             `json:"biteship_order_id"`
	History         []trackingEventDTO `json:"history"`
	CreatedAt       time.Time          `json:"created_at"`
}

func (d shipmentDTO) toDomain() shipment.Shipment {
	history := make([]shipment.TrackingEvent, 0, len(d.History))
	for _, ev := range d.History {
		history = append(history, shipment.TrackingEvent{
			Note:      ev.Note,
			Location:  ev.Location,
			Status:    ev.Status,
			Timestamp: ev.Timestamp,
		})
	}
	return shipment.Shipment{
		ID:              d.ID,
		OrderID:         d.OrderID,
		Courier:         d.Courier,
		Service:         d.Service,
		TrackingNumber:  d.TrackingNumber,
		Cost:            moneyFromFloat(d.Cost),
		Status:          shipment.Status(d.Status),
		BiteshipOrderID: d.BiteshipOrderID,
		History:         history,
		CreatedAt:       d.CreatedAt,
	}
}

// AuthResult is the upstream's login/register response
type AuthResult struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// User is the upstream's account record
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Page carries pagination echoes from list endpoints
type Page struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}
