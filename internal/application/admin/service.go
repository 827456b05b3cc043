package admin

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/velora/storefront/internal/domain/catalog"
	"github.com/velora/storefront/internal/domain/order"
	"github.com/velora/storefront/internal/domain/payment"
	"github.com/velora/storefront/internal/domain/shipment"
	"github.com/velora/storefront/internal/infrastructure/commerce"
)

// Commerce is the admin write surface of the commerce client
type Commerce interface {
	GetProduct(ctx context.Context, id string) (catalog.Product, []catalog.Variant, error)
	ListProducts(ctx context.Context, q commerce.ListQuery) ([]catalog.Product, error)
	CreateProduct(ctx context.Context, token string, in commerce.ProductInput) (catalog.Product, error)
	UpdateProduct(ctx context.Context, token, id string, in commerce.ProductInput) (catalog.Product, error)
	DeleteProduct(ctx context.Context, token, id string) error
	CreateVariant(ctx context.Context, token, productID string, in commerce.VariantInput) (catalog.Variant, error)

	ListCategories(ctx context.Context) ([]catalog.Category, error)
	CreateCategory(ctx context.Context, token string, in commerce.CategoryInput) (catalog.Category, error)
	UpdateCategory(ctx context.Context, token, id string, in commerce.CategoryInput) (catalog.Category, error)
	DeleteCategory(ctx context.Context, token, id string) error

	ListAllOrders(ctx context.Context, token string, q commerce.ListQuery) ([]order.Order, error)

	CreateShipment(ctx context.Context, token string, in commerce.CreateShipmentInput) (shipment.Shipment, error)
	UpdateShipmentStatus(ctx context.Context, token, id string, status shipment.Status) (shipment.Shipment, error)
	GetTracking(ctx context.Context, token, id string) ([]shipment.TrackingEvent, error)

	ListPayments(ctx context.Context, token string, q commerce.ListQuery) ([]payment.Payment, error)
	RefundPayment(ctx context.Context, token, paymentID string) (payment.Payment, error)

	UploadImage(ctx context.Context, token, filename string, body io.Reader) (string, error)
}

// ImageMapSaver records the color-to-image associations the variant
// wizard collects, so the product page can swap photos per color.
type ImageMapSaver interface {
	Save(ctx context.Context, sessionID, productID string, m map[string]string) error
}

// Service is the console's passthrough to the commerce admin API plus
// the bulk variant wizard.
type Service struct {
	commerce  Commerce
	imageMaps ImageMapSaver
	logger    *zap.Logger
}

// NewService creates an admin service
func NewService(commerce Commerce, imageMaps ImageMapSaver, logger *zap.Logger) *Service {
	return &Service{
		commerce:  commerce,
		imageMaps: imageMaps,
		logger:    logger.Named("admin"),
	}
}

// ListProducts proxies the product list with filters
func (s *Service) ListProducts(ctx context.Context, q commerce.ListQuery) ([]catalog.Product, error) {
	return s.commerce.ListProducts(ctx, q)
}

// GetProduct proxies one product with its variants
func (s *Service) GetProduct(ctx context.Context, id string) (catalog.Product, []catalog.Variant, error) {
	return s.commerce.GetProduct(ctx, id)
}

// CreateProduct proxies product creation
func (s *Service) CreateProduct(ctx context.Context, token string, in commerce.ProductInput) (catalog.Product, error) {
	return s.commerce.CreateProduct(ctx, token, in)
}

// UpdateProduct proxies product update
func (s *Service) UpdateProduct(ctx context.Context, token, id string, in commerce.ProductInput) (catalog.Product, error) {
	return s.commerce.UpdateProduct(ctx, token, id, in)
}

// DeleteProduct proxies product deletion
func (s *Service) DeleteProduct(ctx context.Context, token, id string) error {
	return s.commerce.DeleteProduct(ctx, token, id)
}

// ListCategories proxies the category list
func (s *Service) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	return s.commerce.ListCategories(ctx)
}

// CreateCategory proxies category creation
func (s *Service) CreateCategory(ctx context.Context, token string, in commerce.CategoryInput) (catalog.Category, error) {
	return s.commerce.CreateCategory(ctx, token, in)
}

// UpdateCategory proxies category update
func (s *Service) UpdateCategory(ctx context.Context, token, id string, in commerce.CategoryInput) (catalog.Category, error) {
	return s.commerce.UpdateCategory(ctx, token, id, in)
}

// DeleteCategory proxies category deletion
func (s *Service) DeleteCategory(ctx context.Context, token, id string) error {
	return s.commerce.DeleteCategory(ctx, token, id)
}

// ListOrders proxies the cross-customer order list
func (s *Service) ListOrders(ctx context.Context, token string, q commerce.ListQuery) ([]order.Order, error) {
	return s.commerce.ListAllOrders(ctx, token, q)
}

// CreateShipment proxies shipment booking
func (s *Service) CreateShipment(ctx context.Context, token string, in commerce.CreateShipmentInput) (shipment.Shipment, error) {
	return s.commerce.CreateShipment(ctx, token, in)
}

// UpdateShipmentStatus proxies a shipment lifecycle move
func (s *Service) UpdateShipmentStatus(ctx context.Context, token, id string, status shipment.Status) (shipment.Shipment, error) {
	return s.commerce.UpdateShipmentStatus(ctx, token, id, status)
}

// GetTracking proxies the courier checkpoint history
func (s *Service) GetTracking(ctx context.Context, token, id string) ([]shipment.TrackingEvent, error) {
	return s.commerce.GetTracking(ctx, token, id)
}

// ListTransactions proxies the gateway transaction list with filters
func (s *Service) ListTransactions(ctx context.Context, token string, q commerce.ListQuery) ([]payment.Payment, error) {
	return s.commerce.ListPayments(ctx, token, q)
}

// RefundPayment proxies a refund request
func (s *Service) RefundPayment(ctx context.Context, token, paymentID string) (payment.Payment, error) {
	return s.commerce.RefundPayment(ctx, token, paymentID)
}

// UploadImage proxies a multipart image upload and returns the stored URL
func (s *Service) UploadImage(ctx context.Context, token, filename string, body io.Reader) (string, error) {
	return s.commerce.UploadImage(ctx, token, filename, body)
}
