package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound          = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput      = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState      = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrUnauthorized      = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrStockLimit        = NewDomainError("STOCK_LIMIT", "Requested quantity exceeds available stock")
	ErrCartEmpty         = NewDomainError("CART_EMPTY", "Cart has no items selected for checkout")
	ErrVariantUnresolved = NewDomainError("VARIANT_UNRESOLVED", "Size and color do not resolve to a purchasable variant")
	ErrPaymentExists     = NewDomainError("PAYMENT_EXISTS", "An active payment already exists for this order")
	ErrOrderNotPayable   = NewDomainError("ORDER_NOT_PAYABLE", "Order status does not allow creating a payment")
	ErrUpstream          = NewDomainError("UPSTREAM_ERROR", "The commerce service returned an error")
)
