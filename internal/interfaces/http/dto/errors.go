package dto

import "net/http"

// Gateway error codes not owned by the domain layer
const (
	ErrCodeInternal    = "INTERNAL_ERROR"
	ErrCodeBadRequest  = "BAD_REQUEST"
	ErrCodeValidation  = "VALIDATION_ERROR"
	ErrCodeRateLimited = "RATE_LIMITED"
	ErrCodeTooLarge    = "REQUEST_TOO_LARGE"
)

// errorCodeHTTPStatus maps domain and gateway error codes to HTTP
// status codes. Business rule rejections are 422; the upstream being
// unreachable or failing is 502.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest:    http.StatusBadRequest,
	ErrCodeValidation:    http.StatusBadRequest,
	"INVALID_INPUT":      http.StatusBadRequest,
	"INVALID_QUANTITY":   http.StatusBadRequest,
	"INVALID_ORDER_TYPE": http.StatusBadRequest,
	"EMPTY_AXES":         http.StatusBadRequest,
	"INVALID_STOCK":      http.StatusBadRequest,

	"UNAUTHORIZED": http.StatusUnauthorized,
	"FORBIDDEN":    http.StatusForbidden,

	"NOT_FOUND":          http.StatusNotFound,
	"NO_ACTIVE_CHECKOUT": http.StatusNotFound,

	"CONFLICT":       http.StatusConflict,
	"PAYMENT_EXISTS": http.StatusConflict,

	"INVALID_STATE":       http.StatusUnprocessableEntity,
	"STOCK_LIMIT":         http.StatusUnprocessableEntity,
	"CART_EMPTY":          http.StatusUnprocessableEntity,
	"VARIANT_UNRESOLVED":  http.StatusUnprocessableEntity,
	"ORDER_NOT_PAYABLE":   http.StatusUnprocessableEntity,
	"PRODUCT_UNAVAILABLE": http.StatusUnprocessableEntity,
	"SHIPPING_INCOMPLETE": http.StatusUnprocessableEntity,

	ErrCodeRateLimited: http.StatusTooManyRequests,
	ErrCodeTooLarge:    http.StatusRequestEntityTooLarge,

	"UPSTREAM_ERROR": http.StatusBadGateway,
	ErrCodeInternal:  http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting
// to 500 for unknown codes.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
