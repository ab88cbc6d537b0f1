package model

import (
	"fmt"
	"net/http"
)

// APIError is a business error with an attached HTTP status. Handlers pass
// the status through unchanged; errors without one default to 500.
type APIError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates an error carrying an explicit HTTP status.
func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{StatusCode: statusCode, Message: message}
}

// BadRequestError creates a 400 error.
func BadRequestError(message string) *APIError {
	return NewAPIError(http.StatusBadRequest, message)
}

// NotFoundError creates a 404 error.
func NotFoundError(message string) *APIError {
	return NewAPIError(http.StatusNotFound, message)
}

// ConflictError creates a 409 error.
func ConflictError(message string) *APIError {
	return NewAPIError(http.StatusConflict, message)
}

// Common business errors.
var (
	ErrCustomerNotFound = NotFoundError("Customer not found")
	ErrProductNotFound  = NotFoundError("Product not found")
	ErrCartNotFound     = NotFoundError("Cart not found")
	ErrCartItemNotFound = NotFoundError("Item not found in cart")
	ErrOrderNotFound    = NotFoundError("Order not found")
	ErrCartEmpty        = BadRequestError("Cart is empty")
	ErrEmailExists      = ConflictError("Email already exists")
	ErrStaleCartProduct = ConflictError("A product in the cart no longer exists")
)

// InvalidIDError creates the 400 raised for a malformed identifier.
func InvalidIDError(label string) *APIError {
	return BadRequestError(fmt.Sprintf("Invalid %s", label))
}

// InsufficientStockError creates the 409 raised when a checkout decrement
// cannot be satisfied, naming the offending product.
func InsufficientStockError(productName string) *APIError {
	return ConflictError(fmt.Sprintf("Insufficient stock for product: %s", productName))
}
