package model

import (
	"time"

	"github.com/google/uuid"
)

// Cart holds a customer's pending line items. One cart per customer, created
// lazily on first access.
type Cart struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	CustomerID uuid.UUID  `json:"customerId" db:"customer_id"`
	Items      []CartItem `json:"items"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`
}

// CartItem is a single product+quantity line within a cart. The product
// reference is weak: the product may be deleted independently.
type CartItem struct {
	ID        uuid.UUID `json:"-" db:"id"`
	CartID    uuid.UUID `json:"-" db:"cart_id"`
	ProductID uuid.UUID `json:"productId" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
}

// CartItemDetail pairs a cart item with its resolved product. Product is nil
// when the referenced product no longer exists.
type CartItemDetail struct {
	Item    CartItem
	Product *Product
}

// CartTotal sums live product price times quantity over the given lines.
// A line whose product no longer resolves contributes 0.
func CartTotal(details []CartItemDetail) float64 {
	var total float64
	for _, d := range details {
		if d.Product == nil {
			continue
		}
		total += d.Product.Price * float64(d.Item.Quantity)
	}
	return total
}

// CartResponse is the payload shape shared by all cart endpoints.
type CartResponse struct {
	Cart  *Cart   `json:"cart"`
	Total float64 `json:"total"`
}

// AddCartItemRequest is the payload for POST /api/carts/{customerId}/items.
type AddCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

// Qty returns the requested quantity, defaulting to 1 when omitted.
func (r *AddCartItemRequest) Qty() int {
	if r.Quantity == nil {
		return 1
	}
	return *r.Quantity
}

// Validate checks the product reference and quantity range.
func (r *AddCartItemRequest) Validate() *APIError {
	if r.ProductID == "" {
		return BadRequestError("productId is required")
	}
	if r.Qty() < 1 {
		return BadRequestError("quantity must be a number >= 1")
	}
	return nil
}

// UpdateCartItemRequest is the payload for
// PATCH /api/carts/{customerId}/items/{productId}.
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity"`
}

// Validate checks that the quantity is present and >= 1.
func (r *UpdateCartItemRequest) Validate() *APIError {
	if r.Quantity == nil || *r.Quantity < 1 {
		return BadRequestError("quantity must be a number >= 1")
	}
	return nil
}
