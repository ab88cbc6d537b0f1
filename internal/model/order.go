package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order. Transitions happen only via
// explicit status updates.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is one of the accepted status values.
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order represents a placed order. Item content and total are immutable once
// created; only the status may change.
type Order struct {
	ID         uuid.UUID   `json:"id" db:"id"`
	CustomerID uuid.UUID   `json:"customerId" db:"customer_id"`
	Items      []OrderItem `json:"items"`
	Total      float64     `json:"total" db:"total"`
	Status     OrderStatus `json:"status" db:"status"`
	CreatedAt  time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time   `json:"updatedAt" db:"updated_at"`
}

// OrderItem is a snapshotted line item. Name and price are copied from the
// product at order-creation time and never change afterwards, even if the
// product is edited or deleted.
type OrderItem struct {
	ID        uuid.UUID `json:"-" db:"id"`
	OrderID   uuid.UUID `json:"-" db:"order_id"`
	ProductID uuid.UUID `json:"productId" db:"product_id"`
	Name      string    `json:"name" db:"name"`
	Price     float64   `json:"price" db:"price"`
	Quantity  int       `json:"quantity" db:"quantity"`
	LineTotal float64   `json:"lineTotal" db:"line_total"`
}

// UpdateOrderStatusRequest is the payload for PATCH /api/orders/{id}/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// Validate checks the status against the accepted set.
func (r *UpdateOrderStatusRequest) Validate() *APIError {
	if !ValidOrderStatus(r.Status) {
		return BadRequestError("Invalid status")
	}
	return nil
}
