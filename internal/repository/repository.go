package repository

import (
	"context"

	"megamart/internal/model"

	"github.com/google/uuid"
)

// CustomerFilter holds the accepted query filters for listing customers.
type CustomerFilter struct {
	Email string // normalized equality match
	Name  string // case-insensitive contains
	Sort  string // raw sort spec, e.g. "name,-createdAt"
}

// ProductFilter holds the accepted query filters for listing products.
type ProductFilter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	InStock  bool // stock > 0
	Sort     string
	Page     int // 1-based; only applied when Limit > 0
	Limit    int // capped at 100; 0 means no pagination
}

// OrderFilter holds the accepted query filters for listing orders.
type OrderFilter struct {
	CustomerID *uuid.UUID
	Status     string
	Sort       string
}

// CustomerRepository defines data access for customers.
type CustomerRepository interface {
	// List retrieves customers matching the filter.
	List(ctx context.Context, filter CustomerFilter) ([]model.Customer, error)

	// GetByID retrieves a single customer, or nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)

	// Exists reports whether a customer with the given ID exists.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// Create inserts a new customer. Returns model.ErrEmailExists on a
	// duplicate email.
	Create(ctx context.Context, customer *model.Customer) error

	// Update applies the non-nil fields and returns the updated customer,
	// or nil when absent. Returns model.ErrEmailExists on a duplicate email.
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateCustomerRequest) (*model.Customer, error)

	// Delete removes a customer and returns the deleted record, or nil when
	// absent.
	Delete(ctx context.Context, id uuid.UUID) (*model.Customer, error)
}

// ProductRepository defines data access for products.
type ProductRepository interface {
	// List retrieves products matching the filter.
	List(ctx context.Context, filter ProductFilter) ([]model.Product, error)

	// GetByID retrieves a single product, or nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// Exists reports whether a product with the given ID exists.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// Create inserts a new product.
	Create(ctx context.Context, product *model.Product) error

	// Update applies the non-nil fields and returns the updated product, or
	// nil when absent.
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateProductRequest) (*model.Product, error)

	// Delete removes a product and returns the deleted record, or nil when
	// absent.
	Delete(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// TryDecrementStock atomically decrements stock by qty iff stock >= qty,
	// returning the post-decrement product. Returns (nil, nil) without
	// mutating anything when the condition does not hold. The check and the
	// write are a single conditional UPDATE.
	TryDecrementStock(ctx context.Context, id uuid.UUID, qty int) (*model.Product, error)
}

// CartRepository defines data access for carts and their line items.
type CartRepository interface {
	// GetByCustomer retrieves a customer's cart with items, or nil when the
	// customer has no cart.
	GetByCustomer(ctx context.Context, customerID uuid.UUID) (*model.Cart, error)

	// Create inserts an empty cart for the customer. Uniqueness per customer
	// is not enforced by the store; callers look up before creating.
	Create(ctx context.Context, customerID uuid.UUID) (*model.Cart, error)

	// UpsertItem adds qty for the product, summing quantities when a line for
	// that product already exists.
	UpsertItem(ctx context.Context, cartID, productID uuid.UUID, qty int) error

	// UpdateItemQuantity sets the quantity on an existing line. Returns false
	// when no such line exists.
	UpdateItemQuantity(ctx context.Context, cartID, productID uuid.UUID, qty int) (bool, error)

	// RemoveItem deletes a line. Returns false when no such line exists.
	RemoveItem(ctx context.Context, cartID, productID uuid.UUID) (bool, error)

	// ClearItems removes all lines from the cart.
	ClearItems(ctx context.Context, cartID uuid.UUID) error

	// ListItemDetails retrieves the cart's lines joined with their live
	// products. Detail.Product is nil when the product no longer exists.
	ListItemDetails(ctx context.Context, cartID uuid.UUID) ([]model.CartItemDetail, error)
}

// OrderRepository defines data access for orders.
type OrderRepository interface {
	// Create inserts the order and its snapshot items as one atomic write.
	Create(ctx context.Context, order *model.Order) error

	// GetByID retrieves an order with its items, or nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// List retrieves orders (with items) matching the filter.
	List(ctx context.Context, filter OrderFilter) ([]model.Order, error)

	// UpdateStatus sets the status and returns the updated order, or nil when
	// absent.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error)
}
