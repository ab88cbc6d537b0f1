package service

import (
	"context"

	"megamart/internal/model"
	"megamart/internal/repository"

	"github.com/google/uuid"
)

// CustomerService defines operations for customer management.
type CustomerService interface {
	// List retrieves customers matching the filter.
	List(ctx context.Context, filter repository.CustomerFilter) ([]model.Customer, error)

	// Get retrieves a single customer by ID.
	Get(ctx context.Context, id uuid.UUID) (*model.Customer, error)

	// Create registers a new customer with a normalized, unique email.
	Create(ctx context.Context, req *model.CreateCustomerRequest) (*model.Customer, error)

	// Update applies a partial profile edit.
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateCustomerRequest) (*model.Customer, error)

	// Delete removes a customer and returns the deleted record.
	Delete(ctx context.Context, id uuid.UUID) (*model.Customer, error)
}

// ProductService defines operations for catalogue management.
type ProductService interface {
	// List retrieves products matching the filter.
	List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error)

	// Get retrieves a single product by ID.
	Get(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// Create adds a product to the catalogue.
	Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error)

	// Update applies a partial catalogue edit.
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateProductRequest) (*model.Product, error)

	// Delete removes a product and returns the deleted record.
	Delete(ctx context.Context, id uuid.UUID) (*model.Product, error)
}

// CartService defines operations on per-customer carts.
type CartService interface {
	// GetOrCreate fetches the customer's cart, creating an empty one on first
	// access, and computes the live total.
	GetOrCreate(ctx context.Context, customerID uuid.UUID) (*model.CartResponse, error)

	// AddItem adds quantity for a product, merging with an existing line for
	// the same product. The cart is created lazily when absent.
	AddItem(ctx context.Context, customerID, productID uuid.UUID, qty int) (*model.CartResponse, error)

	// UpdateItemQuantity sets the quantity on an existing line. Both the cart
	// and the line must already exist.
	UpdateItemQuantity(ctx context.Context, customerID, productID uuid.UUID, qty int) (*model.CartResponse, error)

	// RemoveItem deletes an existing line.
	RemoveItem(ctx context.Context, customerID, productID uuid.UUID) (*model.CartResponse, error)

	// Clear empties an existing cart.
	Clear(ctx context.Context, customerID uuid.UUID) (*model.CartResponse, error)
}

// OrderService defines checkout and post-creation order operations.
type OrderService interface {
	// PlaceOrderFromCart converts the customer's cart into a pending order,
	// decrementing stock per line item and clearing the cart on success.
	PlaceOrderFromCart(ctx context.Context, customerID uuid.UUID) (*model.Order, error)

	// Get retrieves a single order by ID.
	Get(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// List retrieves orders matching the filter.
	List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error)

	// UpdateStatus transitions an order's status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error)
}
