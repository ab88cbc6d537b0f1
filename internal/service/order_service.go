package service

import (
	"context"
	"fmt"
	"time"

	"megamart/internal/metrics"
	"megamart/internal/model"
	"megamart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo    repository.OrderRepository
	cartRepo     repository.CartRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	metrics      *metrics.ServerMetrics
	logger       zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	m *metrics.ServerMetrics,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		cartRepo:     cartRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		metrics:      m,
		logger:       logger.With().Str("service", "order").Logger(),
	}
}

// PlaceOrderFromCart converts the customer's cart into a pending order.
//
// Line items are processed strictly sequentially. Each item's stock decrement
// is an independent atomic conditional update; when a later item fails
// (product gone, or stock insufficient) the whole call aborts with 409 and no
// order is created, but decrements already applied to earlier items are NOT
// rolled back. That partial-decrement behaviour is load-bearing: callers and
// tests depend on it.
func (s *orderService) PlaceOrderFromCart(ctx context.Context, customerID uuid.UUID) (*model.Order, error) {
	customerExists, err := s.customerRepo.Exists(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check customer: %w", err)
	}
	if !customerExists {
		return nil, model.ErrCustomerNotFound
	}

	// "No cart" and "empty cart" collapse into one client error.
	cart, err := s.cartRepo.GetByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, model.ErrCartEmpty
	}

	details, err := s.cartRepo.ListItemDetails(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart items: %w", err)
	}

	orderID := uuid.New()
	orderItems := make([]model.OrderItem, 0, len(details))
	var total float64

	for _, d := range details {
		if d.Product == nil {
			s.logger.Warn().
				Str("cart_id", cart.ID.String()).
				Str("product_id", d.Item.ProductID.String()).
				Msg("cart references a deleted product, aborting checkout")
			return nil, model.ErrStaleCartProduct
		}

		updated, err := s.productRepo.TryDecrementStock(ctx, d.Item.ProductID, d.Item.Quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to decrement stock: %w", err)
		}
		if updated == nil {
			s.metrics.StockConflicts.Inc()
			s.logger.Warn().
				Str("cart_id", cart.ID.String()).
				Str("product_id", d.Item.ProductID.String()).
				Int("quantity", d.Item.Quantity).
				Msg("insufficient stock, aborting checkout")
			return nil, model.InsufficientStockError(d.Product.Name)
		}

		// Snapshot name and price at this moment; later product edits must
		// not affect the order.
		lineTotal := d.Product.Price * float64(d.Item.Quantity)
		total += lineTotal

		orderItems = append(orderItems, model.OrderItem{
			ID:        uuid.New(),
			OrderID:   orderID,
			ProductID: d.Item.ProductID,
			Name:      d.Product.Name,
			Price:     d.Product.Price,
			Quantity:  d.Item.Quantity,
			LineTotal: lineTotal,
		})
	}

	now := time.Now()
	order := &model.Order{
		ID:         orderID,
		CustomerID: customerID,
		Items:      orderItems,
		Total:      total,
		Status:     model.OrderStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// Stock is already decremented; a failure here leaves the store
	// inconsistent and surfaces as an internal error. No compensation.
	if err := s.orderRepo.Create(ctx, order); err != nil {
		s.logger.Error().Err(err).
			Str("order_id", orderID.String()).
			Msg("order creation failed after stock decrements")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.cartRepo.ClearItems(ctx, cart.ID); err != nil {
		s.logger.Error().Err(err).
			Str("order_id", orderID.String()).
			Str("cart_id", cart.ID.String()).
			Msg("failed to clear cart after order creation")
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	s.metrics.OrdersPlaced.Inc()
	s.logger.Info().
		Str("order_id", orderID.String()).
		Str("customer_id", customerID.String()).
		Int("item_count", len(orderItems)).
		Float64("total", total).
		Msg("order placed")

	return order, nil
}

// Get retrieves a single order by ID.
func (s *orderService) Get(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

// List retrieves orders matching the filter.
func (s *orderService) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	orders, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

// UpdateStatus transitions an order's status. No automatic transitions exist;
// any accepted status may be set from any other.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	if !model.ValidOrderStatus(string(status)) {
		return nil, model.BadRequestError("Invalid status")
	}

	order, err := s.orderRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("status", string(status)).
		Msg("order status updated")

	return order, nil
}
