package service

import (
	"context"
	"fmt"

	"megamart/internal/model"
	"megamart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	cartRepo     repository.CartRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	logger       zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo:     cartRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		logger:       logger.With().Str("service", "cart").Logger(),
	}
}

// GetOrCreate fetches the customer's cart, creating an empty one on first
// access. There is no uniqueness constraint behind the lookup, so two
// concurrent first accesses can each create a cart; reads take the oldest.
func (s *cartService) GetOrCreate(ctx context.Context, customerID uuid.UUID) (*model.CartResponse, error) {
	cart, err := s.cartRepo.GetByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	if cart == nil {
		cart, err = s.cartRepo.Create(ctx, customerID)
		if err != nil {
			return nil, fmt.Errorf("failed to create cart: %w", err)
		}
		s.logger.Debug().
			Str("customer_id", customerID.String()).
			Str("cart_id", cart.ID.String()).
			Msg("cart created on first access")
		return &model.CartResponse{Cart: cart, Total: 0}, nil
	}

	return s.respond(ctx, cart)
}

// AddItem adds quantity for a product, merging with an existing line for the
// same product. The cart is created lazily when absent.
func (s *cartService) AddItem(ctx context.Context, customerID, productID uuid.UUID, qty int) (*model.CartResponse, error) {
	if qty < 1 {
		return nil, model.BadRequestError("quantity must be a number >= 1")
	}

	customerExists, err := s.customerRepo.Exists(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check customer: %w", err)
	}
	if !customerExists {
		return nil, model.ErrCustomerNotFound
	}

	productExists, err := s.productRepo.Exists(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to check product: %w", err)
	}
	if !productExists {
		return nil, model.ErrProductNotFound
	}

	cart, err := s.cartRepo.GetByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if cart == nil {
		cart, err = s.cartRepo.Create(ctx, customerID)
		if err != nil {
			return nil, fmt.Errorf("failed to create cart: %w", err)
		}
	}

	if err := s.cartRepo.UpsertItem(ctx, cart.ID, productID, qty); err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	s.logger.Info().
		Str("cart_id", cart.ID.String()).
		Str("product_id", productID.String()).
		Int("quantity", qty).
		Msg("item added to cart")

	return s.reload(ctx, customerID)
}

// UpdateItemQuantity sets the quantity on an existing line. Unlike AddItem
// there is no upsert: both the cart and the line must already exist.
func (s *cartService) UpdateItemQuantity(ctx context.Context, customerID, productID uuid.UUID, qty int) (*model.CartResponse, error) {
	if qty < 1 {
		return nil, model.BadRequestError("quantity must be a number >= 1")
	}

	cart, err := s.cartRepo.GetByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if cart == nil {
		return nil, model.ErrCartNotFound
	}

	found, err := s.cartRepo.UpdateItemQuantity(ctx, cart.ID, productID, qty)
	if err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	if !found {
		return nil, model.ErrCartItemNotFound
	}

	return s.reload(ctx, customerID)
}

// RemoveItem deletes an existing line from the cart.
func (s *cartService) RemoveItem(ctx context.Context, customerID, productID uuid.UUID) (*model.CartResponse, error) {
	cart, err := s.cartRepo.GetByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if cart == nil {
		return nil, model.ErrCartNotFound
	}

	found, err := s.cartRepo.RemoveItem(ctx, cart.ID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}
	if !found {
		return nil, model.ErrCartItemNotFound
	}

	return s.reload(ctx, customerID)
}

// Clear empties an existing cart.
func (s *cartService) Clear(ctx context.Context, customerID uuid.UUID) (*model.CartResponse, error) {
	cart, err := s.cartRepo.GetByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if cart == nil {
		return nil, model.ErrCartNotFound
	}

	if err := s.cartRepo.ClearItems(ctx, cart.ID); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	s.logger.Info().Str("cart_id", cart.ID.String()).Msg("cart cleared")

	cart.Items = []model.CartItem{}
	return &model.CartResponse{Cart: cart, Total: 0}, nil
}

// reload refetches the cart after a mutation.
func (s *cartService) reload(ctx context.Context, customerID uuid.UUID) (*model.CartResponse, error) {
	cart, err := s.cartRepo.GetByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload cart: %w", err)
	}
	if cart == nil {
		return nil, model.ErrCartNotFound
	}
	return s.respond(ctx, cart)
}

// respond computes the live total for a cart. The total reflects current
// catalogue prices, not snapshots; a line whose product no longer exists
// contributes 0.
func (s *cartService) respond(ctx context.Context, cart *model.Cart) (*model.CartResponse, error) {
	details, err := s.cartRepo.ListItemDetails(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart item details: %w", err)
	}

	return &model.CartResponse{
		Cart:  cart,
		Total: model.CartTotal(details),
	}, nil
}
