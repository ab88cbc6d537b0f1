package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"megamart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// GetByCustomer retrieves a customer's cart with items. Duplicate carts can
// exist for one customer (creation is lookup-then-insert with no uniqueness
// constraint); reads always take the oldest, so the first write wins.
func (r *cartRepository) GetByCustomer(ctx context.Context, customerID uuid.UUID) (*model.Cart, error) {
	query := `
		SELECT id, customer_id, created_at, updated_at
		FROM carts
		WHERE customer_id = $1
		ORDER BY created_at
		LIMIT 1
	`

	var cart model.Cart
	err := r.pool.QueryRow(ctx, query, customerID).Scan(
		&cart.ID, &cart.CustomerID, &cart.CreatedAt, &cart.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("customer_id", customerID.String()).Msg("cart not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("customer_id", customerID.String()).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}

	items, err := r.listItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	cart.Items = items

	return &cart, nil
}

// Create inserts an empty cart for the customer.
func (r *cartRepository) Create(ctx context.Context, customerID uuid.UUID) (*model.Cart, error) {
	now := time.Now()
	cart := &model.Cart{
		ID:         uuid.New(),
		CustomerID: customerID,
		Items:      []model.CartItem{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	query := `
		INSERT INTO carts (id, customer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, cart.ID, cart.CustomerID, cart.CreatedAt, cart.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("customer_id", customerID.String()).Msg("failed to create cart")
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	r.logger.Debug().
		Str("cart_id", cart.ID.String()).
		Str("customer_id", customerID.String()).
		Msg("cart created")

	return cart, nil
}

// UpsertItem adds qty for the product, summing quantities when a line for that
// product already exists.
func (r *cartRepository) UpsertItem(ctx context.Context, cartID, productID uuid.UUID, qty int) error {
	query := `
		INSERT INTO cart_items (id, cart_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`

	_, err := r.pool.Exec(ctx, query, uuid.New(), cartID, productID, qty)
	if err != nil {
		r.logger.Error().Err(err).
			Str("cart_id", cartID.String()).
			Str("product_id", productID.String()).
			Msg("failed to upsert cart item")
		return fmt.Errorf("failed to upsert cart item: %w", err)
	}

	return r.touch(ctx, cartID)
}

// UpdateItemQuantity sets the quantity on an existing line.
func (r *cartRepository) UpdateItemQuantity(ctx context.Context, cartID, productID uuid.UUID, qty int) (bool, error) {
	query := `
		UPDATE cart_items
		SET quantity = $3
		WHERE cart_id = $1 AND product_id = $2
	`

	tag, err := r.pool.Exec(ctx, query, cartID, productID, qty)
	if err != nil {
		r.logger.Error().Err(err).
			Str("cart_id", cartID.String()).
			Str("product_id", productID.String()).
			Msg("failed to update cart item quantity")
		return false, fmt.Errorf("failed to update cart item quantity: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return false, nil
	}
	return true, r.touch(ctx, cartID)
}

// RemoveItem deletes a line from the cart.
func (r *cartRepository) RemoveItem(ctx context.Context, cartID, productID uuid.UUID) (bool, error) {
	query := "DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2"

	tag, err := r.pool.Exec(ctx, query, cartID, productID)
	if err != nil {
		r.logger.Error().Err(err).
			Str("cart_id", cartID.String()).
			Str("product_id", productID.String()).
			Msg("failed to remove cart item")
		return false, fmt.Errorf("failed to remove cart item: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return false, nil
	}
	return true, r.touch(ctx, cartID)
}

// ClearItems removes all lines from the cart.
func (r *cartRepository) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM cart_items WHERE cart_id = $1", cartID)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to clear cart items")
		return fmt.Errorf("failed to clear cart items: %w", err)
	}

	r.logger.Debug().Str("cart_id", cartID.String()).Msg("cart cleared")
	return r.touch(ctx, cartID)
}

// ListItemDetails retrieves the cart's lines joined with their live
// products, in the order the lines were first added.
func (r *cartRepository) ListItemDetails(ctx context.Context, cartID uuid.UUID) ([]model.CartItemDetail, error) {
	query := `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity,
		       p.id, p.name, p.description, p.price, p.category, p.stock, p.images, p.created_at, p.updated_at
		FROM cart_items ci
		LEFT JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.position
	`

	rows, err := r.pool.Query(ctx, query, cartID)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to query cart item details")
		return nil, fmt.Errorf("failed to query cart item details: %w", err)
	}
	defer rows.Close()

	var details []model.CartItemDetail
	for rows.Next() {
		var d model.CartItemDetail
		var (
			pID        *uuid.UUID
			pName      *string
			pDesc      *string
			pPrice     *float64
			pCategory  *string
			pStock     *int
			pImages    []string
			pCreatedAt *time.Time
			pUpdatedAt *time.Time
		)

		err := rows.Scan(
			&d.Item.ID, &d.Item.CartID, &d.Item.ProductID, &d.Item.Quantity,
			&pID, &pName, &pDesc, &pPrice, &pCategory, &pStock, &pImages, &pCreatedAt, &pUpdatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart item detail row")
			return nil, fmt.Errorf("failed to scan cart item detail: %w", err)
		}

		if pID != nil {
			d.Product = &model.Product{
				ID:          *pID,
				Name:        *pName,
				Description: *pDesc,
				Price:       *pPrice,
				Category:    *pCategory,
				Stock:       *pStock,
				Images:      pImages,
				CreatedAt:   *pCreatedAt,
				UpdatedAt:   *pUpdatedAt,
			}
		}

		details = append(details, d)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart item detail rows")
		return nil, fmt.Errorf("error iterating cart item details: %w", err)
	}

	return details, nil
}

// listItems loads the bare lines for a cart.
func (r *cartRepository) listItems(ctx context.Context, cartID uuid.UUID) ([]model.CartItem, error) {
	query := `
		SELECT id, cart_id, product_id, quantity
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, query, cartID)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to query cart items")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	items := []model.CartItem{}
	for rows.Next() {
		var item model.CartItem
		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart item row")
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart item rows")
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}

// touch bumps the cart's updated_at after an item mutation.
func (r *cartRepository) touch(ctx context.Context, cartID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "UPDATE carts SET updated_at = now() WHERE id = $1", cartID)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to touch cart")
		return fmt.Errorf("failed to touch cart: %w", err)
	}
	return nil
}
