package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"megamart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// uniqueViolation is the Postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

// customerRepository implements the CustomerRepository interface using PostgreSQL.
type customerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCustomerRepository creates a new PostgreSQL-backed customer repository.
func NewCustomerRepository(pool *pgxpool.Pool, logger zerolog.Logger) CustomerRepository {
	return &customerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "customer").Logger(),
	}
}

const customerColumns = "id, name, email, address, phone, created_at, updated_at"

func scanCustomer(row pgx.Row) (*model.Customer, error) {
	var c model.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Address, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List retrieves customers matching the filter.
func (r *customerRepository) List(ctx context.Context, filter CustomerFilter) ([]model.Customer, error) {
	var conditions []string
	var args []any

	if filter.Email != "" {
		args = append(args, filter.Email)
		conditions = append(conditions, fmt.Sprintf("email = $%d", len(args)))
	}
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)))
	}

	query := "SELECT " + customerColumns + " FROM customers"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY " + buildOrderBy(filter.Sort, customerSortColumns)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query customers")
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []model.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan customer row")
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, *c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating customer rows")
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, nil
}

// GetByID retrieves a single customer by its ID.
func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	query := "SELECT " + customerColumns + " FROM customers WHERE id = $1"

	c, err := scanCustomer(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("customer_id", id.String()).Msg("customer not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("customer_id", id.String()).Msg("failed to query customer")
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}

	return c, nil
}

// Exists reports whether a customer with the given ID exists.
func (r *customerRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		r.logger.Error().Err(err).Str("customer_id", id.String()).Msg("failed to check customer existence")
		return false, fmt.Errorf("failed to check customer existence: %w", err)
	}
	return exists, nil
}

// Create inserts a new customer.
func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, address, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		customer.ID, customer.Name, customer.Email, customer.Address, customer.Phone,
		customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn().Str("email", customer.Email).Msg("duplicate customer email")
			return model.ErrEmailExists
		}
		r.logger.Error().Err(err).Str("customer_id", customer.ID.String()).Msg("failed to create customer")
		return fmt.Errorf("failed to create customer: %w", err)
	}

	r.logger.Debug().Str("customer_id", customer.ID.String()).Msg("customer created")
	return nil
}

// Update applies the non-nil fields of the request.
func (r *customerRepository) Update(ctx context.Context, id uuid.UUID, req *model.UpdateCustomerRequest) (*model.Customer, error) {
	var sets []string
	var args []any

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Name != nil {
		addSet("name", strings.TrimSpace(*req.Name))
	}
	if req.Email != nil {
		addSet("email", model.NormalizeEmail(*req.Email))
	}
	if req.Address != nil {
		addSet("address", strings.TrimSpace(*req.Address))
	}
	if req.Phone != nil {
		addSet("phone", strings.TrimSpace(*req.Phone))
	}
	sets = append(sets, "updated_at = now()")

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE customers SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), customerColumns,
	)

	c, err := scanCustomer(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if isUniqueViolation(err) {
			r.logger.Warn().Str("customer_id", id.String()).Msg("duplicate customer email on update")
			return nil, model.ErrEmailExists
		}
		r.logger.Error().Err(err).Str("customer_id", id.String()).Msg("failed to update customer")
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	return c, nil
}

// Delete removes a customer and returns the deleted record.
func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	query := "DELETE FROM customers WHERE id = $1 RETURNING " + customerColumns

	c, err := scanCustomer(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("customer_id", id.String()).Msg("failed to delete customer")
		return nil, fmt.Errorf("failed to delete customer: %w", err)
	}

	r.logger.Debug().Str("customer_id", id.String()).Msg("customer deleted")
	return c, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
