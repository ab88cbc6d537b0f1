package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"megamart/internal/model"
	"megamart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// customerService implements CustomerService.
type customerService struct {
	repo   repository.CustomerRepository
	logger zerolog.Logger
}

// NewCustomerService creates a new customer service.
func NewCustomerService(repo repository.CustomerRepository, logger zerolog.Logger) CustomerService {
	return &customerService{
		repo:   repo,
		logger: logger.With().Str("service", "customer").Logger(),
	}
}

// List retrieves customers matching the filter.
func (s *customerService) List(ctx context.Context, filter repository.CustomerFilter) ([]model.Customer, error) {
	filter.Email = model.NormalizeEmail(filter.Email)
	filter.Name = strings.TrimSpace(filter.Name)

	customers, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	if customers == nil {
		customers = []model.Customer{}
	}
	return customers, nil
}

// Get retrieves a single customer by ID.
func (s *customerService) Get(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if customer == nil {
		return nil, model.ErrCustomerNotFound
	}
	return customer, nil
}

// Create registers a new customer.
func (s *customerService) Create(ctx context.Context, req *model.CreateCustomerRequest) (*model.Customer, error) {
	if apiErr := req.Validate(); apiErr != nil {
		return nil, apiErr
	}

	now := time.Now()
	customer := &model.Customer{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		Email:     model.NormalizeEmail(req.Email),
		Address:   strings.TrimSpace(req.Address),
		Phone:     strings.TrimSpace(req.Phone),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("customer_id", customer.ID.String()).
		Str("email", customer.Email).
		Msg("customer created")

	return customer, nil
}

// Update applies a partial profile edit.
func (s *customerService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateCustomerRequest) (*model.Customer, error) {
	if apiErr := req.Validate(); apiErr != nil {
		return nil, apiErr
	}

	// An empty patch leaves the record untouched.
	if req.IsEmpty() {
		return s.Get(ctx, id)
	}

	customer, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, model.ErrCustomerNotFound
	}

	s.logger.Info().Str("customer_id", id.String()).Msg("customer updated")
	return customer, nil
}

// Delete removes a customer.
func (s *customerService) Delete(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	customer, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete customer: %w", err)
	}
	if customer == nil {
		return nil, model.ErrCustomerNotFound
	}

	s.logger.Info().Str("customer_id", id.String()).Msg("customer deleted")
	return customer, nil
}
