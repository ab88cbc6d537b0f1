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

// productService implements ProductService.
type productService struct {
	repo   repository.ProductRepository
	logger zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		repo:   repo,
		logger: logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves products matching the filter.
func (s *productService) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

// Get retrieves a single product by ID.
func (s *productService) Get(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

// Create adds a product to the catalogue.
func (s *productService) Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	if apiErr := req.Validate(); apiErr != nil {
		return nil, apiErr
	}

	stock := 0
	if req.Stock != nil {
		stock = *req.Stock
	}
	images := req.Images
	if images == nil {
		images = []string{}
	}

	now := time.Now()
	product := &model.Product{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       *req.Price,
		Category:    strings.ToLower(strings.TrimSpace(req.Category)),
		Stock:       stock,
		Images:      images,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("product_id", product.ID.String()).
		Str("category", product.Category).
		Msg("product created")

	return product, nil
}

// Update applies a partial catalogue edit.
func (s *productService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateProductRequest) (*model.Product, error) {
	if apiErr := req.Validate(); apiErr != nil {
		return nil, apiErr
	}

	if req.IsEmpty() {
		return s.Get(ctx, id)
	}

	product, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	s.logger.Info().Str("product_id", id.String()).Msg("product updated")
	return product, nil
}

// Delete removes a product. Carts referencing it keep their line items; those
// lines resolve to nothing and contribute 0 to cart totals.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	s.logger.Info().Str("product_id", id.String()).Msg("product deleted")
	return product, nil
}
