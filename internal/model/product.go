package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Product represents a catalogue product.
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Category    string    `json:"category" db:"category"`
	Stock       int       `json:"stock" db:"stock"`
	Images      []string  `json:"images" db:"images"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// CreateProductRequest is the payload for POST /api/products.
type CreateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Category    string   `json:"category"`
	Stock       *int     `json:"stock"`
	Images      []string `json:"images"`
}

// Validate checks required fields and value ranges. Stock defaults to 0 when
// omitted.
func (r *CreateProductRequest) Validate() *APIError {
	if strings.TrimSpace(r.Name) == "" ||
		strings.TrimSpace(r.Description) == "" ||
		strings.TrimSpace(r.Category) == "" {
		return BadRequestError("name, description, and category are required")
	}
	if r.Price == nil {
		return BadRequestError("price is required")
	}
	if *r.Price < 0 {
		return BadRequestError("price must be >= 0")
	}
	if r.Stock != nil && *r.Stock < 0 {
		return BadRequestError("stock must be >= 0")
	}
	return nil
}

// UpdateProductRequest is the payload for PATCH /api/products/{id}.
// Nil fields are left unchanged.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Stock       *int     `json:"stock"`
	Images      []string `json:"images"`
}

// Validate rejects out-of-range values on provided fields.
func (r *UpdateProductRequest) Validate() *APIError {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return BadRequestError("name must not be empty")
	}
	if r.Description != nil && strings.TrimSpace(*r.Description) == "" {
		return BadRequestError("description must not be empty")
	}
	if r.Category != nil && strings.TrimSpace(*r.Category) == "" {
		return BadRequestError("category must not be empty")
	}
	if r.Price != nil && *r.Price < 0 {
		return BadRequestError("price must be >= 0")
	}
	if r.Stock != nil && *r.Stock < 0 {
		return BadRequestError("stock must be >= 0")
	}
	return nil
}

// IsEmpty reports whether the update carries no fields at all.
func (r *UpdateProductRequest) IsEmpty() bool {
	return r.Name == nil && r.Description == nil && r.Price == nil &&
		r.Category == nil && r.Stock == nil && r.Images == nil
}
