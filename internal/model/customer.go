package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Customer represents a registered customer.
type Customer struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Address   string    `json:"address" db:"address"`
	Phone     string    `json:"phone" db:"phone"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// NormalizeEmail lowercases and trims an email address so that uniqueness
// checks are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateCustomerRequest is the payload for POST /api/customers.
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// Validate checks that all required fields are present.
func (r *CreateCustomerRequest) Validate() *APIError {
	if strings.TrimSpace(r.Name) == "" ||
		NormalizeEmail(r.Email) == "" ||
		strings.TrimSpace(r.Address) == "" ||
		strings.TrimSpace(r.Phone) == "" {
		return BadRequestError("name, email, address, and phone are required")
	}
	return nil
}

// UpdateCustomerRequest is the payload for PATCH /api/customers/{id}.
// Nil fields are left unchanged.
type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

// Validate rejects explicit empty values on provided fields.
func (r *UpdateCustomerRequest) Validate() *APIError {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return BadRequestError("name must not be empty")
	}
	if r.Email != nil && NormalizeEmail(*r.Email) == "" {
		return BadRequestError("email must not be empty")
	}
	if r.Address != nil && strings.TrimSpace(*r.Address) == "" {
		return BadRequestError("address must not be empty")
	}
	if r.Phone != nil && strings.TrimSpace(*r.Phone) == "" {
		return BadRequestError("phone must not be empty")
	}
	return nil
}

// IsEmpty reports whether the update carries no fields at all.
func (r *UpdateCustomerRequest) IsEmpty() bool {
	return r.Name == nil && r.Email == nil && r.Address == nil && r.Phone == nil
}
