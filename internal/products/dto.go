package products

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInput is the seller payload for a new listing.
type CreateInput struct {
	Name        string          `json:"name" validate:"required,min=2"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Stock       int             `json:"stock" validate:"gte=0"`
	ShopID      uuid.UUID       `json:"shop_id" validate:"required"`
	CategoryID  uuid.UUID       `json:"category_id" validate:"required"`
}

// UpdateInput carries the partial listing update. Nil fields are untouched.
type UpdateInput struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=2"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Stock       *int             `json:"stock,omitempty" validate:"omitempty,gte=0"`
	IsActive    *bool            `json:"is_active,omitempty"`
	CategoryID  *uuid.UUID       `json:"category_id,omitempty"`
}
