package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/radityaprast/pasarlokal-backend/internal/feedback"
	"github.com/radityaprast/pasarlokal-backend/pkg/db/models"
)

// ListFilter narrows the public product listing.
type ListFilter struct {
	CategoryID *uuid.UUID
	ShopID     *uuid.UUID
}

// CategoryDTO is a public category row with its shop name embedded.
type CategoryDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	ShopID      uuid.UUID `json:"shop_id"`
	ShopName    string    `json:"shop_name"`
}

// ShopRef is the embedded shop summary on product payloads.
type ShopRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CategoryRef is the embedded category summary on product payloads.
type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ProductDTO is the public listing row. AverageRating is nil until the
// product has at least one review.
type ProductDTO struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Stock         int             `json:"stock"`
	Category      *CategoryRef    `json:"category,omitempty"`
	Shop          *ShopRef        `json:"shop,omitempty"`
	AverageRating *float64        `json:"average_rating"`
	FeedbackCount int             `json:"feedback_count"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ProductDetailDTO adds the full review list to the listing row.
type ProductDetailDTO struct {
	ProductDTO
	Feedback []feedback.DTO `json:"feedback"`
}

func productDTO(p *models.Product) ProductDTO {
	dto := ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
	}
	if p.Category != nil {
		dto.Category = &CategoryRef{ID: p.Category.ID, Name: p.Category.Name}
	}
	if p.Shop != nil {
		dto.Shop = &ShopRef{ID: p.Shop.ID, Name: p.Shop.Name}
	}
	return dto
}
