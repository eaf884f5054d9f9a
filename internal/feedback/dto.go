package feedback

import (
	"time"

	"github.com/google/uuid"
)

// CreateInput is the review submission payload. The order pins down which
// delivered purchase makes the reviewer eligible.
type CreateInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	OrderID   uuid.UUID `json:"order_id" validate:"required"`
	Rating    int       `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   *string   `json:"comment,omitempty"`
}

// DTO is the public shape of a review, reviewer email included.
type DTO struct {
	ID            uuid.UUID `json:"id"`
	ProductID     uuid.UUID `json:"product_id"`
	OrderID       uuid.UUID `json:"order_id"`
	Rating        int       `json:"rating"`
	Comment       *string   `json:"comment,omitempty"`
	ReviewerEmail string    `json:"reviewer_email"`
	CreatedAt     time.Time `json:"created_at"`
}

// RatingSummary aggregates a product's review stats.
type RatingSummary struct {
	ProductID     uuid.UUID
	AverageRating float64
	FeedbackCount int
}
