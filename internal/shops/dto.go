package shops

import (
	"time"

	"github.com/google/uuid"

	"github.com/radityaprast/pasarlokal-backend/pkg/db/models"
	"github.com/radityaprast/pasarlokal-backend/pkg/enums"
)

// CreateRequestInput is the seller's storefront application payload.
type CreateRequestInput struct {
	ProposedName        string  `json:"proposed_name" validate:"required,min=2"`
	ProposedDescription *string `json:"proposed_description,omitempty"`
	Details             *string `json:"details,omitempty"`
}

// ReviewInput carries the admin's decision for a pending request.
type ReviewInput struct {
	Decision enums.ShopRequestStatus `json:"decision" validate:"required,oneof=APPROVED REJECTED"`
}

// RequestDTO is the transport shape of a shop creation request.
type RequestDTO struct {
	ID                  uuid.UUID               `json:"id"`
	SellerID            uuid.UUID               `json:"seller_id"`
	SellerName          string                  `json:"seller_name,omitempty"`
	ProposedName        string                  `json:"proposed_name"`
	ProposedDescription *string                 `json:"proposed_description,omitempty"`
	Details             *string                 `json:"details,omitempty"`
	Status              enums.ShopRequestStatus `json:"status"`
	ReviewerID          *uuid.UUID              `json:"reviewer_id,omitempty"`
	ReviewedAt          *time.Time              `json:"reviewed_at,omitempty"`
	CreatedAt           time.Time               `json:"created_at"`
}

// ReviewResult bundles the decided request with the shop created on approval.
type ReviewResult struct {
	Request *RequestDTO  `json:"request"`
	Shop    *models.Shop `json:"shop,omitempty"`
}

func requestFromModel(m *models.ShopCreationRequest) *RequestDTO {
	if m == nil {
		return nil
	}
	dto := &RequestDTO{
		ID:                  m.ID,
		SellerID:            m.SellerID,
		ProposedName:        m.ProposedName,
		ProposedDescription: m.ProposedDescription,
		Details:             m.Details,
		Status:              m.Status,
		ReviewerID:          m.ReviewerID,
		ReviewedAt:          m.ReviewedAt,
		CreatedAt:           m.CreatedAt,
	}
	if m.Seller != nil {
		dto.SellerName = m.Seller.FullName
	}
	return dto
}
