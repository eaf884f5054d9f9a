package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/radityaprast/pasarlokal-backend/pkg/enums"
)

// Shop represents an approved storefront. OwnerID points at the seller
// profile, ManagerID at the seller's user account.
type Shop struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Description *string   `gorm:"column:description"`
	IsActive    bool      `gorm:"column:is_active;not null;default:true"`
	OwnerID     uuid.UUID `gorm:"column:owner_id;type:uuid;not null"`
	ManagerID   uuid.UUID `gorm:"column:manager_id;type:uuid;not null"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// ShopCreationRequest records a seller's pending storefront application.
type ShopCreationRequest struct {
	ID                  uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID            uuid.UUID               `gorm:"column:seller_id;type:uuid;not null"`
	ProposedName        string                  `gorm:"column:proposed_name;not null"`
	ProposedDescription *string                 `gorm:"column:proposed_description"`
	Details             *string                 `gorm:"column:details"`
	Status              enums.ShopRequestStatus `gorm:"column:status;type:text;not null;default:'PENDING'"`
	ReviewerID          *uuid.UUID              `gorm:"column:reviewer_id;type:uuid"`
	ReviewedAt          *time.Time              `gorm:"column:reviewed_at"`

	Seller *SellerProfile `gorm:"foreignKey:SellerID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
