package models

import (
	"time"

	"github.com/google/uuid"
)

// AdminProfile carries the display identity of a platform administrator.
type AdminProfile struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID   uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	FullName string    `gorm:"column:full_name;not null"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// SellerProfile carries seller-facing identity and business details.
type SellerProfile struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	FullName     string    `gorm:"column:full_name;not null"`
	PhoneNumber  *string   `gorm:"column:phone_number"`
	BusinessName *string   `gorm:"column:business_name"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// CustomerProfile carries buyer identity plus default shipping hints.
type CustomerProfile struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	FullName     string    `gorm:"column:full_name;not null"`
	PhoneNumber  *string   `gorm:"column:phone_number"`
	DefaultCity  *string   `gorm:"column:default_city"`
	DefaultState *string   `gorm:"column:default_state"`
	DefaultZip   *string   `gorm:"column:default_zip"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
