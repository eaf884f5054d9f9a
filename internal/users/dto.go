package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/radityaprast/pasarlokal-backend/pkg/db/models"
	"github.com/radityaprast/pasarlokal-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID          uuid.UUID      `json:"id"`
	Email       string         `json:"email"`
	Role        enums.UserRole `json:"role"`
	IsActive    bool           `json:"is_active"`
	FullName    string         `json:"full_name"`
	PhoneNumber *string        `json:"phone_number,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// CustomerSummary is the admin-facing customer listing row.
type CustomerSummary struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	IsActive    bool       `json:"is_active"`
	FullName    string     `json:"full_name"`
	PhoneNumber *string    `json:"phone_number,omitempty"`
	ProfileID   *uuid.UUID `json:"profile_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CustomerProfileDTO is the self-service view of a customer's profile.
type CustomerProfileDTO struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"full_name"`
	PhoneNumber  *string   `json:"phone_number,omitempty"`
	DefaultCity  *string   `json:"default_city,omitempty"`
	DefaultState *string   `json:"default_state,omitempty"`
	DefaultZip   *string   `json:"default_zip,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func profileDTO(p *models.CustomerProfile) *CustomerProfileDTO {
	if p == nil {
		return nil
	}
	return &CustomerProfileDTO{
		ID:           p.ID,
		FullName:     p.FullName,
		PhoneNumber:  p.PhoneNumber,
		DefaultCity:  p.DefaultCity,
		DefaultState: p.DefaultState,
		DefaultZip:   p.DefaultZip,
		UpdatedAt:    p.UpdatedAt,
	}
}

// FromModel strips credential fields and flattens the role profile.
func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	dto := &UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	switch {
	case u.AdminProfile != nil:
		dto.FullName = u.AdminProfile.FullName
	case u.SellerProfile != nil:
		dto.FullName = u.SellerProfile.FullName
		dto.PhoneNumber = u.SellerProfile.PhoneNumber
	case u.CustomerProfile != nil:
		dto.FullName = u.CustomerProfile.FullName
		dto.PhoneNumber = u.CustomerProfile.PhoneNumber
	}
	return dto
}
