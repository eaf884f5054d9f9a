package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/radityaprast/pasarlokal-backend/pkg/db/models"
	"github.com/radityaprast/pasarlokal-backend/pkg/enums"
	pkgerrors "github.com/radityaprast/pasarlokal-backend/pkg/errors"
)

// Service exposes the admin-facing customer management operations.
type Service interface {
	ListCustomers(ctx context.Context) ([]CustomerSummary, error)
	SetCustomerStatus(ctx context.Context, customerID uuid.UUID, isActive bool) (*UserDTO, error)
	Profile(ctx context.Context, userID uuid.UUID) (*CustomerProfileDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*CustomerProfileDTO, error)
}

type repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListCustomers(ctx context.Context) ([]models.User, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (int64, error)
	CustomerProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.CustomerProfile, error)
	UpdateCustomerProfile(ctx context.Context, profileID uuid.UUID, changes map[string]any) error
}

// UpdateProfileInput carries the mutable profile fields. Nil pointers
// leave the stored value untouched.
type UpdateProfileInput struct {
	FullName     *string `json:"full_name" validate:"omitempty,min=2,max=120"`
	PhoneNumber  *string `json:"phone_number" validate:"omitempty,max=32"`
	DefaultCity  *string `json:"default_city" validate:"omitempty,max=120"`
	DefaultState *string `json:"default_state" validate:"omitempty,max=120"`
	DefaultZip   *string `json:"default_zip" validate:"omitempty,max=16"`
}

type service struct {
	repo repository
}

// NewService builds the customer management service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListCustomers(ctx context.Context) ([]CustomerSummary, error) {
	rows, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list customers")
	}

	summaries := make([]CustomerSummary, 0, len(rows))
	for _, row := range rows {
		summary := CustomerSummary{
			ID:        row.ID,
			Email:     row.Email,
			IsActive:  row.IsActive,
			CreatedAt: row.CreatedAt,
		}
		if row.CustomerProfile != nil {
			summary.FullName = row.CustomerProfile.FullName
			summary.PhoneNumber = row.CustomerProfile.PhoneNumber
			profileID := row.CustomerProfile.ID
			summary.ProfileID = &profileID
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *service) SetCustomerStatus(ctx context.Context, customerID uuid.UUID, isActive bool) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup customer")
	}
	if user.Role != enums.RoleCustomer {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
	}

	if _, err := s.repo.SetActive(ctx, customerID, isActive); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update customer status")
	}
	user.IsActive = isActive
	return FromModel(user), nil
}

func (s *service) Profile(ctx context.Context, userID uuid.UUID) (*CustomerProfileDTO, error) {
	profile, err := s.repo.CustomerProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup customer profile")
	}
	return profileDTO(profile), nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*CustomerProfileDTO, error) {
	profile, err := s.repo.CustomerProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup customer profile")
	}

	changes := map[string]any{}
	if input.FullName != nil {
		profile.FullName = *input.FullName
		changes["full_name"] = *input.FullName
	}
	if input.PhoneNumber != nil {
		profile.PhoneNumber = input.PhoneNumber
		changes["phone_number"] = *input.PhoneNumber
	}
	if input.DefaultCity != nil {
		profile.DefaultCity = input.DefaultCity
		changes["default_city"] = *input.DefaultCity
	}
	if input.DefaultState != nil {
		profile.DefaultState = input.DefaultState
		changes["default_state"] = *input.DefaultState
	}
	if input.DefaultZip != nil {
		profile.DefaultZip = input.DefaultZip
		changes["default_zip"] = *input.DefaultZip
	}
	if len(changes) == 0 {
		return profileDTO(profile), nil
	}

	if err := s.repo.UpdateCustomerProfile(ctx, profile.ID, changes); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update customer profile")
	}
	return profileDTO(profile), nil
}
