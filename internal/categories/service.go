package categories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/radityaprast/pasarlokal-backend/pkg/db"
	"github.com/radityaprast/pasarlokal-backend/pkg/db/models"
	pkgerrors "github.com/radityaprast/pasarlokal-backend/pkg/errors"
)

// CreateInput is the admin payload for a new category.
type CreateInput struct {
	Name        string    `json:"name" validate:"required,min=2"`
	Description *string   `json:"description,omitempty"`
	ShopID      uuid.UUID `json:"shop_id" validate:"required"`
}

// UpdateInput carries the partial category update.
type UpdateInput struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2"`
	Description *string `json:"description,omitempty"`
}

// Service manages the category tree.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Category, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	db *db.Client
}

// NewService builds the category management service.
func NewService(client *db.Client) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &service{db: client}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Category, error) {
	var shop models.Shop
	if err := s.db.DB().WithContext(ctx).First(&shop, "id = ?", input.ShopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load shop")
	}

	category := &models.Category{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		ShopID:      input.ShopID,
	}
	if err := s.db.DB().WithContext(ctx).Create(category).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create category")
	}
	return category, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Category, error) {
	var category models.Category
	if err := s.db.DB().WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load category")
	}

	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.Description != nil {
		category.Description = input.Description
	}
	if err := s.db.DB().WithContext(ctx).Save(&category).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save category")
	}
	return &category, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.DB().WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, result.Error, "delete category")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	return nil
}
