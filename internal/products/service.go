package products

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/radityaprast/pasarlokal-backend/internal/users"
	"github.com/radityaprast/pasarlokal-backend/pkg/db"
	"github.com/radityaprast/pasarlokal-backend/pkg/db/models"
	pkgerrors "github.com/radityaprast/pasarlokal-backend/pkg/errors"
)

// Service covers seller-side product management.
type Service interface {
	List(ctx context.Context, sellerUserID uuid.UUID) ([]models.Product, error)
	Create(ctx context.Context, sellerUserID uuid.UUID, input CreateInput) (*models.Product, error)
	Update(ctx context.Context, sellerUserID, productID uuid.UUID, input UpdateInput) (*models.Product, error)
	Delete(ctx context.Context, sellerUserID, productID uuid.UUID) error
}

type service struct {
	db *db.Client
}

// NewService builds the seller product service.
func NewService(client *db.Client) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &service{db: client}, nil
}

func (s *service) List(ctx context.Context, sellerUserID uuid.UUID) ([]models.Product, error) {
	profile, err := s.sellerProfile(ctx, sellerUserID)
	if err != nil {
		return nil, err
	}

	rows, err := NewRepository(s.db.DB()).ListBySeller(ctx, profile.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return rows, nil
}

func (s *service) Create(ctx context.Context, sellerUserID uuid.UUID, input CreateInput) (*models.Product, error) {
	if input.Price.IsNegative() || input.Price.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}

	profile, err := s.sellerProfile(ctx, sellerUserID)
	if err != nil {
		return nil, err
	}

	conn := s.db.DB().WithContext(ctx)

	var shop models.Shop
	if err := conn.First(&shop, "id = ? AND owner_id = ?", input.ShopID, profile.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load shop")
	}

	var category models.Category
	if err := conn.First(&category, "id = ? AND shop_id = ?", input.CategoryID, shop.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load category")
	}

	product := &models.Product{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		IsActive:    true,
		ShopID:      shop.ID,
		CategoryID:  category.ID,
		SellerID:    profile.ID,
	}
	if err := NewRepository(s.db.DB()).Create(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return product, nil
}

func (s *service) Update(ctx context.Context, sellerUserID, productID uuid.UUID, input UpdateInput) (*models.Product, error) {
	profile, err := s.sellerProfile(ctx, sellerUserID)
	if err != nil {
		return nil, err
	}

	repo := NewRepository(s.db.DB())
	product, err := s.ownedProduct(ctx, repo, profile.ID, productID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() || input.Price.IsZero() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
		}
		product.Price = *input.Price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
		}
		product.Stock = *input.Stock
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.CategoryID != nil {
		var category models.Category
		if err := s.db.DB().WithContext(ctx).
			First(&category, "id = ? AND shop_id = ?", *input.CategoryID, product.ShopID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load category")
		}
		product.CategoryID = category.ID
	}

	if err := repo.Save(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save product")
	}
	return product, nil
}

func (s *service) Delete(ctx context.Context, sellerUserID, productID uuid.UUID) error {
	profile, err := s.sellerProfile(ctx, sellerUserID)
	if err != nil {
		return err
	}

	repo := NewRepository(s.db.DB())
	product, err := s.ownedProduct(ctx, repo, profile.ID, productID)
	if err != nil {
		return err
	}

	if _, err := repo.Delete(ctx, product.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	return nil
}

func (s *service) ownedProduct(ctx context.Context, repo *Repository, sellerID, productID uuid.UUID) (*models.Product, error) {
	product, err := repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	if product.SellerID != sellerID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}

func (s *service) sellerProfile(ctx context.Context, userID uuid.UUID) (*models.SellerProfile, error) {
	profile, err := users.NewRepository(s.db.DB()).SellerProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "seller profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load seller profile")
	}
	return profile, nil
}
