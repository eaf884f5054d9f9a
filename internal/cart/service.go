package cart

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

// Service covers the customer's basket.
type Service interface {
	Get(ctx context.Context, customerUserID uuid.UUID) (*DTO, error)
	AddItem(ctx context.Context, customerUserID uuid.UUID, input AddItemInput) (*DTO, error)
	RemoveItem(ctx context.Context, customerUserID, itemID uuid.UUID) (*DTO, error)
}

type service struct {
	db *db.Client
}

// NewService builds the cart service.
func NewService(client *db.Client) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &service{db: client}, nil
}

func (s *service) Get(ctx context.Context, customerUserID uuid.UUID) (*DTO, error) {
	profile, err := s.customerProfile(ctx, customerUserID)
	if err != nil {
		return nil, err
	}
	cart, err := NewRepository(s.db.DB()).FindOrCreateByCustomer(ctx, profile.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	return fromModel(cart), nil
}

func (s *service) AddItem(ctx context.Context, customerUserID uuid.UUID, input AddItemInput) (*DTO, error) {
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	profile, err := s.customerProfile(ctx, customerUserID)
	if err != nil {
		return nil, err
	}

	var product models.Product
	err = s.db.DB().WithContext(ctx).
		Where("is_active = ?", true).
		First(&product, "id = ?", input.ProductID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	repo := NewRepository(s.db.DB())
	cart, err := repo.FindOrCreateByCustomer(ctx, profile.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}

	existing, err := repo.FindItem(ctx, cart.ID, product.ID)
	switch {
	case err == nil:
		if err := repo.UpdateItemQuantity(ctx, existing.ID, existing.Quantity+input.Quantity); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "bump quantity")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item := &models.CartItem{
			ID:        uuid.New(),
			CartID:    cart.ID,
			ProductID: product.ID,
			Quantity:  input.Quantity,
		}
		if err := repo.CreateItem(ctx, item); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add cart item")
		}
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart item")
	}

	return s.Get(ctx, customerUserID)
}

func (s *service) RemoveItem(ctx context.Context, customerUserID, itemID uuid.UUID) (*DTO, error) {
	profile, err := s.customerProfile(ctx, customerUserID)
	if err != nil {
		return nil, err
	}

	repo := NewRepository(s.db.DB())
	cart, err := repo.FindOrCreateByCustomer(ctx, profile.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}

	affected, err := repo.DeleteItem(ctx, cart.ID, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove cart item")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}

	return s.Get(ctx, customerUserID)
}

func (s *service) customerProfile(ctx context.Context, userID uuid.UUID) (*models.CustomerProfile, error) {
	profile, err := users.NewRepository(s.db.DB()).CustomerProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load customer profile")
	}
	return profile, nil
}
