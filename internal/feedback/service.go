package feedback

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/radityaprast/pasarlokal-backend/internal/users"
	"github.com/radityaprast/pasarlokal-backend/pkg/db"
	"github.com/radityaprast/pasarlokal-backend/pkg/db/models"
	"github.com/radityaprast/pasarlokal-backend/pkg/enums"
	pkgerrors "github.com/radityaprast/pasarlokal-backend/pkg/errors"
)

// Service covers product reviews.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*models.Feedback, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]DTO, error)
	ReviewedProducts(ctx context.Context, userID uuid.UUID, orderIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error)
}

type service struct {
	db *db.Client
}

// NewService builds the feedback service.
func NewService(client *db.Client) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &service{db: client}, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*models.Feedback, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	conn := s.db.DB().WithContext(ctx)

	var product models.Product
	if err := conn.First(&product, "id = ?", input.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	eligible, err := s.isEligible(ctx, userID, input.ProductID, input.OrderID)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "feedback requires a delivered order containing this product")
	}

	repo := NewRepository(s.db.DB())
	exists, err := repo.Exists(ctx, userID, input.ProductID, input.OrderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check existing feedback")
	}
	if exists {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "feedback already submitted for this order")
	}

	row := &models.Feedback{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: input.ProductID,
		OrderID:   input.OrderID,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}
	if err := repo.Create(ctx, row); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "feedback already submitted for this order")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create feedback")
	}
	return row, nil
}

func (s *service) ListByProduct(ctx context.Context, productID uuid.UUID) ([]DTO, error) {
	rows, err := NewRepository(s.db.DB()).ListByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list feedback")
	}
	return rows, nil
}

func (s *service) ReviewedProducts(ctx context.Context, userID uuid.UUID, orderIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	result, err := NewRepository(s.db.DB()).ReviewedProductsByOrders(ctx, userID, orderIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list reviewed products")
	}
	return result, nil
}

// isEligible checks that the order is the caller's, was delivered, and
// contains the product being reviewed.
func (s *service) isEligible(ctx context.Context, userID, productID, orderID uuid.UUID) (bool, error) {
	profile, err := users.NewRepository(s.db.DB()).CustomerProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load customer profile")
	}

	var count int64
	err = s.db.DB().WithContext(ctx).
		Table("orders").
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Where("orders.id = ? AND orders.customer_id = ? AND orders.status = ?", orderID, profile.ID, enums.OrderStatusDelivered).
		Where("order_items.product_id = ?", productID).
		Count(&count).Error
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check eligibility")
	}
	return count > 0, nil
}
