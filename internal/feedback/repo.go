package feedback

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/radityaprast/pasarlokal-backend/pkg/db/models"
)

// Repository handles feedback persistence and aggregates.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to feedback operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new review.
func (r *Repository) Create(ctx context.Context, row *models.Feedback) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// Exists reports whether the user already reviewed the product for the order.
func (r *Repository) Exists(ctx context.Context, userID, productID, orderID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Feedback{}).
		Where("user_id = ? AND product_id = ? AND order_id = ?", userID, productID, orderID).
		Count(&count).Error
	return count > 0, err
}

// ListByProduct returns a product's reviews, newest first, with the
// reviewer's email joined in.
func (r *Repository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]DTO, error) {
	var rows []DTO
	err := r.db.WithContext(ctx).
		Table("feedbacks").
		Select("feedbacks.id, feedbacks.product_id, feedbacks.order_id, feedbacks.rating, feedbacks.comment, feedbacks.created_at, users.email AS reviewer_email").
		Joins("JOIN users ON users.id = feedbacks.user_id").
		Where("feedbacks.product_id = ?", productID).
		Order("feedbacks.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

// ReviewedProductsByOrders maps each order to the product IDs the user has
// already reviewed in it.
func (r *Repository) ReviewedProductsByOrders(ctx context.Context, userID uuid.UUID, orderIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	result := make(map[uuid.UUID][]uuid.UUID, len(orderIDs))
	if len(orderIDs) == 0 {
		return result, nil
	}

	var rows []models.Feedback
	err := r.db.WithContext(ctx).
		Select("order_id", "product_id").
		Where("user_id = ? AND order_id IN ?", userID, orderIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.OrderID] = append(result[row.OrderID], row.ProductID)
	}
	return result, nil
}

// RatingSummaries aggregates average rating and review count per product.
func (r *Repository) RatingSummaries(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]RatingSummary, error) {
	result := make(map[uuid.UUID]RatingSummary, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}

	var rows []RatingSummary
	err := r.db.WithContext(ctx).
		Table("feedbacks").
		Select("product_id, AVG(rating) AS average_rating, COUNT(*) AS feedback_count").
		Where("product_id IN ?", productIDs).
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.ProductID] = row
	}
	return result, nil
}
