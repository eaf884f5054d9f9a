package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/radityaprast/pasarlokal-backend/pkg/db/models"
)

// Repository reads and scans order rows. Lifecycle writes happen inside
// service transactions against the tx handle directly.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) eager() *gorm.DB {
	return r.db.
		Preload("Items.Product").
		Preload("Payment").
		Preload("Shipment").
		Preload("Customer")
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.eager().WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *Repository) ListByCustomer(ctx context.Context, customerProfileID uuid.UUID) ([]models.Order, error) {
	var rows []models.Order
	err := r.eager().WithContext(ctx).
		Where("customer_id = ?", customerProfileID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// ListBySeller returns orders containing at least one product listed by the
// given seller profile.
func (r *Repository) ListBySeller(ctx context.Context, sellerProfileID uuid.UUID) ([]models.Order, error) {
	sub := r.db.Table("order_items").
		Select("DISTINCT order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("products.seller_id = ?", sellerProfileID)

	var rows []models.Order
	err := r.eager().WithContext(ctx).
		Where("id IN (?)", sub).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) ListAll(ctx context.Context) ([]models.Order, error) {
	var rows []models.Order
	err := r.eager().WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// BuyerEmails maps order IDs to the email of the account that placed them.
func (r *Repository) BuyerEmails(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	if len(orderIDs) == 0 {
		return map[uuid.UUID]string{}, nil
	}

	var rows []struct {
		OrderID uuid.UUID `gorm:"column:order_id"`
		Email   string    `gorm:"column:email"`
	}
	err := r.db.WithContext(ctx).
		Table("orders").
		Select("orders.id AS order_id, users.email AS email").
		Joins("JOIN customer_profiles ON customer_profiles.id = orders.customer_id").
		Joins("JOIN users ON users.id = customer_profiles.user_id").
		Where("orders.id IN ?", orderIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]string, len(rows))
	for _, row := range rows {
		out[row.OrderID] = row.Email
	}
	return out, nil
}
