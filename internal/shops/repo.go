package shops

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/radityaprast/pasarlokal-backend/pkg/db/models"
	"github.com/radityaprast/pasarlokal-backend/pkg/enums"
)

// Repository handles shop and shop-request persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to shop operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateRequest persists a new shop creation request.
func (r *Repository) CreateRequest(ctx context.Context, request *models.ShopCreationRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

// FindRequestByID loads a request with its seller profile.
func (r *Repository) FindRequestByID(ctx context.Context, id uuid.UUID) (*models.ShopCreationRequest, error) {
	var request models.ShopCreationRequest
	if err := r.db.WithContext(ctx).
		Preload("Seller").
		First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// HasPendingRequest reports whether the seller already has an open request.
func (r *Repository) HasPendingRequest(ctx context.Context, sellerID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ShopCreationRequest{}).
		Where("seller_id = ? AND status = ?", sellerID, enums.ShopRequestStatusPending).
		Count(&count).Error
	return count > 0, err
}

// ListRequests returns all requests, newest first, with seller profiles.
func (r *Repository) ListRequests(ctx context.Context) ([]models.ShopCreationRequest, error) {
	var requests []models.ShopCreationRequest
	if err := r.db.WithContext(ctx).
		Preload("Seller").
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// ListRequestsBySeller returns the seller's own requests, newest first.
func (r *Repository) ListRequestsBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.ShopCreationRequest, error) {
	var requests []models.ShopCreationRequest
	if err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// SaveRequest persists the request state.
func (r *Repository) SaveRequest(ctx context.Context, request *models.ShopCreationRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

// CreateShop persists a new shop row.
func (r *Repository) CreateShop(ctx context.Context, shop *models.Shop) error {
	return r.db.WithContext(ctx).Create(shop).Error
}

// FindShopByID loads a shop by its UUID.
func (r *Repository) FindShopByID(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.WithContext(ctx).First(&shop, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// ListShopsByOwner returns the shops owned by a seller profile.
func (r *Repository) ListShopsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Shop, error) {
	var shops []models.Shop
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}
