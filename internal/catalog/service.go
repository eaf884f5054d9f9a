package catalog

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/radityaprast/pasarlokal-backend/internal/feedback"
	"github.com/radityaprast/pasarlokal-backend/pkg/db"
	"github.com/radityaprast/pasarlokal-backend/pkg/db/models"
	pkgerrors "github.com/radityaprast/pasarlokal-backend/pkg/errors"
)

// Service is the public, unauthenticated storefront surface.
type Service interface {
	Categories(ctx context.Context, shopID *uuid.UUID) ([]CategoryDTO, error)
	Products(ctx context.Context, filter ListFilter) ([]ProductDTO, error)
	ProductDetail(ctx context.Context, productID uuid.UUID) (*ProductDetailDTO, error)
}

type service struct {
	db *db.Client
}

// NewService builds the public catalog service.
func NewService(client *db.Client) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &service{db: client}, nil
}

func (s *service) Categories(ctx context.Context, shopID *uuid.UUID) ([]CategoryDTO, error) {
	query := s.db.DB().WithContext(ctx).
		Table("categories").
		Select("categories.id, categories.name, categories.description, categories.shop_id, shops.name AS shop_name").
		Joins("JOIN shops ON shops.id = categories.shop_id").
		Order("categories.name ASC")
	if shopID != nil {
		query = query.Where("categories.shop_id = ?", *shopID)
	}

	var rows []CategoryDTO
	if err := query.Scan(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	return rows, nil
}

func (s *service) Products(ctx context.Context, filter ListFilter) ([]ProductDTO, error) {
	query := s.db.DB().WithContext(ctx).
		Preload("Category").
		Preload("Shop").
		Where("is_active = ?", true).
		Order("created_at DESC")
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.ShopID != nil {
		query = query.Where("shop_id = ?", *filter.ShopID)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}

	ids := make([]uuid.UUID, 0, len(products))
	for i := range products {
		ids = append(ids, products[i].ID)
	}
	summaries, err := feedback.NewRepository(s.db.DB()).RatingSummaries(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load rating summaries")
	}

	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		dto := productDTO(&products[i])
		applySummary(&dto, summaries)
		dtos = append(dtos, dto)
	}
	return dtos, nil
}

func (s *service) ProductDetail(ctx context.Context, productID uuid.UUID) (*ProductDetailDTO, error) {
	var product models.Product
	err := s.db.DB().WithContext(ctx).
		Preload("Category").
		Preload("Shop").
		Where("is_active = ?", true).
		First(&product, "id = ?", productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	repo := feedback.NewRepository(s.db.DB())
	reviews, err := repo.ListByProduct(ctx, product.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list feedback")
	}
	summaries, err := repo.RatingSummaries(ctx, []uuid.UUID{product.ID})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load rating summary")
	}

	detail := &ProductDetailDTO{
		ProductDTO: productDTO(&product),
		Feedback:   reviews,
	}
	applySummary(&detail.ProductDTO, summaries)
	return detail, nil
}

func applySummary(dto *ProductDTO, summaries map[uuid.UUID]feedback.RatingSummary) {
	summary, ok := summaries[dto.ID]
	if !ok {
		return
	}
	avg := math.Round(summary.AverageRating*100) / 100
	dto.AverageRating = &avg
	dto.FeedbackCount = summary.FeedbackCount
}
