package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/radityaprast/pasarlokal-backend/pkg/db"
	"github.com/radityaprast/pasarlokal-backend/pkg/db/dbtest"
	"github.com/radityaprast/pasarlokal-backend/pkg/db/models"
	"github.com/radityaprast/pasarlokal-backend/pkg/enums"
	pkgerrors "github.com/radityaprast/pasarlokal-backend/pkg/errors"
)

type productsTestSetup struct {
	service  Service
	client   *db.Client
	seller   *models.User
	shop     *models.Shop
	category *models.Category
}

func newProductsTestSetup(t *testing.T) *productsTestSetup {
	t.Helper()
	client := db.NewWithConn(dbtest.Open(t))
	svc, err := NewService(client)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	seller := &models.User{
		ID:           uuid.New(),
		Email:        "seller@example.com",
		PasswordHash: "hash",
		Role:         enums.RoleSeller,
		IsActive:     true,
		SellerProfile: &models.SellerProfile{
			ID:       uuid.New(),
			FullName: "Sari Dewi",
		},
	}
	seller.SellerProfile.UserID = seller.ID
	if err := client.DB().Create(seller).Error; err != nil {
		t.Fatalf("create seller: %v", err)
	}

	shop := &models.Shop{
		ID:        uuid.New(),
		Name:      "Warung Sari",
		IsActive:  true,
		OwnerID:   seller.SellerProfile.ID,
		ManagerID: seller.ID,
	}
	if err := client.DB().Create(shop).Error; err != nil {
		t.Fatalf("create shop: %v", err)
	}

	category := &models.Category{ID: uuid.New(), Name: "Produce", ShopID: shop.ID}
	if err := client.DB().Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}

	return &productsTestSetup{service: svc, client: client, seller: seller, shop: shop, category: category}
}

func (s *productsTestSetup) sampleInput() CreateInput {
	return CreateInput{
		Name:       "Mangga Harum Manis",
		Price:      decimal.NewFromFloat(25000),
		Stock:      10,
		ShopID:     s.shop.ID,
		CategoryID: s.category.ID,
	}
}

func TestCreateProduct(t *testing.T) {
	setup := newProductsTestSetup(t)

	product, err := setup.service.Create(context.Background(), setup.seller.ID, setup.sampleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if product.SellerID != setup.seller.SellerProfile.ID {
		t.Fatal("product should belong to the seller profile")
	}
	if !product.IsActive {
		t.Fatal("new products default to active")
	}
}

func TestCreateProductRejectsForeignShop(t *testing.T) {
	setup := newProductsTestSetup(t)

	otherShop := &models.Shop{
		ID:        uuid.New(),
		Name:      "Someone Else",
		IsActive:  true,
		OwnerID:   uuid.New(),
		ManagerID: uuid.New(),
	}
	if err := setup.client.DB().Create(otherShop).Error; err != nil {
		t.Fatalf("create shop: %v", err)
	}

	input := setup.sampleInput()
	input.ShopID = otherShop.ID
	_, err := setup.service.Create(context.Background(), setup.seller.ID, input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateProductRejectsNonPositivePrice(t *testing.T) {
	setup := newProductsTestSetup(t)

	input := setup.sampleInput()
	input.Price = decimal.Zero
	_, err := setup.service.Create(context.Background(), setup.seller.ID, input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateProductPartial(t *testing.T) {
	setup := newProductsTestSetup(t)
	ctx := context.Background()

	product, err := setup.service.Create(ctx, setup.seller.ID, setup.sampleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	stock := 3
	inactive := false
	updated, err := setup.service.Update(ctx, setup.seller.ID, product.ID, UpdateInput{
		Stock:    &stock,
		IsActive: &inactive,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Stock != 3 || updated.IsActive {
		t.Fatalf("partial update not applied: stock=%d active=%v", updated.Stock, updated.IsActive)
	}
	if updated.Name != "Mangga Harum Manis" {
		t.Fatal("name should be untouched")
	}
}

func TestUpdateOtherSellersProductReturns404(t *testing.T) {
	setup := newProductsTestSetup(t)
	ctx := context.Background()

	product, err := setup.service.Create(ctx, setup.seller.ID, setup.sampleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	other := &models.User{
		ID:           uuid.New(),
		Email:        "other@example.com",
		PasswordHash: "hash",
		Role:         enums.RoleSeller,
		IsActive:     true,
		SellerProfile: &models.SellerProfile{
			ID:       uuid.New(),
			FullName: "Other Seller",
		},
	}
	other.SellerProfile.UserID = other.ID
	if err := setup.client.DB().Create(other).Error; err != nil {
		t.Fatalf("create other seller: %v", err)
	}

	name := "Stolen"
	_, err = setup.service.Update(ctx, other.ID, product.ID, UpdateInput{Name: &name})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteProductIsHardDelete(t *testing.T) {
	setup := newProductsTestSetup(t)
	ctx := context.Background()

	product, err := setup.service.Create(ctx, setup.seller.ID, setup.sampleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := setup.service.Delete(ctx, setup.seller.ID, product.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var count int64
	if err := setup.client.DB().Model(&models.Product{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected hard delete, found %d rows", count)
	}
}
