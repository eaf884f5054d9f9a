package categories

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/radityaprast/pasarlokal-backend/pkg/db"
	"github.com/radityaprast/pasarlokal-backend/pkg/db/dbtest"
	"github.com/radityaprast/pasarlokal-backend/pkg/db/models"
	pkgerrors "github.com/radityaprast/pasarlokal-backend/pkg/errors"
)

func newCategoryTestSetup(t *testing.T) (Service, *db.Client, *models.Shop) {
	t.Helper()
	client := db.NewWithConn(dbtest.Open(t))
	svc, err := NewService(client)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	shop := &models.Shop{
		ID:        uuid.New(),
		Name:      "Warung Sari",
		IsActive:  true,
		OwnerID:   uuid.New(),
		ManagerID: uuid.New(),
	}
	if err := client.DB().Create(shop).Error; err != nil {
		t.Fatalf("create shop: %v", err)
	}
	return svc, client, shop
}

func TestCreateCategoryRequiresExistingShop(t *testing.T) {
	svc, _, _ := newCategoryTestSetup(t)

	_, err := svc.Create(context.Background(), CreateInput{Name: "Produce", ShopID: uuid.New()})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateCategoryAppliesPartialFields(t *testing.T) {
	svc, _, shop := newCategoryTestSetup(t)
	ctx := context.Background()

	desc := "Fruit and vegetables"
	category, err := svc.Create(ctx, CreateInput{Name: "Produce", Description: &desc, ShopID: shop.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "Fresh Produce"
	updated, err := svc.Update(ctx, category.ID, UpdateInput{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != name {
		t.Fatalf("expected renamed category, got %q", updated.Name)
	}
	if updated.Description == nil || *updated.Description != desc {
		t.Fatal("description should be untouched")
	}
}

func TestDeleteCategory(t *testing.T) {
	svc, client, shop := newCategoryTestSetup(t)
	ctx := context.Background()

	category, err := svc.Create(ctx, CreateInput{Name: "Produce", ShopID: shop.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, category.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var count int64
	if err := client.DB().Model(&models.Category{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected category removed, found %d", count)
	}

	err = svc.Delete(ctx, category.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
