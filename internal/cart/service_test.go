package cart

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

type cartTestSetup struct {
	service  Service
	client   *db.Client
	customer *models.User
	product  *models.Product
}

func newCartTestSetup(t *testing.T) *cartTestSetup {
	t.Helper()
	client := db.NewWithConn(dbtest.Open(t))
	svc, err := NewService(client)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	customer := &models.User{
		ID:           uuid.New(),
		Email:        "buyer@example.com",
		PasswordHash: "hash",
		Role:         enums.RoleCustomer,
		IsActive:     true,
		CustomerProfile: &models.CustomerProfile{
			ID:       uuid.New(),
			FullName: "Budi Santoso",
		},
	}
	customer.CustomerProfile.UserID = customer.ID
	if err := client.DB().Create(customer).Error; err != nil {
		t.Fatalf("create customer: %v", err)
	}

	product := &models.Product{
		ID:         uuid.New(),
		Name:       "Mangga Harum Manis",
		Price:      decimal.NewFromInt(25000),
		Stock:      10,
		IsActive:   true,
		ShopID:     uuid.New(),
		CategoryID: uuid.New(),
		SellerID:   uuid.New(),
	}
	if err := client.DB().Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}

	return &cartTestSetup{service: svc, client: client, customer: customer, product: product}
}

func TestGetCreatesCartLazily(t *testing.T) {
	setup := newCartTestSetup(t)

	dto, err := setup.service.Get(context.Background(), setup.customer.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(dto.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(dto.Items))
	}

	var count int64
	if err := setup.client.DB().Model(&models.Cart{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected lazily created cart row, got %d", count)
	}
}

func TestAddItemBumpsQuantityForDuplicates(t *testing.T) {
	setup := newCartTestSetup(t)
	ctx := context.Background()

	input := AddItemInput{ProductID: setup.product.ID, Quantity: 2}
	if _, err := setup.service.AddItem(ctx, setup.customer.ID, input); err != nil {
		t.Fatalf("first add: %v", err)
	}
	dto, err := setup.service.AddItem(ctx, setup.customer.ID, AddItemInput{ProductID: setup.product.ID, Quantity: 3})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	if len(dto.Items) != 1 {
		t.Fatalf("expected one line, got %d", len(dto.Items))
	}
	if dto.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", dto.Items[0].Quantity)
	}
	if !dto.Total.Equal(decimal.NewFromInt(125000)) {
		t.Fatalf("expected total 125000, got %s", dto.Total)
	}
}

func TestAddItemRejectsInactiveProduct(t *testing.T) {
	setup := newCartTestSetup(t)

	if err := setup.client.DB().Model(&models.Product{}).
		Where("id = ?", setup.product.ID).
		UpdateColumn("is_active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	_, err := setup.service.AddItem(context.Background(), setup.customer.ID, AddItemInput{ProductID: setup.product.ID, Quantity: 1})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRemoveItemScopedToOwnCart(t *testing.T) {
	setup := newCartTestSetup(t)
	ctx := context.Background()

	dto, err := setup.service.AddItem(ctx, setup.customer.ID, AddItemInput{ProductID: setup.product.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	other := &models.User{
		ID:           uuid.New(),
		Email:        "other@example.com",
		PasswordHash: "hash",
		Role:         enums.RoleCustomer,
		IsActive:     true,
		CustomerProfile: &models.CustomerProfile{
			ID:       uuid.New(),
			FullName: "Other Buyer",
		},
	}
	other.CustomerProfile.UserID = other.ID
	if err := setup.client.DB().Create(other).Error; err != nil {
		t.Fatalf("create other customer: %v", err)
	}

	_, err = setup.service.RemoveItem(ctx, other.ID, dto.Items[0].ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for foreign item, got %v", err)
	}

	cleared, err := setup.service.RemoveItem(ctx, setup.customer.ID, dto.Items[0].ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(cleared.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(cleared.Items))
	}
}

func TestGetWithoutProfileReturns404(t *testing.T) {
	setup := newCartTestSetup(t)

	_, err := setup.service.Get(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
