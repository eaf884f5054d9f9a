package shops

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/radityaprast/pasarlokal-backend/pkg/db"
	"github.com/radityaprast/pasarlokal-backend/pkg/db/dbtest"
	"github.com/radityaprast/pasarlokal-backend/pkg/db/models"
	"github.com/radityaprast/pasarlokal-backend/pkg/enums"
	pkgerrors "github.com/radityaprast/pasarlokal-backend/pkg/errors"
	"github.com/radityaprast/pasarlokal-backend/pkg/outbox"
)

type shopsTestSetup struct {
	service Service
	client  *db.Client
	seller  *models.User
	admin   *models.User
}

func newShopsTestSetup(t *testing.T) *shopsTestSetup {
	t.Helper()
	client := db.NewWithConn(dbtest.Open(t))

	emitter := outbox.NewService(outbox.NewRepository(client.DB()), nil)
	svc, err := NewService(client, emitter)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	seller := mustCreateUser(t, client, enums.RoleSeller, "seller@example.com")
	admin := mustCreateUser(t, client, enums.RoleAdmin, "admin@example.com")

	return &shopsTestSetup{service: svc, client: client, seller: seller, admin: admin}
}

func mustCreateUser(t *testing.T, client *db.Client, role enums.UserRole, email string) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "hash",
		Role:         role,
		IsActive:     true,
	}
	switch role {
	case enums.RoleSeller:
		user.SellerProfile = &models.SellerProfile{ID: uuid.New(), UserID: user.ID, FullName: "Seller " + email}
	case enums.RoleAdmin:
		user.AdminProfile = &models.AdminProfile{ID: uuid.New(), UserID: user.ID, FullName: "Admin " + email}
	case enums.RoleCustomer:
		user.CustomerProfile = &models.CustomerProfile{ID: uuid.New(), UserID: user.ID, FullName: "Customer " + email}
	}
	if err := client.DB().Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestSubmitRequestRejectsSecondPending(t *testing.T) {
	setup := newShopsTestSetup(t)
	ctx := context.Background()

	input := CreateRequestInput{ProposedName: "Warung Sari"}
	if _, err := setup.service.SubmitRequest(ctx, setup.seller.ID, input); err != nil {
		t.Fatalf("first request: %v", err)
	}

	_, err := setup.service.SubmitRequest(ctx, setup.seller.ID, input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubmitRequestWithoutProfileReturns404(t *testing.T) {
	setup := newShopsTestSetup(t)

	_, err := setup.service.SubmitRequest(context.Background(), uuid.New(), CreateRequestInput{ProposedName: "Ghost Shop"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestReviewApprovalCreatesShopAndEmitsEvent(t *testing.T) {
	setup := newShopsTestSetup(t)
	ctx := context.Background()

	desc := "Fresh produce daily"
	request, err := setup.service.SubmitRequest(ctx, setup.seller.ID, CreateRequestInput{
		ProposedName:        "Warung Sari",
		ProposedDescription: &desc,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	result, err := setup.service.Review(ctx, setup.admin.ID, request.ID, ReviewInput{Decision: enums.ShopRequestStatusApproved})
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if result.Shop == nil {
		t.Fatal("expected shop to be created")
	}
	if result.Shop.Name != "Warung Sari" {
		t.Fatalf("unexpected shop name %q", result.Shop.Name)
	}
	if result.Shop.OwnerID != setup.seller.SellerProfile.ID {
		t.Fatal("shop owner should be the seller profile")
	}
	if result.Shop.ManagerID != setup.seller.ID {
		t.Fatal("shop manager should be the seller user")
	}
	if result.Request.Status != enums.ShopRequestStatusApproved {
		t.Fatalf("expected APPROVED, got %s", result.Request.Status)
	}
	if result.Request.ReviewerID == nil || *result.Request.ReviewerID != setup.admin.AdminProfile.ID {
		t.Fatal("reviewer should be the admin profile")
	}

	var events []models.OutboxEvent
	if err := setup.client.DB().Find(&events).Error; err != nil {
		t.Fatalf("load outbox: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected one outbox event, got %d", len(events))
	}
	if events[0].EventType != enums.EventShopApproved {
		t.Fatalf("unexpected event type %s", events[0].EventType)
	}
	if events[0].AggregateID != result.Shop.ID {
		t.Fatal("event should reference the created shop")
	}
}

func TestReviewRejectionLeavesNoShop(t *testing.T) {
	setup := newShopsTestSetup(t)
	ctx := context.Background()

	request, err := setup.service.SubmitRequest(ctx, setup.seller.ID, CreateRequestInput{ProposedName: "Warung Sari"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	result, err := setup.service.Review(ctx, setup.admin.ID, request.ID, ReviewInput{Decision: enums.ShopRequestStatusRejected})
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if result.Shop != nil {
		t.Fatal("rejection must not create a shop")
	}

	var count int64
	if err := setup.client.DB().Model(&models.Shop{}).Count(&count).Error; err != nil {
		t.Fatalf("count shops: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected zero shops, got %d", count)
	}
}

func TestReviewAlreadyDecidedReturnsInvalidState(t *testing.T) {
	setup := newShopsTestSetup(t)
	ctx := context.Background()

	request, err := setup.service.SubmitRequest(ctx, setup.seller.ID, CreateRequestInput{ProposedName: "Warung Sari"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := setup.service.Review(ctx, setup.admin.ID, request.ID, ReviewInput{Decision: enums.ShopRequestStatusRejected}); err != nil {
		t.Fatalf("first review: %v", err)
	}

	_, err = setup.service.Review(ctx, setup.admin.ID, request.ID, ReviewInput{Decision: enums.ShopRequestStatusApproved})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeInvalidState {
		t.Fatalf("expected invalid state, got %v", err)
	}
}

func TestReviewMissingRequestReturns404(t *testing.T) {
	setup := newShopsTestSetup(t)

	_, err := setup.service.Review(context.Background(), setup.admin.ID, uuid.New(), ReviewInput{Decision: enums.ShopRequestStatusApproved})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMyShopsListsOwnedShops(t *testing.T) {
	setup := newShopsTestSetup(t)
	ctx := context.Background()

	request, err := setup.service.SubmitRequest(ctx, setup.seller.ID, CreateRequestInput{ProposedName: "Warung Sari"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := setup.service.Review(ctx, setup.admin.ID, request.ID, ReviewInput{Decision: enums.ShopRequestStatusApproved}); err != nil {
		t.Fatalf("review: %v", err)
	}

	shops, err := setup.service.MyShops(ctx, setup.seller.ID)
	if err != nil {
		t.Fatalf("my shops: %v", err)
	}
	if len(shops) != 1 {
		t.Fatalf("expected one shop, got %d", len(shops))
	}
}
