package feedback

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

type feedbackTestSetup struct {
	service  Service
	client   *db.Client
	customer *models.User
	product  *models.Product
	order    *models.Order
}

func newFeedbackTestSetup(t *testing.T) *feedbackTestSetup {
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
		Stock:      5,
		IsActive:   true,
		ShopID:     uuid.New(),
		CategoryID: uuid.New(),
		SellerID:   uuid.New(),
	}
	if err := client.DB().Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}

	order := &models.Order{
		ID:                 uuid.New(),
		OrderNumber:        "ORD-20250812120000-001",
		CustomerID:         customer.CustomerProfile.ID,
		Status:             enums.OrderStatusDelivered,
		TotalAmount:        decimal.NewFromInt(25000),
		ShippingName:       "Budi Santoso",
		ShippingAddress:    "Jl. Merdeka 1",
		ShippingCity:       "Bandung",
		ShippingState:      "Jawa Barat",
		ShippingPostalCode: "40111",
		ShippingCountry:    "ID",
	}
	if err := client.DB().Create(order).Error; err != nil {
		t.Fatalf("create order: %v", err)
	}
	item := &models.OrderItem{
		ID:        uuid.New(),
		OrderID:   order.ID,
		ProductID: product.ID,
		Quantity:  1,
		Price:     product.Price,
	}
	if err := client.DB().Create(item).Error; err != nil {
		t.Fatalf("create order item: %v", err)
	}

	return &feedbackTestSetup{service: svc, client: client, customer: customer, product: product, order: order}
}

func (s *feedbackTestSetup) sampleInput() CreateInput {
	return CreateInput{
		ProductID: s.product.ID,
		OrderID:   s.order.ID,
		Rating:    5,
	}
}

func TestCreateFeedbackHappyPath(t *testing.T) {
	setup := newFeedbackTestSetup(t)

	row, err := setup.service.Create(context.Background(), setup.customer.ID, setup.sampleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if row.Rating != 5 {
		t.Fatalf("unexpected rating %d", row.Rating)
	}
}

func TestCreateFeedbackMissingProductReturns404(t *testing.T) {
	setup := newFeedbackTestSetup(t)

	input := setup.sampleInput()
	input.ProductID = uuid.New()
	_, err := setup.service.Create(context.Background(), setup.customer.ID, input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateFeedbackRequiresDeliveredOrder(t *testing.T) {
	setup := newFeedbackTestSetup(t)

	if err := setup.client.DB().Model(&models.Order{}).
		Where("id = ?", setup.order.ID).
		UpdateColumn("status", enums.OrderStatusShipped).Error; err != nil {
		t.Fatalf("update order: %v", err)
	}

	_, err := setup.service.Create(context.Background(), setup.customer.ID, setup.sampleInput())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestCreateFeedbackRejectsForeignOrder(t *testing.T) {
	setup := newFeedbackTestSetup(t)

	stranger := &models.User{
		ID:           uuid.New(),
		Email:        "stranger@example.com",
		PasswordHash: "hash",
		Role:         enums.RoleCustomer,
		IsActive:     true,
		CustomerProfile: &models.CustomerProfile{
			ID:       uuid.New(),
			FullName: "Stranger",
		},
	}
	stranger.CustomerProfile.UserID = stranger.ID
	if err := setup.client.DB().Create(stranger).Error; err != nil {
		t.Fatalf("create stranger: %v", err)
	}

	_, err := setup.service.Create(context.Background(), stranger.ID, setup.sampleInput())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestCreateFeedbackDuplicateReturns409(t *testing.T) {
	setup := newFeedbackTestSetup(t)
	ctx := context.Background()

	if _, err := setup.service.Create(ctx, setup.customer.ID, setup.sampleInput()); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := setup.service.Create(ctx, setup.customer.ID, setup.sampleInput())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestListByProductIncludesReviewerEmail(t *testing.T) {
	setup := newFeedbackTestSetup(t)
	ctx := context.Background()

	comment := "Sangat segar"
	input := setup.sampleInput()
	input.Comment = &comment
	if _, err := setup.service.Create(ctx, setup.customer.ID, input); err != nil {
		t.Fatalf("create: %v", err)
	}

	rows, err := setup.service.ListByProduct(ctx, setup.product.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one review, got %d", len(rows))
	}
	if rows[0].ReviewerEmail != "buyer@example.com" {
		t.Fatalf("expected reviewer email, got %q", rows[0].ReviewerEmail)
	}
	if rows[0].Comment == nil || *rows[0].Comment != comment {
		t.Fatal("expected comment to round-trip")
	}
}

func TestReviewedProductsGroupsByOrder(t *testing.T) {
	setup := newFeedbackTestSetup(t)
	ctx := context.Background()

	if _, err := setup.service.Create(ctx, setup.customer.ID, setup.sampleInput()); err != nil {
		t.Fatalf("create: %v", err)
	}

	result, err := setup.service.ReviewedProducts(ctx, setup.customer.ID, []uuid.UUID{setup.order.ID, uuid.New()})
	if err != nil {
		t.Fatalf("reviewed products: %v", err)
	}
	ids := result[setup.order.ID]
	if len(ids) != 1 || ids[0] != setup.product.ID {
		t.Fatalf("unexpected reviewed products %v", ids)
	}
}

func TestRatingSummaries(t *testing.T) {
	setup := newFeedbackTestSetup(t)
	ctx := context.Background()

	if _, err := setup.service.Create(ctx, setup.customer.ID, setup.sampleInput()); err != nil {
		t.Fatalf("create: %v", err)
	}

	repo := NewRepository(setup.client.DB())
	summaries, err := repo.RatingSummaries(ctx, []uuid.UUID{setup.product.ID})
	if err != nil {
		t.Fatalf("summaries: %v", err)
	}
	summary, ok := summaries[setup.product.ID]
	if !ok {
		t.Fatal("expected summary for reviewed product")
	}
	if summary.AverageRating != 5 || summary.FeedbackCount != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}
