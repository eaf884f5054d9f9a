package users

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/radityaprast/pasarlokal-backend/pkg/db"
	"github.com/radityaprast/pasarlokal-backend/pkg/db/dbtest"
	"github.com/radityaprast/pasarlokal-backend/pkg/db/models"
	"github.com/radityaprast/pasarlokal-backend/pkg/enums"
	pkgerrors "github.com/radityaprast/pasarlokal-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *db.Client) {
	t.Helper()
	client := db.NewWithConn(dbtest.Open(t))
	svc, err := NewService(NewRepository(client.DB()))
	if err != nil {
		t.Fatalf("new users service: %v", err)
	}
	return svc, client
}

func seedUser(t *testing.T, client *db.Client, email string, role enums.UserRole, active bool) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "x",
		Role:         role,
		IsActive:     active,
	}
	if role == enums.RoleCustomer {
		phone := "081234567890"
		user.CustomerProfile = &models.CustomerProfile{
			ID:          uuid.New(),
			UserID:      user.ID,
			FullName:    "Customer " + email,
			PhoneNumber: &phone,
		}
	}
	if err := client.DB().Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return user
}

func TestListCustomersOnlyReturnsCustomerRole(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	customer := seedUser(t, client, "ayu@example.com", enums.RoleCustomer, true)
	seedUser(t, client, "seller@example.com", enums.RoleSeller, true)
	seedUser(t, client, "admin@example.com", enums.RoleAdmin, true)

	rows, err := svc.ListCustomers(ctx)
	if err != nil {
		t.Fatalf("list customers: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one customer row, got %d", len(rows))
	}
	if rows[0].ID != customer.ID {
		t.Fatalf("unexpected customer id %s", rows[0].ID)
	}
	if rows[0].FullName != "Customer ayu@example.com" {
		t.Fatalf("profile name not flattened: %q", rows[0].FullName)
	}
	if rows[0].ProfileID == nil {
		t.Fatal("expected profile id on the summary")
	}
}

func TestSetCustomerStatusTogglesActivation(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	customer := seedUser(t, client, "ayu@example.com", enums.RoleCustomer, true)

	dto, err := svc.SetCustomerStatus(ctx, customer.ID, false)
	if err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if dto.IsActive {
		t.Fatal("dto should reflect the deactivated state")
	}

	var stored models.User
	if err := client.DB().First(&stored, "id = ?", customer.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.IsActive {
		t.Fatal("deactivation was not persisted")
	}

	if _, err := svc.SetCustomerStatus(ctx, customer.ID, true); err != nil {
		t.Fatalf("reactivate: %v", err)
	}
	if err := client.DB().First(&stored, "id = ?", customer.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if !stored.IsActive {
		t.Fatal("reactivation was not persisted")
	}
}

func TestUpdateProfileOnlyTouchesProvidedFields(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	customer := seedUser(t, client, "ayu@example.com", enums.RoleCustomer, true)

	city := "Bandung"
	state := "Jawa Barat"
	if _, err := svc.UpdateProfile(ctx, customer.ID, UpdateProfileInput{
		DefaultCity:  &city,
		DefaultState: &state,
	}); err != nil {
		t.Fatalf("seed address: %v", err)
	}

	phone := "089876543210"
	dto, err := svc.UpdateProfile(ctx, customer.ID, UpdateProfileInput{PhoneNumber: &phone})
	if err != nil {
		t.Fatalf("update phone: %v", err)
	}
	if dto.PhoneNumber == nil || *dto.PhoneNumber != phone {
		t.Fatalf("dto phone = %v, want %s", dto.PhoneNumber, phone)
	}

	var stored models.CustomerProfile
	if err := client.DB().First(&stored, "user_id = ?", customer.ID).Error; err != nil {
		t.Fatalf("reload profile: %v", err)
	}
	if stored.PhoneNumber == nil || *stored.PhoneNumber != phone {
		t.Fatalf("phone not persisted: %v", stored.PhoneNumber)
	}
	if stored.FullName != "Customer ayu@example.com" {
		t.Fatalf("full name should be untouched, got %q", stored.FullName)
	}
	if stored.DefaultCity == nil || *stored.DefaultCity != city {
		t.Fatalf("city should survive the phone update, got %v", stored.DefaultCity)
	}
	if stored.DefaultState == nil || *stored.DefaultState != state {
		t.Fatalf("state should survive the phone update, got %v", stored.DefaultState)
	}
}

func TestProfileNotFoundForNonCustomers(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	seller := seedUser(t, client, "seller@example.com", enums.RoleSeller, true)

	_, err := svc.Profile(ctx, seller.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found for seller profile lookup, got %v", err)
	}

	name := "New Name"
	_, err = svc.UpdateProfile(ctx, seller.ID, UpdateProfileInput{FullName: &name})
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found for seller profile update, got %v", err)
	}
}

func TestSetCustomerStatusRejectsNonCustomers(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	seller := seedUser(t, client, "seller@example.com", enums.RoleSeller, true)

	_, err := svc.SetCustomerStatus(ctx, seller.ID, false)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found for non-customer, got %v", err)
	}

	_, err = svc.SetCustomerStatus(ctx, uuid.New(), false)
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found for unknown id, got %v", err)
	}
}
