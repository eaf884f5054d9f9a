package auth

import (
	"context"
	"testing"

	pkgAuth "github.com/radityaprast/pasarlokal-backend/pkg/auth"
	"github.com/radityaprast/pasarlokal-backend/pkg/config"
	"github.com/radityaprast/pasarlokal-backend/pkg/db"
	"github.com/radityaprast/pasarlokal-backend/pkg/db/dbtest"
	"github.com/radityaprast/pasarlokal-backend/pkg/db/models"
	"github.com/radityaprast/pasarlokal-backend/pkg/enums"
	pkgerrors "github.com/radityaprast/pasarlokal-backend/pkg/errors"
	"github.com/radityaprast/pasarlokal-backend/pkg/security"
)

func newTestService(t *testing.T) (Service, *db.Client) {
	t.Helper()
	client := db.NewWithConn(dbtest.Open(t))
	svc, err := NewService(ServiceParams{
		DB:             client,
		PasswordConfig: config.PasswordConfig{},
		JWTConfig:      testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, client
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "pasarlokal", ExpirationMinutes: 30}
}

func TestRegisterCreatesCustomerWithProfile(t *testing.T) {
	svc, client := newTestService(t)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "Buyer@Example.com",
		Password: "Secret123!",
		FullName: "Budi Santoso",
		Role:     enums.RoleCustomer,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.User.Email != "buyer@example.com" {
		t.Fatalf("expected lowercased email, got %s", resp.User.Email)
	}
	if resp.User.Role != enums.RoleCustomer {
		t.Fatalf("expected customer role, got %s", resp.User.Role)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected access token")
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Role != enums.RoleCustomer {
		t.Fatalf("expected customer claim, got %s", claims.Role)
	}

	var profile models.CustomerProfile
	if err := client.DB().Where("user_id = ?", resp.User.ID).First(&profile).Error; err != nil {
		t.Fatalf("customer profile not created: %v", err)
	}
	if profile.FullName != "Budi Santoso" {
		t.Fatalf("unexpected profile name %q", profile.FullName)
	}
}

func TestRegisterCreatesSellerProfile(t *testing.T) {
	svc, client := newTestService(t)

	phone := "+62811111111"
	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:       "seller@example.com",
		Password:    "Secret123!",
		FullName:    "Sari Dewi",
		PhoneNumber: &phone,
		Role:        enums.RoleSeller,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	var profile models.SellerProfile
	if err := client.DB().Where("user_id = ?", resp.User.ID).First(&profile).Error; err != nil {
		t.Fatalf("seller profile not created: %v", err)
	}
	if profile.PhoneNumber == nil || *profile.PhoneNumber != phone {
		t.Fatal("expected phone number on seller profile")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)

	req := RegisterRequest{
		Email:    "dup@example.com",
		Password: "Secret123!",
		FullName: "First User",
		Role:     enums.RoleCustomer,
	}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(context.Background(), req)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "admin@example.com",
		Password: "Secret123!",
		FullName: "Sneaky Admin",
		Role:     enums.RoleAdmin,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoginSucceedsWithValidCredentials(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "login@example.com",
		Password: "Secret123!",
		FullName: "Login User",
		Role:     enums.RoleCustomer,
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "login@example.com",
		Password: "Secret123!",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected access token")
	}
}

func TestLoginRejectsWrongPasswordAndInactiveAlike(t *testing.T) {
	svc, client := newTestService(t)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "victim@example.com",
		Password: "Secret123!",
		FullName: "Victim User",
		Role:     enums.RoleCustomer,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "victim@example.com",
		Password: "wrong-password",
	})
	assertUnauthorized(t, err)

	if err := client.DB().Model(&models.User{}).
		Where("id = ?", resp.User.ID).
		UpdateColumn("is_active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "victim@example.com",
		Password: "Secret123!",
	})
	assertUnauthorized(t, err)
}

func TestMeReturnsProfileData(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "me@example.com",
		Password: "Secret123!",
		FullName: "Me User",
		Role:     enums.RoleSeller,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	dto, err := svc.Me(context.Background(), resp.User.ID)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if dto.FullName != "Me User" {
		t.Fatalf("expected profile name, got %q", dto.FullName)
	}
}

func TestEnsureAdminSeedIsIdempotent(t *testing.T) {
	client := db.NewWithConn(dbtest.Open(t))
	seed := config.SeedAdminConfig{
		Email:    "root@pasarlokal.id",
		Password: "Bootstrap123!",
		FullName: "Platform Admin",
	}

	for i := 0; i < 2; i++ {
		if err := EnsureAdminSeed(context.Background(), client, config.PasswordConfig{}, seed, nil); err != nil {
			t.Fatalf("seed run %d: %v", i, err)
		}
	}

	var count int64
	if err := client.DB().Model(&models.User{}).Where("email = ?", seed.Email).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one admin, got %d", count)
	}

	var admin models.User
	if err := client.DB().Where("email = ?", seed.Email).First(&admin).Error; err != nil {
		t.Fatalf("load admin: %v", err)
	}
	if admin.Role != enums.RoleAdmin {
		t.Fatalf("expected ADMIN role, got %s", admin.Role)
	}
	ok, err := security.VerifyPassword(seed.Password, admin.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("seed password mismatch (ok=%v err=%v)", ok, err)
	}
}

func assertUnauthorized(t *testing.T, err error) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if typed.Message() != invalidCredentialsMessage {
		t.Fatalf("expected generic message, got %q", typed.Message())
	}
}
