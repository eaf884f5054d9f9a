package guestbook

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/radityaprast/pasarlokal-backend/pkg/db"
	"github.com/radityaprast/pasarlokal-backend/pkg/db/dbtest"
	"github.com/radityaprast/pasarlokal-backend/pkg/db/models"
	pkgerrors "github.com/radityaprast/pasarlokal-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *db.Client) {
	t.Helper()
	client := db.NewWithConn(dbtest.Open(t))
	svc, err := NewService(client)
	if err != nil {
		t.Fatalf("new guestbook service: %v", err)
	}
	return svc, client
}

func TestCreateAnonymousEntry(t *testing.T) {
	svc, _ := newTestService(t)

	entry, err := svc.Create(context.Background(), nil, CreateInput{
		Name:    "Wayan",
		Message: "Pasar yang sangat lengkap!",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if entry.UserID != nil {
		t.Fatal("anonymous entries must not carry a user id")
	}
}

func TestCreateAuthenticatedEntryKeepsUserID(t *testing.T) {
	svc, _ := newTestService(t)

	userID := uuid.New()
	entry, err := svc.Create(context.Background(), &userID, CreateInput{
		Name:    "Made",
		Message: "Pengiriman cepat, terima kasih.",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if entry.UserID == nil || *entry.UserID != userID {
		t.Fatal("authenticated entries must carry the user id")
	}
}

func TestCreateRejectsShortFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, nil, CreateInput{Name: "W", Message: "Halo semuanya"})
	assertValidation(t, err)

	_, err = svc.Create(ctx, nil, CreateInput{Name: "Wayan", Message: "Hai"})
	assertValidation(t, err)

	// Whitespace padding must not satisfy the minimum.
	_, err = svc.Create(ctx, nil, CreateInput{Name: "Wayan", Message: "ab   "})
	assertValidation(t, err)
}

func TestListNewestFirst(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	for _, msg := range []string{"pesan pertama", "pesan kedua"} {
		if _, err := svc.Create(ctx, nil, CreateInput{Name: "Wayan", Message: msg}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	// Push the second entry later on the clock; sqlite timestamps can tie.
	if err := client.DB().Model(&models.GuestBookEntry{}).
		Where("message = ?", "pesan kedua").
		Update("created_at", "2030-01-01 00:00:00").Error; err != nil {
		t.Fatalf("bump timestamp: %v", err)
	}

	entries, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Message != "pesan kedua" {
		t.Fatalf("expected newest first, got %q", entries[0].Message)
	}
}

func TestDeleteMissingEntryIsNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	err := svc.Delete(ctx, uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}

	entry, err := svc.Create(ctx, nil, CreateInput{Name: "Wayan", Message: "akan dihapus segera"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, entry.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func assertValidation(t *testing.T, err error) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION, got %v", err)
	}
}
