package guestbook

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/radityaprast/pasarlokal-backend/pkg/db"
	"github.com/radityaprast/pasarlokal-backend/pkg/db/models"
	pkgerrors "github.com/radityaprast/pasarlokal-backend/pkg/errors"
)

// CreateInput is a guestbook submission. Authenticated callers get their
// user ID attached by the handler; anonymous submissions leave it nil.
type CreateInput struct {
	Name    string  `json:"name" validate:"required,min=2"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Message string  `json:"message" validate:"required,min=5"`
}

// Service stores and administers guestbook entries.
type Service interface {
	Create(ctx context.Context, userID *uuid.UUID, input CreateInput) (*models.GuestBookEntry, error)
	List(ctx context.Context) ([]models.GuestBookEntry, error)
	Delete(ctx context.Context, entryID uuid.UUID) error
}

type service struct {
	db *db.Client
}

// NewService builds the guestbook service.
func NewService(client *db.Client) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &service{db: client}, nil
}

func (s *service) Create(ctx context.Context, userID *uuid.UUID, input CreateInput) (*models.GuestBookEntry, error) {
	name := strings.TrimSpace(input.Name)
	message := strings.TrimSpace(input.Message)
	if len(name) < 2 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must be at least 2 characters")
	}
	if len(message) < 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message must be at least 5 characters")
	}

	entry := &models.GuestBookEntry{
		ID:      uuid.New(),
		Name:    name,
		Email:   input.Email,
		Message: message,
		UserID:  userID,
	}
	if err := s.db.DB().WithContext(ctx).Create(entry).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create guestbook entry")
	}
	return entry, nil
}

func (s *service) List(ctx context.Context) ([]models.GuestBookEntry, error) {
	var entries []models.GuestBookEntry
	err := s.db.DB().WithContext(ctx).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list guestbook entries")
	}
	return entries, nil
}

func (s *service) Delete(ctx context.Context, entryID uuid.UUID) error {
	result := s.db.DB().WithContext(ctx).
		Delete(&models.GuestBookEntry{}, "id = ?", entryID)
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, result.Error, "delete guestbook entry")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "guestbook entry not found")
	}
	return nil
}
