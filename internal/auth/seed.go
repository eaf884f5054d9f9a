package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/radityaprast/pasarlokal-backend/internal/users"
	"github.com/radityaprast/pasarlokal-backend/pkg/config"
	"github.com/radityaprast/pasarlokal-backend/pkg/db"
	"github.com/radityaprast/pasarlokal-backend/pkg/db/models"
	"github.com/radityaprast/pasarlokal-backend/pkg/enums"
	pkgerrors "github.com/radityaprast/pasarlokal-backend/pkg/errors"
	"github.com/radityaprast/pasarlokal-backend/pkg/logger"
	"github.com/radityaprast/pasarlokal-backend/pkg/security"
)

// EnsureAdminSeed creates the bootstrap admin account when the seed config is
// set. Safe to run on every boot: an existing account is left untouched.
func EnsureAdminSeed(ctx context.Context, client *db.Client, passwordCfg config.PasswordConfig, seedCfg config.SeedAdminConfig, logg *logger.Logger) error {
	if !seedCfg.Enabled() {
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(seedCfg.Email))

	return client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := users.NewRepository(tx)

		existing, err := repo.FindByEmail(ctx, email)
		if err == nil {
			if existing.Role != enums.RoleAdmin {
				return pkgerrors.New(pkgerrors.CodeConflict, "seed email belongs to a non-admin account")
			}
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check seed admin")
		}

		passwordHash, err := security.HashPassword(seedCfg.Password, passwordCfg)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash seed password")
		}

		admin := &models.User{
			ID:           uuid.New(),
			Email:        email,
			PasswordHash: passwordHash,
			Role:         enums.RoleAdmin,
			IsActive:     true,
		}
		admin.AdminProfile = &models.AdminProfile{
			ID:       uuid.New(),
			UserID:   admin.ID,
			FullName: seedCfg.FullName,
		}
		if err := repo.Create(ctx, admin); err != nil {
			if db.IsUniqueViolation(err, "") {
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create seed admin")
		}

		if logg != nil {
			logg.Info(logg.WithFields(ctx, map[string]any{"email": email}), "seed admin created")
		}
		return nil
	})
}
