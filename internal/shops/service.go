package shops

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/radityaprast/pasarlokal-backend/internal/users"
	"github.com/radityaprast/pasarlokal-backend/pkg/db"
	"github.com/radityaprast/pasarlokal-backend/pkg/db/models"
	"github.com/radityaprast/pasarlokal-backend/pkg/enums"
	pkgerrors "github.com/radityaprast/pasarlokal-backend/pkg/errors"
	"github.com/radityaprast/pasarlokal-backend/pkg/outbox"
	"github.com/radityaprast/pasarlokal-backend/pkg/outbox/payloads"
)

type outboxEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service covers shop onboarding for sellers and admins.
type Service interface {
	SubmitRequest(ctx context.Context, sellerUserID uuid.UUID, input CreateRequestInput) (*RequestDTO, error)
	MyRequests(ctx context.Context, sellerUserID uuid.UUID) ([]RequestDTO, error)
	MyShops(ctx context.Context, sellerUserID uuid.UUID) ([]models.Shop, error)
	ListRequests(ctx context.Context) ([]RequestDTO, error)
	Review(ctx context.Context, adminUserID, requestID uuid.UUID, input ReviewInput) (*ReviewResult, error)
}

type service struct {
	db     *db.Client
	outbox outboxEmitter
}

// NewService builds the shop onboarding service.
func NewService(client *db.Client, emitter outboxEmitter) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	if emitter == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "outbox emitter required")
	}
	return &service{db: client, outbox: emitter}, nil
}

func (s *service) SubmitRequest(ctx context.Context, sellerUserID uuid.UUID, input CreateRequestInput) (*RequestDTO, error) {
	profile, err := s.sellerProfile(ctx, sellerUserID)
	if err != nil {
		return nil, err
	}

	repo := NewRepository(s.db.DB())
	pending, err := repo.HasPendingRequest(ctx, profile.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check pending request")
	}
	if pending {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a pending shop request already exists")
	}

	request := &models.ShopCreationRequest{
		ID:                  uuid.New(),
		SellerID:            profile.ID,
		ProposedName:        input.ProposedName,
		ProposedDescription: input.ProposedDescription,
		Details:             input.Details,
		Status:              enums.ShopRequestStatusPending,
	}
	if err := repo.CreateRequest(ctx, request); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create shop request")
	}
	return requestFromModel(request), nil
}

func (s *service) MyRequests(ctx context.Context, sellerUserID uuid.UUID) ([]RequestDTO, error) {
	profile, err := s.sellerProfile(ctx, sellerUserID)
	if err != nil {
		return nil, err
	}

	rows, err := NewRepository(s.db.DB()).ListRequestsBySeller(ctx, profile.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list shop requests")
	}
	return toRequestDTOs(rows), nil
}

func (s *service) MyShops(ctx context.Context, sellerUserID uuid.UUID) ([]models.Shop, error) {
	profile, err := s.sellerProfile(ctx, sellerUserID)
	if err != nil {
		return nil, err
	}

	shops, err := NewRepository(s.db.DB()).ListShopsByOwner(ctx, profile.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list shops")
	}
	return shops, nil
}

func (s *service) ListRequests(ctx context.Context) ([]RequestDTO, error) {
	rows, err := NewRepository(s.db.DB()).ListRequests(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list shop requests")
	}
	return toRequestDTOs(rows), nil
}

func (s *service) Review(ctx context.Context, adminUserID, requestID uuid.UUID, input ReviewInput) (*ReviewResult, error) {
	if input.Decision != enums.ShopRequestStatusApproved && input.Decision != enums.ShopRequestStatusRejected {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "decision must be APPROVED or REJECTED")
	}

	var result ReviewResult
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		userRepo := users.NewRepository(tx)

		request, err := repo.FindRequestByID(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "shop request not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load shop request")
		}
		if request.Status != enums.ShopRequestStatusPending {
			return pkgerrors.New(pkgerrors.CodeInvalidState, "shop request already decided")
		}

		reviewer, err := userRepo.AdminProfileByUserID(ctx, adminUserID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load reviewer profile")
		}

		now := time.Now().UTC()
		request.Status = input.Decision
		request.ReviewerID = &reviewer.ID
		request.ReviewedAt = &now
		if err := repo.SaveRequest(ctx, request); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save shop request")
		}

		if input.Decision == enums.ShopRequestStatusApproved {
			if request.Seller == nil {
				return pkgerrors.New(pkgerrors.CodeInternal, "request has no seller profile")
			}

			shop := &models.Shop{
				ID:          uuid.New(),
				Name:        request.ProposedName,
				Description: request.ProposedDescription,
				IsActive:    true,
				OwnerID:     request.SellerID,
				ManagerID:   request.Seller.UserID,
			}
			if err := repo.CreateShop(ctx, shop); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create shop")
			}
			result.Shop = shop

			event := outbox.DomainEvent{
				EventType:     enums.EventShopApproved,
				AggregateType: enums.AggregateShop,
				AggregateID:   shop.ID,
				Actor:         &outbox.ActorRef{UserID: adminUserID, Role: string(enums.RoleAdmin)},
				Data: payloads.ShopApprovedEvent{
					ShopID:     shop.ID,
					RequestID:  request.ID,
					SellerID:   request.SellerID,
					ShopName:   shop.Name,
					ApprovedAt: now,
				},
			}
			if err := s.outbox.Emit(ctx, tx, event); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "emit shop approved")
			}
		}

		result.Request = requestFromModel(request)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *service) sellerProfile(ctx context.Context, userID uuid.UUID) (*models.SellerProfile, error) {
	profile, err := users.NewRepository(s.db.DB()).SellerProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "seller profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load seller profile")
	}
	return profile, nil
}

func toRequestDTOs(rows []models.ShopCreationRequest) []RequestDTO {
	dtos := make([]RequestDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *requestFromModel(&rows[i]))
	}
	return dtos
}
