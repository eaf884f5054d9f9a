package orders

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

// Service exposes the order lifecycle after checkout: listing, cancellation
// by the buyer, and fulfillment transitions driven by admins.
type Service interface {
	List(ctx context.Context, userID uuid.UUID, role enums.UserRole) ([]AnnotatedOrder, error)
	Get(ctx context.Context, userID uuid.UUID, role enums.UserRole, orderID uuid.UUID) (*models.Order, error)
	Cancel(ctx context.Context, customerUserID uuid.UUID, orderID uuid.UUID) (*models.Order, error)
	Ship(ctx context.Context, adminUserID uuid.UUID, orderID uuid.UUID, input ShipInput) (*models.Order, error)
	Deliver(ctx context.Context, adminUserID uuid.UUID, orderID uuid.UUID) (*models.Order, error)
}

type service struct {
	db     *db.Client
	outbox outboxEmitter
	now    func() time.Time
}

// NewService builds the order lifecycle service.
func NewService(client *db.Client, emitter outboxEmitter) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	if emitter == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "outbox emitter required")
	}
	return &service{db: client, outbox: emitter, now: time.Now}, nil
}

// List is role-scoped: customers see their own orders, sellers see orders
// containing at least one of their products, admins see everything.
func (s *service) List(ctx context.Context, userID uuid.UUID, role enums.UserRole) ([]AnnotatedOrder, error) {
	repo := NewRepository(s.db.DB())
	userRepo := users.NewRepository(s.db.DB())

	switch role {
	case enums.RoleCustomer:
		profile, err := userRepo.CustomerProfileByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer profile not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load customer profile")
		}
		rows, err := repo.ListByCustomer(ctx, profile.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
		}
		return annotate(rows, nil), nil

	case enums.RoleSeller:
		profile, err := userRepo.SellerProfileByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "seller profile not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load seller profile")
		}
		rows, err := repo.ListBySeller(ctx, profile.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
		}
		return s.withBuyerEmails(ctx, repo, rows)

	case enums.RoleAdmin:
		rows, err := repo.ListAll(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
		}
		return s.withBuyerEmails(ctx, repo, rows)

	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role cannot list orders")
	}
}

func (s *service) withBuyerEmails(ctx context.Context, repo *Repository, rows []models.Order) ([]AnnotatedOrder, error) {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	emails, err := repo.BuyerEmails(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve buyer emails")
	}
	return annotate(rows, emails), nil
}

// Get loads a single order for its owner or an admin. Anyone else gets 403.
func (s *service) Get(ctx context.Context, userID uuid.UUID, role enums.UserRole, orderID uuid.UUID) (*models.Order, error) {
	order, err := NewRepository(s.db.DB()).FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}

	if role == enums.RoleAdmin {
		return order, nil
	}
	if role == enums.RoleCustomer {
		profile, err := users.NewRepository(s.db.DB()).CustomerProfileByUserID(ctx, userID)
		if err == nil && profile.ID == order.CustomerID {
			return order, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not your order")
}

// Cancel lets the buyer back out before fulfillment. Orders already handed
// to a courier stay put.
func (s *service) Cancel(ctx context.Context, customerUserID uuid.UUID, orderID uuid.UUID) (*models.Order, error) {
	profile, err := users.NewRepository(s.db.DB()).CustomerProfileByUserID(ctx, customerUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load customer profile")
	}

	var order models.Order
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ? AND customer_id = ?", orderID, profile.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
		}

		switch order.Status {
		case enums.OrderStatusShipped, enums.OrderStatusDelivered:
			return pkgerrors.New(pkgerrors.CodeInvalidState, "order already shipped")
		case enums.OrderStatusCancelled:
			return nil
		}

		oldStatus := order.Status
		if err := s.setStatus(tx, &order, enums.OrderStatusCancelled); err != nil {
			return err
		}
		return s.emitTransition(ctx, tx, &order, oldStatus, enums.EventOrderCancelled,
			customerUserID, enums.RoleCustomer)
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Ship marks the order as handed to a courier. The shipment record is
// created on first ship with the address snapshotted from the order; later
// ships only refresh carrier details and the timestamp.
func (s *service) Ship(ctx context.Context, adminUserID uuid.UUID, orderID uuid.UUID, input ShipInput) (*models.Order, error) {
	var order models.Order
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
		}

		now := s.now().UTC()
		oldStatus := order.Status
		if err := s.setStatus(tx, &order, enums.OrderStatusShipped); err != nil {
			return err
		}

		shipment, err := s.findShipment(tx, order.ID)
		if err != nil {
			return err
		}
		if shipment == nil {
			if err := s.createShipment(tx, &order, &models.Shipment{
				Courier:        input.Courier,
				TrackingNumber: input.TrackingNumber,
				ShippedAt:      &now,
			}); err != nil {
				return err
			}
		} else {
			patch := map[string]any{"shipped_at": now}
			if input.Courier != nil {
				patch["courier"] = *input.Courier
			}
			if input.TrackingNumber != nil {
				patch["tracking_number"] = *input.TrackingNumber
			}
			if err := tx.Model(shipment).Updates(patch).Error; err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update shipment")
			}
		}

		return s.emitTransition(ctx, tx, &order, oldStatus, enums.EventOrderShipped,
			adminUserID, enums.RoleAdmin)
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Deliver closes out fulfillment. Delivering twice is a no-op; delivering a
// cancelled order fails.
func (s *service) Deliver(ctx context.Context, adminUserID uuid.UUID, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
		}

		switch order.Status {
		case enums.OrderStatusCancelled:
			return pkgerrors.New(pkgerrors.CodeInvalidState, "cancelled order cannot be delivered")
		case enums.OrderStatusDelivered:
			return nil
		}

		now := s.now().UTC()
		oldStatus := order.Status
		if err := s.setStatus(tx, &order, enums.OrderStatusDelivered); err != nil {
			return err
		}

		shipment, err := s.findShipment(tx, order.ID)
		if err != nil {
			return err
		}
		if shipment == nil {
			if err := s.createShipment(tx, &order, &models.Shipment{DeliveredAt: &now}); err != nil {
				return err
			}
		} else if err := tx.Model(shipment).Update("delivered_at", now).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update shipment")
		}

		return s.emitTransition(ctx, tx, &order, oldStatus, enums.EventOrderDelivered,
			adminUserID, enums.RoleAdmin)
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *service) setStatus(tx *gorm.DB, order *models.Order, status enums.OrderStatus) error {
	if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", status).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order status")
	}
	order.Status = status
	return nil
}

func (s *service) findShipment(tx *gorm.DB, orderID uuid.UUID) (*models.Shipment, error) {
	var shipment models.Shipment
	err := tx.First(&shipment, "order_id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load shipment")
	}
	return &shipment, nil
}

func (s *service) createShipment(tx *gorm.DB, order *models.Order, shipment *models.Shipment) error {
	shipment.ID = uuid.New()
	shipment.OrderID = order.ID
	shipment.Address = order.ShippingAddress
	shipment.City = order.ShippingCity
	shipment.State = order.ShippingState
	shipment.PostalCode = order.ShippingPostalCode
	shipment.Country = order.ShippingCountry
	if err := tx.Create(shipment).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create shipment")
	}
	return nil
}

func (s *service) emitTransition(ctx context.Context, tx *gorm.DB, order *models.Order, oldStatus enums.OrderStatus, eventType enums.OutboxEventType, actorID uuid.UUID, role enums.UserRole) error {
	event := outbox.DomainEvent{
		EventType:     eventType,
		AggregateType: enums.AggregateOrder,
		AggregateID:   order.ID,
		Actor:         &outbox.ActorRef{UserID: actorID, Role: string(role)},
		Data: payloads.OrderStatusChangedEvent{
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			CustomerID:  order.CustomerID,
			OldStatus:   oldStatus,
			NewStatus:   order.Status,
			ChangedAt:   s.now().UTC(),
		},
	}
	if err := s.outbox.Emit(ctx, tx, event); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "emit order transition")
	}
	return nil
}
