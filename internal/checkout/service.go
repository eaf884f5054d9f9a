package checkout

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/radityaprast/pasarlokal-backend/internal/cart"
	"github.com/radityaprast/pasarlokal-backend/internal/users"
	"github.com/radityaprast/pasarlokal-backend/pkg/db"
	"github.com/radityaprast/pasarlokal-backend/pkg/db/models"
	"github.com/radityaprast/pasarlokal-backend/pkg/enums"
	pkgerrors "github.com/radityaprast/pasarlokal-backend/pkg/errors"
	"github.com/radityaprast/pasarlokal-backend/pkg/outbox"
	"github.com/radityaprast/pasarlokal-backend/pkg/outbox/payloads"
)

// Checkout retries this many times when the generated order number collides.
const maxOrderNumberAttempts = 3

type outboxEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Input is the checkout payload. The shipping block is snapshotted onto the
// order as-is.
type Input struct {
	PaymentMethod      enums.PaymentMethod `json:"payment_method" validate:"required"`
	ShippingName       string              `json:"shipping_name" validate:"required"`
	ShippingPhone      *string             `json:"shipping_phone,omitempty"`
	ShippingAddress    string              `json:"shipping_address" validate:"required"`
	ShippingCity       string              `json:"shipping_city" validate:"required"`
	ShippingState      string              `json:"shipping_state" validate:"required"`
	ShippingPostalCode string              `json:"shipping_postal_code" validate:"required"`
	ShippingCountry    string              `json:"shipping_country" validate:"required"`
}

// Service turns a cart into an order.
type Service interface {
	Checkout(ctx context.Context, customerUserID uuid.UUID, input Input) (*models.Order, error)
}

type service struct {
	db     *db.Client
	outbox outboxEmitter
	now    func() time.Time
}

// NewService builds the checkout service.
func NewService(client *db.Client, emitter outboxEmitter) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	if emitter == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "outbox emitter required")
	}
	return &service{db: client, outbox: emitter, now: time.Now}, nil
}

func (s *service) Checkout(ctx context.Context, customerUserID uuid.UUID, input Input) (*models.Order, error) {
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}

	profile, err := users.NewRepository(s.db.DB()).CustomerProfileByUserID(ctx, customerUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load customer profile")
	}

	var order *models.Order
	for attempt := 0; attempt < maxOrderNumberAttempts; attempt++ {
		order, err = s.checkoutOnce(ctx, customerUserID, profile, input)
		if err == nil {
			return order, nil
		}
		if !db.IsUniqueViolation(errors.Unwrap(err), "") && !db.IsUniqueViolation(err, "") {
			return nil, err
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "could not allocate an order number")
}

func (s *service) checkoutOnce(ctx context.Context, customerUserID uuid.UUID, profile *models.CustomerProfile, input Input) (*models.Order, error) {
	var order *models.Order
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := cart.NewRepository(tx)
		basket, err := cartRepo.FindOrCreateByCustomer(ctx, profile.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
		}
		if len(basket.Items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		now := s.now().UTC()
		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(basket.Items))
		for _, line := range basket.Items {
			if line.Product == nil {
				return pkgerrors.New(pkgerrors.CodeInternal, "cart line lost its product")
			}
			subtotal := line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			total = total.Add(subtotal)
			items = append(items, models.OrderItem{
				ID:        uuid.New(),
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     line.Product.Price,
			})
		}

		status := enums.OrderStatusApproved
		paymentStatus := enums.PaymentStatusCompleted
		if input.PaymentMethod == enums.PaymentMethodCOD {
			status = enums.OrderStatusPending
			paymentStatus = enums.PaymentStatusPending
		}

		order = &models.Order{
			ID:                 uuid.New(),
			OrderNumber:        newOrderNumber(now),
			CustomerID:         profile.ID,
			Status:             status,
			TotalAmount:        total,
			ShippingName:       input.ShippingName,
			ShippingPhone:      input.ShippingPhone,
			ShippingAddress:    input.ShippingAddress,
			ShippingCity:       input.ShippingCity,
			ShippingState:      input.ShippingState,
			ShippingPostalCode: input.ShippingPostalCode,
			ShippingCountry:    input.ShippingCountry,
		}
		if err := tx.Create(order).Error; err != nil {
			if db.IsUniqueViolation(err, "") {
				return err
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order items")
		}
		order.Items = items

		payment := &models.Payment{
			ID:      uuid.New(),
			OrderID: order.ID,
			Method:  input.PaymentMethod,
			Status:  paymentStatus,
			Amount:  total,
		}
		if err := tx.Create(payment).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create payment")
		}
		order.Payment = payment

		if err := cartRepo.ClearItemsTx(tx, basket.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
		}

		event := outbox.DomainEvent{
			EventType:     enums.EventOrderCreated,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Actor:         &outbox.ActorRef{UserID: customerUserID, Role: string(enums.RoleCustomer)},
			Data: payloads.OrderCreatedEvent{
				OrderID:       order.ID,
				OrderNumber:   order.OrderNumber,
				CustomerID:    order.CustomerID,
				Status:        order.Status,
				TotalAmount:   order.TotalAmount,
				PaymentMethod: input.PaymentMethod,
				ItemCount:     len(items),
			},
		}
		if err := s.outbox.Emit(ctx, tx, event); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "emit order created")
		}

		// Non-COD payments are captured immediately, so the order passes
		// through PENDING and lands APPROVED in the same transaction.
		if order.Status == enums.OrderStatusApproved {
			approved := outbox.DomainEvent{
				EventType:     enums.EventOrderApproved,
				AggregateType: enums.AggregateOrder,
				AggregateID:   order.ID,
				Actor:         &outbox.ActorRef{UserID: customerUserID, Role: string(enums.RoleCustomer)},
				Data: payloads.OrderStatusChangedEvent{
					OrderID:     order.ID,
					OrderNumber: order.OrderNumber,
					CustomerID:  order.CustomerID,
					OldStatus:   enums.OrderStatusPending,
					NewStatus:   enums.OrderStatusApproved,
					ChangedAt:   now,
				},
			}
			if err := s.outbox.Emit(ctx, tx, approved); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "emit order approved")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func newOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%03d", now.Format("20060102150405"), rand.Intn(1000))
}
