package payloads

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/radityaprast/pasarlokal-backend/pkg/enums"
)

// OrderCreatedEvent signals that checkout produced a new order.
type OrderCreatedEvent struct {
	OrderID       uuid.UUID           `json:"order_id"`
	OrderNumber   string              `json:"order_number"`
	CustomerID    uuid.UUID           `json:"customer_id"`
	Status        enums.OrderStatus   `json:"status"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	PaymentMethod enums.PaymentMethod `json:"payment_method"`
	ItemCount     int                 `json:"item_count"`
}

// OrderStatusChangedEvent is emitted on every lifecycle transition after
// creation (approve, ship, deliver, cancel).
type OrderStatusChangedEvent struct {
	OrderID     uuid.UUID         `json:"order_id"`
	OrderNumber string            `json:"order_number"`
	CustomerID  uuid.UUID         `json:"customer_id"`
	OldStatus   enums.OrderStatus `json:"old_status"`
	NewStatus   enums.OrderStatus `json:"new_status"`
	ChangedAt   time.Time         `json:"changed_at"`
}

// ShopApprovedEvent is emitted when an admin approves a shop creation request
// and the storefront goes live.
type ShopApprovedEvent struct {
	ShopID     uuid.UUID `json:"shop_id"`
	RequestID  uuid.UUID `json:"request_id"`
	SellerID   uuid.UUID `json:"seller_id"`
	ShopName   string    `json:"shop_name"`
	ApprovedAt time.Time `json:"approved_at"`
}
