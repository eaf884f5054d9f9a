package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/radityaprast/pasarlokal-backend/pkg/enums"
)

// Payment records how an order was (or will be) paid. COD orders stay
// PENDING until settlement; card payments are marked COMPLETED at checkout.
type Payment struct {
	ID      uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID uuid.UUID           `gorm:"column:order_id;type:uuid;not null;uniqueIndex"`
	Method  enums.PaymentMethod `gorm:"column:method;type:text;not null"`
	Status  enums.PaymentStatus `gorm:"column:status;type:text;not null;default:'PENDING'"`
	Amount  decimal.Decimal     `gorm:"column:amount;type:numeric(14,2);not null"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
