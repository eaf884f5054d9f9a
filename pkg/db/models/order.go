package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/radityaprast/pasarlokal-backend/pkg/enums"
)

// Order is the customer-facing purchase record. Item prices and the total
// are snapshotted at checkout and never re-derived from the catalog.
type Order struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber string            `gorm:"column:order_number;not null;uniqueIndex"`
	CustomerID  uuid.UUID         `gorm:"column:customer_id;type:uuid;not null"`
	Status      enums.OrderStatus `gorm:"column:status;type:text;not null;default:'PENDING'"`
	TotalAmount decimal.Decimal   `gorm:"column:total_amount;type:numeric(14,2);not null"`

	ShippingName       string  `gorm:"column:shipping_name;not null"`
	ShippingPhone      *string `gorm:"column:shipping_phone"`
	ShippingAddress    string  `gorm:"column:shipping_address;not null"`
	ShippingCity       string  `gorm:"column:shipping_city;not null"`
	ShippingState      string  `gorm:"column:shipping_state;not null"`
	ShippingPostalCode string  `gorm:"column:shipping_postal_code;not null"`
	ShippingCountry    string  `gorm:"column:shipping_country;not null"`

	Items    []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payment  *Payment    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Shipment *Shipment   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	Customer *CustomerProfile `gorm:"foreignKey:CustomerID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderItem snapshots one purchased product line.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID       `gorm:"column:order_id;type:uuid;not null"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	Quantity  int             `gorm:"column:quantity;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
