package models

import (
	"time"

	"github.com/google/uuid"
)

// Shipment carries the dispatch details of an order. The address fields are
// copied from the order when the shipment row is first created and are not
// overwritten by later courier updates.
type Shipment struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID `gorm:"column:order_id;type:uuid;not null;uniqueIndex"`
	Courier        *string   `gorm:"column:courier"`
	TrackingNumber *string   `gorm:"column:tracking_number"`

	Address    string `gorm:"column:address;not null"`
	City       string `gorm:"column:city;not null"`
	State      string `gorm:"column:state;not null"`
	PostalCode string `gorm:"column:postal_code;not null"`
	Country    string `gorm:"column:country;not null"`

	ShippedAt   *time.Time `gorm:"column:shipped_at"`
	DeliveredAt *time.Time `gorm:"column:delivered_at"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
