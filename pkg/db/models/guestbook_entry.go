package models

import (
	"time"

	"github.com/google/uuid"
)

// GuestBookEntry is a public message left on the marketplace guest book.
// UserID is set when the author was signed in.
type GuestBookEntry struct {
	ID      uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name    string     `gorm:"column:name;not null"`
	Email   *string    `gorm:"column:email"`
	Message string     `gorm:"column:message;not null"`
	UserID  *uuid.UUID `gorm:"column:user_id;type:uuid"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
