package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer is an address-book entry. Sale orders copy its fields at order
// time instead of referencing it, so later edits never rewrite history.
type Customer struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"not null"`
	Email       string    `gorm:"index"`
	PhoneNumber string
	Address     string
	City        string
	State       string
	Pincode     string
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
