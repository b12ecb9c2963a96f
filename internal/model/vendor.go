package model

import (
	"time"

	"github.com/google/uuid"
)

// Vendor supplies inbound stock via purchase orders.
type Vendor struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"not null"`
	Email       string    `gorm:"index"`
	PhoneNumber string
	Address     string
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
