package model

import (
	"time"

	"github.com/google/uuid"
)

// User is an account owner. Every business entity in the system (items,
// customers, orders, shipments) is scoped to exactly one user.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CompanyName  string    `gorm:"not null"`
	PhoneNumber  string
	Active       bool `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
