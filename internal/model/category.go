package model

import (
	"time"

	"github.com/google/uuid"
)

// Category groups catalog items. Scoped per user.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides GORM's default pluralization.
func (Category) TableName() string { return "categories" }
