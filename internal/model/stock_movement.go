package model

import (
	"time"

	"github.com/google/uuid"
)

// StockMovement records every quantity change on an item, written inside the
// same transaction as the order that caused it.
type StockMovement struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ItemID uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind   string    `gorm:"not null"` // "sale" | "purchase"
	// Quantity is positive for inbound stock, negative for outbound.
	Quantity    int        `gorm:"not null"`
	ReferenceID *uuid.UUID `gorm:"type:uuid"` // originating order id
	UserID      uuid.UUID  `gorm:"type:uuid;index;not null"`
	CreatedAt   time.Time
}

// TableName overrides GORM's default pluralization.
func (StockMovement) TableName() string { return "stock_movements" }
