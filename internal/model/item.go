package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is a catalog entry with tracked stock. Quantity is only mutated by the
// order workflows (decremented by sales, incremented by purchases) — never
// directly by a client request.
type Item struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"index;not null"`
	Brand         string
	Description   string
	CategoryID    *uuid.UUID      `gorm:"type:uuid;index"`
	SellingPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity      int             `gorm:"not null;default:0"`
	ReorderPoint  int             `gorm:"not null;default:0"`
	UserID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
}

// OutOfStock and LowStock are derived states — never stored, always
// recomputed from the current quantity on the read path.
func (i *Item) OutOfStock() bool { return i.Quantity == 0 }

func (i *Item) LowStock() bool { return i.Quantity <= i.ReorderPoint }
