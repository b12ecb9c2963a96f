package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment statuses for purchase orders.
const (
	PaymentUnpaid = "UNPAID"
	PaymentPaid   = "PAID"
)

// PurchaseOrder mirrors SaleOrder for inbound stock. Vendor fields are
// snapshots. Mutable only through PaymentStatus after creation.
type PurchaseOrder struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VendorID      *uuid.UUID `gorm:"type:uuid"`
	VendorName    string     `gorm:"not null"`
	VendorAddress string
	PaymentStatus string          `gorm:"type:varchar(10);not null;default:'UNPAID'"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	UserID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	CreatedAt     time.Time

	Items []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID"`
}

// PurchaseOrderItem is one line of a purchase order, snapshot semantics as in
// SaleOrderItem.
type PurchaseOrderItem struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PurchaseOrderID uuid.UUID `gorm:"type:uuid;index;not null"`
	ItemID          uuid.UUID `gorm:"type:uuid;not null"`
	ItemName        string    `gorm:"not null"`
	Quantity        int       `gorm:"not null"`
	Rate            decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}
