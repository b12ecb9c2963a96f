package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Delivery modes.
const (
	DeliveryPickup   = "PICKUP"
	DeliveryDelivery = "DELIVERY"
)

// Carriers.
const (
	CarrierFedEx = "FEDEX"
	CarrierUPS   = "UPS"
	CarrierUSPS  = "USPS"
	CarrierDHL   = "DHL"
	CarrierOther = "OTHER"
)

// SaleOrder is the persisted result of a fulfillment. Customer fields are a
// snapshot captured at order time — NOT a live reference — so editing the
// customer afterwards does not retroactively alter the order. Immutable after
// creation except PaymentReceived and InvoicePath.
type SaleOrder struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// CustomerID is kept for traceability only; no FK constraint on purpose.
	CustomerID      *uuid.UUID `gorm:"type:uuid"`
	CustomerName    string     `gorm:"not null"`
	CustomerAddress string
	CustomerCity    string
	CustomerState   string
	CustomerPincode string
	CustomerEmail   *string
	ModeOfDelivery  string          `gorm:"type:varchar(10);not null"`
	Carrier         string          `gorm:"type:varchar(10);not null"`
	PaymentReceived bool            `gorm:"not null;default:false"`
	Discount        decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// InvoicePath is relative to INVOICE_STORAGE_PATH; nil until generated.
	InvoicePath *string
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedAt   time.Time

	Items []SaleOrderItem `gorm:"foreignKey:SaleOrderID"`
}

// SaleOrderItem is one line of a sale order. ItemID and ItemName are
// snapshots; Rate is the price at time of sale, independent of the item's
// current selling price.
type SaleOrderItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleOrderID uuid.UUID `gorm:"type:uuid;index;not null"`
	ItemID      uuid.UUID `gorm:"type:uuid;not null"`
	ItemName    string    `gorm:"not null"`
	Quantity    int       `gorm:"not null"`
	Rate        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}
