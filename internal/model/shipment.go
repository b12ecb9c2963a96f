package model

import (
	"time"

	"github.com/google/uuid"
)

// Shipment statuses. Status updates are unconditional overwrites — no
// transition rules are enforced.
const (
	ShipmentInTransit = "IN_TRANSIT"
	ShipmentDelivered = "DELIVERED"
	ShipmentReturned  = "RETURNED"
)

// Shipment is created once per DELIVERY sale order, immediately after the
// order commits. TrackingID is 11 characters drawn from [A-Z0-9].
type Shipment struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleOrderID  uuid.UUID `gorm:"type:uuid;index;not null"`
	CustomerName string    `gorm:"not null"`
	Carrier      string    `gorm:"type:varchar(10);not null"`
	TrackingID   string    `gorm:"type:varchar(11);uniqueIndex;not null"`
	Status       string    `gorm:"type:varchar(20);not null;default:'IN_TRANSIT'"`
	UserID       uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedAt    time.Time
}
