package model

import (
	"time"

	"github.com/google/uuid"
)

// Company holds the per-user company profile printed on invoice headers.
// One profile per user; created lazily on first settings save.
type Company struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID            uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	CompanyName       string    `gorm:"not null"`
	GSTNumber         string    `gorm:"column:gst_number"`
	PhoneNumber       string
	Address           string
	City              string
	State             string
	Pincode           string
	BankName          string
	BankAccountNumber string
	IFSCCode          string `gorm:"column:ifsc_code"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName overrides GORM's default pluralization (companys → companies).
func (Company) TableName() string { return "companies" }
