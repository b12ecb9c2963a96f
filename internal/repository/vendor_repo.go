package repository

import (
	"context"

	"inventra/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VendorRepository interface {
	Create(ctx context.Context, v *model.Vendor) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Vendor, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.Vendor, error)
}

type vendorRepo struct{ db *gorm.DB }

func NewVendorRepository(db *gorm.DB) VendorRepository { return &vendorRepo{db: db} }

func (r *vendorRepo) Create(ctx context.Context, v *model.Vendor) error {
	return GetDB(ctx, r.db).Create(v).Error
}

func (r *vendorRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Vendor, error) {
	var v model.Vendor
	err := GetDB(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).First(&v).Error
	return &v, err
}

func (r *vendorRepo) List(ctx context.Context, userID uuid.UUID) ([]model.Vendor, error) {
	var vendors []model.Vendor
	err := GetDB(ctx, r.db).Where("user_id = ?", userID).Order("name ASC").Find(&vendors).Error
	return vendors, err
}
