package repository

import (
	"context"

	"inventra/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShipmentRepository interface {
	// Create returns gorm.ErrDuplicatedKey when the tracking id collides with
	// an existing shipment; callers regenerate and retry.
	Create(ctx context.Context, s *model.Shipment) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Shipment, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.Shipment, error)
	UpdateStatus(ctx context.Context, userID, id uuid.UUID, status string) error
}

type shipmentRepo struct{ db *gorm.DB }

func NewShipmentRepository(db *gorm.DB) ShipmentRepository { return &shipmentRepo{db: db} }

func (r *shipmentRepo) Create(ctx context.Context, s *model.Shipment) error {
	return GetDB(ctx, r.db).Create(s).Error
}

func (r *shipmentRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Shipment, error) {
	var s model.Shipment
	err := GetDB(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).First(&s).Error
	return &s, err
}

func (r *shipmentRepo) List(ctx context.Context, userID uuid.UUID) ([]model.Shipment, error) {
	var shipments []model.Shipment
	err := GetDB(ctx, r.db).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&shipments).Error
	return shipments, err
}

func (r *shipmentRepo) UpdateStatus(ctx context.Context, userID, id uuid.UUID, status string) error {
	return GetDB(ctx, r.db).Model(&model.Shipment{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("status", status).Error
}
