package repository

import (
	"context"

	"inventra/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseOrderRepository interface {
	Create(ctx context.Context, o *model.PurchaseOrder) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.PurchaseOrder, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.PurchaseOrder, error)
	UpdatePaymentStatus(ctx context.Context, userID, id uuid.UUID, status string) error
}

type purchaseOrderRepo struct{ db *gorm.DB }

func NewPurchaseOrderRepository(db *gorm.DB) PurchaseOrderRepository {
	return &purchaseOrderRepo{db: db}
}

func (r *purchaseOrderRepo) Create(ctx context.Context, o *model.PurchaseOrder) error {
	return GetDB(ctx, r.db).Create(o).Error
}

func (r *purchaseOrderRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.PurchaseOrder, error) {
	var o model.PurchaseOrder
	err := GetDB(ctx, r.db).Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).First(&o).Error
	return &o, err
}

func (r *purchaseOrderRepo) List(ctx context.Context, userID uuid.UUID) ([]model.PurchaseOrder, error) {
	var orders []model.PurchaseOrder
	err := GetDB(ctx, r.db).Preload("Items").
		Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *purchaseOrderRepo) UpdatePaymentStatus(ctx context.Context, userID, id uuid.UUID, status string) error {
	return GetDB(ctx, r.db).Model(&model.PurchaseOrder{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("payment_status", status).Error
}
