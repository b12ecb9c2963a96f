package repository

import (
	"context"

	"inventra/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleOrderRepository interface {
	// Create persists the header and its items in one call (GORM cascades the
	// association). Must be invoked inside a TxManager transaction when stock
	// mutation follows.
	Create(ctx context.Context, o *model.SaleOrder) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.SaleOrder, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.SaleOrder, error)
	UpdatePaymentReceived(ctx context.Context, userID, id uuid.UUID, received bool) error
	UpdateInvoicePath(ctx context.Context, userID, id uuid.UUID, path string) error
}

type saleOrderRepo struct{ db *gorm.DB }

func NewSaleOrderRepository(db *gorm.DB) SaleOrderRepository { return &saleOrderRepo{db: db} }

func (r *saleOrderRepo) Create(ctx context.Context, o *model.SaleOrder) error {
	return GetDB(ctx, r.db).Create(o).Error
}

func (r *saleOrderRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.SaleOrder, error) {
	var o model.SaleOrder
	err := GetDB(ctx, r.db).Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).First(&o).Error
	return &o, err
}

func (r *saleOrderRepo) List(ctx context.Context, userID uuid.UUID) ([]model.SaleOrder, error) {
	var orders []model.SaleOrder
	err := GetDB(ctx, r.db).Preload("Items").
		Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *saleOrderRepo) UpdatePaymentReceived(ctx context.Context, userID, id uuid.UUID, received bool) error {
	return GetDB(ctx, r.db).Model(&model.SaleOrder{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("payment_received", received).Error
}

func (r *saleOrderRepo) UpdateInvoicePath(ctx context.Context, userID, id uuid.UUID, path string) error {
	return GetDB(ctx, r.db).Model(&model.SaleOrder{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("invoice_path", path).Error
}
