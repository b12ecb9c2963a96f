package repository

import (
	"context"
	"time"

	"inventra/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TopSellingRow is the aggregation result for the dashboard's best sellers.
type TopSellingRow struct {
	ItemID        uuid.UUID
	ItemName      string
	TotalQuantity int64
}

// DashboardRepository bundles the aggregate queries behind the dashboard
// endpoint. Read-only.
type DashboardRepository interface {
	TotalRevenue(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
	PendingShipments(ctx context.Context, userID uuid.UUID) (int64, error)
	NewCustomersSince(ctx context.Context, userID uuid.UUID, since time.Time) (int64, error)
	TotalOrders(ctx context.Context, userID uuid.UUID) (int64, error)
	TopSellingItems(ctx context.Context, userID uuid.UUID, limit int) ([]TopSellingRow, error)
	TotalStock(ctx context.Context, userID uuid.UUID) (int64, error)
	CountItems(ctx context.Context, userID uuid.UUID) (int64, error)
	CountOutOfStock(ctx context.Context, userID uuid.UUID) (int64, error)
}

type dashboardRepo struct{ db *gorm.DB }

func NewDashboardRepository(db *gorm.DB) DashboardRepository { return &dashboardRepo{db: db} }

func (r *dashboardRepo) TotalRevenue(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := GetDB(ctx, r.db).Model(&model.SaleOrder{}).
		Where("user_id = ?", userID).
		Select("SUM(total_amount)").Scan(&total).Error
	if err != nil || !total.Valid {
		return decimal.Zero, err
	}
	return total.Decimal, nil
}

func (r *dashboardRepo) PendingShipments(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Shipment{}).
		Where("user_id = ? AND status = ?", userID, model.ShipmentInTransit).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepo) NewCustomersSince(ctx context.Context, userID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Customer{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepo) TotalOrders(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.SaleOrder{}).
		Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *dashboardRepo) TopSellingItems(ctx context.Context, userID uuid.UUID, limit int) ([]TopSellingRow, error) {
	var rows []TopSellingRow
	err := GetDB(ctx, r.db).Model(&model.SaleOrderItem{}).
		Select("sale_order_items.item_id AS item_id, sale_order_items.item_name AS item_name, SUM(sale_order_items.quantity) AS total_quantity").
		Joins("JOIN sale_orders ON sale_orders.id = sale_order_items.sale_order_id").
		Where("sale_orders.user_id = ?", userID).
		Group("sale_order_items.item_id, sale_order_items.item_name").
		Order("total_quantity DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepo) TotalStock(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total *int64
	err := GetDB(ctx, r.db).Model(&model.Item{}).
		Where("user_id = ?", userID).
		Select("SUM(quantity)").Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}

func (r *dashboardRepo) CountItems(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Item{}).
		Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *dashboardRepo) CountOutOfStock(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Item{}).
		Where("user_id = ? AND quantity = 0", userID).Count(&count).Error
	return count, err
}
