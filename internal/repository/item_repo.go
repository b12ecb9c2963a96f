package repository

import (
	"context"

	"inventra/internal/dto"
	"inventra/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemRepository defines the data access contract for catalog items. All
// lookups are scoped to the owning user. Services depend on this interface,
// not on the concrete GORM implementation, enabling unit testing via stubs.
type ItemRepository interface {
	Create(ctx context.Context, i *model.Item) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Item, error)
	List(ctx context.Context, userID uuid.UUID, filter dto.ItemFilter) ([]model.Item, int64, error)
	Update(ctx context.Context, i *model.Item) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ListLowStock(ctx context.Context, userID uuid.UUID) ([]model.Item, error)
	AssignCategory(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID, categoryID uuid.UUID) error
	ClearCategory(ctx context.Context, userID, categoryID uuid.UUID) error

	// ReserveStock performs the atomic conditional decrement that serializes
	// concurrent reservations against the same item:
	//
	//   UPDATE items SET quantity = quantity - ?
	//    WHERE id = ? AND user_id = ? AND quantity >= ?
	//
	// Returns false (and leaves the row untouched) when available < qty.
	ReserveStock(ctx context.Context, userID, id uuid.UUID, qty int) (bool, error)
	// ReleaseStock unconditionally increments quantity.
	ReleaseStock(ctx context.Context, userID, id uuid.UUID, qty int) error
}

type itemRepo struct{ db *gorm.DB }

func NewItemRepository(db *gorm.DB) ItemRepository { return &itemRepo{db: db} }

func (r *itemRepo) Create(ctx context.Context, i *model.Item) error {
	return GetDB(ctx, r.db).Create(i).Error
}

func (r *itemRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Item, error) {
	var i model.Item
	err := GetDB(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).First(&i).Error
	return &i, err
}

func (r *itemRepo) List(ctx context.Context, userID uuid.UUID, filter dto.ItemFilter) ([]model.Item, int64, error) {
	var items []model.Item
	var total int64

	q := GetDB(ctx, r.db).Model(&model.Item{}).Where("user_id = ?", userID)

	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.CategoryID != "" {
		q = q.Where("category_id = ?", filter.CategoryID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Category").Order("name ASC").
		Limit(filter.Limit).Offset(offset).Find(&items).Error
	return items, total, err
}

// Update writes the editable columns only. Quantity is deliberately excluded:
// the stock ledger (ReserveStock/ReleaseStock) is the sole mutator, and a
// full-row save here would overwrite a reservation committed between the
// caller's read and this write.
func (r *itemRepo) Update(ctx context.Context, i *model.Item) error {
	return GetDB(ctx, r.db).Model(i).
		Select("name", "brand", "description", "category_id",
			"selling_price", "purchase_price", "reorder_point", "updated_at").
		Updates(i).Error
}

func (r *itemRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Item{}).Error
}

func (r *itemRepo) ListLowStock(ctx context.Context, userID uuid.UUID) ([]model.Item, error) {
	var items []model.Item
	err := GetDB(ctx, r.db).
		Where("user_id = ? AND quantity <= reorder_point", userID).
		Order("quantity ASC").Find(&items).Error
	return items, err
}

func (r *itemRepo) AssignCategory(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID, categoryID uuid.UUID) error {
	return GetDB(ctx, r.db).Model(&model.Item{}).
		Where("id IN ? AND user_id = ?", itemIDs, userID).
		Update("category_id", categoryID).Error
}

func (r *itemRepo) ClearCategory(ctx context.Context, userID, categoryID uuid.UUID) error {
	return GetDB(ctx, r.db).Model(&model.Item{}).
		Where("category_id = ? AND user_id = ?", categoryID, userID).
		Update("category_id", nil).Error
}

func (r *itemRepo) ReserveStock(ctx context.Context, userID, id uuid.UUID, qty int) (bool, error) {
	res := GetDB(ctx, r.db).Model(&model.Item{}).
		Where("id = ? AND user_id = ? AND quantity >= ?", id, userID, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *itemRepo) ReleaseStock(ctx context.Context, userID, id uuid.UUID, qty int) error {
	return GetDB(ctx, r.db).Model(&model.Item{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("quantity", gorm.Expr("quantity + ?", qty)).Error
}
