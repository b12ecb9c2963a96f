package repository

import (
	"context"

	"inventra/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Category, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.Category, error)
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type categoryRepo struct{ db *gorm.DB }

func NewCategoryRepository(db *gorm.DB) CategoryRepository { return &categoryRepo{db: db} }

func (r *categoryRepo) Create(ctx context.Context, c *model.Category) error {
	return GetDB(ctx, r.db).Create(c).Error
}

func (r *categoryRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Category, error) {
	var c model.Category
	err := GetDB(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).First(&c).Error
	return &c, err
}

func (r *categoryRepo) List(ctx context.Context, userID uuid.UUID) ([]model.Category, error) {
	var categories []model.Category
	err := GetDB(ctx, r.db).Where("user_id = ?", userID).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) Update(ctx context.Context, c *model.Category) error {
	return GetDB(ctx, r.db).Save(c).Error
}

func (r *categoryRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Category{}).Error
}
