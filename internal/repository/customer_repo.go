package repository

import (
	"context"

	"inventra/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Customer, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.Customer, error)
	Update(ctx context.Context, c *model.Customer) error
}

type customerRepo struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) CustomerRepository { return &customerRepo{db: db} }

func (r *customerRepo) Create(ctx context.Context, c *model.Customer) error {
	return GetDB(ctx, r.db).Create(c).Error
}

func (r *customerRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Customer, error) {
	var c model.Customer
	err := GetDB(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).First(&c).Error
	return &c, err
}

func (r *customerRepo) List(ctx context.Context, userID uuid.UUID) ([]model.Customer, error) {
	var customers []model.Customer
	err := GetDB(ctx, r.db).Where("user_id = ?", userID).Order("name ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) Update(ctx context.Context, c *model.Customer) error {
	return GetDB(ctx, r.db).Save(c).Error
}
