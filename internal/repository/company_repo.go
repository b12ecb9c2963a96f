package repository

import (
	"context"

	"inventra/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompanyRepository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) (*model.Company, error)
	Upsert(ctx context.Context, c *model.Company) error
}

type companyRepo struct{ db *gorm.DB }

func NewCompanyRepository(db *gorm.DB) CompanyRepository { return &companyRepo{db: db} }

func (r *companyRepo) FindByUser(ctx context.Context, userID uuid.UUID) (*model.Company, error) {
	var c model.Company
	err := GetDB(ctx, r.db).Where("user_id = ?", userID).First(&c).Error
	return &c, err
}

func (r *companyRepo) Upsert(ctx context.Context, c *model.Company) error {
	var existing model.Company
	err := GetDB(ctx, r.db).Where("user_id = ?", c.UserID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return GetDB(ctx, r.db).Create(c).Error
	}
	if err != nil {
		return err
	}
	c.ID = existing.ID
	c.CreatedAt = existing.CreatedAt
	return GetDB(ctx, r.db).Save(c).Error
}
