package infra

import (
	"fmt"

	"inventra/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs AutoMigrate
// to create / update all tables. TranslateError is enabled so unique-index
// violations surface as gorm.ErrDuplicatedKey (the tracking id retry loop
// depends on it).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return db, nil
}

// RunMigrations applies the schema. gen_random_uuid() requires the pgcrypto
// extension on PostgreSQL < 13.
func RunMigrations(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return err
	}
	return db.AutoMigrate(
		&model.User{},
		&model.Company{},
		&model.Category{},
		&model.Item{},
		&model.Customer{},
		&model.Vendor{},
		&model.SaleOrder{},
		&model.SaleOrderItem{},
		&model.PurchaseOrder{},
		&model.PurchaseOrderItem{},
		&model.Shipment{},
		&model.StockMovement{},
	)
}
