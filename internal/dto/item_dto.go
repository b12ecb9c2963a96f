package dto

import "github.com/shopspring/decimal"

// ItemFilter is bound from the query string of GET /v1/items.
type ItemFilter struct {
	Name       string `form:"name"`
	CategoryID string `form:"category_id" validate:"omitempty,uuid"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CreateItemRequest struct {
	Name          string          `json:"name"           validate:"required"`
	Brand         string          `json:"brand"`
	Description   string          `json:"description"`
	CategoryID    *string         `json:"category_id"    validate:"omitempty,uuid"`
	SellingPrice  decimal.Decimal `json:"selling_price"  validate:"min=0"`
	PurchasePrice decimal.Decimal `json:"purchase_price" validate:"min=0"`
	Quantity      int             `json:"quantity"       validate:"min=0"`
	ReorderPoint  int             `json:"reorder_point"  validate:"min=0"`
}

// UpdateItemRequest deliberately has no quantity field: stock is only mutated
// by the order workflows, never by a direct client edit.
type UpdateItemRequest struct {
	Name          *string          `json:"name"`
	Brand         *string          `json:"brand"`
	Description   *string          `json:"description"`
	CategoryID    *string          `json:"category_id"    validate:"omitempty,uuid"`
	SellingPrice  *decimal.Decimal `json:"selling_price"  validate:"omitempty"`
	PurchasePrice *decimal.Decimal `json:"purchase_price" validate:"omitempty"`
	ReorderPoint  *int             `json:"reorder_point"  validate:"omitempty,min=0"`
}

type ItemResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Brand         string          `json:"brand"`
	Description   string          `json:"description"`
	CategoryID    *string         `json:"category_id"`
	Category      string          `json:"category,omitempty"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Quantity      int             `json:"quantity"`
	ReorderPoint  int             `json:"reorder_point"`
	LowStock      bool            `json:"low_stock"`
	OutOfStock    bool            `json:"out_of_stock"`
	CreatedAt     string          `json:"created_at"`
}

type ItemListResponse struct {
	Data  []ItemResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// StockAlert is one entry of GET /v1/inventory/alerts.
type StockAlert struct {
	ItemID       string `json:"item_id"`
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	ReorderPoint int    `json:"reorder_point"`
	OutOfStock   bool   `json:"out_of_stock"`
}
