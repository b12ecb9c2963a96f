package dto

import "github.com/shopspring/decimal"

type PurchaseOrderLineRequest struct {
	ItemID   string          `json:"item_id"  validate:"required,uuid"`
	Quantity int             `json:"quantity" validate:"required,min=1"`
	Rate     decimal.Decimal `json:"rate"     validate:"min=0"`
}

type CreatePurchaseOrderRequest struct {
	VendorID      *string                    `json:"vendor_id" validate:"omitempty,uuid"`
	VendorName    string                     `json:"vendor_name" validate:"required"`
	VendorAddress string                     `json:"vendor_address"`
	Items         []PurchaseOrderLineRequest `json:"items" validate:"required,min=1,dive"`
}

type UpdatePurchaseOrderPaymentRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required,oneof=UNPAID PAID"`
}

type PurchaseOrderLineResponse struct {
	ItemID   string          `json:"item_id"`
	ItemName string          `json:"item_name"`
	Quantity int             `json:"quantity"`
	Rate     decimal.Decimal `json:"rate"`
	Amount   decimal.Decimal `json:"amount"`
}

type PurchaseOrderResponse struct {
	ID            string                      `json:"id"`
	VendorName    string                      `json:"vendor_name"`
	VendorAddress string                      `json:"vendor_address"`
	PaymentStatus string                      `json:"payment_status"`
	TotalAmount   decimal.Decimal             `json:"total_amount"`
	Items         []PurchaseOrderLineResponse `json:"items"`
	CreatedAt     string                      `json:"created_at"`
}
