package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

type SaleOrderLineRequest struct {
	ItemID   string `json:"item_id" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
	// Rate is the price at time of sale, taken verbatim from the client. It is
	// deliberately NOT cross-checked against the item's current selling price.
	Rate decimal.Decimal `json:"rate" validate:"min=0"`
}

type CreateSaleOrderRequest struct {
	// CustomerID, when resolvable for the tenant, supplies the email snapshot.
	// An unresolvable id is not an error: the order proceeds without an email.
	CustomerID      *string                `json:"customer_id"      validate:"omitempty,uuid"`
	CustomerName    string                 `json:"customer_name"    validate:"required"`
	CustomerAddress string                 `json:"customer_address"`
	CustomerCity    string                 `json:"customer_city"`
	CustomerState   string                 `json:"customer_state"`
	CustomerPincode string                 `json:"customer_pincode"`
	ModeOfDelivery  string                 `json:"mode_of_delivery" validate:"required,oneof=PICKUP DELIVERY"`
	Carrier         string                 `json:"carrier"          validate:"required,oneof=FEDEX UPS USPS DHL OTHER"`
	Discount        decimal.Decimal        `json:"discount"         validate:"min=0"`
	Items           []SaleOrderLineRequest `json:"items"            validate:"required,min=1,dive"`
	PaymentReceived bool                   `json:"payment"`
}

type UpdateSaleOrderPaymentRequest struct {
	PaymentReceived bool `json:"payment_received"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type SaleOrderLineResponse struct {
	ItemID   string          `json:"item_id"`
	ItemName string          `json:"item_name"`
	Quantity int             `json:"quantity"`
	Rate     decimal.Decimal `json:"rate"`
	Amount   decimal.Decimal `json:"amount"`
}

type SaleOrderResponse struct {
	ID              string                  `json:"id"`
	CustomerName    string                  `json:"customer_name"`
	CustomerAddress string                  `json:"customer_address"`
	CustomerCity    string                  `json:"customer_city"`
	CustomerState   string                  `json:"customer_state"`
	CustomerPincode string                  `json:"customer_pincode"`
	CustomerEmail   *string                 `json:"customer_email,omitempty"`
	ModeOfDelivery  string                  `json:"mode_of_delivery"`
	Carrier         string                  `json:"carrier"`
	PaymentReceived bool                    `json:"payment_received"`
	Discount        decimal.Decimal         `json:"discount"`
	TotalAmount     decimal.Decimal         `json:"total_amount"`
	InvoiceURL      *string                 `json:"invoice_url,omitempty"`
	Items           []SaleOrderLineResponse `json:"items"`
	CreatedAt       string                  `json:"created_at"`
	// Warnings carries best-effort step failures (shipment, invoice) that did
	// not revert the committed order.
	Warnings []string `json:"warnings,omitempty"`
}
