package dto

type UpdateShipmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=IN_TRANSIT DELIVERED RETURNED"`
}

type ShipmentResponse struct {
	ID           string `json:"id"`
	SaleOrderID  string `json:"sale_order_id"`
	CustomerName string `json:"customer_name"`
	Carrier      string `json:"carrier"`
	TrackingID   string `json:"tracking_id"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}
