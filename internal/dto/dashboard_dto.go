package dto

import "github.com/shopspring/decimal"

// TopSellingItem aggregates sold quantity per item across all sale orders.
type TopSellingItem struct {
	ItemID        string `json:"item_id"`
	Name          string `json:"name"`
	TotalQuantity int64  `json:"total_quantity"`
}

// StockPercentages is the derived availability breakdown of the catalog.
type StockPercentages struct {
	Available  float64 `json:"available"`
	LowStock   float64 `json:"low_stock"`
	OutOfStock float64 `json:"out_of_stock"`
}

type DashboardResponse struct {
	TotalRevenue      decimal.Decimal  `json:"total_revenue"`
	PendingShipments  int64            `json:"pending_shipments"`
	NewCustomers      int64            `json:"new_customers"`
	TotalOrders       int64            `json:"total_orders"`
	TopSellingItems   []TopSellingItem `json:"top_selling_products"`
	TotalStock        int64            `json:"total_stock"`
	LowStockItems     []ItemResponse   `json:"low_stock_items"`
	StockPercentages  StockPercentages `json:"stock_percentages"`
}
