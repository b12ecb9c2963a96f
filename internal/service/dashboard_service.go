package service

import (
	"context"
	"time"

	"inventra/internal/dto"
	"inventra/internal/repository"

	"github.com/google/uuid"
)

const topSellingLimit = 5

type DashboardService interface {
	Summary(ctx context.Context, userID uuid.UUID) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	repo     repository.DashboardRepository
	itemRepo repository.ItemRepository
}

func NewDashboardService(repo repository.DashboardRepository, itemRepo repository.ItemRepository) DashboardService {
	return &dashboardService{repo: repo, itemRepo: itemRepo}
}

func (s *dashboardService) Summary(ctx context.Context, userID uuid.UUID) (*dto.DashboardResponse, error) {
	revenue, err := s.repo.TotalRevenue(ctx, userID)
	if err != nil {
		return nil, err
	}
	pending, err := s.repo.PendingShipments(ctx, userID)
	if err != nil {
		return nil, err
	}
	monthStart := time.Now().UTC().AddDate(0, -1, 0)
	newCustomers, err := s.repo.NewCustomersSince(ctx, userID, monthStart)
	if err != nil {
		return nil, err
	}
	totalOrders, err := s.repo.TotalOrders(ctx, userID)
	if err != nil {
		return nil, err
	}
	topRows, err := s.repo.TopSellingItems(ctx, userID, topSellingLimit)
	if err != nil {
		return nil, err
	}
	totalStock, err := s.repo.TotalStock(ctx, userID)
	if err != nil {
		return nil, err
	}
	lowItems, err := s.itemRepo.ListLowStock(ctx, userID)
	if err != nil {
		return nil, err
	}
	totalItems, err := s.repo.CountItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	outCount, err := s.repo.CountOutOfStock(ctx, userID)
	if err != nil {
		return nil, err
	}

	top := make([]dto.TopSellingItem, 0, len(topRows))
	for _, row := range topRows {
		top = append(top, dto.TopSellingItem{
			ItemID:        row.ItemID.String(),
			Name:          row.ItemName,
			TotalQuantity: row.TotalQuantity,
		})
	}

	low := make([]dto.ItemResponse, 0, len(lowItems))
	for _, i := range lowItems {
		low = append(low, *itemToResponse(&i))
	}

	// Low and out-of-stock overlap (qty 0 satisfies qty <= reorder_point), so
	// the low bucket here excludes fully depleted items.
	var pct dto.StockPercentages
	if totalItems > 0 {
		lowCount := int64(len(lowItems)) - outCount
		if lowCount < 0 {
			lowCount = 0
		}
		pct.OutOfStock = float64(outCount) / float64(totalItems) * 100
		pct.LowStock = float64(lowCount) / float64(totalItems) * 100
		pct.Available = 100 - pct.OutOfStock - pct.LowStock
	}

	return &dto.DashboardResponse{
		TotalRevenue:     revenue,
		PendingShipments: pending,
		NewCustomers:     newCustomers,
		TotalOrders:      totalOrders,
		TopSellingItems:  top,
		TotalStock:       totalStock,
		LowStockItems:    low,
		StockPercentages: pct,
	}, nil
}
