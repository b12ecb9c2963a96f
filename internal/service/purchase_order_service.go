package service

import (
	"context"
	"fmt"
	"time"

	"inventra/internal/dto"
	"inventra/internal/model"
	"inventra/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PurchaseOrderService interface {
	// Receive records an inbound order and increments stock for every line.
	// There is no availability precondition: restocking always succeeds once
	// the items resolve.
	Receive(ctx context.Context, userID uuid.UUID, req dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error)
	List(ctx context.Context, userID uuid.UUID) ([]dto.PurchaseOrderResponse, error)
	UpdatePaymentStatus(ctx context.Context, userID, id uuid.UUID, status string) (*dto.PurchaseOrderResponse, error)
}

type purchaseOrderService struct {
	tx         repository.TxManager
	repo       repository.PurchaseOrderRepository
	itemRepo   repository.ItemRepository
	vendorRepo repository.VendorRepository
	inventory  InventoryService
}

func NewPurchaseOrderService(
	tx repository.TxManager,
	repo repository.PurchaseOrderRepository,
	itemRepo repository.ItemRepository,
	vendorRepo repository.VendorRepository,
	inventory InventoryService,
) PurchaseOrderService {
	return &purchaseOrderService{
		tx:         tx,
		repo:       repo,
		itemRepo:   itemRepo,
		vendorRepo: vendorRepo,
		inventory:  inventory,
	}
}

func (s *purchaseOrderService) Receive(ctx context.Context, userID uuid.UUID, req dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	type resolvedLine struct {
		item *model.Item
		qty  int
		rate decimal.Decimal
	}

	resolved := make([]resolvedLine, 0, len(req.Items))
	total := decimal.Zero
	for _, line := range req.Items {
		itemID, err := uuid.Parse(line.ItemID)
		if err != nil {
			return nil, fmt.Errorf("invalid item_id %q: %w", line.ItemID, err)
		}
		item, err := s.itemRepo.FindByID(ctx, userID, itemID)
		if err != nil {
			return nil, fmt.Errorf("item %s not found", line.ItemID)
		}
		total = total.Add(line.Rate.Mul(decimal.NewFromInt(int64(line.Quantity))))
		resolved = append(resolved, resolvedLine{item: item, qty: line.Quantity, rate: line.Rate})
	}

	var vendorID *uuid.UUID
	if req.VendorID != nil && *req.VendorID != "" {
		if vid, err := uuid.Parse(*req.VendorID); err == nil {
			if _, err := s.vendorRepo.FindByID(ctx, userID, vid); err == nil {
				vendorID = &vid
			}
		}
	}

	order := model.PurchaseOrder{
		VendorID:      vendorID,
		VendorName:    req.VendorName,
		VendorAddress: req.VendorAddress,
		PaymentStatus: model.PaymentUnpaid,
		TotalAmount:   total,
		UserID:        userID,
	}
	for _, r := range resolved {
		order.Items = append(order.Items, model.PurchaseOrderItem{
			ItemID:   r.item.ID,
			ItemName: r.item.Name,
			Quantity: r.qty,
			Rate:     r.rate,
		})
	}

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, &order); err != nil {
			return err
		}
		for _, r := range resolved {
			if err := s.inventory.Restock(txCtx, userID, r.item.ID, r.qty, order.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return purchaseOrderToResponse(&order), nil
}

func (s *purchaseOrderService) List(ctx context.Context, userID uuid.UUID) ([]dto.PurchaseOrderResponse, error) {
	orders, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, *purchaseOrderToResponse(&o))
	}
	return out, nil
}

func (s *purchaseOrderService) UpdatePaymentStatus(ctx context.Context, userID, id uuid.UUID, status string) (*dto.PurchaseOrderResponse, error) {
	if _, err := s.repo.FindByID(ctx, userID, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdatePaymentStatus(ctx, userID, id, status); err != nil {
		return nil, err
	}
	order, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return purchaseOrderToResponse(order), nil
}

func purchaseOrderToResponse(o *model.PurchaseOrder) *dto.PurchaseOrderResponse {
	lines := make([]dto.PurchaseOrderLineResponse, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, dto.PurchaseOrderLineResponse{
			ItemID:   item.ItemID.String(),
			ItemName: item.ItemName,
			Quantity: item.Quantity,
			Rate:     item.Rate,
			Amount:   item.Rate.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}
	return &dto.PurchaseOrderResponse{
		ID:            o.ID.String(),
		VendorName:    o.VendorName,
		VendorAddress: o.VendorAddress,
		PaymentStatus: o.PaymentStatus,
		TotalAmount:   o.TotalAmount,
		Items:         lines,
		CreatedAt:     o.CreatedAt.UTC().Format(time.RFC3339),
	}
}
