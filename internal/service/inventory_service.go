package service

import (
	"context"
	"fmt"

	"inventra/internal/dto"
	"inventra/internal/model"
	"inventra/internal/repository"

	"github.com/google/uuid"
)

// InsufficientStockError is returned when a reservation asks for more units
// than an item currently has. Handlers map it to 409 Conflict.
type InsufficientStockError struct {
	ItemID    uuid.UUID
	ItemName  string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d",
		e.ItemName, e.Requested, e.Available)
}

// InventoryService owns all stock mutations. Items are never edited to a
// quantity directly; they move through Reserve (sales) and Restock (purchases),
// each leaving a StockMovement row in the same transaction.
type InventoryService interface {
	// Reserve atomically decrements stock for one order line. The conditional
	// update guarantees that of N concurrent reservations competing for the
	// last units, exactly one wins; the rest get InsufficientStockError.
	Reserve(ctx context.Context, userID uuid.UUID, item *model.Item, qty int, refID uuid.UUID) error
	// Restock unconditionally increments stock for an inbound purchase line.
	Restock(ctx context.Context, userID, itemID uuid.UUID, qty int, refID uuid.UUID) error
	StockAlerts(ctx context.Context, userID uuid.UUID) ([]dto.StockAlert, error)
	Movements(ctx context.Context, userID, itemID uuid.UUID) ([]model.StockMovement, error)
}

type inventoryService struct {
	itemRepo     repository.ItemRepository
	movementRepo repository.StockMovementRepository
}

func NewInventoryService(itemRepo repository.ItemRepository, movementRepo repository.StockMovementRepository) InventoryService {
	return &inventoryService{itemRepo: itemRepo, movementRepo: movementRepo}
}

func (s *inventoryService) Reserve(ctx context.Context, userID uuid.UUID, item *model.Item, qty int, refID uuid.UUID) error {
	ok, err := s.itemRepo.ReserveStock(ctx, userID, item.ID, qty)
	if err != nil {
		return err
	}
	if !ok {
		// Re-read for an accurate available count in the error. The row was
		// not touched, so this is safe inside the surrounding transaction.
		available := item.Quantity
		if current, ferr := s.itemRepo.FindByID(ctx, userID, item.ID); ferr == nil {
			available = current.Quantity
		}
		return &InsufficientStockError{
			ItemID:    item.ID,
			ItemName:  item.Name,
			Requested: qty,
			Available: available,
		}
	}

	ref := refID
	return s.movementRepo.Create(ctx, &model.StockMovement{
		ItemID:      item.ID,
		Kind:        "sale",
		Quantity:    -qty,
		ReferenceID: &ref,
		UserID:      userID,
	})
}

func (s *inventoryService) Restock(ctx context.Context, userID, itemID uuid.UUID, qty int, refID uuid.UUID) error {
	if err := s.itemRepo.ReleaseStock(ctx, userID, itemID, qty); err != nil {
		return err
	}

	ref := refID
	return s.movementRepo.Create(ctx, &model.StockMovement{
		ItemID:      itemID,
		Kind:        "purchase",
		Quantity:    qty,
		ReferenceID: &ref,
		UserID:      userID,
	})
}

func (s *inventoryService) StockAlerts(ctx context.Context, userID uuid.UUID) ([]dto.StockAlert, error) {
	items, err := s.itemRepo.ListLowStock(ctx, userID)
	if err != nil {
		return nil, err
	}
	alerts := make([]dto.StockAlert, 0, len(items))
	for _, i := range items {
		alerts = append(alerts, dto.StockAlert{
			ItemID:       i.ID.String(),
			Name:         i.Name,
			Quantity:     i.Quantity,
			ReorderPoint: i.ReorderPoint,
			OutOfStock:   i.OutOfStock(),
		})
	}
	return alerts, nil
}

func (s *inventoryService) Movements(ctx context.Context, userID, itemID uuid.UUID) ([]model.StockMovement, error) {
	return s.movementRepo.ListByItem(ctx, userID, itemID)
}
