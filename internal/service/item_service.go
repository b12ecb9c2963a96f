package service

import (
	"context"
	"fmt"
	"time"

	"inventra/internal/dto"
	"inventra/internal/model"
	"inventra/internal/repository"

	"github.com/google/uuid"
)

type ItemService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateItemRequest) (*dto.ItemResponse, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*dto.ItemResponse, error)
	List(ctx context.Context, userID uuid.UUID, filter dto.ItemFilter) (*dto.ItemListResponse, error)
	Update(ctx context.Context, userID, id uuid.UUID, req dto.UpdateItemRequest) (*dto.ItemResponse, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type itemService struct {
	repo         repository.ItemRepository
	categoryRepo repository.CategoryRepository
}

func NewItemService(repo repository.ItemRepository, categoryRepo repository.CategoryRepository) ItemService {
	return &itemService{repo: repo, categoryRepo: categoryRepo}
}

func (s *itemService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateItemRequest) (*dto.ItemResponse, error) {
	item := &model.Item{
		Name:          req.Name,
		Brand:         req.Brand,
		Description:   req.Description,
		SellingPrice:  req.SellingPrice,
		PurchasePrice: req.PurchasePrice,
		Quantity:      req.Quantity,
		ReorderPoint:  req.ReorderPoint,
		UserID:        userID,
	}
	if req.CategoryID != nil && *req.CategoryID != "" {
		cid, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("invalid category_id: %w", err)
		}
		if _, err := s.categoryRepo.FindByID(ctx, userID, cid); err != nil {
			return nil, fmt.Errorf("category %s not found", *req.CategoryID)
		}
		item.CategoryID = &cid
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return itemToResponse(item), nil
}

func (s *itemService) Get(ctx context.Context, userID, id uuid.UUID) (*dto.ItemResponse, error) {
	item, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return itemToResponse(item), nil
}

func (s *itemService) List(ctx context.Context, userID uuid.UUID, filter dto.ItemFilter) (*dto.ItemListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	items, total, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ItemResponse, 0, len(items))
	for _, i := range items {
		data = append(data, *itemToResponse(&i))
	}
	return &dto.ItemListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *itemService) Update(ctx context.Context, userID, id uuid.UUID, req dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Brand != nil {
		item.Brand = *req.Brand
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.SellingPrice != nil {
		item.SellingPrice = *req.SellingPrice
	}
	if req.PurchasePrice != nil {
		item.PurchasePrice = *req.PurchasePrice
	}
	if req.ReorderPoint != nil {
		item.ReorderPoint = *req.ReorderPoint
	}
	if req.CategoryID != nil {
		if *req.CategoryID == "" {
			item.CategoryID = nil
		} else {
			cid, err := uuid.Parse(*req.CategoryID)
			if err != nil {
				return nil, fmt.Errorf("invalid category_id: %w", err)
			}
			if _, err := s.categoryRepo.FindByID(ctx, userID, cid); err != nil {
				return nil, fmt.Errorf("category %s not found", *req.CategoryID)
			}
			item.CategoryID = &cid
		}
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return itemToResponse(item), nil
}

func (s *itemService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, userID, id)
}

func itemToResponse(i *model.Item) *dto.ItemResponse {
	var categoryID *string
	var categoryName string
	if i.CategoryID != nil {
		cid := i.CategoryID.String()
		categoryID = &cid
	}
	if i.Category != nil {
		categoryName = i.Category.Name
	}
	return &dto.ItemResponse{
		ID:            i.ID.String(),
		Name:          i.Name,
		Brand:         i.Brand,
		Description:   i.Description,
		CategoryID:    categoryID,
		Category:      categoryName,
		SellingPrice:  i.SellingPrice,
		PurchasePrice: i.PurchasePrice,
		Quantity:      i.Quantity,
		ReorderPoint:  i.ReorderPoint,
		LowStock:      i.LowStock(),
		OutOfStock:    i.OutOfStock(),
		CreatedAt:     i.CreatedAt.UTC().Format(time.RFC3339),
	}
}
