package service

import (
	"context"
	"fmt"

	"inventra/internal/dto"
	"inventra/internal/model"
	"inventra/internal/repository"

	"github.com/google/uuid"
)

type CategoryService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	List(ctx context.Context, userID uuid.UUID) ([]dto.CategoryResponse, error)
	Update(ctx context.Context, userID, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	// Delete removes the category and detaches its items (category_id is set
	// to NULL, items survive).
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type categoryService struct {
	tx       repository.TxManager
	repo     repository.CategoryRepository
	itemRepo repository.ItemRepository
}

func NewCategoryService(tx repository.TxManager, repo repository.CategoryRepository, itemRepo repository.ItemRepository) CategoryService {
	return &categoryService{tx: tx, repo: repo, itemRepo: itemRepo}
}

func (s *categoryService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	itemIDs := make([]uuid.UUID, 0, len(req.ItemIDs))
	for _, raw := range req.ItemIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid item id %q: %w", raw, err)
		}
		itemIDs = append(itemIDs, id)
	}

	category := &model.Category{Name: req.Name, UserID: userID}
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, category); err != nil {
			return err
		}
		if len(itemIDs) > 0 {
			return s.itemRepo.AssignCategory(txCtx, userID, itemIDs, category.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return categoryToResponse(category), nil
}

func (s *categoryService) List(ctx context.Context, userID uuid.UUID) ([]dto.CategoryResponse, error) {
	categories, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, *categoryToResponse(&c))
	}
	return out, nil
}

func (s *categoryService) Update(ctx context.Context, userID, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	category.Name = req.Name
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return categoryToResponse(category), nil
}

func (s *categoryService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, userID, id); err != nil {
		return err
	}
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.itemRepo.ClearCategory(txCtx, userID, id); err != nil {
			return err
		}
		return s.repo.Delete(txCtx, userID, id)
	})
}

func categoryToResponse(c *model.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{ID: c.ID.String(), Name: c.Name}
}
