package dto

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required"`
	// ItemIDs optionally reassigns existing items into the new category.
	ItemIDs []string `json:"item_ids" validate:"omitempty,dive,uuid"`
}

type UpdateCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
