package dto

import (
	"time"

	"github.com/fbsys/fbs_backend/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a category.
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Type  string `json:"type" binding:"required,oneof=income expense"`
	Color string `json:"color" binding:"omitempty,hexcolor"`
	Icon  string `json:"icon" binding:"omitempty,max=50"`
}

// UpdateCategoryRequest defines the fields allowed when editing a category.
// Pointers differentiate omitted fields from zero-value fields.
type UpdateCategoryRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=100"`
	Color *string `json:"color" binding:"omitempty,hexcolor"`
	Icon  *string `json:"icon" binding:"omitempty,max=50"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCategoryResponse converts a domain.Category to a CategoryResponse DTO.
func ToCategoryResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.CategoryID,
		Name:      category.Name,
		Type:      string(category.Type),
		Color:     category.Color,
		Icon:      category.Icon,
		IsDefault: category.IsDefault,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

// ToListCategoryResponse converts a slice of domain.Category to DTOs.
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		res[i] = ToCategoryResponse(&category)
	}
	return res
}
