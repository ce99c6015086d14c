package services

import (
	"context"

	"github.com/fbsys/fbs_backend/internal/core/domain"
	"github.com/fbsys/fbs_backend/internal/dto"
)

// CategorySvcFacade defines the application operations on categories.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, userID int64, req dto.CreateCategoryRequest) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, categoryID, userID int64) (*domain.Category, error)
	ListCategories(ctx context.Context, userID int64) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, categoryID, userID int64, req dto.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID, userID int64) error
}
