package repositories

import (
	"context"

	"github.com/fbsys/fbs_backend/internal/core/domain"
)

// CategoryRepositoryFacade defines persistence operations for categories.
// Reads are scoped to a user but also surface shared default categories.
type CategoryRepositoryFacade interface {
	SaveCategory(ctx context.Context, category domain.Category) (*domain.Category, error)
	FindCategoryByID(ctx context.Context, categoryID, userID int64) (*domain.Category, error)
	ListCategories(ctx context.Context, userID int64) ([]domain.Category, error)

	// FindByNameAndType looks a category up by its natural key within the
	// user's visible set (own categories plus shared defaults).
	FindByNameAndType(ctx context.Context, name string, categoryType domain.TransactionType, userID int64) (*domain.Category, error)

	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, categoryID, userID int64) error
}
