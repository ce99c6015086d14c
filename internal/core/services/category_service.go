package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fbsys/fbs_backend/internal/apperrors"
	"github.com/fbsys/fbs_backend/internal/core/domain"
	portsrepo "github.com/fbsys/fbs_backend/internal/core/ports/repositories"
	portssvc "github.com/fbsys/fbs_backend/internal/core/ports/services"
	"github.com/fbsys/fbs_backend/internal/dto"
)

// categoryService implements the CategorySvcFacade interface
type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

// CreateCategory creates a user-owned category. The (name, type) pair must
// be unique within the user's visible set.
func (s *categoryService) CreateCategory(ctx context.Context, userID int64, req dto.CreateCategoryRequest) (*domain.Category, error) {
	categoryType := domain.TransactionType(req.Type)
	if !categoryType.IsValid() {
		return nil, fmt.Errorf("%w: unknown category type %q", apperrors.ErrValidation, req.Type)
	}

	existing, err := s.categoryRepo.FindByNameAndType(ctx, req.Name, categoryType, userID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: category %q already exists", apperrors.ErrDuplicate, req.Name)
	}

	category := domain.Category{
		UserID: &userID,
		Name:   req.Name,
		Type:   categoryType,
		Color:  req.Color,
		Icon:   req.Icon,
	}

	saved, err := s.categoryRepo.SaveCategory(ctx, category)
	if err != nil {
		s.LogError(ctx, err, "Failed to save category", slog.Int64("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Category created",
		slog.Int64("user_id", userID),
		slog.Int64("category_id", saved.CategoryID))
	return saved, nil
}

// GetCategoryByID retrieves a category visible to the user (their own or a
// shared default).
func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID, userID int64) (*domain.Category, error) {
	return s.categoryRepo.FindCategoryByID(ctx, categoryID, userID)
}

// ListCategories returns the user's categories plus shared defaults.
func (s *categoryService) ListCategories(ctx context.Context, userID int64) ([]domain.Category, error) {
	return s.categoryRepo.ListCategories(ctx, userID)
}

// UpdateCategory applies edits to a user-owned category. Shared defaults
// are read-only.
func (s *categoryService) UpdateCategory(ctx context.Context, categoryID, userID int64, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID, userID)
	if err != nil {
		return nil, err
	}
	if category.IsDefault {
		return nil, fmt.Errorf("%w: default categories cannot be modified", apperrors.ErrForbidden)
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		s.LogError(ctx, err, "Failed to update category",
			slog.Int64("user_id", userID),
			slog.Int64("category_id", categoryID))
		return nil, err
	}

	return s.categoryRepo.FindCategoryByID(ctx, categoryID, userID)
}

// DeleteCategory removes a user-owned category. Transactions referencing it
// keep their rows; the reference is nulled by the store.
func (s *categoryService) DeleteCategory(ctx context.Context, categoryID, userID int64) error {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID, userID)
	if err != nil {
		return err
	}
	if category.IsDefault {
		return fmt.Errorf("%w: default categories cannot be deleted", apperrors.ErrForbidden)
	}

	if err := s.categoryRepo.DeleteCategory(ctx, categoryID, userID); err != nil {
		return err
	}
	s.LogInfo(ctx, "Category deleted",
		slog.Int64("user_id", userID),
		slog.Int64("category_id", categoryID))
	return nil
}
