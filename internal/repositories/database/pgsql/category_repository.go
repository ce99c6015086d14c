package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fbsys/fbs_backend/internal/apperrors"
	"github.com/fbsys/fbs_backend/internal/core/domain"
	portsrepo "github.com/fbsys/fbs_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxCategoryRepository persists categories in PostgreSQL. Shared default
// categories have a NULL user_id and are visible to every user.
type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

const categoryColumns = `id, user_id, name, type, color, icon, is_default, created_at, updated_at`

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var category domain.Category
	err := row.Scan(
		&category.CategoryID,
		&category.UserID,
		&category.Name,
		&category.Type,
		&category.Color,
		&category.Icon,
		&category.IsDefault,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// SaveCategory inserts a new category and returns it with generated fields
// populated.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	query := `
		INSERT INTO categories (user_id, name, type, color, icon, is_default)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at;
	`
	err := r.Pool.QueryRow(ctx, query,
		category.UserID,
		category.Name,
		category.Type,
		category.Color,
		category.Icon,
		category.IsDefault,
	).Scan(&category.CategoryID, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save category: %w", err)
	}
	return &category, nil
}

// FindCategoryByID retrieves a category visible to the user.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID, userID int64) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories
		WHERE id = $1 AND (user_id = $2 OR user_id IS NULL);`

	category, err := scanCategory(r.Pool.QueryRow(ctx, query, categoryID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: category %d", apperrors.ErrNotFound, categoryID)
		}
		return nil, fmt.Errorf("failed to find category %d: %w", categoryID, err)
	}
	return category, nil
}

// ListCategories returns the user's categories plus shared defaults.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context, userID int64) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories
		WHERE user_id = $1 OR user_id IS NULL
		ORDER BY is_default DESC, name ASC;`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, *category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category rows: %w", err)
	}

	return categories, nil
}

// FindByNameAndType looks a category up by its natural key within the
// user's visible set.
func (r *PgxCategoryRepository) FindByNameAndType(ctx context.Context, name string, categoryType domain.TransactionType, userID int64) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories
		WHERE name = $1 AND type = $2 AND (user_id = $3 OR user_id IS NULL);`

	category, err := scanCategory(r.Pool.QueryRow(ctx, query, name, categoryType, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: category %q", apperrors.ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to find category %q: %w", name, err)
	}
	return category, nil
}

// UpdateCategory persists edits to a user-owned category.
func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	query := `
		UPDATE categories
		SET name = $1, color = $2, icon = $3, updated_at = now()
		WHERE id = $4 AND user_id = $5;
	`
	tag, err := r.Pool.Exec(ctx, query,
		category.Name,
		category.Color,
		category.Icon,
		category.CategoryID,
		category.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update category %d: %w", category.CategoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: category %d", apperrors.ErrNotFound, category.CategoryID)
	}
	return nil
}

// DeleteCategory removes a user-owned category. Transactions referencing it
// keep their rows with the category reference nulled by the schema.
func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID, userID int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM categories WHERE id = $1 AND user_id = $2;`, categoryID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete category %d: %w", categoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: category %d", apperrors.ErrNotFound, categoryID)
	}
	return nil
}
