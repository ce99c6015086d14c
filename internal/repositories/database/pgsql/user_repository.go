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

// PgxUserRepository persists users in PostgreSQL.
type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for user data.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `id, username, name, email, password_hash, google_id, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.UserID,
		&user.Username,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.GoogleID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SaveUser inserts when UserID is zero, updates otherwise.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) (*domain.User, error) {
	if user.UserID == 0 {
		query := `
			INSERT INTO users (username, name, email, password_hash, google_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at, updated_at;
		`
		err := r.Pool.QueryRow(ctx, query,
			user.Username,
			user.Name,
			user.Email,
			user.PasswordHash,
			user.GoogleID,
		).Scan(&user.UserID, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to insert user: %w", err)
		}
		return &user, nil
	}

	query := `
		UPDATE users
		SET username = $1, name = $2, email = $3, password_hash = $4, google_id = $5, updated_at = now()
		WHERE id = $6
		RETURNING updated_at;
	`
	err := r.Pool.QueryRow(ctx, query,
		user.Username,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.GoogleID,
		user.UserID,
	).Scan(&user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %d", apperrors.ErrNotFound, user.UserID)
		}
		return nil, fmt.Errorf("failed to update user %d: %w", user.UserID, err)
	}
	return &user, nil
}

// FindUserByID retrieves a user by primary key.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1;`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %d", apperrors.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("failed to find user %d: %w", userID, err)
	}
	return user, nil
}

// FindUserByUsername retrieves a user by username.
func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1;`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %q", apperrors.ErrNotFound, username)
		}
		return nil, fmt.Errorf("failed to find user %q: %w", username, err)
	}
	return user, nil
}

// FindUserByEmail retrieves a user by email address.
func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1;`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user with email %q", apperrors.ErrNotFound, email)
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// FindUserByGoogleID retrieves a user linked to the given Google account.
func (r *PgxUserRepository) FindUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE google_id = $1;`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, googleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no user for google account", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find user by google id: %w", err)
	}
	return user, nil
}
