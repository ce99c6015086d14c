package repositories

import (
	"context"

	"github.com/fbsys/fbs_backend/internal/core/domain"
)

// UserRepositoryFacade defines persistence operations for users.
type UserRepositoryFacade interface {
	// SaveUser inserts the user when UserID is zero and updates the existing
	// row otherwise, returning the persisted state.
	SaveUser(ctx context.Context, user domain.User) (*domain.User, error)
	FindUserByID(ctx context.Context, userID int64) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
}
