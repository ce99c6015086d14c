package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fbsys/fbs_backend/internal/apperrors"
	"github.com/fbsys/fbs_backend/internal/core/domain"
	portsrepo "github.com/fbsys/fbs_backend/internal/core/ports/repositories"
	portssvc "github.com/fbsys/fbs_backend/internal/core/ports/services"
	"github.com/fbsys/fbs_backend/internal/dto"
	"github.com/fbsys/fbs_backend/internal/utils"
)

// userService implements the UserSvcFacade interface
type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser registers a new password-based account.
func (s *userService) CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	existing, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username %q is taken", apperrors.ErrDuplicate, req.Username)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		Username:     req.Username,
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
	}

	saved, err := s.userRepo.SaveUser(ctx, user)
	if err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("username", req.Username))
		return nil, err
	}

	s.LogInfo(ctx, "User registered", slog.Int64("user_id", saved.UserID))
	return saved, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// GetUserByUsername retrieves a user by username.
func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.userRepo.FindUserByUsername(ctx, username)
}

// FindOrCreateGoogleUser resolves the account for a verified Google
// identity. A user with a matching email is linked; otherwise a new account
// is created with the Google subject as its identity.
func (s *userService) FindOrCreateGoogleUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error) {
	user, err := s.userRepo.FindUserByGoogleID(ctx, info.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	email := strings.ToLower(info.Email)
	user, err = s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		// Existing password account with the same verified email; link it.
		user.GoogleID = &info.ID
		return s.userRepo.SaveUser(ctx, *user)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	newUser := domain.User{
		Username: email,
		Name:     info.Name,
		Email:    email,
		GoogleID: &info.ID,
	}
	saved, err := s.userRepo.SaveUser(ctx, newUser)
	if err != nil {
		s.LogError(ctx, err, "Failed to create user from Google identity", slog.String("email", email))
		return nil, err
	}

	s.LogInfo(ctx, "User created via Google sign-in", slog.Int64("user_id", saved.UserID))
	return saved, nil
}
