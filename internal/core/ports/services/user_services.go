package services

import (
	"context"

	"github.com/fbsys/fbs_backend/internal/core/domain"
	"github.com/fbsys/fbs_backend/internal/dto"
	"golang.org/x/oauth2"
)

// UserSvcFacade defines the application operations on user accounts.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindOrCreateGoogleUser resolves the account for a verified Google
	// identity, creating one on first sign-in.
	FindOrCreateGoogleUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error)
}

// GoogleOAuthSvcFacade wraps the Google OAuth code-exchange flow.
type GoogleOAuthSvcFacade interface {
	// GetLoginURL returns the Google consent screen URL for the given
	// CSRF state string.
	GetLoginURL(ctx context.Context, state string) string

	// ExchangeCodeForToken exchanges an authorization code for tokens.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)

	// GetUserInfo fetches the user's profile from the Google userinfo
	// endpoint using the exchanged token.
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error)

	// ValidateIDToken verifies the ID token in Google's response against
	// the configured client ID and returns the verified user identity.
	ValidateIDToken(ctx context.Context, idToken string) (*domain.GoogleUserInfo, error)
}
