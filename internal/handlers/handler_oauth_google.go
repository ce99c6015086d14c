package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fbsys/fbs_backend/internal/apperrors"
	portssvc "github.com/fbsys/fbs_backend/internal/core/ports/services"
	"github.com/fbsys/fbs_backend/internal/middleware"
	"github.com/fbsys/fbs_backend/internal/platform/config"
	"github.com/fbsys/fbs_backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// GoogleOAuthHandler handles the Google sign-in code-exchange flow. The
// frontend completes the consent screen and posts the authorization code
// here; we exchange it, verify the ID token, and issue our own JWT.
type GoogleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthSvcFacade
	userService        portssvc.UserSvcFacade
	cfg                *config.Config
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(oauthSvc portssvc.GoogleOAuthSvcFacade, userSvc portssvc.UserSvcFacade, cfg *config.Config) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleOAuthService: oauthSvc,
		userService:        userSvc,
		cfg:                cfg,
	}
}

// ExchangeCodeRequest defines the expected JSON body for the
// /google/exchange-code endpoint.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// ExchangeCodeResponse defines the successful response for the
// /google/exchange-code endpoint.
type ExchangeCodeResponse struct {
	Token string `json:"token"`
}

// registerGoogleOAuthRoutes registers the Google OAuth routes.
func registerGoogleOAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewGoogleOAuthHandler(services.GoogleOAuth, services.User, cfg)
	googleRoutes := r.Group("/api/v1/auth/google")
	{
		googleRoutes.GET("/login-url", h.LoginURLGoogle)
		googleRoutes.POST("/exchange-code", h.ExchangeCodeGoogle)
	}
}

// LoginURLGoogle godoc
// @Summary Get Google consent screen URL
// @Description Returns the URL the frontend should redirect the user to for Google sign-in.
// @Tags oauth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login-url [get]
func (h *GoogleOAuthHandler) LoginURLGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to generate OAuth state", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start Google sign-in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":   h.googleOAuthService.GetLoginURL(ctx, state),
		"state": state,
	})
}

// ExchangeCodeGoogle godoc
// @Summary Exchange authorization code for access token
// @Description Exchanges a Google authorization code for an application JWT.
// @Tags oauth
// @Accept json
// @Produce json
// @Param code body ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} map[string]ExchangeCodeResponse
// @Failure 400 {object} apperrors.AppError "Invalid authorization code"
// @Failure 401 {object} apperrors.AppError "ID token validation failed"
// @Failure 500 {object} apperrors.AppError
// @Router /auth/google/exchange-code [post]
func (h *GoogleOAuthHandler) ExchangeCodeGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewBadRequestError("Invalid request payload: " + err.Error())
		c.JSON(appErr.Code, appErr)
		return
	}

	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		appErr := apperrors.NewInternalServerError("Failed to communicate with Google OAuth service.")
		if strings.Contains(strings.ToLower(err.Error()), "invalid_grant") || strings.Contains(strings.ToLower(err.Error()), "bad request") {
			appErr = apperrors.NewBadRequestError("Invalid or expired authorization code.")
		}
		c.JSON(appErr.Code, appErr)
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		logger.ErrorContext(ctx, "ID token not found in Google's token response")
		appErr := apperrors.NewInternalServerError("Failed to retrieve ID token from Google.")
		c.JSON(appErr.Code, appErr)
		return
	}

	info, err := h.googleOAuthService.ValidateIDToken(ctx, idTokenString)
	if err != nil {
		logger.ErrorContext(ctx, "Google ID token validation failed", slog.String("error", err.Error()))
		appErr := apperrors.NewUnauthorizedError("Invalid Google ID token: " + err.Error())
		c.JSON(appErr.Code, appErr)
		return
	}

	user, err := h.userService.FindOrCreateGoogleUser(ctx, info)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to resolve Google user", slog.String("error", err.Error()))
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			c.JSON(appErr.Code, appErr)
			return
		}
		defaultErr := apperrors.NewInternalServerError("Failed to process user authentication.")
		c.JSON(defaultErr.Code, defaultErr)
		return
	}

	token, err := utils.GenerateJWT(user.UserID, h.cfg.JWTSecret, h.cfg.JWTIssuer, h.cfg.JWTExpiryDuration)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to generate application token", slog.String("error", err.Error()), slog.Int64("user_id", user.UserID))
		appErr := apperrors.NewInternalServerError("Failed to generate access token.")
		c.JSON(appErr.Code, appErr)
		return
	}

	logger.InfoContext(ctx, "User signed in via Google", slog.Int64("user_id", user.UserID))
	c.JSON(http.StatusOK, gin.H{
		"data": ExchangeCodeResponse{Token: token},
	})
}
