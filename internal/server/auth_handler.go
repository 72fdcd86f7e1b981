package server

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kevinblo/fwords-backend/internal/auth"
	"github.com/kevinblo/fwords-backend/internal/config"
	"github.com/kevinblo/fwords-backend/internal/database"
	"github.com/kevinblo/fwords-backend/internal/mailer"
	"github.com/kevinblo/fwords-backend/pkg/logger"
	"github.com/kevinblo/fwords-backend/pkg/models"
)

type AuthHandler struct {
	userRepo     *database.UserRepository
	tokenRepo    *database.ActivationTokenRepository
	languageRepo *database.LanguageRepository
	tokens       *auth.TokenManager
	mail         *mailer.Mailer
	cfg          config.AuthConfig
	log          *logger.Logger
}

func NewAuthHandler(tokens *auth.TokenManager, mail *mailer.Mailer, cfg config.AuthConfig, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		userRepo:     database.NewUserRepository(),
		tokenRepo:    database.NewActivationTokenRepository(),
		languageRepo: database.NewLanguageRepository(),
		tokens:       tokens,
		mail:         mail,
		cfg:          cfg,
		log:          log.With("handler", "auth"),
	}
}

// Register creates an inactive account and emails an activation link
func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Name     string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}

	ctx := c.Request.Context()
	if _, err := ah.userRepo.GetByEmail(ctx, req.Email); err == nil {
		RespondError(c, http.StatusConflict, "email_taken", errors.New("email already registered"))
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		respondDomainError(c, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		ah.log.Error("failed to hash password", "error", err)
		respondDomainError(c, err)
		return
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Notify:       true,
	}
	if err := ah.userRepo.Create(ctx, user); err != nil {
		ah.log.Error("failed to create user", "error", err)
		respondDomainError(c, err)
		return
	}

	token, err := ah.tokenRepo.Create(ctx, user.ID)
	if err != nil {
		ah.log.Error("failed to create activation token", "error", err)
		respondDomainError(c, err)
		return
	}
	if err := ah.mail.SendActivation(user.Email, token.Token); err != nil {
		// Registration stands, the user can request a resend.
		ah.log.Error("failed to send activation email", "email", user.Email, "error", err)
	}

	c.JSON(http.StatusCreated, user)
}

// Activate consumes an activation token and enables the account
func (ah *AuthHandler) Activate(c *gin.Context) {
	ctx := c.Request.Context()
	token, err := ah.tokenRepo.GetUnused(ctx, c.Param("token"))
	if err != nil {
		RespondError(c, http.StatusNotFound, "not_found", errors.New("activation token not found"))
		return
	}
	if token.IsExpired(ah.cfg.ActivationTokenTTL) {
		RespondError(c, http.StatusBadRequest, "token_expired", errors.New("activation token expired"))
		return
	}

	user, err := ah.userRepo.GetByID(ctx, token.UserID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	user.IsActive = true
	user.IsEmailVerified = true
	if err := ah.userRepo.Update(ctx, user); err != nil {
		respondDomainError(c, err)
		return
	}
	if err := ah.tokenRepo.MarkUsed(ctx, token.ID); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "account activated"})
}

// ResendActivation issues a fresh activation token for a not yet activated
// account. The response does not reveal whether the email is registered.
func (ah *AuthHandler) ResendActivation(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}

	ctx := c.Request.Context()
	user, err := ah.userRepo.GetByEmail(ctx, req.Email)
	if err == nil && !user.IsActive {
		token, err := ah.tokenRepo.Create(ctx, user.ID)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		if err := ah.mail.SendActivation(user.Email, token.Token); err != nil {
			ah.log.Error("failed to send activation email", "email", user.Email, "error", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "if the account exists, an activation email was sent"})
}

// Login verifies credentials and returns an access token
func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}

	ctx := c.Request.Context()
	user, err := ah.userRepo.GetByEmail(ctx, req.Email)
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		RespondError(c, http.StatusUnauthorized, "invalid_credentials", errors.New("invalid email or password"))
		return
	}
	if !user.IsActive {
		RespondError(c, http.StatusForbidden, "not_activated", errors.New("account is not activated"))
		return
	}

	token, err := ah.tokens.Issue(user.ID)
	if err != nil {
		ah.log.Error("failed to issue token", "error", err)
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"user":         user,
	})
}

// GetProfile returns the authenticated user
func (ah *AuthHandler) GetProfile(c *gin.Context) {
	user, err := ah.userRepo.GetByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile changes the mutable profile fields of the authenticated user
func (ah *AuthHandler) UpdateProfile(c *gin.Context) {
	var req struct {
		Name                *string `json:"name"`
		InterfaceLanguageID *int64  `json:"interface_language_id"`
		NativeLanguageID    *int64  `json:"native_language_id"`
		ActiveLanguageID    *int64  `json:"active_language_id"`
		Notify              *bool   `json:"notify"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}

	ctx := c.Request.Context()
	for _, id := range []*int64{req.InterfaceLanguageID, req.NativeLanguageID, req.ActiveLanguageID} {
		if id == nil {
			continue
		}
		if _, err := ah.languageRepo.GetEnabledByID(ctx, *id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				RespondError(c, http.StatusBadRequest, "invalid_reference", errors.New("language is unknown or disabled"))
				return
			}
			respondDomainError(c, err)
			return
		}
	}

	user, err := ah.userRepo.GetByID(ctx, currentUserID(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.InterfaceLanguageID != nil {
		user.InterfaceLanguageID = req.InterfaceLanguageID
	}
	if req.NativeLanguageID != nil {
		user.NativeLanguageID = req.NativeLanguageID
	}
	if req.ActiveLanguageID != nil {
		user.ActiveLanguageID = req.ActiveLanguageID
	}
	if req.Notify != nil {
		user.Notify = *req.Notify
	}
	if err := ah.userRepo.Update(ctx, user); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
