package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "finwatch/internal/errors"
	"finwatch/internal/models"
	"finwatch/internal/services"
)

// AuthHandler handles account and token requests.
type AuthHandler struct {
	users  services.UserServicer
	tokens services.RefreshTokenServicer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServicer, tokens services.RefreshTokenServicer) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Username string `json:"username" binding:"required,username"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries the refresh token being rotated or revoked.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UserResponse represents the user summary in auth responses.
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// AuthResponse represents the authentication response with tokens.
type AuthResponse struct {
	AccessToken         string       `json:"access_token"`
	RefreshToken        string       `json:"refresh_token"`
	RefreshTokenExpires time.Time    `json:"refresh_token_expires"`
	User                UserResponse `json:"user"`
}

func newUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
}

func newAuthResponse(access string, refresh *models.RefreshToken, user *models.User) AuthResponse {
	return AuthResponse{
		AccessToken:         access,
		RefreshToken:        refresh.Token,
		RefreshTokenExpires: refresh.ExpiresAt,
		User:                newUserResponse(user),
	}
}

// Register handles user registration
// @Summary     Register a new user
// @Description Create a user account and issue an access/refresh token pair
// @Tags        account
// @Accept      json
// @Produce     json
// @Param       request body RegisterRequest true "User registration data"
// @Success     200 {object} AuthResponse "User registered and tokens issued"
// @Failure     400 {object} ProblemResponse "Invalid input"
// @Failure     409 {object} ProblemResponse "Username or email already taken"
// @Router      /account/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.users.Register(req.Username, req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	access, refresh, err := h.tokens.Issue(user, c.ClientIP())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newAuthResponse(access, refresh, user))
}

// Login handles user login
// @Summary     Login user
// @Description Verify credentials and issue an access/refresh token pair
// @Tags        account
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "User login credentials"
// @Success     200 {object} AuthResponse "User authenticated and tokens issued"
// @Failure     400 {object} ProblemResponse "Invalid input"
// @Failure     401 {object} ProblemResponse "Invalid credentials"
// @Router      /account/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.users.AttemptLogin(req.Username, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	access, refresh, err := h.tokens.Issue(user, c.ClientIP())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newAuthResponse(access, refresh, user))
}

// Refresh rotates a refresh token
// @Summary     Rotate refresh token
// @Description Exchange an active refresh token for a new access/refresh pair
// @Tags        account
// @Accept      json
// @Produce     json
// @Param       request body RefreshRequest true "Refresh token"
// @Success     200 {object} AuthResponse "New token pair"
// @Failure     401 {object} ProblemResponse "Invalid refresh token"
// @Router      /account/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	access, refresh, err := h.tokens.Rotate(req.RefreshToken, c.ClientIP())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":          access,
		"refresh_token":         refresh.Token,
		"refresh_token_expires": refresh.ExpiresAt,
	})
}

// Revoke revokes a refresh token
// @Summary     Revoke refresh token
// @Description Revoke a refresh token; revoking an unknown or inactive token is a no-op
// @Tags        account
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RefreshRequest true "Refresh token"
// @Success     204 "Token revoked"
// @Failure     401 {object} ProblemResponse "Unauthorized"
// @Router      /account/revoke [post]
func (h *AuthHandler) Revoke(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.tokens.Revoke(req.RefreshToken, c.ClientIP()); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
