package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"finwatch/internal/config"
	"finwatch/internal/models"
)

// Context keys set by AuthMiddleware for downstream handlers.
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextEmail    = "email"
	ContextRoles    = "roles"
)

// Claims represents the claims embedded in a finwatch access token.
type Claims struct {
	UserID   uint     `json:"user_id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// signingKey returns the JWT signing key from configuration.
func signingKey() []byte {
	return []byte(config.Get().JWTSigningKey)
}

// GenerateAccessToken mints a short-lived signed access token for a user.
// The lifetime, issuer, and audience are configuration-driven.
func GenerateAccessToken(user *models.User) (string, error) {
	cfg := config.Get()
	now := time.Now()

	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Roles:    []string{user.Role},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(cfg.AccessTokenMinutes) * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    cfg.JWTIssuer,
			Audience:  jwt.ClaimStrings{cfg.JWTAudience},
			Subject:   fmt.Sprintf("%d", user.ID),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey())
}

// ParseAccessToken validates a signed access token and returns its claims.
func ParseAccessToken(tokenString string) (*Claims, error) {
	cfg := config.Get()
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return signingKey(), nil
	}, jwt.WithIssuer(cfg.JWTIssuer), jwt.WithAudience(cfg.JWTAudience))

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid access token")
	}

	return claims, nil
}

// AuthMiddleware verifies the bearer token and sets the authenticated
// identity (user ID, username, email, roles) in the context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		claims, err := ParseAccessToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRoles, claims.Roles)
		c.Next()
	}
}

// abortUnauthorized writes a problem-detail 401 response and stops the chain.
func abortUnauthorized(c *gin.Context, detail string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"title":          "UNAUTHORIZED",
		"status":         http.StatusUnauthorized,
		"detail":         detail,
		"instance":       c.Request.URL.Path,
		"correlation_id": c.GetString(RequestIDKey),
	})
}
