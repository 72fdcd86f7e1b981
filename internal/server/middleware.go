package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kevinblo/fwords-backend/internal/auth"
	"github.com/kevinblo/fwords-backend/pkg/logger"
)

const userIDKey = "user_id"

type AuthMiddleware struct {
	tokens *auth.TokenManager
	log    *logger.Logger
}

func NewAuthMiddleware(tokens *auth.TokenManager, log *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, log: log.With("middleware", "auth")}
}

// RequireAuth verifies the Bearer token and stores the user ID in the
// request context
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if len(header) < 8 || !strings.EqualFold(header[:7], "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}
		userID, err := am.tokens.Verify(header[7:])
		if err != nil {
			am.log.Debug("token rejected", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// currentUserID returns the authenticated user's ID set by RequireAuth.
func currentUserID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}
