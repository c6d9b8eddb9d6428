package middleware

import (
	"strings"

	"github.com/SumanthSV/AI-Todo-summarizer/services"
	"github.com/SumanthSV/AI-Todo-summarizer/utils"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserID         = "user_id"
	ContextSessionID      = "session_id"
	ContextToken          = "token"
	ContextTokenExpiresAt = "token_expires_at"
)

// AuthMiddleware requires a valid bearer token and stores the caller's
// identity in the gin context. blacklist may be nil.
func AuthMiddleware(tokens *services.TokenService, blacklist services.TokenBlacklist, logger hclog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.Unauthorized(c, "Missing or invalid token")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		if blacklist != nil {
			revoked, err := blacklist.IsTokenBlacklisted(c.Request.Context(), tokenString)
			if err != nil {
				// Redis being down should not lock everyone out.
				logger.Warn("token blacklist lookup failed", "error", err)
			}
			if revoked {
				utils.Unauthorized(c, "Token has been invalidated")
				c.Abort()
				return
			}
		}

		claims, err := tokens.ParseJWT(tokenString)
		if err != nil {
			utils.TrackAuthAttempt("failure", "token")
			utils.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextSessionID, claims.SessionID)
		c.Set(ContextToken, tokenString)
		if claims.ExpiresAt != nil {
			c.Set(ContextTokenExpiresAt, claims.ExpiresAt.Time)
		}

		c.Next()
	}
}
