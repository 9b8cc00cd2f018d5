package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"societyhub/auth"
	"societyhub/config"
	"societyhub/store"
)

// JWTAuthMiddleware verifies the bearer token and stores the caller's uid in
// the gin context under "uid".
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// CORS preflight never carries credentials.
		if c.Request.Method == "OPTIONS" {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Authentication required",
				"message": "No authorization token provided",
			})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid authorization header",
				"message": "Format should be: Bearer <token>",
			})
			c.Abort()
			return
		}

		claims, err := auth.VerifyToken(parts[1], config.Global.JWT.Secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid token",
				"message": "Token validation failed",
			})
			c.Abort()
			return
		}

		c.Set("uid", claims.UID)
		c.Next()
	}
}

// RequireAdmin gates a route group on membership of the admins collection.
// Must run after JWTAuthMiddleware.
func RequireAdmin(admins store.AdminStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("uid")
		if uid == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		isAdmin, err := admins.IsAdmin(c.Request.Context(), uid)
		if err != nil {
			zap.L().Error("admin lookup failed", zap.String("uid", uid), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify admin access"})
			c.Abort()
			return
		}
		if !isAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "Admin access required",
				"message": "This account is not an administrator",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
