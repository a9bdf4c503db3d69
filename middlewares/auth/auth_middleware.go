package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salon16/booking/logger"
	"github.com/salon16/booking/models/user_models"
	"github.com/salon16/booking/utils"
	"github.com/salon16/booking/utils/jwt_parse"
)

// AuthMiddleware validates the bearer token and leaves user_id and role in
// the context for handlers. Access tokens only; refresh tokens are rejected.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		jwt_parse.ParseJWTToken()(c)
		if c.IsAborted() {
			return
		}

		if tokenType, exists := c.Get("token_type"); exists {
			if t, ok := tokenType.(string); ok && t != "access" {
				logger.ErrorLogger.Errorf("Non-access token (%s) presented for API access", t)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "INVALID_TOKEN", "error": "Access token required."})
				return
			}
		}

		if _, exists := c.Get("user_id"); !exists {
			logger.ErrorLogger.Error("User ID not found in context after JWT parsing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHORIZED", "error": "Unauthorized: Missing user identification from token."})
			return
		}

		c.Next()
	}
}

// RequireAdmin rejects requests whose token does not carry the admin role.
// Must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := utils.GetRoleFromContext(c)
		if role != user_models.RoleAdmin {
			logger.WarnLogger.Warnf("Admin-only route accessed with role %q", role)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"code": "ACCESS_DENIED", "error": "Forbidden: admin access required."})
			return
		}
		c.Next()
	}
}
