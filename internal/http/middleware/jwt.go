package middleware

import (
	"net/http"
	"strings"

	"fanquest/internal/domain"
	"fanquest/internal/service"

	"github.com/gin-gonic/gin"
)

// JWT validates the Authorization bearer token and puts user_id and role
// into the gin context.
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			// also accept ?token= for the websocket endpoint, where the
			// browser cannot set headers
			token = c.Query("token")
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		profileID, role, err := service.ParseJWT(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("user_id", profileID)
		c.Set("role", string(role))
		c.Next()
	}
}

// RequireReviewer rejects callers whose token role is plain fan. The
// review gate still decides per-attempt ownership; this only keeps fans out
// of the studio surface.
func RequireReviewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := domain.Role(c.GetString("role"))
		if role != domain.RoleCreator && role != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "creator or admin role required"})
			return
		}
		c.Next()
	}
}
