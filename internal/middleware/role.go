package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"guarderia/internal/auth"
)

// RequireRole gates a route group to the listed account roles. It runs
// after AuthMiddleware, which stores the token's role in the context;
// a role outside the ADMIN/STAFF/PARENT set is forbidden regardless of
// what the route allows.
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("userRole")
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "role missing"})
			return
		}

		role, ok := value.(string)
		if !ok || !auth.ValidRole(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}
