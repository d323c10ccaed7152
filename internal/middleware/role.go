package middleware

import (
	"net/http" // HTTP status codes
	"slices"   // Role lookup

	"car_rental/internal/domain" // Role names

	"github.com/gin-gonic/gin" // Gin web framework
)

// RequireRole lets the request through only when the principal holds one of roles
func RequireRole(roles ...domain.RoleName) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := Principal(c) // Get principal from context
		if !ok {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if !slices.Contains(roles, domain.RoleName(p.Role)) {
			// Role not allowed, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
			return
		}
		c.Next()
	}
}
