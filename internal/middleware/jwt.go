package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"car_rental/internal/service" // Principal claims
	"car_rental/internal/utils"   // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// Context key under which the authenticated principal is stored
const PrincipalKey = "principal"

// JWTAuthMiddleware validates the session token from the Authorization header or the
// session cookie and stores the principal in the context
func JWTAuthMiddleware(secret, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ""
		if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
			tokenStr = strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		} else if cookie, err := c.Cookie(cookieName); err == nil {
			tokenStr = cookie // Fall back to the session cookie
		}
		if tokenStr == "" {
			// If neither is present, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid credentials"})
			return
		}
		claims, err := utils.ParseJWT(tokenStr, secret) // Parse the JWT token
		if err != nil {
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set(PrincipalKey, claims.Principal()) // Store principal in context
		c.Next()                                // Proceed to the next handler
	}
}

// Principal returns the authenticated principal stored by JWTAuthMiddleware
func Principal(c *gin.Context) (service.PrincipalClaims, bool) {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		return service.PrincipalClaims{}, false
	}
	p, ok := v.(service.PrincipalClaims)
	return p, ok
}
