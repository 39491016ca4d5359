package middleware

import (
	"net/http"                    // HTTP status codes
	"rental_system/internal/auth" // Authorization policy

	"github.com/gin-gonic/gin" // Gin web framework
)

// Authorize gates a route on the authorization policy for op. It runs after
// TokenAuth and answers 403 when the caller's role is insufficient.
func Authorize(op auth.Op) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Evaluate the policy for the current user
		if !auth.Allow(CurrentUser(c), op) {
			// Valid identity but insufficient role
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
			return
		}
		c.Next() // Allowed, proceed to the handler
	}
}
