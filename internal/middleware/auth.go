package middleware

import (
	"net/http"                      // HTTP status codes
	"strings"                       // String manipulation
	"rental_system/internal/auth"   // Token store
	"rental_system/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// currentUserKey is the gin context key holding the authenticated user
const currentUserKey = "currentUser"

// CurrentUser returns the authenticated user set by TokenAuth, or nil
func CurrentUser(c *gin.Context) *domain.User {
	if v, exists := c.Get(currentUserKey); exists {
		return v.(*domain.User)
	}
	return nil
}

// TokenAuth validates the bearer token and loads the calling user
func TokenAuth(tokens *auth.TokenStore, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		userID, err := tokens.Resolve(c.Request.Context(), tokenStr)
		if err != nil {
			// Unknown token or Redis failure, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		var user domain.User // Load the user the token belongs to
		if err := db.First(&user, userID).Error; err != nil {
			// Token points at a user that no longer exists
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		c.Set(currentUserKey, &user) // Store the user in context
		c.Next()                     // Proceed to the next handler
	}
}
