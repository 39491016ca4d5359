package api

import (
	"net/http"                          // HTTP status codes
	"rental_system/internal/auth"       // Token store
	"rental_system/internal/middleware" // Access to the authenticated user

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// The profile endpoints always operate on the caller's own record. The
// identity comes from the token, never from a path parameter, so one user
// can never reach another's profile through them.

// GetProfileHandler returns the caller's own user record
func GetProfileHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c) // The caller, resolved from the token
		c.JSON(http.StatusOK, userResponse(user))
	}
}

// UpdateProfileHandler updates the caller's own user record.
// PUT requires the username; PATCH applies only the provided fields.
func UpdateProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c) // The caller, resolved from the token
		var in UserUpdateInput            // Bind JSON request to struct
		if err := c.ShouldBindJSON(&in); err != nil {
			// If binding fails, return the per-field errors
			c.JSON(http.StatusBadRequest, fieldErrors(err))
			return
		}
		// A full update must carry the username
		if c.Request.Method == http.MethodPut && in.Username == nil {
			c.JSON(http.StatusBadRequest, requiredError("username"))
			return
		}
		in.apply(user) // Copy the provided fields onto the record
		// Persist the update
		if err := db.Save(user).Error; err != nil {
			// Duplicate username or other constraint violation
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update profile"})
			return
		}
		c.JSON(http.StatusOK, userResponse(user))
	}
}

// DeleteProfileHandler deletes the caller's own account. The token is
// revoked and the user's admin record and rentals go with it.
func DeleteProfileHandler(db *gorm.DB, tokens *auth.TokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c) // The caller, resolved from the token
		// Delete the account; FK constraints cascade to Admin and Rentals
		if err := db.Delete(user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
			return
		}
		// Revoke the now-dangling token
		if err := tokens.Revoke(c.Request.Context(), user.ID); err != nil {
			// Log but keep going; the token resolves to a deleted user anyway
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,     // Deleted user ID
				"error":   err.Error(), // Error message
			}).Error("Failed to revoke token")
		}
		// Log the deletion
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // Deleted user ID
			"username": user.Username, // Username
		}).Info("Account deleted")
		c.Status(http.StatusNoContent) // Nothing to return
	}
}
