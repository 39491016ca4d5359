package api

import (
	"net/http"                      // HTTP status codes
	"rental_system/internal/auth"   // Token store
	"rental_system/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Staff-only CRUD over any user. The routes sit behind the user:admin
// policy gate, so these handlers never re-check the caller's role.

// ListUsersHandler returns every user
func ListUsersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []domain.User // Slice to hold users
		if err := db.Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		// Map users to their read representation
		resp := make([]UserResponse, len(users))
		for i := range users {
			resp[i] = userResponse(&users[i])
		}
		c.JSON(http.StatusOK, gin.H{"users": resp})
	}
}

// CreateUserHandler creates a user through the registration contract (so the
// password gets hashed) but answers with the full read representation.
func CreateUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in RegistrationInput // Reuse the registration mapping
		if err := c.ShouldBindJSON(&in); err != nil {
			// If binding fails, return the per-field errors
			c.JSON(http.StatusBadRequest, fieldErrors(err))
			return
		}
		// Hash the password and build the user record
		user, err := in.user()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		// Attempt to create the user in the database
		if err := db.Create(user).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"username": "A user with that username already exists."}})
			return
		}
		// Log the creation
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // New user ID
			"username": user.Username, // Username
		}).Info("User created by admin")
		c.JSON(http.StatusCreated, userResponse(user)) // Full read representation
	}
}

// GetUserHandler returns one user by id
func GetUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user domain.User // Fetch user from database
		if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, userResponse(&user))
	}
}

// UpdateUserHandler updates any user by id.
// PUT requires the username; PATCH applies only the provided fields.
func UpdateUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user domain.User // Fetch user from database
		if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		var in UserUpdateInput // Bind JSON request to struct
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, fieldErrors(err))
			return
		}
		// A full update must carry the username
		if c.Request.Method == http.MethodPut && in.Username == nil {
			c.JSON(http.StatusBadRequest, requiredError("username"))
			return
		}
		in.apply(&user) // Copy the provided fields onto the record
		if err := db.Save(&user).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update user"})
			return
		}
		c.JSON(http.StatusOK, userResponse(&user))
	}
}

// DeleteUserHandler deletes any user by id, revoking their token and
// cascading to their admin record and rentals.
func DeleteUserHandler(db *gorm.DB, tokens *auth.TokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user domain.User // Fetch user from database
		if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		// Delete the account; FK constraints cascade to Admin and Rentals
		if err := db.Delete(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
			return
		}
		// Revoke the deleted user's token
		if err := tokens.Revoke(c.Request.Context(), user.ID); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,     // Deleted user ID
				"error":   err.Error(), // Error message
			}).Error("Failed to revoke token")
		}
		// Log the deletion
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // Deleted user ID
			"username": user.Username, // Username
		}).Info("User deleted by admin")
		c.Status(http.StatusNoContent) // Nothing to return
	}
}
