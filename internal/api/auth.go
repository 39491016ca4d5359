package api

import (
	"net/http"                      // HTTP status codes
	"rental_system/internal/auth"   // Token store
	"rental_system/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// LoginRequest carries the login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// RegisterHandler creates a user account from the registration contract
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in RegistrationInput // Bind JSON request to struct
		if err := c.ShouldBindJSON(&in); err != nil {
			// If binding fails, return the per-field errors
			c.JSON(http.StatusBadRequest, fieldErrors(err))
			return
		}
		// Hash the password and build the user record
		user, err := in.user()
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		// Attempt to create the user in the database
		if err := db.Create(user).Error; err != nil {
			// If creation fails (e.g., duplicate username), return bad request
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"username": "A user with that username already exists."}})
			return
		}
		// Log the registration
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // New user ID
			"username": user.Username, // Username
		}).Info("User registered")
		// Echo the registration fields back, never the password
		c.JSON(http.StatusCreated, registeredResponse(user))
	}
}

// LoginHandler authenticates a user and returns the stable bearer token
func LoginHandler(db *gorm.DB, tokens *auth.TokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return the per-field errors
			c.JSON(http.StatusBadRequest, fieldErrors(err))
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("username = ?", req.Username).First(&user).Error; err != nil {
			// If user not found, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Issue or reuse the user's token
		token, err := tokens.Issue(c.Request.Context(), user.ID)
		if err != nil {
			// If token storage fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
			return
		}
		// Return the token with the user id and email
		c.JSON(http.StatusOK, gin.H{
			"token":   token,      // Opaque bearer token
			"user_id": user.ID,    // User ID
			"email":   user.Email, // Email address
		})
	}
}
