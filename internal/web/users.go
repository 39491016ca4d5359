package web

import (
	"net/http"                      // HTTP status codes
	"rental_system/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// userList renders the user table
func userList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []domain.User
		if err := db.Find(&users).Error; err != nil {
			c.String(http.StatusInternalServerError, "Failed to load users")
			return
		}
		c.HTML(http.StatusOK, "user_list.html", gin.H{"users": users})
	}
}

// userForm renders the add/edit form; with an :id it is pre-filled
func userForm(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user domain.User
		if id := c.Param("id"); id != "" {
			if err := db.First(&user, "id = ?", id).Error; err != nil {
				c.String(http.StatusNotFound, "User not found")
				return
			}
		}
		c.HTML(http.StatusOK, "user_form.html", gin.H{"user": user})
	}
}

// applyUserForm copies the posted form fields onto the record. A blank
// password on edit keeps the stored hash.
func applyUserForm(c *gin.Context, user *domain.User) error {
	user.Username = c.PostForm("username")
	user.Email = c.PostForm("email")
	user.FirstName = c.PostForm("first_name")
	user.LastName = c.PostForm("last_name")
	user.PhoneNumber = c.PostForm("phone_number")
	user.Address = c.PostForm("address")
	if pw := c.PostForm("password"); pw != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.Password = string(hash) // Store the hash, never the plaintext
	}
	return nil
}

// userCreate handles the add form submission
func userCreate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user domain.User
		if err := applyUserForm(c, &user); err != nil {
			c.String(http.StatusInternalServerError, "Failed to save user")
			return
		}
		if user.Username == "" || user.Password == "" {
			// Re-render the form with what was submitted
			c.HTML(http.StatusBadRequest, "user_form.html", gin.H{"user": user, "error": "Username and password are required."})
			return
		}
		if err := db.Create(&user).Error; err != nil {
			c.HTML(http.StatusBadRequest, "user_form.html", gin.H{"user": user, "error": "Username is already taken."})
			return
		}
		c.Redirect(http.StatusSeeOther, "/panel/users/") // Back to the list
	}
}

// userUpdate handles the edit form submission
func userUpdate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user domain.User
		if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
			c.String(http.StatusNotFound, "User not found")
			return
		}
		if err := applyUserForm(c, &user); err != nil {
			c.String(http.StatusInternalServerError, "Failed to save user")
			return
		}
		if err := db.Save(&user).Error; err != nil {
			c.HTML(http.StatusBadRequest, "user_form.html", gin.H{"user": user, "error": "Username is already taken."})
			return
		}
		c.Redirect(http.StatusSeeOther, "/panel/users/") // Back to the list
	}
}

// userConfirmDelete renders the confirmation page
func userConfirmDelete(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user domain.User
		if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
			c.String(http.StatusNotFound, "User not found")
			return
		}
		c.HTML(http.StatusOK, "user_confirm_delete.html", gin.H{"user": user})
	}
}

// userDelete deletes the user; admin record and rentals cascade with it
func userDelete(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user domain.User
		if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
			c.String(http.StatusNotFound, "User not found")
			return
		}
		if err := db.Delete(&user).Error; err != nil {
			c.String(http.StatusInternalServerError, "Failed to delete user")
			return
		}
		c.Redirect(http.StatusSeeOther, "/panel/users/") // Back to the list
	}
}
