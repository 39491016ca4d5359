package web

import (
	"net/http" // HTTP status codes
	"strconv"  // Form field parsing
	"rental_system/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// adminList renders the admin-record table with the linked users
func adminList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var admins []domain.Admin
		if err := db.Preload("User").Find(&admins).Error; err != nil {
			c.String(http.StatusInternalServerError, "Failed to load admins")
			return
		}
		c.HTML(http.StatusOK, "admin_list.html", gin.H{"admins": admins})
	}
}

// adminForm renders the add/edit form with a user picker
func adminForm(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var admin domain.Admin
		if id := c.Param("id"); id != "" {
			if err := db.Preload("User").First(&admin, "user_id = ?", id).Error; err != nil {
				c.String(http.StatusNotFound, "Admin not found")
				return
			}
		}
		var users []domain.User // Choices for the user picker
		if err := db.Find(&users).Error; err != nil {
			c.String(http.StatusInternalServerError, "Failed to load users")
			return
		}
		c.HTML(http.StatusOK, "admin_form.html", gin.H{"admin": admin, "choices": users})
	}
}

// adminCreate handles the add form submission
func adminCreate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.Atoi(c.PostForm("user"))
		if err != nil {
			c.String(http.StatusBadRequest, "A user must be selected")
			return
		}
		admin := domain.Admin{
			UserID:      uint(userID),
			Permissions: c.PostForm("permissions"),
		}
		// One admin record per user; a duplicate primary key fails here
		if err := db.Create(&admin).Error; err != nil {
			c.String(http.StatusBadRequest, "That user already has an admin record")
			return
		}
		c.Redirect(http.StatusSeeOther, "/panel/admins/") // Back to the list
	}
}

// adminUpdate handles the edit form submission; only permissions change
func adminUpdate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var admin domain.Admin
		if err := db.First(&admin, "user_id = ?", c.Param("id")).Error; err != nil {
			c.String(http.StatusNotFound, "Admin not found")
			return
		}
		admin.Permissions = c.PostForm("permissions")
		if err := db.Save(&admin).Error; err != nil {
			c.String(http.StatusInternalServerError, "Failed to save admin")
			return
		}
		c.Redirect(http.StatusSeeOther, "/panel/admins/") // Back to the list
	}
}

// adminConfirmDelete renders the confirmation page
func adminConfirmDelete(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var admin domain.Admin
		if err := db.Preload("User").First(&admin, "user_id = ?", c.Param("id")).Error; err != nil {
			c.String(http.StatusNotFound, "Admin not found")
			return
		}
		c.HTML(http.StatusOK, "admin_confirm_delete.html", gin.H{"admin": admin})
	}
}

// adminDelete deletes the admin record; the linked user stays
func adminDelete(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var admin domain.Admin
		if err := db.First(&admin, "user_id = ?", c.Param("id")).Error; err != nil {
			c.String(http.StatusNotFound, "Admin not found")
			return
		}
		if err := db.Delete(&admin).Error; err != nil {
			c.String(http.StatusInternalServerError, "Failed to delete admin")
			return
		}
		c.Redirect(http.StatusSeeOther, "/panel/admins/") // Back to the list
	}
}
