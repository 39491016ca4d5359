package web

import (
	"net/http" // HTTP status codes
	"strconv"  // Form field parsing

	"rental_system/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// rentalList renders the rental table with users and cars
func rentalList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rentals []domain.Rental
		if err := db.Preload("User").Preload("Car").Find(&rentals).Error; err != nil {
			c.String(http.StatusInternalServerError, "Failed to load rentals")
			return
		}
		c.HTML(http.StatusOK, "rental_list.html", gin.H{"rentals": rentals})
	}
}

// rentalForm renders the add/edit form with user and car pickers.
// Unlike the API contract, the panel form exposes every column.
func rentalForm(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rental := domain.Rental{Status: domain.StatusPending}
		if id := c.Param("id"); id != "" {
			if err := db.First(&rental, "id = ?", id).Error; err != nil {
				c.String(http.StatusNotFound, "Rental not found")
				return
			}
		}
		var users []domain.User // Choices for the user picker
		var cars []domain.Car   // Choices for the car picker
		if err := db.Find(&users).Error; err != nil {
			c.String(http.StatusInternalServerError, "Failed to load users")
			return
		}
		if err := db.Find(&cars).Error; err != nil {
			c.String(http.StatusInternalServerError, "Failed to load cars")
			return
		}
		c.HTML(http.StatusOK, "rental_form.html", gin.H{"rental": rental, "users": users, "cars": cars})
	}
}

// applyRentalForm copies the posted form fields onto the record
func applyRentalForm(c *gin.Context, rental *domain.Rental) string {
	userID, err := strconv.Atoi(c.PostForm("user"))
	if err != nil {
		return "A user must be selected."
	}
	rental.UserID = uint(userID)
	carID, err := strconv.Atoi(c.PostForm("car"))
	if err != nil {
		return "A car must be selected."
	}
	rental.CarID = uint(carID)
	start, err := domain.ParseDate(c.PostForm("start_date"))
	if err != nil {
		return "Start date must be YYYY-MM-DD."
	}
	rental.StartDate = start
	end, err := domain.ParseDate(c.PostForm("end_date"))
	if err != nil {
		return "End date must be YYYY-MM-DD."
	}
	rental.EndDate = end
	if cost := c.PostForm("total_cost"); cost != "" {
		v, err := strconv.ParseFloat(cost, 64)
		if err != nil {
			return "Total cost must be a number."
		}
		rental.TotalCost = &v
	} else {
		rental.TotalCost = nil
	}
	if status := c.PostForm("status"); status != "" {
		rental.Status = status
	}
	return ""
}

// rentalCreate handles the add form submission
func rentalCreate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rental := domain.Rental{Status: domain.StatusPending}
		if msg := applyRentalForm(c, &rental); msg != "" {
			c.String(http.StatusBadRequest, msg)
			return
		}
		if err := db.Create(&rental).Error; err != nil {
			c.String(http.StatusBadRequest, "Failed to save rental")
			return
		}
		c.Redirect(http.StatusSeeOther, "/panel/rentals/") // Back to the list
	}
}

// rentalUpdate handles the edit form submission
func rentalUpdate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rental domain.Rental
		if err := db.First(&rental, "id = ?", c.Param("id")).Error; err != nil {
			c.String(http.StatusNotFound, "Rental not found")
			return
		}
		if msg := applyRentalForm(c, &rental); msg != "" {
			c.String(http.StatusBadRequest, msg)
			return
		}
		if err := db.Save(&rental).Error; err != nil {
			c.String(http.StatusBadRequest, "Failed to save rental")
			return
		}
		c.Redirect(http.StatusSeeOther, "/panel/rentals/") // Back to the list
	}
}

// rentalConfirmDelete renders the confirmation page
func rentalConfirmDelete(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rental domain.Rental
		if err := db.Preload("User").Preload("Car").First(&rental, "id = ?", c.Param("id")).Error; err != nil {
			c.String(http.StatusNotFound, "Rental not found")
			return
		}
		c.HTML(http.StatusOK, "rental_confirm_delete.html", gin.H{"rental": rental})
	}
}

// rentalDelete deletes the rental
func rentalDelete(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rental domain.Rental
		if err := db.First(&rental, "id = ?", c.Param("id")).Error; err != nil {
			c.String(http.StatusNotFound, "Rental not found")
			return
		}
		if err := db.Delete(&rental).Error; err != nil {
			c.String(http.StatusInternalServerError, "Failed to delete rental")
			return
		}
		c.Redirect(http.StatusSeeOther, "/panel/rentals/") // Back to the list
	}
}
