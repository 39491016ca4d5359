package web

import (
	"net/http" // HTTP status codes
	"strconv"  // Form field parsing
	"rental_system/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// carList renders the car table
func carList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cars []domain.Car
		if err := db.Find(&cars).Error; err != nil {
			c.String(http.StatusInternalServerError, "Failed to load cars")
			return
		}
		c.HTML(http.StatusOK, "car_list.html", gin.H{"cars": cars})
	}
}

// carForm renders the add/edit form; with an :id it is pre-filled
func carForm(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		car := domain.Car{AvailabilityStatus: "available"}
		if id := c.Param("id"); id != "" {
			if err := db.First(&car, "id = ?", id).Error; err != nil {
				c.String(http.StatusNotFound, "Car not found")
				return
			}
		}
		c.HTML(http.StatusOK, "car_form.html", gin.H{"car": car})
	}
}

// applyCarForm copies the posted form fields onto the record
func applyCarForm(c *gin.Context, car *domain.Car) string {
	car.Make = c.PostForm("make")
	car.Model = c.PostForm("model")
	car.Color = c.PostForm("color")
	car.LicensePlate = c.PostForm("license_plate")
	car.AvailabilityStatus = c.PostForm("availability_status")
	year, err := strconv.Atoi(c.PostForm("year"))
	if err != nil {
		return "Year must be a whole number."
	}
	car.Year = year
	rate, err := strconv.ParseFloat(c.PostForm("daily_rate"), 64)
	if err != nil {
		return "Daily rate must be a number."
	}
	car.DailyRate = rate
	if car.Make == "" || car.Model == "" || car.LicensePlate == "" {
		return "Make, model and license plate are required."
	}
	return ""
}

// carCreate handles the add form submission
func carCreate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var car domain.Car
		if msg := applyCarForm(c, &car); msg != "" {
			c.HTML(http.StatusBadRequest, "car_form.html", gin.H{"car": car, "error": msg})
			return
		}
		if err := db.Create(&car).Error; err != nil {
			c.HTML(http.StatusBadRequest, "car_form.html", gin.H{"car": car, "error": "License plate is already taken."})
			return
		}
		c.Redirect(http.StatusSeeOther, "/panel/cars/") // Back to the list
	}
}

// carUpdate handles the edit form submission
func carUpdate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var car domain.Car
		if err := db.First(&car, "id = ?", c.Param("id")).Error; err != nil {
			c.String(http.StatusNotFound, "Car not found")
			return
		}
		if msg := applyCarForm(c, &car); msg != "" {
			c.HTML(http.StatusBadRequest, "car_form.html", gin.H{"car": car, "error": msg})
			return
		}
		if err := db.Save(&car).Error; err != nil {
			c.HTML(http.StatusBadRequest, "car_form.html", gin.H{"car": car, "error": "License plate is already taken."})
			return
		}
		c.Redirect(http.StatusSeeOther, "/panel/cars/") // Back to the list
	}
}

// carConfirmDelete renders the confirmation page
func carConfirmDelete(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var car domain.Car
		if err := db.First(&car, "id = ?", c.Param("id")).Error; err != nil {
			c.String(http.StatusNotFound, "Car not found")
			return
		}
		c.HTML(http.StatusOK, "car_confirm_delete.html", gin.H{"car": car})
	}
}

// carDelete deletes the car; its rentals cascade with it
func carDelete(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var car domain.Car
		if err := db.First(&car, "id = ?", c.Param("id")).Error; err != nil {
			c.String(http.StatusNotFound, "Car not found")
			return
		}
		if err := db.Delete(&car).Error; err != nil {
			c.String(http.StatusInternalServerError, "Failed to delete car")
			return
		}
		c.Redirect(http.StatusSeeOther, "/panel/cars/") // Back to the list
	}
}
