package api

import (
	"net/http"                          // HTTP status codes
	"rental_system/internal/domain"     // Importing domain models
	"rental_system/internal/middleware" // Access to the authenticated user

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// ListRentalsHandler returns rentals scoped to the caller: staff see every
// rental, everyone else only their own.
func ListRentalsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := middleware.CurrentUser(c)                   // The caller, resolved from the token
		query := db.Preload("User").Preload("Car")            // Always carry the nested records
		if !caller.IsStaff {
			query = query.Where("user_id = ?", caller.ID) // Ownership scope
		}
		var rentals []domain.Rental // Slice to hold rentals
		if err := query.Find(&rentals).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rentals"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"rentals": rentalResponses(rentals)})
	}
}

// GetRentalHandler returns one rental by id, under the same ownership scope
// as the listing: a non-staff caller gets 404 for anyone else's rental.
func GetRentalHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := middleware.CurrentUser(c) // The caller, resolved from the token
		query := db.Preload("User").Preload("Car")
		if !caller.IsStaff {
			query = query.Where("user_id = ?", caller.ID) // Ownership scope
		}
		var rental domain.Rental // Fetch rental from database
		if err := query.First(&rental, "id = ?", c.Param("id")).Error; err != nil {
			// Unknown or unowned id looks the same: not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Rental not found"})
			return
		}
		c.JSON(http.StatusOK, rentalResponse(&rental))
	}
}

// CreateRentalHandler books a rental for the caller. The input carries only
// the car and the date range; the renting user is always the caller.
func CreateRentalHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := middleware.CurrentUser(c) // The caller, resolved from the token
		var in RentalCreateInput            // Bind JSON request to struct
		if err := c.ShouldBindJSON(&in); err != nil {
			// If binding fails, return the per-field errors
			c.JSON(http.StatusBadRequest, fieldErrors(err))
			return
		}
		var car domain.Car // The car must exist
		if err := db.First(&car, in.CarID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"car": "Invalid car."}})
			return
		}
		start, _ := domain.ParseDate(in.StartDate) // Format already validated by binding
		end, _ := domain.ParseDate(in.EndDate)
		rental := domain.Rental{
			UserID:    caller.ID, // Server-side, never client-supplied
			CarID:     car.ID,
			StartDate: start,
			EndDate:   end,
			Status:    domain.StatusPending, // New rentals start pending
		}
		// Attempt to create the rental in the database
		if err := db.Create(&rental).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": caller.ID,   // Renting user
				"car_id":  car.ID,      // Rented car
				"error":   err.Error(), // Error message
			}).Error("Failed to create rental")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create rental"})
			return
		}
		// Log the booking
		logrus.WithFields(logrus.Fields{
			"rental_id": rental.ID, // New rental ID
			"user_id":   caller.ID, // Renting user
			"car_id":    car.ID,    // Rented car
		}).Info("Rental created")
		rental.User = *caller // Fill the nested records for the response
		rental.Car = car
		c.JSON(http.StatusCreated, rentalResponse(&rental))
	}
}

// UpdateRentalHandler updates a rental's dates or status by id.
// PUT requires both dates; PATCH applies only the provided fields.
// Staff only (routed behind the rental:write policy gate).
func UpdateRentalHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rental domain.Rental // Fetch rental from database
		if err := db.Preload("User").Preload("Car").First(&rental, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rental not found"})
			return
		}
		var in RentalUpdateInput // Bind JSON request to struct
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, fieldErrors(err))
			return
		}
		// A full update must carry the date range
		if c.Request.Method == http.MethodPut && (in.StartDate == nil || in.EndDate == nil) {
			c.JSON(http.StatusBadRequest, requiredError("start_date", "end_date"))
			return
		}
		in.apply(&rental) // Copy the provided fields onto the record
		if err := db.Save(&rental).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update rental"})
			return
		}
		c.JSON(http.StatusOK, rentalResponse(&rental))
	}
}

// DeleteRentalHandler removes a rental by id. Staff only.
func DeleteRentalHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rental domain.Rental // Fetch rental from database
		if err := db.First(&rental, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rental not found"})
			return
		}
		if err := db.Delete(&rental).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete rental"})
			return
		}
		// Log the deletion
		logrus.WithFields(logrus.Fields{
			"rental_id": rental.ID, // Deleted rental ID
		}).Info("Rental deleted")
		c.Status(http.StatusNoContent) // Nothing to return
	}
}

// CancelRentalHandler is the owner's self-service cancel. The lookup is
// scoped to the caller, so another user's rental answers 404 rather than
// leaking its existence. Only a pending rental can be cancelled.
func CancelRentalHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := middleware.CurrentUser(c) // The caller, resolved from the token
		var rental domain.Rental            // Fetch the caller's rental
		if err := db.Where("user_id = ?", caller.ID).First(&rental, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rental not found"})
			return
		}
		// Only a pending rental can be cancelled
		if rental.Status != domain.StatusPending {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rental cannot be cancelled"})
			return
		}
		rental.Status = domain.StatusCancelled // Transition pending -> cancelled
		if err := db.Save(&rental).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel rental"})
			return
		}
		// Log the cancellation
		logrus.WithFields(logrus.Fields{
			"rental_id": rental.ID, // Cancelled rental ID
			"user_id":   caller.ID, // Owning user
		}).Info("Rental cancelled")
		c.JSON(http.StatusOK, gin.H{"message": "Rental cancelled successfully"})
	}
}

// StatusUpdateRequest carries the staff status override value
type StatusUpdateRequest struct {
	Status string `json:"status"` // New status, any non-empty string
}

// UpdateRentalStatusHandler is the staff status override: it overwrites the
// status with whatever value the body carries. Staff only (routed behind the
// rental:status-override policy gate, which answers 403 for everyone else).
func UpdateRentalStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req StatusUpdateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
			// Missing status: client error, nothing mutated
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status not provided"})
			return
		}
		var rental domain.Rental // Fetch rental from database
		if err := db.Preload("User").Preload("Car").First(&rental, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rental not found"})
			return
		}
		rental.Status = req.Status // Overwrite unconditionally; the set is open
		if err := db.Save(&rental).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
			return
		}
		// Log the override
		logrus.WithFields(logrus.Fields{
			"rental_id": rental.ID,     // Rental ID
			"status":    rental.Status, // New status
		}).Info("Rental status overridden")
		c.JSON(http.StatusOK, rentalResponse(&rental))
	}
}
