package api

import (
	"context"                       // Context for Redis operations
	"net/http"                      // HTTP status codes
	"strconv"                       // String conversion
	"strings"                       // String manipulation
	"time"                          // Time durations
	"rental_system/internal/domain" // Importing domain models
	"rental_system/internal/utils"  // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// carListCacheKey caches the unfiltered catalog listing; filtered queries
// always hit the database.
const carListCacheKey = "cars:all"

// invalidateCarCache drops the cached catalog listing after a write
func invalidateCarCache(rdb *redis.Client) {
	_ = utils.DeleteCache(context.Background(), rdb, carListCacheKey)
}

// ListCarsHandler returns the catalog, filtered by the query parameters:
// case-insensitive substring on make/model, exact year, case-insensitive
// exact availability_status. Open to anyone, including unauthenticated.
func ListCarsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		make_ := c.Query("make")                // Substring filter on make
		model := c.Query("model")               // Substring filter on model
		year := c.Query("year")                 // Exact filter on year
		avail := c.Query("availability_status") // Exact filter on availability
		unfiltered := make_ == "" && model == "" && year == "" && avail == ""
		ctx := context.Background() // Context for Redis operations
		// Serve the unfiltered listing from cache when possible
		if unfiltered {
			var cached []CarResponse
			if found, err := utils.GetCache(ctx, rdb, carListCacheKey, &cached); err == nil && found {
				c.JSON(http.StatusOK, gin.H{"cars": cached, "cached": true})
				return
			}
		}
		query := db.Model(&domain.Car{}) // Start building the query
		if make_ != "" {
			// Case-insensitive substring match
			query = query.Where("LOWER(make) LIKE ?", "%"+strings.ToLower(make_)+"%")
		}
		if model != "" {
			query = query.Where("LOWER(model) LIKE ?", "%"+strings.ToLower(model)+"%")
		}
		if year != "" {
			y, err := strconv.Atoi(year) // Year must be an integer
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"year": "A valid integer is required."}})
				return
			}
			query = query.Where("year = ?", y) // Exact match
		}
		if avail != "" {
			// Case-insensitive exact match
			query = query.Where("LOWER(availability_status) = ?", strings.ToLower(avail))
		}
		var cars []domain.Car // Slice to hold cars
		if err := query.Find(&cars).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cars"})
			return
		}
		resp := carResponses(cars) // Map cars to their read representation
		if unfiltered {
			// Cache the unfiltered listing for 60 seconds
			_ = utils.SetCache(ctx, rdb, carListCacheKey, resp, 60*time.Second)
		}
		c.JSON(http.StatusOK, gin.H{"cars": resp, "cached": false})
	}
}

// GetCarHandler returns one car by id. Open to anyone.
func GetCarHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var car domain.Car // Fetch car from database
		if err := db.First(&car, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
			return
		}
		c.JSON(http.StatusOK, carResponse(&car))
	}
}

// CreateCarHandler adds a car to the catalog. Staff only (routed behind the
// car:write policy gate).
func CreateCarHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in CarInput // Bind JSON request to struct
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, fieldErrors(err))
			return
		}
		// Every car field except availability_status is required on create
		if missing := in.missingForCreate(); len(missing) > 0 {
			c.JSON(http.StatusBadRequest, requiredError(missing...))
			return
		}
		var car domain.Car // Build the record from the provided fields
		in.apply(&car)
		if car.AvailabilityStatus == "" {
			car.AvailabilityStatus = "available" // Catalog default
		}
		// Attempt to create the car in the database
		if err := db.Create(&car).Error; err != nil {
			// Duplicate license plate
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"license_plate": "A car with that license plate already exists."}})
			return
		}
		// Log the creation
		logrus.WithFields(logrus.Fields{
			"car_id":        car.ID,           // New car ID
			"license_plate": car.LicensePlate, // License plate
		}).Info("Car created")
		invalidateCarCache(rdb)                       // Drop the stale listing
		c.JSON(http.StatusCreated, carResponse(&car)) // Return the new car
	}
}

// UpdateCarHandler updates a car by id. PUT requires every writable field;
// PATCH applies only the provided ones. Staff only.
func UpdateCarHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var car domain.Car // Fetch car from database
		if err := db.First(&car, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
			return
		}
		var in CarInput // Bind JSON request to struct
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, fieldErrors(err))
			return
		}
		// A full update must carry every required field
		if c.Request.Method == http.MethodPut {
			if missing := in.missingForCreate(); len(missing) > 0 {
				c.JSON(http.StatusBadRequest, requiredError(missing...))
				return
			}
		}
		in.apply(&car) // Copy the provided fields onto the record
		if err := db.Save(&car).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"license_plate": "A car with that license plate already exists."}})
			return
		}
		invalidateCarCache(rdb) // Drop the stale listing
		c.JSON(http.StatusOK, carResponse(&car))
	}
}

// DeleteCarHandler removes a car by id; its rentals cascade with it. Staff only.
func DeleteCarHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var car domain.Car // Fetch car from database
		if err := db.First(&car, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
			return
		}
		// Delete the car; FK constraints cascade to its rentals
		if err := db.Delete(&car).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete car"})
			return
		}
		// Log the deletion
		logrus.WithFields(logrus.Fields{
			"car_id":        car.ID,           // Deleted car ID
			"license_plate": car.LicensePlate, // License plate
		}).Info("Car deleted")
		invalidateCarCache(rdb)        // Drop the stale listing
		c.Status(http.StatusNoContent) // Nothing to return
	}
}
