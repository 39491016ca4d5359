package api

import (
	"rental_system/internal/auth"       // Token store and policy
	"rental_system/internal/metrics"    // Prometheus middleware
	"rental_system/internal/middleware" // Auth middleware

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// NewRouter builds the JSON API surface. The HTML panel is mounted
// separately (see internal/web).
func NewRouter(db *gorm.DB, rdb *redis.Client) *gin.Engine {
	r := gin.Default() // Gin router instance

	tokens := auth.NewTokenStore(rdb) // Opaque bearer token table in Redis

	r.Use(metrics.RequestCounter()) // Count every handled request
	r.GET("/metrics", metrics.Handler())

	// Registration and login are open
	r.POST("/users/register/", RegisterHandler(db))
	r.POST("/users/login/", LoginHandler(db, tokens))

	// Profile routes: the caller's own record only
	profile := r.Group("/users/profile", middleware.TokenAuth(tokens, db))
	profile.GET("/", GetProfileHandler())
	profile.PUT("/", UpdateProfileHandler(db))
	profile.PATCH("/", UpdateProfileHandler(db))
	profile.DELETE("/", DeleteProfileHandler(db, tokens))

	// Admin user management: staff only
	adminUsers := r.Group("/admin/users", middleware.TokenAuth(tokens, db), middleware.Authorize(auth.OpUserAdmin))
	adminUsers.GET("/", ListUsersHandler(db))
	adminUsers.POST("/", CreateUserHandler(db))
	adminUsers.GET("/:id/", GetUserHandler(db))
	adminUsers.PUT("/:id/", UpdateUserHandler(db))
	adminUsers.PATCH("/:id/", UpdateUserHandler(db))
	adminUsers.DELETE("/:id/", DeleteUserHandler(db, tokens))

	// Car catalog: reads open to anyone, writes staff only
	r.GET("/cars/", ListCarsHandler(db, rdb))
	r.GET("/cars/:id/", GetCarHandler(db))
	carWrite := r.Group("/cars", middleware.TokenAuth(tokens, db), middleware.Authorize(auth.OpCarWrite))
	carWrite.POST("/", CreateCarHandler(db, rdb))
	carWrite.PUT("/:id/", UpdateCarHandler(db, rdb))
	carWrite.PATCH("/:id/", UpdateCarHandler(db, rdb))
	carWrite.DELETE("/:id/", DeleteCarHandler(db, rdb))

	// Rentals: authenticated, ownership-scoped; writes staff only
	rentals := r.Group("/rentals", middleware.TokenAuth(tokens, db))
	rentals.GET("/", ListRentalsHandler(db))
	rentals.POST("/", CreateRentalHandler(db))
	rentals.GET("/:id/", GetRentalHandler(db))
	rentals.PUT("/:id/cancel/", CancelRentalHandler(db))
	rentalWrite := rentals.Group("", middleware.Authorize(auth.OpRentalWrite))
	rentalWrite.PUT("/:id/", UpdateRentalHandler(db))
	rentalWrite.PATCH("/:id/", UpdateRentalHandler(db))
	rentalWrite.DELETE("/:id/", DeleteRentalHandler(db))

	// Staff status override
	r.PUT("/admin/rentals/:id/status/",
		middleware.TokenAuth(tokens, db),
		middleware.Authorize(auth.OpRentalStatusOverride),
		UpdateRentalStatusHandler(db))

	return r
}
