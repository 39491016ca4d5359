// Package web serves the server-rendered CRUD panel over the same entities
// as the JSON API, with its own handler logic and no JSON anywhere.
package web

import (
	"embed"         // Embedded template files
	"html/template" // HTML template rendering

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

//go:embed templates/*.html
var templatesFS embed.FS

// Register mounts the panel under /panel/ on the given router.
// The panel carries no authentication; see DESIGN.md.
func Register(r *gin.Engine, db *gorm.DB) {
	// Parse the embedded templates once and hand them to gin
	tpl := template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
	r.SetHTMLTemplate(tpl)

	panel := r.Group("/panel")

	// User CRUD
	users := panel.Group("/users")
	users.GET("/", userList(db))
	users.GET("/add/", userForm(db))
	users.POST("/add/", userCreate(db))
	users.GET("/:id/edit/", userForm(db))
	users.POST("/:id/edit/", userUpdate(db))
	users.GET("/:id/delete/", userConfirmDelete(db))
	users.POST("/:id/delete/", userDelete(db))

	// Car CRUD
	cars := panel.Group("/cars")
	cars.GET("/", carList(db))
	cars.GET("/add/", carForm(db))
	cars.POST("/add/", carCreate(db))
	cars.GET("/:id/edit/", carForm(db))
	cars.POST("/:id/edit/", carUpdate(db))
	cars.GET("/:id/delete/", carConfirmDelete(db))
	cars.POST("/:id/delete/", carDelete(db))

	// Admin record CRUD
	admins := panel.Group("/admins")
	admins.GET("/", adminList(db))
	admins.GET("/add/", adminForm(db))
	admins.POST("/add/", adminCreate(db))
	admins.GET("/:id/edit/", adminForm(db))
	admins.POST("/:id/edit/", adminUpdate(db))
	admins.GET("/:id/delete/", adminConfirmDelete(db))
	admins.POST("/:id/delete/", adminDelete(db))

	// Rental CRUD
	rentals := panel.Group("/rentals")
	rentals.GET("/", rentalList(db))
	rentals.GET("/add/", rentalForm(db))
	rentals.POST("/add/", rentalCreate(db))
	rentals.GET("/:id/edit/", rentalForm(db))
	rentals.POST("/:id/edit/", rentalUpdate(db))
	rentals.GET("/:id/delete/", rentalConfirmDelete(db))
	rentals.POST("/:id/delete/", rentalDelete(db))
}
