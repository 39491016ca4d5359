package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"rental_system/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newPanel(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=1"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // One connection so the in-memory DB is shared
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Car{}, &domain.Admin{}, &domain.Rental{}))

	r := gin.New()
	Register(r, db)
	return r, db
}

func get(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postForm(t *testing.T, r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUserPanelFlow(t *testing.T) {
	r, db := newPanel(t)

	// The add form submits, hashes the password and redirects to the list
	w := postForm(t, r, "/panel/users/add/", url.Values{
		"username": {"alice"},
		"password": {"secret123"},
		"email":    {"alice@example.com"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/panel/users/", w.Header().Get("Location"))

	var alice domain.User
	require.NoError(t, db.Where("username = ?", "alice").First(&alice).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(alice.Password), []byte("secret123")))

	// The list page shows the new row
	w = get(t, r, "/panel/users/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")

	// Editing with a blank password keeps the stored hash
	w = postForm(t, r, "/panel/users/"+strconv.Itoa(int(alice.ID))+"/edit/", url.Values{
		"username": {"alice"},
		"email":    {"new@example.com"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	var edited domain.User
	require.NoError(t, db.First(&edited, alice.ID).Error)
	assert.Equal(t, "new@example.com", edited.Email)
	assert.Equal(t, alice.Password, edited.Password)

	// Delete confirms on GET, removes on POST
	w = get(t, r, "/panel/users/"+strconv.Itoa(int(alice.ID))+"/delete/")
	require.Equal(t, http.StatusOK, w.Code)
	w = postForm(t, r, "/panel/users/"+strconv.Itoa(int(alice.ID))+"/delete/", url.Values{})
	require.Equal(t, http.StatusSeeOther, w.Code)
	var count int64
	db.Model(&domain.User{}).Count(&count)
	assert.Zero(t, count)
}

func TestUserPanelRejectsMissingCredentials(t *testing.T) {
	r, db := newPanel(t)

	w := postForm(t, r, "/panel/users/add/", url.Values{"username": {"alice"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var count int64
	db.Model(&domain.User{}).Count(&count)
	assert.Zero(t, count)
}

func TestCarPanelFlow(t *testing.T) {
	r, db := newPanel(t)

	w := postForm(t, r, "/panel/cars/add/", url.Values{
		"make":                {"Toyota"},
		"model":               {"Corolla"},
		"year":                {"2020"},
		"color":               {"blue"},
		"license_plate":       {"AAA-111"},
		"daily_rate":          {"39.50"},
		"availability_status": {"available"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)

	var car domain.Car
	require.NoError(t, db.First(&car).Error)
	assert.Equal(t, 2020, car.Year)
	assert.Equal(t, 39.50, car.DailyRate)

	// A non-numeric year re-renders the form instead of saving
	w = postForm(t, r, "/panel/cars/add/", url.Values{
		"make": {"Honda"}, "model": {"Civic"}, "year": {"twenty-twenty"},
		"license_plate": {"BBB-222"}, "daily_rate": {"30"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var count int64
	db.Model(&domain.Car{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestRentalPanelFlow(t *testing.T) {
	r, db := newPanel(t)
	user := domain.User{Username: "alice", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	car := domain.Car{Make: "Toyota", Model: "Corolla", Year: 2020, LicensePlate: "AAA-111", DailyRate: 40, AvailabilityStatus: "available"}
	require.NoError(t, db.Create(&car).Error)

	w := postForm(t, r, "/panel/rentals/add/", url.Values{
		"user":       {strconv.Itoa(int(user.ID))},
		"car":        {strconv.Itoa(int(car.ID))},
		"start_date": {"2026-09-01"},
		"end_date":   {"2026-09-05"},
		"total_cost": {"160"},
		"status":     {"confirmed"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)

	var rental domain.Rental
	require.NoError(t, db.First(&rental).Error)
	assert.Equal(t, user.ID, rental.UserID)
	assert.Equal(t, "2026-09-01", rental.StartDate.String())
	assert.Equal(t, "confirmed", rental.Status)
	require.NotNil(t, rental.TotalCost)
	assert.Equal(t, 160.0, *rental.TotalCost)

	// The list renders the joined user and car
	w = get(t, r, "/panel/rentals/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
	assert.Contains(t, w.Body.String(), "Corolla")
}

func TestAdminPanelFlow(t *testing.T) {
	r, db := newPanel(t)
	user := domain.User{Username: "root", Password: "x", IsStaff: true}
	require.NoError(t, db.Create(&user).Error)

	w := postForm(t, r, "/panel/admins/add/", url.Values{
		"user":        {strconv.Itoa(int(user.ID))},
		"permissions": {"full_access"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)

	var admin domain.Admin
	require.NoError(t, db.First(&admin).Error)
	assert.Equal(t, user.ID, admin.UserID)
	assert.Equal(t, "full_access", admin.Permissions)

	// Deleting the user takes the admin record with it
	require.NoError(t, db.Delete(&user).Error)
	var count int64
	db.Model(&domain.Admin{}).Count(&count)
	assert.Zero(t, count)
}
