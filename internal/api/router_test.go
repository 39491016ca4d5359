package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"rental_system/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testPassword is the plaintext used for every fixture account
const testPassword = "password123"

// itoa renders a record id for request paths
func itoa(id uint) string {
	return strconv.Itoa(int(id))
}

// newTestEnv stands up the whole API surface over an in-memory database and
// a miniredis instance. One sqlite connection keeps the DB alive and shared.
func newTestEnv(t *testing.T) (*gin.Engine, *gorm.DB, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=1"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Car{}, &domain.Admin{}, &domain.Rental{}))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRouter(db, rdb), db, mr
}

// createUser stores a fixture account with a properly hashed password
func createUser(t *testing.T, db *gorm.DB, username string, staff bool) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &domain.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hash),
		IsStaff:  staff,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// createCar stores a fixture catalog car
func createCar(t *testing.T, db *gorm.DB, make_, model string, year int, plate string) *domain.Car {
	t.Helper()
	car := &domain.Car{
		Make:               make_,
		Model:              model,
		Year:               year,
		Color:              "blue",
		LicensePlate:       plate,
		DailyRate:          49.90,
		AvailabilityStatus: "available",
	}
	require.NoError(t, db.Create(car).Error)
	return car
}

// createRental stores a fixture rental
func createRental(t *testing.T, db *gorm.DB, user *domain.User, car *domain.Car, status string) *domain.Rental {
	t.Helper()
	start, err := domain.ParseDate("2026-09-01")
	require.NoError(t, err)
	end, err := domain.ParseDate("2026-09-05")
	require.NoError(t, err)
	rental := &domain.Rental{
		UserID:    user.ID,
		CarID:     car.ID,
		StartDate: start,
		EndDate:   end,
		Status:    status,
	}
	require.NoError(t, db.Create(rental).Error)
	return rental
}

// doJSON performs a request with an optional JSON body and bearer token
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decode unmarshals a recorded JSON response body
func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// login performs the login call and returns the issued token
func login(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/users/login/", "", gin.H{
		"username": username,
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	token, ok := body["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}
