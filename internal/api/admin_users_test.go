package api

import (
	"net/http"
	"testing"

	"rental_system/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminUsersRequireStaff(t *testing.T) {
	r, db, _ := newTestEnv(t)
	createUser(t, db, "alice", false)

	// No token at all
	w := doJSON(t, r, http.MethodGet, "/admin/users/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Authenticated but not staff
	w = doJSON(t, r, http.MethodGet, "/admin/users/", login(t, r, "alice"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Permission denied", decode(t, w)["error"])
}

func TestAdminUserCRUD(t *testing.T) {
	r, db, _ := newTestEnv(t)
	createUser(t, db, "staff", true)
	token := login(t, r, "staff")

	// Create goes through the registration field mapping but returns the
	// full read representation, id included
	w := doJSON(t, r, http.MethodPost, "/admin/users/", token, gin.H{
		"username": "carol",
		"password": "secret123",
		"email":    "carol@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode(t, w)
	assert.NotNil(t, created["id"])
	assert.Equal(t, "carol", created["username"])
	assert.NotContains(t, created, "password")

	var carol domain.User
	require.NoError(t, db.Where("username = ?", "carol").First(&carol).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(carol.Password), []byte("secret123")))

	// List contains both accounts
	w = doJSON(t, r, http.MethodGet, "/admin/users/", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	users, ok := decode(t, w)["users"].([]any)
	require.True(t, ok)
	assert.Len(t, users, 2)

	// Retrieve an arbitrary account by id
	w = doJSON(t, r, http.MethodGet, "/admin/users/"+itoa(carol.ID)+"/", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "carol", decode(t, w)["username"])

	// Partial update touches only the sent fields
	w = doJSON(t, r, http.MethodPatch, "/admin/users/"+itoa(carol.ID)+"/", token, gin.H{"first_name": "Carol"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Carol", body["first_name"])
	assert.Equal(t, "carol", body["username"])

	// Full update without a username is rejected per field
	w = doJSON(t, r, http.MethodPut, "/admin/users/"+itoa(carol.ID)+"/", token, gin.H{"email": "new@example.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	fields, ok := decode(t, w)["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, fields, "username")
}

func TestAdminUserDeleteCascadesAndRevokes(t *testing.T) {
	r, db, mr := newTestEnv(t)
	staff := createUser(t, db, "staff", true)
	victim := createUser(t, db, "victim", false)
	car := createCar(t, db, "Toyota", "Corolla", 2020, "AAA-111")
	createRental(t, db, victim, car, domain.StatusPending)

	victimToken := login(t, r, "victim")
	staffToken := login(t, r, "staff")

	w := doJSON(t, r, http.MethodDelete, "/admin/users/"+itoa(victim.ID)+"/", staffToken, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	var users, rentals int64
	db.Model(&domain.User{}).Count(&users)
	db.Model(&domain.Rental{}).Count(&rentals)
	assert.EqualValues(t, 1, users)
	assert.EqualValues(t, 0, rentals, "rentals go with the account")

	// The deleted account's token no longer resolves
	w = doJSON(t, r, http.MethodGet, "/users/profile/", victimToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, mr.Exists("auth:token:"+victimToken))

	// Unknown ids are a plain 404
	w = doJSON(t, r, http.MethodGet, "/admin/users/"+itoa(staff.ID+100)+"/", staffToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
