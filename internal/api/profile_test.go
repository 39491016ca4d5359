package api

import (
	"net/http"
	"testing"

	"rental_system/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileAlwaysResolvesToCaller(t *testing.T) {
	r, db, _ := newTestEnv(t)
	createUser(t, db, "alice", false)
	createUser(t, db, "bob", false)

	aliceToken := login(t, r, "alice")
	bobToken := login(t, r, "bob")

	w := doJSON(t, r, http.MethodGet, "/users/profile/", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", decode(t, w)["username"])

	// Same path, different token, different record
	w = doJSON(t, r, http.MethodGet, "/users/profile/", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bob", decode(t, w)["username"])
}

func TestProfilePartialUpdate(t *testing.T) {
	r, db, _ := newTestEnv(t)
	createUser(t, db, "alice", false)
	token := login(t, r, "alice")

	w := doJSON(t, r, http.MethodPatch, "/users/profile/", token, gin.H{
		"phone_number": "555-0101",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "555-0101", body["phone_number"])
	assert.Equal(t, "alice", body["username"], "unprovided fields stay untouched")
}

func TestProfileFullUpdateRequiresUsername(t *testing.T) {
	r, db, _ := newTestEnv(t)
	createUser(t, db, "alice", false)
	token := login(t, r, "alice")

	w := doJSON(t, r, http.MethodPut, "/users/profile/", token, gin.H{
		"email": "new@example.com",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	fields, ok := decode(t, w)["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, fields, "username")
}

func TestProfileDeleteCascadesAndRevokesToken(t *testing.T) {
	r, db, _ := newTestEnv(t)
	alice := createUser(t, db, "alice", false)
	car := createCar(t, db, "Toyota", "Corolla", 2020, "AAA-111")
	createRental(t, db, alice, car, domain.StatusPending)
	require.NoError(t, db.Create(&domain.Admin{UserID: alice.ID, Permissions: "all"}).Error)

	token := login(t, r, "alice")
	w := doJSON(t, r, http.MethodDelete, "/users/profile/", token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	var users, rentals, admins int64
	require.NoError(t, db.Model(&domain.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&domain.Rental{}).Count(&rentals).Error)
	require.NoError(t, db.Model(&domain.Admin{}).Count(&admins).Error)
	assert.Zero(t, users)
	assert.Zero(t, rentals, "deleting a user must cascade to their rentals")
	assert.Zero(t, admins, "deleting a user must cascade to their admin record")

	// The token no longer authenticates
	w = doJSON(t, r, http.MethodGet, "/users/profile/", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
