package controllers_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autogram-api/models"
)

func TestRegisterDerivesNameFromEmail(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    "carol.smith@example.com",
		"password": "sekret1",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var auth struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decodeJSON(t, w, &auth)
	assert.Equal(t, "carol.smith", auth.User.Name)
	assert.NotEmpty(t, auth.Token)

	// A profile row is materialized alongside the user.
	var profileCount int64
	env.db.Model(&models.UserProfile{}).Where("user_id = ?", auth.User.ID).Count(&profileCount)
	assert.Equal(t, int64(1), profileCount)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	body := map[string]string{"email": "carol@example.com", "password": "sekret1"}

	w := env.request(t, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodPost, "/api/v1/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    "dave@example.com",
		"password": "sekret1",
	})

	w := env.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "dave@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "dave@example.com",
		"password": "sekret1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var auth struct {
		Token string `json:"token"`
	}
	decodeJSON(t, w, &auth)

	// The issued token resolves the caller on protected routes.
	me := env.request(t, http.MethodGet, "/api/v1/auth/me", auth.Token, nil)
	assert.Equal(t, http.StatusOK, me.Code)
}

func TestAnonymousSignIn(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/v1/auth/anonymous", "", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var auth struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decodeJSON(t, w, &auth)
	assert.Equal(t, "User_4242", auth.User.Name) // injected generator
	assert.Nil(t, auth.User.Email)
	assert.Equal(t, "anonymous", auth.User.Provider)
}

func TestSyncUserIdempotent(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New().String()
	token := tokenWithEmail(t, userID, "erin@example.com")

	// First authenticated interaction creates the record.
	w := env.request(t, http.MethodPost, "/api/v1/auth/sync", token, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.User
	decodeJSON(t, w, &created)
	assert.Equal(t, userID, created.ID)
	assert.Equal(t, "erin", created.Name)

	// Repeat calls return the existing record unchanged.
	require.NoError(t, env.db.Model(&models.User{}).Where("id = ?", userID).Update("name", "renamed").Error)

	w = env.request(t, http.MethodPost, "/api/v1/auth/sync", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var existing models.User
	decodeJSON(t, w, &existing)
	assert.Equal(t, "renamed", existing.Name)

	var count int64
	env.db.Model(&models.User{}).Where("id = ?", userID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestMeUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/v1/auth/me", tokenFor(t, uuid.New().String()), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	alice := createUser(t, env.db, "alice")

	w := env.request(t, http.MethodPatch, "/api/v1/auth/me", tokenFor(t, alice.ID),
		map[string]string{"name": "alice in wonderland"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	require.NoError(t, env.db.First(&updated, "id = ?", alice.ID).Error)
	assert.Equal(t, "alice in wonderland", updated.Name)

	// Omitting the name leaves the record untouched.
	w = env.request(t, http.MethodPatch, "/api/v1/auth/me", tokenFor(t, alice.ID),
		map[string]string{})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, env.db.First(&updated, "id = ?", alice.ID).Error)
	assert.Equal(t, "alice in wonderland", updated.Name)
}

func TestUpdateProfileRequiresUserRecord(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPatch, "/api/v1/auth/me", tokenFor(t, uuid.New().String()),
		map[string]string{"name": "ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProtectedRoutesRejectBadTokens(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/v1/posts", "", map[string]string{"image_id": "img-1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.request(t, http.MethodPost, "/api/v1/posts", "not-a-jwt", map[string]string{"image_id": "img-1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
