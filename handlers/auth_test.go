package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"easy_case_app_go/models"
	"easy_case_app_go/services"

	"github.com/stretchr/testify/assert"
)

func TestSignupHandler(t *testing.T) {
	setupTestDB(t)

	validBody := `{
		"name": "Jane Silva",
		"email": "jane@example.com",
		"mobile": "0771234567",
		"dob": "1990-04-12",
		"gender": "Female",
		"barRegNo": "BAR-1001",
		"password": "supersecret"
	}`

	t.Run("Success", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/auth/signup", strings.NewReader(validBody))

		err := SignupHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp map[string]interface{}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["token"])

		user := resp["user"].(map[string]interface{})
		assert.Equal(t, "jane@example.com", user["email"])
		// Password hash must never appear in responses
		assert.NotContains(t, rec.Body.String(), "supersecret")
		assert.Nil(t, user["password"])
	})

	t.Run("Duplicate email", func(t *testing.T) {
		body := strings.Replace(validBody, "BAR-1001", "BAR-1002", 1)
		_, c, _ := setupEcho(http.MethodPost, "/auth/signup", strings.NewReader(body))

		err := SignupHandler(c)
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, httpErrorCode(t, err))
	})

	t.Run("Duplicate bar registration number", func(t *testing.T) {
		body := strings.Replace(validBody, "jane@example.com", "other@example.com", 1)
		_, c, _ := setupEcho(http.MethodPost, "/auth/signup", strings.NewReader(body))

		err := SignupHandler(c)
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, httpErrorCode(t, err))
	})

	t.Run("Invalid mobile", func(t *testing.T) {
		body := strings.Replace(validBody, "0771234567", "12345", 1)
		_, c, _ := setupEcho(http.MethodPost, "/auth/signup", strings.NewReader(body))

		err := SignupHandler(c)
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, httpErrorCode(t, err))
	})

	t.Run("Short password", func(t *testing.T) {
		body := strings.Replace(validBody, "supersecret", "short", 1)
		_, c, _ := setupEcho(http.MethodPost, "/auth/signup", strings.NewReader(body))

		err := SignupHandler(c)
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, httpErrorCode(t, err))
	})

	t.Run("Invalid gender", func(t *testing.T) {
		body := strings.Replace(validBody, "Female", "Unknown", 1)
		_, c, _ := setupEcho(http.MethodPost, "/auth/signup", strings.NewReader(body))

		err := SignupHandler(c)
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, httpErrorCode(t, err))
	})
}

func TestLoginHandler(t *testing.T) {
	database := setupTestDB(t)

	hash, err := services.HashPassword("correct-horse-1")
	assert.NoError(t, err)

	user := createTestUser(t, database, "user-login", "login@example.com")
	user.Password = hash
	assert.NoError(t, database.Save(user).Error)

	t.Run("Success", func(t *testing.T) {
		body := `{"email": "login@example.com", "password": "correct-horse-1"}`
		_, c, rec := setupEcho(http.MethodPost, "/auth/login", strings.NewReader(body))

		err := LoginHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]interface{}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["token"])

		// The issued token must round-trip through the verifier
		userID, err := services.ParseToken(testJWTSecret, resp["token"].(string))
		assert.NoError(t, err)
		assert.Equal(t, user.ID, userID)
	})

	t.Run("Email is case-insensitive", func(t *testing.T) {
		body := `{"email": "LOGIN@Example.com", "password": "correct-horse-1"}`
		_, c, rec := setupEcho(http.MethodPost, "/auth/login", strings.NewReader(body))

		err := LoginHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Wrong password", func(t *testing.T) {
		body := `{"email": "login@example.com", "password": "wrong"}`
		_, c, _ := setupEcho(http.MethodPost, "/auth/login", strings.NewReader(body))

		err := LoginHandler(c)
		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, httpErrorCode(t, err))
	})

	t.Run("Unknown email", func(t *testing.T) {
		body := `{"email": "nobody@example.com", "password": "whatever1"}`
		_, c, _ := setupEcho(http.MethodPost, "/auth/login", strings.NewReader(body))

		err := LoginHandler(c)
		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, httpErrorCode(t, err))
	})

	t.Run("Deactivated account", func(t *testing.T) {
		inactive := createTestUser(t, database, "user-inactive", "inactive@example.com")
		inactive.Password = hash
		inactive.IsActive = false
		assert.NoError(t, database.Save(inactive).Error)

		body := `{"email": "inactive@example.com", "password": "correct-horse-1"}`
		_, c, _ := setupEcho(http.MethodPost, "/auth/login", strings.NewReader(body))

		err := LoginHandler(c)
		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, httpErrorCode(t, err))
	})
}

func TestMeHandler(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, "user-me", "me@example.com")

	t.Run("Authenticated", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/auth/me", nil)
		actAs(c, user)

		err := MeHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp models.User
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, user.ID, resp.ID)
	})

	t.Run("No user in context", func(t *testing.T) {
		_, c, _ := setupEcho(http.MethodGet, "/auth/me", nil)

		err := MeHandler(c)
		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, httpErrorCode(t, err))
	})
}
