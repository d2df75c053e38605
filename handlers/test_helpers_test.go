package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"easy_case_app_go/config"
	"easy_case_app_go/db"
	"easy_case_app_go/middleware"
	"easy_case_app_go/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret-0123456789abcdef0123456789abcdef"

func setupTestDB(t *testing.T) *gorm.DB {
	// Use unique shared memory name to isolate tests while allowing concurrent connections
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Case{},
		&models.Hearing{},
	)
	assert.NoError(t, err)

	// Set global DB
	db.DB = testDB

	return testDB
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:   "test",
		JWTSecret:     testJWTSecret,
		EmailTestMode: true,
		AppURL:        "http://localhost:4000",
	}
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set("config", testConfig())

	return e, c, rec
}

// actAs binds a user to the request context the way RequireAuth would
func actAs(c echo.Context, user *models.User) {
	c.Set(middleware.ContextKeyUser, user)
	c.Set(middleware.ContextKeyUserID, user.ID)
}

func createTestUser(t *testing.T, database *gorm.DB, id, email string) *models.User {
	user := &models.User{
		ID:       id,
		Name:     "Test Lawyer",
		Email:    email,
		Mobile:   "0771234567",
		DOB:      time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Gender:   models.GenderMale,
		BarRegNo: "BAR-" + id,
		Password: "x",
		IsActive: true,
	}
	assert.NoError(t, database.Create(user).Error)
	return user
}

func createTestClient(t *testing.T, database *gorm.DB, id, userID, name string) *models.Client {
	client := &models.Client{
		ID:     id,
		UserID: userID,
		Name:   name,
		Type:   models.ClientTypeIndividual,
	}
	assert.NoError(t, database.Create(client).Error)
	return client
}

// newMultipartRequest builds a request carrying a multipart form body
func newMultipartRequest(method, path string, body io.Reader, contentType string) *http.Request {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, contentType)
	return req
}

// newRecorderContext creates a fresh recorder and context for a request
func newRecorderContext(e *echo.Echo, req *http.Request) (*httptest.ResponseRecorder, echo.Context) {
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

// httpErrorCode extracts the status code from a handler error
func httpErrorCode(t *testing.T, err error) int {
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok, "expected *echo.HTTPError, got %T", err)
	if !ok {
		return http.StatusInternalServerError
	}
	return httpErr.Code
}
