package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func rateLimitRequest(handler echo.HandlerFunc, ip string) error {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.Header.Set("X-Real-Ip", ip)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return handler(c)
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{
		Requests: 3,
		Window:   time.Minute,
	})

	ok := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
	handler := limiter.Middleware()(ok)

	t.Run("Allows up to the limit", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			assert.NoError(t, rateLimitRequest(handler, "10.0.0.1"))
		}
	})

	t.Run("Rejects past the limit", func(t *testing.T) {
		err := rateLimitRequest(handler, "10.0.0.1")
		assert.Error(t, err)
		assert.Equal(t, http.StatusTooManyRequests, err.(*echo.HTTPError).Code)
	})

	t.Run("Other clients are unaffected", func(t *testing.T) {
		assert.NoError(t, rateLimitRequest(handler, "10.0.0.2"))
	})

	t.Run("Window reset clears the budget", func(t *testing.T) {
		short := NewRateLimiter(RateLimitConfig{
			Requests: 1,
			Window:   10 * time.Millisecond,
		})
		shortHandler := short.Middleware()(ok)

		assert.NoError(t, rateLimitRequest(shortHandler, "10.0.0.3"))
		assert.Error(t, rateLimitRequest(shortHandler, "10.0.0.3"))

		time.Sleep(15 * time.Millisecond)
		assert.NoError(t, rateLimitRequest(shortHandler, "10.0.0.3"))
	})
}
