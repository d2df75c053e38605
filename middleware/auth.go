package middleware

import (
	"net/http"
	"strings"

	"easy_case_app_go/config"
	"easy_case_app_go/db"
	"easy_case_app_go/models"
	"easy_case_app_go/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const (
	// ContextKeyUser is the context key for the authenticated user
	ContextKeyUser = "user"
	// ContextKeyUserID is the context key for the authenticated user's ID
	ContextKeyUserID = "user_id"
)

// RequireAuth is middleware that requires a valid bearer token.
// On success the tenant (user) is bound to the request context; on any
// failure the request is rejected with 401 before handler logic runs.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing or invalid Authorization header")
			}

			cfg, ok := c.Get("config").(*config.Config)
			if !ok {
				return echo.NewHTTPError(http.StatusInternalServerError, "Server misconfigured")
			}

			userID, err := services.ParseToken(cfg.JWTSecret, token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			var user models.User
			if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			if !user.IsActive {
				return echo.NewHTTPError(http.StatusUnauthorized, "Account is deactivated")
			}

			c.Set(ContextKeyUser, &user)
			c.Set(ContextKeyUserID, user.ID)

			return next(c)
		}
	}
}

// bearerToken extracts the token from the Authorization header
func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

// GetCurrentUser retrieves the current user from context
func GetCurrentUser(c echo.Context) *models.User {
	user, ok := c.Get(ContextKeyUser).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// GetCurrentUserID retrieves the current user's ID from context
func GetCurrentUserID(c echo.Context) string {
	id, ok := c.Get(ContextKeyUserID).(string)
	if !ok {
		return ""
	}
	return id
}

// TenantScopedQuery returns a GORM query scoped to the current user.
// Records of other tenants are invisible: lookups against them behave
// exactly like lookups for absent records.
func TenantScopedQuery(c echo.Context, db *gorm.DB) *gorm.DB {
	userID := GetCurrentUserID(c)
	if userID == "" {
		// Return query that matches nothing
		return db.Where("1 = 0")
	}

	return db.Where("user_id = ?", userID)
}
