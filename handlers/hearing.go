package handlers

import (
	"net/http"
	"strings"
	"time"

	"easy_case_app_go/db"
	"easy_case_app_go/middleware"
	"easy_case_app_go/models"
	"easy_case_app_go/services"

	"github.com/labstack/echo/v4"
)

type hearingRequest struct {
	CaseID   string `json:"caseId"`
	Date     string `json:"date"`
	Notes    string `json:"notes"`
	Outcome  string `json:"outcome"`
	NextDate string `json:"nextDate"`
}

// GetHearingsHandler returns the hearings of a caller-owned case
// (?caseId= required)
func GetHearingsHandler(c echo.Context) error {
	caseID := strings.TrimSpace(c.QueryParam("caseId"))
	if caseID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "caseId is required")
	}

	// The case itself must be visible to the caller
	var kase models.Case
	if err := middleware.TenantScopedQuery(c, db.DB).
		First(&kase, "id = ?", caseID).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	}

	var hearings []models.Hearing
	if err := middleware.TenantScopedQuery(c, db.DB).
		Where("case_id = ?", caseID).
		Order("date ASC").
		Find(&hearings).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch hearings")
	}

	return c.JSON(http.StatusOK, hearings)
}

// CreateHearingHandler records a hearing against a caller-owned case.
// Closed cases reject new hearings.
func CreateHearingHandler(c echo.Context) error {
	var req hearingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	req.CaseID = strings.TrimSpace(req.CaseID)
	if req.CaseID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "caseId is required")
	}

	var kase models.Case
	if err := middleware.TenantScopedQuery(c, db.DB).
		First(&kase, "id = ?", req.CaseID).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	}

	if kase.IsClosed() {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot add a hearing to a closed case")
	}

	if req.Date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date is required")
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be in YYYY-MM-DD format")
	}

	if !models.IsValidHearingOutcome(req.Outcome) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid outcome")
	}

	notes := services.SanitizeText(req.Notes)
	if len(notes) > models.MaxHearingNotesLength {
		return echo.NewHTTPError(http.StatusBadRequest, "notes is too long")
	}

	var nextDate *time.Time
	if req.NextDate != "" {
		parsed, err := time.Parse("2006-01-02", req.NextDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "nextDate must be in YYYY-MM-DD format")
		}
		if parsed.Before(date) {
			return echo.NewHTTPError(http.StatusBadRequest, "Next hearing date cannot be earlier than the hearing date")
		}
		nextDate = &parsed
	}

	hearing := models.Hearing{
		UserID:   middleware.GetCurrentUserID(c),
		CaseID:   kase.ID,
		Date:     date,
		Notes:    notes,
		Outcome:  req.Outcome,
		NextDate: nextDate,
	}

	if err := db.DB.Create(&hearing).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create hearing")
	}

	return c.JSON(http.StatusCreated, hearing)
}
