package handlers

import (
	"errors"
	"net/http"
	"strings"

	"easy_case_app_go/db"
	"easy_case_app_go/middleware"
	"easy_case_app_go/models"
	"easy_case_app_go/services"

	"github.com/labstack/echo/v4"
)

type caseRequest struct {
	Title      string `json:"title"`
	ClientID   string `json:"clientId"`
	Type       string `json:"type"`
	CourtType  string `json:"courtType"`
	CourtPlace string `json:"courtPlace"`
}

func (r *caseRequest) normalize() {
	r.Title = services.SanitizeText(r.Title)
	r.ClientID = strings.TrimSpace(r.ClientID)
	r.Type = services.SanitizeText(r.Type)
	r.CourtType = strings.TrimSpace(r.CourtType)
	r.CourtPlace = strings.TrimSpace(r.CourtPlace)
}

// caseResponse joins the owning client's name into the case payload
type caseResponse struct {
	models.Case
	ClientName string `json:"client_name,omitempty"`
}

func toCaseResponse(kase models.Case) caseResponse {
	return caseResponse{Case: kase, ClientName: kase.Client.Name}
}

// GetCasesHandler returns the caller's cases with optional search and
// court filters (?q=, ?courtType=, ?courtPlace=)
func GetCasesHandler(c echo.Context) error {
	userID := middleware.GetCurrentUserID(c)

	query := services.BuildCaseQuery(
		db.DB,
		userID,
		c.QueryParam("q"),
		c.QueryParam("courtType"),
		c.QueryParam("courtPlace"),
	)

	var cases []models.Case
	if err := query.
		Preload("Client").
		Order("created_at DESC").
		Find(&cases).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch cases")
	}

	items := make([]caseResponse, 0, len(cases))
	for _, kase := range cases {
		items = append(items, toCaseResponse(kase))
	}

	return c.JSON(http.StatusOK, items)
}

// GetNextCaseNumberHandler returns the number the caller's next case
// would receive. Informative only: creation recomputes it.
func GetNextCaseNumberHandler(c echo.Context) error {
	next, err := services.NextCaseNumber(db.DB, middleware.GetCurrentUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to compute next case number")
	}

	return c.JSON(http.StatusOK, echo.Map{"next": next})
}

// GetCaseHandler returns a single case owned by the caller
func GetCaseHandler(c echo.Context) error {
	var kase models.Case
	if err := middleware.TenantScopedQuery(c, db.DB).
		Preload("Client").
		First(&kase, "id = ?", c.Param("id")).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	}

	return c.JSON(http.StatusOK, toCaseResponse(kase))
}

// CreateCaseHandler creates a case with the next sequential number
func CreateCaseHandler(c echo.Context) error {
	var req caseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	req.normalize()

	if req.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if req.ClientID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "clientId is required")
	}

	kase := models.Case{
		UserID:     middleware.GetCurrentUserID(c),
		ClientID:   req.ClientID,
		Title:      req.Title,
		Type:       req.Type,
		CourtType:  req.CourtType,
		CourtPlace: req.CourtPlace,
		Status:     models.CaseStatusOpen,
	}

	if err := services.CreateCase(db.DB, &kase); err != nil {
		if errors.Is(err, services.ErrClientNotOwned) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid clientId")
		}
		// ErrNumberConflict and storage failures both surface as 500
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create case")
	}

	return c.JSON(http.StatusCreated, kase)
}

// UpdateCaseHandler updates a case owned by the caller. A changed
// client reference is re-validated against the tenant; number and
// status are not updatable here (close has its own endpoint).
func UpdateCaseHandler(c echo.Context) error {
	var kase models.Case
	if err := middleware.TenantScopedQuery(c, db.DB).
		First(&kase, "id = ?", c.Param("id")).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	}

	var req caseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	req.normalize()

	if req.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}

	if req.ClientID != "" && req.ClientID != kase.ClientID {
		var count int64
		if err := db.DB.Model(&models.Client{}).
			Where("id = ? AND user_id = ?", req.ClientID, kase.UserID).
			Count(&count).Error; err != nil || count == 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid clientId")
		}
		kase.ClientID = req.ClientID
	}

	kase.Title = req.Title
	kase.Type = req.Type
	kase.CourtType = req.CourtType
	kase.CourtPlace = req.CourtPlace

	if err := db.DB.Save(&kase).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update case")
	}

	return c.JSON(http.StatusOK, kase)
}

// CloseCaseHandler transitions a case to closed. The transition is
// one-way; closing an already-closed case is a no-op.
func CloseCaseHandler(c echo.Context) error {
	var kase models.Case
	if err := middleware.TenantScopedQuery(c, db.DB).
		First(&kase, "id = ?", c.Param("id")).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	}

	if !kase.IsClosed() {
		kase.Status = models.CaseStatusClosed
		if err := db.DB.Save(&kase).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to close case")
		}
	}

	return c.JSON(http.StatusOK, kase)
}

// DeleteCaseHandler hard-deletes a case owned by the caller
func DeleteCaseHandler(c echo.Context) error {
	result := middleware.TenantScopedQuery(c, db.DB).
		Where("id = ?", c.Param("id")).
		Delete(&models.Case{})

	if result.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete case")
	}
	if result.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
