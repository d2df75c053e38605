package handlers

import (
	"net/http"
	"strings"

	"easy_case_app_go/db"
	"easy_case_app_go/middleware"
	"easy_case_app_go/models"
	"easy_case_app_go/services"

	"github.com/labstack/echo/v4"
)

type clientRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	District string `json:"district"`
}

func (r *clientRequest) normalize() {
	r.Name = services.SanitizeText(r.Name)
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.District = strings.TrimSpace(r.District)
}

// GetClientsHandler returns the caller's clients, optionally filtered
// by a name substring (?q=)
func GetClientsHandler(c echo.Context) error {
	userID := middleware.GetCurrentUserID(c)

	query := services.BuildClientQuery(db.DB, userID, c.QueryParam("q"))

	var clients []models.Client
	if err := query.Order("created_at DESC").Find(&clients).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch clients")
	}

	return c.JSON(http.StatusOK, clients)
}

// GetClientHandler returns a single client owned by the caller
func GetClientHandler(c echo.Context) error {
	var client models.Client
	if err := middleware.TenantScopedQuery(c, db.DB).
		First(&client, "id = ?", c.Param("id")).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	}

	return c.JSON(http.StatusOK, client)
}

// CreateClientHandler creates a client for the caller
func CreateClientHandler(c echo.Context) error {
	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	req.normalize()

	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if req.Type == "" {
		req.Type = models.ClientTypeIndividual
	}
	if !models.IsValidClientType(req.Type) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid client type")
	}

	client := models.Client{
		UserID:   middleware.GetCurrentUserID(c),
		Name:     req.Name,
		Type:     req.Type,
		Email:    req.Email,
		Phone:    req.Phone,
		District: req.District,
	}

	if err := db.DB.Create(&client).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create client")
	}

	return c.JSON(http.StatusCreated, client)
}

// UpdateClientHandler updates a client owned by the caller
func UpdateClientHandler(c echo.Context) error {
	var client models.Client
	if err := middleware.TenantScopedQuery(c, db.DB).
		First(&client, "id = ?", c.Param("id")).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	}

	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	req.normalize()

	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if req.Type == "" {
		req.Type = client.Type
	}
	if !models.IsValidClientType(req.Type) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid client type")
	}

	client.Name = req.Name
	client.Type = req.Type
	client.Email = req.Email
	client.Phone = req.Phone
	client.District = req.District

	if err := db.DB.Save(&client).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update client")
	}

	return c.JSON(http.StatusOK, client)
}

// DeleteClientHandler hard-deletes a client owned by the caller
func DeleteClientHandler(c echo.Context) error {
	result := middleware.TenantScopedQuery(c, db.DB).
		Where("id = ?", c.Param("id")).
		Delete(&models.Client{})

	if result.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete client")
	}
	if result.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// ImportClientsHandler bulk-creates clients from an uploaded .xlsx file
func ImportClientsHandler(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "An .xlsx file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read uploaded file")
	}
	defer file.Close()

	result, err := services.ImportClients(db.DB, middleware.GetCurrentUserID(c), file)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, result)
}
