package services

import (
	"fmt"
	"io"
	"strings"

	"easy_case_app_go/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ImportResult contains the summary of a bulk client import
type ImportResult struct {
	TotalProcessed int      `json:"total_processed"`
	SuccessCount   int      `json:"success_count"`
	FailedCount    int      `json:"failed_count"`
	Errors         []string `json:"errors,omitempty"`
}

// Expected header columns for the client import sheet
var clientImportHeaders = []string{"name", "type", "email", "phone", "district"}

// ImportClients reads an .xlsx workbook and creates one client per data
// row for the given tenant. The first sheet is used; the first row must
// be the header (name, type, email, phone, district). Invalid rows are
// skipped and reported in the result, valid rows are still committed.
func ImportClients(db *gorm.DB, userID string, r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	if err := validateImportHeader(rows[0]); err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header

		client, err := clientFromRow(userID, row)
		if err != nil {
			result.FailedCount++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			result.TotalProcessed++
			continue
		}

		if err := db.Create(client).Error; err != nil {
			result.FailedCount++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: failed to save client", rowNum))
			result.TotalProcessed++
			continue
		}

		result.SuccessCount++
		result.TotalProcessed++
	}

	return result, nil
}

func validateImportHeader(header []string) error {
	if len(header) < len(clientImportHeaders) {
		return fmt.Errorf("invalid header: expected columns %s", strings.Join(clientImportHeaders, ", "))
	}
	for i, expected := range clientImportHeaders {
		if !strings.EqualFold(strings.TrimSpace(header[i]), expected) {
			return fmt.Errorf("invalid header: column %d must be %q", i+1, expected)
		}
	}
	return nil
}

func clientFromRow(userID string, row []string) (*models.Client, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	name := SanitizeText(cell(0))
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	clientType := strings.ToLower(cell(1))
	if clientType == "" {
		clientType = models.ClientTypeIndividual
	}
	if !models.IsValidClientType(clientType) {
		return nil, fmt.Errorf("invalid client type %q", cell(1))
	}

	return &models.Client{
		UserID:   userID,
		Name:     name,
		Type:     clientType,
		Email:    strings.ToLower(cell(2)),
		Phone:    cell(3),
		District: cell(4),
	}, nil
}
