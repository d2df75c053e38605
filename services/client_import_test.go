package services

import (
	"bytes"
	"strings"
	"testing"

	"easy_case_app_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupImportTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.User{}, &models.Client{}))
	return db
}

func buildWorkbook(t *testing.T, rows [][]string) *bytes.Buffer {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			assert.NoError(t, err)
			assert.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}

	buf, err := f.WriteToBuffer()
	assert.NoError(t, err)
	return buf
}

func TestImportClients(t *testing.T) {
	db := setupImportTestDB(t)
	const userID = "user-import"

	t.Run("Imports valid rows", func(t *testing.T) {
		workbook := buildWorkbook(t, [][]string{
			{"name", "type", "email", "phone", "district"},
			{"Jane Perera", "individual", "Jane@X.com", "0771111111", "Colombo"},
			{"Acme Ltd", "company", "", "", "Kandy"},
		})

		result, err := ImportClients(db, userID, workbook)
		assert.NoError(t, err)
		assert.Equal(t, 2, result.TotalProcessed)
		assert.Equal(t, 2, result.SuccessCount)
		assert.Equal(t, 0, result.FailedCount)

		var clients []models.Client
		assert.NoError(t, db.Where("user_id = ?", userID).Order("name ASC").Find(&clients).Error)
		assert.Len(t, clients, 2)
		// Emails are normalized to lowercase
		assert.Equal(t, "jane@x.com", clients[1].Email)
	})

	t.Run("Reports row errors without aborting the import", func(t *testing.T) {
		workbook := buildWorkbook(t, [][]string{
			{"name", "type", "email", "phone", "district"},
			{"", "individual", "", "", ""},       // missing name
			{"Weird Co", "alien", "", "", ""},    // bad type
			{"Fine Client", "", "", "", "Galle"}, // blank type defaults
		})

		result, err := ImportClients(db, "user-import-2", workbook)
		assert.NoError(t, err)
		assert.Equal(t, 3, result.TotalProcessed)
		assert.Equal(t, 1, result.SuccessCount)
		assert.Equal(t, 2, result.FailedCount)
		assert.Len(t, result.Errors, 2)
		assert.Contains(t, result.Errors[0], "row 2")

		var client models.Client
		assert.NoError(t, db.Where("user_id = ?", "user-import-2").First(&client).Error)
		assert.Equal(t, models.ClientTypeIndividual, client.Type)
	})

	t.Run("Rejects a bad header", func(t *testing.T) {
		workbook := buildWorkbook(t, [][]string{
			{"fullname", "kind", "email", "phone", "district"},
		})

		_, err := ImportClients(db, userID, workbook)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "header")
	})

	t.Run("Rejects a non-workbook payload", func(t *testing.T) {
		_, err := ImportClients(db, userID, strings.NewReader("not an xlsx"))
		assert.Error(t, err)
	})
}
