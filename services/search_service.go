package services

import (
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// BuildCaseQuery builds a tenant-scoped case query from a free-text
// search token and optional court filters.
//
// The token matches case titles as a case-insensitive substring. A
// leading '#' is stripped; when the cleaned token parses as a number it
// additionally matches cases whose number's text representation
// contains the digits, so "12" matches case number 112.
func BuildCaseQuery(db *gorm.DB, userID, rawQuery, courtType, courtPlace string) *gorm.DB {
	query := db.Where("user_id = ?", userID)

	q := strings.TrimSpace(rawQuery)
	if q != "" {
		cleaned := strings.TrimSpace(strings.TrimPrefix(q, "#"))

		titleMatch := db.Where("title LIKE ?", "%"+cleaned+"%")

		if _, err := strconv.ParseFloat(cleaned, 64); err == nil {
			titleMatch = titleMatch.Or("CAST(number AS TEXT) LIKE ?", "%"+cleaned+"%")
		}

		query = query.Where(titleMatch)
	}

	if courtType != "" {
		query = query.Where("court_type = ?", courtType)
	}
	if courtPlace != "" {
		query = query.Where("court_place = ?", courtPlace)
	}

	return query
}

// BuildClientQuery builds a tenant-scoped client query with an optional
// name substring filter
func BuildClientQuery(db *gorm.DB, userID, rawQuery string) *gorm.DB {
	query := db.Where("user_id = ?", userID)

	if q := strings.TrimSpace(rawQuery); q != "" {
		query = query.Where("name LIKE ?", "%"+q+"%")
	}

	return query
}
