package services

import (
	"errors"
	"fmt"
	"strings"

	"easy_case_app_go/models"

	"gorm.io/gorm"
)

var (
	// ErrClientNotOwned is returned when a case references a client that
	// does not belong to the creating tenant
	ErrClientNotOwned = errors.New("client does not belong to this user")
	// ErrNumberConflict is returned when the case number collided on both
	// the initial attempt and the single retry
	ErrNumberConflict = errors.New("case number conflict after retry")
)

// NextCaseNumber returns the next sequential case number for a tenant:
// max(existing numbers) + 1, or 1 when the tenant has no cases yet.
func NextCaseNumber(db *gorm.DB, userID string) (int, error) {
	var last models.Case
	err := db.Where("user_id = ?", userID).
		Order("number DESC").
		Select("number").
		First(&last).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 1, nil
		}
		return 0, fmt.Errorf("failed to query max case number: %w", err)
	}

	return last.Number + 1, nil
}

// CreateCase validates the client reference, assigns the next per-tenant
// sequential number and persists the case.
//
// Numbering is optimistic: the proposed number is max+1 and the
// (user_id, number) unique index is the arbiter. If two concurrent
// creations propose the same number, the loser re-reads the max exactly
// once and retries; a second collision surfaces ErrNumberConflict
// instead of retrying indefinitely.
func CreateCase(db *gorm.DB, kase *models.Case) error {
	// Ensure the referenced client belongs to the same tenant
	var count int64
	if err := db.Model(&models.Client{}).
		Where("id = ? AND user_id = ?", kase.ClientID, kase.UserID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to verify client ownership: %w", err)
	}
	if count == 0 {
		return ErrClientNotOwned
	}

	if kase.Status == "" {
		kase.Status = models.CaseStatusOpen
	}

	number, err := NextCaseNumber(db, kase.UserID)
	if err != nil {
		return err
	}
	kase.Number = number

	err = db.Create(kase).Error
	if err == nil {
		return nil
	}
	if !isUniqueViolation(err) {
		return fmt.Errorf("failed to create case: %w", err)
	}

	// Lost a race for this number: re-read the max once and retry
	number, err = NextCaseNumber(db, kase.UserID)
	if err != nil {
		return err
	}
	kase.ID = ""
	kase.Number = number

	err = db.Create(kase).Error
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return ErrNumberConflict
	}
	return fmt.Errorf("failed to create case: %w", err)
}

// isUniqueViolation reports whether err is a unique index violation
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
