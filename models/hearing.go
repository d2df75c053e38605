package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Hearing outcome constants
const (
	HearingOutcomeAdjourned = "Adjourned"
	HearingOutcomeContinued = "Continued"
	HearingOutcomeJudgment  = "Judgment"
	HearingOutcomeSettled   = "Settled"
	HearingOutcomeOther     = "Other"
)

// MaxHearingNotesLength bounds the free-text notes field
const MaxHearingNotesLength = 2000

// Hearing represents a court hearing belonging to a case
type Hearing struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Owning tenant (denormalized from the case for tenant-scoped queries)
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`

	CaseID string `gorm:"type:uuid;not null;index" json:"case_id"`
	Case   Case   `gorm:"foreignKey:CaseID" json:"-"`

	Date    time.Time `gorm:"not null" json:"date"`
	Notes   string    `gorm:"type:text" json:"notes,omitempty"`
	Outcome string    `gorm:"not null" json:"outcome"`
	// NextDate, when set, must not precede Date
	NextDate *time.Time `json:"next_date,omitempty"`
}

// BeforeCreate hook to generate UUID
func (h *Hearing) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Hearing model
func (Hearing) TableName() string {
	return "hearings"
}

// IsValidHearingOutcome checks if the outcome is valid
func IsValidHearingOutcome(outcome string) bool {
	switch outcome {
	case HearingOutcomeAdjourned, HearingOutcomeContinued, HearingOutcomeJudgment,
		HearingOutcomeSettled, HearingOutcomeOther:
		return true
	}
	return false
}
