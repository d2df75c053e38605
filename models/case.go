package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Case status constants
const (
	CaseStatusOpen   = "open"
	CaseStatusClosed = "closed"
)

// Court type constants (Sri Lankan court hierarchy)
const (
	CourtTypeDistrict         = "District Court"
	CourtTypeHigh             = "High Court"
	CourtTypeProvincialHigh   = "Provincial High Court"
	CourtTypeMagistrates      = "Magistrate's Court"
	CourtTypeCourtOfAppeal    = "Court of Appeal"
	CourtTypeSupreme          = "Supreme Court"
	CourtTypeLabourTribunal   = "Labour Tribunal"
	CourtTypeQuaziCourt       = "Quazi Court"
	CourtTypePrimaryCourt     = "Primary Court"
	CourtTypeCommercialHigh   = "Commercial High Court"
	CourtTypeSmallClaimsCourt = "Small Claims Court"
	CourtTypeAdministrative   = "Administrative Appeals Tribunal"
)

// Case represents a legal case. The Number is a per-tenant sequential
// integer, distinct from the record ID: the pair (user_id, number) is
// unique and numbers are assigned densely starting at 1.
type Case struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Owning tenant
	UserID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_user_case_number" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`

	// Client relationship (must belong to the same tenant)
	ClientID string `gorm:"type:uuid;not null;index" json:"client_id"`
	Client   Client `gorm:"foreignKey:ClientID" json:"-"`

	Number     int    `gorm:"not null;uniqueIndex:idx_user_case_number" json:"number"`
	Title      string `gorm:"not null" json:"title"`
	Type       string `json:"type,omitempty"`
	CourtType  string `json:"court_type,omitempty"`
	CourtPlace string `json:"court_place,omitempty"`
	Status     string `gorm:"not null;default:open" json:"status"`
}

// BeforeCreate hook to generate UUID
func (c *Case) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Case model
func (Case) TableName() string {
	return "cases"
}

// IsOpen checks if the case is open
func (c *Case) IsOpen() bool {
	return c.Status == CaseStatusOpen
}

// IsClosed checks if the case is closed
func (c *Case) IsClosed() bool {
	return c.Status == CaseStatusClosed
}

// IsValidCaseStatus checks if the status is valid
func IsValidCaseStatus(status string) bool {
	return status == CaseStatusOpen || status == CaseStatusClosed
}
