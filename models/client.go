package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client type constants
const (
	ClientTypeIndividual   = "individual"
	ClientTypeCompany      = "company"
	ClientTypeGovernment   = "government"
	ClientTypeOrganization = "organization"
)

// Client represents a party a lawyer represents
type Client struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Owning tenant
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`

	Type     string `gorm:"not null;default:individual" json:"type"`
	Name     string `gorm:"not null" json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	District string `json:"district,omitempty"`
}

// BeforeCreate hook to generate UUID
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Client model
func (Client) TableName() string {
	return "clients"
}

// IsValidClientType checks if the client type is valid
func IsValidClientType(clientType string) bool {
	switch clientType {
	case ClientTypeIndividual, ClientTypeCompany, ClientTypeGovernment, ClientTypeOrganization:
		return true
	}
	return false
}
