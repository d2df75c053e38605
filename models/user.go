package models

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gender constants
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// MobilePattern matches Sri Lankan mobile numbers: 07XXXXXXXX or +947XXXXXXXX
var MobilePattern = regexp.MustCompile(`^(?:\+94|0)7(?:0|1|2|5|6|7|8)\d{7}$`)

// User represents a lawyer account. Every client, case and hearing in
// the system is owned by exactly one user.
type User struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name     string    `gorm:"not null" json:"name"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Mobile   string    `gorm:"not null" json:"mobile"`
	DOB      time.Time `gorm:"not null" json:"dob"`
	Gender   string    `gorm:"not null" json:"gender"`
	BarRegNo string    `gorm:"uniqueIndex;not null" json:"bar_reg_no"`
	Password string    `gorm:"not null" json:"-"`
	IsActive bool      `gorm:"not null;default:true" json:"is_active"`
}

// BeforeCreate hook to generate UUID
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// IsValidGender checks if the gender is valid
func IsValidGender(gender string) bool {
	return gender == GenderMale || gender == GenderFemale
}

// IsValidMobile checks the Sri Lankan mobile number format
func IsValidMobile(mobile string) bool {
	return MobilePattern.MatchString(mobile)
}
