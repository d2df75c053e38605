package services

import (
	"fmt"
	"unicode"
)

// Password requirements
const (
	MinPasswordLength = 8
)

// ValidatePassword checks if the password meets the minimum requirements.
// Signup requires at least 8 characters; numbers and symbols are
// recommended to users but not enforced.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLength)
	}
	return nil
}

// IsWeakPassword reports whether a password meets only the bare minimum:
// long enough but lacking both a number and a symbol
func IsWeakPassword(password string) bool {
	if len(password) < MinPasswordLength {
		return true
	}

	var hasNumber, hasSpecial bool
	for _, char := range password {
		switch {
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	return !hasNumber && !hasSpecial
}
