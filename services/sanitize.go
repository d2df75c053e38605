package services

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy strips all HTML from free-text inputs before persistence
var strictPolicy = bluemonday.StrictPolicy()

// SanitizeText removes any HTML markup from user-supplied free text
// (case titles, hearing notes) and trims surrounding whitespace
func SanitizeText(input string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(input))
}
