package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "Jane", SanitizeText("<script>alert(1)</script>Jane"))
	assert.Equal(t, "bold claim", SanitizeText("<b>bold</b> claim"))
	assert.Equal(t, "plain text", SanitizeText("  plain text  "))
	assert.Equal(t, "", SanitizeText("<img src=x onerror=alert(1)>"))
}
