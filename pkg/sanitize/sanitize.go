package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Field length caps for the contact form.
const (
	MaxNameLength    = 100
	MaxEmailLength   = 254
	MaxSubjectLength = 200
	MaxMessageLength = 2000
)

// strict strips every tag; nothing is whitelisted. Stray angle brackets
// come back entity-encoded, so the output never contains tag-like sequences.
var strict = bluemonday.StrictPolicy()

// Clean trims the value, strips all markup, and truncates the result to
// maxLength runes. The second return value is false when the input is
// empty after stripping, so callers can tell "absent" from "empty string".
func Clean(value string, maxLength int) (string, bool) {
	cleaned := strings.TrimSpace(strict.Sanitize(strings.TrimSpace(value)))
	if cleaned == "" {
		return "", false
	}
	if runes := []rune(cleaned); len(runes) > maxLength {
		cleaned = strings.TrimSpace(string(runes[:maxLength]))
		if cleaned == "" {
			return "", false
		}
	}
	return cleaned, true
}
