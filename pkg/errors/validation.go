package errors

import (
	"strings"
	"unicode"
)

const (
	maxIDLength    = 256
	maxLabelLength = 512
)

// ValidateNodeID checks that an identifier is usable as a node or edge id.
//
// The rules are deliberately small:
//   - No empty ids
//   - No control characters or null bytes
//   - No leading or trailing whitespace
//   - Maximum length of 256 bytes
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node id cannot be empty")
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidInput, "node id too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node id %q contains control characters", id)
		}
	}

	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidInput, "node id %q has surrounding whitespace", id)
	}

	return nil
}

// ValidateLabel checks a user-entered node label.
// Labels are free text, but an empty or whitespace-only label is rejected
// the same way the editor's prompt ignores an empty answer.
func ValidateLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return New(ErrCodeInvalidInput, "node label cannot be empty")
	}

	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidInput, "node label too long (max %d characters)", maxLabelLength)
	}

	for _, r := range label {
		if r == '\x00' || (unicode.IsControl(r) && r != '\t') {
			return New(ErrCodeInvalidInput, "node label contains invalid characters")
		}
	}

	return nil
}
