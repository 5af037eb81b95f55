package match

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const MaxDescriptionLength = 200

var (
	ErrDescriptionEmpty   = errors.New("match description cannot be empty")
	ErrDescriptionTooLong = errors.New("match description must be 200 characters or less")
)

// ValidateDescription trims the caller-supplied description and checks the
// 1-200 character bound. Callers must validate before creating a match.
func ValidateDescription(description string) (string, error) {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return "", ErrDescriptionEmpty
	}
	if utf8.RuneCountInString(trimmed) > MaxDescriptionLength {
		return "", ErrDescriptionTooLong
	}
	return trimmed, nil
}
