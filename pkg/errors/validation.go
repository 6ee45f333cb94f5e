package errors

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// MaxCodeLength bounds the length of a flight code or search query.
const MaxCodeLength = 64

// ValidateQuery validates a search query and returns it with surrounding
// whitespace removed. A blank query yields ErrCodeEmptyQuery so callers can
// warn instead of searching.
func ValidateQuery(q string) (string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", New(ErrCodeEmptyQuery, "enter a flight code to search for")
	}
	if err := ValidateCode(q); err != nil {
		return "", Wrap(ErrCodeInvalidQuery, err, "invalid search query %q", q)
	}
	return q, nil
}

// ValidateCode checks that a single flight code is usable as a tree key:
// non-empty, bounded in length, free of control characters.
func ValidateCode(code string) error {
	if code == "" {
		return New(ErrCodeInvalidInput, "flight code cannot be empty")
	}
	if len(code) > MaxCodeLength {
		return New(ErrCodeInvalidInput, "flight code too long (max %d characters)", MaxCodeLength)
	}
	for _, r := range code {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "flight code contains control characters")
		}
	}
	return nil
}

// ValidateCount checks that n lies within [lo, hi].
func ValidateCount(n, lo, hi int) error {
	if n < lo || n > hi {
		return New(ErrCodeInvalidCount, "count %d outside allowed range [%d, %d]", n, lo, hi)
	}
	return nil
}

// ValidateDatasetID checks that id is a dataset identifier issued by the
// store. Identifiers are UUIDs.
func ValidateDatasetID(id string) error {
	if id == "" {
		return New(ErrCodeNoInput, "no dataset selected")
	}
	if _, err := uuid.Parse(id); err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid dataset id %q", id)
	}
	return nil
}

// ValidatePath validates a relative file path supplied by a user, for
// example the sample file name.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No control characters
//   - No path traversal sequences (..)
//   - No backslashes
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidInput, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidInput, "path cannot contain backslashes")
	}

	return nil
}
