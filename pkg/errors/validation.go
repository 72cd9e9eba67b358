package errors

import (
	"strings"
	"unicode"
)

// MaxTreeLength is the longest tree string accepted at the boundary.
const MaxTreeLength = 64 << 10

// ValidateTreeString validates a bracketed tree string before parsing.
//
// The rules are intentionally shallow; structural problems are reported by the
// parser:
//   - No empty or whitespace-only strings
//   - Maximum length of MaxTreeLength bytes
//   - No control characters other than whitespace
func ValidateTreeString(s string) error {
	if strings.TrimSpace(s) == "" {
		return New(ErrCodeInvalidInput, "Please provide a syntax tree to paraphrase")
	}

	if len(s) > MaxTreeLength {
		return New(ErrCodeInvalidInput, "tree too long (max %d bytes)", MaxTreeLength)
	}

	for _, r := range s {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "tree contains invalid control characters")
		}
	}

	return nil
}

// ValidateLimit validates a requested sample size. Zero means "no limit".
func ValidateLimit(limit int) error {
	if limit < 0 {
		return New(ErrCodeInvalidInput, "limit must be non-negative, got %d", limit)
	}
	return nil
}

// ValidateMethodNames checks that at least one method name is given and that
// none is blank. Whether a name resolves is decided by the transformer.
func ValidateMethodNames(names []string) error {
	if len(names) == 0 {
		return New(ErrCodeInvalidInput, "at least one method is required")
	}
	for i, n := range names {
		if strings.TrimSpace(n) == "" {
			return New(ErrCodeInvalidInput, "method %d is empty", i)
		}
	}
	return nil
}
