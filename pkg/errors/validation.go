package errors

import (
	"strings"
	"unicode"
)

// ValidateFilePath validates an input or output file path supplied by a user.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidateFilePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateURL validates a connection URL against a set of allowed schemes,
// e.g. "redis://" or "mongodb://".
func ValidateURL(rawURL string, schemes ...string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	for _, s := range schemes {
		if strings.HasPrefix(rawURL, s) {
			return nil
		}
	}

	return New(ErrCodeInvalidInput, "URL must use one of the schemes %s", strings.Join(schemes, ", "))
}

// ValidateCollectionName validates a MongoDB database or collection name.
//
// The validation rules mirror the server's:
//   - No empty names
//   - Maximum length of 120 characters
//   - No null bytes, '$', or whitespace
//   - No reserved "system." prefix
func ValidateCollectionName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "collection name cannot be empty")
	}

	if len(name) > 120 {
		return New(ErrCodeInvalidInput, "collection name too long (max 120 characters)")
	}

	if strings.HasPrefix(name, "system.") {
		return New(ErrCodeInvalidInput, "collection name cannot use the reserved system. prefix")
	}

	for _, r := range name {
		if r == '\x00' || r == '$' || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "collection name contains invalid character %q", r)
		}
	}

	return nil
}
