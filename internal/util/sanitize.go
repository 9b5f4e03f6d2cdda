package util

import (
	"errors"
	"strings"
)

// ErrInvalidFileName is returned for names that cannot be made safe.
var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName normalizes an uploaded document name for storage.
// Path separators become underscores so the name stays a single path
// element, control characters are dropped, and traversal sequences are
// rejected outright rather than rewritten.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}

	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\':
			return '_'
		case r < 0x20 || r == 0x7f:
			return -1
		}
		return r
	}, strings.TrimSpace(name))

	if cleaned == "" {
		return "", ErrInvalidFileName
	}
	return cleaned, nil
}
