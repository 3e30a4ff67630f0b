package util

import (
	"errors"
	"path"
	"strings"
)

// MaxFileNameLength caps sanitized names used inside object keys.
const MaxFileNameLength = 100

// ErrInvalidFileName is returned when nothing usable is left of a file name.
var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName reduces an uploaded file name to a single object key segment.
// Directories are dropped and any byte outside [A-Za-z0-9._-] becomes '_'.
func SanitizeFileName(name string) (string, error) {
	s := strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	s = path.Base(s)
	if s == "." || s == "/" || s == ".." || s == "" {
		return "", ErrInvalidFileName
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9',
			ch == '.', ch == '-', ch == '_':
			b.WriteByte(ch)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.TrimLeft(b.String(), ".")
	if len(out) > MaxFileNameLength {
		out = out[len(out)-MaxFileNameLength:]
	}
	if strings.Trim(out, "_") == "" {
		return "", ErrInvalidFileName
	}
	return out, nil
}
