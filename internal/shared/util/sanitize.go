package util

import (
	"errors"
	"path/filepath"
	"strings"
	"unicode"
)

// maxFileNameRunes bounds the client name embedded in storage keys.
const maxFileNameRunes = 120

var errInvalidFileName = errors.New("invalid file name")

// SanitizeFileName turns a client-supplied upload name into a single safe key
// segment: separators and whitespace become "_", control characters are
// dropped, traversal is rejected and long names are cut keeping the extension.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errInvalidFileName
	}
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r == '/' || r == '\\' || unicode.IsSpace(r):
			if !lastUnderscore {
				b.WriteRune('_')
			}
			lastUnderscore = true
			continue
		case unicode.IsControl(r):
			continue
		}
		b.WriteRune(r)
		lastUnderscore = false
	}
	s := strings.Trim(b.String(), "_")
	if s == "" || s == "." {
		return "", errInvalidFileName
	}
	return truncateName(s, maxFileNameRunes), nil
}

func truncateName(name string, limit int) string {
	runes := []rune(name)
	if len(runes) <= limit {
		return name
	}
	ext := []rune(filepath.Ext(name))
	if len(ext) >= limit {
		return string(runes[:limit])
	}
	return string(runes[:limit-len(ext)]) + string(ext)
}
