// Package paths provides filesystem-safe name handling for library files.
package paths

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// DefaultMaxNameLength bounds a sanitized path segment when no limit is
// configured.
const DefaultMaxNameLength = 100

// illegalChars are characters that cannot appear in a path segment.
const illegalChars = `*"\/<>:|?#`

// ErrPathOutsideLibrary indicates a path escapes the library root.
var ErrPathOutsideLibrary = fmt.Errorf("path is outside library")

// Sanitize makes a string safe to use as a single path segment.
//
// Illegal characters are stripped, whitespace runs collapse to a single
// space, the result is trimmed and truncated to maxLen runes. An input
// that sanitizes to nothing gets a timestamp placeholder so the caller
// always receives a usable name.
func Sanitize(name string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxNameLength
	}

	var b strings.Builder
	lastSpace := false
	for _, r := range name {
		if strings.ContainsRune(illegalChars, r) {
			continue
		}
		if unicode.IsSpace(r) {
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}

	result := strings.TrimSpace(b.String())

	if runes := []rune(result); len(runes) > maxLen {
		result = strings.TrimSpace(string(runes[:maxLen]))
	}

	if result == "" {
		result = "untitled-" + time.Now().Format("20060102-150405")
		// The placeholder itself must respect the length bound.
		if runes := []rune(result); len(runes) > maxLen {
			result = string(runes[:maxLen])
		}
	}
	return result
}

// SanitizePath sanitizes each "/"-separated segment of a path
// independently, dropping segments that were only separators.
func SanitizePath(path string, maxLen int) string {
	parts := strings.Split(path, "/")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		out = append(out, Sanitize(part, maxLen))
	}
	return strings.Join(out, "/")
}

// ValidateWithinLibrary checks that a target path stays inside the library
// root once cleaned. The target does not have to exist yet.
func ValidateWithinLibrary(libraryPath, targetPath string) error {
	absLibrary, err := filepath.Abs(libraryPath)
	if err != nil {
		return err
	}
	absTarget, err := filepath.Abs(targetPath)
	if err != nil {
		return err
	}
	if absTarget == absLibrary {
		return nil
	}
	if !strings.HasPrefix(absTarget+string(filepath.Separator), absLibrary+string(filepath.Separator)) {
		return ErrPathOutsideLibrary
	}
	return nil
}
