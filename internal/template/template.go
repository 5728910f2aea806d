// Package template resolves folder path templates for library documents.
package template

import (
	"fmt"
	"strings"
	"time"

	"github.com/WallySa7/the-library-sub001/internal/paths"
)

// FolderData is the projection of a document's metadata that can feed a
// folder template. It is built per operation and discarded after resolution.
type FolderData struct {
	// Type is the content kind label ({type}).
	Type string
	// Party is the presenter or author name ({presenter}/{author}).
	Party string
	// Category is the first category ({category}).
	Category string
	// Date feeds the {year}/{month}/{day} placeholders.
	Date time.Time
}

// Defaults supplies replacements for placeholders whose fields are absent.
type Defaults struct {
	Type     string
	Party    string
	Category string
}

// Resolver expands a folder template against FolderData.
type Resolver struct {
	// Root is prefixed to every resolved path.
	Root string
	// Template is the placeholder template, e.g. "{type}/{presenter}".
	Template string
	// Enabled gates resolution; a disabled resolver always returns Root.
	Enabled bool
	// Defaults fill in absent fields.
	Defaults Defaults
	// MaxNameLength bounds each sanitized path segment.
	MaxNameLength int
}

// Resolve expands the template for the given data. The result is a pure
// function of the resolver configuration and data: placeholders are
// substituted (absent fields fall back to defaults), each segment is
// sanitized independently, and the root folder is prefixed.
func (r *Resolver) Resolve(data FolderData) string {
	if !r.Enabled || r.Template == "" {
		return r.Root
	}

	date := data.Date
	if date.IsZero() {
		date = time.Now()
	}

	replacements := map[string]string{
		"{type}":      orDefault(data.Type, r.Defaults.Type),
		"{presenter}": orDefault(data.Party, r.Defaults.Party),
		"{author}":    orDefault(data.Party, r.Defaults.Party),
		"{category}":  orDefault(data.Category, r.Defaults.Category),
		"{year}":      date.Format("2006"),
		"{month}":     fmt.Sprintf("%02d", int(date.Month())),
		"{day}":       fmt.Sprintf("%02d", date.Day()),
	}

	resolved := r.Template
	for placeholder, value := range replacements {
		resolved = strings.ReplaceAll(resolved, placeholder, value)
	}

	resolved = paths.SanitizePath(resolved, r.MaxNameLength)
	if resolved == "" {
		return r.Root
	}
	return r.Root + "/" + resolved
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
