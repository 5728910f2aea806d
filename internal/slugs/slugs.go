// Package slugs derives stable slugged identifiers for records.
package slugs

import (
	"strings"

	goslug "github.com/gosimple/slug"
)

// RecordID derives a stable identifier from a document's library-relative
// path. Each path component is slugged independently so the hierarchy
// stays visible; the extension is dropped first.
func RecordID(relPath string) string {
	relPath = strings.TrimSuffix(relPath, ".md")
	relPath = strings.TrimSuffix(relPath, ".txt")

	parts := strings.Split(relPath, "/")
	for i, part := range parts {
		slugged := goslug.Make(part)
		if slugged == "" {
			slugged = strings.ToLower(strings.ReplaceAll(part, " ", "-"))
		}
		parts[i] = slugged
	}
	return strings.Join(parts, "/")
}
