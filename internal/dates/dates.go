// Package dates centralizes date formats used in metadata fields.
package dates

import "time"

// DateLayout is the canonical date format for metadata fields.
const DateLayout = "2006-01-02"

// DatetimeLayout is the format for datetime metadata fields.
const DatetimeLayout = "2006-01-02T15:04"

// Parse parses a metadata date string, accepting the canonical date form,
// the datetime form, and full RFC 3339 timestamps.
func Parse(s string) (time.Time, bool) {
	for _, layout := range []string{DateLayout, DatetimeLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Format renders a time in the canonical date form.
func Format(t time.Time) string {
	return t.Format(DateLayout)
}
