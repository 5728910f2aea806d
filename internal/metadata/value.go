// Package metadata implements the delimited metadata block at the top of
// library documents: typed field values, a line-based decoder, and
// surgical in-place field updates.
package metadata

import (
	"encoding/json"
	"strconv"
	"strings"
)

// listIndent is the indentation for multi-line list items.
const listIndent = "  "

// Value represents a parsed field value: a scalar (string, number,
// boolean) or an ordered list of scalars.
type Value struct {
	value interface{}
}

// String creates a string Value.
func String(s string) Value {
	return Value{value: s}
}

// Number creates a number Value.
func Number(n float64) Value {
	return Value{value: n}
}

// Bool creates a boolean Value.
func Bool(b bool) Value {
	return Value{value: b}
}

// List creates a list Value.
func List(items []Value) Value {
	return Value{value: items}
}

// IsZero returns true for the zero Value (no field present).
func (v Value) IsZero() bool {
	return v.value == nil
}

// AsString returns the value as a string, if it is one.
func (v Value) AsString() (string, bool) {
	s, ok := v.value.(string)
	return s, ok
}

// AsNumber returns the value as a number, if it is one.
func (v Value) AsNumber() (float64, bool) {
	n, ok := v.value.(float64)
	return n, ok
}

// AsBool returns the value as a boolean, if it is one.
func (v Value) AsBool() (bool, bool) {
	b, ok := v.value.(bool)
	return b, ok
}

// AsList returns the value as a list, if it is one.
func (v Value) AsList() ([]Value, bool) {
	items, ok := v.value.([]Value)
	return items, ok
}

// Text renders the value as plain display text, without quoting.
func (v Value) Text() string {
	switch val := v.value.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []Value:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = item.Text()
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

// Raw returns the underlying raw value.
func (v Value) Raw() interface{} {
	if items, ok := v.value.([]Value); ok {
		result := make([]interface{}, len(items))
		for i, item := range items {
			result[i] = item.Raw()
		}
		return result
	}
	return v.value
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Raw())
}

// ParseScalar converts a raw scalar token to a typed value. A single layer
// of surrounding matched quotes is stripped and forces a string; the exact
// literals true/false become booleans; text that fully parses as a number
// becomes a number; everything else is a string. Malformed input degrades
// to its best-effort string reading, never an error.
func ParseScalar(raw string) Value {
	trimmed := strings.TrimSpace(raw)

	if inner, ok := unquote(trimmed); ok {
		return String(inner)
	}
	if trimmed == "true" {
		return Bool(true)
	}
	if trimmed == "false" {
		return Bool(false)
	}
	if trimmed != "" {
		if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return Number(n)
		}
	}
	return String(trimmed)
}

// unquote strips one layer of matched surrounding quotes.
func unquote(s string) (string, bool) {
	if len(s) < 2 {
		return "", false
	}
	if s[0] == '"' && s[len(s)-1] == '"' {
		inner := s[1 : len(s)-1]
		inner = strings.ReplaceAll(inner, `\n`, "\n")
		inner = strings.ReplaceAll(inner, `\"`, `"`)
		return inner, true
	}
	if s[0] == '\'' && s[len(s)-1] == '\'' {
		return s[1 : len(s)-1], true
	}
	return "", false
}

// Encode serializes a scalar value back to a token. Strings that could be
// misread by the decoder are double-quoted; booleans and numbers render as
// their literal text. Lists render in their inline bracketed form.
func (v Value) Encode() string {
	switch val := v.value.(type) {
	case string:
		if needsQuoting(val) {
			// Newlines are escaped so the quoted token stays on one
			// physical line and survives a decode.
			escaped := strings.ReplaceAll(val, `"`, `\"`)
			escaped = strings.ReplaceAll(escaped, "\n", `\n`)
			return `"` + escaped + `"`
		}
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []Value:
		return EncodeList(val, false)[0]
	default:
		return ""
	}
}

// needsQuoting reports whether a bare string would be misread.
func needsQuoting(s string) bool {
	return strings.ContainsAny(s, ":#{[\n\"'")
}

// EncodeList renders a list value as lines. The first returned element is
// the text that follows "key:" on the key line; any further elements are
// complete indented item lines. Short plain lists render inline unless
// linebreak forces one item per line.
func EncodeList(items []Value, linebreak bool) []string {
	if len(items) == 0 {
		return []string{"[]"}
	}
	if !linebreak && inlineable(items) {
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = item.Encode()
		}
		return []string{"[" + strings.Join(parts, ", ") + "]"}
	}
	lines := make([]string, 0, len(items)+1)
	lines = append(lines, "")
	for _, item := range items {
		lines = append(lines, listIndent+"- "+item.Encode())
	}
	return lines
}

// inlineable reports whether a list is short enough for the bracketed
// inline form: fewer than 5 items, every item a short plain string.
func inlineable(items []Value) bool {
	if len(items) >= 5 {
		return false
	}
	for _, item := range items {
		s, ok := item.AsString()
		if !ok {
			return false
		}
		if len(s) > 40 || needsQuoting(s) || strings.Contains(s, ",") {
			return false
		}
	}
	return true
}
