package metadata

import (
	"strings"
)

// Delimiter opens and closes a metadata block.
const Delimiter = "---"

// Block is an ordered mapping from field name to value. Keys preserve
// first-seen order; setting an existing key keeps its position.
type Block struct {
	keys   []string
	fields map[string]Value
}

// NewBlock creates an empty block.
func NewBlock() *Block {
	return &Block{fields: make(map[string]Value)}
}

// Get returns the value for a key.
func (b *Block) Get(key string) (Value, bool) {
	v, ok := b.fields[key]
	return v, ok
}

// Has reports whether the block contains a key.
func (b *Block) Has(key string) bool {
	_, ok := b.fields[key]
	return ok
}

// Set stores a value, appending the key if it is new.
func (b *Block) Set(key string, v Value) {
	if _, exists := b.fields[key]; !exists {
		b.keys = append(b.keys, key)
	}
	b.fields[key] = v
}

// Keys returns the field names in first-seen order.
func (b *Block) Keys() []string {
	return b.keys
}

// Len returns the number of fields.
func (b *Block) Len() int {
	return len(b.keys)
}

// Fields returns the fields as a map. The map is a copy; mutating it does
// not affect the block.
func (b *Block) Fields() map[string]Value {
	fields := make(map[string]Value, len(b.fields))
	for key, v := range b.fields {
		fields[key] = v
	}
	return fields
}

// BlockBounds returns the opening and closing delimiter line indices. It
// only detects a block when the first line is the delimiter. If the block
// is unclosed, endLine is -1.
func BlockBounds(lines []string) (startLine int, endLine int, ok bool) {
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != Delimiter {
		return 0, -1, false
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == Delimiter {
			return 0, i, true
		}
	}
	return 0, -1, true
}

// Decode parses the leading metadata block of a document. It returns the
// block, the body text after the closing delimiter, and whether a block
// was found. An unclosed block counts as absent.
func Decode(content string) (*Block, string, bool) {
	lines := strings.Split(content, "\n")
	_, end, ok := BlockBounds(lines)
	if !ok || end == -1 {
		return nil, "", false
	}
	block := decodeLines(lines[1:end])
	body := strings.Join(lines[end+1:], "\n")
	return block, body, true
}

type decodeState int

const (
	expectKey decodeState = iota
	scalarContinuation
	listItems
)

// decodeLines runs the three-state line machine over the block interior.
func decodeLines(lines []string) *Block {
	block := NewBlock()
	state := expectKey

	var key string
	var scalarParts []string
	var items []Value
	emptyList := false

	flush := func() {
		if key == "" {
			return
		}
		switch state {
		case scalarContinuation:
			if len(scalarParts) == 1 {
				block.Set(key, ParseScalar(scalarParts[0]))
			} else {
				block.Set(key, String(strings.Join(scalarParts, "\n")))
			}
		case listItems:
			if len(items) > 0 {
				block.Set(key, List(items))
			} else if emptyList {
				block.Set(key, List(nil))
			} else {
				block.Set(key, String(""))
			}
		}
		key = ""
		scalarParts = nil
		items = nil
		emptyList = false
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if k, rest, isKey := splitKeyLine(line); isKey {
			flush()
			key = k
			value := strings.TrimSpace(rest)
			switch {
			case value == "" || value == "[]":
				// Look ahead through the machine: marker lines that
				// follow become items, otherwise this flushes as an
				// empty scalar (or empty list for []).
				state = listItems
				emptyList = value == "[]"
			case isInlineList(value):
				block.Set(key, parseInlineList(value))
				key = ""
				state = expectKey
			default:
				state = scalarContinuation
				scalarParts = []string{value}
			}
			continue
		}

		switch state {
		case listItems:
			// Blank lines interleaved within a list do not terminate it.
			if trimmed == "" {
				continue
			}
			if item, isItem := listItem(trimmed); isItem {
				items = append(items, item)
				continue
			}
			flush()
			state = expectKey
		case scalarContinuation:
			if trimmed == "" {
				flush()
				state = expectKey
				continue
			}
			if _, isItem := listItem(trimmed); isItem {
				flush()
				state = expectKey
				continue
			}
			scalarParts = append(scalarParts, trimmed)
		}
	}
	flush()
	return block
}

// splitKeyLine matches a "key: value" line. Only lines starting at column
// 0 qualify, so indented continuation text containing a colon is never
// reinterpreted as a new field.
func splitKeyLine(line string) (key, rest string, ok bool) {
	if line == "" || line[0] == ' ' || line[0] == '\t' || line[0] == '-' {
		return "", "", false
	}
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:idx])
	if key == "" {
		return "", "", false
	}
	return key, line[idx+1:], true
}

// listItem matches an already-trimmed list marker line.
func listItem(trimmed string) (Value, bool) {
	if trimmed == "-" {
		return String(""), true
	}
	if strings.HasPrefix(trimmed, "- ") {
		return ParseScalar(strings.TrimSpace(trimmed[2:])), true
	}
	return Value{}, false
}

func isInlineList(value string) bool {
	return strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]")
}

func parseInlineList(value string) Value {
	inner := strings.TrimSpace(value[1 : len(value)-1])
	if inner == "" {
		return List(nil)
	}
	var items []Value
	for _, part := range strings.Split(inner, ",") {
		items = append(items, ParseScalar(part))
	}
	return List(items)
}

// UpdateField rewrites one field's value in a raw document, leaving every
// other line untouched byte-for-byte. The replaced range covers the key
// line plus any list-item or continuation lines the field owns. A missing
// key is appended at the end of the block; a document without a block gets
// one synthesized and prepended. listKeys names the keys whose list values
// render one item per line instead of inline.
func UpdateField(content, key string, v Value, listKeys map[string]bool) string {
	lines := strings.Split(content, "\n")
	_, end, ok := BlockBounds(lines)
	if !ok || end == -1 {
		synthesized := append([]string{Delimiter}, fieldLines(key, v, listKeys)...)
		synthesized = append(synthesized, Delimiter)
		return strings.Join(synthesized, "\n") + "\n" + content
	}

	for i := 1; i < end; i++ {
		k, _, isKey := splitKeyLine(lines[i])
		if !isKey || k != key {
			continue
		}
		rangeEnd := fieldRange(lines, i, end)
		updated := make([]string, 0, len(lines))
		updated = append(updated, lines[:i]...)
		updated = append(updated, fieldLines(key, v, listKeys)...)
		updated = append(updated, lines[rangeEnd:]...)
		return strings.Join(updated, "\n")
	}

	updated := make([]string, 0, len(lines)+2)
	updated = append(updated, lines[:end]...)
	updated = append(updated, fieldLines(key, v, listKeys)...)
	updated = append(updated, lines[end:]...)
	return strings.Join(updated, "\n")
}

// fieldRange returns the index one past the last line owned by the field
// whose key line sits at keyIdx, using the same claiming rules as decode.
func fieldRange(lines []string, keyIdx, blockEnd int) int {
	_, rest, _ := splitKeyLine(lines[keyIdx])
	value := strings.TrimSpace(rest)

	// An inline list is complete on its key line; decode never treats the
	// lines after it as owned, so the update must not claim them either.
	if isInlineList(value) && value != "[]" {
		return keyIdx + 1
	}

	if value == "" || value == "[]" {
		// The field may own marker lines, with blanks interleaved.
		// Trailing blanks after the last item stay outside the range.
		last := keyIdx
		for j := keyIdx + 1; j < blockEnd; j++ {
			trimmed := strings.TrimSpace(lines[j])
			if trimmed == "" {
				continue
			}
			if _, isItem := listItem(trimmed); isItem {
				last = j
				continue
			}
			break
		}
		return last + 1
	}

	// Scalar: claim continuation lines until a blank, marker, or key line.
	j := keyIdx + 1
	for j < blockEnd {
		trimmed := strings.TrimSpace(lines[j])
		if trimmed == "" {
			break
		}
		if _, _, isKey := splitKeyLine(lines[j]); isKey {
			break
		}
		if _, isItem := listItem(trimmed); isItem {
			break
		}
		j++
	}
	return j
}

// fieldLines serializes one field as block lines.
func fieldLines(key string, v Value, listKeys map[string]bool) []string {
	items, isList := v.AsList()
	if !isList {
		return []string{key + ": " + v.Encode()}
	}
	encoded := EncodeList(items, listKeys[key])
	first := key + ":"
	if encoded[0] != "" {
		first += " " + encoded[0]
	}
	return append([]string{first}, encoded[1:]...)
}
