package metadata

import (
	"reflect"
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantAbsent bool
		wantKeys   []string
		wantFields map[string]Value
		wantBody   string
	}{
		{
			name: "basic block",
			content: `---
type: book
title: Dune
pages: 412
read: true
---

# Dune
`,
			wantKeys: []string{"type", "title", "pages", "read"},
			wantFields: map[string]Value{
				"type":  String("book"),
				"title": String("Dune"),
				"pages": Number(412),
				"read":  Bool(true),
			},
			wantBody: "\n# Dune\n",
		},
		{
			name:       "no block",
			content:    "# Just a heading\n\nbody",
			wantAbsent: true,
		},
		{
			name:       "delimiter not on first line",
			content:    "\n---\ntype: book\n---\n",
			wantAbsent: true,
		},
		{
			name:       "unclosed block counts as absent",
			content:    "---\ntype: book\nbody text",
			wantAbsent: true,
		},
		{
			name:     "empty block",
			content:  "---\n---\nbody",
			wantKeys: []string{},
			wantBody: "body",
		},
		{
			name:    "empty value is empty string",
			content: "---\nnotes:\n---\n",
			wantFields: map[string]Value{
				"notes": String(""),
			},
		},
		{
			name:    "empty brackets is empty list",
			content: "---\ntags: []\n---\n",
			wantFields: map[string]Value{
				"tags": List(nil),
			},
		},
		{
			name: "multiline list",
			content: `---
categories:
  - fiction
  - classics
---
`,
			wantFields: map[string]Value{
				"categories": List([]Value{String("fiction"), String("classics")}),
			},
		},
		{
			name: "blank lines inside list tolerated",
			content: `---
tags:
  - one

  - two
status: read
---
`,
			wantKeys: []string{"tags", "status"},
			wantFields: map[string]Value{
				"tags":   List([]Value{String("one"), String("two")}),
				"status": String("read"),
			},
		},
		{
			name:    "inline list",
			content: "---\ntags: [a, b, c]\n---\n",
			wantFields: map[string]Value{
				"tags": List([]Value{String("a"), String("b"), String("c")}),
			},
		},
		{
			name: "scalar continuation keeps embedded newline",
			content: `---
summary: first line
  second line
status: read
---
`,
			wantKeys: []string{"summary", "status"},
			wantFields: map[string]Value{
				"summary": String("first line\nsecond line"),
				"status":  String("read"),
			},
		},
		{
			name: "blank line ends continuation",
			content: `---
summary: only line

status: read
---
`,
			wantFields: map[string]Value{
				"summary": String("only line"),
				"status":  String("read"),
			},
		},
		{
			name: "indented colon text is not a new key",
			content: `---
summary: see also
  note: this stays continuation
---
`,
			wantFields: map[string]Value{
				"summary": String("see also\nnote: this stays continuation"),
			},
		},
		{
			name:    "quoted value with colon",
			content: "---\ntitle: \"Dune: Messiah\"\n---\n",
			wantFields: map[string]Value{
				"title": String("Dune: Messiah"),
			},
		},
		{
			name:    "arabic fields",
			content: "---\nstatus: غير مقروء\npages: 10\n---\nbody",
			wantKeys: []string{
				"status", "pages",
			},
			wantFields: map[string]Value{
				"status": String("غير مقروء"),
				"pages":  Number(10),
			},
			wantBody: "body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, body, ok := Decode(tt.content)
			if tt.wantAbsent {
				if ok {
					t.Fatalf("expected no block, got one with keys %v", block.Keys())
				}
				return
			}
			if !ok {
				t.Fatal("expected a block, got none")
			}
			if tt.wantKeys != nil {
				if !reflect.DeepEqual(block.Keys(), tt.wantKeys) && !(len(block.Keys()) == 0 && len(tt.wantKeys) == 0) {
					t.Errorf("Keys() = %v, want %v", block.Keys(), tt.wantKeys)
				}
			}
			for key, want := range tt.wantFields {
				got, found := block.Get(key)
				if !found {
					t.Errorf("missing field %q", key)
					continue
				}
				if !reflect.DeepEqual(got, want) {
					t.Errorf("field %q = %#v, want %#v", key, got, want)
				}
			}
			if tt.wantBody != "" && body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestBlockOrdering(t *testing.T) {
	block := NewBlock()
	block.Set("b", String("1"))
	block.Set("a", String("2"))
	block.Set("b", String("3"))

	if !reflect.DeepEqual(block.Keys(), []string{"b", "a"}) {
		t.Errorf("Keys() = %v, want [b a]", block.Keys())
	}
	if v, _ := block.Get("b"); v.Text() != "3" {
		t.Errorf("re-set key should keep latest value, got %q", v.Text())
	}
	if block.Len() != 2 {
		t.Errorf("Len() = %d, want 2", block.Len())
	}
}

var listKeys = map[string]bool{"categories": true, "tags": true}

func TestUpdateField(t *testing.T) {
	tests := []struct {
		name    string
		content string
		key     string
		value   Value
		want    string
	}{
		{
			name:    "replace scalar leaves rest untouched",
			content: "---\nstatus: غير مقروء\npages: 10\n---\nbody",
			key:     "status",
			value:   String("مقروء"),
			want:    "---\nstatus: مقروء\npages: 10\n---\nbody",
		},
		{
			name:    "append missing key before closing delimiter",
			content: "---\ntitle: Dune\n---\nbody",
			key:     "status",
			value:   String("read"),
			want:    "---\ntitle: Dune\nstatus: read\n---\nbody",
		},
		{
			name:    "synthesize block when document has none",
			content: "# Heading\nbody",
			key:     "status",
			value:   String("read"),
			want:    "---\nstatus: read\n---\n# Heading\nbody",
		},
		{
			name:    "unclosed block treated as absent",
			content: "---\ntitle: Dune\nbody",
			key:     "status",
			value:   String("read"),
			want:    "---\nstatus: read\n---\n---\ntitle: Dune\nbody",
		},
		{
			name:    "replace multiline list claims item lines",
			content: "---\ncategories:\n  - a\n  - b\nstatus: read\n---\nbody",
			key:     "categories",
			value:   List([]Value{String("c")}),
			want:    "---\ncategories:\n  - c\nstatus: read\n---\nbody",
		},
		{
			name:    "list with interleaved blanks fully replaced",
			content: "---\ntags:\n  - one\n\n  - two\nstatus: read\n---\n",
			key:     "tags",
			value:   List([]Value{String("three")}),
			want:    "---\ntags:\n  - three\nstatus: read\n---\n",
		},
		{
			name:    "scalar becomes list",
			content: "---\ncategories: general\n---\n",
			key:     "categories",
			value:   List([]Value{String("fiction"), String("classics")}),
			want:    "---\ncategories:\n  - fiction\n  - classics\n---\n",
		},
		{
			name:    "list becomes scalar",
			content: "---\ncategories:\n  - a\n  - b\n---\n",
			key:     "categories",
			value:   String("general"),
			want:    "---\ncategories: general\n---\n",
		},
		{
			name:    "empty list renders brackets",
			content: "---\ntags:\n  - a\n---\n",
			key:     "tags",
			value:   List(nil),
			want:    "---\ntags: []\n---\n",
		},
		{
			name:    "non-list key inlines short lists",
			content: "---\nauthors: X\n---\n",
			key:     "authors",
			value:   List([]Value{String("X"), String("Y")}),
			want:    "---\nauthors: [X, Y]\n---\n",
		},
		{
			name:    "inline list value owns only its key line",
			content: "---\ntags: [a, b]\nstray note\n---\n",
			key:     "tags",
			value:   List([]Value{String("x")}),
			want:    "---\ntags:\n  - x\nstray note\n---\n",
		},
		{
			name:    "multiline string encoded on one line",
			content: "---\ntitle: Dune\n---\nbody",
			key:     "summary",
			value:   String("first line\nsecond line"),
			want:    "---\ntitle: Dune\nsummary: \"first line\\nsecond line\"\n---\nbody",
		},
		{
			name:    "multiline scalar continuation replaced whole",
			content: "---\nsummary: first\n  second\nstatus: read\n---\n",
			key:     "summary",
			value:   String("short"),
			want:    "---\nsummary: short\nstatus: read\n---\n",
		},
		{
			name:    "quoting applied when value needs it",
			content: "---\ntitle: Dune\n---\n",
			key:     "title",
			value:   String("Dune: Messiah"),
			want:    "---\ntitle: \"Dune: Messiah\"\n---\n",
		},
		{
			name:    "typed values render literally",
			content: "---\npages: 10\n---\n",
			key:     "pages",
			value:   Number(412),
			want:    "---\npages: 412\n---\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UpdateField(tt.content, tt.key, tt.value, listKeys)
			if got != tt.want {
				t.Errorf("UpdateField() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUpdateFieldIdempotent(t *testing.T) {
	contents := []string{
		"---\nstatus: unread\npages: 10\n---\nbody",
		"---\ncategories:\n  - a\n  - b\n---\n",
		"# no block\nbody",
	}
	updates := []struct {
		key   string
		value Value
	}{
		{"status", String("read")},
		{"categories", List([]Value{String("c"), String("d")})},
		{"pages", Number(99)},
	}

	for _, content := range contents {
		for _, u := range updates {
			once := UpdateField(content, u.key, u.value, listKeys)
			twice := UpdateField(once, u.key, u.value, listKeys)
			if once != twice {
				t.Errorf("update of %q not idempotent:\nonce:  %q\ntwice: %q", u.key, once, twice)
			}
		}
	}
}

func TestUpdateFieldRoundTrip(t *testing.T) {
	// Updating one key must not disturb any other decoded field, and the
	// body must stay byte-identical.
	content := `---
type: book
title: "Dune: Messiah"
status: غير مقروء
categories:
  - فكر
  - تاريخ
pages: 331
---

# ملاحظات

body line
`
	before, beforeBody, ok := Decode(content)
	if !ok {
		t.Fatal("fixture should decode")
	}

	updated := UpdateField(content, "status", String("مقروء"), listKeys)
	after, afterBody, ok := Decode(updated)
	if !ok {
		t.Fatal("updated document should decode")
	}

	if afterBody != beforeBody {
		t.Errorf("body changed:\nbefore: %q\nafter:  %q", beforeBody, afterBody)
	}
	if v, _ := after.Get("status"); !reflect.DeepEqual(v, String("مقروء")) {
		t.Errorf("status = %#v", v)
	}
	for _, key := range before.Keys() {
		if key == "status" {
			continue
		}
		wantV, _ := before.Get(key)
		gotV, found := after.Get(key)
		if !found {
			t.Errorf("field %q lost", key)
			continue
		}
		if !reflect.DeepEqual(gotV, wantV) {
			t.Errorf("field %q changed: %#v -> %#v", key, wantV, gotV)
		}
	}

	// The untouched lines survive verbatim, not merely semantically.
	for _, line := range []string{"title: \"Dune: Messiah\"", "  - فكر", "pages: 331", "# ملاحظات"} {
		if !strings.Contains(updated, line) {
			t.Errorf("expected untouched line %q in:\n%s", line, updated)
		}
	}
}

func TestUpdateFieldMultilineValueRoundTrip(t *testing.T) {
	// A value containing newlines must survive an update/decode cycle
	// without picking up quote characters or losing lines.
	content := "---\ntitle: Dune\n---\nbody"
	want := String("first line\nsecond line")

	updated := UpdateField(content, "summary", want, nil)
	block, body, ok := Decode(updated)
	if !ok {
		t.Fatal("updated document should decode")
	}
	if got := mustGet(t, block, "summary"); !reflect.DeepEqual(got, want) {
		t.Errorf("summary = %#v, want %#v", got, want)
	}
	if v := mustGet(t, block, "title"); v.Text() != "Dune" {
		t.Errorf("title disturbed: %#v", v)
	}
	if body != "body" {
		t.Errorf("body = %q", body)
	}
}

func TestDecodeEncodeListFidelity(t *testing.T) {
	// Encoding a list then decoding returns the same ordered items.
	items := []Value{String("فكر"), String("تاريخ"), String("أدب")}
	content := UpdateField("---\n---\n", "categories", List(items), listKeys)
	block, _, ok := Decode(content)
	if !ok {
		t.Fatal("expected a block")
	}
	got, isList := mustGet(t, block, "categories").AsList()
	if !isList {
		t.Fatalf("categories should decode as a list")
	}
	if !reflect.DeepEqual(got, items) {
		t.Errorf("list items = %#v, want %#v", got, items)
	}
}

func mustGet(t *testing.T, b *Block, key string) Value {
	t.Helper()
	v, ok := b.Get(key)
	if !ok {
		t.Fatalf("missing field %q", key)
	}
	return v
}
