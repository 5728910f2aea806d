package template

import (
	"testing"
	"time"
)

func newResolver(tmpl, root string) *Resolver {
	return &Resolver{
		Root:     root,
		Template: tmpl,
		Enabled:  true,
		Defaults: Defaults{Type: "generic", Party: "Unknown", Category: "general"},
	}
}

func TestResolve(t *testing.T) {
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		template string
		root     string
		data     FolderData
		want     string
	}{
		{
			name:     "type and author",
			template: "{type}/{author}",
			root:     "Books",
			data:     FolderData{Type: "كتاب", Party: "X", Date: date},
			want:     "Books/كتاب/X",
		},
		{
			name:     "type and presenter",
			template: "{type}/{presenter}",
			root:     "Videos",
			data:     FolderData{Type: "video", Party: "Jane Doe", Date: date},
			want:     "Videos/video/Jane Doe",
		},
		{
			name:     "defaults fill absent fields",
			template: "{type}/{presenter}/{category}",
			root:     "Videos",
			data:     FolderData{Date: date},
			want:     "Videos/generic/Unknown/general",
		},
		{
			name:     "date placeholders zero padded",
			template: "{year}/{month}/{day}",
			root:     "Archive",
			data:     FolderData{Date: date},
			want:     "Archive/2024/03/05",
		},
		{
			name:     "segments sanitized independently",
			template: "{type}/{presenter}",
			root:     "Videos",
			data:     FolderData{Type: "lec?ture", Party: `A*B`, Date: date},
			want:     "Videos/lecture/AB",
		},
		{
			name:     "repeated placeholder substituted globally",
			template: "{type}/{type}",
			root:     "R",
			data:     FolderData{Type: "book", Date: date},
			want:     "R/book/book",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newResolver(tt.template, tt.root)
			if got := r.Resolve(tt.data); got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveDeterministic(t *testing.T) {
	r := newResolver("{type}/{author}/{year}", "Books")
	data := FolderData{Type: "book", Party: "X", Date: time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)}

	first := r.Resolve(data)
	for i := 0; i < 10; i++ {
		if got := r.Resolve(data); got != first {
			t.Fatalf("Resolve() not deterministic: %q then %q", first, got)
		}
	}
}

func TestResolveDisabled(t *testing.T) {
	r := newResolver("{type}/{author}", "Books")
	r.Enabled = false
	if got := r.Resolve(FolderData{Type: "book", Party: "X"}); got != "Books" {
		t.Errorf("disabled resolver should return root, got %q", got)
	}
}

func TestResolveEmptyTemplate(t *testing.T) {
	r := newResolver("", "Books")
	if got := r.Resolve(FolderData{Type: "book"}); got != "Books" {
		t.Errorf("empty template should return root, got %q", got)
	}
}
