package cli

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/WallySa7/the-library-sub001/internal/library"
	"github.com/WallySa7/the-library-sub001/internal/metadata"
	"github.com/WallySa7/the-library-sub001/internal/paths"
	"github.com/WallySa7/the-library-sub001/internal/testutil"
)

func TestParseFieldArgs(t *testing.T) {
	updates, err := parseFieldArgs([]string{"status=read", "pages=412", "title=a=b"})
	if err != nil {
		t.Fatalf("parseFieldArgs: %v", err)
	}
	want := []fieldUpdate{
		{Key: "status", Value: "read"},
		{Key: "pages", Value: "412"},
		{Key: "title", Value: "a=b"},
	}
	if !reflect.DeepEqual(updates, want) {
		t.Errorf("updates = %+v, want %+v", updates, want)
	}
}

func TestParseFieldArgsInvalid(t *testing.T) {
	for _, arg := range []string{"noequals", "=value"} {
		if _, err := parseFieldArgs([]string{arg}); err == nil {
			t.Errorf("expected error for %q", arg)
		}
	}
}

func TestParseUpdateValue(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		listKey bool
		want    metadata.Value
	}{
		{name: "scalar string", raw: "read", want: metadata.String("read")},
		{name: "scalar number", raw: "412", want: metadata.Number(412)},
		{
			name: "comma list", raw: "a,b", listKey: true,
			want: metadata.List([]metadata.Value{metadata.String("a"), metadata.String("b")}),
		},
		{
			name: "bracketed list", raw: "[a, b]", listKey: true,
			want: metadata.List([]metadata.Value{metadata.String("a"), metadata.String("b")}),
		},
		{
			name: "empty list", raw: "", listKey: true,
			want: metadata.List(nil),
		},
		{
			name: "arabic list", raw: "فكر,تاريخ", listKey: true,
			want: metadata.List([]metadata.Value{metadata.String("فكر"), metadata.String("تاريخ")}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseUpdateValue(tt.raw, tt.listKey)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseUpdateValue(%q) = %#v, want %#v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestResolveDocument(t *testing.T) {
	lib := testutil.NewLibrary(t)
	lib.WriteDoc("Books/dune.md", "---\ntype: book\ntitle: Dune\n---\n")
	store := library.NewDirStorage(lib.Path)

	got, err := resolveDocument(store, "Books/dune")
	if err != nil {
		t.Fatalf("resolveDocument: %v", err)
	}
	if got != "Books/dune.md" {
		t.Errorf("resolved %q, want Books/dune.md", got)
	}

	if _, err := resolveDocument(store, "Books/missing"); err == nil {
		t.Error("missing document should not resolve")
	}
}

func TestResolveDocumentRejectsEscapingPaths(t *testing.T) {
	lib := testutil.NewLibrary(t)
	store := library.NewDirStorage(lib.Path)

	for _, arg := range []string{"../outside.md", "../../etc/passwd", "Books/../../up.md"} {
		_, err := resolveDocument(store, arg)
		if !errors.Is(err, paths.ErrPathOutsideLibrary) {
			t.Errorf("resolveDocument(%q) err = %v, want ErrPathOutsideLibrary", arg, err)
		}
	}
}

func TestRunNewRequiresTitle(t *testing.T) {
	err := runNew(newCmd, []string{"book", "   "})
	if err == nil {
		t.Fatal("blank title should be rejected")
	}
	if !strings.Contains(err.Error(), "title") {
		t.Errorf("err = %v, want a title message", err)
	}
}

func TestPrerunErrorTextMode(t *testing.T) {
	err := prerunError(ErrLibraryNotSpecified, "no library specified")
	if err == nil || err.Error() != "no library specified" {
		t.Errorf("err = %v, want the message back as a plain error", err)
	}
}

func TestTouchesFolderFields(t *testing.T) {
	folderKeys := []string{"type", "author", "categories", "dateAdded"}

	if !touchesFolderFields(folderKeys, []fieldUpdate{{Key: "author", Value: "X"}}) {
		t.Error("author update should touch folder fields")
	}
	if touchesFolderFields(folderKeys, []fieldUpdate{{Key: "status", Value: "read"}, {Key: "pages", Value: "9"}}) {
		t.Error("status/pages update should not touch folder fields")
	}
}
