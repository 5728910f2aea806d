package library

import (
	"testing"

	"github.com/WallySa7/the-library-sub001/internal/config"
	"github.com/WallySa7/the-library-sub001/internal/metadata"
	"github.com/WallySa7/the-library-sub001/internal/testutil"
)

// categoryRelocator wires storage, settings, and the folder resolver the
// way a field update does, with a {category}-driven template.
func categoryRelocator(store Storage) *Relocator {
	settings := config.DefaultSettings()
	settings.Kinds["book"].FolderTemplate = "{category}"
	resolver := settings.ResolverFor("book")
	return &Relocator{
		Store:   store,
		Enabled: resolver.Enabled,
		Resolve: func(fields map[string]metadata.Value) string {
			return resolver.Resolve(settings.FolderData("book", fields))
		},
	}
}

func TestCategoryChangeRelocatesDocument(t *testing.T) {
	lib := testutil.NewLibrary(t)
	doc := "---\ntype: book\ntitle: Dune\ncategories: [a, b]\n---\nbody\n"
	lib.WriteDoc("Books/a/dune.md", doc)

	store := NewDirStorage(lib.Path)
	listKeys := map[string]bool{"categories": true}

	before, _, _ := metadata.Decode(doc)
	updated := metadata.UpdateField(doc, "categories",
		metadata.List([]metadata.Value{metadata.String("c")}), listKeys)
	after, _, _ := metadata.Decode(updated)

	if err := store.Write("Books/a/dune.md", updated); err != nil {
		t.Fatalf("Write: %v", err)
	}

	newPath, moved, err := categoryRelocator(store).RelocateIfNeeded(
		"Books/a/dune.md", before.Fields(), after.Fields())
	if err != nil {
		t.Fatalf("RelocateIfNeeded: %v", err)
	}
	if !moved || newPath != "Books/c/dune.md" {
		t.Fatalf("moved=%v path=%q, want Books/c/dune.md", moved, newPath)
	}
	lib.AssertFileNotExists("Books/a/dune.md")
	lib.AssertFileContains("Books/c/dune.md", "categories:\n  - c")
}

func TestRelocationConflictKeepsOriginal(t *testing.T) {
	lib := testutil.NewLibrary(t)
	doc := "---\ntype: book\ntitle: Dune\ncategories: [a]\n---\n"
	lib.WriteDoc("Books/a/dune.md", doc)
	lib.WriteDoc("Books/c/dune.md", "occupant")

	store := NewDirStorage(lib.Path)
	before, _, _ := metadata.Decode(doc)
	updated := metadata.UpdateField(doc, "categories",
		metadata.List([]metadata.Value{metadata.String("c")}), map[string]bool{"categories": true})
	after, _, _ := metadata.Decode(updated)

	newPath, moved, err := categoryRelocator(store).RelocateIfNeeded(
		"Books/a/dune.md", before.Fields(), after.Fields())
	if err != ErrDestinationExists {
		t.Fatalf("err = %v, want ErrDestinationExists", err)
	}
	if moved || newPath != "Books/a/dune.md" {
		t.Errorf("conflict must keep the old path, got %q moved=%v", newPath, moved)
	}
	lib.AssertFileExists("Books/a/dune.md")
	lib.AssertFileContains("Books/c/dune.md", "occupant")
}
