package library

import (
	"path"

	"github.com/WallySa7/the-library-sub001/internal/metadata"
)

// ResolveFolderFunc resolves the canonical folder for a document from its
// metadata fields.
type ResolveFolderFunc func(fields map[string]metadata.Value) string

// Relocator moves documents whose canonical folder changed.
type Relocator struct {
	// Store performs the actual move.
	Store Storage
	// Resolve computes the canonical folder for a set of fields.
	Resolve ResolveFolderFunc
	// Enabled gates relocation entirely; a disabled relocator never moves.
	Enabled bool
}

// RelocateIfNeeded decides whether a document must move after a field
// update and performs the move.
//
// The updated fields are merged over the prior ones, the canonical folder
// is resolved, and if it differs from the document's current folder the
// file is moved there, keeping its filename. The returned path is where
// the document actually lives afterwards: a failed move (including an
// existing destination) returns the old path with the error, and leaves
// the document untouched.
func (r *Relocator) RelocateIfNeeded(oldPath string, before, after map[string]metadata.Value) (string, bool, error) {
	if !r.Enabled {
		return oldPath, false, nil
	}

	merged := make(map[string]metadata.Value, len(before)+len(after))
	for key, value := range before {
		merged[key] = value
	}
	for key, value := range after {
		merged[key] = value
	}

	newFolder := r.Resolve(merged)
	if newFolder == "" || newFolder == path.Dir(oldPath) {
		return oldPath, false, nil
	}

	newPath := newFolder + "/" + path.Base(oldPath)
	if err := r.Store.Move(oldPath, newPath); err != nil {
		return oldPath, false, err
	}
	return newPath, true, nil
}
