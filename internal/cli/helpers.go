package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/WallySa7/the-library-sub001/internal/config"
	"github.com/WallySa7/the-library-sub001/internal/library"
	"github.com/WallySa7/the-library-sub001/internal/metadata"
	"github.com/WallySa7/the-library-sub001/internal/paths"
)

// loadSettings loads the per-library settings for the resolved library.
func loadSettings() (*config.Settings, error) {
	return config.LoadSettings(getLibraryPath())
}

// fieldUpdate is one parsed field=value argument, in argument order.
type fieldUpdate struct {
	Key   string
	Value string
}

// parseFieldArgs parses field=value arguments, preserving order.
func parseFieldArgs(args []string) ([]fieldUpdate, error) {
	updates := make([]fieldUpdate, 0, len(args))
	for _, arg := range args {
		parts := strings.SplitN(arg, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf("invalid field format: %s", arg)
		}
		updates = append(updates, fieldUpdate{Key: parts[0], Value: parts[1]})
	}
	return updates, nil
}

// parseUpdateValue converts a raw CLI value into a metadata Value.
// List-typed keys accept "[a, b]" or comma-separated values; everything
// else goes through scalar coercion.
func parseUpdateValue(raw string, isListKey bool) metadata.Value {
	if isListKey {
		inner := raw
		if strings.HasPrefix(inner, "[") && strings.HasSuffix(inner, "]") {
			inner = inner[1 : len(inner)-1]
		}
		var items []metadata.Value
		for _, part := range strings.Split(inner, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				items = append(items, metadata.ParseScalar(part))
			}
		}
		return metadata.List(items)
	}
	return metadata.ParseScalar(raw)
}

// resolveDocument resolves a document argument to a library-relative path,
// trying the literal path and the common document extensions. Arguments
// that escape the library root are rejected before any filesystem access.
func resolveDocument(st *library.DirStorage, arg string) (string, error) {
	rel := filepath.ToSlash(strings.TrimPrefix(arg, "./"))

	if err := paths.ValidateWithinLibrary(st.Root(), st.Abs(rel)); err != nil {
		return "", fmt.Errorf("%s: %w", arg, err)
	}

	candidates := []string{rel}
	if !strings.HasSuffix(rel, ".md") && !strings.HasSuffix(rel, ".txt") {
		candidates = append(candidates, rel+".md", rel+".txt")
	}
	for _, candidate := range candidates {
		if st.Exists(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("document not found: %s", arg)
}

// handleDocumentError maps a resolveDocument failure to the right error
// code for the active output mode.
func handleDocumentError(err error) error {
	if errors.Is(err, paths.ErrPathOutsideLibrary) {
		return handleErrorMsg(ErrFileOutsideLibrary, err.Error(),
			"Document paths must stay inside the library")
	}
	return handleError(ErrFileNotFound, err, "Check the document path and try again")
}
