package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/WallySa7/the-library-sub001/internal/config"
	"github.com/WallySa7/the-library-sub001/internal/library"
	"github.com/WallySa7/the-library-sub001/internal/metadata"
	"github.com/WallySa7/the-library-sub001/internal/ui"
)

var setCmd = &cobra.Command{
	Use:   "set <document> <field=value>...",
	Short: "Set metadata fields on a document",
	Long: `Set one or more metadata fields on an existing document.

Only the lines belonging to each updated field are rewritten; the rest of
the document is untouched. When an update changes a field that feeds the
folder template (presenter, author, categories, type, date added) and
folder rules are enabled for the document's kind, the document is moved to
its new canonical folder.

Examples:
  lib set Books/fiction/dune.md status=read
  lib set Videos/lecture-1 presenter="New Presenter"
  lib set Books/dune.md categories=fiction,classics --json`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSet,
}

// SetResult is the JSON payload for a successful set.
type SetResult struct {
	Path          string            `json:"path"`
	UpdatedFields map[string]string `json:"updated_fields"`
	Moved         bool              `json:"moved,omitempty"`
	MovedFrom     string            `json:"moved_from,omitempty"`
}

func runSet(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return handleError(ErrConfigInvalid, err, "")
	}
	store := library.NewDirStorage(getLibraryPath())

	updates, err := parseFieldArgs(args[1:])
	if err != nil {
		return handleErrorMsg(ErrInvalidInput, err.Error(), "Use format: field=value")
	}

	relPath, err := resolveDocument(store, args[0])
	if err != nil {
		return handleDocumentError(err)
	}

	content, err := store.Read(relPath)
	if err != nil {
		return handleError(ErrFileReadError, err, "")
	}

	block, _, ok := metadata.Decode(content)
	if !ok {
		return handleErrorMsg(ErrNoMetadataBlock,
			"document has no metadata block",
			"The document must open with a '---' delimited block to set fields")
	}
	before := block.Fields()

	listKeys := settings.ListKeySet()
	kind := fieldText(before, settings.Keys.Kind)

	var warnings []Warning
	updated := make(map[string]string, len(updates))
	for _, update := range updates {
		value := parseUpdateValue(update.Value, listKeys[update.Key])
		if update.Key == settings.Keys.Status {
			warnings = append(warnings, statusWarnings(settings.Kind(kind), update.Value)...)
		}
		content = metadata.UpdateField(content, update.Key, value, listKeys)
		updated[update.Key] = update.Value
	}

	newBlock, _, _ := metadata.Decode(content)
	after := newBlock.Fields()

	if err := store.Write(relPath, content); err != nil {
		return handleError(ErrFileWriteError, err, "")
	}

	// The kind itself may have been updated; relocate under the new one.
	kind = fieldText(after, settings.Keys.Kind)

	finalPath := relPath
	moved := false
	if touchesFolderFields(settings.FolderFeedingKeys(kind), updates) {
		resolver := settings.ResolverFor(kind)
		relocator := &library.Relocator{
			Store:   store,
			Enabled: resolver.Enabled,
			Resolve: func(fields map[string]metadata.Value) string {
				return resolver.Resolve(settings.FolderData(kind, fields))
			},
		}
		var moveErr error
		finalPath, moved, moveErr = relocator.RelocateIfNeeded(relPath, before, after)
		if moveErr != nil {
			warnings = append(warnings, Warning{
				Code:    WarnMoveFailed,
				Message: fmt.Sprintf("could not move to new folder: %v", moveErr),
				Path:    relPath,
			})
		}
	}

	if isJSONOutput() {
		result := SetResult{Path: finalPath, UpdatedFields: updated, Moved: moved}
		if moved {
			result.MovedFrom = relPath
		}
		outputSuccessWithWarnings(result, warnings, nil)
		return nil
	}

	fmt.Printf("Updated %s:\n", ui.FilePath(finalPath))
	keys := make([]string, 0, len(updated))
	for key := range updated {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("  %s = %s\n", key, updated[key])
	}
	if moved {
		fmt.Println(ui.Successf("Moved %s → %s", relPath, finalPath))
	}
	for _, warning := range warnings {
		fmt.Println(ui.Warning(warning.Message))
	}
	return nil
}

// fieldText returns a field's plain-text value, or "".
func fieldText(fields map[string]metadata.Value, key string) string {
	if v, ok := fields[key]; ok {
		return v.Text()
	}
	return ""
}

// touchesFolderFields reports whether any update hits a folder-feeding key.
func touchesFolderFields(folderKeys []string, updates []fieldUpdate) bool {
	for _, update := range updates {
		for _, key := range folderKeys {
			if update.Key == key {
				return true
			}
		}
	}
	return false
}

// statusWarnings warns when a status value is outside the configured
// option set. Statuses are free strings, so this never blocks the update.
func statusWarnings(ks *config.KindSettings, value string) []Warning {
	if ks == nil || len(ks.Statuses) == 0 {
		return nil
	}
	for _, status := range ks.Statuses {
		if status == value {
			return nil
		}
	}
	return []Warning{{
		Code:    WarnInvalidStatus,
		Message: fmt.Sprintf("status %q is not one of the configured options", value),
	}}
}

func init() {
	rootCmd.AddCommand(setCmd)
}
