package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/WallySa7/the-library-sub001/internal/dates"
	"github.com/WallySa7/the-library-sub001/internal/library"
	"github.com/WallySa7/the-library-sub001/internal/metadata"
	"github.com/WallySa7/the-library-sub001/internal/model"
	"github.com/WallySa7/the-library-sub001/internal/paths"
	"github.com/WallySa7/the-library-sub001/internal/ui"
)

var newCmd = &cobra.Command{
	Use:   "new <kind> <title> [field=value...]",
	Short: "Create a new library document",
	Long: `Create a document of the given kind (video, series, book) with a
synthesized metadata block. The target folder is resolved from the kind's
folder template; the filename comes from the sanitized title.

Creation fails if a document already exists at the target path; nothing is
overwritten.

Examples:
  lib new book "Dune" author="Frank Herbert" pages=412
  lib new video "Intro to Go" presenter="Jane Doe" duration=19:30
  lib new book "كتاب" author=X --json`,
	Args: cobra.MinimumNArgs(2),
	RunE: runNew,
}

// NewResult is the JSON payload for a successful create.
type NewResult struct {
	Path string `json:"path"`
	Kind string `json:"kind"`
}

func runNew(cmd *cobra.Command, args []string) error {
	kind := args[0]
	title := args[1]

	if !model.Kind(kind).IsKnown() {
		return handleErrorMsg(ErrUnknownKind,
			fmt.Sprintf("unknown kind %q", kind),
			"Valid kinds: video, series, book")
	}
	if strings.TrimSpace(title) == "" {
		return handleErrorMsg(ErrMissingArgument,
			"title is required", "Usage: lib new <kind> <title> [field=value...]")
	}

	settings, err := loadSettings()
	if err != nil {
		return handleError(ErrConfigInvalid, err, "")
	}
	ks := settings.Kind(kind)
	if ks == nil {
		return handleErrorMsg(ErrUnknownKind,
			fmt.Sprintf("kind %q has no settings", kind), "")
	}

	extras, err := parseFieldArgs(args[2:])
	if err != nil {
		return handleErrorMsg(ErrInvalidInput, err.Error(), "Use format: field=value")
	}

	store := library.NewDirStorage(getLibraryPath())
	listKeys := settings.ListKeySet()
	keys := settings.Keys

	// Synthesize the block field by field so ordering is deterministic.
	content := metadata.Delimiter + "\n" + metadata.Delimiter + "\n\n# " + title + "\n"
	put := func(key string, v metadata.Value) {
		content = metadata.UpdateField(content, key, v, listKeys)
	}

	put(keys.Kind, metadata.String(kind))
	put(keys.Title, metadata.String(title))
	partyKey := keys.Presenter
	if kind == string(model.KindBook) {
		partyKey = keys.Author
	}
	put(partyKey, metadata.String(ks.DefaultParty))
	put(keys.Status, metadata.String(ks.DefaultStatus))
	put(keys.DateAdded, metadata.String(dates.Format(time.Now())))

	for _, extra := range extras {
		put(extra.Key, parseUpdateValue(extra.Value, listKeys[extra.Key]))
	}

	block, _, _ := metadata.Decode(content)
	resolver := settings.ResolverFor(kind)
	folder := resolver.Resolve(settings.FolderData(kind, block.Fields()))

	filename := paths.Sanitize(title, settings.MaxFilenameLength) + ".md"
	relPath := folder + "/" + filename

	if err := paths.ValidateWithinLibrary(store.Root(), store.Abs(relPath)); err != nil {
		return handleErrorMsg(ErrFileOutsideLibrary,
			fmt.Sprintf("%s: %v", relPath, err), "")
	}

	// Check immediately before creating; an existing document is an
	// expected conflict, not a fault.
	if store.Exists(relPath) {
		return handleErrorMsg(ErrFileExists,
			fmt.Sprintf("document already exists: %s", relPath),
			"Choose a different title or edit the existing document")
	}

	if err := store.CreateDir(folder); err != nil {
		return handleError(ErrFileWriteError, err, "")
	}
	if err := store.Write(relPath, content); err != nil {
		return handleError(ErrFileWriteError, err, "")
	}

	if isJSONOutput() {
		outputSuccess(NewResult{Path: relPath, Kind: kind}, nil)
		return nil
	}
	fmt.Println(ui.Successf("Created %s", ui.FilePath(relPath)))
	return nil
}

func init() {
	rootCmd.AddCommand(newCmd)
}
