package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/WallySa7/the-library-sub001/internal/library"
	"github.com/WallySa7/the-library-sub001/internal/metadata"
	"github.com/WallySa7/the-library-sub001/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <document>",
	Short: "Show a document's metadata and rendered body",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

// ShowResult is the JSON payload for show.
type ShowResult struct {
	Path   string                 `json:"path"`
	Fields map[string]interface{} `json:"fields"`
	Body   string                 `json:"body"`
}

func runShow(cmd *cobra.Command, args []string) error {
	store := library.NewDirStorage(getLibraryPath())

	relPath, err := resolveDocument(store, args[0])
	if err != nil {
		return handleDocumentError(err)
	}

	content, err := store.Read(relPath)
	if err != nil {
		return handleError(ErrFileReadError, err, "")
	}

	block, body, ok := metadata.Decode(content)
	if !ok {
		body = content
		block = metadata.NewBlock()
	}

	if isJSONOutput() {
		fields := make(map[string]interface{}, block.Len())
		for _, key := range block.Keys() {
			v, _ := block.Get(key)
			fields[key] = v.Raw()
		}
		outputSuccess(ShowResult{Path: relPath, Fields: fields, Body: body}, nil)
		return nil
	}

	fmt.Println(ui.FilePath(relPath))
	for _, key := range block.Keys() {
		v, _ := block.Get(key)
		fmt.Printf("  %s %s\n", ui.Hint(key+":"), v.Text())
	}

	display := ui.NewDisplayContext()
	rendered, err := ui.RenderMarkdown(body, display.TermWidth)
	if err != nil {
		// Fall back to the raw body if rendering fails.
		fmt.Println(body)
		return nil
	}
	fmt.Print(rendered)
	return nil
}

func init() {
	rootCmd.AddCommand(showCmd)
}
