package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/WallySa7/the-library-sub001/internal/index"
	"github.com/WallySa7/the-library-sub001/internal/ui"
)

var facetsCmd = &cobra.Command{
	Use:   "facets",
	Short: "Show distinct presenters/authors, categories, and tags",
	Args:  cobra.NoArgs,
	RunE:  runFacets,
}

func runFacets(cmd *cobra.Command, args []string) error {
	db, err := index.Open(getLibraryPath())
	if err != nil {
		return handleError(ErrDatabaseError, err, "Run 'lib scan' first")
	}
	defer db.Close()

	facets, err := db.Facets()
	if err != nil {
		return handleError(ErrDatabaseError, err, "")
	}

	if isJSONOutput() {
		outputSuccess(facets, nil)
		return nil
	}

	printFacet := func(name string, values []string) {
		fmt.Println(ui.Header(name))
		if len(values) == 0 {
			fmt.Println(ui.Hint("  (none)"))
			return
		}
		for _, v := range values {
			fmt.Printf("  %s\n", v)
		}
	}
	printFacet("Presenters & Authors", facets.Parties)
	printFacet("Categories", facets.Categories)
	printFacet("Tags", facets.Tags)
	return nil
}

func init() {
	rootCmd.AddCommand(facetsCmd)
}
