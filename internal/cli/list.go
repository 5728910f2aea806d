package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/WallySa7/the-library-sub001/internal/index"
	"github.com/WallySa7/the-library-sub001/internal/ui"
)

var (
	listKind   string
	listStatus string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed records",
	Long: `List records from the index built by 'lib scan'.

Examples:
  lib list
  lib list --kind book --status unread
  lib list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := index.Open(getLibraryPath())
	if err != nil {
		return handleError(ErrDatabaseError, err, "Run 'lib scan' first")
	}
	defer db.Close()

	records, err := db.Records(index.Filter{Kind: listKind, Status: listStatus})
	if err != nil {
		return handleError(ErrDatabaseError, err, "")
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{"records": records}, &Meta{Count: len(records)})
		return nil
	}

	if len(records) == 0 {
		fmt.Println(ui.Hint("No records. Run 'lib scan' to index the library."))
		return nil
	}

	display := ui.NewDisplayContext()
	table := ui.NewTable(5, display.TermWidth)
	for _, r := range records {
		table.AddRow(string(r.Kind), r.Title, r.Party(), r.Status, r.Path)
	}
	fmt.Print(table.String())
	fmt.Println(ui.Hint(fmt.Sprintf("%d records", len(records))))
	return nil
}

func init() {
	listCmd.Flags().StringVar(&listKind, "kind", "", "Filter by kind (video, series, book)")
	listCmd.Flags().StringVar(&listStatus, "status", "", "Filter by status")
	rootCmd.AddCommand(listCmd)
}
