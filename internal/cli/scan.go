package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/WallySa7/the-library-sub001/internal/index"
	"github.com/WallySa7/the-library-sub001/internal/library"
	"github.com/WallySa7/the-library-sub001/internal/scan"
	"github.com/WallySa7/the-library-sub001/internal/ui"
)

var scanRoot string

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the library and rebuild the record index",
	Long: `Walk every document in the library, parse its metadata block, and
rebuild the record index. Documents without a block, or that fail to read,
are reported and skipped; a bad document never aborts the scan.

Examples:
  lib scan
  lib scan --root Books
  lib scan --json`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	start := time.Now()

	settings, err := loadSettings()
	if err != nil {
		return handleError(ErrConfigInvalid, err, "")
	}

	scanner := &scan.Scanner{
		Store:    library.NewDirStorage(getLibraryPath()),
		Settings: settings,
	}
	result, err := scanner.Scan(scanRoot)
	if err != nil {
		return handleError(ErrInternal, err, "")
	}

	var warnings []Warning
	for _, item := range result.Skipped {
		warnings = append(warnings, Warning{Code: WarnSkippedDocument, Message: item.Message, Path: item.Path})
	}
	for _, item := range result.Failed {
		warnings = append(warnings, Warning{Code: WarnSkippedDocument, Message: item.Message, Path: item.Path})
	}

	// Cache the results; a failed cache update degrades to a warning since
	// the scan itself succeeded.
	db, err := index.Open(getLibraryPath())
	if err == nil {
		defer db.Close()
		if err := db.Rebuild(result.Records); err != nil {
			warnings = append(warnings, Warning{Code: WarnIndexUpdateFailed, Message: err.Error()})
		}
	} else {
		warnings = append(warnings, Warning{Code: WarnIndexUpdateFailed, Message: err.Error()})
	}

	elapsed := time.Since(start).Milliseconds()

	if isJSONOutput() {
		outputSuccessWithWarnings(result, warnings, &Meta{Count: len(result.Records), TimeMs: elapsed})
		return nil
	}

	fmt.Println(ui.Successf("Scanned %d documents, indexed %d records", result.Scanned, len(result.Records)))
	if n := len(result.Skipped); n > 0 {
		fmt.Println(ui.Warningf("Skipped %d %s", n, plural(n, "document", "documents")))
		for _, item := range result.Skipped {
			fmt.Printf("  %s %s\n", ui.FilePath(item.Path), ui.Hint(item.Message))
		}
	}
	if n := len(result.Failed); n > 0 {
		fmt.Println(ui.Warningf("Failed %d %s", n, plural(n, "document", "documents")))
		for _, item := range result.Failed {
			fmt.Printf("  %s %s\n", ui.FilePath(item.Path), ui.Hint(item.Message))
		}
	}
	return nil
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}

func init() {
	scanCmd.Flags().StringVar(&scanRoot, "root", "", "Scan only this subfolder")
	rootCmd.AddCommand(scanCmd)
}
