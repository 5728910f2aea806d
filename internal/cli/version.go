package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/WallySa7/the-library-sub001/internal/buildinfo"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		version := buildinfo.Version
		if version == "" {
			version = "dev"
		}
		if isJSONOutput() {
			outputSuccess(map[string]string{
				"version": version,
				"commit":  buildinfo.Commit,
				"date":    buildinfo.Date,
			}, nil)
			return nil
		}
		fmt.Printf("lib %s\n", version)
		if buildinfo.Commit != "" {
			fmt.Printf("  commit: %s\n", buildinfo.Commit)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
