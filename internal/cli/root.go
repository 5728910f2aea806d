package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/WallySa7/the-library-sub001/internal/config"
)

var (
	// Global flags
	libraryName     string // Named library from config
	libraryPathFlag string // Explicit path
	configPathFlag  string

	// Resolved values
	resolvedLibraryPath string
	cfg                 *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "lib",
	Short: "lib - a plain-text content library",
	Long: `lib manages a library of plain-text documents describing videos,
series, and books. Each document carries a metadata block; lib keeps the
blocks tidy and the files in their canonical folders.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that don't need a library
		switch cmd.Name() {
		case "init", "version", "help", "completion":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		var err error
		if configPathFlag != "" {
			cfg, err = config.LoadFrom(configPathFlag)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cfg == nil {
			cfg = &config.Config{}
		}

		if libraryPathFlag != "" {
			resolvedLibraryPath = libraryPathFlag
		} else {
			resolvedLibraryPath, err = cfg.GetLibraryPath(libraryName)
			if err != nil {
				return prerunError(ErrLibraryNotSpecified, fmt.Sprintf(`no library specified

Either:
  1. Use --library <name> (from config)
  2. Use --library-path /path/to/library
  3. Set default_library in %s
  4. Run 'lib init /path/to/new/library --name <name>' to create one`, config.DefaultPath()))
			}
		}

		if _, err := os.Stat(resolvedLibraryPath); os.IsNotExist(err) {
			return prerunError(ErrLibraryNotFound,
				fmt.Sprintf("library not found: %s\n\nRun 'lib init %s' to create it", resolvedLibraryPath, resolvedLibraryPath))
		}
		return nil
	},
}

// prerunError reports a library-resolution failure. In JSON mode the
// structured envelope goes to stdout first, so scripts get the stable code
// even though the returned error still stops the command.
func prerunError(code, message string) error {
	if jsonOutput {
		outputError(code, message, nil, "")
	}
	return fmt.Errorf("%s", message)
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	registerGlobalFlags(rootCmd.PersistentFlags())
}

// registerGlobalFlags wires the flags shared by every command.
func registerGlobalFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&libraryName, "library", "l", "", "Named library from config")
	flags.StringVar(&libraryPathFlag, "library-path", "", "Explicit path to library directory")
	flags.StringVar(&configPathFlag, "config", "", "Path to config file")
	flags.BoolVar(&jsonOutput, "json", false, "Output in JSON format (for script use)")
}

// getLibraryPath returns the resolved library path.
func getLibraryPath() string {
	return resolvedLibraryPath
}
