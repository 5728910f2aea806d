package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/WallySa7/the-library-sub001/internal/config"
	"github.com/WallySa7/the-library-sub001/internal/ui"
)

var initName string

var initCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Create a new library",
	Long: `Create a library directory with default settings and the kind root
folders. With --name, the library is also registered in the global config
(and becomes the default if none is set).

Examples:
  lib init ~/library
  lib init ~/library --name main`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	libraryPath, err := filepath.Abs(args[0])
	if err != nil {
		return handleError(ErrInvalidInput, err, "")
	}

	settings := config.DefaultSettings()
	if err := os.MkdirAll(libraryPath, 0755); err != nil {
		return handleError(ErrFileWriteError, err, "")
	}
	for _, ks := range settings.Kinds {
		if err := os.MkdirAll(filepath.Join(libraryPath, ks.Root), 0755); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}
	}
	if err := settings.Save(libraryPath); err != nil {
		return handleError(ErrFileWriteError, err, "")
	}

	registered := false
	if initName != "" {
		path := config.DefaultPath()
		if configPathFlag != "" {
			path = configPathFlag
		}
		globalCfg, err := config.Load()
		if err != nil {
			globalCfg = &config.Config{}
		}
		if globalCfg.Libraries == nil {
			globalCfg.Libraries = make(map[string]string)
		}
		globalCfg.Libraries[initName] = libraryPath
		if globalCfg.DefaultLibrary == "" {
			globalCfg.DefaultLibrary = initName
		}
		if err := globalCfg.Save(path); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}
		registered = true
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{
			"path":       libraryPath,
			"registered": registered,
		}, nil)
		return nil
	}

	fmt.Println(ui.Successf("Created library at %s", ui.FilePath(libraryPath)))
	if !registered {
		fmt.Println(ui.Hint("Use --name to register it in the global config"))
	}
	return nil
}

func init() {
	initCmd.Flags().StringVar(&initName, "name", "", "Register the library under this name")
	rootCmd.AddCommand(initCmd)
}
