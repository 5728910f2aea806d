// Package config handles global configuration and per-library settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the global configuration, stored as TOML outside any library.
type Config struct {
	// DefaultLibrary is the name of the default library (from Libraries).
	DefaultLibrary string `toml:"default_library"`

	// Libraries maps library names to paths.
	Libraries map[string]string `toml:"libraries"`
}

// GetLibraryPath returns the path for a named library.
// If name is empty, the default library is used.
func (c *Config) GetLibraryPath(name string) (string, error) {
	if name == "" {
		name = c.DefaultLibrary
	}
	if name == "" {
		return "", fmt.Errorf("no default library configured")
	}
	if c.Libraries != nil {
		if path, ok := c.Libraries[name]; ok {
			return path, nil
		}
	}
	return "", fmt.Errorf("library '%s' not found in config", name)
}

// Load loads the configuration from the default location.
// Returns an empty config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// Save writes the configuration to a path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(c)
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "lib", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "lib", "config.toml")
}
