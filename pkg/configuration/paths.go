package configuration

import (
	"fmt"
	"os"
	"path/filepath"
)

// defaultConfigName is the config file bmsync looks for under the user's
// config directory when no path is given on the command line.
const defaultConfigName = "bmsync/config.toml"

// DefaultConfigPath returns the default configuration file path: under
// $XDG_CONFIG_HOME if set, otherwise under the user's home directory's
// .config subdirectory. It does not verify that the file exists.
func DefaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, defaultConfigName), nil
	}

	homeDirectoryPath, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("unable to compute path to home directory: %w", err)
	}

	return filepath.Join(homeDirectoryPath, ".config", defaultConfigName), nil
}
