// Command bmsync synchronizes bookmarks between two storage backends
// according to a TOML configuration file, one pair at a time.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stefanboere/nc-bookmark-sync/pkg/bookmarksync"
	"github.com/stefanboere/nc-bookmark-sync/pkg/bookmarksync/bmerrors"
	"github.com/stefanboere/nc-bookmark-sync/pkg/bookmarksync/storage/file"
	"github.com/stefanboere/nc-bookmark-sync/pkg/bookmarksync/storage/nextcloud"
	"github.com/stefanboere/nc-bookmark-sync/pkg/configuration"
	"github.com/stefanboere/nc-bookmark-sync/pkg/logging"
)

func rootMain(command *cobra.Command, arguments []string) error {
	configPath := rootConfiguration.configPath
	if len(arguments) > 0 {
		configPath = arguments[0]
	}
	if configPath == "" {
		path, err := configuration.DefaultConfigPath()
		if err != nil {
			return fmt.Errorf("unable to determine default configuration path: %w", err)
		}
		configPath = path
	}

	level, ok := logging.NameToLevel(rootConfiguration.logLevel)
	if !ok {
		return fmt.Errorf("invalid log level: %q", rootConfiguration.logLevel)
	}
	logger := logging.NewLogger(level)

	config, err := configuration.Load(configPath)
	if err != nil {
		return fmt.Errorf("unable to load configuration from %s: %w", configPath, err)
	}

	ctx := context.Background()
	failures := 0
	for name, pairConfig := range config.Pair {
		pairLogger := logger.Sublogger(name)

		pair, err := buildPair(ctx, name, config, pairConfig, logger)
		if err != nil {
			pairLogger.Errorf("unable to prepare pair: %v", err)
			failures++
			continue
		}

		if err := pair.Run(ctx); err != nil {
			pairLogger.Errorf("sync failed: %v", err)
			failures++
			continue
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d pair(s) failed to synchronize", failures)
	}
	return nil
}

// buildPair instantiates both storages for a pair and wires them into a
// bookmarksync.Pair ready to run.
func buildPair(
	ctx context.Context,
	name string,
	config *configuration.Config,
	pairConfig configuration.PairConfig,
	logger *logging.Logger,
) (*bookmarksync.Pair, error) {
	a, err := buildStorage(ctx, "a", pairConfig.A, config)
	if err != nil {
		return nil, err
	}
	b, err := buildStorage(ctx, "b", pairConfig.B, config)
	if err != nil {
		return nil, err
	}

	return &bookmarksync.Pair{
		Name:               name,
		A:                  a,
		B:                  b,
		StatusPath:         config.General.StatusPath,
		ConflictResolution: pairConfig.ConflictResolution,
		Logger:             logger,
	}, nil
}

func buildStorage(ctx context.Context, side, name string, config *configuration.Config) (bookmarksync.Storage, error) {
	storageConfig, ok := config.Storage[name]
	if !ok {
		return nil, &bmerrors.StorageNotFoundError{Side: side, Name: name}
	}

	switch storageConfig.Type {
	case configuration.StorageTypeFile:
		if storageConfig.Path == "" {
			return nil, &bmerrors.MissingConfigError{Field: "storage." + name + ".path"}
		}
		return &file.Storage{Path: storageConfig.Path}, nil
	case configuration.StorageTypeNextcloud:
		if storageConfig.URL == "" {
			return nil, &bmerrors.MissingConfigError{Field: "storage." + name + ".url"}
		}
		username, err := resolveSecret(ctx, storageConfig.Username)
		if err != nil {
			return nil, fmt.Errorf("resolving username for storage %q: %w", name, err)
		}
		password, err := resolveSecret(ctx, storageConfig.Password)
		if err != nil {
			return nil, fmt.Errorf("resolving password for storage %q: %w", name, err)
		}
		return &nextcloud.Storage{BaseURL: storageConfig.URL, Username: username, Password: password}, nil
	default:
		return nil, fmt.Errorf("storage %q has unsupported type", name)
	}
}

func resolveSecret(ctx context.Context, command *configuration.Command) (string, error) {
	if command == nil {
		return "", nil
	}
	return command.Value(ctx)
}

var rootCommand = &cobra.Command{
	Use:   "bmsync [configuration file]",
	Short: "bmsync synchronizes bookmarks between two storage backends",
	RunE:  rootMain,
}

var rootConfiguration struct {
	// configPath overrides the default configuration file location.
	configPath string
	// logLevel selects verbosity: disabled, error, warn, info, debug, trace.
	logLevel string
}

func init() {
	flags := rootCommand.Flags()
	flags.StringVarP(&rootConfiguration.configPath, "config", "c", "", "Path to the configuration file")
	flags.StringVarP(&rootConfiguration.logLevel, "log-level", "l", "info", "Log level (disabled|error|warn|info|debug|trace)")

	cobra.EnableCommandSorting = false
	cobra.MousetrapHelpText = ""
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}
