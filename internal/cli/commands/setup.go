package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/quarterdeck-labs/quarterdeck/internal/cli/config"
	"github.com/quarterdeck-labs/quarterdeck/internal/console"
	"github.com/quarterdeck-labs/quarterdeck/internal/console/fixtures"
	"github.com/quarterdeck-labs/quarterdeck/internal/store"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
	Source console.Source
}

// NewCommandContext opens the configured data source and bundles it with
// the loaded config and logger.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	source, cleanup, err := openSource(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	return &CommandContext{
		Cfg:    cfg,
		Logger: logger,
		Source: source,
	}, cleanup, nil
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	return &config.Config{
		DataPath:     getEnvOrDefault("QUARTERDECK_DATA_PATH", config.DefaultDataPath),
		Demo:         os.Getenv("QUARTERDECK_DEMO") == "true",
		FixturesDir:  os.Getenv("QUARTERDECK_FIXTURES_DIR"),
		Verbose:      os.Getenv("QUARTERDECK_VERBOSE") == "true",
		OutputFormat: getEnvOrDefault("QUARTERDECK_OUTPUT", config.DefaultOutput),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// openSource opens the data source selected by the config: the fixtures
// provider in demo mode, the SQLite store otherwise.
func openSource(cfg *config.Config, logger *slog.Logger) (console.Source, func(), error) {
	if cfg.Demo {
		provider, err := fixtures.New(cfg.FixturesDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load demo fixtures: %w", err)
		}
		logger.Debug("using demo fixtures", "dir", cfg.FixturesDir)
		return provider, func() {}, nil
	}

	// Ensure data directory exists
	dataDir := filepath.Dir(cfg.DataPath)
	if dataDir != "." && dataDir != "" {
		if err := os.MkdirAll(dataDir, 0750); err != nil {
			return nil, nil, err
		}
	}

	st := store.NewSQLiteStore()
	if err := st.Open(cfg.DataPath); err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := st.Migrate(); err != nil {
		_ = st.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Debug("opened console database", "path", cfg.DataPath)

	cleanup := func() { _ = st.Close() }
	return st, cleanup, nil
}
