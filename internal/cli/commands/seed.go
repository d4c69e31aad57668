package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/quarterdeck-labs/quarterdeck/internal/cli/config"
	"github.com/quarterdeck-labs/quarterdeck/internal/store"
	"github.com/spf13/cobra"
)

// SeedCmdOptions holds options for the seed command.
type SeedCmdOptions struct {
	Players int
	Objects int
	Reset   bool
}

// NewSeedCommand creates the seed command.
func NewSeedCommand() *cobra.Command {
	opts := &SeedCmdOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the console database with sample data",
		Long: `Populate the local console database with deterministic sample players
and storage objects. Useful for trying out the web UI and CLI without
a live backend.

Seeding is idempotent for a given player and object count: the same
counts always produce the same records.`,
		Example: `  # Seed defaults (50 players, 120 storage objects)
  quarterdeck seed

  # Start from a clean slate
  quarterdeck seed --reset

  # A bigger data set
  quarterdeck seed --players 500 --objects 2000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Players, "players", 50, "Number of players to create")
	cmd.Flags().IntVar(&opts.Objects, "objects", 120, "Number of storage objects to create")
	cmd.Flags().BoolVar(&opts.Reset, "reset", false, "Delete existing data before seeding")

	return cmd
}

func runSeed(cmd *cobra.Command, opts *SeedCmdOptions) error {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	if cfg.Demo {
		return fmt.Errorf("seed writes to the console database and is not available in demo mode")
	}

	// Ensure data directory exists
	dataDir := filepath.Dir(cfg.DataPath)
	if dataDir != "." && dataDir != "" {
		if err := os.MkdirAll(dataDir, 0750); err != nil {
			return err
		}
	}

	st := store.NewSQLiteStore()
	if err := st.Open(cfg.DataPath); err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = st.Close() }()

	if err := st.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Debug("seeding console database",
		"path", cfg.DataPath, "players", opts.Players, "objects", opts.Objects, "reset", opts.Reset)

	if err := st.Seed(cmd.Context(), store.SeedOptions{
		Players: opts.Players,
		Objects: opts.Objects,
		Reset:   opts.Reset,
	}); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d players and %d storage objects into %s\n",
		opts.Players, opts.Objects, cfg.DataPath)
	return nil
}
