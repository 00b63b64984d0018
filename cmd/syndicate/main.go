// Command syndicate runs the Kowloon syndicate simulation: an HTTP server for
// play, and offline commands for managing saves.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/config"
	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/engine"
	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/entropy"
	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/persistence"
)

// options are the flags shared by every subcommand.
type options struct {
	configPath string
	slot       string
	dbPath     string
}

func main() {
	var opts options

	rootCmd := &cobra.Command{
		Use:          "syndicate",
		Short:        "Kowloon syndicate daily simulation and event engine",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&opts.slot, "slot", "", "save slot (default from config)")
	rootCmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "SQLite database path (default from config)")

	rootCmd.AddCommand(serveCmd(&opts))
	rootCmd.AddCommand(newCmd(&opts))
	rootCmd.AddCommand(statusCmd(&opts))
	rootCmd.AddCommand(advanceCmd(&opts))
	rootCmd.AddCommand(dispatchCmd(&opts))
	rootCmd.AddCommand(exportCmd(&opts))
	rootCmd.AddCommand(importCmd(&opts))
	rootCmd.AddCommand(savesCmd(&opts))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration and installs the default logger.
func setup(opts *options) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	if opts.slot != "" {
		cfg.Storage.Slot = opts.slot
	}
	if opts.dbPath != "" {
		cfg.Storage.SQLitePath = opts.dbPath
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)
	return cfg, nil
}

// openStore opens the configured database.
func openStore(cfg config.Config) (*persistence.DB, *persistence.Store, error) {
	db, err := persistence.Open(cfg.Storage)
	if err != nil {
		return nil, nil, err
	}
	store := persistence.NewStore(db)
	if prev, err := db.GetMeta("last_run_id"); err == nil {
		slog.Debug("previous run", "run_id", prev)
	}
	if err := db.SaveMeta("last_run_id", store.RunID()); err != nil {
		slog.Warn("could not record run id", "error", err)
	}
	return db, store, nil
}

// loadOrNew loads the configured slot, starting a fresh game when the slot is
// empty or was written by a newer build.
func loadOrNew(cfg config.Config, store *persistence.Store) (*engine.Game, error) {
	g, err := store.Load(cfg.Storage.Slot, cfg.Balance, nil)
	switch {
	case err == nil:
		slog.Info("save loaded", "slot", cfg.Storage.Slot, "day", g.Day, "phase", g.Phase)
		return g, nil
	case errors.Is(err, persistence.ErrNoSave):
		slog.Info("no save found, starting a new game", "slot", cfg.Storage.Slot)
	case errors.Is(err, persistence.ErrUnsupportedVersion):
		slog.Warn("save is from a newer version, starting a new game", "slot", cfg.Storage.Slot, "error", err)
	default:
		return nil, err
	}
	return newGame(cfg.Balance), nil
}

// newGame starts a game on the configured seed, drawing one when unset.
func newGame(bal config.Balance) *engine.Game {
	if bal.Seed == 0 {
		bal.Seed = entropy.NewSeed()
	}
	return engine.NewGame(bal, nil)
}
