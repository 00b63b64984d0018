package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/api"
	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/engine"
	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/notify"
	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/persistence"
)

func serveCmd(opts *options) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the game over HTTP, autosaving every day",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := setup(opts)
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.Server.Port = port
			}
			db, store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			g, err := loadOrNew(cfg, store)
			if err != nil {
				return err
			}

			hub := notify.NewHub()
			ctl := engine.NewController(g, hub)
			slot := cfg.Storage.Slot
			ctl.OnDay = func(g *engine.Game, report engine.DailyReport) {
				if err := store.Save(slot, g); err != nil {
					slog.Error("autosave failed", "day", report.Day, "error", err)
				}
				if err := store.Journal(g); err != nil {
					slog.Error("journal failed", "day", report.Day, "error", err)
				}
			}
			ctl.OnResolve = func(g *engine.Game, _ *engine.EventResolution) {
				if err := store.Journal(g); err != nil {
					slog.Error("journal failed", "error", err)
				}
			}

			srv := &api.Server{
				Ctl:         ctl,
				Hub:         hub,
				DB:          db,
				Port:        cfg.Server.Port,
				AdminKey:    cfg.Server.AdminKey,
				CommandRate: cfg.Server.CommandRate,
			}
			srv.Start()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			sig := <-sigCh
			slog.Info("received signal, shutting down", "signal", sig)

			final, err := ctl.View()
			if err != nil {
				return err
			}
			if err := store.Save(slot, final); err != nil {
				return fmt.Errorf("final save: %w", err)
			}
			return store.Journal(final)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP server port (default from config)")
	return cmd
}

func newCmd(opts *options) *cobra.Command {
	var (
		force bool
		seed  int64
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new game in the save slot",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := setup(opts)
			if err != nil {
				return err
			}
			if c.Flags().Changed("seed") {
				cfg.Balance.Seed = seed
			}
			db, store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if _, err := db.GetSave(cfg.Storage.Slot); err == nil && !force {
				return fmt.Errorf("slot %q already holds a save (use --force to overwrite)", cfg.Storage.Slot)
			} else if err != nil && !errors.Is(err, persistence.ErrNoSave) {
				return err
			}
			g := newGame(cfg.Balance)
			if err := store.Save(cfg.Storage.Slot, g); err != nil {
				return err
			}
			return printJSON(statusOf(g))
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing save")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (default from config, 0 for a fresh one)")
	return cmd
}

func statusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the saved game's clock and resources",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := setup(opts)
			if err != nil {
				return err
			}
			db, store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			g, err := store.Load(cfg.Storage.Slot, cfg.Balance, nil)
			if err != nil {
				return err
			}
			return printJSON(statusOf(g))
		},
	}
}

func advanceCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "advance [phases]",
		Short: "Advance the saved game by a number of phases (default 1)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			n := 1
			if len(args) == 1 {
				v, err := strconv.Atoi(args[0])
				if err != nil || v < 1 {
					return fmt.Errorf("phases must be a positive integer, got %q", args[0])
				}
				n = v
			}
			return withController(opts, func(ctl *engine.Controller) error {
				for i := 0; i < n; i++ {
					res := ctl.Dispatch(engine.Command{Action: "advance_phase"})
					if err := printJSON(res.Data); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func dispatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch [command-json]",
		Short: `Run one command against the saved game, e.g. '{"action":"share_tea","args":{"officer_id":"off-1"}}'`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var cmd engine.Command
			if err := json.Unmarshal([]byte(args[0]), &cmd); err != nil {
				return fmt.Errorf("parse command: %w", err)
			}
			return withController(opts, func(ctl *engine.Controller) error {
				res := ctl.Dispatch(cmd)
				if err := printJSON(res); err != nil {
					return err
				}
				if !res.OK {
					return fmt.Errorf("rejected: %s", res.Reason)
				}
				return nil
			})
		},
	}
}

func exportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the saved game to a compressed snapshot file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := setup(opts)
			if err != nil {
				return err
			}
			db, store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			g, err := store.Load(cfg.Storage.Slot, cfg.Balance, nil)
			if err != nil {
				return err
			}
			doc, err := persistence.Encode(g, store.RunID())
			if err != nil {
				return err
			}
			if err := persistence.WriteSnapshot(args[0], doc); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			slog.Info("snapshot exported", "file", args[0], "bytes", len(doc))
			return nil
		},
	}
}

func importCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Load a snapshot file into the save slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := setup(opts)
			if err != nil {
				return err
			}
			db, store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			doc, err := persistence.ReadSnapshot(args[0])
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			g, err := persistence.Decode(doc, cfg.Balance, nil)
			if err != nil {
				return err
			}
			if err := store.Save(cfg.Storage.Slot, g); err != nil {
				return err
			}
			return printJSON(statusOf(g))
		},
	}
}

func savesCmd(opts *options) *cobra.Command {
	var remove string

	cmd := &cobra.Command{
		Use:   "saves",
		Short: "List save slots, or delete one with --delete",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := setup(opts)
			if err != nil {
				return err
			}
			db, _, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if remove != "" {
				if err := db.DeleteSave(remove); err != nil {
					return fmt.Errorf("delete %s: %w", remove, err)
				}
				slog.Info("save deleted", "slot", remove)
				return nil
			}
			rows, err := db.ListSaves()
			if err != nil {
				return err
			}
			out := make([]map[string]any, 0, len(rows))
			for _, r := range rows {
				out = append(out, map[string]any{
					"slot":           r.Slot,
					"schema_version": r.SchemaVersion,
					"saved_at":       r.SavedAt,
				})
			}
			return printJSON(out)
		},
	}

	cmd.Flags().StringVar(&remove, "delete", "", "slot to delete")
	return cmd
}

// withController loads the slot, runs fn against a controller and saves the
// result.
func withController(opts *options, fn func(*engine.Controller) error) error {
	cfg, err := setup(opts)
	if err != nil {
		return err
	}
	db, store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	g, err := loadOrNew(cfg, store)
	if err != nil {
		return err
	}
	ctl := engine.NewController(g, nil)
	if err := fn(ctl); err != nil {
		return err
	}
	final, err := ctl.View()
	if err != nil {
		return err
	}
	if err := store.Save(cfg.Storage.Slot, final); err != nil {
		return err
	}
	return store.Journal(final)
}

func statusOf(g *engine.Game) map[string]any {
	return map[string]any{
		"clock":          g.ClockLabel(),
		"resources":      g.Resources,
		"officers":       len(g.Officers),
		"soldiers":       len(g.Soldiers),
		"buildings":      len(g.Buildings),
		"active_event":   g.ActiveEvent,
		"pending_events": len(g.PendingEvents),
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
