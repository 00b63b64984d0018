package main

import (
	"path/filepath"
	"testing"

	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.Dialect = "sqlite"
	cfg.Storage.SQLitePath = filepath.Join(t.TempDir(), "syndicate.db")
	cfg.Storage.Slot = "autosave"
	return cfg
}

func TestLoadOrNewStartsFresh(t *testing.T) {
	cfg := testConfig(t)
	db, store, err := openStore(cfg)
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	defer db.Close()

	if id, err := db.GetMeta("last_run_id"); err != nil || id != store.RunID() {
		t.Fatalf("last_run_id = %q, %v", id, err)
	}
	g, err := loadOrNew(cfg, store)
	if err != nil {
		t.Fatal(err)
	}
	if g.Day != 1 || g.Phase != "morning" {
		t.Fatalf("fresh game at %s", g.ClockLabel())
	}
}

func TestLoadOrNewResumesSave(t *testing.T) {
	cfg := testConfig(t)
	db, store, err := openStore(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	g, _ := loadOrNew(cfg, store)
	for rangeIdx := 0; rangeIdx < 5; rangeIdx++ {
		g.AdvancePhase()
	}
	if err := store.Save(cfg.Storage.Slot, g); err != nil {
		t.Fatal(err)
	}
	again, err := loadOrNew(cfg, store)
	if err != nil {
		t.Fatal(err)
	}
	if again.Day != 2 || again.Phase != g.Phase {
		t.Fatalf("resumed at %s, saved at %s", again.ClockLabel(), g.ClockLabel())
	}
}

func TestNewGameSeed(t *testing.T) {
	bal := config.DefaultBalance()
	bal.Seed = 1234
	if g := newGame(bal); g.Seed != 1234 {
		t.Fatalf("configured seed replaced with %d", g.Seed)
	}

	bal.Seed = 0
	a, b := newGame(bal), newGame(bal)
	if a.Seed == 0 || a.Seed == b.Seed {
		t.Fatalf("fresh seeds %d and %d", a.Seed, b.Seed)
	}
}
