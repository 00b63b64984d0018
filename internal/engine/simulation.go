// Package engine is the syndicate simulation: the game state, the day-phase
// clock, interaction rules, battle resolution, the dynamic event engine and
// the daily cycle.
package engine

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/agents"
	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/config"
	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/economy"
	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/entropy"
	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/social"
)

// Game holds the complete simulation state. Everything exported is part of
// the save document; the random source, street model and balance are runtime
// collaborators bound with Bind.
//
// Game is not safe for concurrent use. Controller serializes access.
type Game struct {
	ID    string `json:"id"`
	Seed  int64  `json:"seed"`
	Draws uint64 `json:"rng_draws"` // values consumed from the seeded source
	Day   int    `json:"current_day"`
	Phase Phase  `json:"current_phase"`

	Resources economy.Ledger `json:"resources"`

	Officers  []*agents.Officer       `json:"officers"`
	Soldiers  []*agents.StreetSoldier `json:"soldiers"`
	Buildings []*economy.Building     `json:"buildings"`
	Rivals    []*social.RivalGang     `json:"rivals"`

	ActiveEvent   *EventInstance   `json:"active_event"`
	PendingEvents []*EventInstance `json:"pending_events"`

	Log      []LogEntry `json:"log"`
	Counters Counters   `json:"counters"`

	TutorialComplete bool `json:"tutorial_complete"`

	Balance config.Balance `json:"-"`

	src       entropy.Source
	streets   *social.Streets
	spawner   *agents.Spawner
	templates []Template
}

// LogEntry is a notable occurrence, kept for the view and the event log.
type LogEntry struct {
	Seq         int    `json:"seq"`
	Day         int    `json:"day"`
	Phase       Phase  `json:"phase"`
	Description string `json:"description"`
	Category    string `json:"category"` // "economy", "battle", "event", "personnel", ...
}

// Counters issue entity ids.
type Counters struct {
	NextOfficer  int `json:"next_officer"`
	NextSoldier  int `json:"next_soldier"`
	NextBuilding int `json:"next_building"`
	NextEvent    int `json:"next_event"`
	LogSeq       int `json:"log_seq"`
}

const maxLogEntries = 200

// NewGame creates a fresh game from the balance settings.
func NewGame(bal config.Balance, src entropy.Source) *Game {
	g := &Game{
		ID:    uuid.NewString(),
		Seed:  bal.Seed,
		Day:   1,
		Phase: PhaseMorning,
		Resources: economy.NewLedger(
			bal.StartingCash,
			bal.StartingReputation,
			bal.StartingHeat,
			bal.StartingIntel,
			bal.StartingInfluence,
		),
		Rivals:   social.SeedRivals(),
		Counters: Counters{NextOfficer: 1, NextSoldier: 1, NextBuilding: 1},
	}
	g.Bind(bal, src)

	ranks := []agents.Rank{agents.RankRedPole, agents.RankWhitePaperFan, agents.RankStrawSandal, agents.RankBlueLantern}
	for i := 0; i < bal.StartingOfficers; i++ {
		rank := agents.RankBlueLantern
		if i < len(ranks) {
			rank = ranks[i]
		}
		g.Officers = append(g.Officers, g.spawner.Officer(g.nextOfficerID(), rank))
	}
	for i := 0; i < bal.StartingSoldiers; i++ {
		g.Soldiers = append(g.Soldiers, g.spawner.Recruit(g.nextSoldierID()))
	}

	// The syndicate starts with a noodle shop front.
	shop, _ := economy.LookupBuilding(economy.NoodleShop)
	g.Buildings = append(g.Buildings, economy.NewBuilding(g.nextBuildingID(), "Temple Street Noodles", shop))

	g.record("A new dawn over Kowloon. The syndicate opens for business.", "personnel")
	slog.Info("new game created",
		"seed", g.Seed,
		"officers", len(g.Officers),
		"soldiers", len(g.Soldiers),
		"cash", g.Resources.Cash,
	)
	return g
}

// Bind attaches runtime collaborators. Called by NewGame and after a save is
// loaded. A nil src resumes the game's own seeded stream at Draws.
func (g *Game) Bind(bal config.Balance, src entropy.Source) {
	if src == nil {
		src = entropy.NewSeededAt(g.Seed, &g.Draws)
	}
	g.Balance = bal
	g.src = src
	g.streets = social.NewStreets(g.Seed)
	g.spawner = agents.NewSpawner(src)
	g.templates = EventTemplates()
}

// Source returns the game's random source.
func (g *Game) Source() entropy.Source {
	return g.src
}

// Clone returns a deep copy of the persisted state, bound to the same
// collaborators. Views handed to readers are clones.
func (g *Game) Clone() (*Game, error) {
	raw, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("marshal game: %w", err)
	}
	var out Game
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("unmarshal game: %w", err)
	}
	out.Balance = g.Balance
	out.src = g.src
	out.streets = g.streets
	out.spawner = g.spawner
	out.templates = g.templates
	return &out, nil
}

func (g *Game) record(description, category string) {
	g.Counters.LogSeq++
	g.Log = append(g.Log, LogEntry{
		Seq:         g.Counters.LogSeq,
		Day:         g.Day,
		Phase:       g.Phase,
		Description: description,
		Category:    category,
	})
	if len(g.Log) > maxLogEntries {
		g.Log = g.Log[len(g.Log)-maxLogEntries:]
	}
}

func (g *Game) nextOfficerID() string {
	id := fmt.Sprintf("off-%d", g.Counters.NextOfficer)
	g.Counters.NextOfficer++
	return id
}

func (g *Game) nextSoldierID() string {
	id := fmt.Sprintf("sol-%d", g.Counters.NextSoldier)
	g.Counters.NextSoldier++
	return id
}

func (g *Game) nextEventID() string {
	g.Counters.NextEvent++
	return fmt.Sprintf("evt-%d", g.Counters.NextEvent)
}

func (g *Game) nextBuildingID() string {
	id := fmt.Sprintf("bld-%d", g.Counters.NextBuilding)
	g.Counters.NextBuilding++
	return id
}
