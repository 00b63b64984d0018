package engine

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/agents"
	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/config"
	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/economy"
	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/entropy"
)

// newTestGame returns a seeded game with an empty event chance so the daily
// cycle never queues events unless a test asks for it.
func newTestGame(t *testing.T) *Game {
	t.Helper()
	bal := config.DefaultBalance()
	bal.DailyEventChance = 0
	return NewGame(bal, entropy.NewSeeded(7))
}

// bareGame returns a game with no personnel or property, driven by src.
func bareGame(t *testing.T, src entropy.Source) *Game {
	t.Helper()
	g := newTestGame(t)
	g.Officers = nil
	g.Soldiers = nil
	g.Buildings = nil
	g.Bind(g.Balance, src)
	return g
}

func addOfficer(g *Game, mutate func(o *agents.Officer)) *agents.Officer {
	o := &agents.Officer{
		ID:        g.nextOfficerID(),
		Name:      "Test Officer",
		Rank:      agents.RankBlueLantern,
		Skills:    agents.Skills{Enforcement: 50, Diplomacy: 50, Logistics: 50, Recruitment: 50},
		Loyalty:   50,
		Face:      20,
		Energy:    80,
		MaxEnergy: 100,
	}
	if mutate != nil {
		mutate(o)
	}
	g.Officers = append(g.Officers, o)
	return o
}

func addSoldier(g *Game, loyalty, skill int) *agents.StreetSoldier {
	s := &agents.StreetSoldier{
		ID:      g.nextSoldierID(),
		Name:    "Test Soldier",
		Loyalty: loyalty,
		Skill:   skill,
		Needs:   agents.Needs{Food: 60, Entertainment: 60, Pay: 60},
	}
	g.Soldiers = append(g.Soldiers, s)
	return s
}

func addBuilding(g *Game, t economy.BuildingType) *economy.Building {
	spec, _ := economy.LookupBuilding(t)
	b := economy.NewBuilding(g.nextBuildingID(), "", spec)
	g.Buildings = append(g.Buildings, b)
	return b
}

func snapshot(t *testing.T, g *Game) []byte {
	t.Helper()
	b, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

func assertUnchanged(t *testing.T, before []byte, g *Game) {
	t.Helper()
	if after := snapshot(t, g); !bytes.Equal(before, after) {
		t.Fatalf("state changed on rejected action:\nbefore %s\nafter  %s", before, after)
	}
}
