package engine

import (
	"errors"
	"testing"

	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/agents"
	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/economy"
	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/entropy"
)

func TestAcquireBuilding(t *testing.T) {
	g := bareGame(t, entropy.NewSequence())
	g.Resources.Cash = 5000

	b, err := g.AcquireBuilding(economy.NoodleShop)
	if err != nil {
		t.Fatalf("AcquireBuilding: %v", err)
	}
	if g.Resources.Cash != 2000 {
		t.Errorf("cash = %d, want 2000", g.Resources.Cash)
	}
	if len(g.Buildings) != 1 || g.Buildings[0] != b {
		t.Fatalf("buildings = %v", g.Buildings)
	}
	if b.BaseRevenue != 500 || b.HeatGen != 1 || b.FoodProvided != 30 || b.IsIllicit {
		t.Errorf("noodle shop profile = revenue %d heat %d food %d illicit %v",
			b.BaseRevenue, b.HeatGen, b.FoodProvided, b.IsIllicit)
	}
	if b.IsOccupied || b.UpgradeLevel != 0 || b.MaxUpgradeLevel != economy.MaxUpgradeLevel {
		t.Errorf("new building state = %+v", b)
	}
}

func TestAcquireBuildingRejections(t *testing.T) {
	tests := []struct {
		name string
		typ  economy.BuildingType
		cash int
		want error
	}{
		{"unaffordable", economy.Nightclub, 1000, ErrInsufficientFunds},
		{"unknown type", economy.BuildingType("Casino"), 100000, ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := bareGame(t, entropy.NewSequence())
			g.Resources.Cash = tt.cash
			before := snapshot(t, g)
			if _, err := g.AcquireBuilding(tt.typ); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			assertUnchanged(t, before, g)
		})
	}
}

func TestAssignOfficer(t *testing.T) {
	tests := []struct {
		name     string
		officer  func(o *agents.Officer)
		building func(b *economy.Building)
		want     error
	}{
		{"ok", nil, nil, nil},
		{"wounded", func(o *agents.Officer) { o.IsWounded = true }, nil, ErrUnavailable},
		{"arrested", func(o *agents.Officer) { o.IsArrested = true }, nil, ErrUnavailable},
		{"rebel base", nil, func(b *economy.Building) { b.IsRebelBase = true }, ErrRebelBase},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := bareGame(t, entropy.NewSequence())
			o := addOfficer(g, tt.officer)
			b := addBuilding(g, economy.MahjongParlor)
			if tt.building != nil {
				tt.building(b)
			}
			before := snapshot(t, g)

			err := g.AssignOfficer(o.ID, b.ID)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if tt.want != nil {
				assertUnchanged(t, before, g)
				return
			}
			if !b.IsOccupied || *b.AssignedOfficerID != o.ID || *o.AssignedBuildingID != b.ID {
				t.Fatal("pairing not recorded on both sides")
			}
		})
	}
}

func TestAssignOfficerPairsOneToOne(t *testing.T) {
	g := bareGame(t, entropy.NewSequence())
	a := addOfficer(g, nil)
	c := addOfficer(g, nil)
	first := addBuilding(g, economy.NoodleShop)
	second := addBuilding(g, economy.Warehouse)

	if err := g.AssignOfficer(a.ID, first.ID); err != nil {
		t.Fatal(err)
	}
	if err := g.AssignOfficer(a.ID, second.ID); !errors.Is(err, ErrAlreadyAssigned) {
		t.Fatalf("reassigning a busy officer: %v", err)
	}
	if err := g.AssignOfficer(c.ID, first.ID); !errors.Is(err, ErrOccupied) {
		t.Fatalf("assigning to an occupied building: %v", err)
	}
	if err := g.UnassignOfficer(c.ID); !errors.Is(err, ErrNotAssigned) {
		t.Fatalf("unassigning an idle officer: %v", err)
	}
	if err := g.UnassignOfficer(a.ID); err != nil {
		t.Fatal(err)
	}
	if first.IsOccupied || first.AssignedOfficerID != nil || a.AssignedBuildingID != nil {
		t.Fatal("unassign left a half pairing")
	}
}

func TestAssignmentsStayConsistent(t *testing.T) {
	src := entropy.NewSeeded(99)
	g := bareGame(t, src)
	g.Resources.Cash = 1_000_000
	for rangeIdx := 0; rangeIdx < 6; rangeIdx++ {
		addOfficer(g, nil)
		addBuilding(g, economy.NoodleShop)
	}
	for rangeIdx := 0; rangeIdx < 10; rangeIdx++ {
		addSoldier(g, 80, 40)
	}

	for step := 0; step < 300; step++ {
		var oid, bid string
		if n := len(g.Officers); n > 0 {
			oid = g.Officers[src.Intn(n)].ID
		}
		bid = g.Buildings[src.Intn(len(g.Buildings))].ID

		switch src.Intn(6) {
		case 0, 1:
			_ = g.AssignOfficer(oid, bid)
		case 2:
			_ = g.UnassignOfficer(oid)
		case 3:
			if src.Intn(4) == 0 {
				_ = g.FireOfficer(oid)
				addOfficer(g, nil)
			}
		case 4:
			_, _ = g.LaunchBattle(BattlePlan{
				RivalID:    "rival-1",
				OfficerIDs: []string{oid},
				Tactic:     TacticAggressive,
			})
		case 5:
			g.AdvancePhase()
		}
		if !g.AssignmentsConsistent() {
			t.Fatalf("step %d: assignments inconsistent", step)
		}
		if !g.Resources.Valid() {
			t.Fatalf("step %d: resources out of bounds: %+v", step, g.Resources)
		}
	}
}

func TestUpgradeBuilding(t *testing.T) {
	g := bareGame(t, entropy.NewSequence())
	g.Resources.Cash = 1_000_000
	b := addBuilding(g, economy.NoodleShop)

	for level := 1; level <= economy.MaxUpgradeLevel; level++ {
		if err := g.UpgradeBuilding(b.ID); err != nil {
			t.Fatalf("upgrade to %d: %v", level, err)
		}
	}
	if b.BaseRevenue != 500+150+200+300 {
		t.Errorf("revenue = %d", b.BaseRevenue)
	}
	before := snapshot(t, g)
	if err := g.UpgradeBuilding(b.ID); !errors.Is(err, ErrMaxLevel) {
		t.Fatalf("upgrade past max: %v", err)
	}
	assertUnchanged(t, before, g)
}

func TestReclaimBuilding(t *testing.T) {
	g := bareGame(t, entropy.NewSequence())
	b := addBuilding(g, economy.Warehouse)
	b.IsRebelBase = true
	addSoldier(g, 80, 30)
	addSoldier(g, 80, 30)

	before := snapshot(t, g)
	if err := g.ReclaimBuilding(b.ID); !errors.Is(err, ErrInsufficientSoldiers) {
		t.Fatalf("reclaim with two soldiers: %v", err)
	}
	assertUnchanged(t, before, g)

	addSoldier(g, 80, 30)
	if err := g.ReclaimBuilding(b.ID); err != nil {
		t.Fatalf("ReclaimBuilding: %v", err)
	}
	if b.IsRebelBase {
		t.Fatal("building still held by rebels")
	}
	if err := g.ReclaimBuilding(b.ID); !errors.Is(err, ErrIneligible) {
		t.Fatalf("reclaiming a held building: %v", err)
	}
}
