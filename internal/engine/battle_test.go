package engine

import (
	"errors"
	"testing"

	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/agents"
	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/economy"
	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/entropy"
)

func TestWinChanceBounds(t *testing.T) {
	tests := []struct {
		strength float64
		rival    int
		want     int
	}{
		{0, 0, 50},
		{1, 1000, 5},
		{1000, 1, 95},
		{100, 100, 50},
		{228, 140, 62},
		{0, 50, 5},
	}
	for _, tt := range tests {
		if got := WinChance(tt.strength, tt.rival); got != tt.want {
			t.Errorf("WinChance(%v, %d) = %d, want %d", tt.strength, tt.rival, got, tt.want)
		}
	}
	for s := 0.0; s <= 2000; s += 37 {
		for r := 0; r <= 2000; r += 41 {
			if c := WinChance(s, r); c < 5 || c > 95 {
				t.Fatalf("WinChance(%v, %d) = %d out of [5, 95]", s, r, c)
			}
		}
	}
}

func TestTacticMultiplier(t *testing.T) {
	tests := []struct {
		tactic Tactic
		base   float64
		rival  int
		want   float64
	}{
		{TacticAggressive, 100, 100, 1.2},
		{TacticDefensive, 100, 100, 0.9},
		{TacticGuerrilla, 100, 100, 1.0},
		{TacticOverwhelming, 300, 100, 1.4},
		{TacticOverwhelming, 100, 100, 1.1},
	}
	for _, tt := range tests {
		if got := TacticMultiplier(tt.tactic, tt.base, tt.rival); got != tt.want {
			t.Errorf("TacticMultiplier(%s, %v, %d) = %v, want %v", tt.tactic, tt.base, tt.rival, got, tt.want)
		}
	}
}

func TestDeploySoldiers(t *testing.T) {
	mk := func(id string, loyalty int, arrested bool) *agents.StreetSoldier {
		return &agents.StreetSoldier{ID: id, Loyalty: loyalty, Skill: 10, IsArrested: arrested}
	}
	soldiers := []*agents.StreetSoldier{
		mk("a", 40, false),
		mk("b", 90, false),
		mk("c", 20, false),
		mk("d", 90, false),
		mk("e", 70, false),
		mk("f", 95, true),
	}
	got := DeploySoldiers(soldiers, 3)
	want := []string{"b", "d", "e"}
	if len(got) != len(want) {
		t.Fatalf("deployed %d, want %d", len(got), len(want))
	}
	for i, s := range got {
		if s.ID != want[i] {
			t.Errorf("deployed[%d] = %s, want %s", i, s.ID, want[i])
		}
	}
	if n := len(DeploySoldiers(soldiers, 10)); n != 4 {
		t.Errorf("deploying more than available gave %d, want 4 loyal", n)
	}
	if s := DeployedSoldierStrength(soldiers, 2); s != 20 {
		t.Errorf("strength = %d, want 20", s)
	}
}

func TestOfficerStrength(t *testing.T) {
	officers := []*agents.Officer{
		{Rank: agents.RankRedPole, Skills: agents.Skills{Enforcement: 50}},
		{Rank: agents.RankBlueLantern, Skills: agents.Skills{Enforcement: 30}},
	}
	if got := OfficerStrength(officers); got != 100 {
		t.Fatalf("OfficerStrength = %d, want 100", got)
	}
}

func TestLaunchBattleVictory(t *testing.T) {
	g := bareGame(t, entropy.NewSequence(0))
	for rangeIdx := 0; rangeIdx < 3; rangeIdx++ {
		addSoldier(g, 80, 40)
	}
	o := addOfficer(g, func(o *agents.Officer) { o.Rank = agents.RankRedPole })
	rival := g.Rival("rival-1")
	cash, rep, heat := g.Resources.Cash, g.Resources.Reputation, g.Resources.PoliceHeat

	plan := BattlePlan{RivalID: rival.ID, OfficerIDs: []string{o.ID}, Soldiers: 3, Tactic: TacticAggressive}
	_, odds, err := g.BattleOdds(plan)
	if err != nil {
		t.Fatalf("BattleOdds: %v", err)
	}
	res, err := g.LaunchBattle(plan)
	if err != nil {
		t.Fatalf("LaunchBattle: %v", err)
	}

	if !res.Victory {
		t.Fatal("expected victory on a zero draw")
	}
	if res.WinChance != 62 || odds != 62 {
		t.Errorf("win chance = %d (odds %d), want 62", res.WinChance, odds)
	}
	if res.SoldiersLost != 0 || len(g.Soldiers) != 3 {
		t.Errorf("lost %d soldiers, roster %d", res.SoldiersLost, len(g.Soldiers))
	}
	if g.Resources.Cash != cash+1400 || res.CashGained != 1400 {
		t.Errorf("cash = %d, gained %d", g.Resources.Cash, res.CashGained)
	}
	if g.Resources.Reputation != rep+10 {
		t.Errorf("reputation = %d, want %d", g.Resources.Reputation, rep+10)
	}
	if g.Resources.PoliceHeat != heat+10 {
		t.Errorf("heat = %d, want %d", g.Resources.PoliceHeat, heat+10)
	}
	if rival.Strength != 105 || rival.Relationship != -30 || !rival.IsActiveConflict {
		t.Errorf("rival after the battle = %+v", rival)
	}
	if res.TerritoryGained == nil || len(g.Buildings) != 1 || g.Buildings[0].Name != "Seized Tsim Sha Tsui Warehouse" {
		t.Fatalf("territory = %v, buildings = %v", res.TerritoryGained, g.Buildings)
	}
	if o.Face != 30 || o.Energy != 60 {
		t.Errorf("officer face %d energy %d, want 30 and 60", o.Face, o.Energy)
	}
	for _, s := range g.Soldiers {
		if s.BattlesWon != 1 || s.Experience != 10 {
			t.Errorf("soldier %s record = won %d xp %d", s.ID, s.BattlesWon, s.Experience)
		}
	}
}

func TestLaunchBattleDefeatCasualties(t *testing.T) {
	g := bareGame(t, entropy.NewSequence(0.99))
	for _, loyalty := range []int{90, 80, 70, 60, 50} {
		addSoldier(g, loyalty, 10)
	}
	rival := g.Rival("rival-1")
	rep := g.Resources.Reputation

	res, err := g.LaunchBattle(BattlePlan{RivalID: rival.ID, Soldiers: 5, Tactic: TacticDefensive})
	if err != nil {
		t.Fatalf("LaunchBattle: %v", err)
	}
	if res.Victory {
		t.Fatal("a 0.99 draw cannot beat a 95% ceiling")
	}
	if res.SoldiersLost != 2 || len(g.Soldiers) != 3 {
		t.Fatalf("lost %d, roster %d, want 2 and 3", res.SoldiersLost, len(g.Soldiers))
	}
	for _, s := range g.Soldiers {
		if s.Loyalty < 70 {
			t.Errorf("least loyal soldiers should fall first, %s (loyalty %d) survived", s.ID, s.Loyalty)
		}
		if s.BattlesLost != 1 {
			t.Errorf("soldier %s battles lost = %d", s.ID, s.BattlesLost)
		}
	}
	if g.Resources.Reputation != rep-5 {
		t.Errorf("reputation = %d, want %d", g.Resources.Reputation, rep-5)
	}
	if rival.Strength != 145 || rival.Relationship != -10 {
		t.Errorf("rival = strength %d relationship %d", rival.Strength, rival.Relationship)
	}
}

func TestLaunchBattleDefeatWoundsAndLosesProperty(t *testing.T) {
	// victory, casualty rate, wound, building lost, building pick
	g := bareGame(t, entropy.NewSequence(0.99, 0, 0.1, 0.1, 0))
	fighter := addOfficer(g, nil)
	keeper := addOfficer(g, nil)
	front := addBuilding(g, economy.NoodleShop)
	club := addBuilding(g, economy.Nightclub)
	if err := g.AssignOfficer(fighter.ID, front.ID); err != nil {
		t.Fatal(err)
	}
	if err := g.AssignOfficer(keeper.ID, club.ID); err != nil {
		t.Fatal(err)
	}

	res, err := g.LaunchBattle(BattlePlan{RivalID: "rival-4", OfficerIDs: []string{fighter.ID}, Tactic: TacticGuerrilla})
	if err != nil {
		t.Fatalf("LaunchBattle: %v", err)
	}
	if res.Victory {
		t.Fatal("expected defeat")
	}
	if !fighter.IsWounded || fighter.DaysToRecovery != 3 || fighter.Assigned() {
		t.Errorf("fighter = wounded %v days %d assigned %v", fighter.IsWounded, fighter.DaysToRecovery, fighter.Assigned())
	}
	if res.BuildingLostID == nil || *res.BuildingLostID != club.ID {
		t.Fatalf("building lost = %v, want %s", res.BuildingLostID, club.ID)
	}
	if club.IsOccupied || keeper.Assigned() {
		t.Error("lost building should be released")
	}
	if club.InactiveUntilDay == nil || *club.InactiveUntilDay != g.Day+5 {
		t.Errorf("inactive until %v, want %d", club.InactiveUntilDay, g.Day+5)
	}
	if !g.AssignmentsConsistent() {
		t.Fatal("assignments inconsistent after defeat")
	}
}

func TestLaunchBattleRejections(t *testing.T) {
	tests := []struct {
		name string
		plan func(g *Game, officerID string) BattlePlan
		want error
	}{
		{"unknown rival", func(_ *Game, id string) BattlePlan {
			return BattlePlan{RivalID: "rival-9", OfficerIDs: []string{id}, Tactic: TacticAggressive}
		}, ErrNotFound},
		{"unknown tactic", func(_ *Game, id string) BattlePlan {
			return BattlePlan{RivalID: "rival-1", OfficerIDs: []string{id}, Tactic: "ambush"}
		}, ErrInvalid},
		{"negative soldiers", func(_ *Game, _ string) BattlePlan {
			return BattlePlan{RivalID: "rival-1", Soldiers: -1, Tactic: TacticAggressive}
		}, ErrInvalid},
		{"no forces", func(_ *Game, _ string) BattlePlan {
			return BattlePlan{RivalID: "rival-1", Tactic: TacticAggressive}
		}, ErrInvalid},
		{"more soldiers than loyal", func(_ *Game, _ string) BattlePlan {
			return BattlePlan{RivalID: "rival-1", Soldiers: 3, Tactic: TacticAggressive}
		}, ErrInsufficientSoldiers},
		{"officer twice", func(_ *Game, id string) BattlePlan {
			return BattlePlan{RivalID: "rival-1", OfficerIDs: []string{id, id}, Tactic: TacticAggressive}
		}, ErrInvalid},
		{"wounded officer", func(g *Game, id string) BattlePlan {
			g.Officer(id).IsWounded = true
			return BattlePlan{RivalID: "rival-1", OfficerIDs: []string{id}, Tactic: TacticAggressive}
		}, ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := bareGame(t, entropy.NewSequence(0))
			addSoldier(g, 80, 40)
			addSoldier(g, 80, 40)
			addSoldier(g, 10, 40) // will not fight
			o := addOfficer(g, nil)
			plan := tt.plan(g, o.ID)
			before := snapshot(t, g)

			if _, err := g.LaunchBattle(plan); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			assertUnchanged(t, before, g)
		})
	}
}
