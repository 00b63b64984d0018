package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/agents"
	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/economy"
	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/entropy"
	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/social"
)

// Tactic is how the syndicate commits to a fight.
type Tactic string

const (
	TacticAggressive   Tactic = "aggressive"
	TacticDefensive    Tactic = "defensive"
	TacticGuerrilla    Tactic = "guerrilla"
	TacticOverwhelming Tactic = "overwhelming"
)

// Valid reports whether t is a known tactic.
func (t Tactic) Valid() bool {
	switch t {
	case TacticAggressive, TacticDefensive, TacticGuerrilla, TacticOverwhelming:
		return true
	}
	return false
}

const (
	minWinChance      = 5
	maxWinChance      = 95
	redPoleBonus      = 20
	battleHeat        = 10
	battleEnergy      = 20
	victoryReputation = 10
	defeatReputation  = -5
	woundDays         = 3
	lostBuildingDays  = 5
)

// BattlePlan is the player's order of battle.
type BattlePlan struct {
	RivalID    string   `json:"rival_id"`
	OfficerIDs []string `json:"officer_ids"`
	Soldiers   int      `json:"soldiers"`
	Tactic     Tactic   `json:"tactic"`
}

// BattleResult is the authoritative outcome of a launched battle.
type BattleResult struct {
	Victory           bool     `json:"victory"`
	WinChance         int      `json:"win_chance"`
	Strength          float64  `json:"strength"`
	RivalStrength     int      `json:"rival_strength"`
	SoldiersLost      int      `json:"soldiers_lost"`
	LostSoldierIDs    []string `json:"lost_soldier_ids,omitempty"`
	ReputationDelta   int      `json:"reputation_delta"`
	CashGained        int      `json:"cash_gained"`
	TerritoryGained   *string  `json:"territory_gained,omitempty"`
	WoundedOfficerIDs []string `json:"wounded_officer_ids,omitempty"`
	BuildingLostID    *string  `json:"building_lost_id,omitempty"`
}

// DeploySoldiers picks the n most loyal fighters. Only loyal soldiers fight;
// ties keep registry order.
func DeploySoldiers(soldiers []*agents.StreetSoldier, n int) []*agents.StreetSoldier {
	loyal := make([]*agents.StreetSoldier, 0, len(soldiers))
	for _, s := range soldiers {
		if s.Loyal() {
			loyal = append(loyal, s)
		}
	}
	sort.SliceStable(loyal, func(i, j int) bool {
		return loyal[i].Loyalty > loyal[j].Loyalty
	})
	if n < 0 {
		n = 0
	}
	if n < len(loyal) {
		loyal = loyal[:n]
	}
	return loyal
}

// DeployedSoldierStrength sums skill over the deployed soldiers.
func DeployedSoldierStrength(soldiers []*agents.StreetSoldier, n int) int {
	total := 0
	for _, s := range DeploySoldiers(soldiers, n) {
		total += s.Skill
	}
	return total
}

// OfficerStrength sums enforcement over the committed officers. Red Poles
// fight above their numbers.
func OfficerStrength(officers []*agents.Officer) int {
	total := 0
	for _, o := range officers {
		total += o.Skills.Enforcement
		if o.Rank == agents.RankRedPole {
			total += redPoleBonus
		}
	}
	return total
}

// TacticMultiplier returns the strength multiplier for t. Overwhelming force
// only pays off when the syndicate heavily outnumbers the rival.
func TacticMultiplier(t Tactic, base float64, rivalStrength int) float64 {
	switch t {
	case TacticAggressive:
		return 1.2
	case TacticDefensive:
		return 0.9
	case TacticOverwhelming:
		if base*1.4 > float64(rivalStrength)*2 {
			return 1.4
		}
		return 1.1
	default:
		return 1.0
	}
}

// WinChance returns the victory percentage, bounded to [5, 95].
func WinChance(strength float64, rivalStrength int) int {
	denom := strength + float64(rivalStrength)
	if denom <= 0 {
		return 50
	}
	pct := int(math.Round(strength / denom * 100))
	if pct < minWinChance {
		return minWinChance
	}
	if pct > maxWinChance {
		return maxWinChance
	}
	return pct
}

// BattleOdds computes the final strength and win chance for a plan without
// touching state.
func (g *Game) BattleOdds(plan BattlePlan) (float64, int, error) {
	officers, rival, err := g.battleForces(plan)
	if err != nil {
		return 0, 0, err
	}
	strength := g.planStrength(plan, officers, rival)
	return strength, WinChance(strength, rival.Strength), nil
}

func (g *Game) planStrength(plan BattlePlan, officers []*agents.Officer, rival *social.RivalGang) float64 {
	base := float64(DeployedSoldierStrength(g.Soldiers, plan.Soldiers) + OfficerStrength(officers))
	return base * TacticMultiplier(plan.Tactic, base, rival.Strength)
}

func (g *Game) battleForces(plan BattlePlan) ([]*agents.Officer, *social.RivalGang, error) {
	rival := g.Rival(plan.RivalID)
	if rival == nil {
		return nil, nil, reject(ErrNotFound, "rival %s", plan.RivalID)
	}
	if !plan.Tactic.Valid() {
		return nil, nil, reject(ErrInvalid, "unknown tactic %q", plan.Tactic)
	}
	if plan.Soldiers < 0 {
		return nil, nil, reject(ErrInvalid, "cannot deploy %d soldiers", plan.Soldiers)
	}
	if plan.Soldiers == 0 && len(plan.OfficerIDs) == 0 {
		return nil, nil, reject(ErrInvalid, "no forces committed")
	}
	if loyal := len(g.LoyalSoldiers()); plan.Soldiers > loyal {
		return nil, nil, reject(ErrInsufficientSoldiers, "%d loyal soldiers, %d requested", loyal, plan.Soldiers)
	}
	seen := make(map[string]bool, len(plan.OfficerIDs))
	officers := make([]*agents.Officer, 0, len(plan.OfficerIDs))
	for _, id := range plan.OfficerIDs {
		if seen[id] {
			return nil, nil, reject(ErrInvalid, "officer %s listed twice", id)
		}
		seen[id] = true
		o := g.Officer(id)
		if o == nil {
			return nil, nil, reject(ErrNotFound, "officer %s", id)
		}
		if !o.Available() {
			return nil, nil, reject(ErrUnavailable, "%s", o.Name)
		}
		officers = append(officers, o)
	}
	return officers, rival, nil
}

// LaunchBattle commits forces against a rival and resolves the fight. All
// validation happens before the first random draw, so a rejected plan leaves
// state and the random stream untouched.
func (g *Game) LaunchBattle(plan BattlePlan) (*BattleResult, error) {
	officers, rival, err := g.battleForces(plan)
	if err != nil {
		return nil, err
	}

	deployed := DeploySoldiers(g.Soldiers, plan.Soldiers)
	strength := g.planStrength(plan, officers, rival)
	res := &BattleResult{
		WinChance:     WinChance(strength, rival.Strength),
		Strength:      strength,
		RivalStrength: rival.Strength,
	}
	res.Victory = g.src.Float64()*100 < float64(res.WinChance)

	g.applyCasualties(res, deployed)

	if res.Victory {
		g.applyVictory(res, rival, officers)
	} else {
		g.applyDefeat(res, rival, officers)
	}

	rival.IsActiveConflict = true
	g.Resources.AdjustHeat(battleHeat)
	for _, o := range officers {
		o.AdjustEnergy(-battleEnergy)
	}

	verdict := "defeat"
	if res.Victory {
		verdict = "victory"
	}
	g.record(fmt.Sprintf("Battle with %s: %s (%d%% odds, %d soldiers lost)",
		rival.Name, verdict, res.WinChance, res.SoldiersLost), "battle")
	return res, nil
}

// applyCasualties removes fallen soldiers and updates the survivors' records.
// Losses come off the back of the deployment, the least loyal first.
func (g *Game) applyCasualties(res *BattleResult, deployed []*agents.StreetSoldier) {
	var rate float64
	if res.Victory {
		rate = 0.1 + g.src.Float64()*0.2
	} else {
		rate = 0.3 + g.src.Float64()*0.3
	}
	lost := int(math.Floor(float64(len(deployed)) * rate))
	if lost > len(deployed) {
		lost = len(deployed)
	}
	survivors := deployed[:len(deployed)-lost]
	for _, s := range deployed[len(deployed)-lost:] {
		res.LostSoldierIDs = append(res.LostSoldierIDs, s.ID)
		g.removeSoldier(s.ID)
	}
	res.SoldiersLost = lost

	for _, s := range survivors {
		if res.Victory {
			s.BattlesWon++
			s.GainExperience(10)
			s.Kills += g.src.Intn(3)
		} else {
			s.BattlesLost++
			s.GainExperience(5)
		}
	}
}

func (g *Game) applyVictory(res *BattleResult, rival *social.RivalGang, officers []*agents.Officer) {
	res.ReputationDelta = victoryReputation
	g.Resources.AdjustReputation(victoryReputation)

	res.CashGained = rival.Strength * 10
	g.Resources.AdjustCash(res.CashGained)

	rival.AdjustStrength(-max(5, rival.Strength/4))
	rival.AdjustRelationship(-30)

	if entropy.Chance(g.src, 0.25) {
		spec, _ := economy.LookupBuilding(economy.Warehouse)
		b := economy.NewBuilding(g.nextBuildingID(), fmt.Sprintf("Seized %s Warehouse", rival.District), spec)
		g.Buildings = append(g.Buildings, b)
		district := rival.District
		res.TerritoryGained = &district
	}
	for _, o := range officers {
		o.AdjustFace(10)
	}
}

func (g *Game) applyDefeat(res *BattleResult, rival *social.RivalGang, officers []*agents.Officer) {
	res.ReputationDelta = defeatReputation
	g.Resources.AdjustReputation(defeatReputation)

	for _, o := range officers {
		if entropy.Chance(g.src, 0.5) {
			g.releaseOfficer(o)
			o.Wound(woundDays)
			res.WoundedOfficerIDs = append(res.WoundedOfficerIDs, o.ID)
		}
	}

	if entropy.Chance(g.src, 0.2) {
		var producing []*economy.Building
		for _, b := range g.Buildings {
			if b.Producing(g.Day) {
				producing = append(producing, b)
			}
		}
		if len(producing) > 0 {
			b := producing[g.src.Intn(len(producing))]
			g.releaseBuilding(b)
			b.Deactivate(g.Day + lostBuildingDays)
			id := b.ID
			res.BuildingLostID = &id
		}
	}

	rival.AdjustRelationship(-10)
	rival.AdjustStrength(5)
}
