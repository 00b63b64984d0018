// Package agents provides the syndicate's personnel: officers, street
// soldiers, their ranks and the spawner that names new recruits.
package agents

import "strings"

// Rank is an officer's position in the society. The numeric codes are the
// traditional 4xx ranks.
type Rank string

const (
	RankBlueLantern   Rank = "Blue Lantern"    // 49
	RankStrawSandal   Rank = "Straw Sandal"    // 432
	RankWhitePaperFan Rank = "White Paper Fan" // 415
	RankRedPole       Rank = "Red Pole"        // 426
	RankDeputy        Rank = "Deputy"          // 438
	RankDragonhead    Rank = "Dragonhead"      // 489
)

// Tier orders ranks. The three 4xx office ranks share a tier.
func (r Rank) Tier() int {
	switch r {
	case RankBlueLantern:
		return 0
	case RankStrawSandal, RankWhitePaperFan, RankRedPole:
		return 1
	case RankDeputy:
		return 2
	case RankDragonhead:
		return 3
	default:
		return -1
	}
}

// Valid reports whether r is a known rank.
func (r Rank) Valid() bool { return r.Tier() >= 0 }

// Skills are 0–100.
type Skills struct {
	Enforcement int `json:"enforcement"`
	Diplomacy   int `json:"diplomacy"`
	Logistics   int `json:"logistics"`
	Recruitment int `json:"recruitment"`
}

// Officer is named personnel that can run a building.
type Officer struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Rank   Rank   `json:"rank"`
	Skills Skills `json:"skills"`

	Loyalty   int `json:"loyalty"` // 0–100
	Face      int `json:"face"`    // 0–100
	Energy    int `json:"energy"`
	MaxEnergy int `json:"max_energy"`

	IsWounded   bool `json:"is_wounded"`
	IsArrested  bool `json:"is_arrested"`
	IsTraitor   bool `json:"is_traitor"`
	IsSuccessor bool `json:"is_successor"`

	DaysToRecovery     int     `json:"days_to_recovery"`
	AssignedBuildingID *string `json:"assigned_building_id"`
	DaysIdle           int     `json:"days_idle"`

	// Fixed at creation.
	Traits   []string `json:"traits"`
	Likes    []string `json:"likes"`
	Dislikes []string `json:"dislikes"`

	CurrentAgenda *string `json:"current_agenda"`
}

// Available reports whether the officer can take part in interactions,
// assignments and battles.
func (o *Officer) Available() bool {
	return !o.IsWounded && !o.IsArrested
}

// Assigned reports whether the officer runs a building.
func (o *Officer) Assigned() bool {
	return o.AssignedBuildingID != nil
}

// AgendaMentions reports whether the revealed agenda contains any of words.
func (o *Officer) AgendaMentions(words ...string) bool {
	if o.CurrentAgenda == nil {
		return false
	}
	agenda := strings.ToLower(*o.CurrentAgenda)
	for _, w := range words {
		if strings.Contains(agenda, w) {
			return true
		}
	}
	return false
}

// AgendaPool holds the hidden motives tea can reveal.
var AgendaPool = []string{
	"Wants a bigger cut of the parlor takings",
	"Is eyeing a higher rank within the society",
	"Dreams of running a nightclub of their own",
	"Worries the police are closing in on the crew",
	"Holds a grudge against the 14K over an old insult",
}

// RankBoost is what an officer gains on reaching a rank.
type RankBoost struct {
	Skills    Skills
	MaxEnergy int
	Loyalty   int
}

var rankBoosts = map[Rank]RankBoost{
	RankStrawSandal:   {Skills: Skills{Logistics: 10, Diplomacy: 5}, MaxEnergy: 10, Loyalty: 10},
	RankWhitePaperFan: {Skills: Skills{Diplomacy: 10, Logistics: 5}, MaxEnergy: 10, Loyalty: 10},
	RankRedPole:       {Skills: Skills{Enforcement: 15}, MaxEnergy: 10, Loyalty: 10},
	RankDeputy:        {Skills: Skills{Enforcement: 5, Diplomacy: 5, Logistics: 5, Recruitment: 5}, MaxEnergy: 20, Loyalty: 10},
	RankDragonhead:    {Skills: Skills{Enforcement: 10, Diplomacy: 10, Logistics: 10, Recruitment: 10}, MaxEnergy: 30, Loyalty: 15},
}

// BoostFor returns the boost granted on promotion to r.
func BoostFor(r Rank) RankBoost {
	return rankBoosts[r]
}

// ApplyBoost raises skills, energy and loyalty, capping stats at 100.
func (o *Officer) ApplyBoost(b RankBoost) {
	o.Skills.Enforcement = capStat(o.Skills.Enforcement + b.Skills.Enforcement)
	o.Skills.Diplomacy = capStat(o.Skills.Diplomacy + b.Skills.Diplomacy)
	o.Skills.Logistics = capStat(o.Skills.Logistics + b.Skills.Logistics)
	o.Skills.Recruitment = capStat(o.Skills.Recruitment + b.Skills.Recruitment)
	o.MaxEnergy += b.MaxEnergy
	o.Energy += b.MaxEnergy
	if o.Energy > o.MaxEnergy {
		o.Energy = o.MaxEnergy
	}
	o.Loyalty = capStat(o.Loyalty + b.Loyalty)
}

// AdjustLoyalty changes loyalty within 0–100.
func (o *Officer) AdjustLoyalty(delta int) {
	o.Loyalty = clampStat(o.Loyalty + delta)
}

// AdjustEnergy changes energy within 0–MaxEnergy.
func (o *Officer) AdjustEnergy(delta int) {
	o.Energy += delta
	if o.Energy < 0 {
		o.Energy = 0
	}
	if o.Energy > o.MaxEnergy {
		o.Energy = o.MaxEnergy
	}
}

// AdjustFace changes face within 0–100.
func (o *Officer) AdjustFace(delta int) {
	o.Face = clampStat(o.Face + delta)
}

// Wound takes the officer out of action for days.
func (o *Officer) Wound(days int) {
	o.IsWounded = true
	if days > o.DaysToRecovery {
		o.DaysToRecovery = days
	}
}

// Recover counts one day of recovery, clearing the wound at zero.
func (o *Officer) Recover() {
	if !o.IsWounded {
		return
	}
	if o.DaysToRecovery > 0 {
		o.DaysToRecovery--
	}
	if o.DaysToRecovery == 0 {
		o.IsWounded = false
	}
}

func capStat(v int) int {
	if v > 100 {
		return 100
	}
	return v
}

func clampStat(v int) int {
	if v < 0 {
		return 0
	}
	return capStat(v)
}
