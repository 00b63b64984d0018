package agents

// Specialization is a soldier's one-time role choice.
type Specialization string

const (
	SpecEnforcer  Specialization = "enforcer"
	SpecScout     Specialization = "scout"
	SpecGuard     Specialization = "guard"
	SpecCollector Specialization = "collector"
)

// Valid reports whether s is a known specialization.
func (s Specialization) Valid() bool {
	switch s {
	case SpecEnforcer, SpecScout, SpecGuard, SpecCollector:
		return true
	}
	return false
}

// Promotion thresholds for a soldier to become a Blue Lantern officer.
const (
	PromotionExperience = 80
	PromotionSkill      = 60
)

// StreetSoldier is lower-tier personnel.
type StreetSoldier struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Loyalty    int    `json:"loyalty"` // 0–100
	Skill      int    `json:"skill"`   // 0–100
	Experience int    `json:"experience"`
	Needs      Needs  `json:"needs"`

	IsArrested bool `json:"is_arrested"`
	IsVeteran  bool `json:"is_veteran"`
	IsElite    bool `json:"is_elite"`

	Specialization *Specialization `json:"specialization"`

	BattlesWon  int `json:"battles_won"`
	BattlesLost int `json:"battles_lost"`
	Kills       int `json:"kills"`
}

// Promotable reports whether the soldier qualifies for officer rank.
func (s *StreetSoldier) Promotable() bool {
	return s.Experience >= PromotionExperience && s.Skill >= PromotionSkill
}

// Loyal reports whether the soldier will deploy to a fight.
func (s *StreetSoldier) Loyal() bool {
	return s.Loyalty > 30 && !s.IsArrested
}

// Train raises skill and experience.
func (s *StreetSoldier) Train(skill, experience int) {
	s.Skill = capStat(s.Skill + skill)
	s.GainExperience(experience)
}

// GainExperience adds experience and updates veteran/elite status.
func (s *StreetSoldier) GainExperience(xp int) {
	s.Experience += xp
	if s.Experience >= 50 {
		s.IsVeteran = true
	}
	if s.Experience >= 120 && s.Skill >= 75 {
		s.IsElite = true
	}
}

// AdjustLoyalty changes loyalty within 0–100.
func (s *StreetSoldier) AdjustLoyalty(delta int) {
	s.Loyalty = clampStat(s.Loyalty + delta)
}

// ToOfficer converts a promotable soldier into a Blue Lantern officer. The
// new officer's skills follow the soldier's record and specialization.
func (s *StreetSoldier) ToOfficer(id string) *Officer {
	skills := Skills{
		Enforcement: capStat(s.Skill/2 + s.Kills*2),
		Diplomacy:   20,
		Logistics:   20,
		Recruitment: 20,
	}
	if s.Specialization != nil {
		switch *s.Specialization {
		case SpecEnforcer:
			skills.Enforcement = capStat(skills.Enforcement + 15)
		case SpecScout:
			skills.Logistics += 15
		case SpecGuard:
			skills.Enforcement = capStat(skills.Enforcement + 5)
			skills.Logistics += 10
		case SpecCollector:
			skills.Diplomacy += 15
		}
	}
	traits := []string{"Street-born"}
	if s.IsVeteran {
		traits = append(traits, "Veteran")
	}
	return &Officer{
		ID:        id,
		Name:      s.Name,
		Rank:      RankBlueLantern,
		Skills:    skills,
		Loyalty:   s.Loyalty,
		Face:      0,
		Energy:    80,
		MaxEnergy: 80,
		Traits:    traits,
		Likes:     []string{"Loyalty"},
		Dislikes:  []string{"Disrespect"},
	}
}
