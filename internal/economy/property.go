package economy

import "fmt"

// Building is a property held by the syndicate. Buildings are never removed;
// a lost building is taken out of production with InactiveUntilDay.
type Building struct {
	ID                    string       `json:"id"`
	Name                  string       `json:"name"`
	Type                  BuildingType `json:"type"`
	BaseRevenue           int          `json:"base_revenue"`
	HeatGen               int          `json:"heat_gen"`
	IsOccupied            bool         `json:"is_occupied"`
	AssignedOfficerID     *string      `json:"assigned_officer_id"`
	InactiveUntilDay      *int         `json:"inactive_until_day"`
	IsIllicit             bool         `json:"is_illicit"`
	FoodProvided          int          `json:"food_provided"`
	EntertainmentProvided int          `json:"entertainment_provided"`
	UpgradeLevel          int          `json:"upgrade_level"`
	MaxUpgradeLevel       int          `json:"max_upgrade_level"`
	IsRebelBase           bool         `json:"is_rebel_base"`
}

// NewBuilding creates an unoccupied building from its catalog spec.
func NewBuilding(id, name string, spec BuildingSpec) *Building {
	if name == "" {
		name = string(spec.Type)
	}
	return &Building{
		ID:                    id,
		Name:                  name,
		Type:                  spec.Type,
		BaseRevenue:           spec.BaseRevenue,
		HeatGen:               spec.HeatGen,
		IsIllicit:             spec.IsIllicit,
		FoodProvided:          spec.FoodProvided,
		EntertainmentProvided: spec.EntertainmentProvided,
		MaxUpgradeLevel:       MaxUpgradeLevel,
	}
}

// ActiveOn reports whether the building is out of its inactive period on day.
func (b *Building) ActiveOn(day int) bool {
	return b.InactiveUntilDay == nil || day >= *b.InactiveUntilDay
}

// Producing reports whether the building earns revenue on day: it must be
// staffed, active and not held by rebels.
func (b *Building) Producing(day int) bool {
	return b.IsOccupied && !b.IsRebelBase && b.ActiveOn(day)
}

// ApplyUpgrade moves the building to its next level. The caller has already
// checked cost and eligibility.
func (b *Building) ApplyUpgrade(step UpgradeStep) {
	b.UpgradeLevel++
	b.BaseRevenue += step.Revenue
	b.HeatGen += step.Heat
	b.FoodProvided += step.Food
	b.EntertainmentProvided += step.Entertainment
}

// Deactivate takes the building out of production until day.
func (b *Building) Deactivate(until int) {
	b.InactiveUntilDay = &until
}

func (b *Building) String() string {
	return fmt.Sprintf("%s (%s, lvl %d)", b.Name, b.Type, b.UpgradeLevel)
}
