package economy

// BuildingType names an entry in the fixed building catalog.
type BuildingType string

const (
	NoodleShop     BuildingType = "Noodle Shop"
	MahjongParlor  BuildingType = "Mahjong Parlor"
	Warehouse      BuildingType = "Warehouse"
	Nightclub      BuildingType = "Nightclub"
	CounterfeitLab BuildingType = "Counterfeit Lab"
	DrugLab        BuildingType = "Drug Lab"
	PoliceStation  BuildingType = "Police Station"
)

// MaxUpgradeLevel is the highest upgrade level any building can reach.
const MaxUpgradeLevel = 3

// BuildingSpec is the acquisition profile of a building type.
type BuildingSpec struct {
	Type                  BuildingType
	Cost                  int
	BaseRevenue           int
	HeatGen               int
	FoodProvided          int
	EntertainmentProvided int
	IsIllicit             bool
}

// UpgradeStep is the change applied when a building reaches a level.
type UpgradeStep struct {
	Cost          int
	Revenue       int
	Heat          int
	Food          int
	Entertainment int
}

var catalog = []BuildingSpec{
	{Type: NoodleShop, Cost: 3000, BaseRevenue: 500, HeatGen: 1, FoodProvided: 30},
	{Type: MahjongParlor, Cost: 5000, BaseRevenue: 800, HeatGen: 2, EntertainmentProvided: 30},
	{Type: Warehouse, Cost: 4000, BaseRevenue: 600, HeatGen: 2, FoodProvided: 10},
	{Type: Nightclub, Cost: 8000, BaseRevenue: 1200, HeatGen: 3, FoodProvided: 10, EntertainmentProvided: 50},
	{Type: CounterfeitLab, Cost: 12000, BaseRevenue: 2000, HeatGen: 5, IsIllicit: true},
	{Type: DrugLab, Cost: 15000, BaseRevenue: 2500, HeatGen: 7, EntertainmentProvided: 10, IsIllicit: true},
	{Type: PoliceStation, Cost: 25000, BaseRevenue: 0, HeatGen: -5},
}

// Per-level deltas, index 0 is level 1.
var upgrades = map[BuildingType][MaxUpgradeLevel]UpgradeStep{
	NoodleShop: {
		{Revenue: 150, Heat: 0, Food: 10},
		{Revenue: 200, Heat: 1, Food: 15},
		{Revenue: 300, Heat: 1, Food: 20},
	},
	MahjongParlor: {
		{Revenue: 250, Heat: 1, Entertainment: 10},
		{Revenue: 350, Heat: 1, Entertainment: 15},
		{Revenue: 500, Heat: 2, Entertainment: 20},
	},
	Warehouse: {
		{Revenue: 200, Heat: 0, Food: 5},
		{Revenue: 250, Heat: 1, Food: 5},
		{Revenue: 350, Heat: 1, Food: 10},
	},
	Nightclub: {
		{Revenue: 400, Heat: 1, Entertainment: 15},
		{Revenue: 500, Heat: 2, Food: 5, Entertainment: 15},
		{Revenue: 700, Heat: 2, Food: 5, Entertainment: 20},
	},
	CounterfeitLab: {
		{Revenue: 600, Heat: 2},
		{Revenue: 800, Heat: 2},
		{Revenue: 1100, Heat: 3},
	},
	DrugLab: {
		{Revenue: 800, Heat: 3},
		{Revenue: 1000, Heat: 3, Entertainment: 5},
		{Revenue: 1400, Heat: 4, Entertainment: 5},
	},
	PoliceStation: {
		{Heat: -2},
		{Heat: -2},
		{Heat: -3},
	},
}

// Catalog returns every acquirable building type in display order.
func Catalog() []BuildingSpec {
	out := make([]BuildingSpec, len(catalog))
	copy(out, catalog)
	return out
}

// LookupBuilding returns the spec for a building type.
func LookupBuilding(t BuildingType) (BuildingSpec, bool) {
	for _, spec := range catalog {
		if spec.Type == t {
			return spec, true
		}
	}
	return BuildingSpec{}, false
}

// UpgradeFor returns the step that takes a building of type t to level.
// Level n costs half the acquisition cost times n.
func UpgradeFor(t BuildingType, level int) (UpgradeStep, bool) {
	steps, ok := upgrades[t]
	if !ok || level < 1 || level > MaxUpgradeLevel {
		return UpgradeStep{}, false
	}
	spec, _ := LookupBuilding(t)
	step := steps[level-1]
	step.Cost = spec.Cost * level / 2
	return step, true
}
