// Package economy provides the syndicate's resource ledger and the building
// catalog that drives daily revenue.
package economy

// Bounds for the bounded resources.
const (
	MaxReputation = 100
	MaxHeat       = 100
	MaxInfluence  = 100
)

// Ledger holds the five syndicate resources. Every mutation clamps to the
// resource's valid range. Callers check affordability before spending; the
// ledger itself never refuses.
type Ledger struct {
	Cash       int `json:"cash"`        // >= 0, unbounded above
	Reputation int `json:"reputation"`  // 0–100
	PoliceHeat int `json:"police_heat"` // 0–100
	Intel      int `json:"intel"`       // >= 0
	Influence  int `json:"influence"`   // 0–100
}

// NewLedger creates a ledger with the given starting values, clamped.
func NewLedger(cash, reputation, heat, intel, influence int) Ledger {
	var l Ledger
	l.AdjustCash(cash)
	l.SetReputation(reputation)
	l.SetPoliceHeat(heat)
	l.SetIntel(intel)
	l.SetInfluence(influence)
	return l
}

// AdjustCash adds delta to cash, flooring at zero.
func (l *Ledger) AdjustCash(delta int) {
	l.Cash = floor0(l.Cash + delta)
}

// CanAfford reports whether cash covers cost.
func (l *Ledger) CanAfford(cost int) bool {
	return l.Cash >= cost
}

func (l *Ledger) SetReputation(v int) { l.Reputation = clamp(v, 0, MaxReputation) }
func (l *Ledger) SetPoliceHeat(v int) { l.PoliceHeat = clamp(v, 0, MaxHeat) }
func (l *Ledger) SetIntel(v int)      { l.Intel = floor0(v) }
func (l *Ledger) SetInfluence(v int)  { l.Influence = clamp(v, 0, MaxInfluence) }

// ReduceHeat lowers police heat by amount, flooring at zero.
func (l *Ledger) ReduceHeat(amount int) {
	l.SetPoliceHeat(l.PoliceHeat - amount)
}

func (l *Ledger) AdjustReputation(delta int) { l.SetReputation(l.Reputation + delta) }
func (l *Ledger) AdjustHeat(delta int)       { l.SetPoliceHeat(l.PoliceHeat + delta) }
func (l *Ledger) AdjustIntel(delta int)      { l.SetIntel(l.Intel + delta) }
func (l *Ledger) AdjustInfluence(delta int)  { l.SetInfluence(l.Influence + delta) }

// Valid reports whether every resource is within its bounds.
func (l Ledger) Valid() bool {
	return l.Cash >= 0 && l.Intel >= 0 &&
		l.Reputation >= 0 && l.Reputation <= MaxReputation &&
		l.PoliceHeat >= 0 && l.PoliceHeat <= MaxHeat &&
		l.Influence >= 0 && l.Influence <= MaxInfluence
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func floor0(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// Clamp bounds v to [lo, hi]. Shared by the entity packages for 0–100 stats.
func Clamp(v, lo, hi int) int {
	return clamp(v, lo, hi)
}
