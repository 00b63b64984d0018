// Package social provides the rival gangs of Kowloon and the street
// conditions that move their strength from day to day.
package social

// Relationship bounds.
const (
	MinRelationship = -100
	MaxRelationship = 100
)

// RivalGang is an AI-controlled faction. Rivals are never removed; defeat
// only reduces strength.
type RivalGang struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	District     string `json:"district"`
	Strength     int    `json:"strength"`
	Relationship int    `json:"relationship"` // -100 to +100

	HasTradeAgreement bool `json:"has_trade_agreement"`
	HasAlliance       bool `json:"has_alliance"`
	IsScouted         bool `json:"is_scouted"`
	IsActiveConflict  bool `json:"is_active_conflict"`
}

// Hostile reports whether the rival is at war with the syndicate or
// strongly dislikes it.
func (r *RivalGang) Hostile() bool {
	return r.IsActiveConflict || r.Relationship <= -30
}

// AdjustRelationship changes the relationship within bounds. An alliance
// breaks when relations fall below zero, a trade agreement below -20.
func (r *RivalGang) AdjustRelationship(delta int) {
	r.Relationship += delta
	if r.Relationship < MinRelationship {
		r.Relationship = MinRelationship
	}
	if r.Relationship > MaxRelationship {
		r.Relationship = MaxRelationship
	}
	if r.Relationship < 0 {
		r.HasAlliance = false
	}
	if r.Relationship < -20 {
		r.HasTradeAgreement = false
	}
}

// AdjustStrength changes strength, flooring at zero.
func (r *RivalGang) AdjustStrength(delta int) {
	r.Strength += delta
	if r.Strength < 0 {
		r.Strength = 0
	}
}

// SeedRivals creates the fixed initial set of rival gangs.
func SeedRivals() []*RivalGang {
	return []*RivalGang{
		{ID: "rival-1", Name: "Sun Yee On", District: "Tsim Sha Tsui", Strength: 140, Relationship: 0},
		{ID: "rival-2", Name: "14K", District: "Mong Kok", Strength: 120, Relationship: -40, IsActiveConflict: true},
		{ID: "rival-3", Name: "Wo Shing Wo", District: "Yau Ma Tei", Strength: 90, Relationship: 10},
		{ID: "rival-4", Name: "Big Circle Gang", District: "Sham Shui Po", Strength: 70, Relationship: -10},
	}
}
