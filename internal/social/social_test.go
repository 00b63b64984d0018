package social

import "testing"

func TestRelationshipDecay(t *testing.T) {
	tests := []struct{ rel, want int }{
		{0, 0},
		{5, -1},
		{-5, 1},
		{50, -5},
		{-73, 7},
	}
	for _, tt := range tests {
		if got := RelationshipDecay(tt.rel); got != tt.want {
			t.Errorf("RelationshipDecay(%d) = %d, want %d", tt.rel, got, tt.want)
		}
	}
}

func TestAdjustRelationshipBreaksPacts(t *testing.T) {
	r := &RivalGang{Relationship: 10, HasAlliance: true, HasTradeAgreement: true}
	r.AdjustRelationship(-15)
	if r.HasAlliance || !r.HasTradeAgreement {
		t.Fatalf("at -5: alliance %v trade %v", r.HasAlliance, r.HasTradeAgreement)
	}
	r.AdjustRelationship(-200)
	if r.Relationship != MinRelationship || r.HasTradeAgreement {
		t.Fatalf("at floor: %+v", r)
	}
}

func TestStreetsDeterministic(t *testing.T) {
	a, b := NewStreets(42), NewStreets(42)
	for day := 1; day < 60; day++ {
		for slot := 0; slot < 4; slot++ {
			da, db := a.StrengthDrift(day, slot), b.StrengthDrift(day, slot)
			if da != db {
				t.Fatalf("day %d slot %d: %d != %d", day, slot, da, db)
			}
			if da < -4 || da > 4 {
				t.Fatalf("drift %d out of range", da)
			}
		}
	}
}

func TestSeedRivals(t *testing.T) {
	rivals := SeedRivals()
	if len(rivals) != 4 {
		t.Fatalf("%d rivals", len(rivals))
	}
	hostile := 0
	for _, r := range rivals {
		if r.Hostile() {
			hostile++
		}
	}
	if hostile != 1 {
		t.Fatalf("%d hostile rivals at start, want 1", hostile)
	}
}
