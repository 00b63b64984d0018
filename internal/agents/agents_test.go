package agents

import (
	"testing"

	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/entropy"
)

func TestNeedsLoyaltyDrift(t *testing.T) {
	tests := []struct {
		needs Needs
		want  int
	}{
		{Needs{Food: 10, Entertainment: 10, Pay: 10}, -5},
		{Needs{Food: 50, Entertainment: 50, Pay: 50}, 0},
		{Needs{Food: 90, Entertainment: 80, Pay: 90}, 2},
	}
	for _, tt := range tests {
		if got := tt.needs.LoyaltyDrift(); got != tt.want {
			t.Errorf("%+v drift = %d, want %d", tt.needs, got, tt.want)
		}
	}
}

func TestNeedsDrift(t *testing.T) {
	n := Needs{Food: 50, Entertainment: 5, Pay: 90}
	n.Drift(15, 0, true)
	if n != (Needs{Food: 55, Entertainment: 0, Pay: 100}) {
		t.Fatalf("paid drift = %+v", n)
	}
	n.Drift(0, 0, false)
	if n.Pay != 75 {
		t.Fatalf("unpaid pay = %d, want 75", n.Pay)
	}
}

func TestSoldierProgression(t *testing.T) {
	s := &StreetSoldier{Loyalty: 50, Skill: 70}
	s.GainExperience(60)
	if !s.IsVeteran || s.IsElite {
		t.Fatalf("veteran %v elite %v at 60 xp", s.IsVeteran, s.IsElite)
	}
	if s.Promotable() {
		t.Fatal("promotable below 80 xp")
	}
	s.Train(10, 60)
	if !s.IsElite || !s.Promotable() {
		t.Fatalf("skill %d xp %d: elite %v promotable %v", s.Skill, s.Experience, s.IsElite, s.Promotable())
	}
	s.Loyalty = 30
	if s.Loyal() {
		t.Fatal("loyalty 30 should not deploy")
	}
}

func TestToOfficerSpecialization(t *testing.T) {
	spec := SpecCollector
	s := &StreetSoldier{Name: "Lau Kit", Skill: 60, Experience: 90, Kills: 3, Specialization: &spec}
	o := s.ToOfficer("off-9")
	if o.ID != "off-9" || o.Name != "Lau Kit" || o.Rank != RankBlueLantern {
		t.Fatalf("officer = %+v", o)
	}
	if o.Skills.Enforcement != 36 || o.Skills.Diplomacy != 35 {
		t.Fatalf("skills = %+v", o.Skills)
	}
}

func TestRankTiers(t *testing.T) {
	if RankRedPole.Tier() != RankWhitePaperFan.Tier() {
		t.Error("office ranks should share a tier")
	}
	if RankDeputy.Tier() <= RankRedPole.Tier() || RankDragonhead.Tier() <= RankDeputy.Tier() {
		t.Error("rank tiers out of order")
	}
	if Rank("Janitor").Valid() {
		t.Error("unknown rank is valid")
	}
}

func TestOfficerWoundAndRecover(t *testing.T) {
	o := &Officer{Energy: 50, MaxEnergy: 100}
	o.Wound(2)
	o.Wound(1)
	if o.DaysToRecovery != 2 || o.Available() {
		t.Fatalf("wounded officer = %+v", o)
	}
	o.Recover()
	o.Recover()
	if o.IsWounded || !o.Available() {
		t.Fatal("officer did not recover")
	}
	o.AdjustEnergy(80)
	if o.Energy != 100 {
		t.Fatalf("energy = %d, want capped at 100", o.Energy)
	}
}

func TestSpawnerIsDeterministic(t *testing.T) {
	a := NewSpawner(entropy.NewSeeded(3)).Officer("off-1", RankRedPole)
	b := NewSpawner(entropy.NewSeeded(3)).Officer("off-1", RankRedPole)
	if a.Name != b.Name || a.Skills != b.Skills || a.Loyalty != b.Loyalty {
		t.Fatalf("same seed gave %+v and %+v", a, b)
	}
	if len(a.Traits) != 2 || a.Traits[0] == a.Traits[1] {
		t.Fatalf("traits = %v", a.Traits)
	}
	r := NewSpawner(entropy.NewSeeded(3)).Recruit("sol-1")
	if r.Loyalty < 40 || r.Loyalty > 70 || r.Skill < 20 || r.Skill > 45 {
		t.Fatalf("recruit out of range: %+v", r)
	}
}
