package economy

import "testing"

func TestCatalog(t *testing.T) {
	tests := []struct {
		typ     BuildingType
		cost    int
		revenue int
		heat    int
		illicit bool
	}{
		{NoodleShop, 3000, 500, 1, false},
		{MahjongParlor, 5000, 800, 2, false},
		{Warehouse, 4000, 600, 2, false},
		{Nightclub, 8000, 1200, 3, false},
		{CounterfeitLab, 12000, 2000, 5, true},
		{DrugLab, 15000, 2500, 7, true},
		{PoliceStation, 25000, 0, -5, false},
	}
	if got := len(Catalog()); got != len(tests) {
		t.Fatalf("catalog has %d types, want %d", got, len(tests))
	}
	for _, tt := range tests {
		spec, ok := LookupBuilding(tt.typ)
		if !ok {
			t.Fatalf("%s missing from catalog", tt.typ)
		}
		if spec.Cost != tt.cost || spec.BaseRevenue != tt.revenue || spec.HeatGen != tt.heat || spec.IsIllicit != tt.illicit {
			t.Errorf("%s = %+v", tt.typ, spec)
		}
	}
	if _, ok := LookupBuilding("Casino"); ok {
		t.Error("unknown type found")
	}
}

func TestUpgradeFor(t *testing.T) {
	step, ok := UpgradeFor(Nightclub, 2)
	if !ok {
		t.Fatal("no level 2 nightclub upgrade")
	}
	if step.Cost != 8000 || step.Revenue != 500 {
		t.Fatalf("step = %+v", step)
	}
	for _, level := range []int{0, MaxUpgradeLevel + 1} {
		if _, ok := UpgradeFor(Nightclub, level); ok {
			t.Errorf("level %d should not exist", level)
		}
	}
}

func TestBuildingProduction(t *testing.T) {
	spec, _ := LookupBuilding(NoodleShop)
	b := NewBuilding("bld-1", "", spec)
	if b.Name != string(NoodleShop) {
		t.Errorf("default name = %q", b.Name)
	}
	if b.Producing(1) {
		t.Fatal("unstaffed building produces")
	}
	b.IsOccupied = true
	b.Deactivate(4)
	if b.Producing(3) || !b.Producing(4) {
		t.Fatal("inactive window wrong")
	}
	b.IsRebelBase = true
	if b.Producing(10) {
		t.Fatal("rebel base produces")
	}
}
