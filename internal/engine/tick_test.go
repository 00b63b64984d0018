package engine

import "testing"

func TestPhaseCycle(t *testing.T) {
	g := newTestGame(t)
	startDay, startPhase := g.Day, g.Phase

	want := []Phase{PhaseDay, PhaseEvening, PhaseNight, PhaseMorning}
	for i, w := range want {
		change := g.AdvancePhase()
		if change.To != w || g.Phase != w {
			t.Fatalf("advance %d: got %s, want %s", i, g.Phase, w)
		}
		if w != PhaseMorning && change.Report != nil {
			t.Fatalf("advance %d: daily report outside the night edge", i)
		}
	}
	if g.Phase != startPhase {
		t.Fatalf("phase after four advances = %s, want %s", g.Phase, startPhase)
	}
	if g.Day != startDay+1 {
		t.Fatalf("day = %d, want %d", g.Day, startDay+1)
	}
}

func TestNightEdgeRunsDailyCycle(t *testing.T) {
	g := newTestGame(t)
	g.Phase = PhaseNight
	change := g.AdvancePhase()
	if change.Report == nil {
		t.Fatal("night to morning produced no report")
	}
	if change.Report.Day != g.Day || change.Day != g.Day {
		t.Fatalf("report day %d, change day %d, game day %d", change.Report.Day, change.Day, g.Day)
	}
}

func TestPhaseValid(t *testing.T) {
	for _, p := range []Phase{PhaseMorning, PhaseDay, PhaseEvening, PhaseNight} {
		if !p.Valid() {
			t.Errorf("%s should be valid", p)
		}
	}
	if Phase("dusk").Valid() {
		t.Error("dusk should be invalid")
	}
}
