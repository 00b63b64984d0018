package engine

import "fmt"

// Phase is a part of the day. Phases cycle morning → day → evening → night.
type Phase string

const (
	PhaseMorning Phase = "morning"
	PhaseDay     Phase = "day"
	PhaseEvening Phase = "evening"
	PhaseNight   Phase = "night"
)

// Next returns the phase that follows p.
func (p Phase) Next() Phase {
	switch p {
	case PhaseMorning:
		return PhaseDay
	case PhaseDay:
		return PhaseEvening
	case PhaseEvening:
		return PhaseNight
	default:
		return PhaseMorning
	}
}

// Valid reports whether p is a known phase.
func (p Phase) Valid() bool {
	switch p {
	case PhaseMorning, PhaseDay, PhaseEvening, PhaseNight:
		return true
	}
	return false
}

// PhaseChange describes one clock transition. Report is set only on the
// night → morning edge, when the daily cycle ran.
type PhaseChange struct {
	From   Phase        `json:"from"`
	To     Phase        `json:"to"`
	Day    int          `json:"day"`
	Report *DailyReport `json:"report,omitempty"`
}

// AdvancePhase moves the clock forward one phase. It is the only way the
// clock moves. The day counter increments on the night → morning edge, which
// also runs the daily cycle.
func (g *Game) AdvancePhase() PhaseChange {
	from := g.Phase
	g.Phase = from.Next()
	change := PhaseChange{From: from, To: g.Phase, Day: g.Day}
	if from == PhaseNight {
		g.Day++
		change.Day = g.Day
		report := g.processDay()
		change.Report = &report
	}
	return change
}

func (g *Game) requirePhase(p Phase) error {
	if g.Phase != p {
		return reject(ErrWrongPhase, "only during %s, now %s", p, g.Phase)
	}
	return nil
}

// ClockLabel returns a short human-readable clock string.
func (g *Game) ClockLabel() string {
	return fmt.Sprintf("Day %d, %s", g.Day, g.Phase)
}
