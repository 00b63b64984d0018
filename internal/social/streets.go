package social

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Streets models slow, seeded swings in each district's underworld: a rival
// recruits for a stretch of days, then bleeds members. The same seed yields
// the same swings, so a saved game resumes on the same trajectory.
type Streets struct {
	noise opensimplex.Noise
}

// NewStreets creates a street model for seed.
func NewStreets(seed int64) *Streets {
	return &Streets{noise: opensimplex.New(seed + 7)}
}

const (
	dayFrequency   = 0.15
	driftAmplitude = 4.0
)

// Pressure returns the noise value in [-1, 1] for a rival slot on a day.
func (s *Streets) Pressure(day, slot int) float64 {
	// Two octaves: a slow trend and a faster ripple.
	x := float64(day) * dayFrequency
	y := float64(slot) * 3.7
	v := s.noise.Eval2(x, y)*0.7 + s.noise.Eval2(x*2, y+11)*0.3
	return math.Max(-1, math.Min(1, v))
}

// StrengthDrift returns the daily strength change for a rival slot.
func (s *Streets) StrengthDrift(day, slot int) int {
	return int(math.Round(s.Pressure(day, slot) * driftAmplitude))
}

// RelationshipDecay pulls a relationship one tenth of the way back toward
// neutral, at least one point while it is non-zero.
func RelationshipDecay(rel int) int {
	if rel == 0 {
		return 0
	}
	step := rel / 10
	if step == 0 {
		if rel > 0 {
			step = 1
		} else {
			step = -1
		}
	}
	return -step
}
