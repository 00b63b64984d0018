package agents

// Needs tracks how well a soldier is looked after. All values 0–100.
type Needs struct {
	Food          int `json:"food"`
	Entertainment int `json:"entertainment"`
	Pay           int `json:"pay"`
}

// Average returns the mean of the three needs.
func (n Needs) Average() int {
	return (n.Food + n.Entertainment + n.Pay) / 3
}

// Drift applies one day of need change. food and entertainment are the
// per-soldier shares provided by the syndicate's buildings; paid reports
// whether the stipend went out in full.
func (n *Needs) Drift(food, entertainment int, paid bool) {
	n.Food = clampStat(n.Food - needDecay + food)
	n.Entertainment = clampStat(n.Entertainment - needDecay + entertainment)
	if paid {
		n.Pay = clampStat(n.Pay + 20)
	} else {
		n.Pay = clampStat(n.Pay - 25)
	}
}

const needDecay = 10

// Loyalty drift thresholds on average need satisfaction.
const (
	neglectedBelow = 30
	contentAbove   = 70
)

// LoyaltyDrift returns the daily loyalty change implied by the needs.
func (n Needs) LoyaltyDrift() int {
	avg := n.Average()
	switch {
	case avg < neglectedBelow:
		return -5
	case avg > contentAbove:
		return 2
	default:
		return 0
	}
}
