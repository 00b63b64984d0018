package engine

import (
	"fmt"
	"log/slog"

	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/entropy"
	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/social"
)

const (
	dailyEnergy      = 20
	idleLoyaltyAfter = 3
	idleLoyalty      = 2
	traitorLoyalty   = 20
	traitorChance    = 0.1
)

// DailyReport summarizes one run of the daily cycle.
type DailyReport struct {
	Day          int            `json:"day"`
	Revenue      int            `json:"revenue"`
	TradeIncome  int            `json:"trade_income"`
	Expenses     int            `json:"expenses"`
	Net          int            `json:"net"`
	Paid         bool           `json:"paid"`
	HeatDelta    int            `json:"heat_delta"`
	Recovered    []string       `json:"recovered,omitempty"`
	Event        *EventInstance `json:"event,omitempty"`
	Cash         int            `json:"cash"`
	PoliceHeat   int            `json:"police_heat"`
	SoldierCount int            `json:"soldier_count"`
}

// processDay runs the night → morning settlement. The clock has already
// moved to the new day.
func (g *Game) processDay() DailyReport {
	rep := DailyReport{Day: g.Day}

	// Revenue. Buildings whose inactive period has elapsed come back online.
	food, entertainment, heatGen := 0, 0, 0
	for _, b := range g.Buildings {
		if b.InactiveUntilDay != nil && b.ActiveOn(g.Day) {
			b.InactiveUntilDay = nil
		}
		if !b.Producing(g.Day) {
			continue
		}
		rep.Revenue += b.BaseRevenue
		food += b.FoodProvided
		entertainment += b.EntertainmentProvided
		heatGen += b.HeatGen
	}
	for _, r := range g.Rivals {
		if r.HasTradeAgreement {
			rep.TradeIncome += g.Balance.TradeIncome
		}
	}
	rep.Expenses = len(g.Soldiers) * g.Balance.Stipend
	rep.Paid = g.Resources.Cash+rep.Revenue+rep.TradeIncome >= rep.Expenses
	rep.Net = rep.Revenue + rep.TradeIncome - rep.Expenses
	g.Resources.AdjustCash(rep.Net)

	heatBefore := g.Resources.PoliceHeat
	g.Resources.AdjustHeat(heatGen - g.Balance.HeatCooling)
	rep.HeatDelta = g.Resources.PoliceHeat - heatBefore

	for _, o := range g.Officers {
		wasWounded := o.IsWounded
		o.Recover()
		if wasWounded && !o.IsWounded {
			rep.Recovered = append(rep.Recovered, o.ID)
			g.record(fmt.Sprintf("%s is back on their feet", o.Name), "personnel")
		}
		o.AdjustEnergy(dailyEnergy)
		if o.Assigned() {
			o.DaysIdle = 0
			o.AdjustFace(1)
		} else if o.Available() {
			o.DaysIdle++
			if o.DaysIdle > idleLoyaltyAfter {
				o.AdjustLoyalty(-idleLoyalty)
			}
		}
		if !o.IsTraitor && o.Loyalty < traitorLoyalty && entropy.Chance(g.src, traitorChance) {
			o.IsTraitor = true
			slog.Debug("officer turned", "officer", o.ID, "loyalty", o.Loyalty)
		}
	}

	foodShare, entShare := 0, 0
	if n := len(g.Soldiers); n > 0 {
		foodShare, entShare = food/n, entertainment/n
	}
	for _, s := range g.Soldiers {
		s.Needs.Drift(foodShare, entShare, rep.Paid)
		s.AdjustLoyalty(s.Needs.LoyaltyDrift())
	}

	for i, r := range g.Rivals {
		r.AdjustStrength(g.streets.StrengthDrift(g.Day, i))
		if !r.IsActiveConflict {
			r.AdjustRelationship(social.RelationshipDecay(r.Relationship))
		}
	}

	if entropy.Chance(g.src, g.Balance.DailyEventChance) {
		rep.Event = g.GenerateDynamicEvent()
	}

	rep.Cash = g.Resources.Cash
	rep.PoliceHeat = g.Resources.PoliceHeat
	rep.SoldierCount = len(g.Soldiers)
	g.record(fmt.Sprintf("Day %d: revenue $%d, expenses $%d", g.Day, rep.Revenue, rep.Expenses), "economy")
	slog.Info("daily report",
		"day", rep.Day,
		"revenue", rep.Revenue,
		"trade", rep.TradeIncome,
		"expenses", rep.Expenses,
		"cash", rep.Cash,
		"heat", rep.PoliceHeat,
		"event", rep.Event != nil,
	)
	return rep
}
