// Officer interactions: morning tea, bonuses, reprimands, promotion and
// the rest of the boss's personnel decisions.
package engine

import (
	"fmt"

	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/agents"
)

const (
	teaLoyalty       = 5
	teaEnergy        = 10
	bonusLoyalty     = 20
	reprimandHeat    = 10
	reprimandLoyalty = 20
	promotionRep     = 10
)

// interactable fetches an officer for a morning interaction.
func (g *Game) interactable(officerID string) (*agents.Officer, error) {
	o := g.Officer(officerID)
	if o == nil {
		return nil, reject(ErrNotFound, "officer %s", officerID)
	}
	if err := g.requirePhase(PhaseMorning); err != nil {
		return nil, err
	}
	if !o.Available() {
		return nil, reject(ErrUnavailable, "%s", o.Name)
	}
	return o, nil
}

// ShareTea raises loyalty a little and, if the officer has not opened up yet,
// reveals what they are after. Tea takes energy.
func (g *Game) ShareTea(officerID string) error {
	o, err := g.interactable(officerID)
	if err != nil {
		return err
	}
	o.AdjustLoyalty(teaLoyalty)
	if o.CurrentAgenda == nil {
		agenda := agents.AgendaPool[g.src.Intn(len(agents.AgendaPool))]
		o.CurrentAgenda = &agenda
	}
	o.AdjustEnergy(-teaEnergy)
	g.record(fmt.Sprintf("Shared tea with %s", o.Name), "personnel")
	return nil
}

// GiveBonus pays an officer for loyalty. A bonus settles agendas about rank
// or ownership.
func (g *Game) GiveBonus(officerID string) error {
	o, err := g.interactable(officerID)
	if err != nil {
		return err
	}
	cost := g.Balance.BonusCost
	if !g.Resources.CanAfford(cost) {
		return reject(ErrInsufficientFunds, "bonus costs $%d", cost)
	}
	g.Resources.AdjustCash(-cost)
	o.AdjustLoyalty(bonusLoyalty)
	if o.AgendaMentions("rank", "own") {
		o.CurrentAgenda = nil
	}
	g.record(fmt.Sprintf("Paid %s a $%d bonus", o.Name, cost), "personnel")
	return nil
}

// ReprimandOfficer cools police attention at the cost of the officer's
// loyalty.
func (g *Game) ReprimandOfficer(officerID string) error {
	o, err := g.interactable(officerID)
	if err != nil {
		return err
	}
	g.Resources.ReduceHeat(reprimandHeat)
	o.AdjustLoyalty(-reprimandLoyalty)
	g.record(fmt.Sprintf("Reprimanded %s in front of the crew", o.Name), "personnel")
	return nil
}

// PromoteOfficer raises an officer to a strictly higher rank tier. It costs
// cash and needs face, which the promotion spends.
func (g *Game) PromoteOfficer(officerID string, newRank agents.Rank) error {
	o := g.Officer(officerID)
	if o == nil {
		return reject(ErrNotFound, "officer %s", officerID)
	}
	if err := g.requirePhase(PhaseMorning); err != nil {
		return err
	}
	if !newRank.Valid() || newRank.Tier() <= o.Rank.Tier() {
		return reject(ErrInvalid, "cannot promote %s from %s to %s", o.Name, o.Rank, newRank)
	}
	if !o.Available() {
		return reject(ErrUnavailable, "%s", o.Name)
	}
	if o.Face < g.Balance.PromotionFace {
		return reject(ErrIneligible, "%s has face %d, needs %d", o.Name, o.Face, g.Balance.PromotionFace)
	}
	if !g.Resources.CanAfford(g.Balance.PromotionCost) {
		return reject(ErrInsufficientFunds, "promotion costs $%d", g.Balance.PromotionCost)
	}

	g.Resources.AdjustCash(-g.Balance.PromotionCost)
	o.Face = 0
	o.Rank = newRank
	o.ApplyBoost(agents.BoostFor(newRank))
	g.Resources.AdjustReputation(promotionRep)
	g.record(fmt.Sprintf("%s was raised to %s", o.Name, newRank), "personnel")
	return nil
}

// FireOfficer dismisses an officer from the society. Rooting out a traitor
// earns respect; firing a loyal officer unsettles the rest.
func (g *Game) FireOfficer(officerID string) error {
	o := g.Officer(officerID)
	if o == nil {
		return reject(ErrNotFound, "officer %s", officerID)
	}
	g.releaseOfficer(o)
	g.removeOfficer(o.ID)
	if o.IsTraitor {
		g.Resources.AdjustReputation(5)
	} else {
		for _, other := range g.Officers {
			other.AdjustLoyalty(-3)
		}
	}
	g.record(fmt.Sprintf("%s was cast out of the society", o.Name), "personnel")
	return nil
}

// PostBail gets an arrested officer out of custody.
func (g *Game) PostBail(officerID string) error {
	o := g.Officer(officerID)
	if o == nil {
		return reject(ErrNotFound, "officer %s", officerID)
	}
	if !o.IsArrested {
		return reject(ErrIneligible, "%s is not in custody", o.Name)
	}
	if !g.Resources.CanAfford(g.Balance.BailCost) {
		return reject(ErrInsufficientFunds, "bail is $%d", g.Balance.BailCost)
	}
	g.Resources.AdjustCash(-g.Balance.BailCost)
	g.Resources.AdjustHeat(5)
	o.IsArrested = false
	o.AdjustLoyalty(10)
	g.record(fmt.Sprintf("Posted bail for %s", o.Name), "personnel")
	return nil
}

// DesignateSuccessor names the Deputy who takes over if the Dragonhead
// falls. There is at most one successor.
func (g *Game) DesignateSuccessor(officerID string) error {
	o := g.Officer(officerID)
	if o == nil {
		return reject(ErrNotFound, "officer %s", officerID)
	}
	if o.Rank != agents.RankDeputy {
		return reject(ErrIneligible, "%s is %s, not Deputy", o.Name, o.Rank)
	}
	if !o.Available() {
		return reject(ErrUnavailable, "%s", o.Name)
	}
	for _, other := range g.Officers {
		other.IsSuccessor = false
	}
	o.IsSuccessor = true
	o.AdjustFace(10)
	g.record(fmt.Sprintf("%s was named successor", o.Name), "personnel")
	return nil
}
