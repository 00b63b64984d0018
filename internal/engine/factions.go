// Rival diplomacy: scouting, trade, alliances and buying peace.
package engine

import (
	"fmt"

	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/social"
)

func (g *Game) rival(rivalID string) (*social.RivalGang, error) {
	r := g.Rival(rivalID)
	if r == nil {
		return nil, reject(ErrNotFound, "rival %s", rivalID)
	}
	return r, nil
}

// ScoutRival spends intel to reveal a rival's true strength.
func (g *Game) ScoutRival(rivalID string) error {
	r, err := g.rival(rivalID)
	if err != nil {
		return err
	}
	if r.IsScouted {
		return reject(ErrIneligible, "%s already scouted", r.Name)
	}
	cost := g.Balance.ScoutIntelCost
	if g.Resources.Intel < cost {
		return reject(ErrInsufficientIntel, "scouting needs %d intel", cost)
	}
	g.Resources.AdjustIntel(-cost)
	r.IsScouted = true
	g.record(fmt.Sprintf("Scouts report %s fields about %d fighters' worth of muscle", r.Name, r.Strength), "diplomacy")
	return nil
}

// ProposeTrade opens a trade agreement with a friendly rival. Agreements pay
// out every day.
func (g *Game) ProposeTrade(rivalID string) error {
	r, err := g.rival(rivalID)
	if err != nil {
		return err
	}
	if r.HasTradeAgreement {
		return reject(ErrIneligible, "already trading with %s", r.Name)
	}
	if r.IsActiveConflict || r.Relationship < g.Balance.TradeRelationship {
		return reject(ErrIneligible, "%s will not trade (relationship %d)", r.Name, r.Relationship)
	}
	if !g.Resources.CanAfford(g.Balance.TradeCost) {
		return reject(ErrInsufficientFunds, "opening trade costs $%d", g.Balance.TradeCost)
	}
	g.Resources.AdjustCash(-g.Balance.TradeCost)
	r.HasTradeAgreement = true
	r.AdjustRelationship(5)
	g.record(fmt.Sprintf("Trade agreement signed with %s", r.Name), "diplomacy")
	return nil
}

// FormAlliance binds a close rival to the syndicate. It needs a strong
// relationship and spends influence.
func (g *Game) FormAlliance(rivalID string) error {
	r, err := g.rival(rivalID)
	if err != nil {
		return err
	}
	if r.HasAlliance {
		return reject(ErrIneligible, "already allied with %s", r.Name)
	}
	if r.IsActiveConflict || r.Relationship < g.Balance.AllianceRelationship {
		return reject(ErrIneligible, "%s will not ally (relationship %d)", r.Name, r.Relationship)
	}
	if g.Resources.Influence < g.Balance.AllianceInfluence {
		return reject(ErrInsufficientInfluence, "alliance needs %d influence", g.Balance.AllianceInfluence)
	}
	g.Resources.AdjustInfluence(-10)
	r.HasAlliance = true
	g.record(fmt.Sprintf("Blood oath sworn with %s", r.Name), "diplomacy")
	return nil
}

// PeaceCost returns what ending the conflict with r costs.
func (g *Game) PeaceCost(r *social.RivalGang) int {
	return r.Strength * g.Balance.PeaceCostPerStrength
}

// NegotiatePeace buys an end to an active conflict without a fight.
func (g *Game) NegotiatePeace(rivalID string) error {
	r, err := g.rival(rivalID)
	if err != nil {
		return err
	}
	if !r.IsActiveConflict {
		return reject(ErrNoConflict, "%s", r.Name)
	}
	cost := g.PeaceCost(r)
	if !g.Resources.CanAfford(cost) {
		return reject(ErrInsufficientFunds, "peace with %s costs $%d", r.Name, cost)
	}
	g.Resources.AdjustCash(-cost)
	r.IsActiveConflict = false
	g.record(fmt.Sprintf("Paid $%d to end the war with %s", cost, r.Name), "diplomacy")
	return nil
}
