// Street soldier management: recruitment, training, specialization and
// promotion into the officer ranks.
package engine

import (
	"fmt"

	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/agents"
)

const (
	trainSkill      = 5
	trainExperience = 10
)

// RecruitSoldier hires a new street soldier.
func (g *Game) RecruitSoldier() (*agents.StreetSoldier, error) {
	if !g.Resources.CanAfford(g.Balance.RecruitCost) {
		return nil, reject(ErrInsufficientFunds, "recruiting costs $%d", g.Balance.RecruitCost)
	}
	g.Resources.AdjustCash(-g.Balance.RecruitCost)
	s := g.spawner.Recruit(g.nextSoldierID())
	g.Soldiers = append(g.Soldiers, s)
	g.record(fmt.Sprintf("%s joined the crew", s.Name), "personnel")
	return s, nil
}

// TrainSoldier drills a soldier, raising skill and experience.
func (g *Game) TrainSoldier(soldierID string) error {
	s := g.Soldier(soldierID)
	if s == nil {
		return reject(ErrNotFound, "soldier %s", soldierID)
	}
	if s.IsArrested {
		return reject(ErrUnavailable, "%s", s.Name)
	}
	if !g.Resources.CanAfford(g.Balance.TrainCost) {
		return reject(ErrInsufficientFunds, "training costs $%d", g.Balance.TrainCost)
	}
	g.Resources.AdjustCash(-g.Balance.TrainCost)
	s.Train(trainSkill, trainExperience)
	return nil
}

// SpecializeSoldier gives a soldier a role. A specialization is permanent.
func (g *Game) SpecializeSoldier(soldierID string, spec agents.Specialization) error {
	s := g.Soldier(soldierID)
	if s == nil {
		return reject(ErrNotFound, "soldier %s", soldierID)
	}
	if !spec.Valid() {
		return reject(ErrInvalid, "unknown specialization %q", spec)
	}
	if s.Specialization != nil {
		return reject(ErrIneligible, "%s is already a %s", s.Name, *s.Specialization)
	}
	if !g.Resources.CanAfford(g.Balance.SpecializeCost) {
		return reject(ErrInsufficientFunds, "specialization costs $%d", g.Balance.SpecializeCost)
	}
	g.Resources.AdjustCash(-g.Balance.SpecializeCost)
	s.Specialization = &spec
	if spec == agents.SpecEnforcer {
		s.Train(5, 0)
	}
	g.record(fmt.Sprintf("%s trained as %s", s.Name, spec), "personnel")
	return nil
}

// PromoteSoldierToOfficer raises a seasoned soldier to Blue Lantern. The
// soldier leaves the soldier registry and joins the officers.
func (g *Game) PromoteSoldierToOfficer(soldierID string) (*agents.Officer, error) {
	s := g.Soldier(soldierID)
	if s == nil {
		return nil, reject(ErrNotFound, "soldier %s", soldierID)
	}
	if s.IsArrested {
		return nil, reject(ErrUnavailable, "%s", s.Name)
	}
	if !s.Promotable() {
		return nil, reject(ErrIneligible, "%s needs %d experience and %d skill", s.Name,
			agents.PromotionExperience, agents.PromotionSkill)
	}
	g.removeSoldier(s.ID)
	o := s.ToOfficer(g.nextOfficerID())
	g.Officers = append(g.Officers, o)
	g.Resources.AdjustReputation(2)
	g.record(fmt.Sprintf("%s was raised from the street to Blue Lantern", o.Name), "personnel")
	return o, nil
}

// DismissSoldier lets a soldier go.
func (g *Game) DismissSoldier(soldierID string) error {
	s := g.Soldier(soldierID)
	if s == nil {
		return reject(ErrNotFound, "soldier %s", soldierID)
	}
	g.removeSoldier(s.ID)
	g.record(fmt.Sprintf("%s was dismissed", s.Name), "personnel")
	return nil
}
