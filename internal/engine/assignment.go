// Officer-to-building assignment and property management.
package engine

import (
	"fmt"

	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/economy"
)

// AssignOfficer puts an officer in charge of a building. Officers and
// buildings pair one-to-one.
func (g *Game) AssignOfficer(officerID, buildingID string) error {
	o := g.Officer(officerID)
	if o == nil {
		return reject(ErrNotFound, "officer %s", officerID)
	}
	b := g.Building(buildingID)
	if b == nil {
		return reject(ErrNotFound, "building %s", buildingID)
	}
	if o.Assigned() {
		return reject(ErrAlreadyAssigned, "%s runs %s", o.Name, *o.AssignedBuildingID)
	}
	if b.IsOccupied {
		return reject(ErrOccupied, "%s", b.Name)
	}
	if b.IsRebelBase {
		return reject(ErrRebelBase, "%s", b.Name)
	}
	if !o.Available() {
		return reject(ErrUnavailable, "%s", o.Name)
	}

	bid, oid := b.ID, o.ID
	o.AssignedBuildingID = &bid
	o.DaysIdle = 0
	b.IsOccupied = true
	b.AssignedOfficerID = &oid
	g.record(fmt.Sprintf("%s now runs %s", o.Name, b.Name), "personnel")
	return nil
}

// UnassignOfficer takes an officer off their building.
func (g *Game) UnassignOfficer(officerID string) error {
	o := g.Officer(officerID)
	if o == nil {
		return reject(ErrNotFound, "officer %s", officerID)
	}
	if !o.Assigned() {
		return reject(ErrNotAssigned, "%s", o.Name)
	}
	g.releaseOfficer(o)
	return nil
}

// AcquireBuilding buys a new building of type t for its catalog price.
func (g *Game) AcquireBuilding(t economy.BuildingType) (*economy.Building, error) {
	spec, ok := economy.LookupBuilding(t)
	if !ok {
		return nil, reject(ErrInvalid, "unknown building type %q", t)
	}
	if !g.Resources.CanAfford(spec.Cost) {
		return nil, reject(ErrInsufficientFunds, "%s costs $%d, have $%d", t, spec.Cost, g.Resources.Cash)
	}
	g.Resources.AdjustCash(-spec.Cost)
	b := economy.NewBuilding(g.nextBuildingID(), "", spec)
	g.Buildings = append(g.Buildings, b)
	g.record(fmt.Sprintf("Acquired a %s for $%d", t, spec.Cost), "economy")
	return b, nil
}

// UpgradeBuilding raises a building one level.
func (g *Game) UpgradeBuilding(buildingID string) error {
	b := g.Building(buildingID)
	if b == nil {
		return reject(ErrNotFound, "building %s", buildingID)
	}
	if b.IsRebelBase {
		return reject(ErrRebelBase, "%s", b.Name)
	}
	if b.UpgradeLevel >= b.MaxUpgradeLevel {
		return reject(ErrMaxLevel, "%s", b.Name)
	}
	step, ok := economy.UpgradeFor(b.Type, b.UpgradeLevel+1)
	if !ok {
		return reject(ErrInvalid, "no upgrade for %s", b.Type)
	}
	if !g.Resources.CanAfford(step.Cost) {
		return reject(ErrInsufficientFunds, "upgrade costs $%d", step.Cost)
	}
	g.Resources.AdjustCash(-step.Cost)
	b.ApplyUpgrade(step)
	g.record(fmt.Sprintf("%s upgraded to level %d", b.Name, b.UpgradeLevel), "economy")
	return nil
}

// ReclaimBuilding retakes a building held by rebels. It needs enough loyal
// soldiers to clear it out and cash to pay them.
func (g *Game) ReclaimBuilding(buildingID string) error {
	b := g.Building(buildingID)
	if b == nil {
		return reject(ErrNotFound, "building %s", buildingID)
	}
	if !b.IsRebelBase {
		return reject(ErrIneligible, "%s is not held by rebels", b.Name)
	}
	if n := len(g.LoyalSoldiers()); n < g.Balance.ReclaimSoldiers {
		return reject(ErrInsufficientSoldiers, "need %d loyal soldiers, have %d", g.Balance.ReclaimSoldiers, n)
	}
	if !g.Resources.CanAfford(g.Balance.ReclaimCost) {
		return reject(ErrInsufficientFunds, "reclaiming costs $%d", g.Balance.ReclaimCost)
	}
	g.Resources.AdjustCash(-g.Balance.ReclaimCost)
	g.Resources.AdjustHeat(5)
	b.IsRebelBase = false
	g.record(fmt.Sprintf("%s was taken back from the rebels", b.Name), "personnel")
	return nil
}
