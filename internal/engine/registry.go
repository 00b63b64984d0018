// Entity registries: lookups and removal over the ordered entity lists.
// Order is significant: battle deployment and event sampling walk the lists
// in registry order.
package engine

import (
	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/agents"
	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/economy"
	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/social"
)

// Officer returns the officer with id, or nil.
func (g *Game) Officer(id string) *agents.Officer {
	for _, o := range g.Officers {
		if o.ID == id {
			return o
		}
	}
	return nil
}

// Soldier returns the soldier with id, or nil.
func (g *Game) Soldier(id string) *agents.StreetSoldier {
	for _, s := range g.Soldiers {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// Building returns the building with id, or nil.
func (g *Game) Building(id string) *economy.Building {
	for _, b := range g.Buildings {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// Rival returns the rival with id, or nil.
func (g *Game) Rival(id string) *social.RivalGang {
	for _, r := range g.Rivals {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func (g *Game) removeOfficer(id string) {
	for i, o := range g.Officers {
		if o.ID == id {
			g.Officers = append(g.Officers[:i], g.Officers[i+1:]...)
			return
		}
	}
}

func (g *Game) removeSoldier(id string) {
	for i, s := range g.Soldiers {
		if s.ID == id {
			g.Soldiers = append(g.Soldiers[:i], g.Soldiers[i+1:]...)
			return
		}
	}
}

// ActiveSoldiers returns the soldiers not in custody.
func (g *Game) ActiveSoldiers() []*agents.StreetSoldier {
	out := make([]*agents.StreetSoldier, 0, len(g.Soldiers))
	for _, s := range g.Soldiers {
		if !s.IsArrested {
			out = append(out, s)
		}
	}
	return out
}

// LoyalSoldiers returns the soldiers willing to fight.
func (g *Game) LoyalSoldiers() []*agents.StreetSoldier {
	out := make([]*agents.StreetSoldier, 0, len(g.Soldiers))
	for _, s := range g.Soldiers {
		if s.Loyal() {
			out = append(out, s)
		}
	}
	return out
}

// OccupiedBuildings returns the staffed buildings.
func (g *Game) OccupiedBuildings() []*economy.Building {
	var out []*economy.Building
	for _, b := range g.Buildings {
		if b.IsOccupied {
			out = append(out, b)
		}
	}
	return out
}

// releaseBuilding breaks an officer-building pairing from either side.
func (g *Game) releaseBuilding(b *economy.Building) {
	if b.AssignedOfficerID != nil {
		if o := g.Officer(*b.AssignedOfficerID); o != nil {
			o.AssignedBuildingID = nil
		}
	}
	b.AssignedOfficerID = nil
	b.IsOccupied = false
}

func (g *Game) releaseOfficer(o *agents.Officer) {
	if o.AssignedBuildingID != nil {
		if b := g.Building(*o.AssignedBuildingID); b != nil {
			b.AssignedOfficerID = nil
			b.IsOccupied = false
		}
	}
	o.AssignedBuildingID = nil
}

// AssignmentsConsistent reports whether every officer-building pairing is
// symmetric and no building or officer is paired twice.
func (g *Game) AssignmentsConsistent() bool {
	seen := make(map[string]bool)
	for _, o := range g.Officers {
		if o.AssignedBuildingID == nil {
			continue
		}
		bid := *o.AssignedBuildingID
		if seen[bid] {
			return false
		}
		seen[bid] = true
		b := g.Building(bid)
		if b == nil || !b.IsOccupied || b.AssignedOfficerID == nil || *b.AssignedOfficerID != o.ID {
			return false
		}
	}
	for _, b := range g.Buildings {
		if b.AssignedOfficerID == nil {
			if b.IsOccupied {
				return false
			}
			continue
		}
		o := g.Officer(*b.AssignedOfficerID)
		if o == nil || o.AssignedBuildingID == nil || *o.AssignedBuildingID != b.ID {
			return false
		}
	}
	return true
}
