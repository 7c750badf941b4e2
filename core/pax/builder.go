// Package pax converts traveler rosters into pax compositions,
// honoring grouping and age thresholds.
package pax

import "tourcost/core/types"

// class is the billing classification of one traveler
type class int

const (
	classAdult class = iota
	classChild
	classInfant
)

// classify buckets a traveler by age. No age means adult; infants
// below the infant limit are excluded from pricing entirely.
func classify(t types.Traveler, svc *types.Service) class {
	if t.Age == nil {
		return classAdult
	}
	age := *t.Age
	if svc.InfantAgeLimit > 0 && age < svc.InfantAgeLimit {
		return classInfant
	}
	if svc.ChildAgeLimit > 0 && age < svc.ChildAgeLimit {
		return classChild
	}
	return classAdult
}

// isFree reports the traveler's free flag for the side being resolved
func isFree(t types.Traveler, side types.Side) bool {
	if side == types.SideCost {
		return t.CostFree
	}
	return t.PriceFree
}

// Build converts a roster into pax compositions for one side.
//
// Grouping services emit one composition per distinct room id, in
// first-seen roster order. Non-grouping services emit a single pooled
// composition. An empty roster yields no compositions, which callers
// short-circuit to a zero amount.
func Build(roster []types.Traveler, svc *types.Service, side types.Side) []types.PaxComposition {
	if len(roster) == 0 {
		return nil
	}

	if !svc.GroupsPax {
		pooled := types.PaxComposition{}
		for _, t := range roster {
			tally(&pooled, t, svc, side)
		}
		if pooled.Total() == 0 {
			return nil
		}
		return []types.PaxComposition{pooled}
	}

	var order []string
	groups := make(map[string]*types.PaxComposition)
	for _, t := range roster {
		g, ok := groups[t.RoomID]
		if !ok {
			g = &types.PaxComposition{GroupID: t.RoomID}
			groups[t.RoomID] = g
			order = append(order, t.RoomID)
		}
		tally(g, t, svc, side)
	}

	out := make([]types.PaxComposition, 0, len(order))
	for _, id := range order {
		if groups[id].Total() == 0 {
			continue
		}
		out = append(out, *groups[id])
	}
	return out
}

// tally adds one traveler to a composition
func tally(c *types.PaxComposition, t types.Traveler, svc *types.Service, side types.Side) {
	switch classify(t, svc) {
	case classAdult:
		c.Adults++
		if isFree(t, side) {
			c.FreeAdults++
		}
	case classChild:
		c.Children++
		if isFree(t, side) {
			c.FreeChildren++
		}
	case classInfant:
		// infants ride free and occupy no bracket cell
	}
}
