package pricing

import (
	"sort"

	"github.com/Citizens-Hub/ccu-planner/internal/domain/ship"
)

// ApplicableStrategies returns every strategy that can price the given pair,
// in built-in priority order.
func ApplicableStrategies(source, target *ship.Ship, ctx *Context) []SourceType {
	var applicable []SourceType
	for _, st := range AllSourceTypes() {
		if strategies[st].applicable(source, target, ctx) {
			applicable = append(applicable, st)
		}
	}
	return applicable
}

// AutoSelect picks the strategy for a new edge.
//
// Selection order:
//  1. the transient preferred override, when set and applicable
//  2. the applicable strategy ranked first by the user's priority order
//     (strategies missing from the list sort after listed ones, built-in
//     priority breaks ties)
//  3. official, as the defensive default when nothing is applicable
func AutoSelect(source, target *ship.Ship, ctx *Context) SourceType {
	applicable := ApplicableStrategies(source, target, ctx)

	if ctx != nil && ctx.Preferred != nil {
		for _, st := range applicable {
			if st == *ctx.Preferred {
				return st
			}
		}
	}

	if len(applicable) == 0 {
		return SourceOfficial
	}

	ranked := make([]SourceType, len(applicable))
	copy(ranked, applicable)
	sort.SliceStable(ranked, func(i, j int) bool {
		ri, rj := priorityRank(ranked[i], ctx), priorityRank(ranked[j], ctx)
		if ri != rj {
			return ri < rj
		}
		return ranked[i].BasePriority() < ranked[j].BasePriority()
	})
	return ranked[0]
}

// priorityRank is the strategy's index in the user's priority order, or a
// rank past the end when the list does not mention it.
func priorityRank(st SourceType, ctx *Context) int {
	if ctx == nil {
		return len(basePriority)
	}
	for i, p := range ctx.PriorityOrder {
		if p == st {
			return i
		}
	}
	return len(ctx.PriorityOrder) + len(basePriority)
}

// Price computes the quote for the pair under an explicit strategy.
// Unknown source types degrade to official pricing.
func Price(st SourceType, source, target *ship.Ship, ctx *Context) Quote {
	s, ok := strategies[st]
	if !ok {
		s = strategies[SourceOfficial]
	}
	return s.price(source, target, ctx)
}
