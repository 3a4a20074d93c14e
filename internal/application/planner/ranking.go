package planner

import (
	"sort"

	"github.com/Citizens-Hub/ccu-planner/internal/domain/pricing"
	"github.com/Citizens-Hub/ccu-planner/internal/domain/upgrade"
)

// CompletedIndex answers "is this edge already done". Implemented by the
// completed-path tracker; defined here so ranking does not depend on it.
type CompletedIndex interface {
	IsEdgeCompleted(fromShipID, toShipID string) bool
}

// SortByTotalCost orders paths by ascending normalized total cost.
// The sort is stable so equal-cost paths keep enumeration order, which keeps
// repeated runs on an unchanged graph deterministic.
func SortByTotalCost(paths []*CompletePath, exchangeRate, concierge float64) {
	sort.SliceStable(paths, func(i, j int) bool {
		return paths[i].TotalCost(exchangeRate, concierge) < paths[j].TotalCost(exchangeRate, concierge)
	})
}

// NewInvestmentCost is the "money not yet spent" total for a path: the sum of
// edge costs strictly after the last completed edge, excluding hangar edges
// (those certificates are already paid for), plus the start price when no
// edge of the path is completed yet.
func NewInvestmentCost(p *CompletePath, index CompletedIndex, exchangeRate, concierge float64) float64 {
	lastCompleted := -1
	for i, edge := range p.Edges {
		if index != nil && index.IsEdgeCompleted(upgrade.ShipIDOf(edge.SourceNodeID), upgrade.ShipIDOf(edge.TargetNodeID)) {
			lastCompleted = i
		}
	}

	var usd, cny int64
	for i := lastCompleted + 1; i < len(p.Edges); i++ {
		edge := p.Edges[i]
		if edge.Pricing.SourceType == pricing.SourceHangar {
			continue
		}
		price := edge.Pricing.BasePriceDelta
		if edge.Pricing.CustomPrice != nil {
			price = *edge.Pricing.CustomPrice
		}
		if edge.Pricing.Currency == pricing.CNY {
			cny += price
		} else {
			usd += price
		}
	}

	if lastCompleted < 0 {
		usd += p.StartPrice
	}

	return float64(usd)*exchangeRate + float64(cny)*(1+concierge)
}

// SortByNewInvestment orders paths by ascending new-investment cost
func SortByNewInvestment(paths []*CompletePath, index CompletedIndex, exchangeRate, concierge float64) {
	sort.SliceStable(paths, func(i, j int) bool {
		return NewInvestmentCost(paths[i], index, exchangeRate, concierge) <
			NewInvestmentCost(paths[j], index, exchangeRate, concierge)
	})
}
