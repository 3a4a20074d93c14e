package planner

import (
	"log"

	"github.com/Citizens-Hub/ccu-planner/internal/domain/pricing"
	"github.com/Citizens-Hub/ccu-planner/internal/domain/upgrade"
)

// CompletePath is one fully-resolved route from a root to the target: the
// node sequence, the edges between them, and running totals per currency
// bucket. It is derived on demand and never persisted directly; the tracker
// freezes a snapshot when the user marks it done.
type CompletePath struct {
	Nodes []*upgrade.Node
	Edges []*upgrade.Edge

	// StartPrice is the root placement's user-declared acquisition cost in
	// official currency, already folded into TotalUsd.
	StartPrice int64

	TotalUsd int64
	TotalCny int64

	HasUsdPricing bool
	HasCnyPricing bool
}

// TotalCost normalizes the two currency buckets into one comparable number:
// official spend times the exchange rate plus third-party spend marked up by
// the concierge fraction.
func (p *CompletePath) TotalCost(exchangeRate, concierge float64) float64 {
	return float64(p.TotalUsd)*exchangeRate + float64(p.TotalCny)*(1+concierge)
}

// ShipIDs returns the path's ship-id sequence, the structural identity used
// for completed-path matching.
func (p *CompletePath) ShipIDs() []string {
	ids := make([]string, len(p.Nodes))
	for i, n := range p.Nodes {
		ids[i] = n.ShipID()
	}
	return ids
}

// BuildCompletePaths resolves enumerated node-id sequences into complete
// paths with totals. startPrices maps root node ids to a user-declared
// starting price (what the root ship itself cost), added to the official
// total. Sequences referencing missing nodes or edges are summed without the
// missing step rather than dropped.
func BuildCompletePaths(
	pathIDs [][]upgrade.NodeID,
	d *upgrade.Diagram,
	startPrices map[upgrade.NodeID]int64,
	ctx *pricing.Context,
) []*CompletePath {
	paths := make([]*CompletePath, 0, len(pathIDs))

	for _, ids := range pathIDs {
		if len(ids) == 0 {
			continue
		}
		cp := &CompletePath{}

		for _, id := range ids {
			node := d.Node(id)
			if node == nil {
				log.Printf("complete path: node %s missing from diagram, skipping", id)
				continue
			}
			cp.Nodes = append(cp.Nodes, node)
		}

		for i := 0; i+1 < len(cp.Nodes); i++ {
			edge := d.EdgeBetween(cp.Nodes[i].ShipID(), cp.Nodes[i+1].ShipID())
			if edge == nil {
				log.Printf("complete path: no edge %s-%s, contributing zero cost",
					cp.Nodes[i].ShipID(), cp.Nodes[i+1].ShipID())
				continue
			}
			cp.Edges = append(cp.Edges, edge)

			price, currency := edge.Cost(ctx)
			switch currency {
			case pricing.CNY:
				cp.TotalCny += price
				cp.HasCnyPricing = true
			default:
				cp.TotalUsd += price
				cp.HasUsdPricing = true
			}
		}

		if start, ok := startPrices[ids[0]]; ok {
			cp.StartPrice = start
			cp.TotalUsd += start
		}

		paths = append(paths, cp)
	}

	return paths
}
