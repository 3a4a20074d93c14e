package planner

import (
	"log"

	"github.com/Citizens-Hub/ccu-planner/internal/domain/pricing"
	"github.com/Citizens-Hub/ccu-planner/internal/domain/upgrade"
)

// defaultMaxPathLen caps recursion depth. The diagram is user-authored and
// can be pathological; a path longer than this is abandoned.
const defaultMaxPathLen = 64

// PathFinder enumerates acyclic paths from root nodes to a target ship.
//
// It holds one piece of cross-call state: the node best-cost memo used by the
// pruning heuristic. The memo is shared across every root of one search and
// MUST be reset before each fresh search — Reset is the caller's obligation
// (FindAllPaths does it for you). Failing to reset corrupts pruning across
// unrelated searches.
//
// Traversal identity is by ship id: adjacency follows edges whose source ship
// matches the current node's ship, and termination compares ship ids. Two
// placements of the same ship behave as one merged vertex.
type PathFinder struct {
	bestCost   map[upgrade.NodeID]float64
	maxPathLen int
}

// NewPathFinder creates a path finder with the default depth cap
func NewPathFinder() *PathFinder {
	return NewPathFinderWithLimit(defaultMaxPathLen)
}

// NewPathFinderWithLimit creates a path finder with an explicit depth cap.
// A non-positive limit falls back to the default.
func NewPathFinderWithLimit(limit int) *PathFinder {
	if limit <= 0 {
		limit = defaultMaxPathLen
	}
	return &PathFinder{
		bestCost:   make(map[upgrade.NodeID]float64),
		maxPathLen: limit,
	}
}

// Reset clears the best-cost memo. Call before every fresh search.
func (f *PathFinder) Reset() {
	f.bestCost = make(map[upgrade.NodeID]float64)
}

// FindAllPaths resets the memo and enumerates paths from every root of the
// diagram to the target ship.
func (f *PathFinder) FindAllPaths(
	d *upgrade.Diagram,
	targetShipID string,
	ctx *pricing.Context,
	exchangeRate float64,
	concierge float64,
	prune bool,
) [][]upgrade.NodeID {
	f.Reset()
	var results [][]upgrade.NodeID
	for _, root := range d.Roots() {
		results = append(results, f.FindPaths(root, targetShipID, d, ctx, exchangeRate, concierge, prune)...)
	}
	return results
}

// FindPaths enumerates paths from one root node. The memo is NOT reset here:
// roots of the same search share it deliberately. Returns the node-id
// sequences that reached the target.
func (f *PathFinder) FindPaths(
	root *upgrade.Node,
	targetShipID string,
	d *upgrade.Diagram,
	ctx *pricing.Context,
	exchangeRate float64,
	concierge float64,
	prune bool,
) [][]upgrade.NodeID {
	var results [][]upgrade.NodeID
	f.walk(root, targetShipID, d, ctx, searchState{
		visited: map[upgrade.NodeID]bool{},
	}, exchangeRate, concierge, prune, &results)
	return results
}

// searchState is the per-branch DFS state. visited and path are copied for
// each branch so siblings may revisit nodes the current branch did not.
type searchState struct {
	visited map[upgrade.NodeID]bool
	path    []upgrade.NodeID
	usdCost int64
	cnyCost int64
}

func (f *PathFinder) walk(
	node *upgrade.Node,
	targetShipID string,
	d *upgrade.Diagram,
	ctx *pricing.Context,
	state searchState,
	exchangeRate float64,
	concierge float64,
	prune bool,
	results *[][]upgrade.NodeID,
) {
	state.path = append(state.path, node.ID)
	state.visited[node.ID] = true

	total := float64(state.usdCost)*exchangeRate + float64(state.cnyCost)*(1+concierge)

	if prune {
		if best, seen := f.bestCost[node.ID]; seen && total >= best {
			return
		}
	}
	// Recorded in both modes so a later pruning-enabled run benefits.
	if best, seen := f.bestCost[node.ID]; !seen || total < best {
		f.bestCost[node.ID] = total
	}

	if node.ShipID() == targetShipID {
		found := make([]upgrade.NodeID, len(state.path))
		copy(found, state.path)
		*results = append(*results, found)
		return
	}

	if len(state.path) >= f.maxPathLen {
		return
	}

	for _, edge := range d.OutgoingByShipID(node.ShipID()) {
		next := d.Node(edge.TargetNodeID)
		if next == nil {
			log.Printf("path search: edge target node %s missing, skipping", edge.TargetNodeID)
			continue
		}
		if state.visited[edge.TargetNodeID] {
			continue
		}

		usd, cny := state.usdCost, state.cnyCost
		price, currency, ok := edgeCost(edge, ctx)
		if !ok {
			log.Printf("path search: missing ship snapshots on edge %s, pricing as zero", edge.Key())
		}
		switch currency {
		case pricing.CNY:
			cny += price
		default:
			usd += price
		}

		f.walk(next, targetShipID, d, ctx, searchState{
			visited: copyVisited(state.visited),
			path:    state.path,
			usdCost: usd,
			cnyCost: cny,
		}, exchangeRate, concierge, prune, results)
	}
}

// edgeCost resolves an edge's price using its own stored source type and ship
// snapshots. Edges without snapshots contribute zero cost rather than
// aborting the search.
func edgeCost(edge *upgrade.Edge, ctx *pricing.Context) (int64, pricing.Currency, bool) {
	if edge.Pricing.SourceShip == nil || edge.Pricing.TargetShip == nil {
		if edge.Pricing.CustomPrice != nil {
			price, currency := edge.Cost(ctx)
			return price, currency, true
		}
		return 0, pricing.USD, false
	}
	price, currency := edge.Cost(ctx)
	return price, currency, true
}

func copyVisited(visited map[upgrade.NodeID]bool) map[upgrade.NodeID]bool {
	dup := make(map[upgrade.NodeID]bool, len(visited))
	for k, v := range visited {
		dup[k] = v
	}
	return dup
}
