package tracker

import (
	"github.com/Citizens-Hub/ccu-planner/internal/domain/pricing"
	"github.com/Citizens-Hub/ccu-planner/internal/domain/upgrade"
)

// EdgeIndex is the derived completed-edge index: an O(1) done-set over
// "<fromShipID>-<toShipID>" keys plus per-pair consumption counts for
// hangar-sourced edges. It is rebuilt in full whenever the completed list
// changes; there is no incremental diff.
type EdgeIndex struct {
	done           map[string]bool
	hangarConsumed map[string]int
}

// RebuildIndex derives a fresh index from the completed-path list.
// Pure function: same input, same index.
func RebuildIndex(completed []*CompletedPath) *EdgeIndex {
	idx := &EdgeIndex{
		done:           make(map[string]bool),
		hangarConsumed: make(map[string]int),
	}
	for _, cp := range completed {
		if cp == nil || cp.Path == nil {
			continue
		}
		for _, edge := range cp.Path.Edges {
			key := edge.Key()
			idx.done[key] = true
			if edge.Pricing.SourceType == pricing.SourceHangar {
				idx.hangarConsumed[key]++
			}
		}
	}
	return idx
}

// IsEdgeCompleted reports whether the ship pair appears in any completed path
func (i *EdgeIndex) IsEdgeCompleted(fromShipID, toShipID string) bool {
	if i == nil {
		return false
	}
	return i.done[upgrade.EdgeKey(fromShipID, toShipID)]
}

// ConsumedCount reports how many completed hangar-sourced edges consume the
// certificate for the pair.
func (i *EdgeIndex) ConsumedCount(fromShipID, toShipID string) int {
	if i == nil {
		return 0
	}
	return i.hangarConsumed[upgrade.EdgeKey(fromShipID, toShipID)]
}
