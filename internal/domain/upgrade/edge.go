package upgrade

import (
	"github.com/Citizens-Hub/ccu-planner/internal/domain/pricing"
	"github.com/Citizens-Hub/ccu-planner/internal/domain/ship"
)

// EdgePricing is the price payload carried by an edge. The ship snapshots are
// cached at edge-creation time so a later search never depends on the live
// catalog for an edge it already priced.
type EdgePricing struct {
	SourceType     pricing.SourceType
	BasePriceDelta int64 // target.Msrp - source.Msrp, cents
	CustomPrice    *int64
	Currency       pricing.Currency
	SourceShip     *ship.Ship
	TargetShip     *ship.Ship
}

// Edge is a directed, priced link between two diagram nodes
type Edge struct {
	SourceNodeID NodeID
	TargetNodeID NodeID
	Pricing      EdgePricing
}

// Key returns the completed-edge index key for this edge's ship pair
func (e *Edge) Key() string {
	return EdgeKey(ShipIDOf(e.SourceNodeID), ShipIDOf(e.TargetNodeID))
}

// Cost returns the resolved price of the edge in its currency bucket.
// The stored custom price wins; otherwise the edge is re-priced through the
// resolver using its own stored source type and ship snapshots.
func (e *Edge) Cost(ctx *pricing.Context) (int64, pricing.Currency) {
	if e.Pricing.CustomPrice != nil {
		return *e.Pricing.CustomPrice, e.currency()
	}
	q := pricing.Price(e.Pricing.SourceType, e.Pricing.SourceShip, e.Pricing.TargetShip, ctx)
	return q.Price, q.Currency
}

func (e *Edge) currency() pricing.Currency {
	if e.Pricing.Currency == "" {
		return pricing.USD
	}
	return e.Pricing.Currency
}

// EdgeKey builds the "<fromShipID>-<toShipID>" key used by the completed-edge
// index and duplicate-edge prevention.
func EdgeKey(fromShipID, toShipID string) string {
	return fromShipID + "-" + toShipID
}
