package pricing

import (
	"time"

	"github.com/Citizens-Hub/ccu-planner/internal/domain/hangar"
	"github.com/Citizens-Hub/ccu-planner/internal/domain/ship"
)

// Currency buckets used by the engine. Official-store spend is tracked in
// USD; third-party spend in the user's display currency (CNY by default).
type Currency string

const (
	USD Currency = "USD"
	CNY Currency = "CNY"
)

// Quote is the result of pricing a (source, target) pair under one strategy.
// Price is in minor currency units. IsUsedUp is set by the hangar strategy
// when the matching certificate's quantity is fully consumed: the quote is
// still produced for display, but the edge is unusable.
type Quote struct {
	Price    int64
	Currency Currency
	IsUsedUp bool
}

// HistoricalRecord is one entry of the historical promo price table for a
// ship: the promoted price and the list price it was recorded against.
type HistoricalRecord struct {
	Price      int64 // cents
	BaseMsrp   int64 // cents
	RecordedAt time.Time
}

// Offer is an externally-imported subscription upgrade offer for an exact
// (from, to) ship-id pair.
type Offer struct {
	FromShipID string
	ToShipID   string
	Price      int64 // cents
	Currency   Currency
}

// Context bundles every external data source a strategy may consult.
// It is passed explicitly through resolver calls; there is no process-wide
// preferred-type or priority state.
type Context struct {
	// Ships is the catalog index, used to resolve snapshots during search
	Ships ship.Index

	// History maps ship id to its historical promo records
	History map[string][]HistoricalRecord

	// HangarItems is the user's owned-upgrade inventory
	HangarItems []*hangar.Item

	// Offers are externally-imported subscription offers
	Offers []Offer

	// ManualPrice is the user-supplied override consumed by the manual-promo
	// and third-party strategies, in cents
	ManualPrice int64

	// DisplayCurrency denominates third-party prices
	DisplayCurrency Currency

	// PriorityOrder is the user's strategy preference, best first. Strategies
	// missing from the list sort after the listed ones.
	PriorityOrder []SourceType

	// Preferred is a transient override: when set and applicable it wins
	// auto-selection outright
	Preferred *SourceType

	// HangarConsumed reports how many completed hangar-sourced edges already
	// consume the certificate for the given pair. Wired to the completed-path
	// tracker's index; nil means nothing is consumed.
	HangarConsumed func(fromShipID, toShipID string) int
}

// consumedCount is the nil-safe accessor for HangarConsumed
func (c *Context) consumedCount(fromShipID, toShipID string) int {
	if c == nil || c.HangarConsumed == nil {
		return 0
	}
	return c.HangarConsumed(fromShipID, toShipID)
}

// displayCurrency defaults to CNY when the context does not set one
func (c *Context) displayCurrency() Currency {
	if c == nil || c.DisplayCurrency == "" {
		return CNY
	}
	return c.DisplayCurrency
}
