package pricing

// SourceType identifies the purchase mechanism that prices an upgrade edge.
// The set is closed: strategies are dispatched through a lookup table rather
// than runtime polymorphism, and the user's priority order is data.
type SourceType string

const (
	// SourceOfficial is the plain list-price difference in official currency
	SourceOfficial SourceType = "official"

	// SourceAvailableWB prices against a currently-available discounted SKU
	SourceAvailableWB SourceType = "available_wb"

	// SourceManualWB is a manually-declared promo price in official currency
	SourceManualWB SourceType = "manual_wb"

	// SourceThirdParty is a manually-declared off-platform price in the
	// user's display currency
	SourceThirdParty SourceType = "third_party"

	// SourceHangar prices via an upgrade certificate the user already owns,
	// with finite quantity
	SourceHangar SourceType = "hangar"

	// SourceHistorical prices against a past promo record for the target
	SourceHistorical SourceType = "historical"

	// SourceSubscription prices via an externally-imported subscription offer
	SourceSubscription SourceType = "subscription"
)

// basePriority is the built-in ordering used as the final tiebreak when the
// user's priority list does not mention a strategy. Lower wins.
var basePriority = map[SourceType]int{
	SourceHangar:       0,
	SourceSubscription: 1,
	SourceAvailableWB:  2,
	SourceHistorical:   3,
	SourceManualWB:     4,
	SourceThirdParty:   5,
	SourceOfficial:     6,
}

// AllSourceTypes returns every known source type in built-in priority order
func AllSourceTypes() []SourceType {
	return []SourceType{
		SourceHangar,
		SourceSubscription,
		SourceAvailableWB,
		SourceHistorical,
		SourceManualWB,
		SourceThirdParty,
		SourceOfficial,
	}
}

// IsValid reports whether t names a known source type
func (t SourceType) IsValid() bool {
	_, ok := basePriority[t]
	return ok
}

// BasePriority returns the built-in numeric priority for t.
// Unknown types sort last.
func (t SourceType) BasePriority() int {
	if p, ok := basePriority[t]; ok {
		return p
	}
	return len(basePriority)
}
