package upgrade

import (
	"github.com/Citizens-Hub/ccu-planner/internal/domain/pricing"
)

// PricingService builds and re-prices edges through the strategy resolver.
//
// This is a pure domain service: no persistence, no global state. The caller
// supplies the pricing context on every call.
type PricingService struct{}

// NewPricingService creates an edge pricing service
func NewPricingService() *PricingService {
	return &PricingService{}
}

// CreateEdge builds a priced edge between two nodes.
//
// Rules:
//   - a zero-priced source is rejected outright
//   - the target must be strictly more expensive, except that a zero target
//     msrp is allowed as the unknown-price sentinel when some substantive
//     strategy (hangar, subscription, promo, historical) can cover the pair
//   - the auto-selected strategy's quote is stored as the edge's custom price
func (s *PricingService) CreateEdge(source, target *Node, ctx *pricing.Context) (*Edge, error) {
	src, dst := source.Ship, target.Ship

	if src.Msrp == 0 {
		return nil, ErrZeroPricedSource
	}
	if dst.Msrp != 0 && dst.Msrp <= src.Msrp {
		return nil, ErrNonIncreasingPrice
	}
	if dst.Msrp == 0 && !hasSubstantiveStrategy(pricing.ApplicableStrategies(src, dst, ctx)) {
		return nil, ErrUnknownTargetPrice
	}

	st := pricing.AutoSelect(src, dst, ctx)
	quote := pricing.Price(st, src, dst, ctx)
	price := quote.Price

	return &Edge{
		SourceNodeID: source.ID,
		TargetNodeID: target.ID,
		Pricing: EdgePricing{
			SourceType:     st,
			BasePriceDelta: dst.Msrp - src.Msrp,
			CustomPrice:    &price,
			Currency:       quote.Currency,
			SourceShip:     src,
			TargetShip:     dst,
		},
	}, nil
}

// CanCreateEdge is the boolean form of CreateEdge's validation, for callers
// that want to warn and skip rather than handle an error.
func (s *PricingService) CanCreateEdge(source, target *Node, ctx *pricing.Context) bool {
	src, dst := source.Ship, target.Ship
	if src.Msrp == 0 {
		return false
	}
	if dst.Msrp != 0 && dst.Msrp <= src.Msrp {
		return false
	}
	if dst.Msrp == 0 && !hasSubstantiveStrategy(pricing.ApplicableStrategies(src, dst, ctx)) {
		return false
	}
	return true
}

// UpdateEdge re-prices an edge under an explicit strategy type.
//
// When customPrice is nil the price is recomputed through the strategy, and
// the override is only kept when it differs from the base official delta —
// an edge priced at its own default stays clean.
func (s *PricingService) UpdateEdge(edge *Edge, newType pricing.SourceType, customPrice *int64, ctx *pricing.Context) {
	edge.Pricing.SourceType = newType

	if customPrice != nil {
		edge.Pricing.CustomPrice = customPrice
		edge.Pricing.Currency = currencyFor(newType, ctx)
		return
	}

	quote := pricing.Price(newType, edge.Pricing.SourceShip, edge.Pricing.TargetShip, ctx)
	edge.Pricing.Currency = quote.Currency

	baseDelta := edge.Pricing.BasePriceDelta
	if baseDelta < 0 {
		baseDelta = 0
	}
	if quote.Price == baseDelta {
		edge.Pricing.CustomPrice = nil
		return
	}
	price := quote.Price
	edge.Pricing.CustomPrice = &price
}

// hasSubstantiveStrategy reports whether the applicable set contains anything
// beyond the always-applicable manual declarations and the official default.
// Only those strategies can justify an unknown-price target.
func hasSubstantiveStrategy(applicable []pricing.SourceType) bool {
	for _, st := range applicable {
		switch st {
		case pricing.SourceHangar, pricing.SourceSubscription,
			pricing.SourceAvailableWB, pricing.SourceHistorical:
			return true
		}
	}
	return false
}

// currencyFor picks the currency bucket for an explicit override price
func currencyFor(st pricing.SourceType, ctx *pricing.Context) pricing.Currency {
	if st == pricing.SourceThirdParty {
		if ctx != nil && ctx.DisplayCurrency != "" {
			return ctx.DisplayCurrency
		}
		return pricing.CNY
	}
	return pricing.USD
}
