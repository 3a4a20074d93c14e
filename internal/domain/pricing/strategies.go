package pricing

import (
	"github.com/Citizens-Hub/ccu-planner/internal/domain/hangar"
	"github.com/Citizens-Hub/ccu-planner/internal/domain/ship"
)

// strategy is one entry of the closed dispatch table. Both funcs are
// stateless; everything they need arrives through the context bundle.
type strategy struct {
	applicable func(source, target *ship.Ship, ctx *Context) bool
	price      func(source, target *ship.Ship, ctx *Context) Quote
}

var strategies = map[SourceType]strategy{
	SourceOfficial: {
		applicable: func(source, target *ship.Ship, _ *Context) bool {
			return source.Msrp > 0 && source.Msrp < target.Msrp
		},
		price: func(source, target *ship.Ship, _ *Context) Quote {
			return Quote{Price: floor(target.Msrp - source.Msrp), Currency: USD}
		},
	},

	SourceAvailableWB: {
		applicable: func(source, target *ship.Ship, _ *Context) bool {
			return target.BestDiscountedSkuAbove(source.Msrp) != nil
		},
		price: func(source, target *ship.Ship, _ *Context) Quote {
			sku := target.BestDiscountedSkuAbove(source.Msrp)
			if sku == nil {
				return Quote{Currency: USD}
			}
			return Quote{Price: floor(sku.Price - source.Msrp), Currency: USD}
		},
	},

	SourceManualWB: {
		applicable: func(_, _ *ship.Ship, _ *Context) bool { return true },
		price: func(_, _ *ship.Ship, ctx *Context) Quote {
			return Quote{Price: floor(ctx.ManualPrice), Currency: USD}
		},
	},

	SourceThirdParty: {
		applicable: func(_, _ *ship.Ship, _ *Context) bool { return true },
		price: func(_, _ *ship.Ship, ctx *Context) Quote {
			return Quote{Price: floor(ctx.ManualPrice), Currency: ctx.displayCurrency()}
		},
	},

	SourceHangar: {
		applicable: func(source, target *ship.Ship, ctx *Context) bool {
			item := hangar.Match(ctx.HangarItems, source.Name, target.Name)
			if item == nil {
				return false
			}
			return ctx.consumedCount(source.ID, target.ID) < item.Quantity
		},
		price: func(source, target *ship.Ship, ctx *Context) Quote {
			item := hangar.Match(ctx.HangarItems, source.Name, target.Name)
			if item == nil {
				return Quote{Currency: USD}
			}
			// Exhausted certificates are still priced for display; the flag
			// tells the UI the edge is unusable.
			return Quote{
				Price:    floor(item.Value),
				Currency: USD,
				IsUsedUp: ctx.consumedCount(source.ID, target.ID) >= item.Quantity,
			}
		},
	},

	SourceHistorical: {
		applicable: func(source, target *ship.Ship, ctx *Context) bool {
			return bestHistoricalPrice(source, target, ctx) > 0
		},
		price: func(source, target *ship.Ship, ctx *Context) Quote {
			hist := bestHistoricalPrice(source, target, ctx)
			if hist == 0 {
				return Quote{Currency: USD}
			}
			return Quote{Price: floor(hist - source.Msrp), Currency: USD}
		},
	},

	SourceSubscription: {
		applicable: func(source, target *ship.Ship, ctx *Context) bool {
			return findOffer(source, target, ctx) != nil
		},
		price: func(source, target *ship.Ship, ctx *Context) Quote {
			offer := findOffer(source, target, ctx)
			if offer == nil {
				return Quote{Currency: USD}
			}
			return Quote{Price: floor(offer.Price), Currency: offer.Currency}
		},
	},
}

// bestHistoricalPrice returns the lowest recorded promo price for the target
// that still exceeds the source's list price, or 0 when none qualifies.
func bestHistoricalPrice(source, target *ship.Ship, ctx *Context) int64 {
	if ctx == nil {
		return 0
	}
	var best int64
	for _, rec := range ctx.History[target.ID] {
		if rec.Price <= source.Msrp {
			continue
		}
		if best == 0 || rec.Price < best {
			best = rec.Price
		}
	}
	return best
}

// findOffer returns the subscription offer for exactly this ship-id pair
func findOffer(source, target *ship.Ship, ctx *Context) *Offer {
	if ctx == nil {
		return nil
	}
	for i := range ctx.Offers {
		if ctx.Offers[i].FromShipID == source.ID && ctx.Offers[i].ToShipID == target.ID {
			return &ctx.Offers[i]
		}
	}
	return nil
}

// floor clamps a price at zero; strategies never report negative prices
func floor(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
