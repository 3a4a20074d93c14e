package ship

// Sku represents a purchasable store listing for a ship.
// A ship can carry several SKUs at once (standalone, warbond, package
// variants); a SKU whose price differs from the ship's list price is a promo.
type Sku struct {
	ID        string
	Title     string
	Price     int64 // cents
	Available bool
}

// Ship is immutable reference data supplied by the catalog.
// Prices are stored in minor currency units (cents). The engine never
// mutates a Ship; diagram nodes hold snapshots of catalog entries.
type Ship struct {
	ID           string
	Name         string
	Manufacturer string
	Msrp         int64 // list price in cents; 0 means unknown/variable
	Skus         []Sku
	Flyable      *bool
}

// NewShip creates a Ship value object
func NewShip(id, name, manufacturer string, msrp int64) *Ship {
	return &Ship{
		ID:           id,
		Name:         name,
		Manufacturer: manufacturer,
		Msrp:         msrp,
	}
}

// HasKnownPrice reports whether the ship carries a usable list price.
// A zero msrp is the sentinel for "unknown/variable price".
func (s *Ship) HasKnownPrice() bool {
	return s.Msrp > 0
}

// BestDiscountedSku returns the cheapest available SKU whose price differs
// from the ship's list price, or nil when the ship has no promo listing.
func (s *Ship) BestDiscountedSku() *Sku {
	return s.BestDiscountedSkuAbove(0)
}

// BestDiscountedSkuAbove returns the cheapest available promo SKU priced
// strictly above the given floor, or nil. Cheaper promos may exist but
// cannot serve an upgrade from a ship whose list price exceeds them.
func (s *Ship) BestDiscountedSkuAbove(floor int64) *Sku {
	var best *Sku
	for i := range s.Skus {
		sku := &s.Skus[i]
		if !sku.Available || sku.Price == s.Msrp || sku.Price <= floor {
			continue
		}
		if best == nil || sku.Price < best.Price {
			best = sku
		}
	}
	return best
}
