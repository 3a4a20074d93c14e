package ship

import "context"

// Catalog provides read-only access to the ship reference data.
// Implemented in the adapter layer (file loader, HTTP importer).
type Catalog interface {
	// All returns every known ship
	All(ctx context.Context) ([]*Ship, error)

	// FindByID returns the ship with the given id, or ErrShipNotFound
	FindByID(ctx context.Context, id string) (*Ship, error)

	// FindByName returns the ship with the given display name (case-insensitive),
	// or ErrShipNotFound
	FindByName(ctx context.Context, name string) (*Ship, error)
}

// Index is an in-memory ship lookup keyed by id, built once from a Catalog
// and handed to the pricing context. Lookups on a nil Index miss gracefully.
type Index map[string]*Ship

// NewIndex builds an Index from a ship list
func NewIndex(ships []*Ship) Index {
	idx := make(Index, len(ships))
	for _, s := range ships {
		idx[s.ID] = s
	}
	return idx
}

// Get returns the ship for id, or nil when unknown
func (i Index) Get(id string) *Ship {
	if i == nil {
		return nil
	}
	return i[id]
}
