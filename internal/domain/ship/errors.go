package ship

import "errors"

// Domain errors for catalog lookups

var (
	// ErrShipNotFound is returned when a ship id or name has no catalog entry
	ErrShipNotFound = errors.New("ship not found")

	// ErrEmptyCatalog is returned when a catalog source contains no ships
	ErrEmptyCatalog = errors.New("catalog contains no ships")
)
