package upgrade

import "errors"

// Domain errors for diagram mutation and edge pricing

var (
	// ErrNodeNotFound is returned when an edge references a missing node
	ErrNodeNotFound = errors.New("diagram node not found")

	// ErrDuplicateEdge is returned when an edge for the same ordered ship
	// pair already exists in the diagram
	ErrDuplicateEdge = errors.New("duplicate edge for ship pair")

	// ErrZeroPricedSource is returned when the upgrade source has no usable
	// list price
	ErrZeroPricedSource = errors.New("source ship has no list price")

	// ErrNonIncreasingPrice is returned when the target is not more expensive
	// than the source
	ErrNonIncreasingPrice = errors.New("target price does not exceed source price")

	// ErrUnknownTargetPrice is returned when the target's price is unknown
	// and no pricing strategy can cover the pair
	ErrUnknownTargetPrice = errors.New("target price unknown and no strategy applies")
)
