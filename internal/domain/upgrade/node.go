package upgrade

import (
	"strings"

	"github.com/google/uuid"

	"github.com/Citizens-Hub/ccu-planner/internal/domain/ship"
)

// NodeID identifies one placement of a ship on the diagram. The same ship may
// be placed more than once, so node ids are distinct from ship ids — but the
// underlying ship id is encoded as a recoverable suffix, and all traversal
// identity (adjacency, termination) is by ship id, not node id.
type NodeID string

const nodeIDSeparator = ":"

// NewNodeID generates a fresh node id for a placement of the given ship
func NewNodeID(shipID string) NodeID {
	return NodeID(uuid.NewString()[:8] + nodeIDSeparator + shipID)
}

// ShipIDOf recovers the underlying ship id from a node id
func ShipIDOf(id NodeID) string {
	_, shipID, found := strings.Cut(string(id), nodeIDSeparator)
	if !found {
		return string(id)
	}
	return shipID
}

// Node is a placement of a ship on the user-authored diagram. X/Y are layout
// coordinates the engine carries but never reads.
type Node struct {
	ID   NodeID
	Ship *ship.Ship
	X    float64
	Y    float64
}

// NewNode creates a Node with a generated id
func NewNode(s *ship.Ship, x, y float64) *Node {
	return &Node{
		ID:   NewNodeID(s.ID),
		Ship: s,
		X:    x,
		Y:    y,
	}
}

// ShipID returns the underlying ship id for traversal identity
func (n *Node) ShipID() string {
	return n.Ship.ID
}
