package upgrade

import (
	"sort"
)

// Diagram is the user-authored upgrade graph: a node arena keyed by node id
// plus a directed edge list. It is not necessarily connected and not
// necessarily a tree. Traversal adjacency is built over ship ids; node ids
// exist only so the UI can round-trip its layout.
type Diagram struct {
	nodes map[NodeID]*Node
	edges []*Edge
}

// NewDiagram creates an empty diagram
func NewDiagram() *Diagram {
	return &Diagram{
		nodes: make(map[NodeID]*Node),
	}
}

// AddNode places a node on the diagram
func (d *Diagram) AddNode(n *Node) {
	d.nodes[n.ID] = n
}

// Node returns the node with the given id, or nil
func (d *Diagram) Node(id NodeID) *Node {
	return d.nodes[id]
}

// Nodes returns every node, ordered by node id for determinism
func (d *Diagram) Nodes() []*Node {
	nodes := make([]*Node, 0, len(d.nodes))
	for _, n := range d.nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	return nodes
}

// Edges returns the edge list in insertion order
func (d *Diagram) Edges() []*Edge {
	return d.edges
}

// AddEdge links two existing nodes. No two edges may share the same ordered
// (source, target) ship-id pair; duplicate-path prevention happens here, at
// creation time, not in the search engine.
func (d *Diagram) AddEdge(e *Edge) error {
	if d.nodes[e.SourceNodeID] == nil || d.nodes[e.TargetNodeID] == nil {
		return ErrNodeNotFound
	}
	key := e.Key()
	for _, existing := range d.edges {
		if existing.Key() == key {
			return ErrDuplicateEdge
		}
	}
	d.edges = append(d.edges, e)
	return nil
}

// RemoveEdge deletes the edge between the two node ids, if present
func (d *Diagram) RemoveEdge(sourceNodeID, targetNodeID NodeID) {
	for i, e := range d.edges {
		if e.SourceNodeID == sourceNodeID && e.TargetNodeID == targetNodeID {
			d.edges = append(d.edges[:i], d.edges[i+1:]...)
			return
		}
	}
}

// RemoveNode deletes a node and every edge touching it
func (d *Diagram) RemoveNode(id NodeID) {
	delete(d.nodes, id)
	kept := d.edges[:0]
	for _, e := range d.edges {
		if e.SourceNodeID != id && e.TargetNodeID != id {
			kept = append(kept, e)
		}
	}
	d.edges = kept
}

// EdgeBetween returns the edge for the ordered ship-id pair, or nil
func (d *Diagram) EdgeBetween(fromShipID, toShipID string) *Edge {
	key := EdgeKey(fromShipID, toShipID)
	for _, e := range d.edges {
		if e.Key() == key {
			return e
		}
	}
	return nil
}

// OutgoingByShipID returns every edge whose source ship id matches.
// Note this is ship-id adjacency: edges leaving any placement of the ship
// are reachable from every placement of that ship.
func (d *Diagram) OutgoingByShipID(shipID string) []*Edge {
	var out []*Edge
	for _, e := range d.edges {
		if ShipIDOf(e.SourceNodeID) == shipID {
			out = append(out, e)
		}
	}
	return out
}

// Roots returns every node whose ship id has no incoming edge, ordered by
// node id. These are the starting points for path enumeration.
func (d *Diagram) Roots() []*Node {
	hasIncoming := make(map[string]bool, len(d.edges))
	for _, e := range d.edges {
		hasIncoming[ShipIDOf(e.TargetNodeID)] = true
	}
	var roots []*Node
	for _, n := range d.nodes {
		if !hasIncoming[n.ShipID()] {
			roots = append(roots, n)
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].ID < roots[j].ID })
	return roots
}
