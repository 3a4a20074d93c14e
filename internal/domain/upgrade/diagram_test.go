package upgrade_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Citizens-Hub/ccu-planner/internal/domain/pricing"
	"github.com/Citizens-Hub/ccu-planner/internal/domain/ship"
	"github.com/Citizens-Hub/ccu-planner/internal/domain/upgrade"
)

func placedShip(t *testing.T, d *upgrade.Diagram, id, name string, msrp int64) *upgrade.Node {
	t.Helper()
	node := upgrade.NewNode(ship.NewShip(id, name, "RSI", msrp), 0, 0)
	d.AddNode(node)
	return node
}

func linkNodes(t *testing.T, d *upgrade.Diagram, from, to *upgrade.Node) *upgrade.Edge {
	t.Helper()
	edge, err := upgrade.NewPricingService().CreateEdge(from, to, &pricing.Context{})
	require.NoError(t, err)
	require.NoError(t, d.AddEdge(edge))
	return edge
}

func TestDiagram_AddEdge_RejectsDuplicateShipPair(t *testing.T) {
	// Arrange - the same ship placed twice, linked to the same target
	d := upgrade.NewDiagram()
	auroraA := placedShip(t, d, "aurora", "Aurora MR", 2000)
	auroraB := placedShip(t, d, "aurora", "Aurora MR", 2000)
	titan := placedShip(t, d, "avenger", "Avenger Titan", 6000)

	linkNodes(t, d, auroraA, titan)

	// Act - second placement of the same ordered ship pair
	edge, err := upgrade.NewPricingService().CreateEdge(auroraB, titan, &pricing.Context{})
	require.NoError(t, err)
	err = d.AddEdge(edge)

	// Assert
	assert.ErrorIs(t, err, upgrade.ErrDuplicateEdge)
	assert.Len(t, d.Edges(), 1)
}

func TestDiagram_AddEdge_RequiresExistingNodes(t *testing.T) {
	d := upgrade.NewDiagram()
	src := upgrade.NewNode(ship.NewShip("aurora", "Aurora MR", "RSI", 2000), 0, 0)
	dst := upgrade.NewNode(ship.NewShip("avenger", "Avenger Titan", "AEGS", 6000), 0, 0)

	edge, err := upgrade.NewPricingService().CreateEdge(src, dst, &pricing.Context{})
	require.NoError(t, err)

	assert.ErrorIs(t, d.AddEdge(edge), upgrade.ErrNodeNotFound)
}

func TestDiagram_RemoveNode_CascadesEdges(t *testing.T) {
	// Arrange
	d := upgrade.NewDiagram()
	a := placedShip(t, d, "aurora", "Aurora MR", 2000)
	b := placedShip(t, d, "avenger", "Avenger Titan", 6000)
	c := placedShip(t, d, "connie", "Constellation Andromeda", 18000)
	linkNodes(t, d, a, b)
	linkNodes(t, d, b, c)

	// Act
	d.RemoveNode(b.ID)

	// Assert
	assert.Nil(t, d.Node(b.ID))
	assert.Empty(t, d.Edges())
}

func TestDiagram_RemoveEdge(t *testing.T) {
	d := upgrade.NewDiagram()
	a := placedShip(t, d, "aurora", "Aurora MR", 2000)
	b := placedShip(t, d, "avenger", "Avenger Titan", 6000)
	linkNodes(t, d, a, b)

	d.RemoveEdge(a.ID, b.ID)

	assert.Empty(t, d.Edges())
	assert.Nil(t, d.EdgeBetween("aurora", "avenger"))
}

func TestDiagram_Roots_ByShipIDInDegree(t *testing.T) {
	// Arrange - a chain plus a second placement of the middle ship; the
	// second placement is NOT a root because its ship has incoming edges
	d := upgrade.NewDiagram()
	a := placedShip(t, d, "aurora", "Aurora MR", 2000)
	b := placedShip(t, d, "avenger", "Avenger Titan", 6000)
	placedShip(t, d, "avenger", "Avenger Titan", 6000)
	linkNodes(t, d, a, b)

	// Act
	roots := d.Roots()

	// Assert
	require.Len(t, roots, 1)
	assert.Equal(t, "aurora", roots[0].ShipID())
}

func TestDiagram_OutgoingByShipID_SharedAcrossPlacements(t *testing.T) {
	// Arrange - edges leave one placement of the ship, but adjacency is by
	// ship id so both placements see them
	d := upgrade.NewDiagram()
	auroraA := placedShip(t, d, "aurora", "Aurora MR", 2000)
	placedShip(t, d, "aurora", "Aurora MR", 2000)
	titan := placedShip(t, d, "avenger", "Avenger Titan", 6000)
	linkNodes(t, d, auroraA, titan)

	// Act
	out := d.OutgoingByShipID("aurora")

	// Assert
	require.Len(t, out, 1)
	assert.Equal(t, "avenger", upgrade.ShipIDOf(out[0].TargetNodeID))
}

func TestShipIDOf_RoundTrip(t *testing.T) {
	id := upgrade.NewNodeID("aurora")
	assert.Equal(t, "aurora", upgrade.ShipIDOf(id))

	// Ids without a separator degrade to themselves
	assert.Equal(t, "bare", upgrade.ShipIDOf(upgrade.NodeID("bare")))
}

func TestNewNode_DistinctIDsForSameShip(t *testing.T) {
	s := ship.NewShip("aurora", "Aurora MR", "RSI", 2000)
	n1 := upgrade.NewNode(s, 0, 0)
	n2 := upgrade.NewNode(s, 100, 0)

	assert.NotEqual(t, n1.ID, n2.ID)
	assert.Equal(t, n1.ShipID(), n2.ShipID())
}
