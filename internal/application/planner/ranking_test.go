package planner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Citizens-Hub/ccu-planner/internal/application/planner"
	"github.com/Citizens-Hub/ccu-planner/internal/domain/pricing"
	"github.com/Citizens-Hub/ccu-planner/internal/domain/ship"
	"github.com/Citizens-Hub/ccu-planner/internal/domain/upgrade"
)

// fakeIndex is a CompletedIndex over explicit "<from>-<to>" keys
type fakeIndex map[string]bool

func (f fakeIndex) IsEdgeCompleted(fromShipID, toShipID string) bool {
	return f[fromShipID+"-"+toShipID]
}

func completedChainPath(t *testing.T) *planner.CompletePath {
	t.Helper()
	d, _ := chainDiagram(t)
	finder := planner.NewPathFinder()
	ctx := &pricing.Context{}
	pathIDs := finder.FindAllPaths(d, "connie", ctx, 1.0, 0, false)
	paths := planner.BuildCompletePaths(pathIDs, d, nil, ctx)
	require.Len(t, paths, 1)
	return paths[0]
}

func TestSortByTotalCost_Ascending(t *testing.T) {
	// Arrange
	cheap := &planner.CompletePath{TotalUsd: 10000}
	middle := &planner.CompletePath{TotalUsd: 15000}
	expensive := &planner.CompletePath{TotalUsd: 20000}
	paths := []*planner.CompletePath{expensive, cheap, middle}

	// Act
	planner.SortByTotalCost(paths, 1.0, 0)

	// Assert
	assert.Equal(t, []*planner.CompletePath{cheap, middle, expensive}, paths)
}

func TestSortByTotalCost_ConciergeMarkupChangesOrder(t *testing.T) {
	// Arrange - the CNY path is cheaper at face value but loses under markup
	usdPath := &planner.CompletePath{TotalUsd: 10500}
	cnyPath := &planner.CompletePath{TotalCny: 10000}
	paths := []*planner.CompletePath{usdPath, cnyPath}

	// Act
	planner.SortByTotalCost(paths, 1.0, 0.10)

	// Assert
	assert.Same(t, usdPath, paths[0])
}

func TestNewInvestmentCost_NothingCompleted(t *testing.T) {
	// Arrange
	p := completedChainPath(t)
	p.StartPrice = 2000
	p.TotalUsd += 2000

	// Act - no completed edges: everything plus the start price is new money
	cost := planner.NewInvestmentCost(p, fakeIndex{}, 1.0, 0)

	// Assert
	assert.InDelta(t, 18000, cost, 0.001)
}

func TestNewInvestmentCost_SumsOnlyAfterLastCompletedEdge(t *testing.T) {
	// Arrange - first hop completed: its cost and the start price drop out
	p := completedChainPath(t)
	p.StartPrice = 2000

	index := fakeIndex{"aurora-avenger": true}

	// Act
	cost := planner.NewInvestmentCost(p, index, 1.0, 0)

	// Assert - only avenger -> connie remains
	assert.InDelta(t, 12000, cost, 0.001)
}

func TestNewInvestmentCost_FullyCompletedPathCostsNothing(t *testing.T) {
	p := completedChainPath(t)

	index := fakeIndex{"aurora-avenger": true, "avenger-connie": true}

	assert.InDelta(t, 0, planner.NewInvestmentCost(p, index, 1.0, 0), 0.001)
}

func TestNewInvestmentCost_ExcludesHangarEdges(t *testing.T) {
	// Arrange - the second hop is an owned certificate, already paid for
	p := completedChainPath(t)
	require.Len(t, p.Edges, 2)
	p.Edges[1].Pricing.SourceType = pricing.SourceHangar

	// Act
	cost := planner.NewInvestmentCost(p, fakeIndex{}, 1.0, 0)

	// Assert - only the first official hop counts
	assert.InDelta(t, 4000, cost, 0.001)
}

func TestSortByNewInvestment_PrefersPartiallyCompletedPath(t *testing.T) {
	// Arrange - two total-16000 routes; one has its first hop completed
	d := upgrade.NewDiagram()
	svc := upgrade.NewPricingService()
	aurora := upgrade.NewNode(ship.NewShip("aurora", "Aurora MR", "RSI", 2000), 0, 0)
	avenger := upgrade.NewNode(ship.NewShip("avenger", "Avenger Titan", "AEGS", 6000), 0, 0)
	cutlass := upgrade.NewNode(ship.NewShip("cutlass", "Cutlass Black", "DRAK", 10000), 0, 0)
	connie := upgrade.NewNode(ship.NewShip("connie", "Constellation Andromeda", "RSI", 18000), 0, 0)
	for _, n := range []*upgrade.Node{aurora, avenger, cutlass, connie} {
		d.AddNode(n)
	}
	for _, pair := range [][2]*upgrade.Node{
		{aurora, avenger}, {aurora, cutlass}, {avenger, connie}, {cutlass, connie},
	} {
		edge, err := svc.CreateEdge(pair[0], pair[1], &pricing.Context{})
		require.NoError(t, err)
		require.NoError(t, d.AddEdge(edge))
	}

	finder := planner.NewPathFinder()
	ctx := &pricing.Context{}
	paths := planner.BuildCompletePaths(finder.FindAllPaths(d, "connie", ctx, 1.0, 0, false), d, nil, ctx)
	require.Len(t, paths, 2)

	index := fakeIndex{"aurora-cutlass": true}

	// Act
	planner.SortByNewInvestment(paths, index, 1.0, 0)

	// Assert - the cutlass route only needs its last 8000-cent hop
	assert.Equal(t, []string{"aurora", "cutlass", "connie"}, paths[0].ShipIDs())
	assert.InDelta(t, 8000, planner.NewInvestmentCost(paths[0], index, 1.0, 0), 0.001)
}
