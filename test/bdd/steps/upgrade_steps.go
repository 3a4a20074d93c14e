package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/cucumber/godog"
	"gorm.io/gorm"

	"github.com/Citizens-Hub/ccu-planner/internal/adapters/persistence"
	"github.com/Citizens-Hub/ccu-planner/internal/application/planner"
	"github.com/Citizens-Hub/ccu-planner/internal/application/tracker"
	"github.com/Citizens-Hub/ccu-planner/internal/domain/hangar"
	"github.com/Citizens-Hub/ccu-planner/internal/domain/pricing"
	"github.com/Citizens-Hub/ccu-planner/internal/domain/ship"
	"github.com/Citizens-Hub/ccu-planner/internal/domain/upgrade"
	"github.com/Citizens-Hub/ccu-planner/internal/infrastructure/database"
)

// upgradeContext holds state shared by the edge pricing, path planning, and
// completed path scenarios.
type upgradeContext struct {
	ships         map[string]*ship.Ship // by display name
	hangarItems   []*hangar.Item
	priorityOrder []pricing.SourceType
	consumed      map[string]int

	diagram *upgrade.Diagram
	nodes   map[string]*upgrade.Node // one placement per ship id
	pricing *upgrade.PricingService

	db      *gorm.DB
	tracker *tracker.Tracker

	lastEdge *upgrade.Edge
	lastErr  error
	paths    []*planner.CompletePath
	marked   *tracker.CompletedPath
}

func (uc *upgradeContext) reset() error {
	if uc.db != nil {
		_ = database.Close(uc.db)
	}
	db, err := database.NewTestConnection()
	if err != nil {
		return fmt.Errorf("failed to create scenario database: %w", err)
	}

	uc.ships = make(map[string]*ship.Ship)
	uc.hangarItems = nil
	uc.priorityOrder = nil
	uc.consumed = make(map[string]int)
	uc.diagram = upgrade.NewDiagram()
	uc.nodes = make(map[string]*upgrade.Node)
	uc.pricing = upgrade.NewPricingService()
	uc.db = db
	uc.tracker = tracker.NewTracker(persistence.NewGormCompletedPathRepository(db))
	uc.lastEdge = nil
	uc.lastErr = nil
	uc.paths = nil
	uc.marked = nil
	return nil
}

func (uc *upgradeContext) pricingContext() *pricing.Context {
	var ships []*ship.Ship
	for _, s := range uc.ships {
		ships = append(ships, s)
	}
	return &pricing.Context{
		Ships:         ship.NewIndex(ships),
		HangarItems:   uc.hangarItems,
		PriorityOrder: uc.priorityOrder,
		HangarConsumed: func(from, to string) int {
			return uc.consumed[from+"-"+to] + uc.tracker.ConsumedCount(from, to)
		},
	}
}

func (uc *upgradeContext) findShip(name string) (*ship.Ship, error) {
	if s, ok := uc.ships[name]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("unknown ship %q, declare it in the background", name)
}

func (uc *upgradeContext) nodeFor(s *ship.Ship) *upgrade.Node {
	if node, ok := uc.nodes[s.ID]; ok {
		return node
	}
	node := upgrade.NewNode(s, 0, 0)
	uc.nodes[s.ID] = node
	uc.diagram.AddNode(node)
	return node
}

func InitializeUpgradeScenario(ctx *godog.ScenarioContext) {
	uc := &upgradeContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, uc.reset()
	})
	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if uc.db != nil {
			_ = database.Close(uc.db)
			uc.db = nil
		}
		return ctx, nil
	})

	// Background
	ctx.Step(`^a ship "([^"]*)" with id "([^"]*)" priced at (\d+) cents$`, uc.aShip)
	ctx.Step(`^I own a hangar item "([^"]*)" worth (\d+) cents with quantity (\d+)$`, uc.iOwnAHangarItem)
	ctx.Step(`^my strategy priority order is "([^"]*)"$`, uc.myPriorityOrderIs)
	ctx.Step(`^(\d+) completed upgrades? already consumes? the certificate from "([^"]*)" to "([^"]*)"$`, uc.certificateAlreadyConsumed)

	// Edge creation
	ctx.Step(`^I create an edge from "([^"]*)" to "([^"]*)"$`, uc.iCreateAnEdge)
	ctx.Step(`^I attempt to create an edge from "([^"]*)" to "([^"]*)"$`, uc.iAttemptToCreateAnEdge)
	ctx.Step(`^a diagram edge from "([^"]*)" to "([^"]*)"$`, uc.aDiagramEdge)
	ctx.Step(`^the diagram edge from "([^"]*)" to "([^"]*)" is re-priced from the hangar$`, uc.edgeRepricedFromHangar)

	// Edge assertions
	ctx.Step(`^the edge source type should be "([^"]*)"$`, uc.edgeSourceTypeShouldBe)
	ctx.Step(`^the edge price should be (\d+) cents$`, uc.edgePriceShouldBe)
	ctx.Step(`^edge creation should fail$`, uc.edgeCreationShouldFail)

	// Path search
	ctx.Step(`^I search for paths to "([^"]*)"$`, uc.iSearchForPathsTo)
	ctx.Step(`^I should find (\d+) paths?$`, uc.iShouldFindPaths)
	ctx.Step(`^the cheapest path should cost (\d+) usd cents$`, uc.cheapestPathShouldCost)
	ctx.Step(`^the cheapest path should go through "([^"]*)"$`, uc.cheapestPathShouldGoThrough)

	// Completed path tracking
	ctx.Step(`^I mark the cheapest path to "([^"]*)" as completed$`, uc.iMarkCheapestPathCompleted)
	ctx.Step(`^I unmark the completed path$`, uc.iUnmarkTheCompletedPath)
	ctx.Step(`^I reload the tracker from storage$`, uc.iReloadTheTracker)
	ctx.Step(`^there should be (\d+) completed paths?$`, uc.thereShouldBeCompletedPaths)
	ctx.Step(`^the edge from "([^"]*)" to "([^"]*)" should be completed$`, uc.edgeShouldBeCompleted)
	ctx.Step(`^the edge from "([^"]*)" to "([^"]*)" should not be completed$`, uc.edgeShouldNotBeCompleted)
	ctx.Step(`^the certificate from "([^"]*)" to "([^"]*)" should have (\d+) consumptions?$`, uc.certificateShouldHaveConsumptions)
}

func (uc *upgradeContext) aShip(name, id string, msrp int) error {
	uc.ships[name] = ship.NewShip(id, name, "", int64(msrp))
	return nil
}

func (uc *upgradeContext) iOwnAHangarItem(name string, value, quantity int) error {
	item := hangar.NewItem(name, int64(value), quantity)
	if item.FromShipName == "" || item.ToShipName == "" {
		return fmt.Errorf("hangar item name %q did not parse into a ship pair", name)
	}
	uc.hangarItems = append(uc.hangarItems, item)
	return nil
}

func (uc *upgradeContext) myPriorityOrderIs(order string) error {
	uc.priorityOrder = nil
	for _, part := range strings.Split(order, ",") {
		st := pricing.SourceType(strings.TrimSpace(part))
		if !st.IsValid() {
			return fmt.Errorf("unknown source type %q", part)
		}
		uc.priorityOrder = append(uc.priorityOrder, st)
	}
	return nil
}

func (uc *upgradeContext) certificateAlreadyConsumed(count int, fromID, toID string) error {
	uc.consumed[fromID+"-"+toID] = count
	return nil
}

func (uc *upgradeContext) iCreateAnEdge(fromName, toName string) error {
	if err := uc.iAttemptToCreateAnEdge(fromName, toName); err != nil {
		return err
	}
	if uc.lastErr != nil {
		return fmt.Errorf("unexpected edge creation error: %w", uc.lastErr)
	}
	return nil
}

func (uc *upgradeContext) iAttemptToCreateAnEdge(fromName, toName string) error {
	from, err := uc.findShip(fromName)
	if err != nil {
		return err
	}
	to, err := uc.findShip(toName)
	if err != nil {
		return err
	}
	uc.lastEdge, uc.lastErr = uc.pricing.CreateEdge(uc.nodeFor(from), uc.nodeFor(to), uc.pricingContext())
	return nil
}

func (uc *upgradeContext) aDiagramEdge(fromName, toName string) error {
	if err := uc.iCreateAnEdge(fromName, toName); err != nil {
		return err
	}
	return uc.diagram.AddEdge(uc.lastEdge)
}

func (uc *upgradeContext) edgeRepricedFromHangar(fromName, toName string) error {
	from, err := uc.findShip(fromName)
	if err != nil {
		return err
	}
	to, err := uc.findShip(toName)
	if err != nil {
		return err
	}
	edge := uc.diagram.EdgeBetween(from.ID, to.ID)
	if edge == nil {
		return fmt.Errorf("no diagram edge %s -> %s", fromName, toName)
	}
	uc.pricing.UpdateEdge(edge, pricing.SourceHangar, nil, uc.pricingContext())
	return nil
}

func (uc *upgradeContext) edgeSourceTypeShouldBe(want string) error {
	if uc.lastEdge == nil {
		return fmt.Errorf("no edge was created")
	}
	if got := string(uc.lastEdge.Pricing.SourceType); got != want {
		return fmt.Errorf("expected source type %q, got %q", want, got)
	}
	return nil
}

func (uc *upgradeContext) edgePriceShouldBe(want int) error {
	if uc.lastEdge == nil {
		return fmt.Errorf("no edge was created")
	}
	price, _ := uc.lastEdge.Cost(uc.pricingContext())
	if price != int64(want) {
		return fmt.Errorf("expected price %d, got %d", want, price)
	}
	return nil
}

func (uc *upgradeContext) edgeCreationShouldFail() error {
	if uc.lastErr == nil {
		return fmt.Errorf("expected edge creation to fail, but it succeeded")
	}
	return nil
}

func (uc *upgradeContext) iSearchForPathsTo(targetName string) error {
	target, err := uc.findShip(targetName)
	if err != nil {
		return err
	}
	ctx := uc.pricingContext()
	finder := planner.NewPathFinder()
	pathIDs := finder.FindAllPaths(uc.diagram, target.ID, ctx, 1.0, 0, false)
	uc.paths = planner.BuildCompletePaths(pathIDs, uc.diagram, nil, ctx)
	planner.SortByTotalCost(uc.paths, 1.0, 0)
	return nil
}

func (uc *upgradeContext) iShouldFindPaths(want int) error {
	if len(uc.paths) != want {
		return fmt.Errorf("expected %d paths, found %d", want, len(uc.paths))
	}
	return nil
}

func (uc *upgradeContext) cheapestPathShouldCost(want int) error {
	if len(uc.paths) == 0 {
		return fmt.Errorf("no paths were found")
	}
	if got := uc.paths[0].TotalUsd; got != int64(want) {
		return fmt.Errorf("expected cheapest path to cost %d, got %d", want, got)
	}
	return nil
}

func (uc *upgradeContext) cheapestPathShouldGoThrough(shipName string) error {
	if len(uc.paths) == 0 {
		return fmt.Errorf("no paths were found")
	}
	for _, node := range uc.paths[0].Nodes {
		if node.Ship != nil && node.Ship.Name == shipName {
			return nil
		}
	}
	return fmt.Errorf("cheapest path does not go through %q", shipName)
}

func (uc *upgradeContext) iMarkCheapestPathCompleted(targetName string) error {
	if err := uc.iSearchForPathsTo(targetName); err != nil {
		return err
	}
	if len(uc.paths) == 0 {
		return fmt.Errorf("no path reaches %q", targetName)
	}
	target, err := uc.findShip(targetName)
	if err != nil {
		return err
	}
	uc.marked = uc.tracker.MarkCompleted(context.Background(), uc.paths[0], target)
	return nil
}

func (uc *upgradeContext) iUnmarkTheCompletedPath() error {
	if uc.marked == nil {
		return fmt.Errorf("no path was marked completed")
	}
	uc.tracker.Unmark(context.Background(), uc.marked.ID)
	return nil
}

func (uc *upgradeContext) iReloadTheTracker() error {
	uc.tracker = tracker.NewTracker(persistence.NewGormCompletedPathRepository(uc.db))
	uc.tracker.Load(context.Background())
	return nil
}

func (uc *upgradeContext) thereShouldBeCompletedPaths(want int) error {
	if got := len(uc.tracker.Completed()); got != want {
		return fmt.Errorf("expected %d completed paths, got %d", want, got)
	}
	return nil
}

func (uc *upgradeContext) edgeShouldBeCompleted(fromID, toID string) error {
	if !uc.tracker.IsEdgeCompleted(fromID, toID) {
		return fmt.Errorf("expected edge %s -> %s to be completed", fromID, toID)
	}
	return nil
}

func (uc *upgradeContext) edgeShouldNotBeCompleted(fromID, toID string) error {
	if uc.tracker.IsEdgeCompleted(fromID, toID) {
		return fmt.Errorf("expected edge %s -> %s to not be completed", fromID, toID)
	}
	return nil
}

func (uc *upgradeContext) certificateShouldHaveConsumptions(fromID, toID string, want int) error {
	if got := uc.tracker.ConsumedCount(fromID, toID); got != want {
		return fmt.Errorf("expected %d consumptions for %s -> %s, got %d", want, fromID, toID, got)
	}
	return nil
}
