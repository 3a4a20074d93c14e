package pathbuilder

import (
	"errors"
	"log"

	"github.com/Citizens-Hub/ccu-planner/internal/domain/pricing"
	"github.com/Citizens-Hub/ccu-planner/internal/domain/ship"
	"github.com/Citizens-Hub/ccu-planner/internal/domain/upgrade"
)

// ErrNoLayers is returned when the coarse plan is empty
var ErrNoLayers = errors.New("no candidate layers")

// Layout spacing for synthesized nodes. The engine never reads positions;
// these just keep an auto-built diagram readable when the UI renders it.
const (
	columnWidth = 280.0
	rowHeight   = 140.0
)

// Candidate is one ship in a coarse plan layer. StartPrice is the declared
// acquisition cost for a first-layer ship the user would buy outright.
type Candidate struct {
	Ship       *ship.Ship
	StartPrice *int64
}

// Builder synthesizes a diagram from layered candidate sets: one column of
// nodes per layer, edges between every priceable consecutive-layer pair.
// Special pricing (promo SKUs, historical records, owned certificates,
// subscription offers) is picked up through the resolver's normal
// auto-selection against the supplied context.
type Builder struct {
	pricing *upgrade.PricingService
}

// NewBuilder creates an automatic path builder
func NewBuilder(pricingService *upgrade.PricingService) *Builder {
	return &Builder{pricing: pricingService}
}

// BuildFromLayers builds the diagram and returns it together with the
// start-price map for first-layer candidates that declared one.
//
// Invalid pairs (zero-priced source, non-increasing price, unknown target
// price with no covering strategy) are skipped, not fatal: a coarse plan is
// allowed to contain pairs that cannot be linked.
func (b *Builder) BuildFromLayers(layers [][]Candidate, ctx *pricing.Context) (*upgrade.Diagram, map[upgrade.NodeID]int64, error) {
	if len(layers) == 0 {
		return nil, nil, ErrNoLayers
	}

	d := upgrade.NewDiagram()
	startPrices := make(map[upgrade.NodeID]int64)
	nodesByLayer := make([][]*upgrade.Node, len(layers))

	for layerIdx, layer := range layers {
		for rowIdx, cand := range layer {
			node := upgrade.NewNode(cand.Ship, float64(layerIdx)*columnWidth, float64(rowIdx)*rowHeight)
			d.AddNode(node)
			nodesByLayer[layerIdx] = append(nodesByLayer[layerIdx], node)

			if layerIdx == 0 && cand.StartPrice != nil {
				startPrices[node.ID] = *cand.StartPrice
			}
		}
	}

	for layerIdx := 0; layerIdx+1 < len(nodesByLayer); layerIdx++ {
		for _, source := range nodesByLayer[layerIdx] {
			for _, target := range nodesByLayer[layerIdx+1] {
				if !b.pricing.CanCreateEdge(source, target, ctx) {
					continue
				}
				edge, err := b.pricing.CreateEdge(source, target, ctx)
				if err != nil {
					log.Printf("path builder: cannot price %s -> %s: %v",
						source.Ship.Name, target.Ship.Name, err)
					continue
				}
				if err := d.AddEdge(edge); err != nil {
					// Duplicate ship pairs across rows collapse to one edge.
					if !errors.Is(err, upgrade.ErrDuplicateEdge) {
						log.Printf("path builder: cannot link %s -> %s: %v",
							source.Ship.Name, target.Ship.Name, err)
					}
					continue
				}
			}
		}
	}

	return d, startPrices, nil
}
