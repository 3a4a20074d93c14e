package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/Citizens-Hub/ccu-planner/internal/domain/pricing"
	"github.com/Citizens-Hub/ccu-planner/internal/domain/ship"
	"github.com/Citizens-Hub/ccu-planner/internal/domain/upgrade"
)

// GormDiagramRepository persists the user's diagram layout, keyed separately
// from the completed-path store.
type GormDiagramRepository struct {
	db *gorm.DB
}

// NewGormDiagramRepository creates a new GORM diagram repository
func NewGormDiagramRepository(db *gorm.DB) *GormDiagramRepository {
	return &GormDiagramRepository{db: db}
}

// ReplaceAll overwrites the stored layout with the given diagram
func (r *GormDiagramRepository) ReplaceAll(ctx context.Context, d *upgrade.Diagram) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&DiagramNodeModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear diagram nodes: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&DiagramEdgeModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear diagram edges: %w", err)
		}

		for _, node := range d.Nodes() {
			model, err := nodeToModel(node)
			if err != nil {
				return err
			}
			if err := tx.Create(model).Error; err != nil {
				return fmt.Errorf("failed to save node %s: %w", node.ID, err)
			}
		}
		for _, edge := range d.Edges() {
			model, err := edgeToModel(edge)
			if err != nil {
				return err
			}
			if err := tx.Create(model).Error; err != nil {
				return fmt.Errorf("failed to save edge %s: %w", edge.Key(), err)
			}
		}
		return nil
	})
}

// Load rebuilds the diagram from the stored layout. Malformed rows are
// logged and skipped.
func (r *GormDiagramRepository) Load(ctx context.Context) (*upgrade.Diagram, error) {
	var nodeModels []DiagramNodeModel
	if result := r.db.WithContext(ctx).Find(&nodeModels); result.Error != nil {
		return nil, fmt.Errorf("failed to load diagram nodes: %w", result.Error)
	}
	var edgeModels []DiagramEdgeModel
	if result := r.db.WithContext(ctx).Order("id").Find(&edgeModels); result.Error != nil {
		return nil, fmt.Errorf("failed to load diagram edges: %w", result.Error)
	}

	d := upgrade.NewDiagram()
	for _, model := range nodeModels {
		node, err := modelToNode(&model)
		if err != nil {
			log.Printf("diagram node %s is malformed, skipping: %v", model.NodeID, err)
			continue
		}
		d.AddNode(node)
	}
	for _, model := range edgeModels {
		edge, err := modelToEdge(&model)
		if err != nil {
			log.Printf("diagram edge %d is malformed, skipping: %v", model.ID, err)
			continue
		}
		if err := d.AddEdge(edge); err != nil {
			log.Printf("diagram edge %d cannot be restored, skipping: %v", model.ID, err)
		}
	}
	return d, nil
}

func nodeToModel(node *upgrade.Node) (*DiagramNodeModel, error) {
	snapshot, err := json.Marshal(node.Ship)
	if err != nil {
		return nil, fmt.Errorf("failed to encode ship snapshot: %w", err)
	}
	return &DiagramNodeModel{
		NodeID: string(node.ID),
		ShipID: node.ShipID(),
		Ship:   string(snapshot),
		X:      node.X,
		Y:      node.Y,
	}, nil
}

func modelToNode(model *DiagramNodeModel) (*upgrade.Node, error) {
	var s ship.Ship
	if err := json.Unmarshal([]byte(model.Ship), &s); err != nil {
		return nil, fmt.Errorf("failed to decode ship snapshot: %w", err)
	}
	return &upgrade.Node{
		ID:   upgrade.NodeID(model.NodeID),
		Ship: &s,
		X:    model.X,
		Y:    model.Y,
	}, nil
}

func edgeToModel(edge *upgrade.Edge) (*DiagramEdgeModel, error) {
	sourceSnap, err := json.Marshal(edge.Pricing.SourceShip)
	if err != nil {
		return nil, fmt.Errorf("failed to encode source ship snapshot: %w", err)
	}
	targetSnap, err := json.Marshal(edge.Pricing.TargetShip)
	if err != nil {
		return nil, fmt.Errorf("failed to encode target ship snapshot: %w", err)
	}
	return &DiagramEdgeModel{
		SourceNodeID:   string(edge.SourceNodeID),
		TargetNodeID:   string(edge.TargetNodeID),
		SourceType:     string(edge.Pricing.SourceType),
		BasePriceDelta: edge.Pricing.BasePriceDelta,
		CustomPrice:    edge.Pricing.CustomPrice,
		Currency:       string(edge.Pricing.Currency),
		SourceShip:     string(sourceSnap),
		TargetShip:     string(targetSnap),
	}, nil
}

func modelToEdge(model *DiagramEdgeModel) (*upgrade.Edge, error) {
	var source, target *ship.Ship
	if model.SourceShip != "" && model.SourceShip != "null" {
		source = &ship.Ship{}
		if err := json.Unmarshal([]byte(model.SourceShip), source); err != nil {
			return nil, fmt.Errorf("failed to decode source ship snapshot: %w", err)
		}
	}
	if model.TargetShip != "" && model.TargetShip != "null" {
		target = &ship.Ship{}
		if err := json.Unmarshal([]byte(model.TargetShip), target); err != nil {
			return nil, fmt.Errorf("failed to decode target ship snapshot: %w", err)
		}
	}

	return &upgrade.Edge{
		SourceNodeID: upgrade.NodeID(model.SourceNodeID),
		TargetNodeID: upgrade.NodeID(model.TargetNodeID),
		Pricing: upgrade.EdgePricing{
			SourceType:     pricing.SourceType(model.SourceType),
			BasePriceDelta: model.BasePriceDelta,
			CustomPrice:    model.CustomPrice,
			Currency:       pricing.Currency(model.Currency),
			SourceShip:     source,
			TargetShip:     target,
		},
	}, nil
}
