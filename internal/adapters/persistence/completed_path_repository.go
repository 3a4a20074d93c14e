package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/Citizens-Hub/ccu-planner/internal/application/planner"
	"github.com/Citizens-Hub/ccu-planner/internal/application/tracker"
)

// GormCompletedPathRepository implements tracker.Repository using GORM
type GormCompletedPathRepository struct {
	db *gorm.DB
}

// NewGormCompletedPathRepository creates a new GORM completed-path repository
func NewGormCompletedPathRepository(db *gorm.DB) *GormCompletedPathRepository {
	return &GormCompletedPathRepository{db: db}
}

// Save persists a completed path with its frozen snapshot
func (r *GormCompletedPathRepository) Save(ctx context.Context, cp *tracker.CompletedPath) error {
	snapshot, err := json.Marshal(cp.Path)
	if err != nil {
		return fmt.Errorf("failed to encode path snapshot: %w", err)
	}

	model := &CompletedPathModel{
		ID:        cp.ID,
		Snapshot:  string(snapshot),
		CreatedAt: time.Now(),
	}
	if cp.Ship != nil {
		model.ShipID = cp.Ship.ID
		model.ShipName = cp.Ship.Name
	}

	if result := r.db.WithContext(ctx).Save(model); result.Error != nil {
		return fmt.Errorf("failed to save completed path: %w", result.Error)
	}
	return nil
}

// Delete removes a completed path by id
func (r *GormCompletedPathRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&CompletedPathModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete completed path: %w", result.Error)
	}
	return nil
}

// DeleteAll removes every completed path
func (r *GormCompletedPathRepository) DeleteAll(ctx context.Context) error {
	result := r.db.WithContext(ctx).Where("1 = 1").Delete(&CompletedPathModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to clear completed paths: %w", result.Error)
	}
	return nil
}

// LoadAll retrieves every stored completed path. Rows whose snapshot no
// longer parses are logged and skipped so a corrupted store degrades to
// "fewer completed paths", never a failed load.
func (r *GormCompletedPathRepository) LoadAll(ctx context.Context) ([]*tracker.CompletedPath, error) {
	var models []CompletedPathModel
	result := r.db.WithContext(ctx).Order("created_at").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load completed paths: %w", result.Error)
	}

	completed := make([]*tracker.CompletedPath, 0, len(models))
	for _, model := range models {
		cp, err := r.modelToCompletedPath(&model)
		if err != nil {
			log.Printf("completed path %s is malformed, skipping: %v", model.ID, err)
			continue
		}
		completed = append(completed, cp)
	}
	return completed, nil
}

func (r *GormCompletedPathRepository) modelToCompletedPath(model *CompletedPathModel) (*tracker.CompletedPath, error) {
	var path planner.CompletePath
	if err := json.Unmarshal([]byte(model.Snapshot), &path); err != nil {
		return nil, fmt.Errorf("failed to decode path snapshot: %w", err)
	}

	cp := &tracker.CompletedPath{
		ID:   model.ID,
		Path: &path,
	}
	// The terminal ship rides inside the snapshot; prefer that over the
	// lifted columns so the frozen state stays authoritative.
	if len(path.Nodes) > 0 {
		cp.Ship = path.Nodes[len(path.Nodes)-1].Ship
	}
	return cp, nil
}
