package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Citizens-Hub/ccu-planner/internal/domain/hangar"
)

// GormHangarRepository stores the user's imported owned-upgrade inventory
type GormHangarRepository struct {
	db *gorm.DB
}

// NewGormHangarRepository creates a new GORM hangar repository
func NewGormHangarRepository(db *gorm.DB) *GormHangarRepository {
	return &GormHangarRepository{db: db}
}

// ReplaceAll overwrites the stored inventory with a fresh import
func (r *GormHangarRepository) ReplaceAll(ctx context.Context, items []*hangar.Item) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&HangarItemModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear hangar items: %w", err)
		}
		for _, item := range items {
			model := &HangarItemModel{
				Name:         item.Name,
				FromShipName: item.FromShipName,
				ToShipName:   item.ToShipName,
				Value:        item.Value,
				Quantity:     item.Quantity,
			}
			if err := tx.Create(model).Error; err != nil {
				return fmt.Errorf("failed to save hangar item %q: %w", item.Name, err)
			}
		}
		return nil
	})
}

// ListAll retrieves the stored inventory
func (r *GormHangarRepository) ListAll(ctx context.Context) ([]*hangar.Item, error) {
	var models []HangarItemModel
	if result := r.db.WithContext(ctx).Order("id").Find(&models); result.Error != nil {
		return nil, fmt.Errorf("failed to load hangar items: %w", result.Error)
	}

	items := make([]*hangar.Item, 0, len(models))
	for _, model := range models {
		items = append(items, &hangar.Item{
			Name:         model.Name,
			FromShipName: model.FromShipName,
			ToShipName:   model.ToShipName,
			Value:        model.Value,
			Quantity:     model.Quantity,
		})
	}
	return items, nil
}
