package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Citizens-Hub/ccu-planner/internal/domain/pricing"
)

// GormPriceHistoryRepository stores the historical promo price table
type GormPriceHistoryRepository struct {
	db *gorm.DB
}

// NewGormPriceHistoryRepository creates a new GORM price-history repository
func NewGormPriceHistoryRepository(db *gorm.DB) *GormPriceHistoryRepository {
	return &GormPriceHistoryRepository{db: db}
}

// Add records one historical promo observation for a ship
func (r *GormPriceHistoryRepository) Add(ctx context.Context, shipID string, rec pricing.HistoricalRecord) error {
	model := &PriceHistoryModel{
		ShipID:     shipID,
		Price:      rec.Price,
		BaseMsrp:   rec.BaseMsrp,
		RecordedAt: rec.RecordedAt,
	}
	if result := r.db.WithContext(ctx).Create(model); result.Error != nil {
		return fmt.Errorf("failed to save price history for %s: %w", shipID, result.Error)
	}
	return nil
}

// LoadTable retrieves the whole table keyed by ship id, ready for the
// pricing context.
func (r *GormPriceHistoryRepository) LoadTable(ctx context.Context) (map[string][]pricing.HistoricalRecord, error) {
	var models []PriceHistoryModel
	if result := r.db.WithContext(ctx).Order("recorded_at").Find(&models); result.Error != nil {
		return nil, fmt.Errorf("failed to load price history: %w", result.Error)
	}

	table := make(map[string][]pricing.HistoricalRecord)
	for _, model := range models {
		table[model.ShipID] = append(table[model.ShipID], pricing.HistoricalRecord{
			Price:      model.Price,
			BaseMsrp:   model.BaseMsrp,
			RecordedAt: model.RecordedAt,
		})
	}
	return table, nil
}
