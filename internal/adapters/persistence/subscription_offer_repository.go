package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Citizens-Hub/ccu-planner/internal/domain/pricing"
)

// GormSubscriptionOfferRepository stores externally-imported subscription
// upgrade offers.
type GormSubscriptionOfferRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionOfferRepository creates a new GORM offer repository
func NewGormSubscriptionOfferRepository(db *gorm.DB) *GormSubscriptionOfferRepository {
	return &GormSubscriptionOfferRepository{db: db}
}

// ReplaceAll overwrites the stored offers with a fresh import
func (r *GormSubscriptionOfferRepository) ReplaceAll(ctx context.Context, offers []pricing.Offer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&SubscriptionOfferModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear subscription offers: %w", err)
		}
		for _, offer := range offers {
			model := &SubscriptionOfferModel{
				FromShipID: offer.FromShipID,
				ToShipID:   offer.ToShipID,
				Price:      offer.Price,
				Currency:   string(offer.Currency),
			}
			if err := tx.Create(model).Error; err != nil {
				return fmt.Errorf("failed to save offer %s-%s: %w", offer.FromShipID, offer.ToShipID, err)
			}
		}
		return nil
	})
}

// ListAll retrieves the stored offers
func (r *GormSubscriptionOfferRepository) ListAll(ctx context.Context) ([]pricing.Offer, error) {
	var models []SubscriptionOfferModel
	if result := r.db.WithContext(ctx).Order("id").Find(&models); result.Error != nil {
		return nil, fmt.Errorf("failed to load subscription offers: %w", result.Error)
	}

	offers := make([]pricing.Offer, 0, len(models))
	for _, model := range models {
		offers = append(offers, pricing.Offer{
			FromShipID: model.FromShipID,
			ToShipID:   model.ToShipID,
			Price:      model.Price,
			Currency:   pricing.Currency(model.Currency),
		})
	}
	return offers, nil
}
