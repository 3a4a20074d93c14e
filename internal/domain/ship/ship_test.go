package ship_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Citizens-Hub/ccu-planner/internal/domain/ship"
)

func TestShip_HasKnownPrice(t *testing.T) {
	// Arrange
	priced := ship.NewShip("ship-1", "Aurora MR", "RSI", 2000)
	unpriced := ship.NewShip("ship-2", "Concept Ship", "RSI", 0)

	// Assert
	assert.True(t, priced.HasKnownPrice())
	assert.False(t, unpriced.HasKnownPrice())
}

func TestShip_BestDiscountedSku_PicksCheapestAvailable(t *testing.T) {
	// Arrange
	s := ship.NewShip("ship-1", "Avenger Titan", "AEGS", 6000)
	s.Skus = []ship.Sku{
		{ID: "sku-1", Title: "Standalone", Price: 6000, Available: true},
		{ID: "sku-2", Title: "Warbond", Price: 5500, Available: true},
		{ID: "sku-3", Title: "Old Promo", Price: 5000, Available: false},
		{ID: "sku-4", Title: "Anniversary", Price: 5200, Available: true},
	}

	// Act
	best := s.BestDiscountedSku()

	// Assert
	require.NotNil(t, best)
	assert.Equal(t, "sku-4", best.ID)
	assert.Equal(t, int64(5200), best.Price)
}

func TestShip_BestDiscountedSku_IgnoresListPriceSku(t *testing.T) {
	// Arrange - only SKU matches the list price, so it is not a promo
	s := ship.NewShip("ship-1", "Avenger Titan", "AEGS", 6000)
	s.Skus = []ship.Sku{
		{ID: "sku-1", Title: "Standalone", Price: 6000, Available: true},
	}

	// Act & Assert
	assert.Nil(t, s.BestDiscountedSku())
}

func TestShip_BestDiscountedSkuAbove_SkipsSkusBelowFloor(t *testing.T) {
	// Arrange
	s := ship.NewShip("ship-1", "Avenger Titan", "AEGS", 6000)
	s.Skus = []ship.Sku{
		{ID: "sku-1", Title: "Warbond", Price: 1500, Available: true},
		{ID: "sku-2", Title: "Anniversary", Price: 5000, Available: true},
	}

	// Act
	best := s.BestDiscountedSkuAbove(2000)

	// Assert - the cheaper promo is under the floor and cannot serve
	require.NotNil(t, best)
	assert.Equal(t, "sku-2", best.ID)

	assert.Nil(t, s.BestDiscountedSkuAbove(5000))
}

func TestShip_BestDiscountedSku_NoSkus(t *testing.T) {
	s := ship.NewShip("ship-1", "Aurora MR", "RSI", 2000)
	assert.Nil(t, s.BestDiscountedSku())
}

func TestIndex_Get(t *testing.T) {
	// Arrange
	ships := []*ship.Ship{
		ship.NewShip("ship-1", "Aurora MR", "RSI", 2000),
		ship.NewShip("ship-2", "Avenger Titan", "AEGS", 6000),
	}
	idx := ship.NewIndex(ships)

	// Assert
	require.NotNil(t, idx.Get("ship-2"))
	assert.Equal(t, "Avenger Titan", idx.Get("ship-2").Name)
	assert.Nil(t, idx.Get("missing"))

	var nilIdx ship.Index
	assert.Nil(t, nilIdx.Get("ship-1"))
}
