package upgrade_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Citizens-Hub/ccu-planner/internal/domain/hangar"
	"github.com/Citizens-Hub/ccu-planner/internal/domain/pricing"
	"github.com/Citizens-Hub/ccu-planner/internal/domain/ship"
	"github.com/Citizens-Hub/ccu-planner/internal/domain/upgrade"
)

func nodeFor(id, name string, msrp int64) *upgrade.Node {
	return upgrade.NewNode(ship.NewShip(id, name, "RSI", msrp), 0, 0)
}

func TestCreateEdge_StoresAutoSelectedQuote(t *testing.T) {
	// Arrange
	svc := upgrade.NewPricingService()
	src := nodeFor("aurora", "Aurora MR", 2000)
	dst := nodeFor("avenger", "Avenger Titan", 6000)

	// Act
	edge, err := svc.CreateEdge(src, dst, &pricing.Context{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, pricing.SourceOfficial, edge.Pricing.SourceType)
	assert.Equal(t, int64(4000), edge.Pricing.BasePriceDelta)
	require.NotNil(t, edge.Pricing.CustomPrice)
	assert.Equal(t, int64(4000), *edge.Pricing.CustomPrice)
	assert.Equal(t, pricing.USD, edge.Pricing.Currency)
	assert.Equal(t, src.ID, edge.SourceNodeID)
	assert.Equal(t, dst.ID, edge.TargetNodeID)
}

func TestCreateEdge_RejectsZeroPricedSource(t *testing.T) {
	svc := upgrade.NewPricingService()
	src := nodeFor("concept", "Concept Ship", 0)
	dst := nodeFor("avenger", "Avenger Titan", 6000)

	_, err := svc.CreateEdge(src, dst, &pricing.Context{})

	assert.ErrorIs(t, err, upgrade.ErrZeroPricedSource)
	assert.False(t, svc.CanCreateEdge(src, dst, &pricing.Context{}))
}

func TestCreateEdge_RejectsNonIncreasingPrice(t *testing.T) {
	svc := upgrade.NewPricingService()
	src := nodeFor("avenger", "Avenger Titan", 6000)

	for _, msrp := range []int64{6000, 2000} {
		dst := nodeFor("other", "Other Ship", msrp)
		_, err := svc.CreateEdge(src, dst, &pricing.Context{})
		assert.ErrorIs(t, err, upgrade.ErrNonIncreasingPrice)
	}
}

func TestCreateEdge_UnknownTargetPriceNeedsCoveringStrategy(t *testing.T) {
	// Arrange - target with the zero-msrp unknown-price sentinel
	svc := upgrade.NewPricingService()
	src := nodeFor("aurora", "Aurora MR", 2000)
	dst := nodeFor("concept", "Concept Ship", 0)

	// Act & Assert - nothing substantive covers the pair
	_, err := svc.CreateEdge(src, dst, &pricing.Context{})
	assert.ErrorIs(t, err, upgrade.ErrUnknownTargetPrice)

	// An owned certificate covers it
	ctx := &pricing.Context{
		HangarItems: []*hangar.Item{
			hangar.NewItem("Upgrade - Aurora MR to Concept Ship", 3000, 1),
		},
	}
	edge, err := svc.CreateEdge(src, dst, ctx)
	require.NoError(t, err)
	assert.Equal(t, pricing.SourceHangar, edge.Pricing.SourceType)
	require.NotNil(t, edge.Pricing.CustomPrice)
	assert.Equal(t, int64(3000), *edge.Pricing.CustomPrice)
}

func TestCreateEdge_SubscriptionOfferCoversUnknownTarget(t *testing.T) {
	svc := upgrade.NewPricingService()
	src := nodeFor("aurora", "Aurora MR", 2000)
	dst := nodeFor("concept", "Concept Ship", 0)
	ctx := &pricing.Context{
		Offers: []pricing.Offer{
			{FromShipID: "aurora", ToShipID: "concept", Price: 2500, Currency: pricing.USD},
		},
	}

	edge, err := svc.CreateEdge(src, dst, ctx)

	require.NoError(t, err)
	assert.Equal(t, pricing.SourceSubscription, edge.Pricing.SourceType)
}

func TestUpdateEdge_ExplicitPriceOverride(t *testing.T) {
	// Arrange
	svc := upgrade.NewPricingService()
	src := nodeFor("aurora", "Aurora MR", 2000)
	dst := nodeFor("avenger", "Avenger Titan", 6000)
	edge, err := svc.CreateEdge(src, dst, &pricing.Context{})
	require.NoError(t, err)

	// Act
	override := int64(3500)
	svc.UpdateEdge(edge, pricing.SourceManualWB, &override, &pricing.Context{})

	// Assert
	assert.Equal(t, pricing.SourceManualWB, edge.Pricing.SourceType)
	require.NotNil(t, edge.Pricing.CustomPrice)
	assert.Equal(t, int64(3500), *edge.Pricing.CustomPrice)
	assert.Equal(t, pricing.USD, edge.Pricing.Currency)
}

func TestUpdateEdge_ThirdPartyOverrideUsesDisplayCurrency(t *testing.T) {
	svc := upgrade.NewPricingService()
	src := nodeFor("aurora", "Aurora MR", 2000)
	dst := nodeFor("avenger", "Avenger Titan", 6000)
	edge, err := svc.CreateEdge(src, dst, &pricing.Context{})
	require.NoError(t, err)

	override := int64(25000)
	svc.UpdateEdge(edge, pricing.SourceThirdParty, &override, &pricing.Context{DisplayCurrency: pricing.CNY})

	assert.Equal(t, pricing.CNY, edge.Pricing.Currency)
}

func TestUpdateEdge_RecomputedDefaultPriceKeepsEdgeClean(t *testing.T) {
	// Arrange - an edge carrying a stale custom price
	svc := upgrade.NewPricingService()
	src := nodeFor("aurora", "Aurora MR", 2000)
	dst := nodeFor("avenger", "Avenger Titan", 6000)
	edge, err := svc.CreateEdge(src, dst, &pricing.Context{})
	require.NoError(t, err)
	stale := int64(9999)
	edge.Pricing.CustomPrice = &stale

	// Act - re-price under official; the quote equals the base delta
	svc.UpdateEdge(edge, pricing.SourceOfficial, nil, &pricing.Context{})

	// Assert - no override is kept
	assert.Nil(t, edge.Pricing.CustomPrice)
	assert.Equal(t, pricing.SourceOfficial, edge.Pricing.SourceType)
}

func TestUpdateEdge_RecomputedPromoPriceStoredAsOverride(t *testing.T) {
	// Arrange
	svc := upgrade.NewPricingService()
	src := nodeFor("aurora", "Aurora MR", 2000)
	dst := nodeFor("avenger", "Avenger Titan", 6000)
	edge, err := svc.CreateEdge(src, dst, &pricing.Context{})
	require.NoError(t, err)

	ctx := &pricing.Context{
		HangarItems: []*hangar.Item{
			hangar.NewItem("Upgrade - Aurora MR to Avenger Titan", 3500, 1),
		},
	}

	// Act
	svc.UpdateEdge(edge, pricing.SourceHangar, nil, ctx)

	// Assert
	require.NotNil(t, edge.Pricing.CustomPrice)
	assert.Equal(t, int64(3500), *edge.Pricing.CustomPrice)
}

func TestEdge_CostPrefersCustomPrice(t *testing.T) {
	svc := upgrade.NewPricingService()
	src := nodeFor("aurora", "Aurora MR", 2000)
	dst := nodeFor("avenger", "Avenger Titan", 6000)
	edge, err := svc.CreateEdge(src, dst, &pricing.Context{})
	require.NoError(t, err)

	override := int64(3700)
	edge.Pricing.CustomPrice = &override

	price, currency := edge.Cost(&pricing.Context{})
	assert.Equal(t, int64(3700), price)
	assert.Equal(t, pricing.USD, currency)
}

func TestEdge_CostRepricesWhenClean(t *testing.T) {
	// Arrange - clean edge re-prices through its stored strategy, so hangar
	// exhaustion or new promos change the cost the search sees
	svc := upgrade.NewPricingService()
	src := nodeFor("aurora", "Aurora MR", 2000)
	dst := nodeFor("avenger", "Avenger Titan", 6000)
	edge, err := svc.CreateEdge(src, dst, &pricing.Context{})
	require.NoError(t, err)
	edge.Pricing.CustomPrice = nil
	edge.Pricing.SourceType = pricing.SourceHangar

	ctx := &pricing.Context{
		HangarItems: []*hangar.Item{
			hangar.NewItem("Upgrade - Aurora MR to Avenger Titan", 3100, 1),
		},
	}

	// Act
	price, _ := edge.Cost(ctx)

	// Assert
	assert.Equal(t, int64(3100), price)
}
