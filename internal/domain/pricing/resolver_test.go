package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/inventory"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/level"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/pricing"
)

func pattySupplier() level.Supplier {
	return level.Supplier{
		ID:       "s1",
		Name:     "Patty Palace",
		LeadTime: 1,
		Offers: map[inventory.Material]level.MaterialOffer{
			inventory.Patty: {
				BasePrice: 5.0,
				PriceTiers: []level.PriceTier{
					{MinQuantity: 10, UnitPrice: 4.75},
					{MinQuantity: 20, UnitPrice: 4.5},
					{MinQuantity: 50, UnitPrice: 4.0},
				},
			},
		},
		TransportTiers: []level.CostTier{
			{MinQuantity: 1, Cost: 20},
			{MinQuantity: 50, Cost: 35},
		},
	}
}

func TestSelectTier(t *testing.T) {
	thresholds := []int{50, 10, 20}

	tests := []struct {
		name     string
		quantity int
		policy   level.TierPolicy
		wantIdx  int
		wantOK   bool
	}{
		{"floor below all", 5, level.TierPolicyFloor, -1, false},
		{"floor exact", 20, level.TierPolicyFloor, 2, true},
		{"floor between", 35, level.TierPolicyFloor, 2, true},
		{"floor above all", 80, level.TierPolicyFloor, 0, true},
		{"ceiling below all", 5, level.TierPolicyCeiling, 1, true},
		{"ceiling between", 35, level.TierPolicyCeiling, 0, true},
		{"ceiling above all", 80, level.TierPolicyCeiling, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := pricing.SelectTier(thresholds, tt.quantity, tt.policy)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantIdx, idx)
		})
	}
}

func TestSupplierUnitPrice_FloorPolicy(t *testing.T) {
	r := pricing.NewResolver(level.TierPolicyFloor)
	s := pattySupplier()

	price, err := r.SupplierUnitPrice(s, inventory.Patty, 5)
	require.NoError(t, err)
	assert.Equal(t, 5.0, price, "falls back to base price below the first bracket")

	price, err = r.SupplierUnitPrice(s, inventory.Patty, 20)
	require.NoError(t, err)
	assert.Equal(t, 4.5, price)

	price, err = r.SupplierUnitPrice(s, inventory.Patty, 49)
	require.NoError(t, err)
	assert.Equal(t, 4.5, price)
}

func TestSupplierUnitPrice_CeilingPolicy(t *testing.T) {
	r := pricing.NewResolver(level.TierPolicyCeiling)

	price, err := r.SupplierUnitPrice(pattySupplier(), inventory.Patty, 15)

	require.NoError(t, err)
	assert.Equal(t, 4.5, price)
}

func TestSupplierUnitPrice_ZeroQuantityIsFree(t *testing.T) {
	r := pricing.NewResolver(level.TierPolicyFloor)

	price, err := r.SupplierUnitPrice(pattySupplier(), inventory.Cheese, 0)

	require.NoError(t, err)
	assert.Equal(t, 0.0, price)
}

func TestSupplierUnitPrice_MaterialNotOffered(t *testing.T) {
	r := pricing.NewResolver(level.TierPolicyFloor)

	_, err := r.SupplierUnitPrice(pattySupplier(), inventory.Cheese, 3)

	assert.ErrorContains(t, err, "does not sell cheese")
}

func TestSupplierPurchaseCost(t *testing.T) {
	r := pricing.NewResolver(level.TierPolicyFloor)

	unit, cost, err := r.SupplierPurchaseCost(pattySupplier(), inventory.Patty, 20)

	require.NoError(t, err)
	assert.Equal(t, 4.5, unit)
	assert.Equal(t, 90.0, cost)
}

func TestSupplierTransportCost(t *testing.T) {
	r := pricing.NewResolver(level.TierPolicyFloor)
	s := pattySupplier()

	assert.Equal(t, 0.0, r.SupplierTransportCost(s, 0, level.StandardDelivery))
	assert.Equal(t, 20.0, r.SupplierTransportCost(s, 10, level.StandardDelivery))
	assert.Equal(t, 35.0, r.SupplierTransportCost(s, 60, level.StandardDelivery))

	express := level.DeliveryOption{ID: "express", Name: "Express", LeadTimeDelta: -1, CostMultiplier: 1.5}
	assert.Equal(t, 30.0, r.SupplierTransportCost(s, 10, express))
}

func TestCustomerSale(t *testing.T) {
	r := pricing.NewResolver(level.TierPolicyFloor)
	c := level.Customer{
		ID:           "c1",
		Name:         "Campus Cafe",
		PricePerUnit: 25,
		TransportTiers: []level.CostTier{
			{MinQuantity: 1, Cost: 10},
			{MinQuantity: 20, Cost: 25},
		},
	}

	gross, transport, net := r.CustomerSale(c, 5)
	assert.Equal(t, 125.0, gross)
	assert.Equal(t, 10.0, transport)
	assert.Equal(t, 115.0, net)

	gross, transport, net = r.CustomerSale(c, 0)
	assert.Zero(t, gross)
	assert.Zero(t, transport)
	assert.Zero(t, net)
}

func TestCustomerTransportCost_FallsBackToDefault(t *testing.T) {
	r := pricing.NewResolver(level.TierPolicyFloor)
	c := level.Customer{ID: "c2", Name: "Walk-in", TransportCost: 7}

	assert.Equal(t, 7.0, r.CustomerTransportCost(c, 3))
}
