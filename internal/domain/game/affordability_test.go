package game_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/game"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/inventory"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/level"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

func TestValidateAffordability_MatchesProcessedCost(t *testing.T) {
	// Arrange
	cfg := testLevel()
	state := game.NewGameState(cfg)
	action := game.GameAction{
		SupplierOrders: []game.SupplierOrderRequest{{SupplierID: "butcher", Material: inventory.Patty, Quantity: 20}},
		Production:     10,
		CustomerOrders: []game.CustomerOrderRequest{{CustomerID: "diner", Quantity: 5}},
	}

	// Act
	result, err := game.NewAffordabilityValidator().ValidateAffordability(state, action, cfg)
	require.NoError(t, err)
	outcome, err := game.NewDayProcessor().ProcessDay(state, action, cfg)
	require.NoError(t, err)

	// Assert
	assert.True(t, result.Valid)
	assert.False(t, result.Bypassed)
	assert.Equal(t, 10.0, result.Breakdown.CustomerTransport)
	assert.Equal(t, outcome.DailyResult.Costs.Total+10, result.TotalCost)
	assert.Equal(t, outcome.DailyResult.Costs.Holding, result.Breakdown.Holding)
	assert.Equal(t, 5000.0, result.AvailableCash)
	assert.NoError(t, result.Err())
}

func TestValidateAffordability_RejectsShortfallWithoutTouchingState(t *testing.T) {
	// Arrange
	cfg := testLevel()
	state := game.NewGameState(cfg)
	state.Cash = 50
	before, err := json.Marshal(state)
	require.NoError(t, err)

	// Act
	result, err := game.NewAffordabilityValidator().ValidateAffordability(state, game.GameAction{
		SupplierOrders: []game.SupplierOrderRequest{{SupplierID: "butcher", Material: inventory.Patty, Quantity: 20}},
	}, cfg)

	// Assert
	require.NoError(t, err)
	assert.False(t, result.Valid)
	// 90 purchase + 15 transport + 10 holding + 10 overstock
	assert.Equal(t, 125.0, result.TotalCost)
	assert.Equal(t, 75.0, result.Shortfall)
	assert.Equal(t, "purchases", result.Dominant)
	assert.Contains(t, result.Message, "short by 75.00")

	var affordabilityErr *shared.AffordabilityError
	require.ErrorAs(t, result.Err(), &affordabilityErr)
	assert.Equal(t, 10.0, affordabilityErr.HoldingCost)
	assert.Equal(t, 50.0, affordabilityErr.AvailableCash)

	after, err := json.Marshal(state)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestValidateAffordability_ZeroCashSalesOnlyBypass(t *testing.T) {
	cfg := testLevel()
	state := withFinishedGoods(cfg, 6, 60)
	state.Cash = 0

	tests := []struct {
		name     string
		action   game.GameAction
		valid    bool
		bypassed bool
	}{
		{
			name:     "sales only",
			action:   game.GameAction{CustomerOrders: []game.CustomerOrderRequest{{CustomerID: "diner", Quantity: 6}}},
			valid:    true,
			bypassed: true,
		},
		{
			name:     "explicit zero purchase lines",
			action:   game.GameAction{SupplierOrders: []game.SupplierOrderRequest{{SupplierID: "butcher", Material: inventory.Patty, Quantity: 0}}},
			valid:    true,
			bypassed: true,
		},
		{
			name:   "any purchase disables the bypass",
			action: game.GameAction{SupplierOrders: []game.SupplierOrderRequest{{SupplierID: "butcher", Material: inventory.Bun, Quantity: 1}}},
			valid:  false,
		},
		{
			name:   "production disables the bypass",
			action: game.GameAction{Production: 1},
			valid:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := game.NewAffordabilityValidator().ValidateAffordability(state, tt.action, cfg)

			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid)
			assert.Equal(t, tt.bypassed, result.Bypassed)
			assert.Greater(t, result.TotalCost, 0.0)
		})
	}
}

func TestValidateAffordability_StructuralErrorsAreReturned(t *testing.T) {
	cfg := testLevel()
	state := game.NewGameState(cfg)
	state.Inventory = state.Inventory.With(inventory.Cheese, -1)

	_, err := game.NewAffordabilityValidator().ValidateAffordability(state, game.GameAction{}, cfg)

	var validationErr *shared.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "gameState.inventory.cheese", validationErr.Field)
}

func TestValidateAffordability_ResolvesArrivalsFirst(t *testing.T) {
	// Arrange: 10 patties land today, pushing holding cost up before new orders are evaluated
	cfg := testLevel()
	state := game.NewGameState(cfg)
	first, err := game.NewDayProcessor().ProcessDay(state, game.GameAction{
		SupplierOrders: []game.SupplierOrderRequest{{SupplierID: "butcher", Material: inventory.Patty, Quantity: 10}},
	}, cfg)
	require.NoError(t, err)

	// Act
	result, err := game.NewAffordabilityValidator().ValidateAffordability(first.State, game.GameAction{}, cfg)

	// Assert: 30 patties at 0.1 each
	require.NoError(t, err)
	assert.Equal(t, first.DailyResult.Costs.Holding+1, result.Breakdown.Holding)
}

func TestValidateAffordability_CountsLossMakingDeliveryArrivals(t *testing.T) {
	// Arrange: transport of 20 on a two unit sale worth 2 leaves the order at -18 net
	cfg := testLevel()
	cfg.Customers = append(cfg.Customers, level.Customer{
		ID:             "roadside",
		Name:           "Roadside Stand",
		LeadTime:       1,
		PricePerUnit:   1,
		TransportTiers: []level.CostTier{{MinQuantity: 1, Cost: 20}},
	})
	day1, err := game.NewDayProcessor().ProcessDay(withFinishedGoods(cfg, 2, 20), game.GameAction{
		CustomerOrders: []game.CustomerOrderRequest{{CustomerID: "roadside", Quantity: 2}},
	}, cfg)
	require.NoError(t, err)
	require.Len(t, day1.State.PendingCustomerOrders, 1)
	require.Equal(t, -18.0, day1.State.PendingCustomerOrders[0].NetRevenue)

	short := day1.State
	short.Cash = 25

	// Act
	result, err := game.NewAffordabilityValidator().ValidateAffordability(short, game.GameAction{}, cfg)
	require.NoError(t, err)
	_, processErr := game.NewDayProcessor().ProcessDay(short, game.GameAction{}, cfg)

	// Assert: 10 holding + 10 overstock + 18 realized loss
	assert.False(t, result.Valid)
	assert.Equal(t, 18.0, result.Breakdown.CustomerTransport)
	assert.Equal(t, 38.0, result.TotalCost)
	assert.Equal(t, 13.0, result.Shortfall)
	var processingErr *shared.ProcessingError
	assert.ErrorAs(t, processErr, &processingErr)

	exact := day1.State
	exact.Cash = 38
	result, err = game.NewAffordabilityValidator().ValidateAffordability(exact, game.GameAction{}, cfg)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	outcome, err := game.NewDayProcessor().ProcessDay(exact, game.GameAction{}, cfg)
	require.NoError(t, err)
	assert.Equal(t, 0.0, outcome.State.Cash)
}
