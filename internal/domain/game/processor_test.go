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

func TestProcessDay_BuyProduceAndSellSameDay(t *testing.T) {
	// Arrange
	cfg := testLevel()
	state := game.NewGameState(cfg)
	action := game.GameAction{
		SupplierOrders: []game.SupplierOrderRequest{{SupplierID: "butcher", Material: inventory.Patty, Quantity: 20}},
		Production:     10,
		CustomerOrders: []game.CustomerOrderRequest{{CustomerID: "diner", Quantity: 5}},
	}

	// Act
	outcome, err := game.NewDayProcessor().ProcessDay(state, action, cfg)

	// Assert
	require.NoError(t, err)
	result := outcome.DailyResult
	assert.Equal(t, 90.0, result.Costs.Purchases)
	assert.Equal(t, 15.0, result.Costs.Transport)
	assert.Equal(t, 100.0, result.Costs.Production)
	assert.Equal(t, 115.0, result.Revenue)
	// patty 1 + bun 1 + cheese 1 + potato 2 + finished goods 2.5
	assert.Equal(t, 7.5, result.Costs.Holding)
	// 10 potatoes over the threshold of 30
	assert.Equal(t, 2.0, result.Costs.Overstock)
	assert.Equal(t, 214.5, result.Costs.Total)
	assert.Equal(t, -99.5, result.Profit)

	next := outcome.State
	assert.Equal(t, 2, next.Day)
	assert.Equal(t, 4900.5, next.Cash)
	assert.Equal(t, -99.5, next.CumulativeProfit)
	assert.Equal(t, quantities(10, 10, 10, 40, 5), next.Inventory)
	assert.Len(t, next.History, 1)
	require.Len(t, next.PendingSupplierOrders, 1)
	assert.Equal(t, "S1-1", next.PendingSupplierOrders[0].ID)
	assert.Equal(t, 1, next.PendingSupplierOrders[0].DaysRemaining)
	assert.Equal(t, 4.5, next.PendingSupplierOrders[0].UnitPrice)
	assert.False(t, outcome.GameOver)
	assert.Nil(t, outcome.Result)
}

func TestProcessDay_DelayedSaleRevenueIsSnapshotted(t *testing.T) {
	// Arrange
	cfg := testLevel()
	state := withFinishedGoods(cfg, 10, 100)
	processor := game.NewDayProcessor()

	// Act: ship 10 units to a customer with a two day lead time
	day1, err := processor.ProcessDay(state, game.GameAction{
		CustomerOrders: []game.CustomerOrderRequest{{CustomerID: "catering", Quantity: 10}},
	}, cfg)
	require.NoError(t, err)

	// the customer's price changes while the goods are on the road
	repriced := *cfg
	repriced.Customers = append([]level.Customer{}, cfg.Customers...)
	repriced.Customers[1].PricePerUnit = 99
	repriced.Customers[1].TransportTiers = []level.CostTier{{MinQuantity: 1, Cost: 1}}

	day2, err := processor.ProcessDay(day1.State, game.GameAction{}, &repriced)
	require.NoError(t, err)
	day3, err := processor.ProcessDay(day2.State, game.GameAction{}, &repriced)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, 0.0, day1.DailyResult.Revenue)
	assert.Equal(t, 0, day1.State.Inventory.Get(inventory.FinishedGoods))
	require.Len(t, day1.State.PendingCustomerOrders, 1)
	assert.Equal(t, 280.0, day1.State.PendingCustomerOrders[0].NetRevenue)

	assert.Equal(t, 0.0, day2.DailyResult.Revenue)
	require.Len(t, day2.State.PendingCustomerOrders, 1)
	assert.Equal(t, 1, day2.State.PendingCustomerOrders[0].DaysRemaining)

	assert.Equal(t, 280.0, day3.DailyResult.Revenue)
	assert.Equal(t, []string{"C1-1"}, day3.DailyResult.DeliveredOrders)
	assert.Empty(t, day3.State.PendingCustomerOrders)
}

func TestProcessDay_SupplierOrderArrivesOnDayPlusLeadTime(t *testing.T) {
	// Arrange: economy adds two days to the butcher's one day lead time
	cfg := testLevel()
	processor := game.NewDayProcessor()
	state := game.NewGameState(cfg)
	opening := state.Inventory.Get(inventory.Bun)

	outcome, err := processor.ProcessDay(state, game.GameAction{
		SupplierOrders:   []game.SupplierOrderRequest{{SupplierID: "butcher", Material: inventory.Bun, Quantity: 10}},
		DeliveryOptionID: "economy",
	}, cfg)
	require.NoError(t, err)
	assert.Equal(t, 4, outcome.DailyResult.Purchases[0].ArrivalDay)
	// flat 15 at half price
	assert.Equal(t, 7.5, outcome.DailyResult.Costs.Transport)

	// Act / Assert: days 2 and 3 count down, day 4 delivers
	for day := 2; day <= 4; day++ {
		previous := outcome.State
		outcome, err = processor.ProcessDay(previous, game.GameAction{}, cfg)
		require.NoError(t, err)

		if day < 4 {
			require.Len(t, outcome.State.PendingSupplierOrders, 1, "day %d", day)
			assert.Equal(t, previous.PendingSupplierOrders[0].DaysRemaining-1, outcome.State.PendingSupplierOrders[0].DaysRemaining)
			assert.Equal(t, opening, outcome.State.Inventory.Get(inventory.Bun), "day %d", day)
			continue
		}
		assert.Empty(t, outcome.State.PendingSupplierOrders)
		assert.Equal(t, opening+10, outcome.State.Inventory.Get(inventory.Bun))
		assert.Equal(t, 10, outcome.DailyResult.MaterialsReceived.Get(inventory.Bun))
	}
}

func TestProcessDay_ZeroLeadTimeDeliversImmediately(t *testing.T) {
	cfg := testLevel()
	state := game.NewGameState(cfg)

	outcome, err := game.NewDayProcessor().ProcessDay(state, game.GameAction{
		SupplierOrders:   []game.SupplierOrderRequest{{SupplierID: "butcher", Material: inventory.Patty, Quantity: 10}},
		DeliveryOptionID: "express",
	}, cfg)

	require.NoError(t, err)
	assert.Equal(t, 30, outcome.State.Inventory.Get(inventory.Patty))
	assert.Empty(t, outcome.State.PendingSupplierOrders)
	// 40 opening value + 48 purchase + 30 express transport
	assert.Equal(t, 118.0, outcome.State.InventoryValue.Get(inventory.Patty))
}

func TestProcessDay_CumulativeProfitReconcilesWithHistory(t *testing.T) {
	cfg := testLevel()
	processor := game.NewDayProcessor()
	state := withFinishedGoods(cfg, 20, 200)
	actions := []game.GameAction{
		{CustomerOrders: []game.CustomerOrderRequest{{CustomerID: "diner", Quantity: 3}}},
		{SupplierOrders: []game.SupplierOrderRequest{{SupplierID: "farm", Material: inventory.Cheese, Quantity: 7}}, Production: 2},
		{CustomerOrders: []game.CustomerOrderRequest{{CustomerID: "catering", Quantity: 11}}},
		{},
	}

	for _, action := range actions {
		outcome, err := processor.ProcessDay(state, action, cfg)
		require.NoError(t, err)
		state = outcome.State
	}

	sum := 0.0
	for _, r := range state.History {
		sum += r.Profit
	}
	assert.Len(t, state.History, 4)
	assert.Equal(t, state.ReconciledProfit(), state.CumulativeProfit)
	assert.InDelta(t, sum, state.CumulativeProfit, 1e-9)
	assert.Equal(t, state.CumulativeProfit, state.History[3].CumulativeProfit)
}

func TestProcessDay_GameOverExactlyOnFinalDay(t *testing.T) {
	cfg := testLevel()
	processor := game.NewDayProcessor()
	state := game.NewGameState(cfg)
	gameOverCount := 0

	for i := 1; i <= cfg.DaysToComplete; i++ {
		outcome, err := processor.ProcessDay(state, game.GameAction{}, cfg)
		require.NoError(t, err)
		state = outcome.State

		if outcome.GameOver {
			gameOverCount++
			assert.Equal(t, cfg.DaysToComplete, i)
			require.NotNil(t, outcome.Result)
			assert.Equal(t, cfg.DaysToComplete, outcome.Result.DaysPlayed)
			assert.True(t, outcome.Effects.RecordPerformance)
		} else {
			assert.False(t, state.GameOver)
			assert.Nil(t, outcome.Result)
		}
	}

	assert.Equal(t, 1, gameOverCount)
	assert.True(t, state.GameOver)

	_, err := processor.ProcessDay(state, game.GameAction{}, cfg)
	var validationErr *shared.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestProcessDay_EndsWhenInsolventAndEmpty(t *testing.T) {
	cfg := testLevel()
	cfg.EndWhenInsolvent = true
	state := game.NewGameState(cfg)
	state.Cash = 0
	state.Inventory = inventory.Quantities{}
	state.InventoryValue = inventory.Amounts{}

	outcome, err := game.NewDayProcessor().ProcessDay(state, game.GameAction{}, cfg)

	require.NoError(t, err)
	assert.True(t, outcome.GameOver)
	assert.Equal(t, 1, outcome.Result.DaysPlayed)
}

func TestProcessDay_NegativeCashLeavesStateUntouched(t *testing.T) {
	// Arrange
	cfg := testLevel()
	state := game.NewGameState(cfg)
	state.Cash = 50
	before, err := json.Marshal(state)
	require.NoError(t, err)

	// Act: the caller skipped the affordability check
	outcome, err := game.NewDayProcessor().ProcessDay(state, game.GameAction{
		SupplierOrders: []game.SupplierOrderRequest{{SupplierID: "butcher", Material: inventory.Patty, Quantity: 20}},
	}, cfg)

	// Assert
	var processingErr *shared.ProcessingError
	require.ErrorAs(t, err, &processingErr)
	after, err := json.Marshal(state)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
	assert.Equal(t, state.Cash, outcome.State.Cash)
	assert.Equal(t, 1, outcome.State.Day)
	assert.Empty(t, outcome.State.History)
}

func TestProcessDay_ZeroCashSellOnlyFloorsUncoveredCost(t *testing.T) {
	cfg := testLevel()
	state := game.NewGameState(cfg)
	state.Cash = 0

	outcome, err := game.NewDayProcessor().ProcessDay(state, game.GameAction{}, cfg)

	require.NoError(t, err)
	result := outcome.DailyResult
	assert.Equal(t, 0.0, outcome.State.Cash)
	assert.Greater(t, result.Costs.Holding, 0.0)
	assert.Equal(t, result.Costs.Total, result.UncoveredCost)
	assert.Equal(t, -result.Costs.Total, result.Profit)
	assert.Equal(t, 0.0, outcome.Effects.ClosingCash())
}

func TestProcessDay_EffectsReplayToClosingCash(t *testing.T) {
	cfg := testLevel()
	state := withFinishedGoods(cfg, 10, 100)

	outcome, err := game.NewDayProcessor().ProcessDay(state, game.GameAction{
		SupplierOrders: []game.SupplierOrderRequest{{SupplierID: "farm", Material: inventory.Potato, Quantity: 100}},
		CustomerOrders: []game.CustomerOrderRequest{{CustomerID: "diner", Quantity: 4}},
	}, cfg)

	require.NoError(t, err)
	assert.True(t, outcome.Effects.SaveSession)
	assert.Equal(t, outcome.State.Cash, outcome.Effects.ClosingCash())
	assert.Equal(t, game.CashMovementSalesRevenue, outcome.Effects.CashMovements[0].Kind)
}

func TestProcessDay_RejectsStructurallyInvalidActions(t *testing.T) {
	cfg := testLevel()
	state := game.NewGameState(cfg)

	tests := []struct {
		name    string
		action  game.GameAction
		field   string
		message string
	}{
		{
			name:    "unknown supplier",
			action:  game.GameAction{SupplierOrders: []game.SupplierOrderRequest{{SupplierID: "mill", Material: inventory.Bun, Quantity: 1}}},
			field:   "action.supplierOrders[0].supplierId",
			message: "unknown supplier",
		},
		{
			name:    "material omitted",
			action:  game.GameAction{SupplierOrders: []game.SupplierOrderRequest{{SupplierID: "butcher", Quantity: 10}}},
			field:   "action.supplierOrders[0].material",
			message: "material is required",
		},
		{
			name:    "material not offered",
			action:  game.GameAction{SupplierOrders: []game.SupplierOrderRequest{{SupplierID: "farm", Material: inventory.Patty, Quantity: 1}}},
			field:   "action.supplierOrders[0].material",
			message: "does not sell patty",
		},
		{
			name: "capacity exceeded across lines",
			action: game.GameAction{SupplierOrders: []game.SupplierOrderRequest{
				{SupplierID: "butcher", Material: inventory.Patty, Quantity: 60},
				{SupplierID: "butcher", Material: inventory.Patty, Quantity: 41},
			}},
			field:   "action.supplierOrders[1].quantity",
			message: "at most 100",
		},
		{
			name:    "negative production",
			action:  game.GameAction{Production: -1},
			field:   "action.production",
			message: "cannot be negative",
		},
		{
			name:    "not enough raw materials",
			action:  game.GameAction{Production: 21},
			field:   "action.production",
			message: "insufficient patty",
		},
		{
			name:    "selling goods not on hand",
			action:  game.GameAction{CustomerOrders: []game.CustomerOrderRequest{{CustomerID: "diner", Quantity: 2}}},
			field:   "action.customerOrders[0].quantity",
			message: "insufficient finishedGoods",
		},
		{
			name:    "below minimum delivery",
			action:  game.GameAction{CustomerOrders: []game.CustomerOrderRequest{{CustomerID: "diner", Quantity: 1}}},
			field:   "action.customerOrders[0].quantity",
			message: "at least 2",
		},
		{
			name:    "unknown delivery option",
			action:  game.GameAction{DeliveryOptionID: "drone"},
			field:   "action.deliveryOptionId",
			message: "unknown delivery option",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := game.NewDayProcessor().ProcessDay(state, tt.action, cfg)

			var validationErr *shared.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
			assert.Contains(t, validationErr.Message, tt.message)
		})
	}
}

func TestProcessDay_SplitSupplierLinesArePricedTogether(t *testing.T) {
	// Arrange
	cfg := testLevel()
	state := game.NewGameState(cfg)
	split := game.GameAction{SupplierOrders: []game.SupplierOrderRequest{
		{SupplierID: "butcher", Material: inventory.Patty, Quantity: 10},
		{SupplierID: "butcher", Material: inventory.Bun, Quantity: 5},
		{SupplierID: "butcher", Material: inventory.Patty, Quantity: 10},
	}}
	single := game.GameAction{SupplierOrders: []game.SupplierOrderRequest{
		{SupplierID: "butcher", Material: inventory.Patty, Quantity: 20},
		{SupplierID: "butcher", Material: inventory.Bun, Quantity: 5},
	}}

	// Act
	splitOutcome, err := game.NewDayProcessor().ProcessDay(state, split, cfg)
	require.NoError(t, err)
	singleOutcome, err := game.NewDayProcessor().ProcessDay(state, single, cfg)
	require.NoError(t, err)
	affordability, err := game.NewAffordabilityValidator().ValidateAffordability(state, split, cfg)
	require.NoError(t, err)

	// Assert: 20 patties reach the 4.5 tier instead of two orders at 4.8
	purchases := splitOutcome.DailyResult.Purchases
	require.Len(t, purchases, 2)
	assert.Equal(t, "S1-1", purchases[0].OrderID)
	assert.Equal(t, inventory.Patty, purchases[0].Material)
	assert.Equal(t, 20, purchases[0].Quantity)
	assert.Equal(t, 4.5, purchases[0].UnitPrice)
	assert.Equal(t, 90.0, purchases[0].PurchaseCost)
	assert.Equal(t, 15.0, purchases[0].TransportCost)
	assert.Equal(t, inventory.Bun, purchases[1].Material)
	assert.Equal(t, 5, purchases[1].Quantity)

	assert.Equal(t, singleOutcome.DailyResult.Costs, splitOutcome.DailyResult.Costs)
	assert.Equal(t, singleOutcome.State.Cash, splitOutcome.State.Cash)
	assert.Equal(t, singleOutcome.DailyResult.Costs.Total, affordability.TotalCost)
	assert.Len(t, splitOutcome.State.PendingSupplierOrders, 2)
}

func TestProcessDay_RejectsSupplierOrderDecodedWithoutMaterial(t *testing.T) {
	cfg := testLevel()
	state := game.NewGameState(cfg)
	var action game.GameAction
	require.NoError(t, json.Unmarshal([]byte(`{"supplierOrders":[{"supplierId":"butcher","quantity":10}]}`), &action))

	_, err := game.NewDayProcessor().ProcessDay(state, action, cfg)

	var validationErr *shared.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "action.supplierOrders[0].material", validationErr.Field)
	assert.Equal(t, 20, state.Inventory.Get(inventory.Patty))
}

func TestProcessDay_CustomerTotalRequirementCapsShipments(t *testing.T) {
	cfg := testLevel()
	state := withFinishedGoods(cfg, 40, 400)
	state.CustomerShipped = map[string]int{"catering": 25}

	_, err := game.NewDayProcessor().ProcessDay(state, game.GameAction{
		CustomerOrders: []game.CustomerOrderRequest{{CustomerID: "catering", Quantity: 6}},
	}, cfg)

	assert.ErrorContains(t, err, "needs 5 more units at most")
}

func TestProcessDay_ReportsTargetsMissed(t *testing.T) {
	cfg := testLevel()
	state := game.NewGameState(cfg)

	day1, err := game.NewDayProcessor().ProcessDay(state, game.GameAction{Production: 18}, cfg)
	require.NoError(t, err)
	day2, err := game.NewDayProcessor().ProcessDay(day1.State, game.GameAction{}, cfg)
	require.NoError(t, err)

	// 2 patties, buns and cheese left; all under the safety stock of 5
	assert.Contains(t, day1.DailyResult.SafetyStockWarnings, inventory.Patty)
	assert.NotContains(t, day1.DailyResult.SafetyStockWarnings, inventory.FinishedGoods)
	assert.Empty(t, day1.DailyResult.ScheduleShortfalls)
	assert.Equal(t, 10, day2.DailyResult.ScheduleShortfalls["catering"])
}

func TestProcessDay_RejectsInconsistentState(t *testing.T) {
	cfg := testLevel()
	state := game.NewGameState(cfg)
	state.Day = 3

	_, err := game.NewDayProcessor().ProcessDay(state, game.GameAction{}, cfg)

	assert.ErrorContains(t, err, "gameState.history")
}
