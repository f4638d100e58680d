package game_test

import (
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/game"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/inventory"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/level"
)

func amounts(patty, bun, cheese, potato, finished float64) inventory.Amounts {
	return inventory.Amounts{
		inventory.Patty:         patty,
		inventory.Bun:           bun,
		inventory.Cheese:        cheese,
		inventory.Potato:        potato,
		inventory.FinishedGoods: finished,
	}
}

func quantities(patty, bun, cheese, potato, finished int) inventory.Quantities {
	return inventory.Quantities{
		inventory.Patty:         patty,
		inventory.Bun:           bun,
		inventory.Cheese:        cheese,
		inventory.Potato:        potato,
		inventory.FinishedGoods: finished,
	}
}

// testLevel is a small five-day level with one delayed and one immediate customer
func testLevel() *level.Config {
	cfg := &level.Config{
		ID:   1,
		Name: "Test Kitchen",
		Suppliers: []level.Supplier{
			{
				ID:       "butcher",
				Name:     "Butcher",
				LeadTime: 1,
				Offers: map[inventory.Material]level.MaterialOffer{
					inventory.Patty: {
						BasePrice: 5,
						Capacity:  100,
						PriceTiers: []level.PriceTier{
							{MinQuantity: 10, UnitPrice: 4.8},
							{MinQuantity: 20, UnitPrice: 4.5},
						},
					},
					inventory.Bun: {BasePrice: 1.2},
				},
				TransportCost: 15,
			},
			{
				ID:       "farm",
				Name:     "Farm",
				LeadTime: 2,
				Offers: map[inventory.Material]level.MaterialOffer{
					inventory.Cheese: {BasePrice: 2},
					inventory.Potato: {BasePrice: 0.3},
				},
				TransportTiers: []level.CostTier{{MinQuantity: 1, Cost: 8}, {MinQuantity: 100, Cost: 12}},
			},
		},
		Customers: []level.Customer{
			{
				ID:              "diner",
				Name:            "Diner",
				LeadTime:        0,
				PricePerUnit:    25,
				TransportTiers:  []level.CostTier{{MinQuantity: 1, Cost: 10}},
				MinimumDelivery: 2,
			},
			{
				ID:               "catering",
				Name:             "Catering",
				LeadTime:         2,
				PricePerUnit:     30,
				TransportTiers:   []level.CostTier{{MinQuantity: 1, Cost: 20}},
				TotalRequirement: 30,
				DeliverySchedule: []level.ScheduledDelivery{{Day: 2, Quantity: 10}},
			},
		},
		DeliveryOptions: []level.DeliveryOption{
			{ID: "economy", Name: "Economy", LeadTimeDelta: 2, CostMultiplier: 0.5},
			{ID: "express", Name: "Express", LeadTimeDelta: -1, CostMultiplier: 2},
		},
		MaterialBasePrices:    amounts(2, 1, 1.5, 0.25, 0),
		HoldingCosts:          amounts(0.1, 0.1, 0.1, 0.05, 0.5),
		SafetyStock:           quantities(5, 5, 5, 20, 0),
		ProductionCostPerUnit: 10,
		Recipe:                level.DefaultRecipe(),
		DaysToComplete:        5,
		InitialCash:           5000,
		InitialInventory:      quantities(20, 20, 20, 80, 0),
		TierPolicy:            level.TierPolicyFloor,
		Scoring:               level.Scoring{MaxScore: 100, TargetProfit: 1000},
	}
	cfg.Overstock[inventory.Potato] = level.OverstockRule{Threshold: 30, PenaltyPerUnit: 0.2}
	return cfg
}

// withFinishedGoods returns the opening state with units of stocked finished goods
func withFinishedGoods(cfg *level.Config, units int, value float64) game.GameState {
	state := game.NewGameState(cfg)
	state.Inventory = state.Inventory.With(inventory.FinishedGoods, units)
	state.InventoryValue[inventory.FinishedGoods] = value
	return state
}
