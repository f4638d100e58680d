package game

import (
	"fmt"

	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/delivery"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/inventory"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/level"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

// GameState is the full simulation state of one (user, level) attempt.
// The engine never mutates a GameState; each processed day yields a new one.
type GameState struct {
	Day                   int                      `json:"day"`
	Cash                  float64                  `json:"cash"`
	Inventory             inventory.Quantities     `json:"inventory"`
	InventoryValue        inventory.Amounts        `json:"inventoryValue"`
	PendingSupplierOrders []delivery.SupplierOrder `json:"pendingSupplierOrders"`
	PendingCustomerOrders []delivery.CustomerOrder `json:"pendingCustomerOrders"`
	CustomerShipped       map[string]int           `json:"customerShipped,omitempty"`
	CumulativeProfit      float64                  `json:"cumulativeProfit"`
	Score                 int                      `json:"score"`
	History               []DailyResult            `json:"history"`
	GameOver              bool                     `json:"gameOver"`
}

// NewGameState creates the day-one state for a level
func NewGameState(cfg *level.Config) GameState {
	stock := cfg.InitialStock()
	return GameState{
		Day:                   1,
		Cash:                  shared.RoundMoney(cfg.InitialCash),
		Inventory:             stock.Quantities,
		InventoryValue:        stock.Value,
		PendingSupplierOrders: []delivery.SupplierOrder{},
		PendingCustomerOrders: []delivery.CustomerOrder{},
		CustomerShipped:       map[string]int{},
		History:               []DailyResult{},
	}
}

// Stock returns the on-hand inventory with its valuation
func (s GameState) Stock() inventory.Stock {
	return inventory.Stock{Quantities: s.Inventory, Value: s.InventoryValue}
}

// Queue returns the in-transit orders
func (s GameState) Queue() delivery.Queue {
	return delivery.Queue{Supplier: s.PendingSupplierOrders, Customer: s.PendingCustomerOrders}
}

// DaysElapsed is the number of days processed so far
func (s GameState) DaysElapsed() int {
	return len(s.History)
}

// Validate checks the structural invariants a caller-supplied state must satisfy
func (s GameState) Validate() error {
	if s.Day < 1 {
		return shared.NewValidationError("gameState.day", fmt.Sprintf("must be at least 1, got %d", s.Day))
	}
	if s.Cash < -shared.CashTolerance {
		return shared.NewValidationError("gameState.cash", fmt.Sprintf("cannot be negative, got %.2f", s.Cash))
	}
	if m, found := s.Inventory.FirstNegative(); found {
		return shared.NewValidationError("gameState.inventory."+m.String(),
			fmt.Sprintf("cannot be negative, got %d", s.Inventory.Get(m)))
	}
	if len(s.History) != s.Day-1 {
		return shared.NewValidationError("gameState.history",
			fmt.Sprintf("expected %d entries for day %d, got %d", s.Day-1, s.Day, len(s.History)))
	}
	for id, shipped := range s.CustomerShipped {
		if shipped < 0 {
			return shared.NewValidationError("gameState.customerShipped."+id, "cannot be negative")
		}
	}
	return s.Queue().Validate()
}

// ReconciledProfit sums the profit of every history entry the same way the engine accumulates it
func (s GameState) ReconciledProfit() float64 {
	total := 0.0
	for _, r := range s.History {
		total = shared.RoundMoney(total + r.Profit)
	}
	return total
}

// clone copies every slice and map so the result shares no storage with s
func (s GameState) clone() GameState {
	next := s
	next.PendingSupplierOrders = append([]delivery.SupplierOrder{}, s.PendingSupplierOrders...)
	next.PendingCustomerOrders = append([]delivery.CustomerOrder{}, s.PendingCustomerOrders...)
	next.History = append(make([]DailyResult, 0, len(s.History)+1), s.History...)
	next.CustomerShipped = make(map[string]int, len(s.CustomerShipped))
	for id, qty := range s.CustomerShipped {
		next.CustomerShipped[id] = qty
	}
	return next
}
