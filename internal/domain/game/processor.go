package game

import (
	"fmt"

	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/inventory"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/level"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

// DayOutcome is everything one processed day produces
type DayOutcome struct {
	State       GameState
	DailyResult DailyResult
	GameOver    bool
	Result      *GameResult // set only when the day ended the game
	Effects     Effects
}

// DayProcessor advances a game state by exactly one day.
// It is a pure transformation: no I/O, no shared mutable state.
type DayProcessor struct {
	scores *ScoreCalculator
}

func NewDayProcessor() *DayProcessor {
	return &DayProcessor{scores: NewScoreCalculator()}
}

// ProcessDay produces the next state from state, action and cfg.
//
// Callers are expected to have checked the action with AffordabilityValidator first.
// On any error the returned outcome carries the input state unchanged.
func (p *DayProcessor) ProcessDay(state GameState, action GameAction, cfg *level.Config) (*DayOutcome, error) {
	failed := &DayOutcome{State: state}

	// 1-6. Arrivals, new orders, production, sales, holding
	sim, err := simulateDay(state, action, cfg)
	if err != nil {
		return failed, err
	}
	result := sim.result
	result.Revenue = sim.revenue

	// 7. Profit and cash
	result.Profit = shared.RoundMoney(result.Revenue - result.Costs.Total)
	rawCash := state.Cash + result.Revenue - result.Costs.Total
	cash, ok := shared.SnapCash(rawCash)
	if !ok {
		if !IsZeroCashBypass(state, action) {
			return failed, shared.NewProcessingError(
				fmt.Sprintf("day %d would leave cash at %.2f", state.Day, rawCash),
				fmt.Sprintf("opening cash %.2f, revenue %.2f, costs %.2f", state.Cash, result.Revenue, result.Costs.Total))
		}
		result.UncoveredCost = shared.RoundMoney(-rawCash)
		cash = 0
	}
	if m, found := sim.stock.Quantities.FirstNegative(); found {
		return failed, shared.NewProcessingError(
			fmt.Sprintf("day %d would leave negative %s inventory", state.Day, m), "")
	}

	next := state.clone()
	next.Cash = cash
	next.Inventory = sim.stock.Quantities
	next.InventoryValue = sim.stock.Value
	next.PendingSupplierOrders = sim.queue.Supplier
	next.PendingCustomerOrders = sim.queue.Customer
	next.CustomerShipped = sim.shipped
	next.CumulativeProfit = shared.RoundMoney(state.CumulativeProfit + result.Profit)
	next.Score = p.scores.RunningScore(next.CumulativeProfit, next.InventoryValue.Total(), state.Day, cfg)

	result.Inventory = next.Inventory
	result.InventoryValue = next.InventoryValue
	result.CumulativeProfit = next.CumulativeProfit
	result.Cash = next.Cash
	result.Score = next.Score

	// 8. History and day counter
	next.History = append(next.History, result)
	next.Day = state.Day + 1

	// 9. Termination
	outcome := &DayOutcome{
		DailyResult: result,
		Effects: Effects{
			SaveSession:   true,
			OpeningCash:   state.Cash,
			CashMovements: cashMovementsFor(result, result.Revenue),
		},
	}
	if p.isOver(state.Day, next, cfg) {
		next.GameOver = true
		gameResult := p.scores.CalculateGameResult(next, cfg, shared.UserID{})
		next.Score = gameResult.Score
		outcome.Result = &gameResult
		outcome.GameOver = true
		outcome.Effects.RecordPerformance = true
	}
	outcome.State = next

	return outcome, nil
}

// isOver evaluates the terminal conditions after processedDay
func (p *DayProcessor) isOver(processedDay int, next GameState, cfg *level.Config) bool {
	if processedDay >= cfg.DaysToComplete {
		return true
	}
	if !cfg.EndWhenInsolvent {
		return false
	}
	return next.Cash == 0 && next.Inventory.IsEmpty() && next.Queue().IsEmpty()
}

// InventoryWarnings lists the materials a loosely-typed inventory map omitted
func InventoryWarnings(missing []inventory.Material) []string {
	warnings := make([]string, 0, len(missing))
	for _, m := range missing {
		warnings = append(warnings, fmt.Sprintf("inventory.%s missing, defaulted to 0", m))
	}
	return warnings
}
