package game

import (
	"fmt"

	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/level"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

// AffordabilityResult is the outcome of checking an action against available cash
type AffordabilityResult struct {
	Valid         bool                 `json:"valid"`
	TotalCost     float64              `json:"totalCost"`
	Breakdown     shared.CostBreakdown `json:"costBreakdown"`
	AvailableCash float64              `json:"availableCash"`
	Shortfall     float64              `json:"shortfall,omitempty"`
	Dominant      string               `json:"dominantCost,omitempty"`
	Message       string               `json:"message,omitempty"`
	Bypassed      bool                 `json:"bypassed,omitempty"`
}

// Err converts a rejected result into an AffordabilityError; nil when valid
func (r AffordabilityResult) Err() error {
	if r.Valid {
		return nil
	}
	return shared.NewAffordabilityError(r.Breakdown, r.AvailableCash)
}

// AffordabilityValidator projects the cost of an action before it is processed
type AffordabilityValidator struct{}

func NewAffordabilityValidator() *AffordabilityValidator {
	return &AffordabilityValidator{}
}

// ValidateAffordability computes the total cost an action implies and compares it to the state's cash.
//
// Total cost is purchases + supplier transport + production + end-of-day holding + overstock
// + customer transport of today's sales. Deliveries due today are resolved first, exactly as
// DayProcessor does.
//
// A team with zero cash whose action buys and produces nothing is always allowed through so
// it can keep selling its stock.
//
// Structural problems with the state or action are returned as the error; an unaffordable
// action is a successful call with Valid=false.
func (v *AffordabilityValidator) ValidateAffordability(state GameState, action GameAction, cfg *level.Config) (AffordabilityResult, error) {
	sim, err := simulateDay(state, action, cfg)
	if err != nil {
		return AffordabilityResult{}, err
	}

	breakdown := sim.breakdown()
	cash := shared.RoundMoney(state.Cash)
	result := AffordabilityResult{
		Valid:         true,
		TotalCost:     breakdown.Total,
		Breakdown:     breakdown,
		AvailableCash: cash,
	}

	if breakdown.Total <= cash {
		return result, nil
	}

	if IsZeroCashBypass(state, action) {
		result.Bypassed = true
		result.Message = fmt.Sprintf("cash is zero and nothing is bought or produced: proceeding despite projected cost %.2f", breakdown.Total)
		return result, nil
	}

	affordabilityErr := shared.NewAffordabilityError(breakdown, cash)
	result.Valid = false
	result.Shortfall = affordabilityErr.Shortfall
	result.Dominant = breakdown.Dominant()
	result.Message = affordabilityErr.Error()
	return result, nil
}

// IsZeroCashBypass reports whether the zero-cash sales-only exception applies
func IsZeroCashBypass(state GameState, action GameAction) bool {
	return shared.RoundMoney(state.Cash) == 0 && action.SpendsNothing()
}
