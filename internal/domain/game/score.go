package game

import (
	"math"

	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/inventory"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/level"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

// GameResult summarises a finished level attempt
type GameResult struct {
	UserID           shared.UserID        `json:"userId"`
	LevelID          shared.LevelID       `json:"levelId"`
	Score            int                  `json:"score"`
	MaxScore         int                  `json:"maxScore"`
	CumulativeProfit float64              `json:"cumulativeProfit"`
	InventoryValue   float64              `json:"inventoryValue"`
	EndingValue      float64              `json:"endingValue"`
	TargetProfit     float64              `json:"targetProfit"`
	ProfitRatio      float64              `json:"profitRatio"`
	DaysPlayed       int                  `json:"daysPlayed"`
	DaysToComplete   int                  `json:"daysToComplete"`
	Completion       float64              `json:"completion"`
	FinalCash        float64              `json:"finalCash"`
	FinalInventory   inventory.Quantities `json:"finalInventory"`
	History          []DailyResult        `json:"history"`
}

// WithUser returns a copy attributed to userID
func (r GameResult) WithUser(userID shared.UserID) GameResult {
	r.UserID = userID
	return r
}

// ScoreCalculator derives normalised scores from profit and elapsed time
type ScoreCalculator struct{}

func NewScoreCalculator() *ScoreCalculator {
	return &ScoreCalculator{}
}

// CalculateGameResult scores a terminal state.
//
// Business Rules:
//   - ending_value = cumulative_profit + inventory valuation
//   - profit_ratio = clamp(ending_value / target_profit, 0, 1)
//   - completion = min(days_played / days_to_complete, 1)
//   - score = round(profit_ratio * completion * max_score)
func (c *ScoreCalculator) CalculateGameResult(state GameState, cfg *level.Config, userID shared.UserID) GameResult {
	inventoryValue := state.InventoryValue.Total()
	endingValue := shared.RoundMoney(state.CumulativeProfit + inventoryValue)
	ratio := c.profitRatio(endingValue, cfg.Scoring.TargetProfit)
	completion := c.completion(state.DaysElapsed(), cfg.DaysToComplete)

	return GameResult{
		UserID:           userID,
		LevelID:          cfg.ID,
		Score:            c.score(ratio, completion, cfg.Scoring.MaxScore),
		MaxScore:         cfg.Scoring.MaxScore,
		CumulativeProfit: state.CumulativeProfit,
		InventoryValue:   inventoryValue,
		EndingValue:      endingValue,
		TargetProfit:     cfg.Scoring.TargetProfit,
		ProfitRatio:      ratio,
		DaysPlayed:       state.DaysElapsed(),
		DaysToComplete:   cfg.DaysToComplete,
		Completion:       completion,
		FinalCash:        state.Cash,
		FinalInventory:   state.Inventory,
		History:          append([]DailyResult{}, state.History...),
	}
}

// RunningScore scores a state mid-game with the same formula
func (c *ScoreCalculator) RunningScore(cumulativeProfit, inventoryValue float64, daysPlayed int, cfg *level.Config) int {
	ratio := c.profitRatio(shared.RoundMoney(cumulativeProfit+inventoryValue), cfg.Scoring.TargetProfit)
	return c.score(ratio, c.completion(daysPlayed, cfg.DaysToComplete), cfg.Scoring.MaxScore)
}

func (c *ScoreCalculator) profitRatio(endingValue, target float64) float64 {
	if target <= 0 {
		if endingValue > 0 {
			return 1
		}
		return 0
	}
	return math.Max(0, math.Min(1, endingValue/target))
}

func (c *ScoreCalculator) completion(daysPlayed, daysToComplete int) float64 {
	if daysToComplete <= 0 {
		return 1
	}
	return math.Min(1, float64(daysPlayed)/float64(daysToComplete))
}

func (c *ScoreCalculator) score(ratio, completion float64, maxScore int) int {
	if maxScore <= 0 {
		return 0
	}
	return int(math.Round(ratio * completion * float64(maxScore)))
}
