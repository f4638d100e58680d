package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/game"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/inventory"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

func finishedState(days int, cumulativeProfit, inventoryValue float64) game.GameState {
	state := game.GameState{
		Day:              days + 1,
		CumulativeProfit: cumulativeProfit,
		History:          make([]game.DailyResult, days),
		GameOver:         true,
	}
	state.InventoryValue[inventory.FinishedGoods] = inventoryValue
	return state
}

func TestCalculateGameResult(t *testing.T) {
	cfg := testLevel()
	user := shared.MustNewUserID("team-7")

	tests := []struct {
		name          string
		days          int
		profit        float64
		inventory     float64
		expectedScore int
	}{
		{name: "half the target over the full game", days: 5, profit: 400, inventory: 100, expectedScore: 50},
		{name: "beyond the target is capped", days: 5, profit: 5000, inventory: 0, expectedScore: 100},
		{name: "losses score zero", days: 5, profit: -300, inventory: 100, expectedScore: 0},
		{name: "ending early scales by completion", days: 2, profit: 1000, inventory: 0, expectedScore: 40},
		{name: "rounds to nearest point", days: 5, profit: 123.4, inventory: 0, expectedScore: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := game.NewScoreCalculator().CalculateGameResult(finishedState(tt.days, tt.profit, tt.inventory), cfg, user)

			assert.Equal(t, tt.expectedScore, result.Score)
			assert.Equal(t, 100, result.MaxScore)
			assert.Equal(t, user, result.UserID)
			assert.Equal(t, shared.LevelID(1), result.LevelID)
			assert.Equal(t, tt.days, result.DaysPlayed)
		})
	}
}

func TestCalculateGameResult_IsDeterministic(t *testing.T) {
	cfg := testLevel()
	state := finishedState(5, 612.37, 48.5)
	calculator := game.NewScoreCalculator()

	first := calculator.CalculateGameResult(state, cfg, shared.MustNewUserID("a"))
	second := calculator.CalculateGameResult(state, cfg, shared.MustNewUserID("a"))

	assert.Equal(t, first, second)
	assert.Equal(t, 660.87, first.EndingValue)
}

func TestRunningScoreMatchesFinalFormula(t *testing.T) {
	cfg := testLevel()
	calculator := game.NewScoreCalculator()

	assert.Equal(t, 20, calculator.RunningScore(500, 0, 2, cfg))
	assert.Equal(t, 0, calculator.RunningScore(-10, 5, 3, cfg))
}
