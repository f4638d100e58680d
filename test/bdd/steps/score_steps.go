package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/game"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/level"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
	"github.com/LeonIngman/LTH-Game-sub001/internal/infrastructure/levels"
)

type scoreContext struct {
	cfg *level.Config
}

func (sc *scoreContext) reset() {
	sc.cfg = nil
}

func (sc *scoreContext) theScoringRulesOfLevel(levelID int) error {
	id, err := shared.NewLevelID(levelID)
	if err != nil {
		return err
	}
	cfg, err := levels.MustNewCatalog().Get(id)
	if err != nil {
		return err
	}
	sc.cfg = cfg
	return nil
}

func (sc *scoreContext) theLevelTargetsProfitOverDays(target float64, days int) error {
	if sc.cfg == nil {
		return fmt.Errorf("no level loaded")
	}
	if sc.cfg.Scoring.TargetProfit != target {
		return fmt.Errorf("expected target profit %.2f, got %.2f", target, sc.cfg.Scoring.TargetProfit)
	}
	if sc.cfg.DaysToComplete != days {
		return fmt.Errorf("expected %d days, got %d", days, sc.cfg.DaysToComplete)
	}
	return nil
}

// scoresShouldBe checks | profit | inventory | days | score | rows
func (sc *scoreContext) scoresShouldBe(table *godog.Table) error {
	if sc.cfg == nil {
		return fmt.Errorf("no level loaded")
	}
	calculator := game.NewScoreCalculator()

	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header
		}
		profit, err := cellFloat(table, row, "profit")
		if err != nil {
			return fmt.Errorf("row %d: invalid profit: %w", i, err)
		}
		inventoryValue, err := cellFloat(table, row, "inventory")
		if err != nil {
			return fmt.Errorf("row %d: invalid inventory value: %w", i, err)
		}
		days, err := cellInt(table, row, "days")
		if err != nil {
			return fmt.Errorf("row %d: invalid days: %w", i, err)
		}
		expected, err := cellInt(table, row, "score")
		if err != nil {
			return fmt.Errorf("row %d: invalid score: %w", i, err)
		}

		if actual := calculator.RunningScore(profit, inventoryValue, days, sc.cfg); actual != expected {
			return fmt.Errorf("row %d: expected score %d for profit %.2f, inventory %.2f over %d days, got %d",
				i, expected, profit, inventoryValue, days, actual)
		}
	}
	return nil
}

func InitializeScoreScenario(ctx *godog.ScenarioContext) {
	sc := &scoreContext{}

	ctx.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		sc.reset()
		return ctx, nil
	})

	ctx.Step(`^the scoring rules of level (\d+)$`, sc.theScoringRulesOfLevel)
	ctx.Step(`^the level targets a profit of ([0-9.]+) over (\d+) days$`, sc.theLevelTargetsProfitOverDays)
	ctx.Step(`^the running scores should be:$`, sc.scoresShouldBe)
}
