package steps

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/cucumber/godog"

	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/game"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/inventory"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/level"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
	"github.com/LeonIngman/LTH-Game-sub001/internal/infrastructure/levels"
)

const moneyTolerance = 0.005

type dayContext struct {
	cfg   *level.Config
	state game.GameState

	action        game.GameAction
	outcome       *game.DayOutcome
	affordability game.AffordabilityResult
	err           error
}

func (dc *dayContext) reset() {
	dc.cfg = nil
	dc.state = game.GameState{}
	dc.action = game.GameAction{}
	dc.outcome = nil
	dc.affordability = game.AffordabilityResult{}
	dc.err = nil
}

// Given steps

func (dc *dayContext) aNewGameOnLevel(levelID int) error {
	id, err := shared.NewLevelID(levelID)
	if err != nil {
		return err
	}
	cfg, err := levels.MustNewCatalog().Get(id)
	if err != nil {
		return err
	}
	dc.cfg = cfg
	dc.state = game.NewGameState(cfg)
	return nil
}

func (dc *dayContext) theTeamHasCash(cash float64) error {
	dc.state.Cash = cash
	return nil
}

func (dc *dayContext) theTeamHasFinishedMealsInStock(units int) error {
	dc.state.Inventory = dc.state.Inventory.With(inventory.FinishedGoods, units)
	dc.state.InventoryValue[inventory.FinishedGoods] = float64(units) * dc.cfg.ProductionCostPerUnit
	return nil
}

func (dc *dayContext) theTeamOrders(table *godog.Table) error {
	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header
		}
		material, err := inventory.ParseMaterial(cellValue(table, row, "material"))
		if err != nil {
			return err
		}
		quantity, err := cellInt(table, row, "quantity")
		if err != nil {
			return err
		}
		dc.action.SupplierOrders = append(dc.action.SupplierOrders, game.SupplierOrderRequest{
			SupplierID: cellValue(table, row, "supplier"),
			Material:   material,
			Quantity:   quantity,
		})
	}
	return nil
}

func (dc *dayContext) theTeamProducesMeals(units int) error {
	dc.action.Production = units
	return nil
}

func (dc *dayContext) theTeamSellsMealsTo(units int, customerID string) error {
	dc.action.CustomerOrders = append(dc.action.CustomerOrders, game.CustomerOrderRequest{
		CustomerID: customerID,
		Quantity:   units,
	})
	return nil
}

// When steps

func (dc *dayContext) iProcessTheDay() error {
	if dc.cfg == nil {
		return fmt.Errorf("no level loaded")
	}
	dc.outcome, dc.err = game.NewDayProcessor().ProcessDay(dc.state, dc.action, dc.cfg)
	if dc.err == nil {
		dc.state = dc.outcome.State
	}
	dc.action = game.GameAction{}
	return nil
}

func (dc *dayContext) iProcessIdleDays(days int) error {
	for i := 0; i < days; i++ {
		if err := dc.iProcessTheDay(); err != nil {
			return err
		}
		if dc.err != nil {
			return fmt.Errorf("idle day %d failed: %w", i+1, dc.err)
		}
	}
	return nil
}

func (dc *dayContext) iCheckAffordability() error {
	if dc.cfg == nil {
		return fmt.Errorf("no level loaded")
	}
	dc.affordability, dc.err = game.NewAffordabilityValidator().ValidateAffordability(dc.state, dc.action, dc.cfg)
	return nil
}

// Then steps

func (dc *dayContext) itShouldBeDay(day int) error {
	if dc.state.Day != day {
		return fmt.Errorf("expected day %d, got %d", day, dc.state.Day)
	}
	return nil
}

func (dc *dayContext) cashShouldBe(expected float64) error {
	return expectMoney("cash", expected, dc.state.Cash)
}

func (dc *dayContext) theDaysCostShouldBe(component string, expected float64) error {
	if err := dc.requireOutcome(); err != nil {
		return err
	}
	costs := dc.outcome.DailyResult.Costs
	var actual float64
	switch component {
	case "purchase":
		actual = costs.Purchases
	case "transport":
		actual = costs.Transport
	case "production":
		actual = costs.Production
	case "holding":
		actual = costs.Holding
	case "overstock":
		actual = costs.Overstock
	case "total":
		actual = costs.Total
	default:
		return fmt.Errorf("unknown cost component %q", component)
	}
	return expectMoney(component+" cost", expected, actual)
}

func (dc *dayContext) theDaysRevenueShouldBe(expected float64) error {
	if err := dc.requireOutcome(); err != nil {
		return err
	}
	return expectMoney("revenue", expected, dc.outcome.DailyResult.Revenue)
}

func (dc *dayContext) theDaysProfitShouldBe(expected float64) error {
	if err := dc.requireOutcome(); err != nil {
		return err
	}
	return expectMoney("profit", expected, dc.outcome.DailyResult.Profit)
}

func (dc *dayContext) theUncoveredCostShouldBe(expected float64) error {
	if err := dc.requireOutcome(); err != nil {
		return err
	}
	return expectMoney("uncovered cost", expected, dc.outcome.DailyResult.UncoveredCost)
}

func (dc *dayContext) theInventoryShouldBe(table *godog.Table) error {
	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header
		}
		material, err := inventory.ParseMaterial(cellValue(table, row, "material"))
		if err != nil {
			return err
		}
		expected, err := cellInt(table, row, "quantity")
		if err != nil {
			return err
		}
		if actual := dc.state.Inventory.Get(material); actual != expected {
			return fmt.Errorf("expected %d %s, got %d", expected, material, actual)
		}
	}
	return nil
}

func (dc *dayContext) supplierOrdersShouldBeInTransit(count int) error {
	if actual := len(dc.state.PendingSupplierOrders); actual != count {
		return fmt.Errorf("expected %d supplier orders in transit, got %d", count, actual)
	}
	return nil
}

func (dc *dayContext) theHistoryShouldHoldDays(count int) error {
	if actual := len(dc.state.History); actual != count {
		return fmt.Errorf("expected %d history entries, got %d", count, actual)
	}
	return nil
}

func (dc *dayContext) theGameShouldBeOver() error {
	if err := dc.requireOutcome(); err != nil {
		return err
	}
	if !dc.outcome.GameOver || !dc.state.GameOver {
		return fmt.Errorf("expected the game to be over after day %d", dc.outcome.DailyResult.Day)
	}
	if dc.outcome.Result == nil {
		return fmt.Errorf("expected a final result")
	}
	return nil
}

func (dc *dayContext) theGameShouldNotBeOver() error {
	if dc.state.GameOver {
		return fmt.Errorf("expected the game to continue")
	}
	return nil
}

func (dc *dayContext) theFinalResultShouldReportDaysPlayed(days int) error {
	if err := dc.requireOutcome(); err != nil {
		return err
	}
	if dc.outcome.Result == nil {
		return fmt.Errorf("expected a final result")
	}
	if dc.outcome.Result.DaysPlayed != days {
		return fmt.Errorf("expected %d days played, got %d", days, dc.outcome.Result.DaysPlayed)
	}
	if dc.outcome.Result.Score != dc.state.Score {
		return fmt.Errorf("final state score %d differs from result score %d", dc.state.Score, dc.outcome.Result.Score)
	}
	return nil
}

func (dc *dayContext) processingShouldFailWithValidationOn(field string) error {
	var validationErr *shared.ValidationError
	if !errors.As(dc.err, &validationErr) {
		return fmt.Errorf("expected a validation error on %s, got %v", field, dc.err)
	}
	if validationErr.Field != field {
		return fmt.Errorf("expected validation error on %s, got %s", field, validationErr.Field)
	}
	return nil
}

func (dc *dayContext) processingShouldFailWithAProcessingError() error {
	var processingErr *shared.ProcessingError
	if !errors.As(dc.err, &processingErr) {
		return fmt.Errorf("expected a processing error, got %v", dc.err)
	}
	return nil
}

func (dc *dayContext) theActionShouldBeAffordable() error {
	if dc.err != nil {
		return fmt.Errorf("affordability check failed: %w", dc.err)
	}
	if !dc.affordability.Valid {
		return fmt.Errorf("expected the action to be affordable: %s", dc.affordability.Message)
	}
	return nil
}

func (dc *dayContext) theActionShouldNotBeAffordable() error {
	if dc.err != nil {
		return fmt.Errorf("affordability check failed: %w", dc.err)
	}
	if dc.affordability.Valid {
		return fmt.Errorf("expected the action to be rejected, projected cost %.2f", dc.affordability.TotalCost)
	}
	return nil
}

func (dc *dayContext) theProjectedTotalCostShouldBe(expected float64) error {
	return expectMoney("projected total cost", expected, dc.affordability.TotalCost)
}

func (dc *dayContext) theShortfallShouldBe(expected float64) error {
	return expectMoney("shortfall", expected, dc.affordability.Shortfall)
}

func (dc *dayContext) theDominantCostShouldBe(expected string) error {
	if dc.affordability.Dominant != expected {
		return fmt.Errorf("expected dominant cost %q, got %q", expected, dc.affordability.Dominant)
	}
	return nil
}

func (dc *dayContext) theZeroCashBypassShouldApply() error {
	if !dc.affordability.Bypassed {
		return fmt.Errorf("expected the zero-cash bypass to apply")
	}
	return nil
}

func (dc *dayContext) requireOutcome() error {
	if dc.err != nil {
		return fmt.Errorf("day processing failed: %w", dc.err)
	}
	if dc.outcome == nil {
		return fmt.Errorf("no day has been processed")
	}
	return nil
}

func expectMoney(name string, expected, actual float64) error {
	if math.Abs(expected-actual) > moneyTolerance {
		return fmt.Errorf("expected %s %.2f, got %.2f", name, expected, actual)
	}
	return nil
}

func InitializeDayScenario(ctx *godog.ScenarioContext) {
	dc := &dayContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		dc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a new game on level (\d+)$`, dc.aNewGameOnLevel)
	ctx.Step(`^the team has (-?[0-9.]+) in cash$`, dc.theTeamHasCash)
	ctx.Step(`^the team has (\d+) finished meals in stock$`, dc.theTeamHasFinishedMealsInStock)
	ctx.Step(`^the team orders:$`, dc.theTeamOrders)
	ctx.Step(`^the team produces (\d+) meals$`, dc.theTeamProducesMeals)
	ctx.Step(`^the team sells (\d+) meals to "([^"]*)"$`, dc.theTeamSellsMealsTo)

	// When steps
	ctx.Step(`^I process the day$`, dc.iProcessTheDay)
	ctx.Step(`^I process (\d+) idle days$`, dc.iProcessIdleDays)
	ctx.Step(`^I check affordability$`, dc.iCheckAffordability)

	// Then steps
	ctx.Step(`^it should be day (\d+)$`, dc.itShouldBeDay)
	ctx.Step(`^cash should be ([0-9.]+)$`, dc.cashShouldBe)
	ctx.Step(`^the day's (purchase|transport|production|holding|overstock|total) cost should be ([0-9.]+)$`, dc.theDaysCostShouldBe)
	ctx.Step(`^the day's revenue should be ([0-9.]+)$`, dc.theDaysRevenueShouldBe)
	ctx.Step(`^the day's profit should be (-?[0-9.]+)$`, dc.theDaysProfitShouldBe)
	ctx.Step(`^the uncovered cost should be ([0-9.]+)$`, dc.theUncoveredCostShouldBe)
	ctx.Step(`^the inventory should be:$`, dc.theInventoryShouldBe)
	ctx.Step(`^(\d+) supplier orders? should be in transit$`, dc.supplierOrdersShouldBeInTransit)
	ctx.Step(`^the history should hold (\d+) days$`, dc.theHistoryShouldHoldDays)
	ctx.Step(`^the game should be over$`, dc.theGameShouldBeOver)
	ctx.Step(`^the game should not be over$`, dc.theGameShouldNotBeOver)
	ctx.Step(`^the final result should report (\d+) days played$`, dc.theFinalResultShouldReportDaysPlayed)
	ctx.Step(`^processing should fail with a validation error on "([^"]*)"$`, dc.processingShouldFailWithValidationOn)
	ctx.Step(`^processing should fail with a processing error$`, dc.processingShouldFailWithAProcessingError)
	ctx.Step(`^the action should be affordable$`, dc.theActionShouldBeAffordable)
	ctx.Step(`^the action should not be affordable$`, dc.theActionShouldNotBeAffordable)
	ctx.Step(`^the projected total cost should be ([0-9.]+)$`, dc.theProjectedTotalCostShouldBe)
	ctx.Step(`^the shortfall should be ([0-9.]+)$`, dc.theShortfallShouldBe)
	ctx.Step(`^the dominant cost should be "([^"]*)"$`, dc.theDominantCostShouldBe)
	ctx.Step(`^the zero-cash bypass should apply$`, dc.theZeroCashBypassShouldApply)
}
