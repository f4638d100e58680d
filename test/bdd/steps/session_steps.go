package steps

import (
	"context"
	"errors"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/LeonIngman/LTH-Game-sub001/internal/application/common"
	gameCommands "github.com/LeonIngman/LTH-Game-sub001/internal/application/game/commands"
	gameQueries "github.com/LeonIngman/LTH-Game-sub001/internal/application/game/queries"
	ledgerQueries "github.com/LeonIngman/LTH-Game-sub001/internal/application/ledger/queries"
	"github.com/LeonIngman/LTH-Game-sub001/internal/application/setup"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/game"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/inventory"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
	"github.com/LeonIngman/LTH-Game-sub001/internal/infrastructure/levels"
	"github.com/LeonIngman/LTH-Game-sub001/test/helpers"
)

// sessionContext drives the engine through the mediator against the shared database
type sessionContext struct {
	mediator common.Mediator

	start     *gameCommands.StartGameResponse
	lastDay   *gameCommands.ProcessDayResponse
	snapshots map[int]game.GameState // state at the start of each day
	err       error
}

func (sc *sessionContext) reset() error {
	sc.start = nil
	sc.lastDay = nil
	sc.snapshots = make(map[int]game.GameState)
	sc.err = nil

	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}

	repos := helpers.NewTestRepositories(helpers.SharedTestDB)
	sc.mediator = common.NewMediator()
	registry := setup.NewHandlerRegistry(repos.Sessions, repos.Performances, repos.Transactions, repos.UnitOfWork, levels.MustNewCatalog(), nil)
	return registry.RegisterAll(sc.mediator)
}

// Given / When steps

func (sc *sessionContext) userStartsLevel(userID string, levelID int) error {
	return sc.startLevel(userID, levelID, false)
}

func (sc *sessionContext) userRestartsLevel(userID string, levelID int) error {
	return sc.startLevel(userID, levelID, true)
}

func (sc *sessionContext) startLevel(userID string, levelID int, reset bool) error {
	resp, err := sc.mediator.Send(context.Background(), &gameCommands.StartGameCommand{
		UserID:  userID,
		LevelID: levelID,
		Reset:   reset,
	})
	if err != nil {
		return fmt.Errorf("failed to start level: %w", err)
	}
	start, ok := resp.(*gameCommands.StartGameResponse)
	if !ok {
		return fmt.Errorf("unexpected response type %T", resp)
	}
	sc.start = start
	sc.snapshots[start.Session.State.Day] = start.Session.State
	return nil
}

func (sc *sessionContext) userPlaysADayProducingAndSelling(userID string, levelID, units int, customerID string) error {
	return sc.playDay(userID, levelID, nil, game.GameAction{
		Production:     units,
		CustomerOrders: []game.CustomerOrderRequest{{CustomerID: customerID, Quantity: units}},
	})
}

func (sc *sessionContext) userPlaysAnIdleDay(userID string, levelID int) error {
	return sc.playDay(userID, levelID, nil, game.GameAction{})
}

func (sc *sessionContext) userPlaysIdleDays(userID string, levelID, days int) error {
	for i := 0; i < days; i++ {
		if err := sc.userPlaysAnIdleDay(userID, levelID); err != nil {
			return err
		}
		if sc.err != nil {
			return fmt.Errorf("idle day %d failed: %w", i+1, sc.err)
		}
	}
	return nil
}

func (sc *sessionContext) userBuysPatties(userID string, levelID, quantity int) error {
	return sc.playDay(userID, levelID, nil, game.GameAction{
		SupplierOrders: []game.SupplierOrderRequest{{SupplierID: "meat-market", Material: inventory.Patty, Quantity: quantity}},
	})
}

func (sc *sessionContext) userResubmitsTheStateOfDay(userID string, levelID, day int) error {
	state, ok := sc.snapshots[day]
	if !ok {
		return fmt.Errorf("no snapshot of day %d", day)
	}
	return sc.playDay(userID, levelID, &state, game.GameAction{})
}

func (sc *sessionContext) playDay(userID string, levelID int, state *game.GameState, action game.GameAction) error {
	resp, err := sc.mediator.Send(context.Background(), &gameCommands.ProcessDayCommand{
		UserID:  userID,
		LevelID: levelID,
		State:   state,
		Action:  action,
	})
	sc.err = err
	if err != nil {
		return nil
	}
	day, ok := resp.(*gameCommands.ProcessDayResponse)
	if !ok {
		return fmt.Errorf("unexpected response type %T", resp)
	}
	sc.lastDay = day
	sc.snapshots[day.State.Day] = day.State
	return nil
}

// Then steps

func (sc *sessionContext) aNewSessionShouldHaveBeenCreated() error {
	if sc.start == nil || !sc.start.Created {
		return fmt.Errorf("expected a new session to be created")
	}
	return nil
}

func (sc *sessionContext) theSessionShouldBeResumed() error {
	if sc.start == nil || sc.start.Created {
		return fmt.Errorf("expected the existing session to be resumed")
	}
	return nil
}

func (sc *sessionContext) theSessionOfShouldBeOnDay(userID string, levelID, day int) error {
	session, err := sc.session(userID, levelID)
	if err != nil {
		return err
	}
	if session.State.Day != day {
		return fmt.Errorf("expected persisted day %d, got %d", day, session.State.Day)
	}
	return nil
}

func (sc *sessionContext) theLastDayShouldHaveSucceeded() error {
	if sc.err != nil {
		return fmt.Errorf("expected the day to be processed, got %w", sc.err)
	}
	return nil
}

func (sc *sessionContext) theRequestShouldBeRejectedAsStale(persisted, requested int) error {
	var conflictErr *shared.ConflictError
	if !errors.As(sc.err, &conflictErr) {
		return fmt.Errorf("expected a conflict error, got %v", sc.err)
	}
	if conflictErr.PersistedDay != persisted || conflictErr.RequestedDay != requested {
		return fmt.Errorf("expected conflict %d/%d, got %d/%d",
			persisted, requested, conflictErr.PersistedDay, conflictErr.RequestedDay)
	}
	return nil
}

func (sc *sessionContext) theRequestShouldBeRejectedAsUnaffordable() error {
	var affordabilityErr *shared.AffordabilityError
	if !errors.As(sc.err, &affordabilityErr) {
		return fmt.Errorf("expected an affordability error, got %v", sc.err)
	}
	return nil
}

func (sc *sessionContext) theLedgerOfShouldHoldTransactions(userID string, levelID int, table *godog.Table) error {
	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header
		}
		txType := cellValue(table, row, "type")
		expectedCount, err := cellInt(table, row, "count")
		if err != nil {
			return err
		}
		expectedAmount, err := cellFloat(table, row, "amount")
		if err != nil {
			return err
		}

		resp, err := sc.mediator.Send(context.Background(), &ledgerQueries.GetTransactionsQuery{
			UserID:          userID,
			LevelID:         levelID,
			TransactionType: &txType,
		})
		if err != nil {
			return fmt.Errorf("failed to list %s transactions: %w", txType, err)
		}
		listing := resp.(*ledgerQueries.GetTransactionsResponse)
		if listing.Total != expectedCount {
			return fmt.Errorf("expected %d %s transactions, got %d", expectedCount, txType, listing.Total)
		}
		sum := 0.0
		for _, tx := range listing.Transactions {
			sum += tx.Amount
		}
		if err := expectMoney(txType+" amount", expectedAmount, sum); err != nil {
			return err
		}
	}
	return nil
}

func (sc *sessionContext) theLedgerOfShouldBeEmpty(userID string, levelID int) error {
	resp, err := sc.mediator.Send(context.Background(), &ledgerQueries.GetTransactionsQuery{
		UserID:  userID,
		LevelID: levelID,
	})
	if err != nil {
		return err
	}
	if total := resp.(*ledgerQueries.GetTransactionsResponse).Total; total != 0 {
		return fmt.Errorf("expected an empty ledger, found %d transactions", total)
	}
	return nil
}

func (sc *sessionContext) theNetProfitOfShouldBe(userID string, levelID int, expected float64) error {
	resp, err := sc.mediator.Send(context.Background(), &ledgerQueries.GetProfitLossQuery{
		UserID:  userID,
		LevelID: levelID,
	})
	if err != nil {
		return err
	}
	return expectMoney("net profit", expected, resp.(*ledgerQueries.GetProfitLossResponse).NetProfit)
}

func (sc *sessionContext) theNetProfitShouldMatchTheCumulativeProfit(userID string, levelID int) error {
	session, err := sc.session(userID, levelID)
	if err != nil {
		return err
	}
	return sc.theNetProfitOfShouldBe(userID, levelID, session.State.CumulativeProfit)
}

func (sc *sessionContext) shouldHaveCompletedAttemptsOnLevel(userID string, count, levelID int) error {
	resp, err := sc.mediator.Send(context.Background(), &gameQueries.ListPerformancesQuery{
		UserID:  userID,
		LevelID: &levelID,
	})
	if err != nil {
		return err
	}
	listing := resp.(*gameQueries.ListPerformancesResponse)
	if len(listing.Performances) != count {
		return fmt.Errorf("expected %d completed attempts, got %d", count, len(listing.Performances))
	}
	if count == 0 {
		return nil
	}
	if sc.lastDay == nil || sc.lastDay.Result == nil {
		return fmt.Errorf("expected the last day to end the game")
	}
	if best := listing.BestScore[levelID]; best != sc.lastDay.Result.Score {
		return fmt.Errorf("expected best score %d, got %d", sc.lastDay.Result.Score, best)
	}
	return nil
}

func (sc *sessionContext) session(userID string, levelID int) (*game.Session, error) {
	resp, err := sc.mediator.Send(context.Background(), &gameQueries.GetSessionQuery{
		UserID:  userID,
		LevelID: levelID,
	})
	if err != nil {
		return nil, err
	}
	session, ok := resp.(*game.Session)
	if !ok {
		return nil, fmt.Errorf("unexpected response type %T", resp)
	}
	return session, nil
}

func InitializeSessionScenario(ctx *godog.ScenarioContext) {
	sc := &sessionContext{}

	ctx.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		return ctx, sc.reset()
	})

	// Given / When steps
	ctx.Step(`^"([^"]*)" starts level (\d+)$`, sc.userStartsLevel)
	ctx.Step(`^"([^"]*)" restarts level (\d+)$`, sc.userRestartsLevel)
	ctx.Step(`^"([^"]*)" plays a day on level (\d+) producing (\d+) meals sold to "([^"]*)"$`, sc.userPlaysADayProducingAndSelling)
	ctx.Step(`^"([^"]*)" plays an idle day on level (\d+)$`, sc.userPlaysAnIdleDay)
	ctx.Step(`^"([^"]*)" plays (\d+) idle days on level (\d+)$`, func(userID string, days, levelID int) error {
		return sc.userPlaysIdleDays(userID, levelID, days)
	})
	ctx.Step(`^"([^"]*)" tries to buy (\d+) patties on level (\d+)$`, func(userID string, quantity, levelID int) error {
		return sc.userBuysPatties(userID, levelID, quantity)
	})
	ctx.Step(`^"([^"]*)" resubmits level (\d+) from the state of day (\d+)$`, sc.userResubmitsTheStateOfDay)

	// Then steps
	ctx.Step(`^a new session should have been created$`, sc.aNewSessionShouldHaveBeenCreated)
	ctx.Step(`^the existing session should be resumed$`, sc.theSessionShouldBeResumed)
	ctx.Step(`^the session of "([^"]*)" on level (\d+) should be on day (\d+)$`, sc.theSessionOfShouldBeOnDay)
	ctx.Step(`^the day should have been processed$`, sc.theLastDayShouldHaveSucceeded)
	ctx.Step(`^the request should be rejected as stale with persisted day (\d+) and requested day (\d+)$`, sc.theRequestShouldBeRejectedAsStale)
	ctx.Step(`^the request should be rejected as unaffordable$`, sc.theRequestShouldBeRejectedAsUnaffordable)
	ctx.Step(`^the ledger of "([^"]*)" on level (\d+) should hold:$`, sc.theLedgerOfShouldHoldTransactions)
	ctx.Step(`^the ledger of "([^"]*)" on level (\d+) should be empty$`, sc.theLedgerOfShouldBeEmpty)
	ctx.Step(`^the net profit of "([^"]*)" on level (\d+) should be (-?[0-9.]+)$`, sc.theNetProfitOfShouldBe)
	ctx.Step(`^the net profit of "([^"]*)" on level (\d+) should match the cumulative profit$`, sc.theNetProfitShouldMatchTheCumulativeProfit)
	ctx.Step(`^"([^"]*)" should have (\d+) completed attempts? on level (\d+)$`, sc.shouldHaveCompletedAttemptsOnLevel)
}
