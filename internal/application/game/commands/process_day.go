package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/LeonIngman/LTH-Game-sub001/internal/adapters/metrics"
	"github.com/LeonIngman/LTH-Game-sub001/internal/application/common"
	ledgerCommands "github.com/LeonIngman/LTH-Game-sub001/internal/application/ledger/commands"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/game"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/level"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
	"github.com/LeonIngman/LTH-Game-sub001/pkg/utils"
)

// ProcessDayCommand advances a session by one day.
// State is the state the client built its action from; when nil the persisted state is used.
type ProcessDayCommand struct {
	UserID   string
	LevelID  int
	State    *game.GameState
	Action   game.GameAction
	Warnings []string // input normalisation notes from the transport layer
}

// ProcessDayResponse carries the new state and the day's record
type ProcessDayResponse struct {
	State       game.GameState
	DailyResult game.DailyResult
	GameOver    bool
	Result      *game.GameResult
	Warnings    []string
}

// ProcessDayHandler handles the ProcessDay command
//
// Flow:
// 1. Lock the session so only one day transition is in flight
// 2. Reject requests built from a stale state
// 3. Check affordability
// 4. Run the day processor
// 5. Apply the returned effects in one unit of work: session upsert, ledger postings, performance record
type ProcessDayHandler struct {
	sessions     game.SessionRepository
	performances game.PerformanceRepository
	levels       level.Catalog
	mediator     common.Mediator
	unitOfWork   shared.UnitOfWork
	locks        *common.SessionLocks
	validator    *game.AffordabilityValidator
	processor    *game.DayProcessor
	clock        shared.Clock
}

// NewProcessDayHandler creates a new ProcessDayHandler
func NewProcessDayHandler(
	sessions game.SessionRepository,
	performances game.PerformanceRepository,
	levels level.Catalog,
	mediator common.Mediator,
	unitOfWork shared.UnitOfWork,
	locks *common.SessionLocks,
	clock shared.Clock,
) *ProcessDayHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &ProcessDayHandler{
		sessions:     sessions,
		performances: performances,
		levels:       levels,
		mediator:     mediator,
		unitOfWork:   unitOfWork,
		locks:        locks,
		validator:    game.NewAffordabilityValidator(),
		processor:    game.NewDayProcessor(),
		clock:        clock,
	}
}

// Handle executes the ProcessDay command
func (h *ProcessDayHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*ProcessDayCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ProcessDayCommand")
	}

	key, err := shared.NewSessionKey(cmd.UserID, cmd.LevelID)
	if err != nil {
		return nil, err
	}
	cfg, err := h.levels.Get(key.LevelID)
	if err != nil {
		return nil, err
	}

	logger := common.LoggerFromContext(ctx)
	for _, warning := range cmd.Warnings {
		logger.Log("WARNING", warning, map[string]interface{}{"session": key.String()})
	}

	// 1. One transition per session at a time
	unlock := h.locks.Lock(key)
	defer unlock()

	// 2. Resolve the starting state
	session, state, err := h.startingState(ctx, key, cmd.State)
	if err != nil {
		return nil, err
	}

	// 3. Affordability
	affordability, err := h.validator.ValidateAffordability(state, cmd.Action, cfg)
	if err != nil {
		return nil, err
	}
	if !affordability.Valid {
		metrics.RecordAffordabilityRejection(key.LevelID.Int(), affordability.Dominant)
		logger.Log("INFO", "Day rejected as unaffordable", map[string]interface{}{
			"session":    key.String(),
			"day":        state.Day,
			"total_cost": affordability.TotalCost,
			"cash":       affordability.AvailableCash,
			"dominant":   affordability.Dominant,
		})
		return nil, affordability.Err()
	}
	if affordability.Bypassed {
		logger.Log("INFO", affordability.Message, map[string]interface{}{"session": key.String(), "day": state.Day})
	}

	// 4. Process
	outcome, err := h.processor.ProcessDay(state, cmd.Action, cfg)
	if err != nil {
		var processingErr *shared.ProcessingError
		if errors.As(err, &processingErr) {
			metrics.RecordProcessingFailure(key.LevelID.Int())
			logger.Log("ERROR", "Day processing failed", map[string]interface{}{
				"session": key.String(),
				"day":     state.Day,
				"error":   processingErr.Error(),
				"details": processingErr.Details,
			})
		}
		return nil, err
	}

	// 5. Effects
	var result *game.GameResult
	if outcome.Result != nil {
		attributed := outcome.Result.WithUser(key.UserID)
		result = &attributed
	}
	if err := h.applyEffects(ctx, key, session, outcome, result); err != nil {
		return nil, err
	}

	metrics.RecordDayProcessed(key.LevelID.Int(), outcome.DailyResult.Profit, outcome.State.Cash)
	logger.Log("INFO", "Day processed", map[string]interface{}{
		"session":           key.String(),
		"day":               outcome.DailyResult.Day,
		"revenue":           outcome.DailyResult.Revenue,
		"costs":             outcome.DailyResult.Costs.Total,
		"profit":            outcome.DailyResult.Profit,
		"cumulative_profit": outcome.State.CumulativeProfit,
		"cash":              outcome.State.Cash,
	})
	if result != nil {
		metrics.RecordGameCompleted(key.LevelID.Int(), result.Score, result.MaxScore)
		logger.Log("INFO", "Game completed", map[string]interface{}{
			"session": key.String(),
			"score":   result.Score,
		})
	}

	warnings := append([]string{}, cmd.Warnings...)
	for _, m := range outcome.DailyResult.SafetyStockWarnings {
		warnings = append(warnings, fmt.Sprintf("%s is below its safety stock", m))
	}

	return &ProcessDayResponse{
		State:       outcome.State,
		DailyResult: outcome.DailyResult,
		GameOver:    outcome.GameOver,
		Result:      result,
		Warnings:    warnings,
	}, nil
}

// startingState returns the persisted session (nil if none) and the state to advance.
// A client-supplied state must be on the same day as the persisted one.
func (h *ProcessDayHandler) startingState(
	ctx context.Context,
	key shared.SessionKey,
	supplied *game.GameState,
) (*game.Session, game.GameState, error) {
	session, err := h.sessions.FindByKey(ctx, key)
	var notFound *shared.NotFoundError
	switch {
	case err == nil:
	case errors.As(err, &notFound):
		if supplied == nil {
			return nil, game.GameState{}, err
		}
		return nil, *supplied, nil
	default:
		return nil, game.GameState{}, fmt.Errorf("failed to load session: %w", err)
	}

	if supplied == nil {
		return session, session.State, nil
	}
	if supplied.Day != session.State.Day {
		return nil, game.GameState{}, shared.NewConflictError(session.State.Day, supplied.Day)
	}
	return session, *supplied, nil
}

// applyEffects writes the session, ledger and performance as one unit; any failure leaves none of them stored
func (h *ProcessDayHandler) applyEffects(
	ctx context.Context,
	key shared.SessionKey,
	session *game.Session,
	outcome *game.DayOutcome,
	result *game.GameResult,
) error {
	return h.unitOfWork.Do(ctx, func(ctx context.Context) error {
		return h.writeEffects(ctx, key, session, outcome, result)
	})
}

func (h *ProcessDayHandler) writeEffects(
	ctx context.Context,
	key shared.SessionKey,
	session *game.Session,
	outcome *game.DayOutcome,
	result *game.GameResult,
) error {
	effects := outcome.Effects
	now := h.clock.Now()

	if effects.SaveSession {
		next := &game.Session{Key: key, State: outcome.State, UpdatedAt: now}
		if session != nil {
			next.Version = session.Version
		}
		if err := h.sessions.Save(ctx, next); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
	}

	if len(effects.CashMovements) > 0 {
		_, err := h.mediator.Send(ctx, &ledgerCommands.RecordDayTransactionsCommand{
			Session:     key,
			Day:         outcome.DailyResult.Day,
			OpeningCash: effects.OpeningCash,
			Movements:   effects.CashMovements,
			Timestamp:   &now,
		})
		if err != nil {
			return fmt.Errorf("failed to record ledger transactions: %w", err)
		}
	}

	if effects.RecordPerformance && result != nil {
		performance := &game.Performance{
			ID:          utils.GeneratePerformanceID(result.UserID.Value(), int(result.LevelID)),
			Result:      *result,
			CompletedAt: now,
		}
		if err := h.performances.Add(ctx, performance); err != nil {
			return fmt.Errorf("failed to record performance: %w", err)
		}
	}

	return nil
}
