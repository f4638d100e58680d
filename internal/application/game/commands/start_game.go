package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/LeonIngman/LTH-Game-sub001/internal/application/common"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/game"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/ledger"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/level"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

// StartGameCommand opens a session for a level, or resumes the one in progress
type StartGameCommand struct {
	UserID  string
	LevelID int
	Reset   bool // discard any session in progress
}

// StartGameResponse carries the session to play
type StartGameResponse struct {
	Session *game.Session
	Created bool
}

// StartGameHandler handles the StartGame command
type StartGameHandler struct {
	sessions     game.SessionRepository
	transactions ledger.TransactionRepository
	levels       level.Catalog
	unitOfWork   shared.UnitOfWork
	locks        *common.SessionLocks
	clock        shared.Clock
}

// NewStartGameHandler creates a new StartGameHandler
func NewStartGameHandler(
	sessions game.SessionRepository,
	transactions ledger.TransactionRepository,
	levels level.Catalog,
	unitOfWork shared.UnitOfWork,
	locks *common.SessionLocks,
	clock shared.Clock,
) *StartGameHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &StartGameHandler{
		sessions:     sessions,
		transactions: transactions,
		levels:       levels,
		unitOfWork:   unitOfWork,
		locks:        locks,
		clock:        clock,
	}
}

// Handle executes the StartGame command
func (h *StartGameHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*StartGameCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *StartGameCommand")
	}

	key, err := shared.NewSessionKey(cmd.UserID, cmd.LevelID)
	if err != nil {
		return nil, err
	}
	cfg, err := h.levels.Get(key.LevelID)
	if err != nil {
		return nil, err
	}

	unlock := h.locks.Lock(key)
	defer unlock()

	logger := common.LoggerFromContext(ctx)

	existing, err := h.sessions.FindByKey(ctx, key)
	var notFound *shared.NotFoundError
	switch {
	case err == nil && !cmd.Reset && !existing.State.GameOver:
		logger.Log("INFO", "Resuming game session", map[string]interface{}{
			"session": key.String(),
			"day":     existing.State.Day,
		})
		return &StartGameResponse{Session: existing}, nil
	case err != nil && !errors.As(err, &notFound):
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	session := &game.Session{
		Key:       key,
		State:     game.NewGameState(cfg),
		UpdatedAt: h.clock.Now(),
	}
	if existing != nil {
		session.Version = existing.Version
	}
	err = h.unitOfWork.Do(ctx, func(ctx context.Context) error {
		if err := h.transactions.DeleteBySession(ctx, key); err != nil {
			return fmt.Errorf("failed to clear ledger: %w", err)
		}
		if err := h.sessions.Save(ctx, session); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log("INFO", "Started game session", map[string]interface{}{
		"session":      key.String(),
		"level":        cfg.Name,
		"initial_cash": session.State.Cash,
	})

	return &StartGameResponse{Session: session, Created: true}, nil
}
