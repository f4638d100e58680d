package queries

import (
	"context"
	"fmt"

	"github.com/LeonIngman/LTH-Game-sub001/internal/application/common"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/game"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/level"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

// ValidateActionQuery projects the cost of an action without processing it
type ValidateActionQuery struct {
	UserID  string
	LevelID int
	State   *game.GameState // nil uses the persisted session state
	Action  game.GameAction
}

// ValidateActionHandler handles the ValidateAction query
type ValidateActionHandler struct {
	sessions  game.SessionRepository
	levels    level.Catalog
	validator *game.AffordabilityValidator
}

// NewValidateActionHandler creates a new ValidateActionHandler
func NewValidateActionHandler(sessions game.SessionRepository, levels level.Catalog) *ValidateActionHandler {
	return &ValidateActionHandler{
		sessions:  sessions,
		levels:    levels,
		validator: game.NewAffordabilityValidator(),
	}
}

// Handle executes the ValidateAction query; the response is a *game.AffordabilityResult
func (h *ValidateActionHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ValidateActionQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ValidateActionQuery")
	}

	key, err := shared.NewSessionKey(query.UserID, query.LevelID)
	if err != nil {
		return nil, err
	}
	cfg, err := h.levels.Get(key.LevelID)
	if err != nil {
		return nil, err
	}

	state := query.State
	if state == nil {
		session, err := h.sessions.FindByKey(ctx, key)
		if err != nil {
			return nil, err
		}
		state = &session.State
	}

	result, err := h.validator.ValidateAffordability(*state, query.Action, cfg)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
