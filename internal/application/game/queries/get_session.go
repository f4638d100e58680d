package queries

import (
	"context"
	"fmt"

	"github.com/LeonIngman/LTH-Game-sub001/internal/application/common"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/game"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

// GetSessionQuery loads the in-progress session of a user on a level
type GetSessionQuery struct {
	UserID  string
	LevelID int
}

// GetSessionHandler handles the GetSession query; the response is a *game.Session
type GetSessionHandler struct {
	sessions game.SessionRepository
}

func NewGetSessionHandler(sessions game.SessionRepository) *GetSessionHandler {
	return &GetSessionHandler{sessions: sessions}
}

func (h *GetSessionHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetSessionQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetSessionQuery")
	}

	key, err := shared.NewSessionKey(query.UserID, query.LevelID)
	if err != nil {
		return nil, err
	}
	return h.sessions.FindByKey(ctx, key)
}
