package queries

import (
	"context"
	"fmt"

	"github.com/LeonIngman/LTH-Game-sub001/internal/application/common"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/game"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

// ListPerformancesQuery lists a user's completed attempts, optionally for one level
type ListPerformancesQuery struct {
	UserID  string
	LevelID *int
}

// ListPerformancesResponse carries the attempts, most recent first
type ListPerformancesResponse struct {
	Performances []*game.Performance
	BestScore    map[int]int // level id -> best score
}

// ListPerformancesHandler handles the ListPerformances query
type ListPerformancesHandler struct {
	performances game.PerformanceRepository
}

func NewListPerformancesHandler(performances game.PerformanceRepository) *ListPerformancesHandler {
	return &ListPerformancesHandler{performances: performances}
}

func (h *ListPerformancesHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ListPerformancesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListPerformancesQuery")
	}

	userID, err := shared.NewUserID(query.UserID)
	if err != nil {
		return nil, err
	}
	var levelFilter *shared.LevelID
	if query.LevelID != nil {
		id, err := shared.NewLevelID(*query.LevelID)
		if err != nil {
			return nil, err
		}
		levelFilter = &id
	}

	all, err := h.performances.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load performances: %w", err)
	}

	response := &ListPerformancesResponse{
		Performances: make([]*game.Performance, 0, len(all)),
		BestScore:    make(map[int]int),
	}
	for _, p := range all {
		if levelFilter != nil && p.Result.LevelID != *levelFilter {
			continue
		}
		response.Performances = append(response.Performances, p)
		levelID := p.Result.LevelID.Int()
		if best, seen := response.BestScore[levelID]; !seen || p.Result.Score > best {
			response.BestScore[levelID] = p.Result.Score
		}
	}
	return response, nil
}
