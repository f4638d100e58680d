package queries

import (
	"context"
	"fmt"

	"github.com/LeonIngman/LTH-Game-sub001/internal/application/common"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/level"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

// ListLevelsQuery lists every playable level
type ListLevelsQuery struct{}

// LevelSummary is the overview shown when choosing a level
type LevelSummary struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	DaysToComplete int     `json:"daysToComplete"`
	InitialCash    float64 `json:"initialCash"`
	Suppliers      int     `json:"suppliers"`
	Customers      int     `json:"customers"`
	MaxScore       int     `json:"maxScore"`
}

// ListLevelsResponse carries the level summaries ordered by id
type ListLevelsResponse struct {
	Levels []LevelSummary
}

// ListLevelsHandler handles the ListLevels query
type ListLevelsHandler struct {
	levels level.Catalog
}

func NewListLevelsHandler(levels level.Catalog) *ListLevelsHandler {
	return &ListLevelsHandler{levels: levels}
}

func (h *ListLevelsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*ListLevelsQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListLevelsQuery")
	}

	configs := h.levels.List()
	summaries := make([]LevelSummary, 0, len(configs))
	for _, cfg := range configs {
		summaries = append(summaries, LevelSummary{
			ID:             cfg.ID.Int(),
			Name:           cfg.Name,
			Description:    cfg.Description,
			DaysToComplete: cfg.DaysToComplete,
			InitialCash:    cfg.InitialCash,
			Suppliers:      len(cfg.Suppliers),
			Customers:      len(cfg.Customers),
			MaxScore:       cfg.Scoring.MaxScore,
		})
	}
	return &ListLevelsResponse{Levels: summaries}, nil
}

// GetLevelQuery loads the full definition of one level
type GetLevelQuery struct {
	LevelID int
}

// GetLevelHandler handles the GetLevel query; the response is a *level.Config
type GetLevelHandler struct {
	levels level.Catalog
}

func NewGetLevelHandler(levels level.Catalog) *GetLevelHandler {
	return &GetLevelHandler{levels: levels}
}

func (h *GetLevelHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetLevelQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetLevelQuery")
	}

	id, err := shared.NewLevelID(query.LevelID)
	if err != nil {
		return nil, err
	}
	return h.levels.Get(id)
}
