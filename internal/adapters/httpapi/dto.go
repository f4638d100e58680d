package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/game"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/inventory"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

const maxBodyBytes = 1 << 20

// dayRequest is the body of process-day and validate calls
type dayRequest struct {
	UserID    string          `json:"userId"`
	LevelID   *int            `json:"levelId"`
	GameState json.RawMessage `json:"gameState"`
	Action    game.GameAction `json:"action"`
}

type startGameRequest struct {
	UserID  string `json:"userId"`
	LevelID *int   `json:"levelId"`
	Reset   bool   `json:"reset"`
}

type processDayResponse struct {
	Success     bool             `json:"success"`
	GameState   game.GameState   `json:"gameState"`
	GameOver    bool             `json:"gameOver"`
	DailyResult game.DailyResult `json:"dailyResult"`
	Result      *game.GameResult `json:"result,omitempty"`
	Warnings    []string         `json:"warnings,omitempty"`
}

type sessionResponse struct {
	UserID    string         `json:"userId"`
	LevelID   int            `json:"levelId"`
	Version   int            `json:"version"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Created   bool           `json:"created,omitempty"`
	GameState game.GameState `json:"gameState"`
}

type performanceResponse struct {
	ID          string          `json:"id"`
	CompletedAt time.Time       `json:"completedAt"`
	Result      game.GameResult `json:"result"`
}

type performancesResponse struct {
	Performances []performanceResponse `json:"performances"`
	BestScore    map[string]int        `json:"bestScore"`
}

type profitLossResponse struct {
	Period           string             `json:"period"`
	TotalRevenue     float64            `json:"totalRevenue"`
	TotalExpenses    float64            `json:"totalExpenses"`
	NetProfit        float64            `json:"netProfit"`
	RevenueBreakdown map[string]float64 `json:"revenueBreakdown"`
	ExpenseBreakdown map[string]float64 `json:"expenseBreakdown"`
}

type cashFlowGroupResponse struct {
	Key          string  `json:"key"`
	TotalInflow  float64 `json:"totalInflow"`
	TotalOutflow float64 `json:"totalOutflow"`
	NetFlow      float64 `json:"netFlow"`
	Transactions int     `json:"transactions"`
}

type cashFlowResponse struct {
	Period string                  `json:"period"`
	Groups []cashFlowGroupResponse `json:"groups"`
}

func decodeBody(r *http.Request, dst interface{}) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return shared.NewValidationError("body", fmt.Sprintf("malformed JSON: %v", err))
	}
	return nil
}

// decodeGameState parses an optional client state. Missing inventory keys default
// to zero and are reported as warnings; an absent inventory object is rejected.
func decodeGameState(raw json.RawMessage) (*game.GameState, []string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil, nil
	}

	var probe struct {
		Inventory map[string]int `json:"inventory"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, nil, shared.NewValidationError("gameState", fmt.Sprintf("malformed game state: %v", err))
	}
	_, missing, err := inventory.FromMap(probe.Inventory)
	if err != nil {
		if v, ok := err.(*shared.ValidationError); ok {
			return nil, nil, shared.NewValidationError("gameState."+v.Field, v.Message)
		}
		return nil, nil, err
	}

	var state game.GameState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, nil, shared.NewValidationError("gameState", fmt.Sprintf("malformed game state: %v", err))
	}
	return &state, game.InventoryWarnings(missing), nil
}

func requireLevelID(levelID *int) (int, error) {
	if levelID == nil {
		return 0, shared.NewValidationError("levelId", "levelId is required")
	}
	return *levelID, nil
}

func pathLevelID(r *http.Request) (int, error) {
	raw := r.PathValue("levelId")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, shared.NewValidationError("levelId", fmt.Sprintf("invalid level id %q", raw))
	}
	return id, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, shared.NewValidationError(name, fmt.Sprintf("invalid integer %q", raw))
	}
	return v, nil
}

func toSessionResponse(session *game.Session, created bool) sessionResponse {
	return sessionResponse{
		UserID:    session.Key.UserID.Value(),
		LevelID:   session.Key.LevelID.Int(),
		Version:   session.Version,
		UpdatedAt: session.UpdatedAt,
		Created:   created,
		GameState: session.State,
	}
}
