package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeonIngman/LTH-Game-sub001/internal/application/game/queries"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/game"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/inventory"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/level"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
	"github.com/LeonIngman/LTH-Game-sub001/internal/infrastructure/levels"
	"github.com/LeonIngman/LTH-Game-sub001/test/helpers"
)

func saveLevel0Session(t *testing.T, repo *helpers.MockSessionRepository) game.GameState {
	t.Helper()
	cfg, err := levels.MustNewCatalog().Get(0)
	require.NoError(t, err)
	key, _ := shared.NewSessionKey("team-1", 0)
	state := game.NewGameState(cfg)
	require.NoError(t, repo.Save(context.Background(), &game.Session{Key: key, State: state}))
	return state
}

func TestValidateAction_UsesPersistedState(t *testing.T) {
	sessions := helpers.NewMockSessionRepository()
	saveLevel0Session(t, sessions)
	handler := queries.NewValidateActionHandler(sessions, levels.MustNewCatalog())

	resp, err := handler.Handle(context.Background(), &queries.ValidateActionQuery{
		UserID:  "team-1",
		LevelID: 0,
		Action: game.GameAction{
			SupplierOrders: []game.SupplierOrderRequest{{SupplierID: "meat-market", Material: inventory.Patty, Quantity: 1000}},
		},
	})

	require.NoError(t, err)
	result := resp.(*game.AffordabilityResult)
	assert.False(t, result.Valid)
	assert.Equal(t, 3014.8, result.TotalCost)
	assert.Equal(t, 2014.8, result.Shortfall)
	assert.Equal(t, "purchases", result.Dominant)
	assert.Contains(t, result.Message, "insufficient funds")
}

func TestValidateAction_SuppliedStateNeedsNoSession(t *testing.T) {
	cfg, err := levels.MustNewCatalog().Get(0)
	require.NoError(t, err)
	state := game.NewGameState(cfg)
	handler := queries.NewValidateActionHandler(helpers.NewMockSessionRepository(), levels.MustNewCatalog())

	resp, err := handler.Handle(context.Background(), &queries.ValidateActionQuery{
		UserID:  "team-1",
		LevelID: 0,
		State:   &state,
		Action: game.GameAction{
			Production:     5,
			CustomerOrders: []game.CustomerOrderRequest{{CustomerID: "campus-diner", Quantity: 5}},
		},
	})

	require.NoError(t, err)
	result := resp.(*game.AffordabilityResult)
	assert.True(t, result.Valid)
	assert.Equal(t, 18.6, result.TotalCost)
	assert.Equal(t, 5.0, result.Breakdown.CustomerTransport)
}

func TestValidateAction_MissingSession(t *testing.T) {
	handler := queries.NewValidateActionHandler(helpers.NewMockSessionRepository(), levels.MustNewCatalog())

	_, err := handler.Handle(context.Background(), &queries.ValidateActionQuery{UserID: "team-1", LevelID: 0})

	var notFound *shared.NotFoundError
	assert.True(t, errors.As(err, &notFound), "expected NotFoundError, got %v", err)
}

func TestGetSession(t *testing.T) {
	sessions := helpers.NewMockSessionRepository()
	saveLevel0Session(t, sessions)
	handler := queries.NewGetSessionHandler(sessions)

	resp, err := handler.Handle(context.Background(), &queries.GetSessionQuery{UserID: "team-1", LevelID: 0})
	require.NoError(t, err)
	session := resp.(*game.Session)
	assert.Equal(t, 1, session.State.Day)
	assert.Equal(t, 1, session.Version)

	_, err = handler.Handle(context.Background(), &queries.GetSessionQuery{UserID: "team-1", LevelID: 1})
	var notFound *shared.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestListLevels(t *testing.T) {
	handler := queries.NewListLevelsHandler(levels.MustNewCatalog())

	resp, err := handler.Handle(context.Background(), &queries.ListLevelsQuery{})

	require.NoError(t, err)
	summaries := resp.(*queries.ListLevelsResponse).Levels
	require.Len(t, summaries, 4)
	for i, s := range summaries {
		assert.Equal(t, i, s.ID)
		assert.NotEmpty(t, s.Name)
		assert.Positive(t, s.DaysToComplete)
	}
	assert.Equal(t, "First Shift", summaries[0].Name)
	assert.Equal(t, 1000.0, summaries[0].InitialCash)
	assert.Equal(t, 3, summaries[0].Suppliers)
	assert.Equal(t, 1, summaries[0].Customers)
}

func TestGetLevel(t *testing.T) {
	handler := queries.NewGetLevelHandler(levels.MustNewCatalog())

	resp, err := handler.Handle(context.Background(), &queries.GetLevelQuery{LevelID: 0})
	require.NoError(t, err)
	assert.Equal(t, "First Shift", resp.(*level.Config).Name)

	_, err = handler.Handle(context.Background(), &queries.GetLevelQuery{LevelID: 7})
	var validation *shared.ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "levelId", validation.Field)
}

func TestListPerformances_FiltersAndRanks(t *testing.T) {
	// Arrange
	repo := helpers.NewMockPerformanceRepository()
	ctx := context.Background()
	team1 := shared.MustNewUserID("team-1")
	team2 := shared.MustNewUserID("team-2")
	base := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)

	add := func(user shared.UserID, levelID shared.LevelID, score int, at time.Time) {
		require.NoError(t, repo.Add(ctx, &game.Performance{
			ID:          at.String(),
			Result:      game.GameResult{UserID: user, LevelID: levelID, Score: score},
			CompletedAt: at,
		}))
	}
	add(team1, 0, 40, base)
	add(team1, 0, 75, base.Add(time.Hour))
	add(team1, 1, 20, base.Add(2*time.Hour))
	add(team2, 0, 99, base)

	handler := queries.NewListPerformancesHandler(repo)

	// Act
	all, err := handler.Handle(ctx, &queries.ListPerformancesQuery{UserID: "team-1"})
	require.NoError(t, err)
	levelOne := 1
	filtered, err := handler.Handle(ctx, &queries.ListPerformancesQuery{UserID: "team-1", LevelID: &levelOne})
	require.NoError(t, err)

	// Assert
	listing := all.(*queries.ListPerformancesResponse)
	require.Len(t, listing.Performances, 3)
	assert.Equal(t, 20, listing.Performances[0].Result.Score, "newest first")
	assert.Equal(t, map[int]int{0: 75, 1: 20}, listing.BestScore)

	onlyOne := filtered.(*queries.ListPerformancesResponse)
	require.Len(t, onlyOne.Performances, 1)
	assert.Equal(t, map[int]int{1: 20}, onlyOne.BestScore)
}
