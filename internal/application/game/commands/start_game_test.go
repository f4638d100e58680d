package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeonIngman/LTH-Game-sub001/internal/application/game/commands"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/game"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/inventory"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/ledger"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

func TestStartGame_CreatesThenResumes(t *testing.T) {
	// Arrange
	f := newFixture()
	ctx := context.Background()
	cmd := &commands.StartGameCommand{UserID: "team-1", LevelID: 0}

	// Act
	first, err := f.start.Handle(ctx, cmd)
	require.NoError(t, err)
	_, err = f.process(game.GameAction{})
	require.NoError(t, err)
	second, err := f.start.Handle(ctx, cmd)
	require.NoError(t, err)

	// Assert
	created := first.(*commands.StartGameResponse)
	assert.True(t, created.Created)
	assert.Equal(t, 1, created.Session.State.Day)
	assert.Equal(t, 1000.0, created.Session.State.Cash)
	assert.Equal(t, 20, created.Session.State.Inventory.Get(inventory.Patty))
	assert.Equal(t, fixedNow, created.Session.UpdatedAt)

	resumed := second.(*commands.StartGameResponse)
	assert.False(t, resumed.Created)
	assert.Equal(t, 2, resumed.Session.State.Day)
}

func TestStartGame_ResetClearsLedger(t *testing.T) {
	// Arrange
	f := newFixture()
	ctx := context.Background()
	f.startLevel0(t)

	key, _ := shared.NewSessionKey("team-1", 0)
	posted, err := ledger.PostDay(key, 1, fixedNow, 1000, []ledger.Posting{
		{Type: ledger.TransactionTypeHolding, Amount: -4.8, Description: "end of day holding cost"},
	})
	require.NoError(t, err)
	require.NoError(t, f.transactions.CreateBatch(ctx, posted))

	// Act
	resp, err := f.start.Handle(ctx, &commands.StartGameCommand{UserID: "team-1", LevelID: 0, Reset: true})

	// Assert
	require.NoError(t, err)
	assert.True(t, resp.(*commands.StartGameResponse).Created)
	remaining, err := f.transactions.FindBySession(ctx, key, ledger.DefaultQueryOptions())
	require.NoError(t, err)
	assert.Empty(t, remaining)
	assert.Equal(t, 2, resp.(*commands.StartGameResponse).Session.Version)
}

func TestStartGame_FinishedSessionStartsOver(t *testing.T) {
	f := newFixture()
	f.startLevel0(t)
	for day := 1; day <= 10; day++ {
		_, err := f.process(game.GameAction{})
		require.NoError(t, err)
	}

	resp, err := f.start.Handle(context.Background(), &commands.StartGameCommand{UserID: "team-1", LevelID: 0})

	require.NoError(t, err)
	started := resp.(*commands.StartGameResponse)
	assert.True(t, started.Created)
	assert.False(t, started.Session.State.GameOver)
	assert.Equal(t, 1, started.Session.State.Day)
}

func TestStartGame_RejectsInvalidKeys(t *testing.T) {
	tests := []struct {
		name  string
		cmd   *commands.StartGameCommand
		field string
	}{
		{name: "empty user", cmd: &commands.StartGameCommand{UserID: "", LevelID: 0}, field: "userId"},
		{name: "negative level", cmd: &commands.StartGameCommand{UserID: "team-1", LevelID: -1}, field: "levelId"},
		{name: "unknown level", cmd: &commands.StartGameCommand{UserID: "team-1", LevelID: 42}, field: "levelId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			_, err := f.start.Handle(context.Background(), tt.cmd)

			var validation *shared.ValidationError
			require.True(t, errors.As(err, &validation), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.field, validation.Field)
			assert.Equal(t, 0, f.sessions.SaveCount())
		})
	}
}
