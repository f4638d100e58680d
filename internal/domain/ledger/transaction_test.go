package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/ledger"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

var session = shared.SessionKey{UserID: shared.MustNewUserID("team-3"), LevelID: 2}

func TestNewTransaction_DerivesCategory(t *testing.T) {
	tx, err := ledger.NewTransaction(session.UserID, session.LevelID, 4, time.Now(),
		ledger.TransactionTypeSupplierTransport, -15, 100, 85, "butcher shipment", nil)

	require.NoError(t, err)
	assert.Equal(t, ledger.CategoryLogistics, tx.Category())
	assert.True(t, tx.IsExpense())
	assert.False(t, tx.ID().IsZero())
}

func TestNewTransaction_EnforcesBalanceInvariant(t *testing.T) {
	_, err := ledger.NewTransaction(session.UserID, session.LevelID, 1, time.Now(),
		ledger.TransactionTypeHolding, -7.5, 100, 93, "holding", nil)

	var violation *ledger.ErrBalanceInvariantViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, 92.5, violation.Expected)
}

func TestNewTransaction_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		user  shared.UserID
		day   int
		kind  ledger.TransactionType
		field string
	}{
		{name: "missing user", user: shared.UserID{}, day: 1, kind: ledger.TransactionTypeHolding, field: "user_id"},
		{name: "day zero", user: session.UserID, day: 0, kind: ledger.TransactionTypeHolding, field: "day"},
		{name: "unknown type", user: session.UserID, day: 1, kind: "REFUEL", field: "transaction_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ledger.NewTransaction(tt.user, session.LevelID, tt.day, time.Now(), tt.kind, -1, 1, 0, "", nil)

			var invalid *ledger.ErrInvalidTransaction
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestPostDay_ChainsBalances(t *testing.T) {
	// Arrange
	postings := []ledger.Posting{
		{Type: ledger.TransactionTypeSalesRevenue, Amount: 115},
		{Type: ledger.TransactionTypeMaterialPurchase, Amount: -90},
		{Type: ledger.TransactionTypeProduction, Amount: -100},
		{Type: ledger.TransactionTypeHolding, Amount: -7.5},
	}

	// Act
	txs, err := ledger.PostDay(session, 1, time.Now(), 5000, postings)

	// Assert
	require.NoError(t, err)
	require.Len(t, txs, 4)
	assert.Equal(t, 5000.0, txs[0].BalanceBefore())
	assert.Equal(t, 5115.0, txs[0].BalanceAfter())
	for i := 1; i < len(txs); i++ {
		assert.Equal(t, txs[i-1].BalanceAfter(), txs[i].BalanceBefore())
	}
	assert.Equal(t, 4917.5, txs[3].BalanceAfter())
	assert.Equal(t, ledger.CategoryRevenue, txs[0].Category())
	assert.Equal(t, ledger.CategoryCostOfGoods, txs[2].Category())
}

func TestWriteOffIsNotProfit(t *testing.T) {
	txs, err := ledger.PostDay(session, 3, time.Now(), 0, []ledger.Posting{
		{Type: ledger.TransactionTypeHolding, Amount: -4},
		{Type: ledger.TransactionTypeWriteOff, Amount: 4},
	})

	require.NoError(t, err)
	assert.True(t, txs[0].AffectsProfit())
	assert.False(t, txs[1].AffectsProfit())
	assert.Equal(t, 0.0, txs[1].BalanceAfter())
}

func TestParseTransactionID(t *testing.T) {
	_, err := ledger.ParseTransactionID("not-a-uuid")
	assert.Error(t, err)

	id := ledger.NewTransactionID()
	parsed, err := ledger.ParseTransactionID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}
