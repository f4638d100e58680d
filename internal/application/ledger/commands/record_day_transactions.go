package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/LeonIngman/LTH-Game-sub001/internal/adapters/metrics"
	"github.com/LeonIngman/LTH-Game-sub001/internal/application/common"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/game"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/ledger"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

// RecordDayTransactionsCommand writes the cash movements of one processed day to the ledger
type RecordDayTransactionsCommand struct {
	Session     shared.SessionKey
	Day         int
	OpeningCash float64
	Movements   []game.CashMovement
	Timestamp   *time.Time // defaults to the handler's clock
}

// RecordDayTransactionsResponse lists the ids of the recorded transactions
type RecordDayTransactionsResponse struct {
	TransactionIDs []string
	ClosingBalance float64
}

// RecordDayTransactionsHandler handles the RecordDayTransactions command
type RecordDayTransactionsHandler struct {
	transactionRepo ledger.TransactionRepository
	clock           shared.Clock
}

// NewRecordDayTransactionsHandler creates a new RecordDayTransactionsHandler
func NewRecordDayTransactionsHandler(
	transactionRepo ledger.TransactionRepository,
	clock shared.Clock,
) *RecordDayTransactionsHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &RecordDayTransactionsHandler{
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Handle executes the RecordDayTransactions command
func (h *RecordDayTransactionsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RecordDayTransactionsCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RecordDayTransactionsCommand")
	}

	postings := make([]ledger.Posting, 0, len(cmd.Movements))
	for _, m := range cmd.Movements {
		transactionType, err := ledger.ParseTransactionType(string(m.Kind))
		if err != nil {
			return nil, err
		}
		postings = append(postings, ledger.Posting{Type: transactionType, Amount: m.Amount, Description: m.Description})
	}

	timestamp := h.clock.Now()
	if cmd.Timestamp != nil {
		timestamp = *cmd.Timestamp
	}

	transactions, err := ledger.PostDay(cmd.Session, cmd.Day, timestamp, cmd.OpeningCash, postings)
	if err != nil {
		return nil, fmt.Errorf("failed to build transactions: %w", err)
	}
	if len(transactions) == 0 {
		return &RecordDayTransactionsResponse{ClosingBalance: shared.RoundMoney(cmd.OpeningCash)}, nil
	}

	if err := h.transactionRepo.CreateBatch(ctx, transactions); err != nil {
		return nil, fmt.Errorf("failed to persist transactions: %w", err)
	}

	ids := make([]string, 0, len(transactions))
	for _, tx := range transactions {
		ids = append(ids, tx.ID().String())
		metrics.RecordTransaction(
			cmd.Session.LevelID.Int(),
			tx.TransactionType().String(),
			tx.Category().String(),
			tx.Amount(),
			tx.BalanceAfter(),
		)
	}

	return &RecordDayTransactionsResponse{
		TransactionIDs: ids,
		ClosingBalance: transactions[len(transactions)-1].BalanceAfter(),
	}, nil
}
