package queries

import (
	"context"
	"fmt"

	"github.com/LeonIngman/LTH-Game-sub001/internal/application/common"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/ledger"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

// GetProfitLossQuery represents a query to generate a profit & loss statement for one session
type GetProfitLossQuery struct {
	UserID  string
	LevelID int
	FromDay int // inclusive, 0 = first day
	ToDay   int // inclusive, 0 = latest day
}

// GetProfitLossResponse represents the profit & loss statement result
type GetProfitLossResponse struct {
	Period           string
	TotalRevenue     float64
	TotalExpenses    float64
	NetProfit        float64
	RevenueBreakdown map[string]float64 // category -> amount
	ExpenseBreakdown map[string]float64 // category -> amount
}

// GetProfitLossHandler handles the GetProfitLoss query
type GetProfitLossHandler struct {
	transactionRepo ledger.TransactionRepository
}

// NewGetProfitLossHandler creates a new GetProfitLossHandler
func NewGetProfitLossHandler(transactionRepo ledger.TransactionRepository) *GetProfitLossHandler {
	return &GetProfitLossHandler{
		transactionRepo: transactionRepo,
	}
}

// Handle executes the GetProfitLoss query
func (h *GetProfitLossHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetProfitLossQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetProfitLossQuery")
	}

	key, err := shared.NewSessionKey(query.UserID, query.LevelID)
	if err != nil {
		return nil, err
	}

	opts := ledger.QueryOptions{
		FromDay: query.FromDay,
		ToDay:   query.ToDay,
		OrderBy: "day ASC",
	}
	transactions, err := h.transactionRepo.FindBySession(ctx, key, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	return h.calculateProfitLoss(query, transactions), nil
}

func (h *GetProfitLossHandler) calculateProfitLoss(
	query *GetProfitLossQuery,
	transactions []*ledger.Transaction,
) *GetProfitLossResponse {
	revenueBreakdown := make(map[string]float64)
	expenseBreakdown := make(map[string]float64)
	totalRevenue := 0.0
	totalExpenses := 0.0

	for _, tx := range transactions {
		if !tx.AffectsProfit() {
			continue
		}
		category := tx.Category().String()
		amount := tx.Amount()

		if tx.IsIncome() {
			revenueBreakdown[category] = shared.RoundMoney(revenueBreakdown[category] + amount)
			totalRevenue += amount
		} else {
			// Expenses are reported as positive values
			expenseBreakdown[category] = shared.RoundMoney(expenseBreakdown[category] - amount)
			totalExpenses -= amount
		}
	}

	totalRevenue = shared.RoundMoney(totalRevenue)
	totalExpenses = shared.RoundMoney(totalExpenses)

	return &GetProfitLossResponse{
		Period:           formatPeriod(query.FromDay, query.ToDay),
		TotalRevenue:     totalRevenue,
		TotalExpenses:    totalExpenses,
		NetProfit:        shared.RoundMoney(totalRevenue - totalExpenses),
		RevenueBreakdown: revenueBreakdown,
		ExpenseBreakdown: expenseBreakdown,
	}
}

func formatPeriod(fromDay, toDay int) string {
	from := "day 1"
	if fromDay > 0 {
		from = fmt.Sprintf("day %d", fromDay)
	}
	to := "latest"
	if toDay > 0 {
		to = fmt.Sprintf("day %d", toDay)
	}
	return from + " to " + to
}
