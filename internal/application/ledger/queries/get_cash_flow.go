package queries

import (
	"context"
	"fmt"
	"sort"

	"github.com/LeonIngman/LTH-Game-sub001/internal/application/common"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/ledger"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

// GetCashFlowQuery represents a query to generate a cash flow statement for one session
type GetCashFlowQuery struct {
	UserID  string
	LevelID int
	FromDay int
	ToDay   int
	GroupBy string // "category" (default) or "day"
}

// GetCashFlowResponse represents the cash flow statement result
type GetCashFlowResponse struct {
	Period string
	Groups []*CashFlowGroup
}

// CashFlowGroup is the cash flow of one category or one day
type CashFlowGroup struct {
	Key          string
	TotalInflow  float64
	TotalOutflow float64
	NetFlow      float64
	Transactions int
}

// GetCashFlowHandler handles the GetCashFlow query
type GetCashFlowHandler struct {
	transactionRepo ledger.TransactionRepository
}

// NewGetCashFlowHandler creates a new GetCashFlowHandler
func NewGetCashFlowHandler(transactionRepo ledger.TransactionRepository) *GetCashFlowHandler {
	return &GetCashFlowHandler{
		transactionRepo: transactionRepo,
	}
}

// Handle executes the GetCashFlow query
func (h *GetCashFlowHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetCashFlowQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetCashFlowQuery")
	}

	if query.GroupBy == "" {
		query.GroupBy = "category"
	}
	if query.GroupBy != "category" && query.GroupBy != "day" {
		return nil, shared.NewValidationError("groupBy", fmt.Sprintf("must be 'category' or 'day', got %q", query.GroupBy))
	}

	key, err := shared.NewSessionKey(query.UserID, query.LevelID)
	if err != nil {
		return nil, err
	}

	transactions, err := h.transactionRepo.FindBySession(ctx, key, ledger.QueryOptions{
		FromDay: query.FromDay,
		ToDay:   query.ToDay,
		OrderBy: "day ASC",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	return &GetCashFlowResponse{
		Period: formatPeriod(query.FromDay, query.ToDay),
		Groups: h.calculateCashFlow(query.GroupBy, transactions),
	}, nil
}

func (h *GetCashFlowHandler) calculateCashFlow(groupBy string, transactions []*ledger.Transaction) []*CashFlowGroup {
	groups := make(map[string]*CashFlowGroup)
	order := []string{}
	if groupBy == "category" {
		for _, cat := range ledger.AllCategories() {
			order = append(order, cat.String())
			groups[cat.String()] = &CashFlowGroup{Key: cat.String()}
		}
	}

	days := []int{}
	for _, tx := range transactions {
		key := tx.Category().String()
		if groupBy == "day" {
			key = fmt.Sprintf("day %d", tx.Day())
			if _, ok := groups[key]; !ok {
				groups[key] = &CashFlowGroup{Key: key}
				days = append(days, tx.Day())
			}
		}

		flow := groups[key]
		flow.Transactions++
		if amount := tx.Amount(); amount > 0 {
			flow.TotalInflow = shared.RoundMoney(flow.TotalInflow + amount)
		} else {
			flow.TotalOutflow = shared.RoundMoney(flow.TotalOutflow - amount)
		}
		flow.NetFlow = shared.RoundMoney(flow.TotalInflow - flow.TotalOutflow)
	}

	if groupBy == "day" {
		sort.Ints(days)
		for _, d := range days {
			order = append(order, fmt.Sprintf("day %d", d))
		}
	}

	result := make([]*CashFlowGroup, 0, len(order))
	for _, key := range order {
		if groups[key].Transactions > 0 {
			result = append(result, groups[key])
		}
	}
	return result
}
