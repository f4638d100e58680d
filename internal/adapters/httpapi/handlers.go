package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	gameCommands "github.com/LeonIngman/LTH-Game-sub001/internal/application/game/commands"
	gameQueries "github.com/LeonIngman/LTH-Game-sub001/internal/application/game/queries"
	ledgerQueries "github.com/LeonIngman/LTH-Game-sub001/internal/application/ledger/queries"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/game"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/level"
)

func (s *Server) handleProcessDay(w http.ResponseWriter, r *http.Request) {
	var req dayRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	levelID, err := requireLevelID(req.LevelID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	state, warnings, err := decodeGameState(req.GameState)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := s.mediator.Send(r.Context(), &gameCommands.ProcessDayCommand{
		UserID:   req.UserID,
		LevelID:  levelID,
		State:    state,
		Action:   req.Action,
		Warnings: warnings,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	result, ok := resp.(*gameCommands.ProcessDayResponse)
	if !ok {
		writeError(w, r, fmt.Errorf("unexpected response type %T", resp))
		return
	}

	writeJSON(w, http.StatusOK, processDayResponse{
		Success:     true,
		GameState:   result.State,
		GameOver:    result.GameOver,
		DailyResult: result.DailyResult,
		Result:      result.Result,
		Warnings:    result.Warnings,
	})
}

func (s *Server) handleValidateAction(w http.ResponseWriter, r *http.Request) {
	var req dayRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	levelID, err := requireLevelID(req.LevelID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	state, _, err := decodeGameState(req.GameState)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := s.mediator.Send(r.Context(), &gameQueries.ValidateActionQuery{
		UserID:  req.UserID,
		LevelID: levelID,
		State:   state,
		Action:  req.Action,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	result, ok := resp.(*game.AffordabilityResult)
	if !ok {
		writeError(w, r, fmt.Errorf("unexpected response type %T", resp))
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	var req startGameRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	levelID, err := requireLevelID(req.LevelID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := s.mediator.Send(r.Context(), &gameCommands.StartGameCommand{
		UserID:  req.UserID,
		LevelID: levelID,
		Reset:   req.Reset,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	result, ok := resp.(*gameCommands.StartGameResponse)
	if !ok {
		writeError(w, r, fmt.Errorf("unexpected response type %T", resp))
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, toSessionResponse(result.Session, result.Created))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	levelID, err := pathLevelID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := s.mediator.Send(r.Context(), &gameQueries.GetSessionQuery{
		UserID:  r.PathValue("userId"),
		LevelID: levelID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	session, ok := resp.(*game.Session)
	if !ok {
		writeError(w, r, fmt.Errorf("unexpected response type %T", resp))
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(session, false))
}

func (s *Server) handleListLevels(w http.ResponseWriter, r *http.Request) {
	resp, err := s.mediator.Send(r.Context(), &gameQueries.ListLevelsQuery{})
	if err != nil {
		writeError(w, r, err)
		return
	}
	result, ok := resp.(*gameQueries.ListLevelsResponse)
	if !ok {
		writeError(w, r, fmt.Errorf("unexpected response type %T", resp))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"levels": result.Levels})
}

func (s *Server) handleGetLevel(w http.ResponseWriter, r *http.Request) {
	levelID, err := pathLevelID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := s.mediator.Send(r.Context(), &gameQueries.GetLevelQuery{LevelID: levelID})
	if err != nil {
		writeError(w, r, err)
		return
	}
	cfg, ok := resp.(*level.Config)
	if !ok {
		writeError(w, r, fmt.Errorf("unexpected response type %T", resp))
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleListPerformances(w http.ResponseWriter, r *http.Request) {
	query := &gameQueries.ListPerformancesQuery{UserID: r.PathValue("userId")}
	if raw := r.URL.Query().Get("levelId"); raw != "" {
		levelID, err := queryInt(r, "levelId")
		if err != nil {
			writeError(w, r, err)
			return
		}
		query.LevelID = &levelID
	}

	resp, err := s.mediator.Send(r.Context(), query)
	if err != nil {
		writeError(w, r, err)
		return
	}
	result, ok := resp.(*gameQueries.ListPerformancesResponse)
	if !ok {
		writeError(w, r, fmt.Errorf("unexpected response type %T", resp))
		return
	}

	body := performancesResponse{
		Performances: make([]performanceResponse, 0, len(result.Performances)),
		BestScore:    make(map[string]int, len(result.BestScore)),
	}
	for _, p := range result.Performances {
		body.Performances = append(body.Performances, performanceResponse{
			ID:          p.ID,
			CompletedAt: p.CompletedAt,
			Result:      p.Result,
		})
	}
	for levelID, score := range result.BestScore {
		body.BestScore[strconv.Itoa(levelID)] = score
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleProfitLoss(w http.ResponseWriter, r *http.Request) {
	query, err := s.ledgerRange(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := s.mediator.Send(r.Context(), &ledgerQueries.GetProfitLossQuery{
		UserID:  query.userID,
		LevelID: query.levelID,
		FromDay: query.fromDay,
		ToDay:   query.toDay,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	result, ok := resp.(*ledgerQueries.GetProfitLossResponse)
	if !ok {
		writeError(w, r, fmt.Errorf("unexpected response type %T", resp))
		return
	}

	writeJSON(w, http.StatusOK, profitLossResponse{
		Period:           result.Period,
		TotalRevenue:     result.TotalRevenue,
		TotalExpenses:    result.TotalExpenses,
		NetProfit:        result.NetProfit,
		RevenueBreakdown: result.RevenueBreakdown,
		ExpenseBreakdown: result.ExpenseBreakdown,
	})
}

func (s *Server) handleCashFlow(w http.ResponseWriter, r *http.Request) {
	query, err := s.ledgerRange(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := s.mediator.Send(r.Context(), &ledgerQueries.GetCashFlowQuery{
		UserID:  query.userID,
		LevelID: query.levelID,
		FromDay: query.fromDay,
		ToDay:   query.toDay,
		GroupBy: r.URL.Query().Get("groupBy"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	result, ok := resp.(*ledgerQueries.GetCashFlowResponse)
	if !ok {
		writeError(w, r, fmt.Errorf("unexpected response type %T", resp))
		return
	}

	body := cashFlowResponse{Period: result.Period, Groups: make([]cashFlowGroupResponse, 0, len(result.Groups))}
	for _, g := range result.Groups {
		body.Groups = append(body.Groups, cashFlowGroupResponse{
			Key:          g.Key,
			TotalInflow:  g.TotalInflow,
			TotalOutflow: g.TotalOutflow,
			NetFlow:      g.NetFlow,
			Transactions: g.Transactions,
		})
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	lr, err := s.ledgerRange(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		writeError(w, r, err)
		return
	}

	params := r.URL.Query()
	query := &ledgerQueries.GetTransactionsQuery{
		UserID:  lr.userID,
		LevelID: lr.levelID,
		FromDay: lr.fromDay,
		ToDay:   lr.toDay,
		Limit:   limit,
		Offset:  offset,
		OrderBy: params.Get("orderBy"),
	}
	if category := params.Get("category"); category != "" {
		query.Category = &category
	}
	if txType := params.Get("type"); txType != "" {
		query.TransactionType = &txType
	}

	resp, err := s.mediator.Send(r.Context(), query)
	if err != nil {
		writeError(w, r, err)
		return
	}
	result, ok := resp.(*ledgerQueries.GetTransactionsResponse)
	if !ok {
		writeError(w, r, fmt.Errorf("unexpected response type %T", resp))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": result.Transactions,
		"total":        result.Total,
	})
}

type ledgerRange struct {
	userID  string
	levelID int
	fromDay int
	toDay   int
}

func (s *Server) ledgerRange(r *http.Request) (ledgerRange, error) {
	levelID, err := pathLevelID(r)
	if err != nil {
		return ledgerRange{}, err
	}
	fromDay, err := queryInt(r, "fromDay")
	if err != nil {
		return ledgerRange{}, err
	}
	toDay, err := queryInt(r, "toDay")
	if err != nil {
		return ledgerRange{}, err
	}
	return ledgerRange{userID: r.PathValue("userId"), levelID: levelID, fromDay: fromDay, toDay: toDay}, nil
}
