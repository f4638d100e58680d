package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeonIngman/LTH-Game-sub001/internal/adapters/httpapi"
	"github.com/LeonIngman/LTH-Game-sub001/internal/application/common"
	"github.com/LeonIngman/LTH-Game-sub001/internal/application/setup"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/ledger"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
	"github.com/LeonIngman/LTH-Game-sub001/internal/infrastructure/levels"
	"github.com/LeonIngman/LTH-Game-sub001/test/helpers"
)

type testAPI struct {
	server       *httptest.Server
	sessions     *helpers.MockSessionRepository
	performances *helpers.MockPerformanceRepository
	transactions *helpers.MockTransactionRepository
}

func newTestAPI(t *testing.T, opts httpapi.Options) *testAPI {
	t.Helper()

	api := &testAPI{
		sessions:     helpers.NewMockSessionRepository(),
		performances: helpers.NewMockPerformanceRepository(),
		transactions: helpers.NewMockTransactionRepository(),
	}
	m := common.NewMediator()
	registry := setup.NewHandlerRegistry(api.sessions, api.performances, api.transactions,
		helpers.NewMockUnitOfWork(api.sessions, api.performances, api.transactions), levels.MustNewCatalog(), nil)
	require.NoError(t, registry.RegisterAll(m))

	api.server = httptest.NewServer(httpapi.NewServer(m, nil, opts).Handler())
	t.Cleanup(api.server.Close)
	return api
}

func (a *testAPI) post(t *testing.T, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(a.server.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp, decode(t, resp)
}

func (a *testAPI) get(t *testing.T, path string) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := http.Get(a.server.URL + path)
	require.NoError(t, err)
	return resp, decode(t, resp)
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func startGame(t *testing.T, api *testAPI, user string, levelID int) {
	t.Helper()
	resp, _ := api.post(t, "/api/game/sessions", map[string]interface{}{"userId": user, "levelId": levelID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestStartGame_CreatesThenResumes(t *testing.T) {
	api := newTestAPI(t, httpapi.Options{})

	resp, body := api.post(t, "/api/game/sessions", map[string]interface{}{"userId": "team-1", "levelId": 0})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["created"])
	state := body["gameState"].(map[string]interface{})
	assert.Equal(t, float64(1), state["day"])
	assert.Equal(t, float64(1000), state["cash"])

	resp, body = api.post(t, "/api/game/sessions", map[string]interface{}{"userId": "team-1", "levelId": 0})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, body["created"])
}

func TestProcessDay_AdvancesPersistedSession(t *testing.T) {
	api := newTestAPI(t, httpapi.Options{})
	startGame(t, api, "team-1", 0)

	resp, body := api.post(t, "/api/game/process-day", map[string]interface{}{
		"userId":  "team-1",
		"levelId": 0,
		"action": map[string]interface{}{
			"supplierOrders": []map[string]interface{}{
				{"supplierId": "bakery", "material": "bun", "quantity": 10},
			},
			"production": 5,
			"customerOrders": []map[string]interface{}{
				{"customerId": "campus-diner", "quantity": 5},
			},
		},
	})

	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, false, body["gameOver"])
	state := body["gameState"].(map[string]interface{})
	assert.Equal(t, float64(2), state["day"])
	daily := body["dailyResult"].(map[string]interface{})
	assert.Equal(t, float64(1), daily["day"])

	_, session := api.get(t, "/api/game/sessions/team-1/0")
	assert.Equal(t, float64(2), session["gameState"].(map[string]interface{})["day"])

	key, err := shared.NewSessionKey("team-1", 0)
	require.NoError(t, err)
	recorded, err := api.transactions.FindBySession(context.Background(), key, ledger.DefaultQueryOptions())
	require.NoError(t, err)
	assert.NotEmpty(t, recorded)
}

func TestProcessDay_RejectsUnaffordableAction(t *testing.T) {
	api := newTestAPI(t, httpapi.Options{})
	startGame(t, api, "team-1", 0)

	resp, body := api.post(t, "/api/game/process-day", map[string]interface{}{
		"userId":  "team-1",
		"levelId": 0,
		"action": map[string]interface{}{
			"supplierOrders": []map[string]interface{}{
				{"supplierId": "meat-market", "material": "patty", "quantity": 10000},
			},
		},
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, float64(1000), body["availableCash"])
	assert.Greater(t, body["shortfall"].(float64), 0.0)
	assert.Equal(t, "purchases", body["dominantCost"])
	assert.Contains(t, body["error"], "insufficient funds")
	assert.Equal(t, 1, api.sessions.SaveCount())
}

func TestProcessDay_StaleStateConflicts(t *testing.T) {
	api := newTestAPI(t, httpapi.Options{})
	startGame(t, api, "team-1", 0)

	_, first := api.post(t, "/api/game/process-day", map[string]interface{}{"userId": "team-1", "levelId": 0})
	require.Equal(t, true, first["success"])

	// Replay the day-2 state after advancing again
	staleState := first["gameState"]
	_, second := api.post(t, "/api/game/process-day", map[string]interface{}{"userId": "team-1", "levelId": 0})
	require.Equal(t, true, second["success"])

	resp, body := api.post(t, "/api/game/process-day", map[string]interface{}{
		"userId":    "team-1",
		"levelId":   0,
		"gameState": staleState,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, float64(3), body["persistedDay"])
	assert.Equal(t, float64(2), body["requestedDay"])
}

func TestProcessDay_ValidationErrors(t *testing.T) {
	api := newTestAPI(t, httpapi.Options{})

	tests := []struct {
		name  string
		body  map[string]interface{}
		field string
	}{
		{
			name:  "missing level",
			body:  map[string]interface{}{"userId": "team-1"},
			field: "levelId",
		},
		{
			name: "missing inventory",
			body: map[string]interface{}{
				"userId":    "team-1",
				"levelId":   0,
				"gameState": map[string]interface{}{"day": 1, "cash": 100},
			},
			field: "gameState.inventory",
		},
		{
			name: "unknown material",
			body: map[string]interface{}{
				"userId":    "team-1",
				"levelId":   0,
				"gameState": map[string]interface{}{"day": 1, "cash": 100, "inventory": map[string]int{"onion": 1}},
			},
			field: "gameState.inventory.onion",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := api.post(t, "/api/game/process-day", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tt.field, body["field"])
		})
	}
}

func TestProcessDay_MissingInventoryKeysWarn(t *testing.T) {
	api := newTestAPI(t, httpapi.Options{})

	resp, body := api.post(t, "/api/game/process-day", map[string]interface{}{
		"userId":  "team-2",
		"levelId": 0,
		"gameState": map[string]interface{}{
			"day":       1,
			"cash":      500,
			"inventory": map[string]int{"patty": 5, "bun": 5, "cheese": 5, "potato": 20},
		},
	})

	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	warnings := body["warnings"].([]interface{})
	assert.Contains(t, warnings[0], "finishedGoods")
}

func TestValidateAction_ReportsWithoutProcessing(t *testing.T) {
	api := newTestAPI(t, httpapi.Options{})
	startGame(t, api, "team-1", 0)

	resp, body := api.post(t, "/api/game/validate", map[string]interface{}{
		"userId":  "team-1",
		"levelId": 0,
		"action":  map[string]interface{}{"production": 5},
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["valid"])
	assert.Equal(t, 1, api.sessions.SaveCount())
}

func TestGetSession_NotFound(t *testing.T) {
	api := newTestAPI(t, httpapi.Options{})

	resp, body := api.get(t, "/api/game/sessions/nobody/1")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body["error"], "session not found")
}

func TestLevels(t *testing.T) {
	api := newTestAPI(t, httpapi.Options{})

	resp, body := api.get(t, "/api/levels")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["levels"], 4)

	resp, body = api.get(t, "/api/levels/0")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "First Shift", body["name"])

	resp, _ = api.get(t, "/api/levels/abc")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLedgerReports(t *testing.T) {
	api := newTestAPI(t, httpapi.Options{})
	startGame(t, api, "team-1", 0)
	_, processed := api.post(t, "/api/game/process-day", map[string]interface{}{
		"userId":  "team-1",
		"levelId": 0,
		"action":  map[string]interface{}{"production": 5},
	})
	require.Equal(t, true, processed["success"])

	resp, body := api.get(t, "/api/ledger/team-1/0/profit-loss")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Less(t, body["netProfit"].(float64), 0.0)

	resp, body = api.get(t, "/api/ledger/team-1/0/cash-flow?groupBy=day")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	groups := body["groups"].([]interface{})
	require.Len(t, groups, 1)
	assert.Equal(t, "day 1", groups[0].(map[string]interface{})["key"])

	resp, _ = api.get(t, "/api/ledger/team-1/0/cash-flow?groupBy=week")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = api.get(t, "/api/ledger/team-1/0/transactions?type=PRODUCTION")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["total"])
	txs := body["transactions"].([]interface{})
	require.Len(t, txs, 1)
	assert.Equal(t, -10.0, txs[0].(map[string]interface{})["amount"])

	resp, body = api.get(t, "/api/ledger/team-1/0/transactions?category=FUEL")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "category", body["field"])
}

func TestRequestIDIsEchoed(t *testing.T) {
	api := newTestAPI(t, httpapi.Options{})

	req, err := http.NewRequest(http.MethodGet, api.server.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))

	resp2, err := http.Get(api.server.URL + "/healthz")
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.NotEmpty(t, resp2.Header.Get("X-Request-ID"))
}

func TestRateLimit(t *testing.T) {
	api := newTestAPI(t, httpapi.Options{RequestsPerSecond: 0.001, Burst: 2})

	for i := 0; i < 2; i++ {
		resp, _ := api.get(t, "/healthz")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, body := api.get(t, "/healthz")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("Retry-After"))
	assert.Equal(t, "rate limit exceeded", body["error"])
}
