package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruleta-game/ruleta/internal/models"
	"github.com/ruleta-game/ruleta/internal/services/game"
)

type MockGameService struct {
	failWith  error
	lastLimit int
}

func (m *MockGameService) Deposit(ctx context.Context, input *game.DepositInput) (*game.DepositOutput, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	return &game.DepositOutput{NewBalance: 100 + input.Amount}, nil
}

func (m *MockGameService) Withdraw(ctx context.Context, input *game.WithdrawInput) (*game.WithdrawOutput, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	return &game.WithdrawOutput{NewBalance: 100 - input.Amount}, nil
}

func (m *MockGameService) JoinQueue(ctx context.Context, input *game.JoinQueueInput) (*game.JoinQueueOutput, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	return &game.JoinQueueOutput{
		NewBalance: 80,
		Admitted:   true,
		NewPlayer: &game.NewPlayerInfo{
			UserID:      input.UserID,
			Name:        "Ana",
			EntryAmount: input.EntryAmount,
			Position:    0,
		},
	}, nil
}

func (m *MockGameService) AdmitFromQueue(ctx context.Context, input *game.AdmitFromQueueInput) (*game.AdmitFromQueueOutput, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	return &game.AdmitFromQueueOutput{}, nil
}

func (m *MockGameService) TriggerSpin(ctx context.Context, input *game.TriggerSpinInput) (*game.TriggerSpinOutput, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	return &game.TriggerSpinOutput{Accepted: true, PlayerCount: 2}, nil
}

func (m *MockGameService) FinishSpin(ctx context.Context, input *game.FinishSpinInput) (*game.FinishSpinOutput, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	return &game.FinishSpinOutput{
		Winner: &game.WinnerInfo{UserID: "user-1", Name: "Ana", Prize: 7},
		NewPot: 17,
		Status: models.GameStatusWaitingForPlayers,
	}, nil
}

func (m *MockGameService) GetFullState(ctx context.Context, input *game.GetFullStateInput) (*game.GetFullStateOutput, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	return &game.GetFullStateOutput{
		State: &models.GameState{
			ID:     "game_state",
			Status: models.GameStatusReadyToSpin,
			Pot:    29,
		},
		ActivePlayers: []*game.PlayerDetail{
			{
				Player:         &models.Player{UserID: "user-1", EntryAmount: 20, Position: 0},
				UserName:       "Ana",
				WinProbability: 0.7,
			},
			{
				Player:         &models.Player{UserID: "user-2", EntryAmount: 10, Position: 1},
				UserName:       "Bruno",
				WinProbability: 0.3,
			},
		},
		QueueLength:      0,
		MaxActivePlayers: 10,
	}, nil
}

func (m *MockGameService) GetQueue(ctx context.Context, input *game.GetQueueInput) (*game.GetQueueOutput, error) {
	m.lastLimit = input.Limit
	if m.failWith != nil {
		return nil, m.failWith
	}
	return &game.GetQueueOutput{
		Entries: []*game.QueuePreview{
			{
				Entry:    &models.QueueEntry{UserID: "user-3", EntryAmount: 5, EnqueuedAt: time.Now()},
				UserName: "Carla",
			},
		},
		Length: 1,
	}, nil
}

func (m *MockGameService) GetTransactionHistory(ctx context.Context, input *game.GetTransactionHistoryInput) (*game.GetTransactionHistoryOutput, error) {
	m.lastLimit = input.Limit
	if m.failWith != nil {
		return nil, m.failWith
	}
	return &game.GetTransactionHistoryOutput{
		Transactions: []*models.Transaction{
			{ID: "txn-1", UserID: input.UserID, Kind: models.TransactionKindDeposit, Amount: 100},
		},
	}, nil
}

func (m *MockGameService) GetRoundHistory(ctx context.Context, input *game.GetRoundHistoryInput) (*game.GetRoundHistoryOutput, error) {
	m.lastLimit = input.Limit
	if m.failWith != nil {
		return nil, m.failWith
	}
	return &game.GetRoundHistoryOutput{
		Rounds: []*models.Round{
			{ID: "round-1", WinnerID: "user-1", WinnerEntryAmount: 20, PrizeAmount: 7, PotAtTime: 24},
		},
	}, nil
}

func (m *MockGameService) GetStats(ctx context.Context, input *game.GetStatsInput) (*game.GetStatsOutput, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	return &game.GetStatsOutput{Balance: 42, GamesPlayed: 3, TotalWinnings: 21}, nil
}

type MockMiddleware struct {
}

func (m *MockMiddleware) populate() []mux.MiddlewareFunc {
	return make([]mux.MiddlewareFunc, 0)
}

func newTestHandler(service game.Service) *handler {
	h := &handler{
		router:      mux.NewRouter(),
		gameService: service,
		logger:      logrus.New(),
	}
	h.initRouter(&MockMiddleware{})
	return h
}

func TestRoutes(t *testing.T) {
	testCases := []struct {
		name   string
		method string
		path   string
		body   string
		code   int
	}{
		{
			name:   "Deposit valid",
			method: "POST",
			path:   "/api/users/user-1/deposit",
			body:   `{"amount": 50}`,
			code:   http.StatusOK,
		},
		{
			name:   "Deposit malformed json",
			method: "POST",
			path:   "/api/users/user-1/deposit",
			body:   `malformed`,
			code:   http.StatusBadRequest,
		},
		{
			name:   "Withdraw valid",
			method: "POST",
			path:   "/api/users/user-1/withdraw",
			body:   `{"amount": 10}`,
			code:   http.StatusOK,
		},
		{
			name:   "Join valid",
			method: "POST",
			path:   "/api/join",
			body:   `{"userId": "user-1", "entryAmount": 20}`,
			code:   http.StatusOK,
		},
		{
			name:   "Spin",
			method: "POST",
			path:   "/api/spin",
			code:   http.StatusOK,
		},
		{
			name:   "Finish spin",
			method: "POST",
			path:   "/api/spin/finish",
			code:   http.StatusOK,
		},
		{
			name:   "State",
			method: "GET",
			path:   "/api/state",
			code:   http.StatusOK,
		},
		{
			name:   "Queue",
			method: "GET",
			path:   "/api/queue",
			code:   http.StatusOK,
		},
		{
			name:   "Rounds",
			method: "GET",
			path:   "/api/rounds",
			code:   http.StatusOK,
		},
		{
			name:   "Transactions",
			method: "GET",
			path:   "/api/users/user-1/transactions",
			code:   http.StatusOK,
		},
		{
			name:   "Stats",
			method: "GET",
			path:   "/api/users/user-1/stats",
			code:   http.StatusOK,
		},
		{
			name:   "Unknown route",
			method: "GET",
			path:   "/api/nope",
			code:   http.StatusNotFound,
		},
		{
			name:   "Wrong method",
			method: "GET",
			path:   "/api/join",
			code:   http.StatusNotFound,
		},
	}

	testHandler := newTestHandler(&MockGameService{})

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req, _ := http.NewRequest(testCase.method, testCase.path, bytes.NewBufferString(testCase.body))
			req.Header.Set("Content-Type", "application/json")
			testHandler.ServeHTTP(rec, req)
			assert.Equal(t, testCase.code, rec.Code)
		})
	}
}

func TestErrorMapping(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		code int
	}{
		{
			name: "Invalid entry amount",
			err:  game.ErrInvalidEntryAmount,
			code: http.StatusBadRequest,
		},
		{
			name: "User not found",
			err:  game.ErrUserNotFound,
			code: http.StatusNotFound,
		},
		{
			name: "Insufficient balance",
			err:  game.ErrInsufficientBalance,
			code: http.StatusConflict,
		},
		{
			name: "Spin in progress",
			err:  game.ErrSpinInProgress,
			code: http.StatusConflict,
		},
		{
			name: "Unknown error",
			err:  assert.AnError,
			code: http.StatusInternalServerError,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			testHandler := newTestHandler(&MockGameService{failWith: testCase.err})

			rec := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/api/join", bytes.NewBufferString(`{"userId": "user-1", "entryAmount": 20}`))
			req.Header.Set("Content-Type", "application/json")
			testHandler.ServeHTTP(rec, req)
			assert.Equal(t, testCase.code, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestLimitParameter(t *testing.T) {
	testCases := []struct {
		name  string
		path  string
		limit int
	}{
		{
			name:  "Queue limit",
			path:  "/api/queue?limit=3",
			limit: 3,
		},
		{
			name:  "Transactions limit",
			path:  "/api/users/user-1/transactions?limit=7",
			limit: 7,
		},
		{
			name:  "Rounds limit",
			path:  "/api/rounds?limit=4",
			limit: 4,
		},
		{
			name:  "Absent limit means default",
			path:  "/api/queue",
			limit: 0,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			mockService := &MockGameService{}
			testHandler := newTestHandler(mockService)

			rec := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", testCase.path, nil)
			testHandler.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, testCase.limit, mockService.lastLimit)
		})
	}

	for _, path := range []string{"/api/queue?limit=nope", "/api/rounds?limit=-1"} {
		testHandler := newTestHandler(&MockGameService{})

		rec := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", path, nil)
		testHandler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestStateResponseBody(t *testing.T) {
	testHandler := newTestHandler(&MockGameService{})

	rec := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/state", nil)
	testHandler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp StateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "READY_TO_SPIN", resp.Status)
	assert.Equal(t, 29, resp.Pot)
	require.Len(t, resp.Players, 2)
	assert.Equal(t, "Ana", resp.Players[0].Name)
	assert.Equal(t, 10, resp.MaxActivePlayers)
}

func TestJoinResponseBody(t *testing.T) {
	testHandler := newTestHandler(&MockGameService{})

	rec := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/join", bytes.NewBufferString(`{"userId": "user-1", "entryAmount": 20}`))
	req.Header.Set("Content-Type", "application/json")
	testHandler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp JoinResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 80, resp.Balance)
	assert.True(t, resp.Admitted)
	require.NotNil(t, resp.NewPlayer)
	assert.Equal(t, "user-1", resp.NewPlayer.UserID)
	assert.Equal(t, 20, resp.NewPlayer.EntryAmount)
}
