package server

import (
	"encoding/json"
	"net/http"
	"time"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type BalanceResponse struct {
	Balance int `json:"balance"`
}

type PlayerResponse struct {
	UserID         string  `json:"userId"`
	Name           string  `json:"name"`
	EntryAmount    int     `json:"entryAmount"`
	Position       int     `json:"position"`
	WinProbability float64 `json:"winProbability,omitempty"`
}

type JoinResponse struct {
	Balance     int             `json:"balance"`
	QueueLength int64           `json:"queueLength"`
	Admitted    bool            `json:"admitted"`
	NewPlayer   *PlayerResponse `json:"newPlayer,omitempty"`
}

type AdmitResponse struct {
	Admitted  bool            `json:"admitted"`
	NewPlayer *PlayerResponse `json:"newPlayer,omitempty"`
}

type SpinResponse struct {
	Accepted    bool `json:"accepted"`
	PlayerCount int  `json:"playerCount"`
}

type WinnerResponse struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Prize  int    `json:"prize"`
}

type FinishResponse struct {
	Winner          *WinnerResponse `json:"winner"`
	HouseCommission int             `json:"houseCommission"`
	NewPlayer       *PlayerResponse `json:"newPlayer,omitempty"`
	Pot             int             `json:"pot"`
	Status          string          `json:"status"`
}

type QueuedUserResponse struct {
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	EntryAmount int       `json:"entryAmount"`
	EnqueuedAt  time.Time `json:"enqueuedAt"`
}

type StateResponse struct {
	Status           string              `json:"status"`
	Pot              int                 `json:"pot"`
	LastWinnerID     string              `json:"lastWinnerId,omitempty"`
	Players          []*PlayerResponse   `json:"players"`
	NextInQueue      *QueuedUserResponse `json:"nextInQueue,omitempty"`
	QueueLength      int64               `json:"queueLength"`
	MaxActivePlayers int                 `json:"maxActivePlayers"`
}

type QueueResponse struct {
	Entries []*QueuedUserResponse `json:"entries"`
	Length  int64                 `json:"length"`
}

type TransactionResponse struct {
	ID            string    `json:"id"`
	Kind          string    `json:"kind"`
	Amount        int       `json:"amount"`
	BalanceBefore int       `json:"balanceBefore"`
	BalanceAfter  int       `json:"balanceAfter"`
	Description   string    `json:"description"`
	Timestamp     time.Time `json:"timestamp"`
}

type TransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
}

type RoundResponse struct {
	ID                string    `json:"id"`
	WinnerID          string    `json:"winnerId"`
	WinnerEntryAmount int       `json:"winnerEntryAmount"`
	PrizeAmount       int       `json:"prizeAmount"`
	PotAtTime         int       `json:"potAtTime"`
	CompletedAt       time.Time `json:"completedAt"`
}

type RoundsResponse struct {
	Rounds []*RoundResponse `json:"rounds"`
}

type StatsResponse struct {
	Balance       int       `json:"balance"`
	GamesPlayed   int       `json:"gamesPlayed"`
	TotalWinnings int       `json:"totalWinnings"`
	Status        string    `json:"status"`
	MemberSince   time.Time `json:"memberSince"`
}

// StateEvent is the payload broadcast to websocket clients after every
// state-changing operation.
type StateEvent struct {
	Event string         `json:"event"`
	State *StateResponse `json:"state"`
}

const EventStateUpdate = "state_update"

func sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func sendErrorResponse(w http.ResponseWriter, message string, status int) {
	sendJSON(w, status, ErrorResponse{Error: message})
}
