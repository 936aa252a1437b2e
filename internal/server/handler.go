package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/ruleta-game/ruleta/internal/services/game"
	"github.com/ruleta-game/ruleta/internal/ws"
)

type handler struct {
	router      *mux.Router
	gameService game.Service
	hub         *ws.Hub
	logger      *logrus.Logger
	upgrader    websocket.Upgrader
}

func (h *handler) initRouter(m MiddlewareDispatcher) {
	// Provide all middlewares from one method
	h.router.Use(m.populate()...)

	h.router.HandleFunc("/api/users/{id}/deposit", h.deposit).Methods("POST")
	h.router.HandleFunc("/api/users/{id}/withdraw", h.withdraw).Methods("POST")
	h.router.HandleFunc("/api/users/{id}/transactions", h.transactions).Methods("GET")
	h.router.HandleFunc("/api/users/{id}/stats", h.stats).Methods("GET")
	h.router.HandleFunc("/api/join", h.join).Methods("POST")
	h.router.HandleFunc("/api/admit", h.admit).Methods("POST")
	h.router.HandleFunc("/api/spin", h.spin).Methods("POST")
	h.router.HandleFunc("/api/spin/finish", h.finishSpin).Methods("POST")
	h.router.HandleFunc("/api/state", h.state).Methods("GET")
	h.router.HandleFunc("/api/queue", h.queue).Methods("GET")
	h.router.HandleFunc("/api/rounds", h.rounds).Methods("GET")
	h.router.HandleFunc("/ws", h.serveWS)
	h.router.PathPrefix("/").HandlerFunc(h.defaultHandler)
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *handler) defaultHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
}

// statusForError maps service errors onto HTTP status codes. Validation
// failures are client errors, lifecycle refusals are conflicts.
func statusForError(err error) int {
	switch {
	case errors.Is(err, game.ErrInvalidAmount),
		errors.Is(err, game.ErrInvalidEntryAmount):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrInsufficientBalance),
		errors.Is(err, game.ErrAlreadyActive),
		errors.Is(err, game.ErrSpinInProgress),
		errors.Is(err, game.ErrNotEnoughPlayers),
		errors.Is(err, game.ErrNoActivePlayers):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) sendError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed: ", err)
		sendErrorResponse(w, "internal server error", status)
		return
	}
	sendErrorResponse(w, err.Error(), status)
}

var errInvalidLimit = errors.New("invalid limit")

// parseLimit reads the optional ?limit= query parameter; absent means 0,
// which the service treats as its default
func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, errInvalidLimit
	}
	return limit, nil
}

type amountRequest struct {
	Amount int `json:"amount"`
}

type joinRequest struct {
	UserID      string `json:"userId"`
	EntryAmount int    `json:"entryAmount"`
}

func (h *handler) deposit(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, "malformed json", http.StatusBadRequest)
		return
	}

	out, err := h.gameService.Deposit(r.Context(), &game.DepositInput{
		UserID: mux.Vars(r)["id"],
		Amount: req.Amount,
	})
	if err != nil {
		h.sendError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, BalanceResponse{Balance: out.NewBalance})
}

func (h *handler) withdraw(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, "malformed json", http.StatusBadRequest)
		return
	}

	out, err := h.gameService.Withdraw(r.Context(), &game.WithdrawInput{
		UserID: mux.Vars(r)["id"],
		Amount: req.Amount,
	})
	if err != nil {
		h.sendError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, BalanceResponse{Balance: out.NewBalance})
}

func (h *handler) join(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, "malformed json", http.StatusBadRequest)
		return
	}

	out, err := h.gameService.JoinQueue(r.Context(), &game.JoinQueueInput{
		UserID:      req.UserID,
		EntryAmount: req.EntryAmount,
	})
	if err != nil {
		h.sendError(w, err)
		return
	}

	h.broadcastState(r.Context())

	sendJSON(w, http.StatusOK, JoinResponse{
		Balance:     out.NewBalance,
		QueueLength: out.QueueLength,
		Admitted:    out.Admitted,
		NewPlayer:   newPlayerResponse(out.NewPlayer),
	})
}

func (h *handler) admit(w http.ResponseWriter, r *http.Request) {
	out, err := h.gameService.AdmitFromQueue(r.Context(), &game.AdmitFromQueueInput{})
	if err != nil {
		h.sendError(w, err)
		return
	}

	if out.Admitted {
		h.broadcastState(r.Context())
	}

	sendJSON(w, http.StatusOK, AdmitResponse{
		Admitted:  out.Admitted,
		NewPlayer: newPlayerResponse(out.NewPlayer),
	})
}

func (h *handler) spin(w http.ResponseWriter, r *http.Request) {
	out, err := h.gameService.TriggerSpin(r.Context(), &game.TriggerSpinInput{})
	if err != nil {
		h.sendError(w, err)
		return
	}

	h.broadcastState(r.Context())

	sendJSON(w, http.StatusOK, SpinResponse{
		Accepted:    out.Accepted,
		PlayerCount: out.PlayerCount,
	})
}

func (h *handler) finishSpin(w http.ResponseWriter, r *http.Request) {
	out, err := h.gameService.FinishSpin(r.Context(), &game.FinishSpinInput{})
	if err != nil {
		h.sendError(w, err)
		return
	}

	h.broadcastState(r.Context())

	sendJSON(w, http.StatusOK, FinishResponse{
		Winner: &WinnerResponse{
			UserID: out.Winner.UserID,
			Name:   out.Winner.Name,
			Prize:  out.Winner.Prize,
		},
		HouseCommission: out.HouseCommission,
		NewPlayer:       newPlayerResponse(out.NewPlayer),
		Pot:             out.NewPot,
		Status:          string(out.Status),
	})
}

func (h *handler) state(w http.ResponseWriter, r *http.Request) {
	out, err := h.gameService.GetFullState(r.Context(), &game.GetFullStateInput{})
	if err != nil {
		h.sendError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, newStateResponse(out))
}

func (h *handler) queue(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		sendErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	out, err := h.gameService.GetQueue(r.Context(), &game.GetQueueInput{Limit: limit})
	if err != nil {
		h.sendError(w, err)
		return
	}

	entries := make([]*QueuedUserResponse, 0, len(out.Entries))
	for _, preview := range out.Entries {
		entries = append(entries, newQueuedUserResponse(preview))
	}

	sendJSON(w, http.StatusOK, QueueResponse{
		Entries: entries,
		Length:  out.Length,
	})
}

func (h *handler) rounds(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		sendErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	out, err := h.gameService.GetRoundHistory(r.Context(), &game.GetRoundHistoryInput{Limit: limit})
	if err != nil {
		h.sendError(w, err)
		return
	}

	rounds := make([]*RoundResponse, 0, len(out.Rounds))
	for _, round := range out.Rounds {
		rounds = append(rounds, &RoundResponse{
			ID:                round.ID,
			WinnerID:          round.WinnerID,
			WinnerEntryAmount: round.WinnerEntryAmount,
			PrizeAmount:       round.PrizeAmount,
			PotAtTime:         round.PotAtTime,
			CompletedAt:       round.CompletedAt,
		})
	}

	sendJSON(w, http.StatusOK, RoundsResponse{Rounds: rounds})
}

func (h *handler) transactions(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		sendErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	out, err := h.gameService.GetTransactionHistory(r.Context(), &game.GetTransactionHistoryInput{
		UserID: mux.Vars(r)["id"],
		Limit:  limit,
	})
	if err != nil {
		h.sendError(w, err)
		return
	}

	transactions := make([]*TransactionResponse, 0, len(out.Transactions))
	for _, txn := range out.Transactions {
		transactions = append(transactions, &TransactionResponse{
			ID:            txn.ID,
			Kind:          string(txn.Kind),
			Amount:        txn.Amount,
			BalanceBefore: txn.BalanceBefore,
			BalanceAfter:  txn.BalanceAfter,
			Description:   txn.Description,
			Timestamp:     txn.Timestamp,
		})
	}

	sendJSON(w, http.StatusOK, TransactionsResponse{Transactions: transactions})
}

func (h *handler) stats(w http.ResponseWriter, r *http.Request) {
	out, err := h.gameService.GetStats(r.Context(), &game.GetStatsInput{
		UserID: mux.Vars(r)["id"],
	})
	if err != nil {
		h.sendError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, StatsResponse{
		Balance:       out.Balance,
		GamesPlayed:   out.GamesPlayed,
		TotalWinnings: out.TotalWinnings,
		Status:        string(out.Status),
		MemberSince:   out.MemberSince,
	})
}

// serveWS upgrades the connection and keeps it in the hub until the
// client goes away. Clients only receive broadcasts, inbound messages
// are drained and ignored.
func (h *handler) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Websocket upgrade failed: ", err)
		return
	}
	defer conn.Close()

	h.hub.Register(conn)
	defer h.hub.Unregister(conn)

	if out, err := h.gameService.GetFullState(r.Context(), &game.GetFullStateInput{}); err == nil {
		_ = h.hub.SendJSON(conn, StateEvent{
			Event: EventStateUpdate,
			State: newStateResponse(out),
		})
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *handler) broadcastState(ctx context.Context) {
	if h.hub == nil {
		return
	}

	out, err := h.gameService.GetFullState(ctx, &game.GetFullStateInput{})
	if err != nil {
		h.logger.Error("Failed to read state for broadcast: ", err)
		return
	}

	h.hub.BroadcastJSON(StateEvent{
		Event: EventStateUpdate,
		State: newStateResponse(out),
	})
}

func newPlayerResponse(info *game.NewPlayerInfo) *PlayerResponse {
	if info == nil {
		return nil
	}
	return &PlayerResponse{
		UserID:      info.UserID,
		Name:        info.Name,
		EntryAmount: info.EntryAmount,
		Position:    info.Position,
	}
}

func newQueuedUserResponse(preview *game.QueuePreview) *QueuedUserResponse {
	return &QueuedUserResponse{
		UserID:      preview.Entry.UserID,
		Name:        preview.UserName,
		EntryAmount: preview.Entry.EntryAmount,
		EnqueuedAt:  preview.Entry.EnqueuedAt,
	}
}

func newStateResponse(out *game.GetFullStateOutput) *StateResponse {
	players := make([]*PlayerResponse, 0, len(out.ActivePlayers))
	for _, detail := range out.ActivePlayers {
		players = append(players, &PlayerResponse{
			UserID:         detail.Player.UserID,
			Name:           detail.UserName,
			EntryAmount:    detail.Player.EntryAmount,
			Position:       detail.Player.Position,
			WinProbability: detail.WinProbability,
		})
	}

	resp := &StateResponse{
		Status:           string(out.State.Status),
		Pot:              out.State.Pot,
		LastWinnerID:     out.State.LastWinnerID,
		Players:          players,
		QueueLength:      out.QueueLength,
		MaxActivePlayers: out.MaxActivePlayers,
	}
	if out.NextInQueue != nil {
		resp.NextInQueue = newQueuedUserResponse(out.NextInQueue)
	}
	return resp
}
