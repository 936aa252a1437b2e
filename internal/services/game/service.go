package game

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ruleta-game/ruleta/internal/common/clock"
	"github.com/ruleta-game/ruleta/internal/common/uuid"
	"github.com/ruleta-game/ruleta/internal/config"
	"github.com/ruleta-game/ruleta/internal/models"
	"github.com/ruleta-game/ruleta/internal/prize"
	ledgerRepo "github.com/ruleta-game/ruleta/internal/repositories/ledger"
	queueRepo "github.com/ruleta-game/ruleta/internal/repositories/queue"
	roundRepo "github.com/ruleta-game/ruleta/internal/repositories/round"
	stateRepo "github.com/ruleta-game/ruleta/internal/repositories/state"
	userRepo "github.com/ruleta-game/ruleta/internal/repositories/user"
	"github.com/ruleta-game/ruleta/internal/rng"
	"github.com/ruleta-game/ruleta/internal/selection"
)

// service implements the Service interface
type service struct {
	gameConfig *config.GameConfig
	userRepo   userRepo.Repository
	stateRepo  stateRepo.Repository
	roundRepo  roundRepo.Repository
	ledgerRepo ledgerRepo.Repository
	queueRepo  queueRepo.Repository
	rand       rng.Source
	clock      clock.Clock
	uuider     uuid.UUID
	logger     *logrus.Logger

	// mu serializes every operation that mutates the game state singleton,
	// the active set, the queue head or a balance. Two settlements racing on
	// the same pot would double-select or corrupt it.
	mu sync.Mutex
}

// New creates a new game service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.UserRepo == nil {
		return nil, ErrNilUserRepo
	}
	if cfg.StateRepo == nil {
		return nil, ErrNilStateRepo
	}
	if cfg.RoundRepo == nil {
		return nil, ErrNilRoundRepo
	}
	if cfg.LedgerRepo == nil {
		return nil, ErrNilLedgerRepo
	}
	if cfg.QueueRepo == nil {
		return nil, ErrNilQueueRepo
	}
	if cfg.Rand == nil {
		return nil, ErrNilRandSource
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	gameConfig := cfg.GameConfig
	if gameConfig == nil {
		gameConfig = config.Default()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
	}

	return &service{
		gameConfig: gameConfig,
		userRepo:   cfg.UserRepo,
		stateRepo:  cfg.StateRepo,
		roundRepo:  cfg.RoundRepo,
		ledgerRepo: cfg.LedgerRepo,
		queueRepo:  cfg.QueueRepo,
		rand:       cfg.Rand,
		clock:      cfg.Clock,
		uuider:     cfg.UUIDGenerator,
		logger:     logger,
	}, nil
}

// ensureState loads the game state singleton, creating it on first use
func (s *service) ensureState(ctx context.Context) (*models.GameState, error) {
	gameState, err := s.stateRepo.GetState(ctx, &stateRepo.GetStateInput{})
	if err == nil {
		return gameState, nil
	}
	if !errors.Is(err, stateRepo.ErrStateNotFound) {
		return nil, err
	}

	gameState = &models.GameState{
		ID:        s.uuider.NewUUID(),
		Status:    models.GameStatusWaitingForPlayers,
		Pot:       0,
		Players:   []*models.Player{},
		UpdatedAt: s.clock.Now(),
	}

	err = s.stateRepo.SaveState(ctx, &stateRepo.SaveStateInput{State: gameState})
	if err != nil {
		return nil, err
	}

	return gameState, nil
}

// statusForCount returns the resting status for an active-seat count
func (s *service) statusForCount(count int) models.GameStatus {
	if count >= 2 {
		return models.GameStatusReadyToSpin
	}
	return models.GameStatusWaitingForPlayers
}

// nextFreePosition returns the lowest seat position not currently in use
func nextFreePosition(players []*models.Player) int {
	used := make(map[int]bool, len(players))
	for _, p := range players {
		used[p.Position] = true
	}

	position := 0
	for used[position] {
		position++
	}
	return position
}

// appendTransaction writes one ledger record for a balance change
func (s *service) appendTransaction(ctx context.Context, userID string, kind models.TransactionKind, amount, before, after int, description string) error {
	return s.ledgerRepo.AddTransaction(ctx, &ledgerRepo.AddTransactionInput{
		Transaction: &models.Transaction{
			ID:            s.uuider.NewUUID(),
			UserID:        userID,
			Kind:          kind,
			Amount:        amount,
			BalanceBefore: before,
			BalanceAfter:  after,
			Description:   description,
			Timestamp:     s.clock.Now(),
		},
	})
}

// Deposit credits a user's balance
func (s *service) Deposit(ctx context.Context, input *DepositInput) (*DepositOutput, error) {
	if input.Amount < MinDepositAmount || input.Amount > MaxDepositAmount {
		return nil, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.userRepo.GetUser(ctx, &userRepo.GetUserInput{UserID: input.UserID})
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	before := account.Balance
	after := before + input.Amount

	err = s.appendTransaction(ctx, account.ID, models.TransactionKindDeposit, input.Amount, before, after,
		fmt.Sprintf("Deposit of R$ %d", input.Amount))
	if err != nil {
		return nil, err
	}

	account.Balance = after
	account.UpdatedAt = s.clock.Now()
	err = s.userRepo.SaveUser(ctx, &userRepo.SaveUserInput{User: account})
	if err != nil {
		return nil, err
	}

	return &DepositOutput{NewBalance: after}, nil
}

// Withdraw debits a user's balance
func (s *service) Withdraw(ctx context.Context, input *WithdrawInput) (*WithdrawOutput, error) {
	if input.Amount < 1 {
		return nil, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.userRepo.GetUser(ctx, &userRepo.GetUserInput{UserID: input.UserID})
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if account.Balance < input.Amount {
		return nil, ErrInsufficientBalance
	}

	before := account.Balance
	after := before - input.Amount

	err = s.appendTransaction(ctx, account.ID, models.TransactionKindWithdrawal, input.Amount, before, after,
		fmt.Sprintf("Withdrawal of R$ %d", input.Amount))
	if err != nil {
		return nil, err
	}

	account.Balance = after
	account.UpdatedAt = s.clock.Now()
	err = s.userRepo.SaveUser(ctx, &userRepo.SaveUserInput{User: account})
	if err != nil {
		return nil, err
	}

	return &WithdrawOutput{NewBalance: after}, nil
}

// JoinQueue debits the entry fee and places the user in the admission queue.
// When a seat is free the user is admitted immediately.
func (s *service) JoinQueue(ctx context.Context, input *JoinQueueInput) (*JoinQueueOutput, error) {
	if !s.gameConfig.IsValidEntryAmount(input.EntryAmount) {
		return nil, ErrInvalidEntryAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	gameState, err := s.ensureState(ctx)
	if err != nil {
		return nil, err
	}

	// Entry mutations would race the settlement in flight
	if gameState.Status == models.GameStatusSpinning {
		return nil, ErrSpinInProgress
	}

	account, err := s.userRepo.GetUser(ctx, &userRepo.GetUserInput{UserID: input.UserID})
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if account.Status != models.UserStatusInactive {
		return nil, ErrAlreadyActive
	}

	if account.Balance < input.EntryAmount {
		return nil, ErrInsufficientBalance
	}

	// All validation passed; debit the full entry fee. The house commission
	// is extracted from this fee exactly once, as the pot credit on
	// admission is the net amount.
	before := account.Balance
	after := before - input.EntryAmount

	err = s.appendTransaction(ctx, account.ID, models.TransactionKindEntryFee, input.EntryAmount, before, after,
		fmt.Sprintf("Roulette entry fee: R$ %d", input.EntryAmount))
	if err != nil {
		return nil, err
	}

	account.Balance = after
	account.Status = models.UserStatusWaiting
	account.UpdatedAt = s.clock.Now()
	err = s.userRepo.SaveUser(ctx, &userRepo.SaveUserInput{User: account})
	if err != nil {
		return nil, err
	}

	err = s.queueRepo.Enqueue(ctx, &queueRepo.EnqueueInput{
		Entry: &models.QueueEntry{
			UserID:      account.ID,
			EntryAmount: input.EntryAmount,
			EnqueuedAt:  s.clock.Now(),
		},
	})
	if err != nil {
		return nil, err
	}

	// Admit opportunistically while capacity allows. The join itself is
	// already committed (fee debited, entry durably queued), so an admission
	// failure leaves the entry at the head of the queue for a later attempt.
	newPlayer, err := s.admit(ctx, gameState)
	if err != nil {
		s.logger.WithError(err).Warn("Admission after join failed; entry remains queued")
		newPlayer = nil
	}

	queueLength, err := s.queueRepo.Length(ctx)
	if err != nil {
		return nil, err
	}

	return &JoinQueueOutput{
		NewBalance:  after,
		QueueLength: queueLength,
		Admitted:    newPlayer != nil,
		NewPlayer:   newPlayer,
	}, nil
}

// admit moves the queue head into a free seat on the given state, crediting
// the pot with the entry amount net of the house commission, and persists the
// state itself. The entry is peeked and only popped once the seat it turns
// into is durable: a queued entry carries a paid fee and must never be
// destroyed into nothing. Returns nil without error when nothing was admitted.
func (s *service) admit(ctx context.Context, gameState *models.GameState) (*NewPlayerInfo, error) {
	if gameState.Status == models.GameStatusSpinning {
		return nil, nil
	}

	if len(gameState.Players) >= s.gameConfig.MaxActivePlayers {
		return nil, nil
	}

	peeked, err := s.queueRepo.Peek(ctx, &queueRepo.PeekInput{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(peeked.Entries) == 0 {
		return nil, nil
	}
	entry := peeked.Entries[0]

	// The queue is a trust boundary too
	if !s.gameConfig.IsValidEntryAmount(entry.EntryAmount) {
		return nil, ErrInvalidEntryAmount
	}

	account, err := s.userRepo.GetUser(ctx, &userRepo.GetUserInput{UserID: entry.UserID})
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if account.Status != models.UserStatusWaiting {
		return nil, ErrQueuedUserNotWaiting
	}

	for _, p := range gameState.Players {
		if p.UserID == entry.UserID {
			return nil, ErrAlreadyActive
		}
	}

	prevPlayers, prevPot, prevStatus := gameState.Players, gameState.Pot, gameState.Status

	position := nextFreePosition(gameState.Players)
	gameState.Players = append(gameState.Players, &models.Player{
		ID:          s.uuider.NewUUID(),
		UserID:      entry.UserID,
		EntryAmount: entry.EntryAmount,
		Position:    position,
		JoinedAt:    s.clock.Now(),
	})

	gameState.Pot += s.gameConfig.NetAmount(entry.EntryAmount)
	gameState.Status = s.statusForCount(len(gameState.Players))
	gameState.UpdatedAt = s.clock.Now()

	err = s.stateRepo.SaveState(ctx, &stateRepo.SaveStateInput{State: gameState})
	if err != nil {
		gameState.Players, gameState.Pot, gameState.Status = prevPlayers, prevPot, prevStatus
		return nil, err
	}

	_, err = s.queueRepo.DequeueHead(ctx)
	if err != nil && !errors.Is(err, queueRepo.ErrQueueEmpty) {
		return nil, err
	}

	account.Status = models.UserStatusPlaying
	account.UpdatedAt = s.clock.Now()
	err = s.userRepo.SaveUser(ctx, &userRepo.SaveUserInput{User: account})
	if err != nil {
		return nil, err
	}

	return &NewPlayerInfo{
		UserID:      account.ID,
		Name:        account.Name,
		EntryAmount: entry.EntryAmount,
		Position:    position,
	}, nil
}

// AdmitFromQueue moves the queue head into a free seat, if possible
func (s *service) AdmitFromQueue(ctx context.Context, input *AdmitFromQueueInput) (*AdmitFromQueueOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gameState, err := s.ensureState(ctx)
	if err != nil {
		return nil, err
	}

	newPlayer, err := s.admit(ctx, gameState)
	if err != nil {
		return nil, err
	}

	return &AdmitFromQueueOutput{
		Admitted:  newPlayer != nil,
		NewPlayer: newPlayer,
	}, nil
}

// TriggerSpin marks the round as spinning when enough players are seated
func (s *service) TriggerSpin(ctx context.Context, input *TriggerSpinInput) (*TriggerSpinOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gameState, err := s.ensureState(ctx)
	if err != nil {
		return nil, err
	}

	if gameState.Status == models.GameStatusSpinning {
		return nil, ErrSpinInProgress
	}

	if len(gameState.Players) < 2 {
		return nil, ErrNotEnoughPlayers
	}

	gameState.Status = models.GameStatusSpinning
	gameState.UpdatedAt = s.clock.Now()
	err = s.stateRepo.SaveState(ctx, &stateRepo.SaveStateInput{State: gameState})
	if err != nil {
		return nil, err
	}

	return &TriggerSpinOutput{
		Accepted:    true,
		PlayerCount: len(gameState.Players),
	}, nil
}

// FinishSpin settles the round. The seat removal, pot reduction and status
// recompute are committed in a single state write before any payment: a store
// failure mid-settlement must never leave the winner both paid and seated,
// where a retried spin would pay them again.
func (s *service) FinishSpin(ctx context.Context, input *FinishSpinInput) (*FinishSpinOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gameState, err := s.stateRepo.GetState(ctx, &stateRepo.GetStateInput{})
	if err != nil {
		return nil, err
	}

	if len(gameState.Players) == 0 {
		return nil, ErrNoActivePlayers
	}

	winner, err := selection.SelectWinner(s.gameConfig, s.rand, gameState.Players)
	if err != nil {
		if errors.Is(err, selection.ErrNoPlayers) {
			return nil, ErrNoActivePlayers
		}
		return nil, err
	}

	winnerAccount, err := s.userRepo.GetUser(ctx, &userRepo.GetUserInput{UserID: winner.UserID})
	if err != nil {
		// Never pay a missing user
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrWinnerUserMissing
		}
		return nil, err
	}

	potAtDraw := gameState.Pot

	grossPrize, err := prize.Calculate(s.gameConfig, winner.EntryAmount, potAtDraw)
	if err != nil {
		return nil, err
	}

	houseCommission := s.gameConfig.HouseCommission(grossPrize)
	netPrize := grossPrize - houseCommission

	// Free the winner's seat, reduce the pot and recompute the status, then
	// commit. Until this write lands, nothing has been mutated and the call
	// can simply be retried. The commission stays in the pot; only the net
	// prize leaves it.
	remaining := make([]*models.Player, 0, len(gameState.Players)-1)
	for _, p := range gameState.Players {
		if p.ID != winner.ID {
			remaining = append(remaining, p)
		}
	}
	gameState.Players = remaining
	gameState.Pot = max(0, potAtDraw-netPrize)
	gameState.LastWinnerID = winner.UserID
	gameState.Status = s.statusForCount(len(remaining))
	gameState.UpdatedAt = s.clock.Now()

	err = s.stateRepo.SaveState(ctx, &stateRepo.SaveStateInput{State: gameState})
	if err != nil {
		return nil, err
	}

	// Credit the winner
	before := winnerAccount.Balance
	after := before + netPrize

	err = s.appendTransaction(ctx, winnerAccount.ID, models.TransactionKindPrize, netPrize, before, after,
		fmt.Sprintf("Roulette prize: R$ %d", netPrize))
	if err != nil {
		return nil, err
	}

	winnerAccount.Balance = after
	winnerAccount.GamesPlayed++
	winnerAccount.TotalWinnings += netPrize
	winnerAccount.Status = models.UserStatusInactive
	winnerAccount.UpdatedAt = s.clock.Now()
	err = s.userRepo.SaveUser(ctx, &userRepo.SaveUserInput{User: winnerAccount})
	if err != nil {
		return nil, err
	}

	// Record the round against the pre-settlement pot
	err = s.roundRepo.AddRound(ctx, &roundRepo.AddRoundInput{
		Round: &models.Round{
			ID:                s.uuider.NewUUID(),
			WinnerID:          winner.UserID,
			WinnerEntryAmount: winner.EntryAmount,
			PrizeAmount:       netPrize,
			PotAtTime:         potAtDraw,
			CompletedAt:       s.clock.Now(),
		},
	})
	if err != nil {
		return nil, err
	}

	// Admit into the freed slot. The settled round stands either way; a
	// failed admission leaves the entry queued for a later attempt.
	newPlayer, err := s.admit(ctx, gameState)
	if err != nil {
		s.logger.WithError(err).Warn("Admission after settlement failed; entry remains queued")
		newPlayer = nil
	}

	return &FinishSpinOutput{
		Winner: &WinnerInfo{
			UserID: winnerAccount.ID,
			Name:   winnerAccount.Name,
			Prize:  netPrize,
		},
		HouseCommission: houseCommission,
		NewPlayer:       newPlayer,
		NewPot:          gameState.Pot,
		Status:          gameState.Status,
	}, nil
}

// GetFullState returns the observable game state for clients
func (s *service) GetFullState(ctx context.Context, input *GetFullStateInput) (*GetFullStateOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gameState, err := s.ensureState(ctx)
	if err != nil {
		return nil, err
	}

	probabilities := selection.WinProbabilities(s.gameConfig, gameState.Players)

	activePlayers := make([]*PlayerDetail, 0, len(gameState.Players))
	for _, p := range gameState.Players {
		detail := &PlayerDetail{
			Player:         p,
			UserName:       "Unknown",
			WinProbability: probabilities[p.UserID],
		}

		account, err := s.userRepo.GetUser(ctx, &userRepo.GetUserInput{UserID: p.UserID})
		if err == nil {
			detail.UserName = account.Name
		} else if !errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, err
		}

		activePlayers = append(activePlayers, detail)
	}

	var nextInQueue *QueuePreview
	peeked, err := s.queueRepo.Peek(ctx, &queueRepo.PeekInput{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(peeked.Entries) > 0 {
		nextInQueue = &QueuePreview{
			Entry:    peeked.Entries[0],
			UserName: "Unknown",
		}
		account, err := s.userRepo.GetUser(ctx, &userRepo.GetUserInput{UserID: peeked.Entries[0].UserID})
		if err == nil {
			nextInQueue.UserName = account.Name
		} else if !errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, err
		}
	}

	queueLength, err := s.queueRepo.Length(ctx)
	if err != nil {
		return nil, err
	}

	return &GetFullStateOutput{
		State:            gameState,
		ActivePlayers:    activePlayers,
		NextInQueue:      nextInQueue,
		QueueLength:      queueLength,
		MaxActivePlayers: s.gameConfig.MaxActivePlayers,
	}, nil
}

// GetQueue returns a preview of the waiting queue
func (s *service) GetQueue(ctx context.Context, input *GetQueueInput) (*GetQueueOutput, error) {
	peeked, err := s.queueRepo.Peek(ctx, &queueRepo.PeekInput{Limit: input.Limit})
	if err != nil {
		return nil, err
	}

	entries := make([]*QueuePreview, 0, len(peeked.Entries))
	for _, entry := range peeked.Entries {
		preview := &QueuePreview{
			Entry:    entry,
			UserName: "Unknown",
		}

		account, err := s.userRepo.GetUser(ctx, &userRepo.GetUserInput{UserID: entry.UserID})
		if err == nil {
			preview.UserName = account.Name
		} else if !errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, err
		}

		entries = append(entries, preview)
	}

	length, err := s.queueRepo.Length(ctx)
	if err != nil {
		return nil, err
	}

	return &GetQueueOutput{
		Entries: entries,
		Length:  length,
	}, nil
}

// GetTransactionHistory returns a user's recent ledger records
func (s *service) GetTransactionHistory(ctx context.Context, input *GetTransactionHistoryInput) (*GetTransactionHistoryOutput, error) {
	out, err := s.ledgerRepo.GetUserTransactions(ctx, &ledgerRepo.GetUserTransactionsInput{
		UserID: input.UserID,
		Limit:  input.Limit,
	})
	if err != nil {
		return nil, err
	}

	return &GetTransactionHistoryOutput{Transactions: out.Transactions}, nil
}

// GetRoundHistory returns recent completed rounds
func (s *service) GetRoundHistory(ctx context.Context, input *GetRoundHistoryInput) (*GetRoundHistoryOutput, error) {
	out, err := s.roundRepo.GetRecentRounds(ctx, &roundRepo.GetRecentRoundsInput{
		Limit: input.Limit,
	})
	if err != nil {
		return nil, err
	}

	return &GetRoundHistoryOutput{Rounds: out.Rounds}, nil
}

// GetStats returns a user's balance and lifetime counters
func (s *service) GetStats(ctx context.Context, input *GetStatsInput) (*GetStatsOutput, error) {
	account, err := s.userRepo.GetUser(ctx, &userRepo.GetUserInput{UserID: input.UserID})
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &GetStatsOutput{
		Balance:       account.Balance,
		GamesPlayed:   account.GamesPlayed,
		TotalWinnings: account.TotalWinnings,
		Status:        account.Status,
		MemberSince:   account.CreatedAt,
	}, nil
}
