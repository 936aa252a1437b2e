package game

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ruleta-game/ruleta/internal/common/clock"
	"github.com/ruleta-game/ruleta/internal/common/uuid"
	"github.com/ruleta-game/ruleta/internal/config"
	"github.com/ruleta-game/ruleta/internal/models"
	"github.com/ruleta-game/ruleta/internal/repositories/ledger"
	"github.com/ruleta-game/ruleta/internal/repositories/queue"
	"github.com/ruleta-game/ruleta/internal/repositories/round"
	"github.com/ruleta-game/ruleta/internal/repositories/state"
	"github.com/ruleta-game/ruleta/internal/repositories/user"
	"github.com/ruleta-game/ruleta/internal/rng"
)

// Deposit bounds in whole currency units
const (
	MinDepositAmount = 1
	MaxDepositAmount = 10000
)

// Config holds configuration for the game service
type Config struct {
	// Game economics and fairness parameters; nil means defaults
	GameConfig *config.GameConfig

	// Repository dependencies
	UserRepo   user.Repository
	StateRepo  state.Repository
	RoundRepo  round.Repository
	LedgerRepo ledger.Repository
	QueueRepo  queue.Repository

	// Capability dependencies
	Rand          rng.Source
	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// Logger for non-fatal operational events; nil means a default logger
	Logger *logrus.Logger
}

// DepositInput contains parameters for a deposit
type DepositInput struct {
	// UserID is the user receiving the deposit
	UserID string

	// Amount is the deposit size in whole currency units
	Amount int
}

// DepositOutput contains the result of a deposit
type DepositOutput struct {
	// NewBalance is the balance after the deposit
	NewBalance int
}

// WithdrawInput contains parameters for a withdrawal
type WithdrawInput struct {
	// UserID is the user withdrawing
	UserID string

	// Amount is the withdrawal size in whole currency units
	Amount int
}

// WithdrawOutput contains the result of a withdrawal
type WithdrawOutput struct {
	// NewBalance is the balance after the withdrawal
	NewBalance int
}

// JoinQueueInput contains parameters for joining the admission queue
type JoinQueueInput struct {
	// UserID is the user joining
	UserID string

	// EntryAmount is the entry fee, one of the configured allowed values
	EntryAmount int
}

// JoinQueueOutput contains the result of joining the queue
type JoinQueueOutput struct {
	// NewBalance is the balance after the entry fee was debited
	NewBalance int

	// QueueLength is the number of waiting entries after the join
	QueueLength int64

	// Admitted indicates the user was immediately admitted to a free seat
	Admitted bool

	// NewPlayer describes the admitted seat, when Admitted is true
	NewPlayer *NewPlayerInfo
}

// NewPlayerInfo describes a player admitted from the queue
type NewPlayerInfo struct {
	// UserID is the admitted user
	UserID string

	// Name is the admitted user's display name
	Name string

	// EntryAmount is the entry fee the seat was bought with
	EntryAmount int

	// Position is the seat position
	Position int
}

// AdmitFromQueueInput contains parameters for a manual admission attempt
type AdmitFromQueueInput struct{}

// AdmitFromQueueOutput contains the result of an admission attempt
type AdmitFromQueueOutput struct {
	// Admitted indicates whether a queued entry was moved into a seat
	Admitted bool

	// NewPlayer describes the admitted seat, when Admitted is true
	NewPlayer *NewPlayerInfo
}

// TriggerSpinInput contains parameters for triggering a spin
type TriggerSpinInput struct{}

// TriggerSpinOutput contains the result of triggering a spin
type TriggerSpinOutput struct {
	// Accepted indicates the spin was accepted
	Accepted bool

	// PlayerCount is the number of active players at trigger time
	PlayerCount int
}

// FinishSpinInput contains parameters for settling a spin
type FinishSpinInput struct{}

// WinnerInfo describes the winner of a settled round
type WinnerInfo struct {
	// UserID is the winning user
	UserID string

	// Name is the winning user's display name
	Name string

	// Prize is the net prize credited to the winner
	Prize int
}

// FinishSpinOutput contains the result of settling a round
type FinishSpinOutput struct {
	// Winner describes the round winner
	Winner *WinnerInfo

	// HouseCommission is the commission retained from the gross prize
	HouseCommission int

	// NewPlayer describes the seat admitted into the freed slot, if any
	NewPlayer *NewPlayerInfo

	// NewPot is the pot after settlement and admission
	NewPot int

	// Status is the game status after settlement
	Status models.GameStatus
}

// GetFullStateInput contains parameters for reading the full game state
type GetFullStateInput struct{}

// PlayerDetail is an active seat enriched with the holder's display name
type PlayerDetail struct {
	// Player is the active seat
	Player *models.Player

	// UserName is the seat holder's display name
	UserName string

	// WinProbability is the seat's chance of winning the next draw
	WinProbability float64
}

// QueuePreview is a queue entry enriched with the user's display name
type QueuePreview struct {
	// Entry is the queue entry
	Entry *models.QueueEntry

	// UserName is the queued user's display name
	UserName string
}

// GetFullStateOutput contains the full observable game state
type GetFullStateOutput struct {
	// State is the game state singleton
	State *models.GameState

	// ActivePlayers are the active seats with user details
	ActivePlayers []*PlayerDetail

	// NextInQueue is the head of the queue, if any
	NextInQueue *QueuePreview

	// QueueLength is the number of waiting entries
	QueueLength int64

	// MaxActivePlayers is the configured seat capacity
	MaxActivePlayers int
}

// GetQueueInput contains parameters for previewing the queue
type GetQueueInput struct {
	// Limit is the maximum number of entries to return; 0 means the default
	Limit int
}

// GetQueueOutput contains the queue preview
type GetQueueOutput struct {
	// Entries are the waiting entries in admission order with user details
	Entries []*QueuePreview

	// Length is the total number of waiting entries
	Length int64
}

// GetTransactionHistoryInput contains parameters for reading a user's ledger
type GetTransactionHistoryInput struct {
	// UserID is the user whose history to read
	UserID string

	// Limit is the maximum number of records to return; 0 means the default
	Limit int
}

// GetTransactionHistoryOutput contains a user's ledger records
type GetTransactionHistoryOutput struct {
	Transactions []*models.Transaction
}

// GetRoundHistoryInput contains parameters for reading recent rounds
type GetRoundHistoryInput struct {
	// Limit is the maximum number of rounds to return; 0 means the default
	Limit int
}

// GetRoundHistoryOutput contains recent round records, newest first
type GetRoundHistoryOutput struct {
	Rounds []*models.Round
}

// GetStatsInput contains parameters for reading a user's stats
type GetStatsInput struct {
	// UserID is the user whose stats to read
	UserID string
}

// GetStatsOutput contains a user's stats
type GetStatsOutput struct {
	// Balance is the current balance
	Balance int

	// GamesPlayed is the number of rounds won
	GamesPlayed int

	// TotalWinnings is the lifetime sum of net prizes
	TotalWinnings int

	// Status is the user's position in the game lifecycle
	Status models.UserStatus

	// MemberSince is when the user was created
	MemberSince time.Time
}
