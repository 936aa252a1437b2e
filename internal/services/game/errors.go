package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInvalidEntryAmount   GameError = "invalid entry amount"
	ErrInvalidAmount        GameError = "invalid amount"
	ErrInsufficientBalance  GameError = "insufficient balance"
	ErrAlreadyActive        GameError = "already in queue or playing"
	ErrUserNotFound         GameError = "user not found"
	ErrNotEnoughPlayers     GameError = "at least 2 players are required to spin"
	ErrNoActivePlayers      GameError = "no active players"
	ErrSpinInProgress       GameError = "a spin is already in progress"
	ErrWinnerUserMissing    GameError = "winner user record not found"
	ErrQueuedUserNotWaiting GameError = "queued user is not waiting"
	ErrNilConfig            GameError = "config cannot be nil"
	ErrNilUserRepo          GameError = "user repository cannot be nil"
	ErrNilStateRepo         GameError = "state repository cannot be nil"
	ErrNilRoundRepo         GameError = "round repository cannot be nil"
	ErrNilLedgerRepo        GameError = "ledger repository cannot be nil"
	ErrNilQueueRepo         GameError = "queue repository cannot be nil"
	ErrNilRandSource        GameError = "random source cannot be nil"
	ErrNilClock             GameError = "clock cannot be nil"
	ErrNilUUIDGenerator     GameError = "UUID generator cannot be nil"
)
