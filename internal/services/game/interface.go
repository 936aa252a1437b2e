package game

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/ruleta-game/ruleta/internal/services/game Service

// Service defines the interface for game operations
type Service interface {
	// Deposit credits a user's balance
	Deposit(ctx context.Context, input *DepositInput) (*DepositOutput, error)

	// Withdraw debits a user's balance
	Withdraw(ctx context.Context, input *WithdrawInput) (*WithdrawOutput, error)

	// JoinQueue debits the entry fee and places the user in the admission queue
	JoinQueue(ctx context.Context, input *JoinQueueInput) (*JoinQueueOutput, error)

	// AdmitFromQueue moves the queue head into a free seat, if possible
	AdmitFromQueue(ctx context.Context, input *AdmitFromQueueInput) (*AdmitFromQueueOutput, error)

	// TriggerSpin marks the round as spinning when enough players are seated
	TriggerSpin(ctx context.Context, input *TriggerSpinInput) (*TriggerSpinOutput, error)

	// FinishSpin settles the round: selects the winner, pays the prize,
	// frees the seat and admits the next queued entry
	FinishSpin(ctx context.Context, input *FinishSpinInput) (*FinishSpinOutput, error)

	// GetFullState returns the observable game state for clients
	GetFullState(ctx context.Context, input *GetFullStateInput) (*GetFullStateOutput, error)

	// GetQueue returns a preview of the waiting queue
	GetQueue(ctx context.Context, input *GetQueueInput) (*GetQueueOutput, error)

	// GetTransactionHistory returns a user's recent ledger records
	GetTransactionHistory(ctx context.Context, input *GetTransactionHistoryInput) (*GetTransactionHistoryOutput, error)

	// GetRoundHistory returns recent completed rounds
	GetRoundHistory(ctx context.Context, input *GetRoundHistoryInput) (*GetRoundHistoryOutput, error)

	// GetStats returns a user's balance and lifetime counters
	GetStats(ctx context.Context, input *GetStatsInput) (*GetStatsOutput, error)
}
