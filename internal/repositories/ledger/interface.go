package ledger

import (
	"context"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/ruleta-game/ruleta/internal/repositories/ledger Repository

// Repository defines the interface for the transaction ledger. The ledger is
// append-only; every balance mutation writes exactly one record.
type Repository interface {
	// AddTransaction appends a transaction record
	AddTransaction(ctx context.Context, input *AddTransactionInput) error

	// GetUserTransactions retrieves a user's transactions, newest first
	GetUserTransactions(ctx context.Context, input *GetUserTransactionsInput) (*GetUserTransactionsOutput, error)
}
