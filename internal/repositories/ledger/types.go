package ledger

import "github.com/ruleta-game/ruleta/internal/models"

// AddTransactionInput contains parameters for appending a transaction
type AddTransactionInput struct {
	Transaction *models.Transaction
}

// GetUserTransactionsInput contains parameters for retrieving a user's transactions
type GetUserTransactionsInput struct {
	UserID string

	// Limit is the maximum number of transactions to return; 0 means the default
	Limit int
}

// GetUserTransactionsOutput contains the result of retrieving a user's transactions
type GetUserTransactionsOutput struct {
	Transactions []*models.Transaction
}
