package models

import (
	"time"
)

// TransactionKind represents the cause of a balance change
type TransactionKind string

const (
	// TransactionKindDeposit indicates money added to a balance from outside
	TransactionKindDeposit TransactionKind = "deposit"

	// TransactionKindEntryFee indicates an entry fee debited on joining the queue
	TransactionKindEntryFee TransactionKind = "entry_fee"

	// TransactionKindPrize indicates a net prize credited to a round winner
	TransactionKindPrize TransactionKind = "prize"

	// TransactionKindWithdrawal indicates money removed from a balance
	TransactionKindWithdrawal TransactionKind = "withdrawal"
)

// Transaction is an append-only audit record of a balance change
type Transaction struct {
	// ID is the unique identifier for the transaction
	ID string

	// UserID is the ID of the user whose balance changed
	UserID string

	// Kind is the cause of the balance change
	Kind TransactionKind

	// Amount is the size of the change in whole currency units, always positive
	Amount int

	// BalanceBefore is the balance before the change
	BalanceBefore int

	// BalanceAfter is the balance after the change
	BalanceAfter int

	// Description is a human-readable note about the change
	Description string

	// Timestamp is when the change happened
	Timestamp time.Time
}
