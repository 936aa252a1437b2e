package models

import (
	"time"
)

// Round is an immutable log entry for a completed round
type Round struct {
	// ID is the unique identifier for the round record
	ID string

	// WinnerID is the user ID of the round winner
	WinnerID string

	// WinnerEntryAmount is the entry amount the winner's seat was bought with
	WinnerEntryAmount int

	// PrizeAmount is the net prize paid to the winner
	PrizeAmount int

	// PotAtTime is the pot value at the moment of the draw
	PotAtTime int

	// CompletedAt is when the round settled
	CompletedAt time.Time
}
