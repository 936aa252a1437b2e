package models

import (
	"time"
)

// Player represents an active seat in the current round
type Player struct {
	// ID is the unique identifier for the seat
	ID string

	// UserID is the ID of the user holding the seat
	UserID string

	// EntryAmount is the fee paid for the seat, one of the configured values
	EntryAmount int

	// Position is the display position of the seat (0..capacity-1)
	Position int

	// JoinedAt is when the seat was admitted from the queue
	JoinedAt time.Time
}
