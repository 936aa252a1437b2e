package models

import (
	"time"
)

// GameStatus represents the coarse state of the current round
type GameStatus string

const (
	// GameStatusWaitingForPlayers indicates fewer than two active seats are filled
	GameStatusWaitingForPlayers GameStatus = "WAITING_FOR_PLAYERS"

	// GameStatusReadyToSpin indicates at least two active seats are filled
	GameStatusReadyToSpin GameStatus = "READY_TO_SPIN"

	// GameStatusSpinning indicates a draw has been triggered and is being committed
	GameStatusSpinning GameStatus = "SPINNING"

	// GameStatusFinished marks the moment settlement completes, before the
	// status is recomputed from the remaining seat count
	GameStatusFinished GameStatus = "FINISHED"
)

// GameState is the singleton describing the current round. Active seats are
// embedded so the whole round mutates through a single record.
type GameState struct {
	// ID is the unique identifier for the game state record
	ID string

	// Status is the current round status
	Status GameStatus

	// Pot is the accumulated prize pool in whole currency units, never negative
	Pot int

	// LastWinnerID is the user ID of the most recent round winner, if any
	LastWinnerID string

	// Players are the currently active seats, at most the configured capacity
	Players []*Player

	// UpdatedAt is when the state was last modified
	UpdatedAt time.Time
}
