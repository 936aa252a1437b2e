package models

import (
	"time"
)

// UserStatus represents a user's position in the game lifecycle
type UserStatus string

const (
	// UserStatusInactive indicates the user is not queued or playing
	UserStatusInactive UserStatus = "inactive"

	// UserStatusWaiting indicates the user is in the admission queue
	UserStatusWaiting UserStatus = "waiting"

	// UserStatusPlaying indicates the user holds an active seat
	UserStatusPlaying UserStatus = "playing"
)

// User holds the account balance and lifetime counters for a player
type User struct {
	// ID is the unique identifier for the user
	ID string

	// Name is the display name of the user
	Name string

	// Balance is the current balance in whole currency units
	Balance int

	// Status is the user's position in the game lifecycle
	Status UserStatus

	// GamesPlayed is the number of rounds the user has won seats in
	GamesPlayed int

	// TotalWinnings is the lifetime sum of net prizes paid to the user
	TotalWinnings int

	// CreatedAt is when the user was created
	CreatedAt time.Time

	// UpdatedAt is when the user was last modified
	UpdatedAt time.Time
}
