package models

import (
	"time"
)

// QueueEntry is a waiting admission request
type QueueEntry struct {
	// UserID is the ID of the user waiting for a seat
	UserID string

	// EntryAmount is the fee the user paid on joining the queue
	EntryAmount int

	// EnqueuedAt is when the entry joined the queue; admission is in
	// strict EnqueuedAt order
	EnqueuedAt time.Time
}
