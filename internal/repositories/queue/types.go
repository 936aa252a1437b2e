package queue

import "github.com/ruleta-game/ruleta/internal/models"

// EnqueueInput contains parameters for appending a queue entry
type EnqueueInput struct {
	Entry *models.QueueEntry
}

// PeekInput contains parameters for previewing the head of the queue
type PeekInput struct {
	// Limit is the maximum number of entries to return; 0 means the default
	Limit int
}

// PeekOutput contains the result of previewing the queue
type PeekOutput struct {
	Entries []*models.QueueEntry
}
