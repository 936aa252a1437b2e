package queue

import (
	"context"

	"github.com/ruleta-game/ruleta/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/ruleta-game/ruleta/internal/repositories/queue Repository

// Repository defines the interface for the admission queue. The queue is
// strictly FIFO by enqueue order and durable: queued entrants carry paid
// entry fees and must survive a process restart.
type Repository interface {
	// Enqueue appends an entry to the tail of the queue
	Enqueue(ctx context.Context, input *EnqueueInput) error

	// DequeueHead removes and returns the head of the queue; returns
	// ErrQueueEmpty when there is nothing waiting
	DequeueHead(ctx context.Context) (*models.QueueEntry, error)

	// Peek returns the first entries without removing them
	Peek(ctx context.Context, input *PeekInput) (*PeekOutput, error)

	// Length returns the number of waiting entries
	Length(ctx context.Context) (int64, error)
}
