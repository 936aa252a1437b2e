package round

import (
	"context"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/ruleta-game/ruleta/internal/repositories/round Repository

// Repository defines the interface for round history persistence. Round
// records are append-only; there is no update or delete.
type Repository interface {
	// AddRound appends a completed round record
	AddRound(ctx context.Context, input *AddRoundInput) error

	// GetRecentRounds retrieves the most recent rounds, newest first
	GetRecentRounds(ctx context.Context, input *GetRecentRoundsInput) (*GetRecentRoundsOutput, error)
}
