package state

import (
	"context"

	"github.com/ruleta-game/ruleta/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/ruleta-game/ruleta/internal/repositories/state Repository

// Repository defines the interface for game state persistence. The game
// state is a singleton; the whole round (status, pot, active seats) is read
// and written as one record.
type Repository interface {
	// SaveState persists the game state
	SaveState(ctx context.Context, input *SaveStateInput) error

	// GetState retrieves the game state singleton
	GetState(ctx context.Context, input *GetStateInput) (*models.GameState, error)
}
