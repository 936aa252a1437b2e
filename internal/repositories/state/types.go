package state

import "github.com/ruleta-game/ruleta/internal/models"

// SaveStateInput contains parameters for saving the game state
type SaveStateInput struct {
	State *models.GameState
}

// GetStateInput contains parameters for retrieving the game state
type GetStateInput struct{}
