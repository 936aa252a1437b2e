package round

import "github.com/ruleta-game/ruleta/internal/models"

// AddRoundInput contains parameters for appending a round record
type AddRoundInput struct {
	Round *models.Round
}

// GetRecentRoundsInput contains parameters for retrieving recent rounds
type GetRecentRoundsInput struct {
	// Limit is the maximum number of rounds to return; 0 means the default
	Limit int
}

// GetRecentRoundsOutput contains the result of retrieving recent rounds
type GetRecentRoundsOutput struct {
	Rounds []*models.Round
}
