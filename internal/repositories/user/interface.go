package user

import (
	"context"

	"github.com/ruleta-game/ruleta/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/ruleta-game/ruleta/internal/repositories/user Repository

// Repository defines the interface for user data persistence
type Repository interface {
	// SaveUser persists a user
	SaveUser(ctx context.Context, input *SaveUserInput) error

	// GetUser retrieves a user by ID
	GetUser(ctx context.Context, input *GetUserInput) (*models.User, error)
}
