// Package gamestate provides the interface for world-state persistence
package gamestate

//go:generate mockgen -destination=mock/mock_repository.go -package=gamestatemock github.com/KirkDiggler/gamemaster/internal/repositories/gamestate Repository

import (
	"context"

	"github.com/KirkDiggler/gamemaster/internal/entities"
)

// Repository defines the interface for world-state persistence
type Repository interface {
	// Get retrieves the world state for a game
	// Returns errors.InvalidArgument for empty game IDs
	// Returns errors.NotFound if no state has been saved yet
	// Returns errors.CorruptState if the stored document is malformed
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Save persists the world state, replacing any previous save
	// Returns errors.InvalidArgument if the state fails validation
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Delete removes the saved state for a game
	// Returns errors.InvalidArgument for empty game IDs
	// Returns errors.NotFound if no state has been saved
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// GetInput defines the input for loading a world state
type GetInput struct {
	GameID string
}

// GetOutput defines the output for loading a world state
type GetOutput struct {
	State *entities.WorldState
}

// SaveInput defines the input for saving a world state
type SaveInput struct {
	State *entities.WorldState
}

// SaveOutput defines the output for saving a world state
type SaveOutput struct {
}

// DeleteInput defines the input for deleting a saved world state
type DeleteInput struct {
	GameID string
}

// DeleteOutput defines the output for deleting a saved world state
type DeleteOutput struct {
}
