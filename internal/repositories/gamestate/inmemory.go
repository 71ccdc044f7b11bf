package gamestate

import (
	"context"
	"sync"

	"github.com/KirkDiggler/gamemaster/internal/entities"
	"github.com/KirkDiggler/gamemaster/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*entities.WorldState
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string]*entities.WorldState),
	}
}

// Ensure InMemoryRepository implements Repository
var _ Repository = (*InMemoryRepository)(nil)

// Get retrieves the world state for a game
func (r *InMemoryRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	state, exists := r.store[input.GameID]
	if !exists {
		return nil, errors.NotFoundf("no saved state for game %s", input.GameID)
	}

	// Return a copy to prevent external modification
	return &GetOutput{State: state.Clone()}, nil
}

// Save stores the world state, replacing any previous save
func (r *InMemoryRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.State == nil {
		return nil, errors.InvalidArgument(errStateNil)
	}
	if err := input.State.Validate(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "refusing to persist invalid state")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[input.State.GameID] = input.State.Clone()

	return &SaveOutput{}, nil
}

// Delete removes the saved state for a game
func (r *InMemoryRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.GameID]; !exists {
		return nil, errors.NotFoundf("no saved state for game %s", input.GameID)
	}

	delete(r.store, input.GameID)

	return &DeleteOutput{}, nil
}
