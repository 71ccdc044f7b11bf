package world

import (
	"github.com/KirkDiggler/gamemaster/internal/entities"
)

// LoadInput defines the request for loading a game
type LoadInput struct {
	GameID string
}

// LoadOutput defines the response for loading a game
type LoadOutput struct {
	State *entities.WorldState

	// FirstRun is true when no save existed and the defaults were used
	FirstRun bool
}

// SaveInput defines the request for persisting the loaded game
type SaveInput struct {
}

// SaveOutput defines the response for persisting the loaded game
type SaveOutput struct {
}

// ResetInput defines the request for resetting the game to its defaults
type ResetInput struct {
}

// ResetOutput defines the response for resetting the game
type ResetOutput struct {
	State *entities.WorldState
}

// GetStateInput defines the request for a snapshot of the loaded game
type GetStateInput struct {
}

// GetStateOutput defines the response carrying a snapshot of the loaded game
type GetStateOutput struct {
	State *entities.WorldState
}

// GetValueInput defines the request for reading a dot-path
type GetValueInput struct {
	Path string
}

// GetValueOutput defines the response for reading a dot-path
type GetValueOutput struct {
	// Value is the JSON form of whatever the path resolves to
	Value interface{}
}

// SetValueInput defines the request for writing a dot-path
type SetValueInput struct {
	Path  string
	Value interface{}
}

// SetValueOutput defines the response for writing a dot-path
type SetValueOutput struct {
}

// UpdateHPInput defines the request for applying an HP delta to an entity
type UpdateHPInput struct {
	EntityID string

	// Delta is negative for damage, positive for healing
	Delta int
}

// UpdateHPOutput defines the response for applying an HP delta
type UpdateHPOutput struct {
	EntityID    string
	HP          int
	MaxHP       int
	Unconscious bool
}

// AddEntityInput defines the request for adding an entity to the world
type AddEntityInput struct {
	Entity *entities.Entity
}

// AddEntityOutput defines the response for adding an entity
type AddEntityOutput struct {
	Entity *entities.Entity
}

// UpdateCombatInput defines the request for replacing the combat block
type UpdateCombatInput struct {
	Combat *entities.CombatState
}

// UpdateCombatOutput defines the response for replacing the combat block
type UpdateCombatOutput struct {
}

// SetFlagInput defines the request for setting a narrative flag
type SetFlagInput struct {
	Name  string
	Value bool
}

// SetFlagOutput defines the response for setting a narrative flag
type SetFlagOutput struct {
}

// GetFlagInput defines the request for reading a narrative flag
type GetFlagInput struct {
	Name string
}

// GetFlagOutput defines the response for reading a narrative flag.
// Flags that were never set read as false.
type GetFlagOutput struct {
	Value bool
}

// PartyStatusInput defines the request for summarizing the party
type PartyStatusInput struct {
}

// PartyStatusOutput defines the response summarizing the party
type PartyStatusOutput struct {
	Members []*entities.Entity
}

// LivingEnemiesInput defines the request for listing enemies still standing
type LivingEnemiesInput struct {
}

// LivingEnemiesOutput defines the response listing enemies still standing
type LivingEnemiesOutput struct {
	Enemies []*entities.Entity
}
