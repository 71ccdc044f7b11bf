// Package rolllog provides repository interface and types for the roll audit log
package rolllog

import (
	"context"
	"time"

	"github.com/KirkDiggler/gamemaster/internal/dice"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=rolllogmock github.com/KirkDiggler/gamemaster/internal/repositories/rolllog Repository

// Log holds the recent rolls for one game. Logs expire so abandoned
// games do not accumulate roll history forever.
type Log struct {
	// Game that owns these rolls
	GameID string `json:"game_id"`

	// Most recent rolls, oldest first, capped at MaxEntries
	Entries []Entry `json:"entries"`

	// When this log was created
	CreatedAt time.Time `json:"created_at"`

	// When this log expires
	ExpiresAt time.Time `json:"expires_at"`
}

// Entry records a single resolved roll
type Entry struct {
	// Unique identifier for this entry within the log
	EntryID string `json:"entry_id"`

	// The resolved roll, exactly as the dice engine returned it
	Result *dice.RollResult `json:"result"`

	// When the roll was made
	RolledAt time.Time `json:"rolled_at"`
}

// AppendInput contains parameters for recording a roll
type AppendInput struct {
	GameID string
	Result *dice.RollResult
}

// AppendOutput contains the result of recording a roll
type AppendOutput struct {
	Entry *Entry
}

// GetInput contains parameters for retrieving a game's roll log
type GetInput struct {
	GameID string
}

// GetOutput contains the result of retrieving a roll log
type GetOutput struct {
	Log *Log
}

// DeleteInput contains parameters for deleting a roll log
type DeleteInput struct {
	GameID string
}

// DeleteOutput contains the result of deleting a roll log
type DeleteOutput struct {
	EntriesDeleted int32
}

// Repository defines the interface for roll log storage operations
type Repository interface {
	// Append records a roll, creating the log on first use
	Append(ctx context.Context, input AppendInput) (*AppendOutput, error)

	// Get retrieves the roll log for a game
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete removes the roll log for a game
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}
