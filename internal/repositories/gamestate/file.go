package gamestate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/KirkDiggler/gamemaster/internal/entities"
	"github.com/KirkDiggler/gamemaster/internal/errors"
)

const (
	saveFileSuffix = ".json"

	// Error messages
	errStateNil    = "state cannot be nil"
	errGameIDEmpty = "game ID cannot be empty"
)

// FileConfig contains configuration for the file-backed repository.
type FileConfig struct {
	// Dir holds one save file per game, named <game_id>.json.
	Dir string
}

// Validate validates the FileConfig.
func (cfg *FileConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Dir == "" {
		return errors.InvalidArgument("save directory cannot be empty")
	}
	return nil
}

type fileRepository struct {
	dir string
}

// NewFile creates a file-backed world-state repository
func NewFile(cfg *FileConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &fileRepository{
		dir: cfg.Dir,
	}, nil
}

// Ensure fileRepository implements Repository
var _ Repository = (*fileRepository)(nil)

func (r *fileRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	data, err := os.ReadFile(r.buildPath(input.GameID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("no saved state for game %s", input.GameID)
		}
		return nil, errors.Wrapf(err, "failed to read save file")
	}

	var state entities.WorldState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeCorruptState,
			"save file for game %s is not valid JSON", input.GameID)
	}
	state.EnsureContainers()

	if err := state.Validate(); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeCorruptState,
			"save file for game %s failed validation", input.GameID)
	}

	return &GetOutput{State: &state}, nil
}

func (r *fileRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.State == nil {
		return nil, errors.InvalidArgument(errStateNil)
	}
	if err := input.State.Validate(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "refusing to persist invalid state")
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create save directory")
	}

	// Write to a temp file in the same directory, then rename over the
	// save file. A crash mid-write never leaves a partial save behind.
	tmp, err := os.CreateTemp(r.dir, "state-*.tmp")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create temp save file")
	}

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(input.State); err != nil {
		tmp.Close() //nolint:errcheck // already failing
		os.Remove(tmp.Name())
		return nil, errors.Wrapf(err, "failed to write save file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, errors.Wrapf(err, "failed to close save file")
	}
	if err := os.Rename(tmp.Name(), r.buildPath(input.State.GameID)); err != nil {
		os.Remove(tmp.Name())
		return nil, errors.Wrapf(err, "failed to replace save file")
	}

	return &SaveOutput{}, nil
}

func (r *fileRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	if err := os.Remove(r.buildPath(input.GameID)); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("no saved state for game %s", input.GameID)
		}
		return nil, errors.Wrapf(err, "failed to delete save file")
	}

	return &DeleteOutput{}, nil
}

// buildPath returns the save file path for a game
func (r *fileRepository) buildPath(gameID string) string {
	return filepath.Join(r.dir, fmt.Sprintf("%s%s", gameID, saveFileSuffix))
}
