// Package world implements the world-state store: the single owner of the
// loaded game document. Every read returns a copy and every write revalidates
// the document, so callers can never leave the game in a state that would
// not survive a save/load round trip.
package world

//go:generate mockgen -destination=mock/mock_service.go -package=worldmock github.com/KirkDiggler/gamemaster/internal/orchestrators/world Service

import (
	"context"
	"encoding/json"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/KirkDiggler/gamemaster/internal/entities"
	"github.com/KirkDiggler/gamemaster/internal/errors"
	"github.com/KirkDiggler/gamemaster/internal/repositories/gamestate"
)

// Service defines the interface for world-state operations
type Service interface {
	// Load reads the saved state for a game, falling back to the campaign
	// defaults when no save exists yet. A malformed save is CorruptState,
	// never a silent fallback.
	Load(ctx context.Context, input *LoadInput) (*LoadOutput, error)

	// Save persists the loaded game
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)

	// Reset replaces the loaded game with the campaign defaults and
	// persists immediately
	Reset(ctx context.Context, input *ResetInput) (*ResetOutput, error)

	// GetState returns a snapshot of the loaded game
	GetState(ctx context.Context, input *GetStateInput) (*GetStateOutput, error)

	// GetValue resolves a dot-path to the value stored there
	GetValue(ctx context.Context, input *GetValueInput) (*GetValueOutput, error)

	// SetValue writes a value at a dot-path, creating intermediate
	// containers as needed
	SetValue(ctx context.Context, input *SetValueInput) (*SetValueOutput, error)

	// UpdateHP applies a damage or healing delta to any entity
	UpdateHP(ctx context.Context, input *UpdateHPInput) (*UpdateHPOutput, error)

	// AddEntity adds a character, NPC, or enemy to the world
	AddEntity(ctx context.Context, input *AddEntityInput) (*AddEntityOutput, error)

	// UpdateCombat replaces the combat block
	UpdateCombat(ctx context.Context, input *UpdateCombatInput) (*UpdateCombatOutput, error)

	// SetFlag records a narrative flag
	SetFlag(ctx context.Context, input *SetFlagInput) (*SetFlagOutput, error)

	// GetFlag reads a narrative flag; flags never set read as false
	GetFlag(ctx context.Context, input *GetFlagInput) (*GetFlagOutput, error)

	// PartyStatus summarizes the player characters
	PartyStatus(ctx context.Context, input *PartyStatusInput) (*PartyStatusOutput, error)

	// LivingEnemies lists enemies that are still standing
	LivingEnemies(ctx context.Context, input *LivingEnemiesInput) (*LivingEnemiesOutput, error)
}

// Config holds the dependencies for the world orchestrator
type Config struct {
	Repo gamestate.Repository

	// Defaults is the pristine campaign document, cloned on first run
	// and on reset
	Defaults *entities.WorldState
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.Repo == nil {
		return errors.InvalidArgument("repository is required")
	}
	if c.Defaults == nil {
		return errors.InvalidArgument("campaign defaults are required")
	}
	return nil
}

// Orchestrator implements the world Service
type Orchestrator struct {
	repo     gamestate.Repository
	defaults *entities.WorldState

	mu    sync.RWMutex
	state *entities.WorldState // nil until Load
}

// New creates a new world orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Orchestrator{
		repo:     cfg.Repo,
		defaults: cfg.Defaults,
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ Service = (*Orchestrator)(nil)

// requireState returns the live document. Callers must hold o.mu.
func (o *Orchestrator) requireState() (*entities.WorldState, error) {
	if o.state == nil {
		return nil, errors.InvalidState("no game loaded")
	}
	return o.state, nil
}

// Load reads the saved state for a game. An absent save is a first run and
// starts from the campaign defaults without persisting; a malformed save
// surfaces as CorruptState.
func (o *Orchestrator) Load(ctx context.Context, input *LoadInput) (*LoadOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GameID == "" {
		return nil, errors.InvalidArgument("game ID is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	out, err := o.repo.Get(ctx, gamestate.GetInput{GameID: input.GameID})
	if err != nil {
		if !errors.IsNotFound(err) {
			return nil, err
		}

		state := o.defaults.Clone()
		state.GameID = input.GameID
		o.state = state

		slog.Info("No save found, starting from campaign defaults",
			"game_id", input.GameID,
			"scene", state.CurrentScene,
		)
		return &LoadOutput{State: state.Clone(), FirstRun: true}, nil
	}

	o.state = out.State

	slog.Info("Loaded game",
		"game_id", input.GameID,
		"chapter", out.State.CurrentChapter,
		"scene", out.State.CurrentScene,
	)
	return &LoadOutput{State: out.State.Clone()}, nil
}

// Save persists the loaded game
func (o *Orchestrator) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.RLock()
	state, err := o.requireState()
	if err != nil {
		o.mu.RUnlock()
		return nil, err
	}
	snapshot := state.Clone()
	o.mu.RUnlock()

	if _, err := o.repo.Save(ctx, gamestate.SaveInput{State: snapshot}); err != nil {
		return nil, err
	}

	slog.Info("Saved game", "game_id", snapshot.GameID)
	return &SaveOutput{}, nil
}

// Reset replaces the loaded game with the campaign defaults and persists
// immediately
func (o *Orchestrator) Reset(ctx context.Context, input *ResetInput) (*ResetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	current, err := o.requireState()
	if err != nil {
		o.mu.Unlock()
		return nil, err
	}

	state := o.defaults.Clone()
	state.GameID = current.GameID
	o.state = state
	snapshot := state.Clone()
	o.mu.Unlock()

	if _, err := o.repo.Save(ctx, gamestate.SaveInput{State: snapshot}); err != nil {
		return nil, err
	}

	slog.Info("Reset game to campaign defaults", "game_id", snapshot.GameID)
	return &ResetOutput{State: snapshot}, nil
}

// GetState returns a snapshot of the loaded game
func (o *Orchestrator) GetState(ctx context.Context, input *GetStateInput) (*GetStateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	state, err := o.requireState()
	if err != nil {
		return nil, err
	}

	return &GetStateOutput{State: state.Clone()}, nil
}

// GetValue resolves a dot-path against the document
func (o *Orchestrator) GetValue(ctx context.Context, input *GetValueInput) (*GetValueOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	state, err := o.requireState()
	if err != nil {
		return nil, err
	}

	doc, err := documentView(state)
	if err != nil {
		return nil, err
	}

	value, err := resolvePath(doc, input.Path)
	if err != nil {
		return nil, err
	}

	return &GetValueOutput{Value: value}, nil
}

// SetValue writes a value at a dot-path. The write happens on the document
// view and the document is rebuilt from it, so a path the schema cannot hold
// is rejected as InvalidPath and a write that breaks a document invariant is
// rejected as InvalidArgument. Either way the live document is untouched on
// failure.
func (o *Orchestrator) SetValue(ctx context.Context, input *SetValueInput) (*SetValueOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	state, err := o.requireState()
	if err != nil {
		return nil, err
	}

	doc, err := documentView(state)
	if err != nil {
		return nil, err
	}

	if err := setPath(doc, input.Path, input.Value); err != nil {
		return nil, err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to render document")
	}

	var next entities.WorldState
	if err := json.Unmarshal(data, &next); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeInvalidArgument,
			"value at %q does not fit the document", input.Path)
	}
	next.EnsureContainers()

	if next.GameID != state.GameID {
		return nil, errors.InvalidArgument("game_id is immutable")
	}

	// A value the schema has no field for survives the raw write but
	// vanishes from the rebuilt document
	rebuilt, err := documentView(&next)
	if err != nil {
		return nil, err
	}
	if _, err := resolvePath(rebuilt, input.Path); err != nil {
		return nil, errors.InvalidPathf("path %q does not exist in the document schema", input.Path)
	}

	if err := next.Validate(); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeInvalidArgument,
			"write at %q leaves the document invalid", input.Path)
	}

	o.state = &next

	slog.Info("Set value", "path", input.Path)
	return &SetValueOutput{}, nil
}

// UpdateHP applies a damage or healing delta to an entity, clamping the
// result to [0, max_hp] and keeping the unconscious tag in sync. Dropping
// to 0 never applies a death rule; dead entities reject further updates.
func (o *Orchestrator) UpdateHP(ctx context.Context, input *UpdateHPInput) (*UpdateHPOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.EntityID == "" {
		return nil, errors.InvalidArgument("entity ID is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	state, err := o.requireState()
	if err != nil {
		return nil, err
	}

	entity, ok := state.FindEntity(input.EntityID)
	if !ok {
		return nil, errors.NotFoundf("entity %s not found", input.EntityID)
	}
	if entity.IsDead() {
		return nil, errors.InvalidStatef("entity %s is dead", input.EntityID)
	}

	newHP := entity.ApplyHPDelta(input.Delta)

	slog.Info("Updated HP",
		"entity_id", input.EntityID,
		"delta", input.Delta,
		"hp", newHP,
		"max_hp", entity.MaxHP,
	)

	return &UpdateHPOutput{
		EntityID:    input.EntityID,
		HP:          newHP,
		MaxHP:       entity.MaxHP,
		Unconscious: entity.HasCondition(entities.ConditionUnconscious),
	}, nil
}

// AddEntity adds an entity to the collection its kind routes to. Ids are
// unique across characters, npcs, and enemies; a duplicate is rejected here,
// at write time.
func (o *Orchestrator) AddEntity(ctx context.Context, input *AddEntityInput) (*AddEntityOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Entity == nil {
		return nil, errors.InvalidArgument("entity is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	state, err := o.requireState()
	if err != nil {
		return nil, err
	}

	added := input.Entity.Clone()
	if err := state.AddEntity(added); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "cannot add entity")
	}

	slog.Info("Added entity",
		"entity_id", added.ID,
		"kind", added.Kind,
		"hp", added.HP,
	)

	return &AddEntityOutput{Entity: added.Clone()}, nil
}

// UpdateCombat replaces the combat block after checking the result still
// satisfies the document invariants
func (o *Orchestrator) UpdateCombat(ctx context.Context, input *UpdateCombatInput) (*UpdateCombatOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Combat == nil {
		return nil, errors.InvalidArgument("combat state is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	state, err := o.requireState()
	if err != nil {
		return nil, err
	}

	candidate := state.Clone()
	candidate.Combat = input.Combat.Clone()
	if err := candidate.Validate(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument,
			"combat update leaves the document invalid")
	}

	state.Combat = input.Combat.Clone()

	return &UpdateCombatOutput{}, nil
}

// SetFlag records a narrative flag
func (o *Orchestrator) SetFlag(ctx context.Context, input *SetFlagInput) (*SetFlagOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument("flag name is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	state, err := o.requireState()
	if err != nil {
		return nil, err
	}

	state.NarrativeProgress.Flags[input.Name] = input.Value

	slog.Info("Set narrative flag", "flag", input.Name, "value", input.Value)
	return &SetFlagOutput{}, nil
}

// GetFlag reads a narrative flag. Absent flags read as false, the same as
// flags explicitly set to false.
func (o *Orchestrator) GetFlag(ctx context.Context, input *GetFlagInput) (*GetFlagOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument("flag name is required")
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	state, err := o.requireState()
	if err != nil {
		return nil, err
	}

	return &GetFlagOutput{Value: state.NarrativeProgress.Flags[input.Name]}, nil
}

// PartyStatus summarizes the player characters, ordered by id
func (o *Orchestrator) PartyStatus(ctx context.Context, input *PartyStatusInput) (*PartyStatusOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	state, err := o.requireState()
	if err != nil {
		return nil, err
	}

	members := make([]*entities.Entity, 0, len(state.Characters))
	for _, id := range slices.Sorted(maps.Keys(state.Characters)) {
		members = append(members, state.Characters[id].Clone())
	}

	return &PartyStatusOutput{Members: members}, nil
}

// LivingEnemies lists enemies with hit points left, ordered by id
func (o *Orchestrator) LivingEnemies(ctx context.Context, input *LivingEnemiesInput) (*LivingEnemiesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	state, err := o.requireState()
	if err != nil {
		return nil, err
	}

	living := make([]*entities.Entity, 0, len(state.Enemies))
	for _, id := range slices.Sorted(maps.Keys(state.Enemies)) {
		enemy := state.Enemies[id]
		if enemy.IsConscious() && !enemy.IsDead() {
			living = append(living, enemy.Clone())
		}
	}

	return &LivingEnemiesOutput{Enemies: living}, nil
}

// documentView renders the document as the generic JSON object the path
// operations walk. Path segments address exactly the persisted keys.
func documentView(state *entities.WorldState) (map[string]interface{}, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to render document")
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "failed to render document")
	}
	return doc, nil
}
