package entities

import (
	"fmt"
)

// WorldState is the aggregate root for one game: the full document that
// gets persisted and reloaded. One instance per game; callers hold and
// thread it explicitly, there is no package-level instance.
type WorldState struct {
	GameID            string             `json:"game_id"`
	CurrentChapter    string             `json:"current_chapter"`
	CurrentScene      string             `json:"current_scene"`
	NarrativeProgress *NarrativeProgress `json:"narrative_progress"`
	Combat            *CombatState       `json:"combat"`
	Characters        map[string]*Entity `json:"characters"`
	NPCs              map[string]*Entity `json:"npcs"`
	Enemies           map[string]*Entity `json:"enemies"`
}

// New creates an empty world state with all containers allocated
func New(gameID string) *WorldState {
	return &WorldState{
		GameID:            gameID,
		NarrativeProgress: &NarrativeProgress{Flags: make(map[string]bool)},
		Combat:            &CombatState{},
		Characters:        make(map[string]*Entity),
		NPCs:              make(map[string]*Entity),
		Enemies:           make(map[string]*Entity),
	}
}

// EnsureContainers allocates any nil containers so path writes and entity
// lookups never hit a nil map. Called after unmarshaling a document.
func (w *WorldState) EnsureContainers() {
	if w.NarrativeProgress == nil {
		w.NarrativeProgress = &NarrativeProgress{}
	}
	if w.NarrativeProgress.Flags == nil {
		w.NarrativeProgress.Flags = make(map[string]bool)
	}
	if w.Combat == nil {
		w.Combat = &CombatState{}
	}
	if w.Characters == nil {
		w.Characters = make(map[string]*Entity)
	}
	if w.NPCs == nil {
		w.NPCs = make(map[string]*Entity)
	}
	if w.Enemies == nil {
		w.Enemies = make(map[string]*Entity)
	}
}

// collections returns the three entity maps in lookup order
func (w *WorldState) collections() []map[string]*Entity {
	return []map[string]*Entity{w.Characters, w.NPCs, w.Enemies}
}

// FindEntity resolves an id across characters, npcs, and enemies,
// in that order. Ids are unique across the three maps, so at most
// one collection can match.
func (w *WorldState) FindEntity(id string) (*Entity, bool) {
	for _, m := range w.collections() {
		if e, ok := m[id]; ok {
			return e, true
		}
	}
	return nil, false
}

// HasEntity reports whether any collection holds the id
func (w *WorldState) HasEntity(id string) bool {
	_, ok := w.FindEntity(id)
	return ok
}

// AddEntity places the entity in the collection matching its Kind.
// Ids must be unique across all three collections; a duplicate is refused.
func (w *WorldState) AddEntity(e *Entity) error {
	if e == nil || e.ID == "" {
		return fmt.Errorf("entity with non-empty id is required")
	}
	if w.HasEntity(e.ID) {
		return fmt.Errorf("entity id %q already exists", e.ID)
	}

	switch e.Kind {
	case KindCharacter:
		w.Characters[e.ID] = e
	case KindNPC:
		w.NPCs[e.ID] = e
	case KindEnemy:
		w.Enemies[e.ID] = e
	default:
		return fmt.Errorf("entity %q has unknown kind %q", e.ID, e.Kind)
	}
	return nil
}

// Validate checks the structural invariants of a document. It is called
// on every load; a violation means the persisted document is corrupt.
func (w *WorldState) Validate() error {
	if w.GameID == "" {
		return fmt.Errorf("game_id is required")
	}

	seen := make(map[string]bool)
	for _, m := range w.collections() {
		for key, e := range m {
			if e == nil {
				return fmt.Errorf("entity %q is null", key)
			}
			if e.ID != key {
				return fmt.Errorf("entity keyed %q carries id %q", key, e.ID)
			}
			if seen[key] {
				return fmt.Errorf("entity id %q appears in more than one collection", key)
			}
			seen[key] = true
			if e.MaxHP < 0 || e.HP < 0 || e.HP > e.MaxHP {
				return fmt.Errorf("entity %q has hp %d outside [0, %d]", key, e.HP, e.MaxHP)
			}
			if e.AC < 0 {
				return fmt.Errorf("entity %q has negative ac", key)
			}
		}
	}

	if w.Combat != nil {
		if err := w.validateCombat(seen); err != nil {
			return err
		}
	}
	return nil
}

func (w *WorldState) validateCombat(entityIDs map[string]bool) error {
	c := w.Combat
	if !c.Active {
		if c.Round != 0 {
			return fmt.Errorf("combat is inactive but round is %d", c.Round)
		}
		return nil
	}

	if c.Round < 1 {
		return fmt.Errorf("combat is active but round is %d", c.Round)
	}
	if len(c.TurnOrder) == 0 {
		return fmt.Errorf("combat is active with an empty turn order")
	}
	if c.CurrentTurnIndex < 0 || c.CurrentTurnIndex >= len(c.TurnOrder) {
		return fmt.Errorf("current_turn_index %d outside turn order of length %d",
			c.CurrentTurnIndex, len(c.TurnOrder))
	}

	inOrder := make(map[string]bool, len(c.TurnOrder))
	for _, id := range c.TurnOrder {
		if inOrder[id] {
			return fmt.Errorf("entity %q appears twice in turn order", id)
		}
		inOrder[id] = true
		if !entityIDs[id] {
			return fmt.Errorf("turn order references unknown entity %q", id)
		}
	}
	return nil
}

// Clone returns a deep copy of the whole document
func (w *WorldState) Clone() *WorldState {
	if w == nil {
		return nil
	}
	clone := &WorldState{
		GameID:            w.GameID,
		CurrentChapter:    w.CurrentChapter,
		CurrentScene:      w.CurrentScene,
		NarrativeProgress: w.NarrativeProgress.Clone(),
		Combat:            w.Combat.Clone(),
	}
	clone.Characters = cloneEntities(w.Characters)
	clone.NPCs = cloneEntities(w.NPCs)
	clone.Enemies = cloneEntities(w.Enemies)
	return clone
}

func cloneEntities(m map[string]*Entity) map[string]*Entity {
	if m == nil {
		return nil
	}
	clone := make(map[string]*Entity, len(m))
	for id, e := range m {
		clone[id] = e.Clone()
	}
	return clone
}
