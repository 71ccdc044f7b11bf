package combat

import (
	"github.com/KirkDiggler/gamemaster/internal/dice"
	"github.com/KirkDiggler/gamemaster/internal/entities"
)

// End reasons reported by CheckEnd and conventionally passed to EndCombat.
// EndCombat accepts any tag; these are the ones the engine itself detects.
const (
	EndReasonEnemiesDefeated = "enemies_defeated"
	EndReasonPartyDefeated   = "party_defeated"
	EndReasonPartyFled       = "party_fled"
)

// StartCombatInput defines the request for starting combat
type StartCombatInput struct {
	// CombatantIDs are ids of entities already present in the world.
	// Spawn enemy instances first (SpawnEnemies) and pass their ids here.
	CombatantIDs []string
}

// StartCombatOutput defines the response for starting combat
type StartCombatOutput struct {
	// Combat is a snapshot of the freshly started combat block
	Combat *entities.CombatState
	// InitiativeRolls holds each combatant's roll in the order the ids
	// were supplied, not in turn order
	InitiativeRolls []*dice.RollResult
}

// AdvanceTurnInput defines the request for advancing to the next turn
type AdvanceTurnInput struct {
}

// AdvanceTurnOutput defines the response for advancing to the next turn
type AdvanceTurnOutput struct {
	CombatantID string
	Round       int
	// NewRound is true when the turn order wrapped around
	NewRound bool
}

// EndCombatInput defines the request for ending combat
type EndCombatInput struct {
	// Reason is an opaque tag returned unchanged for the caller to
	// narrate, e.g. "enemies_defeated" or "party_fled"
	Reason string
}

// EndCombatOutput defines the response for ending combat
type EndCombatOutput struct {
	Reason string
	// DefeatedEnemies lists the enemies marked dead as combat closed.
	// The records themselves are retained in the world.
	DefeatedEnemies []string
}

// CurrentCombatantInput defines the request for the combatant whose turn it is
type CurrentCombatantInput struct {
}

// CurrentCombatantOutput defines the response for the current combatant
type CurrentCombatantOutput struct {
	CombatantID string
	Round       int
	TurnIndex   int
}

// ResolveAttackInput defines the request for resolving one attack action.
// Weapon choice is the caller's; holding the weapon is not enforced.
type ResolveAttackInput struct {
	AttackerID   string
	TargetID     string
	Weapon       string
	Advantage    bool
	Disadvantage bool
}

// ResolveAttackOutput defines the response for one resolved attack
type ResolveAttackOutput struct {
	AttackerID string
	TargetID   string
	TargetAC   int
	Attack     *dice.RollResult
	Hit        bool
	// Damage is nil when the attack missed
	Damage     *dice.RollResult
	DamageType string
	// TargetHPBefore and TargetHP bracket the damage application
	TargetHPBefore int
	TargetHP       int
	// TargetDefeated is true when this attack dropped the target to 0 hp
	TargetDefeated bool
}

// CheckEndInput defines the request for detecting a finished combat
type CheckEndInput struct {
}

// CheckEndOutput defines the response for detecting a finished combat.
// Reporting only; the caller decides whether to call EndCombat.
type CheckEndOutput struct {
	Over bool
	// Reason is "enemies_defeated" or "party_defeated" when Over, else empty
	Reason string
}

// StatusInput defines the request for a combat snapshot
type StatusInput struct {
}

// StatusOutput defines the response carrying a combat snapshot.
// Idle combat is a valid snapshot, not an error.
type StatusOutput struct {
	Active      bool
	Round       int
	CombatantID string
	// Combatants is in turn order
	Combatants []*CombatantStatus
}

// CombatantStatus is one row of a combat snapshot
type CombatantStatus struct {
	ID         string
	Name       string
	Kind       entities.Kind
	Initiative int
	HP         int
	MaxHP      int
	Conditions []string
}

// SpawnEnemiesInput defines the request for instantiating enemies from a
// content template
type SpawnEnemiesInput struct {
	// Template is a stat block; its ID names the enemy type and seeds the
	// instance ids
	Template *entities.Entity
	Count    int
}

// SpawnEnemiesOutput defines the response for spawned enemies
type SpawnEnemiesOutput struct {
	// EnemyIDs are the generated instance ids, in spawn order
	EnemyIDs []string
}
