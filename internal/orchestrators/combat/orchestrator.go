// Package combat implements the combat scheduler: initiative order, turn
// advancement, attack resolution, and the combat lifecycle. All state lives
// in the world-state store; this orchestrator reads snapshots and writes
// back through the store's typed operations, so every mutation it makes is
// revalidated the same way as any other write.
package combat

//go:generate mockgen -destination=mock/mock_service.go -package=combatmock github.com/KirkDiggler/gamemaster/internal/orchestrators/combat Service

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/gamemaster/internal/dice"
	"github.com/KirkDiggler/gamemaster/internal/entities"
	"github.com/KirkDiggler/gamemaster/internal/errors"
	"github.com/KirkDiggler/gamemaster/internal/orchestrators/world"
	"github.com/KirkDiggler/gamemaster/internal/pkg/idgen"
)

// Flat proficiency bonus folded into attack rolls, sized for a low-level
// party. Levels and per-entity proficiency are not modeled.
const proficiencyBonus = 2

// Service defines the interface for combat operations
type Service interface {
	// StartCombat rolls initiative for the given entities and opens combat.
	// Fails with InvalidState when combat is already active.
	StartCombat(ctx context.Context, input *StartCombatInput) (*StartCombatOutput, error)

	// AdvanceTurn moves to the next combatant, wrapping into a new round
	// after the last one. Incapacitated combatants are not skipped; a
	// caller that wants to pass their turn calls AdvanceTurn again.
	AdvanceTurn(ctx context.Context, input *AdvanceTurnInput) (*AdvanceTurnOutput, error)

	// EndCombat closes combat and returns the supplied reason unchanged.
	// Defeated enemies are marked dead and retained, never deleted.
	EndCombat(ctx context.Context, input *EndCombatInput) (*EndCombatOutput, error)

	// CurrentCombatant reports whose turn it is
	CurrentCombatant(ctx context.Context, input *CurrentCombatantInput) (*CurrentCombatantOutput, error)

	// ResolveAttack rolls one attack against a target's AC and applies
	// damage on a hit. It works in and out of combat.
	ResolveAttack(ctx context.Context, input *ResolveAttackInput) (*ResolveAttackOutput, error)

	// CheckEnd reports whether one side of the active combat is down.
	// It never ends combat itself.
	CheckEnd(ctx context.Context, input *CheckEndInput) (*CheckEndOutput, error)

	// Status returns a snapshot of the combat block with each combatant's
	// vitals. Idle combat is a valid snapshot, not an error.
	Status(ctx context.Context, input *StatusInput) (*StatusOutput, error)

	// SpawnEnemies instantiates a content template into the world with
	// generated instance ids
	SpawnEnemies(ctx context.Context, input *SpawnEnemiesInput) (*SpawnEnemiesOutput, error)
}

// Config holds the dependencies for the combat orchestrator
type Config struct {
	World    world.Service
	Dice     dice.Service
	EventBus events.EventBus
	IDGen    idgen.Generator

	// Weapons is the campaign weapons table, keyed by weapon name
	Weapons map[string]*entities.Weapon
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.World == nil {
		return errors.InvalidArgument("world service is required")
	}
	if c.Dice == nil {
		return errors.InvalidArgument("dice engine is required")
	}
	if c.EventBus == nil {
		return errors.InvalidArgument("event bus is required")
	}
	if c.IDGen == nil {
		return errors.InvalidArgument("id generator is required")
	}
	if len(c.Weapons) == 0 {
		return errors.InvalidArgument("weapons table is required")
	}
	return nil
}

// Orchestrator implements the combat Service
type Orchestrator struct {
	world    world.Service
	dice     dice.Service
	eventBus events.EventBus
	idGen    idgen.Generator
	weapons  map[string]*entities.Weapon
}

// New creates a new combat orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Orchestrator{
		world:    cfg.World,
		dice:     cfg.Dice,
		eventBus: cfg.EventBus,
		idGen:    cfg.IDGen,
		weapons:  cfg.Weapons,
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ Service = (*Orchestrator)(nil)

// snapshot reads the current world document
func (o *Orchestrator) snapshot(ctx context.Context) (*entities.WorldState, error) {
	out, err := o.world.GetState(ctx, &world.GetStateInput{})
	if err != nil {
		return nil, err
	}
	return out.State, nil
}

// rolledInitiative pairs a combatant with its initiative roll for ordering
type rolledInitiative struct {
	id       string
	total    int
	dexScore int
	rolls    []int
}

// StartCombat rolls 1d20 plus dexterity modifier for every combatant and
// writes the resulting turn order
func (o *Orchestrator) StartCombat(ctx context.Context, input *StartCombatInput) (*StartCombatOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if len(input.CombatantIDs) == 0 {
		return nil, errors.InvalidArgument("at least one combatant is required")
	}

	state, err := o.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if state.Combat.Active {
		return nil, errors.InvalidState("combat is already active")
	}

	seen := make(map[string]bool, len(input.CombatantIDs))
	rolled := make([]*rolledInitiative, 0, len(input.CombatantIDs))
	rolls := make([]*dice.RollResult, 0, len(input.CombatantIDs))
	for _, id := range input.CombatantIDs {
		if seen[id] {
			return nil, errors.InvalidArgumentf("combatant %q supplied twice", id)
		}
		seen[id] = true

		entity, ok := state.FindEntity(id)
		if !ok {
			return nil, errors.NotFoundf("combatant %q not found", id)
		}

		result, err := o.dice.RollInitiative(id, entities.Modifier(entity.Stats.Dexterity))
		if err != nil {
			return nil, err
		}
		rolls = append(rolls, result)
		rolled = append(rolled, &rolledInitiative{
			id:       id,
			total:    result.Total,
			dexScore: entity.Stats.Dexterity,
			rolls:    result.Rolls,
		})
	}

	// Descending initiative total; ties break by descending dexterity
	// score, then by the order the ids were supplied.
	slices.SortStableFunc(rolled, func(a, b *rolledInitiative) int {
		if c := cmp.Compare(b.total, a.total); c != 0 {
			return c
		}
		return cmp.Compare(b.dexScore, a.dexScore)
	})

	combatState := &entities.CombatState{
		Active:     true,
		Round:      1,
		TurnOrder:  make([]string, 0, len(rolled)),
		Combatants: make(map[string]*entities.CombatantState, len(rolled)),
	}
	for _, r := range rolled {
		combatState.TurnOrder = append(combatState.TurnOrder, r.id)
		combatState.Combatants[r.id] = &entities.CombatantState{
			Initiative:      r.total,
			InitiativeRolls: r.rolls,
		}
	}

	if _, err := o.world.UpdateCombat(ctx, &world.UpdateCombatInput{Combat: combatState}); err != nil {
		return nil, err
	}

	slog.Info("Combat started",
		"round", 1,
		"turn_order", combatState.TurnOrder,
	)

	return &StartCombatOutput{
		Combat:          combatState,
		InitiativeRolls: rolls,
	}, nil
}

// AdvanceTurn moves to the next combatant in the turn order
func (o *Orchestrator) AdvanceTurn(ctx context.Context, input *AdvanceTurnInput) (*AdvanceTurnOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	state, err := o.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if !state.Combat.Active {
		return nil, errors.InvalidState("no combat in progress")
	}

	updated := state.Combat.Clone()
	updated.CurrentTurnIndex++
	newRound := false
	if updated.CurrentTurnIndex >= len(updated.TurnOrder) {
		updated.CurrentTurnIndex = 0
		updated.Round++
		newRound = true
	}

	if _, err := o.world.UpdateCombat(ctx, &world.UpdateCombatInput{Combat: updated}); err != nil {
		return nil, err
	}

	combatantID := updated.TurnOrder[updated.CurrentTurnIndex]
	slog.Info("Turn advanced",
		"combatant_id", combatantID,
		"round", updated.Round,
		"new_round", newRound,
	)

	return &AdvanceTurnOutput{
		CombatantID: combatantID,
		Round:       updated.Round,
		NewRound:    newRound,
	}, nil
}

// EndCombat clears the combat block. Enemies in the turn order that are
// down at this point are marked dead; their records stay in the world.
func (o *Orchestrator) EndCombat(ctx context.Context, input *EndCombatInput) (*EndCombatOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	state, err := o.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if !state.Combat.Active {
		return nil, errors.InvalidState("no combat in progress")
	}

	var defeated []string
	for _, id := range state.Combat.TurnOrder {
		enemy, ok := state.Enemies[id]
		if !ok || enemy.IsDead() || enemy.IsConscious() {
			continue
		}
		conditions := append(slices.Clone(enemy.Conditions), entities.ConditionDead)
		path := fmt.Sprintf("enemies.%s.conditions", id)
		if _, err := o.world.SetValue(ctx, &world.SetValueInput{Path: path, Value: conditions}); err != nil {
			return nil, err
		}
		defeated = append(defeated, id)
	}

	// The zero value is the idle combat block
	if _, err := o.world.UpdateCombat(ctx, &world.UpdateCombatInput{Combat: &entities.CombatState{}}); err != nil {
		return nil, err
	}

	slog.Info("Combat ended",
		"reason", input.Reason,
		"defeated_enemies", defeated,
	)

	return &EndCombatOutput{
		Reason:          input.Reason,
		DefeatedEnemies: defeated,
	}, nil
}

// CurrentCombatant reports whose turn it is
func (o *Orchestrator) CurrentCombatant(ctx context.Context, input *CurrentCombatantInput) (*CurrentCombatantOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	state, err := o.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	combat := state.Combat
	if !combat.Active {
		return nil, errors.InvalidState("no combat in progress")
	}

	return &CurrentCombatantOutput{
		CombatantID: combat.TurnOrder[combat.CurrentTurnIndex],
		Round:       combat.Round,
		TurnIndex:   combat.CurrentTurnIndex,
	}, nil
}

// ResolveAttack rolls an attack against the target's AC and applies damage
// through the world store on a hit
func (o *Orchestrator) ResolveAttack(ctx context.Context, input *ResolveAttackInput) (*ResolveAttackOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.AttackerID == "" {
		return nil, errors.InvalidArgument("attacker ID is required")
	}
	if input.TargetID == "" {
		return nil, errors.InvalidArgument("target ID is required")
	}
	if input.Weapon == "" {
		return nil, errors.InvalidArgument("weapon is required")
	}

	weapon, ok := o.weapons[input.Weapon]
	if !ok {
		return nil, errors.NotFoundf("unknown weapon %q", input.Weapon)
	}

	state, err := o.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	attacker, ok := state.FindEntity(input.AttackerID)
	if !ok {
		return nil, errors.NotFoundf("attacker %q not found", input.AttackerID)
	}
	target, ok := state.FindEntity(input.TargetID)
	if !ok {
		return nil, errors.NotFoundf("target %q not found", input.TargetID)
	}
	if target.IsDead() {
		return nil, errors.InvalidStatef("target %s is dead", input.TargetID)
	}

	abilityMod := entities.Modifier(attacker.Stats.Score(weapon.Ability))
	attack, err := o.dice.RollAttack(input.AttackerID, abilityMod+proficiencyBonus, input.Advantage, input.Disadvantage)
	if err != nil {
		return nil, err
	}

	out := &ResolveAttackOutput{
		AttackerID:     input.AttackerID,
		TargetID:       input.TargetID,
		TargetAC:       target.AC,
		Attack:         attack,
		Hit:            dice.CheckHit(attack, target.AC),
		DamageType:     weapon.DamageType,
		TargetHPBefore: target.HP,
		TargetHP:       target.HP,
	}
	if !out.Hit {
		slog.Info("Attack missed",
			"attacker_id", input.AttackerID,
			"target_id", input.TargetID,
			"attack_total", attack.Total,
			"target_ac", target.AC,
		)
		return out, nil
	}

	damage, err := o.dice.RollDamage(input.AttackerID, buildNotation(weapon.Damage, abilityMod), attack.Critical)
	if err != nil {
		return nil, err
	}
	out.Damage = damage

	// A negative total (penalty outweighing the dice) deals nothing
	// rather than healing the target
	delta := -damage.Total
	if delta > 0 {
		delta = 0
	}

	hpOut, err := o.world.UpdateHP(ctx, &world.UpdateHPInput{
		EntityID: input.TargetID,
		Delta:    delta,
	})
	if err != nil {
		return nil, err
	}
	out.TargetHP = hpOut.HP
	out.TargetDefeated = hpOut.HP == 0

	slog.Info("Attack hit",
		"attacker_id", input.AttackerID,
		"target_id", input.TargetID,
		"critical", attack.Critical,
		"damage", damage.Total,
		"target_hp", hpOut.HP,
	)
	return out, nil
}

// CheckEnd reports whether every enemy, or every character, in the turn
// order is down. NPCs in the order count for neither side.
func (o *Orchestrator) CheckEnd(ctx context.Context, input *CheckEndInput) (*CheckEndOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	state, err := o.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if !state.Combat.Active {
		return nil, errors.InvalidState("no combat in progress")
	}

	var enemies, enemiesDown, party, partyDown int
	for _, id := range state.Combat.TurnOrder {
		entity, ok := state.FindEntity(id)
		if !ok {
			continue
		}
		down := !entity.IsConscious() || entity.IsDead()
		switch entity.Kind {
		case entities.KindEnemy:
			enemies++
			if down {
				enemiesDown++
			}
		case entities.KindCharacter:
			party++
			if down {
				partyDown++
			}
		}
	}

	if enemies > 0 && enemiesDown == enemies {
		return &CheckEndOutput{Over: true, Reason: EndReasonEnemiesDefeated}, nil
	}
	if party > 0 && partyDown == party {
		return &CheckEndOutput{Over: true, Reason: EndReasonPartyDefeated}, nil
	}
	return &CheckEndOutput{}, nil
}

// Status returns a snapshot of the combat block
func (o *Orchestrator) Status(ctx context.Context, input *StatusInput) (*StatusOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	state, err := o.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	combat := state.Combat

	out := &StatusOutput{
		Active: combat.Active,
		Round:  combat.Round,
	}
	if !combat.Active {
		return out, nil
	}

	out.CombatantID = combat.TurnOrder[combat.CurrentTurnIndex]
	out.Combatants = make([]*CombatantStatus, 0, len(combat.TurnOrder))
	for _, id := range combat.TurnOrder {
		entity, ok := state.FindEntity(id)
		if !ok {
			continue
		}
		row := &CombatantStatus{
			ID:         id,
			Name:       entity.Name,
			Kind:       entity.Kind,
			HP:         entity.HP,
			MaxHP:      entity.MaxHP,
			Conditions: slices.Clone(entity.Conditions),
		}
		if cs, ok := combat.Combatants[id]; ok {
			row.Initiative = cs.Initiative
		}
		out.Combatants = append(out.Combatants, row)
	}
	return out, nil
}

// SpawnEnemies clones a content template into the world Count times,
// assigning generated instance ids
func (o *Orchestrator) SpawnEnemies(ctx context.Context, input *SpawnEnemiesInput) (*SpawnEnemiesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Template == nil {
		return nil, errors.InvalidArgument("template is required")
	}
	if input.Template.ID == "" {
		return nil, errors.InvalidArgument("template ID is required")
	}
	if input.Count < 1 {
		return nil, errors.InvalidArgument("count must be at least 1")
	}

	ids := make([]string, 0, input.Count)
	for i := 0; i < input.Count; i++ {
		enemy := input.Template.Clone()
		enemy.ID = fmt.Sprintf("%s_%s", input.Template.ID, o.idGen.Generate())
		enemy.Name = fmt.Sprintf("%s (%d)", input.Template.Name, i+1)
		enemy.Kind = entities.KindEnemy

		if _, err := o.world.AddEntity(ctx, &world.AddEntityInput{Entity: enemy}); err != nil {
			return nil, err
		}
		ids = append(ids, enemy.ID)
	}

	slog.Info("Enemies spawned",
		"template_id", input.Template.ID,
		"enemy_ids", ids,
	)

	return &SpawnEnemiesOutput{EnemyIDs: ids}, nil
}

// buildNotation appends an ability modifier to a base damage notation
func buildNotation(base string, modifier int) string {
	if modifier < 0 {
		return fmt.Sprintf("%s%d", base, modifier)
	}
	return fmt.Sprintf("%s+%d", base, modifier)
}
