// Package entities defines the world model for the gamemaster engine.
// These are data structs; game rules live in the dice engine and the
// orchestrators, persistence lives in the repositories.
package entities

import (
	"slices"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// Kind discriminates the three entity collections of a game document
type Kind string

// Entity kinds
const (
	KindCharacter Kind = "character"
	KindNPC       Kind = "npc"
	KindEnemy     Kind = "enemy"
)

// Condition tags with engine-level meaning. "unconscious" tracks hp == 0
// exactly; "dead" is terminal and blocks further hp mutation.
const (
	ConditionUnconscious = "unconscious"
	ConditionDead        = "dead"
)

// Entity is the single record type shared by characters, NPCs, and enemies.
// Which collection an entity lives in is carried by Kind, not by the type.
type Entity struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Kind       Kind     `json:"kind"`
	HP         int      `json:"hp"`
	MaxHP      int      `json:"max_hp"`
	AC         int      `json:"ac"`
	Stats      Stats    `json:"stats"`
	Conditions []string `json:"conditions"`
	Inventory  []string `json:"inventory"`
}

// GetID returns the entity's ID
func (e *Entity) GetID() string {
	return e.ID
}

// GetType returns the entity kind for rpg-toolkit
func (e *Entity) GetType() string {
	return string(e.Kind)
}

// HasCondition reports whether the tag is present
func (e *Entity) HasCondition(tag string) bool {
	return slices.Contains(e.Conditions, tag)
}

// AddCondition adds the tag if absent
func (e *Entity) AddCondition(tag string) {
	if !e.HasCondition(tag) {
		e.Conditions = append(e.Conditions, tag)
	}
}

// RemoveCondition removes the tag, preserving the order of the rest
func (e *Entity) RemoveCondition(tag string) {
	e.Conditions = slices.DeleteFunc(e.Conditions, func(c string) bool {
		return c == tag
	})
}

// IsDead reports whether the terminal "dead" tag is present
func (e *Entity) IsDead() bool {
	return e.HasCondition(ConditionDead)
}

// IsConscious reports whether the entity has hit points left
func (e *Entity) IsConscious() bool {
	return e.HP > 0
}

// ApplyHPDelta clamps hp+delta to [0, max_hp] and keeps the "unconscious"
// tag consistent: present exactly when the new hp is 0. Returns the new hp.
// Callers must check IsDead first; the tag is terminal.
func (e *Entity) ApplyHPDelta(delta int) int {
	newHP := e.HP + delta
	if newHP < 0 {
		newHP = 0
	}
	if newHP > e.MaxHP {
		newHP = e.MaxHP
	}
	e.HP = newHP

	if newHP == 0 {
		e.AddCondition(ConditionUnconscious)
	} else {
		e.RemoveCondition(ConditionUnconscious)
	}
	return newHP
}

// AbilityModifier returns the modifier for one of the entity's abilities
func (e *Entity) AbilityModifier(ability Ability) int {
	return Modifier(e.Stats.Score(ability))
}

// Clone returns a deep copy
func (e *Entity) Clone() *Entity {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Conditions = slices.Clone(e.Conditions)
	clone.Inventory = slices.Clone(e.Inventory)
	return &clone
}

// Compile-time check that Entity satisfies the toolkit entity interface
var _ core.Entity = (*Entity)(nil)
