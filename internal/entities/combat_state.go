package entities

import (
	"maps"
	"slices"
)

// CombatState is the combat substate embedded in a game document.
// The zero value is a valid idle state.
type CombatState struct {
	Active           bool                       `json:"active"`
	Round            int                        `json:"round"`
	TurnOrder        []string                   `json:"turn_order"`
	CurrentTurnIndex int                        `json:"current_turn_index"`
	Combatants       map[string]*CombatantState `json:"combatants"`
}

// CombatantState is per-combat ephemeral data, cleared when combat ends.
type CombatantState struct {
	// Initiative is the total that ordered this combatant (d20 + dex mod).
	Initiative int `json:"initiative"`
	// InitiativeRolls keeps the raw d20 face(s) behind Initiative for audit.
	InitiativeRolls []int `json:"initiative_rolls"`
}

// Clear returns the combat substate to idle. Entity records are untouched.
func (c *CombatState) Clear() {
	c.Active = false
	c.Round = 0
	c.TurnOrder = nil
	c.CurrentTurnIndex = 0
	c.Combatants = nil
}

// Clone returns a deep copy
func (c *CombatState) Clone() *CombatState {
	if c == nil {
		return nil
	}
	clone := *c
	clone.TurnOrder = slices.Clone(c.TurnOrder)
	if c.Combatants != nil {
		clone.Combatants = make(map[string]*CombatantState, len(c.Combatants))
		for id, cs := range c.Combatants {
			cc := *cs
			cc.InitiativeRolls = slices.Clone(cs.InitiativeRolls)
			clone.Combatants[id] = &cc
		}
	}
	return &clone
}

// NarrativeProgress holds the story flags gating scene transitions
type NarrativeProgress struct {
	Flags map[string]bool `json:"flags"`
}

// Flag reads a narrative flag. Flags that were never set read as false,
// the same as flags explicitly set to false.
func (n *NarrativeProgress) Flag(name string) bool {
	if n == nil {
		return false
	}
	return n.Flags[name]
}

// Clone returns a deep copy
func (n *NarrativeProgress) Clone() *NarrativeProgress {
	if n == nil {
		return nil
	}
	return &NarrativeProgress{Flags: maps.Clone(n.Flags)}
}
