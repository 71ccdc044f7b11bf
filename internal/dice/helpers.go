package dice

import (
	"fmt"
	"strings"
)

// RollInitiative rolls 1d20 plus the dexterity modifier
func (e *engine) RollInitiative(roller string, dexMod int) (*RollResult, error) {
	return e.Roll(&RollInput{
		Notation: fmt.Sprintf("1d20%+d", dexMod),
		Purpose:  PurposeInitiative,
		Roller:   roller,
	})
}

// RollAttack rolls a d20 attack roll with the given attack bonus
func (e *engine) RollAttack(roller string, attackBonus int, advantage, disadvantage bool) (*RollResult, error) {
	return e.Roll(&RollInput{
		Notation:     fmt.Sprintf("1d20%+d", attackBonus),
		Purpose:      PurposeAttack,
		Roller:       roller,
		Advantage:    advantage,
		Disadvantage: disadvantage,
	})
}

// RollDamage rolls a damage notation. On a critical hit the number of dice
// is doubled; the modifier is applied once.
func (e *engine) RollDamage(roller, notation string, critical bool) (*RollResult, error) {
	count, faces, modifier, err := parseNotation(notation)
	if err != nil {
		return nil, err
	}

	if critical {
		count *= 2
	}

	rolled := fmt.Sprintf("%dd%d", count, faces)
	if modifier != 0 {
		rolled = fmt.Sprintf("%dd%d%+d", count, faces, modifier)
	}

	return e.Roll(&RollInput{
		Notation: rolled,
		Purpose:  PurposeDamage,
		Roller:   roller,
	})
}

// RollAbilityCheck rolls a d20 ability check with the given modifier
func (e *engine) RollAbilityCheck(roller string, modifier int, advantage, disadvantage bool) (*RollResult, error) {
	return e.Roll(&RollInput{
		Notation:     fmt.Sprintf("1d20%+d", modifier),
		Purpose:      PurposeAbilityCheck,
		Roller:       roller,
		Advantage:    advantage,
		Disadvantage: disadvantage,
	})
}

// RollSavingThrow rolls a d20 saving throw with the given modifier
func (e *engine) RollSavingThrow(roller string, modifier int, advantage, disadvantage bool) (*RollResult, error) {
	return e.Roll(&RollInput{
		Notation:     fmt.Sprintf("1d20%+d", modifier),
		Purpose:      PurposeSavingThrow,
		Roller:       roller,
		Advantage:    advantage,
		Disadvantage: disadvantage,
	})
}

// CheckHit decides an attack roll against an armor class. A natural 20
// always hits and a natural 1 always misses, regardless of the total.
func CheckHit(attack *RollResult, ac int) bool {
	if attack.Critical {
		return true
	}
	if attack.Fumble {
		return false
	}
	return attack.Total >= ac
}

// CheckSuccess decides a d20 check against a difficulty class. A natural 20
// auto-succeeds and a natural 1 auto-fails; other notations compare totals.
func CheckSuccess(roll *RollResult, dc int) bool {
	if roll.Critical {
		return true
	}
	if roll.Fumble {
		return false
	}
	return roll.Total >= dc
}

// FormatResult renders a roll as a single line for narration,
// e.g. `Vex rolls 1d20+3 for initiative: [15] +3 = 18`.
func FormatResult(r *RollResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s rolls %s", r.Roller, r.Notation)
	if r.Purpose != "" {
		fmt.Fprintf(&b, " for %s", r.Purpose)
	}
	fmt.Fprintf(&b, ": %v", r.Rolls)
	if r.Modifier != 0 {
		fmt.Fprintf(&b, " %+d", r.Modifier)
	}
	fmt.Fprintf(&b, " = %d", r.Total)

	switch {
	case r.Critical:
		b.WriteString(" (CRITICAL)")
	case r.Fumble:
		b.WriteString(" (FUMBLE)")
	}
	return b.String()
}
