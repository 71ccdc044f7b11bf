// Package dice implements the dice-resolution engine: notation parsing,
// randomized rolls, advantage/disadvantage, and critical/fumble detection.
// The engine is stateless; the only side effect of a roll is consuming
// entropy from the injected source.
package dice

//go:generate mockgen -destination=mock/mock_service.go -package=dicemock github.com/KirkDiggler/gamemaster/internal/dice Service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/gamemaster/internal/errors"
)

// Regex for dice notation like "2d6", "1d20+5", "4d8-1"
var notationRegex = regexp.MustCompile(`^(\d+)d(\d+)([+-]\d+)?$`)

// Service defines the dice engine operations
type Service interface {
	// Roll resolves one dice notation
	Roll(input *RollInput) (*RollResult, error)

	// Derived rolls used by combat and scene checks
	RollInitiative(roller string, dexMod int) (*RollResult, error)
	RollAttack(roller string, attackBonus int, advantage, disadvantage bool) (*RollResult, error)
	RollDamage(roller, notation string, critical bool) (*RollResult, error)
	RollAbilityCheck(roller string, modifier int, advantage, disadvantage bool) (*RollResult, error)
	RollSavingThrow(roller string, modifier int, advantage, disadvantage bool) (*RollResult, error)
}

// Config holds the dependencies for the dice engine
type Config struct {
	// Source supplies the raw die faces. dice.DefaultRoller in production,
	// a seeded or scripted source in tests.
	Source dice.Roller
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.Source == nil {
		return errors.InvalidArgument("entropy source is required")
	}
	return nil
}

type engine struct {
	source dice.Roller
}

// New creates a dice engine with the provided dependencies
func New(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &engine{
		source: cfg.Source,
	}, nil
}

// parseNotation parses "<count>d<faces>[+/-modifier]" into its parts
func parseNotation(notation string) (count, faces, modifier int, err error) {
	cleaned := strings.ToLower(strings.TrimSpace(notation))
	matches := notationRegex.FindStringSubmatch(cleaned)
	if matches == nil {
		return 0, 0, 0, errors.InvalidNotationf(
			"invalid dice notation: %q (expected format: NdM with optional +/-K)", notation)
	}

	count, err = strconv.Atoi(matches[1])
	if err != nil {
		return 0, 0, 0, errors.InvalidNotationf("invalid dice count in notation: %q", notation)
	}

	faces, err = strconv.Atoi(matches[2])
	if err != nil {
		return 0, 0, 0, errors.InvalidNotationf("invalid die faces in notation: %q", notation)
	}

	if matches[3] != "" {
		modifier, err = strconv.Atoi(matches[3])
		if err != nil {
			return 0, 0, 0, errors.InvalidNotationf("invalid modifier in notation: %q", notation)
		}
	}

	if count < 1 || faces < 1 {
		return 0, 0, 0, errors.InvalidNotationf(
			"dice count and faces must be at least 1: %q", notation)
	}

	return count, faces, modifier, nil
}

// Roll resolves one dice notation.
//
// Advantage/disadvantage apply only to a single-d20 notation: two d20s are
// rolled and the max (advantage) or min (disadvantage) is kept. Setting both
// flags cancels to a plain roll; setting either on any other notation leaves
// the roll unchanged. Rolls in the result always contain every die rolled.
func (e *engine) Roll(input *RollInput) (*RollResult, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Notation == "" {
		return nil, errors.InvalidNotation("dice notation is required")
	}

	count, faces, modifier, err := parseNotation(input.Notation)
	if err != nil {
		return nil, err
	}

	isD20Check := count == 1 && faces == 20
	useAdvantage := isD20Check && input.Advantage && !input.Disadvantage
	useDisadvantage := isD20Check && input.Disadvantage && !input.Advantage

	var rolls []int
	var kept int
	switch {
	case useAdvantage, useDisadvantage:
		rolls, err = e.source.RollN(2, faces)
		if err != nil {
			return nil, errors.Wrap(err, "failed to roll dice")
		}
		if len(rolls) != 2 {
			return nil, errors.Internalf("entropy source returned %d dice, wanted 2", len(rolls))
		}
		kept = rolls[0]
		if useAdvantage && rolls[1] > kept {
			kept = rolls[1]
		}
		if useDisadvantage && rolls[1] < kept {
			kept = rolls[1]
		}
	default:
		rolls, err = e.source.RollN(count, faces)
		if err != nil {
			return nil, errors.Wrap(err, "failed to roll dice")
		}
		if len(rolls) != count {
			return nil, errors.Internalf("entropy source returned %d dice, wanted %d", len(rolls), count)
		}
	}

	total := modifier
	if useAdvantage || useDisadvantage {
		total += kept
	} else {
		for _, r := range rolls {
			total += r
		}
		if isD20Check {
			kept = rolls[0]
		}
	}

	return &RollResult{
		Notation:      strings.ToLower(strings.TrimSpace(input.Notation)),
		Rolls:         rolls,
		Modifier:      modifier,
		Total:         total,
		Purpose:       input.Purpose,
		Roller:        input.Roller,
		AdvantageUsed: useAdvantage || useDisadvantage,
		Critical:      isD20Check && kept == 20,
		Fumble:        isD20Check && kept == 1,
	}, nil
}
