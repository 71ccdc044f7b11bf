package dice

// Roll purposes used by the derived-roll helpers. Purpose is free text;
// these are the values the engine itself produces.
const (
	PurposeInitiative   = "initiative"
	PurposeAttack       = "attack"
	PurposeDamage       = "damage"
	PurposeAbilityCheck = "ability_check"
	PurposeSavingThrow  = "saving_throw"
)

// RollInput describes one requested roll
type RollInput struct {
	// Notation is <count>d<faces> with an optional +/- modifier, e.g. "2d6+3"
	Notation string
	// Purpose labels what the roll decides, e.g. "initiative"
	Purpose string
	// Roller identifies the acting entity
	Roller string
	// Advantage and Disadvantage request the d20 double-roll mechanic.
	// Both set cancels; either is a no-op unless the notation is one d20.
	Advantage    bool
	Disadvantage bool
}

// RollResult is the structured outcome of a roll.
type RollResult struct {
	Notation string `json:"notation"`
	// Rolls holds every die actually rolled, in roll order, including the
	// discarded die of an advantage/disadvantage pair.
	Rolls    []int  `json:"rolls"`
	Modifier int    `json:"modifier"`
	Total    int    `json:"total"`
	Purpose  string `json:"purpose"`
	Roller   string `json:"roller"`
	// AdvantageUsed is true only when a second d20 was rolled and the
	// max/min rule decided the result.
	AdvantageUsed bool `json:"advantage_used"`
	// Critical and Fumble report a natural 20 / natural 1 on the kept die
	// of a single-d20 roll. Never true for any other notation.
	Critical bool `json:"critical"`
	Fumble   bool `json:"fumble"`
}
