package entities

// Ability names the six ability scores
type Ability string

// The six abilities
const (
	Strength     Ability = "strength"
	Dexterity    Ability = "dexterity"
	Constitution Ability = "constitution"
	Intelligence Ability = "intelligence"
	Wisdom       Ability = "wisdom"
	Charisma     Ability = "charisma"
)

// Abilities lists the six abilities in conventional order
var Abilities = []Ability{Strength, Dexterity, Constitution, Intelligence, Wisdom, Charisma}

// Stats holds the six ability scores
type Stats struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`
}

// Score returns the score for the named ability, 0 for an unknown name
func (s Stats) Score(ability Ability) int {
	switch ability {
	case Strength:
		return s.Strength
	case Dexterity:
		return s.Dexterity
	case Constitution:
		return s.Constitution
	case Intelligence:
		return s.Intelligence
	case Wisdom:
		return s.Wisdom
	case Charisma:
		return s.Charisma
	default:
		return 0
	}
}

// Modifier returns floor((score - 10) / 2). Integer division in Go
// truncates toward zero, so negative differences need the floor adjustment.
func Modifier(score int) int {
	diff := score - 10
	if diff < 0 {
		return (diff - 1) / 2
	}
	return diff / 2
}

// skillAbilities maps skill names to their governing ability
var skillAbilities = map[string]Ability{
	"athletics":       Strength,
	"acrobatics":      Dexterity,
	"sleight_of_hand": Dexterity,
	"stealth":         Dexterity,
	"arcana":          Intelligence,
	"history":         Intelligence,
	"investigation":   Intelligence,
	"nature":          Intelligence,
	"religion":        Intelligence,
	"animal_handling": Wisdom,
	"insight":         Wisdom,
	"medicine":        Wisdom,
	"perception":      Wisdom,
	"survival":        Wisdom,
	"deception":       Charisma,
	"intimidation":    Charisma,
	"performance":     Charisma,
	"persuasion":      Charisma,
}

// AbilityForSkill returns the ability governing a skill check.
// Unknown skills fall back to wisdom.
func AbilityForSkill(skill string) Ability {
	if ability, ok := skillAbilities[skill]; ok {
		return ability
	}
	return Wisdom
}
