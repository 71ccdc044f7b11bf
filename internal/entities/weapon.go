package entities

// Weapon describes an attack option: the base damage dice and the ability
// that governs both the attack roll and the damage modifier. Weapons are
// content; campaigns supply a table of them.
type Weapon struct {
	Name string `json:"name"`
	// Damage is the base dice notation without a modifier, e.g. "1d6".
	// The attacker's ability modifier is appended at resolution time.
	Damage     string  `json:"damage"`
	Ability    Ability `json:"ability"`
	DamageType string  `json:"damage_type"`
}
