// Package content carries the Lost Mines starting campaign: the default
// party and NPCs, chapter one's enemy templates and scene table, and the
// weapons table attacks resolve against. Content is data, not rules; the
// engines import only entity and scene types, never this package.
package content

import (
	"github.com/KirkDiggler/gamemaster/internal/entities"
	"github.com/KirkDiggler/gamemaster/internal/scenes"
)

// DefaultGameID names the game a fresh install starts.
const DefaultGameID = "lost-mines-001"

// DefaultChapter is the chapter a fresh game opens in.
const DefaultChapter = "chapter_1"

// Scene ids for chapter one.
const (
	SceneIntro           = "intro"
	SceneGoblinAmbush    = "goblin_ambush"
	SceneAfterAmbush     = "after_ambush"
	SceneGoblinTrail     = "goblin_trail"
	SceneHideoutEntrance = "hideout_entrance"
	SceneWolfKennel      = "wolf_kennel"
	SceneKlargChamber    = "klarg_chamber"
	SceneSildarRescue    = "sildar_rescue"
	ScenePartyCaptured   = "party_captured"
)

// Narrative flags chapter one turns on. The table runner sets these as
// beats resolve; the scene table reads them to decide transitions.
const (
	FlagAmbushTriggered  = "ambush_triggered"
	FlagGoblinsDefeated  = "goblins_defeated"
	FlagGoblinTrailFound = "goblin_trail_found"
	FlagHideoutEntered   = "hideout_entered"
	FlagKennelEntered    = "kennel_entered"
	FlagWolvesDefeated   = "wolves_defeated"
	FlagKlargDefeated    = "klarg_defeated"
	FlagSildarRescued    = "sildar_rescued"
	FlagPartyCaptured    = "party_captured"
)

// ConditionCaptured marks an NPC held prisoner. Unlike "unconscious" and
// "dead" it has no engine meaning; the runner clears it on a rescue.
const ConditionCaptured = "captured"

// Weapons returns the weapons table by weapon id. Damage is the base dice
// only; the attacker's ability modifier is added at resolution time.
// A fresh map on every call, callers own what they get.
func Weapons() map[string]*entities.Weapon {
	return map[string]*entities.Weapon{
		"longsword":    {Name: "Longsword", Damage: "1d8", Ability: entities.Strength, DamageType: "slashing"},
		"shortsword":   {Name: "Shortsword", Damage: "1d6", Ability: entities.Dexterity, DamageType: "piercing"},
		"shortbow":     {Name: "Shortbow", Damage: "1d6", Ability: entities.Dexterity, DamageType: "piercing"},
		"mace":         {Name: "Mace", Damage: "1d6", Ability: entities.Strength, DamageType: "bludgeoning"},
		"scimitar":     {Name: "Scimitar", Damage: "1d6", Ability: entities.Dexterity, DamageType: "slashing"},
		"dagger":       {Name: "Dagger", Damage: "1d4", Ability: entities.Dexterity, DamageType: "piercing"},
		"handaxe":      {Name: "Handaxe", Damage: "1d6", Ability: entities.Strength, DamageType: "slashing"},
		"javelin":      {Name: "Javelin", Damage: "1d6", Ability: entities.Strength, DamageType: "piercing"},
		"sacred_flame": {Name: "Sacred Flame", Damage: "1d8", Ability: entities.Wisdom, DamageType: "radiant"},
		"bite":         {Name: "Bite", Damage: "2d4", Ability: entities.Strength, DamageType: "piercing"},
		"morningstar":  {Name: "Morningstar", Damage: "2d8", Ability: entities.Strength, DamageType: "bludgeoning"},
	}
}

// Party returns the three starting characters keyed by entity id.
func Party() map[string]*entities.Entity {
	return map[string]*entities.Entity{
		"vex": {
			ID: "vex", Name: "Vex", Kind: entities.KindCharacter,
			HP: 9, MaxHP: 9, AC: 14,
			Stats: entities.Stats{
				Strength: 8, Dexterity: 17, Constitution: 12,
				Intelligence: 13, Wisdom: 12, Charisma: 14,
			},
			Inventory: []string{
				"shortsword", "shortbow", "quiver (20 arrows)", "leather armor",
				"dagger", "dagger", "thieves' tools", "burglar's pack",
			},
		},
		"thokk": {
			ID: "thokk", Name: "Thokk", Kind: entities.KindCharacter,
			HP: 12, MaxHP: 12, AC: 16,
			Stats: entities.Stats{
				Strength: 16, Dexterity: 14, Constitution: 14,
				Intelligence: 8, Wisdom: 12, Charisma: 10,
			},
			Inventory: []string{
				"longsword", "shield", "chain mail", "handaxe", "handaxe",
				"explorer's pack",
			},
		},
		"lira": {
			ID: "lira", Name: "Lira", Kind: entities.KindCharacter,
			HP: 10, MaxHP: 10, AC: 16,
			Stats: entities.Stats{
				Strength: 14, Dexterity: 10, Constitution: 12,
				Intelligence: 10, Wisdom: 16, Charisma: 12,
			},
			Inventory: []string{
				"mace", "shield", "scale mail", "holy symbol", "priest's pack",
			},
		},
	}
}

// NPCs returns the story NPCs keyed by entity id. Both start captured;
// Gundren is held at Cragmaw Castle, Sildar at the hideout.
func NPCs() map[string]*entities.Entity {
	return map[string]*entities.Entity{
		"gundren": {
			ID: "gundren", Name: "Gundren Rockseeker", Kind: entities.KindNPC,
			HP: 10, MaxHP: 10, AC: 10,
			Stats: entities.Stats{
				Strength: 12, Dexterity: 10, Constitution: 12,
				Intelligence: 14, Wisdom: 12, Charisma: 12,
			},
			Conditions: []string{ConditionCaptured},
		},
		"sildar": {
			ID: "sildar", Name: "Sildar Hallwinter", Kind: entities.KindNPC,
			HP: 12, MaxHP: 12, AC: 11,
			Stats: entities.Stats{
				Strength: 13, Dexterity: 10, Constitution: 12,
				Intelligence: 10, Wisdom: 11, Charisma: 12,
			},
			Conditions: []string{ConditionCaptured},
		},
	}
}

// Templates returns chapter one's enemy stat blocks keyed by template id.
// Spawning clones a template and rewrites its id, so templates are never
// placed in a document directly. Scores are chosen so ability modifier
// plus proficiency reproduces each creature's printed +4 attack bonus.
func Templates() map[string]*entities.Entity {
	return map[string]*entities.Entity{
		"goblin": {
			ID: "goblin", Name: "Goblin", Kind: entities.KindEnemy,
			HP: 7, MaxHP: 7, AC: 15,
			Stats: entities.Stats{
				Strength: 8, Dexterity: 14, Constitution: 10,
				Intelligence: 10, Wisdom: 8, Charisma: 8,
			},
			Inventory: []string{"scimitar", "shortbow"},
		},
		"wolf": {
			ID: "wolf", Name: "Wolf", Kind: entities.KindEnemy,
			HP: 11, MaxHP: 11, AC: 13,
			Stats: entities.Stats{
				Strength: 14, Dexterity: 15, Constitution: 12,
				Intelligence: 3, Wisdom: 12, Charisma: 6,
			},
			Inventory: []string{"bite"},
		},
		"klarg": {
			ID: "klarg", Name: "Klarg", Kind: entities.KindEnemy,
			HP: 27, MaxHP: 27, AC: 16,
			Stats: entities.Stats{
				Strength: 15, Dexterity: 14, Constitution: 13,
				Intelligence: 8, Wisdom: 11, Charisma: 9,
			},
			Inventory: []string{"morningstar", "javelin"},
		},
	}
}

// ChapterOneScenes returns the scene table for chapter one. Defeat paths
// are not flag transitions; the runner writes current_scene directly to
// reach party_captured, and back out of it on an escape.
func ChapterOneScenes() scenes.Table {
	return scenes.Table{
		SceneIntro: {
			Name: "The Road to Phandalin",
			Description: `The party has been traveling for about half a day along the High Road south from Neverwinter before turning east onto the Triboar Trail. The wagon of mining supplies rattles along the rutted path, wheels creaking with each bump.

Around midday, the trail bends around a thicket of dense trees. As you round the corner, you spot something alarming ahead: two dead horses sprawled across the road, their bodies blocking the way forward. Black-feathered arrows protrude from their flanks, and flies buzz lazily around the carcasses.

The horses look like they've been dead for about a day. The empty saddlebags have been torn open and looted.`,
			Triggers: map[string]*scenes.Trigger{
				"investigate_horses": {
					Skill: "investigation", DC: 10,
					SuccessText: "You recognize these horses - they match the description Gundren gave of his and Sildar's mounts. Whatever happened here, it happened to your employers.",
					FailText:    "The horses are clearly dead, killed by arrows, but you can't determine much more than that.",
				},
				"search_area": {
					Skill: "perception", DC: 10,
					SuccessText: "You notice subtle movement in the underbrush about 30 feet off the road. Something - or several somethings - are hiding in the forest on both sides of the trail.",
					FailText:    "The forest seems quiet. Perhaps too quiet...",
				},
				"find_trail": {
					Skill: "survival", DC: 10,
					SuccessText: "You spot a trail leading north into the forest - a mix of goblin footprints and drag marks, as if something heavy was hauled this way.",
					FailText:    "The ground is too disturbed by the ambush to make out any clear trail.",
				},
			},
			CompletionTriggers: []string{FlagAmbushTriggered},
			NextScene:          SceneGoblinAmbush,
		},

		SceneGoblinAmbush: {
			Name: "Goblin Ambush!",
			Description: `Arrows whistle from the treeline! Cackling voices cry out in Goblin as four small, ugly humanoids burst from the underbrush, scimitars raised!

The goblins wear crude leather armor and have yellowish-green skin. Their eyes gleam with malicious cunning as they attack!`,
			Combat:             true,
			Enemies:            []string{"goblin", "goblin", "goblin", "goblin"},
			RequiredFlags:      []string{FlagAmbushTriggered},
			CompletionTriggers: []string{FlagGoblinsDefeated},
			NextScene:          SceneAfterAmbush,
		},

		SceneAfterAmbush: {
			Name: "After the Ambush",
			Description: `The last goblin falls, and silence returns to the forest - broken only by the chirping of birds and the rustle of leaves.

The goblin bodies carry little of value: a few copper pieces, crude weapons, and... you notice one of them has a leather pouch containing a small amount of gold (15 gp total) and what appears to be a crude map drawn on bark.

Looking around, you can see the underbrush is trampled in one direction - a clear trail leading north into the forest. The drag marks you noticed earlier head in the same direction.`,
			Triggers: map[string]*scenes.Trigger{
				"search_bodies": {
					Skill: "investigation", DC: 12,
					SuccessText: "Among the goblin belongings, you find a crude map scratched on bark showing a cave entrance with goblin drawings. One goblin has a leather pouch that looks human-made - inside is 15 gold pieces. This pouch likely belonged to one of the ambush victims.",
					FailText:    "You find a few copper pieces and crude weapons, nothing of particular interest.",
				},
				"find_trail": {
					Skill: "survival", DC: 10,
					SuccessText: "The trail is easy to follow now - goblin footprints and drag marks lead north into the forest. Someone, or something, was dragged this way. The trail looks like it's been used regularly.",
					FailText:    "The forest floor is disturbed, but you can't quite make out a clear path.",
				},
				"check_wagon": {
					SuccessText: "The wagon is intact and undamaged. Whatever the goblins wanted, it wasn't the mining supplies.",
				},
			},
			RequiredFlags:      []string{FlagGoblinsDefeated},
			CompletionTriggers: []string{FlagGoblinTrailFound},
			NextScene:          SceneGoblinTrail,
		},

		SceneGoblinTrail: {
			Name: "Following the Trail",
			Description: `The trail winds through dense forest, following a stream that trickles through the underbrush. After about two hours of careful travel, the trees begin to thin and you spot a large cave entrance in a hillside ahead.

A stream flows out of the cave mouth, which is about 15 feet wide and 10 feet high. Dense undergrowth conceals the area, but you can make out what appears to be a well-worn path leading inside.

As you watch, you notice two goblins stationed near the cave entrance, poorly hidden behind some bushes. They seem bored and inattentive.`,
			Combat:  true,
			Enemies: []string{"goblin", "goblin"},
			Triggers: map[string]*scenes.Trigger{
				"stealth_approach": {
					Skill: "stealth", DC: 9,
					SuccessText: "You move silently through the underbrush, getting within striking distance of the goblin sentries without being noticed.",
					FailText:    "A twig snaps underfoot! The goblins' heads whip toward the sound.",
				},
				"scout_ahead": {
					Skill: "perception", DC: 12,
					SuccessText: "You spot additional details: the cave entrance has a small pool of water just inside, and you can hear the distant sound of wolves howling from within.",
					FailText:    "You can't make out much more detail from this distance.",
				},
			},
			RequiredFlags:      []string{FlagGoblinTrailFound},
			CompletionTriggers: []string{FlagHideoutEntered},
			NextScene:          SceneHideoutEntrance,
		},

		SceneHideoutEntrance: {
			Name: "Cragmaw Hideout - Entrance",
			Description: `With the sentries dealt with, you stand at the mouth of the goblin hideout. The stream emerges from a dark opening in the hillside, flowing past your feet. The air smells of damp stone and something unpleasant - a mix of wet fur and rotting meat.

The cave mouth is about 15 feet wide and 10 feet high. Just inside, you can see the stream flowing through a larger cavern. The sound of growling echoes from somewhere deeper within - wolves, by the sound of it.

To the right of the stream, a rough passage leads deeper into the hill.`,
			RequiredFlags:      []string{FlagHideoutEntered},
			CompletionTriggers: []string{FlagKennelEntered},
			NextScene:          SceneWolfKennel,
		},

		SceneWolfKennel: {
			Name: "Wolf Kennel",
			Description: `The passage opens into a small cave that reeks of wet fur. Three wolves are chained to a stalagmite near the back wall, and they lunge to the ends of their chains the moment you enter, snarling and snapping.

The chains look old. A narrow chimney in the back corner climbs toward a chamber above, from which firelight flickers.`,
			Combat:             true,
			Enemies:            []string{"wolf", "wolf", "wolf"},
			RequiredFlags:      []string{FlagKennelEntered},
			CompletionTriggers: []string{FlagWolvesDefeated},
			NextScene:          SceneKlargChamber,
		},

		SceneKlargChamber: {
			Name: "Klarg's Chamber",
			Description: `The passage opens into a larger chamber, roughly 30 feet square. Supplies are piled in one corner - crates, barrels, and stolen goods. A large fire pit dominates the center of the room, its smoke rising through a natural chimney.

A massive bugbear stands by the fire, easily 7 feet tall with coarse brown fur and a toothy grin. A wolf - larger than normal - lounges at his feet. Two goblins attend him, one fanning him with a crude fan while the other sorts through stolen items.

"Who dares enter Klarg's domain?" the bugbear bellows, reaching for a heavy morningstar.`,
			Combat:             true,
			Enemies:            []string{"klarg", "wolf", "goblin", "goblin"},
			RequiredFlags:      []string{FlagHideoutEntered},
			CompletionTriggers: []string{FlagKlargDefeated},
			NextScene:          SceneSildarRescue,
		},

		SceneSildarRescue: {
			Name: "Sildar Rescued",
			Description: `With Klarg defeated, you hear a weak voice from a side chamber: "Hello? Is someone there? Please... I need help."

Following the voice, you find a human man in his fifties, bound and bruised but alive. He wears the tattered remains of fine clothes, and despite his condition, carries himself with dignity.

"Thank the gods," he breathes. "I am Sildar Hallwinter of the Lords' Alliance. Those goblins... they took me and my companion Gundren. But Gundren was taken somewhere else - to 'Cragmaw Castle,' I heard them say. Something about the 'Black Spider' wanting him."

He looks at you with desperate hope. "Can you help me? Can you help find Gundren?"`,
		},

		ScenePartyCaptured: {
			Name: "Captured!",
			Description: `Darkness closes in as the last of your party falls. The goblins cackle with glee, binding your unconscious forms with rough rope.

You awaken sometime later in a dark cave, stripped of your weapons and equipment. The sounds of goblin voices echo from somewhere nearby, along with... the sound of a man groaning in pain.

You're not alone in this prison, it seems. And you're still alive. The goblins must have plans for you...`,
		},
	}
}

// NewState builds the pristine first-run document: party and NPCs placed,
// no enemies spawned, combat idle, story at the opening scene.
func NewState(gameID string) *entities.WorldState {
	state := entities.New(gameID)
	state.CurrentChapter = DefaultChapter
	state.CurrentScene = SceneIntro

	for id, character := range Party() {
		state.Characters[id] = character
	}
	for id, npc := range NPCs() {
		state.NPCs[id] = npc
	}
	return state
}
