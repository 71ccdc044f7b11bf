// Package scenes evaluates narrative progression over scene tables. A
// table maps scene ids to the conditions under which the story moves on;
// Evaluate is a pure function of a table and a world document, so the
// scene graph stays testable independent of any campaign's content.
package scenes

import (
	"github.com/KirkDiggler/gamemaster/internal/entities"
)

// Trigger is a skill check the party can attempt within a scene. Triggers
// are display metadata for whoever runs the table; Evaluate never reads them.
type Trigger struct {
	Skill       string `json:"skill"`
	DC          int    `json:"dc"`
	SuccessText string `json:"success_text"`
	FailText    string `json:"fail_text"`
}

// Entry is one scene: what to read to the players, the skill checks on
// offer, and the flag conditions that complete it.
type Entry struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// Combat marks a scene that opens in combat. Enemies names the content
	// templates to spawn when it does.
	Combat  bool     `json:"combat"`
	Enemies []string `json:"enemies"`

	Triggers map[string]*Trigger `json:"triggers"`

	// RequiredFlags must all be set, and at least one of CompletionTriggers
	// must be set, for the scene to complete. A scene with no completion
	// triggers never completes; an empty NextScene marks a terminal scene.
	RequiredFlags      []string `json:"required_flags"`
	CompletionTriggers []string `json:"completion_triggers"`
	NextScene          string   `json:"next_scene"`
}

// Table maps scene ids to entries. Tables are content, not logic; nothing
// here depends on a particular campaign.
type Table map[string]*Entry

// Evaluate reports the transition out of the document's current scene, if
// any. A transition fires when every flag in the entry's RequiredFlags is
// set AND at least one flag in its CompletionTriggers is set. No transition
// is the steady state, not an error. Evaluate only reads; writing
// current_scene back to the document is the caller's job.
func Evaluate(table Table, state *entities.WorldState) (string, bool) {
	if state == nil {
		return "", false
	}

	entry := table[state.CurrentScene]
	if entry == nil || entry.NextScene == "" {
		return "", false
	}

	for _, flag := range entry.RequiredFlags {
		if !state.NarrativeProgress.Flag(flag) {
			return "", false
		}
	}
	for _, flag := range entry.CompletionTriggers {
		if state.NarrativeProgress.Flag(flag) {
			return entry.NextScene, true
		}
	}
	return "", false
}
