package entities_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/gamemaster/internal/entities"
)

type WorldStateTestSuite struct {
	suite.Suite
	world *entities.WorldState
}

func TestWorldStateSuite(t *testing.T) {
	suite.Run(t, new(WorldStateTestSuite))
}

func (s *WorldStateTestSuite) SetupTest() {
	s.world = entities.New("game-123")
	s.Require().NoError(s.world.AddEntity(&entities.Entity{
		ID: "vex", Kind: entities.KindCharacter, HP: 9, MaxHP: 9,
	}))
	s.Require().NoError(s.world.AddEntity(&entities.Entity{
		ID: "gundren", Kind: entities.KindNPC, HP: 8, MaxHP: 8,
	}))
	s.Require().NoError(s.world.AddEntity(&entities.Entity{
		ID: "goblin_1", Kind: entities.KindEnemy, HP: 7, MaxHP: 7,
	}))
}

func (s *WorldStateTestSuite) TestAddEntityRoutesByKind() {
	s.Assert().Contains(s.world.Characters, "vex")
	s.Assert().Contains(s.world.NPCs, "gundren")
	s.Assert().Contains(s.world.Enemies, "goblin_1")
}

func (s *WorldStateTestSuite) TestAddEntityRejectsDuplicateAcrossCollections() {
	err := s.world.AddEntity(&entities.Entity{
		ID: "vex", Kind: entities.KindEnemy, HP: 1, MaxHP: 1,
	})
	s.Assert().Error(err)
	s.Assert().NotContains(s.world.Enemies, "vex")
}

func (s *WorldStateTestSuite) TestAddEntityRejectsUnknownKind() {
	err := s.world.AddEntity(&entities.Entity{ID: "x", Kind: entities.Kind("familiar")})
	s.Assert().Error(err)
}

func (s *WorldStateTestSuite) TestFindEntity() {
	testCases := []struct {
		name  string
		id    string
		found bool
	}{
		{"character", "vex", true},
		{"npc", "gundren", true},
		{"enemy", "goblin_1", true},
		{"absent", "strahd", false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			e, ok := s.world.FindEntity(tc.id)
			s.Assert().Equal(tc.found, ok)
			if tc.found {
				s.Assert().Equal(tc.id, e.ID)
			}
		})
	}
}

func (s *WorldStateTestSuite) TestValidateAcceptsHealthyDocument() {
	s.Assert().NoError(s.world.Validate())
}

func (s *WorldStateTestSuite) TestValidateRejections() {
	testCases := []struct {
		name   string
		mutate func(w *entities.WorldState)
	}{
		{"missing game id", func(w *entities.WorldState) { w.GameID = "" }},
		{"key and id mismatch", func(w *entities.WorldState) {
			w.Characters["vex"].ID = "not-vex"
		}},
		{"hp above max", func(w *entities.WorldState) {
			w.Characters["vex"].HP = 99
		}},
		{"negative hp", func(w *entities.WorldState) {
			w.Enemies["goblin_1"].HP = -1
		}},
		{"negative ac", func(w *entities.WorldState) {
			w.NPCs["gundren"].AC = -2
		}},
		{"duplicate id across collections", func(w *entities.WorldState) {
			w.Enemies["vex"] = &entities.Entity{ID: "vex", Kind: entities.KindEnemy}
		}},
		{"inactive combat with nonzero round", func(w *entities.WorldState) {
			w.Combat.Round = 2
		}},
		{"active combat with zero round", func(w *entities.WorldState) {
			w.Combat.Active = true
			w.Combat.TurnOrder = []string{"vex"}
		}},
		{"active combat with empty turn order", func(w *entities.WorldState) {
			w.Combat.Active = true
			w.Combat.Round = 1
		}},
		{"turn index out of range", func(w *entities.WorldState) {
			w.Combat.Active = true
			w.Combat.Round = 1
			w.Combat.TurnOrder = []string{"vex"}
			w.Combat.CurrentTurnIndex = 1
		}},
		{"turn order references unknown entity", func(w *entities.WorldState) {
			w.Combat.Active = true
			w.Combat.Round = 1
			w.Combat.TurnOrder = []string{"strahd"}
		}},
		{"duplicate id in turn order", func(w *entities.WorldState) {
			w.Combat.Active = true
			w.Combat.Round = 1
			w.Combat.TurnOrder = []string{"vex", "vex"}
		}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			w := s.world.Clone()
			tc.mutate(w)
			s.Assert().Error(w.Validate())
		})
	}
}

func (s *WorldStateTestSuite) TestEnsureContainers() {
	w := &entities.WorldState{GameID: "bare"}
	w.EnsureContainers()

	s.Assert().NotNil(w.NarrativeProgress)
	s.Assert().NotNil(w.NarrativeProgress.Flags)
	s.Assert().NotNil(w.Combat)
	s.Assert().NotNil(w.Characters)
	s.Assert().NotNil(w.NPCs)
	s.Assert().NotNil(w.Enemies)
}

func (s *WorldStateTestSuite) TestCloneIsDeep() {
	s.world.NarrativeProgress.Flags["ambush_triggered"] = true
	s.world.Combat.Active = true
	s.world.Combat.Round = 1
	s.world.Combat.TurnOrder = []string{"vex", "goblin_1"}
	s.world.Combat.Combatants = map[string]*entities.CombatantState{
		"vex": {Initiative: 18, InitiativeRolls: []int{15}},
	}

	clone := s.world.Clone()
	clone.Characters["vex"].HP = 1
	clone.NarrativeProgress.Flags["ambush_triggered"] = false
	clone.Combat.TurnOrder[0] = "goblin_1"
	clone.Combat.Combatants["vex"].Initiative = 1

	s.Assert().Equal(9, s.world.Characters["vex"].HP)
	s.Assert().True(s.world.NarrativeProgress.Flags["ambush_triggered"])
	s.Assert().Equal("vex", s.world.Combat.TurnOrder[0])
	s.Assert().Equal(18, s.world.Combat.Combatants["vex"].Initiative)
}
