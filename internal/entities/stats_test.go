package entities_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/gamemaster/internal/entities"
)

type StatsTestSuite struct {
	suite.Suite
}

func TestStatsSuite(t *testing.T) {
	suite.Run(t, new(StatsTestSuite))
}

func (s *StatsTestSuite) TestModifier() {
	testCases := []struct {
		name     string
		score    int
		expected int
	}{
		{"very low score", 3, -4},
		{"low score", 7, -2},
		{"below average", 8, -1},
		{"just below average", 9, -1},
		{"average", 10, 0},
		{"just above average", 11, 0},
		{"above average", 14, 2},
		{"odd score rounds down", 15, 2},
		{"high score", 18, 4},
		{"maximum", 20, 5},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Assert().Equal(tc.expected, entities.Modifier(tc.score))
		})
	}
}

func (s *StatsTestSuite) TestScore() {
	stats := entities.Stats{
		Strength:     8,
		Dexterity:    17,
		Constitution: 12,
		Intelligence: 13,
		Wisdom:       14,
		Charisma:     15,
	}

	s.Assert().Equal(8, stats.Score(entities.Strength))
	s.Assert().Equal(17, stats.Score(entities.Dexterity))
	s.Assert().Equal(12, stats.Score(entities.Constitution))
	s.Assert().Equal(13, stats.Score(entities.Intelligence))
	s.Assert().Equal(14, stats.Score(entities.Wisdom))
	s.Assert().Equal(15, stats.Score(entities.Charisma))
	s.Assert().Equal(0, stats.Score(entities.Ability("luck")))
}

func (s *StatsTestSuite) TestAbilityForSkill() {
	testCases := []struct {
		skill    string
		expected entities.Ability
	}{
		{"stealth", entities.Dexterity},
		{"athletics", entities.Strength},
		{"perception", entities.Wisdom},
		{"persuasion", entities.Charisma},
		{"investigation", entities.Intelligence},
		{"unknown_skill", entities.Wisdom},
	}

	for _, tc := range testCases {
		s.Run(tc.skill, func() {
			s.Assert().Equal(tc.expected, entities.AbilityForSkill(tc.skill))
		})
	}
}
