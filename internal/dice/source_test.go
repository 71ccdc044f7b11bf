package dice_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/gamemaster/internal/dice"
)

type SourceTestSuite struct {
	suite.Suite
}

func TestSourceSuite(t *testing.T) {
	suite.Run(t, new(SourceTestSuite))
}

func (s *SourceTestSuite) TestSameSeedSameSequence() {
	first := dice.NewSeededSource(1234)
	second := dice.NewSeededSource(1234)

	for i := 0; i < 50; i++ {
		a, err := first.Roll(20)
		s.Require().NoError(err)
		b, err := second.Roll(20)
		s.Require().NoError(err)
		s.Assert().Equal(a, b, "roll %d diverged", i)
	}
}

func (s *SourceTestSuite) TestDifferentSeedsDiverge() {
	first := dice.NewSeededSource(1)
	second := dice.NewSeededSource(2)

	diverged := false
	for i := 0; i < 50; i++ {
		a, err := first.Roll(20)
		s.Require().NoError(err)
		b, err := second.Roll(20)
		s.Require().NoError(err)
		if a != b {
			diverged = true
		}
	}
	s.Assert().True(diverged)
}

func (s *SourceTestSuite) TestRollBounds() {
	source := dice.NewSeededSource(99)

	for _, size := range []int{2, 4, 6, 8, 10, 12, 20, 100} {
		for i := 0; i < 100; i++ {
			v, err := source.Roll(size)
			s.Require().NoError(err)
			s.Assert().GreaterOrEqual(v, 1)
			s.Assert().LessOrEqual(v, size)
		}
	}
}

func (s *SourceTestSuite) TestRollN() {
	source := dice.NewSeededSource(7)

	rolls, err := source.RollN(4, 6)
	s.Require().NoError(err)
	s.Assert().Len(rolls, 4)
	for _, v := range rolls {
		s.Assert().GreaterOrEqual(v, 1)
		s.Assert().LessOrEqual(v, 6)
	}
}

func (s *SourceTestSuite) TestRejectsNonPositiveArguments() {
	source := dice.NewSeededSource(7)

	_, err := source.Roll(0)
	s.Assert().Error(err)

	_, err = source.RollN(0, 6)
	s.Assert().Error(err)

	_, err = source.RollN(2, -1)
	s.Assert().Error(err)
}
