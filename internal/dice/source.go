package dice

import (
	"math/rand"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/gamemaster/internal/errors"
)

// seededSource is a dice.Roller over a seeded math/rand generator.
// The engine assumes a single logical writer, so no locking here.
type seededSource struct {
	rng *rand.Rand
}

// NewSeededSource returns an entropy source producing a deterministic
// sequence for a given seed. Same seed, same rolls.
func NewSeededSource(seed int64) dice.Roller {
	return &seededSource{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Roll returns a uniform value in [1, size]
func (s *seededSource) Roll(size int) (int, error) {
	if size < 1 {
		return 0, errors.InvalidArgumentf("die size must be at least 1, got %d", size)
	}
	return s.rng.Intn(size) + 1, nil
}

// RollN returns count uniform values in [1, size]
func (s *seededSource) RollN(count, size int) ([]int, error) {
	if count < 1 {
		return nil, errors.InvalidArgumentf("dice count must be at least 1, got %d", count)
	}

	rolls := make([]int, count)
	for i := range rolls {
		r, err := s.Roll(size)
		if err != nil {
			return nil, err
		}
		rolls[i] = r
	}
	return rolls, nil
}
