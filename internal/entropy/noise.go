package entropy

import (
	"math"
	"sync"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// DefaultNoiseSlots matches the drift draw pattern: income and expense for each of three groups.
const DefaultNoiseSlots = 6

// NoiseSource samples normalized simplex noise instead of independent draws.
// Calls are assigned round-robin to slots; each slot walks its own row of the
// noise field, so consecutive periods for the same group and quantity are
// correlated and the economy trends rather than jitters.
type NoiseSource struct {
	mu    sync.Mutex
	noise opensimplex.Noise
	picks *MathSource
	seed  int64

	Slots int     // Independent noise rows, one per draw within a period
	Step  float64 // Distance travelled along a row per period
	calls uint64
}

// NewNoiseSource creates a simplex noise source. Seed 0 picks one at random.
func NewNoiseSource(seed int64) *NoiseSource {
	if seed == 0 {
		seed = randomSeed()
	}
	return &NoiseSource{
		noise: opensimplex.NewNormalized(seed),
		picks: NewMathSource(seed + 1),
		seed:  seed,
		Slots: DefaultNoiseSlots,
		Step:  0.35,
	}
}

// Seed returns the seed in use, so a run can be replayed.
func (s *NoiseSource) Seed() int64 {
	return s.seed
}

func (s *NoiseSource) Uniform(lo, hi float64) float64 {
	s.mu.Lock()
	n := s.calls
	s.calls++
	s.mu.Unlock()

	slots := uint64(s.Slots)
	if slots == 0 {
		slots = 1
	}
	t := float64(n/slots) * s.Step
	row := float64(n%slots) * 7.3 // rows far enough apart to be uncorrelated

	v := s.noise.Eval2(t, row)
	// Normalized noise is nominally [0, 1) but can overshoot slightly.
	v = math.Max(0, math.Min(1, v))
	return lo + (hi-lo)*v
}

// Intn uses a seeded stream so discrete picks do not shift the slot rotation.
func (s *NoiseSource) Intn(n int) int {
	return s.picks.Intn(n)
}
