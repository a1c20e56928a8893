// Package entropy provides the random sources that drive crisis selection and drift.
// Every source is swappable so tests can force exact multipliers.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	mrand "math/rand"
	"sync"
)

// Source draws the random numbers the simulation needs.
type Source interface {
	// Uniform returns a value in [lo, hi].
	Uniform(lo, hi float64) float64
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// Source kinds accepted by New.
const (
	KindMath    = "math"
	KindCrypto  = "crypto"
	KindSimplex = "simplex"
)

// New builds a source by kind. Seed 0 picks a random seed for seeded kinds.
func New(kind string, seed int64) (Source, error) {
	switch kind {
	case KindMath, "":
		return NewMathSource(seed), nil
	case KindCrypto:
		return CryptoSource{}, nil
	case KindSimplex:
		return NewNoiseSource(seed), nil
	default:
		return nil, fmt.Errorf("unknown random source %q", kind)
	}
}

// MathSource is a seeded math/rand stream.
type MathSource struct {
	mu   sync.Mutex
	rng  *mrand.Rand
	seed int64
}

// NewMathSource creates a seeded source. Seed 0 picks one at random.
func NewMathSource(seed int64) *MathSource {
	if seed == 0 {
		seed = randomSeed()
	}
	return &MathSource{rng: mrand.New(mrand.NewSource(seed)), seed: seed}
}

// Seed returns the seed the stream was started from.
func (s *MathSource) Seed() int64 {
	return s.seed
}

func (s *MathSource) Uniform(lo, hi float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo + (hi-lo)*s.rng.Float64()
}

func (s *MathSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// CryptoSource draws from crypto/rand. It cannot be seeded.
type CryptoSource struct{}

func (CryptoSource) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*cryptoRandFloat()
}

func (CryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("entropy: Intn called with non-positive n")
	}
	return int(cryptoRandFloat() * float64(n))
}

// cryptoRandFloat generates a random float64 in [0, 1) using crypto/rand.
func cryptoRandFloat() float64 {
	var buf [8]byte
	_, err := rand.Read(buf[:])
	if err != nil {
		// This should never happen but return 0.5 as a safe default.
		return 0.5
	}
	// Use only 53 bits for a uniform float64 in [0, 1).
	n := binary.LittleEndian.Uint64(buf[:]) >> 11
	return float64(n) / float64(1<<53)
}

func randomSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 1
	}
	seed := int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
	if seed == 0 {
		seed = 1
	}
	return seed
}
