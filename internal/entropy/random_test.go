package entropy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, kind := range []string{"", KindMath, KindCrypto, KindSimplex} {
		src, err := New(kind, 42)
		require.NoError(t, err, kind)
		require.NotNil(t, src, kind)
	}

	_, err := New("dice", 1)
	assert.Error(t, err)
}

func TestSources_StayInRange(t *testing.T) {
	sources := map[string]Source{
		"math":    NewMathSource(7),
		"crypto":  CryptoSource{},
		"simplex": NewNoiseSource(7),
	}
	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 500; i++ {
				v := src.Uniform(0.98, 1.03)
				assert.GreaterOrEqual(t, v, 0.98)
				assert.LessOrEqual(t, v, 1.03)

				n := src.Intn(3)
				assert.GreaterOrEqual(t, n, 0)
				assert.Less(t, n, 3)
			}
		})
	}
}

func TestMathSource_SeedIsReproducible(t *testing.T) {
	a := NewMathSource(99)
	b := NewMathSource(99)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Uniform(0, 1), b.Uniform(0, 1))
		assert.Equal(t, a.Intn(10), b.Intn(10))
	}
	assert.Equal(t, int64(99), a.Seed())
}

func TestMathSource_ZeroSeedIsRandomized(t *testing.T) {
	src := NewMathSource(0)
	assert.NotZero(t, src.Seed())
}

func TestNoiseSource_SeedIsReproducible(t *testing.T) {
	a := NewNoiseSource(5)
	b := NewNoiseSource(5)
	for i := 0; i < 30; i++ {
		assert.Equal(t, a.Uniform(0.97, 1.02), b.Uniform(0.97, 1.02))
	}
}

func TestNoiseSource_ZeroSeedIsReplayable(t *testing.T) {
	src := NewNoiseSource(0)
	require.NotZero(t, src.Seed())

	replay := NewNoiseSource(src.Seed())
	assert.Equal(t, src.Seed(), replay.Seed())
	for i := 0; i < 12; i++ {
		assert.Equal(t, src.Uniform(0.97, 1.02), replay.Uniform(0.97, 1.02))
	}
	assert.Equal(t, src.Intn(5), replay.Intn(5))
}

func TestCryptoRandFloat(t *testing.T) {
	for i := 0; i < 100; i++ {
		v := cryptoRandFloat()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}
