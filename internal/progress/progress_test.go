package progress

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGainCrossesSeveralLevels(t *testing.T) {
	l := NewLevel(100, 1.5)

	gained := l.Gain(350)

	assert.Equal(t, 2, gained)
	assert.Equal(t, 3, l.Level)
	assert.Equal(t, 100, l.XP)
	assert.Equal(t, 225, l.ToNext)
}

func TestGainBelowThreshold(t *testing.T) {
	l := NewLevel(100, 1.5)
	assert.Equal(t, 0, l.Gain(99))
	assert.Equal(t, 1, l.Level)
	assert.InDelta(t, 0.99, l.Fraction(), 1e-9)

	assert.Equal(t, 0, l.Gain(-5))
	assert.Equal(t, 99, l.XP)
}

func TestGainExactThreshold(t *testing.T) {
	l := NewLevel(100, 1.5)
	assert.Equal(t, 1, l.Gain(100))
	assert.Equal(t, 2, l.Level)
	assert.Equal(t, 0, l.XP)
	assert.Equal(t, 150, l.ToNext)
}

func TestJarClamps(t *testing.T) {
	j := NewJar(999)
	assert.Equal(t, 999, j.Add(1200))
	assert.Equal(t, 999, j.Count())
	assert.Equal(t, 0, j.Add(1))

	j.Set(-4)
	assert.Equal(t, 0, j.Count())
}

func TestJarSpend(t *testing.T) {
	j := NewJar(999)
	j.Add(7)

	assert.False(t, j.Spend(10))
	assert.Equal(t, 7, j.Count())

	assert.True(t, j.Spend(5))
	assert.Equal(t, 2, j.Count())

	assert.True(t, j.Spend(0))
	assert.True(t, j.CanSpend(2))
	assert.False(t, j.CanSpend(3))
}

func TestJarConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	j := NewJar(999)
	costs := []int{0, 5, 10, 20, 50}

	expected := 0
	for i := 0; i < 2000; i++ {
		if rng.Intn(2) == 0 {
			expected += j.Add(1)
		} else {
			c := costs[rng.Intn(len(costs))]
			if j.Spend(c) {
				expected -= c
			}
		}
		assert.GreaterOrEqual(t, j.Count(), 0)
		assert.LessOrEqual(t, j.Count(), 999)
	}
	assert.Equal(t, expected, j.Count())
}

func TestOnChange(t *testing.T) {
	j := NewJar(10)
	var seen []int
	j.OnChange = func(n int) { seen = append(seen, n) }

	j.Add(3)
	j.Spend(20)
	j.Spend(2)

	assert.Equal(t, []int{3, 1}, seen)
}
