package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRNG_NextInUnitInterval(t *testing.T) {
	r := newRNG(42)
	for i := 0; i < 1000; i++ {
		v := r.next()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestRNG_DeterministicForFixedSeed(t *testing.T) {
	a := newRNG(7)
	b := newRNG(7)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.next(), b.next())
	}
}

func TestRNG_BoundedIntInRange(t *testing.T) {
	r := newRNG(1)
	for i := 0; i < 1000; i++ {
		v := r.boundedInt(5)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 5)
	}
}

func TestRNG_BoundedIntDegenerate(t *testing.T) {
	r := newRNG(1)
	assert.Equal(t, 0, r.boundedInt(0))
}

func TestRNG_PermutationIsBijection(t *testing.T) {
	r := newRNG(99)
	p := r.permutation(20)
	seen := make(map[int]bool)
	for _, v := range p {
		assert.False(t, seen[v], "duplicate value %d in permutation", v)
		seen[v] = true
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 20)
	}
	assert.Len(t, seen, 20)
}
