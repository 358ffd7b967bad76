package region

// rng is a stateless integer-to-double hash: each call consumes and
// advances a counter and produces a deterministic double in [0,1). Two
// rng values with different counters never interfere, which is what
// lets the multi-start driver give every start a disjoint stream
// without any shared mutable RNG state.
type rng struct {
	counter uint64
}

func newRNG(seed uint64) *rng {
	return &rng{counter: seed}
}

// next draws the next double in [0,1) and advances the counter.
func (r *rng) next() float64 {
	v := thomasWangHash(r.counter)
	r.counter++
	// 53 bits of mantissa precision, matching an IEEE-754 double's
	// resolution in [0,1).
	return float64(v>>11) / float64(1<<53)
}

// thomasWangHash is a ThomasWang-style 64-bit integer mix.
func thomasWangHash(key uint64) uint64 {
	key = (^key) + (key << 21)
	key = key ^ (key >> 24)
	key = key + (key << 3) + (key << 8)
	key = key ^ (key >> 14)
	key = key + (key << 2) + (key << 4)
	key = key ^ (key >> 28)
	key = key + (key << 31)
	return key
}

// boundedInt draws an integer in [0, m) by floor(next() * m), rejecting
// and redrawing a result that equals m. With m <= 0 this always returns
// 0 to avoid an infinite loop on degenerate input.
func (r *rng) boundedInt(m int) int {
	if m <= 0 {
		return 0
	}
	for {
		v := int(r.next() * float64(m))
		if v != m {
			return v
		}
	}
}

// boundedBelow draws an integer strictly less than i, used by the
// Fisher-Yates-style permutation step below. Draws from [0, i+1) and
// rejects/redraws whenever the result is not < i, rather than composing
// with boundedInt's own m-equality rejection.
func (r *rng) boundedBelow(i int) int {
	if i <= 0 {
		return 0
	}
	for {
		v := int(r.next() * float64(i+1))
		if v < i {
			return v
		}
	}
}

// permutation returns a random permutation of [0, n) built by repeated
// bounded draws (rejection resampling until k < i), used to shuffle the
// constructor's candidate order.
func (r *rng) permutation(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	for i := n - 1; i >= 1; i-- {
		k := r.boundedBelow(i)
		p[i], p[k] = p[k], p[i]
	}
	return p
}
