package random

import "golang.org/x/exp/rand"

var (
	_ rand.Source = (*Random[*MersenneTwister])(nil)
	_ rand.Source = (*Random[*CMWC])(nil)
)

// Uint64 combines two raw draws, the first one in the low word.
func (r *Random[A]) Uint64() uint64 {
	lo := uint64(r.algo.Uint32())
	hi := uint64(r.algo.Uint32())
	return hi<<32 | lo
}

// Seed reseeds the algorithm with the low 32 bits of seed and drops any
// cached gaussian sample.
func (r *Random[A]) Seed(seed uint64) {
	r.algo.Seed(uint32(seed))
	r.hasY2 = false
}

// Rand exposes r through the golang.org/x/exp/rand API. The returned Rand
// shares state with r.
func (r *Random[A]) Rand() *rand.Rand {
	return rand.New(r)
}
