package random

const (
	mtN          = 624
	mtM          = 397
	mtInit       = 1812433253
	mtMatrixA    = 0x9908b0df
	mtUpperMask  = 0x80000000
	mtLowerMask  = 0x7fffffff
	mtTemperingB = 0x9d2c5680
	mtTemperingC = 0xefc60000
)

// MersenneTwister is the MT19937 generator.
type MersenneTwister struct {
	mt  [mtN]uint32
	cur int
}

// NewMersenneTwister returns an MT19937 generator seeded with seed.
func NewMersenneTwister(seed uint32) *MersenneTwister {
	m := &MersenneTwister{}
	m.Seed(seed)
	return m
}

// Seed initializes the state array. The first draw regenerates it.
func (m *MersenneTwister) Seed(seed uint32) {
	m.mt[0] = seed
	for i := 1; i < mtN; i++ {
		m.mt[i] = mtInit*(m.mt[i-1]^(m.mt[i-1]>>30)) + uint32(i)
	}
	m.cur = mtN
}

// twist regenerates all 624 words in place.
func (m *MersenneTwister) twist() {
	for i := 0; i < mtN; i++ {
		y := (m.mt[i] & mtUpperMask) | (m.mt[(i+1)%mtN] & mtLowerMask)
		v := m.mt[(i+mtM)%mtN] ^ (y >> 1)
		if y&1 == 1 {
			v ^= mtMatrixA
		}
		m.mt[i] = v
	}
	m.cur = 0
}

// Uint32 returns the next tempered word.
func (m *MersenneTwister) Uint32() uint32 {
	if m.cur == mtN {
		m.twist()
	}

	y := m.mt[m.cur]
	m.cur++

	y ^= y >> 11
	y ^= (y << 7) & mtTemperingB
	y ^= (y << 15) & mtTemperingC
	y ^= y >> 18
	return y
}

// Float32 returns a value in [0, 1).
func (m *MersenneTwister) Float32() float32 {
	return toFloat32(m.Uint32())
}

// Float64 returns a value in [0, 1).
func (m *MersenneTwister) Float64() float64 {
	if compat {
		return float64(m.Float32())
	}
	return toFloat64(m.Uint32())
}
