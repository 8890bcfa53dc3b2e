package random

const (
	cmwcSize = 4096
	cmwcMask = cmwcSize - 1
	cmwcA    = 18782

	// Marsaglia's recommended bound for the initial carry.
	cmwcCarryMax = 809430660

	lcgMul = 1103515245
	lcgInc = 12345
)

// CMWC is a Complementary-Multiply-With-Carry generator with a lag of 4096.
type CMWC struct {
	q   [cmwcSize]uint32
	c   uint32
	cur int
}

// NewComplementaryMultiplyWithCarry returns a CMWC generator seeded with seed.
func NewComplementaryMultiplyWithCarry(seed uint32) *CMWC {
	g := &CMWC{}
	g.Seed(seed)
	return g
}

// Seed fills the lag table from a glibc-style LCG.
func (g *CMWC) Seed(seed uint32) {
	s := seed
	for i := range g.q {
		s = s*lcgMul + lcgInc
		g.q[i] = s
	}
	g.c = (s*lcgMul + lcgInc) % cmwcCarryMax
	g.cur = 0
}

// Uint32 returns the next output.
func (g *CMWC) Uint32() uint32 {
	g.cur = (g.cur + 1) & cmwcMask
	t := cmwcA*uint64(g.q[g.cur]) + uint64(g.c)
	g.c = uint32(t >> 32)
	x := uint32(t + uint64(g.c))
	if x < g.c {
		x++
		g.c++
	}
	if x+1 == 0 {
		g.c++
		x = 0
	}
	g.q[g.cur] = 0xfffffffe - x
	return g.q[g.cur]
}

// Float32 returns a value in [0, 1).
func (g *CMWC) Float32() float32 {
	return toFloat32(g.Uint32())
}

// Float64 returns a value in [0, 1).
func (g *CMWC) Float64() float64 {
	return toFloat64(g.Uint32())
}
