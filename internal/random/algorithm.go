// Package random provides seedable pseudorandom number generation backed by
// the Mersenne Twister or Complementary-Multiply-With-Carry algorithms.
//
// Generators are not safe for concurrent use: every draw mutates state.
package random

// Algorithm is a raw 32-bit generator that Random draws from.
type Algorithm interface {
	// Uint32 returns the next raw 32-bit output.
	Uint32() uint32
	// Float32 returns a value in [0, 1).
	Float32() float32
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Seed resets the generator state from seed.
	Seed(seed uint32)
}

const (
	randDiv       = float32(1.0 / float32(0xffffffff))
	randDivDouble = 1.0 / float64(0xffffffff)

	// A float32 mantissa holds 24 bits, so masking to 24 bits keeps the
	// outputs evenly spaced over [0, 1).
	mantissa32 = 0x1000000
	span32     = 0x100000000
)

func toFloat32(x uint32) float32 {
	if compat {
		return float32(x) * randDiv
	}
	return float32(x%mantissa32) / mantissa32
}

func toFloat64(x uint32) float64 {
	if compat {
		return float64(x) * randDivDouble
	}
	return float64(x) / span32
}
