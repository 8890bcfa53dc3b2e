package noise

import "math"

// Algorithm is a coherent noise kernel queried at one point. Implementations
// are immutable after construction.
type Algorithm interface {
	// Generate returns the noise value at f. Only the first Dimensions
	// entries of f are read.
	Generate(f []float32) float32
}

const clampBound = 0.99999

func lerp(a, b, x float32) float32 {
	return a + x*(b-a)
}

func cubic(a float32) float32 {
	return a * a * (3 - 2*a)
}

// floorMod is the modulo whose result takes the sign of m.
func floorMod(v, m int32) int32 {
	r := v % m
	if r < 0 {
		r += m
	}
	return r
}

func floorInt32(f float32) int32 {
	return saturateInt32(math.Floor(float64(f)))
}

func ceilInt32(f float32) int32 {
	return saturateInt32(math.Ceil(float64(f)))
}

// saturateInt32 converts an integral float, mapping NaN to 0 and clamping
// to the int32 range.
func saturateInt32(f float64) int32 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return int32(f)
}

// clamp32 maps NaN to lo.
func clamp32(v, lo, hi float32) float32 {
	if !(v >= lo) {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}
