package noise

import (
	"math"

	"noisekit/internal/random"
)

// Initializer builds the permutation and gradient tables a lattice algorithm
// needs. Every table consumes draws from the wrapped generator, so the order
// of calls is part of the output.
type Initializer struct {
	rng random.Rng
}

// NewInitializer returns an Initializer drawing from rng.
func NewInitializer(rng random.Rng) *Initializer {
	return &Initializer{rng: rng}
}

// Map returns a random permutation of 0..255. Indices 254 down to 0 are each
// swapped with a drawn index; self swaps are skipped but still consume a draw.
func (in *Initializer) Map() [256]uint8 {
	var m [256]uint8
	for i := range m {
		m[i] = uint8(i)
	}

	for i := 254; i >= 0; i-- {
		j := int(in.rng.Int32(0, 255))
		if i == j {
			continue
		}
		m[i], m[j] = m[j], m[i]
	}
	return m
}

// Buffer returns 256 gradient rows with a stride of MaxDimensions. The first
// dimensions entries of each row are drawn from [-0.5, 0.5] and scaled to unit
// length; the rest stay zero. A zero-length draw is not special-cased.
func (in *Initializer) Buffer(dimensions int) [MaxDimensions * 256]float32 {
	var buf [MaxDimensions * 256]float32
	for i := 0; i < 256; i++ {
		row := buf[i*MaxDimensions : i*MaxDimensions+dimensions]
		for j := range row {
			row[j] = in.rng.Float32(-0.5, 0.5)
		}
		normalize(row)
	}
	return buf
}

func normalize(v []float32) {
	var magnitude float32
	for _, x := range v {
		magnitude += x * x
	}
	magnitude = 1 / float32(math.Sqrt(float64(magnitude)))
	for i := range v {
		v[i] *= magnitude
	}
}
