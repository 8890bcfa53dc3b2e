// Package noise implements Perlin, Simplex and Wavelet coherent noise and
// composes them into fractal Brownian motion and turbulence.
//
// A Noise is immutable once built and may be queried from many goroutines.
package noise

import (
	"fmt"
	"math"

	"noisekit/internal/random"
)

const (
	// MaxOctaves is the size of the octave weight table.
	MaxOctaves = 128
	// MaxDimensions is the highest supported dimensionality.
	MaxDimensions = 4
	// DefaultLacunarity doubles the frequency between octaves.
	DefaultLacunarity float32 = 2.0

	delta = 1e-6
)

// Sampler is the query surface shared by every Noise instantiation.
type Sampler interface {
	Dimensions() int
	Lacunarity() float32
	Flat(f []float32) float32
	FBM(f []float32, octaves float32) float32
	Turbulence(f []float32, octaves float32) float32
}

var (
	_ Sampler = (*Noise[*Perlin])(nil)
	_ Sampler = (*Noise[*Simplex])(nil)
	_ Sampler = (*Noise[*Wavelet])(nil)
)

// Noise wraps one lattice algorithm with fractal summation.
type Noise[A Algorithm] struct {
	dimensions int
	algorithm  A
	exponent   [MaxOctaves]float32
	lacunarity float32
}

// NewPerlin builds Perlin noise. The dimension count is clamped to [1, 4].
func NewPerlin(dimensions int, lacunarity float32, rng random.Rng) *Noise[*Perlin] {
	return build(dimensions, lacunarity, rng, newPerlin)
}

// NewSimplex builds Simplex noise. The dimension count is clamped to [1, 4].
func NewSimplex(dimensions int, lacunarity float32, rng random.Rng) *Noise[*Simplex] {
	return build(dimensions, lacunarity, rng, newSimplex)
}

// NewWavelet builds Wavelet noise. The dimension count is clamped to [1, 4],
// but queries panic when it is above 3.
func NewWavelet(dimensions int, lacunarity float32, rng random.Rng) *Noise[*Wavelet] {
	return build(dimensions, lacunarity, rng, newWavelet)
}

func build[A Algorithm](dimensions int, lacunarity float32, rng random.Rng, newAlgorithm func(int, *Initializer) A) *Noise[A] {
	dimensions = min(max(dimensions, 1), MaxDimensions)
	return &Noise[A]{
		dimensions: dimensions,
		algorithm:  newAlgorithm(dimensions, NewInitializer(rng)),
		exponent:   exponents(lacunarity),
		lacunarity: lacunarity,
	}
}

func exponents(lacunarity float32) [MaxOctaves]float32 {
	var e [MaxOctaves]float32
	f := float32(1)
	for i := range e {
		e[i] = 1 / f
		f *= lacunarity
	}
	return e
}

// Dimensions returns the number of coordinates each query takes.
func (n *Noise[A]) Dimensions() int { return n.dimensions }

// Lacunarity returns the frequency multiplier between octaves.
func (n *Noise[A]) Lacunarity() float32 { return n.lacunarity }

// Algorithm returns the wrapped lattice algorithm.
func (n *Noise[A]) Algorithm() A { return n.algorithm }

// Flat returns the raw algorithm value at f.
func (n *Noise[A]) Flat(f []float32) float32 {
	n.checkCoordinates(f)
	return n.algorithm.Generate(f)
}

// FBM sums octaves of noise at increasing frequency and decreasing
// amplitude. A fractional octave count adds a partially weighted last
// octave. The result is in [-0.99999, 0.99999].
func (n *Noise[A]) FBM(f []float32, octaves float32) float32 {
	return n.fractal(f, octaves, false)
}

// Turbulence is FBM over the absolute value of each octave.
func (n *Noise[A]) Turbulence(f []float32, octaves float32) float32 {
	return n.fractal(f, octaves, true)
}

func (n *Noise[A]) fractal(f []float32, octaves float32, abs bool) float32 {
	n.checkCoordinates(f)

	trunc := math.Trunc(float64(octaves))
	rem := octaves - float32(trunc)
	if trunc > MaxOctaves || (trunc == MaxOctaves && rem > delta) {
		panic(fmt.Sprintf("noise: %v octaves exceeds the maximum of %d", octaves, MaxOctaves))
	}
	whole := 0
	if trunc > 0 {
		whole = int(trunc)
	}

	var tf [MaxDimensions]float32
	copy(tf[:], f)

	var value float64
	for i := 0; i < whole; i++ {
		g := n.algorithm.Generate(tf[:])
		if abs {
			g = float32(math.Abs(float64(g)))
		}
		value += float64(g) * float64(n.exponent[i])
		for j := range f {
			tf[j] *= n.lacunarity
		}
	}

	if rem > delta {
		g := n.algorithm.Generate(tf[:])
		if abs {
			g = float32(math.Abs(float64(g)))
		}
		value += float64(rem*g) * float64(n.exponent[whole])
	}

	if !(value >= -clampBound) {
		value = -clampBound
	}
	if value > clampBound {
		value = clampBound
	}
	return float32(value)
}

func (n *Noise[A]) checkCoordinates(f []float32) {
	if len(f) != n.dimensions {
		panic(fmt.Sprintf("noise: got %d coordinates, want %d", len(f), n.dimensions))
	}
}
