package random

import (
	"math"
	"time"
)

// Distribution selects how Random maps raw draws onto a requested range.
type Distribution int

const (
	// Linear makes every value in the range equally likely.
	Linear Distribution = iota
	// Gaussian treats the (min, max) arguments as (mean, standard deviation).
	Gaussian
	// GaussianRange derives mean and standard deviation from min and max
	// using the three-sigma rule and clamps the result into the range.
	GaussianRange
	// GaussianInverse is Gaussian with samples pushed three standard
	// deviations away from the mean.
	GaussianInverse
	// GaussianRangeInverse is GaussianRange with the inverse reflection.
	GaussianRangeInverse
)

func (d Distribution) String() string {
	switch d {
	case Linear:
		return "linear"
	case Gaussian:
		return "gaussian"
	case GaussianRange:
		return "gaussian_range"
	case GaussianInverse:
		return "gaussian_inverse"
	case GaussianRangeInverse:
		return "gaussian_range_inverse"
	default:
		return "unknown"
	}
}

func (d Distribution) inverse() bool {
	return d == GaussianInverse || d == GaussianRangeInverse
}

// Rng is the drawing surface shared by the noise initializers and the
// heightmap operations.
type Rng interface {
	Int32(min, max int32) int32
	Float32(min, max float32) float32
	Float64(min, max float64) float64
	Int32Mean(min, max, mean int32) int32
	Float32Mean(min, max, mean float32) float32
	Float64Mean(min, max, mean float64) float64
}

// Random is a pseudorandom number generator over a fixed Algorithm.
type Random[A Algorithm] struct {
	algo A

	// Distribution applies to every subsequent draw.
	Distribution Distribution

	// spare half of the last Box-Muller pair
	y2    float64
	hasY2 bool
}

// New wraps algo with a Linear distribution.
func New[A Algorithm](algo A) *Random[A] {
	return &Random[A]{algo: algo, Distribution: Linear}
}

// NewMT returns a Mersenne Twister generator seeded from the wall clock.
// The seed is the Unix time in seconds truncated to 32 bits, so generators
// created within the same second produce the same sequence.
func NewMT() *Random[*MersenneTwister] {
	return NewMTFromSeed(defaultSeed())
}

// NewMTFromSeed returns a Mersenne Twister generator seeded with seed.
func NewMTFromSeed(seed uint32) *Random[*MersenneTwister] {
	return New(NewMersenneTwister(seed))
}

// NewCMWC returns a CMWC generator seeded from the wall clock. See NewMT.
func NewCMWC() *Random[*CMWC] {
	return NewCMWCFromSeed(defaultSeed())
}

// NewCMWCFromSeed returns a CMWC generator seeded with seed.
func NewCMWCFromSeed(seed uint32) *Random[*CMWC] {
	return New(NewComplementaryMultiplyWithCarry(seed))
}

func defaultSeed() uint32 {
	return uint32(time.Now().Unix())
}

// Uint32 returns a raw draw from the underlying algorithm.
func (r *Random[A]) Uint32() uint32 {
	return r.algo.Uint32()
}

// Int32 returns a value between min and max, inclusive under Linear.
func (r *Random[A]) Int32(min, max int32) int32 {
	switch r.Distribution {
	case Gaussian:
		return roundInt32(r.gaussian(float64(min), float64(max)))
	case GaussianRange:
		return roundInt32(r.gaussianRange(float64(min), float64(max)))
	case GaussianInverse:
		return r.gaussianIntInv(min, max)
	case GaussianRangeInverse:
		return clampInt32(roundInt32(r.gaussianRangeInv(float64(min), float64(max))), min, max)
	default:
		return r.linearInt32(min, max)
	}
}

// Float32 returns a value between min and max.
func (r *Random[A]) Float32(min, max float32) float32 {
	switch r.Distribution {
	case Gaussian:
		return float32(r.gaussian(float64(min), float64(max)))
	case GaussianRange:
		return float32(r.gaussianRange(float64(min), float64(max)))
	case GaussianInverse:
		return float32(r.gaussianInv(float64(min), float64(max)))
	case GaussianRangeInverse:
		return float32(r.gaussianRangeInv(float64(min), float64(max)))
	default:
		return r.linearFloat32(min, max)
	}
}

// Float64 returns a value between min and max.
func (r *Random[A]) Float64(min, max float64) float64 {
	switch r.Distribution {
	case Gaussian:
		return r.gaussian(min, max)
	case GaussianRange:
		return r.gaussianRange(min, max)
	case GaussianInverse:
		return r.gaussianInv(min, max)
	case GaussianRangeInverse:
		return r.gaussianRangeInv(min, max)
	default:
		return r.linearFloat64(min, max)
	}
}

// Int32Mean returns a gaussian value between min and max centred on mean.
func (r *Random[A]) Int32Mean(min, max, mean int32) int32 {
	if r.Distribution.inverse() {
		return clampInt32(roundInt32(r.gaussianCustomInv(float64(min), float64(max), float64(mean))), min, max)
	}
	return clampInt32(roundInt32(r.gaussianCustom(float64(min), float64(max), float64(mean))), min, max)
}

// Float32Mean returns a gaussian value between min and max centred on mean.
func (r *Random[A]) Float32Mean(min, max, mean float32) float32 {
	if r.Distribution.inverse() {
		return float32(r.gaussianCustomInv(float64(min), float64(max), float64(mean)))
	}
	return float32(r.gaussianCustom(float64(min), float64(max), float64(mean)))
}

// Float64Mean returns a gaussian value between min and max centred on mean.
func (r *Random[A]) Float64Mean(min, max, mean float64) float64 {
	if r.Distribution.inverse() {
		return r.gaussianCustomInv(min, max, mean)
	}
	return r.gaussianCustom(min, max, mean)
}

func (r *Random[A]) linearInt32(min, max int32) int32 {
	if max == min {
		r.algo.Uint32()
		return min
	}
	if max < min {
		min, max = max, min
	}
	delta := uint32(max - min + 1)
	if delta == 0 {
		// full int32 span
		return int32(r.algo.Uint32()) + min
	}
	return int32(r.algo.Uint32()%delta) + min
}

func (r *Random[A]) linearFloat32(min, max float32) float32 {
	if abs32(max-min) < 1e-6 {
		r.algo.Float32()
		return min
	}
	if max < min {
		min, max = max, min
	}
	return r.algo.Float32()*(max-min) + min
}

func (r *Random[A]) linearFloat64(min, max float64) float64 {
	if math.Abs(max-min) < 1e-6 {
		r.algo.Float64()
		return min
	}
	if max < min {
		min, max = max, min
	}
	return r.algo.Float64()*(max-min) + min
}

// gaussian is the polar Box-Muller transform. Each accepted point yields two
// independent samples; the second is kept for the next call.
func (r *Random[A]) gaussian(mean, stdDev float64) float64 {
	if r.hasY2 {
		r.hasY2 = false
		return mean + r.y2*stdDev
	}

	var x1, x2, w float64
	for {
		x1 = r.algo.Float64()*2 - 1
		x2 = r.algo.Float64()*2 - 1
		w = x1*x1 + x2*x2
		if w < 1 {
			break
		}
	}
	w = math.Sqrt(-2 * math.Log(w) / w)

	r.y2 = x2 * w
	r.hasY2 = true
	return mean + x1*w*stdDev
}

func (r *Random[A]) gaussianRange(min, max float64) float64 {
	if max < min {
		min, max = max, min
	}
	mean := (min + max) / 2
	stdDev := (max - min) / 6
	return clamp64(r.gaussian(mean, stdDev), min, max)
}

func (r *Random[A]) gaussianCustom(min, max, mean float64) float64 {
	if max < min {
		min, max = max, min
	}
	return clamp64(r.gaussian(mean, customStdDev(min, max, mean)), min, max)
}

func (r *Random[A]) gaussianInv(mean, stdDev float64) float64 {
	num := r.gaussian(mean, stdDev)
	if num >= mean {
		return num - 3*stdDev
	}
	return num + 3*stdDev
}

func (r *Random[A]) gaussianIntInv(mean, stdDev int32) int32 {
	num := r.gaussian(float64(mean), float64(stdDev))
	n := roundInt32(num)
	if num >= float64(mean) {
		return n - 3*stdDev
	}
	return n + 3*stdDev
}

func (r *Random[A]) gaussianRangeInv(min, max float64) float64 {
	if max < min {
		min, max = max, min
	}
	mean := (min + max) / 2
	stdDev := (max - min) / 6
	return clamp64(r.gaussianInv(mean, stdDev), min, max)
}

func (r *Random[A]) gaussianCustomInv(min, max, mean float64) float64 {
	if max < min {
		min, max = max, min
	}
	return clamp64(r.gaussianInv(mean, customStdDev(min, max, mean)), min, max)
}

// customStdDev bounds the wider side of the range at three sigma.
func customStdDev(min, max, mean float64) float64 {
	return math.Max(max-mean, mean-min) / 3
}

// clamp64 maps NaN to lo.
func clamp64(v, lo, hi float64) float64 {
	if !(v >= lo) {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}

func clampInt32(v, lo, hi int32) int32 {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}

// roundInt32 rounds half away from zero and saturates at the int32 bounds.
func roundInt32(f float64) int32 {
	f = math.Round(f)
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

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
