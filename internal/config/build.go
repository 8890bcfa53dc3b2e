package config

import (
	"noisekit/internal/noise"
	"noisekit/internal/random"
)

// NewRng returns the preset's generator seeded with seed.
func (p Preset) NewRng(seed uint32) random.Rng {
	if p.RNG == "cmwc" {
		return random.NewCMWCFromSeed(seed)
	}
	return random.NewMTFromSeed(seed)
}

// NewSampler builds the preset's noise from rng.
func (p Preset) NewSampler(rng random.Rng) noise.Sampler {
	switch p.Algorithm {
	case "perlin":
		return noise.NewPerlin(p.Dimensions, p.Lacunarity, rng)
	case "wavelet":
		return noise.NewWavelet(p.Dimensions, p.Lacunarity, rng)
	default:
		return noise.NewSimplex(p.Dimensions, p.Lacunarity, rng)
	}
}

// Build returns a sampler seeded from the preset's own seed, plus the
// generator left positioned after the noise tables were drawn.
func (p Preset) Build() (noise.Sampler, random.Rng) {
	rng := p.NewRng(p.Seed)
	return p.NewSampler(rng), rng
}
