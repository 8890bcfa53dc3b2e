package main

import (
	"noisekit/internal/config"
	"noisekit/internal/heightmap"
	"noisekit/internal/random"
)

const (
	mpdBlend        = 0.3
	erosionCoef     = 0.07
	aggregationCoef = 0.05
)

// layers are the normalized [0, 1] fields the classifier reads.
type layers struct {
	elevation *heightmap.HeightMap
	moisture  *heightmap.HeightMap
	detail    *heightmap.HeightMap
}

// buildLayers derives elevation, moisture and detail from the preset. The
// elevation uses seed; moisture and detail use the next two seeds.
func buildLayers(p config.Preset, w, h int, seed uint32) layers {
	p.Dimensions = 2
	return layers{
		elevation: buildElevation(p, w, h, seed),
		moisture:  fbmLayer(p, w, h, seed+1, 1.5, 3),
		detail:    fbmLayer(p, w, h, seed+2, 5, 2),
	}
}

func coordinates(p config.Preset, w, h int, zoom float32) heightmap.FBMCoordinates {
	span := p.Scale * zoom
	return heightmap.FBMCoordinates{MulX: span, MulY: span * float32(h) / float32(w)}
}

func fbmLayer(p config.Preset, w, h int, seed uint32, zoom, octaves float32) *heightmap.HeightMap {
	hm := heightmap.New(w, h)
	hm.AddFBM(p.NewSampler(p.NewRng(seed)), octaves, coordinates(p, w, h, zoom), 0, 1)
	hm.Normalize(0, 1)
	return hm
}

func buildElevation(p config.Preset, w, h int, seed uint32) *heightmap.HeightMap {
	rng := p.NewRng(seed)
	hm := heightmap.New(w, h)
	hm.AddFBM(p.NewSampler(rng), p.Octaves, coordinates(p, w, h, 1), 0, 1)

	if p.Roughness > 0 {
		mpd := heightmap.New(w, h)
		mpd.MidPointDisplacement(rng, p.Roughness)
		mpd.Normalize(-1, 1)
		hm = hm.Lerp(mpd, mpdBlend)
	}

	if p.Hills != "" {
		addHills(hm, random.NewDice(p.Hills), rng)
	}

	if p.ErosionDrops > 0 {
		hm.RainErosion(p.ErosionDrops, erosionCoef, aggregationCoef, rng)
		smooth(hm)
	}

	hm.Normalize(0, 1)
	return hm
}

// addHills raises a dice-rolled number of hills at random positions.
func addHills(hm *heightmap.HeightMap, d random.Dice, rng random.Rng) {
	side := float32(min(hm.Width(), hm.Height()))
	for n := d.Roll(rng); n > 0; n-- {
		x := rng.Float32(0, float32(hm.Width()))
		y := rng.Float32(0, float32(hm.Height()))
		radius := rng.Float32(side/12, side/5)
		hm.AddHill(x, y, radius, rng.Float32(0.2, 0.6))
	}
}

var smoothKernel = []heightmap.NeighborCell{
	{Offset: heightmap.Point{X: -1, Y: -1}, Weight: 1},
	{Offset: heightmap.Point{X: 0, Y: -1}, Weight: 2},
	{Offset: heightmap.Point{X: 1, Y: -1}, Weight: 1},
	{Offset: heightmap.Point{X: -1, Y: 0}, Weight: 2},
	{Offset: heightmap.Point{X: 0, Y: 0}, Weight: 20},
	{Offset: heightmap.Point{X: 1, Y: 0}, Weight: 2},
	{Offset: heightmap.Point{X: -1, Y: 1}, Weight: 1},
	{Offset: heightmap.Point{X: 0, Y: 1}, Weight: 2},
	{Offset: heightmap.Point{X: 1, Y: 1}, Weight: 1},
}

// smooth blurs erosion pits without flattening the whole map.
func smooth(hm *heightmap.HeightMap) {
	lo, hi := hm.MinMax()
	hm.KernelTransform(smoothKernel, lo, hi)
}
