package server

import (
	"fmt"

	"noisekit/internal/config"
	"noisekit/internal/heightmap"
	"noisekit/internal/noise"
	"noisekit/internal/render"
)

const (
	zoomFactor = 1.25
	minSpan    = 0.01
	maxSpan    = 10000
	panDivisor = 8
)

// preview is one session's view of the noise plane.
type preview struct {
	preset  config.Preset
	seed    uint32
	sampler noise.Sampler

	centerX, centerY float32
	span             float32
	octaves          float32
	mode             config.Mode
}

func newPreview(p config.Preset) *preview {
	pv := &preview{
		preset:  p,
		span:    p.Scale,
		octaves: p.Octaves,
		mode:    p.Mode,
	}
	pv.reseed(p.Seed)
	return pv
}

func (pv *preview) reseed(seed uint32) {
	pv.seed = seed
	pv.sampler = pv.preset.NewSampler(pv.preset.NewRng(seed))
}

// apply updates the view for one action and reports whether it changed.
// nextSeed is only called for actionReseed.
func (pv *preview) apply(a action, nextSeed func() uint32) bool {
	step := pv.span / panDivisor
	switch a {
	case actionUp:
		pv.centerY -= step
	case actionDown:
		pv.centerY += step
	case actionLeft:
		pv.centerX -= step
	case actionRight:
		pv.centerX += step
	case actionZoomIn:
		pv.span = max(pv.span/zoomFactor, minSpan)
	case actionZoomOut:
		pv.span = min(pv.span*zoomFactor, maxSpan)
	case actionOctavesUp:
		pv.octaves = min(pv.octaves+1, noise.MaxOctaves)
	case actionOctavesDown:
		pv.octaves = max(pv.octaves-1, 1)
	case actionMode:
		pv.mode = pv.mode.Next()
	case actionReseed:
		pv.reseed(nextSeed())
	default:
		return false
	}
	return true
}

// frame samples the viewport into a heightmap of [0, 1] values. Coordinates
// past the second are held at zero.
func (pv *preview) frame(vp render.Viewport) *heightmap.HeightMap {
	hm := heightmap.New(vp.PixW, vp.PixH)
	f := make([]float32, pv.sampler.Dimensions())
	for y := 0; y < vp.PixH; y++ {
		for x := 0; x < vp.PixW; x++ {
			nx, ny := vp.ToNoise(x, y)
			f[0] = nx
			if len(f) > 1 {
				f[1] = ny
			}
			hm.SetValue(x, y, pv.mode.Sample(pv.sampler, f, pv.octaves))
		}
	}
	if pv.mode != config.ModeTurbulence {
		hm.AddScalar(1)
		hm.Scale(0.5)
	}
	return hm
}

func (pv *preview) ramp() render.Ramp {
	if pv.mode == config.ModeTurbulence {
		return render.Grayscale()
	}
	return render.Terrain(pv.preset.WaterLevel)
}

func (pv *preview) hud() string {
	return fmt.Sprintf(" %s %s/%s seed %d | %s oct %.0f | (%.2f, %.2f) span %.2f | wasd pan +- zoom [] oct m mode r seed q quit",
		pv.preset.Name, pv.preset.Algorithm, pv.preset.RNG, pv.seed,
		pv.mode, pv.octaves, pv.centerX, pv.centerY, pv.span)
}
