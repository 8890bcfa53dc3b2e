package server

import (
	"strings"
	"testing"

	"noisekit/internal/config"
	"noisekit/internal/noise"
	"noisekit/internal/render"
)

func testPreset() config.Preset {
	p := config.Default()
	p.Seed = 11
	p.Scale = 8
	return p
}

func noSeed() uint32 { panic("unexpected reseed") }

func TestPreviewPanAndZoom(t *testing.T) {
	pv := newPreview(testPreset())

	pv.apply(actionRight, noSeed)
	pv.apply(actionDown, noSeed)
	if pv.centerX != 1 || pv.centerY != 1 {
		t.Errorf("centre = (%v, %v), want (1, 1)", pv.centerX, pv.centerY)
	}
	pv.apply(actionLeft, noSeed)
	pv.apply(actionUp, noSeed)
	if pv.centerX != 0 || pv.centerY != 0 {
		t.Errorf("centre = (%v, %v), want origin", pv.centerX, pv.centerY)
	}

	pv.apply(actionZoomIn, noSeed)
	if pv.span != 6.4 {
		t.Errorf("span = %v, want 6.4", pv.span)
	}
	for i := 0; i < 200; i++ {
		pv.apply(actionZoomIn, noSeed)
	}
	if pv.span != minSpan {
		t.Errorf("span = %v, want %v", pv.span, minSpan)
	}
	for i := 0; i < 200; i++ {
		pv.apply(actionZoomOut, noSeed)
	}
	if pv.span != maxSpan {
		t.Errorf("span = %v, want %v", pv.span, maxSpan)
	}
}

func TestPreviewOctavesAndMode(t *testing.T) {
	pv := newPreview(testPreset())

	for i := 0; i < 10; i++ {
		pv.apply(actionOctavesDown, noSeed)
	}
	if pv.octaves != 1 {
		t.Errorf("octaves = %v, want 1", pv.octaves)
	}
	for i := 0; i < 200; i++ {
		pv.apply(actionOctavesUp, noSeed)
	}
	if pv.octaves != noise.MaxOctaves {
		t.Errorf("octaves = %v, want %d", pv.octaves, noise.MaxOctaves)
	}

	if pv.mode != config.ModeFBM {
		t.Fatalf("mode = %s", pv.mode)
	}
	pv.apply(actionMode, noSeed)
	if pv.mode != config.ModeTurbulence {
		t.Errorf("mode = %s, want turbulence", pv.mode)
	}
	if changed := pv.apply(actionNone, noSeed); changed {
		t.Error("no-op action reported a change")
	}
}

func TestPreviewReseed(t *testing.T) {
	pv := newPreview(testPreset())
	vp := render.NewViewport(8, 5, render.HUDRows, 0, 0, pv.span)
	before := pv.frame(vp)

	pv.apply(actionReseed, func() uint32 { return 99 })
	if pv.seed != 99 {
		t.Fatalf("seed = %d, want 99", pv.seed)
	}
	after := pv.frame(vp)

	same := true
	for i, v := range before.Values() {
		if after.Values()[i] != v {
			same = false
			break
		}
	}
	if same {
		t.Error("reseeding did not change the frame")
	}
	if !strings.Contains(pv.hud(), "seed 99") {
		t.Errorf("hud %q missing seed", pv.hud())
	}
}

func TestPreviewFrame(t *testing.T) {
	for _, mode := range []config.Mode{config.ModeFlat, config.ModeFBM, config.ModeTurbulence} {
		t.Run(string(mode), func(t *testing.T) {
			p := testPreset()
			p.Mode = mode
			pv := newPreview(p)

			vp := render.NewViewport(20, 11, render.HUDRows, 3, 3, pv.span)
			hm := pv.frame(vp)
			if hm.Width() != 20 || hm.Height() != 20 {
				t.Fatalf("frame %dx%d, want 20x20", hm.Width(), hm.Height())
			}
			lo, hi := hm.MinMax()
			if lo < 0 || hi > 1 {
				t.Errorf("frame range [%v, %v] outside [0, 1]", lo, hi)
			}
			if lo == hi {
				t.Error("flat frame")
			}
		})
	}
}

func TestPreviewFrameOtherDimensions(t *testing.T) {
	for _, dims := range []int{1, 3, 4} {
		p := testPreset()
		p.Dimensions = dims
		pv := newPreview(p)
		hm := pv.frame(render.NewViewport(6, 4, render.HUDRows, 0.5, 0.5, 2))
		if hm.Width() != 6 || hm.Height() != 6 {
			t.Errorf("%dD frame %dx%d", dims, hm.Width(), hm.Height())
		}
	}
}
