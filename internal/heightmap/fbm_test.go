package heightmap

import (
	"testing"

	"noisekit/internal/noise"
	"noisekit/internal/random"
)

// recordingFractal returns a constant and records the coordinates it saw.
type recordingFractal struct {
	dims   int
	value  float32
	points [][2]float32
}

func (r *recordingFractal) Dimensions() int { return r.dims }

func (r *recordingFractal) FBM(f []float32, octaves float32) float32 {
	r.points = append(r.points, [2]float32{f[0], f[1]})
	return r.value
}

func TestAddFBM(t *testing.T) {
	hm := New(4, 2)
	hm.AddScalar(1)
	fr := &recordingFractal{dims: 2, value: 0.5}
	coords := FBMCoordinates{MulX: 8, MulY: 4, AddX: 1, AddY: 0.5}

	hm.AddFBM(fr, 3, coords, 0.25, 2)

	for i, v := range hm.Values() {
		if v != 2.25 {
			t.Errorf("value %d = %v, want 2.25", i, v)
		}
	}
	if len(fr.points) != 8 {
		t.Fatalf("sampled %d points, want 8", len(fr.points))
	}
	// column-major walk: (x=1, y=0) is the third sample
	got := fr.points[2]
	want := [2]float32{(1 + 1) * 8.0 / 4, (0 + 0.5) * 4.0 / 2}
	if got != want {
		t.Errorf("coordinates = %v, want %v", got, want)
	}
}

func TestScaleFBM(t *testing.T) {
	hm := New(3, 3)
	hm.AddScalar(2)
	hm.ScaleFBM(&recordingFractal{dims: 2, value: -0.5}, FBMCoordinates{MulX: 1, MulY: 1}, 2, 1, 1)
	for i, v := range hm.Values() {
		if v != 1 {
			t.Errorf("value %d = %v, want 1", i, v)
		}
	}
}

func TestFBMRequires2D(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	New(2, 2).AddFBM(&recordingFractal{dims: 3}, 1, FBMCoordinates{MulX: 1, MulY: 1}, 0, 1)
}

func TestAddFBMWithSimplex(t *testing.T) {
	n := noise.NewSimplex(2, noise.DefaultLacunarity, random.NewMTFromSeed(6))
	hm := New(16, 16)
	hm.AddFBM(n, 4, FBMCoordinates{MulX: 4, MulY: 4}, 0, 1)

	lo, hi := hm.MinMax()
	if lo < -1 || hi > 1 || lo == hi {
		t.Errorf("unexpected range [%v, %v]", lo, hi)
	}
}
