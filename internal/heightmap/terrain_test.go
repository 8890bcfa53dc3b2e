package heightmap

import (
	"math"
	"testing"

	"noisekit/internal/random"
)

// lowRng returns the lower bound, or the mean when one is given.
type lowRng struct{}

func (lowRng) Int32(min, max int32) int32                 { return min }
func (lowRng) Float32(min, max float32) float32           { return min }
func (lowRng) Float64(min, max float64) float64           { return min }
func (lowRng) Int32Mean(min, max, mean int32) int32       { return mean }
func (lowRng) Float32Mean(min, max, mean float32) float32 { return mean }
func (lowRng) Float64Mean(min, max, mean float64) float64 { return mean }

func TestKernelTransform(t *testing.T) {
	hm := NewWithValues(3, 3, []float32{3, 6, 9, 12, 15, 18, 21, 24, 27})
	cells := []NeighborCell{
		{Offset: Point{-1, 0}, Weight: 0.33},
		{Offset: Point{0, 0}, Weight: 0.33},
		{Offset: Point{1, 0}, Weight: 0.33},
	}
	hm.KernelTransform(cells, 0, 100)

	want := []float32{4.5, 6.5, 7.75, 13.5, 15.5, 16.75, 22.5, 24.5, 25.75}
	for i, w := range want {
		if got := hm.Values()[i]; got != w {
			t.Errorf("value %d = %v, want %v", i, got, w)
		}
	}
}

func TestKernelTransformSkipsOutOfLevel(t *testing.T) {
	hm := NewWithValues(2, 1, []float32{0, 10})
	hm.KernelTransform([]NeighborCell{{Offset: Point{-1, 0}, Weight: 1}, {Weight: 1}}, 5, 20)
	if got := hm.Values(); got[0] != 0 || got[1] != 5 {
		t.Errorf("values = %v, want [0 5]", got)
	}
}

func TestAddHill(t *testing.T) {
	hm := New(5, 5)
	hm.AddHill(2, 2, 2, 1)

	if got := hm.Value(2, 2); got != 1 {
		t.Errorf("peak = %v, want 1", got)
	}
	if got := hm.Value(0, 2); got != 0 {
		t.Errorf("rim = %v, want 0", got)
	}
	if got := hm.Value(1, 2); got != 0.75 {
		t.Errorf("slope = %v, want 0.75", got)
	}
}

func TestDigHill(t *testing.T) {
	hm := New(5, 5)
	hm.AddScalar(1)

	hm.DigHill(2, 2, 2, -1)
	if got := hm.Value(2, 2); got != -1 {
		t.Errorf("dug centre = %v, want -1", got)
	}
	if got := hm.Value(0, 0); got != 1 {
		t.Errorf("outside = %v, want 1", got)
	}

	hm.DigHill(2, 2, 2, 4)
	if got := hm.Value(2, 2); got != 4 {
		t.Errorf("raised centre = %v, want 4", got)
	}
	// outside the radius
	if got := hm.Value(0, 2); got != 1 {
		t.Errorf("rim = %v, want 1", got)
	}
}

func TestDigBezier(t *testing.T) {
	hm := New(10, 3)
	hm.DigBezier([4]Point{{0, 0}, {3, 0}, {6, 0}, {9, 0}}, 1, -1, 1, -1)

	if got := hm.Value(0, 0); got != 0 {
		t.Errorf("start cell = %v, want 0", got)
	}
	for x := 1; x <= 8; x++ {
		if got := hm.Value(x, 0); got != -1 {
			t.Errorf("cell (%d, 0) = %v, want -1", x, got)
		}
		if got := hm.Value(x, 1); got != 0 {
			t.Errorf("cell (%d, 1) = %v, want 0", x, got)
		}
	}
}

func TestAddVoronoi(t *testing.T) {
	hm := New(4, 3)
	hm.AddVoronoi(3, []float32{1}, lowRng{})

	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if got, want := hm.Value(x, y), float32(x*x+y*y); got != want {
				t.Errorf("(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestAddVoronoiSecondClosest(t *testing.T) {
	hm := New(3, 3)
	// every site lands on (0, 0), so the second coefficient sees the same distance
	hm.AddVoronoi(2, []float32{1, -1}, lowRng{})
	for i, v := range hm.Values() {
		if v != 0 {
			t.Errorf("value %d = %v, want 0", i, v)
		}
	}
}

func TestAddVoronoiPanicsOnTooFewSites(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	New(3, 3).AddVoronoi(1, []float32{1, 2}, lowRng{})
}

func cone(size int) *HeightMap {
	hm := New(size, size)
	c := float32(size-1) / 2
	hm.AddHill(c, c, c, 1)
	return hm
}

func TestRainErosion(t *testing.T) {
	a := cone(17)
	b := cone(17)
	peakBefore := a.Value(8, 8)

	a.RainErosion(500, 0.05, 0.05, random.NewMTFromSeed(4))
	b.RainErosion(500, 0.05, 0.05, random.NewMTFromSeed(4))

	for i := range a.Values() {
		v := a.Values()[i]
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("value %d not finite", i)
		}
		if v != b.Values()[i] {
			t.Fatalf("value %d differs between identical runs", i)
		}
	}
	if a.Value(8, 8) > peakBefore {
		t.Errorf("peak rose from %v to %v", peakBefore, a.Value(8, 8))
	}
}

func TestMidPointDisplacement(t *testing.T) {
	a := New(33, 33)
	b := New(33, 33)
	a.MidPointDisplacement(random.NewMTFromSeed(12), 0.5)
	b.MidPointDisplacement(random.NewMTFromSeed(12), 0.5)

	for i, v := range a.Values() {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("value %d not finite", i)
		}
		if v != b.Values()[i] {
			t.Fatalf("value %d differs between identical runs", i)
		}
	}
	lo, hi := a.MinMax()
	if lo == hi {
		t.Error("displacement produced a flat map")
	}
}

func TestMidPointDisplacementOddSizes(t *testing.T) {
	for _, size := range [][2]int{{10, 10}, {20, 12}, {7, 30}, {2, 2}} {
		hm := New(size[0], size[1])
		hm.MidPointDisplacement(random.NewCMWCFromSeed(1), 0.45)
	}
}
