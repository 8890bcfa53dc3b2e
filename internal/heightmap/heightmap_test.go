package heightmap

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	hm := NewWithValues(2, 5, []float32{-25, -15, -10, -5, 0, 10, 20, 30, 40, 50})
	hm.Normalize(-25, 20)

	want := []float32{-25, -19, -16, -13, -10, -4, 2, 8, 14, 20}
	for i, w := range want {
		if got := hm.Values()[i]; got != w {
			t.Errorf("value %d = %v, want %v", i, got, w)
		}
	}
}

func TestNormalizeFlatMap(t *testing.T) {
	hm := NewWithValues(2, 2, []float32{3, 3, 3, 3})
	hm.Normalize(0, 1)
	for i, v := range hm.Values() {
		if v != 0 {
			t.Errorf("value %d = %v, want 0", i, v)
		}
	}
}

func TestNewPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"zero width", func() { New(0, 3) }},
		{"negative height", func() { New(3, -1) }},
		{"short values", func() { NewWithValues(2, 2, []float32{1, 2, 3}) }},
		{"out of bounds", func() { New(2, 2).Value(2, 0) }},
		{"inverted clamp", func() { New(2, 2).Clamp(1, 0) }},
		{"size mismatch", func() { New(2, 2).Add(New(3, 2)) }},
		{"lerp coefficient", func() { New(2, 2).Lerp(New(2, 2), 1.5) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestValuesAreCopied(t *testing.T) {
	src := []float32{1, 2, 3, 4}
	hm := NewWithValues(2, 2, src)
	src[0] = 99
	if hm.Value(0, 0) != 1 {
		t.Errorf("map shares the caller's slice")
	}
	hm.SetValue(1, 1, 7)
	if hm.Values()[3] != 7 {
		t.Errorf("SetValue(1, 1) did not write index 3")
	}
}

func TestInterpolatedValue(t *testing.T) {
	hm := NewWithValues(2, 2, []float32{0, 1, 2, 3})

	tests := []struct {
		name string
		x, y float32
		want float32
	}{
		{"origin", 0, 0, 0},
		{"centre", 0.5, 0.5, 1.5},
		{"quarter", 0.25, 0, 0.25},
		{"last column", 1, 0, 1},
		{"last row", 0.7, 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hm.InterpolatedValue(tt.x, tt.y); math.Abs(float64(got-tt.want)) > 1e-6 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSlopeAndNormalOnFlatMap(t *testing.T) {
	hm := New(4, 4)
	hm.AddScalar(0.5)
	if s := hm.Slope(1, 1); s != 0 {
		t.Errorf("Slope = %v, want 0", s)
	}
	if s := hm.Slope(3, 3); s != 0 {
		t.Errorf("corner Slope = %v, want 0", s)
	}
	if n := hm.Normal(1, 1, 0); n != [3]float32{0, 0, 1} {
		t.Errorf("Normal = %v, want up", n)
	}
}

func TestSlopeOnRamp(t *testing.T) {
	hm := NewWithValues(3, 1, []float32{0, 1, 3})
	// rise of 2 to the east, drop of 1 to the west
	want := float32(math.Atan2(1, 1))
	if got := hm.Slope(1, 0); math.Abs(float64(got-want)) > 1e-6 {
		t.Errorf("Slope = %v, want %v", got, want)
	}
}

func TestNormalIsUnitLength(t *testing.T) {
	hm := NewWithValues(3, 3, []float32{0, 0.1, 0.2, 0, 0.3, 0.5, 0.1, 0.2, 0.9})
	n := hm.Normal(0.5, 0.5, 0)
	l := math.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2]))
	if math.Abs(l-1) > 1e-5 {
		t.Errorf("|n| = %v", l)
	}
	if n := hm.Normal(2, 0, 0); n != [3]float32{0, 0, 1} {
		t.Errorf("edge Normal = %v", n)
	}
}

func TestCountsAndBorders(t *testing.T) {
	hm := New(5, 5)
	hm.SetValue(2, 2, 1)

	if got := hm.CountCells(0.5, 1); got != 1 {
		t.Errorf("CountCells = %d, want 1", got)
	}
	if got := hm.CountCells(0, 0); got != 24 {
		t.Errorf("CountCells(0, 0) = %d, want 24", got)
	}
	if hm.HasLandOnBorder(0.5) {
		t.Error("island reported land on border")
	}
	hm.SetValue(4, 3, 1)
	if !hm.HasLandOnBorder(0.5) {
		t.Error("border land not detected")
	}

	lo, hi := hm.MinMax()
	if lo != 0 || hi != 1 {
		t.Errorf("MinMax = %v, %v", lo, hi)
	}
}

func TestArithmetic(t *testing.T) {
	a := NewWithValues(2, 1, []float32{1, 2})
	b := NewWithValues(2, 1, []float32{3, 5})

	check := func(name string, hm *HeightMap, want ...float32) {
		t.Helper()
		for i, w := range want {
			if got := hm.Values()[i]; got != w {
				t.Errorf("%s[%d] = %v, want %v", name, i, got, w)
			}
		}
	}

	check("sum", a.Add(b), 4, 7)
	check("product", a.Multiply(b), 3, 10)
	check("lerp", a.Lerp(b, 0.5), 2, 3.5)
	check("a untouched", a, 1, 2)

	a.AddScalar(1)
	check("add scalar", a, 2, 3)
	a.Scale(2)
	check("scale", a, 4, 6)
	a.Clamp(5, 5.5)
	check("clamp", a, 5, 5.5)
	a.Clear()
	check("clear", a, 0, 0)
}
