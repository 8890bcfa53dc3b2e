package noise

import (
	"math"
	"testing"

	"noisekit/internal/random"
)

func TestWaveletTileFinite(t *testing.T) {
	tile := waveletTile(random.NewMTFromSeed(3))
	if len(tile) != tileSizeCubed {
		t.Fatalf("tile has %d cells", len(tile))
	}
	var sumSq float64
	for i, v := range tile {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			t.Fatalf("cell %d not finite: %v", i, v)
		}
		if math.Abs(f) > 8 {
			t.Fatalf("cell %d = %v, far outside the input range", i, v)
		}
		sumSq += f * f
	}
	if sumSq == 0 {
		t.Error("tile is all zeros")
	}
}

func TestWaveletTileDrawCount(t *testing.T) {
	rng := &fixedRng{}
	waveletTile(rng)
	if rng.draws != tileSizeCubed {
		t.Errorf("expected %d draws, got %d", tileSizeCubed, rng.draws)
	}
}

func TestWaveletWrapsNegativeCoordinates(t *testing.T) {
	n := NewWavelet(2, DefaultLacunarity, random.NewMTFromSeed(17))
	// The tile repeats every 32 cells at scale 2, i.e. every 16 units.
	// Coordinates are binary fractions so the shifts are exact.
	for i := 0; i < 40; i++ {
		p := []float32{float32(i)*0.375 - 7, float32(i)*0.625 - 3}
		shifted := []float32{p[0] - 16, p[1] + 32}
		a, b := n.Flat(p), n.Flat(shifted)
		if a != b {
			t.Fatalf("Flat(%v) = %v, Flat(%v) = %v", p, a, shifted, b)
		}
	}
}

func TestFloorMod(t *testing.T) {
	tests := []struct {
		v, m, want int32
	}{
		{5, 32, 5}, {-1, 32, 31}, {-32, 32, 0}, {-33, 32, 31}, {64, 32, 0},
	}
	for _, tt := range tests {
		if got := floorMod(tt.v, tt.m); got != tt.want {
			t.Errorf("floorMod(%d, %d) = %d, want %d", tt.v, tt.m, got, tt.want)
		}
	}
}
