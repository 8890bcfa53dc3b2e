package main

import (
	"testing"

	"github.com/rs/zerolog"

	"noisekit/internal/config"
	"noisekit/internal/random"
)

func TestClassifyTile(t *testing.T) {
	tests := []struct {
		name             string
		elev, moist, det float32
		want             int
	}{
		{"deep", 0.1, 0.5, 0.5, tWater},
		{"shallow", 0.3, 0.5, 0.5, tShallowWater},
		{"beach", 0.37, 0.5, 0.5, tSand},
		{"wet plain", 0.42, 0.7, 0.5, tFlowers},
		{"damp plain", 0.42, 0.5, 0.5, tTallGrass},
		{"dry plain", 0.42, 0.1, 0.5, tGrass},
		{"forest", 0.6, 0.6, 0.1, tTree},
		{"sparse trees", 0.6, 0.4, 0.7, tTree},
		{"sparse grass", 0.6, 0.4, 0.5, tTallGrass},
		{"meadow", 0.6, 0.4, 0.1, tGrass},
		{"rock", 0.75, 0.5, 0.5, tRock},
		{"peak", 0.9, 0.5, 0.5, tWall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyTile(tt.elev, tt.moist, tt.det, 0.35); got != tt.want {
				t.Errorf("got %s, want %s", tileNames[got], tileNames[tt.want])
			}
		})
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		w, h    int
		wantErr bool
	}{
		{"100x80", 100, 80, false},
		{"10x10", 10, 10, false},
		{"9x10", 0, 0, true},
		{"100", 0, 0, true},
		{"axb", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			w, h, err := parseSize(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v", err)
			}
			if w != tt.w || h != tt.h {
				t.Errorf("got %dx%d, want %dx%d", w, h, tt.w, tt.h)
			}
		})
	}
}

func TestResolveSeed(t *testing.T) {
	if got := resolveSeed(-1, 42); got != 42 {
		t.Errorf("preset seed = %d", got)
	}
	if got := resolveSeed(7, 42); got != 7 {
		t.Errorf("explicit seed = %d", got)
	}
}

func TestBorderClamp(t *testing.T) {
	for _, tt := range []struct{ v, limit, want int }{
		{0, 40, 4}, {20, 40, 20}, {39, 40, 35},
	} {
		if got := borderClamp(tt.v, tt.limit); got != tt.want {
			t.Errorf("borderClamp(%d, %d) = %d, want %d", tt.v, tt.limit, got, tt.want)
		}
	}
}

func testPreset() config.Preset {
	p := config.Default()
	p.Seed = 3
	p.Roughness = 0.5
	p.ErosionDrops = 200
	p.Hills = "1d3+1"
	return p
}

func TestBuildLayers(t *testing.T) {
	p := testPreset()
	a := buildLayers(p, 40, 30, p.Seed)
	b := buildLayers(p, 40, 30, p.Seed)

	for name, pair := range map[string][2][]float32{
		"elevation": {a.elevation.Values(), b.elevation.Values()},
		"moisture":  {a.moisture.Values(), b.moisture.Values()},
		"detail":    {a.detail.Values(), b.detail.Values()},
	} {
		for i, v := range pair[0] {
			if v < 0 || v > 1 {
				t.Fatalf("%s value %d = %v outside [0, 1]", name, i, v)
			}
			if pair[1][i] != v {
				t.Fatalf("%s value %d differs between runs", name, i)
			}
		}
	}
}

func generate(t *testing.T, seed uint32) (*tileGrid, point) {
	t.Helper()
	p := testPreset()
	wd := &wilderness{
		grid:       newTileGrid(60, 40),
		layers:     buildLayers(p, 60, 40, seed),
		waterLevel: p.WaterLevel,
		rng:        random.NewMTFromSeed(seed + 100).Rand(),
		log:        zerolog.Nop(),
	}
	return wd.grid, wd.generate()
}

func TestGenerateWilderness(t *testing.T) {
	g, spawn := generate(t, 5)

	for x := 0; x < g.w; x++ {
		for _, y := range []int{0, g.h - 1} {
			if g.walkable(point{x, y}) {
				t.Fatalf("border tile (%d, %d) is walkable", x, y)
			}
		}
	}
	for y := 0; y < g.h; y++ {
		for _, x := range []int{0, g.w - 1} {
			if g.walkable(point{x, y}) {
				t.Fatalf("border tile (%d, %d) is walkable", x, y)
			}
		}
	}

	if !g.walkable(spawn) {
		t.Fatalf("spawn %v is not walkable", spawn)
	}
	reached := g.floodFill(spawn)
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			if p := (point{x, y}); g.walkable(p) && !reached[p] {
				t.Fatalf("walkable tile %v unreachable from spawn %v", p, spawn)
			}
		}
	}

	g2, spawn2 := generate(t, 5)
	if spawn2 != spawn {
		t.Errorf("spawn differs between runs: %v vs %v", spawn, spawn2)
	}
	for i, c := range g.cells {
		if g2.cells[i] != c {
			t.Fatalf("tile %d differs between runs", i)
		}
	}
}

func TestFloodFill(t *testing.T) {
	g := newTileGrid(5, 3)
	for i := range g.cells {
		g.cells[i] = tWall
	}
	g.set(point{1, 1}, tGrass)
	g.set(point{2, 1}, tBridge)
	g.set(point{4, 1}, tGrass)

	region := g.floodFill(point{1, 1})
	if len(region) != 2 || !region[point{2, 1}] {
		t.Errorf("region = %v", region)
	}
	if len(g.floodFill(point{0, 0})) != 0 {
		t.Error("flood from a wall is not empty")
	}

	rows := g.rows()
	if len(rows) != 3 || len(rows[1]) != 5 || rows[1][2] != tBridge {
		t.Errorf("rows = %v", rows)
	}
	if c := g.counts(); c[tGrass] != 2 || c[tWall] != 12 {
		t.Errorf("counts = %v", c)
	}
}
