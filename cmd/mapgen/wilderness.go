package main

import (
	"math"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

// Tile indices for the wilderness legend.
const (
	tGrass = iota
	tWater
	tTree
	tWall
	tFlowers
	tPath
	tSand
	tTallGrass
	tRock
	tShallowWater
	tDirt
	tBridge

	tileKinds
)

var tileNames = [tileKinds]string{
	"grass", "water", "tree", "wall", "flowers", "path",
	"sand", "tall_grass", "rock", "shallow_water", "dirt", "bridge",
}

type point struct{ x, y int }

var cardinals = [4]point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// tileGrid is a row-major grid of tile indices.
type tileGrid struct {
	w, h  int
	cells []int
}

func newTileGrid(w, h int) *tileGrid {
	return &tileGrid{w: w, h: h, cells: make([]int, w*h)}
}

func (g *tileGrid) at(p point) int { return g.cells[p.x+p.y*g.w] }

func (g *tileGrid) set(p point, t int) { g.cells[p.x+p.y*g.w] = t }

func (g *tileGrid) inBounds(p point) bool {
	return p.x >= 0 && p.x < g.w && p.y >= 0 && p.y < g.h
}

// interior excludes the outermost ring.
func (g *tileGrid) interior(p point) bool {
	return p.x >= 1 && p.x < g.w-1 && p.y >= 1 && p.y < g.h-1
}

func (g *tileGrid) walkable(p point) bool { return isWalkable(g.at(p)) }

// rows returns the grid as [y][x] for the JSON map format.
func (g *tileGrid) rows() [][]int {
	out := make([][]int, g.h)
	for y := range out {
		out[y] = append([]int(nil), g.cells[y*g.w:(y+1)*g.w]...)
	}
	return out
}

func (g *tileGrid) counts() [tileKinds]int {
	var c [tileKinds]int
	for _, t := range g.cells {
		c[t]++
	}
	return c
}

func isWalkable(tile int) bool {
	switch tile {
	case tGrass, tFlowers, tPath, tSand, tTallGrass, tShallowWater, tDirt, tBridge:
		return true
	}
	return false
}

// classifyTile picks a tile from [0, 1] elevation, moisture and detail, with
// the shoreline at waterLevel.
func classifyTile(elev, moist, det, waterLevel float32) int {
	switch {
	case elev < waterLevel-0.08:
		return tWater
	case elev < waterLevel:
		return tShallowWater
	case elev < waterLevel+0.04:
		return tSand
	case elev < waterLevel+0.14:
		// Low plains
		if moist > 0.6 {
			return tFlowers
		}
		if moist > 0.45 {
			return tTallGrass
		}
		return tGrass
	case elev < 0.70:
		if moist > 0.55 {
			return tTree
		}
		if moist > 0.35 {
			// Sparse mix using detail noise
			if det > 0.65 {
				return tTree
			}
			if det > 0.45 {
				return tTallGrass
			}
		}
		return tGrass
	case elev < 0.78:
		return tRock
	default:
		return tWall
	}
}

// wilderness turns the layers into a walkable map and returns it with the
// spawn point.
type wilderness struct {
	grid       *tileGrid
	layers     layers
	waterLevel float32
	rng        *rand.Rand
	log        zerolog.Logger
}

func (wd *wilderness) generate() point {
	g := wd.grid
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			g.set(point{x, y}, classifyTile(
				wd.layers.elevation.Value(x, y),
				wd.layers.moisture.Value(x, y),
				wd.layers.detail.Value(x, y),
				wd.waterLevel,
			))
		}
	}

	wd.applyEdges()

	start, ok := wd.nearestWalkable(point{g.w / 2, g.h / 2})
	if !ok {
		start = point{g.w / 2, g.h / 2}
	}
	wd.carveTrails(start)
	wd.ensureConnectivity(start)
	return wd.findSpawn()
}

const borderDepth = 3

// applyEdges walls the map in: the outer ring is always impassable and the
// next rings turn walkable tiles into trees or rock where the detail layer
// falls below a threshold that grows toward the edge.
func (wd *wilderness) applyEdges() {
	g := wd.grid
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			p := point{x, y}
			elev := wd.layers.elevation.Value(x, y)

			if !g.interior(p) {
				if elev >= 0.70 {
					g.set(p, tWall)
				} else {
					g.set(p, tTree)
				}
				continue
			}

			dist := min(x, y, g.w-1-x, g.h-1-y)
			if dist >= borderDepth || !g.walkable(p) {
				continue
			}
			threshold := float32(borderDepth-dist) * 0.3
			if wd.layers.detail.Value(x, y) < threshold {
				if elev >= 0.65 {
					g.set(p, tRock)
				} else {
					g.set(p, tTree)
				}
			}
		}
	}
}

// nearestWalkable scans square rings outward from c for an interior walkable tile.
func (wd *wilderness) nearestWalkable(c point) (point, bool) {
	g := wd.grid
	for r := 0; r < max(g.w, g.h)/2; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				p := point{c.x + dx, c.y + dy}
				if g.interior(p) && g.walkable(p) {
					return p, true
				}
			}
		}
	}
	return point{}, false
}

// carveTrails runs two or three trails from start to random edge points.
func (wd *wilderness) carveTrails(start point) {
	g := wd.grid
	n := 2 + wd.rng.Intn(2)
	for i := 0; i < n; i++ {
		var target point
		switch wd.rng.Intn(4) {
		case 0: // North edge
			target = point{borderClamp(wd.rng.Intn(g.w), g.w), 1}
		case 1: // South edge
			target = point{borderClamp(wd.rng.Intn(g.w), g.w), g.h - 2}
		case 2: // East edge
			target = point{g.w - 2, borderClamp(wd.rng.Intn(g.h), g.h)}
		default: // West edge
			target = point{1, borderClamp(wd.rng.Intn(g.h), g.h)}
		}
		wd.carveTrail(start, target)
	}
}

func borderClamp(v, limit int) int {
	return min(max(v, 4), limit-5)
}

// carveTrail walks toward target, biased to the longer axis with 30%
// lateral drift, laying path (bridges over water) and scattering dirt.
func (wd *wilderness) carveTrail(from, target point) {
	g := wd.grid
	p := from
	for steps := 0; steps < g.w*g.h && p != target; steps++ {
		d := point{}
		dist := point{target.x - p.x, target.y - p.y}
		if abs(dist.x) > abs(dist.y) {
			d.x = sign(dist.x)
			if wd.rng.Float64() < 0.3 {
				d = point{0, sign(dist.y)}
				if d.y == 0 {
					d.y = wd.rng.Intn(2)*2 - 1
				}
			}
		} else {
			d.y = sign(dist.y)
			if wd.rng.Float64() < 0.3 {
				d = point{sign(dist.x), 0}
				if d.x == 0 {
					d.x = wd.rng.Intn(2)*2 - 1
				}
			}
		}

		next := point{p.x + d.x, p.y + d.y}
		if !g.interior(next) {
			continue
		}

		switch cur := g.at(next); {
		case cur == tWater || cur == tShallowWater:
			g.set(next, tBridge)
		case cur != tPath && cur != tBridge:
			g.set(next, tPath)
			for _, o := range cardinals {
				a := point{next.x + o.x, next.y + o.y}
				if !g.interior(a) {
					continue
				}
				if t := g.at(a); (t == tGrass || t == tTallGrass) && wd.rng.Float64() < 0.4 {
					g.set(a, tDirt)
				}
			}
		}
		p = next
	}
}

// findSpawn searches rings outward from the centre for grass or path with at
// least seven walkable tiles in its 3x3 neighbourhood.
func (wd *wilderness) findSpawn() point {
	g := wd.grid
	c := point{g.w / 2, g.h / 2}
	for r := 0; r <= max(g.w, g.h)/2; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if abs(dx) != r && abs(dy) != r {
					continue // ring perimeter only
				}
				p := point{c.x + dx, c.y + dy}
				if p.x < 2 || p.x >= g.w-2 || p.y < 2 || p.y >= g.h-2 {
					continue
				}
				if t := g.at(p); t != tGrass && t != tPath {
					continue
				}
				walk := 0
				for ny := p.y - 1; ny <= p.y+1; ny++ {
					for nx := p.x - 1; nx <= p.x+1; nx++ {
						if g.walkable(point{nx, ny}) {
							walk++
						}
					}
				}
				if walk >= 7 {
					return p
				}
			}
		}
	}

	for y := 1; y < g.h-1; y++ {
		for x := 1; x < g.w-1; x++ {
			if g.walkable(point{x, y}) {
				return point{x, y}
			}
		}
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// --- Connectivity enforcement ---

// floodFill returns the walkable tiles reachable from s.
func (g *tileGrid) floodFill(s point) map[point]bool {
	region := make(map[point]bool)
	if !g.walkable(s) {
		return region
	}

	stack := []point{s}
	region[s] = true
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range cardinals {
			np := point{p.x + d.x, p.y + d.y}
			if !g.inBounds(np) || region[np] || !g.walkable(np) {
				continue
			}
			region[np] = true
			stack = append(stack, np)
		}
	}
	return region
}

// islands smaller than this are filled with trees instead of connected
const fillThreshold = 15

// ensureConnectivity joins every walkable region to the one containing
// start. Tiny pockets are filled in.
func (wd *wilderness) ensureConnectivity(start point) {
	g := wd.grid
	reached := g.floodFill(start)

	visited := make(map[point]bool, len(reached))
	for p := range reached {
		visited[p] = true
	}

	var islands []map[point]bool
	for y := 1; y < g.h-1; y++ {
		for x := 1; x < g.w-1; x++ {
			p := point{x, y}
			if visited[p] || !g.walkable(p) {
				continue
			}
			island := g.floodFill(p)
			for ip := range island {
				visited[ip] = true
			}
			islands = append(islands, island)
		}
	}

	if len(islands) == 0 {
		wd.log.Debug().Int("walkable", len(reached)).Msg("fully connected")
		return
	}

	connected, filled := 0, 0
	for _, island := range islands {
		if anyReached(island, reached) {
			continue // joined by an earlier corridor
		}
		if len(island) < fillThreshold {
			for p := range island {
				g.set(p, tTree)
			}
			filled += len(island)
			continue
		}

		wd.carveConnection(reached, island)
		for p := range island {
			for fp := range g.floodFill(p) {
				reached[fp] = true
			}
			break // one flood from any point reaches the whole corridor
		}
		connected++
	}

	wd.log.Debug().
		Int("islands", len(islands)).
		Int("connected", connected).
		Int("filled_tiles", filled).
		Msg("connectivity")
}

func anyReached(island, reached map[point]bool) bool {
	for p := range island {
		return reached[p]
	}
	return false
}

// border returns the region's tiles that touch a non-walkable tile, sampled
// down to limit. The order is fixed before sampling so a seed always
// picks the same tiles.
func (wd *wilderness) border(region map[point]bool, limit int) []point {
	g := wd.grid
	var out []point
	for p := range region {
		for _, d := range cardinals {
			np := point{p.x + d.x, p.y + d.y}
			if g.inBounds(np) && !g.walkable(np) {
				out = append(out, p)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].y != out[j].y {
			return out[i].y < out[j].y
		}
		return out[i].x < out[j].x
	})
	if len(out) > limit {
		wd.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		out = out[:limit]
	}
	return out
}

// carveConnection carves a corridor between the closest border tiles of
// the two regions, bridging water.
func (wd *wilderness) carveConnection(reached, island map[point]bool) {
	g := wd.grid
	best := math.MaxInt
	var from, to point
	mainBorder := wd.border(reached, 500)
	for _, ip := range wd.border(island, 200) {
		for _, mp := range mainBorder {
			if d := abs(ip.x-mp.x) + abs(ip.y-mp.y); d < best {
				best, from, to = d, ip, mp
			}
		}
	}

	p := from
	for p != to {
		if abs(to.x-p.x) >= abs(to.y-p.y) {
			p.x += sign(to.x - p.x)
		} else {
			p.y += sign(to.y - p.y)
		}
		if !g.interior(p) || g.walkable(p) {
			continue
		}
		if t := g.at(p); t == tWater || t == tShallowWater {
			g.set(p, tBridge)
		} else {
			g.set(p, tPath)
		}
	}
}
