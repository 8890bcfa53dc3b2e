// Package render draws heightmaps as truecolor half-block terminal frames
// and as PNG images.
package render

import (
	"strings"

	"noisekit/internal/heightmap"
)

// HUDRows is the number of terminal rows reserved below the map.
const HUDRows = 1

var sentinel = Cell{Ch: '\x00', FgR: 255, BgB: 255, Bold: true}

// Engine is a per-session double-buffer diff renderer.
type Engine struct {
	width, height int
	current       [][]Cell
	next          [][]Cell
	firstFrame    bool
}

// NewEngine creates a renderer for the given terminal dimensions.
func NewEngine(width, height int) *Engine {
	e := &Engine{}
	e.Resize(width, height)
	return e
}

// Resize adjusts the renderer for a new terminal size. The next frame is
// drawn in full.
func (e *Engine) Resize(width, height int) {
	e.width = max(width, 0)
	e.height = max(height, 0)
	e.current = e.makeBuffer(sentinel)
	e.next = e.makeBuffer(Cell{})
	e.firstFrame = true
}

// Size returns the terminal dimensions the engine draws for.
func (e *Engine) Size() (int, int) {
	return e.width, e.height
}

func (e *Engine) makeBuffer(fill Cell) [][]Cell {
	buf := make([][]Cell, e.height)
	for y := 0; y < e.height; y++ {
		buf[y] = make([]Cell, e.width)
		for x := 0; x < e.width; x++ {
			buf[y][x] = fill
		}
	}
	return buf
}

// Render produces the ANSI output that turns the previous frame into this
// one. Map row 2r is drawn in the foreground of terminal row r and row 2r+1
// in its background. Cells outside hm are black.
func (e *Engine) Render(hm *heightmap.HeightMap, ramp Ramp, hud string) string {
	mapRows := e.height - HUDRows
	for y := 0; y < mapRows; y++ {
		for x := 0; x < e.width; x++ {
			top := pixelColor(hm, ramp, x, 2*y)
			bottom := pixelColor(hm, ramp, x, 2*y+1)
			e.next[y][x] = Cell{
				Ch:  UpperHalf,
				FgR: top.R, FgG: top.G, FgB: top.B,
				BgR: bottom.R, BgG: bottom.G, BgB: bottom.B,
			}
		}
	}
	e.writeHUDTextLine(e.height-1, hud, 230, 230, 230, 20, 20, 30)

	// Diff current vs next, emit only changed cells
	var sb strings.Builder
	sb.Grow(16384)

	lastRow, lastCol := -1, -1
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			nc := e.next[y][x]
			if e.firstFrame || nc != e.current[y][x] {
				// Only emit cursor position if not consecutive
				if y != lastRow || x != lastCol {
					sb.WriteString(MoveTo(y+1, x+1))
				}
				WriteCellSGR(&sb, nc)
				lastRow = y
				lastCol = x + 1
			}
		}
	}

	if sb.Len() > 0 {
		sb.WriteString(Reset)
	}

	e.current, e.next = e.next, e.current
	e.firstFrame = false

	return sb.String()
}

func pixelColor(hm *heightmap.HeightMap, ramp Ramp, x, y int) RGB {
	if x >= hm.Width() || y >= hm.Height() {
		return RGB{}
	}
	return ramp.Color(hm.Value(x, y))
}

func (e *Engine) writeHUDTextLine(row int, text string, fgR, fgG, fgB, bgR, bgG, bgB uint8) {
	if row < 0 || row >= e.height {
		return
	}
	runes := []rune(text)
	for x := 0; x < e.width; x++ {
		if x < len(runes) {
			e.next[row][x] = Cell{Ch: runes[x], FgR: fgR, FgG: fgG, FgB: fgB, BgR: bgR, BgG: bgG, BgB: bgB}
		} else {
			e.next[row][x] = Cell{Ch: ' ', BgR: bgR, BgG: bgG, BgB: bgB}
		}
	}
}
