// Package heightmap holds a 2D grid of float32 heights and the terrain
// operations that shape it from noise and random draws.
package heightmap

import (
	"fmt"
	"math"
)

// HeightMap is a row-major grid of heights.
type HeightMap struct {
	width  int
	height int
	values []float32
}

// New returns a width x height map filled with zeros. It panics when either
// side is not positive.
func New(width, height int) *HeightMap {
	checkSize(width, height)
	return &HeightMap{width: width, height: height, values: make([]float32, width*height)}
}

// NewWithValues returns a map over a copy of values, which must hold
// width*height heights in row-major order.
func NewWithValues(width, height int, values []float32) *HeightMap {
	checkSize(width, height)
	if len(values) != width*height {
		panic(fmt.Sprintf("heightmap: got %d values for a %dx%d map", len(values), width, height))
	}
	v := make([]float32, len(values))
	copy(v, values)
	return &HeightMap{width: width, height: height, values: v}
}

func checkSize(width, height int) {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("heightmap: invalid size %dx%d", width, height))
	}
}

func (hm *HeightMap) Width() int  { return hm.width }
func (hm *HeightMap) Height() int { return hm.height }

// Values returns the backing slice. Writes through it modify the map.
func (hm *HeightMap) Values() []float32 { return hm.values }

// Value returns the height at (x, y). It panics outside the map.
func (hm *HeightMap) Value(x, y int) float32 {
	return hm.values[hm.index(x, y)]
}

// SetValue sets the height at (x, y). It panics outside the map.
func (hm *HeightMap) SetValue(x, y int, v float32) {
	hm.values[hm.index(x, y)] = v
}

func (hm *HeightMap) index(x, y int) int {
	if x < 0 || x >= hm.width || y < 0 || y >= hm.height {
		panic(fmt.Sprintf("heightmap: (%d, %d) outside %dx%d map", x, y, hm.width, hm.height))
	}
	return x + y*hm.width
}

// InterpolatedValue bilinearly interpolates the height at a fractional
// position. Positions on the last row or column return the cell value.
func (hm *HeightMap) InterpolatedValue(x, y float32) float32 {
	ix, iy := truncIndex(x), truncIndex(y)
	if ix >= hm.width-1 || iy >= hm.height-1 {
		return hm.Value(ix, iy)
	}

	dx := x - float32(ix)
	dy := y - float32(iy)
	c1 := hm.Value(ix, iy)
	c2 := hm.Value(ix+1, iy)
	c3 := hm.Value(ix, iy+1)
	c4 := hm.Value(ix+1, iy+1)
	top := (1-dx)*c1 + dx*c2
	bottom := (1-dx)*c3 + dx*c4
	return (1-dy)*top + dy*bottom
}

// truncIndex truncates toward zero, saturating negatives and NaN at 0.
func truncIndex(f float32) int {
	if !(f > 0) {
		return 0
	}
	return int(f)
}

var (
	neighborDX = [8]int{-1, 0, 1, -1, 1, -1, 0, 1}
	neighborDY = [8]int{-1, -1, -1, 0, 0, 1, 1, 1}
)

// Slope returns the steepness at (x, y) in radians, from the largest rise
// and the largest drop among the eight neighbours.
func (hm *HeightMap) Slope(x, y int) float32 {
	var minDy, maxDy float32
	v := hm.Value(x, y)
	for i := range neighborDX {
		nx, ny := x+neighborDX[i], y+neighborDY[i]
		if nx < 0 || nx >= hm.width || ny < 0 || ny >= hm.height {
			continue
		}
		d := hm.Value(nx, ny) - v
		if d > maxDy {
			maxDy = d
		} else if d < minDy {
			minDy = d
		}
	}
	return float32(math.Atan2(float64(maxDy+minDy), 1))
}

// Normal returns the unit surface normal at a fractional position, treating
// heights below waterLevel as flat water. Positions on the last row or
// column get the vertical normal.
func (hm *HeightMap) Normal(x, y, waterLevel float32) [3]float32 {
	n := [3]float32{0, 0, 1}
	if x >= float32(hm.width)-1 || y >= float32(hm.height)-1 {
		return n
	}

	h0 := max(hm.InterpolatedValue(x, y), waterLevel)
	hx := max(hm.InterpolatedValue(x+1, y), waterLevel)
	hy := max(hm.InterpolatedValue(x, y+1), waterLevel)

	n[0] = 255 * (h0 - hx)
	n[1] = 255 * (h0 - hy)
	n[2] = 16

	invLen := 1 / float32(math.Sqrt(float64(n[0]*n[0]+n[1]*n[1]+n[2]*n[2])))
	n[0] *= invLen
	n[1] *= invLen
	n[2] *= invLen
	return n
}

// CountCells returns how many heights lie in [min, max].
func (hm *HeightMap) CountCells(min, max float32) int {
	count := 0
	for _, v := range hm.values {
		if v >= min && v <= max {
			count++
		}
	}
	return count
}

// HasLandOnBorder reports whether any border cell is above waterLevel.
// False means the land forms an island.
func (hm *HeightMap) HasLandOnBorder(waterLevel float32) bool {
	for x := 0; x < hm.width; x++ {
		if hm.Value(x, 0) > waterLevel || hm.Value(x, hm.height-1) > waterLevel {
			return true
		}
	}
	for y := 0; y < hm.height; y++ {
		if hm.Value(0, y) > waterLevel || hm.Value(hm.width-1, y) > waterLevel {
			return true
		}
	}
	return false
}

// MinMax returns the lowest and highest heights. NaN cells are ignored.
func (hm *HeightMap) MinMax() (lo, hi float32) {
	lo, hi = math.MaxFloat32, -math.MaxFloat32
	for _, v := range hm.values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Clamp limits every height to [min, max]. It panics when min > max.
func (hm *HeightMap) Clamp(min, max float32) {
	checkRange(min, max)
	for i, v := range hm.values {
		if !(v >= min) {
			v = min
		}
		if v > max {
			v = max
		}
		hm.values[i] = v
	}
}

// Normalize rescales the heights linearly so the current minimum becomes
// min and the current maximum becomes max. A flat map becomes all min.
func (hm *HeightMap) Normalize(min, max float32) {
	checkRange(min, max)
	curMin, curMax := hm.MinMax()

	var invMax float64
	if curMax-curMin != 0 {
		invMax = (float64(max) - float64(min)) / (float64(curMax) - float64(curMin))
	}
	for i, v := range hm.values {
		hm.values[i] = float32(float64(min) + (float64(v)-float64(curMin))*invMax)
	}
}

func checkRange(min, max float32) {
	if min > max {
		panic(fmt.Sprintf("heightmap: min %v greater than max %v", min, max))
	}
}

// Clear resets every height to zero.
func (hm *HeightMap) Clear() {
	clear(hm.values)
}

// Lerp returns a new map interpolated between hm and other by coefficient,
// which must be in [0, 1].
func (hm *HeightMap) Lerp(other *HeightMap, coefficient float32) *HeightMap {
	hm.checkSameSize(other)
	if !(coefficient >= 0 && coefficient <= 1) {
		panic(fmt.Sprintf("heightmap: lerp coefficient %v outside [0, 1]", coefficient))
	}
	out := New(hm.width, hm.height)
	for i, v := range hm.values {
		out.values[i] = v + (other.values[i]-v)*coefficient
	}
	return out
}

// Add returns the cell-wise sum of two maps of the same size.
func (hm *HeightMap) Add(other *HeightMap) *HeightMap {
	hm.checkSameSize(other)
	out := NewWithValues(hm.width, hm.height, hm.values)
	for i, v := range other.values {
		out.values[i] += v
	}
	return out
}

// Multiply returns the cell-wise product of two maps of the same size.
func (hm *HeightMap) Multiply(other *HeightMap) *HeightMap {
	hm.checkSameSize(other)
	out := NewWithValues(hm.width, hm.height, hm.values)
	for i, v := range other.values {
		out.values[i] *= v
	}
	return out
}

// AddScalar adds v to every height.
func (hm *HeightMap) AddScalar(v float32) {
	for i := range hm.values {
		hm.values[i] += v
	}
}

// Scale multiplies every height by v.
func (hm *HeightMap) Scale(v float32) {
	for i := range hm.values {
		hm.values[i] *= v
	}
}

func (hm *HeightMap) checkSameSize(other *HeightMap) {
	if hm.width != other.width || hm.height != other.height {
		panic(fmt.Sprintf("heightmap: size mismatch %dx%d vs %dx%d", hm.width, hm.height, other.width, other.height))
	}
}
