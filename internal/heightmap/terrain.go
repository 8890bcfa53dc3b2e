package heightmap

import (
	"fmt"
	"math"

	"noisekit/internal/random"
)

// Point is an integer map position.
type Point struct {
	X, Y int
}

// NeighborCell is one kernel tap: the cell at Offset from the current one,
// scaled by Weight.
type NeighborCell struct {
	Offset Point
	Weight float32
}

// hillBounds returns the half-open cell range covered by a circle.
func (hm *HeightMap) hillBounds(x, y, radius float32) (minX, maxX, minY, maxY int) {
	minX = truncIndex(max(x-radius, 0))
	maxX = truncIndex(min(x+radius, float32(hm.width)))
	minY = truncIndex(max(y-radius, 0))
	maxY = truncIndex(min(y+radius, float32(hm.height)))
	return
}

// AddHill raises a half spheroid centred on (x, y). A height equal to
// radius gives a half sphere.
func (hm *HeightMap) AddHill(x, y, radius, height float32) {
	radius2 := radius * radius
	coef := height / radius2

	minX, maxX, minY, maxY := hm.hillBounds(x, y, radius)
	for cx := minX; cx < maxX; cx++ {
		xDist := (float32(cx) - x) * (float32(cx) - x)
		for cy := minY; cy < maxY; cy++ {
			z := radius2 - xDist - (float32(cy)-y)*(float32(cy)-y)
			if z > 0 {
				hm.values[cx+cy*hm.width] += z * coef
			}
		}
	}
}

// DigHill keeps the higher of map and hill when height is positive and
// the lower when it is not. Dig along a curve to carve rivers.
func (hm *HeightMap) DigHill(x, y, radius, height float32) {
	radius2 := radius * radius
	coef := height / radius2

	minX, maxX, minY, maxY := hm.hillBounds(x, y, radius)
	for cx := minX; cx < maxX; cx++ {
		xDist := (float32(cx) - x) * (float32(cx) - x)
		for cy := minY; cy < maxY; cy++ {
			dist := xDist + (float32(cy)-y)*(float32(cy)-y)
			if dist >= radius2 {
				continue
			}
			z := (radius2 - dist) * coef
			v := &hm.values[cx+cy*hm.width]
			if height > 0 {
				if *v < z {
					*v = z
				}
			} else if *v > z {
				*v = z
			}
		}
	}
}

// DigBezier digs hills along the cubic Bezier curve through the four control
// points. Radius and depth vary linearly from start to end.
func (hm *HeightMap) DigBezier(p [4]Point, startRadius, startDepth, endRadius, endDepth float32) {
	xFrom, yFrom := p[0].X, p[0].Y

	for t := float32(0); t <= 1; t += 0.001 {
		it := 1 - t
		xTo := truncIndex(float32(p[0].X)*it*it*it +
			3*float32(p[1].X)*t*it*it +
			3*float32(p[2].X)*t*t*it +
			float32(p[3].X)*t*t*t)
		yTo := truncIndex(float32(p[0].Y)*it*it*it +
			3*float32(p[1].Y)*t*it*it +
			3*float32(p[2].Y)*t*t*it +
			float32(p[3].Y)*t*t*t)

		if xTo != xFrom || yTo != yFrom {
			radius := startRadius + (endRadius-startRadius)*t
			depth := startDepth + (endDepth-startDepth)*t
			hm.DigHill(float32(xTo), float32(yTo), radius, depth)
			xFrom, yFrom = xTo, yTo
		}
	}
}

// RainErosion drops drops raindrops on random cells. Each drop flows down the
// steepest descent, eroding erosionCoef*slope per step, and deposits
// aggregationCoef times the carried sediment where it stops.
func (hm *HeightMap) RainErosion(drops int, erosionCoef, aggregationCoef float32, rng random.Rng) {
	for ; drops > 0; drops-- {
		curX := int(rng.Int32(0, int32(hm.width-1)))
		curY := int(rng.Int32(0, int32(hm.height-1)))
		var sediment float32

		for {
			var nextX, nextY int
			var slope float32
			v := hm.Value(curX, curY)
			for i := range neighborDX {
				nx, ny := curX+neighborDX[i], curY+neighborDY[i]
				if nx < 0 || nx >= hm.width || ny < 0 || ny >= hm.height {
					continue
				}
				if s := v - hm.values[nx+ny*hm.width]; s > slope {
					slope = s
					nextX, nextY = nx, ny
				}
			}

			if slope <= 0 {
				hm.values[curX+curY*hm.width] += aggregationCoef * sediment
				break
			}
			hm.values[curX+curY*hm.width] -= erosionCoef * slope
			curX, curY = nextX, nextY
			sediment += slope
		}
	}
}

// KernelTransform replaces each cell whose height lies in [minLevel,
// maxLevel] with the weighted mean of its in-bounds kernel taps. Cells are
// updated in place, column by column, so later cells see earlier results.
func (hm *HeightMap) KernelTransform(cells []NeighborCell, minLevel, maxLevel float32) {
	for x := 0; x < hm.width; x++ {
		for y := 0; y < hm.height; y++ {
			offset := x + y*hm.width
			if !(hm.values[offset] >= minLevel && hm.values[offset] <= maxLevel) {
				continue
			}
			var val, totalWeight float64
			for _, c := range cells {
				nx, ny := x+c.Offset.X, y+c.Offset.Y
				if nx >= 0 && nx < hm.width && ny >= 0 && ny < hm.height {
					val += float64(c.Weight) * float64(hm.values[nx+ny*hm.width])
					totalWeight += float64(c.Weight)
				}
			}
			hm.values[offset] = float32(val / totalWeight)
		}
	}
}

// AddVoronoi places sites random points and adds, for each cell,
// coefficients[i] times the squared distance to the (i+1)-th closest site.
func (hm *HeightMap) AddVoronoi(sites int, coefficients []float32, rng random.Rng) {
	if sites < len(coefficients) {
		panic(fmt.Sprintf("heightmap: %d voronoi sites for %d coefficients", sites, len(coefficients)))
	}

	type site struct {
		x, y int32
		dist float32
	}
	points := make([]site, sites)
	for i := range points {
		points[i].x = rng.Int32(0, int32(hm.width-1))
		points[i].y = rng.Int32(0, int32(hm.height-1))
	}

	for x := 0; x < hm.width; x++ {
		for y := 0; y < hm.height; y++ {
			for i := range points {
				dx := float32(points[i].x - int32(x))
				dy := float32(points[i].y - int32(y))
				points[i].dist = dx*dx + dy*dy
			}
			for _, coef := range coefficients {
				closest := 0
				for i := 1; i < len(points); i++ {
					if points[i].dist < points[closest].dist {
						closest = i
					}
				}
				hm.values[x+y*hm.width] += coef * points[closest].dist
				points[closest].dist = math.MaxFloat32
			}
		}
	}
}

// MidPointDisplacement fills the map with diamond-square fractal terrain
// over the square of side min(width, height). Roughness between 0.4 and
// 0.6 gives natural results.
func (hm *HeightMap) MidPointDisplacement(rng random.Rng, roughness float32) {
	step := 1
	offset := float32(1)
	initSize := min(hm.width, hm.height) - 1
	if initSize < 1 {
		return
	}
	size := initSize

	hm.SetValue(0, 0, rng.Float32(0, 1))
	hm.SetValue(size, 0, rng.Float32(0, 1))
	hm.SetValue(0, size, rng.Float32(0, 1))
	hm.SetValue(size, size, rng.Float32(0, 1))

	for size > 0 {
		half := size / 2

		// diamond
		for x := 0; x < step; x++ {
			for y := 0; y < step; y++ {
				z := hm.Value(x*size, y*size)
				z += hm.Value((x+1)*size, y*size)
				z += hm.Value((x+1)*size, (y+1)*size)
				z += hm.Value(x*size, (y+1)*size)
				z *= 0.25
				hm.displace(rng, half+x*size, half+y*size, z, offset)
			}
		}
		offset *= roughness

		// square
		for x := 0; x < step; x++ {
			for y := 0; y < step; y++ {
				dx := half + x*size
				dy := half + y*size
				hm.displaceSquare(rng, dx, dy-half, initSize, half, offset)
				hm.displaceSquare(rng, dx, dy+half, initSize, half, offset)
				hm.displaceSquare(rng, dx-half, dy, initSize, half, offset)
				hm.displaceSquare(rng, dx+half, dy, initSize, half, offset)
			}
		}
		size /= 2
		step *= 2
	}
}

// displaceSquare averages the in-bounds orthogonal neighbours at distance
// dist and displaces the result.
func (hm *HeightMap) displaceSquare(rng random.Rng, x, y, initSize, dist int, offset float32) {
	var z float32
	count := 0
	if y >= dist {
		z += hm.Value(x, y-dist)
		count++
	}
	if x >= dist {
		z += hm.Value(x-dist, y)
		count++
	}
	if y+dist < initSize {
		z += hm.Value(x, y+dist)
		count++
	}
	if x+dist < initSize {
		z += hm.Value(x+dist, y)
		count++
	}
	z /= float32(count)
	hm.displace(rng, x, y, z, offset)
}

func (hm *HeightMap) displace(rng random.Rng, x, y int, z, offset float32) {
	hm.SetValue(x, y, z+rng.Float32(-offset, offset))
}
