package render

import "sort"

// RGB is an opaque 24-bit colour.
type RGB struct {
	R, G, B uint8
}

// Stop pins a colour to a height.
type Stop struct {
	At    float32
	Color RGB
}

// Ramp maps heights to colours by interpolating between sorted stops.
// Heights outside the stops take the nearest end colour.
type Ramp []Stop

// NewRamp returns the stops sorted by height.
func NewRamp(stops ...Stop) Ramp {
	r := append(Ramp(nil), stops...)
	sort.SliceStable(r, func(i, j int) bool { return r[i].At < r[j].At })
	return r
}

// Color returns the colour at height v.
func (r Ramp) Color(v float32) RGB {
	if len(r) == 0 {
		return RGB{}
	}
	if !(v > r[0].At) {
		return r[0].Color
	}
	last := r[len(r)-1]
	if v >= last.At {
		return last.Color
	}

	i := sort.Search(len(r), func(i int) bool { return r[i].At >= v })
	lo, hi := r[i-1], r[i]
	t := (v - lo.At) / (hi.At - lo.At)
	return RGB{
		R: lerp8(lo.Color.R, hi.Color.R, t),
		G: lerp8(lo.Color.G, hi.Color.G, t),
		B: lerp8(lo.Color.B, hi.Color.B, t),
	}
}

func lerp8(a, b uint8, t float32) uint8 {
	return uint8(float32(a) + (float32(b)-float32(a))*t + 0.5)
}

// Grayscale maps [0, 1] from black to white.
func Grayscale() Ramp {
	return NewRamp(Stop{0, RGB{0, 0, 0}}, Stop{1, RGB{255, 255, 255}})
}

// Terrain maps [0, 1] heights through water, beach, grass, rock and snow,
// with the shoreline at waterLevel.
func Terrain(waterLevel float32) Ramp {
	land := 1 - waterLevel
	return NewRamp(
		Stop{0, RGB{0, 0, 100}},
		Stop{waterLevel * 0.9, RGB{30, 60, 200}},
		Stop{waterLevel, RGB{64, 128, 240}},
		Stop{waterLevel + land*0.03, RGB{230, 215, 150}},
		Stop{waterLevel + land*0.1, RGB{80, 170, 60}},
		Stop{waterLevel + land*0.5, RGB{30, 110, 40}},
		Stop{waterLevel + land*0.75, RGB{120, 110, 100}},
		Stop{1, RGB{250, 250, 250}},
	)
}
