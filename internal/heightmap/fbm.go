package heightmap

import "fmt"

// Fractal is the noise surface the FBM operations sample.
type Fractal interface {
	Dimensions() int
	FBM(f []float32, octaves float32) float32
}

// FBMCoordinates maps cell (x, y) to noise coordinates
// ((x + AddX) * MulX / width, (y + AddY) * MulY / height).
type FBMCoordinates struct {
	MulX, MulY float32
	AddX, AddY float32
}

// AddFBM adds delta + fbm*scale to every cell. It panics unless noise is 2D.
func (hm *HeightMap) AddFBM(noise Fractal, octaves float32, coords FBMCoordinates, delta, scale float32) {
	hm.eachFBM(noise, octaves, coords, func(i int, v float32) {
		hm.values[i] += delta + v*scale
	})
}

// ScaleFBM multiplies every cell by delta + fbm*scale. It panics unless
// noise is 2D.
func (hm *HeightMap) ScaleFBM(noise Fractal, coords FBMCoordinates, octaves, delta, scale float32) {
	hm.eachFBM(noise, octaves, coords, func(i int, v float32) {
		hm.values[i] *= delta + v*scale
	})
}

func (hm *HeightMap) eachFBM(noise Fractal, octaves float32, c FBMCoordinates, apply func(i int, v float32)) {
	if d := noise.Dimensions(); d != 2 {
		panic(fmt.Sprintf("heightmap: fbm operations need 2D noise, got %dD", d))
	}

	xCoef := c.MulX / float32(hm.width)
	yCoef := c.MulY / float32(hm.height)

	var f [2]float32
	for x := 0; x < hm.width; x++ {
		f[0] = (float32(x) + c.AddX) * xCoef
		for y := 0; y < hm.height; y++ {
			f[1] = (float32(y) + c.AddY) * yCoef
			apply(x+y*hm.width, noise.FBM(f[:], octaves))
		}
	}
}
