package noise

import "noisekit/internal/random"

const (
	tileSize        = 32
	tileSizeSquared = tileSize * tileSize
	tileSizeCubed   = tileSizeSquared * tileSize
	waveletRadius   = 16
	waveletScale    = float32(2)
)

// Band-limiting filter taps for the downsampling pass.
var waveletDownCoeffs = [2 * waveletRadius]float32{
	0.000334, -0.001528, 0.000410, 0.003545, -0.000938, -0.008233, 0.002172,
	0.019120, -0.005040, -0.044412, 0.011655, 0.103311, -0.025936, -0.243780,
	0.033979, 0.655340, 0.655340, 0.033979, -0.243780, -0.025936, 0.103311,
	0.011655, -0.044412, -0.005040, 0.019120, 0.002172, -0.008233, -0.000938,
	0.003546, 0.000410, -0.001528, 0.000334,
}

var waveletUpCoeffs = [4]float32{0.25, 0.75, 0.75, 0.25}

// Wavelet samples a precomputed band-limited 32x32x32 tile with quadratic
// B-spline weights. It supports up to three dimensions.
type Wavelet struct {
	dimensions int
	tile       []float32
}

func newWavelet(dimensions int, in *Initializer) *Wavelet {
	return &Wavelet{dimensions: dimensions, tile: waveletTile(in.rng)}
}

// Generate returns a value in [-1, 1]. It panics when the noise was built
// with more than three dimensions.
func (wv *Wavelet) Generate(f []float32) float32 {
	if wv.dimensions > 3 {
		panic("noise: wavelet noise supports at most 3 dimensions")
	}

	var pf [3]float32
	for i := 0; i < wv.dimensions; i++ {
		pf[i] = f[i] * waveletScale
	}

	var mid [3]int32
	var w [3][3]float32
	for i := 0; i < 3; i++ {
		mid[i] = ceilInt32(pf[i] - 0.5)
		t := float32(mid[i]) - (pf[i] - 0.5)
		w[i][0] = t * t * 0.5
		w[i][2] = (1 - t) * (1 - t) * 0.5
		w[i][1] = 1 - w[i][0] - w[i][2]
	}

	var result float32
	for p2 := int32(-1); p2 <= 1; p2++ {
		for p1 := int32(-1); p1 <= 1; p1++ {
			for p0 := int32(-1); p0 <= 1; p0++ {
				p := [3]int32{p0, p1, p2}
				var c [3]int32
				weight := float32(1)
				for i := 0; i < 3; i++ {
					c[i] = floorMod(mid[i]+p[i], tileSize)
					weight *= w[i][p[i]+1]
				}
				result += weight * wv.tile[c[2]*tileSizeSquared+c[1]*tileSize+c[0]]
			}
		}
	}
	return clamp32(result, -1, 1)
}

// waveletTile fills a tile with uniform noise in [-1, 1], subtracts its
// low-pass reconstruction and adds back a copy shifted by an odd offset.
func waveletTile(rng random.Rng) []float32 {
	noise := make([]float32, tileSizeCubed)
	for i := range noise {
		noise[i] = rng.Float32(-1, 1)
	}

	temp1 := make([]float32, tileSizeCubed)
	temp2 := make([]float32, tileSizeCubed)

	for iy := 0; iy < tileSize; iy++ {
		for iz := 0; iz < tileSize; iz++ {
			i := iy*tileSize + iz*tileSizeSquared
			downsample(noise[i:], temp1[i:], 1)
			upsample(temp1[i:], temp2[i:], 1)
		}
	}
	for ix := 0; ix < tileSize; ix++ {
		for iz := 0; iz < tileSize; iz++ {
			i := ix + iz*tileSizeSquared
			downsample(temp2[i:], temp1[i:], tileSize)
			upsample(temp1[i:], temp2[i:], tileSize)
		}
	}
	for ix := 0; ix < tileSize; ix++ {
		for iy := 0; iy < tileSize; iy++ {
			i := ix + iy*tileSize
			downsample(temp2[i:], temp1[i:], tileSizeSquared)
			upsample(temp1[i:], temp2[i:], tileSizeSquared)
		}
	}
	for i := range noise {
		noise[i] -= temp2[i]
	}

	offset := tileSize / 2
	if offset&1 == 0 {
		offset++
	}
	i := 0
	for ix := 0; ix < tileSize; ix++ {
		for iy := 0; iy < tileSize; iy++ {
			for iz := 0; iz < tileSize; iz++ {
				temp1[i] = noise[(ix+offset)%tileSize+
					((iy+offset)%tileSize)*tileSize+
					((iz+offset)%tileSize)*tileSizeSquared]
				i++
			}
		}
	}
	for i := range noise {
		noise[i] += temp1[i]
	}
	return noise
}

func downsample(from, to []float32, stride int) {
	for i := 0; i < tileSize/2; i++ {
		to[i*stride] = 0
		for k := 2*i - waveletRadius; k < 2*i+waveletRadius; k++ {
			to[i*stride] += waveletDownCoeffs[waveletRadius+k-2*i] * from[int(floorMod(int32(k), tileSize))*stride]
		}
	}
}

func upsample(from, to []float32, stride int) {
	for i := 0; i < tileSize; i++ {
		k := i / 2
		to[i*stride] = waveletUpCoeffs[2+i-2*k] * from[int(floorMod(int32(k), tileSize/2))*stride]
	}
}
