package noise

// Perlin is gradient lattice noise with cubic interpolation between the
// 2^dimensions corners of the enclosing cell.
type Perlin struct {
	dimensions int
	perm       [256]uint8
	buffer     [MaxDimensions * 256]float32
}

func newPerlin(dimensions int, in *Initializer) *Perlin {
	p := &Perlin{dimensions: dimensions}
	p.perm = in.Map()
	p.buffer = in.Buffer(dimensions)
	return p
}

// Generate returns a value in [-0.99999, 0.99999].
func (p *Perlin) Generate(f []float32) float32 {
	var n [MaxDimensions]int32
	var r, w [MaxDimensions]float32
	for i := 0; i < p.dimensions; i++ {
		n[i] = floorInt32(f[i])
		r[i] = f[i] - float32(n[i])
		w[i] = cubic(r[i])
	}

	var v float32
	switch p.dimensions {
	case 1:
		v = p.perlin1(n, r, w)
	case 2:
		v = p.perlin2(n, r, w)
	case 3:
		v = p.perlin3(n, r, w)
	default:
		v = p.perlin4(n, r, w)
	}
	return clamp32(v, -clampBound, clampBound)
}

// lattice hashes the corner through the permutation table and dots the
// selected gradient with the offset to the corner.
func (p *Perlin) lattice(ix int32, fx float32, iy int32, fy float32, iz int32, fz float32, iw int32, fw float32) float32 {
	n := [MaxDimensions]int32{ix, iy, iz, iw}
	f := [MaxDimensions]float32{fx, fy, fz, fw}

	var idx int32
	for i := 0; i < p.dimensions; i++ {
		idx = int32(p.perm[(idx+n[i])&0xFF])
	}

	g := p.buffer[int(idx)*MaxDimensions:]
	var sum float32
	for i := 0; i < p.dimensions; i++ {
		sum += g[i] * f[i]
	}
	return sum
}

func (p *Perlin) perlin1(n [4]int32, r, w [4]float32) float32 {
	return lerp(
		p.lattice(n[0], r[0], 0, 0, 0, 0, 0, 0),
		p.lattice(n[0]+1, r[0]-1, 0, 0, 0, 0, 0, 0),
		w[0])
}

func (p *Perlin) perlin2(n [4]int32, r, w [4]float32) float32 {
	return lerp(
		lerp(
			p.lattice(n[0], r[0], n[1], r[1], 0, 0, 0, 0),
			p.lattice(n[0]+1, r[0]-1, n[1], r[1], 0, 0, 0, 0),
			w[0]),
		lerp(
			p.lattice(n[0], r[0], n[1]+1, r[1]-1, 0, 0, 0, 0),
			p.lattice(n[0]+1, r[0]-1, n[1]+1, r[1]-1, 0, 0, 0, 0),
			w[0]),
		w[1])
}

func (p *Perlin) perlin3(n [4]int32, r, w [4]float32) float32 {
	return lerp(
		lerp(
			lerp(
				p.lattice(n[0], r[0], n[1], r[1], n[2], r[2], 0, 0),
				p.lattice(n[0]+1, r[0]-1, n[1], r[1], n[2], r[2], 0, 0),
				w[0]),
			lerp(
				p.lattice(n[0], r[0], n[1]+1, r[1]-1, n[2], r[2], 0, 0),
				p.lattice(n[0]+1, r[0]-1, n[1]+1, r[1]-1, n[2], r[2], 0, 0),
				w[0]),
			w[1]),
		lerp(
			lerp(
				p.lattice(n[0], r[0], n[1], r[1], n[2]+1, r[2]-1, 0, 0),
				p.lattice(n[0]+1, r[0]-1, n[1], r[1], n[2]+1, r[2]-1, 0, 0),
				w[0]),
			lerp(
				p.lattice(n[0], r[0], n[1]+1, r[1]-1, n[2]+1, r[2]-1, 0, 0),
				p.lattice(n[0]+1, r[0]-1, n[1]+1, r[1]-1, n[2]+1, r[2]-1, 0, 0),
				w[0]),
			w[1]),
		w[2])
}

// perlin4 keeps a long-standing quirk: the (x, y+1, z+1) corner of both w
// slabs is sampled with a zero w component, so 4D output matches existing
// generated content.
func (p *Perlin) perlin4(n [4]int32, r, w [4]float32) float32 {
	return lerp(
		lerp(
			lerp(
				lerp(
					p.lattice(n[0], r[0], n[1], r[1], n[2], r[2], n[3], r[3]),
					p.lattice(n[0]+1, r[0]-1, n[1], r[1], n[2], r[2], n[3], r[3]),
					w[0]),
				lerp(
					p.lattice(n[0], r[0], n[1]+1, r[1]-1, n[2], r[2], n[3], r[3]),
					p.lattice(n[0]+1, r[0]-1, n[1]+1, r[1]-1, n[2], r[2], n[3], r[3]),
					w[0]),
				w[1]),
			lerp(
				lerp(
					p.lattice(n[0], r[0], n[1], r[1], n[2]+1, r[2]-1, n[3], r[3]),
					p.lattice(n[0]+1, r[0]-1, n[1], r[1], n[2]+1, r[2]-1, n[3], r[3]),
					w[0]),
				lerp(
					p.lattice(n[0], r[0], n[1]+1, r[1]-1, n[2]+1, r[2]-1, 0, 0),
					p.lattice(n[0]+1, r[0]-1, n[1]+1, r[1]-1, n[2]+1, r[2]-1, n[3], r[3]),
					w[0]),
				w[1]),
			w[2]),
		lerp(
			lerp(
				lerp(
					p.lattice(n[0], r[0], n[1], r[1], n[2], r[2], n[3]+1, r[3]-1),
					p.lattice(n[0]+1, r[0]-1, n[1], r[1], n[2], r[2], n[3]+1, r[3]-1),
					w[0]),
				lerp(
					p.lattice(n[0], r[0], n[1]+1, r[1]-1, n[2], r[2], n[3]+1, r[3]-1),
					p.lattice(n[0]+1, r[0]-1, n[1]+1, r[1]-1, n[2], r[2], n[3]+1, r[3]-1),
					w[0]),
				w[1]),
			lerp(
				lerp(
					p.lattice(n[0], r[0], n[1], r[1], n[2]+1, r[2]-1, n[3]+1, r[3]-1),
					p.lattice(n[0]+1, r[0]-1, n[1], r[1], n[2]+1, r[2]-1, n[3]+1, r[3]-1),
					w[0]),
				lerp(
					p.lattice(n[0], r[0], n[1]+1, r[1]-1, n[2]+1, r[2]-1, 0, 0),
					p.lattice(n[0]+1, r[0]-1, n[1]+1, r[1]-1, n[2]+1, r[2]-1, n[3]+1, r[3]-1),
					w[0]),
				w[1]),
			w[2]),
		w[3])
}
