package noise

const simplexScale float32 = 0.5

// simplexTable maps the 6-bit magnitude comparison code of a 4D point to the
// rank of each axis within its simplex.
var simplexTable = [64][4]uint8{
	{0, 1, 2, 3}, {0, 1, 3, 2}, {0, 0, 0, 0}, {0, 2, 3, 1},
	{0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {1, 2, 3, 0},
	{0, 2, 1, 3}, {0, 0, 0, 0}, {0, 3, 1, 2}, {0, 3, 2, 1},
	{0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {1, 3, 2, 0},
	{0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0},
	{0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0},
	{1, 2, 0, 3}, {0, 0, 0, 0}, {1, 3, 0, 2}, {0, 0, 0, 0},
	{0, 0, 0, 0}, {0, 0, 0, 0}, {2, 3, 0, 1}, {2, 3, 1, 0},
	{1, 0, 2, 3}, {1, 0, 3, 2}, {0, 0, 0, 0}, {0, 0, 0, 0},
	{0, 0, 0, 0}, {2, 0, 3, 1}, {0, 0, 0, 0}, {2, 1, 3, 0},
	{0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0},
	{0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0},
	{2, 0, 1, 3}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0},
	{3, 0, 1, 2}, {3, 0, 2, 1}, {0, 0, 0, 0}, {3, 1, 2, 0},
	{2, 1, 0, 3}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0},
	{3, 1, 0, 2}, {0, 0, 0, 0}, {3, 2, 0, 1}, {3, 2, 1, 0},
}

// Skew factors. They are variables so that derived offsets are rounded in
// float64 before narrowing to float32.
var (
	skewF2   = 0.366025403
	unskewG2 = 0.211324865
	skewF3   = 0.333333333
	unskewG3 = 0.166666667
	skewF4   = 0.309016994
	unskewG4 = 0.138196601
)

// Simplex is gradient noise summed over the corners of the simplex that
// contains the point.
type Simplex struct {
	dimensions int
	perm       [256]uint8
}

func newSimplex(dimensions int, in *Initializer) *Simplex {
	return &Simplex{dimensions: dimensions, perm: in.Map()}
}

// Generate returns the noise value at f. The result is not clamped.
func (s *Simplex) Generate(f []float32) float32 {
	switch s.dimensions {
	case 1:
		return s.simplex1(f[0])
	case 2:
		return s.simplex2(f[0], f[1])
	case 3:
		return s.simplex3(f[0], f[1], f[2])
	default:
		return s.simplex4(f[0], f[1], f[2], f[3])
	}
}

func (s *Simplex) hash(i int32) int32 {
	return int32(s.perm[i&0xFF])
}

func (s *Simplex) simplex1(f0 float32) float32 {
	i0 := floorInt32(f0 * simplexScale)
	i1 := i0 + 1
	x0 := f0*simplexScale - float32(i0)
	x1 := x0 - 1
	t0 := 1 - x0*x0
	t1 := 1 - x1*x1
	t0 *= t0
	t1 *= t1

	n0 := gradient1(s.hash(i0), x0)
	n0 *= t0 * t0
	n1 := gradient1(s.hash(i1), x1)
	n1 *= t1 * t1

	return 0.25 * (n0 + n1)
}

func (s *Simplex) simplex2(f0, f1 float32) float32 {
	g2 := unskewG2

	sk := float64(f0+f1) * skewF2 * float64(simplexScale)
	xs := f0*simplexScale + float32(sk)
	ys := f1*simplexScale + float32(sk)
	i := floorInt32(xs)
	j := floorInt32(ys)
	t := (float64(i) + float64(j)) * g2
	xo := float64(i) - t
	yo := float64(j) - t
	x0 := f0*simplexScale - float32(xo)
	y0 := f1*simplexScale - float32(yo)
	ii := floorMod(i, 256)
	jj := floorMod(j, 256)

	var i1, j1 int32
	if x0 > y0 {
		i1 = 1
	} else {
		j1 = 1
	}
	x1 := x0 - float32(i1) + float32(g2)
	y1 := y0 - float32(j1) + float32(g2)
	x2 := x0 - 1 + float32(2*g2)
	y2 := y0 - 1 + float32(2*g2)

	var n0, n1, n2 float32
	if t0 := 0.5 - x0*x0 - y0*y0; t0 >= 0 {
		idx := s.hash(ii + s.hash(jj))
		t0 *= t0
		n0 = gradient2(idx, x0, y0) * t0 * t0
	}
	if t1 := 0.5 - x1*x1 - y1*y1; t1 >= 0 {
		idx := s.hash(ii + i1 + s.hash(jj+j1))
		t1 *= t1
		n1 = gradient2(idx, x1, y1) * t1 * t1
	}
	if t2 := 0.5 - x2*x2 - y2*y2; t2 >= 0 {
		idx := s.hash(ii + 1 + s.hash(jj+1))
		t2 *= t2
		n2 = gradient2(idx, x2, y2) * t2 * t2
	}
	return 40 * (n0 + n1 + n2)
}

func (s *Simplex) simplex3(f0, f1, f2 float32) float32 {
	g3 := unskewG3

	sk := float64(f0+f1+f2) * skewF3 * float64(simplexScale)
	xs := f0*simplexScale + float32(sk)
	ys := f1*simplexScale + float32(sk)
	zs := f2*simplexScale + float32(sk)
	i := floorInt32(xs)
	j := floorInt32(ys)
	k := floorInt32(zs)
	t := (float64(i) + float64(j) + float64(k)) * g3
	xo := float64(i) - t
	yo := float64(j) - t
	zo := float64(k) - t
	x0 := f0*simplexScale - float32(xo)
	y0 := f1*simplexScale - float32(yo)
	z0 := f2*simplexScale - float32(zo)

	var i1, j1, k1, i2, j2, k2 int32
	if x0 >= y0 {
		switch {
		case y0 >= z0:
			i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 1, 0
		case x0 >= z0:
			i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 0, 1
		default:
			i1, j1, k1, i2, j2, k2 = 0, 0, 1, 1, 0, 1
		}
	} else {
		switch {
		case y0 < z0:
			i1, j1, k1, i2, j2, k2 = 0, 0, 1, 0, 1, 1
		case x0 < z0:
			i1, j1, k1, i2, j2, k2 = 0, 1, 0, 0, 1, 1
		default:
			i1, j1, k1, i2, j2, k2 = 0, 1, 0, 1, 1, 0
		}
	}

	g3f := float32(g3)
	x1 := x0 - float32(i1) + g3f
	y1 := y0 - float32(j1) + g3f
	z1 := z0 - float32(k1) + g3f
	x2 := x0 - float32(i2) + 2*g3f
	y2 := y0 - float32(j2) + 2*g3f
	z2 := z0 - float32(k2) + 2*g3f
	x3 := x0 - 1 + float32(3*g3)
	y3 := y0 - 1 + float32(3*g3)
	z3 := z0 - 1 + float32(3*g3)
	ii := floorMod(i, 256)
	jj := floorMod(j, 256)
	kk := floorMod(k, 256)

	var n0, n1, n2, n3 float32
	if t0 := 0.6 - x0*x0 - y0*y0 - z0*z0; t0 >= 0 {
		idx := s.hash(ii + s.hash(jj+s.hash(kk)))
		t0 *= t0
		n0 = gradient3(idx, x0, y0, z0) * t0 * t0
	}
	if t1 := 0.6 - x1*x1 - y1*y1 - z1*z1; t1 >= 0 {
		idx := s.hash(ii + i1 + s.hash(jj+j1+s.hash(kk+k1)))
		t1 *= t1
		n1 = gradient3(idx, x1, y1, z1) * t1 * t1
	}
	if t2 := 0.6 - x2*x2 - y2*y2 - z2*z2; t2 >= 0 {
		idx := s.hash(ii + i2 + s.hash(jj+j2+s.hash(kk+k2)))
		t2 *= t2
		n2 = gradient3(idx, x2, y2, z2) * t2 * t2
	}
	if t3 := 0.6 - x3*x3 - y3*y3 - z3*z3; t3 >= 0 {
		idx := s.hash(ii + 1 + s.hash(jj+1+s.hash(kk+1)))
		t3 *= t3
		n3 = gradient3(idx, x3, y3, z3) * t3 * t3
	}
	return 32 * (n0 + n1 + n2 + n3)
}

func (s *Simplex) simplex4(f0, f1, f2, f3 float32) float32 {
	g4 := unskewG4

	sk := float64(f0+f1+f2+f3) * skewF4 * float64(simplexScale)
	xs := f0*simplexScale + float32(sk)
	ys := f1*simplexScale + float32(sk)
	zs := f2*simplexScale + float32(sk)
	ws := f3*simplexScale + float32(sk)
	i := floorInt32(xs)
	j := floorInt32(ys)
	k := floorInt32(zs)
	l := floorInt32(ws)

	t := (float64(i) + float64(j) + float64(k) + float64(l)) * g4
	xo := float64(i) - t
	yo := float64(j) - t
	zo := float64(k) - t
	wo := float64(l) - t
	x0 := f0*simplexScale - float32(xo)
	y0 := f1*simplexScale - float32(yo)
	z0 := f2*simplexScale - float32(zo)
	w0 := f3*simplexScale - float32(wo)

	c := 0
	if x0 > y0 {
		c += 32
	}
	if x0 > z0 {
		c += 16
	}
	if y0 > z0 {
		c += 8
	}
	if x0 > w0 {
		c += 4
	}
	if y0 > w0 {
		c += 2
	}
	if z0 > w0 {
		c++
	}
	rank := simplexTable[c]
	step := func(axis int, threshold uint8) int32 {
		if rank[axis] >= threshold {
			return 1
		}
		return 0
	}
	i1, j1, k1, l1 := step(0, 3), step(1, 3), step(2, 3), step(3, 3)
	i2, j2, k2, l2 := step(0, 2), step(1, 2), step(2, 2), step(3, 2)
	i3, j3, k3, l3 := step(0, 1), step(1, 1), step(2, 1), step(3, 1)

	x1 := x0 - float32(i1) + float32(g4)
	y1 := y0 - float32(j1) + float32(g4)
	z1 := z0 - float32(k1) + float32(g4)
	w1 := w0 - float32(l1) + float32(g4)
	x2 := x0 - float32(i2) + float32(2*g4)
	y2 := y0 - float32(j2) + float32(2*g4)
	z2 := z0 - float32(k2) + float32(2*g4)
	w2 := w0 - float32(l2) + float32(2*g4)
	x3 := x0 - float32(i3) + float32(3*g4)
	y3 := y0 - float32(j3) + float32(3*g4)
	z3 := z0 - float32(k3) + float32(3*g4)
	w3 := w0 - float32(l3) + float32(3*g4)
	x4 := x0 - 1 + float32(4*g4)
	y4 := y0 - 1 + float32(4*g4)
	z4 := z0 - 1 + float32(4*g4)
	w4 := w0 - 1 + float32(4*g4)

	ii := floorMod(i, 256)
	jj := floorMod(j, 256)
	kk := floorMod(k, 256)
	ll := floorMod(l, 256)

	var n0, n1, n2, n3, n4 float32
	if t0 := 0.6 - x0*x0 - y0*y0 - z0*z0 - w0*w0; t0 >= 0 {
		idx := s.hash(ii + s.hash(jj+s.hash(kk+s.hash(ll))))
		t0 *= t0
		n0 = gradient4(idx, x0, y0, z0, w0) * t0 * t0
	}
	if t1 := 0.6 - x1*x1 - y1*y1 - z1*z1 - w1*w1; t1 >= 0 {
		idx := s.hash(ii + i1 + s.hash(jj+j1+s.hash(kk+k1+s.hash(ll+l1))))
		t1 *= t1
		n1 = gradient4(idx, x1, y1, z1, w1) * t1 * t1
	}
	if t2 := 0.6 - x2*x2 - y2*y2 - z2*z2 - w2*w2; t2 >= 0 {
		idx := s.hash(ii + i2 + s.hash(jj+j2+s.hash(kk+k2+s.hash(ll+l2))))
		t2 *= t2
		n2 = gradient4(idx, x2, y2, z2, w2) * t2 * t2
	}
	if t3 := 0.6 - x3*x3 - y3*y3 - z3*z3 - w3*w3; t3 >= 0 {
		idx := s.hash(ii + i3 + s.hash(jj+j3+s.hash(kk+k3+s.hash(ll+l3))))
		t3 *= t3
		n3 = gradient4(idx, x3, y3, z3, w3) * t3 * t3
	}
	if t4 := 0.6 - x4*x4 - y4*y4 - z4*z4 - w4*w4; t4 >= 0 {
		idx := s.hash(ii + 1 + s.hash(jj+1+s.hash(kk+1+s.hash(ll+1))))
		t4 *= t4
		n4 = gradient4(idx, x4, y4, z4, w4) * t4 * t4
	}
	return 27 * (n0 + n1 + n2 + n3 + n4)
}

func gradient1(h int32, x float32) float32 {
	h &= 0xF
	grad := 1 + float32(h&7)
	if h&8 != 0 {
		grad = -grad
	}
	return grad * x
}

func gradient2(h int32, x, y float32) float32 {
	h &= 0x7
	u, v := x, 2*y
	if h >= 4 {
		u, v = y, 2*x
	}
	return flip(u, h&1 != 0) + flip(v, h&2 != 0)
}

func gradient3(h int32, x, y, z float32) float32 {
	h &= 0xF
	u := y
	if h < 8 {
		u = x
	}
	v := z
	if h < 4 {
		v = y
	} else if h == 12 || h == 14 {
		v = x
	}
	return flip(u, h&1 != 0) + flip(v, h&2 != 0)
}

func gradient4(h int32, x, y, z, t float32) float32 {
	h &= 0x1F
	u := y
	if h < 24 {
		u = x
	}
	v := z
	if h < 16 {
		v = y
	}
	w := t
	if h < 8 {
		w = z
	}
	return flip(u, h&1 != 0) + flip(v, h&2 != 0) + flip(w, h&4 != 0)
}

func flip(v float32, neg bool) float32 {
	if neg {
		return -v
	}
	return v
}
