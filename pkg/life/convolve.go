package life

import "math/bits"

// smear returns the OR of r rotated left by 0..n-1 positions, built by
// doubling so a run of n bits costs O(log n) rotations.
func smear(r uint64, n int) uint64 {
	if n >= N {
		if r == 0 {
			return 0
		}
		return ^uint64(0)
	}
	out := r
	covered := 1
	for covered*2 <= n {
		out |= bits.RotateLeft64(out, covered)
		covered *= 2
	}
	if covered < n {
		out |= bits.RotateLeft64(out, n-covered)
	}
	return out
}

// rowConvolve returns the horizontal convolution of two rows: the OR of a
// rotated left by every set bit position of b. b is walked as runs of 1s.
func rowConvolve(a, b uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}
	var out uint64
	for b != 0 {
		start := bits.TrailingZeros64(b)
		run := bits.TrailingZeros64(^(b >> uint(start)))
		if start+run >= N {
			run = N - start
		}
		out |= bits.RotateLeft64(smear(a, run), start)
		if start+run >= N {
			break
		}
		b &^= ((uint64(1) << uint(run)) - 1) << uint(start)
	}
	return out
}

// Convolve returns the Minkowski sum of g and o on the torus: cell d is set
// iff some a in g and b in o satisfy a + b = d. Convolving with the point
// reflection of o yields every offset at which o overlaps g.
func (g *Grid) Convolve(o *Grid) Grid {
	out := Empty()
	for ya := g.lo; ya <= g.hi; ya++ {
		a := g.rows[ya]
		if a == 0 {
			continue
		}
		for yb := o.lo; yb <= o.hi; yb++ {
			b := o.rows[yb]
			if b == 0 {
				continue
			}
			out.rows[wrap(ya+yb)] |= rowConvolve(a, b)
		}
	}
	out.recalc()
	return out
}

// Reflected returns the point reflection of g through the origin.
func (g Grid) Reflected() Grid {
	g.Transform(Rotate180OddBoth)
	return g
}

// OverlapOffsets returns the grid of offsets (dx, dy) for which o translated
// by (dx, dy) shares at least one cell with g.
func (g *Grid) OverlapOffsets(o *Grid) Grid {
	r := o.Reflected()
	return g.Convolve(&r)
}

// Moore returns the 3x3 block centred on the origin, the default corona.
func Moore() Grid {
	g := Empty()
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			g.Set(dx, dy)
		}
	}
	return g
}

// ZOI returns the zone of influence of g: every cell within one Moore step.
func (g *Grid) ZOI() Grid {
	var out [N]uint64
	for y := g.lo; y <= g.hi; y++ {
		r := g.rows[y]
		if r == 0 {
			continue
		}
		h := r | bits.RotateLeft64(r, 1) | bits.RotateLeft64(r, -1)
		out[wrap(y-1)] |= h
		out[y] |= h
		out[wrap(y+1)] |= h
	}
	z := Grid{rows: out}
	z.recalc()
	return z
}

// Boundary returns the cells adjacent to g that are not part of g.
func (g *Grid) Boundary() Grid {
	z := g.ZOI()
	z.AndNot(g)
	return z
}
