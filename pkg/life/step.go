package life

import "math/bits"

// Step advances the grid one generation under B3/S23 on the torus.
//
// Neighbour counts are bit-sliced: every row contributes a two-bit
// horizontal sum (left+self+right for the rows above and below, left+right
// for the row itself) and the three sums are added with full adders into
// three bit planes. Counts are taken mod 8, which is harmless because 8
// neighbours never keep or create a cell.
func (g *Grid) Step() {
	g.gen++
	if g.empty() {
		return
	}

	lo, hi := g.lo-1, g.hi+1
	if lo < 0 || hi >= N {
		lo, hi = 0, N-1
	}

	// Horizontal sums for rows lo-1..hi+1, indexed relative to lo-1.
	var s0, s1, m0, m1 [N + 2]uint64
	span := hi - lo + 1
	for i := 0; i < span+2; i++ {
		r := g.rows[wrap(lo-1+i)]
		l := bits.RotateLeft64(r, 1)
		rr := bits.RotateLeft64(r, -1)
		m0[i] = l ^ rr
		m1[i] = l & rr
		s0[i] = m0[i] ^ r
		s1[i] = m1[i] | (m0[i] & r)
	}

	var next [N]uint64
	for i := 1; i <= span; i++ {
		a0, a1 := s0[i-1], s1[i-1]
		b0, b1 := s0[i+1], s1[i+1]
		c0, c1 := m0[i], m1[i]

		// bit 0 of a + b + c, with its carry
		n0 := a0 ^ b0 ^ c0
		carry := (a0 & b0) | (c0 & (a0 ^ b0))

		// bits 1 and 2 from a1 + b1 + c1 + carry
		p := a1 ^ b1
		q := c1 ^ carry
		n1 := p ^ q
		n2 := (a1 & b1) ^ (c1 & carry) ^ (p & q)

		y := wrap(lo - 1 + i)
		alive := g.rows[y]
		next[y] = n1 &^ n2 & (n0 | alive)
	}

	if hi-lo+1 == N {
		g.rows = next
	} else {
		for y := lo; y <= hi; y++ {
			g.rows[y] = next[y]
		}
	}
	g.recalc()
}

// StepN advances the grid n generations.
func (g *Grid) StepN(n int) {
	for i := 0; i < n; i++ {
		g.Step()
	}
}

// Stepped returns a copy of g advanced n generations.
func (g Grid) Stepped(n int) Grid {
	g.StepN(n)
	return g
}

// IsStill reports whether g is unchanged by one generation.
func (g *Grid) IsStill() bool {
	next := *g
	next.Step()
	return next.Equal(g)
}
