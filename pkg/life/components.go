package life

import "math/bits"

// ComponentContaining returns the union of the components of g that touch
// seed under the corona adjacency. The flood fill dilates the current set by
// the corona and intersects with g until nothing changes.
func (g *Grid) ComponentContaining(seed, corona *Grid) Grid {
	comp := seed.Convolve(corona)
	comp.And(g)
	for {
		next := comp.Convolve(corona)
		next.And(g)
		if next.Equal(&comp) {
			return comp
		}
		comp = next
	}
}

// Components splits g into maximal connected components under the corona
// adjacency. A nil corona means the Moore neighbourhood. Components are
// returned in order of their first cell (row-major).
func (g *Grid) Components(corona *Grid) []Grid {
	if corona == nil {
		m := Moore()
		corona = &m
	}
	var out []Grid
	rest := *g
	for !rest.IsEmpty() {
		lo, _ := rest.RowRange()
		y := lo
		for rest.rows[y] == 0 {
			y++
		}
		seed := Empty()
		seed.Set(bits.TrailingZeros64(rest.rows[y]), y)
		comp := rest.ComponentContaining(&seed, corona)
		if comp.IsEmpty() {
			// A corona without the origin can miss the seed itself.
			comp = seed
		}
		out = append(out, comp)
		rest.AndNot(&comp)
	}
	return out
}
