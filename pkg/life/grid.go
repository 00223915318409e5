// Package life implements a bit-packed Game of Life engine on a fixed
// 64x64 torus. Each row is one uint64 word; bit x of row y is cell (x, y).
// Grid values are plain arrays, so assignment copies the whole state.
package life

import "math/bits"

// N is the side length of the torus.
const N = 64

const mask = N - 1

// Grid is a Life pattern on the torus. The zero value is an empty grid.
type Grid struct {
	rows [N]uint64
	// lo and hi bracket every populated row. Empty grids have lo > hi,
	// except the zero value, whose lo == hi == 0 names an empty row.
	lo, hi int
	gen    int
}

// Empty returns a grid with no live cells.
func Empty() Grid {
	return Grid{lo: N, hi: -1}
}

func wrap(v int) int { return v & mask }

// Gen returns the generation counter.
func (g *Grid) Gen() int { return g.gen }

// SetGen overrides the generation counter.
func (g *Grid) SetGen(gen int) { g.gen = gen }

// Row returns the bits of row y (wrapped).
func (g *Grid) Row(y int) uint64 { return g.rows[wrap(y)] }

// Get reports whether cell (x, y) is alive.
func (g *Grid) Get(x, y int) bool {
	return g.rows[wrap(y)]&(1<<uint(wrap(x))) != 0
}

// Set turns cell (x, y) on.
func (g *Grid) Set(x, y int) {
	y = wrap(y)
	g.rows[y] |= 1 << uint(wrap(x))
	g.include(y)
}

// Erase turns cell (x, y) off.
func (g *Grid) Erase(x, y int) {
	g.rows[wrap(y)] &^= 1 << uint(wrap(x))
	g.recalc()
}

func (g *Grid) empty() bool {
	return g.lo > g.hi || g.lo == g.hi && g.rows[g.lo] == 0
}

// include widens the row range to cover y, whose row has just been set.
func (g *Grid) include(y int) {
	if g.empty() {
		g.lo, g.hi = y, y
		return
	}
	if y < g.lo {
		g.lo = y
	}
	if y > g.hi {
		g.hi = y
	}
}

// recalc recomputes the populated row range after a structural change.
func (g *Grid) recalc() {
	g.lo, g.hi = N, -1
	for y := 0; y < N; y++ {
		if g.rows[y] != 0 {
			g.lo = y
			break
		}
	}
	if g.lo == N {
		return
	}
	for y := N - 1; y >= g.lo; y-- {
		if g.rows[y] != 0 {
			g.hi = y
			break
		}
	}
}

// RowRange returns the populated row range. It returns (N, -1) when empty.
func (g *Grid) RowRange() (int, int) {
	if g.empty() {
		return N, -1
	}
	return g.lo, g.hi
}

// IsEmpty reports whether no cell is alive.
func (g *Grid) IsEmpty() bool {
	for y := g.lo; y <= g.hi; y++ {
		if g.rows[y] != 0 {
			return false
		}
	}
	return true
}

// Pop returns the number of live cells.
func (g *Grid) Pop() int {
	n := 0
	for y := g.lo; y <= g.hi; y++ {
		n += bits.OnesCount64(g.rows[y])
	}
	return n
}

// Equal reports whether both grids hold the same cells. Generation counters
// are ignored.
func (g *Grid) Equal(o *Grid) bool {
	return g.rows == o.rows
}

// Clear removes every live cell.
func (g *Grid) Clear() {
	g.rows = [N]uint64{}
	g.lo, g.hi = N, -1
}

// Join adds every cell of o.
func (g *Grid) Join(o *Grid) {
	for y := o.lo; y <= o.hi; y++ {
		g.rows[y] |= o.rows[y]
	}
	if o.lo <= o.hi {
		g.include(o.lo)
		g.include(o.hi)
	}
}

// JoinAt adds every cell of o translated by (dx, dy).
func (g *Grid) JoinAt(o *Grid, dx, dy int) {
	for y := o.lo; y <= o.hi; y++ {
		if o.rows[y] == 0 {
			continue
		}
		g.rows[wrap(y+dy)] |= bits.RotateLeft64(o.rows[y], dx)
	}
	g.recalc()
}

// And keeps only the cells also present in o.
func (g *Grid) And(o *Grid) {
	for y := 0; y < N; y++ {
		g.rows[y] &= o.rows[y]
	}
	g.recalc()
}

// Xor toggles every cell present in o.
func (g *Grid) Xor(o *Grid) {
	for y := o.lo; y <= o.hi; y++ {
		g.rows[y] ^= o.rows[y]
	}
	g.recalc()
}

// AndNot removes every cell present in o.
func (g *Grid) AndNot(o *Grid) {
	for y := o.lo; y <= o.hi; y++ {
		g.rows[y] &^= o.rows[y]
	}
	g.recalc()
}

// Inverse flips every cell of the torus.
func (g *Grid) Inverse() {
	for y := 0; y < N; y++ {
		g.rows[y] = ^g.rows[y]
	}
	g.recalc()
}

// Union returns a | b.
func Union(a, b Grid) Grid {
	a.Join(&b)
	return a
}

// Intersect returns a & b.
func Intersect(a, b Grid) Grid {
	a.And(&b)
	return a
}

// Contains reports whether every live cell of o is alive in g.
func (g *Grid) Contains(o *Grid) bool {
	for y := o.lo; y <= o.hi; y++ {
		if g.rows[y]&o.rows[y] != o.rows[y] {
			return false
		}
	}
	return true
}

// ContainsAt reports whether g contains o translated by (dx, dy).
func (g *Grid) ContainsAt(o *Grid, dx, dy int) bool {
	for y := o.lo; y <= o.hi; y++ {
		r := bits.RotateLeft64(o.rows[y], dx)
		if g.rows[wrap(y+dy)]&r != r {
			return false
		}
	}
	return true
}

// AreDisjoint reports whether g and o share no live cell.
func (g *Grid) AreDisjoint(o *Grid) bool {
	for y := o.lo; y <= o.hi; y++ {
		if g.rows[y]&o.rows[y] != 0 {
			return false
		}
	}
	return true
}

// AreDisjointAt reports whether g and o translated by (dx, dy) share no cell.
func (g *Grid) AreDisjointAt(o *Grid, dx, dy int) bool {
	for y := o.lo; y <= o.hi; y++ {
		if g.rows[wrap(y+dy)]&bits.RotateLeft64(o.rows[y], dx) != 0 {
			return false
		}
	}
	return true
}

// Cells returns the coordinates of every live cell, row by row.
func (g *Grid) Cells() [][2]int {
	var out [][2]int
	for y := g.lo; y <= g.hi; y++ {
		r := g.rows[y]
		for r != 0 {
			x := bits.TrailingZeros64(r)
			out = append(out, [2]int{x, y})
			r &= r - 1
		}
	}
	return out
}

// FromCells builds a grid with the given live cells.
func FromCells(cells [][2]int) Grid {
	g := Empty()
	for _, c := range cells {
		g.Set(c[0], c[1])
	}
	return g
}

// Rect returns a filled w x h rectangle with its top-left corner at (x, y).
func Rect(x, y, w, h int) Grid {
	g := Empty()
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			g.Set(x+i, y+j)
		}
	}
	return g
}

// circularSpan returns the smallest circular interval [start, start+length)
// covering every set bit of m.
func circularSpan(m uint64) (start, length int) {
	if m == 0 {
		return 0, 0
	}
	if m == ^uint64(0) {
		return 0, N
	}
	// Find the longest circular run of zeros; the span starts right after it.
	bestLen, bestEnd := -1, 0
	for i := 0; i < N; i++ {
		if m&(1<<uint(i)) == 0 {
			continue
		}
		// i is set; measure the zero run that ends just before the next set bit.
		j := 1
		for m&(1<<uint(wrap(i+j))) == 0 {
			j++
		}
		if j-1 > bestLen {
			bestLen = j - 1
			bestEnd = wrap(i + j)
		}
	}
	return bestEnd, N - bestLen
}

// XYBounds returns the tight bounding box of the live cells on the torus as
// the top-left corner and the size. Empty grids report zero size.
func (g *Grid) XYBounds() (x, y, w, h int) {
	var cols, rows uint64
	for j := g.lo; j <= g.hi; j++ {
		if g.rows[j] != 0 {
			cols |= g.rows[j]
			rows |= 1 << uint(j)
		}
	}
	x, w = circularSpan(cols)
	y, h = circularSpan(rows)
	return x, y, w, h
}

// Normalize moves the bounding box of g to the origin.
func (g *Grid) Normalize() {
	x, y, _, _ := g.XYBounds()
	g.Move(-x, -y)
}

// Normalized returns a copy of g with its bounding box at the origin.
func (g Grid) Normalized() Grid {
	g.Normalize()
	return g
}
