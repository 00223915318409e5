package life

import (
	"fmt"
	"math/bits"
)

// SymmetryTransform is one element of the dihedral group acting on the torus
// around the origin. "Even" variants act around the point (-1/2, -1/2) or the
// corresponding half-integer axis instead of the origin cell.
type SymmetryTransform int

const (
	Identity SymmetryTransform = iota
	ReflectAcrossX
	ReflectAcrossXEven
	ReflectAcrossY
	ReflectAcrossYEven
	Rotate90
	Rotate90Even
	Rotate180OddBoth
	Rotate180EvenHorizontal
	Rotate180EvenVertical
	Rotate180EvenBoth
	Rotate270
	Rotate270Even
	ReflectAcrossYeqX
	ReflectAcrossYeqNegX
	ReflectAcrossYeqNegXP1

	numTransforms
)

var transformNames = [...]string{
	Identity:                "Identity",
	ReflectAcrossX:          "ReflectAcrossX",
	ReflectAcrossXEven:      "ReflectAcrossXEven",
	ReflectAcrossY:          "ReflectAcrossY",
	ReflectAcrossYEven:      "ReflectAcrossYEven",
	Rotate90:                "Rotate90",
	Rotate90Even:            "Rotate90Even",
	Rotate180OddBoth:        "Rotate180OddBoth",
	Rotate180EvenHorizontal: "Rotate180EvenHorizontal",
	Rotate180EvenVertical:   "Rotate180EvenVertical",
	Rotate180EvenBoth:       "Rotate180EvenBoth",
	Rotate270:               "Rotate270",
	Rotate270Even:           "Rotate270Even",
	ReflectAcrossYeqX:       "ReflectAcrossYeqX",
	ReflectAcrossYeqNegX:    "ReflectAcrossYeqNegX",
	ReflectAcrossYeqNegXP1:  "ReflectAcrossYeqNegXP1",
}

// AllTransforms lists every symmetry transform.
func AllTransforms() []SymmetryTransform {
	out := make([]SymmetryTransform, 0, numTransforms)
	for t := Identity; t < numTransforms; t++ {
		out = append(out, t)
	}
	return out
}

func (t SymmetryTransform) String() string {
	if t < 0 || t >= numTransforms {
		return fmt.Sprintf("SymmetryTransform(%d)", int(t))
	}
	return transformNames[t]
}

// Inverse returns the transform that undoes t.
func (t SymmetryTransform) Inverse() SymmetryTransform {
	switch t {
	case Rotate90:
		return Rotate270
	case Rotate270:
		return Rotate90
	case Rotate90Even:
		return Rotate270Even
	case Rotate270Even:
		return Rotate90Even
	default:
		return t
	}
}

// MapPoint applies t to a single cell.
func (t SymmetryTransform) MapPoint(x, y int) (int, int) {
	var nx, ny int
	switch t {
	case Identity:
		nx, ny = x, y
	case ReflectAcrossX:
		nx, ny = x, -y
	case ReflectAcrossXEven:
		nx, ny = x, -y-1
	case ReflectAcrossY:
		nx, ny = -x, y
	case ReflectAcrossYEven:
		nx, ny = -x-1, y
	case Rotate90:
		nx, ny = -y, x
	case Rotate90Even:
		nx, ny = -y-1, x
	case Rotate180OddBoth:
		nx, ny = -x, -y
	case Rotate180EvenHorizontal:
		nx, ny = -x-1, -y
	case Rotate180EvenVertical:
		nx, ny = -x, -y-1
	case Rotate180EvenBoth:
		nx, ny = -x-1, -y-1
	case Rotate270:
		nx, ny = y, -x
	case Rotate270Even:
		nx, ny = y, -x-1
	case ReflectAcrossYeqX:
		nx, ny = y, x
	case ReflectAcrossYeqNegX:
		nx, ny = -y, -x
	case ReflectAcrossYeqNegXP1:
		nx, ny = -y-1, -x-1
	default:
		nx, ny = x, y
	}
	return wrap(nx), wrap(ny)
}

// Move translates the grid by (dx, dy) with wraparound.
func (g *Grid) Move(dx, dy int) {
	if dx == 0 && dy == 0 {
		return
	}
	var out [N]uint64
	for y := g.lo; y <= g.hi; y++ {
		out[wrap(y+dy)] = bits.RotateLeft64(g.rows[y], dx)
	}
	g.rows = out
	g.recalc()
}

// Moved returns a translated copy of g.
func (g Grid) Moved(dx, dy int) Grid {
	g.Move(dx, dy)
	return g
}

// flipRows maps y to -y (odd) or -y-1 (even).
func (g *Grid) flipRows(even bool) {
	var out [N]uint64
	for y := 0; y < N; y++ {
		if even {
			out[wrap(-y-1)] = g.rows[y]
		} else {
			out[wrap(-y)] = g.rows[y]
		}
	}
	g.rows = out
}

// flipBits maps x to -x (odd) or -x-1 (even) in every row.
func (g *Grid) flipBits(even bool) {
	for y := 0; y < N; y++ {
		r := bits.Reverse64(g.rows[y])
		if !even {
			r = bits.RotateLeft64(r, 1)
		}
		g.rows[y] = r
	}
}

// transpose swaps x and y. Blocks are exchanged recursively: the high half of
// each upper row trades places with the low half of the matching lower row.
func (g *Grid) transpose() {
	a := &g.rows
	m := uint64(0x00000000FFFFFFFF)
	for j := 32; j != 0; j, m = j>>1, m^(m<<uint(j>>1)) {
		for k := 0; k < N; k = (k + j + 1) &^ j {
			t := ((a[k] >> uint(j)) ^ a[k+j]) & m
			a[k] ^= t << uint(j)
			a[k+j] ^= t
		}
	}
}

// Transform applies t to the grid in place.
func (g *Grid) Transform(t SymmetryTransform) {
	switch t {
	case Identity:
		return
	case ReflectAcrossX:
		g.flipRows(false)
	case ReflectAcrossXEven:
		g.flipRows(true)
	case ReflectAcrossY:
		g.flipBits(false)
	case ReflectAcrossYEven:
		g.flipBits(true)
	case Rotate90:
		g.transpose()
		g.flipBits(false)
	case Rotate90Even:
		g.transpose()
		g.flipBits(true)
	case Rotate180OddBoth:
		g.flipBits(false)
		g.flipRows(false)
	case Rotate180EvenHorizontal:
		g.flipBits(true)
		g.flipRows(false)
	case Rotate180EvenVertical:
		g.flipBits(false)
		g.flipRows(true)
	case Rotate180EvenBoth:
		g.flipBits(true)
		g.flipRows(true)
	case Rotate270:
		g.flipBits(false)
		g.transpose()
	case Rotate270Even:
		g.flipBits(true)
		g.transpose()
	case ReflectAcrossYeqX:
		g.transpose()
	case ReflectAcrossYeqNegX:
		g.transpose()
		g.flipBits(false)
		g.flipRows(false)
	case ReflectAcrossYeqNegXP1:
		g.transpose()
		g.flipBits(true)
		g.flipRows(true)
	}
	g.recalc()
}

// Transformed returns a copy of g with t applied.
func (g Grid) Transformed(t SymmetryTransform) Grid {
	g.Transform(t)
	return g
}

// TransformAt applies t around the point (x, y) instead of the origin.
func (g *Grid) TransformAt(t SymmetryTransform, x, y int) {
	g.Move(-x, -y)
	g.Transform(t)
	g.Move(x, y)
}
