package life

import "math/bits"

// Target is a containment predicate: every Wanted cell must be on and every
// Unwanted cell must be off.
type Target struct {
	Wanted   Grid
	Unwanted Grid
}

// NewTarget builds a target for an isolated copy of wanted: the unwanted set
// is its boundary, so wanted and unwanted never intersect.
func NewTarget(wanted Grid) Target {
	return Target{Wanted: wanted, Unwanted: wanted.Boundary()}
}

// ParseTarget decodes a pattern and wraps it with NewTarget.
func ParseTarget(rle string) (Target, error) {
	g, err := Parse(rle)
	if err != nil {
		return Target{}, err
	}
	return NewTarget(g), nil
}

// Moved returns the target translated by (dx, dy).
func (t Target) Moved(dx, dy int) Target {
	t.Wanted.Move(dx, dy)
	t.Unwanted.Move(dx, dy)
	return t
}

// Transformed returns the target with a symmetry transform applied.
func (t Target) Transformed(s SymmetryTransform) Target {
	t.Wanted.Transform(s)
	t.Unwanted.Transform(s)
	return t
}

// ContainsTarget reports whether g matches t in place.
func (g *Grid) ContainsTarget(t *Target) bool {
	return g.Contains(&t.Wanted) && g.AreDisjoint(&t.Unwanted)
}

// ContainsTargetAt reports whether g matches t translated by (dx, dy).
func (g *Grid) ContainsTargetAt(t *Target, dx, dy int) bool {
	return g.ContainsAt(&t.Wanted, dx, dy) && g.AreDisjointAt(&t.Unwanted, dx, dy)
}

// Locator finds every placement of a target inside a grid. It keeps the cell
// offsets of the target and intersects rotated copies of the searched rows,
// one offset at a time.
type Locator struct {
	wanted   [][2]int
	unwanted [][2]int
}

// NewLocator precomputes the cell lists of t.
func NewLocator(t *Target) *Locator {
	return &Locator{wanted: t.Wanted.Cells(), unwanted: t.Unwanted.Cells()}
}

// Locate returns the grid of offsets (dx, dy) at which g contains the target.
func (l *Locator) Locate(g *Grid) Grid {
	var res [N]uint64
	for dy := 0; dy < N; dy++ {
		acc := ^uint64(0)
		for _, c := range l.wanted {
			acc &= bits.RotateLeft64(g.rows[wrap(dy+c[1])], -c[0])
			if acc == 0 {
				break
			}
		}
		if acc == 0 {
			continue
		}
		for _, c := range l.unwanted {
			acc &^= bits.RotateLeft64(g.rows[wrap(dy+c[1])], -c[0])
			if acc == 0 {
				break
			}
		}
		res[dy] = acc
	}
	out := Grid{rows: res}
	out.recalc()
	return out
}

// Matches reports whether g contains the target at (dx, dy), using the
// locator's cell lists.
func (l *Locator) Matches(g *Grid, dx, dy int) bool {
	for _, c := range l.wanted {
		if !g.Get(dx+c[0], dy+c[1]) {
			return false
		}
	}
	for _, c := range l.unwanted {
		if g.Get(dx+c[0], dy+c[1]) {
			return false
		}
	}
	return true
}
