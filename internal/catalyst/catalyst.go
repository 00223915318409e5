// Package catalyst loads catalyst descriptors, evolves the background
// pattern and precomputes the activation table the search enumerates.
package catalyst

import (
	"errors"
	"fmt"

	"mad-cat/internal/config"
	"mad-cat/pkg/life"
)

// ErrNotStill is returned when a catalyst pattern is not a still life.
var ErrNotStill = errors.New("catalyst is not a still life")

// Catalyst is one catalyst type in one orientation. Pattern and Forbidden
// are expressed relative to the anchor cell, which sits at the origin.
type Catalyst struct {
	// Source is the index of the catalyst directive this orientation came
	// from.
	Source      int
	Orientation life.SymmetryTransform
	Pattern     life.Grid
	Target      life.Target
	MaxAbsence  int
	Forbidden   []life.Target
}

// Build expands the configured catalysts into their distinct orientations.
// Orientations that coincide after moving their bounding box to the origin
// are kept once.
func Build(cats []config.Catalyst) ([]Catalyst, error) {
	var out []Catalyst
	for i, c := range cats {
		base, err := life.Parse(c.RLE)
		if err != nil {
			return nil, fmt.Errorf("catalyst %d: %w", i, err)
		}
		if base.IsEmpty() {
			return nil, fmt.Errorf("catalyst %d: empty pattern", i)
		}
		if !base.IsStill() {
			return nil, fmt.Errorf("catalyst %d %q: %w", i, c.RLE, ErrNotStill)
		}
		base.Move(-c.AnchorX, -c.AnchorY)

		var forbidden []life.Grid
		for j, f := range c.Forbidden {
			g, err := life.ParseAt(f.RLE, f.X, f.Y)
			if err != nil {
				return nil, fmt.Errorf("catalyst %d forbidden %d: %w", i, j, err)
			}
			g.Move(-c.AnchorX, -c.AnchorY)
			forbidden = append(forbidden, g)
		}

		chain, err := life.CatalystChain(c.Symmetry)
		if err != nil {
			return nil, fmt.Errorf("catalyst %d: %w", i, err)
		}
		var seen []orientationKey
	orientations:
		for _, e := range chain.Elements() {
			pat := base.Transformed(e)
			fs := make([]life.Grid, len(forbidden))
			for j := range forbidden {
				fs[j] = forbidden[j].Transformed(e)
			}
			key := newOrientationKey(pat, fs)
			for _, k := range seen {
				if k.equal(&key) {
					continue orientations
				}
			}
			seen = append(seen, key)

			cat := Catalyst{
				Source:      i,
				Orientation: e,
				Pattern:     pat,
				Target:      life.NewTarget(pat),
				MaxAbsence:  c.MaxAbsence,
			}
			for j := range fs {
				cat.Forbidden = append(cat.Forbidden, life.NewTarget(fs[j]))
			}
			out = append(out, cat)
		}
	}
	return out, nil
}

// orientationKey is an orientation moved so its bounding box starts at the
// origin, together with its forbidden patterns moved the same way.
type orientationKey struct {
	pattern   life.Grid
	forbidden []life.Grid
}

func newOrientationKey(pat life.Grid, fs []life.Grid) orientationKey {
	x, y, _, _ := pat.XYBounds()
	k := orientationKey{pattern: pat.Moved(-x, -y)}
	for _, f := range fs {
		k.forbidden = append(k.forbidden, f.Moved(-x, -y))
	}
	return k
}

func (k *orientationKey) equal(o *orientationKey) bool {
	if !k.pattern.Equal(&o.pattern) || len(k.forbidden) != len(o.forbidden) {
		return false
	}
	for i := range k.forbidden {
		if !k.forbidden[i].Equal(&o.forbidden[i]) {
			return false
		}
	}
	return true
}
