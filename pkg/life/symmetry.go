package life

import (
	"fmt"
	"sort"
)

// SymmetryChain is an ordered list of generators h1..hn. Applying them one
// after another visits g1 = h1, g2 = h2*h1, ..., so together with the
// identity the cumulative products enumerate a whole orbit.
type SymmetryChain []SymmetryTransform

// Apply returns the union of base transformed by the identity and by every
// cumulative product of the chain. Each image is derived from the previous
// one, so no element is recomputed from scratch.
func (c SymmetryChain) Apply(base Grid) Grid {
	out := base
	cur := base
	for _, h := range c {
		cur.Transform(h)
		out.Join(&cur)
	}
	return out
}

// Elements returns the transforms visited by the chain, identity first.
func (c SymmetryChain) Elements() []SymmetryTransform {
	out := []SymmetryTransform{Identity}
	cur := Identity
	for _, h := range c {
		cur = Compose(h, cur)
		out = append(out, cur)
	}
	return out
}

// Compose returns the transform equivalent to applying a and then b.
func Compose(b, a SymmetryTransform) SymmetryTransform {
	// Probe with points whose images pin down the affine map.
	probe := [][2]int{{0, 0}, {1, 0}, {0, 1}}
	for _, t := range AllTransforms() {
		ok := true
		for _, p := range probe {
			ax, ay := a.MapPoint(p[0], p[1])
			bx, by := b.MapPoint(ax, ay)
			tx, ty := t.MapPoint(p[0], p[1])
			if bx != tx || by != ty {
				ok = false
				break
			}
		}
		if ok {
			return t
		}
	}
	// Mixed parities (e.g. odd and even reflections on one axis) leave a
	// pure translation, which is outside this set.
	return -1
}

var groupChains = map[string]SymmetryChain{
	"C1":               nil,
	"C2":               {Rotate180OddBoth},
	"C2even":           {Rotate180EvenBoth},
	"C2horizontaleven": {Rotate180EvenHorizontal},
	"C2verticaleven":   {Rotate180EvenVertical},
	"C4":               {Rotate90, Rotate90, Rotate90},
	"C4even":           {Rotate90Even, Rotate90Even, Rotate90Even},
	"D2|":              {ReflectAcrossY},
	"D2|even":          {ReflectAcrossYEven},
	"D2-":              {ReflectAcrossX},
	"D2-even":          {ReflectAcrossXEven},
	"D2/":              {ReflectAcrossYeqX},
	"D2\\":             {ReflectAcrossYeqNegX},
	"D4+":              {ReflectAcrossX, ReflectAcrossY, ReflectAcrossX},
	"D4+even":          {ReflectAcrossXEven, ReflectAcrossYEven, ReflectAcrossXEven},
	"D4x":              {ReflectAcrossYeqX, ReflectAcrossYeqNegX, ReflectAcrossYeqX},
	"D8": {Rotate90, Rotate90, Rotate90, ReflectAcrossX,
		Rotate90, Rotate90, Rotate90},
	"D8even": {Rotate90Even, Rotate90Even, Rotate90Even, ReflectAcrossXEven,
		Rotate90Even, Rotate90Even, Rotate90Even},
}

// catalystChains maps the one-character orientation tags used in catalyst
// directives to their chains.
var catalystChains = map[string]SymmetryChain{
	".":  nil,
	"|":  groupChains["D2|"],
	"-":  groupChains["D2-"],
	"/":  groupChains["D2/"],
	"\\": groupChains["D2\\"],
	"x":  groupChains["C2"],
	"+":  groupChains["D4+"],
	"@":  groupChains["C4"],
	"*":  groupChains["D8"],
}

// GroupChain returns the chain registered for a named symmetry group.
func GroupChain(name string) (SymmetryChain, error) {
	c, ok := groupChains[name]
	if !ok {
		return nil, fmt.Errorf("unknown symmetry group %q", name)
	}
	return c, nil
}

// CatalystChain returns the chain for a catalyst orientation tag.
func CatalystChain(tag string) (SymmetryChain, error) {
	c, ok := catalystChains[tag]
	if !ok {
		return nil, fmt.Errorf("unknown catalyst symmetry %q", tag)
	}
	return c, nil
}

// GroupNames lists the registered symmetry groups in sorted order.
func GroupNames() []string {
	out := make([]string, 0, len(groupChains))
	for k := range groupChains {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// CatalystTags lists the catalyst orientation tags in sorted order.
func CatalystTags() []string {
	out := make([]string, 0, len(catalystChains))
	for k := range catalystChains {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
