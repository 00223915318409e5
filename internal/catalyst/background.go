package catalyst

import (
	"math/bits"

	"mad-cat/pkg/life"
)

// Never marks a cell the background never reaches, or a placement that is
// never activated.
const Never = -1

// Background is the forward evolution of the pattern without catalysts.
// It is built once per run and shared read-only by every simulation.
type Background struct {
	gens    []life.Grid
	firstOn [life.N][life.N]int
}

// NewBackground evolves pattern for gens generations.
func NewBackground(pattern life.Grid, gens int) *Background {
	pattern.SetGen(0)
	b := &Background{gens: make([]life.Grid, 0, gens+1)}
	for y := range b.firstOn {
		for x := range b.firstOn[y] {
			b.firstOn[y][x] = Never
		}
	}
	seen := life.Empty()
	cur := pattern
	for g := 0; g <= gens; g++ {
		b.gens = append(b.gens, cur)
		fresh := cur
		fresh.AndNot(&seen)
		for _, c := range fresh.Cells() {
			b.firstOn[c[1]][c[0]] = g
		}
		seen.Join(&cur)
		cur.Step()
	}
	return b
}

// Len returns the number of stored generations.
func (b *Background) Len() int { return len(b.gens) }

// At returns the pattern at generation g, stepping past the stored range if
// needed.
func (b *Background) At(g int) life.Grid {
	if g < len(b.gens) {
		return b.gens[g]
	}
	last := b.gens[len(b.gens)-1]
	last.StepN(g - last.Gen())
	return last
}

// Contact returns the first generation at which the background comes within
// two cells of cats, or Never.
func (b *Background) Contact(cats *life.Grid) int {
	z := cats.ZOI()
	z = z.ZOI()
	first := Never
	lo, hi := z.RowRange()
	for y := lo; y <= hi; y++ {
		r := z.Row(y)
		for r != 0 {
			x := bits.TrailingZeros64(r)
			r &= r - 1
			if g := b.firstOn[y][x]; g != Never && (first == Never || g < first) {
				first = g
			}
		}
	}
	return first
}

// Start returns the joint state of background and still-life catalysts at
// the first generation where they can interact, without simulating the
// earlier generations. Until the background comes within two cells of the
// catalysts each evolves alone, so at that generation the catalysts are
// intact and the background is untouched outside their zone of influence.
func (b *Background) Start(cats *life.Grid) (life.Grid, int) {
	t := b.Contact(cats)
	if t == Never {
		t = len(b.gens) - 1
	}
	state := b.gens[t]
	if t > 0 {
		z := cats.ZOI()
		state.AndNot(&z)
	}
	state.Join(cats)
	state.SetGen(t)
	return state, t
}

// Activation returns the first generation at which the background running
// against the still life cats breaks target, or Never if that does not
// happen by maxGen.
func (b *Background) Activation(cats *life.Grid, target *life.Target, maxGen int) int {
	state, gen := b.Start(cats)
	for ; gen <= maxGen; gen++ {
		if !state.ContainsTarget(target) {
			return gen
		}
		state.Step()
	}
	return Never
}
