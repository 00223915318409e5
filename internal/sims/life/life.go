// Package life adapts the bit-packed Life engine to the viewer's Sim
// interface.
package life

import (
	"mad-cat/internal/core"
	pcore "mad-cat/pkg/core"
	"mad-cat/pkg/life"
)

// Cell values exposed by Cells.
const (
	Dead uint8 = iota
	Alive
	// CatalystAlive is a live cell of a tracked catalyst.
	CatalystAlive
	// CatalystMissing is a catalyst cell that is currently dead.
	CatalystMissing
)

// Life shows a pattern evolving on the torus.
type Life struct {
	cfg   Config
	start life.Grid
	cats  life.Grid
	grid  life.Grid
	cells *core.ByteGrid
}

// New returns a Life simulation. Malformed patterns show as empty.
func New(cfg Config) *Life {
	l := &Life{
		cfg:   cfg,
		start: life.ParseOrEmpty(cfg.RLE),
		cats:  life.ParseOrEmpty(cfg.Catalysts),
		cells: core.NewByteGrid(life.N, life.N),
	}
	l.start.Move(cfg.X, cfg.Y)
	l.cats.Move(cfg.X, cfg.Y)
	l.start.Join(&l.cats)
	l.grid = l.start
	return l
}

// Name returns the simulation identifier.
func (l *Life) Name() string { return "life" }

// Size returns the grid dimensions.
func (l *Life) Size() core.Size { return core.Size{W: life.N, H: life.N} }

// Reset restores the configured pattern, or seeds a soup in the middle of
// the torus when none is configured.
func (l *Life) Reset(seed int64) {
	if !l.start.IsEmpty() {
		l.grid = l.start
		l.grid.SetGen(0)
		return
	}
	l.grid = life.Empty()
	n := l.cfg.SoupSize
	pcore.NewRNG(seed).Soup(&l.grid, (life.N-n)/2, (life.N-n)/2, n, n, l.cfg.Density)
}

// Step advances the simulation by one generation.
func (l *Life) Step() { l.grid.Step() }

// Cells renders the grid, marking tracked catalyst cells.
func (l *Life) Cells() []uint8 {
	l.cells.Clear()
	buf := l.cells.Cells()
	for _, c := range l.grid.Cells() {
		buf[l.cells.Index(c[0], c[1])] = Alive
	}
	for _, c := range l.cats.Cells() {
		i := l.cells.Index(c[0], c[1])
		if buf[i] == Alive {
			buf[i] = CatalystAlive
		} else {
			buf[i] = CatalystMissing
		}
	}
	return buf
}

// Generation returns the generation counter.
func (l *Life) Generation() int { return l.grid.Gen() }

// Population returns the number of live cells.
func (l *Life) Population() int { return l.grid.Pop() }

// CatalystsIntact reports whether every tracked catalyst is unharmed.
func (l *Life) CatalystsIntact() bool {
	if l.cats.IsEmpty() {
		return true
	}
	t := life.NewTarget(l.cats)
	return l.grid.ContainsTarget(&t)
}

// Toggle flips cell (x, y).
func (l *Life) Toggle(x, y int) {
	if l.grid.Get(x, y) {
		l.grid.Erase(x, y)
	} else {
		l.grid.Set(x, y)
	}
}

func init() {
	core.Register("life", func(cfg map[string]string) core.Sim {
		return New(FromMap(cfg))
	})
}
