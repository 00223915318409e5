package catalyst

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"mad-cat/internal/config"
	"mad-cat/internal/logging"
	"mad-cat/pkg/life"
)

// Entry is one catalyst type placed at one anchor of the search area.
type Entry struct {
	Type int
	X, Y int
	// Act is the first generation at which the background disturbs the
	// placed catalyst on its own, or Never.
	Act    int
	Grid   life.Grid
	Target life.Target
	// MinX..MaxY is the bounding box in unwrapped coordinates near (X, Y).
	MinX, MinY, MaxX, MaxY int
}

// Valid reports whether the entry can take part in a configuration.
func (e *Entry) Valid() bool { return e.Act != Never }

// Less orders entries by (Act, X, Y, Type), the canonical placement order.
func (e *Entry) Less(o *Entry) bool {
	if e.Act != o.Act {
		return e.Act < o.Act
	}
	if e.X != o.X {
		return e.X < o.X
	}
	if e.Y != o.Y {
		return e.Y < o.Y
	}
	return e.Type < o.Type
}

// Table holds an Entry for every (x, y, type) of the search area. Index
// order is type fastest, then y, then x.
type Table struct {
	Catalysts []Catalyst
	Area      config.Area
	// Group places every entry together with its orbit; nil for C1.
	Group      life.SymmetryChain
	Background *Background
	entries    []Entry
}

// TableOptions configures NewTable.
type TableOptions struct {
	Area    config.Area
	Group   life.SymmetryChain
	MaxGen  int
	Workers int
	Logger  logging.Logger
}

// NewTable computes the activation generation of every placement. The
// placements are independent, so contiguous chunks of the index range are
// computed concurrently and written back into their own slots.
func NewTable(ctx context.Context, cats []Catalyst, bg *Background, opts TableOptions) (*Table, error) {
	if len(cats) == 0 {
		return nil, config.ErrNoCatalysts
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	t := &Table{
		Catalysts:  cats,
		Area:       opts.Area,
		Group:      opts.Group,
		Background: bg,
		entries:    make([]Entry, opts.Area.W*opts.Area.H*len(cats)),
	}
	n := len(t.entries)
	if workers > n {
		workers = n
	}
	if n == 0 {
		return t, nil
	}
	chunk := (n + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < n; start += chunk {
		lo, hi := start, min(start+chunk, n)
		g.Go(func() error {
			for r := lo; r < hi; r++ {
				if r%256 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				t.entries[r] = t.place(r, opts.MaxGen)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("activation table: %w", err)
	}

	valid := 0
	for i := range t.entries {
		if t.entries[i].Valid() {
			valid++
		}
	}
	log.Debugf("activation table: %d placements, %d valid", n, valid)
	return t, nil
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.entries) }

// At returns entry r.
func (t *Table) At(r int) *Entry { return &t.entries[r] }

// Index returns the entry index of a placement.
func (t *Table) Index(typ, x, y int) int {
	return ((x-t.Area.X)*t.Area.H+(y-t.Area.Y))*len(t.Catalysts) + typ
}

// Forbidden returns the forbidden targets of an entry, placed with it and
// with its orbit.
func (t *Table) Forbidden(e *Entry) []life.Target {
	cat := &t.Catalysts[e.Type]
	var out []life.Target
	for _, f := range cat.Forbidden {
		placed := f.Moved(e.X, e.Y)
		for _, s := range t.Group.Elements() {
			out = append(out, placed.Transformed(s))
		}
	}
	return out
}

func (t *Table) place(r, maxGen int) Entry {
	s := len(t.Catalysts)
	typ := r % s
	cell := r / s
	x := t.Area.X + cell/t.Area.H
	y := t.Area.Y + cell%t.Area.H

	cat := &t.Catalysts[typ]
	e := Entry{Type: typ, X: x, Y: y, Act: Never}
	e.Grid = cat.Pattern.Moved(x, y)
	if t.Group != nil {
		e.Grid = t.Group.Apply(e.Grid)
		if !e.Grid.IsStill() {
			return e
		}
	}
	e.Target = life.NewTarget(e.Grid)

	bx, by, bw, bh := e.Grid.XYBounds()
	e.MinX = x + signed(bx-x)
	e.MinY = y + signed(by-y)
	e.MaxX = e.MinX + bw - 1
	e.MaxY = e.MinY + bh - 1

	p0 := t.Background.At(0)
	if !e.Grid.AreDisjoint(&p0) {
		return e
	}
	act := t.Background.Activation(&e.Grid, &e.Target, maxGen)
	if act < 1 {
		return e
	}
	e.Act = act
	return e
}

// signed maps a torus offset to the range [-N/2, N/2).
func signed(d int) int {
	d &= life.N - 1
	if d >= life.N/2 {
		d -= life.N
	}
	return d
}
