// Package search enumerates catalyst configurations and simulates them
// against the background pattern.
package search

import (
	"mad-cat/internal/catalyst"
	"mad-cat/pkg/life"
)

// Placement is one catalyst slot: a catalyst type at an anchor.
type Placement struct {
	Type int
	X, Y int
}

// Configuration is a joint placement of every slot, slot 0 holding the
// latest activation.
type Configuration struct {
	Placements []Placement
	Entries    []*catalyst.Entry
	// Catalysts is the union of every placed catalyst.
	Catalysts life.Grid
	// MinActivation is the earliest activation of any slot placed alone.
	// Simulation starts at the earlier contact generation instead, since a
	// background already bent by one catalyst can reach another sooner.
	MinActivation int
}

type slot struct {
	raw int
	// cum joins this slot with every earlier one; zone is its ZOI.
	cum                    life.Grid
	zone                   life.Grid
	minX, minY, maxX, maxY int
}

// EnumeratorOptions bounds the enumerated configurations.
type EnumeratorOptions struct {
	Slots int
	// StartGen and LastGen bound the earliest activation of a configuration.
	StartGen int
	LastGen  int
	// MaxWidth and MaxHeight bound the joint bounding box; zero disables.
	MaxWidth  int
	MaxHeight int
}

// Enumerator is an odometer over the activation table. Every slot ranges
// over the table; the last slot turns fastest. Slot keys strictly decrease
// from slot 0, so each unordered set of placements is visited once.
type Enumerator struct {
	table   *catalyst.Table
	opts    EnumeratorOptions
	slots   []slot
	started bool
	done    bool
}

// NewEnumerator returns an enumerator positioned before the first
// configuration.
func NewEnumerator(t *catalyst.Table, opts EnumeratorOptions) *Enumerator {
	if opts.Slots < 1 {
		opts.Slots = 1
	}
	return &Enumerator{
		table: t,
		opts:  opts,
		slots: make([]slot, opts.Slots),
	}
}

// Done reports whether the enumeration is exhausted. Once true it stays
// true.
func (e *Enumerator) Done() bool { return e.done }

// Next advances to the next admissible configuration and reports whether
// there is one.
func (e *Enumerator) Next() bool {
	if e.done {
		return false
	}
	k := len(e.slots)
	i := k - 1
	if !e.started {
		e.started = true
		i = 0
		e.slots[0].raw = -1
	}
	n := e.table.Len()
	for {
		s := &e.slots[i]
		s.raw++
		if s.raw >= n {
			if i == 0 {
				e.done = true
				return false
			}
			i--
			continue
		}
		if !e.admissible(i) {
			continue
		}
		if i == k-1 {
			return true
		}
		i++
		e.slots[i].raw = -1
	}
}

// admissible checks slot i against the fixed slots before it and, when it
// passes, records the slot's cumulative state.
func (e *Enumerator) admissible(i int) bool {
	s := &e.slots[i]
	en := e.table.At(s.raw)
	if !en.Valid() || en.Act < e.opts.StartGen {
		return false
	}
	last := i == len(e.slots)-1
	if last && en.Act > e.opts.LastGen {
		return false
	}

	if i == 0 {
		s.minX, s.minY, s.maxX, s.maxY = en.MinX, en.MinY, en.MaxX, en.MaxY
	} else {
		prev := &e.slots[i-1]
		if !en.Less(e.table.At(prev.raw)) {
			return false
		}
		s.minX, s.minY = min(prev.minX, en.MinX), min(prev.minY, en.MinY)
		s.maxX, s.maxY = max(prev.maxX, en.MaxX), max(prev.maxY, en.MaxY)
	}
	if e.opts.MaxWidth > 0 && s.maxX-s.minX+1 > e.opts.MaxWidth {
		return false
	}
	if e.opts.MaxHeight > 0 && s.maxY-s.minY+1 > e.opts.MaxHeight {
		return false
	}

	if i == 0 {
		s.cum = en.Grid
	} else {
		prev := &e.slots[i-1]
		// Touching catalysts would break each other's targets at
		// generation 0.
		if !en.Grid.AreDisjoint(&prev.zone) {
			return false
		}
		s.cum = life.Union(prev.cum, en.Grid)
		if !s.cum.IsStill() {
			return false
		}
	}
	if !last {
		s.zone = s.cum.ZOI()
	}
	return true
}

// Configuration materializes the current odometer position.
func (e *Enumerator) Configuration() *Configuration {
	k := len(e.slots)
	c := &Configuration{
		Placements: make([]Placement, k),
		Entries:    make([]*catalyst.Entry, k),
		Catalysts:  e.slots[k-1].cum,
	}
	for i := range e.slots {
		en := e.table.At(e.slots[i].raw)
		c.Entries[i] = en
		c.Placements[i] = Placement{Type: en.Type, X: en.X, Y: en.Y}
	}
	c.MinActivation = c.Entries[k-1].Act
	return c
}
