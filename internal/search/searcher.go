package search

import (
	"context"
	"fmt"

	"mad-cat/internal/catalyst"
	"mad-cat/internal/config"
	"mad-cat/internal/logging"
	"mad-cat/pkg/life"
)

// Outcome is the result of simulating one configuration.
type Outcome int

const (
	Success Outcome = iota
	// Idle means a catalyst stayed absent longer than it may.
	Idle
	// Timeout means the configuration did not stabilize by the maximum
	// generation.
	Timeout
	// Filtered means a required pattern was missing.
	Filtered
	// Forbidden means a forbidden pattern appeared during the reaction.
	Forbidden
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Idle:
		return "idle"
	case Timeout:
		return "timeout"
	case Filtered:
		return "filtered"
	case Forbidden:
		return "forbidden"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Stats counts configurations by outcome.
type Stats struct {
	Tried     int
	Success   int
	Idle      int
	Timeout   int
	Filtered  int
	Forbidden int
}

func (s *Stats) count(o Outcome) {
	s.Tried++
	switch o {
	case Success:
		s.Success++
	case Idle:
		s.Idle++
	case Timeout:
		s.Timeout++
	case Filtered:
		s.Filtered++
	case Forbidden:
		s.Forbidden++
	}
}

// Hooks receive search events. Either may be nil.
type Hooks struct {
	Result func(*Result)
	// Progress is called every progressEvery configurations.
	Progress func(Stats)
}

const progressEvery = 1024

type filter struct {
	from, to int
	rng      bool
	target   life.Target
}

// Searcher runs one catalyst search. It is not safe for concurrent use.
type Searcher struct {
	cfg     config.Search
	log     logging.Logger
	lastGen int

	pattern life.Grid
	bg      *catalyst.Background
	table   *catalyst.Table
	filters []filter
	// filterEnd is the last generation any filter looks at.
	filterEnd int
	stats     Stats
}

// New loads the pattern and catalysts of cfg and precomputes the activation
// table.
func New(ctx context.Context, cfg config.Search, log logging.Logger) (*Searcher, error) {
	if log == nil {
		log = logging.Nop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pat, err := life.ParseAt(cfg.Pattern.RLE, cfg.Pattern.X, cfg.Pattern.Y)
	if err != nil {
		return nil, fmt.Errorf("pattern: %w", err)
	}
	if pat.IsEmpty() {
		return nil, config.ErrNoPattern
	}
	cats, err := catalyst.Build(cfg.Catalysts)
	if err != nil {
		return nil, err
	}
	group, err := life.GroupChain(cfg.Symmetry)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrUnknownSymmetry, err)
	}

	s := &Searcher{
		cfg:     cfg,
		log:     log,
		lastGen: cfg.EffectiveLastGen(),
		pattern: pat,
	}
	for i, f := range cfg.Filters {
		g, err := life.ParseAt(f.RLE, f.X, f.Y)
		if err != nil {
			return nil, fmt.Errorf("filter %d: %w", i, err)
		}
		flt := filter{from: f.FromGen, to: f.FromGen, rng: f.IsRange(), target: life.NewTarget(g)}
		if flt.rng {
			flt.to = f.ToGen
		}
		s.filters = append(s.filters, flt)
		s.filterEnd = max(s.filterEnd, flt.to)
	}

	s.bg = catalyst.NewBackground(pat, cfg.MaxGen)
	log.Infof("loaded %d catalyst orientations from %d catalysts", len(cats), len(cfg.Catalysts))
	s.table, err = catalyst.NewTable(ctx, cats, s.bg, catalyst.TableOptions{
		Area:    cfg.Area,
		Group:   group,
		MaxGen:  cfg.MaxGen,
		Workers: cfg.Workers,
		Logger:  log,
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Table returns the activation table.
func (s *Searcher) Table() *catalyst.Table { return s.table }

// Pattern returns the background pattern at generation 0.
func (s *Searcher) Pattern() life.Grid { return s.pattern }

// Stats returns the counters accumulated so far.
func (s *Searcher) Stats() Stats { return s.stats }

// Enumerator returns a fresh enumerator over the configured slots.
func (s *Searcher) Enumerator() *Enumerator {
	return NewEnumerator(s.table, EnumeratorOptions{
		Slots:     s.cfg.NumCatalysts,
		StartGen:  s.cfg.StartGen,
		LastGen:   s.lastGen,
		MaxWidth:  s.cfg.MaxWidth,
		MaxHeight: s.cfg.MaxHeight,
	})
}

// Run enumerates every configuration and reports the successful ones. The
// context is checked between configurations; a cancelled run returns the
// context error after reporting what it found.
func (s *Searcher) Run(ctx context.Context, hooks Hooks) error {
	en := s.Enumerator()
	for en.Next() {
		if s.stats.Tried%progressEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
			if hooks.Progress != nil && s.stats.Tried > 0 {
				hooks.Progress(s.stats)
			}
		}
		out, res := s.Simulate(en.Configuration())
		s.stats.count(out)
		if out == Success {
			s.log.Debugf("result at %v: stable from %d", res.Placements, res.StableGen)
			if hooks.Result != nil {
				hooks.Result(res)
			}
		}
	}
	if hooks.Progress != nil {
		hooks.Progress(s.stats)
	}
	return nil
}

// Simulate runs one configuration forward from the generation its
// catalysts first come into contact with the background.
func (s *Searcher) Simulate(conf *Configuration) (Outcome, *Result) {
	k := len(conf.Entries)
	cats := &conf.Catalysts
	state, start := s.bg.Start(cats)

	seen := make([]bool, len(s.filters))
	if len(s.filters) > 0 {
		// Before contact the background and the catalysts evolve apart.
		for g := 0; g < start && g <= s.filterEnd; g++ {
			before := s.bg.At(g)
			before.Join(cats)
			if !s.checkFilters(&before, g, seen) {
				return Filtered, nil
			}
		}
	}

	var forbidden []life.Target
	for _, en := range conf.Entries {
		forbidden = append(forbidden, s.table.Forbidden(en)...)
	}
	vetoed := false

	absent := make([]int, k)
	activated := make([]bool, k)
	nact := 0
	firstAct, stableStart, detect := -1, -1, -1
	for gen := start; gen <= s.cfg.MaxGen; gen++ {
		all := true
		for i, en := range conf.Entries {
			if state.ContainsTarget(&en.Target) {
				absent[i] = 0
				continue
			}
			all = false
			absent[i]++
			if !activated[i] {
				activated[i] = true
				nact++
				if firstAct < 0 {
					firstAct = gen
				}
			}
			limit := s.table.Catalysts[en.Type].MaxAbsence
			if limit != config.Unlimited && absent[i] > limit {
				return Idle, nil
			}
		}
		if !s.checkFilters(&state, gen, seen) {
			return Filtered, nil
		}
		if firstAct >= 0 && !vetoed {
			for j := range forbidden {
				if state.ContainsTarget(&forbidden[j]) {
					vetoed = true
					break
				}
			}
		}
		if all && nact == k {
			if stableStart < 0 {
				stableStart = gen
			}
			if gen-stableStart+1 >= s.cfg.StableInterval {
				detect = gen
				break
			}
		} else {
			stableStart = -1
		}
		state.Step()
	}
	if detect < 0 {
		return Timeout, nil
	}
	if vetoed {
		return Forbidden, nil
	}

	if detect < s.filterEnd {
		rest := state
		for gen := detect + 1; gen <= s.filterEnd; gen++ {
			rest.Step()
			if !s.checkFilters(&rest, gen, seen) {
				return Filtered, nil
			}
		}
	}
	for i, f := range s.filters {
		if f.rng && !seen[i] {
			return Filtered, nil
		}
	}

	initial := s.pattern
	initial.Join(cats)
	product := state
	product.Xor(cats)
	return Success, &Result{
		Placements:      conf.Placements,
		Init:            initial,
		Catalysts:       *cats,
		FirstActivation: firstAct,
		StableGen:       stableStart,
		RemoveGen:       detect,
		Product:         product,
	}
}

// checkFilters fails on a missed exact-generation filter and marks range
// filters that match at gen.
func (s *Searcher) checkFilters(g *life.Grid, gen int, seen []bool) bool {
	for i := range s.filters {
		f := &s.filters[i]
		if gen < f.from || gen > f.to {
			continue
		}
		if !f.rng {
			if !g.ContainsTarget(&f.target) {
				return false
			}
			continue
		}
		if !seen[i] && g.ContainsTarget(&f.target) {
			seen[i] = true
		}
	}
	return true
}
