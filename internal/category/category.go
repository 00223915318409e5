// Package category groups search results whose products settle into the
// same pattern.
package category

import (
	"sort"

	"mad-cat/internal/search"
	"mad-cat/pkg/life"
)

// Category is a class of results with equivalent products. The key is the
// product of the first member evolved to the alignment generation.
type Category struct {
	Key     life.Grid
	Results []*search.Result

	// phases[j] is the key advanced j generations with its bounding box
	// moved to the origin.
	phases []life.Grid
	hashes []uint64
}

// Representative returns the best ranked member.
func (c *Category) Representative() *search.Result { return c.Results[0] }

// Size returns the number of members.
func (c *Category) Size() int { return len(c.Results) }

// Categories is the set of categories of one run.
type Categories struct {
	keyGen  int
	delta   int
	maxSize int
	list    []*Category
}

// New returns an empty set. Products are compared at maxGen+catDelta over
// a window of catDelta generations; reports show at most maxSize results
// per category, or all of them when maxSize is zero.
func New(maxGen, catDelta, maxSize int) *Categories {
	return &Categories{keyGen: maxGen + catDelta, delta: catDelta, maxSize: maxSize}
}

// Len returns the number of categories.
func (cs *Categories) Len() int { return len(cs.list) }

// List returns the categories in creation order.
func (cs *Categories) List() []*Category { return cs.list }

// Add files r into the first matching category, creating one when none
// matches.
func (cs *Categories) Add(r *search.Result) (*Category, bool) {
	phases, hashes := cs.phases(r.Product)
	for _, c := range cs.list {
		if c.matches(phases, hashes) {
			c.Results = append(c.Results, r)
			return c, false
		}
	}
	c := &Category{
		Key:     aligned(r.Product, cs.keyGen),
		Results: []*search.Result{r},
		phases:  phases,
		hashes:  hashes,
	}
	cs.list = append(cs.list, c)
	return c, true
}

// BelongsTo reports whether r would join c.
func (cs *Categories) BelongsTo(c *Category, r *search.Result) bool {
	phases, hashes := cs.phases(r.Product)
	return c.matches(phases, hashes)
}

// Top returns the reported results of c.
func (cs *Categories) Top(c *Category) []*search.Result {
	if cs.maxSize > 0 && len(c.Results) > cs.maxSize {
		return c.Results[:cs.maxSize]
	}
	return c.Results
}

// Finalize ranks every category's results, longest reaction first and then
// smallest product.
func (cs *Categories) Finalize() {
	for _, c := range cs.list {
		sort.SliceStable(c.Results, func(i, j int) bool {
			a, b := c.Results[i], c.Results[j]
			if a.Duration() != b.Duration() {
				return a.Duration() > b.Duration()
			}
			return a.Pop() < b.Pop()
		})
	}
}

func aligned(product life.Grid, gen int) life.Grid {
	if d := gen - product.Gen(); d > 0 {
		product.StepN(d)
	}
	return product
}

func (cs *Categories) phases(product life.Grid) ([]life.Grid, []uint64) {
	g := aligned(product, cs.keyGen)
	phases := make([]life.Grid, cs.delta+1)
	hashes := make([]uint64, cs.delta+1)
	for j := range phases {
		if j > 0 {
			g.Step()
		}
		phases[j] = g.Normalized()
		hashes[j] = phases[j].Hash()
	}
	return phases, hashes
}

// matches compares a candidate with the key allowing either one to lag the
// other by up to the window length. Hashes only prefilter.
func (c *Category) matches(phases []life.Grid, hashes []uint64) bool {
	for i := range phases {
		if hashes[i] == c.hashes[0] && phases[i].Equal(&c.phases[0]) {
			return true
		}
	}
	for j := 1; j < len(c.phases); j++ {
		if hashes[0] == c.hashes[j] && phases[0].Equal(&c.phases[j]) {
			return true
		}
	}
	return false
}
