package search

import "mad-cat/pkg/life"

// Result is a configuration that survived the reaction.
type Result struct {
	Placements []Placement
	// Init is the background and the catalysts at generation 0.
	Init      life.Grid
	Catalysts life.Grid
	// FirstActivation is the first generation any catalyst was disturbed;
	// StableGen starts the run of generations with every catalyst present.
	FirstActivation int
	StableGen       int
	// RemoveGen is the generation the stable interval completed. Product is
	// the pattern at that generation with the catalysts removed.
	RemoveGen int
	Product   life.Grid
}

// Duration is the length of the reaction.
func (r *Result) Duration() int { return r.StableGen - r.FirstActivation }

// Pop returns the population of the product.
func (r *Result) Pop() int { return r.Product.Pop() }
