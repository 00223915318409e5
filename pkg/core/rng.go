package core

import (
	"math/rand/v2"

	"mad-cat/pkg/life"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Soup sets cells of the w*h rectangle at (x, y) with the given density.
func (r *RNG) Soup(g *life.Grid, x, y, w, h int, density float64) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			if r.r.Float64() < density {
				g.Set(x+dx, y+dy)
			}
		}
	}
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
