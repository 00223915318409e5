package ui

import (
	"fmt"
	"strings"

	"mad-cat/internal/core"
)

type generationProvider interface {
	Generation() int
}

type populationProvider interface {
	Population() int
}

type catalystProvider interface {
	CatalystsIntact() bool
}

// StatusLine summarizes the simulation for the overlay. Fields the sim does
// not provide are left out.
func StatusLine(sim core.Sim, paused bool) string {
	parts := []string{sim.Name()}
	if p, ok := sim.(generationProvider); ok {
		parts = append(parts, fmt.Sprintf("gen %d", p.Generation()))
	}
	if p, ok := sim.(populationProvider); ok {
		parts = append(parts, fmt.Sprintf("pop %d", p.Population()))
	}
	if p, ok := sim.(catalystProvider); ok {
		if p.CatalystsIntact() {
			parts = append(parts, "catalysts ok")
		} else {
			parts = append(parts, "catalysts broken")
		}
	}
	if paused {
		parts = append(parts, "paused")
	}
	return strings.Join(parts, "  ")
}
