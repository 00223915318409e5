package core

import (
	"testing"

	"mad-cat/pkg/life"
)

func TestSoupDeterministic(t *testing.T) {
	a, b := life.Empty(), life.Empty()
	NewRNG(7).Soup(&a, 10, 10, 16, 16, 0.5)
	NewRNG(7).Soup(&b, 10, 10, 16, 16, 0.5)
	if !a.Equal(&b) {
		t.Fatal("same seed should give the same soup")
	}
	if a.Pop() == 0 || a.Pop() == 256 {
		t.Fatalf("unexpected soup population %d", a.Pop())
	}
	box := life.Rect(10, 10, 16, 16)
	if !box.Contains(&a) {
		t.Fatal("soup escaped its rectangle")
	}
}

func TestSoupDensityBounds(t *testing.T) {
	g := life.Empty()
	NewRNG(1).Soup(&g, 0, 0, 8, 8, 0)
	if !g.IsEmpty() {
		t.Fatal("zero density should leave the grid empty")
	}
	NewRNG(1).Soup(&g, 0, 0, 8, 8, 1)
	if g.Pop() != 64 {
		t.Fatalf("full density should fill the rectangle, got %d", g.Pop())
	}
}
