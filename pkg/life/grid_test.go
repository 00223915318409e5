package life

import (
	"math/rand/v2"
	"testing"
)

func TestBooleanOps(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 8))
	a := randomGrid(r, 0.3)
	b := randomGrid(r, 0.3)

	and := Intersect(a, b)
	or := Union(a, b)
	xor := a
	xor.Xor(&b)
	diff := a
	diff.AndNot(&b)
	for y := 0; y < N; y++ {
		for x := 0; x < N; x++ {
			p, q := a.Get(x, y), b.Get(x, y)
			if and.Get(x, y) != (p && q) || or.Get(x, y) != (p || q) ||
				xor.Get(x, y) != (p != q) || diff.Get(x, y) != (p && !q) {
				t.Fatalf("cell (%d,%d): boolean ops disagree with per-cell logic", x, y)
			}
		}
	}
	if and.Pop()+or.Pop() != a.Pop()+b.Pop() {
		t.Fatal("|a&b| + |a|b| should equal |a| + |b|")
	}
}

func TestJoinAtMatchesMoved(t *testing.T) {
	glider := MustParse("bo$2bo$3o!")
	block := MustParse("2o$2o!")
	for _, off := range [][2]int{{0, 0}, {5, 9}, {62, 63}, {-3, 1}} {
		got := block
		got.JoinAt(&glider, off[0], off[1])

		moved := glider.Moved(off[0], off[1])
		want := Union(block, moved)
		if !got.Equal(&want) {
			t.Fatalf("offset %v: JoinAt differs from Join of the moved grid", off)
		}
	}
}

func TestSteppedLeavesReceiver(t *testing.T) {
	g := MustParse("3o!")
	s := g.Stepped(3)
	if s.Gen() != 3 || g.Gen() != 0 {
		t.Fatalf("gens = %d and %d, want 3 and 0", s.Gen(), g.Gen())
	}
	v := FromCells([][2]int{{1, -1}, {1, 0}, {1, 1}})
	if !s.Equal(&v) {
		t.Fatalf("odd step count should leave a vertical blinker, got %v", s.Cells())
	}
}

func TestZeroValueRowRange(t *testing.T) {
	var g Grid
	if lo, hi := g.RowRange(); lo <= hi {
		t.Fatalf("zero grid range = [%d,%d], want empty", lo, hi)
	}
	if !g.IsEmpty() {
		t.Fatal("zero grid should be empty")
	}
	g.Set(5, 40)
	if lo, hi := g.RowRange(); lo != 40 || hi != 40 {
		t.Fatalf("range after one cell = [%d,%d], want [40,40]", lo, hi)
	}
	g.Set(1, 42)
	if lo, hi := g.RowRange(); lo != 40 || hi != 42 {
		t.Fatalf("range after two cells = [%d,%d], want [40,42]", lo, hi)
	}

	var z Grid
	z.Set(3, 0)
	if lo, hi := z.RowRange(); lo != 0 || hi != 0 {
		t.Fatalf("range of a cell in row 0 = [%d,%d], want [0,0]", lo, hi)
	}
	var s Grid
	s.Step()
	if !s.IsEmpty() || s.Gen() != 1 {
		t.Fatal("stepping the zero grid should only advance the generation")
	}
}
