package life

import (
	"math/rand/v2"
	"testing"
)

func randomGrid(r *rand.Rand, density float64) Grid {
	g := Empty()
	for y := 0; y < N; y++ {
		for x := 0; x < N; x++ {
			if r.Float64() < density {
				g.Set(x, y)
			}
		}
	}
	return g
}

func randomPatch(r *rand.Rand, x0, y0, w, h int) Grid {
	g := Empty()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if r.IntN(2) == 1 {
				g.Set(x0+x, y0+y)
			}
		}
	}
	return g
}

// bruteStep evaluates B3/S23 cell by cell.
func bruteStep(g *Grid) Grid {
	out := Empty()
	for y := 0; y < N; y++ {
		for x := 0; x < N; x++ {
			n := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					if g.Get(x+dx, y+dy) {
						n++
					}
				}
			}
			alive := g.Get(x, y)
			if n == 3 || (alive && n == 2) {
				out.Set(x, y)
			}
		}
	}
	return out
}

func TestStepMatchesBruteForce(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 0))
	for i := 0; i < 20; i++ {
		g := randomGrid(r, 0.1+0.05*float64(i%8))
		want := bruteStep(&g)
		g.Step()
		if !g.Equal(&want) {
			t.Fatalf("iteration %d: bit-sliced step differs from brute force\ngot:\n%v\nwant:\n%v", i, g, want)
		}
	}
}

func TestStepMatchesBruteForceOnSparsePatches(t *testing.T) {
	r := rand.New(rand.NewPCG(11, 3))
	// Patches straddling the edges exercise the wraparound path.
	corners := [][2]int{{10, 10}, {60, 30}, {30, 60}, {61, 62}, {0, 0}}
	for _, c := range corners {
		g := randomPatch(r, c[0], c[1], 8, 8)
		for gen := 0; gen < 30; gen++ {
			want := bruteStep(&g)
			g.Step()
			if !g.Equal(&want) {
				t.Fatalf("patch at %v gen %d: step differs from brute force", c, gen)
			}
			lo, hi := g.RowRange()
			for y := 0; y < N; y++ {
				if g.Row(y) != 0 && (y < lo || y > hi) {
					t.Fatalf("row %d populated outside range [%d,%d]", y, lo, hi)
				}
			}
		}
	}
}

func TestBlinkerOscillation(t *testing.T) {
	g := MustParse("3o!")
	g.Move(10, 10)
	vertical := FromCells([][2]int{{11, 9}, {11, 10}, {11, 11}})

	g.Step()
	if !g.Equal(&vertical) {
		t.Fatalf("after one step expected vertical blinker, got\n%v", g)
	}
	g.Step()
	horizontal := FromCells([][2]int{{10, 10}, {11, 10}, {12, 10}})
	if !g.Equal(&horizontal) {
		t.Fatalf("after two steps expected horizontal blinker, got\n%v", g)
	}
	if g.Gen() != 2 {
		t.Fatalf("expected generation 2, got %d", g.Gen())
	}
}

func TestGliderTravelsAcrossTorus(t *testing.T) {
	g := MustParse("bo$2bo$3o!")
	start := g
	g.StepN(4 * N)
	if !g.Equal(&start) {
		t.Fatalf("glider should return home after %d generations", 4*N)
	}

	g = start
	g.StepN(4)
	want := start.Moved(1, 1)
	if !g.Equal(&want) {
		t.Fatalf("glider should move (1,1) every 4 generations, got\n%v", g)
	}
}

func TestStillLifes(t *testing.T) {
	for _, rle := range []string{"2o$2o!", "b2o$o2bo$b2o!", "2o$obo$bo!", "2o$obo$2bo$2b2o!"} {
		g := MustParse(rle)
		g.Move(20, 20)
		if !g.IsStill() {
			t.Fatalf("%s should be a still life", rle)
		}
	}
	if blinker := MustParse("3o!"); blinker.IsStill() {
		t.Fatal("blinker is not a still life")
	}
}

func TestEmptyGridStaysEmpty(t *testing.T) {
	g := Empty()
	g.StepN(5)
	if !g.IsEmpty() || g.Pop() != 0 {
		t.Fatal("empty grid should stay empty")
	}
	if g.Gen() != 5 {
		t.Fatalf("generation counter should advance on empty grids, got %d", g.Gen())
	}
}
