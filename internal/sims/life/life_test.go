package life

import (
	"testing"

	"mad-cat/internal/core"
	"mad-cat/pkg/life"
)

func TestBlinkerOscillation(t *testing.T) {
	l := New(FromMap(map[string]string{"rle": "o$o$o!", "x": "2", "y": "1"}))
	l.Reset(0)

	w := l.Size().W
	check := func(step string, expects map[[2]int]bool) {
		cells := l.Cells()
		for y := 0; y < 5; y++ {
			for x := 0; x < 5; x++ {
				alive := cells[y*w+x] == Alive
				if expects[[2]int{x, y}] != alive {
					t.Fatalf("%s: cell (%d,%d) alive=%v, expected %v", step, x, y, alive, expects[[2]int{x, y}])
				}
			}
		}
	}

	l.Step()
	check("first step", map[[2]int]bool{{1, 2}: true, {2, 2}: true, {3, 2}: true})
	l.Step()
	check("second step", map[[2]int]bool{{2, 1}: true, {2, 2}: true, {2, 3}: true})
	if l.Generation() != 2 || l.Population() != 3 {
		t.Fatalf("generation %d population %d", l.Generation(), l.Population())
	}

	l.Reset(0)
	if l.Generation() != 0 {
		t.Fatal("reset should rewind the generation counter")
	}
}

func TestCatalystCells(t *testing.T) {
	l := New(FromMap(map[string]string{
		"rle":       "bo$2bo$3o!",
		"catalysts": "6b2o$6bobo$8bo$8b2o!",
		"x":         "10",
		"y":         "10",
	}))
	l.Reset(0)
	cells := l.Cells()
	if got := cells[10*life.N+16]; got != CatalystAlive {
		t.Fatalf("catalyst cell value %d, want %d", got, CatalystAlive)
	}
	if got := cells[10*life.N+11]; got != Alive {
		t.Fatalf("glider cell value %d, want %d", got, Alive)
	}
	if !l.CatalystsIntact() {
		t.Fatal("catalyst should be intact at generation 0")
	}

	l.Toggle(16, 10)
	if got := l.Cells()[10*life.N+16]; got != CatalystMissing {
		t.Fatalf("erased catalyst cell value %d, want %d", got, CatalystMissing)
	}
	if l.CatalystsIntact() {
		t.Fatal("erased catalyst cell should break the catalyst")
	}
}

func TestSoupReset(t *testing.T) {
	a := New(DefaultConfig())
	b := New(DefaultConfig())
	a.Reset(3)
	b.Reset(3)
	if a.Population() == 0 || a.Population() != b.Population() {
		t.Fatalf("soups differ: %d vs %d", a.Population(), b.Population())
	}
}

func TestRegistered(t *testing.T) {
	f, ok := core.Sims()["life"]
	if !ok {
		t.Fatal("life is not registered")
	}
	sim := f(map[string]string{"rle": "2o$2o!"})
	sim.Reset(1)
	if sim.Name() != "life" || sim.Size().W != life.N {
		t.Fatalf("unexpected sim %s %v", sim.Name(), sim.Size())
	}
}

func TestFromMapIgnoresBadValues(t *testing.T) {
	c := FromMap(map[string]string{"density": "2", "soup": "-1", "x": "q"})
	if c != DefaultConfig() {
		t.Fatalf("bad values should keep defaults, got %+v", c)
	}
}
