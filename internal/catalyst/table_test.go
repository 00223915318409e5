package catalyst

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"mad-cat/internal/config"
	"mad-cat/pkg/life"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func eaterTable(t *testing.T, sym string, workers int) *Table {
	t.Helper()
	cats, err := Build([]config.Catalyst{{RLE: eater, MaxAbsence: config.Unlimited, Symmetry: sym}})
	require.NoError(t, err)
	bg := NewBackground(life.MustParse(glider), 80)
	tab, err := NewTable(context.Background(), cats, bg, TableOptions{
		Area:    config.Area{X: 3, Y: 3, W: 9, H: 9},
		MaxGen:  60,
		Workers: workers,
	})
	require.NoError(t, err)
	return tab
}

func TestTableActivation(t *testing.T) {
	tab := eaterTable(t, ".", 1)
	require.Equal(t, 81, tab.Len())

	for x := 4; x <= 11; x++ {
		e := tab.At(tab.Index(0, x, x))
		require.Equal(t, x, e.X)
		require.Equal(t, x, e.Y)
		require.Equal(t, 4*x-13, e.Act, "eater at (%d,%d)", x, x)
		require.Equal(t, x, e.MinX)
		require.Equal(t, x+3, e.MaxX)
	}
	// (3,3) overlaps the glider's neighbourhood at generation 0.
	require.False(t, tab.At(tab.Index(0, 3, 3)).Valid())
}

func TestTableMatchesDirectActivation(t *testing.T) {
	tab := eaterTable(t, "*", 1)
	bg := tab.Background
	p0 := bg.At(0)
	for r := 0; r < tab.Len(); r++ {
		e := tab.At(r)
		if !e.Grid.AreDisjoint(&p0) {
			require.False(t, e.Valid())
			continue
		}
		// Brute force: evolve the joint pattern from generation 0.
		state := life.Union(p0, e.Grid)
		want := Never
		for g := 0; g <= 60; g++ {
			if !state.ContainsTarget(&e.Target) {
				want = g
				break
			}
			state.Step()
		}
		if want < 1 {
			want = Never
		}
		require.Equal(t, want, e.Act, "entry %d type %d at (%d,%d)", r, e.Type, e.X, e.Y)
	}
}

func TestTableWorkersAgree(t *testing.T) {
	seq := eaterTable(t, "*", 1)
	par := eaterTable(t, "*", 7)
	require.Equal(t, seq.Len(), par.Len())
	for r := 0; r < seq.Len(); r++ {
		a, b := seq.At(r), par.At(r)
		require.Equal(t, a.Act, b.Act)
		require.Equal(t, [3]int{a.Type, a.X, a.Y}, [3]int{b.Type, b.X, b.Y})
		require.True(t, a.Grid.Equal(&b.Grid))
	}
}

func TestTableCancelled(t *testing.T) {
	cats, err := Build([]config.Catalyst{{RLE: eater, Symmetry: "."}})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewTable(ctx, cats, NewBackground(life.MustParse(glider), 10), TableOptions{
		Area:    config.Area{X: 0, Y: 0, W: 4, H: 4},
		MaxGen:  10,
		Workers: 2,
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestEntryOrder(t *testing.T) {
	a := Entry{Act: 3, X: 1, Y: 9, Type: 2}
	b := Entry{Act: 3, X: 2, Y: 0, Type: 0}
	c := Entry{Act: 4, X: 0, Y: 0, Type: 0}
	require.True(t, a.Less(&b))
	require.True(t, b.Less(&c))
	require.False(t, c.Less(&a))
	require.False(t, a.Less(&a))
}

func TestGroupPlacement(t *testing.T) {
	cats, err := Build([]config.Catalyst{{RLE: block, Symmetry: "."}})
	require.NoError(t, err)
	chain, err := life.GroupChain("D2|")
	require.NoError(t, err)
	bg := NewBackground(life.MustParse(glider), 20)
	tab, err := NewTable(context.Background(), cats, bg, TableOptions{
		Area:    config.Area{X: 10, Y: 10, W: 2, H: 1},
		Group:   chain,
		MaxGen:  20,
		Workers: 1,
	})
	require.NoError(t, err)
	e := tab.At(tab.Index(0, 10, 10))
	require.Equal(t, 8, e.Grid.Pop())
	require.True(t, e.Grid.Get(-10, 10))
	require.True(t, e.Grid.Get(-11, 11))
}
