package catalyst

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"mad-cat/internal/config"
	"mad-cat/pkg/life"
)

const (
	glider = "bo$2bo$3o!"
	eater  = "2o$obo$2bo$2b2o!"
	block  = "2o$2o!"
	hive   = "b2o$o2bo$b2o!"
)

func TestBuildOrientations(t *testing.T) {
	cases := []struct {
		rle  string
		sym  string
		want int
	}{
		{eater, ".", 1},
		{eater, "*", 8},
		{eater, "x", 2},
		{block, "*", 1},
		{hive, "*", 2},
		{hive, "|", 1},
	}
	for _, c := range cases {
		cats, err := Build([]config.Catalyst{{RLE: c.rle, MaxAbsence: config.Unlimited, Symmetry: c.sym}})
		require.NoError(t, err)
		require.Len(t, cats, c.want, "%s with %q", c.rle, c.sym)
		for _, cat := range cats {
			require.True(t, cat.Pattern.IsStill())
			require.True(t, cat.Target.Wanted.Equal(&cat.Pattern))
		}
	}
}

func TestBuildAnchorAndForbidden(t *testing.T) {
	cats, err := Build([]config.Catalyst{{
		RLE:        block,
		MaxAbsence: 3,
		AnchorX:    1,
		AnchorY:    1,
		Symmetry:   ".",
		Forbidden:  []config.Forbidden{{RLE: "o!", X: 3, Y: 1}},
	}})
	require.NoError(t, err)
	require.Len(t, cats, 1)
	want := life.Rect(-1, -1, 2, 2)
	require.True(t, cats[0].Pattern.Equal(&want))
	require.Equal(t, 3, cats[0].MaxAbsence)
	require.Len(t, cats[0].Forbidden, 1)
	require.True(t, cats[0].Forbidden[0].Wanted.Get(2, 0))
}

func TestBuildRejects(t *testing.T) {
	_, err := Build([]config.Catalyst{{RLE: glider, Symmetry: "."}})
	require.True(t, errors.Is(err, ErrNotStill))

	_, err = Build([]config.Catalyst{{RLE: "3q!", Symmetry: "."}})
	require.True(t, errors.Is(err, life.ErrMalformedRLE))

	_, err = Build([]config.Catalyst{{RLE: block, Symmetry: "?"}})
	require.Error(t, err)
}

func TestStartMatchesJointSimulation(t *testing.T) {
	pat := life.MustParse(glider)
	bg := NewBackground(pat, 80)
	cats, err := Build([]config.Catalyst{{RLE: eater, Symmetry: "*"}})
	require.NoError(t, err)

	checked := 0
	for _, cat := range cats {
		for x := -6; x < 14; x++ {
			for y := -6; y < 14; y++ {
				u := cat.Pattern.Moved(x, y)
				if !u.AreDisjoint(&pat) {
					continue
				}
				got, gen := bg.Start(&u)
				if gen == Never {
					continue
				}
				want := life.Union(pat, u)
				want.StepN(gen)
				require.True(t, got.Equal(&want), "placement (%d,%d) orientation %v at gen %d", x, y, cat.Orientation, gen)
				require.Equal(t, gen, got.Gen())
				checked++
			}
		}
	}
	require.Greater(t, checked, 1000)
}

func TestContactNever(t *testing.T) {
	bg := NewBackground(life.MustParse(block), 10)
	far := life.Rect(30, 30, 2, 2)
	require.Equal(t, Never, bg.Contact(&far))
	state, gen := bg.Start(&far)
	require.Equal(t, 10, gen)
	require.Equal(t, 8, state.Pop())
}
