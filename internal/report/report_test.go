package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"mad-cat/internal/category"
	"mad-cat/internal/search"
	"mad-cat/pkg/life"
)

func res(init, product string, x, first, stable int) *search.Result {
	i := life.MustParse(init)
	i.Move(x, 7)
	return &search.Result{
		Init:            i,
		Product:         life.MustParse(product),
		FirstActivation: first,
		StableGen:       stable,
	}
}

func twoCategories(maxSize int) *category.Categories {
	cs := category.New(10, 4, maxSize)
	cs.Add(res("3o!", "2o$2o!", 3, 1, 9))
	cs.Add(res("o$o$o!", "2o$2o!", 40, 1, 5))
	cs.Add(res("2o$2o!", "b2o$o2bo$b2o!", 12, 1, 5))
	cs.Finalize()
	return cs
}

func TestWriteLayout(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, twoCategories(0), Options{Pitch: 20, Header: []string{"run test"}})
	require.NoError(t, err)

	text := buf.String()
	require.True(t, strings.HasPrefix(text, "#C run test\nx = 21, y = 22, rule = B3/S23\n"), text)

	got, err := life.Parse(text)
	require.NoError(t, err)
	want := life.FromCells([][2]int{
		{0, 0}, {1, 0}, {2, 0},
		{20, 0}, {20, 1}, {20, 2},
		{0, 20}, {1, 20}, {0, 21}, {1, 21},
	})
	require.True(t, got.Equal(&want), "decoded cells %v", got.Cells())
}

func TestWriteTruncates(t *testing.T) {
	var top, full bytes.Buffer
	cs := twoCategories(1)
	require.NoError(t, Write(&top, cs, Options{Pitch: 20}))
	require.NoError(t, Write(&full, cs, Options{Pitch: 20, Full: true}))

	topGrid, err := life.Parse(top.String())
	require.NoError(t, err)
	fullGrid, err := life.Parse(full.String())
	require.NoError(t, err)
	require.Equal(t, 7, topGrid.Pop())
	require.Equal(t, 10, fullGrid.Pop())
}

func TestWriteEmptyAndLongLines(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, category.New(10, 4, 0), Options{}))
	require.Equal(t, "x = 0, y = 0, rule = B3/S23\n!\n", buf.String())

	cs := category.New(10, 4, 0)
	for i := 0; i < 30; i++ {
		cs.Add(res("obo!", "2o$2o!", i, 0, 1))
	}
	buf.Reset()
	require.NoError(t, Write(&buf, cs, Options{}))
	for _, line := range strings.Split(buf.String(), "\n") {
		require.LessOrEqual(t, len(line), 70)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.rle")
	require.NoError(t, WriteFile(path, twoCategories(0), Options{}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "rule = B3/S23")
}
